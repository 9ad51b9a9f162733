package services_test

import (
	"testing"

	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"
	"fooddelivery/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableItem(restaurantID uint, price string) entity.CartItem {
	return entity.CartItem{
		RestaurantID: restaurantID,
		Qty:          1,
		UnitPrice:    dec(price),
		MenuItem:     entity.MenuItem{RestaurantID: restaurantID, IsAvailable: true},
	}
}

func TestValidateCartForOrder(t *testing.T) {
	t.Run("valid cart returns items and restaurant", func(t *testing.T) {
		cart := &entity.Cart{Items: []entity.CartItem{
			availableItem(7, "10.00"),
			availableItem(7, "5.00"),
		}}

		items, restID, err := services.ValidateCartForOrder(cart)
		require.NoError(t, err)
		assert.Equal(t, uint(7), restID)
		assert.Len(t, items, 2)
	})

	t.Run("nil cart", func(t *testing.T) {
		_, _, err := services.ValidateCartForOrder(nil)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
	})

	t.Run("empty cart", func(t *testing.T) {
		_, _, err := services.ValidateCartForOrder(&entity.Cart{})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
	})

	t.Run("items from two restaurants", func(t *testing.T) {
		cart := &entity.Cart{Items: []entity.CartItem{
			availableItem(7, "10.00"),
			availableItem(8, "5.00"),
		}}

		_, _, err := services.ValidateCartForOrder(cart)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
	})

	t.Run("unavailable item rejects the whole cart", func(t *testing.T) {
		off := availableItem(7, "5.00")
		off.MenuItem.IsAvailable = false
		cart := &entity.Cart{Items: []entity.CartItem{
			availableItem(7, "10.00"),
			off,
		}}

		_, _, err := services.ValidateCartForOrder(cart)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
	})
}

func TestCartLinesMatch(t *testing.T) {
	line := func(id uint, qty int) entity.CartItem {
		it := entity.CartItem{Qty: qty}
		it.ID = id
		return it
	}

	t.Run("identical lines match", func(t *testing.T) {
		snapshot := []entity.CartItem{line(1, 2), line(2, 1)}
		current := []entity.CartItem{line(2, 1), line(1, 2)} // order is irrelevant
		assert.True(t, services.CartLinesMatch(snapshot, current))
	})

	t.Run("removed line", func(t *testing.T) {
		snapshot := []entity.CartItem{line(1, 2), line(2, 1)}
		current := []entity.CartItem{line(1, 2)}
		assert.False(t, services.CartLinesMatch(snapshot, current))
	})

	t.Run("cleared cart", func(t *testing.T) {
		snapshot := []entity.CartItem{line(1, 2)}
		assert.False(t, services.CartLinesMatch(snapshot, nil))
	})

	t.Run("quantity changed", func(t *testing.T) {
		snapshot := []entity.CartItem{line(1, 2)}
		current := []entity.CartItem{line(1, 3)}
		assert.False(t, services.CartLinesMatch(snapshot, current))
	})

	t.Run("line replaced by another", func(t *testing.T) {
		snapshot := []entity.CartItem{line(1, 2)}
		current := []entity.CartItem{line(3, 2)}
		assert.False(t, services.CartLinesMatch(snapshot, current))
	})

	t.Run("empty snapshot and empty cart match", func(t *testing.T) {
		assert.True(t, services.CartLinesMatch(nil, nil))
	})
}
