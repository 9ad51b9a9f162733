package services_test

import (
	"context"
	"testing"

	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"
	"fooddelivery/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPlaceOrder(t *testing.T) {
	req := func(f *fixtures) *services.PlaceOrderReq {
		return &services.PlaceOrderReq{
			DeliveryAddressID: f.Address.ID,
			PaymentMethodID:   1,
			Instructions:      "ring the bell",
		}
	}

	t.Run("happy path", func(t *testing.T) {
		env := newTestEnv(t)
		env.Fix.fillCart(t)

		result, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, req(env.Fix))
		require.NoError(t, err)

		assert.Equal(t, "confirmed", result.Status)
		assert.True(t, result.Totals.ItemsAmount.Equal(dec("15.00")))
		assert.True(t, result.Totals.ServiceFee.Equal(dec("0.75")))
		assert.True(t, result.Totals.DeliveryFee.Equal(dec("1.20")))
		assert.True(t, result.Totals.TotalAmount.Equal(dec("16.95")))
		assert.Equal(t, env.Fix.Restaurant.Name, result.Restaurant.Name)
		assert.Len(t, result.Items, 2)

		var order entity.Order
		require.NoError(t, env.DB.Preload("OrderStatus").First(&order, result.OrderID).Error)
		assert.Equal(t, "confirmed", order.OrderStatus.StatusName)
		assert.Equal(t, "ring the bell", order.Instructions)
		assert.False(t, order.PlacedAt.IsZero())

		var itemCount int64
		env.DB.Model(&entity.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
		assert.EqualValues(t, 2, itemCount)

		t.Run("transaction is paid and linked", func(t *testing.T) {
			var txn entity.Transaction
			require.NoError(t, env.DB.Where("order_id = ?", order.ID).First(&txn).Error)
			assert.Equal(t, env.Payments.Status.Paid, txn.TransactionStatusID)
			assert.True(t, txn.Amount.Equal(dec("16.95")))
		})

		t.Run("cart is cleared and unlocked", func(t *testing.T) {
			var cart entity.Cart
			require.NoError(t, env.DB.Where("customer_id = ?", env.Fix.Customer.ID).First(&cart).Error)
			assert.Zero(t, cart.RestaurantID)
			var lines int64
			env.DB.Model(&entity.CartItem{}).Where("cart_id = ?", cart.ID).Count(&lines)
			assert.Zero(t, lines)
		})
	})

	t.Run("empty cart", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, req(env.Fix))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
		assert.Zero(t, env.Gateway.chargeCalls, "no charge before validation passes")
	})

	t.Run("someone else's delivery address", func(t *testing.T) {
		env := newTestEnv(t)
		env.Fix.fillCart(t)

		other := entity.User{Email: "bob@example.com", Role: "customer", PasswordHash: "x"}
		require.NoError(t, env.DB.Create(&other).Error)
		otherCustomer := entity.Customer{UserID: other.ID}
		require.NoError(t, env.DB.Create(&otherCustomer).Error)
		foreign := entity.Address{CustomerID: otherCustomer.ID, Line1: "9 Elm St"}
		require.NoError(t, env.DB.Create(&foreign).Error)

		r := req(env.Fix)
		r.DeliveryAddressID = foreign.ID
		_, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, r)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	})

	t.Run("closed restaurant", func(t *testing.T) {
		env := newTestEnv(t)
		env.Fix.fillCart(t)
		require.NoError(t, env.DB.Model(&entity.Restaurant{}).
			Where("id = ?", env.Fix.Restaurant.ID).Update("status", "closed").Error)

		_, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, req(env.Fix))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
	})

	t.Run("inactive restaurant", func(t *testing.T) {
		env := newTestEnv(t)
		env.Fix.fillCart(t)
		require.NoError(t, env.DB.Model(&entity.Restaurant{}).
			Where("id = ?", env.Fix.Restaurant.ID).Update("is_active", false).Error)

		_, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, req(env.Fix))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
	})

	t.Run("item made unavailable after it was carted", func(t *testing.T) {
		env := newTestEnv(t)
		env.Fix.fillCart(t)
		require.NoError(t, env.DB.Model(&entity.MenuItem{}).
			Where("id = ?", env.Fix.Fries.ID).Update("is_available", false).Error)

		_, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, req(env.Fix))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))

		var orders int64
		env.DB.Model(&entity.Order{}).Count(&orders)
		assert.Zero(t, orders, "no order row written")
	})

	t.Run("cart mutated during placement is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.Fix.fillCart(t)

		// clear the cart right after the pending transaction is written,
		// which lands between the priced snapshot and the order write
		fired := false
		cbErr := env.DB.Callback().Create().After("gorm:create").
			Register("cart_clear_between_steps", func(d *gorm.DB) {
				if fired || d.Statement.Schema == nil || d.Statement.Schema.Table != "transactions" {
					return
				}
				fired = true
				env.DB.Exec("DELETE FROM cart_items")
			})
		require.NoError(t, cbErr)

		_, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, req(env.Fix))
		require.Error(t, err)
		require.True(t, fired)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))

		var orders int64
		env.DB.Model(&entity.Order{}).Count(&orders)
		assert.Zero(t, orders, "stale snapshot must not become an order")
		assert.Zero(t, env.Gateway.chargeCalls, "stale snapshot must not be charged")
	})

	t.Run("quantity changed during placement is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.Fix.fillCart(t)

		fired := false
		cbErr := env.DB.Callback().Create().After("gorm:create").
			Register("cart_qty_between_steps", func(d *gorm.DB) {
				if fired || d.Statement.Schema == nil || d.Statement.Schema.Table != "transactions" {
					return
				}
				fired = true
				env.DB.Exec("UPDATE cart_items SET qty = 5")
			})
		require.NoError(t, cbErr)

		_, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, req(env.Fix))
		require.Error(t, err)
		require.True(t, fired)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
		assert.Zero(t, env.Gateway.chargeCalls)
	})

	t.Run("restaurant without fee settings", func(t *testing.T) {
		env := newTestEnv(t)
		env.Fix.fillCart(t)
		require.NoError(t, env.DB.
			Where("restaurant_id = ?", env.Fix.Restaurant.ID).
			Delete(&entity.RestaurantSetting{}).Error)

		_, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, req(env.Fix))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
	})

	t.Run("payment declined leaves the order pending", func(t *testing.T) {
		env := newTestEnv(t)
		env.Fix.fillCart(t)
		env.Gateway.failCharge = true

		_, err := env.Orders.PlaceOrder(context.Background(), env.Fix.User.ID, req(env.Fix))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePaymentFailed))

		var order entity.Order
		require.NoError(t, env.DB.Preload("OrderStatus").
			Where("customer_id = ?", env.Fix.Customer.ID).First(&order).Error)
		assert.Equal(t, "pending", order.OrderStatus.StatusName,
			"order is kept for reconciliation, not rolled back")

		var txn entity.Transaction
		require.NoError(t, env.DB.Where("order_id = ?", order.ID).First(&txn).Error)
		assert.Equal(t, env.Payments.Status.Failed, txn.TransactionStatusID)

		t.Run("cart was still consumed", func(t *testing.T) {
			var lines int64
			env.DB.Model(&entity.CartItem{}).Count(&lines)
			assert.Zero(t, lines)
		})
	})
}

func TestListForCustomer(t *testing.T) {
	env := newTestEnv(t)
	env.Fix.placedOrder(t, "confirmed", dec("16.95"))
	env.Fix.placedOrder(t, "delivered", dec("9.99"))

	rows, err := env.Orders.ListForCustomer(env.Fix.User.ID, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
