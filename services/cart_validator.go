package services

import (
	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"
)

// ValidateCartForOrder checks the cart invariants that must hold before it
// becomes an order and returns the items plus the single restaurant they all
// belong to. Pure read; no side effects.
//
// The mixed-restaurant check is defensive: the normal add-to-cart flow clears
// the cart on a restaurant switch, so it should never trip.
func ValidateCartForOrder(cart *entity.Cart) ([]entity.CartItem, uint, error) {
	if cart == nil || len(cart.Items) == 0 {
		return nil, 0, apperr.Precondition("cart is empty")
	}

	restaurantID := cart.Items[0].RestaurantID
	for _, it := range cart.Items {
		if it.RestaurantID != restaurantID {
			return nil, 0, apperr.Precondition("cart items do not belong to the same restaurant")
		}
	}

	for _, it := range cart.Items {
		if !it.MenuItem.IsAvailable {
			return nil, 0, apperr.Precondition("one or more items are no longer available")
		}
	}

	return cart.Items, restaurantID, nil
}

// CartLinesMatch reports whether current still holds exactly the lines of
// snapshot, by row id and quantity. An order is priced from a snapshot read
// outside the write transaction; the transaction re-reads the cart and
// refuses to consume a snapshot the customer has since mutated.
func CartLinesMatch(snapshot, current []entity.CartItem) bool {
	if len(snapshot) != len(current) {
		return false
	}
	qty := make(map[uint]int, len(snapshot))
	for _, it := range snapshot {
		qty[it.ID] = it.Qty
	}
	for _, it := range current {
		q, ok := qty[it.ID]
		if !ok || q != it.Qty {
			return false
		}
	}
	return true
}
