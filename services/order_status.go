package services

import (
	"fmt"

	"fooddelivery/pkg/apperr"
	"fooddelivery/repository"

	"github.com/shopspring/decimal"
)

// Order status names as seeded in the order_statuses lookup table.
const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusPreparing      = "preparing"
	StatusReadyForPickup = "ready_for_pickup"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
	StatusRefunded       = "refunded"
)

// ValidCancellationReasons a restaurant may give when cancelling an order.
var ValidCancellationReasons = map[string]bool{
	"OUT_OF_INGREDIENTS": true,
	"TOO_BUSY":           true,
	"RESTAURANT_CLOSED":  true,
	"TECHNICAL_ISSUE":    true,
}

// forwardNext is the monotonic delivery path. Cancellation is the only
// transition outside it.
var forwardNext = map[string]string{
	StatusPending:        StatusConfirmed,
	StatusConfirmed:      StatusPreparing,
	StatusPreparing:      StatusReadyForPickup,
	StatusReadyForPickup: StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// IsTerminalStatus reports whether no further transition is permitted.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to string) bool {
	if to == StatusCancelled {
		return !IsTerminalStatus(from)
	}
	return forwardNext[from] == to
}

// CanRestaurantCancel: any non-terminal state.
func CanRestaurantCancel(status string) bool {
	return !IsTerminalStatus(status)
}

// CanCustomerCancel: narrower window than restaurant-initiated cancellation.
func CanCustomerCancel(status string) bool {
	switch status {
	case StatusConfirmed, StatusPreparing, StatusReadyForPickup:
		return true
	}
	return false
}

// RefundPercent returns the refund tier for the order's status at
// cancellation time. Pure function of the status name.
func RefundPercent(status string) decimal.Decimal {
	switch status {
	case StatusPending, StatusConfirmed:
		return decimal.NewFromInt(100)
	case StatusPreparing:
		return decimal.NewFromInt(90)
	case StatusReadyForPickup:
		return decimal.NewFromInt(80)
	case StatusOutForDelivery:
		return decimal.NewFromInt(70)
	default:
		return decimal.Zero
	}
}

// RefundAmountFor applies the tier to the order total, rounded to 2 decimals.
func RefundAmountFor(status string, total decimal.Decimal) decimal.Decimal {
	return total.Mul(RefundPercent(status)).Div(decimal.NewFromInt(100)).Round(2)
}

// StatusIDs caches lookup-table ids so services don't re-query per request.
type StatusIDs struct {
	byName map[string]uint
	byID   map[uint]string
}

func LoadStatusIDs(repo *repository.OrderRepository) (*StatusIDs, error) {
	s := &StatusIDs{byName: map[string]uint{}, byID: map[uint]string{}}
	for _, name := range []string{
		StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
		StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusRefunded,
	} {
		id, err := repo.GetStatusIDByName(name)
		if err != nil {
			return nil, fmt.Errorf("load order status %q: %w", name, err)
		}
		s.byName[name] = id
		s.byID[id] = name
	}
	return s, nil
}

func (s *StatusIDs) ID(name string) uint { return s.byName[name] }

func (s *StatusIDs) Name(id uint) string { return s.byID[id] }

// GuardTransitionError converts a lost compare-and-swap into the caller-facing
// invalid-state error.
func GuardTransitionError(from, to string) error {
	return apperr.InvalidState(fmt.Sprintf("order cannot move from %s to %s", from, to))
}
