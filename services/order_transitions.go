package services

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdvanceStatus moves an order one step along the forward path on behalf of
// the owning restaurant. The read and the guarded write share one
// transaction so concurrent updates cannot both win.
func (s *OrderService) AdvanceStatus(ownerUserID, orderID uint, to string) error {
	if _, ok := s.Status.byName[to]; !ok {
		return apperr.InvalidState(fmt.Sprintf("unknown order status %q", to))
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrderLocked(tx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.NotFound("order not found")
		}
		ok, err := s.RestRepo.IsOwnedBy(o.RestaurantID, ownerUserID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Forbidden("access denied")
		}

		from := s.Status.Name(o.OrderStatusID)
		if !CanTransition(from, to) {
			return GuardTransitionError(from, to)
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, o.OrderStatusID, s.Status.ID(to))
		if err != nil {
			return err
		}
		if affected == 0 {
			return GuardTransitionError(from, to)
		}
		if to == StatusDelivered {
			now := time.Now()
			if err := s.Repo.UpdateOrder(tx, orderID, map[string]any{"delivered_at": &now}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateSummary(orderID)
	return nil
}

// CancelOrderByCustomer cancels the customer's own order. The window is
// narrower than restaurant-initiated cancellation: only confirmed,
// preparing and ready_for_pickup orders qualify.
func (s *OrderService) CancelOrderByCustomer(ctx context.Context, userID, orderID uint) error {
	customer, err := s.CustomerRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperr.NotFound("customer not found")
	}

	var statusAtCancel string
	var order *entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrderLocked(tx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.NotFound("order not found")
		}
		if o.CustomerID != customer.ID {
			return apperr.Forbidden("access denied")
		}

		statusAtCancel = s.Status.Name(o.OrderStatusID)
		if !CanCustomerCancel(statusAtCancel) {
			return apperr.InvalidState(
				fmt.Sprintf("order cannot be cancelled by customer in state %s", statusAtCancel))
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, o.OrderStatusID, s.Status.ID(StatusCancelled))
		if err != nil {
			return err
		}
		if affected == 0 {
			return GuardTransitionError(statusAtCancel, StatusCancelled)
		}

		now := time.Now()
		order = o
		return s.Repo.UpdateOrder(tx, orderID, map[string]any{
			"cancelled_by":        "customer",
			"cancellation_reason": "CUSTOMER_REQUEST",
			"cancelled_at":        &now,
		})
	})
	if err != nil {
		return err
	}
	s.invalidateSummary(orderID)

	// refund is best-effort once the cancellation is committed
	refundAmount := RefundAmountFor(statusAtCancel, order.TotalAmount)
	if refundAmount.IsPositive() {
		if err := s.processRefund(ctx, order, refundAmount); err != nil {
			s.Log.Error("customer cancellation refund failed", "orderId", orderID, "err", err)
		}
	}
	return nil
}

// processRefund invokes the refund capability and persists the outcome into
// the order's cancellation metadata. A provider failure queues a manual
// refund and leaves the refund PENDING.
func (s *OrderService) processRefund(ctx context.Context, order *entity.Order, amount decimal.Decimal) error {
	// the payment reference is the idempotent code of the paid transaction
	paymentRef := ""
	if txn, err := s.Payments.Repo.LatestForOrder(order.ID); err == nil && txn != nil {
		paymentRef = txn.TransactionCode
	}

	status := "PENDING"
	refundID := ""
	result, err := s.Refunds.Refund(ctx, order.CustomerID, paymentRef, amount)
	if err == nil && result.Success {
		status = "PROCESSED"
		refundID = result.RefundID
	} else {
		reason := "refund provider error"
		if err != nil {
			reason = err.Error()
		} else if result.Err != "" {
			reason = result.Err
		}
		s.Log.Warn("refund failed, queueing manual refund",
			"orderId", order.ID, "amount", amount, "reason", reason)
		_ = s.Notifier.NotifySupport(ctx, map[string]any{
			"type":    "MANUAL_REFUND_REQUIRED",
			"orderId": order.ID,
			"amount":  amount,
			"reason":  reason,
		})
	}

	updateErr := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.UpdateOrder(tx, order.ID, map[string]any{
			"refund_amount": amount,
			"refund_status": status,
			"refund_id":     refundID,
		})
	})
	if updateErr != nil {
		return updateErr
	}
	s.invalidateSummary(order.ID)
	return nil
}
