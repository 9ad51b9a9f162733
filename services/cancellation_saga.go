package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"
	"fooddelivery/pkg/gateway"
	"fooddelivery/repository"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CancellationContext is the shared state one cancellation request flows
// through. It lives only for the duration of the saga and is never persisted.
type CancellationContext struct {
	RestaurantID uint
	OrderID      uint
	Reason       string

	Restaurant *entity.Restaurant
	Order      *entity.Order

	// order status as loaded by the validation step; the refund tier is
	// keyed on this, not on the later 'cancelled' relabel
	statusAtValidation string

	RefundAmount decimal.Decimal
	RefundStatus string
	RefundID     string

	// non-fatal failures from best-effort steps, reported by the audit step
	Errors []string
}

// cancellationStep is one link of the pipeline. Fatal steps abort the chain
// on error; best-effort steps only accumulate their failure.
type cancellationStep struct {
	name       string
	bestEffort bool
	run        func(ctx context.Context, cc *CancellationContext) error
}

type CancellationResult struct {
	RefundAmount decimal.Decimal `json:"refundAmount"`
	RefundStatus string          `json:"refundStatus"`
}

// CancellationSaga executes restaurant-initiated order cancellation as a
// fixed, ordered pipeline: authentication, validation, status update, driver
// notification, refund, stakeholder fan-out, audit logging. The first three
// steps are load-bearing; everything after the committed status flip is
// best-effort, so an order is never left half-cancelled.
type CancellationSaga struct {
	DB       *gorm.DB
	Orders   *repository.OrderRepository
	RestRepo *repository.RestaurantRepository
	PayRepo  *repository.PaymentRepository
	Refunds  gateway.RefundProvider
	Notifier gateway.Notifier
	Cache    *cache.Cache
	Log      *slog.Logger
	Status   *StatusIDs

	steps []cancellationStep
}

func NewCancellationSaga(
	db *gorm.DB,
	orders *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	payRepo *repository.PaymentRepository,
	refunds gateway.RefundProvider,
	notifier gateway.Notifier,
	summaryCache *cache.Cache,
	log *slog.Logger,
	status *StatusIDs,
) *CancellationSaga {
	s := &CancellationSaga{
		DB: db, Orders: orders, RestRepo: restRepo, PayRepo: payRepo,
		Refunds: refunds, Notifier: notifier, Cache: summaryCache,
		Log: log, Status: status,
	}
	s.steps = []cancellationStep{
		{name: "authentication", run: s.authenticateRestaurant},
		{name: "validation", run: s.validateOrder},
		{name: "status_update", run: s.updateOrderStatus},
		{name: "driver_notification", bestEffort: true, run: s.notifyDriver},
		{name: "refund_processing", bestEffort: true, run: s.processRefund},
		{name: "stakeholder_notification", bestEffort: true, run: s.notifyStakeholders},
		{name: "audit_log", bestEffort: true, run: s.logOutcome},
	}
	return s
}

// Execute runs the pipeline for one cancellation request. A fatal step error
// stops the remaining chain and leaves the order unchanged.
func (s *CancellationSaga) Execute(ctx context.Context, restaurantID, orderID uint, reason string) (*CancellationResult, error) {
	cc := &CancellationContext{
		RestaurantID: restaurantID,
		OrderID:      orderID,
		Reason:       reason,
		RefundStatus: "NONE",
	}

	for _, step := range s.steps {
		if err := step.run(ctx, cc); err != nil {
			if !step.bestEffort {
				return nil, err
			}
			s.Log.Error("cancellation step failed",
				"step", step.name, "orderId", orderID, "err", err)
			cc.Errors = append(cc.Errors, fmt.Sprintf("%s: %v", step.name, err))
		}
	}

	return &CancellationResult{
		RefundAmount: cc.RefundAmount,
		RefundStatus: cc.RefundStatus,
	}, nil
}

// ----- step 1: authentication -----

func (s *CancellationSaga) authenticateRestaurant(_ context.Context, cc *CancellationContext) error {
	rest, err := s.RestRepo.GetByID(cc.RestaurantID)
	if err != nil {
		return err
	}
	if rest == nil {
		return apperr.NotFound("restaurant not found")
	}
	cc.Restaurant = rest
	return nil
}

// ----- step 2: validation -----

func (s *CancellationSaga) validateOrder(_ context.Context, cc *CancellationContext) error {
	order, err := s.Orders.GetOrder(cc.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperr.NotFound("order not found")
	}
	if order.RestaurantID != cc.RestaurantID {
		return apperr.Forbidden("order belongs to a different restaurant")
	}

	status := s.Status.Name(order.OrderStatusID)
	if !CanRestaurantCancel(status) {
		return apperr.InvalidState(
			fmt.Sprintf("order cannot be cancelled in current state: %s", status))
	}
	if !ValidCancellationReasons[cc.Reason] {
		return apperr.InvalidState("invalid cancellation reason")
	}

	cc.Order = order
	cc.statusAtValidation = status
	return nil
}

// ----- step 3: status update (the one irreversible mutation) -----

func (s *CancellationSaga) updateOrderStatus(_ context.Context, cc *CancellationContext) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// re-read under lock; a concurrent cancellation may have won since
		// validation loaded the order
		o, err := s.Orders.GetOrderLocked(tx, cc.OrderID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.NotFound("order not found")
		}
		current := s.Status.Name(o.OrderStatusID)
		if !CanRestaurantCancel(current) {
			return apperr.InvalidState(
				fmt.Sprintf("order cannot be cancelled in current state: %s", current))
		}

		affected, err := s.Orders.UpdateStatusGuard(tx, cc.OrderID,
			o.OrderStatusID, s.Status.ID(StatusCancelled))
		if err != nil {
			return err
		}
		if affected == 0 {
			return GuardTransitionError(current, StatusCancelled)
		}

		now := time.Now()
		return s.Orders.UpdateOrder(tx, cc.OrderID, map[string]any{
			"cancelled_by":        "restaurant",
			"cancellation_reason": cc.Reason,
			"cancelled_at":        &now,
		})
	})
	if err != nil {
		return err
	}
	s.invalidateSummary(cc.OrderID)
	return nil
}

// ----- step 4: driver notification -----

func (s *CancellationSaga) notifyDriver(ctx context.Context, cc *CancellationContext) error {
	if cc.Order.DriverID == nil {
		return nil
	}
	return s.Notifier.NotifyDriver(ctx, *cc.Order.DriverID, map[string]any{
		"type":    "ORDER_CANCELLED",
		"orderId": cc.OrderID,
		"message": "Order has been cancelled by restaurant",
	})
}

// ----- step 5: refund processing -----

func (s *CancellationSaga) processRefund(ctx context.Context, cc *CancellationContext) error {
	refundAmount := RefundAmountFor(cc.statusAtValidation, cc.Order.TotalAmount)
	cc.RefundAmount = refundAmount
	if !refundAmount.IsPositive() {
		return nil
	}

	paymentRef := ""
	if txn, err := s.PayRepo.LatestForOrder(cc.OrderID); err == nil && txn != nil {
		paymentRef = txn.TransactionCode
	}

	result, err := s.Refunds.Refund(ctx, cc.Order.CustomerID, paymentRef, refundAmount)
	if err == nil && result.Success {
		cc.RefundStatus = "PROCESSED"
		cc.RefundID = result.RefundID
	} else {
		reason := "refund provider error"
		if err != nil {
			reason = err.Error()
		} else if result.Err != "" {
			reason = result.Err
		}
		// queue for manual handling; the cancellation itself stands
		s.Log.Warn("refund failed, queueing manual refund",
			"orderId", cc.OrderID, "amount", refundAmount, "reason", reason)
		if nErr := s.Notifier.NotifySupport(ctx, map[string]any{
			"type":    "MANUAL_REFUND_REQUIRED",
			"orderId": cc.OrderID,
			"amount":  refundAmount,
			"reason":  reason,
		}); nErr != nil {
			cc.Errors = append(cc.Errors, fmt.Sprintf("manual refund queue: %v", nErr))
		}
		cc.RefundStatus = "PENDING"
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Orders.UpdateOrder(tx, cc.OrderID, map[string]any{
			"refund_amount": refundAmount,
			"refund_status": cc.RefundStatus,
			"refund_id":     cc.RefundID,
		})
	})
	if err != nil {
		return err
	}
	s.invalidateSummary(cc.OrderID)
	return nil
}

// ----- step 6: stakeholder notification (concurrent fan-out) -----

func (s *CancellationSaga) notifyStakeholders(ctx context.Context, cc *CancellationContext) error {
	errCh := make(chan error, 3)

	go func() {
		errCh <- s.Notifier.NotifyCustomer(ctx, cc.Order.CustomerID, map[string]any{
			"type":                "ORDER_CANCELLED",
			"orderId":             cc.OrderID,
			"reason":              "Restaurant had to cancel your order",
			"refundAmount":        cc.RefundAmount,
			"estimatedRefundTime": "3-5 business days",
		})
	}()
	go func() {
		errCh <- s.Notifier.NotifySupport(ctx, map[string]any{
			"type":         "ORDER_CANCELLED_BY_RESTAURANT",
			"orderId":      cc.OrderID,
			"restaurantId": cc.RestaurantID,
			"reason":       cc.Reason,
		})
	}()
	go func() {
		errCh <- s.Notifier.RecordEvent(ctx, "restaurant_cancellation", map[string]any{
			"restaurantId": cc.RestaurantID,
			"reason":       cc.Reason,
			"orderValue":   cc.Order.TotalAmount,
		})
	}()

	for i := 0; i < 3; i++ {
		if err := <-errCh; err != nil {
			cc.Errors = append(cc.Errors, fmt.Sprintf("stakeholder notification: %v", err))
		}
	}
	return nil
}

// ----- step 7: audit log -----

func (s *CancellationSaga) logOutcome(_ context.Context, cc *CancellationContext) error {
	s.Log.Info("order cancelled by restaurant",
		"orderId", cc.OrderID,
		"restaurantId", cc.RestaurantID,
		"reason", cc.Reason,
		"refundAmount", cc.RefundAmount,
		"refundStatus", cc.RefundStatus,
		"refundId", cc.RefundID,
		"nonFatalErrors", cc.Errors,
		"at", time.Now(),
	)
	return nil
}

func (s *CancellationSaga) invalidateSummary(orderID uint) {
	if s.Cache != nil {
		s.Cache.Delete(summaryCacheKey(orderID))
	}
}
