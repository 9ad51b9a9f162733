package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeResult is the outcome of one charge attempt. Reference is the
// gateway-side transaction id when Success is true.
type ChargeResult struct {
	Success   bool
	Reference string
	Err       string
}

// RefundResult mirrors ChargeResult for refunds.
type RefundResult struct {
	Success  bool
	RefundID string
	Err      string
}

// PaymentGateway is the external charge capability. It is unreliable I/O:
// one attempt per call, no idempotency beyond the caller's transaction code.
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal) (ChargeResult, error)
}

// RefundProvider is the external refund capability.
type RefundProvider interface {
	Refund(ctx context.Context, customerID uint, paymentRef string, amount decimal.Decimal) (RefundResult, error)
}

// Notifier groups the fire-and-forget notification sinks. Implementations
// must never block the caller's transaction; failures are logged only.
type Notifier interface {
	NotifyDriver(ctx context.Context, driverID uint, payload map[string]any) error
	NotifyCustomer(ctx context.Context, customerID uint, payload map[string]any) error
	NotifySupport(ctx context.Context, payload map[string]any) error
	RecordEvent(ctx context.Context, event string, payload map[string]any) error
}
