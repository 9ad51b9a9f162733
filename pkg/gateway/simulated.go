package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SimulatedGateway stands in for a real payment provider. Charges and
// refunds always succeed; swap it out via config once a provider is wired.
type SimulatedGateway struct{}

func (SimulatedGateway) Charge(_ context.Context, amount decimal.Decimal) (ChargeResult, error) {
	return ChargeResult{
		Success:   true,
		Reference: "GW-" + uuid.NewString(),
	}, nil
}

func (SimulatedGateway) Refund(_ context.Context, _ uint, _ string, amount decimal.Decimal) (RefundResult, error) {
	return RefundResult{
		Success:  true,
		RefundID: "RF-" + uuid.NewString(),
	}, nil
}

// LogNotifier writes every notification to the structured log. It is the
// default sink until real driver/customer/support channels exist.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) NotifyDriver(_ context.Context, driverID uint, payload map[string]any) error {
	n.Log.Info("notify driver", "driverId", driverID, "payload", payload, "at", time.Now())
	return nil
}

func (n LogNotifier) NotifyCustomer(_ context.Context, customerID uint, payload map[string]any) error {
	n.Log.Info("notify customer", "customerId", customerID, "payload", payload)
	return nil
}

func (n LogNotifier) NotifySupport(_ context.Context, payload map[string]any) error {
	n.Log.Info("notify support", "payload", payload)
	return nil
}

func (n LogNotifier) RecordEvent(_ context.Context, event string, payload map[string]any) error {
	n.Log.Info("analytics event", "event", event, "payload", payload)
	return nil
}
