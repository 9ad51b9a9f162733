package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"fooddelivery/entity"
	"fooddelivery/pkg/gateway"
	"fooddelivery/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxnStatusIDs caches the transaction status lookup ids.
type TxnStatusIDs struct {
	Pending uint
	Paid    uint
	Failed  uint
}

// PaymentService manages payment transactions through their small state
// machine: pending -> paid on gateway success, pending -> failed otherwise.
// There is no transition out of paid or failed here; refunds are an
// order-level concept.
type PaymentService struct {
	DB      *gorm.DB
	Repo    *repository.PaymentRepository
	Gateway gateway.PaymentGateway
	Log     *slog.Logger

	Status TxnStatusIDs
}

func NewPaymentService(db *gorm.DB, repo *repository.PaymentRepository, gw gateway.PaymentGateway, log *slog.Logger) (*PaymentService, error) {
	s := &PaymentService{DB: db, Repo: repo, Gateway: gw, Log: log}

	var err error
	if s.Status.Pending, err = repo.GetStatusIDByName("pending"); err != nil {
		return nil, fmt.Errorf("load transaction statuses: %w", err)
	}
	if s.Status.Paid, err = repo.GetStatusIDByName("paid"); err != nil {
		return nil, fmt.Errorf("load transaction statuses: %w", err)
	}
	if s.Status.Failed, err = repo.GetStatusIDByName("failed"); err != nil {
		return nil, fmt.Errorf("load transaction statuses: %w", err)
	}
	return s, nil
}

// CreatePending persists a pending transaction with a generated idempotent
// code and no order id yet; the order is linked later by Process.
func (s *PaymentService) CreatePending(customerID uint, amount decimal.Decimal, paymentMethodID uint) (*entity.Transaction, error) {
	t := &entity.Transaction{
		CustomerID:          customerID,
		PaymentMethodID:     paymentMethodID,
		Amount:              amount,
		TransactionStatusID: s.Status.Pending,
		TransactionCode:     "TXN-" + uuid.NewString(),
	}
	s.Log.Info("creating pending transaction", "customerId", customerID, "amount", amount)
	if err := s.Repo.CreateTransaction(s.DB, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Process links the transaction to its order and runs one charge attempt.
// No retries; the caller decides what a failed payment means for the order.
func (s *PaymentService) Process(ctx context.Context, transactionID, orderID uint, amount decimal.Decimal) (gateway.ChargeResult, error) {
	s.Log.Info("processing payment", "transactionId", transactionID, "orderId", orderID)

	if err := s.Repo.LinkOrder(s.DB, transactionID, orderID); err != nil {
		return gateway.ChargeResult{}, err
	}

	result, err := s.Gateway.Charge(ctx, amount)
	if err != nil {
		s.Log.Error("payment gateway call failed", "transactionId", transactionID, "err", err)
		if mErr := s.markFailed(transactionID, err.Error()); mErr != nil {
			return gateway.ChargeResult{}, mErr
		}
		return gateway.ChargeResult{Success: false, Err: err.Error()}, nil
	}

	if !result.Success {
		reason := result.Err
		if reason == "" {
			reason = "payment gateway error"
		}
		if err := s.markFailed(transactionID, reason); err != nil {
			return gateway.ChargeResult{}, err
		}
		return result, nil
	}

	return result, s.markPaid(transactionID, result, amount)
}

func (s *PaymentService) markPaid(transactionID uint, result gateway.ChargeResult, amount decimal.Decimal) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.UpdateTransactionStatus(tx, transactionID, s.Status.Paid); err != nil {
			return err
		}
		detail, _ := json.Marshal(map[string]any{
			"gatewayTransactionId": result.Reference,
			"amount":               amount,
		})
		return s.Repo.AddTransactionDetail(tx, &entity.TransactionDetail{
			TransactionID: transactionID,
			Details:       string(detail),
		})
	})
}

func (s *PaymentService) markFailed(transactionID uint, reason string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.UpdateTransactionStatus(tx, transactionID, s.Status.Failed); err != nil {
			return err
		}
		detail, _ := json.Marshal(map[string]any{"error": reason})
		return s.Repo.AddTransactionDetail(tx, &entity.TransactionDetail{
			TransactionID: transactionID,
			Details:       string(detail),
		})
	})
}
