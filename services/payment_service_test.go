package services_test

import (
	"context"
	"strings"
	"testing"

	"fooddelivery/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentCreatePending(t *testing.T) {
	env := newTestEnv(t)

	txn, err := env.Payments.CreatePending(env.Fix.Customer.ID, dec("16.95"), 1)
	require.NoError(t, err)

	assert.NotZero(t, txn.ID)
	assert.True(t, strings.HasPrefix(txn.TransactionCode, "TXN-"))
	assert.Nil(t, txn.OrderID, "order is linked later, not at creation")
	assert.Equal(t, env.Payments.Status.Pending, txn.TransactionStatusID)

	t.Run("codes are unique per transaction", func(t *testing.T) {
		other, err := env.Payments.CreatePending(env.Fix.Customer.ID, dec("5.00"), 1)
		require.NoError(t, err)
		assert.NotEqual(t, txn.TransactionCode, other.TransactionCode)
	})
}

func TestPaymentProcess(t *testing.T) {
	t.Run("successful charge marks the transaction paid", func(t *testing.T) {
		env := newTestEnv(t)
		order := env.Fix.placedOrder(t, "pending", dec("16.95"))
		txn, err := env.Payments.CreatePending(env.Fix.Customer.ID, dec("16.95"), 1)
		require.NoError(t, err)

		result, err := env.Payments.Process(context.Background(), txn.ID, order.ID, dec("16.95"))
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 1, env.Gateway.chargeCalls)

		var stored entity.Transaction
		require.NoError(t, env.DB.First(&stored, txn.ID).Error)
		assert.Equal(t, env.Payments.Status.Paid, stored.TransactionStatusID)
		require.NotNil(t, stored.OrderID)
		assert.Equal(t, order.ID, *stored.OrderID)

		var detail entity.TransactionDetail
		require.NoError(t, env.DB.Where("transaction_id = ?", txn.ID).First(&detail).Error)
		assert.Contains(t, detail.Details, "gatewayTransactionId")
	})

	t.Run("declined charge marks the transaction failed", func(t *testing.T) {
		env := newTestEnv(t)
		env.Gateway.failCharge = true
		order := env.Fix.placedOrder(t, "pending", dec("16.95"))
		txn, err := env.Payments.CreatePending(env.Fix.Customer.ID, dec("16.95"), 1)
		require.NoError(t, err)

		result, err := env.Payments.Process(context.Background(), txn.ID, order.ID, dec("16.95"))
		require.NoError(t, err, "a declined card is a result, not an error")
		assert.False(t, result.Success)

		var stored entity.Transaction
		require.NoError(t, env.DB.First(&stored, txn.ID).Error)
		assert.Equal(t, env.Payments.Status.Failed, stored.TransactionStatusID)

		var detail entity.TransactionDetail
		require.NoError(t, env.DB.Where("transaction_id = ?", txn.ID).First(&detail).Error)
		assert.Contains(t, detail.Details, "card declined")
	})
}
