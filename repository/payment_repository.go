package repository

import (
	"errors"

	"fooddelivery/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct{ DB *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{DB: db} }

func (r *PaymentRepository) CreateTransaction(tx *gorm.DB, t *entity.Transaction) error {
	return tx.Create(t).Error
}

// LatestForOrder returns the most recent transaction linked to an order, or
// nil,nil when the order has none. Refund processing uses its code as the
// gateway payment reference.
func (r *PaymentRepository) LatestForOrder(orderID uint) (*entity.Transaction, error) {
	var t entity.Transaction
	err := r.DB.Where("order_id = ?", orderID).Order("id DESC").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PaymentRepository) LinkOrder(tx *gorm.DB, transactionID, orderID uint) error {
	return tx.Model(&entity.Transaction{}).Where("id = ?", transactionID).
		Update("order_id", orderID).Error
}

func (r *PaymentRepository) UpdateTransactionStatus(tx *gorm.DB, transactionID, statusID uint) error {
	return tx.Model(&entity.Transaction{}).Where("id = ?", transactionID).
		Update("transaction_status_id", statusID).Error
}

func (r *PaymentRepository) AddTransactionDetail(tx *gorm.DB, d *entity.TransactionDetail) error {
	return tx.Create(d).Error
}

func (r *PaymentRepository) GetStatusIDByName(name string) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.Model(&entity.TransactionStatus{}).
		Select("id").Where("status_name = ?", name).First(&row).Error
	return row.ID, err
}
