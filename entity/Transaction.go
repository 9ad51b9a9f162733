package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is one payment attempt. It is created before the order exists
// (OrderID nil) and linked once the order row is written.
type Transaction struct {
	gorm.Model
	CustomerID uint     `json:"customerId"`
	Customer   Customer `json:"-"`

	PaymentMethodID uint          `json:"paymentMethodId"`
	PaymentMethod   PaymentMethod `json:"-"`

	OrderID *uint  `json:"orderId,omitempty"`
	Order   *Order `json:"-"`

	Amount decimal.Decimal `json:"amount" gorm:"type:decimal(10,2)"`

	TransactionStatusID uint              `json:"transactionStatusId"`
	TransactionStatus   TransactionStatus `json:"-"`

	TransactionCode string `json:"transactionCode" gorm:"uniqueIndex"`

	Details []TransactionDetail `json:"-"`
}
