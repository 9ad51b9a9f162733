package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	OrderStatusID uint        `json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	CustomerID uint     `json:"customerId"`
	Customer   Customer `json:"-"`

	DeliveryAddressID uint    `json:"deliveryAddressId"`
	DeliveryAddress   Address `json:"-"`

	Instructions string `json:"instructions"`

	// set by dispatch once a driver takes the order
	DriverID *uint `json:"driverId,omitempty"`

	TotalItems  int             `json:"totalItems"`
	ItemsAmount decimal.Decimal `json:"itemsAmount" gorm:"type:decimal(10,2)"`
	DeliveryFee decimal.Decimal `json:"deliveryFee" gorm:"type:decimal(10,2)"`
	ServiceFee  decimal.Decimal `json:"serviceFee" gorm:"type:decimal(10,2)"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:decimal(10,2)"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2)"`

	PlacedAt    time.Time  `json:"placedAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`

	// Cancellation metadata; zero values until the order is cancelled.
	CancelledBy        string          `json:"cancelledBy,omitempty"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	RefundAmount       decimal.Decimal `json:"refundAmount" gorm:"type:decimal(10,2)"`
	RefundStatus       string          `json:"refundStatus,omitempty"` // NONE | PROCESSED | PENDING
	RefundID           string          `json:"refundId,omitempty"`

	Items        []OrderItem   `json:"-"`
	Transactions []Transaction `json:"-"`
}
