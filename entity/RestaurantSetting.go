package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RestaurantSetting holds the fee configuration. An order cannot be accepted
// for a restaurant that has no settings row.
type RestaurantSetting struct {
	gorm.Model
	RestaurantID uint `json:"restaurantId" gorm:"uniqueIndex"`

	ServiceFeePercentage  decimal.Decimal `json:"serviceFeePercentage" gorm:"type:decimal(5,2)"`
	DeliveryFeePercentage decimal.Decimal `json:"deliveryFeePercentage" gorm:"type:decimal(5,2)"`
}
