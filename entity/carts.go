package entity

import (
	"gorm.io/gorm"
)

// Cart is the per-customer staging area. RestaurantID locks the cart to one
// restaurant; it is reset to 0 when the cart is cleared or emptied.
type Cart struct {
	gorm.Model
	CustomerID uint     `json:"customerId" gorm:"uniqueIndex"`
	Customer   Customer `json:"-"`

	RestaurantID uint `json:"restaurantId"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
