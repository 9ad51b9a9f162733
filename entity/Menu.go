package entity

import (
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`

	Items []MenuItem `json:"items,omitempty"`
}
