package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"` // open | closed
	IsActive bool   `json:"isActive"`

	UserID uint `json:"userId"` // owner (users.id)
	User   User `json:"-"`

	Setting *RestaurantSetting `json:"setting,omitempty"`

	Menus  []Menu  `json:"-"`
	Orders []Order `json:"-"`
}
