package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	MenuID uint `json:"menuId"`
	Menu   Menu `json:"-"`

	RestaurantID uint `json:"restaurantId"`

	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	IsAvailable bool            `json:"isAvailable"`
}
