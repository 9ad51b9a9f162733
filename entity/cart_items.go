package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem snapshots the unit price at add time; later menu price changes do
// not affect lines already in the cart.
type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	RestaurantID uint `json:"restaurantId"`

	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2)"`
	Note      string          `json:"note"`
}

// LineTotal is qty x unit price, unrounded.
func (ci *CartItem) LineTotal() decimal.Decimal {
	return ci.UnitPrice.Mul(decimal.NewFromInt(int64(ci.Qty)))
}
