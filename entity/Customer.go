package entity

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model
	UserID uint `json:"userId" gorm:"uniqueIndex"`
	User   User `json:"-"`

	Addresses []Address `json:"-"`
	Cart      *Cart     `json:"-"`
	Orders    []Order   `json:"-"`
}
