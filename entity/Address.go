package entity

import (
	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	CustomerID uint     `json:"customerId"`
	Customer   Customer `json:"-"`

	Label   string `json:"label"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}
