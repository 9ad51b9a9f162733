package entity

import (
	"gorm.io/gorm"
)

// TransactionDetail records one gateway interaction (success payload or
// failure reason) as a JSON blob.
type TransactionDetail struct {
	gorm.Model
	TransactionID uint   `json:"transactionId"`
	Details       string `json:"details"`
}
