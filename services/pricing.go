package services

import (
	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// OrderTotals is the fee calculator's output. All monetary fields are rounded
// to 2 decimals; rounding happens only here, never mid-calculation.
type OrderTotals struct {
	TotalItems  int             `json:"totalItems"`
	ItemsAmount decimal.Decimal `json:"itemsAmount"`
	ServiceFee  decimal.Decimal `json:"serviceFee"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Discount    decimal.Decimal `json:"discount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// ComputeOrderTotals derives fees and totals from the cart snapshot and the
// restaurant's fee settings. A restaurant without a settings row cannot
// accept orders.
func ComputeOrderTotals(items []entity.CartItem, setting *entity.RestaurantSetting, discount decimal.Decimal) (*OrderTotals, error) {
	if setting == nil {
		return nil, apperr.Precondition("restaurant has no fee settings")
	}

	itemsAmount := decimal.Zero
	totalItems := 0
	for _, it := range items {
		itemsAmount = itemsAmount.Add(it.LineTotal())
		totalItems += it.Qty
	}

	serviceFee := itemsAmount.Mul(setting.ServiceFeePercentage).Div(hundred)
	deliveryFee := itemsAmount.Mul(setting.DeliveryFeePercentage).Div(hundred)
	total := itemsAmount.Add(serviceFee).Add(deliveryFee).Sub(discount)

	return &OrderTotals{
		TotalItems:  totalItems,
		ItemsAmount: itemsAmount.Round(2),
		ServiceFee:  serviceFee.Round(2),
		DeliveryFee: deliveryFee.Round(2),
		Discount:    discount.Round(2),
		TotalAmount: total.Round(2),
	}, nil
}
