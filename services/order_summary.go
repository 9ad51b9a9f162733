package services

import (
	"fmt"
	"time"

	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"

	"github.com/shopspring/decimal"
)

// SummaryCacheTTL is how long an order summary stays cached. Any write to an
// order invalidates its entry immediately.
const SummaryCacheTTL = 5 * time.Minute

func summaryCacheKey(orderID uint) string {
	return fmt.Sprintf("order_summary_%d", orderID)
}

func (s *OrderService) invalidateSummary(orderID uint) {
	if s.Cache != nil {
		s.Cache.Delete(summaryCacheKey(orderID))
	}
}

type SummaryPricing struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	ServiceFee  decimal.Decimal `json:"serviceFee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

type CancellationInfo struct {
	CancelledBy  string          `json:"cancelledBy"`
	Reason       string          `json:"reason"`
	CancelledAt  *time.Time      `json:"cancelledAt"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	RefundStatus string          `json:"refundStatus"`
	RefundID     string          `json:"refundId,omitempty"`
}

type OrderSummary struct {
	OrderID      uint               `json:"orderId"`
	Status       string             `json:"status"`
	PlacedAt     time.Time          `json:"placedAt"`
	Restaurant   RestaurantView     `json:"restaurant"`
	Items        []entity.OrderItem `json:"items"`
	Pricing      SummaryPricing     `json:"pricing"`
	Cancellation *CancellationInfo  `json:"cancellation,omitempty"`
}

// GetOrderSummary returns an enriched view of one order, served from the TTL
// cache when possible.
func (s *OrderService) GetOrderSummary(orderID uint) (*OrderSummary, error) {
	key := summaryCacheKey(orderID)
	if s.Cache != nil {
		if v, found := s.Cache.Get(key); found {
			return v.(*OrderSummary), nil
		}
	}

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}

	rest, err := s.RestRepo.GetByID(order.RestaurantID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(orderID)
	if err != nil {
		return nil, err
	}

	summary := &OrderSummary{
		OrderID:  order.ID,
		Status:   order.OrderStatus.StatusName,
		PlacedAt: order.PlacedAt,
		Items:    items,
		Pricing: SummaryPricing{
			Subtotal:    order.ItemsAmount,
			DeliveryFee: order.DeliveryFee,
			ServiceFee:  order.ServiceFee,
			Discount:    order.Discount,
			Total:       order.TotalAmount,
		},
	}
	if rest != nil {
		summary.Restaurant = RestaurantView{ID: rest.ID, Name: rest.Name}
	}
	if order.CancelledAt != nil {
		summary.Cancellation = &CancellationInfo{
			CancelledBy:  order.CancelledBy,
			Reason:       order.CancellationReason,
			CancelledAt:  order.CancelledAt,
			RefundAmount: order.RefundAmount,
			RefundStatus: order.RefundStatus,
			RefundID:     order.RefundID,
		}
	}

	if s.Cache != nil {
		s.Cache.Set(key, summary, SummaryCacheTTL)
	}
	return summary, nil
}
