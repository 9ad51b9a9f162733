package services

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"
	"fooddelivery/pkg/gateway"
	"fooddelivery/repository"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService composes cart validation, fee calculation, payment handling
// and the order repository into the end-to-end place-order operation.
type OrderService struct {
	DB           *gorm.DB
	Repo         *repository.OrderRepository
	CartRepo     *repository.CartRepository
	CustomerRepo *repository.CustomerRepository
	RestRepo     *repository.RestaurantRepository
	MenuRepo     *repository.MenuRepository
	Payments     *PaymentService
	Refunds      gateway.RefundProvider
	Notifier     gateway.Notifier
	Cache        *cache.Cache
	Log          *slog.Logger

	Status *StatusIDs
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	customerRepo *repository.CustomerRepository,
	restRepo *repository.RestaurantRepository,
	menuRepo *repository.MenuRepository,
	payments *PaymentService,
	refunds gateway.RefundProvider,
	notifier gateway.Notifier,
	summaryCache *cache.Cache,
	log *slog.Logger,
) (*OrderService, error) {
	status, err := LoadStatusIDs(repo)
	if err != nil {
		return nil, err
	}
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, CustomerRepo: customerRepo,
		RestRepo: restRepo, MenuRepo: menuRepo, Payments: payments,
		Refunds: refunds, Notifier: notifier, Cache: summaryCache, Log: log,
		Status: status,
	}, nil
}

// ----- DTOs -----

type PlaceOrderReq struct {
	DeliveryAddressID uint   `json:"deliveryAddressId" binding:"required"`
	PaymentMethodID   uint   `json:"paymentMethodId" binding:"required"`
	Instructions      string `json:"instructions"`
}

type PlacedItemView struct {
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	Qty        int             `json:"qty"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Total      decimal.Decimal `json:"total"`
}

type RestaurantView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AddressView struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Line1 string `json:"line1"`
	City  string `json:"city"`
}

type OrderPlacementResult struct {
	OrderID    uint             `json:"orderId"`
	Status     string           `json:"status"`
	Totals     OrderTotals      `json:"totals"`
	Restaurant RestaurantView   `json:"restaurant"`
	Address    AddressView      `json:"deliveryAddress"`
	Items      []PlacedItemView `json:"items"`
}

// PlaceOrder converts the customer's cart into a confirmed order:
// validation, fee calculation, payment, persistence. Any failure before
// payment rolls back every write made here. A payment failure leaves the
// order in pending for manual reconciliation; it is not auto-cancelled.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, req *PlaceOrderReq) (*OrderPlacementResult, error) {
	// 1. resolve customer
	customer, err := s.CustomerRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperr.NotFound("customer not found")
	}

	// 2. delivery address must belong to the customer
	owned, err := s.CustomerRepo.AddressBelongsToCustomer(req.DeliveryAddressID, customer.ID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.Forbidden("access denied")
	}

	// 3. validate cart
	cart, err := s.CartRepo.GetCartWithItems(customer.ID)
	if err != nil {
		return nil, err
	}
	items, restaurantID, err := ValidateCartForOrder(cart)
	if err != nil {
		return nil, err
	}

	// 4. restaurant must be active and open
	rest, err := s.RestRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if rest == nil || !rest.IsActive {
		return nil, apperr.Precondition("restaurant is not available")
	}
	if rest.Status != "open" {
		return nil, apperr.Precondition("restaurant is not open")
	}

	// 5. totals
	setting, err := s.RestRepo.GetSetting(restaurantID)
	if err != nil {
		return nil, err
	}
	totals, err := ComputeOrderTotals(items, setting, decimal.Zero)
	if err != nil {
		return nil, err
	}

	// 6. pending payment transaction, created before the order exists
	txn, err := s.Payments.CreatePending(customer.ID, totals.TotalAmount, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	// 7. persist order + items atomically; clear the cart in the same scope
	order := entity.Order{
		OrderStatusID:     s.Status.ID(StatusPending),
		RestaurantID:      restaurantID,
		CustomerID:        customer.ID,
		DeliveryAddressID: req.DeliveryAddressID,
		Instructions:      req.Instructions,
		TotalItems:        totals.TotalItems,
		ItemsAmount:       totals.ItemsAmount,
		DeliveryFee:       totals.DeliveryFee,
		ServiceFee:        totals.ServiceFee,
		Discount:          totals.Discount,
		TotalAmount:       totals.TotalAmount,
		PlacedAt:          time.Now(),
	}
	orderItems := make([]entity.OrderItem, 0, len(items))
	itemIDs := make([]uint, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, entity.OrderItem{
			MenuItemID: it.MenuItemID,
			Qty:        it.Qty,
			UnitPrice:  it.UnitPrice,
			Total:      it.LineTotal().Round(2),
		})
		itemIDs = append(itemIDs, it.MenuItemID)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// the snapshot was read and priced outside this transaction; a
		// concurrent cart mutation (remove, clear, re-add) invalidates it
		current, err := s.CartRepo.GetCartLines(tx, customer.ID)
		if err != nil {
			return err
		}
		if !CartLinesMatch(items, current) {
			return apperr.Precondition("cart changed while placing the order")
		}

		// cart snapshots can outlive the menu; re-validate at write time
		cnt, err := s.MenuRepo.CountActiveItems(tx, itemIDs, restaurantID)
		if err != nil {
			return err
		}
		if cnt != int64(len(uniqueIDs(itemIDs))) {
			return apperr.Inconsistent("cart references a menu item that no longer exists")
		}

		if err := s.Repo.CreateOrderWithItems(tx, &order, orderItems); err != nil {
			return err
		}
		return s.CartRepo.ClearCart(tx, customer.ID)
	})
	if err != nil {
		if apperr.IsCode(err, apperr.CodeInconsistent) {
			s.Log.Error("order placement inconsistency",
				"customerId", customer.ID, "restaurantId", restaurantID, "err", err)
		}
		return nil, err
	}

	// 8. one charge attempt against the created order
	result, err := s.Payments.Process(ctx, txn.ID, order.ID, totals.TotalAmount)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		// order stays pending; reconciliation is manual
		s.Log.Warn("payment failed for placed order",
			"orderId", order.ID, "transactionId", txn.ID, "reason", result.Err)
		return nil, apperr.PaymentFailed("payment was not accepted")
	}

	// 9. payment succeeded: pending -> confirmed
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, order.ID,
			s.Status.ID(StatusPending), s.Status.ID(StatusConfirmed))
		if err != nil {
			return err
		}
		if affected == 0 {
			return GuardTransitionError(StatusPending, StatusConfirmed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateSummary(order.ID)

	// 10. response view
	address, err := s.CustomerRepo.GetAddress(req.DeliveryAddressID)
	if err != nil {
		return nil, err
	}
	views := make([]PlacedItemView, 0, len(items))
	for i, it := range items {
		views = append(views, PlacedItemView{
			MenuItemID: it.MenuItemID,
			Name:       it.MenuItem.Name,
			Qty:        it.Qty,
			UnitPrice:  it.UnitPrice,
			Total:      orderItems[i].Total,
		})
	}
	return &OrderPlacementResult{
		OrderID:    order.ID,
		Status:     StatusConfirmed,
		Totals:     *totals,
		Restaurant: RestaurantView{ID: rest.ID, Name: rest.Name},
		Address:    AddressView{ID: address.ID, Label: address.Label, Line1: address.Line1, City: address.City},
		Items:      views,
	}, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ----- Listings -----

func (s *OrderService) ListForCustomer(userID uint, limit int) ([]repository.OrderSummaryRow, error) {
	customer, err := s.CustomerRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperr.NotFound("customer not found")
	}
	return s.Repo.ListOrdersForCustomer(customer.ID, limit)
}

type RestaurantOrderList struct {
	Items []entity.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (s *OrderService) ListForRestaurant(userID, restID uint, statusID *uint, page, limit int) (*RestaurantOrderList, error) {
	ok, err := s.RestRepo.IsOwnedBy(restID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("access denied")
	}

	items, total, err := s.Repo.ListOrdersForRestaurant(restID, statusID, page, limit)
	if err != nil {
		return nil, err
	}
	return &RestaurantOrderList{Items: items, Total: total, Page: page, Limit: limit}, nil
}
