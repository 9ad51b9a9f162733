package repository

import (
	"errors"
	"time"

	"fooddelivery/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository is the persistence boundary for orders and order items.
// All status mutations go through guarded updates so two concurrent requests
// can never both win the same transition.
type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// ---------------- Orders ----------------

// CreateOrderWithItems writes the order and all its items in one shot.
// Callers run it inside a transaction.
func (r *OrderRepository) CreateOrderWithItems(tx *gorm.DB, o *entity.Order, items []entity.OrderItem) error {
	if err := tx.Create(o).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = o.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("OrderStatus").First(&o, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderLocked loads the order with a row lock inside tx. Reads that feed
// a status decision must use this so concurrent cancellations serialize.
// SQLite has no FOR UPDATE; its single-writer transactions give the same
// guarantee, so the clause is only added on other dialects.
func (r *OrderRepository) GetOrderLocked(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var o entity.Order
	err := q.Preload("OrderStatus").
		First(&o, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummaryRow struct {
	ID            uint            `json:"id"`
	RestaurantID  uint            `json:"restaurantId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalItems    int             `json:"totalItems"`
	OrderStatusID uint            `json:"orderStatusId"`
	PlacedAt      time.Time       `json:"placedAt"`
}

func (r *OrderRepository) ListOrdersForCustomer(customerID uint, limit int) ([]OrderSummaryRow, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummaryRow
	err := r.DB.Model(&entity.Order{}).
		Select("id, restaurant_id, total_amount, total_items, order_status_id, placed_at").
		Where("customer_id = ?", customerID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) ListOrdersForRestaurant(restID uint, statusID *uint, page, limit int) ([]entity.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	q := r.DB.Model(&entity.Order{}).Where("restaurant_id = ?", restID)
	if statusID != nil && *statusID != 0 {
		q = q.Where("order_status_id = ?", *statusID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entity.Order
	err := q.Preload("OrderStatus").
		Order("id DESC").Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

// UpdateStatusGuard flips the status only if the order is still in fromID.
// Returns rows affected; 0 means another request won the transition.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID, fromID, toID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ?", orderID, fromID).
		Update("order_status_id", toID)
	return res.RowsAffected, res.Error
}

// UpdateOrder applies a partial update atomically.
func (r *OrderRepository) UpdateOrder(tx *gorm.DB, orderID uint, fields map[string]any) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(fields).Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// ---------------- Lookups ----------------

func (r *OrderRepository) GetStatusIDByName(name string) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.Model(&entity.OrderStatus{}).
		Select("id").Where("status_name = ?", name).First(&row).Error
	return row.ID, err
}
