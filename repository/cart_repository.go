package repository

import (
	"errors"

	"fooddelivery/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the customer's cart, or an empty unsaved cart so
// callers never see a not-found error for a cart that simply doesn't exist yet.
func (r *CartRepository) GetCartWithItems(customerID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("customer_id = ?", customerID).
		Preload("Items").
		Preload("Items.MenuItem").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{CustomerID: customerID}, nil
	}
	return &c, err
}

// GetOrCreateCart creates the cart lazily on first use, locked inside tx so
// concurrent adds for the same customer serialize on the unique index.
func (r *CartRepository) GetOrCreateCart(tx *gorm.DB, customerID, restaurantID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("customer_id = ?", customerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{CustomerID: customerID, RestaurantID: restaurantID}
		if err := tx.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

// GetCartLines reads the customer's cart rows inside tx, without preloads.
// Used to re-check a cart snapshot at order write time.
func (r *CartRepository) GetCartLines(tx *gorm.DB, customerID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.
		Where("cart_id IN (SELECT id FROM carts WHERE customer_id = ?)", customerID).
		Find(&items).Error
	return items, err
}

func (r *CartRepository) SetRestaurant(tx *gorm.DB, cartID, restaurantID uint) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).
		Update("restaurant_id", restaurantID).Error
}

// UpsertItem merges same item + note lines, otherwise inserts a new line.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID uint, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND menu_item_id = ? AND note = ?", cartID, row.MenuItemID, row.Note).
		First(&exist).Error
	if err == nil {
		exist.Qty += row.Qty
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.CartID = cartID
	return tx.Create(row).Error
}

func (r *CartRepository) UpdateQty(tx *gorm.DB, customerID, itemID uint, qty int) error {
	if qty <= 0 {
		return r.RemoveItem(tx, customerID, itemID)
	}
	return tx.Exec(`
		UPDATE cart_items
		   SET qty = ?
		 WHERE id = ?
		   AND cart_id IN (SELECT id FROM carts WHERE customer_id = ?)
	`, qty, itemID, customerID).Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, customerID, itemID uint) error {
	if err := tx.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE customer_id = ?)", itemID, customerID).
		Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	// emptied cart unlocks its restaurant
	return tx.Exec(`
		UPDATE carts SET restaurant_id = 0
		 WHERE customer_id = ?
		   AND NOT EXISTS (SELECT 1 FROM cart_items ci WHERE ci.cart_id = carts.id AND ci.deleted_at IS NULL)
	`, customerID).Error
}

// ClearCart removes all lines and resets the restaurant lock. The cart row
// itself survives; carts are cleared, never deleted.
func (r *CartRepository) ClearCart(tx *gorm.DB, customerID uint) error {
	var c entity.Cart
	if err := tx.Where("customer_id = ?", customerID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := tx.Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Cart{}).Where("id = ?", c.ID).Update("restaurant_id", 0).Error
}
