package services

import (
	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"
	"fooddelivery/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	DB           *gorm.DB
	CartRepo     *repository.CartRepository
	MenuRepo     *repository.MenuRepository
	CustomerRepo *repository.CustomerRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository, cur *repository.CustomerRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr, CustomerRepo: cur}
}

type AddToCartIn struct {
	MenuItemID uint   `json:"menuItemId" binding:"required"`
	Qty        int    `json:"qty" binding:"min=1"`
	Note       string `json:"note"`
}

func (s *CartService) customerID(userID uint) (uint, error) {
	customer, err := s.CustomerRepo.GetByUserID(userID)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, apperr.NotFound("customer not found")
	}
	return customer.ID, nil
}

func (s *CartService) Get(userID uint) (*entity.Cart, decimal.Decimal, error) {
	custID, err := s.customerID(userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	c, err := s.CartRepo.GetCartWithItems(custID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	subtotal := decimal.Zero
	for _, it := range c.Items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	return c, subtotal.Round(2), nil
}

// Add puts a menu item into the cart, snapshotting its current price.
// Adding from a different restaurant than the cart is locked to clears the
// cart first; the clear and the add run in one transaction.
func (s *CartService) Add(userID uint, in *AddToCartIn) error {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	custID, err := s.customerID(userID)
	if err != nil {
		return err
	}

	m, err := s.MenuRepo.GetItem(in.MenuItemID)
	if err != nil {
		return err
	}
	if m == nil {
		return apperr.NotFound("menu item not found")
	}
	if !m.IsAvailable {
		return apperr.Precondition("menu item is not available")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.GetOrCreateCart(tx, custID, m.RestaurantID)
		if err != nil {
			return err
		}

		// switching restaurants resets the cart
		if c.RestaurantID != 0 && c.RestaurantID != m.RestaurantID {
			if err := s.CartRepo.ClearCart(tx, custID); err != nil {
				return err
			}
			c.RestaurantID = 0
		}
		if c.RestaurantID == 0 {
			if err := s.CartRepo.SetRestaurant(tx, c.ID, m.RestaurantID); err != nil {
				return err
			}
		}

		line := &entity.CartItem{
			MenuItemID:   m.ID,
			RestaurantID: m.RestaurantID,
			Qty:          in.Qty,
			UnitPrice:    m.Price,
			Note:         in.Note,
		}
		return s.CartRepo.UpsertItem(tx, c.ID, line)
	})
}

func (s *CartService) UpdateQty(userID, itemID uint, qty int) error {
	custID, err := s.customerID(userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpdateQty(tx, custID, itemID, qty)
	})
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	custID, err := s.customerID(userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, custID, itemID)
	})
}

func (s *CartService) Clear(userID uint) error {
	custID, err := s.customerID(userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearCart(tx, custID)
	})
}
