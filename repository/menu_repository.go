package repository

import (
	"errors"

	"fooddelivery/entity"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) GetItem(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CountActiveItems counts how many of the given menu items still exist on an
// active menu of the restaurant. Used to re-validate cart snapshots at order
// write time.
func (r *MenuRepository) CountActiveItems(tx *gorm.DB, itemIDs []uint, restID uint) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	var cnt int64
	err := tx.Model(&entity.MenuItem{}).
		Joins("JOIN menus ON menus.id = menu_items.menu_id").
		Where("menu_items.id IN ? AND menu_items.restaurant_id = ? AND menus.is_active = ?", itemIDs, restID, true).
		Count(&cnt).Error
	return cnt, err
}

func (r *MenuRepository) ListForRestaurant(restID uint) ([]entity.Menu, error) {
	var out []entity.Menu
	err := r.DB.Preload("Items").Where("restaurant_id = ?", restID).Find(&out).Error
	return out, err
}
