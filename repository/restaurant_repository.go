package repository

import (
	"errors"

	"fooddelivery/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) GetByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.DB.Preload("Setting").First(&rest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) GetByUserID(userID uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.DB.Where("user_id = ?", userID).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) IsOwnedBy(restID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND user_id = ?", restID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *RestaurantRepository) List(onlyActive bool) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	q := r.DB.Model(&entity.Restaurant{})
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) GetSetting(restID uint) (*entity.RestaurantSetting, error) {
	var s entity.RestaurantSetting
	err := r.DB.Where("restaurant_id = ?", restID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
