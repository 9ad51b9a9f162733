package repository

import (
	"errors"

	"fooddelivery/entity"

	"gorm.io/gorm"
)

type CustomerRepository struct{ DB *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{DB: db} }

func (r *CustomerRepository) GetByUserID(userID uint) (*entity.Customer, error) {
	var c entity.Customer
	err := r.DB.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(tx *gorm.DB, c *entity.Customer) error {
	return tx.Create(c).Error
}

// AddressBelongsToCustomer checks delivery-address ownership.
func (r *CustomerRepository) AddressBelongsToCustomer(addressID, customerID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Address{}).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *CustomerRepository) GetAddress(addressID uint) (*entity.Address, error) {
	var a entity.Address
	if err := r.DB.First(&a, addressID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *CustomerRepository) CreateAddress(a *entity.Address) error {
	return r.DB.Create(a).Error
}

func (r *CustomerRepository) ListAddresses(customerID uint) ([]entity.Address, error) {
	var out []entity.Address
	err := r.DB.Where("customer_id = ?", customerID).Find(&out).Error
	return out, err
}
