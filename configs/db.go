package configs

import (
	"fooddelivery/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{}, &entity.Customer{}, &entity.Address{},
		&entity.Restaurant{}, &entity.RestaurantSetting{},
		&entity.Menu{}, &entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{},
		&entity.PaymentMethod{}, &entity.TransactionStatus{},
		&entity.Transaction{}, &entity.TransactionDetail{},
	)
}
