package configs

import (
	"log"

	"fooddelivery/entity"

	"golang.org/x/crypto/bcrypt"
)

func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         "admin",
	}
	return db.Create(&admin).Error
}

// SeedLookups inserts the fixed status and method rows. Order statuses are
// seeded in lifecycle order so their ids stay stable across environments.
func SeedLookups() error {
	db := DB()

	for _, name := range []string{
		"pending", "confirmed", "preparing", "ready_for_pickup",
		"out_for_delivery", "delivered", "cancelled", "refunded",
	} {
		db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: name})
	}

	for _, name := range []string{"pending", "paid", "failed"} {
		db.FirstOrCreate(&entity.TransactionStatus{}, entity.TransactionStatus{StatusName: name})
	}

	db.FirstOrCreate(&entity.PaymentMethod{}, entity.PaymentMethod{MethodName: "Credit Card"})
	db.FirstOrCreate(&entity.PaymentMethod{}, entity.PaymentMethod{MethodName: "Cash on Delivery"})

	log.Println("lookup tables seeded")
	return nil
}
