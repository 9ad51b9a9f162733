package services

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/entity"
	"fooddelivery/repository"
	"fooddelivery/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB           *gorm.DB
	UserRepo     *repository.UserRepository
	CustomerRepo *repository.CustomerRepository
	jwtSecret    string
	jwtTTL       time.Duration
}

func NewAuthService(db *gorm.DB, users *repository.UserRepository, customers *repository.CustomerRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, UserRepo: users, CustomerRepo: customers, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a user and, for the customer role, its customer profile.
func (s *AuthService) Register(email, password, name, role string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.UserRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	if role == "" {
		role = "customer"
	}
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(name),
		Role:         role,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if role == "customer" {
			return s.CustomerRepo.Create(tx, &entity.Customer{UserID: user.ID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}

	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.UserRepo.FindByID(userID)
}
