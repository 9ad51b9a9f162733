package services_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fooddelivery/entity"
	"fooddelivery/pkg/gateway"
	"fooddelivery/repository"
	"fooddelivery/services"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Customer{}, &entity.Address{},
		&entity.Restaurant{}, &entity.RestaurantSetting{},
		&entity.Menu{}, &entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{},
		&entity.PaymentMethod{}, &entity.TransactionStatus{},
		&entity.Transaction{}, &entity.TransactionDetail{},
	))

	for _, name := range []string{
		"pending", "confirmed", "preparing", "ready_for_pickup",
		"out_for_delivery", "delivered", "cancelled", "refunded",
	} {
		require.NoError(t, db.Create(&entity.OrderStatus{StatusName: name}).Error)
	}
	for _, name := range []string{"pending", "paid", "failed"} {
		require.NoError(t, db.Create(&entity.TransactionStatus{StatusName: name}).Error)
	}
	require.NoError(t, db.Create(&entity.PaymentMethod{MethodName: "Credit Card"}).Error)

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ----- gateway stubs -----

type stubGateway struct {
	mu          sync.Mutex
	failCharge  bool
	failRefund  bool
	chargeCalls int
	refundCalls int
	refunded    decimal.Decimal
}

func (g *stubGateway) Charge(_ context.Context, amount decimal.Decimal) (gateway.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chargeCalls++
	if g.failCharge {
		return gateway.ChargeResult{Success: false, Err: "card declined"}, nil
	}
	return gateway.ChargeResult{Success: true, Reference: "GW-TEST"}, nil
}

func (g *stubGateway) Refund(_ context.Context, _ uint, _ string, amount decimal.Decimal) (gateway.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refundCalls++
	g.refunded = amount
	if g.failRefund {
		return gateway.RefundResult{Success: false, Err: "provider unavailable"}, nil
	}
	return gateway.RefundResult{Success: true, RefundID: "RF-TEST"}, nil
}

type recordNotifier struct {
	mu        sync.Mutex
	driver    []map[string]any
	customer  []map[string]any
	support   []map[string]any
	analytics []string
}

func (n *recordNotifier) NotifyDriver(_ context.Context, _ uint, payload map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.driver = append(n.driver, payload)
	return nil
}

func (n *recordNotifier) NotifyCustomer(_ context.Context, _ uint, payload map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.customer = append(n.customer, payload)
	return nil
}

func (n *recordNotifier) NotifySupport(_ context.Context, payload map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.support = append(n.support, payload)
	return nil
}

func (n *recordNotifier) RecordEvent(_ context.Context, event string, _ map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.analytics = append(n.analytics, event)
	return nil
}

// ----- fixtures -----

type fixtures struct {
	DB         *gorm.DB
	User       entity.User
	Customer   entity.Customer
	Address    entity.Address
	Restaurant entity.Restaurant
	Menu       entity.Menu
	Burger     entity.MenuItem // 10.00
	Fries      entity.MenuItem // 5.00
}

func newFixtures(t *testing.T, db *gorm.DB) *fixtures {
	t.Helper()
	f := &fixtures{DB: db}

	f.User = entity.User{Email: "alice@example.com", Name: "Alice", Role: "customer", PasswordHash: "x"}
	require.NoError(t, db.Create(&f.User).Error)
	f.Customer = entity.Customer{UserID: f.User.ID}
	require.NoError(t, db.Create(&f.Customer).Error)
	f.Address = entity.Address{CustomerID: f.Customer.ID, Label: "home", Line1: "1 Main St", City: "Springfield"}
	require.NoError(t, db.Create(&f.Address).Error)

	owner := entity.User{Email: "owner@example.com", Name: "Owner", Role: "restaurant", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	f.Restaurant = entity.Restaurant{Name: "Pasta Place", Status: "open", IsActive: true, UserID: owner.ID}
	require.NoError(t, db.Create(&f.Restaurant).Error)
	setting := entity.RestaurantSetting{
		RestaurantID:          f.Restaurant.ID,
		ServiceFeePercentage:  decimal.NewFromInt(5),
		DeliveryFeePercentage: decimal.NewFromInt(8),
	}
	require.NoError(t, db.Create(&setting).Error)

	f.Menu = entity.Menu{RestaurantID: f.Restaurant.ID, Name: "Mains", IsActive: true}
	require.NoError(t, db.Create(&f.Menu).Error)
	f.Burger = entity.MenuItem{
		MenuID: f.Menu.ID, RestaurantID: f.Restaurant.ID,
		Name: "Burger", Price: decimal.NewFromInt(10), IsAvailable: true,
	}
	require.NoError(t, db.Create(&f.Burger).Error)
	f.Fries = entity.MenuItem{
		MenuID: f.Menu.ID, RestaurantID: f.Restaurant.ID,
		Name: "Fries", Price: decimal.NewFromInt(5), IsAvailable: true,
	}
	require.NoError(t, db.Create(&f.Fries).Error)

	return f
}

// fillCart puts the standard two items (10.00 + 5.00, qty 1 each) into the
// customer's cart.
func (f *fixtures) fillCart(t *testing.T) {
	t.Helper()
	cart := entity.Cart{CustomerID: f.Customer.ID, RestaurantID: f.Restaurant.ID}
	require.NoError(t, f.DB.Create(&cart).Error)
	for _, mi := range []entity.MenuItem{f.Burger, f.Fries} {
		item := entity.CartItem{
			CartID: cart.ID, MenuItemID: mi.ID, RestaurantID: f.Restaurant.ID,
			Qty: 1, UnitPrice: mi.Price,
		}
		require.NoError(t, f.DB.Create(&item).Error)
	}
}

// placedOrder seeds an order directly in the given status.
func (f *fixtures) placedOrder(t *testing.T, statusName string, total decimal.Decimal) *entity.Order {
	t.Helper()
	var status entity.OrderStatus
	require.NoError(t, f.DB.Where("status_name = ?", statusName).First(&status).Error)

	o := entity.Order{
		OrderStatusID:     status.ID,
		RestaurantID:      f.Restaurant.ID,
		CustomerID:        f.Customer.ID,
		DeliveryAddressID: f.Address.ID,
		TotalItems:        2,
		ItemsAmount:       total,
		TotalAmount:       total,
		PlacedAt:          time.Now(),
	}
	require.NoError(t, f.DB.Create(&o).Error)
	return &o
}

// ----- service wiring -----

type testEnv struct {
	DB       *gorm.DB
	Fix      *fixtures
	Gateway  *stubGateway
	Notifier *recordNotifier
	Cache    *cache.Cache
	Orders   *services.OrderService
	Payments *services.PaymentService
	Carts    *services.CartService
	Saga     *services.CancellationSaga
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	fix := newFixtures(t, db)
	gw := &stubGateway{}
	notifier := &recordNotifier{}
	summaryCache := cache.New(services.SummaryCacheTTL, time.Minute)
	log := testLogger()

	paymentRepo := repository.NewPaymentRepository(db)
	payments, err := services.NewPaymentService(db, paymentRepo, gw, log)
	require.NoError(t, err)

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)

	orders, err := services.NewOrderService(db, orderRepo, cartRepo, customerRepo,
		restRepo, menuRepo, payments, gw, notifier, summaryCache, log)
	require.NoError(t, err)

	carts := services.NewCartService(db, cartRepo, menuRepo, customerRepo)
	saga := services.NewCancellationSaga(db, orderRepo, restRepo, paymentRepo,
		gw, notifier, summaryCache, log, orders.Status)

	return &testEnv{
		DB: db, Fix: fix, Gateway: gw, Notifier: notifier, Cache: summaryCache,
		Orders: orders, Payments: payments, Carts: carts, Saga: saga,
	}
}
