package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"fooddelivery/configs"
	"fooddelivery/controllers"
	"fooddelivery/middlewares"
	"fooddelivery/pkg/gateway"
	"fooddelivery/repository"
	"fooddelivery/routes"
	"fooddelivery/services"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

func main() {
	cfg := configs.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// External capabilities
	payGateway := gateway.SimulatedGateway{}
	notifier := gateway.LogNotifier{Log: logger}
	summaryCache := cache.New(services.SummaryCacheTTL, 10*services.SummaryCacheTTL)

	// Services
	authSvc := services.NewAuthService(db, userRepo, customerRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo, customerRepo)
	paymentSvc, err := services.NewPaymentService(db, paymentRepo, payGateway, logger)
	if err != nil {
		log.Fatalf("init payment service: %v", err)
	}
	orderSvc, err := services.NewOrderService(db, orderRepo, cartRepo, customerRepo,
		restRepo, menuRepo, paymentSvc, payGateway, notifier, summaryCache, logger)
	if err != nil {
		log.Fatalf("init order service: %v", err)
	}
	saga := services.NewCancellationSaga(db, orderRepo, restRepo, paymentRepo,
		payGateway, notifier, summaryCache, logger, orderSvc.Status)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, cfg, routes.Controllers{
		Auth:       controllers.NewAuthController(authSvc),
		Customer:   controllers.NewCustomerController(customerRepo),
		Restaurant: controllers.NewRestaurantController(restRepo, menuRepo),
		Cart:       controllers.NewCartController(cartSvc),
		Order:      controllers.NewOrderController(orderSvc),
		OwnerOrder: controllers.NewOwnerOrderController(orderSvc, saga, restRepo),
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
