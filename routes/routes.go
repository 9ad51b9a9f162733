package routes

import (
	"fooddelivery/configs"
	"fooddelivery/controllers"
	"fooddelivery/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth       *controllers.AuthController
	Customer   *controllers.CustomerController
	Restaurant *controllers.RestaurantController
	Cart       *controllers.CartController
	Order      *controllers.OrderController
	OwnerOrder *controllers.OwnerOrderController
}

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, ctrl Controllers) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	secret := cfg.JWTSecret

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", ctrl.Auth.Register)
		a.POST("/login", ctrl.Auth.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(secret), ctrl.Auth.Me)

	// Public browse
	r.GET("/restaurants", ctrl.Restaurant.List)
	r.GET("/restaurants/:id", ctrl.Restaurant.Detail)
	r.GET("/restaurants/:id/menus", ctrl.Restaurant.Menus)

	// Customer profile
	profile := r.Group("/profile", middlewares.AuthMiddleware(secret, "customer"))
	{
		profile.GET("/addresses", ctrl.Customer.ListAddresses)
		profile.POST("/addresses", ctrl.Customer.CreateAddress)
	}

	// Cart (customer)
	cart := r.Group("/cart", middlewares.AuthMiddleware(secret, "customer"))
	{
		cart.GET("", ctrl.Cart.Get)
		cart.POST("/items", ctrl.Cart.AddItem)
		cart.PATCH("/items/:id", ctrl.Cart.UpdateQty)
		cart.DELETE("/items/:id", ctrl.Cart.RemoveItem)
		cart.DELETE("", ctrl.Cart.Clear)
	}

	// Orders (customer)
	orders := r.Group("/orders", middlewares.AuthMiddleware(secret, "customer"))
	{
		orders.POST("", ctrl.Order.Place)
		orders.GET("", ctrl.Order.ListForMe)
		orders.GET("/:id/summary", ctrl.Order.Summary)
		orders.POST("/:id/cancel", ctrl.Order.Cancel)
	}

	// Partner restaurant (owner/admin)
	partner := r.Group("/partner/restaurants", middlewares.AuthMiddleware(secret, "restaurant", "admin"))
	{
		partner.GET("/:id/orders", ctrl.OwnerOrder.List)
		partner.PATCH("/:id/orders/:oid/status", ctrl.OwnerOrder.UpdateStatus)
		partner.POST("/:id/orders/:oid/cancel", ctrl.OwnerOrder.Cancel)
	}
}
