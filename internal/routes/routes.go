package routes

import (
	"velora_storefront/internal/handlers"
	"velora_storefront/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes câble les groupes Auth, Users, Products, Orders et Admin.
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// 1️⃣ Auth publiques (sans middleware)
	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// 2️⃣ Produits : lecture publique, mutation réservée admin
	products := api.Group("/products")
	{
		products.GET("", handlers.GetProducts)
		products.GET("/:id", handlers.GetProductByID)
		products.GET("/:id/qr", handlers.ProductQR)
		products.POST("", middleware.AuthRequired(), middleware.RequireAdmin, handlers.CreateProduct)
		products.DELETE("/:id", middleware.AuthRequired(), middleware.RequireAdmin, handlers.DeleteProduct)
	}

	// 3️⃣ Users (JWT requis)
	api.PUT("/users/:id", middleware.AuthRequired(), handlers.UpdateUser)

	// 4️⃣ Orders (JWT requis)
	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", handlers.CreateOrder)
		orders.GET("/:userId", handlers.GetUserOrders)
	}

	// 5️⃣ Admin (JWT + rôle admin)
	admin := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.GET("/orders", handlers.GetAllOrders)
		admin.GET("/users", handlers.GetAllUsers)
		admin.DELETE("/users", handlers.DeleteUserByEmail)
	}
}
