package routes

import (
	"littlelemon-api/authz"
	"littlelemon-api/handlers"
	"littlelemon-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Catalog (no auth needed)
		public.GET("/categories", handlers.ListCategories)
		public.GET("/categories/:id", handlers.GetCategory)
		public.GET("/menu-items", handlers.ListMenuItems)
		public.GET("/menu-items/:id", handlers.GetMenuItem)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Cart — always scoped to the caller
		auth.GET("/cart/menu-items", handlers.GetCart)
		auth.POST("/cart/menu-items", handlers.AddToCart)
		auth.DELETE("/cart/menu-items/clear", handlers.ClearCart)
		auth.PATCH("/cart/menu-items/:id", handlers.UpdateCartLine)
		auth.DELETE("/cart/menu-items/:id", handlers.RemoveCartLine)

		// Orders — role scoping happens inside the service
		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.PUT("/orders/:id", handlers.UpdateOrder)
		auth.PATCH("/orders/:id", handlers.UpdateOrder)

		// Reservations — owner scoped, admin sees all
		auth.GET("/reservations", handlers.ListReservations)
		auth.POST("/reservations", handlers.CreateReservation)
		auth.GET("/reservations/:id", handlers.GetReservation)
		auth.PATCH("/reservations/:id", handlers.UpdateReservation)
		auth.DELETE("/reservations/:id", handlers.DeleteReservation)
	}

	// ── Catalog management — admin only ────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(authz.RoleAdmin))
	{
		admin.POST("/categories", handlers.CreateCategory)
		admin.PUT("/categories/:id", handlers.UpdateCategory)
		admin.DELETE("/categories/:id", handlers.DeleteCategory)
		admin.POST("/menu-items", handlers.CreateMenuItem)
		admin.PUT("/menu-items/:id", handlers.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", handlers.DeleteMenuItem)

		// Manager roster
		admin.GET("/groups/manager/users", handlers.ListManagers)
		admin.POST("/groups/manager/users", handlers.AddManager)
		admin.DELETE("/groups/manager/users/:id", handlers.RemoveManager)
	}

	// ── Manager routes (admin included) ────────────────────────────
	manager := r.Group("/api")
	manager.Use(middleware.AuthRequired(), middleware.RoleRequired(authz.RoleManager, authz.RoleAdmin))
	{
		manager.PATCH("/menu-items/:id/update_featured", handlers.UpdateFeatured)
		manager.PATCH("/orders/:id/assign_delivery_crew", handlers.AssignDeliveryCrew)

		// Delivery crew roster
		manager.GET("/groups/delivery-crew/users", handlers.ListDeliveryCrew)
		manager.POST("/groups/delivery-crew/users", handlers.AddDeliveryCrew)
		manager.DELETE("/groups/delivery-crew/users/:id", handlers.RemoveDeliveryCrew)
	}
}
