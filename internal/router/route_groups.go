package router

import (
	"comandas_backend/internal/handlers"
	"comandas_backend/internal/middleware"
	"comandas_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes sets up the routes for order management. Status updates
// are open to every authenticated role; the transition engine decides
// per-edge whether the caller's role may advance the order.
func SetupOrderRoutes(group *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orders := group.Group("/orders")
	{
		orders.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleWaiter), orderHandler.CreateOrder)
		orders.GET("/active", orderHandler.GetActiveOrders)
		orders.GET("/history", orderHandler.GetOrderHistory)
		orders.GET("/board/kitchen", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleKitchen), orderHandler.GetKitchenBoard)
		orders.GET("/board/admin", middleware.RoleAuthMiddleware(models.RoleAdmin), orderHandler.GetAdminBoard)
		orders.GET("/waiter", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleWaiter), orderHandler.GetWaiterLists)
		orders.GET("/:id", orderHandler.GetOrderByID)
		orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
	}
}

// SetupTableRoutes sets up the routes for table management.
func SetupTableRoutes(group *gin.RouterGroup, tableHandler *handlers.TableHandler) {
	tables := group.Group("/tables")
	{
		tables.GET("", tableHandler.GetTables)
		tables.GET("/:id", tableHandler.GetTableByID)

		adminOnly := tables.Group("", middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminOnly.POST("", tableHandler.CreateTable)
			adminOnly.PUT("/:id", tableHandler.UpdateTable)
			adminOnly.PATCH("/:id/availability", tableHandler.ToggleTableAvailability)
			adminOnly.DELETE("/:id", tableHandler.DeleteTable)
		}
	}
}

// SetupProductRoutes sets up the routes for product catalog management.
func SetupProductRoutes(group *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	products := group.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProductByID)

		adminOnly := products.Group("", middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminOnly.POST("", productHandler.CreateProduct)
			adminOnly.PUT("/:id", productHandler.UpdateProduct)
			adminOnly.DELETE("/:id", productHandler.DeleteProduct)
		}
	}
}

// SetupAccountRoutes sets up the routes for staff account management.
func SetupAccountRoutes(group *gin.RouterGroup, accountHandler *handlers.AccountHandler) {
	accounts := group.Group("/accounts")
	{
		accounts.GET("", accountHandler.GetAccounts)
		accounts.GET("/:id", accountHandler.GetAccountByID)

		adminOnly := accounts.Group("", middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminOnly.POST("", accountHandler.CreateAccount)
			adminOnly.PUT("/:id", accountHandler.UpdateAccount)
			adminOnly.DELETE("/:id", accountHandler.DeleteAccount)
		}
	}
}
