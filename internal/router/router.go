package router

import (
	"database/sql"

	"comandas_backend/internal/handlers"
	"comandas_backend/internal/middleware"
	"comandas_backend/internal/realtime"
	"comandas_backend/internal/repositories"
	"comandas_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, hub *realtime.Hub) {
	// Initialize Repositories
	orderRepo := repositories.NewOrderRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	productRepo := repositories.NewProductRepository(db)
	accountRepo := repositories.NewAccountRepository(db)

	// Initialize Services. Order and table services share one lock set so
	// order-driven occupancy writes serialize with the manual admin toggle.
	locks := services.NewSharedLocks()
	orderService := services.NewOrderService(orderRepo, tableRepo, productRepo, accountRepo, hub, locks, db)
	tableService := services.NewTableService(tableRepo, locks, db)
	productService := services.NewProductService(productRepo, db)
	accountService := services.NewAccountService(accountRepo, db)
	authService := services.NewAuthService(accountRepo)

	// Initialize Handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	tableHandler := handlers.NewTableHandler(tableService)
	productHandler := handlers.NewProductHandler(productService)
	accountHandler := handlers.NewAccountHandler(accountService)
	authHandler := handlers.NewAuthHandler(authService)

	// Real-time change notifications; connected clients refetch on every event.
	engine.GET("/ws", hub.HandleWebSocket)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupTableRoutes(authenticated, tableHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupAccountRoutes(authenticated, accountHandler)
	}
}

// SetupPublicAuthRoutes sets up auth routes that need no token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
	group.POST("/refresh-token", authHandler.RefreshToken)
}

// SetupAuthenticatedAuthRoutes sets up auth routes behind the auth middleware.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentAccount)
}
