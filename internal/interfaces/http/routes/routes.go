// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/interfaces/http/handlers"
	"github.com/your-org/inventory-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes sets up account, session and activity routes
func SetupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	userHandler := handlers.NewUserHandler(db, cfg)

	users := rg.Group("/user")
	{
		// Public endpoints: login also serves the invite flow, and
		// update-password completes it before the user holds a token.
		users.POST("/login", userHandler.Login)
		users.POST("/update-password", userHandler.UpdatePassword)

		protected := users.Group("")
		protected.Use(middleware.AuthMiddleware(db, cfg))
		{
			protected.POST("/create-user", userHandler.CreateUser)
			protected.GET("/me", userHandler.Me)
			protected.GET("/users", userHandler.ListUsers)
			protected.GET("/activities", userHandler.ListActivities)
		}
	}
}

// SetupAppRoutes sets up inventory, billing and reporting routes
func SetupAppRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	groupHandler := handlers.NewGroupHandler(db, cfg)
	inventoryHandler := handlers.NewInventoryHandler(db, cfg)
	clientHandler := handlers.NewClientHandler(db, cfg)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg)
	reportHandler := handlers.NewReportHandler(db, cfg)

	app := rg.Group("/app")
	app.Use(middleware.AuthMiddleware(db, cfg))
	{
		app.POST("/group", groupHandler.Create)
		app.GET("/group", groupHandler.List)
		app.GET("/group/:id", groupHandler.Get)
		app.PUT("/group/:id", groupHandler.Update)
		app.DELETE("/group/:id", groupHandler.Delete)

		app.POST("/inventory", inventoryHandler.Create)
		app.GET("/inventory", inventoryHandler.List)
		app.GET("/inventory/:id", inventoryHandler.Get)
		app.PUT("/inventory/:id", inventoryHandler.Update)
		app.DELETE("/inventory/:id", inventoryHandler.Delete)
		app.POST("/inventory-csv", inventoryHandler.ImportCSV)

		app.POST("/client", clientHandler.Create)
		app.GET("/client", clientHandler.List)
		app.GET("/client/:id", clientHandler.Get)
		app.PUT("/client/:id", clientHandler.Update)
		app.DELETE("/client/:id", clientHandler.Delete)

		app.POST("/invoice", invoiceHandler.Create)
		app.GET("/invoice", invoiceHandler.List)
		app.GET("/invoice/:id", invoiceHandler.Get)
		app.DELETE("/invoice/:id", invoiceHandler.Delete)
		app.GET("/invoice/:id/pdf", invoiceHandler.DownloadPDF)

		app.GET("/summary", reportHandler.Summary)
		app.GET("/purchase-summary", reportHandler.PurchaseSummary)
		app.GET("/sales-by-client", reportHandler.SalesByClient)
		app.GET("/top-selling", reportHandler.TopSelling)
	}
}

// SetupRoutes wires all route groups onto the versioned API group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	_ = redisClient // reserved for handlers that cache; rate limiting uses it at the server level

	SetupUserRoutes(rg, db, cfg)
	SetupAppRoutes(rg, db, cfg)
}
