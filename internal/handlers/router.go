package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coinfolio/internal/middleware"
	"coinfolio/internal/services"
)

// NewRouter wires every HTTP route of the ledger API.
func NewRouter(ledger services.LedgerServicer, catalog services.CatalogServicer, audit services.AuditServicer) *gin.Engine {
	ledgerHandler := NewLedgerHandler(ledger, audit)
	catalogHandler := NewCatalogHandler(catalog)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	movements := v1.Group("/movements")
	movements.POST("", ledgerHandler.RegisterMovement)
	movements.GET("", ledgerHandler.ListMovements)
	movements.GET("/:id", ledgerHandler.GetMovement)
	movements.PUT("/:id", ledgerHandler.EditMovement)
	movements.DELETE("/:id", ledgerHandler.DeleteMovement)
	movements.GET("/:id/history", ledgerHandler.GetMovementHistory)

	v1.POST("/transfers", ledgerHandler.MoveBetweenWallets)
	v1.POST("/swaps", ledgerHandler.SwapMovement)

	portfolios := v1.Group("/portfolios")
	portfolios.POST("", catalogHandler.CreatePortfolio)
	portfolios.GET("", catalogHandler.ListPortfolios)
	portfolios.GET("/:id", catalogHandler.GetPortfolio)
	portfolios.POST("/:id/wallets", catalogHandler.CreateWallet)
	portfolios.GET("/:id/wallets", catalogHandler.ListWallets)
	portfolios.GET("/:id/holdings", ledgerHandler.ListHoldings)

	wallets := v1.Group("/wallets")
	wallets.GET("/:id", catalogHandler.GetWallet)
	wallets.GET("/:id/holdings/:asset_id", ledgerHandler.GetHolding)

	assets := v1.Group("/assets")
	assets.POST("", catalogHandler.CreateAsset)
	assets.GET("", catalogHandler.ListAssets)
	assets.GET("/:id", catalogHandler.GetAsset)

	return router
}
