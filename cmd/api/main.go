package main

import (
	"fmt"
	"os"

	"coinfolio/internal/config"
	"coinfolio/internal/database"
	"coinfolio/internal/handlers"
	"coinfolio/internal/logger"
	"coinfolio/internal/repository"
	"coinfolio/internal/services"
	"coinfolio/internal/validator"

	_ "coinfolio/internal/docs" // Import swagger docs
)

// @title           Coinfolio API
// @version         1.0
// @description     Coinfolio tracks crypto and fiat holdings across wallets through an append-only movement ledger.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	store := repository.NewGormStore(dbManager.DB())
	auditService := services.NewAuditService(store)
	ledgerService := services.NewLedgerService(store, store, auditService)
	catalogService := services.NewCatalogService(store)

	router := handlers.NewRouter(ledgerService, catalogService, auditService)

	log.Infow("Starting coinfolio API", "port", cfg.Port, "driver", cfg.DBDriver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return router.Run(":" + cfg.Port)
}
