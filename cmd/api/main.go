package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bondledger/internal/catalog"
	"bondledger/internal/chain"
	"bondledger/internal/config"
	"bondledger/internal/database"
	"bondledger/internal/handlers"
	"bondledger/internal/logger"
	"bondledger/internal/middleware"
	"bondledger/internal/services"
	"bondledger/internal/store"
	"bondledger/internal/validator"

	_ "bondledger/internal/docs" // Import swagger docs
)

// @title           Bond Ledger API
// @version         1.0
// @description     Bond investment ledger and aggregation engine: bond catalog, append-only investment ledger, derived portfolios, statistics, and yield calculations.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager and apply migrations
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Bond catalog with the initial offering
	bondCatalog := catalog.New()
	catalog.Seed(bondCatalog)

	// Ledger store and services
	ledgerStore := store.New(dbManager.DB())
	userService := services.NewUserService(ledgerStore)
	ledgerService := services.NewLedgerService(ledgerStore, bondCatalog)
	statsService := services.NewStatsService(ledgerStore, bondCatalog)
	yieldService := services.NewYieldService()

	// Settlement chain client, best-effort
	chainClient := chain.NewClient(appConfig.ChainRPCURL, nil)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	bondHandler := handlers.NewBondHandler(bondCatalog, statsService, yieldService)
	investmentHandler := handlers.NewInvestmentHandler(ledgerService, statsService)
	walletHandler := handlers.NewWalletHandler(chainClient)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API group
	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	api.POST("/admin/login", authHandler.AdminLogin)

	api.GET("/bonds", bondHandler.ListBonds)
	api.GET("/bonds/:id", bondHandler.GetBond)
	api.GET("/bonds/:id/stats", bondHandler.GetBondStats)
	api.GET("/yield/:id", bondHandler.GetYield)

	api.GET("/portfolio/:address", investmentHandler.GetWalletPortfolio)
	api.GET("/investments/stats", investmentHandler.GetPlatformStats)

	api.GET("/wallet/:address/balance", walletHandler.GetBalance)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/auth/me", authHandler.GetProfile)
	protected.POST("/invest", investmentHandler.Invest)
	protected.GET("/investments/user/:id", investmentHandler.GetUserInvestments)
	protected.GET("/investments/bond/:id", investmentHandler.GetBondInvestments)

	// Admin routes
	admin := api.Group("/")
	admin.Use(middleware.AdminAuthMiddleware())
	admin.POST("/bonds", bondHandler.CreateBond)
	admin.PUT("/bonds/:id", bondHandler.UpdateBond)
	admin.DELETE("/bonds/:id", bondHandler.DeleteBond)
	admin.GET("/investments", investmentHandler.ListInvestments)

	log.Infof("Starting bond ledger server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
