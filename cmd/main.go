package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"pricing-service/internal/config"
	"pricing-service/internal/database"
	"pricing-service/internal/events"
	"pricing-service/internal/handlers"
	"pricing-service/internal/middleware"
	"pricing-service/internal/repository"
	"pricing-service/internal/services"

	"gorm.io/gorm"
)

func main() {
	// Load .env in development; ignore when absent
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("✓ Connected to database")

	// Run automated database migrations (schema + seed data)
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Connect to Redis for configuration caching (optional)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to parse Redis URL: %v", err)
			log.Println("Continuing without Redis caching...")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("Warning: Failed to connect to Redis: %v", err)
				log.Println("Continuing without Redis caching...")
				redisClient = nil
			} else {
				log.Println("✓ Connected to Redis for caching")
			}
		}
	} else {
		log.Println("REDIS_URL not configured, caching disabled")
	}

	// Initialize NATS events publisher (non-blocking)
	eventLogger := logrus.New()
	eventLogger.SetFormatter(&logrus.JSONFormatter{})
	eventLogger.SetLevel(logrus.InfoLevel)
	go func() {
		if err := events.InitPublisher(eventLogger); err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
		}
	}()

	// Initialize repositories
	shippingRepo := repository.NewShippingRepository(db, redisClient)
	taxRepo := repository.NewTaxRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db, redisClient)

	// Initialize services
	shippingCalculator := services.NewShippingCalculator(shippingRepo, cfg.DefaultShippingCost)
	taxCalculator := services.NewTaxCalculator(taxRepo)
	currencyService := services.NewCurrencyService(currencyRepo)

	// Initialize handlers
	shippingHandler := handlers.NewShippingHandler(shippingCalculator, shippingRepo)
	taxHandler := handlers.NewTaxHandler(taxCalculator, taxRepo)
	currencyHandler := handlers.NewCurrencyHandler(currencyService, currencyRepo)

	// Setup router
	router := setupRouter(shippingHandler, taxHandler, currencyHandler, db)

	// Start server
	log.Printf("Pricing Service starting on port %s (env: %s)", cfg.Port, cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures the HTTP router
func setupRouter(shippingHandler *handlers.ShippingHandler, taxHandler *handlers.TaxHandler, currencyHandler *handlers.CurrencyHandler, db *gorm.DB) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	// Health checks
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "pricing-service",
		})
	})

	// Liveness probe - simple check that the service is running
	router.GET("/livez", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness probe - check that DB is accessible
	router.GET("/readyz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "error", "message": "database not available"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "error", "message": "database ping failed"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		// Checkout-facing calculation endpoints
		shipping := v1.Group("/shipping")
		{
			shipping.POST("/calculate", shippingHandler.CalculateShipping)
		}
		tax := v1.Group("/tax")
		{
			tax.POST("/calculate", taxHandler.CalculateTax)
		}
		currency := v1.Group("/currency")
		{
			currency.POST("/convert", currencyHandler.Convert)
		}

		// Shipping zone administration
		zones := v1.Group("/zones")
		{
			zones.GET("", shippingHandler.ListZones)
			zones.GET("/:id", shippingHandler.GetZone)
			zones.POST("", shippingHandler.CreateZone)
			zones.PUT("/:id", shippingHandler.UpdateZone)
			zones.DELETE("/:id", shippingHandler.DeleteZone)

			zones.POST("/:id/locations", shippingHandler.CreateLocation)
			zones.GET("/:id/methods", shippingHandler.ListMethods)
			zones.POST("/:id/methods", shippingHandler.CreateMethod)
		}
		v1.DELETE("/locations/:id", shippingHandler.DeleteLocation)
		v1.PUT("/methods/:id", shippingHandler.UpdateMethod)
		v1.DELETE("/methods/:id", shippingHandler.DeleteMethod)

		// Tax rate administration
		rates := v1.Group("/rates")
		{
			rates.GET("", taxHandler.ListRates)
			rates.GET("/:id", taxHandler.GetRate)
			rates.POST("", taxHandler.CreateRate)
			rates.PUT("/:id", taxHandler.UpdateRate)
			rates.DELETE("/:id", taxHandler.DeleteRate)
		}

		// Currency administration
		currencies := v1.Group("/currencies")
		{
			currencies.GET("", currencyHandler.ListCurrencies)
			currencies.GET("/:code", currencyHandler.GetCurrency)
			currencies.POST("", currencyHandler.CreateCurrency)
			currencies.PUT("/:code", currencyHandler.UpdateCurrency)
			currencies.DELETE("/:code", currencyHandler.DeleteCurrency)
			currencies.POST("/:code/base", currencyHandler.SetBaseCurrency)
		}
	}

	return router
}
