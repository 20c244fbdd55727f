package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dinepos/internal/caching"
	"dinepos/internal/handlers"
	"dinepos/internal/jobs/background"
	"dinepos/internal/middleware"
	"dinepos/internal/repositories"
	"dinepos/internal/services"
	"dinepos/internal/session"
	"dinepos/pkg/database"
)

const version = "1.0.0"

//	@title			dinepos API
//	@version		1.0
//	@description	Restaurant point-of-sale service: staff auth, menu catalog, table-side carts and order submission.
func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret; tokens will not survive a restart")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), services.ImageBucket); err != nil {
		log.Printf("WARN: could not ensure image bucket %q: %v", services.ImageBucket, err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	menuItemRepo := repositories.NewMenuItemRepo(pool)
	tableRepo := repositories.NewTableRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Session manager: one session per login, idle sessions purged hourly
	sessions := session.NewManager(12 * time.Hour)

	// Create services
	authSvc := services.NewAuthService(cacheSvc, jwtSecret, 8*time.Hour)
	catalogSvc := services.NewCatalogService(menuItemRepo, categoryRepo, minioSvc, cacheSvc)
	tableSvc := services.NewTableService(tableRepo, cacheSvc)
	orderSvc := services.NewOrderService(orderRepo)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(userRepo, authSvc, sessions)
	menuHandlers := handlers.NewMenuHandlers(catalogSvc)
	tableHandlers := handlers.NewTableHandlers(tableSvc)
	cartHandlers := handlers.NewCartHandlers(sessions, catalogSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc, sessions)
	healthHandlers := handlers.NewHealthHandlers(pool, sessions)

	// Background jobs
	scheduler, err := background.NewJobScheduler(catalogSvc, sessions)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("job scheduler shutdown: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API routes
	v1 := e.Group("/v1")

	// Authentication routes (no JWT required for login)
	v1.POST("/auth/login", authHandlers.Login)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(authSvc, sessions))

	protected.POST("/auth/logout", authHandlers.Logout)
	protected.GET("/me", authHandlers.Me)

	// Menu catalog routes
	protected.GET("/menu", menuHandlers.ListMenu)
	protected.POST("/menu", menuHandlers.CreateMenuItem)
	protected.DELETE("/menu/:id", menuHandlers.DeleteMenuItem)
	protected.POST("/menu/:id/image", menuHandlers.UploadItemImage)
	protected.GET("/menu/:id/image", menuHandlers.GetItemImage)
	protected.GET("/categories", menuHandlers.ListCategories)

	// Table registry routes
	protected.GET("/tables", tableHandlers.ListTables)

	// Cart routes
	protected.GET("/cart", cartHandlers.GetCart)
	protected.POST("/cart/items", cartHandlers.AddCartItem)
	protected.DELETE("/cart", cartHandlers.ClearCart)

	// Order routes
	protected.POST("/orders", orderHandlers.CreateOrder)
	protected.GET("/orders", orderHandlers.ListOrders)
	protected.GET("/orders/:id", orderHandlers.GetOrder)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("dinepos server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
