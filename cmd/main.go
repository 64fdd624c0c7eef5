package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"hidecraft/internal/caching"
	"hidecraft/internal/handlers"
	"hidecraft/internal/jobs"
	"hidecraft/internal/jobs/background"
	"hidecraft/internal/middleware"
	"hidecraft/internal/repositories"
	"hidecraft/internal/services"
	"hidecraft/pkg/database"
)

const defaultPatternBucket = "hidecraft-patterns"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; sessions will not survive restarts")
	}
	tokenTTL := envInt("ACCESS_TOKEN_TTL_SECONDS", 900)
	refreshTTL := envInt("REFRESH_TOKEN_TTL_SECONDS", 7*24*3600)

	redisAddr := envString("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := envInt("REDIS_DB", 0)

	minioEndpoint := envString("MINIO_ENDPOINT", "localhost:9000")
	minioAccessKey := envString("MINIO_ACCESS_KEY", "minioadmin")
	minioSecretKey := envString("MINIO_SECRET_KEY", "minioadmin")
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"
	patternBucket := envString("MINIO_PATTERN_BUCKET", defaultPatternBucket)

	storage, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storage.EnsureBucketExists(ctx, patternBucket); err != nil {
		log.Fatalf("Failed to ensure pattern bucket: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	materialRepo := repositories.NewMaterialRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	patternRepo := repositories.NewPatternRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)
	pickingRepo := repositories.NewPickingRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	toolRepo := repositories.NewToolRepository(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services
	inventorySvc := services.NewInventoryService(pool, stockRepo, materialRepo, cacheSvc)
	materialSvc := services.NewMaterialService(materialRepo, stockRepo, cacheSvc)
	supplierSvc := services.NewSupplierService(supplierRepo)
	customerSvc := services.NewCustomerService(customerRepo, saleRepo)
	patternSvc := services.NewPatternService(patternRepo, storage, patternBucket)
	projectSvc := services.NewProjectService(projectRepo, patternRepo, customerRepo, materialRepo)
	pickingSvc := services.NewPickingService(pool, pickingRepo, projectRepo, inventorySvc)
	purchaseSvc := services.NewPurchaseService(pool, purchaseRepo, supplierRepo, toolRepo, inventorySvc)
	saleSvc := services.NewSaleService(pool, saleRepo, customerRepo, materialRepo, customerSvc, inventorySvc)
	toolSvc := services.NewToolService(toolRepo, projectRepo)
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret, tokenTTL, refreshTTL)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	materialHandlers := handlers.NewMaterialHandlers(materialSvc)
	stockHandlers := handlers.NewStockHandlers(inventorySvc)
	supplierHandlers := handlers.NewSupplierHandlers(supplierSvc)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc)
	patternHandlers := handlers.NewPatternHandlers(patternSvc)
	projectHandlers := handlers.NewProjectHandlers(projectSvc)
	pickingHandlers := handlers.NewPickingHandlers(pickingSvc)
	purchaseHandlers := handlers.NewPurchaseHandlers(purchaseSvc)
	saleHandlers := handlers.NewSaleHandlers(saleSvc)
	toolHandlers := handlers.NewToolHandlers(toolSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background jobs
	alertSvc := jobs.NewStockAlertService(materialRepo, stockRepo)
	scheduler, err := background.NewJobScheduler(alertSvc, toolRepo)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth)
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	v1 := e.Group("/v1")

	// Authentication routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(jwtSecret))

	protected.POST("/auth/password", authHandlers.ChangePassword)

	// Material catalog
	protected.GET("/materials", materialHandlers.ListMaterials)
	protected.GET("/materials/search", materialHandlers.SearchMaterials)
	protected.GET("/materials/low-stock", materialHandlers.ListLowStock)
	protected.POST("/materials", materialHandlers.CreateMaterial)
	protected.GET("/materials/:id", materialHandlers.GetMaterial)
	protected.PUT("/materials/:id", materialHandlers.UpdateMaterial)
	protected.DELETE("/materials/:id", materialHandlers.DeleteMaterial)
	protected.POST("/materials/:id/discontinue", materialHandlers.DiscontinueMaterial)
	protected.POST("/materials/:id/restore", materialHandlers.RestoreMaterial)

	// Stock
	protected.GET("/materials/:id/stock/total", stockHandlers.GetTotalQuantity)
	protected.GET("/materials/:id/stock", stockHandlers.ListStockLevels)
	protected.GET("/materials/:id/stock/:location", stockHandlers.GetStockLevel)
	protected.POST("/materials/:id/stock", stockHandlers.UpdateStock)
	protected.POST("/materials/:id/stock/transfer", stockHandlers.TransferStock)
	protected.GET("/materials/:id/movements", stockHandlers.ListMovements)
	protected.GET("/stock/search", stockHandlers.SearchStock)

	// Suppliers
	protected.GET("/suppliers", supplierHandlers.ListSuppliers)
	protected.POST("/suppliers", supplierHandlers.CreateSupplier)
	protected.GET("/suppliers/:id", supplierHandlers.GetSupplier)
	protected.PUT("/suppliers/:id", supplierHandlers.UpdateSupplier)
	protected.DELETE("/suppliers/:id", supplierHandlers.DeleteSupplier)

	// Customers
	protected.GET("/customers", customerHandlers.ListCustomers)
	protected.POST("/customers", customerHandlers.CreateCustomer)
	protected.GET("/customers/:id", customerHandlers.GetCustomer)
	protected.PUT("/customers/:id", customerHandlers.UpdateCustomer)
	protected.DELETE("/customers/:id", customerHandlers.DeleteCustomer)

	// Patterns
	protected.GET("/patterns", patternHandlers.ListPatterns)
	protected.POST("/patterns", patternHandlers.CreatePattern)
	protected.GET("/patterns/:id", patternHandlers.GetPattern)
	protected.PUT("/patterns/:id", patternHandlers.UpdatePattern)
	protected.DELETE("/patterns/:id", patternHandlers.DeletePattern)
	protected.POST("/patterns/:id/file", patternHandlers.UploadPatternFile)
	protected.GET("/patterns/:id/file", patternHandlers.GetPatternFileURL)

	// Projects
	protected.GET("/projects", projectHandlers.ListProjects)
	protected.POST("/projects", projectHandlers.CreateProject)
	protected.GET("/projects/:id", projectHandlers.GetProject)
	protected.PUT("/projects/:id", projectHandlers.UpdateProject)
	protected.DELETE("/projects/:id", projectHandlers.DeleteProject)
	protected.POST("/projects/:id/transition", projectHandlers.TransitionProject)
	protected.POST("/projects/:id/components", projectHandlers.AddComponent)
	protected.DELETE("/projects/:id/components/:componentId", projectHandlers.DeleteComponent)
	protected.POST("/projects/:id/picking-list", pickingHandlers.GeneratePickingList)

	// Picking lists
	protected.GET("/picking-lists", pickingHandlers.ListPickingLists)
	protected.POST("/picking-lists", pickingHandlers.CreatePickingList)
	protected.GET("/picking-lists/:id", pickingHandlers.GetPickingList)
	protected.DELETE("/picking-lists/:id", pickingHandlers.DeletePickingList)
	protected.POST("/picking-lists/:id/items", pickingHandlers.AddPickingItem)
	protected.POST("/picking-lists/:id/complete", pickingHandlers.CompletePickingList)
	protected.POST("/picking-lists/:id/cancel", pickingHandlers.CancelPickingList)
	protected.POST("/picking-items/:itemId/pick", pickingHandlers.PickItem)

	// Purchases
	protected.GET("/purchases", purchaseHandlers.ListPurchases)
	protected.POST("/purchases", purchaseHandlers.CreatePurchase)
	protected.GET("/purchases/:id", purchaseHandlers.GetPurchase)
	protected.PUT("/purchases/:id", purchaseHandlers.UpdatePurchase)
	protected.DELETE("/purchases/:id", purchaseHandlers.DeletePurchase)
	protected.POST("/purchases/:id/items", purchaseHandlers.AddPurchaseItem)
	protected.DELETE("/purchase-items/:itemId", purchaseHandlers.DeletePurchaseItem)
	protected.POST("/purchase-items/:itemId/receive", purchaseHandlers.ReceivePurchaseItem)

	// Sales
	protected.GET("/sales", saleHandlers.ListSales)
	protected.POST("/sales", saleHandlers.CreateSale)
	protected.GET("/sales/:id", saleHandlers.GetSale)
	protected.PUT("/sales/:id", saleHandlers.UpdateSale)
	protected.DELETE("/sales/:id", saleHandlers.DeleteSale)
	protected.POST("/sales/:id/items", saleHandlers.AddSaleItem)
	protected.DELETE("/sales/:id/items/:itemId", saleHandlers.DeleteSaleItem)
	protected.POST("/sales/:id/complete", saleHandlers.CompleteSale)

	// Tools
	protected.GET("/tools", toolHandlers.ListTools)
	protected.POST("/tools", toolHandlers.CreateTool)
	protected.GET("/tools/:id", toolHandlers.GetTool)
	protected.PUT("/tools/:id", toolHandlers.UpdateTool)
	protected.DELETE("/tools/:id", toolHandlers.DeleteTool)
	protected.POST("/tools/:id/checkout", toolHandlers.CheckoutTool)
	protected.POST("/tools/:id/return", toolHandlers.ReturnTool)
	protected.GET("/tools/:id/checkouts", toolHandlers.ListToolCheckouts)

	port := envString("PORT", "8080")
	e.Logger.Fatal(e.Start(":" + port))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
