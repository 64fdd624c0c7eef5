// Command seed populates a development database with demo workshop data.
// It goes through the service layer so every record obeys the same
// validation and stock rules as the API.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"hidecraft/internal/caching"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"
	"hidecraft/internal/services"
	"hidecraft/pkg/database"
)

func main() {
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

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	cacheSvc := caching.NewRedisCacheService(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)

	userRepo := repositories.NewUserRepository(pool)
	materialRepo := repositories.NewMaterialRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)

	inventorySvc := services.NewInventoryService(pool, stockRepo, materialRepo, cacheSvc)
	materialSvc := services.NewMaterialService(materialRepo, stockRepo, cacheSvc)
	supplierSvc := services.NewSupplierService(supplierRepo)
	customerSvc := services.NewCustomerService(customerRepo, saleRepo)
	authSvc := services.NewAuthService(userRepo, cacheSvc, "seed-only-secret", 900, 3600)

	if _, err := authSvc.Register(ctx, "owner@workshop.local", "changeme-now", "Workshop Owner"); err != nil {
		log.Printf("Skipping user seed: %v", err)
	}

	tannery := &models.Supplier{Name: "Northside Tannery", ContactEmail: ptr("orders@northside-tannery.example")}
	hardware := &models.Supplier{Name: "Brassworks Hardware Co.", ContactPhone: ptr("+1-555-0142")}
	for _, s := range []*models.Supplier{tannery, hardware} {
		if err := supplierSvc.Create(ctx, s); err != nil {
			log.Fatalf("Seeding supplier %q: %v", s.Name, err)
		}
	}

	materials := []*models.Material{
		{
			SupplierID:   &tannery.ID,
			Name:         "Veg-tan shoulder 8oz",
			MaterialType: models.MaterialLeather,
			Unit:         models.UnitSquareFoot,
			MinQuantity:  decimal.NewFromInt(20),
			PricePerUnit: decimal.RequireFromString("9.50"),
		},
		{
			SupplierID:   &hardware.ID,
			Name:         "Solid brass buckle 25mm",
			MaterialType: models.MaterialHardware,
			Unit:         models.UnitPiece,
			MinQuantity:  decimal.NewFromInt(50),
			PricePerUnit: decimal.RequireFromString("2.25"),
		},
		{
			SupplierID:   &tannery.ID,
			Name:         "Tiger thread 0.8mm",
			MaterialType: models.MaterialThread,
			Unit:         models.UnitSpool,
			MinQuantity:  decimal.NewFromInt(5),
			PricePerUnit: decimal.RequireFromString("14.00"),
		},
	}
	for _, m := range materials {
		if err := materialSvc.Create(ctx, m); err != nil {
			log.Fatalf("Seeding material %q: %v", m.Name, err)
		}
		if _, err := inventorySvc.UpdateAtLocation(ctx, m.ID, services.DefaultLocation,
			m.MinQuantity.Mul(decimal.NewFromInt(3)), services.UpdateSet, ptr("initial stock count")); err != nil {
			log.Fatalf("Seeding stock for %q: %v", m.Name, err)
		}
	}

	customer := &models.Customer{Name: "Ada Fletcher", Email: ptr("ada@example.com")}
	if err := customerSvc.Create(ctx, customer); err != nil {
		log.Fatalf("Seeding customer: %v", err)
	}

	log.Println("Seed complete")
}

func ptr(s string) *string { return &s }
