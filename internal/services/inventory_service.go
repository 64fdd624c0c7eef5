package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"hidecraft/internal/caching"
	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"
	"hidecraft/internal/stock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DefaultLocation is where picks draw from and receipts land when the
// caller does not name a location.
const DefaultLocation = "workshop"

// UpdateMode selects how UpdateAtLocation interprets the given quantity.
type UpdateMode string

const (
	// UpdateSet replaces the quantity at the location outright.
	UpdateSet UpdateMode = "set"
	// UpdateAdjust applies the quantity as a signed delta.
	UpdateAdjust UpdateMode = "adjust"
)

// InventoryService aggregates a material's per-location stock levels and
// routes quantity changes through the ledger rules. Every mutating
// operation recomputes the material's aggregate status inside the same
// transaction that changed the quantities.
type InventoryService interface {
	TotalQuantity(ctx context.Context, materialID uuid.UUID) (decimal.Decimal, error)
	UpdateAtLocation(ctx context.Context, materialID uuid.UUID, location string, quantity decimal.Decimal, mode UpdateMode, notes *string) (*models.StockLevel, error)
	Transfer(ctx context.Context, materialID uuid.UUID, fromLocation, toLocation string, quantity decimal.Decimal) error
	GetStockLevel(ctx context.Context, materialID uuid.UUID, location string) (*models.StockLevel, error)
	ListByMaterial(ctx context.Context, materialID uuid.UUID) ([]*models.StockLevel, error)
	Search(ctx context.Context, filter *models.StockSearchFilter) ([]*models.StockLevel, error)
	ListMovements(ctx context.Context, materialID uuid.UUID, limit, offset int) ([]*models.StockMovement, error)

	// AdjustTx applies a signed delta at a location within a caller-provided
	// transaction. Used by the picking, receiving, and sale paths to keep
	// their own record changes atomic with the stock change. A negative
	// delta at a location with no stock record fails NotFound; a positive
	// one creates the record. The material's aggregate status is recomputed
	// in the same transaction.
	AdjustTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID, location string, delta decimal.Decimal, kind models.TransactionKind, notes *string) (*models.StockLevel, error)

	// InvalidateStockCache drops cached entries for a material's stock at a
	// location. Callers of AdjustTx invoke it after their transaction commits.
	InvalidateStockCache(ctx context.Context, materialID uuid.UUID, location string)
}

type inventoryService struct {
	db           repositories.Database
	stockRepo    repositories.StockRepository
	materialRepo repositories.MaterialRepository
	cacheService caching.CacheService
}

func NewInventoryService(db repositories.Database, stockRepo repositories.StockRepository, materialRepo repositories.MaterialRepository, cacheService caching.CacheService) InventoryService {
	return &inventoryService{
		db:           db,
		stockRepo:    stockRepo,
		materialRepo: materialRepo,
		cacheService: cacheService,
	}
}

func (s *inventoryService) TotalQuantity(ctx context.Context, materialID uuid.UUID) (decimal.Decimal, error) {
	levels, err := s.stockRepo.ListByMaterial(ctx, materialID)
	if err != nil {
		return decimal.Zero, err
	}
	// A material with no stock records totals zero; not an error.
	return stock.Total(levels), nil
}

func (s *inventoryService) UpdateAtLocation(ctx context.Context, materialID uuid.UUID, location string, quantity decimal.Decimal, mode UpdateMode, notes *string) (*models.StockLevel, error) {
	if err := common.ValidateRequiredString(location, "location"); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var level *models.StockLevel
	switch mode {
	case UpdateSet:
		level, err = s.setAtLocationTx(ctx, tx, materialID, location, quantity, notes)
	case UpdateAdjust:
		level, err = s.AdjustTx(ctx, tx, materialID, location, quantity, models.KindAdjustment, notes)
	default:
		return nil, common.NewValidationError("mode", "must be one of: set, adjust")
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.invalidateStock(ctx, materialID, location)
	return level, nil
}

// setAtLocationTx replaces the quantity at a location outright, creating the
// stock level if none exists. Used for direct stock corrections.
func (s *inventoryService) setAtLocationTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID, location string, quantity decimal.Decimal, notes *string) (*models.StockLevel, error) {
	if quantity.IsNegative() {
		return nil, common.NewValidationError("quantity", "must not be negative")
	}

	material, err := s.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}

	level, err := s.stockRepo.GetByMaterialAndLocationTx(ctx, tx, materialID, location)
	if err != nil {
		if !common.IsNotFound(err) {
			return nil, err
		}
		level = s.newStockLevel(material, location)
		level.Quantity = quantity
		level.Status = stock.DeriveStatus(quantity, level.ReorderPoint, models.StatusInStock)
		if err := s.stockRepo.CreateTx(ctx, tx, level); err != nil {
			return nil, err
		}
	} else {
		delta := quantity.Sub(level.Quantity)
		level.Quantity = quantity
		level.Status = stock.DeriveStatus(quantity, level.ReorderPoint, level.Status)
		if err := s.stockRepo.UpdateTx(ctx, tx, level); err != nil {
			return nil, err
		}
		if err := s.recordMovementTx(ctx, tx, level, delta, models.KindAdjustment, notes); err != nil {
			return nil, err
		}
		return level, s.recomputeAggregateTx(ctx, tx, material)
	}

	if err := s.recordMovementTx(ctx, tx, level, quantity, models.KindAdjustment, notes); err != nil {
		return nil, err
	}
	return level, s.recomputeAggregateTx(ctx, tx, material)
}

func (s *inventoryService) AdjustTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID, location string, delta decimal.Decimal, kind models.TransactionKind, notes *string) (*models.StockLevel, error) {
	if !kind.Valid() {
		return nil, common.NewValidationError("kind", "must be a declared transaction kind")
	}

	material, err := s.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}

	level, err := s.stockRepo.GetByMaterialAndLocationTx(ctx, tx, materialID, location)
	if err != nil {
		if !common.IsNotFound(err) {
			return nil, err
		}
		// No stock at this location: cannot consume from it, but an
		// addition creates the record.
		if delta.IsNegative() {
			return nil, err
		}
		level = s.newStockLevel(material, location)
		newQty, newStatus, ledgerErr := stock.ApplyDelta(decimal.Zero, delta, level.ReorderPoint, level.Status)
		if ledgerErr != nil {
			return nil, ledgerErr
		}
		level.Quantity = newQty
		level.Status = newStatus
		if err := s.stockRepo.CreateTx(ctx, tx, level); err != nil {
			return nil, err
		}
	} else {
		newQty, newStatus, ledgerErr := stock.ApplyDelta(level.Quantity, delta, level.ReorderPoint, level.Status)
		if ledgerErr != nil {
			return nil, ledgerErr
		}
		level.Quantity = newQty
		level.Status = newStatus
		if err := s.stockRepo.UpdateTx(ctx, tx, level); err != nil {
			return nil, err
		}
	}

	if err := s.recordMovementTx(ctx, tx, level, delta, kind, notes); err != nil {
		return nil, err
	}
	return level, s.recomputeAggregateTx(ctx, tx, material)
}

func (s *inventoryService) Transfer(ctx context.Context, materialID uuid.UUID, fromLocation, toLocation string, quantity decimal.Decimal) error {
	if err := common.ValidatePositiveDecimal(quantity, "quantity"); err != nil {
		return err
	}
	if fromLocation == toLocation {
		return common.NewValidationError("to_location", "must differ from source location")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	note := fmt.Sprintf("transfer %s -> %s", fromLocation, toLocation)
	if _, err := s.AdjustTx(ctx, tx, materialID, fromLocation, quantity.Neg(), models.KindAdjustment, &note); err != nil {
		return err
	}
	if _, err := s.AdjustTx(ctx, tx, materialID, toLocation, quantity, models.KindAdjustment, &note); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.invalidateStock(ctx, materialID, fromLocation)
	s.invalidateStock(ctx, materialID, toLocation)
	return nil
}

func (s *inventoryService) GetStockLevel(ctx context.Context, materialID uuid.UUID, location string) (*models.StockLevel, error) {
	// Try the cache first; cache errors fall through to the database.
	if cached, err := s.cacheService.GetStockLevel(ctx, materialID, location); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for stock %s/%s: %v", materialID.String(), location, err)
	}

	level, err := s.stockRepo.GetByMaterialAndLocation(ctx, materialID, location)
	if err != nil {
		return nil, err
	}

	// Stock changes often; keep the TTL short.
	if cacheErr := s.cacheService.SetStockLevel(ctx, level, 5*time.Minute); cacheErr != nil {
		log.Printf("Failed to cache stock %s/%s: %v", materialID.String(), location, cacheErr)
	}
	return level, nil
}

func (s *inventoryService) ListByMaterial(ctx context.Context, materialID uuid.UUID) ([]*models.StockLevel, error) {
	return s.stockRepo.ListByMaterial(ctx, materialID)
}

func (s *inventoryService) Search(ctx context.Context, filter *models.StockSearchFilter) ([]*models.StockLevel, error) {
	return s.stockRepo.Search(ctx, filter)
}

func (s *inventoryService) ListMovements(ctx context.Context, materialID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	return s.stockRepo.ListMovements(ctx, materialID, limit, offset)
}

func (s *inventoryService) newStockLevel(material *models.Material, location string) *models.StockLevel {
	return &models.StockLevel{
		ID:           uuid.New(),
		MaterialID:   material.ID,
		Location:     location,
		Quantity:     decimal.Zero,
		Unit:         material.Unit,
		ReorderPoint: material.MinQuantity,
		Status:       models.StatusOutOfStock,
	}
}

func (s *inventoryService) recordMovementTx(ctx context.Context, tx pgx.Tx, level *models.StockLevel, delta decimal.Decimal, kind models.TransactionKind, notes *string) error {
	return s.stockRepo.AddMovementTx(ctx, tx, &models.StockMovement{
		ID:            uuid.New(),
		StockLevelID:  level.ID,
		MaterialID:    level.MaterialID,
		Kind:          kind,
		Delta:         delta,
		QuantityAfter: level.Quantity,
		Notes:         notes,
	})
}

// recomputeAggregateTx rederives the material-level status from the sum of
// all its stock levels against min_quantity. Location reorder points play
// no part here.
func (s *inventoryService) recomputeAggregateTx(ctx context.Context, tx pgx.Tx, material *models.Material) error {
	levels, err := s.stockRepo.ListByMaterialTx(ctx, tx, material.ID)
	if err != nil {
		return err
	}
	status := stock.DeriveAggregateStatus(stock.Total(levels), material.MinQuantity, material.Status)
	if status == material.Status {
		return nil
	}
	return s.materialRepo.UpdateStatusTx(ctx, tx, material.ID, status)
}

func (s *inventoryService) InvalidateStockCache(ctx context.Context, materialID uuid.UUID, location string) {
	s.invalidateStock(ctx, materialID, location)
}

func (s *inventoryService) invalidateStock(ctx context.Context, materialID uuid.UUID, location string) {
	if cacheErr := s.cacheService.DeleteStockLevel(ctx, materialID, location); cacheErr != nil {
		log.Printf("Failed to invalidate stock cache %s/%s: %v", materialID.String(), location, cacheErr)
	}
	if cacheErr := s.cacheService.DeleteMaterial(ctx, materialID); cacheErr != nil {
		log.Printf("Failed to invalidate material cache %s: %v", materialID.String(), cacheErr)
	}
}
