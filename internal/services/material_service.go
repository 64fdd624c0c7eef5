package services

import (
	"context"
	"time"

	"hidecraft/internal/caching"
	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"
	"hidecraft/internal/stock"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

const materialCacheTTL = 10 * time.Minute

// MaterialService owns the material catalog. Status is derived from total
// stock against the minimum, except discontinued which is set and cleared
// explicitly and never overridden by stock math.
type MaterialService interface {
	Create(ctx context.Context, material *models.Material) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error)
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Material, error)
	Search(ctx context.Context, filter *models.MaterialSearchFilter) ([]*models.Material, error)
	Discontinue(ctx context.Context, id uuid.UUID) (*models.Material, error)
	Restore(ctx context.Context, id uuid.UUID) (*models.Material, error)
	LowStock(ctx context.Context) ([]*models.Material, error)
}

type materialService struct {
	materialRepo repositories.MaterialRepository
	stockRepo    repositories.StockRepository
	cacheService caching.CacheService
}

func NewMaterialService(materialRepo repositories.MaterialRepository, stockRepo repositories.StockRepository, cacheService caching.CacheService) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
		cacheService: cacheService,
	}
}

func validateMaterial(m *models.Material) error {
	if err := common.ValidateRequiredString(m.Name, "name"); err != nil {
		return err
	}
	if !m.MaterialType.Valid() {
		return common.NewValidationError("material_type", "must be a declared material type")
	}
	if !m.Unit.Valid() {
		return common.NewValidationError("unit", "must be a declared measurement unit")
	}
	if err := common.ValidateNonNegativeDecimal(m.MinQuantity, "min_quantity"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeDecimal(m.PricePerUnit, "price_per_unit"); err != nil {
		return err
	}
	if m.Thickness != nil {
		if err := common.ValidatePositiveDecimal(*m.Thickness, "thickness"); err != nil {
			return err
		}
	}
	if err := common.ValidateOptionalString(m.Color, "color", common.MaxNameLength); err != nil {
		return err
	}
	return common.ValidateOptionalString(m.Description, "description", common.MaxNotesLength)
}

func (s *materialService) Create(ctx context.Context, material *models.Material) error {
	if err := validateMaterial(material); err != nil {
		return err
	}
	if material.ID == uuid.Nil {
		material.ID = uuid.New()
	}
	// New materials have no stock, so they start out of stock unless the
	// minimum is zero.
	material.Status = stock.DeriveAggregateStatus(decimal.Zero, material.MinQuantity, models.StatusInStock)
	return s.materialRepo.Create(ctx, material)
}

func (s *materialService) GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	if cached, err := s.cacheService.GetMaterial(ctx, id); err == nil && cached != nil {
		return cached, nil
	}
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetMaterial(ctx, material, materialCacheTTL); err != nil {
		log.Warnf("material cache set failed: %v", err)
	}
	return material, nil
}

func (s *materialService) Update(ctx context.Context, material *models.Material) error {
	if err := validateMaterial(material); err != nil {
		return err
	}
	existing, err := s.materialRepo.GetByID(ctx, material.ID)
	if err != nil {
		return err
	}
	// Status is not writable through Update. Discontinued sticks; otherwise
	// rederive in case the minimum changed.
	if existing.Status == models.StatusDiscontinued {
		material.Status = models.StatusDiscontinued
	} else {
		levels, err := s.stockRepo.ListByMaterial(ctx, material.ID)
		if err != nil {
			return err
		}
		material.Status = stock.DeriveAggregateStatus(stock.Total(levels), material.MinQuantity, existing.Status)
	}
	if err := s.materialRepo.Update(ctx, material); err != nil {
		return err
	}
	s.invalidate(ctx, material.ID)
	return nil
}

func (s *materialService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *materialService) List(ctx context.Context, limit, offset int) ([]*models.Material, error) {
	return s.materialRepo.List(ctx, limit, offset)
}

func (s *materialService) Search(ctx context.Context, filter *models.MaterialSearchFilter) ([]*models.Material, error) {
	return s.materialRepo.Search(ctx, filter)
}

// Discontinue marks a material as discontinued. Stock adjustments keep
// working for it but never change its status back.
func (s *materialService) Discontinue(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material.Status == models.StatusDiscontinued {
		return material, nil
	}
	material.Status = models.StatusDiscontinued
	if err := s.materialRepo.UpdateStatus(ctx, id, models.StatusDiscontinued); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return material, nil
}

// Restore clears the discontinued flag and rederives status from current
// stock totals.
func (s *materialService) Restore(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material.Status != models.StatusDiscontinued {
		return material, nil
	}
	levels, err := s.stockRepo.ListByMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	material.Status = stock.DeriveAggregateStatus(stock.Total(levels), material.MinQuantity, models.StatusInStock)
	if err := s.materialRepo.UpdateStatus(ctx, id, material.Status); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return material, nil
}

// LowStock lists materials sitting at low or out-of-stock, for reorder
// review and the scheduled alert job.
func (s *materialService) LowStock(ctx context.Context) ([]*models.Material, error) {
	low := models.StatusLowStock
	out := models.StatusOutOfStock
	lowOnes, err := s.materialRepo.Search(ctx, &models.MaterialSearchFilter{Status: &low})
	if err != nil {
		return nil, err
	}
	outOnes, err := s.materialRepo.Search(ctx, &models.MaterialSearchFilter{Status: &out})
	if err != nil {
		return nil, err
	}
	return append(lowOnes, outOnes...), nil
}

func (s *materialService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheService.DeleteMaterial(ctx, id); err != nil {
		log.Warnf("material cache invalidation failed: %v", err)
	}
}
