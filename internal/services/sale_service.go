package services

import (
	"context"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleService interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	Update(ctx context.Context, sale *models.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Sale, error)

	AddItem(ctx context.Context, item *models.SaleItem) error
	DeleteItem(ctx context.Context, saleID, itemID uuid.UUID) error
	ListItems(ctx context.Context, saleID uuid.UUID) ([]*models.SaleItem, error)

	Complete(ctx context.Context, id uuid.UUID) (*models.Sale, error)
}

type saleService struct {
	db               repositories.Database
	saleRepo         repositories.SaleRepository
	customerRepo     repositories.CustomerRepository
	materialRepo     repositories.MaterialRepository
	customerService  CustomerService
	inventoryService InventoryService
}

func NewSaleService(db repositories.Database, saleRepo repositories.SaleRepository, customerRepo repositories.CustomerRepository, materialRepo repositories.MaterialRepository, customerService CustomerService, inventoryService InventoryService) SaleService {
	return &saleService{
		db:               db,
		saleRepo:         saleRepo,
		customerRepo:     customerRepo,
		materialRepo:     materialRepo,
		customerService:  customerService,
		inventoryService: inventoryService,
	}
}

func (s *saleService) Create(ctx context.Context, sale *models.Sale) error {
	if _, err := s.customerRepo.GetByID(ctx, sale.CustomerID); err != nil {
		return err
	}
	if err := common.ValidateOptionalString(sale.Notes, "notes", common.MaxNotesLength); err != nil {
		return err
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.Status == "" {
		sale.Status = models.SaleQuoted
	}
	if !sale.Status.Valid() {
		return common.NewValidationError("status", "must be a declared sale status")
	}
	sale.TotalAmount = decimal.Zero
	return s.saleRepo.Create(ctx, sale)
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

func (s *saleService) Update(ctx context.Context, sale *models.Sale) error {
	if !sale.Status.Valid() {
		return common.NewValidationError("status", "must be a declared sale status")
	}
	if err := common.ValidateOptionalString(sale.Notes, "notes", common.MaxNotesLength); err != nil {
		return err
	}
	return s.saleRepo.Update(ctx, sale)
}

func (s *saleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.saleRepo.Delete(ctx, id)
}

func (s *saleService) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	return s.saleRepo.List(ctx, limit, offset)
}

func (s *saleService) AddItem(ctx context.Context, item *models.SaleItem) error {
	if err := common.ValidateRequiredString(item.Description, "description"); err != nil {
		return err
	}
	if err := common.ValidatePositiveDecimal(item.Quantity, "quantity"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeDecimal(item.UnitPrice, "unit_price"); err != nil {
		return err
	}
	if item.MaterialID != nil {
		if _, err := s.materialRepo.GetByID(ctx, *item.MaterialID); err != nil {
			return err
		}
	}
	sale, err := s.saleRepo.GetByID(ctx, item.SaleID)
	if err != nil {
		return err
	}
	if sale.Status == models.SaleCompleted || sale.Status == models.SaleCancelled {
		return common.NewValidationError("sale_id", "sale is closed")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.saleRepo.AddItem(ctx, item); err != nil {
		return err
	}
	return s.recalculateTotal(ctx, item.SaleID)
}

func (s *saleService) DeleteItem(ctx context.Context, saleID, itemID uuid.UUID) error {
	if err := s.saleRepo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	return s.recalculateTotal(ctx, saleID)
}

func (s *saleService) ListItems(ctx context.Context, saleID uuid.UUID) ([]*models.SaleItem, error) {
	return s.saleRepo.ListItems(ctx, saleID)
}

func (s *saleService) recalculateTotal(ctx context.Context, saleID uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	items, err := s.saleRepo.ListItems(ctx, saleID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(item.Quantity))
	}
	sale.TotalAmount = total
	return s.saleRepo.Update(ctx, sale)
}

// Complete closes the sale, consumes the stock behind any material-linked
// lines in the same transaction, and refreshes the customer's tier, which
// may promote them to repeat.
func (s *saleService) Complete(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status == models.SaleCancelled {
		return nil, common.NewValidationError("status", "cancelled sale cannot be completed")
	}
	if sale.Status == models.SaleCompleted {
		return sale, nil
	}

	items, err := s.saleRepo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Material lines draw down stock through the ledger; the status change
	// and the consumption commit or roll back together.
	var invalidate []uuid.UUID
	for _, item := range items {
		if item.MaterialID == nil {
			continue
		}
		if _, err := s.inventoryService.AdjustTx(ctx, tx, *item.MaterialID, DefaultLocation, item.Quantity.Neg(), models.KindConsumption, sale.Notes); err != nil {
			return nil, err
		}
		invalidate = append(invalidate, *item.MaterialID)
	}

	sale.Status = models.SaleCompleted
	if err := s.saleRepo.UpdateTx(ctx, tx, sale); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	for _, materialID := range invalidate {
		s.inventoryService.InvalidateStockCache(ctx, materialID, DefaultLocation)
	}

	if _, err := s.customerService.RefreshTier(ctx, sale.CustomerID); err != nil {
		return nil, err
	}
	return sale, nil
}
