package services

import (
	"context"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PurchaseService manages purchase orders and the receiving operation.
// Receiving is all-or-nothing: the line item's received quantity and the
// destination stock level change in one transaction.
type PurchaseService interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	Update(ctx context.Context, purchase *models.Purchase) error
	List(ctx context.Context, limit, offset int) ([]*models.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, item *models.PurchaseItem) error
	UpdateItem(ctx context.Context, item *models.PurchaseItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, purchaseID uuid.UUID) ([]*models.PurchaseItem, error)

	Receive(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal, notes *string) (*models.PurchaseItem, error)
}

type purchaseService struct {
	db               repositories.Database
	purchaseRepo     repositories.PurchaseRepository
	supplierRepo     repositories.SupplierRepository
	toolRepo         repositories.ToolRepository
	inventoryService InventoryService
}

func NewPurchaseService(db repositories.Database, purchaseRepo repositories.PurchaseRepository, supplierRepo repositories.SupplierRepository, toolRepo repositories.ToolRepository, inventoryService InventoryService) PurchaseService {
	return &purchaseService{
		db:               db,
		purchaseRepo:     purchaseRepo,
		supplierRepo:     supplierRepo,
		toolRepo:         toolRepo,
		inventoryService: inventoryService,
	}
}

func (s *purchaseService) Create(ctx context.Context, purchase *models.Purchase) error {
	if _, err := s.supplierRepo.GetByID(ctx, purchase.SupplierID); err != nil {
		return err
	}
	if err := common.ValidateOptionalString(purchase.Notes, "notes", common.MaxNotesLength); err != nil {
		return err
	}
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	if purchase.Status == "" {
		purchase.Status = models.PurchaseDraft
	}
	if !purchase.Status.Valid() {
		return common.NewValidationError("status", "must be a declared purchase status")
	}
	purchase.TotalAmount = decimal.Zero
	return s.purchaseRepo.Create(ctx, purchase)
}

func (s *purchaseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	return s.purchaseRepo.GetByID(ctx, id)
}

func (s *purchaseService) Update(ctx context.Context, purchase *models.Purchase) error {
	if !purchase.Status.Valid() {
		return common.NewValidationError("status", "must be a declared purchase status")
	}
	if err := common.ValidateOptionalString(purchase.Notes, "notes", common.MaxNotesLength); err != nil {
		return err
	}
	return s.purchaseRepo.Update(ctx, purchase)
}

func (s *purchaseService) List(ctx context.Context, limit, offset int) ([]*models.Purchase, error) {
	return s.purchaseRepo.List(ctx, limit, offset)
}

func (s *purchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.purchaseRepo.Delete(ctx, id)
}

func (s *purchaseService) AddItem(ctx context.Context, item *models.PurchaseItem) error {
	if err := validatePurchaseItem(item); err != nil {
		return err
	}
	if _, err := s.purchaseRepo.GetByID(ctx, item.PurchaseID); err != nil {
		return err
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.QuantityReceived = decimal.Zero
	if err := s.purchaseRepo.AddItem(ctx, item); err != nil {
		return err
	}
	return s.recalculateTotal(ctx, item.PurchaseID)
}

func validatePurchaseItem(item *models.PurchaseItem) error {
	if !item.ItemType.Valid() {
		return common.NewValidationError("item_type", "must be one of: material, tool, supplies")
	}
	switch item.ItemType {
	case models.PurchaseItemMaterial:
		if item.MaterialID == nil {
			return common.NewValidationError("material_id", "is required for material items")
		}
		if item.ToolID != nil {
			return common.NewValidationError("tool_id", "must not be set for material items")
		}
	case models.PurchaseItemTool:
		if item.ToolID == nil {
			return common.NewValidationError("tool_id", "is required for tool items")
		}
		if item.MaterialID != nil {
			return common.NewValidationError("material_id", "must not be set for tool items")
		}
	case models.PurchaseItemSupplies:
		if item.MaterialID != nil || item.ToolID != nil {
			return common.NewValidationError("item_type", "supplies items carry no material or tool reference")
		}
		if item.Description == nil || *item.Description == "" {
			return common.NewValidationError("description", "is required for supplies items")
		}
	}
	if err := common.ValidatePositiveDecimal(item.QuantityOrdered, "quantity_ordered"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeDecimal(item.PriceEach, "price_each"); err != nil {
		return err
	}
	return common.ValidateOptionalString(item.Description, "description", common.MaxNameLength)
}

func (s *purchaseService) UpdateItem(ctx context.Context, item *models.PurchaseItem) error {
	if err := validatePurchaseItem(item); err != nil {
		return err
	}
	if item.QuantityOrdered.LessThan(item.QuantityReceived) {
		return common.NewValidationError("quantity_ordered", "must not drop below the received quantity")
	}
	if err := s.purchaseRepo.UpdateItem(ctx, item); err != nil {
		return err
	}
	return s.recalculateTotal(ctx, item.PurchaseID)
}

func (s *purchaseService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.purchaseRepo.GetItemByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.purchaseRepo.DeleteItem(ctx, id); err != nil {
		return err
	}
	return s.recalculateTotal(ctx, item.PurchaseID)
}

func (s *purchaseService) ListItems(ctx context.Context, purchaseID uuid.UUID) ([]*models.PurchaseItem, error) {
	return s.purchaseRepo.ListItems(ctx, purchaseID)
}

// recalculateTotal rederives the purchase's total from ordered quantities
// and unit prices. Received quantities play no part in the total.
func (s *purchaseService) recalculateTotal(ctx context.Context, purchaseID uuid.UUID) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	items, err := s.purchaseRepo.ListItems(ctx, purchaseID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.PriceEach.Mul(item.QuantityOrdered))
	}
	purchase.TotalAmount = total
	return s.purchaseRepo.Update(ctx, purchase)
}

func (s *purchaseService) Receive(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal, notes *string) (*models.PurchaseItem, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, common.NewValidationError("quantity", "must be positive")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	item, err := s.purchaseRepo.GetItemByIDTx(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	// Receiving more than ordered is rejected before any mutation.
	if item.QuantityReceived.Add(quantity).GreaterThan(item.QuantityOrdered) {
		return nil, &common.ExceedsOrderedError{
			Ordered:   item.QuantityOrdered,
			Recorded:  item.QuantityReceived,
			Requested: quantity,
		}
	}

	item.QuantityReceived = item.QuantityReceived.Add(quantity)
	if err := s.purchaseRepo.UpdateItemTx(ctx, tx, item); err != nil {
		return nil, err
	}

	// Route the receipt into inventory when the line resolves to a material.
	var invalidate *uuid.UUID
	if item.ItemType == models.PurchaseItemMaterial && item.MaterialID != nil {
		if _, err := s.inventoryService.AdjustTx(ctx, tx, *item.MaterialID, DefaultLocation, quantity, models.KindPurchaseReceipt, notes); err != nil {
			return nil, err
		}
		invalidate = item.MaterialID
	}

	// A fully received tool goes on the shelf as available, in the same
	// transaction as the receipt itself.
	if item.ItemType == models.PurchaseItemTool && item.ToolID != nil && item.FullyReceived() {
		tool, err := s.toolRepo.GetByID(ctx, *item.ToolID)
		if err != nil {
			return nil, err
		}
		if tool.Status != models.ToolAvailable {
			tool.Status = models.ToolAvailable
			if err := s.toolRepo.UpdateTx(ctx, tx, tool); err != nil {
				return nil, err
			}
		}
	}

	if err := s.updatePurchaseStatusTx(ctx, tx, item.PurchaseID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if invalidate != nil {
		s.inventoryService.InvalidateStockCache(ctx, *invalidate, DefaultLocation)
	}

	return item, nil
}

func (s *purchaseService) updatePurchaseStatusTx(ctx context.Context, tx pgx.Tx, purchaseID uuid.UUID) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase.Status == models.PurchaseCancelled {
		return common.NewValidationError("status", "cancelled purchase cannot receive stock")
	}

	items, err := s.purchaseRepo.ListItemsTx(ctx, tx, purchaseID)
	if err != nil {
		return err
	}
	allReceived := len(items) > 0
	for _, it := range items {
		if !it.FullyReceived() {
			allReceived = false
			break
		}
	}
	if allReceived {
		purchase.Status = models.PurchaseReceived
	} else {
		purchase.Status = models.PurchasePartiallyReceived
	}
	return s.purchaseRepo.UpdateTx(ctx, tx, purchase)
}
