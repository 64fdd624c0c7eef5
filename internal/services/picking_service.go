package services

import (
	"context"
	"time"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PickResult reports the state of a pick after it commits.
type PickResult struct {
	Item *models.PickingItem `json:"item"`
	// ListComplete is true when every item on the owning list is fully
	// picked. Completing the list is a separate, explicit call.
	ListComplete bool `json:"list_complete"`
}

// PickingService manages picking lists and the pick operation. A pick
// increments the item's picked quantity and decrements the referenced
// material's stock in one transaction; both changes commit or neither does.
type PickingService interface {
	CreateList(ctx context.Context, list *models.PickingList) error
	GetList(ctx context.Context, id uuid.UUID) (*models.PickingList, error)
	ListLists(ctx context.Context, limit, offset int) ([]*models.PickingList, error)
	DeleteList(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, item *models.PickingItem) error
	ListItems(ctx context.Context, listID uuid.UUID) ([]*models.PickingItem, error)
	// GenerateForProject builds a picking list from the project's components.
	GenerateForProject(ctx context.Context, projectID uuid.UUID) (*models.PickingList, error)
	Pick(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal, notes *string) (*PickResult, error)
	CompleteList(ctx context.Context, listID uuid.UUID) (*models.PickingList, error)
	CancelList(ctx context.Context, listID uuid.UUID) error
}

type pickingService struct {
	db               repositories.Database
	pickingRepo      repositories.PickingRepository
	projectRepo      repositories.ProjectRepository
	inventoryService InventoryService
}

func NewPickingService(db repositories.Database, pickingRepo repositories.PickingRepository, projectRepo repositories.ProjectRepository, inventoryService InventoryService) PickingService {
	return &pickingService{
		db:               db,
		pickingRepo:      pickingRepo,
		projectRepo:      projectRepo,
		inventoryService: inventoryService,
	}
}

func (s *pickingService) CreateList(ctx context.Context, list *models.PickingList) error {
	if err := common.ValidateExactlyOneRef(list.ProjectID, list.SaleID, "project_id", "sale_id"); err != nil {
		return err
	}
	if err := common.ValidateOptionalString(list.Notes, "notes", common.MaxNotesLength); err != nil {
		return err
	}
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	if list.Status == "" {
		list.Status = models.PickingDraft
	}
	if !list.Status.Valid() {
		return common.NewValidationError("status", "must be a declared picking list status")
	}
	return s.pickingRepo.CreateList(ctx, list)
}

func (s *pickingService) GetList(ctx context.Context, id uuid.UUID) (*models.PickingList, error) {
	return s.pickingRepo.GetListByID(ctx, id)
}

func (s *pickingService) ListLists(ctx context.Context, limit, offset int) ([]*models.PickingList, error) {
	return s.pickingRepo.ListLists(ctx, limit, offset)
}

func (s *pickingService) DeleteList(ctx context.Context, id uuid.UUID) error {
	return s.pickingRepo.DeleteList(ctx, id)
}

func (s *pickingService) AddItem(ctx context.Context, item *models.PickingItem) error {
	if err := s.validateItem(item); err != nil {
		return err
	}
	list, err := s.pickingRepo.GetListByID(ctx, item.PickingListID)
	if err != nil {
		return err
	}
	if list.Status == models.PickingCompleted || list.Status == models.PickingCancelled {
		return common.NewValidationError("picking_list_id", "list is closed")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return s.pickingRepo.AddItem(ctx, item)
}

func (s *pickingService) validateItem(item *models.PickingItem) error {
	// A picking item references exactly one of component or material.
	if err := common.ValidateExactlyOneRef(item.ComponentID, item.MaterialID, "component_id", "material_id"); err != nil {
		return err
	}
	if err := common.ValidatePositiveDecimal(item.QuantityOrdered, "quantity_ordered"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeDecimal(item.QuantityPicked, "quantity_picked"); err != nil {
		return err
	}
	if !item.Unit.Valid() {
		return common.NewValidationError("unit", "must be a declared measurement unit")
	}
	return nil
}

func (s *pickingService) ListItems(ctx context.Context, listID uuid.UUID) ([]*models.PickingItem, error) {
	return s.pickingRepo.ListItems(ctx, listID)
}

func (s *pickingService) GenerateForProject(ctx context.Context, projectID uuid.UUID) (*models.PickingList, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	components, err := s.projectRepo.ListComponents(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, common.NewValidationError("project_id", "project has no components to pick")
	}

	list := &models.PickingList{
		ID:        uuid.New(),
		ProjectID: &project.ID,
		Status:    models.PickingDraft,
	}
	if err := s.pickingRepo.CreateList(ctx, list); err != nil {
		return nil, err
	}
	for _, component := range components {
		item := &models.PickingItem{
			ID:              uuid.New(),
			PickingListID:   list.ID,
			QuantityOrdered: component.Quantity,
			QuantityPicked:  decimal.Zero,
			Unit:            component.Unit,
		}
		if component.MaterialID != nil {
			item.MaterialID = component.MaterialID
		} else {
			item.ComponentID = &component.ID
		}
		if err := s.pickingRepo.AddItem(ctx, item); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *pickingService) Pick(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal, notes *string) (*PickResult, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, common.NewValidationError("quantity", "must be positive")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	item, err := s.pickingRepo.GetItemByIDTx(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	list, err := s.pickingRepo.GetListByID(ctx, item.PickingListID)
	if err != nil {
		return nil, err
	}
	if list.Status == models.PickingCompleted || list.Status == models.PickingCancelled {
		return nil, common.NewValidationError("picking_list_id", "list is closed")
	}

	// Picks are capped at the ordered quantity, mirroring the purchase
	// receiving rule.
	if item.QuantityPicked.Add(quantity).GreaterThan(item.QuantityOrdered) {
		return nil, &common.ExceedsOrderedError{
			Ordered:   item.QuantityOrdered,
			Recorded:  item.QuantityPicked,
			Requested: quantity,
		}
	}

	item.QuantityPicked = item.QuantityPicked.Add(quantity)
	if err := s.pickingRepo.UpdateItemTx(ctx, tx, item); err != nil {
		return nil, err
	}

	// Draw down the referenced material's stock in the same transaction.
	var invalidate *uuid.UUID
	if item.MaterialID != nil {
		if _, err := s.inventoryService.AdjustTx(ctx, tx, *item.MaterialID, DefaultLocation, quantity.Neg(), models.KindPick, notes); err != nil {
			return nil, err
		}
		invalidate = item.MaterialID
	}

	if list.Status == models.PickingDraft {
		list.Status = models.PickingInProgress
		if err := s.pickingRepo.UpdateListTx(ctx, tx, list); err != nil {
			return nil, err
		}
	}

	items, err := s.pickingRepo.ListItemsTx(ctx, tx, list.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if invalidate != nil {
		s.inventoryService.InvalidateStockCache(ctx, *invalidate, DefaultLocation)
	}

	return &PickResult{Item: item, ListComplete: allFullyPicked(items)}, nil
}

func allFullyPicked(items []*models.PickingItem) bool {
	for _, item := range items {
		if !item.FullyPicked() {
			return false
		}
	}
	return len(items) > 0
}

func (s *pickingService) CompleteList(ctx context.Context, listID uuid.UUID) (*models.PickingList, error) {
	list, err := s.pickingRepo.GetListByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.Status == models.PickingCompleted {
		return list, nil
	}
	if list.Status == models.PickingCancelled {
		return nil, common.NewValidationError("status", "cancelled list cannot be completed")
	}

	items, err := s.pickingRepo.ListItems(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !allFullyPicked(items) {
		return nil, common.NewValidationError("status", "not all items are fully picked")
	}

	now := time.Now()
	list.Status = models.PickingCompleted
	list.CompletedAt = &now
	if err := s.pickingRepo.UpdateList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *pickingService) CancelList(ctx context.Context, listID uuid.UUID) error {
	list, err := s.pickingRepo.GetListByID(ctx, listID)
	if err != nil {
		return err
	}
	if list.Status == models.PickingCompleted {
		return common.NewValidationError("status", "completed list cannot be cancelled")
	}
	list.Status = models.PickingCancelled
	return s.pickingRepo.UpdateList(ctx, list)
}
