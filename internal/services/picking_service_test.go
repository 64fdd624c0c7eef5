package services

import (
	"context"
	"testing"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PickingServiceTestSuite struct {
	suite.Suite
	mockPickingRepo *MockPickingRepository
	mockProjectRepo *MockProjectRepository
	mockInventory   *MockInventoryService
	db              *stubDatabase
	service         PickingService
	ctx             context.Context

	list       *models.PickingList
	materialID uuid.UUID
}

func (suite *PickingServiceTestSuite) SetupTest() {
	suite.mockPickingRepo = new(MockPickingRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockInventory = new(MockInventoryService)
	suite.db = newStubDatabase()
	suite.service = NewPickingService(suite.db, suite.mockPickingRepo, suite.mockProjectRepo, suite.mockInventory)
	suite.ctx = context.Background()

	projectID := uuid.New()
	suite.list = &models.PickingList{
		ID:        uuid.New(),
		ProjectID: &projectID,
		Status:    models.PickingInProgress,
	}
	suite.materialID = uuid.New()
}

func (suite *PickingServiceTestSuite) TearDownTest() {
	suite.mockPickingRepo.AssertExpectations(suite.T())
	suite.mockProjectRepo.AssertExpectations(suite.T())
	suite.mockInventory.AssertExpectations(suite.T())
}

func (suite *PickingServiceTestSuite) item(ordered, picked int64) *models.PickingItem {
	return &models.PickingItem{
		ID:              uuid.New(),
		PickingListID:   suite.list.ID,
		MaterialID:      &suite.materialID,
		QuantityOrdered: decimal.NewFromInt(ordered),
		QuantityPicked:  decimal.NewFromInt(picked),
		Unit:            models.UnitSquareFoot,
	}
}

func (suite *PickingServiceTestSuite) TestPickDecrementsStockInSameTransaction() {
	item := suite.item(10, 0)
	tx := suite.db.tx
	qty := decimal.NewFromInt(4)

	suite.mockPickingRepo.On("GetItemByIDTx", suite.ctx, tx, item.ID).Return(item, nil)
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)
	suite.mockPickingRepo.On("UpdateItemTx", suite.ctx, tx, item).Return(nil)
	suite.mockInventory.On("AdjustTx", suite.ctx, tx, suite.materialID, DefaultLocation, qty.Neg(), models.KindPick, (*string)(nil)).Return(&models.StockLevel{}, nil)
	suite.mockPickingRepo.On("ListItemsTx", suite.ctx, tx, suite.list.ID).Return([]*models.PickingItem{item}, nil)
	suite.mockInventory.On("InvalidateStockCache", suite.ctx, suite.materialID, DefaultLocation).Return()

	result, err := suite.service.Pick(suite.ctx, item.ID, qty, nil)

	suite.NoError(err)
	suite.True(result.Item.QuantityPicked.Equal(qty))
	suite.False(result.ListComplete)
	suite.True(suite.db.tx.committed)
}

func (suite *PickingServiceTestSuite) TestPickBeyondOrderedRejectedBeforeMutation() {
	item := suite.item(10, 8)
	tx := suite.db.tx

	suite.mockPickingRepo.On("GetItemByIDTx", suite.ctx, tx, item.ID).Return(item, nil)
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)

	_, err := suite.service.Pick(suite.ctx, item.ID, decimal.NewFromInt(3), nil)

	var exceedsErr *common.ExceedsOrderedError
	suite.ErrorAs(err, &exceedsErr)
	suite.True(exceedsErr.Ordered.Equal(decimal.NewFromInt(10)))
	suite.True(exceedsErr.Recorded.Equal(decimal.NewFromInt(8)))
	suite.True(exceedsErr.Requested.Equal(decimal.NewFromInt(3)))
	suite.True(item.QuantityPicked.Equal(decimal.NewFromInt(8)))
	suite.mockPickingRepo.AssertNotCalled(suite.T(), "UpdateItemTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockInventory.AssertNotCalled(suite.T(), "AdjustTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.True(suite.db.tx.rolledBack)
}

func (suite *PickingServiceTestSuite) TestPickInsufficientStockRollsBackItemUpdate() {
	item := suite.item(10, 0)
	tx := suite.db.tx
	qty := decimal.NewFromInt(4)

	suite.mockPickingRepo.On("GetItemByIDTx", suite.ctx, tx, item.ID).Return(item, nil)
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)
	suite.mockPickingRepo.On("UpdateItemTx", suite.ctx, tx, item).Return(nil)
	suite.mockInventory.On("AdjustTx", suite.ctx, tx, suite.materialID, DefaultLocation, qty.Neg(), models.KindPick, (*string)(nil)).
		Return(nil, &common.InvalidAdjustmentError{})

	_, err := suite.service.Pick(suite.ctx, item.ID, qty, nil)

	var invalidErr *common.InvalidAdjustmentError
	suite.ErrorAs(err, &invalidErr)
	suite.False(suite.db.tx.committed)
	suite.True(suite.db.tx.rolledBack)
	suite.mockInventory.AssertNotCalled(suite.T(), "InvalidateStockCache", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PickingServiceTestSuite) TestPickMovesDraftListToInProgress() {
	suite.list.Status = models.PickingDraft
	item := suite.item(10, 0)
	tx := suite.db.tx
	qty := decimal.NewFromInt(2)

	suite.mockPickingRepo.On("GetItemByIDTx", suite.ctx, tx, item.ID).Return(item, nil)
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)
	suite.mockPickingRepo.On("UpdateItemTx", suite.ctx, tx, item).Return(nil)
	suite.mockInventory.On("AdjustTx", suite.ctx, tx, suite.materialID, DefaultLocation, qty.Neg(), models.KindPick, (*string)(nil)).Return(&models.StockLevel{}, nil)
	suite.mockPickingRepo.On("UpdateListTx", suite.ctx, tx, suite.list).Return(nil)
	suite.mockPickingRepo.On("ListItemsTx", suite.ctx, tx, suite.list.ID).Return([]*models.PickingItem{item}, nil)
	suite.mockInventory.On("InvalidateStockCache", suite.ctx, suite.materialID, DefaultLocation).Return()

	_, err := suite.service.Pick(suite.ctx, item.ID, qty, nil)

	suite.NoError(err)
	suite.Equal(models.PickingInProgress, suite.list.Status)
}

func (suite *PickingServiceTestSuite) TestPickReportsListComplete() {
	item := suite.item(10, 6)
	other := suite.item(5, 5)
	tx := suite.db.tx
	qty := decimal.NewFromInt(4)

	suite.mockPickingRepo.On("GetItemByIDTx", suite.ctx, tx, item.ID).Return(item, nil)
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)
	suite.mockPickingRepo.On("UpdateItemTx", suite.ctx, tx, item).Return(nil)
	suite.mockInventory.On("AdjustTx", suite.ctx, tx, suite.materialID, DefaultLocation, qty.Neg(), models.KindPick, (*string)(nil)).Return(&models.StockLevel{}, nil)
	suite.mockPickingRepo.On("ListItemsTx", suite.ctx, tx, suite.list.ID).Return([]*models.PickingItem{item, other}, nil)
	suite.mockInventory.On("InvalidateStockCache", suite.ctx, suite.materialID, DefaultLocation).Return()

	result, err := suite.service.Pick(suite.ctx, item.ID, qty, nil)

	suite.NoError(err)
	suite.True(result.ListComplete)
}

func (suite *PickingServiceTestSuite) TestPickOnClosedListRejected() {
	suite.list.Status = models.PickingCompleted
	item := suite.item(10, 0)
	tx := suite.db.tx

	suite.mockPickingRepo.On("GetItemByIDTx", suite.ctx, tx, item.ID).Return(item, nil)
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)

	_, err := suite.service.Pick(suite.ctx, item.ID, decimal.NewFromInt(1), nil)

	suite.True(common.IsValidation(err))
}

func (suite *PickingServiceTestSuite) TestPickNonPositiveQuantityRejected() {
	_, err := suite.service.Pick(suite.ctx, uuid.New(), decimal.Zero, nil)

	suite.True(common.IsValidation(err))
}

func (suite *PickingServiceTestSuite) TestPickComponentItemSkipsStock() {
	componentID := uuid.New()
	item := suite.item(10, 0)
	item.MaterialID = nil
	item.ComponentID = &componentID
	tx := suite.db.tx

	suite.mockPickingRepo.On("GetItemByIDTx", suite.ctx, tx, item.ID).Return(item, nil)
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)
	suite.mockPickingRepo.On("UpdateItemTx", suite.ctx, tx, item).Return(nil)
	suite.mockPickingRepo.On("ListItemsTx", suite.ctx, tx, suite.list.ID).Return([]*models.PickingItem{item}, nil)

	_, err := suite.service.Pick(suite.ctx, item.ID, decimal.NewFromInt(3), nil)

	suite.NoError(err)
	suite.mockInventory.AssertNotCalled(suite.T(), "AdjustTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PickingServiceTestSuite) TestGenerateForProjectBuildsItemsFromComponents() {
	projectID := uuid.New()
	project := &models.Project{ID: projectID, Name: "Tote bag", Status: models.ProjectPlanned}
	components := []*models.ProjectComponent{
		{ID: uuid.New(), ProjectID: projectID, Name: "Body panel", MaterialID: &suite.materialID, Quantity: decimal.NewFromInt(4), Unit: models.UnitSquareFoot},
		{ID: uuid.New(), ProjectID: projectID, Name: "Strap", Quantity: decimal.NewFromInt(2), Unit: models.UnitPiece},
	}

	suite.mockProjectRepo.On("GetByID", suite.ctx, projectID).Return(project, nil)
	suite.mockProjectRepo.On("ListComponents", suite.ctx, projectID).Return(components, nil)
	suite.mockPickingRepo.On("CreateList", suite.ctx, mock.MatchedBy(func(list *models.PickingList) bool {
		return list.ProjectID != nil && *list.ProjectID == projectID && list.Status == models.PickingDraft
	})).Return(nil)
	suite.mockPickingRepo.On("AddItem", suite.ctx, mock.MatchedBy(func(item *models.PickingItem) bool {
		return item.MaterialID != nil && *item.MaterialID == suite.materialID && item.QuantityOrdered.Equal(decimal.NewFromInt(4))
	})).Return(nil)
	suite.mockPickingRepo.On("AddItem", suite.ctx, mock.MatchedBy(func(item *models.PickingItem) bool {
		return item.ComponentID != nil && *item.ComponentID == components[1].ID && item.QuantityOrdered.Equal(decimal.NewFromInt(2))
	})).Return(nil)

	list, err := suite.service.GenerateForProject(suite.ctx, projectID)

	suite.NoError(err)
	suite.Equal(models.PickingDraft, list.Status)
}

func (suite *PickingServiceTestSuite) TestGenerateForProjectWithoutComponentsRejected() {
	projectID := uuid.New()
	suite.mockProjectRepo.On("GetByID", suite.ctx, projectID).Return(&models.Project{ID: projectID}, nil)
	suite.mockProjectRepo.On("ListComponents", suite.ctx, projectID).Return([]*models.ProjectComponent{}, nil)

	_, err := suite.service.GenerateForProject(suite.ctx, projectID)

	suite.True(common.IsValidation(err))
}

func (suite *PickingServiceTestSuite) TestCompleteListRequiresAllItemsPicked() {
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)
	suite.mockPickingRepo.On("ListItems", suite.ctx, suite.list.ID).Return([]*models.PickingItem{suite.item(10, 7)}, nil)

	_, err := suite.service.CompleteList(suite.ctx, suite.list.ID)

	suite.True(common.IsValidation(err))
}

func (suite *PickingServiceTestSuite) TestCompleteListSetsCompletedAt() {
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)
	suite.mockPickingRepo.On("ListItems", suite.ctx, suite.list.ID).Return([]*models.PickingItem{suite.item(10, 10)}, nil)
	suite.mockPickingRepo.On("UpdateList", suite.ctx, suite.list).Return(nil)

	list, err := suite.service.CompleteList(suite.ctx, suite.list.ID)

	suite.NoError(err)
	suite.Equal(models.PickingCompleted, list.Status)
	suite.NotNil(list.CompletedAt)
}

func (suite *PickingServiceTestSuite) TestCompleteListIdempotent() {
	suite.list.Status = models.PickingCompleted
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)

	list, err := suite.service.CompleteList(suite.ctx, suite.list.ID)

	suite.NoError(err)
	suite.Equal(models.PickingCompleted, list.Status)
	suite.mockPickingRepo.AssertNotCalled(suite.T(), "UpdateList", mock.Anything, mock.Anything)
}

func (suite *PickingServiceTestSuite) TestCancelCompletedListRejected() {
	suite.list.Status = models.PickingCompleted
	suite.mockPickingRepo.On("GetListByID", suite.ctx, suite.list.ID).Return(suite.list, nil)

	err := suite.service.CancelList(suite.ctx, suite.list.ID)

	suite.True(common.IsValidation(err))
}

func (suite *PickingServiceTestSuite) TestAddItemRequiresExactlyOneRef() {
	componentID := uuid.New()
	item := suite.item(5, 0)
	item.ComponentID = &componentID

	err := suite.service.AddItem(suite.ctx, item)

	suite.True(common.IsValidation(err))
}

func (suite *PickingServiceTestSuite) TestAddItemWithoutAnyRefRejected() {
	item := suite.item(5, 0)
	item.MaterialID = nil

	err := suite.service.AddItem(suite.ctx, item)

	suite.True(common.IsValidation(err))
}

func (suite *PickingServiceTestSuite) TestAddItemNonPositiveOrderedQuantityRejected() {
	item := suite.item(0, 0)

	err := suite.service.AddItem(suite.ctx, item)

	suite.True(common.IsValidation(err))
}

func TestPickingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PickingServiceTestSuite))
}
