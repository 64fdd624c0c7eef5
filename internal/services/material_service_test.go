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

type MaterialServiceTestSuite struct {
	suite.Suite
	mockMaterialRepo *MockMaterialRepository
	mockStockRepo    *MockStockRepository
	mockCache        *MockCacheService
	service          MaterialService
	ctx              context.Context

	material *models.Material
}

func (suite *MaterialServiceTestSuite) SetupTest() {
	suite.mockMaterialRepo = new(MockMaterialRepository)
	suite.mockStockRepo = new(MockStockRepository)
	suite.mockCache = new(MockCacheService)
	suite.service = NewMaterialService(suite.mockMaterialRepo, suite.mockStockRepo, suite.mockCache)
	suite.ctx = context.Background()

	suite.material = &models.Material{
		ID:           uuid.New(),
		Name:         "Veg-tan shoulder",
		MaterialType: models.MaterialLeather,
		Unit:         models.UnitSquareFoot,
		MinQuantity:  decimal.NewFromInt(10),
		PricePerUnit: decimal.NewFromInt(14),
		Status:       models.StatusInStock,
	}
}

func (suite *MaterialServiceTestSuite) TearDownTest() {
	suite.mockMaterialRepo.AssertExpectations(suite.T())
	suite.mockStockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *MaterialServiceTestSuite) TestCreateStartsOutOfStock() {
	material := &models.Material{
		Name:         "Brass buckle",
		MaterialType: models.MaterialHardware,
		Unit:         models.UnitPiece,
		MinQuantity:  decimal.NewFromInt(20),
	}

	suite.mockMaterialRepo.On("Create", suite.ctx, material).Return(nil)

	err := suite.service.Create(suite.ctx, material)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, material.ID)
	suite.Equal(models.StatusOutOfStock, material.Status)
}

func (suite *MaterialServiceTestSuite) TestCreateInvalidUnitRejected() {
	material := &models.Material{
		Name:         "Brass buckle",
		MaterialType: models.MaterialHardware,
		Unit:         models.MeasurementUnit("dozen"),
	}

	err := suite.service.Create(suite.ctx, material)

	suite.True(common.IsValidation(err))
	suite.mockMaterialRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *MaterialServiceTestSuite) TestGetByIDCacheHitSkipsRepo() {
	suite.mockCache.On("GetMaterial", suite.ctx, suite.material.ID).Return(suite.material, nil)

	material, err := suite.service.GetByID(suite.ctx, suite.material.ID)

	suite.NoError(err)
	suite.Equal(suite.material, material)
	suite.mockMaterialRepo.AssertNotCalled(suite.T(), "GetByID", mock.Anything, mock.Anything)
}

func (suite *MaterialServiceTestSuite) TestGetByIDCacheMissPopulatesCache() {
	suite.mockCache.On("GetMaterial", suite.ctx, suite.material.ID).Return(nil, nil)
	suite.mockMaterialRepo.On("GetByID", suite.ctx, suite.material.ID).Return(suite.material, nil)
	suite.mockCache.On("SetMaterial", suite.ctx, suite.material, materialCacheTTL).Return(nil)

	material, err := suite.service.GetByID(suite.ctx, suite.material.ID)

	suite.NoError(err)
	suite.Equal(suite.material, material)
}

func (suite *MaterialServiceTestSuite) TestUpdateRederivesStatusFromStock() {
	updated := *suite.material
	updated.MinQuantity = decimal.NewFromInt(30)
	levels := []*models.StockLevel{
		{MaterialID: suite.material.ID, Quantity: decimal.NewFromInt(12)},
	}

	suite.mockMaterialRepo.On("GetByID", suite.ctx, suite.material.ID).Return(suite.material, nil)
	suite.mockStockRepo.On("ListByMaterial", suite.ctx, suite.material.ID).Return(levels, nil)
	suite.mockMaterialRepo.On("Update", suite.ctx, &updated).Return(nil)
	suite.mockCache.On("DeleteMaterial", suite.ctx, suite.material.ID).Return(nil)

	err := suite.service.Update(suite.ctx, &updated)

	suite.NoError(err)
	// Total 12 against the raised minimum of 30.
	suite.Equal(models.StatusLowStock, updated.Status)
}

func (suite *MaterialServiceTestSuite) TestUpdateCannotClearDiscontinued() {
	existing := *suite.material
	existing.Status = models.StatusDiscontinued
	updated := *suite.material
	updated.Status = models.StatusInStock

	suite.mockMaterialRepo.On("GetByID", suite.ctx, suite.material.ID).Return(&existing, nil)
	suite.mockMaterialRepo.On("Update", suite.ctx, &updated).Return(nil)
	suite.mockCache.On("DeleteMaterial", suite.ctx, suite.material.ID).Return(nil)

	err := suite.service.Update(suite.ctx, &updated)

	suite.NoError(err)
	suite.Equal(models.StatusDiscontinued, updated.Status)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "ListByMaterial", mock.Anything, mock.Anything)
}

func (suite *MaterialServiceTestSuite) TestDiscontinueSetsStatus() {
	suite.mockMaterialRepo.On("GetByID", suite.ctx, suite.material.ID).Return(suite.material, nil)
	suite.mockMaterialRepo.On("UpdateStatus", suite.ctx, suite.material.ID, models.StatusDiscontinued).Return(nil)
	suite.mockCache.On("DeleteMaterial", suite.ctx, suite.material.ID).Return(nil)

	material, err := suite.service.Discontinue(suite.ctx, suite.material.ID)

	suite.NoError(err)
	suite.Equal(models.StatusDiscontinued, material.Status)
}

func (suite *MaterialServiceTestSuite) TestDiscontinueIdempotent() {
	suite.material.Status = models.StatusDiscontinued
	suite.mockMaterialRepo.On("GetByID", suite.ctx, suite.material.ID).Return(suite.material, nil)

	material, err := suite.service.Discontinue(suite.ctx, suite.material.ID)

	suite.NoError(err)
	suite.Equal(models.StatusDiscontinued, material.Status)
	suite.mockMaterialRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MaterialServiceTestSuite) TestRestoreRederivesFromStock() {
	suite.material.Status = models.StatusDiscontinued
	levels := []*models.StockLevel{
		{MaterialID: suite.material.ID, Quantity: decimal.NewFromInt(40)},
	}

	suite.mockMaterialRepo.On("GetByID", suite.ctx, suite.material.ID).Return(suite.material, nil)
	suite.mockStockRepo.On("ListByMaterial", suite.ctx, suite.material.ID).Return(levels, nil)
	suite.mockMaterialRepo.On("UpdateStatus", suite.ctx, suite.material.ID, models.StatusInStock).Return(nil)
	suite.mockCache.On("DeleteMaterial", suite.ctx, suite.material.ID).Return(nil)

	material, err := suite.service.Restore(suite.ctx, suite.material.ID)

	suite.NoError(err)
	suite.Equal(models.StatusInStock, material.Status)
}

func (suite *MaterialServiceTestSuite) TestLowStockCombinesLowAndOut() {
	low := models.StatusLowStock
	out := models.StatusOutOfStock
	lowMaterial := &models.Material{ID: uuid.New(), Status: low}
	outMaterial := &models.Material{ID: uuid.New(), Status: out}

	suite.mockMaterialRepo.On("Search", suite.ctx, &models.MaterialSearchFilter{Status: &low}).Return([]*models.Material{lowMaterial}, nil)
	suite.mockMaterialRepo.On("Search", suite.ctx, &models.MaterialSearchFilter{Status: &out}).Return([]*models.Material{outMaterial}, nil)

	materials, err := suite.service.LowStock(suite.ctx)

	suite.NoError(err)
	suite.Len(materials, 2)
}

func TestMaterialServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MaterialServiceTestSuite))
}
