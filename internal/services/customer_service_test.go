package services

import (
	"context"
	"testing"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockSaleRepo     *MockSaleRepository
	service          CustomerService
	ctx              context.Context

	customer *models.Customer
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.service = NewCustomerService(suite.mockCustomerRepo, suite.mockSaleRepo)
	suite.ctx = context.Background()

	suite.customer = &models.Customer{
		ID:   uuid.New(),
		Name: "Ada Moriarty",
		Tier: models.TierStandard,
	}
}

func (suite *CustomerServiceTestSuite) TearDownTest() {
	suite.mockCustomerRepo.AssertExpectations(suite.T())
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateDefaultsToStandardTier() {
	customer := &models.Customer{Name: "New customer"}

	suite.mockCustomerRepo.On("Create", suite.ctx, customer).Return(nil)

	err := suite.service.Create(suite.ctx, customer)

	suite.NoError(err)
	suite.Equal(models.TierStandard, customer.Tier)
	suite.NotEqual(uuid.Nil, customer.ID)
}

func (suite *CustomerServiceTestSuite) TestCreateRequiresName() {
	err := suite.service.Create(suite.ctx, &models.Customer{})

	suite.True(common.IsValidation(err))
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestRefreshTierPromotesToRepeat() {
	suite.mockCustomerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.mockSaleRepo.On("CountCompletedByCustomer", suite.ctx, suite.customer.ID).Return(3, nil)
	suite.mockCustomerRepo.On("Update", suite.ctx, suite.customer).Return(nil)

	customer, err := suite.service.RefreshTier(suite.ctx, suite.customer.ID)

	suite.NoError(err)
	suite.Equal(models.TierRepeat, customer.Tier)
}

func (suite *CustomerServiceTestSuite) TestRefreshTierBelowThresholdStaysStandard() {
	suite.mockCustomerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.mockSaleRepo.On("CountCompletedByCustomer", suite.ctx, suite.customer.ID).Return(2, nil)

	customer, err := suite.service.RefreshTier(suite.ctx, suite.customer.ID)

	suite.NoError(err)
	suite.Equal(models.TierStandard, customer.Tier)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestRefreshTierNeverDowngradesVIP() {
	suite.customer.Tier = models.TierVIP
	suite.mockCustomerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	customer, err := suite.service.RefreshTier(suite.ctx, suite.customer.ID)

	suite.NoError(err)
	suite.Equal(models.TierVIP, customer.Tier)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CountCompletedByCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestRefreshTierRepeatFallsBackWhenSalesDrop() {
	suite.customer.Tier = models.TierRepeat
	suite.mockCustomerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.mockSaleRepo.On("CountCompletedByCustomer", suite.ctx, suite.customer.ID).Return(1, nil)
	suite.mockCustomerRepo.On("Update", suite.ctx, suite.customer).Return(nil)

	customer, err := suite.service.RefreshTier(suite.ctx, suite.customer.ID)

	suite.NoError(err)
	suite.Equal(models.TierStandard, customer.Tier)
}

func (suite *CustomerServiceTestSuite) TestRefreshTierUnknownCustomer() {
	id := uuid.New()
	suite.mockCustomerRepo.On("GetByID", suite.ctx, id).Return(nil, common.NewNotFoundError("customer", id.String()))

	_, err := suite.service.RefreshTier(suite.ctx, id)

	suite.True(common.IsNotFound(err))
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
