package services

import (
	"context"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/google/uuid"
)

// repeatOrderThreshold is the completed-sale count at which a standard
// customer is promoted to repeat.
const repeatOrderThreshold = 3

type CustomerService interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Customer, error)
	RefreshTier(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	saleRepo     repositories.SaleRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository, saleRepo repositories.SaleRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, saleRepo: saleRepo}
}

func validateCustomer(c *models.Customer) error {
	if err := common.ValidateRequiredString(c.Name, "name"); err != nil {
		return err
	}
	if c.Tier != "" && !c.Tier.Valid() {
		return common.NewValidationError("tier", "must be one of: standard, repeat, vip")
	}
	for field, value := range map[string]*string{
		"email":   c.Email,
		"phone":   c.Phone,
		"address": c.Address,
	} {
		if err := common.ValidateOptionalString(value, field, common.MaxNameLength); err != nil {
			return err
		}
	}
	return common.ValidateOptionalString(c.Notes, "notes", common.MaxNotesLength)
}

func (s *customerService) Create(ctx context.Context, customer *models.Customer) error {
	if err := validateCustomer(customer); err != nil {
		return err
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.Tier == "" {
		customer.Tier = models.TierStandard
	}
	return s.customerRepo.Create(ctx, customer)
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) Update(ctx context.Context, customer *models.Customer) error {
	if err := validateCustomer(customer); err != nil {
		return err
	}
	return s.customerRepo.Update(ctx, customer)
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	return s.customerRepo.List(ctx, limit, offset)
}

// RefreshTier promotes a standard customer to repeat once they have enough
// completed sales. VIP is assigned by hand and never downgraded here.
func (s *customerService) RefreshTier(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer.Tier == models.TierVIP {
		return customer, nil
	}
	count, err := s.saleRepo.CountCompletedByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	tier := models.TierStandard
	if count >= repeatOrderThreshold {
		tier = models.TierRepeat
	}
	if tier != customer.Tier {
		customer.Tier = tier
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			return nil, err
		}
	}
	return customer, nil
}
