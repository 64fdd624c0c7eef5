package services

import (
	"context"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/google/uuid"
)

type SupplierService interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Supplier, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
}

func NewSupplierService(supplierRepo repositories.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func validateSupplier(s *models.Supplier) error {
	if err := common.ValidateRequiredString(s.Name, "name"); err != nil {
		return err
	}
	for field, value := range map[string]*string{
		"contact_name":  s.ContactName,
		"contact_email": s.ContactEmail,
		"contact_phone": s.ContactPhone,
		"address":       s.Address,
		"website":       s.Website,
	} {
		if err := common.ValidateOptionalString(value, field, common.MaxNameLength); err != nil {
			return err
		}
	}
	return common.ValidateOptionalString(s.Notes, "notes", common.MaxNotesLength)
}

func (s *supplierService) Create(ctx context.Context, supplier *models.Supplier) error {
	if err := validateSupplier(supplier); err != nil {
		return err
	}
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	return s.supplierRepo.Create(ctx, supplier)
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, id)
}

func (s *supplierService) Update(ctx context.Context, supplier *models.Supplier) error {
	if err := validateSupplier(supplier); err != nil {
		return err
	}
	return s.supplierRepo.Update(ctx, supplier)
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.supplierRepo.Delete(ctx, id)
}

func (s *supplierService) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	return s.supplierRepo.List(ctx, limit, offset)
}
