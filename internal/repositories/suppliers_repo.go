package repositories

import (
	"context"
	"errors"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Supplier, error)
}

type suppliersRepo struct {
	db Database
}

func NewSupplierRepository(db Database) SupplierRepository {
	return &suppliersRepo{db: db}
}

func (r *suppliersRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_name, contact_email, contact_phone, address, website, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.Name, supplier.ContactName, supplier.ContactEmail, supplier.ContactPhone, supplier.Address, supplier.Website, supplier.Notes)
	return err
}

func (r *suppliersRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	s := &models.Supplier{}
	query := `
		SELECT id, name, contact_name, contact_email, contact_phone, address, website, notes, created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.ContactName, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.Website, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("supplier", id.String())
		}
		return nil, err
	}
	return s, nil
}

func (r *suppliersRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, contact_name = $2, contact_email = $3, contact_phone = $4, address = $5, website = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
	`
	tag, err := r.db.Exec(ctx, query, supplier.Name, supplier.ContactName, supplier.ContactEmail, supplier.ContactPhone, supplier.Address, supplier.Website, supplier.Notes, supplier.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("supplier", supplier.ID.String())
	}
	return nil
}

func (r *suppliersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("supplier", id.String())
	}
	return nil
}

func (r *suppliersRepo) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	query := `
		SELECT id, name, contact_name, contact_email, contact_phone, address, website, notes, created_at, updated_at
		FROM suppliers
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		s := &models.Supplier{}
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactName, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.Website, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}
