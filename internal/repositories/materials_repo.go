package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MaterialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error)
	Update(ctx context.Context, material *models.Material) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.StockStatus) error
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.StockStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Material, error)
	Search(ctx context.Context, filter *models.MaterialSearchFilter) ([]*models.Material, error)
}

type materialsRepo struct {
	db Database
}

func NewMaterialRepository(db Database) MaterialRepository {
	return &materialsRepo{db: db}
}

const materialColumns = `id, supplier_id, name, material_type, unit, min_quantity, price_per_unit, thickness, color, status, description, created_at, updated_at`

func scanMaterial(row pgx.Row) (*models.Material, error) {
	m := &models.Material{}
	err := row.Scan(&m.ID, &m.SupplierID, &m.Name, &m.MaterialType, &m.Unit, &m.MinQuantity, &m.PricePerUnit, &m.Thickness, &m.Color, &m.Status, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *materialsRepo) Create(ctx context.Context, material *models.Material) error {
	query := `
		INSERT INTO materials (id, supplier_id, name, material_type, unit, min_quantity, price_per_unit, thickness, color, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, material.ID, material.SupplierID, material.Name, material.MaterialType, material.Unit, material.MinQuantity, material.PricePerUnit, material.Thickness, material.Color, material.Status, material.Description)
	return err
}

func (r *materialsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("material", id.String())
		}
		return nil, err
	}
	return m, nil
}

func (r *materialsRepo) Update(ctx context.Context, material *models.Material) error {
	query := `
		UPDATE materials
		SET supplier_id = $1, name = $2, material_type = $3, unit = $4, min_quantity = $5, price_per_unit = $6, thickness = $7, color = $8, status = $9, description = $10, updated_at = NOW()
		WHERE id = $11
	`
	tag, err := r.db.Exec(ctx, query, material.SupplierID, material.Name, material.MaterialType, material.Unit, material.MinQuantity, material.PricePerUnit, material.Thickness, material.Color, material.Status, material.Description, material.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("material", material.ID.String())
	}
	return nil
}

func (r *materialsRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.StockStatus) error {
	query := `UPDATE materials SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("material", id.String())
	}
	return nil
}

func (r *materialsRepo) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.StockStatus) error {
	query := `UPDATE materials SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("material", id.String())
	}
	return nil
}

func (r *materialsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Stock levels cascade with the material.
	query := `DELETE FROM materials WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("material", id.String())
	}
	return nil
}

func (r *materialsRepo) List(ctx context.Context, limit, offset int) ([]*models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []*models.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// Search performs filtered material queries with dynamic conditions
func (r *materialsRepo) Search(ctx context.Context, filter *models.MaterialSearchFilter) ([]*models.Material, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	queryBase := `SELECT ` + materialColumns + ` FROM materials WHERE 1=1`
	args := []interface{}{}
	conditionCount := 0

	if filter.Query != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND (name ILIKE $%d OR color ILIKE $%d OR description ILIKE $%d)`, conditionCount, conditionCount, conditionCount)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.MaterialType != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND material_type = $%d`, conditionCount)
		args = append(args, *filter.MaterialType)
	}
	if filter.SupplierID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND supplier_id = $%d`, conditionCount)
		args = append(args, *filter.SupplierID)
	}
	if filter.Status != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND status = $%d`, conditionCount)
		args = append(args, *filter.Status)
	}

	sortField := "name"
	switch filter.SortBy {
	case "created_at":
		sortField = "created_at"
	case "price_per_unit":
		sortField = "price_per_unit"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}
	queryBase += fmt.Sprintf(` ORDER BY %s %s`, sortField, sortOrder)

	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []*models.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}
