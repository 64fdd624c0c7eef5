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

type StockRepository interface {
	Create(ctx context.Context, level *models.StockLevel) error
	CreateTx(ctx context.Context, tx pgx.Tx, level *models.StockLevel) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StockLevel, error)
	GetByMaterialAndLocation(ctx context.Context, materialID uuid.UUID, location string) (*models.StockLevel, error)
	// GetByMaterialAndLocationTx locks the row for the duration of the
	// transaction so pick/receive paths read and write consistently.
	GetByMaterialAndLocationTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID, location string) (*models.StockLevel, error)
	Update(ctx context.Context, level *models.StockLevel) error
	UpdateTx(ctx context.Context, tx pgx.Tx, level *models.StockLevel) error
	ListByMaterial(ctx context.Context, materialID uuid.UUID) ([]*models.StockLevel, error)
	ListByMaterialTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID) ([]*models.StockLevel, error)
	Search(ctx context.Context, filter *models.StockSearchFilter) ([]*models.StockLevel, error)
	AddMovement(ctx context.Context, movement *models.StockMovement) error
	AddMovementTx(ctx context.Context, tx pgx.Tx, movement *models.StockMovement) error
	ListMovements(ctx context.Context, materialID uuid.UUID, limit, offset int) ([]*models.StockMovement, error)
}

type stockRepo struct {
	db Database
}

func NewStockRepository(db Database) StockRepository {
	return &stockRepo{db: db}
}

const stockColumns = `id, material_id, location, quantity, unit, reorder_point, status, created_at, last_updated`

func scanStockLevel(row pgx.Row) (*models.StockLevel, error) {
	lvl := &models.StockLevel{}
	err := row.Scan(&lvl.ID, &lvl.MaterialID, &lvl.Location, &lvl.Quantity, &lvl.Unit, &lvl.ReorderPoint, &lvl.Status, &lvl.CreatedAt, &lvl.LastUpdated)
	if err != nil {
		return nil, err
	}
	return lvl, nil
}

const insertStockLevel = `
	INSERT INTO stock_levels (id, material_id, location, quantity, unit, reorder_point, status, created_at, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
`

func (r *stockRepo) Create(ctx context.Context, level *models.StockLevel) error {
	_, err := r.db.Exec(ctx, insertStockLevel, level.ID, level.MaterialID, level.Location, level.Quantity, level.Unit, level.ReorderPoint, level.Status)
	return err
}

func (r *stockRepo) CreateTx(ctx context.Context, tx pgx.Tx, level *models.StockLevel) error {
	_, err := tx.Exec(ctx, insertStockLevel, level.ID, level.MaterialID, level.Location, level.Quantity, level.Unit, level.ReorderPoint, level.Status)
	return err
}

func (r *stockRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels WHERE id = $1`
	lvl, err := scanStockLevel(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("stock level", id.String())
		}
		return nil, err
	}
	return lvl, nil
}

func (r *stockRepo) GetByMaterialAndLocation(ctx context.Context, materialID uuid.UUID, location string) (*models.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels WHERE material_id = $1 AND location = $2`
	lvl, err := scanStockLevel(r.db.QueryRow(ctx, query, materialID, location))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("stock level", location)
		}
		return nil, err
	}
	return lvl, nil
}

func (r *stockRepo) GetByMaterialAndLocationTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID, location string) (*models.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels WHERE material_id = $1 AND location = $2 FOR UPDATE`
	lvl, err := scanStockLevel(tx.QueryRow(ctx, query, materialID, location))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("stock level", location)
		}
		return nil, err
	}
	return lvl, nil
}

const updateStockLevel = `
	UPDATE stock_levels
	SET quantity = $1, reorder_point = $2, status = $3, last_updated = NOW()
	WHERE id = $4
`

func (r *stockRepo) Update(ctx context.Context, level *models.StockLevel) error {
	tag, err := r.db.Exec(ctx, updateStockLevel, level.Quantity, level.ReorderPoint, level.Status, level.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("stock level", level.ID.String())
	}
	return nil
}

func (r *stockRepo) UpdateTx(ctx context.Context, tx pgx.Tx, level *models.StockLevel) error {
	tag, err := tx.Exec(ctx, updateStockLevel, level.Quantity, level.ReorderPoint, level.Status, level.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("stock level", level.ID.String())
	}
	return nil
}

const listStockByMaterial = `
	SELECT ` + stockColumns + `
	FROM stock_levels
	WHERE material_id = $1
	ORDER BY location
`

func (r *stockRepo) ListByMaterial(ctx context.Context, materialID uuid.UUID) ([]*models.StockLevel, error) {
	rows, err := r.db.Query(ctx, listStockByMaterial, materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStockLevels(rows)
}

func (r *stockRepo) ListByMaterialTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID) ([]*models.StockLevel, error) {
	rows, err := tx.Query(ctx, listStockByMaterial, materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStockLevels(rows)
}

func collectStockLevels(rows pgx.Rows) ([]*models.StockLevel, error) {
	var levels []*models.StockLevel
	for rows.Next() {
		lvl, err := scanStockLevel(rows)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, rows.Err()
}

// Search performs filtered stock level queries with dynamic conditions
func (r *stockRepo) Search(ctx context.Context, filter *models.StockSearchFilter) ([]*models.StockLevel, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	queryBase := `SELECT ` + stockColumns + ` FROM stock_levels WHERE 1=1`
	args := []interface{}{}
	conditionCount := 0

	if filter.MaterialID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND material_id = $%d`, conditionCount)
		args = append(args, *filter.MaterialID)
	}
	if filter.Location != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND location = $%d`, conditionCount)
		args = append(args, *filter.Location)
	}
	if filter.Status != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND status = $%d`, conditionCount)
		args = append(args, *filter.Status)
	}
	if filter.MinQuantity != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND quantity >= $%d`, conditionCount)
		args = append(args, *filter.MinQuantity)
	}
	if filter.MaxQuantity != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND quantity <= $%d`, conditionCount)
		args = append(args, *filter.MaxQuantity)
	}

	sortField := "last_updated"
	switch filter.SortBy {
	case "quantity":
		sortField = "quantity"
	case "location":
		sortField = "location"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
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
	return collectStockLevels(rows)
}

const insertMovement = `
	INSERT INTO stock_movements (id, stock_level_id, material_id, kind, delta, quantity_after, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
`

func (r *stockRepo) AddMovement(ctx context.Context, movement *models.StockMovement) error {
	_, err := r.db.Exec(ctx, insertMovement, movement.ID, movement.StockLevelID, movement.MaterialID, movement.Kind, movement.Delta, movement.QuantityAfter, movement.Notes)
	return err
}

func (r *stockRepo) AddMovementTx(ctx context.Context, tx pgx.Tx, movement *models.StockMovement) error {
	_, err := tx.Exec(ctx, insertMovement, movement.ID, movement.StockLevelID, movement.MaterialID, movement.Kind, movement.Delta, movement.QuantityAfter, movement.Notes)
	return err
}

func (r *stockRepo) ListMovements(ctx context.Context, materialID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	query := `
		SELECT id, stock_level_id, material_id, kind, delta, quantity_after, notes, created_at
		FROM stock_movements
		WHERE material_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, materialID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		mv := &models.StockMovement{}
		if err := rows.Scan(&mv.ID, &mv.StockLevelID, &mv.MaterialID, &mv.Kind, &mv.Delta, &mv.QuantityAfter, &mv.Notes, &mv.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, mv)
	}
	return movements, rows.Err()
}
