package repositories

import (
	"context"
	"errors"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ToolRepository interface {
	Create(ctx context.Context, tool *models.Tool) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error)
	Update(ctx context.Context, tool *models.Tool) error
	UpdateTx(ctx context.Context, tx pgx.Tx, tool *models.Tool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Tool, error)

	AddCheckout(ctx context.Context, checkout *models.ToolCheckout) error
	GetOpenCheckout(ctx context.Context, toolID uuid.UUID) (*models.ToolCheckout, error)
	CloseCheckout(ctx context.Context, id uuid.UUID) error
	ListCheckouts(ctx context.Context, toolID uuid.UUID) ([]*models.ToolCheckout, error)
}

type toolsRepo struct {
	db Database
}

func NewToolRepository(db Database) ToolRepository {
	return &toolsRepo{db: db}
}

const toolColumns = `id, supplier_id, name, category, status, location, purchase_date, notes, created_at, updated_at`

func scanTool(row pgx.Row) (*models.Tool, error) {
	t := &models.Tool{}
	err := row.Scan(&t.ID, &t.SupplierID, &t.Name, &t.Category, &t.Status, &t.Location, &t.PurchaseDate, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *toolsRepo) Create(ctx context.Context, tool *models.Tool) error {
	query := `
		INSERT INTO tools (id, supplier_id, name, category, status, location, purchase_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tool.ID, tool.SupplierID, tool.Name, tool.Category, tool.Status, tool.Location, tool.PurchaseDate, tool.Notes)
	return err
}

func (r *toolsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`
	t, err := scanTool(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("tool", id.String())
		}
		return nil, err
	}
	return t, nil
}

const updateTool = `
	UPDATE tools
	SET supplier_id = $1, name = $2, category = $3, status = $4, location = $5, purchase_date = $6, notes = $7, updated_at = NOW()
	WHERE id = $8
`

func (r *toolsRepo) Update(ctx context.Context, tool *models.Tool) error {
	tag, err := r.db.Exec(ctx, updateTool, tool.SupplierID, tool.Name, tool.Category, tool.Status, tool.Location, tool.PurchaseDate, tool.Notes, tool.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("tool", tool.ID.String())
	}
	return nil
}

func (r *toolsRepo) UpdateTx(ctx context.Context, tx pgx.Tx, tool *models.Tool) error {
	tag, err := tx.Exec(ctx, updateTool, tool.SupplierID, tool.Name, tool.Category, tool.Status, tool.Location, tool.PurchaseDate, tool.Notes, tool.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("tool", tool.ID.String())
	}
	return nil
}

func (r *toolsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tools WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("tool", id.String())
	}
	return nil
}

func (r *toolsRepo) List(ctx context.Context, limit, offset int) ([]*models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []*models.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

func (r *toolsRepo) AddCheckout(ctx context.Context, checkout *models.ToolCheckout) error {
	query := `
		INSERT INTO tool_checkouts (id, tool_id, project_id, checked_out_at, due_at, returned_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, checkout.ID, checkout.ToolID, checkout.ProjectID, checkout.CheckedOutAt, checkout.DueAt, checkout.ReturnedAt)
	return err
}

func (r *toolsRepo) GetOpenCheckout(ctx context.Context, toolID uuid.UUID) (*models.ToolCheckout, error) {
	c := &models.ToolCheckout{}
	query := `
		SELECT id, tool_id, project_id, checked_out_at, due_at, returned_at
		FROM tool_checkouts
		WHERE tool_id = $1 AND returned_at IS NULL
		ORDER BY checked_out_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, toolID).Scan(&c.ID, &c.ToolID, &c.ProjectID, &c.CheckedOutAt, &c.DueAt, &c.ReturnedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("open checkout", toolID.String())
		}
		return nil, err
	}
	return c, nil
}

func (r *toolsRepo) CloseCheckout(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE tool_checkouts SET returned_at = NOW() WHERE id = $1 AND returned_at IS NULL`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("open checkout", id.String())
	}
	return nil
}

func (r *toolsRepo) ListCheckouts(ctx context.Context, toolID uuid.UUID) ([]*models.ToolCheckout, error) {
	query := `
		SELECT id, tool_id, project_id, checked_out_at, due_at, returned_at
		FROM tool_checkouts
		WHERE tool_id = $1
		ORDER BY checked_out_at DESC
	`
	rows, err := r.db.Query(ctx, query, toolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkouts []*models.ToolCheckout
	for rows.Next() {
		c := &models.ToolCheckout{}
		if err := rows.Scan(&c.ID, &c.ToolID, &c.ProjectID, &c.CheckedOutAt, &c.DueAt, &c.ReturnedAt); err != nil {
			return nil, err
		}
		checkouts = append(checkouts, c)
	}
	return checkouts, rows.Err()
}
