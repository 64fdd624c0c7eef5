package repositories

import (
	"context"
	"errors"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	Update(ctx context.Context, sale *models.Sale) error
	UpdateTx(ctx context.Context, tx pgx.Tx, sale *models.Sale) error
	List(ctx context.Context, limit, offset int) ([]*models.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CountCompletedByCustomer(ctx context.Context, customerID uuid.UUID) (int, error)

	AddItem(ctx context.Context, item *models.SaleItem) error
	ListItems(ctx context.Context, saleID uuid.UUID) ([]*models.SaleItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type salesRepo struct {
	db Database
}

func NewSaleRepository(db Database) SaleRepository {
	return &salesRepo{db: db}
}

const saleColumns = `id, customer_id, status, sale_date, total_amount, notes, created_at, updated_at`

func scanSale(row pgx.Row) (*models.Sale, error) {
	s := &models.Sale{}
	err := row.Scan(&s.ID, &s.CustomerID, &s.Status, &s.SaleDate, &s.TotalAmount, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *salesRepo) Create(ctx context.Context, sale *models.Sale) error {
	query := `
		INSERT INTO sales (id, customer_id, status, sale_date, total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, sale.ID, sale.CustomerID, sale.Status, sale.SaleDate, sale.TotalAmount, sale.Notes)
	return err
}

func (r *salesRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("sale", id.String())
		}
		return nil, err
	}
	return s, nil
}

const updateSale = `
	UPDATE sales
	SET customer_id = $1, status = $2, sale_date = $3, total_amount = $4, notes = $5, updated_at = NOW()
	WHERE id = $6
`

func (r *salesRepo) Update(ctx context.Context, sale *models.Sale) error {
	tag, err := r.db.Exec(ctx, updateSale, sale.CustomerID, sale.Status, sale.SaleDate, sale.TotalAmount, sale.Notes, sale.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("sale", sale.ID.String())
	}
	return nil
}

func (r *salesRepo) UpdateTx(ctx context.Context, tx pgx.Tx, sale *models.Sale) error {
	tag, err := tx.Exec(ctx, updateSale, sale.CustomerID, sale.Status, sale.SaleDate, sale.TotalAmount, sale.Notes, sale.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("sale", sale.ID.String())
	}
	return nil
}

func (r *salesRepo) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *salesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sales WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("sale", id.String())
	}
	return nil
}

func (r *salesRepo) CountCompletedByCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM sales WHERE customer_id = $1 AND status = $2`
	var count int
	if err := r.db.QueryRow(ctx, query, customerID, models.SaleCompleted).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *salesRepo) AddItem(ctx context.Context, item *models.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, project_id, material_id, description, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.SaleID, item.ProjectID, item.MaterialID, item.Description, item.Quantity, item.UnitPrice)
	return err
}

func (r *salesRepo) ListItems(ctx context.Context, saleID uuid.UUID) ([]*models.SaleItem, error) {
	query := `
		SELECT id, sale_id, project_id, material_id, description, quantity, unit_price, created_at
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.SaleItem
	for rows.Next() {
		i := &models.SaleItem{}
		if err := rows.Scan(&i.ID, &i.SaleID, &i.ProjectID, &i.MaterialID, &i.Description, &i.Quantity, &i.UnitPrice, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *salesRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sale_items WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("sale item", id.String())
	}
	return nil
}
