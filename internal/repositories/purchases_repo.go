package repositories

import (
	"context"
	"errors"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	Update(ctx context.Context, purchase *models.Purchase) error
	UpdateTx(ctx context.Context, tx pgx.Tx, purchase *models.Purchase) error
	List(ctx context.Context, limit, offset int) ([]*models.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, item *models.PurchaseItem) error
	GetItemByID(ctx context.Context, id uuid.UUID) (*models.PurchaseItem, error)
	// GetItemByIDTx locks the item row so a receipt reads and writes consistently.
	GetItemByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.PurchaseItem, error)
	UpdateItem(ctx context.Context, item *models.PurchaseItem) error
	UpdateItemTx(ctx context.Context, tx pgx.Tx, item *models.PurchaseItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, purchaseID uuid.UUID) ([]*models.PurchaseItem, error)
	ListItemsTx(ctx context.Context, tx pgx.Tx, purchaseID uuid.UUID) ([]*models.PurchaseItem, error)
}

type purchasesRepo struct {
	db Database
}

func NewPurchaseRepository(db Database) PurchaseRepository {
	return &purchasesRepo{db: db}
}

const purchaseColumns = `id, supplier_id, status, order_date, total_amount, notes, created_at, updated_at`

func scanPurchase(row pgx.Row) (*models.Purchase, error) {
	p := &models.Purchase{}
	err := row.Scan(&p.ID, &p.SupplierID, &p.Status, &p.OrderDate, &p.TotalAmount, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *purchasesRepo) Create(ctx context.Context, purchase *models.Purchase) error {
	query := `
		INSERT INTO purchases (id, supplier_id, status, order_date, total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, purchase.ID, purchase.SupplierID, purchase.Status, purchase.OrderDate, purchase.TotalAmount, purchase.Notes)
	return err
}

func (r *purchasesRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	p, err := scanPurchase(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("purchase", id.String())
		}
		return nil, err
	}
	return p, nil
}

const updatePurchase = `
	UPDATE purchases
	SET supplier_id = $1, status = $2, order_date = $3, total_amount = $4, notes = $5, updated_at = NOW()
	WHERE id = $6
`

func (r *purchasesRepo) Update(ctx context.Context, purchase *models.Purchase) error {
	tag, err := r.db.Exec(ctx, updatePurchase, purchase.SupplierID, purchase.Status, purchase.OrderDate, purchase.TotalAmount, purchase.Notes, purchase.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("purchase", purchase.ID.String())
	}
	return nil
}

func (r *purchasesRepo) UpdateTx(ctx context.Context, tx pgx.Tx, purchase *models.Purchase) error {
	tag, err := tx.Exec(ctx, updatePurchase, purchase.SupplierID, purchase.Status, purchase.OrderDate, purchase.TotalAmount, purchase.Notes, purchase.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("purchase", purchase.ID.String())
	}
	return nil
}

func (r *purchasesRepo) List(ctx context.Context, limit, offset int) ([]*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *purchasesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Line items cascade with the purchase.
	query := `DELETE FROM purchases WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("purchase", id.String())
	}
	return nil
}

const purchaseItemColumns = `id, purchase_id, item_type, material_id, tool_id, description, quantity_ordered, quantity_received, price_each, created_at, updated_at`

func scanPurchaseItem(row pgx.Row) (*models.PurchaseItem, error) {
	i := &models.PurchaseItem{}
	err := row.Scan(&i.ID, &i.PurchaseID, &i.ItemType, &i.MaterialID, &i.ToolID, &i.Description, &i.QuantityOrdered, &i.QuantityReceived, &i.PriceEach, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *purchasesRepo) AddItem(ctx context.Context, item *models.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, item_type, material_id, tool_id, description, quantity_ordered, quantity_received, price_each, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.PurchaseID, item.ItemType, item.MaterialID, item.ToolID, item.Description, item.QuantityOrdered, item.QuantityReceived, item.PriceEach)
	return err
}

func (r *purchasesRepo) GetItemByID(ctx context.Context, id uuid.UUID) (*models.PurchaseItem, error) {
	query := `SELECT ` + purchaseItemColumns + ` FROM purchase_items WHERE id = $1`
	i, err := scanPurchaseItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("purchase item", id.String())
		}
		return nil, err
	}
	return i, nil
}

func (r *purchasesRepo) GetItemByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.PurchaseItem, error) {
	query := `SELECT ` + purchaseItemColumns + ` FROM purchase_items WHERE id = $1 FOR UPDATE`
	i, err := scanPurchaseItem(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("purchase item", id.String())
		}
		return nil, err
	}
	return i, nil
}

const updatePurchaseItem = `
	UPDATE purchase_items
	SET item_type = $1, material_id = $2, tool_id = $3, description = $4, quantity_ordered = $5, quantity_received = $6, price_each = $7, updated_at = NOW()
	WHERE id = $8
`

func (r *purchasesRepo) UpdateItem(ctx context.Context, item *models.PurchaseItem) error {
	tag, err := r.db.Exec(ctx, updatePurchaseItem, item.ItemType, item.MaterialID, item.ToolID, item.Description, item.QuantityOrdered, item.QuantityReceived, item.PriceEach, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("purchase item", item.ID.String())
	}
	return nil
}

func (r *purchasesRepo) UpdateItemTx(ctx context.Context, tx pgx.Tx, item *models.PurchaseItem) error {
	tag, err := tx.Exec(ctx, updatePurchaseItem, item.ItemType, item.MaterialID, item.ToolID, item.Description, item.QuantityOrdered, item.QuantityReceived, item.PriceEach, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("purchase item", item.ID.String())
	}
	return nil
}

func (r *purchasesRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM purchase_items WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("purchase item", id.String())
	}
	return nil
}

const listPurchaseItems = `SELECT ` + purchaseItemColumns + ` FROM purchase_items WHERE purchase_id = $1 ORDER BY created_at`

func (r *purchasesRepo) ListItems(ctx context.Context, purchaseID uuid.UUID) ([]*models.PurchaseItem, error) {
	rows, err := r.db.Query(ctx, listPurchaseItems, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPurchaseItems(rows)
}

func (r *purchasesRepo) ListItemsTx(ctx context.Context, tx pgx.Tx, purchaseID uuid.UUID) ([]*models.PurchaseItem, error) {
	rows, err := tx.Query(ctx, listPurchaseItems, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPurchaseItems(rows)
}

func collectPurchaseItems(rows pgx.Rows) ([]*models.PurchaseItem, error) {
	var items []*models.PurchaseItem
	for rows.Next() {
		i, err := scanPurchaseItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
