package repositories

import (
	"context"
	"errors"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PickingRepository interface {
	CreateList(ctx context.Context, list *models.PickingList) error
	GetListByID(ctx context.Context, id uuid.UUID) (*models.PickingList, error)
	UpdateList(ctx context.Context, list *models.PickingList) error
	UpdateListTx(ctx context.Context, tx pgx.Tx, list *models.PickingList) error
	ListLists(ctx context.Context, limit, offset int) ([]*models.PickingList, error)
	DeleteList(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, item *models.PickingItem) error
	GetItemByID(ctx context.Context, id uuid.UUID) (*models.PickingItem, error)
	// GetItemByIDTx locks the item row so a pick reads and writes consistently.
	GetItemByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.PickingItem, error)
	UpdateItemTx(ctx context.Context, tx pgx.Tx, item *models.PickingItem) error
	ListItems(ctx context.Context, listID uuid.UUID) ([]*models.PickingItem, error)
	ListItemsTx(ctx context.Context, tx pgx.Tx, listID uuid.UUID) ([]*models.PickingItem, error)
}

type pickingRepo struct {
	db Database
}

func NewPickingRepository(db Database) PickingRepository {
	return &pickingRepo{db: db}
}

const pickingListColumns = `id, project_id, sale_id, status, notes, created_at, updated_at, completed_at`

func (r *pickingRepo) CreateList(ctx context.Context, list *models.PickingList) error {
	query := `
		INSERT INTO picking_lists (id, project_id, sale_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, list.ID, list.ProjectID, list.SaleID, list.Status, list.Notes)
	return err
}

func scanPickingList(row pgx.Row) (*models.PickingList, error) {
	l := &models.PickingList{}
	err := row.Scan(&l.ID, &l.ProjectID, &l.SaleID, &l.Status, &l.Notes, &l.CreatedAt, &l.UpdatedAt, &l.CompletedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *pickingRepo) GetListByID(ctx context.Context, id uuid.UUID) (*models.PickingList, error) {
	query := `SELECT ` + pickingListColumns + ` FROM picking_lists WHERE id = $1`
	l, err := scanPickingList(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("picking list", id.String())
		}
		return nil, err
	}
	return l, nil
}

const updatePickingList = `
	UPDATE picking_lists
	SET status = $1, notes = $2, completed_at = $3, updated_at = NOW()
	WHERE id = $4
`

func (r *pickingRepo) UpdateList(ctx context.Context, list *models.PickingList) error {
	tag, err := r.db.Exec(ctx, updatePickingList, list.Status, list.Notes, list.CompletedAt, list.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("picking list", list.ID.String())
	}
	return nil
}

func (r *pickingRepo) UpdateListTx(ctx context.Context, tx pgx.Tx, list *models.PickingList) error {
	tag, err := tx.Exec(ctx, updatePickingList, list.Status, list.Notes, list.CompletedAt, list.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("picking list", list.ID.String())
	}
	return nil
}

func (r *pickingRepo) ListLists(ctx context.Context, limit, offset int) ([]*models.PickingList, error) {
	query := `SELECT ` + pickingListColumns + ` FROM picking_lists ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*models.PickingList
	for rows.Next() {
		l, err := scanPickingList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *pickingRepo) DeleteList(ctx context.Context, id uuid.UUID) error {
	// Items cascade with the list.
	query := `DELETE FROM picking_lists WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("picking list", id.String())
	}
	return nil
}

const pickingItemColumns = `id, picking_list_id, component_id, material_id, quantity_ordered, quantity_picked, unit, created_at, updated_at`

func (r *pickingRepo) AddItem(ctx context.Context, item *models.PickingItem) error {
	query := `
		INSERT INTO picking_items (id, picking_list_id, component_id, material_id, quantity_ordered, quantity_picked, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.PickingListID, item.ComponentID, item.MaterialID, item.QuantityOrdered, item.QuantityPicked, item.Unit)
	return err
}

func scanPickingItem(row pgx.Row) (*models.PickingItem, error) {
	i := &models.PickingItem{}
	err := row.Scan(&i.ID, &i.PickingListID, &i.ComponentID, &i.MaterialID, &i.QuantityOrdered, &i.QuantityPicked, &i.Unit, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *pickingRepo) GetItemByID(ctx context.Context, id uuid.UUID) (*models.PickingItem, error) {
	query := `SELECT ` + pickingItemColumns + ` FROM picking_items WHERE id = $1`
	i, err := scanPickingItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("picking item", id.String())
		}
		return nil, err
	}
	return i, nil
}

func (r *pickingRepo) GetItemByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.PickingItem, error) {
	query := `SELECT ` + pickingItemColumns + ` FROM picking_items WHERE id = $1 FOR UPDATE`
	i, err := scanPickingItem(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("picking item", id.String())
		}
		return nil, err
	}
	return i, nil
}

func (r *pickingRepo) UpdateItemTx(ctx context.Context, tx pgx.Tx, item *models.PickingItem) error {
	query := `
		UPDATE picking_items
		SET quantity_ordered = $1, quantity_picked = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := tx.Exec(ctx, query, item.QuantityOrdered, item.QuantityPicked, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("picking item", item.ID.String())
	}
	return nil
}

const listPickingItems = `SELECT ` + pickingItemColumns + ` FROM picking_items WHERE picking_list_id = $1 ORDER BY created_at`

func (r *pickingRepo) ListItems(ctx context.Context, listID uuid.UUID) ([]*models.PickingItem, error) {
	rows, err := r.db.Query(ctx, listPickingItems, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPickingItems(rows)
}

func (r *pickingRepo) ListItemsTx(ctx context.Context, tx pgx.Tx, listID uuid.UUID) ([]*models.PickingItem, error) {
	rows, err := tx.Query(ctx, listPickingItems, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPickingItems(rows)
}

func collectPickingItems(rows pgx.Rows) ([]*models.PickingItem, error) {
	var items []*models.PickingItem
	for rows.Next() {
		i, err := scanPickingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
