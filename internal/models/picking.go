package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PickingListStatus tracks the lifecycle of a picking list.
type PickingListStatus string

const (
	PickingDraft      PickingListStatus = "draft"
	PickingInProgress PickingListStatus = "in_progress"
	PickingCompleted  PickingListStatus = "completed"
	PickingCancelled  PickingListStatus = "cancelled"
)

// Valid reports whether s is one of the declared picking list statuses.
func (s PickingListStatus) Valid() bool {
	switch s {
	case PickingDraft, PickingInProgress, PickingCompleted, PickingCancelled:
		return true
	}
	return false
}

// PickingList groups the material requirements to pull from stock for one
// project or sale.
type PickingList struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	ProjectID   *uuid.UUID        `json:"project_id" db:"project_id"`
	SaleID      *uuid.UUID        `json:"sale_id" db:"sale_id"`
	Status      PickingListStatus `json:"status" db:"status"`
	Notes       *string           `json:"notes" db:"notes"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
	CompletedAt *time.Time        `json:"completed_at" db:"completed_at"`
}

// PickingItem is one line of a picking list. Exactly one of ComponentID or
// MaterialID must be set. QuantityPicked only ever grows and is capped at
// QuantityOrdered.
type PickingItem struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	PickingListID   uuid.UUID       `json:"picking_list_id" db:"picking_list_id"`
	ComponentID     *uuid.UUID      `json:"component_id" db:"component_id"`
	MaterialID      *uuid.UUID      `json:"material_id" db:"material_id"`
	QuantityOrdered decimal.Decimal `json:"quantity_ordered" db:"quantity_ordered"`
	QuantityPicked  decimal.Decimal `json:"quantity_picked" db:"quantity_picked"`
	Unit            MeasurementUnit `json:"unit" db:"unit"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// FullyPicked reports whether the picked quantity has reached the ordered
// quantity.
func (i *PickingItem) FullyPicked() bool {
	return i.QuantityPicked.GreaterThanOrEqual(i.QuantityOrdered)
}
