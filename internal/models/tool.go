package models

import (
	"time"

	"github.com/google/uuid"
)

// ToolStatus tracks where a tool is and whether it is usable.
type ToolStatus string

const (
	// ToolOnOrder marks a tool registered from a purchase line that has not
	// arrived yet. Receiving the line in full flips it to available.
	ToolOnOrder     ToolStatus = "on_order"
	ToolAvailable   ToolStatus = "available"
	ToolCheckedOut  ToolStatus = "checked_out"
	ToolMaintenance ToolStatus = "maintenance"
	ToolRetired     ToolStatus = "retired"
)

// Valid reports whether s is one of the declared tool statuses.
func (s ToolStatus) Valid() bool {
	switch s {
	case ToolOnOrder, ToolAvailable, ToolCheckedOut, ToolMaintenance, ToolRetired:
		return true
	}
	return false
}

// Tool is a piece of workshop equipment tracked individually rather than by
// quantity.
type Tool struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	SupplierID   *uuid.UUID `json:"supplier_id" db:"supplier_id"`
	Name         string     `json:"name" db:"name"`
	Category     *string    `json:"category" db:"category"`
	Status       ToolStatus `json:"status" db:"status"`
	Location     *string    `json:"location" db:"location"`
	PurchaseDate *time.Time `json:"purchase_date" db:"purchase_date"`
	Notes        *string    `json:"notes" db:"notes"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// ToolCheckout records one loan of a tool to a project bench.
type ToolCheckout struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	ToolID       uuid.UUID  `json:"tool_id" db:"tool_id"`
	ProjectID    *uuid.UUID `json:"project_id" db:"project_id"`
	CheckedOutAt time.Time  `json:"checked_out_at" db:"checked_out_at"`
	DueAt        *time.Time `json:"due_at" db:"due_at"`
	ReturnedAt   *time.Time `json:"returned_at" db:"returned_at"`
}
