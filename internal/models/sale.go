package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus tracks the lifecycle of a sale.
type SaleStatus string

const (
	SaleQuoted    SaleStatus = "quoted"
	SaleConfirmed SaleStatus = "confirmed"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

// Valid reports whether s is one of the declared sale statuses.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleQuoted, SaleConfirmed, SaleCompleted, SaleCancelled:
		return true
	}
	return false
}

// Sale is a customer order of finished goods. TotalAmount is recomputed
// from the line items whenever they change.
type Sale struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	CustomerID  uuid.UUID       `json:"customer_id" db:"customer_id"`
	Status      SaleStatus      `json:"status" db:"status"`
	SaleDate    time.Time       `json:"sale_date" db:"sale_date"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	Notes       *string         `json:"notes" db:"notes"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// SaleItem is one line of a sale, optionally tied to the project that
// produced the piece. A line that sells raw material directly carries a
// MaterialID; completing the sale draws that quantity down through the
// stock ledger.
type SaleItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	SaleID      uuid.UUID       `json:"sale_id" db:"sale_id"`
	ProjectID   *uuid.UUID      `json:"project_id" db:"project_id"`
	MaterialID  *uuid.UUID      `json:"material_id" db:"material_id"`
	Description string          `json:"description" db:"description"`
	Quantity    decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
