package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockStatus is the derived stock state of a stock level or material.
// It is always recomputed from quantity and thresholds, except for
// StatusDiscontinued which is set explicitly and sticky until restored.
type StockStatus string

const (
	StatusInStock      StockStatus = "in_stock"
	StatusLowStock     StockStatus = "low_stock"
	StatusOutOfStock   StockStatus = "out_of_stock"
	StatusDiscontinued StockStatus = "discontinued"
)

// Valid reports whether s is one of the declared stock statuses.
func (s StockStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock, StatusDiscontinued:
		return true
	}
	return false
}

// TransactionKind annotates why a quantity changed. It is decided once by
// the caller and recorded on the movement history; all kinds apply the same
// signed delta.
type TransactionKind string

const (
	KindPurchaseReceipt TransactionKind = "purchase_receipt"
	KindConsumption     TransactionKind = "consumption"
	KindPick            TransactionKind = "pick"
	KindReturn          TransactionKind = "return"
	KindAdjustment      TransactionKind = "adjustment"
	KindWaste           TransactionKind = "waste"
)

// Valid reports whether k is one of the declared transaction kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindPurchaseReceipt, KindConsumption, KindPick, KindReturn, KindAdjustment, KindWaste:
		return true
	}
	return false
}

// MeasurementUnit enumerates the units stock can be tracked in.
type MeasurementUnit string

const (
	UnitSquareFoot MeasurementUnit = "sq_ft"
	UnitSquareM    MeasurementUnit = "sq_m"
	UnitPiece      MeasurementUnit = "piece"
	UnitMeter      MeasurementUnit = "meter"
	UnitSpool      MeasurementUnit = "spool"
	UnitHide       MeasurementUnit = "hide"
	UnitOunce      MeasurementUnit = "oz"
)

// Valid reports whether u is one of the declared measurement units.
func (u MeasurementUnit) Valid() bool {
	switch u {
	case UnitSquareFoot, UnitSquareM, UnitPiece, UnitMeter, UnitSpool, UnitHide, UnitOunce:
		return true
	}
	return false
}

// StockLevel is the quantity of one material at one storage location.
// Quantity never goes negative; Status is derived from Quantity against
// ReorderPoint after every mutation. Zero-quantity rows are kept for history.
type StockLevel struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	MaterialID   uuid.UUID       `json:"material_id" db:"material_id"`
	Location     string          `json:"location" db:"location"`
	Quantity     decimal.Decimal `json:"quantity" db:"quantity"`
	Unit         MeasurementUnit `json:"unit" db:"unit"`
	ReorderPoint decimal.Decimal `json:"reorder_point" db:"reorder_point"`
	Status       StockStatus     `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	LastUpdated  time.Time       `json:"last_updated" db:"last_updated"`
}

// StockMovement is an append-only history record of one quantity change.
// Observational only; it never feeds back into the arithmetic.
type StockMovement struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	StockLevelID  uuid.UUID       `json:"stock_level_id" db:"stock_level_id"`
	MaterialID    uuid.UUID       `json:"material_id" db:"material_id"`
	Kind          TransactionKind `json:"kind" db:"kind"`
	Delta         decimal.Decimal `json:"delta" db:"delta"`
	QuantityAfter decimal.Decimal `json:"quantity_after" db:"quantity_after"`
	Notes         *string         `json:"notes" db:"notes"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// StockSearchFilter holds search and filter criteria for stock level queries
type StockSearchFilter struct {
	MaterialID  *uuid.UUID       `json:"material_id,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Status      *StockStatus     `json:"status,omitempty"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	MaxQuantity *decimal.Decimal `json:"max_quantity,omitempty"`
	SortBy      string           `json:"sort_by,omitempty"`    // Sort field: quantity, last_updated, location
	SortOrder   string           `json:"sort_order,omitempty"` // Sort order: asc, desc
	Limit       int              `json:"limit,omitempty"`
	Offset      int              `json:"offset,omitempty"`
}
