package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialType classifies what kind of consumable a material is.
type MaterialType string

const (
	MaterialLeather  MaterialType = "leather"
	MaterialHardware MaterialType = "hardware"
	MaterialThread   MaterialType = "thread"
	MaterialAdhesive MaterialType = "adhesive"
	MaterialDye      MaterialType = "dye"
	MaterialLining   MaterialType = "lining"
)

// Valid reports whether t is one of the declared material types.
func (t MaterialType) Valid() bool {
	switch t {
	case MaterialLeather, MaterialHardware, MaterialThread, MaterialAdhesive, MaterialDye, MaterialLining:
		return true
	}
	return false
}

// Material is a consumable tracked across one or more stock levels.
// MinQuantity is the material-level low-stock threshold used when the
// aggregate status is recomputed; it is distinct from any single
// location's reorder point.
type Material struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	SupplierID   *uuid.UUID       `json:"supplier_id" db:"supplier_id"`
	Name         string           `json:"name" db:"name"`
	MaterialType MaterialType     `json:"material_type" db:"material_type"`
	Unit         MeasurementUnit  `json:"unit" db:"unit"`
	MinQuantity  decimal.Decimal  `json:"min_quantity" db:"min_quantity"`
	PricePerUnit decimal.Decimal  `json:"price_per_unit" db:"price_per_unit"`
	Thickness    *decimal.Decimal `json:"thickness" db:"thickness"` // mm, leather only
	Color        *string          `json:"color" db:"color"`
	Status       StockStatus      `json:"status" db:"status"`
	Description  *string          `json:"description" db:"description"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// MaterialSearchFilter holds search and filter criteria for material queries
type MaterialSearchFilter struct {
	Query        string        `json:"query,omitempty"` // Full-text search across name, color, description
	MaterialType *MaterialType `json:"material_type,omitempty"`
	SupplierID   *uuid.UUID    `json:"supplier_id,omitempty"`
	Status       *StockStatus  `json:"status,omitempty"`
	SortBy       string        `json:"sort_by,omitempty"`    // Sort field: name, created_at, price_per_unit
	SortOrder    string        `json:"sort_order,omitempty"` // Sort order: asc, desc
	Limit        int           `json:"limit,omitempty"`
	Offset       int           `json:"offset,omitempty"`
}
