package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus tracks the lifecycle of a purchase order.
type PurchaseStatus string

const (
	PurchaseDraft             PurchaseStatus = "draft"
	PurchaseOrdered           PurchaseStatus = "ordered"
	PurchasePartiallyReceived PurchaseStatus = "partially_received"
	PurchaseReceived          PurchaseStatus = "received"
	PurchaseCancelled         PurchaseStatus = "cancelled"
)

// Valid reports whether s is one of the declared purchase statuses.
func (s PurchaseStatus) Valid() bool {
	switch s {
	case PurchaseDraft, PurchaseOrdered, PurchasePartiallyReceived, PurchaseReceived, PurchaseCancelled:
		return true
	}
	return false
}

// PurchaseItemType is the closed set of things a purchase line can order.
type PurchaseItemType string

const (
	PurchaseItemMaterial PurchaseItemType = "material"
	PurchaseItemTool     PurchaseItemType = "tool"
	PurchaseItemSupplies PurchaseItemType = "supplies"
)

// Valid reports whether t is one of the declared purchase item types.
func (t PurchaseItemType) Valid() bool {
	switch t {
	case PurchaseItemMaterial, PurchaseItemTool, PurchaseItemSupplies:
		return true
	}
	return false
}

// Purchase is an order placed with a supplier. TotalAmount is recomputed as
// sum(price_each * quantity_ordered) over the line items whenever they
// change; it is ordered value, independent of received quantities.
type Purchase struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	SupplierID  uuid.UUID       `json:"supplier_id" db:"supplier_id"`
	Status      PurchaseStatus  `json:"status" db:"status"`
	OrderDate   time.Time       `json:"order_date" db:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	Notes       *string         `json:"notes" db:"notes"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// PurchaseItem is one line of a purchase order. QuantityReceived can never
// exceed QuantityOrdered; receipts that would are rejected before mutation.
type PurchaseItem struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	PurchaseID       uuid.UUID        `json:"purchase_id" db:"purchase_id"`
	ItemType         PurchaseItemType `json:"item_type" db:"item_type"`
	MaterialID       *uuid.UUID       `json:"material_id" db:"material_id"`
	ToolID           *uuid.UUID       `json:"tool_id" db:"tool_id"`
	Description      *string          `json:"description" db:"description"`
	QuantityOrdered  decimal.Decimal  `json:"quantity_ordered" db:"quantity_ordered"`
	QuantityReceived decimal.Decimal  `json:"quantity_received" db:"quantity_received"`
	PriceEach        decimal.Decimal  `json:"price_each" db:"price_each"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// FullyReceived reports whether the received quantity has reached the
// ordered quantity.
func (i *PurchaseItem) FullyReceived() bool {
	return i.QuantityReceived.GreaterThanOrEqual(i.QuantityOrdered)
}
