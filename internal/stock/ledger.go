// Package stock holds the pure quantity ledger rules: how a signed quantity
// change produces a new quantity and a new status. No side effects; callers
// persist the results only on success.
package stock

import (
	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/shopspring/decimal"
)

// ApplyDelta applies a signed delta to a current quantity and derives the
// resulting status against the location reorder point. A delta that would
// drive the quantity negative fails with InvalidAdjustmentError and the
// caller's state is left untouched. A prior discontinued status is sticky:
// quantity changes alone never clear it.
func ApplyDelta(current, delta, reorderPoint decimal.Decimal, prior models.StockStatus) (decimal.Decimal, models.StockStatus, error) {
	if current.IsNegative() {
		return decimal.Zero, prior, common.NewValidationError("quantity", "must not be negative")
	}
	if reorderPoint.IsNegative() {
		return decimal.Zero, prior, common.NewValidationError("reorder_point", "must not be negative")
	}

	next := current.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, prior, &common.InvalidAdjustmentError{
			Requested: delta.Neg(),
			Available: current,
		}
	}
	return next, DeriveStatus(next, reorderPoint, prior), nil
}

// DeriveStatus computes the location-level status for a quantity against a
// reorder point: <= 0 is out of stock, at or below the reorder point is low.
// Discontinued is preserved until explicitly restored.
func DeriveStatus(quantity, reorderPoint decimal.Decimal, prior models.StockStatus) models.StockStatus {
	if prior == models.StatusDiscontinued {
		return models.StatusDiscontinued
	}
	switch {
	case quantity.LessThanOrEqual(decimal.Zero):
		return models.StatusOutOfStock
	case quantity.LessThanOrEqual(reorderPoint):
		return models.StatusLowStock
	default:
		return models.StatusInStock
	}
}

// DeriveAggregateStatus computes the material-level status for a total
// quantity against the material's minimum quantity. The boundary differs
// from the location rule: a total exactly at the minimum counts as in stock.
func DeriveAggregateStatus(total, minQuantity decimal.Decimal, prior models.StockStatus) models.StockStatus {
	if prior == models.StatusDiscontinued {
		return models.StatusDiscontinued
	}
	switch {
	case total.LessThanOrEqual(decimal.Zero):
		return models.StatusOutOfStock
	case total.LessThan(minQuantity):
		return models.StatusLowStock
	default:
		return models.StatusInStock
	}
}

// Total sums the quantities of a material's stock levels. A material with no
// stock records totals zero.
func Total(levels []*models.StockLevel) decimal.Decimal {
	total := decimal.Zero
	for _, lvl := range levels {
		total = total.Add(lvl.Quantity)
	}
	return total
}
