package stock

import (
	"testing"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyDelta_Addition(t *testing.T) {
	qty, status, err := ApplyDelta(d("10"), d("5.5"), d("3"), models.StatusInStock)
	assert.NoError(t, err)
	assert.True(t, qty.Equal(d("15.5")))
	assert.Equal(t, models.StatusInStock, status)
}

func TestApplyDelta_ConsumptionToLow(t *testing.T) {
	qty, status, err := ApplyDelta(d("10"), d("-8"), d("3"), models.StatusInStock)
	assert.NoError(t, err)
	assert.True(t, qty.Equal(d("2")))
	assert.Equal(t, models.StatusLowStock, status)
}

func TestApplyDelta_ConsumptionToZero(t *testing.T) {
	qty, status, err := ApplyDelta(d("4"), d("-4"), d("3"), models.StatusLowStock)
	assert.NoError(t, err)
	assert.True(t, qty.IsZero())
	assert.Equal(t, models.StatusOutOfStock, status)
}

func TestApplyDelta_NegativeResultRejected(t *testing.T) {
	_, _, err := ApplyDelta(d("3"), d("-3.01"), d("1"), models.StatusInStock)
	var ia *common.InvalidAdjustmentError
	assert.ErrorAs(t, err, &ia)
	assert.True(t, ia.Requested.Equal(d("3.01")))
	assert.True(t, ia.Available.Equal(d("3")))
}

func TestApplyDelta_NegativeCurrentRejected(t *testing.T) {
	_, _, err := ApplyDelta(d("-1"), d("5"), d("1"), models.StatusInStock)
	assert.True(t, common.IsValidation(err))
}

func TestApplyDelta_NegativeReorderPointRejected(t *testing.T) {
	_, _, err := ApplyDelta(d("1"), d("5"), d("-1"), models.StatusInStock)
	assert.True(t, common.IsValidation(err))
}

func TestApplyDelta_DiscontinuedIsSticky(t *testing.T) {
	qty, status, err := ApplyDelta(d("0"), d("50"), d("3"), models.StatusDiscontinued)
	assert.NoError(t, err)
	assert.True(t, qty.Equal(d("50")))
	assert.Equal(t, models.StatusDiscontinued, status)
}

func TestDeriveStatus_Boundaries(t *testing.T) {
	tests := []struct {
		name         string
		quantity     string
		reorderPoint string
		want         models.StockStatus
	}{
		{"zero is out of stock", "0", "5", models.StatusOutOfStock},
		{"just above zero is low", "0.01", "5", models.StatusLowStock},
		{"at reorder point is low", "5", "5", models.StatusLowStock},
		{"above reorder point is in stock", "5.01", "5", models.StatusInStock},
		{"zero reorder point, positive stock", "1", "0", models.StatusInStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(d(tt.quantity), d(tt.reorderPoint), models.StatusInStock)
			assert.Equal(t, tt.want, got)
			// Idempotent: deriving twice yields the same result.
			assert.Equal(t, got, DeriveStatus(d(tt.quantity), d(tt.reorderPoint), got))
		})
	}
}

func TestDeriveAggregateStatus_StrictMinimumBoundary(t *testing.T) {
	// Material-level rule: a total exactly at min_quantity is in stock,
	// unlike the location rule where quantity == reorder_point is low.
	assert.Equal(t, models.StatusInStock, DeriveAggregateStatus(d("5"), d("5"), models.StatusInStock))
	assert.Equal(t, models.StatusLowStock, DeriveAggregateStatus(d("4.99"), d("5"), models.StatusInStock))
	assert.Equal(t, models.StatusOutOfStock, DeriveAggregateStatus(d("0"), d("5"), models.StatusInStock))
	assert.Equal(t, models.StatusDiscontinued, DeriveAggregateStatus(d("100"), d("5"), models.StatusDiscontinued))
}

func TestTotal(t *testing.T) {
	levels := []*models.StockLevel{
		{Quantity: d("5")},
		{Quantity: d("3")},
		{Quantity: d("0")},
	}
	assert.True(t, Total(levels).Equal(d("8")))
	assert.True(t, Total(nil).IsZero())
}
