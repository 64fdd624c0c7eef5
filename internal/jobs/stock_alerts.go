package jobs

import (
	"context"

	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

// StockAlertService scans the catalog for materials sitting at or below
// their minimum and reports them so nobody runs out of leather mid-build.
type StockAlertService struct {
	materialRepo repositories.MaterialRepository
	stockRepo    repositories.StockRepository
}

// StockAlert describes one material that needs reordering.
type StockAlert struct {
	MaterialID   uuid.UUID
	MaterialName string
	Total        decimal.Decimal
	MinQuantity  decimal.Decimal
	Unit         models.MeasurementUnit
	Status       models.StockStatus
}

func NewStockAlertService(materialRepo repositories.MaterialRepository, stockRepo repositories.StockRepository) *StockAlertService {
	return &StockAlertService{
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
	}
}

// CheckLowStock returns an alert for every non-discontinued material whose
// total on-hand quantity sits below its minimum.
func (a *StockAlertService) CheckLowStock(ctx context.Context) ([]StockAlert, error) {
	const pageSize = 500

	var alerts []StockAlert
	for offset := 0; ; offset += pageSize {
		materials, err := a.materialRepo.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, m := range materials {
			if m.Status == models.StatusDiscontinued {
				continue
			}
			if m.Status != models.StatusLowStock && m.Status != models.StatusOutOfStock {
				continue
			}
			levels, err := a.stockRepo.ListByMaterial(ctx, m.ID)
			if err != nil {
				log.Warnf("stock alerts: listing stock for material %s: %v", m.ID, err)
				continue
			}
			total := decimal.Zero
			for _, l := range levels {
				total = total.Add(l.Quantity)
			}
			alerts = append(alerts, StockAlert{
				MaterialID:   m.ID,
				MaterialName: m.Name,
				Total:        total,
				MinQuantity:  m.MinQuantity,
				Unit:         m.Unit,
				Status:       m.Status,
			})
		}
		if len(materials) < pageSize {
			break
		}
	}
	return alerts, nil
}

// LogLowStockAlerts writes the alerts to the application log.
func (a *StockAlertService) LogLowStockAlerts(alerts []StockAlert) {
	if len(alerts) == 0 {
		log.Debug("stock alerts: nothing below minimum")
		return
	}
	for _, alert := range alerts {
		log.Warnf("low stock: %s has %s %s on hand (minimum %s)",
			alert.MaterialName, alert.Total, alert.Unit, alert.MinQuantity)
	}
}
