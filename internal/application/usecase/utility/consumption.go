// Package utility keeps utility-account payment and meter-reading histories.
package utility

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// ConsumptionPoint is one reading together with the usage since the reading before it.
type ConsumptionPoint struct {
	ReadingID uuid.UUID
	ReadAt    time.Time
	Value     decimal.Decimal
	// Consumption is nil for the earliest reading.
	Consumption *decimal.Decimal
}

// Consumption returns the difference between the reading readingID and the
// reading preceding it in time. ok is false when the reading is the earliest
// or does not exist. A negative result means the meter went backwards and is
// returned as is.
func Consumption(account entity.UtilityAccount, readingID uuid.UUID) (decimal.Decimal, bool) {
	readings := oldestFirst(account.Readings)
	for i, r := range readings {
		if r.ID != readingID {
			continue
		}
		if i == 0 {
			return decimal.Zero, false
		}
		return r.Value.Sub(readings[i-1].Value), true
	}
	return decimal.Zero, false
}

// ConsumptionHistory lists every reading in time order with its consumption.
func ConsumptionHistory(account entity.UtilityAccount) []ConsumptionPoint {
	readings := oldestFirst(account.Readings)
	points := make([]ConsumptionPoint, 0, len(readings))

	for i, r := range readings {
		point := ConsumptionPoint{
			ReadingID: r.ID,
			ReadAt:    r.ReadAt,
			Value:     r.Value,
		}
		if i > 0 {
			diff := r.Value.Sub(readings[i-1].Value)
			point.Consumption = &diff
		}
		points = append(points, point)
	}

	return points
}

// FindReading returns the reading with the given ID.
func FindReading(account entity.UtilityAccount, readingID uuid.UUID) (entity.MeterReading, bool) {
	for _, r := range account.Readings {
		if r.ID == readingID {
			return r, true
		}
	}
	return entity.MeterReading{}, false
}

func oldestFirst(readings []entity.MeterReading) []entity.MeterReading {
	sorted := append([]entity.MeterReading(nil), readings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReadAt.Before(sorted[j].ReadAt)
	})
	return sorted
}
