// Package valueobject contains domain value objects for the obligations engine.
package valueobject

import "github.com/finance-tracker/obligations/internal/domain/entity"

// WarningCode identifies a non-fatal degradation attached to a result.
type WarningCode string

const (
	// WarningStaleFallback means an expired rate snapshot was used.
	WarningStaleFallback WarningCode = "stale_fallback"
	// WarningMissingRate means a conversion was skipped and the raw amount used.
	WarningMissingRate WarningCode = "missing_rate"
)

// Warning is reported next to a result that was computed with degraded data.
type Warning struct {
	Code     WarningCode
	Currency entity.CurrencyCode
	Message  string
}

// NewStaleFallbackWarning reports use of an expired snapshot for base.
func NewStaleFallbackWarning(base entity.CurrencyCode) Warning {
	return Warning{
		Code:     WarningStaleFallback,
		Currency: base,
		Message:  "exchange rates for " + string(base) + " are stale; using last known snapshot",
	}
}

// NewMissingRateWarning reports an amount left unconverted.
func NewMissingRateWarning(currency entity.CurrencyCode) Warning {
	return Warning{
		Code:     WarningMissingRate,
		Currency: currency,
		Message:  "no exchange rate for " + string(currency) + "; amount left unconverted",
	}
}

// AppendUnique adds w unless an equal warning is already present.
func AppendUnique(warnings []Warning, w Warning) []Warning {
	for _, existing := range warnings {
		if existing.Code == w.Code && existing.Currency == w.Currency {
			return warnings
		}
	}
	return append(warnings, w)
}
