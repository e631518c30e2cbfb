// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is an immutable set of conversion rates relative to Base,
// captured at Timestamp. Snapshots are replaced wholesale, never patched.
type RateSnapshot struct {
	base      CurrencyCode
	rates     map[CurrencyCode]decimal.Decimal
	timestamp time.Time
}

// NewRateSnapshot copies rates into a new snapshot. The base currency always
// has rate 1 even when the source omits it.
func NewRateSnapshot(base CurrencyCode, rates map[CurrencyCode]decimal.Decimal, timestamp time.Time) *RateSnapshot {
	copied := make(map[CurrencyCode]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		copied[code] = rate
	}
	if _, ok := copied[base]; !ok {
		copied[base] = decimal.NewFromInt(1)
	}

	return &RateSnapshot{
		base:      base,
		rates:     copied,
		timestamp: timestamp,
	}
}

// Base returns the currency all rates are relative to.
func (s *RateSnapshot) Base() CurrencyCode {
	return s.base
}

// Timestamp returns the capture time.
func (s *RateSnapshot) Timestamp() time.Time {
	return s.timestamp
}

// Rate returns the rate of code relative to the base.
func (s *RateSnapshot) Rate(code CurrencyCode) (decimal.Decimal, bool) {
	rate, ok := s.rates[code]
	return rate, ok
}

// Rates returns a copy of all rates.
func (s *RateSnapshot) Rates() map[CurrencyCode]decimal.Decimal {
	copied := make(map[CurrencyCode]decimal.Decimal, len(s.rates))
	for code, rate := range s.rates {
		copied[code] = rate
	}
	return copied
}

// Age returns how long ago the snapshot was captured, relative to now.
func (s *RateSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.timestamp)
}
