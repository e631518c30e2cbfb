// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UtilityKind is the closed set of utility services.
type UtilityKind string

const (
	UtilityElectricity UtilityKind = "electricity"
	UtilityWater       UtilityKind = "water"
	UtilityGas         UtilityKind = "gas"
	UtilityHeating     UtilityKind = "heating"
	UtilityInternet    UtilityKind = "internet"
	UtilityPhone       UtilityKind = "phone"
	UtilityTrash       UtilityKind = "trash"
	UtilityOther       UtilityKind = "other"
)

// UtilityKindInfo holds the display metadata of a utility kind.
type UtilityKindInfo struct {
	Label string
	Unit  string // Meter unit, empty when the service is not metered
	Icon  string
}

var utilityKinds = map[UtilityKind]UtilityKindInfo{
	UtilityElectricity: {Label: "Electricity", Unit: "kWh", Icon: "bolt"},
	UtilityWater:       {Label: "Water", Unit: "m³", Icon: "drop"},
	UtilityGas:         {Label: "Gas", Unit: "m³", Icon: "flame"},
	UtilityHeating:     {Label: "Heating", Unit: "Gcal", Icon: "thermometer"},
	UtilityInternet:    {Label: "Internet", Icon: "wifi"},
	UtilityPhone:       {Label: "Phone", Icon: "phone"},
	UtilityTrash:       {Label: "Trash", Icon: "trash"},
	UtilityOther:       {Label: "Other", Icon: DefaultCategoryIcon},
}

// Info returns the display metadata for the utility kind.
func (k UtilityKind) Info() UtilityKindInfo {
	if info, ok := utilityKinds[k]; ok {
		return info
	}
	return utilityKinds[UtilityOther]
}

// UtilityAccount tracks payments and meter readings for one utility service.
type UtilityAccount struct {
	ID                uuid.UUID
	Name              string
	Kind              UtilityKind
	Currency          CurrencyCode
	MonthlyAverage    decimal.Decimal
	LastPaymentAmount *decimal.Decimal
	LastPaymentDate   *time.Time
	NextDueDate       *time.Time
	Payments          []UtilityPayment
	Readings          []MeterReading
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UtilityPayment is a single bill payment of a utility account.
type UtilityPayment struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Amount    decimal.Decimal
	PaidAt    time.Time
}

// MeterReading is a single meter value captured for a utility account.
type MeterReading struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Value     decimal.Decimal
	ReadAt    time.Time
}

// Clone returns a copy whose histories and optional fields do not alias a.
func (a UtilityAccount) Clone() UtilityAccount {
	c := a
	c.Payments = append([]UtilityPayment(nil), a.Payments...)
	c.Readings = append([]MeterReading(nil), a.Readings...)
	if a.LastPaymentAmount != nil {
		v := *a.LastPaymentAmount
		c.LastPaymentAmount = &v
	}
	if a.LastPaymentDate != nil {
		t := *a.LastPaymentDate
		c.LastPaymentDate = &t
	}
	if a.NextDueDate != nil {
		t := *a.NextDueDate
		c.NextDueDate = &t
	}
	return c
}
