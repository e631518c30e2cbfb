package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/usecase/utility"
	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// RecordUtilityPaymentRequest represents the request body for recording a utility payment.
// Amount is a decimal string such as "84.50".
type RecordUtilityPaymentRequest struct {
	Amount string     `json:"amount" binding:"required"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

// RecordMeterReadingRequest represents the request body for recording a meter reading.
type RecordMeterReadingRequest struct {
	Value  string     `json:"value" binding:"required"`
	ReadAt *time.Time `json:"read_at,omitempty"`
}

// UtilityAccountResponse represents a utility account in API responses.
type UtilityAccountResponse struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Kind              string         `json:"kind"`
	Unit              string         `json:"unit,omitempty"`
	MonthlyAverage    MoneyResponse  `json:"monthly_average"`
	LastPaymentAmount *MoneyResponse `json:"last_payment_amount,omitempty"`
	LastPaymentDate   *time.Time     `json:"last_payment_date,omitempty"`
	NextDueDate       *time.Time     `json:"next_due_date,omitempty"`
	PaymentCount      int            `json:"payment_count"`
	ReadingCount      int            `json:"reading_count"`
}

// UtilityPaymentResponse represents a recorded utility payment.
type UtilityPaymentResponse struct {
	ID     string        `json:"id"`
	Amount MoneyResponse `json:"amount"`
	PaidAt time.Time     `json:"paid_at"`
}

// MeterReadingResponse represents a meter reading and its consumption since the previous one.
type MeterReadingResponse struct {
	ID          string    `json:"id"`
	Value       string    `json:"value"`
	ReadAt      time.Time `json:"read_at"`
	Consumption *string   `json:"consumption"`
}

// RecordUtilityPaymentResponse represents the response after recording a payment.
type RecordUtilityPaymentResponse struct {
	Account UtilityAccountResponse `json:"account"`
	Payment UtilityPaymentResponse `json:"payment"`
}

// RecordMeterReadingResponse represents the response after recording a reading.
type RecordMeterReadingResponse struct {
	Account UtilityAccountResponse `json:"account"`
	Reading MeterReadingResponse   `json:"reading"`
}

// ConsumptionResponse represents the consumption of a reading with the account's history.
type ConsumptionResponse struct {
	Reading MeterReadingResponse   `json:"reading"`
	Unit    string                 `json:"unit,omitempty"`
	History []MeterReadingResponse `json:"history"`
}

// ToUtilityAccountResponse converts a domain UtilityAccount entity to its DTO.
func ToUtilityAccountResponse(a *entity.UtilityAccount) UtilityAccountResponse {
	response := UtilityAccountResponse{
		ID:              a.ID.String(),
		Name:            a.Name,
		Kind:            string(a.Kind),
		Unit:            a.Kind.Info().Unit,
		MonthlyAverage:  ToMoneyResponse(entity.NewMoney(a.MonthlyAverage, a.Currency)),
		LastPaymentDate: a.LastPaymentDate,
		NextDueDate:     a.NextDueDate,
		PaymentCount:    len(a.Payments),
		ReadingCount:    len(a.Readings),
	}
	if a.LastPaymentAmount != nil {
		last := ToMoneyResponse(entity.NewMoney(*a.LastPaymentAmount, a.Currency))
		response.LastPaymentAmount = &last
	}
	return response
}

// ToMeterReadingResponse converts a reading and its optional consumption.
func ToMeterReadingResponse(r entity.MeterReading, consumption *decimal.Decimal) MeterReadingResponse {
	response := MeterReadingResponse{
		ID:     r.ID.String(),
		Value:  r.Value.String(),
		ReadAt: r.ReadAt,
	}
	if consumption != nil {
		c := consumption.String()
		response.Consumption = &c
	}
	return response
}

// ToRecordUtilityPaymentResponse converts the output of recording a payment.
func ToRecordUtilityPaymentResponse(output *utility.RecordUtilityPaymentOutput) RecordUtilityPaymentResponse {
	return RecordUtilityPaymentResponse{
		Account: ToUtilityAccountResponse(output.Account),
		Payment: UtilityPaymentResponse{
			ID:     output.Payment.ID.String(),
			Amount: ToMoneyResponse(entity.NewMoney(output.Payment.Amount, output.Account.Currency)),
			PaidAt: output.Payment.PaidAt,
		},
	}
}

// ToRecordMeterReadingResponse converts the output of recording a reading.
func ToRecordMeterReadingResponse(output *utility.RecordMeterReadingOutput) RecordMeterReadingResponse {
	return RecordMeterReadingResponse{
		Account: ToUtilityAccountResponse(output.Account),
		Reading: ToMeterReadingResponse(output.Reading, output.Consumption),
	}
}

// ToConsumptionResponse converts the consumption output.
func ToConsumptionResponse(output *utility.GetConsumptionOutput) ConsumptionResponse {
	response := ConsumptionResponse{
		Reading: ToMeterReadingResponse(output.Reading, output.Consumption),
		Unit:    output.Unit,
		History: make([]MeterReadingResponse, len(output.History)),
	}
	for i, point := range output.History {
		response.History[i] = ToMeterReadingResponse(entity.MeterReading{
			ID:     point.ReadingID,
			Value:  point.Value,
			ReadAt: point.ReadAt,
		}, point.Consumption)
	}
	return response
}
