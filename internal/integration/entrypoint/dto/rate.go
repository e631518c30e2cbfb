package dto

import (
	"time"

	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
)

// RatesResponse represents a rate snapshot in API responses.
type RatesResponse struct {
	Base      string            `json:"base"`
	Timestamp time.Time         `json:"timestamp"`
	Stale     bool              `json:"stale"`
	Rates     map[string]string `json:"rates"`
	Warnings  []WarningResponse `json:"warnings"`
}

// ConvertResponse represents the result of a currency conversion.
type ConvertResponse struct {
	Result       MoneyResponse     `json:"result"`
	Rate         string            `json:"rate"`
	SnapshotBase string            `json:"snapshot_base,omitempty"`
	SnapshotTime *time.Time        `json:"snapshot_time,omitempty"`
	Warnings     []WarningResponse `json:"warnings"`
}

// ToRatesResponse converts the output of a rate lookup.
func ToRatesResponse(output *rate.GetRatesOutput) RatesResponse {
	rates := output.Snapshot.Rates()
	response := RatesResponse{
		Base:      string(output.Snapshot.Base()),
		Timestamp: output.Snapshot.Timestamp(),
		Stale:     output.Stale,
		Rates:     make(map[string]string, len(rates)),
		Warnings:  ToWarningResponses(output.Warnings),
	}
	for code, r := range rates {
		response.Rates[string(code)] = r.String()
	}
	return response
}

// ToConvertResponse converts the output of a conversion.
func ToConvertResponse(output *rate.ConvertAmountOutput) ConvertResponse {
	response := ConvertResponse{
		Result:       ToMoneyResponse(output.Result),
		Rate:         output.Rate.String(),
		SnapshotBase: string(output.SnapshotBase),
		Warnings:     ToWarningResponses(output.Warnings),
	}
	if !output.SnapshotTime.IsZero() {
		t := output.SnapshotTime
		response.SnapshotTime = &t
	}
	return response
}
