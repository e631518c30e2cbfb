// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MoneyResponse represents an amount with its currency.
// Amount is a fixed-point string rounded to the currency's minor units.
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// WarningResponse represents a degradation notice attached to a result.
type WarningResponse struct {
	Code     string `json:"code"`
	Currency string `json:"currency,omitempty"`
	Message  string `json:"message"`
}

// WindowResponse represents a period window.
type WindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

// ToMoneyResponse converts a domain Money to a MoneyResponse DTO.
func ToMoneyResponse(m entity.Money) MoneyResponse {
	return MoneyResponse{
		Amount:   m.Amount.StringFixed(m.Currency.Info().MinorUnits),
		Currency: string(m.Currency),
	}
}

// ToWarningResponses converts warnings, always returning a non-nil slice.
func ToWarningResponses(warnings []valueobject.Warning) []WarningResponse {
	responses := make([]WarningResponse, len(warnings))
	for i, w := range warnings {
		responses[i] = WarningResponse{
			Code:     string(w.Code),
			Currency: string(w.Currency),
			Message:  w.Message,
		}
	}
	return responses
}

// ToWindowResponse converts a window and its label.
func ToWindowResponse(w valueobject.Window, label string) WindowResponse {
	return WindowResponse{
		Start: w.Start,
		End:   w.End,
		Label: label,
	}
}
