// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"

	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
)

// CurrencyCode is an ISO 4217 code from the closed set of supported currencies.
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyGEL CurrencyCode = "GEL"
	CurrencyJPY CurrencyCode = "JPY"
	CurrencyCHF CurrencyCode = "CHF"
	CurrencyCAD CurrencyCode = "CAD"
	CurrencyAUD CurrencyCode = "AUD"
	CurrencyTRY CurrencyCode = "TRY"
	CurrencyUAH CurrencyCode = "UAH"
	CurrencyPLN CurrencyCode = "PLN"
	CurrencyRUB CurrencyCode = "RUB"
	CurrencyCNY CurrencyCode = "CNY"
	CurrencyINR CurrencyCode = "INR"
	CurrencyBRL CurrencyCode = "BRL"
	CurrencySEK CurrencyCode = "SEK"
	CurrencyNOK CurrencyCode = "NOK"
	CurrencyDKK CurrencyCode = "DKK"
	CurrencyCZK CurrencyCode = "CZK"
	CurrencyAMD CurrencyCode = "AMD"
	CurrencyAZN CurrencyCode = "AZN"
	CurrencyKZT CurrencyCode = "KZT"
)

// CurrencyInfo holds the static display metadata of a currency.
type CurrencyInfo struct {
	Name       string
	Symbol     string
	MinorUnits int32
}

var currencies = map[CurrencyCode]CurrencyInfo{
	CurrencyUSD: {Name: "US Dollar", Symbol: "$", MinorUnits: 2},
	CurrencyEUR: {Name: "Euro", Symbol: "€", MinorUnits: 2},
	CurrencyGBP: {Name: "British Pound", Symbol: "£", MinorUnits: 2},
	CurrencyGEL: {Name: "Georgian Lari", Symbol: "₾", MinorUnits: 2},
	CurrencyJPY: {Name: "Japanese Yen", Symbol: "¥", MinorUnits: 0},
	CurrencyCHF: {Name: "Swiss Franc", Symbol: "CHF", MinorUnits: 2},
	CurrencyCAD: {Name: "Canadian Dollar", Symbol: "C$", MinorUnits: 2},
	CurrencyAUD: {Name: "Australian Dollar", Symbol: "A$", MinorUnits: 2},
	CurrencyTRY: {Name: "Turkish Lira", Symbol: "₺", MinorUnits: 2},
	CurrencyUAH: {Name: "Ukrainian Hryvnia", Symbol: "₴", MinorUnits: 2},
	CurrencyPLN: {Name: "Polish Zloty", Symbol: "zł", MinorUnits: 2},
	CurrencyRUB: {Name: "Russian Ruble", Symbol: "₽", MinorUnits: 2},
	CurrencyCNY: {Name: "Chinese Yuan", Symbol: "¥", MinorUnits: 2},
	CurrencyINR: {Name: "Indian Rupee", Symbol: "₹", MinorUnits: 2},
	CurrencyBRL: {Name: "Brazilian Real", Symbol: "R$", MinorUnits: 2},
	CurrencySEK: {Name: "Swedish Krona", Symbol: "kr", MinorUnits: 2},
	CurrencyNOK: {Name: "Norwegian Krone", Symbol: "kr", MinorUnits: 2},
	CurrencyDKK: {Name: "Danish Krone", Symbol: "kr", MinorUnits: 2},
	CurrencyCZK: {Name: "Czech Koruna", Symbol: "Kč", MinorUnits: 2},
	CurrencyAMD: {Name: "Armenian Dram", Symbol: "֏", MinorUnits: 2},
	CurrencyAZN: {Name: "Azerbaijani Manat", Symbol: "₼", MinorUnits: 2},
	CurrencyKZT: {Name: "Kazakhstani Tenge", Symbol: "₸", MinorUnits: 2},
}

// ParseCurrencyCode normalizes s and checks it against the supported set.
func ParseCurrencyCode(s string) (CurrencyCode, error) {
	code := CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
	if !code.IsValid() {
		return "", domainerror.NewRateError(
			domainerror.ErrCodeInvalidCurrency,
			"unsupported currency code: "+s,
			domainerror.ErrInvalidCurrency,
		)
	}
	return code, nil
}

// IsValid reports whether the code belongs to the supported set.
func (c CurrencyCode) IsValid() bool {
	_, ok := currencies[c]
	return ok
}

// Info returns the display metadata for the currency.
func (c CurrencyCode) Info() CurrencyInfo {
	if info, ok := currencies[c]; ok {
		return info
	}
	return CurrencyInfo{Name: string(c), Symbol: string(c), MinorUnits: 2}
}

// SupportedCurrencies returns every supported currency code.
func SupportedCurrencies() []CurrencyCode {
	codes := make([]CurrencyCode, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	return codes
}
