// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
)

const (
	// DefaultExchangeRateURL is the public endpoint queried when none is configured.
	DefaultExchangeRateURL = "https://open.er-api.com/v6/latest"

	defaultRateRequestTimeout = 10 * time.Second
	maxRateBodySize           = 1 << 20 // 1 MB
	rateResultSuccess         = "success"
)

// exchangeRateResponse is the JSON body returned by the rate endpoint.
type exchangeRateResponse struct {
	Result    string                     `json:"result"`
	ErrorType string                     `json:"error-type"`
	BaseCode  string                     `json:"base_code"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

// ExchangeRateClient implements adapter.RateSource over HTTP.
// It requests {baseURL}/{BASE} and expects an open.er-api style payload.
// Snapshots are stamped with the time they were received, not the provider's
// publication time, which can lag by up to a day.
type ExchangeRateClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	clock   adapter.Clock
}

// NewExchangeRateClient creates a new exchange rate client. An empty baseURL
// uses DefaultExchangeRateURL, a non-positive timeout uses ten seconds and a
// nil clock reads the wall clock.
func NewExchangeRateClient(baseURL string, timeout time.Duration, clock adapter.Clock) *ExchangeRateClient {
	if baseURL == "" {
		baseURL = DefaultExchangeRateURL
	}
	if timeout <= 0 {
		timeout = defaultRateRequestTimeout
	}
	if clock == nil {
		clock = adapter.SystemClock{}
	}

	return &ExchangeRateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		clock:   clock,
	}
}

var _ adapter.RateSource = (*ExchangeRateClient)(nil)

// FetchRates returns the current rates relative to base.
// Currencies the engine does not support are dropped from the snapshot.
func (c *ExchangeRateClient) FetchRates(ctx context.Context, base entity.CurrencyCode) (*entity.RateSnapshot, error) {
	body, err := c.get(ctx, "/"+string(base))
	if err != nil {
		return nil, err
	}

	var resp exchangeRateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, invalidPayload(fmt.Sprintf("failed to parse rates: %v", err))
	}

	if resp.Result != rateResultSuccess {
		reason := resp.ErrorType
		if reason == "" {
			reason = resp.Result
		}
		return nil, invalidPayload("rate source reported " + reason)
	}
	if !strings.EqualFold(resp.BaseCode, string(base)) {
		return nil, invalidPayload(fmt.Sprintf("rate source answered for %s instead of %s", resp.BaseCode, base))
	}

	rates := make(map[entity.CurrencyCode]decimal.Decimal, len(resp.Rates))
	for code, rate := range resp.Rates {
		currency := entity.CurrencyCode(strings.ToUpper(code))
		if !currency.IsValid() {
			continue
		}
		if !rate.IsPositive() {
			return nil, invalidPayload(fmt.Sprintf("non-positive rate for %s", currency))
		}
		rates[currency] = rate
	}

	return entity.NewRateSnapshot(base, rates, c.clock.Now().UTC()), nil
}

// get performs a GET request bounded by the client timeout and returns the body.
func (c *ExchangeRateClient) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domainerror.NewRateError(
			domainerror.ErrCodeNetworkFailure,
			"rate request failed",
			fmt.Errorf("%w: %v", domainerror.ErrNetworkFailure, err),
		)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domainerror.NewRateError(
			domainerror.ErrCodeNetworkFailure,
			fmt.Sprintf("rate source returned status %d", resp.StatusCode),
			domainerror.ErrNetworkFailure,
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRateBodySize))
	if err != nil {
		return nil, domainerror.NewRateError(
			domainerror.ErrCodeNetworkFailure,
			"failed to read rate response",
			fmt.Errorf("%w: %v", domainerror.ErrNetworkFailure, err),
		)
	}
	return body, nil
}

func invalidPayload(message string) error {
	return domainerror.NewRateError(
		domainerror.ErrCodeInvalidRatePayload,
		message,
		domainerror.ErrInvalidRatePayload,
	)
}
