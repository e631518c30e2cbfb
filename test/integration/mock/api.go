package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// RatesPath is the path prefix the rate API mock serves, followed by /{BASE}.
const RatesPath = "/v6/latest"

type rateResponse struct {
	status int
	body   map[string]any
}

// ApiMock imitates the exchange-rate endpoint. Responses are configured per
// base currency and every request is counted.
type ApiMock struct {
	mu        sync.Mutex
	responses map[string]rateResponse
	requests  map[string]int
	server    *httptest.Server
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		responses: map[string]rateResponse{},
		requests:  map[string]int{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the base URL to hand to the exchange-rate client.
func (a *ApiMock) GetUrl() string {
	return a.server.URL + RatesPath
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimPrefix(r.URL.Path, RatesPath+"/"))

	a.mu.Lock()
	a.requests[base]++
	resp, ok := a.responses[base]
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "error", "error-type": "unsupported-code"})
		return
	}

	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}

// SetRates serves a successful payload for base. The base itself is quoted at 1.
func (a *ApiMock) SetRates(base string, rates map[string]string, updatedAt time.Time) {
	quoted := make(map[string]any, len(rates)+1)
	quoted[base] = json.Number("1")
	for code, value := range rates {
		quoted[code] = json.Number(value)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[base] = rateResponse{
		status: http.StatusOK,
		body: map[string]any{
			"result":                "success",
			"base_code":             base,
			"time_last_update_unix": updatedAt.Unix(),
			"rates":                 quoted,
		},
	}
}

// SetFailure makes every request for base answer with status.
func (a *ApiMock) SetFailure(base string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[base] = rateResponse{
		status: status,
		body:   map[string]any{"result": "error", "error-type": "service-unavailable"},
	}
}

// RequestCount returns how many requests were made for base.
func (a *ApiMock) RequestCount(base string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[base]
}

// Reset forgets configured responses and recorded requests.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = map[string]rateResponse{}
	a.requests = map[string]int{}
}
