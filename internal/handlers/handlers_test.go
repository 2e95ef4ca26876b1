package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/artcom-pay/internal/payment"
	"github.com/example/artcom-pay/pkg/logger"
)

type fakePayments struct {
	initiated []*payment.Request
	charged   []*payment.ChargeRequest
	result    payment.Result
	panicMsg  string
}

func (f *fakePayments) Initiate(_ context.Context, req *payment.Request) payment.Result {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.initiated = append(f.initiated, req)
	return f.result
}

func (f *fakePayments) Charge(_ context.Context, req *payment.ChargeRequest) payment.Result {
	f.charged = append(f.charged, req)
	return f.result
}

func newTestRouter(p *fakePayments) http.Handler {
	return NewRouter(Deps{
		Payments:        p,
		Log:             logger.NewNop(),
		FunctionVersion: "artcom_v8.0_multi_gateway",
		Now:             func() time.Time { return time.Unix(1700000000, 0) },
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, hdr map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestFunction_Preflight(t *testing.T) {
	h := newTestRouter(&fakePayments{})

	rec, body := do(t, h, http.MethodOptions, "/.netlify/functions/midtrans-token", "", map[string]string{
		"Origin":                        "https://shop.example",
		"Access-Control-Request-Method": "POST",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "CORS preflight successful", body["message"])
	assert.Equal(t, []any{"midtrans", "doku"}, body["supported_gateways"])
	assert.Equal(t, float64(1700000000), body["timestamp"])
	assert.Equal(t, "artcom_v8.0_multi_gateway", body["function_version"])
}

func TestFunction_MethodNotAllowed(t *testing.T) {
	p := &fakePayments{}
	h := newTestRouter(p)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec, body := do(t, h, method, "/api/payments", "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "method_not_allowed", body["error"])
		assert.Equal(t, []any{"POST", "OPTIONS"}, body["allowed_methods"])
	}
	assert.Empty(t, p.initiated)
}

func TestFunction_PostDelegates(t *testing.T) {
	p := &fakePayments{result: payment.Result{Status: 402, Body: map[string]any{"success": false, "error": "upstream_rejection"}}}
	h := newTestRouter(p)

	rec, body := do(t, h, http.MethodPost, "/.netlify/functions/midtrans-token",
		`{"payment_gateway":"midtrans","order_id":"ORDER-1","amount":"10000","unknown":"ignored"}`,
		map[string]string{"Content-Type": "application/json", "X-Request-ID": "req-1"})

	assert.Equal(t, 402, rec.Code)
	assert.Equal(t, "upstream_rejection", body["error"])
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))

	require.Len(t, p.initiated, 1)
	assert.Equal(t, "midtrans", p.initiated[0].PaymentGateway)
	assert.Equal(t, "legacy", p.initiated[0].PaymentSource)
	assert.Equal(t, "10000", p.initiated[0].Amount)
}

func TestFunction_EmptyBodyIsEmptyObject(t *testing.T) {
	p := &fakePayments{result: payment.Result{Status: 400, Body: map[string]any{"error": "missing_gateway"}}}
	rec, _ := do(t, newTestRouter(p), http.MethodPost, "/api/payments", "", nil)

	assert.Equal(t, 400, rec.Code)
	require.Len(t, p.initiated, 1)
	assert.Empty(t, p.initiated[0].PaymentGateway)
}

func TestFunction_BadJSON(t *testing.T) {
	p := &fakePayments{}
	rec, body := do(t, newTestRouter(p), http.MethodPost, "/api/payments", `{"amount":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", body["error"])
	assert.Equal(t, "validation_error", body["error_type"])
	assert.Empty(t, p.initiated)
}

func TestFunction_PanicBecomes500(t *testing.T) {
	p := &fakePayments{panicMsg: "boom"}
	rec, body := do(t, newTestRouter(p), http.MethodPost, "/api/payments", `{}`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", body["error"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCharge_Routes(t *testing.T) {
	p := &fakePayments{result: payment.Result{Status: 200, Body: map[string]any{"success": true}}}
	h := newTestRouter(p)

	rec, body := do(t, h, http.MethodOptions, "/.netlify/functions/payment-charge", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CORS OK", body["message"])
	assert.NotContains(t, body, "supported_gateways")

	rec, _ = do(t, h, http.MethodGet, "/.netlify/functions/payment-charge", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec, body = do(t, h, http.MethodPost, "/.netlify/functions/payment-charge", `{"card_number":"4811111111111114","amount":1000,"order_id":"O-1"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	require.Len(t, p.charged, 1)
	assert.Equal(t, "Test Customer", p.charged[0].CustomerName)
}

func TestHealth(t *testing.T) {
	rec, body := do(t, newTestRouter(&fakePayments{}), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "payment-functions", body["service"])
}

func TestMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	newTestRouter(&fakePayments{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
