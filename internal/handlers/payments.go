// artcom-pay/internal/handlers/payments.go
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/example/artcom-pay/internal/payment"
	"github.com/example/artcom-pay/pkg/errors"
	m "github.com/example/artcom-pay/pkg/metrics"
)

const maxBodyBytes = 1 << 20

var allowedMethods = []string{http.MethodPost, http.MethodOptions}

// FunctionHandler serves the payment initiation function: OPTIONS answers the
// preflight, POST runs the pipeline, anything else is 405.
func FunctionHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !methodGate(w, r, d, "CORS preflight successful", []string{payment.GatewayMidtrans, payment.GatewayDoku}) {
			return
		}

		var in payment.Request
		if !decodeBody(w, r, &in) {
			m.IncRequest("payment-functions", "FAILED", "BAD_JSON")
			return
		}

		res := d.Payments.Initiate(r.Context(), &in)
		m.IncRequest("payment-functions", outcome(res.Status), "INITIATE_"+gatewayLabel(in.PaymentGateway))
		writeJSON(w, res.Status, res.Body)
	}
}

// ChargeHandler serves the direct card charge function.
func ChargeHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !methodGate(w, r, d, "CORS OK", nil) {
			return
		}

		var in payment.ChargeRequest
		if !decodeBody(w, r, &in) {
			m.IncRequest("payment-functions", "FAILED", "BAD_JSON")
			return
		}

		res := d.Payments.Charge(r.Context(), &in)
		m.IncRequest("payment-functions", outcome(res.Status), "CHARGE")
		writeJSON(w, res.Status, res.Body)
	}
}

// methodGate writes the preflight or 405 reply and reports whether the
// request should continue as a POST.
func methodGate(w http.ResponseWriter, r *http.Request, d Deps, message string, gateways []string) bool {
	switch r.Method {
	case http.MethodPost:
		return true
	case http.MethodOptions:
		writeJSON(w, http.StatusOK, PreflightOut{
			Message:           message,
			Timestamp:         d.now().Unix(),
			FunctionVersion:   d.FunctionVersion,
			SupportedGateways: gateways,
		})
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, MethodNotAllowedOut{
			Success:        false,
			Error:          "method_not_allowed",
			AllowedMethods: allowedMethods,
		})
	}
	return false
}

// decodeBody reads a JSON object; an empty body decodes as {}.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorOut{Error: "bad_json", ErrorType: string(errors.KindValidation), Message: err.Error()})
		return false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorOut{Error: "bad_json", ErrorType: string(errors.KindValidation), Message: err.Error()})
		return false
	}
	return true
}

func outcome(status int) string {
	if status >= 200 && status < 300 {
		return "SUCCESS"
	}
	return "FAILED"
}

func gatewayLabel(g string) string {
	switch g {
	case payment.GatewayMidtrans:
		return "MIDTRANS"
	case payment.GatewayDoku:
		return "DOKU"
	}
	return "UNKNOWN"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
