// artcom-pay/internal/handlers/types.go
package handlers

import (
	"context"
	"time"

	"github.com/example/artcom-pay/internal/payment"
	"github.com/example/artcom-pay/pkg/logger"
)

// Payments is the pipeline the function endpoints delegate to.
type Payments interface {
	Initiate(ctx context.Context, req *payment.Request) payment.Result
	Charge(ctx context.Context, req *payment.ChargeRequest) payment.Result
}

type Deps struct {
	Payments        Payments
	Log             logger.Logger
	FunctionVersion string
	Now             func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

type PreflightOut struct {
	Message           string   `json:"message"`
	Timestamp         int64    `json:"timestamp"`
	FunctionVersion   string   `json:"function_version"`
	SupportedGateways []string `json:"supported_gateways,omitempty"`
}

type MethodNotAllowedOut struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error"`
	AllowedMethods []string `json:"allowed_methods"`
}

type ErrorOut struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
	Message   string `json:"message,omitempty"`
}
