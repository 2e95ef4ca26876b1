package payment

import (
	"net/http"

	"github.com/example/artcom-pay/pkg/errors"
)

// Result is what a transport writes back: an HTTP-style status and a JSON body.
type Result struct {
	Status int
	Body   any
}

type Success struct {
	Success bool   `json:"success"`
	Gateway string `json:"gateway"`
	Data    any    `json:"data"`
}

func success(gateway string, data any) Result {
	return Result{Status: http.StatusOK, Body: Success{Success: true, Gateway: gateway, Data: data}}
}

// failure renders e as {success:false, error, error_type, message, ...fields}.
// status zero means e.Status().
func failure(status int, gateway string, e *errors.E) Result {
	body := map[string]any{
		"success":    false,
		"error":      e.Code,
		"error_type": string(e.Kind),
	}
	if gateway != "" {
		body["gateway"] = gateway
	}
	if e.Message != "" {
		body["message"] = e.Message
	}
	for k, v := range e.Fields {
		body[k] = v
	}
	if status == 0 {
		status = e.Status()
	}
	return Result{Status: status, Body: body}
}

// failureFrom converts any error. Errors without a kind become internal errors.
func (s *Service) failureFrom(gateway string, err error) Result {
	e, ok := errors.As(err)
	if !ok {
		e = &errors.E{Kind: errors.KindNetwork, Code: "internal_error", Message: err.Error()}
	}
	if e.Code == "internal_error" {
		e.WithField("timestamp", s.now().Unix()).WithField("function_version", s.cfg.FunctionVersion)
		if e.Err != nil {
			e.Message = e.Message + ": " + e.Err.Error()
		}
	}
	return failure(0, gateway, e)
}
