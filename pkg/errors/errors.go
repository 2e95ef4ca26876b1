// artcom-pay/pkg/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind groups failures by how they surface to the caller.
type Kind string

const (
	KindValidation Kind = "validation_error"
	KindUpstream   Kind = "upstream_rejection"
	KindSigning    Kind = "signing_error"
	KindNetwork    Kind = "network_error"
	KindWebhook    Kind = "webhook_error"
)

// E is the error carried across adapter boundaries. Code is the
// machine-readable reason written into the response envelope.
type E struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
	// Fields are copied into the failure envelope next to the code.
	Fields map[string]any
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

// WithField attaches an envelope field and returns e for chaining.
func (e *E) WithField(key string, v any) *E {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = v
	return e
}

// Status maps the kind to the HTTP status used when no upstream status is relayed.
func (e *E) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstream:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, code, msg string) error {
	return &E{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind Kind, code, msg string, err error) error {
	return &E{Kind: kind, Code: code, Message: msg, Err: err}
}

// Validation is shorthand for a 400-class input failure.
func Validation(code, msg string) *E {
	return &E{Kind: KindValidation, Code: code, Message: msg}
}

// As extracts an *E from err's chain.
func As(err error) (*E, bool) {
	var e *E
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries an *E of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
