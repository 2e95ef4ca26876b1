package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusByKind(t *testing.T) {
	cases := map[Kind]int{
		KindValidation: http.StatusBadRequest,
		KindUpstream:   http.StatusBadRequest,
		KindSigning:    http.StatusInternalServerError,
		KindNetwork:    http.StatusInternalServerError,
		KindWebhook:    http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, (&E{Kind: kind}).Status(), kind)
	}
}

func TestWrapAndAs(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := fmt.Errorf("midtrans.post: %w", Wrap(KindNetwork, "internal_error", "snap call failed", cause))

	e, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "internal_error", e.Code)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsKind(err, KindNetwork))
	assert.False(t, IsKind(err, KindValidation))
	assert.Equal(t, "internal_error: snap call failed (connection reset)", e.Error())
}

func TestAs_PlainError(t *testing.T) {
	_, ok := As(stderrors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsKind(nil, KindNetwork))
}

func TestValidationWithFields(t *testing.T) {
	e := Validation("invalid_amount", "amount out of range").
		WithField("received", "0").
		WithField("parsed", 0)

	assert.Equal(t, KindValidation, e.Kind)
	assert.Equal(t, map[string]any{"received": "0", "parsed": 0}, e.Fields)
	assert.Equal(t, "invalid_amount: amount out of range", e.Error())
}
