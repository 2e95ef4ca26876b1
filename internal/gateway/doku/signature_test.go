package doku

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCheckout() *CheckoutRequest {
	return &CheckoutRequest{
		Order: Order{
			Amount:        10000,
			InvoiceNumber: "ORDER-12345",
			CallbackURL:   "https://x.test?gateway=doku&order_id=ORDER-12345",
			AutoRedirect:  true,
		},
		Payment:  PaymentTerms{PaymentDueDate: 60},
		Customer: Customer{Name: "Customer ArtCom", Email: "customer@artcom.design", Phone: "+6281234567890"},
	}
}

func TestEncodeBody_Minified(t *testing.T) {
	body, err := EncodeBody(sampleCheckout())
	require.NoError(t, err)
	assert.Equal(t,
		`{"order":{"amount":10000,"invoice_number":"ORDER-12345","callback_url":"https://x.test?gateway=doku&order_id=ORDER-12345","auto_redirect":true},"payment":{"payment_due_date":60},"customer":{"name":"Customer ArtCom","email":"customer@artcom.design","phone":"+6281234567890"}}`,
		string(body))
}

func TestSign_KnownValues(t *testing.T) {
	body, err := EncodeBody(sampleCheckout())
	require.NoError(t, err)

	tests := []struct {
		mode       Mode
		timestamp  string
		wantDigest string
		wantSig    string
	}{
		{
			mode:       ModeTokenB2B,
			timestamp:  "2023-11-15T05:13:20+07:00",
			wantDigest: "IreCurqnvLKB6qtt1BF4UV4HzQORgbj7rxQ820sAxMA=",
			wantSig:    "T/KLNNk8RkMygh5PdU/+yoBlsS49qoOIuSXbCkOAFi0=",
		},
		{
			mode:       ModeHexDigest,
			timestamp:  "2023-11-14T22:13:20.000Z",
			wantDigest: "22b782babaa7bcb281eaab6dd41178515e07cd039181b8fbaf143cdb4b00c4c0",
			wantSig:    "s01yS7e6V8/LrAtSMZ0ugomNmmFbCZlRhJuKHzYv8v4=",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			digest := Digest(tt.mode, body)
			assert.Equal(t, tt.wantDigest, digest)

			comp := Components("BRN-0001", "ARTCOM-1700000000000-abc123", tt.timestamp, "/checkout/v1/payment", digest)
			assert.Equal(t, tt.wantSig, Sign("SK-secret", comp))
		})
	}
}

func TestTimestamp(t *testing.T) {
	at := time.Unix(1700000000, 0)
	assert.Equal(t, "2023-11-15T05:13:20+07:00", Timestamp(ModeTokenB2B, at))
	assert.Equal(t, "2023-11-14T22:13:20.000Z", Timestamp(ModeHexDigest, at))
}

func TestRequestID(t *testing.T) {
	id := RequestID("ARTCOM", time.UnixMilli(1700000000123))
	assert.Regexp(t, regexp.MustCompile(`^ARTCOM-1700000000123-[0-9a-z]{1,13}$`), id)
	assert.NotEqual(t, id, RequestID("ARTCOM", time.UnixMilli(1700000000123)))
}
