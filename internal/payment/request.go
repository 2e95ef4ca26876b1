package payment

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Payment sources with dedicated order id rules.
const (
	SourceLegacy      = "legacy"
	SourceNextPayTest = "nextpay_test"
	SourceWix         = "wix"
	SourceWixSimple   = "wix_simple"
)

const (
	GatewayMidtrans = "midtrans"
	GatewayDoku     = "doku"
)

const (
	MinAmount = 1
	MaxAmount = 999_999_999
)

// Request is an initiation request as posted by the front ends. Loosely
// typed fields accept either strings or numbers.
type Request struct {
	Amount          any    `json:"amount"`
	OrderID         string `json:"order_id"`
	PaymentSource   string `json:"payment_source"`
	PaymentGateway  string `json:"payment_gateway"`
	CustomName      string `json:"custom_name"`
	CreditCard      any    `json:"credit_card"`
	CallbackBaseURL string `json:"callback_base_url"`
	TestMode        bool   `json:"test_mode"`
	ItemName        string `json:"item_name"`
	AutoRedirect    *bool  `json:"auto_redirect"`
	Referrer        any    `json:"referrer"`
	UserAgent       any    `json:"user_agent"`
	Origin          any    `json:"origin"`
	WixRef          any    `json:"wix_ref"`
	WixExpiry       any    `json:"wix_expiry"`
	WixSignature    any    `json:"wix_signature"`
}

// UnmarshalJSON defaults payment_source to legacy when the field is absent.
func (r *Request) UnmarshalJSON(b []byte) error {
	type plain Request
	p := plain{PaymentSource: SourceLegacy}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Request(p)
	return nil
}

// ParseAmount strips every non-digit and parses the rest. ok is false when
// nothing numeric remains or the value overflows.
func ParseAmount(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	digits := onlyDigits(cast.ToString(v))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func onlyDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// truthy mirrors the loose presence checks applied to JSON values: null,
// false, zero and the empty string count as absent.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	}
	return true
}
