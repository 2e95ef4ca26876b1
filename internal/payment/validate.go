package payment

import (
	"strings"

	"github.com/example/artcom-pay/internal/callback"
	"github.com/example/artcom-pay/internal/notify"
	"github.com/example/artcom-pay/pkg/errors"
)

var allowedGateways = []string{GatewayMidtrans, GatewayDoku}

// Validated is a request that passed every input check.
type Validated struct {
	*Request
	Amount    int
	IsNextPay bool
	// SourceTag is the callback token source: nextpay1 for test NextPay
	// orders, nextpay otherwise.
	SourceTag string
}

// Validate checks gateway, then order id, then amount; the first failure
// wins. The order id check comes before the amount check so a malformed
// legacy token is reported as such whatever the amount.
func Validate(req *Request) (*Validated, error) {
	switch req.PaymentGateway {
	case "":
		return nil, errors.Validation("missing_gateway", "payment_gateway parameter is required").
			WithField("allowed_gateways", allowedGateways)
	case GatewayMidtrans, GatewayDoku:
	default:
		return nil, errors.Validation("invalid_gateway", `payment_gateway must be either "midtrans" or "doku"`).
			WithField("received", req.PaymentGateway).
			WithField("allowed_gateways", allowedGateways)
	}

	if err := validateOrderID(req.PaymentSource, req.OrderID); err != nil {
		return nil, err
	}

	amount, ok := ParseAmount(req.Amount)
	if !ok || amount < MinAmount || amount > MaxAmount {
		e := errors.Validation("invalid_amount", "Invalid amount: must be between 1 and 999,999,999").
			WithField("received", req.Amount)
		if ok {
			e.WithField("parsed", amount)
		}
		return nil, e
	}

	v := &Validated{Request: req, Amount: amount, IsNextPay: notify.IsNextPay(req.OrderID), SourceTag: callback.SourceNextPay}
	if v.IsNextPay && (req.PaymentSource == SourceNextPayTest || req.TestMode) {
		v.SourceTag = callback.SourceNextPayTest
	}
	return v, nil
}

func validateOrderID(source, orderID string) error {
	switch source {
	case SourceLegacy, SourceNextPayTest:
		if notify.Length(orderID) != 34 || !strings.HasPrefix(orderID, "ARTCOM_") {
			return errors.Validation("invalid_legacy_token", "Invalid 34-character token format for legacy system").
				WithField("received", orderID).
				WithField("received_length", notify.Length(orderID)).
				WithField("expected", "ARTCOM_ + 27 characters = 34 total")
		}
	case SourceWix, SourceWixSimple:
		if !strings.HasPrefix(orderID, "ARTCOM_") {
			return errors.Validation("invalid_wix_order", "Invalid order ID format for Wix system").
				WithField("received", orderID).
				WithField("expected", "ARTCOM_ + reference")
		}
	default:
		if notify.Length(orderID) < 5 {
			return errors.Validation("invalid_order_id", "Invalid order ID").
				WithField("received", orderID)
		}
	}
	return nil
}
