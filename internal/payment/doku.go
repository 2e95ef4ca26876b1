package payment

import (
	"context"

	"github.com/example/artcom-pay/internal/gateway/doku"
	"github.com/example/artcom-pay/internal/identity"
	"github.com/example/artcom-pay/internal/notify"
	"github.com/example/artcom-pay/pkg/errors"
)

// dokuDefaultCustomer is sent when no custom name is given.
var dokuDefaultCustomer = doku.Customer{
	Name:  "Customer ArtCom",
	Email: "customer@artcom.design",
	Phone: "+6281234567890",
}

type dokuData struct {
	Token           string `json:"token"`
	RedirectURL     string `json:"redirect_url"`
	OrderID         string `json:"order_id"`
	Amount          int    `json:"amount"`
	AutoRedirect    bool   `json:"auto_redirect"`
	ExpiryDate      string `json:"expiry_date"`
	DokuResponse    any    `json:"doku_response"`
	Timestamp       int64  `json:"timestamp"`
	FunctionVersion string `json:"function_version"`
	PaymentSource   string `json:"payment_source"`
	TestMode        bool   `json:"test_mode"`
}

func (s *Service) dokuCallbackURL(v *Validated) string {
	base := v.CallbackBaseURL
	if base == "" {
		base = s.cfg.ProductionBase
		if v.TestMode {
			base = s.cfg.TestBase
		}
	}
	return base + "?gateway=doku&order_id=" + v.OrderID
}

func dokuCustomer(v *Validated) doku.Customer {
	if v.CustomName == "" {
		return dokuDefaultCustomer
	}
	c := identity.Generate(v.CustomName, v.CreditCard)
	return doku.Customer{Name: c.FirstName + " " + c.LastName, Email: c.Email, Phone: c.Phone}
}

func (s *Service) initiateDoku(ctx context.Context, v *Validated) Result {
	log := s.log.Ctx(ctx).With("gateway", GatewayDoku, "order_id", v.OrderID)

	callbackURL := s.dokuCallbackURL(v)
	req := &doku.CheckoutRequest{
		Order: doku.Order{
			Amount:        v.Amount,
			InvoiceNumber: v.OrderID,
			CallbackURL:   callbackURL,
			AutoRedirect:  v.AutoRedirect == nil || *v.AutoRedirect,
		},
		Payment:  doku.PaymentTerms{PaymentDueDate: 60},
		Customer: dokuCustomer(v),
	}

	res, err := s.checkout.CreatePayment(ctx, req)
	if err != nil {
		log.Errorw("doku payment failed", "error", err)
		if e, ok := errors.As(err); ok && e.Code == "token_b2b_failed" {
			e.WithField("hint", doku.TokenHint)
		}
		return s.failureFrom(GatewayDoku, err)
	}

	if !res.OK() {
		log.Warnw("doku payment rejected", "status", res.StatusCode)
		e := &errors.E{Kind: errors.KindUpstream, Code: "upstream_rejection", Message: "Doku payment creation failed"}
		e.WithField("details", res.Details).WithField("doku_status", res.StatusCode)
		return failure(res.StatusCode, GatewayDoku, e)
	}

	s.notifier.Notify(ctx, notify.Event{
		Name:     "payment_initiated_doku",
		OrderID:  v.OrderID,
		TestMode: v.TestMode,
		Payload: map[string]any{
			"event":          "payment_initiated_doku",
			"order_id":       v.OrderID,
			"amount":         v.Amount,
			"gateway":        GatewayDoku,
			"payment_source": v.PaymentSource,
			"test_mode":      v.TestMode,
			"doku_token":     res.TokenID,
			"callback_url":   callbackURL,
		},
	})

	log.Infow("doku payment created", "has_url", res.URL != "", "has_token", res.TokenID != "")

	return success(GatewayDoku, dokuData{
		Token:           res.TokenID,
		RedirectURL:     res.URL,
		OrderID:         v.OrderID,
		Amount:          v.Amount,
		AutoRedirect:    req.Order.AutoRedirect,
		ExpiryDate:      res.ExpiredDate,
		DokuResponse:    res.Body,
		Timestamp:       s.now().Unix(),
		FunctionVersion: s.cfg.FunctionVersion,
		PaymentSource:   v.PaymentSource,
		TestMode:        v.TestMode,
	})
}
