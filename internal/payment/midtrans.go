package payment

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/example/artcom-pay/internal/callback"
	"github.com/example/artcom-pay/internal/gateway/midtrans"
	"github.com/example/artcom-pay/internal/identity"
	"github.com/example/artcom-pay/internal/notify"
	"github.com/example/artcom-pay/pkg/errors"
)

const defaultItemName = "ArtCom Design Payment"

var (
	wib     = time.FixedZone("WIB", 7*60*60)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type wixInfo struct {
	Reference any `json:"reference"`
	Expiry    any `json:"expiry"`
	Signature any `json:"signature"`
}

type debugInfo struct {
	OrderID         string            `json:"order_id"`
	OrderIDLength   int               `json:"order_id_length"`
	AmountIDR       int               `json:"amount_idr"`
	System          string            `json:"system"`
	CallbackURL     string            `json:"callback_url"`
	IsNextPay       bool              `json:"is_nextpay"`
	TokenInCallback bool              `json:"token_in_callback"`
	SourceInToken   string            `json:"source_in_token"`
	CustomerData    identity.Customer `json:"customer_data"`
	EmailValid      bool              `json:"email_valid"`
}

type midtransData struct {
	Token            string    `json:"token"`
	RedirectURL      string    `json:"redirect_url"`
	OrderID          string    `json:"order_id"`
	Amount           int       `json:"amount"`
	AutoRedirect     bool      `json:"auto_redirect"`
	ExpiryDuration   string    `json:"expiry_duration"`
	MidtransResponse any       `json:"midtrans_response"`
	Timestamp        int64     `json:"timestamp"`
	FunctionVersion  string    `json:"function_version"`
	PaymentSource    string    `json:"payment_source"`
	TestMode         bool      `json:"test_mode"`
	NextPaySource    string    `json:"nextpay_source"`
	DebugInfo        debugInfo `json:"debug_info"`
	WixInfo          *wixInfo  `json:"wix_info,omitempty"`
}

// snapCallbackURL is where Snap returns the buyer. NextPay orders carry a
// callback token first in the query so Snap can append its own parameters.
func (s *Service) snapCallbackURL(v *Validated) string {
	if !v.IsNextPay {
		return s.cfg.DirectURL + "?order_id=" + v.OrderID
	}
	base := v.CallbackBaseURL
	if base == "" {
		base = s.cfg.ProductionBase
		if v.SourceTag == callback.SourceNextPayTest {
			base = s.cfg.TestBase
		}
	}
	return base + "?callback_token=" + s.codec.Encode(v.OrderID, v.SourceTag)
}

// displayName is the trimmed custom name, or a stable fallback.
func displayName(v *Validated) string {
	if name := identity.Trim(v.CustomName); name != "" {
		return name
	}
	return identity.FallbackName(v.OrderID, strconv.Itoa(v.Amount))
}

func (s *Service) initiateMidtrans(ctx context.Context, v *Validated) Result {
	log := s.log.Ctx(ctx).With("gateway", GatewayMidtrans, "order_id", v.OrderID)
	now := s.now()

	itemName := v.ItemName
	if itemName == "" {
		itemName = defaultItemName
	}
	itemID := "ARTCOM_LEGACY"
	if v.PaymentSource == SourceWix {
		itemID = "ARTCOM_WIX"
	}

	name := displayName(v)
	customer := identity.Generate(name, v.CreditCard)
	callbackURL := s.snapCallbackURL(v)

	req := &midtrans.SnapRequest{
		TransactionDetails: midtrans.TransactionDetails{OrderID: v.OrderID, GrossAmount: v.Amount},
		CreditCard:         midtrans.SnapCard{Secure: true},
		ItemDetails: []midtrans.ItemDetail{
			{ID: itemID, Price: v.Amount, Quantity: 1, Name: itemName},
		},
		CustomerDetails: customer,
		EnabledPayments: midtrans.EnabledPayments,
		Expiry: midtrans.Expiry{
			StartTime: now.In(wib).Format("2006-01-02 15:04:05 -0700"),
			Unit:      "minute",
			Duration:  5,
		},
		CustomField1: v.OrderID,
		CustomField2: v.PaymentSource,
		CustomField3: strconv.FormatInt(now.Unix(), 10),
		Callbacks:    midtrans.Callbacks{Finish: callbackURL, Unfinish: callbackURL, Error: callbackURL},
	}
	isWix := v.PaymentSource == SourceWix
	if isWix && truthy(v.WixRef) {
		req.CustomExpiry = v.WixExpiry
		req.CustomReference = v.WixRef
	}

	pending := map[string]any{
		"event":                  "payment_initiated_" + v.PaymentSource,
		"order_id":               v.OrderID,
		"amount":                 v.Amount,
		"item_name":              itemName,
		"gateway":                GatewayMidtrans,
		"status":                 "PENDING",
		"payment_source":         v.PaymentSource,
		"customer_data":          customer,
		"callback_url":           callbackURL,
		"is_nextpay":             v.IsNextPay,
		"nextpay_source":         v.SourceTag,
		"token_created_at_start": v.IsNextPay,
		"test_mode":              v.TestMode,
		"request_details": map[string]any{
			"referrer":       v.Referrer,
			"user_agent":     v.UserAgent,
			"origin":         v.Origin,
			"custom_name":    v.CustomName,
			"generated_name": name,
		},
	}
	if isWix {
		pending["wix_data"] = wixInfo{Reference: v.WixRef, Expiry: v.WixExpiry, Signature: v.WixSignature}
	}
	s.notifier.Notify(ctx, notify.Event{
		Name:     "payment_initiated_" + v.PaymentSource,
		OrderID:  v.OrderID,
		TestMode: v.TestMode,
		Payload:  pending,
	})

	res, err := s.snap.CreateTransaction(ctx, req)
	if err != nil {
		log.Errorw("snap transaction failed", "error", err)
		return s.failureFrom(GatewayMidtrans, err)
	}

	if !res.OK() || res.Token == "" {
		status := res.StatusCode
		if res.OK() {
			status = http.StatusBadRequest
		}
		log.Warnw("snap transaction rejected", "status", res.StatusCode, "has_token", res.Token != "")
		e := &errors.E{Kind: errors.KindUpstream, Code: "upstream_rejection", Message: "Failed to generate payment token"}
		e.WithField("details", res.Body).WithField("midtrans_status", res.StatusCode)
		return failure(status, GatewayMidtrans, e)
	}

	log.Infow("snap transaction created", "nextpay_source", v.SourceTag)

	data := midtransData{
		Token:            res.Token,
		RedirectURL:      res.RedirectURL,
		OrderID:          v.OrderID,
		Amount:           v.Amount,
		AutoRedirect:     v.AutoRedirect != nil && *v.AutoRedirect,
		ExpiryDuration:   "5 minutes",
		MidtransResponse: res.Body,
		Timestamp:        s.now().Unix(),
		FunctionVersion:  s.cfg.FunctionVersion,
		PaymentSource:    v.PaymentSource,
		TestMode:         v.TestMode,
		NextPaySource:    v.SourceTag,
		DebugInfo: debugInfo{
			OrderID:         v.OrderID,
			OrderIDLength:   notify.Length(v.OrderID),
			AmountIDR:       v.Amount,
			System:          v.PaymentSource,
			CallbackURL:     callbackURL,
			IsNextPay:       v.IsNextPay,
			TokenInCallback: v.IsNextPay,
			SourceInToken:   v.SourceTag,
			CustomerData:    customer,
			EmailValid:      emailRe.MatchString(customer.Email),
		},
	}
	if isWix {
		data.WixInfo = &wixInfo{Reference: v.WixRef, Expiry: v.WixExpiry, Signature: v.WixSignature}
	}
	return success(GatewayMidtrans, data)
}
