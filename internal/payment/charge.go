package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/example/artcom-pay/internal/gateway/midtrans"
	"github.com/example/artcom-pay/pkg/errors"
)

// ChargeRequest is a direct card charge through the Core API.
type ChargeRequest struct {
	CardNumber    any    `json:"card_number"`
	CardExpMonth  any    `json:"card_exp_month"`
	CardExpYear   any    `json:"card_exp_year"`
	CardCVV       any    `json:"card_cvv"`
	Amount        any    `json:"amount"`
	OrderID       any    `json:"order_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// UnmarshalJSON applies the customer defaults for absent fields.
func (r *ChargeRequest) UnmarshalJSON(b []byte) error {
	type plain ChargeRequest
	p := plain{
		CustomerName:  "Test Customer",
		CustomerEmail: "test@artcom.design",
		CustomerPhone: "+6281234567890",
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = ChargeRequest(p)
	return nil
}

type chargeReply struct {
	Success   bool  `json:"success"`
	Data      any   `json:"data"`
	OrderID   any   `json:"order_id"`
	Amount    any   `json:"amount"`
	Timestamp int64 `json:"timestamp"`
}

// leadingInt parses an optional sign and the leading run of digits, the way
// loose integer parsing of form values works. ok is false when no digit leads.
func leadingInt(v any) (int, bool) {
	s := strings.TrimLeft(cast.ToString(v), " \t\n\r")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func maskCard(v any) string {
	s := cast.ToString(v)
	if len(s) <= 6 {
		return strings.Repeat("*", len(s))
	}
	return s[:6] + strings.Repeat("*", len(s)-6)
}

// Charge validates a card charge, posts it and wraps the upstream reply.
// Any upstream status yields 200 with success reflecting a 2xx reply.
func (s *Service) Charge(ctx context.Context, req *ChargeRequest) Result {
	log := s.log.Ctx(ctx)

	if !truthy(req.CardNumber) || !truthy(req.CardExpMonth) || !truthy(req.CardExpYear) || !truthy(req.CardCVV) {
		return failure(http.StatusBadRequest, "", errors.Validation("missing_card_details", "Missing card details"))
	}
	if !truthy(req.Amount) || !truthy(req.OrderID) {
		return failure(http.StatusBadRequest, "", errors.Validation("missing_amount_or_order", "Missing amount or order_id"))
	}

	orderID := cast.ToString(req.OrderID)
	amount, _ := leadingInt(req.Amount)

	nameParts := strings.Split(req.CustomerName, " ")
	first := nameParts[0]
	if first == "" {
		first = "Test"
	}
	last := strings.Join(nameParts[1:], " ")
	if last == "" {
		last = "Customer"
	}

	charge := &midtrans.ChargeRequest{
		PaymentType:        "credit_card",
		TransactionDetails: midtrans.TransactionDetails{OrderID: orderID, GrossAmount: amount},
		CreditCard: midtrans.ChargeCard{
			CardNumber:   req.CardNumber,
			CardExpMonth: req.CardExpMonth,
			CardExpYear:  req.CardExpYear,
			CardCVV:      req.CardCVV,
			Secure:       true,
			Bank:         "bni",
			SaveCard:     false,
		},
		CustomerDetails: midtrans.ChargeCustomer{
			FirstName: first,
			LastName:  last,
			Email:     req.CustomerEmail,
			Phone:     req.CustomerPhone,
		},
		ItemDetails: []midtrans.ItemDetail{
			{ID: "TEST_PRODUCT", Price: amount, Quantity: 1, Name: "Test Product Payment"},
		},
	}

	log.Infow("core api charge", "order_id", orderID, "amount", amount, "card", maskCard(req.CardNumber))

	res, err := s.snap.Charge(ctx, charge)
	if err != nil {
		log.Errorw("core api charge failed", "order_id", orderID, "error", err)
		return s.failureFrom("", err)
	}

	return Result{Status: http.StatusOK, Body: chargeReply{
		Success:   res.OK(),
		Data:      res.Body,
		OrderID:   req.OrderID,
		Amount:    req.Amount,
		Timestamp: s.now().Unix(),
	}}
}
