// artcom-pay/internal/gateway/midtrans/types.go
package midtrans

import (
	"encoding/json"

	"github.com/example/artcom-pay/internal/identity"
)

// EnabledPayments is the fixed method list offered on the Snap page.
var EnabledPayments = []string{
	"credit_card", "gopay", "shopeepay", "other_qris",
	"bank_transfer", "echannel", "permata_va", "bca_va", "bni_va", "bri_va", "other_va",
}

type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int    `json:"gross_amount"`
}

type ItemDetail struct {
	ID       string `json:"id"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type Expiry struct {
	StartTime string `json:"start_time"`
	Unit      string `json:"unit"`
	Duration  int    `json:"duration"`
}

type Callbacks struct {
	Finish   string `json:"finish"`
	Unfinish string `json:"unfinish"`
	Error    string `json:"error"`
}

type SnapCard struct {
	Secure bool `json:"secure"`
}

// SnapRequest is the body of POST /snap/v1/transactions.
type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CreditCard         SnapCard           `json:"credit_card"`
	ItemDetails        []ItemDetail       `json:"item_details"`
	CustomerDetails    identity.Customer  `json:"customer_details"`
	EnabledPayments    []string           `json:"enabled_payments"`
	Expiry             Expiry             `json:"expiry"`
	CustomField1       string             `json:"custom_field1"`
	CustomField2       string             `json:"custom_field2"`
	CustomField3       string             `json:"custom_field3"`
	Callbacks          Callbacks          `json:"callbacks"`
	CustomExpiry       any                `json:"custom_expiry,omitempty"`
	CustomReference    any                `json:"custom_reference,omitempty"`
}

// Result is an upstream reply. Body is the raw JSON document as received.
type Result struct {
	StatusCode int
	Body       json.RawMessage
}

// OK reports a 2xx upstream status.
func (r *Result) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// SnapResult adds the fields read out of a Snap reply.
type SnapResult struct {
	Result
	Token       string
	RedirectURL string
}

type ChargeCard struct {
	CardNumber   any    `json:"card_number"`
	CardExpMonth any    `json:"card_exp_month"`
	CardExpYear  any    `json:"card_exp_year"`
	CardCVV      any    `json:"card_cvv"`
	Secure       bool   `json:"secure"`
	Bank         string `json:"bank"`
	SaveCard     bool   `json:"save_card"`
}

type ChargeCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ChargeRequest is the body of POST /v2/charge for a card payment.
type ChargeRequest struct {
	PaymentType        string             `json:"payment_type"`
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CreditCard         ChargeCard         `json:"credit_card"`
	CustomerDetails    ChargeCustomer     `json:"customer_details"`
	ItemDetails        []ItemDetail       `json:"item_details"`
}
