// Package doku is the DOKU Checkout adapter: token exchange, request
// signing and the payment call.
package doku

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/example/artcom-pay/pkg/errors"
	"github.com/example/artcom-pay/pkg/httpclient"
	"github.com/example/artcom-pay/pkg/logger"
	m "github.com/example/artcom-pay/pkg/metrics"
)

type Config struct {
	ClientID      string
	SecretKey     string
	PrivateKeyPEM string
	PaymentURL    string
	TokenURL      string
	RequestTarget string
	RequestPrefix string
	Mode          Mode
}

type Order struct {
	Amount        int    `json:"amount"`
	InvoiceNumber string `json:"invoice_number"`
	CallbackURL   string `json:"callback_url"`
	AutoRedirect  bool   `json:"auto_redirect"`
}

type PaymentTerms struct {
	PaymentDueDate int `json:"payment_due_date"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CheckoutRequest is the body of POST /checkout/v1/payment.
type CheckoutRequest struct {
	Order    Order        `json:"order"`
	Payment  PaymentTerms `json:"payment"`
	Customer Customer     `json:"customer"`
}

// Result is the payment reply. On a non-2xx status Details holds the parsed
// body, or {"error": text} when it was not JSON.
type Result struct {
	StatusCode  int
	Body        json.RawMessage
	Details     any
	TokenID     string
	URL         string
	ExpiredDate string
}

func (r *Result) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

type Client struct {
	http httpclient.Doer
	cfg  Config
	log  logger.Logger
	now  func() time.Time

	keyOnce sync.Once
	key     *rsa.PrivateKey
	keyErr  error
}

type Option func(*Client)

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(doer httpclient.Doer, cfg Config, log logger.Logger, opts ...Option) *Client {
	if cfg.Mode == "" {
		cfg.Mode = ModeTokenB2B
	}
	if cfg.RequestTarget == "" {
		cfg.RequestTarget = "/checkout/v1/payment"
	}
	if cfg.RequestPrefix == "" {
		cfg.RequestPrefix = "ARTCOM"
	}
	c := &Client{http: doer, cfg: cfg, log: log, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Mode() Mode { return c.cfg.Mode }

// privateKey parses the configured key once. Absence and malformed PEM are
// both signing errors that name the credential.
func (c *Client) privateKey() (*rsa.PrivateKey, error) {
	c.keyOnce.Do(func() {
		if strings.TrimSpace(c.cfg.PrivateKeyPEM) == "" {
			c.keyErr = errors.New(errors.KindSigning, "signing_error",
				"DOKU_PRIVATE_KEY is not configured; an RSA private key is required for Token B2B")
			return
		}
		key, err := ParsePrivateKey(c.cfg.PrivateKeyPEM)
		if err != nil {
			c.keyErr = errors.Wrap(errors.KindSigning, "signing_error", "DOKU_PRIVATE_KEY could not be parsed", err)
			return
		}
		c.key = key
	})
	return c.key, c.keyErr
}

func (c *Client) checkCredentials() error {
	if c.cfg.Mode == ModeTokenB2B {
		if _, err := c.privateKey(); err != nil {
			return err
		}
	}
	if c.cfg.ClientID == "" {
		return errors.New(errors.KindSigning, "signing_error", "DOKU_CLIENT_ID is not configured")
	}
	if c.cfg.SecretKey == "" {
		return errors.New(errors.KindSigning, "signing_error", "DOKU_SECRET_KEY is not configured")
	}
	return nil
}

// EncodeBody renders the body without HTML escaping or a trailing newline;
// the digest covers exactly these bytes.
func EncodeBody(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// CreatePayment signs and sends a checkout request. Credential problems and
// token failures are returned before the payment endpoint is contacted.
func (c *Client) CreatePayment(ctx context.Context, req *CheckoutRequest) (*Result, error) {
	const op = "doku.CreatePayment"
	log := c.log.Ctx(ctx).With("gateway", "doku", "mode", string(c.cfg.Mode))

	if err := c.checkCredentials(); err != nil {
		log.Errorw("doku credentials unusable", "error", err)
		return nil, err
	}

	body, err := EncodeBody(req)
	if err != nil {
		return nil, errors.Wrap(errors.KindNetwork, "internal_error", op+": encode body", err)
	}

	var bearer string
	if c.cfg.Mode == ModeTokenB2B {
		key, _ := c.privateKey()
		if bearer, err = c.TokenB2B(ctx, key); err != nil {
			return nil, err
		}
	}

	now := c.now()
	requestID := RequestID(c.cfg.RequestPrefix, now)
	ts := Timestamp(c.cfg.Mode, now)
	sig := Sign(c.cfg.SecretKey, Components(c.cfg.ClientID, requestID, ts, c.cfg.RequestTarget, Digest(c.cfg.Mode, body)))

	headers := map[string]string{
		"Content-Type":      "application/json",
		"Client-Id":         c.cfg.ClientID,
		"Request-Id":        requestID,
		"Request-Timestamp": ts,
		"Signature":         "HMACSHA256=" + sig,
	}
	if bearer != "" {
		headers["Authorization"] = "Bearer " + bearer
	}

	log.Infow("doku payment request", "request_id", requestID, "body_len", len(body))

	start := time.Now()
	resp, err := c.http.Do(ctx, &httpclient.Request{URL: c.cfg.PaymentURL, Headers: headers, Body: body})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		m.ObserveGatewayCall("doku", "payment", "error", elapsed)
		log.Errorw("doku payment call failed", "error", err)
		return nil, errors.Wrap(errors.KindNetwork, "internal_error", op+": payment request failed", err)
	}

	res := &Result{StatusCode: resp.StatusCode, Body: json.RawMessage(resp.Body)}
	if !res.OK() {
		m.ObserveGatewayCall("doku", "payment", "rejected", elapsed)
		log.Warnw("doku payment rejected", "status", resp.StatusCode)
		var details any
		if err := json.Unmarshal(resp.Body, &details); err != nil {
			details = map[string]any{"error": string(resp.Body)}
		}
		res.Body = nil
		res.Details = details
		return res, nil
	}

	var reply struct {
		Response *struct {
			Payment *struct {
				TokenID     string `json:"token_id"`
				URL         string `json:"url"`
				ExpiredDate string `json:"expired_date"`
			} `json:"payment"`
		} `json:"response"`
	}
	if err := json.Unmarshal(resp.Body, &reply); err != nil || reply.Response == nil || reply.Response.Payment == nil {
		m.ObserveGatewayCall("doku", "payment", "malformed", elapsed)
		return nil, errors.New(errors.KindNetwork, "internal_error", op+": reply has no response.payment")
	}

	m.ObserveGatewayCall("doku", "payment", "ok", elapsed)
	p := reply.Response.Payment
	res.TokenID, res.URL, res.ExpiredDate = p.TokenID, p.URL, p.ExpiredDate
	return res, nil
}
