// artcom-pay/internal/gateway/midtrans/client.go
package midtrans

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/example/artcom-pay/pkg/errors"
	"github.com/example/artcom-pay/pkg/httpclient"
	"github.com/example/artcom-pay/pkg/logger"
	m "github.com/example/artcom-pay/pkg/metrics"
)

type Config struct {
	ServerKey string
	SnapURL   string
	ChargeURL string
	UserAgent string
}

type Client struct {
	http httpclient.Doer
	cfg  Config
	log  logger.Logger
}

func New(doer httpclient.Doer, cfg Config, log logger.Logger) *Client {
	return &Client{http: doer, cfg: cfg, log: log}
}

// AuthHeader is Basic base64(serverKey + ":").
func AuthHeader(serverKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(serverKey+":"))
}

func (c *Client) headers(withUA bool) map[string]string {
	h := map[string]string{
		"Accept":        "application/json",
		"Content-Type":  "application/json",
		"Authorization": AuthHeader(c.cfg.ServerKey),
	}
	if withUA && c.cfg.UserAgent != "" {
		h["User-Agent"] = c.cfg.UserAgent
	}
	return h
}

// CreateTransaction posts a Snap transaction. A non-2xx reply is returned as
// a result, not an error; errors are transport or decoding failures.
func (c *Client) CreateTransaction(ctx context.Context, req *SnapRequest) (*SnapResult, error) {
	res, err := c.post(ctx, "snap", c.cfg.SnapURL, req, true)
	if err != nil {
		return nil, err
	}

	var reply struct {
		Token       string `json:"token"`
		RedirectURL string `json:"redirect_url"`
	}
	// Error bodies may not be objects; only the success path needs these fields.
	_ = json.Unmarshal(res.Body, &reply)

	return &SnapResult{Result: *res, Token: reply.Token, RedirectURL: reply.RedirectURL}, nil
}

// Charge posts a Core API card charge.
func (c *Client) Charge(ctx context.Context, req *ChargeRequest) (*Result, error) {
	return c.post(ctx, "charge", c.cfg.ChargeURL, req, false)
}

func (c *Client) post(ctx context.Context, step, url string, payload any, withUA bool) (*Result, error) {
	const op = "midtrans.post"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(errors.KindNetwork, "internal_error", op+": encode request", err)
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, &httpclient.Request{
		URL:     url,
		Headers: c.headers(withUA),
		Body:    body,
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		m.ObserveGatewayCall("midtrans", step, "error", elapsed)
		c.log.Ctx(ctx).Errorw("midtrans call failed", "step", step, "error", err)
		return nil, errors.Wrap(errors.KindNetwork, "internal_error", op+": "+step+" request failed", err)
	}

	outcome := "ok"
	if !resp.OK() {
		outcome = "rejected"
	}
	m.ObserveGatewayCall("midtrans", step, outcome, elapsed)
	c.log.Ctx(ctx).Infow("midtrans replied", "step", step, "status", resp.StatusCode, "bytes", len(resp.Body))

	if !json.Valid(resp.Body) {
		return nil, errors.New(errors.KindNetwork, "internal_error", op+": "+step+" reply is not JSON")
	}
	return &Result{StatusCode: resp.StatusCode, Body: json.RawMessage(resp.Body)}, nil
}
