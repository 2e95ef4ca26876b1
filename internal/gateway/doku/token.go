package doku

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/example/artcom-pay/pkg/errors"
	"github.com/example/artcom-pay/pkg/httpclient"
	m "github.com/example/artcom-pay/pkg/metrics"
)

// TokenHint accompanies token exchange failures in responses.
const TokenHint = "Get your Private/Public Key pair from the DOKU Dashboard and set DOKU_PRIVATE_KEY"

// ParsePrivateKey accepts PKCS#1 ("RSA PRIVATE KEY") and PKCS#8 ("PRIVATE KEY") PEM.
func ParsePrivateKey(pemText string) (*rsa.PrivateKey, error) {
	const op = "doku.ParsePrivateKey"

	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, fmt.Errorf("%s: no PEM block found", op)
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%s: key is %T, want RSA", op, parsed)
	}
	return key, nil
}

// SignTokenRequest is base64(RSA-SHA256(key, "{clientID}|{timestamp}")).
func SignTokenRequest(key *rsa.PrivateKey, clientID, timestamp string) (string, error) {
	sum := sha256.Sum256([]byte(clientID + "|" + timestamp))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, sum[:])
	if err != nil {
		return "", fmt.Errorf("doku.SignTokenRequest: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// TokenB2B exchanges a signed client assertion for a bearer token.
func (c *Client) TokenB2B(ctx context.Context, key *rsa.PrivateKey) (string, error) {
	const op = "doku.TokenB2B"

	ts := Timestamp(ModeTokenB2B, c.now())
	sig, err := SignTokenRequest(key, c.cfg.ClientID, ts)
	if err != nil {
		return "", errors.Wrap(errors.KindSigning, "signing_error", "RSA signing with DOKU_PRIVATE_KEY failed", err)
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, &httpclient.Request{
		URL: c.cfg.TokenURL,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"X-CLIENT-KEY": c.cfg.ClientID,
			"X-TIMESTAMP":  ts,
			"X-SIGNATURE":  sig,
		},
		Body: []byte(`{"grantType":"client_credentials"}`),
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		m.ObserveGatewayCall("doku", "token", "error", elapsed)
		return "", errors.Wrap(errors.KindSigning, "token_b2b_failed", op+": request failed", err)
	}

	var reply struct {
		AccessToken string `json:"accessToken"`
		ExpiresIn   any    `json:"expiresIn"`
	}
	_ = json.Unmarshal(resp.Body, &reply)

	if !resp.OK() || reply.AccessToken == "" {
		m.ObserveGatewayCall("doku", "token", "rejected", elapsed)
		c.log.Ctx(ctx).Warnw("doku token b2b rejected", "status", resp.StatusCode, "bytes", len(resp.Body))
		return "", errors.New(errors.KindSigning, "token_b2b_failed",
			fmt.Sprintf("%s: token endpoint answered %d without accessToken", op, resp.StatusCode))
	}

	m.ObserveGatewayCall("doku", "token", "ok", elapsed)
	c.log.Ctx(ctx).Infow("doku token b2b obtained", "token_len", len(reply.AccessToken), "expires_in", reply.ExpiresIn)
	return reply.AccessToken, nil
}
