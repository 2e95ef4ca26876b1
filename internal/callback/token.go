// Package callback encodes the opaque callback token appended to NextPay
// return URLs. The downstream decoder recomputes the checksum with the
// shared secret, so the format here is a wire contract.
package callback

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

// Source tags carried in the token.
const (
	SourceNextPay     = "nextpay"
	SourceNextPayTest = "nextpay1"
)

// Token is the decoded form of a callback token.
type Token struct {
	Timestamp int64
	OrderID   string
	Source    string
	Checksum  string
}

type Codec struct {
	secret string
	now    func() time.Time
}

type Option func(*Codec)

// WithClock overrides the time source used by Encode.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(secret string, opts ...Option) *Codec {
	c := &Codec{secret: secret, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Encode returns base64("{ts}|{order_id}|{source}|{checksum}") for the current time.
func (c *Codec) Encode(orderID, source string) string {
	return c.EncodeAt(orderID, source, c.now().Unix())
}

func (c *Codec) EncodeAt(orderID, source string, ts int64) string {
	sum := c.checksum(orderID, source, ts)
	raw := strconv.FormatInt(ts, 10) + "|" + orderID + "|" + source + "|" + sum
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// Parse decodes a token without checking its checksum.
func Parse(token string) (Token, error) {
	const op = "callback.Parse"

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Token{}, fmt.Errorf("%s: decode: %w", op, err)
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != 4 {
		return Token{}, fmt.Errorf("%s: want 4 fields, got %d", op, len(parts))
	}
	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("%s: timestamp: %w", op, err)
	}
	return Token{Timestamp: ts, OrderID: parts[1], Source: parts[2], Checksum: parts[3]}, nil
}

// Verify reports whether tok's checksum matches this codec's secret.
func (c *Codec) Verify(tok Token) bool {
	return tok.Checksum == c.checksum(tok.OrderID, tok.Source, tok.Timestamp)
}

func (c *Codec) checksum(orderID, source string, ts int64) string {
	s := orderID + strconv.FormatInt(ts, 10) + source + c.secret
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = int32(int64(h<<5) - int64(h) + int64(u))
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}
