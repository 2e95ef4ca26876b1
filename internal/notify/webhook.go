package notify

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/example/artcom-pay/pkg/errors"
	"github.com/example/artcom-pay/pkg/httpclient"
)

// URLs are the three downstream webhook endpoints.
type URLs struct {
	NextPay     string
	NextPayTest string
	Default     string
}

// IsNextPay reports whether orderID has the NextPay shape: prefix ARTCOM_ and
// exactly 34 characters.
func IsNextPay(orderID string) bool {
	return strings.HasPrefix(orderID, "ARTCOM_") && Length(orderID) == 34
}

// Length counts UTF-16 code units, the unit order id lengths are defined in.
func Length(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// Select picks the endpoint for an order.
func (u URLs) Select(orderID string, testMode bool) string {
	if !IsNextPay(orderID) {
		return u.Default
	}
	if testMode {
		return u.NextPayTest
	}
	return u.NextPay
}

type WebhookSink struct {
	http      httpclient.Doer
	urls      URLs
	userAgent string
}

func NewWebhookSink(doer httpclient.Doer, urls URLs, userAgent string) *WebhookSink {
	return &WebhookSink{http: doer, urls: urls, userAgent: userAgent}
}

func (s *WebhookSink) Name() string { return "webhook" }

// Send posts the envelope. Any HTTP status counts as delivered; only
// transport failures are errors.
func (s *WebhookSink) Send(ctx context.Context, ev Event, body []byte) error {
	url := s.urls.Select(ev.OrderID, ev.TestMode)
	_, err := s.http.Do(ctx, &httpclient.Request{
		URL: url,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"User-Agent":   s.userAgent,
		},
		Body: body,
	})
	if err != nil {
		return errors.Wrap(errors.KindWebhook, "webhook_failed", fmt.Sprintf("post %s", url), err)
	}
	return nil
}
