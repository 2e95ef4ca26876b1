// Package httpclient is the outbound HTTP client shared by the gateway
// adapters and the webhook notifier.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
)

type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Doer is what adapters depend on; tests substitute a fake.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

type Client struct {
	c       *fasthttp.Client
	timeout time.Duration
}

type Option func(*Client)

// WithTimeout bounds calls whose context carries no deadline. Zero keeps
// the fasthttp default of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func New(userAgent string, opts ...Option) *Client {
	c := &Client{
		c: &fasthttp.Client{
			Name:                     userAgent,
			NoDefaultUserAgentHeader: userAgent == "",
			MaxIdleConnDuration:      30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	const op = "httpclient.Do"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(freq)
	defer fasthttp.ReleaseResponse(fresp)

	freq.SetRequestURI(req.URL)
	freq.Header.SetMethod(method)
	for k, v := range req.Headers {
		freq.Header.Set(k, v)
	}
	if req.Body != nil {
		freq.SetBody(req.Body)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.c.DoDeadline(freq, fresp, deadline)
	} else if c.timeout > 0 {
		err = c.c.DoTimeout(freq, fresp, c.timeout)
	} else {
		err = c.c.Do(freq, fresp)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %s %s: %w", op, method, req.URL, err)
	}

	// fresp is recycled after return; copy the body out.
	body := append([]byte(nil), fresp.Body()...)
	return &Response{StatusCode: fresp.StatusCode(), Body: body}, nil
}
