package httpclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/artcom-pay/pkg/httpclient"
)

func TestClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Basic abc", r.Header.Get("Authorization"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := httpclient.New("test-agent")
	resp, err := c.Do(context.Background(), &httpclient.Request{
		URL: srv.URL + "/snap/v1/transactions",
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Basic abc",
		},
		Body: []byte(`{"ok":true}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestClient_DoNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error_messages":["declined"]}`))
	}))
	defer srv.Close()

	resp, err := httpclient.New("").Do(context.Background(), &httpclient.Request{URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.False(t, resp.OK())
}

func TestClient_DoCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := httpclient.New("").Do(ctx, &httpclient.Request{URL: "http://127.0.0.1:1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_DoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := httpclient.New("", httpclient.WithTimeout(2*time.Second)).
		Do(context.Background(), &httpclient.Request{URL: url})
	require.Error(t, err)
}
