package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/artcom-pay/pkg/httpclient"
	"github.com/example/artcom-pay/pkg/logger"
)

const nextPayOrder = "ARTCOM_123456789012345678901234567"

var testURLs = URLs{
	NextPay:     "https://nextpays.de/webhook/midtrans.php",
	NextPayTest: "https://nextpays1.de/webhook/midtrans.php",
	Default:     "https://www.artcom.design/webhook/midtrans.php",
}

type recordSink struct {
	mu     sync.Mutex
	name   string
	bodies [][]byte
	err    error
	delay  time.Duration
}

func (s *recordSink) Name() string { return s.name }

func (s *recordSink) Send(ctx context.Context, _ Event, body []byte) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies = append(s.bodies, body)
	return s.err
}

func (s *recordSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}

type fakeDoer struct {
	mu   sync.Mutex
	reqs []*httpclient.Request
	err  error
}

func (f *fakeDoer) Do(_ context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &httpclient.Response{StatusCode: 200, Body: []byte("OK")}, nil
}

func TestIsNextPay(t *testing.T) {
	assert.True(t, IsNextPay(nextPayOrder))
	assert.False(t, IsNextPay(nextPayOrder[:33]))
	assert.False(t, IsNextPay(nextPayOrder+"8"))
	assert.False(t, IsNextPay("XRTCOM_123456789012345678901234567"))
}

func TestURLs_Select(t *testing.T) {
	assert.Equal(t, testURLs.NextPayTest, testURLs.Select(nextPayOrder, true))
	assert.Equal(t, testURLs.NextPay, testURLs.Select(nextPayOrder, false))
	assert.Equal(t, testURLs.Default, testURLs.Select("ORDER-12345", true))
	assert.Equal(t, testURLs.Default, testURLs.Select("ORDER-12345", false))
}

func TestEnvelope(t *testing.T) {
	n := New("artcom_v8.0_multi_gateway", logger.NewNop(), nil,
		WithClock(func() time.Time { return time.UnixMilli(1700000000123) }))

	payload := map[string]any{"event": "payment_initiated_legacy", "order_id": "X"}
	env := n.Envelope(Event{Payload: payload})

	assert.Equal(t, "2023-11-14T22:13:20.123Z", env["timestamp"])
	assert.Equal(t, int64(1700000000), env["timestamp_unix"])
	assert.Equal(t, "artcom_v8.0_multi_gateway", env["function_version"])
	assert.Equal(t, "payment_initiated_legacy", env["event"])
	assert.NotContains(t, payload, "timestamp")
}

func TestNotify_WebhookSinkPostsEnvelope(t *testing.T) {
	d := &fakeDoer{}
	n := New("v", logger.NewNop(), []Sink{NewWebhookSink(d, testURLs, "ArtCom-Payment-Function-v8.0-multi-gateway")})

	n.Notify(context.Background(), Event{
		Name: "payment_initiated_nextpay_test", OrderID: nextPayOrder, TestMode: true,
		Payload: map[string]any{"event": "payment_initiated_nextpay_test", "status": "PENDING"},
	})

	require.Len(t, d.reqs, 1)
	req := d.reqs[0]
	assert.Equal(t, testURLs.NextPayTest, req.URL)
	assert.Equal(t, "ArtCom-Payment-Function-v8.0-multi-gateway", req.Headers["User-Agent"])
	assert.Equal(t, "application/json", req.Headers["Content-Type"])

	var env map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &env))
	assert.Equal(t, "PENDING", env["status"])
	assert.Equal(t, "v", env["function_version"])
	assert.Contains(t, env, "timestamp_unix")
}

func TestNotify_FailuresAreSwallowed(t *testing.T) {
	bad := &recordSink{name: "bad", err: errors.New("boom")}
	good := &recordSink{name: "good"}
	web := NewWebhookSink(&fakeDoer{err: errors.New("refused")}, testURLs, "ua")
	n := New("v", logger.NewNop(), []Sink{bad, good, web})

	assert.NotPanics(t, func() {
		n.Notify(context.Background(), Event{Name: "e", OrderID: "ORDER-1", Payload: map[string]any{}})
	})
	assert.Equal(t, 1, bad.count())
	assert.Equal(t, 1, good.count())
}

func TestNotify_AsyncDetaches(t *testing.T) {
	slow := &recordSink{name: "slow", delay: 50 * time.Millisecond}
	n := New("v", logger.NewNop(), []Sink{slow}, Async(true))

	ctx, cancel := context.WithCancel(context.Background())
	n.Notify(ctx, Event{Name: "e", OrderID: "ORDER-1", Payload: map[string]any{}})
	cancel()

	assert.Equal(t, 0, slow.count())
	n.Wait()
	assert.Equal(t, 1, slow.count())
}

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { w.closed = true; return nil }

func TestKafkaSink(t *testing.T) {
	w := &fakeWriter{}
	s := &KafkaSink{w: w, topic: "payments.initiated"}
	n := New("v", logger.NewNop(), []Sink{s})

	n.Notify(context.Background(), Event{Name: "payment_initiated_doku", OrderID: "ORDER-1", Payload: map[string]any{"event": "payment_initiated_doku"}})
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("ORDER-1"), w.msgs[0].Key)
	assert.Equal(t, "event", w.msgs[0].Headers[0].Key)
	assert.Equal(t, []byte("payment_initiated_doku"), w.msgs[0].Headers[0].Value)

	require.NoError(t, n.Close())
	assert.True(t, w.closed)
}

type fakeSQS struct {
	in []*sqs.SendMessageInput
}

func (f *fakeSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.in = append(f.in, in)
	return &sqs.SendMessageOutput{}, nil
}

func TestSQSSink(t *testing.T) {
	api := &fakeSQS{}
	s := &SQSSink{client: api, queueURL: "https://sqs.ap-southeast-1.amazonaws.com/1/payments"}

	require.NoError(t, s.Send(context.Background(), Event{Name: "payment_initiated_legacy", OrderID: "ORDER-1"}, []byte(`{"a":1}`)))
	require.Len(t, api.in, 1)
	assert.Equal(t, "https://sqs.ap-southeast-1.amazonaws.com/1/payments", *api.in[0].QueueUrl)
	assert.Equal(t, `{"a":1}`, *api.in[0].MessageBody)
	assert.Equal(t, "ORDER-1", *api.in[0].MessageAttributes["order_id"].StringValue)

	require.NoError(t, s.Send(context.Background(), Event{}, []byte(`{}`)))
	assert.Empty(t, api.in[1].MessageAttributes)
}
