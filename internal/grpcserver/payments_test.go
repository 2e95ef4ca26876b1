package grpcserver

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/example/artcom-pay/internal/payment"
	"github.com/example/artcom-pay/pkg/logger"
)

type fakePayments struct {
	initiated []*payment.Request
	charged   []*payment.ChargeRequest
	result    payment.Result
}

func (f *fakePayments) Initiate(_ context.Context, req *payment.Request) payment.Result {
	f.initiated = append(f.initiated, req)
	return f.result
}

func (f *fakePayments) Charge(_ context.Context, req *payment.ChargeRequest) payment.Result {
	f.charged = append(f.charged, req)
	return f.result
}

func dial(t *testing.T, p Payments) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(p, logger.NewNop())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestInitiate_RelaysResult(t *testing.T) {
	p := &fakePayments{result: payment.Result{
		Status: http.StatusOK,
		Body:   payment.Success{Success: true, Gateway: "midtrans", Data: map[string]any{"token": "snap-token"}},
	}}
	c := dial(t, p)

	out, err := c.Initiate(context.Background(), mustStruct(t, map[string]any{
		"amount":          10000,
		"order_id":        "ARTCOM_123",
		"payment_gateway": "midtrans",
	}))
	require.NoError(t, err)

	require.Len(t, p.initiated, 1)
	req := p.initiated[0]
	assert.Equal(t, "ARTCOM_123", req.OrderID)
	assert.Equal(t, payment.SourceLegacy, req.PaymentSource)
	amount, ok := payment.ParseAmount(req.Amount)
	require.True(t, ok)
	assert.Equal(t, 10000, amount)

	m := out.AsMap()
	assert.Equal(t, float64(200), m["status_code"])
	body := m["body"].(map[string]any)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "midtrans", body["gateway"])
	assert.Equal(t, "snap-token", body["data"].(map[string]any)["token"])
}

func TestInitiate_FailureStaysInBody(t *testing.T) {
	p := &fakePayments{result: payment.Result{
		Status: http.StatusBadRequest,
		Body:   map[string]any{"success": false, "error": "invalid_amount"},
	}}
	c := dial(t, p)

	out, err := c.Initiate(context.Background(), mustStruct(t, map[string]any{"amount": "abc"}))
	require.NoError(t, err)
	m := out.AsMap()
	assert.Equal(t, float64(400), m["status_code"])
	assert.Equal(t, "invalid_amount", m["body"].(map[string]any)["error"])
}

func TestInitiate_BadShapeIsInvalidArgument(t *testing.T) {
	p := &fakePayments{}
	c := dial(t, p)

	_, err := c.Initiate(context.Background(), mustStruct(t, map[string]any{"order_id": 42}))
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Empty(t, p.initiated)
}

func TestCharge_DefaultsApplied(t *testing.T) {
	p := &fakePayments{result: payment.Result{Status: http.StatusOK, Body: map[string]any{"success": true}}}
	c := dial(t, p)

	_, err := c.Charge(context.Background(), mustStruct(t, map[string]any{
		"card_number": "4811111111111114",
		"amount":      5000,
		"order_id":    "CHG-1",
	}))
	require.NoError(t, err)
	require.Len(t, p.charged, 1)
	assert.Equal(t, "Test Customer", p.charged[0].CustomerName)
	assert.Equal(t, "test@artcom.design", p.charged[0].CustomerEmail)
}
