// artcom-pay/internal/grpcserver/payments.go

// Package grpcserver exposes the payment functions over gRPC. Requests and
// replies are google.protobuf.Struct documents carrying the same JSON the
// HTTP endpoints use, so no generated stubs are needed.
package grpcserver

import (
	"context"
	"encoding/json"

	gp "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/example/artcom-pay/internal/payment"
	"github.com/example/artcom-pay/pkg/logger"
)

const (
	ServiceName    = "artcom.payments.v1.PaymentFunctions"
	InitiateMethod = "/" + ServiceName + "/Initiate"
	ChargeMethod   = "/" + ServiceName + "/Charge"
)

type Payments interface {
	Initiate(ctx context.Context, req *payment.Request) payment.Result
	Charge(ctx context.Context, req *payment.ChargeRequest) payment.Result
}

// PaymentFunctionsServer is the service implemented by PaymentsServer.
type PaymentFunctionsServer interface {
	Initiate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Charge(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type PaymentsServer struct {
	Payments Payments
}

// Initiate runs the initiation pipeline. Pipeline failures are reported in
// status_code/body like the HTTP reply; only undecodable input is a gRPC error.
func (s *PaymentsServer) Initiate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req payment.Request
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	return encode(s.Payments.Initiate(ctx, &req))
}

func (s *PaymentsServer) Charge(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req payment.ChargeRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	return encode(s.Payments.Charge(ctx, &req))
}

func decode(in *structpb.Struct, dst any) error {
	raw, err := json.Marshal(in.AsMap())
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "bad_json: %v", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return status.Errorf(codes.InvalidArgument, "bad_json: %v", err)
	}
	return nil
}

func encode(res payment.Result) (*structpb.Struct, error) {
	raw, err := json.Marshal(res.Body)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	out, err := structpb.NewStruct(map[string]any{
		"status_code": res.Status,
		"body":        body,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	return out, nil
}

// requestIDInterceptor carries x-request-id metadata (or a fresh id) into
// the logging context.
func requestIDInterceptor(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-request-id"); len(v) > 0 {
				id = v[0]
			}
		}
		if id == "" {
			id = log.GenerateRequestID()
		}
		ctx = log.WithRequestID(ctx, id)
		resp, err := handler(ctx, req)
		if err != nil {
			log.Ctx(ctx).Warnw("grpc call failed", "method", info.FullMethod, "error", err)
		}
		return resp, err
	}
}

// NewServer builds a gRPC server with Prometheus interceptors and the
// payment functions registered.
func NewServer(p Payments, log logger.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(gp.UnaryServerInterceptor, requestIDInterceptor(log)),
		grpc.StreamInterceptor(gp.StreamServerInterceptor),
	)
	RegisterPaymentFunctionsServer(s, &PaymentsServer{Payments: p})
	gp.Register(s)
	return s
}

func RegisterPaymentFunctionsServer(s grpc.ServiceRegistrar, srv PaymentFunctionsServer) {
	s.RegisterService(&PaymentFunctions_ServiceDesc, srv)
}

var PaymentFunctions_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PaymentFunctionsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Initiate", Handler: unaryHandler(InitiateMethod, PaymentFunctionsServer.Initiate)},
		{MethodName: "Charge", Handler: unaryHandler(ChargeMethod, PaymentFunctionsServer.Charge)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "artcom/payments/v1/functions.proto",
}

type structMethod func(PaymentFunctionsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PaymentFunctionsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PaymentFunctionsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls PaymentFunctions on a connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) Initiate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, InitiateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Charge(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ChargeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
