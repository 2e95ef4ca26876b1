// Package payment runs the initiation pipeline: validate, synthesize the
// customer, call the selected gateway and notify downstream.
package payment

import (
	"context"
	"time"

	"github.com/example/artcom-pay/internal/callback"
	"github.com/example/artcom-pay/internal/gateway/doku"
	"github.com/example/artcom-pay/internal/gateway/midtrans"
	"github.com/example/artcom-pay/internal/notify"
	"github.com/example/artcom-pay/pkg/logger"
)

type SnapClient interface {
	CreateTransaction(ctx context.Context, req *midtrans.SnapRequest) (*midtrans.SnapResult, error)
	Charge(ctx context.Context, req *midtrans.ChargeRequest) (*midtrans.Result, error)
}

type CheckoutClient interface {
	CreatePayment(ctx context.Context, req *doku.CheckoutRequest) (*doku.Result, error)
}

type Notifier interface {
	Notify(ctx context.Context, ev notify.Event)
}

type Config struct {
	FunctionVersion string
	// Callback hosts for NextPay and DOKU return URLs.
	ProductionBase string
	TestBase       string
	// DirectURL receives non-NextPay Snap callbacks as ?order_id=.
	DirectURL string
}

type Service struct {
	snap     SnapClient
	checkout CheckoutClient
	notifier Notifier
	codec    *callback.Codec
	cfg      Config
	log      logger.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(snap SnapClient, checkout CheckoutClient, notifier Notifier, codec *callback.Codec, cfg Config, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		snap:     snap,
		checkout: checkout,
		notifier: notifier,
		codec:    codec,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Initiate validates req and dispatches it to the requested gateway.
func (s *Service) Initiate(ctx context.Context, req *Request) Result {
	log := s.log.Ctx(ctx)

	v, err := Validate(req)
	if err != nil {
		log.Warnw("payment request rejected", "error", err, "gateway", req.PaymentGateway, "source", req.PaymentSource)
		return s.failureFrom("", err)
	}

	log.Infow("payment request accepted",
		"gateway", v.PaymentGateway,
		"order_id", v.OrderID,
		"amount", v.Amount,
		"source", v.PaymentSource,
		"nextpay", v.IsNextPay,
		"test_mode", v.TestMode,
	)

	if v.PaymentGateway == GatewayDoku {
		return s.initiateDoku(ctx, v)
	}
	return s.initiateMidtrans(ctx, v)
}
