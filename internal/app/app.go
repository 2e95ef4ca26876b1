// artcom-pay/internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/example/artcom-pay/internal/callback"
	"github.com/example/artcom-pay/internal/config"
	"github.com/example/artcom-pay/internal/gateway/doku"
	"github.com/example/artcom-pay/internal/gateway/midtrans"
	"github.com/example/artcom-pay/internal/grpcserver"
	"github.com/example/artcom-pay/internal/handlers"
	"github.com/example/artcom-pay/internal/notify"
	"github.com/example/artcom-pay/internal/payment"
	"github.com/example/artcom-pay/pkg/httpclient"
	"github.com/example/artcom-pay/pkg/logger"
)

// App holds the wired components. Build creates it; Run serves it.
type App struct {
	Service  *payment.Service
	Notifier *notify.Notifier
	Handler  http.Handler
	GRPC     *grpc.Server
}

func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	const op = "app.Build"

	doer := httpclient.New(cfg.App.UserAgent, httpclient.WithTimeout(cfg.HTTP.ClientTimeout))

	snap := midtrans.New(doer, midtrans.Config{
		ServerKey: cfg.Midtrans.ServerKey,
		SnapURL:   cfg.Midtrans.SnapURL,
		ChargeURL: cfg.Midtrans.ChargeURL,
		UserAgent: cfg.App.UserAgent,
	}, log.With("component", "midtrans"))

	checkout := doku.New(doer, doku.Config{
		ClientID:      cfg.Doku.ClientID,
		SecretKey:     cfg.Doku.SecretKey,
		PrivateKeyPEM: cfg.Doku.DokuPrivateKeyPEM(),
		PaymentURL:    cfg.Doku.PaymentURL,
		TokenURL:      cfg.Doku.TokenURL,
		RequestTarget: cfg.Doku.RequestTarget,
		RequestPrefix: cfg.Doku.RequestPrefix,
		Mode:          doku.Mode(cfg.Doku.SigningMode),
	}, log.With("component", "doku"))

	sinks, err := initSinks(ctx, cfg, doer, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	notifier := notify.New(cfg.App.FunctionVersion, log.With("component", "notifier"), sinks,
		notify.Async(cfg.Notify.Async),
	)

	svc := payment.NewService(snap, checkout, notifier,
		callback.NewCodec(cfg.Callback.Secret),
		payment.Config{
			FunctionVersion: cfg.App.FunctionVersion,
			ProductionBase:  cfg.Callback.ProductionBase,
			TestBase:        cfg.Callback.TestBase,
			DirectURL:       cfg.Callback.DirectURL,
		},
		log.With("component", "payment"),
	)

	a := &App{
		Service:  svc,
		Notifier: notifier,
		Handler: handlers.NewRouter(handlers.Deps{
			Payments:        svc,
			Log:             log,
			FunctionVersion: cfg.App.FunctionVersion,
		}),
	}
	if cfg.GRPC.Addr != "" {
		a.GRPC = grpcserver.NewServer(svc, log.With("component", "grpc"))
	}
	return a, nil
}

// initSinks always delivers to the webhooks; Kafka and SQS join when configured.
func initSinks(ctx context.Context, cfg *config.Config, doer httpclient.Doer, log logger.Logger) ([]notify.Sink, error) {
	sinks := []notify.Sink{notify.NewWebhookSink(doer, notify.URLs{
		NextPay:     cfg.Notify.NextPayURL,
		NextPayTest: cfg.Notify.NextPayTestURL,
		Default:     cfg.Notify.DefaultURL,
	}, cfg.Notify.UserAgent)}

	if len(cfg.Kafka.Brokers) > 0 {
		sinks = append(sinks, notify.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		log.Infow("kafka sink enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	if cfg.SQS.QueueURL != "" {
		s, err := notify.NewSQSSink(ctx, notify.SQSConfig{
			QueueURL:  cfg.SQS.QueueURL,
			Region:    cfg.SQS.Region,
			AccessKey: cfg.SQS.AccessKey,
			Secret:    cfg.SQS.Secret,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
		log.Infow("sqs sink enabled", "queue_url", cfg.SQS.QueueURL)
	}
	return sinks, nil
}

// Run serves HTTP, and gRPC when configured, until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	a, err := Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Notifier.Close(); err != nil {
			log.Warnw("closing notifier", "error", err)
		}
	}()

	eg, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      a.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
	eg.Go(func() error {
		log.Infow("serving http", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app.Run: http: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Infow("shutting down http")
		return srv.Shutdown(shutdownCtx)
	})

	if a.GRPC != nil {
		if err := serveGRPC(ctx, eg, a.GRPC, cfg.GRPC, log); err != nil {
			return err
		}
	}

	return eg.Wait()
}

func serveGRPC(ctx context.Context, eg *errgroup.Group, s *grpc.Server, cfg config.GRPC, log logger.Logger) error {
	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("app.serveGRPC: listen %s: %w", cfg.Addr, err)
	}
	eg.Go(func() error {
		log.Infow("serving grpc", "addr", cfg.Addr)
		if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("app.serveGRPC: %w", err)
		}
		return nil
	})

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		eg.Go(func() error {
			log.Infow("serving grpc metrics", "addr", cfg.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("app.serveGRPC: metrics: %w", err)
			}
			return nil
		})
	}

	eg.Go(func() error {
		<-ctx.Done()
		s.GracefulStop()
		if metricsSrv != nil {
			return metricsSrv.Shutdown(context.WithoutCancel(ctx))
		}
		return nil
	})
	return nil
}
