package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/artcom-pay/internal/app"
	"github.com/example/artcom-pay/internal/config"
	"github.com/example/artcom-pay/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the payment functions over HTTP (and gRPC when GRPC_ADDR is set)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Service:  cfg.App.Name,
		Env:      cfg.Env,
		Level:    cfg.Logger.Level,
		Filename: cfg.Logger.Filename,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Infow("application starting", "env", cfg.Env, "function_version", cfg.App.FunctionVersion)
	if err := app.Run(ctx, cfg, log); err != nil && ctx.Err() == nil {
		log.Errorw("application failed", "error", err)
		return err
	}
	log.Infow("application exited normally")
	return nil
}
