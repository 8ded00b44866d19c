package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hrmsconsole/internal/app/server"
	"hrmsconsole/internal/platform/config"
	"hrmsconsole/internal/platform/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, logger); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
