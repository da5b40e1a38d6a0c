package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pdfmerger/config"
	"pdfmerger/logging"
	"pdfmerger/pdf"
	"pdfmerger/s3"
	"pdfmerger/server"
)

// runServer starts the host for the presentation layer and blocks until
// SIGINT or SIGTERM.
func runServer() int {
	cfg, err := config.Load(config.BaseConfigFile)
	if err == nil {
		err = cfg.Finalize()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		return 1
	}

	logger := logging.New(&cfg.Logging, os.Stdout)

	var publisher server.Publisher
	if cfg.Storage.Enabled {
		client, err := s3.New(&cfg.Storage, logger)
		if err != nil {
			logger.Error("failed to create storage client", "error", err)
			return 1
		}
		publisher = client
	}

	merger := pdf.New(pdf.NewPDFCPUCodec(), logger)
	srv := server.New(cfg, merger, publisher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		return 1
	}
	return 0
}
