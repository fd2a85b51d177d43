package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"extcount/config"
	"extcount/logger"
	"extcount/output"
	"extcount/report"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	var logFile io.Closer
	if cfg.LogFile != "" {
		logFile = logger.UseFile(cfg.LogFile)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go handleSignals(cancel)

	code := run(ctx, cfg)
	cancel()
	if logFile != nil {
		_ = logFile.Close()
	}
	os.Exit(code)
}

// run generates the report and maps the outcome to an exit code. An
// unsupported format is a soft failure: it is logged and exits cleanly.
func run(ctx context.Context, cfg *config.Config) int {
	path, err := report.Generate(ctx, cfg)
	switch {
	case errors.Is(err, output.ErrUnsupportedFormat):
		return 0
	case err != nil:
		logger.Errorf("Report generation failed: %v", err)
		return 1
	}
	logger.Infof("Report saved to %s", path)
	return 0
}

func handleSignals(cancelFunc context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	handleSignalEvent(cancelFunc, sigChan)
}

func handleSignalEvent(cancelFunc context.CancelFunc, sigChan <-chan os.Signal) {
	<-sigChan
	logger.Info("Interrupt signal received. Stopping scan...")
	cancelFunc()
}
