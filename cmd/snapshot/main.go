package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/williampepple1/page-snapshotter/internal/io"
	"github.com/williampepple1/page-snapshotter/internal/logging"
	"github.com/williampepple1/page-snapshotter/internal/runner"
)

func main() {
	opts, err := parseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(opts.Verbose)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration
	appConfig, err := buildConfig(opts, logger)
	if err != nil {
		logger.Fatal("Error loading configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := runner.New(appConfig, logger).Run(ctx)
	summary := runner.Summarize(results)

	if appConfig.Report.OutputFile != "" {
		resultWriter := io.NewResultWriter(&appConfig.Report)
		if err := resultWriter.SaveToFile(results); err != nil {
			logger.Error("Error saving report", zap.Error(err))
			summary.Failed++
		} else {
			logger.Info("Report saved to " + appConfig.Report.OutputFile)
		}
	}

	logger.Info(fmt.Sprintf("Done in %v. Captured: %d, Degraded: %d, Failed: %d",
		time.Since(start).Round(time.Millisecond), summary.Captured, summary.Degraded, summary.Failed))

	code := runner.ExitCode(summary, appConfig.Strict)
	logger.Sync()
	stop()
	os.Exit(code)
}
