package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/olivepayment/pos-intake/internal/config"
	"github.com/olivepayment/pos-intake/internal/mailer"
	"github.com/olivepayment/pos-intake/internal/relay"
	"github.com/olivepayment/pos-intake/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// newLogger builds the process logger from the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.Version = version
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsDebug() {
		logger.Debug("starting with configuration", "config", cfg.String())
	}

	// The relay endpoints refuse submissions until the credential is set,
	// but the server still boots so the gap is visible in one place.
	var sender mailer.Sender
	if cfg.HasMailCredential() {
		sender = mailer.NewSendGrid(cfg.SendGridAPIKey)
	} else {
		logger.Warn("POS_INTAKE_SENDGRID_API_KEY is not set; submissions will be rejected")
		sender = mailer.NewLogSender(logger)
	}

	relaySvc := relay.New(sender, relay.Options{
		FromAddress:        cfg.FromAddress,
		FromName:           cfg.FromName,
		AgentRecipients:    cfg.AgentRecipients,
		MerchantRecipients: cfg.MerchantRecipients,
	}, logger)

	srv := server.New(cfg, relaySvc, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		logger.Info("received signal, initiating graceful shutdown", "signal", sig.String())
		cancel()
		if err := <-serverErrCh; err != nil {
			logger.Error("server shutdown with error", "error", err)
			os.Exit(1)
		}
	case err := <-serverErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("server stopped successfully")
}

func printVersion() {
	fmt.Printf("pos-intake %s\n", version)
	fmt.Printf("Build time: %s\n", buildTime)
	fmt.Printf("Git commit: %s\n", gitCommit)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
