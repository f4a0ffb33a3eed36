package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/radar-cac/radar/captcha"
	"github.com/radar-cac/radar/cliparse"
	"github.com/radar-cac/radar/db"
	"github.com/radar-cac/radar/metrics"
	"github.com/radar-cac/radar/router"
	"github.com/radar-cac/radar/tracing"
)

func main() {
	var err error

	// Local development; a missing file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		slog.Error("invalid database type", "error", err)
		os.Exit(1)
	}

	shutdownTracing, err := tracing.Init(context.Background(), "radar", cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("tracing setup failed", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing()

	metrics.Init()

	// Connect and verify
	dbConn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	seeded, err := db.SeedUnits(dbConn)
	if err != nil {
		slog.Error("unit seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "dialect", dialect, "units_seeded", seeded)

	verifier := captcha.New(cfg.RecaptchaSecret,
		captcha.WithVerifyURL(cfg.RecaptchaVerifyURL),
		captcha.WithTimeout(cfg.VerifyTimeout),
		captcha.WithMinScore(cfg.RecaptchaMinScore),
	)

	// Create router
	mux := router.NewRouter(dbConn, cfg, verifier)

	// Create server
	server := http.Server{
		Handler:           mux,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight submissions finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
