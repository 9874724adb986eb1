// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/clean-karachi/apiclient"
	"github.com/danielhkuo/clean-karachi/cliparse"
	"github.com/danielhkuo/clean-karachi/dashboard"
	"github.com/danielhkuo/clean-karachi/db"
	"github.com/danielhkuo/clean-karachi/metrics"
	"github.com/danielhkuo/clean-karachi/middleware"
	"github.com/danielhkuo/clean-karachi/router"
)

func main() {
	var err error

	// A missing .env is fine; real env and flags still apply
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "error", err)
	}

	// Text logs for a terminal, JSON for everything else
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the journal database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
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
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	collector := metrics.NewCollector()
	collector.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client, err := apiclient.NewClient(cfg.APIBase,
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithObserver(collector),
	)
	if err != nil {
		slog.Error("invalid backend address", "error", err)
		os.Exit(1)
	}

	dash := dashboard.New(client,
		dashboard.WithJournal(db.NewJournal(dbConn)),
		dashboard.WithRecorder(collector),
	)

	// Initial load; a dead backend leaves the dashboard in demo mode
	res := dash.Refresh(context.Background())
	slog.Info("Initial load", "api", cfg.APIBase, "connectivity", res.Connectivity)

	// Create router
	mux := router.NewRouter(dash, dbConn, collector, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
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
