// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"quillpress/internal/config"
	"quillpress/internal/database"
	"quillpress/internal/mockapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the resource API server",
	Long: `Run the REST resource API the client commands talk to.

The backing store is selected with MOCK_STORE: "memory" keeps the data
in a db.json flat file, "postgres" uses PostgreSQL with migrations
applied on startup.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.MockAddr(),
		"store", cfg.MockStore,
	)

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.MockAddr(),
		Handler:      mockapi.NewServer(store),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.MockAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

func buildStore(cfg *config.Config) (mockapi.Store, error) {
	switch cfg.MockStore {
	case "postgres":
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		// Seed development data (no-op if data already exists).
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				return nil, fmt.Errorf("seed database: %w", err)
			}
		}
		return mockapi.NewPGStore(db), nil
	default:
		store, err := mockapi.NewMemoryStore(cfg.MockFile)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.MockFile, err)
		}
		return store, nil
	}
}
