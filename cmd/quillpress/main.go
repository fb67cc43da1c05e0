// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the QuillPress command line client. It talks to the
// resource API (the bundled mock server or any compatible endpoint),
// keeps a local session, and manages posts, categories and accounts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quillpress/internal/api"
	"quillpress/internal/auth"
	"quillpress/internal/config"
	"quillpress/internal/media"
	"quillpress/internal/session"
	"quillpress/internal/store"
)

var (
	// Global flags.
	verbose bool
	apiURL  string
)

var rootCmd = &cobra.Command{
	Use:   "quillpress",
	Short: "QuillPress - blog content manager",
	Long: `QuillPress manages a blog backed by a REST resource API.

Start the bundled API with "quillpress serve", then manage content:

  quillpress posts list
  quillpress categories add "Tech News"
  quillpress login --email admin@example.com`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)
	},
}

// app bundles everything a subcommand needs. Construction is cheap; each
// invocation builds a fresh one from the environment.
type app struct {
	cfg        *config.Config
	client     *api.Client
	posts      *store.PostStore
	categories *store.CategoryStore
	sessions   *session.Store
	auth       *auth.Authenticator
	uploader   *media.Uploader
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	base := cfg.APIBaseURL
	if apiURL != "" {
		base = apiURL
	}
	client := api.New(base)

	backend, err := sessionBackend(cfg)
	if err != nil {
		return nil, err
	}
	sessions := session.NewStore(ctx, backend)

	posts := store.NewPostStore(client)
	categories := store.NewCategoryStore(client,
		store.WithPostStore(posts),
		store.WithDeletePolicy(cfg.CategoryDeletePolicy),
	)

	var uploader *media.Uploader
	if cfg.ImageHostKey != "" {
		uploader = media.NewUploader(cfg.ImageHostURL, cfg.ImageHostKey)
	}

	return &app{
		cfg:        cfg,
		client:     client,
		posts:      posts,
		categories: categories,
		sessions:   sessions,
		auth:       auth.New(client, sessions),
		uploader:   uploader,
	}, nil
}

func sessionBackend(cfg *config.Config) (session.Backend, error) {
	switch cfg.SessionBackend {
	case "valkey":
		client, err := session.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			return nil, fmt.Errorf("connect valkey: %w", err)
		}
		return session.NewValkeyBackend(client), nil
	default:
		return session.NewFileBackend(cfg.SessionFile), nil
	}
}

// settleAfter is the minimum time a mutating command takes to report
// back. Instant responses from a local server read as "nothing
// happened"; a short floor makes the confirmation legible.
const settleAfter = 300 * time.Millisecond

// settle pads the elapsed time since start up to settleAfter.
func settle(start time.Time) {
	if d := settleAfter - time.Since(start); d > 0 {
		time.Sleep(d)
	}
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "resource API base URL (overrides API_BASE_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(passwdCmd)
	rootCmd.AddCommand(whoamiCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
