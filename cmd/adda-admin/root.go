package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/brokeradda/adda-admin/internal/config"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/session"
	"github.com/brokeradda/adda-admin/pkg/adda"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adda-admin",
	Short: "Broker Adda admin dashboard",
	Long:  `Admin dashboard server and tools for the Broker Adda real-estate platform.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(importCmd)
}

// setup loads configuration and installs the configured logger as default.
func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Backend: cfg.Log.Backend,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.SetDefault(log)
	return cfg, log, nil
}

// newSession creates the admin session, persisted to the token file when one
// is configured.
func newSession(cfg *config.Config) *session.Session {
	opts := []session.Option{session.WithCookie(cfg.Session.CookieName, cfg.Session.CookieMaxAge)}
	if cfg.Session.TokenFile != "" {
		opts = append(opts, session.WithStore(session.NewFileStore(cfg.Session.TokenFile)))
	}
	return session.New(opts...)
}

func newClient(cfg *config.Config, sess *session.Session, opts ...adda.Option) *adda.Client {
	opts = append([]adda.Option{adda.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout})}, opts...)
	return adda.NewClient(cfg.API.BaseURL, sess, opts...)
}
