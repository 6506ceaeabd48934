// ABOUTME: Entry point for the lorekeepd backend server
// ABOUTME: Loads config, opens the database, and serves the health endpoint

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/lorekeep/lorekeep/internal/auth"
	"github.com/lorekeep/lorekeep/internal/config"
	"github.com/lorekeep/lorekeep/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  _                _
 | | ___  _ __ ___| | _____  ___ _ __
 | |/ _ \| '__/ _ \ |/ / _ \/ _ \ '_ \
 | | (_) | | |  __/   <  __/  __/ |_) |
 |_|\___/|_|  \___|_|\_\___|\___| .__/
                                |_|
`

const starterConfig = `server:
  http_addr: "127.0.0.1:8080"

database:
  driver: "sqlite"
  dsn: "lorekeep.db"

auth:
  secret: "${LOREKEEP_SECRET}"
  token_ttl: "30m"

logging:
  level: "info"
  format: "text"
`

// getConfigPath returns the path to the lorekeep config file.
// Priority: LOREKEEP_CONFIG env var > XDG_CONFIG_HOME/lorekeep/lorekeep.yaml > ~/.config/lorekeep/lorekeep.yaml
func getConfigPath() string {
	if envPath := os.Getenv("LOREKEEP_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "lorekeep.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "lorekeep", "lorekeep.yaml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: lorekeepd <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve   Start the backend server")
		fmt.Println("  init    Write a starter config file")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required to serve")
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:     %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s (%s)\n", cfg.Database.DSN, cfg.Database.Driver)
	fmt.Println()

	logger.Info("starting lorekeepd",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"db_driver", cfg.Database.Driver,
	)

	db, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := store.InitSchema(ctx, db); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	// One issuer, constructed once; every surface that signs or verifies
	// shares it, so the two can never disagree about the secret in effect.
	issuer := auth.NewTokenIssuer(cfg.Auth.Secret)

	if cfg.Auth.Secret == "" {
		logger.Warn("auth.secret is not configured; using the insecure development fallback")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"ok"}`)
	})
	mux.HandleFunc("POST /v1/login", loginHandler(db, issuer, cfg.Auth.TokenTTL, logger))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info("lorekeepd ready", "http_addr", cfg.Server.HTTPAddr)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Wrote starter config to %s\n", configPath)
	fmt.Println("Set LOREKEEP_SECRET in the environment before serving.")
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
