// ABOUTME: Entry point for the BeyondSkool pricing wizard backend service
// ABOUTME: Provides HTTP API for school program pricing and agreement delivery

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/beyondskool/pricing-wizard/backend/cache"
	"github.com/beyondskool/pricing-wizard/backend/config"
	"github.com/beyondskool/pricing-wizard/backend/handlers"
	"github.com/beyondskool/pricing-wizard/backend/logger"
	"github.com/beyondskool/pricing-wizard/backend/middleware"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// .env is optional; the environment wins when both are set
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting BeyondSkool Pricing Wizard Backend")
	if cfg.MailConfigured() {
		slog.Info("SMTP configured", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	} else {
		slog.Warn("SMTP not configured, agreement delivery disabled")
	}
	if _, err := os.Stat(cfg.LogoPath); err != nil {
		slog.Warn("Letterhead logo not found, agreements render without branding", "path", cfg.LogoPath)
	}

	// Initialize session store
	sessionTTL := time.Duration(cfg.SessionTTL) * time.Second
	store := cache.New(sessionTTL)
	slog.Info("Session store initialized", "ttl", sessionTTL)

	// Initialize handlers
	h := handlers.NewHandler(cfg, store)

	// Register routes with CORS and logging middleware
	cors := middleware.CORSWithConfig(cfg.CORSAllowedOrigins)
	mux := http.NewServeMux()
	for _, rt := range h.Routes() {
		mux.HandleFunc(rt.Method+" "+rt.Path, middleware.Chain(rt.Handler, cors, middleware.LogRequest))
	}

	// Start server
	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
