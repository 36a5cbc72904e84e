package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/samandjonah/wedding-api/internal/config"
	"github.com/samandjonah/wedding-api/internal/database"
	"github.com/samandjonah/wedding-api/internal/email"
	"github.com/samandjonah/wedding-api/internal/logging"
	"github.com/samandjonah/wedding-api/internal/server"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "registry"), 0o755); err != nil {
		slog.Error("failed to create upload directory", "error", err)
		os.Exit(1)
	}

	emailClient := email.NewClient(cfg.ResendAPIKey, cfg.FromEmail)
	if !emailClient.Configured() {
		slog.Warn("RESEND_API_KEY not set, campaign sending is disabled")
	}

	srv := server.New(db, emailClient, server.Config{
		BaseURL:      cfg.BaseURL,
		FrontendURL:  cfg.FrontendURL,
		VenueMapURL:  cfg.VenueMapURL,
		HotelInfoURL: cfg.HotelInfoURL,
		UploadDir:    cfg.UploadDir,
	}, logger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Background cleanup goroutine
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	go func() {
		slog.Info("wedding api starting", "addr", ":"+cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cleanupCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
