package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gdg-garage/conference-registration-api/internal/auth"
	"github.com/gdg-garage/conference-registration-api/internal/cache"
	"github.com/gdg-garage/conference-registration-api/internal/config"
	"github.com/gdg-garage/conference-registration-api/internal/credential"
	"github.com/gdg-garage/conference-registration-api/internal/database"
	"github.com/gdg-garage/conference-registration-api/internal/directory"
	"github.com/gdg-garage/conference-registration-api/internal/handlers"
	"github.com/gdg-garage/conference-registration-api/internal/metrics"
	"github.com/gdg-garage/conference-registration-api/internal/models"
	"github.com/gdg-garage/conference-registration-api/internal/notifier"
	"github.com/gdg-garage/conference-registration-api/internal/registration"
	"github.com/gdg-garage/conference-registration-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	router, cleanup, err := newRouter(ctx, cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newRouter wires storage, notification channels and services into the HTTP
// router. The returned cleanup releases connections.
func newRouter(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*chi.Mux, func(), error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	closers := []func(){func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	st := store.New(db)
	m := metrics.New(reg)

	mailer := notifier.Disabled()
	if cfg.SMTPEnabled() {
		client, err := notifier.NewSMTPClient(cfg)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("configuring smtp: %w", err)
		}
		mailer = notifier.NewEmailNotifier(client, cfg.MailSenderName, cfg.MailFrom, logger)
	} else {
		logger.Warn("SMTP_HOST not set, confirmation emails are disabled")
	}

	opts := []registration.Option{
		registration.WithLogger(logger),
		registration.WithMetrics(m),
		registration.WithPhoneCheck(cfg.EnforcePhoneFormat),
	}
	if session, err := notifier.NewDiscordSession(cfg.DiscordBotToken); err == nil && cfg.DiscordNotificationsChannelID != "" {
		opts = append(opts, registration.WithOrganizerNotifier(
			notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID, logger)))
	} else if err != nil && !errors.Is(err, notifier.ErrDisabled) {
		logger.Warn("Discord notifier not initialized", "error", err)
	}

	var conferences cache.Cache[[]models.Conference]
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		conferences = cache.NewRedis[[]models.Conference](rdb, "conference-registration:", cfg.CacheTTL, logger)
	} else {
		conferences = cache.NewInMemory[[]models.Conference](cfg.CacheTTL, 2*cfg.CacheTTL, logger)
	}

	regService := registration.NewService(st, credential.NewGenerator(), mailer, opts...)
	dir := directory.NewService(st, conferences, cfg.CacheTTL, m, logger)
	authHandler := auth.NewAuthHandler(cfg, logger)
	if !authHandler.Enabled() {
		logger.Warn("ADMIN_PASSWORD not set, admin routes are unauthenticated")
	}

	exposeDetail := !cfg.IsProduction()
	handlers.UseErrorEnvelope(exposeDetail)

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:         authHandler,
		Registration: handlers.NewRegistrationHandler(regService, exposeDetail),
		Conference:   handlers.NewConferenceHandler(dir, exposeDetail),
		Admin:        handlers.NewAdminHandler(dir, authHandler, exposeDetail),
		Health:       handlers.NewHealthHandler(st),
		Metrics:      metricsHandler(reg),
	}, handlers.RouterOptions{
		EnableCORS:     cfg.EnableCORS,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	return r, cleanup, nil
}

func metricsHandler(reg prometheus.Registerer) http.Handler {
	if g, ok := reg.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}
