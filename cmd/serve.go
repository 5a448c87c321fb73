package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventify/config"
	"eventify/internal/handlers"
	"eventify/internal/seed"
	"eventify/internal/services"
	"eventify/internal/store"
	"eventify/monitoring"
	"eventify/security"
	"eventify/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := openMigrated(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	st := store.New(db)

	if cfg.SeedOnStart {
		if _, err := seed.IfEmpty(ctx, st); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// Redis only backs rate limiting and the health check.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = utils.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	} else {
		slog.Warn("REDIS_URL not set, auth rate limiting disabled")
	}

	var monitor *monitoring.Monitor
	if cfg.EnableMetrics {
		monitor = monitoring.NewMonitor()
	}

	provider, err := services.NewPaymentProvider(cfg.Payment)
	if err != nil {
		return err
	}
	notifier := services.NewPubNubNotifier(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey, cfg.PubNubSecretKey)
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	trustedProxies, err := cfg.TrustedProxyNets()
	if err != nil {
		return err
	}

	var limiter *security.RateLimiter
	if redisClient != nil {
		limiter = security.NewRateLimiter(redisClient, cfg.AuthRateLimit, cfg.AuthRateWindow)
	}

	router := handlers.NewRouter(handlers.Dependencies{
		Store:          st,
		Redis:          redisClient,
		Auth:           services.NewAuthService(st, tokens, monitor),
		Catalog:        services.NewCatalogService(st),
		Approvals:      services.NewApprovalService(st, monitor),
		Payments:       services.NewPaymentService(st, provider, cfg.Payment, monitor),
		Registrations:  services.NewRegistrationService(st, notifier, monitor),
		RateLimiter:    limiter,
		Monitor:        monitor,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: trustedProxies,
		StubCheckout:   cfg.Payment.Provider == "stub",
	})

	servers := []*http.Server{{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.EnableMetrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			slog.Info("Listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received, cleaning up...")
	case err = <-errCh:
		slog.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			slog.Error("Shutdown failed", "addr", srv.Addr, "error", serr)
		}
	}
	return err
}
