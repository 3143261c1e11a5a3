package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"kycdesk/internal/gateway"
	"kycdesk/internal/media"
	operatorhandler "kycdesk/internal/operator/handler"
	operatorservice "kycdesk/internal/operator/service"
	operatorstore "kycdesk/internal/operator/store"
	"kycdesk/internal/operator/token"
	"kycdesk/internal/platform/config"
	"kycdesk/internal/platform/health"
	"kycdesk/internal/platform/httpserver"
	"kycdesk/internal/platform/logger"
	reviewhandler "kycdesk/internal/review/handler"
	"kycdesk/internal/review/legacy"
	reviewmetrics "kycdesk/internal/review/metrics"
	reviewservice "kycdesk/internal/review/service"
	suspensionhandler "kycdesk/internal/suspension/handler"
	suspensionmetrics "kycdesk/internal/suspension/metrics"
	suspensionservice "kycdesk/internal/suspension/service"
	suspensionstore "kycdesk/internal/suspension/store"
	httptransport "kycdesk/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing kycdesk",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"gateway_base_url", cfg.GatewayBaseURL,
	)

	// Operator sessions. Redis keeps logout working across restarts and
	// multiple console instances; memory is the single-instance default.
	var sessions operatorstore.SessionStore
	healthHandler := health.New(cfg.Environment)
	if cfg.RedisAddr != "" {
		redisClient, err := operatorstore.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Error("redis connection failed", "error", err, "addr", cfg.RedisAddr)
			os.Exit(1)
		}
		sessions = operatorstore.NewRedisStore(redisClient)
		healthHandler.RegisterCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		})
	} else {
		sessions = operatorstore.NewMemoryStore()
	}

	tokens := token.NewService(cfg.JWTSigningKey, cfg.TokenTTL)
	operatorSvc, err := operatorservice.New(
		cfg.OperatorUsername, cfg.OperatorPassword, cfg.GatewayToken,
		tokens, sessions,
		operatorservice.WithLogger(log),
	)
	if err != nil {
		log.Error("operator service init failed", "error", err)
		os.Exit(1)
	}

	// Backends. A configured gateway URL selects the networked deployment;
	// otherwise the console runs on the legacy in-memory data.
	var reviewBackend reviewservice.Backend
	var suspensionBackend suspensionservice.Backend
	if cfg.GatewayBaseURL != "" {
		tokenSource := gateway.NewSessionTokenSource(sessions, cfg.GatewayToken)
		gatewayClient := gateway.New(cfg.GatewayBaseURL, tokenSource, cfg.GatewayTimeout)
		reviewBackend = gatewayClient
		suspensionBackend = gatewayClient
		healthHandler.RegisterCheck("gateway", gatewayClient.Healthy)
	} else {
		reviewBackend = legacy.NewRoster(legacy.SeedRecords())
		suspensionBackend = suspensionstore.NewMemoryStore(suspensionstore.SeedUsers()...)
		log.Warn("no gateway configured, running on legacy in-memory data")
	}

	reviewOpts := []reviewservice.Option{
		reviewservice.WithLogger(log),
		reviewservice.WithMetrics(reviewmetrics.New()),
	}
	if cfg.MediaResolverURL != "" {
		reviewOpts = append(reviewOpts,
			reviewservice.WithResolver(media.NewHTTPResolver(cfg.MediaResolverURL, cfg.GatewayTimeout)))
	}
	reviewSvc := reviewservice.New(reviewBackend, reviewOpts...)

	suspensionSvc := suspensionservice.New(suspensionBackend,
		suspensionservice.WithLogger(log),
		suspensionservice.WithMetrics(suspensionmetrics.New()),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Review:        reviewhandler.New(reviewSvc, log),
		Suspension:    suspensionhandler.New(suspensionSvc, log),
		Operator:      operatorhandler.New(operatorSvc, log),
		Authenticator: operatorSvc,
		Health:        healthHandler,
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        log,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
