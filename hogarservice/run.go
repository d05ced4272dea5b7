// Package hogarservice wires the hogar backend together and runs the HTTP
// server.
package hogarservice

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hogar-app/hogar/internal/api"
	"github.com/hogar-app/hogar/internal/config"
	"github.com/hogar-app/hogar/internal/contextcache"
	"github.com/hogar-app/hogar/internal/factory"
	"github.com/hogar-app/hogar/internal/health"
	"github.com/hogar-app/hogar/internal/llm"
	"github.com/hogar-app/hogar/internal/logger"
)

// Run starts the hogar HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("hogar-api")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("llm_url", cfg.LLMURL).
		Str("llm_model", cfg.LLMModel).
		Msg("Hogar service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, db, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}
	defer func() { _ = db.Close() }()

	llmClient := llm.NewOllama(cfg.LLMURL, cfg.LLMModel, time.Duration(cfg.LLMTimeoutSeconds)*time.Second)
	cache := contextcache.New(time.Duration(cfg.ContextCacheTTLMinutes) * time.Minute)

	router := api.NewRouter(st, llmClient, cache, log)

	startHealthCheckers(ctx, cfg, log, db, llmClient)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      75 * time.Second, // completion calls can be slow
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// startHealthCheckers starts component checkers and binds service health.
// The store gates service health; the completion endpoint is optional and is
// probed for logging only.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, db *sql.DB, llmClient *llm.OllamaClient) {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := health.NewPingChecker("store", factory.NewStorePinger(db), log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	llmChecker := health.NewPingChecker("llm", llmClient, log, probeTimeout)
	go llmChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
}
