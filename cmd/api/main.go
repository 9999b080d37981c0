package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"merchant_agent_backend/internal/ai/gemini"
	"merchant_agent_backend/internal/config"
	"merchant_agent_backend/internal/discovery"
	"merchant_agent_backend/internal/discovery/repository"
	"merchant_agent_backend/internal/events"
	apphttp "merchant_agent_backend/internal/http"
	"merchant_agent_backend/internal/http/router"
	"merchant_agent_backend/internal/risk"
	"merchant_agent_backend/platform/logger"
	"merchant_agent_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr,
		"demo_mode", cfg.DemoMode(), "llm_enabled", cfg.LLMEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules; also the ordered
	// sink downstream consumers subscribe to for cart offers and risk data.
	eventBus := events.NewInMemoryBus(log)

	store, closeStore, err := initStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize mandate store", "error", err)
		panic("failed to initialize mandate store: " + err.Error())
	}
	if closeStore != nil {
		defer closeStore()
	}

	// The Gemini client is optional: without it, category detection and
	// relevance ranking fall back locally and placeholder offers are
	// unavailable.
	var gen gemini.Generator
	if cfg.LLMEnabled() {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.GeminiTimeout,
		})
		if err != nil {
			log.Error("failed to initialize gemini client", "error", err)
			panic("failed to initialize gemini client: " + err.Error())
		}
		gen = client
		log.Info("gemini client initialized", "model", cfg.GeminiModel)
	}

	riskSvc := risk.New(cfg.RiskSigningSecret, cfg.IntentExpiry)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	discoveryModule := discovery.NewModule(cfg, gen, store, eventBus, riskSvc, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			discoveryModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		done := make(chan struct{})
		go func() {
			eventBus.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			log.Warn("timed out waiting for in-flight events")
		}
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initStore selects the mandate store: redis when configured, otherwise the
// in-process store suitable for demo mode.
func initStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Store, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("mandate store initialized", "backend", "memory")
		return repository.NewMemoryStore(), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	log.Info("mandate store initialized", "backend", "redis", "addr", cfg.RedisAddr)
	return repository.NewRedisStore(client, cfg.IntentExpiry), func() { _ = client.Close() }, nil
}
