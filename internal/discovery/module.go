// Package discovery provides the product-discovery bounded context module.
package discovery

import (
	"merchant_agent_backend/internal/ai/gemini"
	"merchant_agent_backend/internal/catalog/bestbuy"
	"merchant_agent_backend/internal/catalog/category"
	"merchant_agent_backend/internal/config"
	"merchant_agent_backend/internal/discovery/assemble"
	"merchant_agent_backend/internal/discovery/filter"
	"merchant_agent_backend/internal/discovery/handler"
	"merchant_agent_backend/internal/discovery/repository"
	"merchant_agent_backend/internal/discovery/service"
	"merchant_agent_backend/internal/events"
	apphttp "merchant_agent_backend/internal/http"
	"merchant_agent_backend/internal/risk"
	"merchant_agent_backend/platform/logger"
	"merchant_agent_backend/platform/validator"
)

// Module is the discovery bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	store   repository.Store
}

// NewModule creates and initializes the discovery module. gen may be nil when
// no LLM capability is configured; every LLM-backed stage then uses its local
// fallback.
func NewModule(cfg *config.Config, gen gemini.Generator, store repository.Store, bus events.Bus, riskSvc *risk.Service, val *validator.Validator, log *logger.Logger) *Module {
	newCatalog := func() service.CatalogClient {
		return bestbuy.NewClient(bestbuy.Config{
			APIKey:   cfg.BestBuyAPIKey,
			MinPrice: cfg.CatalogMinPrice,
			Timeout:  cfg.CatalogTimeout,
			RPS:      cfg.CatalogRPS,
			Burst:    cfg.CatalogBurst,
		}, log)
	}

	svc := service.New(
		newCatalog,
		category.New(gen, log),
		filter.New(gen, log),
		assemble.New(store, bus, cfg.CartExpiry),
		service.NewPlaceholderGenerator(gen),
		store,
		bus,
		log,
		service.Config{
			ResultCount:  cfg.ResultCount,
			Oversample:   cfg.Oversample,
			MerchantName: cfg.MerchantName,
		},
	)
	h := handler.New(svc, store, riskSvc, val, cfg.IntentExpiry)

	return &Module{
		handler: h,
		service: svc,
		store:   store,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "discovery"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Store returns the mandate store for direct access if needed.
func (m *Module) Store() repository.Store {
	return m.store
}

// RegisterRoutes mounts discovery routes on the provided router context.
// All routes require a trusted shopping agent.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Agent.Group("/discovery")
	group.POST("/sessions", m.handler.StartDiscovery)
	group.GET("/sessions/:id/risk", m.handler.GetRiskData)
	group.GET("/mandates/:id", m.handler.GetMandate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
