// Package router assembles the gin engine from the application's modules.
package router

import (
	"net/http"

	apphttp "merchant_agent_backend/internal/http"
	"merchant_agent_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New builds the gin engine: platform middleware, health endpoint, and the
// /api/v1 route groups each module registers itself on.
func New(app *apphttp.App) *gin.Engine {
	cfg := app.Config
	log := app.Logger

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	if cfg.CORSAllowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, httpkit.AgentIDHeader)
	engine.Use(cors.New(corsConfig))

	limiter := httpkit.NewIPRateLimiter(10, 20, log)
	engine.Use(limiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	agent := v1.Group("")
	agent.Use(httpkit.TrustedAgent(cfg.TrustedAgents, log))

	ctx := &apphttp.RouterContext{
		Engine: engine,
		V1:     v1,
		Agent:  agent,
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		log.Info("module routes registered", "module", module.Name())
	}

	return engine
}
