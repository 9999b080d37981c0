// Package httpkit provides HTTP middleware infrastructure.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"merchant_agent_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// ContextAgentIDKey is the gin context key for the validated shopping agent ID.
	ContextAgentIDKey = "agentID"

	// AgentIDHeader carries the caller's shopping agent identifier.
	AgentIDHeader = "X-Shopping-Agent-ID"
)

// RequestLogger logs HTTP requests with timing.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()

		log.HTTPRequest(c.Request.Method, path, status, float64(latency.Milliseconds()), clientIP)
	}
}

// SecurityHeaders adds security headers to responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")

		// Only add HSTS when serving TLS
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// TrustedAgent rejects requests whose shopping agent identifier is not on the
// merchant's allowlist. The merchant only constructs carts for agents it has
// an existing trust relationship with.
func TrustedAgent(allowed []string, log *logger.Logger) gin.HandlerFunc {
	allowset := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		id = strings.TrimSpace(id)
		if id != "" {
			allowset[id] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		agentID := strings.TrimSpace(c.GetHeader(AgentIDHeader))
		if agentID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing shopping agent id",
			})
			return
		}
		if _, ok := allowset[agentID]; !ok {
			if log != nil {
				log.Warn("untrusted_agent", "agent_id", agentID, "path", c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unknown shopping agent",
			})
			return
		}

		c.Set(ContextAgentIDKey, agentID)
		c.Next()
	}
}

// GetAgentID returns the validated shopping agent ID from the gin context.
func GetAgentID(c *gin.Context) string {
	if v, ok := c.Get(ContextAgentIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IPRateLimiter manages per-IP rate limiters.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	log      *logger.Logger
}

// NewIPRateLimiter creates a new IP-based rate limiter.
func NewIPRateLimiter(r rate.Limit, burst int, log *logger.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  r,
		burst: burst,
		log:   log,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	limiter, exists := i.limiters.Load(ip)
	if !exists {
		newLimiter := rate.NewLimiter(i.rate, i.burst)
		i.limiters.Store(ip, newLimiter)
		return newLimiter
	}
	return limiter.(*rate.Limiter)
}

// RateLimit returns a middleware that rate limits by IP.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := i.getLimiter(ip)

		if !limiter.Allow() {
			if i.log != nil {
				i.log.RateLimitExceeded(ip, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
