package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAgentRouter(allowed []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(TrustedAgent(allowed, nil))
	engine.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"agent": GetAgentID(c)})
	})
	return engine
}

func TestTrustedAgentAllowsKnownAgent(t *testing.T) {
	router := newAgentRouter([]string{"trusted_shopping_agent"})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(AgentIDHeader, "trusted_shopping_agent")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestTrustedAgentRejectsUnknownAgent(t *testing.T) {
	router := newAgentRouter([]string{"trusted_shopping_agent"})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(AgentIDHeader, "rogue_agent")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestTrustedAgentRejectsMissingHeader(t *testing.T) {
	router := newAgentRouter([]string{"trusted_shopping_agent"})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestIPRateLimiterBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	limiter := NewIPRateLimiter(1, 2, nil)
	engine.Use(limiter.RateLimit())
	engine.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("burst requests rejected: %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %v", statuses)
	}
}
