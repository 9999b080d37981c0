package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"merchant_agent_backend/internal/discovery/domain"
	"merchant_agent_backend/internal/discovery/repository"
	"merchant_agent_backend/internal/discovery/service"
	"merchant_agent_backend/internal/discovery/transport"
	"merchant_agent_backend/internal/risk"
	"merchant_agent_backend/platform/httpkit"
	"merchant_agent_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for discovery.
type Handler struct {
	svc          *service.Service
	store        repository.Store
	risk         *risk.Service
	val          *validator.Validator
	intentExpiry time.Duration
}

// New creates a new discovery handler.
func New(svc *service.Service, store repository.Store, riskSvc *risk.Service, val *validator.Validator, intentExpiry time.Duration) *Handler {
	return &Handler{
		svc:          svc,
		store:        store,
		risk:         riskSvc,
		val:          val,
		intentExpiry: intentExpiry,
	}
}

// StartDiscovery runs the discovery pipeline for a purchase intent.
// POST /api/v1/discovery/sessions
func (h *Handler) StartDiscovery(c *gin.Context) {
	var req transport.StartDiscoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	now := time.Now()
	intent := domain.NewIntentMandate(req.Description, now, h.intentExpiry)
	intent.Merchants = req.Merchants
	intent.SKUs = req.SKUs
	intent.RequiresRefundability = req.RequiresRefundability

	sessionID := uuid.New().String()

	// Risk data is minted before discovery runs; the pipeline refuses to
	// start without it.
	riskData, err := h.risk.Mint(sessionID)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to mint risk data", nil)
		return
	}

	outcome, err := h.svc.Discover(c.Request.Context(), domain.Session{
		ID:        sessionID,
		AgentID:   httpkit.GetAgentID(c),
		Intent:    intent,
		RiskData:  riskData,
		CreatedAt: now,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	offers := make([]transport.OfferResponse, len(outcome.Offers))
	for i, offer := range outcome.Offers {
		offers[i] = transport.OfferResponse{
			CartMandate: offer.Mandate,
			Metadata:    offer.Metadata,
		}
	}

	httpkit.OK(c, transport.DiscoveryResponse{
		SessionID: outcome.SessionID,
		State:     string(outcome.State),
		Offers:    offers,
		RiskData:  outcome.RiskData,
		Degraded:  outcome.Degraded,
	})
}

// GetMandate retrieves a stored cart mandate with its metadata.
// GET /api/v1/discovery/mandates/:id
func (h *Handler) GetMandate(c *gin.Context) {
	rec, err := h.store.GetMandate(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MandateResponse{
		CartMandate: rec.Mandate,
		Metadata:    rec.Metadata,
	})
}

// GetRiskData retrieves a session's risk data.
// GET /api/v1/discovery/sessions/:id/risk
func (h *Handler) GetRiskData(c *gin.Context) {
	sessionID := c.Param("id")
	data, err := h.store.GetRiskData(c.Request.Context(), sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.RiskDataResponse{SessionID: sessionID, RiskData: data})
}
