package transport

import (
	"merchant_agent_backend/internal/discovery/domain"
)

// StartDiscoveryRequest starts a discovery session from a free-text intent.
type StartDiscoveryRequest struct {
	Description           string   `json:"description" validate:"required,min=3,max=500"`
	Merchants             []string `json:"merchants,omitempty" validate:"omitempty,max=20,dive,min=1,max=100"`
	SKUs                  []string `json:"skus,omitempty" validate:"omitempty,max=50,dive,min=1,max=50"`
	RequiresRefundability bool     `json:"requiresRefundability"`
}

// OfferResponse is one emitted cart mandate with its display metadata.
type OfferResponse struct {
	CartMandate domain.CartMandate   `json:"cartMandate"`
	Metadata    domain.OfferMetadata `json:"metadata"`
}

// DiscoveryResponse reports a finished discovery session.
type DiscoveryResponse struct {
	SessionID string          `json:"sessionId"`
	State     string          `json:"state"`
	Offers    []OfferResponse `json:"offers"`
	RiskData  string          `json:"riskData"`
	Degraded  []string        `json:"degraded,omitempty"`
}

// MandateResponse is a stored mandate/metadata pair looked up by cart id.
type MandateResponse struct {
	CartMandate domain.CartMandate   `json:"cartMandate"`
	Metadata    domain.OfferMetadata `json:"metadata"`
}

// RiskDataResponse is a session's risk data.
type RiskDataResponse struct {
	SessionID string `json:"sessionId"`
	RiskData  string `json:"riskData"`
}
