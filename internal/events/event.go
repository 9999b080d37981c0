// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"merchant_agent_backend/internal/discovery/domain"
	"merchant_agent_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Discovery Domain Events
// =============================================================================
//
// The orchestrator emits, in order: zero or more CartOfferReady events, then
// exactly one RiskDataAttached event, then a single DiscoveryCompleted or
// DiscoveryFailed. A mandate and its metadata travel in one event so the pair
// can never be observed separately.

// CartOfferReady is published for each assembled cart mandate, carrying the
// mandate and its display metadata as one atomic unit.
type CartOfferReady struct {
	BaseEvent
	SessionID string               `json:"sessionId"`
	Sequence  int                  `json:"sequence"`
	Mandate   domain.CartMandate   `json:"mandate"`
	Metadata  domain.OfferMetadata `json:"metadata"`
}

func (e CartOfferReady) EventName() string { return "discovery.cart_offer.ready" }

// RiskDataAttached is published once per session, after all offers and before
// the terminal signal.
type RiskDataAttached struct {
	BaseEvent
	SessionID string `json:"sessionId"`
	RiskData  string `json:"riskData"`
}

func (e RiskDataAttached) EventName() string { return "discovery.risk_data.attached" }

// DiscoveryCompleted is the terminal success signal for a session.
type DiscoveryCompleted struct {
	BaseEvent
	SessionID  string `json:"sessionId"`
	OfferCount int    `json:"offerCount"`
}

func (e DiscoveryCompleted) EventName() string { return "discovery.session.completed" }

// DiscoveryFailed is the terminal failure signal for a session.
type DiscoveryFailed struct {
	BaseEvent
	SessionID string `json:"sessionId"`
	Reason    string `json:"reason"`
}

func (e DiscoveryFailed) EventName() string { return "discovery.session.failed" }
