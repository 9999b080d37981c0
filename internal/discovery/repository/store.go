// Package repository persists cart mandates between interactions with the
// shopping agent. A mandate and its display metadata are stored and retrieved
// as one record so the pair is never observed separately.
package repository

import (
	"context"

	"merchant_agent_backend/internal/discovery/domain"
)

// Record is a cart mandate together with its display metadata.
type Record struct {
	Mandate  domain.CartMandate   `json:"mandate"`
	Metadata domain.OfferMetadata `json:"metadata"`
}

// Store is the mandate store. Entries live until the mandate's expiry;
// superseded offers are dropped by expiry, never edited in place.
type Store interface {
	// PutMandate stores the mandate/metadata pair atomically.
	PutMandate(ctx context.Context, rec Record) error
	// GetMandate returns the pair for a cart id, or apperr.KindNotFound.
	GetMandate(ctx context.Context, cartID string) (Record, error)
	// PutRiskData stores the session's risk data.
	PutRiskData(ctx context.Context, sessionID, riskData string) error
	// GetRiskData returns the session's risk data, or apperr.KindNotFound.
	GetRiskData(ctx context.Context, sessionID string) (string, error)
}
