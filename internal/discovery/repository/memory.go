package repository

import (
	"context"
	"sync"
	"time"

	"merchant_agent_backend/platform/apperr"
)

// MemoryStore is the in-process mandate store used in demo mode and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	mandates map[string]memoryEntry
	risk     map[string]string
	now      func() time.Time
}

type memoryEntry struct {
	rec      Record
	expireAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mandates: make(map[string]memoryEntry),
		risk:     make(map[string]string),
		now:      time.Now,
	}
}

// PutMandate stores the pair until the mandate's expiry.
func (s *MemoryStore) PutMandate(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mandates[rec.Mandate.Contents.ID] = memoryEntry{
		rec:      rec,
		expireAt: rec.Mandate.Contents.CartExpiry,
	}
	return nil
}

// GetMandate returns the stored pair, treating expired entries as absent.
func (s *MemoryStore) GetMandate(_ context.Context, cartID string) (Record, error) {
	s.mu.RLock()
	entry, ok := s.mandates[cartID]
	s.mu.RUnlock()

	if !ok || (!entry.expireAt.IsZero() && s.now().After(entry.expireAt)) {
		return Record{}, apperr.NotFound("cart mandate not found")
	}
	return entry.rec, nil
}

// PutRiskData stores the session's risk data.
func (s *MemoryStore) PutRiskData(_ context.Context, sessionID, riskData string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.risk[sessionID] = riskData
	return nil
}

// GetRiskData returns the session's risk data.
func (s *MemoryStore) GetRiskData(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.risk[sessionID]
	if !ok {
		return "", apperr.NotFound("risk data not found")
	}
	return data, nil
}

var _ Store = (*MemoryStore)(nil)
