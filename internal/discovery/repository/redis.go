package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"merchant_agent_backend/platform/apperr"
)

const (
	mandateKeyPrefix = "mandate:"
	riskKeyPrefix    = "risk:"
)

// RedisStore keeps mandates in Redis with a TTL equal to the offer's
// remaining life, so expired offers vanish without a sweeper.
type RedisStore struct {
	client *redis.Client
	// riskTTL bounds risk-data retention independently of offer expiry, so
	// late lookups still resolve after the offers are gone.
	riskTTL time.Duration
	now     func() time.Time
}

// NewRedisStore creates a Redis-backed mandate store.
func NewRedisStore(client *redis.Client, riskTTL time.Duration) *RedisStore {
	if riskTTL <= 0 {
		riskTTL = 24 * time.Hour
	}
	return &RedisStore{client: client, riskTTL: riskTTL, now: time.Now}
}

// PutMandate stores the pair as one value under the cart id, expiring with
// the mandate.
func (s *RedisStore) PutMandate(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal mandate record: %w", err)
	}

	ttl := rec.Mandate.Contents.CartExpiry.Sub(s.now())
	if ttl <= 0 {
		return apperr.Validation("cart mandate is already expired")
	}

	if err := s.client.Set(ctx, mandateKeyPrefix+rec.Mandate.Contents.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store mandate: %w", err)
	}
	return nil
}

// GetMandate returns the stored pair for a cart id.
func (s *RedisStore) GetMandate(ctx context.Context, cartID string) (Record, error) {
	payload, err := s.client.Get(ctx, mandateKeyPrefix+cartID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, apperr.NotFound("cart mandate not found")
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load mandate: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal mandate record: %w", err)
	}
	return rec, nil
}

// PutRiskData stores the session's risk data.
func (s *RedisStore) PutRiskData(ctx context.Context, sessionID, riskData string) error {
	if err := s.client.Set(ctx, riskKeyPrefix+sessionID, riskData, s.riskTTL).Err(); err != nil {
		return fmt.Errorf("failed to store risk data: %w", err)
	}
	return nil
}

// GetRiskData returns the session's risk data.
func (s *RedisStore) GetRiskData(ctx context.Context, sessionID string) (string, error) {
	data, err := s.client.Get(ctx, riskKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.NotFound("risk data not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to load risk data: %w", err)
	}
	return data, nil
}

var _ Store = (*RedisStore)(nil)
