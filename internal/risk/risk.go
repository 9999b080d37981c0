// Package risk mints the opaque risk-signal token attached to every discovery
// session. The token is produced independently of any item data and is
// required before discovery may run; downstream consumers treat it as an
// opaque string.
package risk

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service mints session risk tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a risk service. When no signing secret is configured (demo
// mode), an ephemeral process-local secret is generated; tokens then verify
// only within this process lifetime.
func New(secret string, ttl time.Duration) *Service {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{secret: key, ttl: ttl, now: time.Now}
}

// Mint returns a signed risk token scoped to the session.
func (s *Service) Mint(sessionID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
		"jti": randomID(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign risk token: %w", err)
	}
	return token, nil
}

// Verify checks a risk token's signature and expiry and returns its session.
func (s *Service) Verify(token string) (sessionID string, err error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid risk token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid risk token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("risk token missing session")
	}
	return sub, nil
}

func randomID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
