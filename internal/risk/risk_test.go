package risk

import (
	"strings"
	"testing"
	"time"
)

func TestMintVerifyRoundTrip(t *testing.T) {
	svc := New("test-secret", time.Hour)

	token, err := svc.Mint("session-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a JWT-shaped token, got %q", token)
	}

	sessionID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sessionID != "session-1" {
		t.Fatalf("verified session %q", sessionID)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour).Mint("session-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := New("secret-b", time.Hour).Verify(token); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := New("test-secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Mint("session-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestEphemeralSecret(t *testing.T) {
	svc := New("", time.Hour)
	token, err := svc.Mint("session-1")
	if err != nil {
		t.Fatalf("mint with ephemeral secret: %v", err)
	}
	if sessionID, err := svc.Verify(token); err != nil || sessionID != "session-1" {
		t.Fatalf("ephemeral-secret token must verify in-process: %q, %v", sessionID, err)
	}
}

func TestMintedTokensUnique(t *testing.T) {
	svc := New("test-secret", time.Hour)
	a, err := svc.Mint("session-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	b, err := svc.Mint("session-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if a == b {
		t.Fatal("tokens must carry unique ids")
	}
}
