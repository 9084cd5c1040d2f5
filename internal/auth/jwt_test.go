package auth

import (
	"testing"
	"time"
)

var scorer = Identity{UserID: 42, Username: "scorekeeper", Role: "scorekeeper"}

func TestGenerateAndValidateToken(t *testing.T) {
	mgr := NewJWTManager("test-secret-key-123", 24*time.Hour)
	token, err := mgr.GenerateToken(scorer)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user_id=42, got %d", claims.UserID)
	}
	if claims.Subject != "42" {
		t.Errorf("expected subject=42, got %s", claims.Subject)
	}
	if claims.Identity() != scorer {
		t.Errorf("expected identity %+v, got %+v", scorer, claims.Identity())
	}
}

func TestTokenExpiry(t *testing.T) {
	mgr := NewJWTManager("test-secret-key-123", 24*time.Hour)
	issued := time.Date(2026, 9, 5, 18, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return issued }

	token, err := mgr.GenerateToken(scorer)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if got := claims.ExpiresAt.Time.Sub(issued); got != 24*time.Hour {
		t.Errorf("expected 24h expiry, got %v", got)
	}

	mgr.now = func() time.Time { return issued.Add(25 * time.Hour) }
	if _, err := mgr.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr1 := NewJWTManager("secret-one", time.Hour)
	mgr2 := NewJWTManager("secret-two", time.Hour)

	token, _ := mgr1.GenerateToken(scorer)
	if _, err := mgr2.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	mgr := NewJWTManager("secret", time.Hour)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := mgr.ValidateToken(tok); err != ErrInvalidToken {
			t.Errorf("%q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestDifferentUsersGetDifferentTokens(t *testing.T) {
	mgr := NewJWTManager("secret", time.Hour)
	t1, _ := mgr.GenerateToken(scorer)
	t2, _ := mgr.GenerateToken(Identity{UserID: 1, Username: "admin", Role: "admin"})
	if t1 == t2 {
		t.Error("different users should get different tokens")
	}
}
