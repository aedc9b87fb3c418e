package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Errorf("expected subject user-1, got %s", claims.UserID())
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", claims.Email)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_WrongKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for forged signature, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

// All rejection paths must yield the same error value so a client cannot
// learn why its token was refused.
func TestTokenService_UniformFailure(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)
	expired := NewTokenService("test-secret", -time.Minute)
	other := NewTokenService("other-secret", time.Hour)

	expiredToken, _ := expired.Issue("user-1", "a@example.com")
	forgedToken, _ := other.Issue("user-1", "a@example.com")

	for _, token := range []string{"garbage", expiredToken, forgedToken} {
		if _, err := svc.Verify(token); err != ErrInvalidToken {
			t.Errorf("Verify(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}
