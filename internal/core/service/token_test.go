package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hydrai/telemetry-system/internal/core/domain"
)

func TestTokenManager_IssueAndValidate(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Issue("user-123")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	subject, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if subject != "user-123" {
		t.Fatalf("expected subject user-123, got %q", subject)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	tm := &TokenManager{secret: []byte("secret"), ttl: -time.Minute}

	token, err := tm.Issue("user-123")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := tm.Validate(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue("user-123")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	tm := NewTokenManager("secret-b", time.Hour)
	if _, err := tm.Validate(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for forged token, got %v", err)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Validate(token); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated for %q, got %v", token, err)
		}
	}
}

func TestTokenManager_RejectsUnexpectedAlgorithm(t *testing.T) {
	// A token signed with "none" must never pass, even with a valid shape.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	tm := NewTokenManager("secret", time.Hour)
	if _, err := tm.Validate(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for alg=none token, got %v", err)
	}
}

func TestTokenManager_RejectsEmptySubject(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Issue("")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := tm.Validate(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty subject, got %v", err)
	}
}
