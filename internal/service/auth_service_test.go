package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pantryplan/backend-go/internal/domain"
)

func TestAuthRegisterLoginRoundTrip(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, "test-secret", time.Hour)

	user, token, err := svc.Register(context.Background(), " Alice@Example.COM ", "hunter22", "Alice")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}

	parsed, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if parsed != user.ID {
		t.Fatalf("token carries wrong subject: %s", parsed)
	}

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	// Unknown emails are indistinguishable from bad passwords.
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if _, _, err := svc.Register(context.Background(), "alice@example.com", "another", "Alice"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthParseTokenRejectsForgeries(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, "test-secret", time.Hour)
	other := NewAuthService(&fakeUserRepo{}, "other-secret", time.Hour)

	_, token, err := other.Register(context.Background(), "mallory@example.com", "pw", "Mallory")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.ParseToken(token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected rejection of foreign-signed token, got %v", err)
	}
	if _, err := svc.ParseToken("not-a-token"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected rejection of malformed token, got %v", err)
	}
}

func TestAuthParseTokenRejectsExpired(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, "test-secret", time.Hour)
	svc.now = fixedNow(time.Now().Add(-2 * time.Hour))

	_, token, err := svc.Register(context.Background(), "late@example.com", "pw", "Late")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.ParseToken(token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected rejection of expired token, got %v", err)
	}
}
