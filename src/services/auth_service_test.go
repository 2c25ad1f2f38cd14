package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/repositories/mock"
)

const testSecret = "test-secret-for-unit-tests-32chars!"

func newTestAuthService(t *testing.T, sessions *mock.SessionRepository) *AuthService {
	t.Helper()
	identity, err := models.NewAdminIdentity([]string{"admin"}, "sup3r-shared-pass")
	if err != nil {
		t.Fatalf("NewAdminIdentity failed: %v", err)
	}
	as, err := NewAuthServiceWithRepo(identity, testSecret, 24*time.Hour, sessions)
	if err != nil {
		t.Fatalf("NewAuthServiceWithRepo failed: %v", err)
	}
	return as
}

func TestNewAuthService_ShortSecret(t *testing.T) {
	identity, _ := models.NewAdminIdentity([]string{"admin"}, "pw")
	if _, err := NewAuthService(identity, "short", time.Hour, nil); err == nil {
		t.Fatal("expected error for short session secret")
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	as := newTestAuthService(t, mock.NewSessionRepository())

	if !as.Authenticate("admin", "sup3r-shared-pass") {
		t.Error("expected valid credentials to authenticate")
	}
	if as.Authenticate("admin", "nope") {
		t.Error("expected wrong password to fail")
	}
	if as.Authenticate("intruder", "sup3r-shared-pass") {
		t.Error("expected unknown username to fail")
	}
}

func TestAuthService_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	as := newTestAuthService(t, mock.NewSessionRepository())

	token, expiresAt, err := as.EstablishSession("admin")
	if err != nil {
		t.Fatalf("EstablishSession failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expected future expiry, got %v", expiresAt)
	}

	username, err := as.Authorize(ctx, token)
	if err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}
	if username != "admin" {
		t.Errorf("expected username admin, got %s", username)
	}
}

func TestAuthService_Authorize(t *testing.T) {
	ctx := context.Background()

	t.Run("missing token fails", func(t *testing.T) {
		as := newTestAuthService(t, mock.NewSessionRepository())
		if _, err := as.Authorize(ctx, ""); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("never-issued token fails", func(t *testing.T) {
		as := newTestAuthService(t, mock.NewSessionRepository())
		if _, err := as.Authorize(ctx, "garbage.token.value"); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("token signed with a different secret fails", func(t *testing.T) {
		other := newTestAuthService(t, mock.NewSessionRepository())
		foreign, _, err := other.EstablishSession("admin")
		if err != nil {
			t.Fatalf("EstablishSession failed: %v", err)
		}

		identity, _ := models.NewAdminIdentity([]string{"admin"}, "sup3r-shared-pass")
		as, err := NewAuthServiceWithRepo(identity, "another-secret-that-is-32-chars!!", 24*time.Hour, mock.NewSessionRepository())
		if err != nil {
			t.Fatalf("NewAuthServiceWithRepo failed: %v", err)
		}

		if _, err := as.Authorize(ctx, foreign); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("revoked token fails", func(t *testing.T) {
		sessions := mock.NewSessionRepository()
		revoked := map[string]bool{}
		sessions.RevokeFunc = func(ctx context.Context, tokenID string, expiresAt time.Time) error {
			revoked[tokenID] = true
			return nil
		}
		sessions.IsRevokedFunc = func(ctx context.Context, tokenID string) (bool, error) {
			return revoked[tokenID], nil
		}

		as := newTestAuthService(t, sessions)
		token, _, err := as.EstablishSession("admin")
		if err != nil {
			t.Fatalf("EstablishSession failed: %v", err)
		}

		if err := as.Revoke(ctx, token); err != nil {
			t.Fatalf("Revoke failed: %v", err)
		}
		if _, err := as.Authorize(ctx, token); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated after revoke, got %v", err)
		}
	})

	t.Run("denylist store failure surfaces as store unavailable", func(t *testing.T) {
		sessions := mock.NewSessionRepository()
		sessions.IsRevokedFunc = func(ctx context.Context, tokenID string) (bool, error) {
			return false, errors.New("connection refused")
		}

		as := newTestAuthService(t, sessions)
		token, _, _ := as.EstablishSession("admin")

		if _, err := as.Authorize(ctx, token); !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestAuthService_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revoke is idempotent", func(t *testing.T) {
		sessions := mock.NewSessionRepository()
		as := newTestAuthService(t, sessions)

		token, _, err := as.EstablishSession("admin")
		if err != nil {
			t.Fatalf("EstablishSession failed: %v", err)
		}

		if err := as.Revoke(ctx, token); err != nil {
			t.Fatalf("first Revoke failed: %v", err)
		}
		if err := as.Revoke(ctx, token); err != nil {
			t.Fatalf("second Revoke failed: %v", err)
		}
		if len(sessions.Calls["Revoke"]) != 2 {
			t.Errorf("expected 2 Revoke calls, got %d", len(sessions.Calls["Revoke"]))
		}
	})

	t.Run("unparsable token is a no-op", func(t *testing.T) {
		sessions := mock.NewSessionRepository()
		as := newTestAuthService(t, sessions)

		if err := as.Revoke(ctx, "not-a-token"); err != nil {
			t.Fatalf("Revoke of garbage token failed: %v", err)
		}
		if len(sessions.Calls["Revoke"]) != 0 {
			t.Errorf("expected no store call for garbage token, got %d", len(sessions.Calls["Revoke"]))
		}
	})
}
