package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tokenIssuer = "chat-admin"

// SessionClaims represents JWT claims for an admin session
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService is the identity gate: it validates admin credentials, issues
// session tokens, and checks them on every protected request. Tokens are
// HS256 JWTs; logout persists the token id to a denylist so revocation
// survives until the token would have expired anyway.
type AuthService struct {
	identity   *models.AdminIdentity
	secret     []byte
	sessionTTL time.Duration
	pool       *pgxpool.Pool
	repo       repositories.SessionRepository
}

// NewAuthService creates a new auth service
func NewAuthService(identity *models.AdminIdentity, secret string, sessionTTL time.Duration, pool *pgxpool.Pool) (*AuthService, error) {
	if identity == nil {
		return nil, fmt.Errorf("admin identity is required")
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters long")
	}
	return &AuthService{
		identity:   identity,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		pool:       pool,
	}, nil
}

// NewAuthServiceWithRepo creates a new auth service with a session repository (for testing)
func NewAuthServiceWithRepo(identity *models.AdminIdentity, secret string, sessionTTL time.Duration, repo repositories.SessionRepository) (*AuthService, error) {
	as, err := NewAuthService(identity, secret, sessionTTL, nil)
	if err != nil {
		return nil, err
	}
	as.repo = repo
	return as, nil
}

// Authenticate reports whether the credentials identify a configured admin
func (as *AuthService) Authenticate(username, password string) bool {
	return as.identity.Verify(username, password)
}

// EstablishSession issues a signed session token for the given admin
func (as *AuthService) EstablishSession(username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(as.sessionTTL)

	claims := SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// Authorize validates a presented session token and returns the admin
// username it is bound to. Missing, malformed, expired, foreign-signed,
// and revoked tokens all fail with ErrUnauthenticated.
func (as *AuthService) Authorize(ctx context.Context, token string) (string, error) {
	claims, err := as.parseToken(token)
	if err != nil {
		return "", ErrUnauthenticated
	}

	revoked, err := as.isRevoked(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("%w: check session revocation: %v", ErrStoreUnavailable, err)
	}
	if revoked {
		return "", ErrUnauthenticated
	}

	return claims.Username, nil
}

// Revoke invalidates a session token. Unknown or already-revoked tokens
// are a no-op, so the operation is idempotent.
func (as *AuthService) Revoke(ctx context.Context, token string) error {
	claims, err := as.parseToken(token)
	if err != nil {
		// Nothing to deny: an unparsable token is already unusable.
		return nil
	}

	expiresAt := time.Now().Add(as.sessionTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if as.repo != nil {
		if err := as.repo.Revoke(ctx, claims.ID, expiresAt); err != nil {
			return fmt.Errorf("%w: revoke session: %v", ErrStoreUnavailable, err)
		}
		return nil
	}

	_, err = as.pool.Exec(ctx,
		`INSERT INTO revoked_sessions (token_id, expires_at) VALUES ($1, $2)
		 ON CONFLICT (token_id) DO NOTHING`,
		claims.ID, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("%w: revoke session: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (as *AuthService) parseToken(token string) (*SessionClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return as.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

func (as *AuthService) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	// Use repository if available (for testing)
	if as.repo != nil {
		return as.repo.IsRevoked(ctx, tokenID)
	}

	var revoked bool
	err := as.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE token_id = $1)`,
		tokenID,
	).Scan(&revoked)
	if err != nil {
		return false, err
	}
	return revoked, nil
}
