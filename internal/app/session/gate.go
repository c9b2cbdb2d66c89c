package session

import (
	"context"
	"errors"
	"time"

	"github.com/light-bringer/invcat-service/internal/pkg/clock"
	"github.com/light-bringer/invcat-service/internal/pkg/logx"
)

var (
	ErrEmptyToken   = errors.New("empty session token")
	ErrTokenExpired = errors.New("session token expired")
)

// Gate answers whether a request belongs to a signed-in session.
type Gate struct {
	store      Store
	clock      clock.Clock
	defaultTTL time.Duration
}

// NewGate creates a Gate. defaultTTL bounds sessions whose token has no expiry.
func NewGate(store Store, clk clock.Clock, defaultTTL time.Duration) *Gate {
	return &Gate{
		store:      store,
		clock:      clk,
		defaultTTL: defaultTTL,
	}
}

// SignIn records a token issued by the auth service until it expires.
func (g *Gate) SignIn(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	ttl := g.defaultTTL
	if exp, ok := tokenExpiry(token); ok {
		ttl = exp.Sub(g.clock.Now())
		if ttl <= 0 {
			return ErrTokenExpired
		}
	}
	return g.store.Save(ctx, token, ttl)
}

// SignOut forgets a token.
func (g *Gate) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	return g.store.Revoke(ctx, token)
}

// Authenticated reports whether token belongs to a live session. Expired
// tokens are revoked on sight.
func (g *Gate) Authenticated(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	if TokenExpired(token, g.clock.Now()) {
		if err := g.store.Revoke(ctx, token); err != nil {
			logx.Warn().Err(err).Msg("failed to revoke expired session")
		}
		return false, nil
	}

	return g.store.Exists(ctx, token)
}
