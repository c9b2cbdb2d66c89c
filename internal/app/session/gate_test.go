package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/invcat-service/internal/pkg/clock"
)

type fakeStore struct {
	mu      sync.Mutex
	tokens  map[string]time.Duration
	revoked []string
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{tokens: make(map[string]time.Duration)}
}

func (s *fakeStore) Save(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tokens[token] = ttl
	return nil
}

func (s *fakeStore) Exists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.tokens[token]
	return ok, nil
}

func (s *fakeStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	s.revoked = append(s.revoked, token)
	return nil
}

func TestGate(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("signed in token with expiry uses remaining lifetime", func(t *testing.T) {
		store := newFakeStore()
		gate := NewGate(store, clock.NewFake(start), time.Hour)
		token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(start.Add(30 * time.Minute))})

		require.NoError(t, gate.SignIn(ctx, token))
		assert.Equal(t, 30*time.Minute, store.tokens[token])

		ok, err := gate.Authenticated(ctx, token)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("opaque token uses default lifetime", func(t *testing.T) {
		store := newFakeStore()
		gate := NewGate(store, clock.NewFake(start), time.Hour)

		require.NoError(t, gate.SignIn(ctx, "opaque"))
		assert.Equal(t, time.Hour, store.tokens["opaque"])
	})

	t.Run("expired token cannot sign in", func(t *testing.T) {
		gate := NewGate(newFakeStore(), clock.NewFake(start), time.Hour)
		token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(start.Add(-time.Minute))})

		assert.ErrorIs(t, gate.SignIn(ctx, token), ErrTokenExpired)
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		gate := NewGate(newFakeStore(), clock.NewFake(start), time.Hour)

		assert.ErrorIs(t, gate.SignIn(ctx, ""), ErrEmptyToken)
		ok, err := gate.Authenticated(ctx, "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown token is not authenticated", func(t *testing.T) {
		gate := NewGate(newFakeStore(), clock.NewFake(start), time.Hour)

		ok, err := gate.Authenticated(ctx, "never-signed-in")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("token expiring after sign in is revoked", func(t *testing.T) {
		store := newFakeStore()
		clk := clock.NewFake(start)
		gate := NewGate(store, clk, time.Hour)
		token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(start.Add(time.Minute))})
		require.NoError(t, gate.SignIn(ctx, token))

		clk.Advance(2 * time.Minute)

		ok, err := gate.Authenticated(ctx, token)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{token}, store.revoked)
	})

	t.Run("sign out forgets token", func(t *testing.T) {
		store := newFakeStore()
		gate := NewGate(store, clock.NewFake(start), time.Hour)
		require.NoError(t, gate.SignIn(ctx, "opaque"))

		require.NoError(t, gate.SignOut(ctx, "opaque"))

		ok, err := gate.Authenticated(ctx, "opaque")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		store := newFakeStore()
		store.err = errors.New("connection refused")
		gate := NewGate(store, clock.NewFake(start), time.Hour)

		_, err := gate.Authenticated(ctx, "opaque")
		assert.Error(t, err)
	})
}
