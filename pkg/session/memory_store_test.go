package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
	"github.com/axolutions/linkbio-dashboard/pkg/session"
	"github.com/axolutions/linkbio-dashboard/pkg/tokenset"
)

func testIdentity() identity.Identity {
	return identity.Identity{
		Subject:     "sub-1",
		Email:       "jane@example.com",
		DisplayName: "Jane",
		ProductGrants: []identity.ProductGrant{{
			Product: identity.Product{ID: "p1", Name: "Campaigns", Slug: "campaigns"},
			Role:    identity.Role{ID: "r1", Name: "admin", Permissions: []string{"read", "write"}},
		}},
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("save and get returns copy", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		defer store.Close()

		exp := time.Now().Add(time.Hour).Unix()
		s := session.NewSession(testIdentity(), tokenset.TokenSet{AccessToken: "a", ExpiresAt: &exp}, time.Hour, time.Now())
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
		assert.Equal(t, "a", got.Tokens.AccessToken)

		got.Tokens.AccessToken = "mutated"
		*got.Tokens.ExpiresAt = 0
		got.Identity.ProductGrants[0].Role.Permissions[0] = "mutated"

		again, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "a", again.Tokens.AccessToken)
		assert.Equal(t, exp, *again.Tokens.ExpiresAt)
		assert.Equal(t, "read", again.Identity.ProductGrants[0].Role.Permissions[0])
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		defer store.Close()

		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired session is not found", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		defer store.Close()

		s := session.NewSession(testIdentity(), tokenset.TokenSet{}, time.Hour, time.Now().Add(-2*time.Hour))
		require.NoError(t, store.Save(ctx, s))

		_, err := store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("invalid session", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		defer store.Close()

		assert.ErrorIs(t, store.Save(ctx, nil), session.ErrInvalidSession)
		assert.ErrorIs(t, store.Save(ctx, &session.Session{}), session.ErrInvalidSession)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		defer store.Close()

		s := session.NewSession(testIdentity(), tokenset.TokenSet{}, time.Hour, time.Now())
		require.NoError(t, store.Save(ctx, s))
		require.NoError(t, store.Delete(ctx, s.ID))

		_, err := store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("update keeps expiry", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		defer store.Close()

		s := session.NewSession(testIdentity(), tokenset.TokenSet{AccessToken: "a"}, time.Hour, time.Now())
		require.NoError(t, store.Save(ctx, s))

		changed := s.Clone()
		changed.Tokens.AccessToken = "b"
		changed.ExpiresAt = time.Now().Add(48 * time.Hour)
		require.NoError(t, store.Update(ctx, changed))

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "b", got.Tokens.AccessToken)
		assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))
	})

	t.Run("update after delete", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		defer store.Close()

		s := session.NewSession(testIdentity(), tokenset.TokenSet{AccessToken: "a"}, time.Hour, time.Now())
		require.NoError(t, store.Save(ctx, s))
		require.NoError(t, store.Delete(ctx, s.ID))

		assert.ErrorIs(t, store.Update(ctx, s), session.ErrSessionNotFound)
		assert.Equal(t, 0, store.Len())
		assert.ErrorIs(t, store.Update(ctx, nil), session.ErrInvalidSession)
	})

	t.Run("cleanup loop evicts expired", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(10 * time.Millisecond)
		defer store.Close()

		s := session.NewSession(testIdentity(), tokenset.TokenSet{}, time.Millisecond, time.Now())
		require.NoError(t, store.Save(ctx, s))

		assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(time.Second)
		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close())
	})
}
