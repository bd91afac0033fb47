package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
)

func grant(slug, role string, perms ...string) identity.ProductGrant {
	return identity.ProductGrant{
		Product: identity.Product{ID: slug + "-id", Name: slug, Slug: slug},
		Role:    identity.Role{ID: role + "-id", Name: role, Permissions: perms},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty subject", func(t *testing.T) {
		t.Parallel()
		_, err := identity.New("", "a@b.c", "A", "", false, nil)
		assert.ErrorIs(t, err, identity.ErrEmptySubject)
	})

	t.Run("dedupes grants by slug keeping the first", func(t *testing.T) {
		t.Parallel()

		id, err := identity.New("sub-1", "a@b.c", "A", "", true, []identity.ProductGrant{
			grant("campaigns", "admin", "read"),
			grant("linkbio", "editor", "write"),
			grant("campaigns", "viewer", "read"),
		})
		require.NoError(t, err)
		require.Len(t, id.ProductGrants, 2)

		g, ok := id.Grant("campaigns")
		require.True(t, ok)
		assert.Equal(t, "admin", g.Role.Name)
	})

	t.Run("nil grants become empty slice", func(t *testing.T) {
		t.Parallel()
		id, err := identity.New("sub-1", "", "", "", false, nil)
		require.NoError(t, err)
		assert.NotNil(t, id.ProductGrants)
		assert.Empty(t, id.ProductGrants)
	})
}

func TestIdentity_Grant(t *testing.T) {
	t.Parallel()

	var nilID *identity.Identity
	_, ok := nilID.Grant("campaigns")
	assert.False(t, ok)

	id := &identity.Identity{Subject: "s", ProductGrants: []identity.ProductGrant{grant("campaigns", "admin")}}
	_, ok = id.Grant("other")
	assert.False(t, ok)
}

func TestIdentity_Enrich(t *testing.T) {
	t.Parallel()

	base := identity.Identity{
		Subject:       "sub-1",
		Email:         "sso@example.com",
		DisplayName:   "SSO Name",
		EmailVerified: false,
		ProductGrants: []identity.ProductGrant{grant("campaigns", "admin", "read")},
	}
	verified := true
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	enriched := base.Enrich(identity.Enrichment{
		DisplayName:   "App Name",
		EmailVerified: &verified,
		Profile: identity.Profile{
			Status:       "active",
			PasswordHash: "hash",
			CreatedAt:    &created,
		},
	})

	t.Run("overrides only provided fields", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "sso@example.com", enriched.Email)
		assert.Equal(t, "App Name", enriched.DisplayName)
		assert.True(t, enriched.EmailVerified)
		require.NotNil(t, enriched.Profile)
		assert.Equal(t, "active", enriched.Profile.Status)
		assert.Equal(t, &created, enriched.Profile.CreatedAt)
	})

	t.Run("keeps product grants", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, base.ProductGrants, enriched.ProductGrants)
	})

	t.Run("does not mutate the source", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "SSO Name", base.DisplayName)
		assert.Nil(t, base.Profile)
	})
}

func TestIdentity_Clone(t *testing.T) {
	t.Parallel()

	src := identity.Identity{Subject: "s", ProductGrants: []identity.ProductGrant{grant("p", "r", "read")}}
	dst := src.Clone()
	dst.ProductGrants[0].Role.Permissions[0] = "write"

	assert.Equal(t, "read", src.ProductGrants[0].Role.Permissions[0])
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Nil(t, identity.FromContext(context.Background()))

	id := &identity.Identity{Subject: "s"}
	ctx := identity.WithContext(context.Background(), id)
	assert.Same(t, id, identity.FromContext(ctx))
}
