package sso_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
	"github.com/axolutions/linkbio-dashboard/pkg/sso"
)

func TestMapProfile(t *testing.T) {
	t.Parallel()

	t.Run("synthesizes missing email and name from subject", func(t *testing.T) {
		t.Parallel()

		id, err := sso.MapProfile(sso.Profile{Subject: "abc12345"}, "axolutions.com")
		require.NoError(t, err)
		assert.Equal(t, "user-abc12345@axolutions.com", id.Email)
		assert.Equal(t, "User abc12345", id.DisplayName)
		assert.False(t, id.EmailVerified)
		assert.Empty(t, id.ProductGrants)

		again, err := sso.MapProfile(sso.Profile{Subject: "abc12345"}, "axolutions.com")
		require.NoError(t, err)
		assert.Equal(t, id, again)
	})

	t.Run("long subject is truncated in display name", func(t *testing.T) {
		t.Parallel()

		id, err := sso.MapProfile(sso.Profile{Subject: "0123456789abcdef"}, "example.org")
		require.NoError(t, err)
		assert.Equal(t, "User 01234567", id.DisplayName)
		assert.True(t, strings.HasSuffix(id.Email, "@example.org"))
	})

	t.Run("normalizes provided fields", func(t *testing.T) {
		t.Parallel()

		id, err := sso.MapProfile(sso.Profile{
			Subject:       "s1",
			Email:         "Jane.Doe@Example.COM",
			Name:          "José",
			Picture:       "https://cdn.example.com/a.png",
			EmailVerified: true,
		}, "axolutions.com")
		require.NoError(t, err)
		assert.Equal(t, "jane.doe@example.com", id.Email)
		assert.Equal(t, "José", id.DisplayName)
		assert.Equal(t, "https://cdn.example.com/a.png", id.AvatarURL)
		assert.True(t, id.EmailVerified)
	})

	t.Run("wraps roles claim into single grant", func(t *testing.T) {
		t.Parallel()

		grant := identity.ProductGrant{
			Product: identity.Product{ID: "p1", Name: "Campaigns", Slug: "campaigns"},
			Role:    identity.Role{ID: "r1", Name: "admin", Permissions: []string{"read", "write"}},
		}
		id, err := sso.MapProfile(sso.Profile{Subject: "s1", Roles: &grant}, "axolutions.com")
		require.NoError(t, err)
		require.Len(t, id.ProductGrants, 1)
		assert.Equal(t, "campaigns", id.ProductGrants[0].Product.Slug)
	})

	t.Run("empty subject", func(t *testing.T) {
		t.Parallel()

		_, err := sso.MapProfile(sso.Profile{}, "axolutions.com")
		assert.ErrorIs(t, err, identity.ErrEmptySubject)
	})
}
