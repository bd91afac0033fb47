package auth_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/permission"
	"github.com/axolutions/linkbio-dashboard/svc/auth"
)

const fixtureYAML = `
user:
  sub: dev-user
  email: dev@example.com
  name: Dev User
  email_verified: true
  products:
    - product: {id: p1, name: Campaigns, slug: campaigns}
      role: {id: r1, name: admin, permissions: [campaigns.read, campaigns.write]}
      granted_at: 2024-01-01T00:00:00Z
    - product: {id: p1b, name: Campaigns Copy, slug: campaigns}
      role: {id: r2, name: viewer, permissions: [campaigns.read]}
  profile:
    site_branch_name: dev
`

func TestLoadFixture(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mocked_auth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))

	id, err := auth.LoadFixture(path)
	require.NoError(t, err)

	assert.Equal(t, "dev-user", id.Subject)
	assert.Equal(t, "Dev User", id.DisplayName)
	assert.True(t, id.EmailVerified)
	require.Len(t, id.ProductGrants, 1, "duplicate product slugs are dropped")
	assert.True(t, permission.IsAdmin(&id, "campaigns"))
	assert.True(t, permission.HasPermission(&id, "campaigns", "campaigns.write"))
	require.NotNil(t, id.Profile)
	assert.Equal(t, "dev", id.Profile.SiteBranchName)
	assert.False(t, id.ProductGrants[0].GrantedAt.IsZero())
}

func TestParseFixture_Errors(t *testing.T) {
	t.Parallel()

	_, err := auth.ParseFixture([]byte("user: ["))
	assert.ErrorIs(t, err, auth.ErrInvalidFixture)

	_, err = auth.ParseFixture([]byte("user:\n  email: a@b.c\n"))
	assert.ErrorIs(t, err, auth.ErrInvalidFixture)

	_, err = auth.LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFixture_Default(t *testing.T) {
	t.Parallel()

	id, err := auth.LoadFixture("")
	require.NoError(t, err)

	def, err := auth.DefaultFixture()
	require.NoError(t, err)
	assert.Equal(t, def, id)

	assert.Equal(t, "mocked-dev-user", id.Subject)
	assert.Equal(t, "dev@linkbio.local", id.Email)
	require.Len(t, id.ProductGrants, 2)
	assert.True(t, permission.IsAdmin(&id, "linkbio"))
	assert.False(t, permission.IsAdmin(&id, "campaigns"))
	assert.True(t, permission.HasPermission(&id, "campaigns", "campaigns.read"))
}
