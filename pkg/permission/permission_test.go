package permission_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
	"github.com/axolutions/linkbio-dashboard/pkg/permission"
)

func testIdentity() *identity.Identity {
	return &identity.Identity{
		Subject: "abc12345",
		ProductGrants: []identity.ProductGrant{
			{
				Product: identity.Product{ID: "p1", Name: "Campaigns", Slug: "campaigns"},
				Role:    identity.Role{ID: "r1", Name: "admin", Permissions: []string{"read", "write"}},
			},
			{
				Product: identity.Product{ID: "p2", Name: "Link in bio", Slug: "linkbio"},
				Role:    identity.Role{ID: "r2", Name: "viewer", Permissions: []string{"read"}},
			},
		},
	}
}

func TestHasPermission(t *testing.T) {
	t.Parallel()

	id := testIdentity()

	tests := []struct {
		name       string
		identity   *identity.Identity
		product    string
		permission string
		want       bool
	}{
		{name: "granted permission", identity: id, product: "campaigns", permission: "write", want: true},
		{name: "missing permission", identity: id, product: "campaigns", permission: "delete", want: false},
		{name: "unknown product", identity: id, product: "other-product", permission: "read", want: false},
		{name: "nil identity", identity: nil, product: "campaigns", permission: "read", want: false},
		{name: "permission from another product", identity: id, product: "linkbio", permission: "write", want: false},
		{name: "case sensitive", identity: id, product: "campaigns", permission: "READ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, permission.HasPermission(tt.identity, tt.product, tt.permission))
		})
	}
}

func TestHasAnyPermission(t *testing.T) {
	t.Parallel()

	id := testIdentity()

	assert.True(t, permission.HasAnyPermission(id, "campaigns", "delete", "write"))
	assert.False(t, permission.HasAnyPermission(id, "campaigns", "delete", "publish"))
	assert.False(t, permission.HasAnyPermission(id, "campaigns"))
	assert.False(t, permission.HasAnyPermission(id, "other", "read"))
	assert.False(t, permission.HasAnyPermission(nil, "campaigns", "read"))
}

func TestHasAllPermissions(t *testing.T) {
	t.Parallel()

	id := testIdentity()

	assert.True(t, permission.HasAllPermissions(id, "campaigns", "read", "write"))
	assert.False(t, permission.HasAllPermissions(id, "campaigns", "read", "delete"))
	assert.True(t, permission.HasAllPermissions(id, "campaigns"))
	assert.False(t, permission.HasAllPermissions(id, "other"))
	assert.False(t, permission.HasAllPermissions(nil, "campaigns", "read"))
}

func TestRoles(t *testing.T) {
	t.Parallel()

	id := testIdentity()

	assert.True(t, permission.HasRole(id, "campaigns", "admin"))
	assert.False(t, permission.HasRole(id, "linkbio", "admin"))
	assert.False(t, permission.HasRole(nil, "campaigns", "admin"))

	assert.True(t, permission.HasAnyRole(id, "linkbio", "editor", "viewer"))
	assert.False(t, permission.HasAnyRole(id, "linkbio", "editor"))

	assert.True(t, permission.IsAdmin(id, "campaigns"))
	assert.False(t, permission.IsAdmin(id, "linkbio"))
	assert.False(t, permission.IsAdmin(nil, "campaigns"))

	role, ok := permission.RoleOf(id, "linkbio")
	assert.True(t, ok)
	assert.Equal(t, "viewer", role)

	_, ok = permission.RoleOf(nil, "linkbio")
	assert.False(t, ok)
}

func TestListings(t *testing.T) {
	t.Parallel()

	id := testIdentity()

	assert.Equal(t, []string{"campaigns", "linkbio"}, permission.Products(id))
	assert.Equal(t, []string{}, permission.Products(nil))

	perms := permission.Permissions(id, "campaigns")
	assert.Equal(t, []string{"read", "write"}, perms)
	perms[0] = "mutated"
	assert.True(t, permission.HasPermission(id, "campaigns", "read"), "listing must be a copy")

	assert.Equal(t, []string{}, permission.Permissions(id, "other"))
	assert.Equal(t, []string{}, permission.Permissions(nil, "campaigns"))
}

func TestFirstGrantWins(t *testing.T) {
	t.Parallel()

	id := &identity.Identity{
		Subject: "s",
		ProductGrants: []identity.ProductGrant{
			{Product: identity.Product{Slug: "campaigns"}, Role: identity.Role{Name: "viewer", Permissions: []string{"read"}}},
			{Product: identity.Product{Slug: "campaigns"}, Role: identity.Role{Name: "admin", Permissions: []string{"write"}}},
		},
	}

	assert.False(t, permission.HasPermission(id, "campaigns", "write"))
	assert.True(t, permission.HasRole(id, "campaigns", "viewer"))
}

func TestRequire(t *testing.T) {
	t.Parallel()

	id := testIdentity()

	t.Run("nil identity", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, permission.Require(nil), permission.ErrAuthenticationRequired)
		assert.ErrorIs(t, permission.RequirePermission(nil, "campaigns", "read"), permission.ErrAuthenticationRequired)
		assert.ErrorIs(t, permission.RequireRole(nil, "campaigns", "admin"), permission.ErrAuthenticationRequired)
	})

	t.Run("permission denied", func(t *testing.T) {
		t.Parallel()
		err := permission.RequirePermission(id, "linkbio", "write")
		assert.True(t, permission.IsPermissionDeniedError(err))
		assert.True(t, errors.Is(err, permission.ErrInsufficientPermissions))
		assert.Equal(t, "permission 'write' required for product 'linkbio'", err.Error())
	})

	t.Run("role required", func(t *testing.T) {
		t.Parallel()
		err := permission.RequireRole(id, "linkbio", "admin")
		assert.True(t, permission.IsRoleRequiredError(err))
		assert.True(t, errors.Is(err, permission.ErrInsufficientPermissions))
	})

	t.Run("granted", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, permission.Require(id))
		assert.NoError(t, permission.RequirePermission(id, "campaigns", "write"))
		assert.NoError(t, permission.RequireRole(id, "campaigns", "admin"))
	})
}

func TestConcurrentEvaluation(t *testing.T) {
	t.Parallel()

	id := testIdentity()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.True(t, permission.HasPermission(id, "campaigns", "read"))
				assert.False(t, permission.IsAdmin(id, "linkbio"))
			}
		}()
	}
	wg.Wait()
}
