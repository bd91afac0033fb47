package permission

import (
	"slices"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
)

// AdminRole is the role name IsAdmin checks for.
const AdminRole = "admin"

// HasPermission reports whether id holds permission on product.
func HasPermission(id *identity.Identity, product, permission string) bool {
	g, ok := id.Grant(product)
	if !ok {
		return false
	}
	return g.Role.Has(permission)
}

// HasAnyPermission reports whether id holds at least one of permissions on product.
func HasAnyPermission(id *identity.Identity, product string, permissions ...string) bool {
	g, ok := id.Grant(product)
	if !ok {
		return false
	}
	return slices.ContainsFunc(permissions, g.Role.Has)
}

// HasAllPermissions reports whether id holds every one of permissions on product.
// An empty permission list is vacuously satisfied once a grant exists.
func HasAllPermissions(id *identity.Identity, product string, permissions ...string) bool {
	g, ok := id.Grant(product)
	if !ok {
		return false
	}
	for _, p := range permissions {
		if !g.Role.Has(p) {
			return false
		}
	}
	return true
}

// HasRole reports whether id's role on product is exactly role.
func HasRole(id *identity.Identity, product, role string) bool {
	g, ok := id.Grant(product)
	if !ok {
		return false
	}
	return g.Role.Name == role
}

// HasAnyRole reports whether id's role on product is one of roles.
func HasAnyRole(id *identity.Identity, product string, roles ...string) bool {
	g, ok := id.Grant(product)
	if !ok {
		return false
	}
	return slices.Contains(roles, g.Role.Name)
}

// IsAdmin is HasRole(id, product, AdminRole).
func IsAdmin(id *identity.Identity, product string) bool {
	return HasRole(id, product, AdminRole)
}

// Permissions returns a copy of id's permissions on product.
func Permissions(id *identity.Identity, product string) []string {
	g, ok := id.Grant(product)
	if !ok || len(g.Role.Permissions) == 0 {
		return []string{}
	}
	return slices.Clone(g.Role.Permissions)
}

// RoleOf returns id's role name on product.
func RoleOf(id *identity.Identity, product string) (string, bool) {
	g, ok := id.Grant(product)
	if !ok {
		return "", false
	}
	return g.Role.Name, true
}

// Products lists the slugs id holds grants for, in grant order.
func Products(id *identity.Identity) []string {
	if id == nil {
		return []string{}
	}
	out := make([]string, 0, len(id.ProductGrants))
	for _, g := range id.ProductGrants {
		out = append(out, g.Product.Slug)
	}
	return out
}
