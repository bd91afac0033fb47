package permission

import "github.com/axolutions/linkbio-dashboard/pkg/identity"

// Require returns ErrAuthenticationRequired when id is nil.
func Require(id *identity.Identity) error {
	if id == nil {
		return ErrAuthenticationRequired
	}
	return nil
}

// RequirePermission fails unless id holds permission on product.
func RequirePermission(id *identity.Identity, product, permission string) error {
	if err := Require(id); err != nil {
		return err
	}
	if !HasPermission(id, product, permission) {
		return NewPermissionDeniedError(product, permission)
	}
	return nil
}

// RequireRole fails unless id holds role on product.
func RequireRole(id *identity.Identity, product, role string) error {
	if err := Require(id); err != nil {
		return err
	}
	if !HasRole(id, product, role) {
		return NewRoleRequiredError(product, role)
	}
	return nil
}
