package permission

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationRequired  = errors.New("permission.authentication_required")
	ErrInsufficientPermissions = errors.New("permission.insufficient_permissions")
)

// PermissionDeniedError reports a missing permission on a product.
type PermissionDeniedError struct {
	Product    string
	Permission string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission '%s' required for product '%s'", e.Permission, e.Product)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrInsufficientPermissions
}

func NewPermissionDeniedError(product, permission string) *PermissionDeniedError {
	return &PermissionDeniedError{Product: product, Permission: permission}
}

// RoleRequiredError reports a missing role on a product.
type RoleRequiredError struct {
	Product string
	Role    string
}

func (e *RoleRequiredError) Error() string {
	return fmt.Sprintf("role '%s' required for product '%s'", e.Role, e.Product)
}

func (e *RoleRequiredError) Unwrap() error {
	return ErrInsufficientPermissions
}

func NewRoleRequiredError(product, role string) *RoleRequiredError {
	return &RoleRequiredError{Product: product, Role: role}
}

func IsPermissionDeniedError(err error) bool {
	var e *PermissionDeniedError
	return errors.As(err, &e)
}

func IsRoleRequiredError(err error) bool {
	var e *RoleRequiredError
	return errors.As(err, &e)
}
