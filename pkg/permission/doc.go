// Package permission answers authorization questions against the product
// grants carried by an identity.Identity.
//
// Every function is pure: no network or datastore access, safe to call on
// every request. A nil identity is never an error for the predicate
// functions; it simply has no grants, so every check returns false and every
// listing returns an empty result.
//
// Lookup is by product slug and the first matching grant wins. Permission and
// role names are compared exactly; there is no wildcard or inheritance
// expansion.
//
// # Usage
//
//	id := identity.FromContext(ctx)
//	if permission.HasPermission(id, "campaigns", "write") {
//		// ...
//	}
//
//	if err := permission.RequireRole(id, "linkbio", "admin"); err != nil {
//		// errors.Is(err, permission.ErrAuthenticationRequired)
//		// or permission.IsRoleRequiredError(err)
//	}
package permission
