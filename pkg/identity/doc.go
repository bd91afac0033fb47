// Package identity defines the application-level principal produced by the
// SSO sign-in flow: subject, profile attributes and per-product role grants.
package identity
