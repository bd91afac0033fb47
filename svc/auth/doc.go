// Package auth implements the dashboard's sign-in against the Axolutions
// SSO provider: a public-client authorization code flow with PKCE.
//
// Initiate stores a Flow (verifier, state, post-login destination) and
// returns the authorize URL. Complete validates the callback against the
// stored Flow, consumes it, exchanges the code, fetches and maps the profile
// and creates the session. The Flow moves INITIATED, CALLBACK_RECEIVED,
// EXCHANGED as defined by FlowLifecycle.
//
// SignOut deletes the local session and revokes the access token in the
// background; revocation never blocks or fails a sign-out.
package auth
