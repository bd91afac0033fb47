// Package sso is the client for the Axolutions SSO provider.
//
// The provider exposes four endpoints under a base URL: authorize, token,
// userinfo and revoke. The dashboard is a public OAuth client, so the
// authorization code flow is protected with PKCE (S256) and no client secret
// is configured; golang.org/x/oauth2 is set up with AuthStyleInParams so that
// client_id travels in the form body of both the code exchange and the
// refresh grant.
//
// The provider does not issue ID tokens. The profile is read exclusively from
// the userinfo endpoint, validated at the boundary into a Profile, and only
// then converted into an identity.Identity by MapProfile. Raw provider JSON
// never leaves this package.
//
// Errors:
//
//   - TokenExchangeError: the authorization code was rejected.
//   - UserinfoError: the access token was rejected by userinfo.
//   - RefreshError: the refresh grant failed. The token lifecycle manager
//     records it as a sticky tag rather than propagating it.
//   - RevocationError: logged by Revoke and never returned.
//
// Usage:
//
//	client, err := sso.New(cfg, sso.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	pair, _ := pkce.GeneratePair()
//	http.Redirect(w, r, client.AuthorizationURL(pair, state, ""), http.StatusFound)
//
//	// on callback
//	tokens, err := client.Exchange(ctx, code, pair.Verifier, "")
//	profile, err := client.FetchProfile(ctx, tokens.AccessToken)
//	user, err := client.MapProfile(profile)
package sso
