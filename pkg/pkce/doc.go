// Package pkce generates Proof Key for Code Exchange (RFC 7636) verifier and
// challenge pairs for public OAuth 2.0 clients.
//
// A verifier is 32 bytes read from crypto/rand and encoded as unpadded
// base64url, which always yields 43 characters. The challenge is the unpadded
// base64url encoding of the SHA-256 digest of the verifier. Only the S256
// method is supported.
//
// # Usage
//
//	pair, err := pkce.GeneratePair()
//	if err != nil {
//		// entropy source is unavailable; authentication cannot proceed
//	}
//	authURL := client.AuthorizationURL(pair, state) // sends pair.Challenge
//	// ... later, on callback:
//	tokens, err := client.Exchange(ctx, code, pair.Verifier, redirectURI)
//
// Pairs are single-use. The verifier must be kept server side (or in an
// encrypted cookie) until the token exchange and then discarded.
package pkce
