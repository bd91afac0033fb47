// Package session keeps the signed-in state of dashboard users.
//
// A Session record holds the OAuth TokenSet and the Identity resolved at
// sign-in. It lives in a Store (MemoryStore or RedisStore) for up to 30
// days; the browser only carries its random ID in an AES-GCM encrypted
// cookie.
//
// On every request Manager.Resolve loads the record, lets the token
// lifecycle manager refresh an expired access token (persisting the outcome
// back to the store), and projects the result into an immutable View:
//
//	LOADING ──resolved──► AUTHENTICATED ──failed──► ERROR
//	   │
//	   └────missing─────► UNAUTHENTICATED ◄──sign_out── any state
//
// A View in ERROR keeps the identity for display but signals that the
// refresh token is dead and the user must sign in again. Optional
// enrichment merges application-side profile fields from an Enricher
// without ever touching the product grants issued by the SSO.
//
// The View travels with the request context (WithView, ViewFromContext);
// there is no process-wide notion of the current user.
//
//	sessions, err := session.NewManager(store, transport, ssoClient,
//		session.WithEnricher(users),
//		session.WithLogger(log),
//	)
//	r.Use(sessions.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		v := session.ViewFromContext(r.Context())
//		if !v.IsAuthenticated() { ... }
//	}
package session
