// Package tokenset models OAuth credential material for one session and keeps
// it valid across requests.
//
// A TokenSet moves through FRESH, EXPIRED, REFRESHING and INVALID. It counts
// as expired once now >= expiresAt - 60s; a set without an expiry never
// expires. Manager.Access performs the refresh lazily on read, deduplicated
// per session with golang.org/x/sync/singleflight so that a provider which
// rotates refresh tokens never sees the same token spent twice. A failed
// refresh does not raise: the stale set is returned tagged with the sticky
// RefreshAccessTokenError and is never retried automatically.
//
//	mgr := tokenset.NewManager(ssoClient,
//		tokenset.WithLogger(log),
//		tokenset.WithUpdateHook(func(ctx context.Context, id string, ts tokenset.TokenSet) {
//			_ = sessions.UpdateTokens(ctx, id, ts)
//		}),
//	)
//	ts, err := mgr.Access(ctx, sess.ID, sess.Tokens)
package tokenset
