// Package redis connects to Redis with go-redis and exposes a health probe.
//
// The dashboard uses Redis for two things: the session store
// (session.RedisStore) and, optionally, the store that holds PKCE verifiers
// between the authorize redirect and the callback (auth.RedisFlowStore).
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Errors returned by Connect wrap one of the package sentinels with
// errors.Join, so callers can match them with errors.Is.
package redis
