package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/axolutions/linkbio-dashboard/pkg/cookie"
)

// FlowStore persists in-flight sign-in attempts.
type FlowStore interface {
	Save(ctx context.Context, w http.ResponseWriter, f Flow) error

	// Load returns the flow for the callback request. Stores keyed by state
	// use it; cookie stores ignore it and let the caller compare.
	Load(ctx context.Context, r *http.Request, state string) (Flow, error)

	// Delete consumes the flow. It returns ErrFlowConsumed when another
	// request already did.
	Delete(ctx context.Context, w http.ResponseWriter, f Flow) error
}

// CookieFlowStore keeps the flow in an encrypted, short-lived cookie.
type CookieFlowStore struct {
	cookies *cookie.Manager
	name    string
	ttl     time.Duration
	secure  bool
}

func NewCookieFlowStore(cookies *cookie.Manager, name string, ttl time.Duration, secure bool) *CookieFlowStore {
	if name == "" {
		name = DefaultFlowCookie
	}
	return &CookieFlowStore{cookies: cookies, name: name, ttl: ttl, secure: secure}
}

func (s *CookieFlowStore) Save(_ context.Context, w http.ResponseWriter, f Flow) error {
	return s.cookies.SetJSON(w, s.name, f,
		cookie.WithMaxAge(int(s.ttl.Seconds())),
		cookie.WithSecure(s.secure),
		cookie.WithSameSite(http.SameSiteLaxMode),
	)
}

func (s *CookieFlowStore) Load(_ context.Context, r *http.Request, _ string) (Flow, error) {
	var f Flow
	if err := s.cookies.GetJSON(r, s.name, &f); err != nil {
		if errors.Is(err, cookie.ErrCookieNotFound) {
			return Flow{}, ErrFlowNotFound
		}
		return Flow{}, errors.Join(ErrFlowNotFound, err)
	}
	return f, nil
}

func (s *CookieFlowStore) Delete(_ context.Context, w http.ResponseWriter, _ Flow) error {
	s.cookies.Delete(w, s.name, cookie.WithSecure(s.secure))
	return nil
}

// RedisFlowStore keeps flows server-side, keyed by state.
type RedisFlowStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisFlowStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisFlowStore {
	if prefix == "" {
		prefix = "auth:flow:"
	}
	return &RedisFlowStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisFlowStore) Save(ctx context.Context, _ http.ResponseWriter, f Flow) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.prefix+f.State, data, s.ttl).Err(); err != nil {
		return errors.Join(ErrFlowStoreUnavailable, err)
	}
	return nil
}

func (s *RedisFlowStore) Load(ctx context.Context, _ *http.Request, state string) (Flow, error) {
	if state == "" {
		return Flow{}, ErrFlowNotFound
	}
	data, err := s.client.Get(ctx, s.prefix+state).Bytes()
	if errors.Is(err, redis.Nil) {
		return Flow{}, ErrFlowNotFound
	}
	if err != nil {
		return Flow{}, errors.Join(ErrFlowStoreUnavailable, err)
	}

	var f Flow
	if err := json.Unmarshal(data, &f); err != nil {
		return Flow{}, errors.Join(ErrFlowNotFound, err)
	}
	return f, nil
}

func (s *RedisFlowStore) Delete(ctx context.Context, _ http.ResponseWriter, f Flow) error {
	n, err := s.client.Del(ctx, s.prefix+f.State).Result()
	if err != nil {
		return errors.Join(ErrFlowStoreUnavailable, err)
	}
	if n == 0 {
		return ErrFlowConsumed
	}
	return nil
}
