package userdata

import (
	"context"
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/cache"
)

type cachedLookup struct {
	record Record
	found  bool
}

// CachedStore remembers Get results, including misses, for a short TTL.
// TouchLogin passes through and invalidates the subject.
type CachedStore struct {
	next  Store
	cache *cache.LRU[string, cachedLookup]
}

func NewCachedStore(next Store, size int, ttl time.Duration, opts ...cache.Option) *CachedStore {
	return &CachedStore{next: next, cache: cache.New[string, cachedLookup](size, ttl, opts...)}
}

func (s *CachedStore) Get(ctx context.Context, subject string) (Record, error) {
	if hit, ok := s.cache.Get(subject); ok {
		if !hit.found {
			return Record{}, ErrNotFound
		}
		return hit.record, nil
	}

	rec, err := s.next.Get(ctx, subject)
	switch {
	case IsNotFound(err):
		s.cache.Put(subject, cachedLookup{})
		return Record{}, err
	case err != nil:
		return Record{}, err
	}
	s.cache.Put(subject, cachedLookup{record: rec, found: true})
	return rec, nil
}

func (s *CachedStore) TouchLogin(ctx context.Context, subject string, at time.Time) error {
	s.cache.Remove(subject)
	return s.next.TouchLogin(ctx, subject, at)
}
