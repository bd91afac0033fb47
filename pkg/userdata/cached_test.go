package userdata_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/cache"
	"github.com/axolutions/linkbio-dashboard/pkg/userdata"
)

func TestCachedStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("hits skip the store", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, "user-1").Return(userdata.Record{ID: "user-1", Name: "Ana"}, nil).Once()
		cached := userdata.NewCachedStore(store, 8, time.Minute)

		for range 3 {
			rec, err := cached.Get(ctx, "user-1")
			require.NoError(t, err)
			assert.Equal(t, "Ana", rec.Name)
		}
		store.AssertExpectations(t)
	})

	t.Run("misses are cached", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, "ghost").Return(userdata.Record{}, userdata.ErrNotFound).Once()
		cached := userdata.NewCachedStore(store, 8, time.Minute)

		_, err := cached.Get(ctx, "ghost")
		assert.ErrorIs(t, err, userdata.ErrNotFound)
		_, err = cached.Get(ctx, "ghost")
		assert.ErrorIs(t, err, userdata.ErrNotFound)
		store.AssertExpectations(t)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection reset")
		store := &mockStore{}
		store.On("Get", mock.Anything, "user-1").Return(userdata.Record{}, boom).Twice()
		cached := userdata.NewCachedStore(store, 8, time.Minute)

		for range 2 {
			_, err := cached.Get(ctx, "user-1")
			assert.ErrorIs(t, err, boom)
		}
		store.AssertExpectations(t)
	})

	t.Run("touch login invalidates", func(t *testing.T) {
		t.Parallel()
		at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
		store := &mockStore{}
		store.On("Get", mock.Anything, "user-1").Return(userdata.Record{ID: "user-1"}, nil).Twice()
		store.On("TouchLogin", mock.Anything, "user-1", at).Return(nil).Once()
		cached := userdata.NewCachedStore(store, 8, time.Minute)

		_, err := cached.Get(ctx, "user-1")
		require.NoError(t, err)
		require.NoError(t, cached.TouchLogin(ctx, "user-1", at))
		_, err = cached.Get(ctx, "user-1")
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("expired entries reload", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
		store := &mockStore{}
		store.On("Get", mock.Anything, "user-1").Return(userdata.Record{ID: "user-1"}, nil).Twice()
		cached := userdata.NewCachedStore(store, 8, time.Minute, cache.WithClock(func() time.Time { return now }))

		_, err := cached.Get(ctx, "user-1")
		require.NoError(t, err)
		now = now.Add(2 * time.Minute)
		_, err = cached.Get(ctx, "user-1")
		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}
