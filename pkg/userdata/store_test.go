package userdata_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/userdata"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, subject string) (userdata.Record, error) {
	args := m.Called(ctx, subject)
	return args.Get(0).(userdata.Record), args.Error(1)
}

func (m *mockStore) TouchLogin(ctx context.Context, subject string, at time.Time) error {
	return m.Called(ctx, subject, at).Error(0)
}

func TestRecord_Enrichment(t *testing.T) {
	t.Parallel()

	verified := true
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	rec := userdata.Record{
		ID:             "sub-1",
		ExternalID:     "ext-9",
		Email:          "jane@shop.example",
		Name:           "Jane Shop",
		Avatar:         "https://cdn.example/jane.png",
		EmailVerified:  &verified,
		Password:       "placeholder",
		Status:         "active",
		SiteBranchName: "jane",
		WebsiteURL:     "https://jane.example",
		CreatedAt:      &created,
	}

	e := rec.Enrichment()
	assert.Equal(t, "jane@shop.example", e.Email)
	assert.Equal(t, "Jane Shop", e.DisplayName)
	assert.Equal(t, "https://cdn.example/jane.png", e.AvatarURL)
	require.NotNil(t, e.EmailVerified)
	assert.True(t, *e.EmailVerified)
	assert.Equal(t, "ext-9", e.Profile.ExternalID)
	assert.Equal(t, "jane", e.Profile.SiteBranchName)
	assert.Equal(t, "placeholder", e.Profile.PasswordHash)
	require.NotNil(t, e.Profile.CreatedAt)
	assert.Equal(t, time.UTC, e.Profile.CreatedAt.Location())
	assert.True(t, created.Equal(*e.Profile.CreatedAt))
	assert.Nil(t, e.Profile.LastLoginAt)
}

func TestEnricher_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, "sub-1").Return(userdata.Record{ID: "sub-1", Name: "Jane"}, nil)

		e, found, err := userdata.NewEnricher(store, time.Second).Lookup(context.Background(), "sub-1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Jane", e.DisplayName)
		store.AssertExpectations(t)
	})

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, "sub-2").Return(userdata.Record{}, userdata.ErrNotFound)

		_, found, err := userdata.NewEnricher(store, 0).Lookup(context.Background(), "sub-2")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.Join(userdata.ErrLookupFailed, errors.New("connection reset"))
		store := &mockStore{}
		store.On("Get", mock.Anything, "sub-3").Return(userdata.Record{}, boom)

		_, found, err := userdata.NewEnricher(store, 0).Lookup(context.Background(), "sub-3")
		require.ErrorIs(t, err, userdata.ErrLookupFailed)
		assert.False(t, found)
	})

	t.Run("timeout bounds the lookup", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, "sub-4").Return(userdata.Record{}, nil).Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, ok := ctx.Deadline()
			assert.True(t, ok)
		})

		_, _, err := userdata.NewEnricher(store, time.Second).Lookup(context.Background(), "sub-4")
		require.NoError(t, err)
	})
}

func TestEnricher_RecordLogin(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	store := &mockStore{}
	store.On("TouchLogin", mock.Anything, "known", at).Return(nil)
	store.On("TouchLogin", mock.Anything, "unknown", at).Return(userdata.ErrNotFound)
	store.On("TouchLogin", mock.Anything, "broken", at).Return(userdata.ErrLookupFailed)

	e := userdata.NewEnricher(store, 0)
	assert.NoError(t, e.RecordLogin(context.Background(), "known", at))
	assert.NoError(t, e.RecordLogin(context.Background(), "unknown", at))
	assert.ErrorIs(t, e.RecordLogin(context.Background(), "broken", at), userdata.ErrLookupFailed)
}

func TestMigrations_Embedded(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(userdata.Migrations, "00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "site_branch_name")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{"none", "postgres", "mongo"} {
		cfg := userdata.Config{Driver: driver}
		assert.NoError(t, cfg.Validate(), driver)
	}

	cfg := userdata.Config{Driver: "sqlite"}
	assert.Error(t, cfg.Validate())
	assert.False(t, userdata.Config{Driver: "none"}.Enabled())
	assert.True(t, userdata.Config{Driver: "postgres"}.Enabled())
}
