package pg_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/pg"
)

func TestConnect_EmptyConnectionString(t *testing.T) {
	t.Parallel()

	pool, err := pg.Connect(context.Background(), pg.Config{})
	require.ErrorIs(t, err, pg.ErrEmptyConnectionString)
	assert.Nil(t, pool)
}

func TestConnect_InvalidConnectionString(t *testing.T) {
	t.Parallel()

	pool, err := pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	require.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
	assert.Nil(t, pool)
}

func TestMigrate_NilFS(t *testing.T) {
	t.Parallel()

	err := pg.Migrate(context.Background(), nil, nil, pg.Config{}, nil)
	require.ErrorIs(t, err, pg.ErrFailedToApplyMigrations)
	assert.ErrorIs(t, err, pg.ErrNoMigrations)
}
