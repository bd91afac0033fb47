package userdata

import (
	"context"
	"embed"
	"io/fs"
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations holds the goose migrations for the users table, rooted at the
// migrations directory.
var Migrations = func() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}()

// Store reads and touches application-side user records.
type Store interface {
	Get(ctx context.Context, subject string) (Record, error)
	TouchLogin(ctx context.Context, subject string, at time.Time) error
}

// Enricher adapts a Store to the session projection. A missing record is
// reported as not found rather than an error.
type Enricher struct {
	store   Store
	timeout time.Duration
}

// NewEnricher wraps store. A positive timeout bounds every lookup.
func NewEnricher(store Store, timeout time.Duration) *Enricher {
	return &Enricher{store: store, timeout: timeout}
}

func (e *Enricher) Lookup(ctx context.Context, subject string) (identity.Enrichment, bool, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rec, err := e.store.Get(ctx, subject)
	switch {
	case IsNotFound(err):
		return identity.Enrichment{}, false, nil
	case err != nil:
		return identity.Enrichment{}, false, err
	}
	return rec.Enrichment(), true, nil
}

// RecordLogin stamps last_login for subject. A missing record is not an
// error: users may sign in before their application row exists.
func (e *Enricher) RecordLogin(ctx context.Context, subject string, at time.Time) error {
	if err := e.store.TouchLogin(ctx, subject, at); err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}
