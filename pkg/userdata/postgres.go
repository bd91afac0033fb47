package userdata

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/axolutions/linkbio-dashboard/pkg/pg"
)

// Querier is the subset of *pgxpool.Pool used by PostgresStore.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectUserSQL = `SELECT id, external_id, email, name, avatar, email_verified, password,
	status, site_branch_name, website_url, last_login, created_at, updated_at
FROM users WHERE id = $1`

	touchLoginSQL = `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`
)

// PostgresStore reads the users table through pgx.
type PostgresStore struct {
	db Querier
}

func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, subject string) (Record, error) {
	if subject == "" {
		return Record{}, ErrEmptySubject
	}

	var (
		rec                                   Record
		externalID, email, name, avatar       *string
		password, siteBranch, website, status *string
	)
	err := s.db.QueryRow(ctx, selectUserSQL, subject).Scan(
		&rec.ID, &externalID, &email, &name, &avatar, &rec.EmailVerified, &password,
		&status, &siteBranch, &website, &rec.LastLogin, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return Record{}, pgError(err)
	}

	rec.ExternalID = deref(externalID)
	rec.Email = deref(email)
	rec.Name = deref(name)
	rec.Avatar = deref(avatar)
	rec.Password = deref(password)
	rec.Status = deref(status)
	rec.SiteBranchName = deref(siteBranch)
	rec.WebsiteURL = deref(website)
	return rec, nil
}

func (s *PostgresStore) TouchLogin(ctx context.Context, subject string, at time.Time) error {
	if subject == "" {
		return ErrEmptySubject
	}

	tag, err := s.db.Exec(ctx, touchLoginSQL, subject, at.UTC())
	if err != nil {
		return pgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func pgError(err error) error {
	switch {
	case pg.IsNotFoundError(err):
		return ErrNotFound
	case pg.IsUndefinedTableError(err):
		return errors.Join(ErrStoreNotMigrated, err)
	default:
		return errors.Join(ErrLookupFailed, err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
