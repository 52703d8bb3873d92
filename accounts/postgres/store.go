// Package postgres implements the account store on PostgreSQL via database/sql
// and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
)

var _ accounts.Repo = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL with the pgx stdlib driver and verifies the
// connection within the given timeout.
func Open(ctx context.Context, dsn string, timeout time.Duration) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "[postgres.Open] sql.Open")
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, errors.Wrap(err, "[postgres.Open] ping")
	}

	return New(db), nil
}

// New wraps an existing database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetBySubject(ctx context.Context, subject string) (*accounts.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`select subject, display_name, role, disabled, last_seen, created_at
		   from admin_accounts where subject = $1`, subject)

	var a accounts.Account
	if err := row.Scan(&a.Subject, &a.DisplayName, &a.Role, &a.Disabled, &a.LastSeen, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, accounts.ErrAccountNotFound
		}
		return nil, errors.Wrap(err, "[Store.GetBySubject] scan")
	}
	return &a, nil
}

// Upsert inserts or updates an account. The unique constraint on subject plus
// ON CONFLICT makes concurrent first sign-ins for the same subject safe.
func (s *Store) Upsert(ctx context.Context, account *accounts.Account) error {
	_, err := s.db.ExecContext(ctx,
		`insert into admin_accounts(subject, display_name, role, disabled, last_seen, created_at)
		 values($1,$2,$3,$4,$5,$6)
		 on conflict (subject) do update
		 set display_name = excluded.display_name,
		     role = excluded.role,
		     disabled = excluded.disabled,
		     last_seen = excluded.last_seen`,
		account.Subject, account.DisplayName, account.Role, account.Disabled,
		account.LastSeen, account.CreatedAt,
	)
	return errors.Wrap(err, "[Store.Upsert] exec")
}

func (s *Store) TouchLastSeen(ctx context.Context, subject string, seenAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`update admin_accounts set last_seen = $2 where subject = $1`, subject, seenAt)
	if err != nil {
		return errors.Wrap(err, "[Store.TouchLastSeen] exec")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return accounts.ErrAccountNotFound
	}
	return nil
}

func (s *Store) SetDisabled(ctx context.Context, subject string, disabled bool) error {
	res, err := s.db.ExecContext(ctx,
		`update admin_accounts set disabled = $2 where subject = $1`, subject, disabled)
	if err != nil {
		return errors.Wrap(err, "[Store.SetDisabled] exec")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return accounts.ErrAccountNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, offset, limit int) ([]*accounts.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`select subject, display_name, role, disabled, last_seen, created_at
		   from admin_accounts order by created_at asc offset $1 limit $2`, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "[Store.List] query")
	}
	defer rows.Close()

	var list []*accounts.Account
	for rows.Next() {
		var a accounts.Account
		if err := rows.Scan(&a.Subject, &a.DisplayName, &a.Role, &a.Disabled, &a.LastSeen, &a.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "[Store.List] scan")
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
