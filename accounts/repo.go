package accounts

import (
	"context"
	"errors"
	"time"
)

// ErrAccountNotFound is returned when no account matches the given subject.
var ErrAccountNotFound = errors.New("account not found")

// Repo is the persistence boundary for administrator accounts. Upsert must be
// atomic on Subject so that two concurrent first sign-ins for the same subject
// cannot create duplicate accounts.
type Repo interface {
	GetBySubject(ctx context.Context, subject string) (*Account, error)
	Upsert(ctx context.Context, account *Account) error
	TouchLastSeen(ctx context.Context, subject string, seenAt time.Time) error
	SetDisabled(ctx context.Context, subject string, disabled bool) error
	List(ctx context.Context, offset, limit int) ([]*Account, error)
}
