package fakeaccountrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
)

var _ accounts.Repo = (*FakeAccountRepo)(nil)

// FakeAccountRepo is a thread-safe in-memory account store for tests and
// development runs without a database.
type FakeAccountRepo struct {
	lock     sync.RWMutex
	accounts map[string]*accounts.Account
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts: make(map[string]*accounts.Account),
	}
}

func (ar *FakeAccountRepo) GetBySubject(_ context.Context, subject string) (*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	account, ok := ar.accounts[subject]
	if !ok {
		return nil, accounts.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (ar *FakeAccountRepo) Upsert(_ context.Context, account *accounts.Account) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	copied := *account
	ar.accounts[account.Subject] = &copied
	return nil
}

func (ar *FakeAccountRepo) TouchLastSeen(_ context.Context, subject string, seenAt time.Time) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	account, ok := ar.accounts[subject]
	if !ok {
		return accounts.ErrAccountNotFound
	}
	account.LastSeen = seenAt
	return nil
}

func (ar *FakeAccountRepo) SetDisabled(_ context.Context, subject string, disabled bool) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	account, ok := ar.accounts[subject]
	if !ok {
		return accounts.ErrAccountNotFound
	}
	account.Disabled = disabled
	return nil
}

func (ar *FakeAccountRepo) List(_ context.Context, offset, limit int) ([]*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	list := make([]*accounts.Account, 0, len(ar.accounts))
	for _, a := range ar.accounts {
		copied := *a
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Subject < list[j].Subject
	})

	if offset >= len(list) {
		return []*accounts.Account{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end], nil
}
