package flowstate

import (
	"errors"
	"sync"
	"time"
)

// ErrStateNotFound is returned for unknown or expired state parameters.
var ErrStateNotFound = errors.New("login state not found")

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface. States older than the TTL are treated as not found and reaped
// opportunistically on writes.
type InMemoryRepo struct {
	mu      sync.RWMutex
	states  map[string]*LoginState
	ttl     time.Duration
	nowTime func() time.Time
}

// NewInMemoryRepo creates an in-memory login state repository whose entries
// expire after ttl.
func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		states:  make(map[string]*LoginState),
		ttl:     ttl,
		nowTime: time.Now,
	}
}

func (r *InMemoryRepo) Upsert(state string, loginState *LoginState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if loginState == nil {
		return errors.New("loginState cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reapExpiredLocked()

	// Store a copy to prevent external modification
	r.states[state] = &LoginState{
		Nonce:     loginState.Nonce,
		ReturnURL: loginState.ReturnURL,
		CreatedAt: loginState.CreatedAt,
	}
	return nil
}

func (r *InMemoryRepo) Get(state string) (*LoginState, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	loginState, exists := r.states[state]
	if !exists || r.expired(loginState) {
		return nil, ErrStateNotFound
	}

	return &LoginState{
		Nonce:     loginState.Nonce,
		ReturnURL: loginState.ReturnURL,
		CreatedAt: loginState.CreatedAt,
	}, nil
}

func (r *InMemoryRepo) Delete(state string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, state)
	return nil
}

func (r *InMemoryRepo) expired(loginState *LoginState) bool {
	return r.nowTime().Sub(loginState.CreatedAt) > r.ttl
}

func (r *InMemoryRepo) reapExpiredLocked() {
	for state, loginState := range r.states {
		if r.expired(loginState) {
			delete(r.states, state)
		}
	}
}
