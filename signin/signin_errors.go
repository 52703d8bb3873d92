package signin

import "errors"

var (
	// ErrUnknownSubject means no account matches the verified subject and
	// auto-provisioning is off. Surfaced to the user as access denied.
	ErrUnknownSubject = errors.New("unknown subject")

	// ErrAccountDisabled means the matching account exists but has been
	// disabled by an operator. Sign-in never proceeds, regardless of role.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrStoreUnavailable means the account store could not be reached.
	// Sign-in fails closed.
	ErrStoreUnavailable = errors.New("account store unavailable")
)
