// Package signin resolves a verified claim set to a local administrator
// account. This is the trust boundary between the identity provider and the
// admin console: provider claims identify the subject, but only the locally
// stored role is authoritative for authorization.
package signin

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
	"github.com/nikthechampiongr/SS14.Admin/token"
)

// Resolver maps verified claims to administrator accounts and decides whether
// the subject may sign in.
type Resolver struct {
	repo          accounts.Repo
	autoProvision bool
	defaultRole   accounts.RoleType
	nowTime       func() time.Time
}

// ResolverOption defines a function type to modify the Resolver instance.
type ResolverOption func(*Resolver)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.nowTime = nowFunc
	}
}

// WithAutoProvision enables creating a new account with the given
// lowest-privilege role on first successful sign-in. Off by default; absent
// explicit operator intent, unknown subjects are denied.
func WithAutoProvision(defaultRole accounts.RoleType) ResolverOption {
	return func(r *Resolver) {
		r.autoProvision = true
		r.defaultRole = defaultRole
	}
}

// NewResolver initializes a Resolver over the given account store.
func NewResolver(repo accounts.Repo, options ...ResolverOption) (*Resolver, error) {
	if repo == nil {
		return nil, errors.New("[NewResolver] account repo is required")
	}

	resolver := &Resolver{
		repo:    repo,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(resolver)
	}

	if resolver.autoProvision && !resolver.defaultRole.Valid() {
		return nil, errors.New("[NewResolver] auto-provision default role is invalid")
	}

	return resolver, nil
}

// Resolve looks up the account for the verified subject and decides whether
// sign-in may proceed. On success it best-effort updates the last-seen
// timestamp and returns the account carrying the authoritative role snapshot.
func (r *Resolver) Resolve(ctx context.Context, claims *token.VerifiedClaims) (*accounts.Account, error) {
	if claims == nil || claims.Subject == "" {
		return nil, errors.New("[Resolver.Resolve] verified claims with subject are required")
	}

	account, err := r.repo.GetBySubject(ctx, claims.Subject)
	switch {
	case errors.Is(err, accounts.ErrAccountNotFound):
		if !r.autoProvision {
			return nil, errors.Wrapf(ErrUnknownSubject, "subject %q", claims.Subject)
		}
		return r.provision(ctx, claims)
	case err != nil:
		return nil, errors.Wrap(ErrStoreUnavailable, err.Error())
	}

	if account.Disabled {
		return nil, errors.Wrapf(ErrAccountDisabled, "subject %q", claims.Subject)
	}

	// Best effort: a failure to record last-seen must not fail the sign-in.
	seenAt := r.nowTime()
	if err := r.repo.TouchLastSeen(ctx, claims.Subject, seenAt); err != nil {
		log.Warn().Err(err).Str("subject", claims.Subject).Msg("failed to update last-seen")
	} else {
		account.LastSeen = seenAt
	}

	return account, nil
}

// provision creates a new account with the configured default role. Upsert
// semantics at the store make concurrent first sign-ins for the same subject
// converge on a single row.
func (r *Resolver) provision(ctx context.Context, claims *token.VerifiedClaims) (*accounts.Account, error) {
	now := r.nowTime()
	account := &accounts.Account{
		Subject:     claims.Subject,
		DisplayName: displayName(claims),
		Role:        r.defaultRole,
		LastSeen:    now,
		CreatedAt:   now,
	}

	if err := r.repo.Upsert(ctx, account); err != nil {
		return nil, errors.Wrap(ErrStoreUnavailable, err.Error())
	}

	log.Info().Str("subject", account.Subject).Str("role", string(account.Role)).
		Msg("auto-provisioned administrator account")
	return account, nil
}

func displayName(claims *token.VerifiedClaims) string {
	if claims.Name != "" {
		return claims.Name
	}
	if claims.Email != "" {
		return claims.Email
	}
	return claims.Subject
}
