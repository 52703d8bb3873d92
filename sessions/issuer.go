package sessions

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
)

// ErrSessionInvalid is returned when a session credential is expired, has a
// bad signature, or is malformed.
var ErrSessionInvalid = errors.New("invalid session")

// DefaultLifetime is how long a session stays valid after issuance. There is
// no sliding renewal; a fresh sign-in issues a fresh session.
const DefaultLifetime = 1 * time.Hour

// Issuer creates and validates session credentials with a process-wide HMAC
// signing key. The key is loaded once at construction and never mutated.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
	nowTime  func() time.Time
}

// IssuerOption defines a function type to modify the Issuer instance.
type IssuerOption func(*Issuer)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowTime = nowFunc
	}
}

// WithLifetime overrides the default session lifetime of 1 hour.
func WithLifetime(lifetime time.Duration) IssuerOption {
	return func(i *Issuer) {
		i.lifetime = lifetime
	}
}

// NewIssuer initializes an Issuer with the given signing secret.
func NewIssuer(secret string, options ...IssuerOption) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("[NewIssuer] signing secret is required")
	}

	issuer := &Issuer{
		secret:   []byte(secret),
		lifetime: DefaultLifetime,
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(issuer)
	}

	if issuer.lifetime <= 0 {
		return nil, errors.New("[NewIssuer] lifetime must be greater than zero")
	}

	return issuer, nil
}

// Lifetime returns the configured session lifetime.
func (i *Issuer) Lifetime() time.Duration {
	return i.lifetime
}

// Issue creates a signed session credential for the account, carrying the
// minimal claims the authorization gate needs.
func (i *Issuer) Issue(account *accounts.Account) (string, *Session, error) {
	if account == nil || account.Subject == "" {
		return "", nil, errors.New("[Issuer.Issue] account with subject is required")
	}

	now := i.nowTime()
	session := &Session{
		ID:        uuid.New().String(),
		Subject:   account.Subject,
		Name:      account.DisplayName,
		Role:      account.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.lifetime),
	}

	claims := sessionClaims{
		Role: string(session.Role),
		Name: session.Name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   session.Subject,
			ID:        session.ID,
			IssuedAt:  jwtlib.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwtlib.NewNumericDate(session.ExpiresAt),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "[Issuer.Issue] failed to sign session")
	}
	return signed, session, nil
}

// Validate parses and verifies a session credential. It fails with
// ErrSessionInvalid when the signature does not verify or the session has
// expired. Sessions are minted locally, so no clock skew leeway is applied.
func (i *Issuer) Validate(rawSession string) (*Session, error) {
	if strings.TrimSpace(rawSession) == "" {
		return nil, errors.Wrap(ErrSessionInvalid, "empty session")
	}

	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(sessionIssuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(i.nowTime),
	)

	parsed, err := parser.ParseWithClaims(rawSession, &sessionClaims{}, func(t *jwtlib.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		return nil, errors.Wrapf(ErrSessionInvalid, "parse failed: %v", err)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.Wrap(ErrSessionInvalid, "claims invalid")
	}

	role := accounts.RoleType(claims.Role)
	if !role.Valid() {
		return nil, errors.Wrapf(ErrSessionInvalid, "unknown role %q", claims.Role)
	}
	if claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, errors.Wrap(ErrSessionInvalid, "required claims missing")
	}

	return &Session{
		ID:        claims.ID,
		Subject:   claims.Subject,
		Name:      claims.Name,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
