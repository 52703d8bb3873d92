// Package token verifies identity tokens received from the OpenID Connect
// provider and projects them into a verified claim set.
package token

import (
	"context"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// issuer mismatch, audience mismatch, expiry, or a malformed token. Callers
// match it with errors.Is; the wrapped detail is for logs only.
var ErrInvalidToken = errors.New("invalid identity token")

const defaultLeeway = 5 * time.Minute

// KeySet checks a JWS signature and returns the verified payload. It matches
// the go-oidc KeySet interface, so a provider's remote JWKS and a static test
// key set both satisfy it.
type KeySet interface {
	VerifySignature(ctx context.Context, jwt string) (payload []byte, err error)
}

// VerifiedClaims is the validated projection of an identity token. It is
// consumed once per sign-in attempt and never persisted.
type VerifiedClaims struct {
	Subject string
	Issuer  string
	Name    string
	Email   string
	Raw     jwtlib.MapClaims
}

// Validator verifies identity tokens against a fixed issuer, audience, and key
// set. It is immutable after construction and safe for concurrent use.
type Validator struct {
	issuer   string
	audience string
	keys     KeySet
	leeway   time.Duration
	nowTime  func() time.Time
}

// ValidatorOption defines a function type to modify the Validator instance.
type ValidatorOption func(*Validator)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ValidatorOption {
	return func(v *Validator) {
		v.nowTime = nowFunc
	}
}

// WithLeeway overrides the default clock skew tolerance of 5 minutes.
func WithLeeway(leeway time.Duration) ValidatorOption {
	return func(v *Validator) {
		v.leeway = leeway
	}
}

// NewValidator initializes a Validator for the expected issuer and audience.
func NewValidator(issuer, audience string, keys KeySet, options ...ValidatorOption) (*Validator, error) {
	if issuer == "" {
		return nil, errors.New("[NewValidator] issuer is required")
	}
	if audience == "" {
		return nil, errors.New("[NewValidator] audience is required")
	}
	if keys == nil {
		return nil, errors.New("[NewValidator] key set is required")
	}

	validator := &Validator{
		issuer:   issuer,
		audience: audience,
		keys:     keys,
		leeway:   defaultLeeway,
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(validator)
	}

	return validator, nil
}

// Validate verifies the raw token's signature, issuer, audience, and expiry,
// returning the verified claim set. It performs no side effects and never
// touches the account store.
func (v *Validator) Validate(ctx context.Context, rawToken string) (*VerifiedClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.Wrap(ErrInvalidToken, "empty token")
	}

	// Signature first. The key set rejects unknown algorithms and key IDs.
	if _, err := v.keys.VerifySignature(ctx, rawToken); err != nil {
		return nil, errors.Wrapf(ErrInvalidToken, "signature verification failed: %v", err)
	}

	// The signature is verified, the claims can now be trusted once checked.
	unverified, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidToken, "malformed token: %v", err)
	}
	claims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrap(ErrInvalidToken, "error extracting claims")
	}

	if err := v.validateClaims(claims); err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	iss, _ := claims["iss"].(string)
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return &VerifiedClaims{
		Subject: sub,
		Issuer:  iss,
		Name:    name,
		Email:   email,
		Raw:     claims,
	}, nil
}

func (v *Validator) validateClaims(claims jwtlib.MapClaims) error {
	now := v.nowTime()

	iss, err := claims.GetIssuer()
	if err != nil || iss != v.issuer {
		return errors.Wrapf(ErrInvalidToken, "issuer mismatch: got %q, want %q", iss, v.issuer)
	}

	aud, err := claims.GetAudience()
	if err != nil {
		return errors.Wrap(ErrInvalidToken, "audience missing")
	}
	if !containsAudience(aud, v.audience) {
		return errors.Wrapf(ErrInvalidToken, "audience mismatch: got %v, want %q", []string(aud), v.audience)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return errors.Wrap(ErrInvalidToken, "expiry missing")
	}
	if now.After(exp.Add(v.leeway)) {
		return errors.Wrapf(ErrInvalidToken, "token expired at %s", exp.Time)
	}

	if nbf, err := claims.GetNotBefore(); err == nil && nbf != nil {
		if now.Add(v.leeway).Before(nbf.Time) {
			return errors.Wrapf(ErrInvalidToken, "token not valid before %s", nbf.Time)
		}
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return errors.Wrap(ErrInvalidToken, "subject missing")
	}

	return nil
}

func containsAudience(aud jwtlib.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
