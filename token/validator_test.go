package token_test

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/nikthechampiongr/SS14.Admin/token"
)

const (
	testIssuer   = "https://auth.example.com"
	testAudience = "ss14-admin-console"
	testSubject  = "admin-42"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type validatorFixture struct {
	key       *rsa.PrivateKey
	validator *token.Validator
}

func setupValidator(t *testing.T) *validatorFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}}
	validator, err := token.NewValidator(testIssuer, testAudience, keySet,
		token.WithNowTime(func() time.Time { return testNow }))
	require.NoError(t, err)

	return &validatorFixture{key: key, validator: validator}
}

func (f *validatorFixture) baseClaims() jwtlib.MapClaims {
	return jwtlib.MapClaims{
		"iss":   testIssuer,
		"aud":   testAudience,
		"sub":   testSubject,
		"name":  "Admin Forty-Two",
		"email": "admin42@example.com",
		"iat":   testNow.Unix(),
		"exp":   testNow.Add(5 * time.Minute).Unix(),
	}
}

func (f *validatorFixture) sign(t *testing.T, key *rsa.PrivateKey, claims jwtlib.MapClaims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestValidator_Validate(t *testing.T) {
	f := setupValidator(t)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		claims, err := f.validator.Validate(ctx, f.sign(t, f.key, f.baseClaims()))
		require.NoError(t, err)
		require.Equal(t, testSubject, claims.Subject)
		require.Equal(t, testIssuer, claims.Issuer)
		require.Equal(t, "Admin Forty-Two", claims.Name)
		require.Equal(t, "admin42@example.com", claims.Email)
	})

	t.Run("audience as array", func(t *testing.T) {
		c := f.baseClaims()
		c["aud"] = []string{"other-client", testAudience}
		claims, err := f.validator.Validate(ctx, f.sign(t, f.key, c))
		require.NoError(t, err)
		require.Equal(t, testSubject, claims.Subject)
	})

	t.Run("invalid signature", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, err = f.validator.Validate(ctx, f.sign(t, otherKey, f.baseClaims()))
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		c := f.baseClaims()
		c["iss"] = "https://evil.example.com"
		_, err := f.validator.Validate(ctx, f.sign(t, f.key, c))
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		c := f.baseClaims()
		c["aud"] = "some-other-client"
		_, err := f.validator.Validate(ctx, f.sign(t, f.key, c))
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("expired beyond leeway", func(t *testing.T) {
		c := f.baseClaims()
		c["exp"] = testNow.Add(-6 * time.Minute).Unix()
		_, err := f.validator.Validate(ctx, f.sign(t, f.key, c))
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("expired within leeway", func(t *testing.T) {
		c := f.baseClaims()
		c["exp"] = testNow.Add(-2 * time.Minute).Unix()
		_, err := f.validator.Validate(ctx, f.sign(t, f.key, c))
		require.NoError(t, err)
	})

	t.Run("expiry missing", func(t *testing.T) {
		c := f.baseClaims()
		delete(c, "exp")
		_, err := f.validator.Validate(ctx, f.sign(t, f.key, c))
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("subject missing", func(t *testing.T) {
		c := f.baseClaims()
		delete(c, "sub")
		_, err := f.validator.Validate(ctx, f.sign(t, f.key, c))
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := f.validator.Validate(ctx, "not-a-jwt")
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := f.validator.Validate(ctx, "")
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})
}

func TestNewValidator_RequiredParameters(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}}

	_, err = token.NewValidator("", testAudience, keySet)
	require.Error(t, err)

	_, err = token.NewValidator(testIssuer, "", keySet)
	require.Error(t, err)

	_, err = token.NewValidator(testIssuer, testAudience, nil)
	require.Error(t, err)
}
