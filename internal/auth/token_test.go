package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(secret string) *TokenManager {
	return NewTokenManager(TokenConfig{Secret: secret, TTL: time.Hour})
}

func TestIssueThenValidate(t *testing.T) {
	tm := newTestTokenManager("super-secret")

	tok, exp, err := tm.Issue(42, "jane@example.com", "Jane")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
	assert.Len(t, strings.Split(tok, "."), 3)

	claims, err := tm.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane", claims.Name)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestDefaultTTLIsSixtyMinutes(t *testing.T) {
	tm := NewTokenManager(TokenConfig{Secret: "k"})
	assert.Equal(t, 60*time.Minute, tm.ttl)
}

func TestValidateExpired(t *testing.T) {
	tm := newTestTokenManager("secret")
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, _, err := tm.Issue(1, "a@example.com", "A")
	require.NoError(t, err)

	_, err = newTestTokenManager("secret").Validate(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	tok, _, err := newTestTokenManager("right-secret").Issue(1, "a@example.com", "A")
	require.NoError(t, err)

	_, err = newTestTokenManager("wrong-secret").Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateTamperedPayload(t *testing.T) {
	tm := newTestTokenManager("secret")

	original, _, err := tm.Issue(1, "user@example.com", "User")
	require.NoError(t, err)
	forged, _, err := tm.Issue(2, "admin@example.com", "Admin")
	require.NoError(t, err)

	o := strings.Split(original, ".")
	f := strings.Split(forged, ".")
	tampered := strings.Join([]string{o[0], f[1], o[2]}, ".")

	_, err = tm.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		Email: "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = newTestTokenManager("secret").Validate(none)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = newTestTokenManager("secret").Validate(hs512)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateMalformed(t *testing.T) {
	tm := newTestTokenManager("secret")

	for _, tok := range []string{"", "not-a-jwt", "not.a.jwt", "a.b"} {
		_, err := tm.Validate(tok)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", tok)
	}
}

func TestValidateRequiresExpiry(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestTokenManager("secret").Validate(tok)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestValidateRequiresSubject(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestTokenManager("secret").Validate(tok)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestClaimsUserIDMalformed(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	assert.ErrorIs(t, err, ErrMalformedToken)
}
