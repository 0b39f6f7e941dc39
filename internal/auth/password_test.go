package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	for _, password := range []string{"secret", "abc123", "çãõ-ü", " spaced out "} {
		hashed, err := hasher.Hash(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hashed)
		assert.True(t, hasher.Verify(password, hashed), "password %q should verify", password)
		assert.False(t, hasher.Verify(password+"x", hashed), "password %q must not match a neighbour", password)
	}
}

func TestPasswordHasherSaltsEachHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret")
	require.NoError(t, err)
	second, err := hasher.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	cost, err := bcrypt.Cost([]byte(first))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestPasswordHasherMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, hasher.Verify("secret", ""))
	assert.False(t, hasher.Verify("secret", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("secret", "$2a$04$short"))
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}
