package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", digest)

	require.True(t, h.Verify("secret1", digest))
	require.False(t, h.Verify("wrong", digest))
}

func TestBcryptHasher_SaltsEveryDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, h.Verify("secret1", first))
	require.True(t, h.Verify("secret1", second))
}

func TestNewBcryptHasher_ClampsInvalidCost(t *testing.T) {
	h := NewBcryptHasher(99)

	digest, err := h.Hash("secret1")
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, mustCost(t, digest))
}

func mustCost(t *testing.T, digest string) int {
	t.Helper()
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	return cost
}
