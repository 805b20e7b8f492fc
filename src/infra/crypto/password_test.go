package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse")

	assert.NoError(t, h.Compare(hash, "correct horse battery staple"))
	assert.Error(t, h.Compare(hash, "wrong password"))
}

func TestBcryptHasher_HashesDiffer(t *testing.T) {
	h := NewBcryptHasher()

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	// bcrypt salts every hash.
	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_CompareDummyDoesNotPanic(t *testing.T) {
	h := NewBcryptHasher()
	h.CompareDummy("anything")
}
