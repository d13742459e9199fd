package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.NoError(t, h.Compare(hash, "password"))
	assert.ErrorIs(t, h.Compare(hash, "wrongpassword"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestBcryptHasherSaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("password")
	require.NoError(t, err)
	b, err := h.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
