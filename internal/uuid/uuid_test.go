package uuid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		assert.True(t, IsValid(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("0d1f8a3e-0f4c-4a6e-9a1d-3b2f8c7d6e5f"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("not-a-uuid"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(New()))
	assert.Error(t, Validate("nope"))
}
