package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID("user")
	assert.True(t, strings.HasPrefix(id, "user_"))

	parts := strings.Split(id, "_")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[2], 6)
}

func TestNewIDDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID("test")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
