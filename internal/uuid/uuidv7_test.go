package uuid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	t.Run("returns version 7", func(t *testing.T) {
		parsed, err := googleuuid.Parse(New())
		require.NoError(t, err)
		assert.Equal(t, googleuuid.Version(7), parsed.Version())
	})

	t.Run("unique within the same millisecond", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for i := 0; i < 1000; i++ {
			id := New()
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %s", id)
			seen[id] = struct{}{}
		}
	})
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(New()))
	assert.False(t, IsValid("not-a-uuid"))
	assert.False(t, IsValid(""))
}
