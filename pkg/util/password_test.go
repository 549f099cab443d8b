package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2!", hash)

	assert.True(t, CheckPassword("hunter2!", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("hunter2!", "not-a-hash"))
}
