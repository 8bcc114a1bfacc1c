package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairingCode(t *testing.T) {
	hash, err := HashPairingCode("4711")
	require.NoError(t, err)
	assert.NotEqual(t, "4711", hash)

	assert.True(t, CheckPairingCode("4711", hash))
	assert.False(t, CheckPairingCode("4712", hash))
	assert.False(t, CheckPairingCode("4711", "not-a-hash"))
}
