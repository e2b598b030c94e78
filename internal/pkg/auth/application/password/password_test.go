package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashMatches(t *testing.T) {
	Cost = bcrypt.MinCost

	hash, err := Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, Matches(hash, "hunter22"))
	assert.False(t, Matches(hash, "hunter23"))
	assert.False(t, Matches("not-a-hash", "hunter22"))
}
