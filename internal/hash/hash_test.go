package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", h)

	assert.True(t, CheckPassword(h, "s3cret"))
	assert.False(t, CheckPassword(h, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}
