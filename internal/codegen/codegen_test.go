package codegen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	s, err := String(100, "ab")
	require.NoError(t, err)
	assert.Len(t, s, 100)
	assert.Empty(t, strings.Trim(s, "ab"))

	s, err = String(0, "ab")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = String(5, "a")
	require.ErrorIs(t, err, ErrCharset)
}

func TestToken(t *testing.T) {
	seen := map[string]bool{}

	for range 50 {
		tok, err := Token()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Za-z0-9]{32}$`, tok)
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}

func TestDiscountCode(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}$`)

	for range 20 {
		code, err := DiscountCode()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "I")
	}
}
