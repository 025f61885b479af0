package idgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureIDFormat(t *testing.T) {
	id, err := GenerateSecureID("user", 24)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^user_[0-9a-z]{24}$`), id)

	other, err := GenerateSecureID("user", 24)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestFingerprintIsStable(t *testing.T) {
	a := Fingerprint("token-a")
	assert.Equal(t, a, Fingerprint("token-a"))
	assert.NotEqual(t, a, Fingerprint("token-b"))
	assert.Len(t, a, 64)
}
