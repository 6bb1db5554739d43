package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordVault_HashAndVerify(t *testing.T) {
	vault := NewPasswordVault()

	digest, err := vault.Hash("s3cret-пароль")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, vault.Verify("s3cret-пароль", digest))
	assert.False(t, vault.Verify("wrong", digest))
}

func TestPasswordVault_SaltedDigestsDiffer(t *testing.T) {
	vault := NewPasswordVault()

	first, err := vault.Hash("same-secret")
	require.NoError(t, err)
	second, err := vault.Hash("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, vault.Verify("same-secret", first))
	assert.True(t, vault.Verify("same-secret", second))
}

func TestPasswordVault_MalformedDigest(t *testing.T) {
	vault := NewPasswordVault()

	assert.False(t, vault.Verify("anything", "not-a-bcrypt-digest"))
	assert.False(t, vault.Verify("anything", ""))
}

func TestPasswordVault_OverlongSecret(t *testing.T) {
	vault := NewPasswordVault()

	_, err := vault.Hash(strings.Repeat("x", 100))
	assert.Error(t, err)
}
