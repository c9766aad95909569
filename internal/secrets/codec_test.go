package secrets

import (
	"testing"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs_VerifyMatchesOnlyOriginal(t *testing.T) {
	key := cryptox.GenerateKey()

	for _, policy := range []string{PolicyPlaintext, PolicyEncrypted, PolicyHashed} {
		t.Run(policy, func(t *testing.T) {
			c, err := New(policy, key)
			require.NoError(t, err)

			stored, err := c.Encode([]byte("pw1"))
			require.NoError(t, err)

			ok, err := c.Verify(stored, []byte("pw1"))
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = c.Verify(stored, []byte("pw2"))
			require.NoError(t, err)
			assert.False(t, ok)

			ok, err = c.Verify(stored, []byte(""))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPlaintext_StoresVerbatim(t *testing.T) {
	stored, err := Plaintext{}.Encode([]byte("pw1"))
	require.NoError(t, err)
	assert.Equal(t, "pw1", string(stored))
}

func TestEncrypted_DoesNotStoreVerbatim(t *testing.T) {
	c, err := NewEncrypted(cryptox.GenerateKey())
	require.NoError(t, err)

	stored, err := c.Encode([]byte("pw1"))
	require.NoError(t, err)
	assert.NotContains(t, string(stored), "pw1")
}

func TestEncrypted_KeyMismatchIsFatal(t *testing.T) {
	c1, err := NewEncrypted(cryptox.GenerateKey())
	require.NoError(t, err)
	c2, err := NewEncrypted(cryptox.GenerateKey())
	require.NoError(t, err)

	stored, err := c1.Encode([]byte("pw1"))
	require.NoError(t, err)

	ok, err := c2.Verify(stored, []byte("pw1"))
	require.ErrorIs(t, err, common.ErrorKeyMissing)
	assert.False(t, ok)
}

func TestNewEncrypted_BadKey(t *testing.T) {
	_, err := NewEncrypted(nil)
	require.ErrorIs(t, err, common.ErrorKeyMissing)
}

func TestNew_UnknownPolicy(t *testing.T) {
	_, err := New("rot13", nil)
	require.Error(t, err)
}
