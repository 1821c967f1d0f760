package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	s := NewStore(keyring.NewArrayKeyring(nil))

	require.NoError(t, s.Set(APIKeyName, "sk-123"))
	got, err := s.Get(APIKeyName)
	require.NoError(t, err)
	assert.Equal(t, "sk-123", got)

	require.NoError(t, s.Delete(APIKeyName))
	_, err = s.Get(APIKeyName)
	assert.ErrorIs(t, err, keyring.ErrKeyNotFound)
}

func TestAPIKey_EnvWins(t *testing.T) {
	t.Setenv(APIKeyEnv, " sk-env ")
	s := NewStore(keyring.NewArrayKeyring([]keyring.Item{{Key: APIKeyName, Data: []byte("sk-ring")}}))

	key, err := APIKey(s)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", key)
}

func TestAPIKey_FallsBackToKeyring(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	s := NewStore(keyring.NewArrayKeyring([]keyring.Item{{Key: APIKeyName, Data: []byte("sk-ring\n")}}))

	key, err := APIKey(s)
	require.NoError(t, err)
	assert.Equal(t, "sk-ring", key)
}

func TestAPIKey_MissingIsEmpty(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	key, err := APIKey(NewStore(keyring.NewArrayKeyring(nil)))
	require.NoError(t, err)
	assert.Empty(t, key)

	key, err = APIKey(nil)
	require.NoError(t, err)
	assert.Empty(t, key)
}
