package peercrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrappingKeyBasicGeneratesThenPersists(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Setup())

	key, err := wrappingKeyBasic(store)
	require.NoError(t, err)
	assert.Len(t, key, wrappingKeySize)

	again, err := wrappingKeyBasic(store)
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestWrappingKeyBasicRejectsBadLength(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Setup())
	require.NoError(t, store.Put(idWrappingKey, []byte{1, 2, 3}))

	_, err := wrappingKeyBasic(store)
	require.ErrorIs(t, err, ErrInvalidKeyFormat)
}

func TestWrappingKeyPassphraseDeterministicPerSalt(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Setup())

	key, err := wrappingKeyPassphrase(store, "s3cret")
	require.NoError(t, err)
	assert.Len(t, key, wrappingKeySize)

	again, err := wrappingKeyPassphrase(store, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestWrappingKeyPassphraseDiffersByPassphrase(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Setup())

	first, err := wrappingKeyPassphrase(store, "correct horse")
	require.NoError(t, err)

	second, err := wrappingKeyPassphrase(store, "wrong horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestWrappingKeyPassphraseNeverPersistsDerivedKey(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Setup())

	_, err := wrappingKeyPassphrase(store, "s3cret")
	require.NoError(t, err)

	ok, err := store.Has(idWrappingKey)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Has(idSalt)
	require.NoError(t, err)
	assert.True(t, ok)
}
