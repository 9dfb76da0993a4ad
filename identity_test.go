package peercrypt

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateIdentityGeneratesThenPersists(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Setup())
	wrappingKey, err := wrappingKeyBasic(store)
	require.NoError(t, err)

	id, err := loadOrCreateIdentity(store, wrappingKey)
	require.NoError(t, err)
	require.NotNil(t, id)

	ok, err := store.Has(idIdentity)
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, err := loadOrCreateIdentity(store, wrappingKey)
	require.NoError(t, err)
	assert.Equal(t, id.public.Bytes(), reloaded.public.Bytes())
}

func TestLoadIdentityWrongWrappingKeyFails(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Setup())
	wrappingKey, err := wrappingKeyBasic(store)
	require.NoError(t, err)

	_, err = loadOrCreateIdentity(store, wrappingKey)
	require.NoError(t, err)

	other := make([]byte, wrappingKeySize)
	copy(other, wrappingKey)
	other[0] ^= 0xFF

	_, err = loadOrCreateIdentity(store, other)
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestExportPublicKeyRoundTripsThroughBase64(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Setup())
	wrappingKey, err := wrappingKeyBasic(store)
	require.NoError(t, err)

	id, err := loadOrCreateIdentity(store, wrappingKey)
	require.NoError(t, err)

	encoded := id.exportPublicKey()
	assert.NotEmpty(t, encoded)

	decoded, err := base64.URLEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, id.public.Bytes(), decoded)
}

func TestFingerprintShape(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Setup())
	wrappingKey, err := wrappingKeyBasic(store)
	require.NoError(t, err)

	id, err := loadOrCreateIdentity(store, wrappingKey)
	require.NoError(t, err)

	fingerprint := id.exportFingerprint()
	assert.Len(t, fingerprint, 39)
	assert.Equal(t, 7, countSpaces(fingerprint))
}

func countSpaces(s string) int {
	n := 0
	for _, r := range s {
		if r == ' ' {
			n++
		}
	}
	return n
}
