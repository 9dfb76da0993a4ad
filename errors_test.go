package peercrypt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeerNotFoundErrorCarriesKindAndPeerID(t *testing.T) {
	err := peerNotFound("arcane")
	var pcErr *Error
	assert.True(t, errors.As(err, &pcErr))
	assert.Equal(t, KindPeerNotFound, pcErr.Kind)
	assert.Contains(t, err.Error(), "arcane")
}

func TestErrorIsDoesNotMatchDifferentKind(t *testing.T) {
	assert.False(t, errors.Is(ErrNotInitialized, ErrWrongPassword))
	assert.True(t, errors.Is(ErrNotInitialized, ErrNotInitialized))
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := storageError("persist identity", cause)
	assert.ErrorIs(t, err, cause)
}
