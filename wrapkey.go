package peercrypt

import (
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// wrappingKeyBasic draws 32 random bytes on first use and persists them
// under idWrappingKey; subsequent calls load the same bytes back. This
// trades rest-confidentiality of the wrapping key for unattended startup.
func wrappingKeyBasic(store Store) ([]byte, error) {
	data, ok, err := store.Get(idWrappingKey)
	if err != nil {
		return nil, storageError("load wrapping key", err)
	}

	if ok {
		if len(data) != wrappingKeySize {
			return nil, invalidKeyFormat("wrapping key must be 32 bytes")
		}
		return data, nil
	}

	key := make([]byte, wrappingKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, encryptionFailed("generate wrapping key", err)
	}
	if err := store.Put(idWrappingKey, key); err != nil {
		return nil, storageError("persist wrapping key", err)
	}
	return key, nil
}

// wrappingKeyPassphrase derives a 32-byte wrapping key from passphrase and
// a salt that is generated once and persisted under idSalt. The derived
// key itself is never persisted; it must be re-derived on every Init.
func wrappingKeyPassphrase(store Store, passphrase string) ([]byte, error) {
	salt, ok, err := store.Get(idSalt)
	if err != nil {
		return nil, storageError("load salt", err)
	}

	if !ok {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, encryptionFailed("generate salt", err)
		}
		// The salt is public; persisting it before the passphrase has ever
		// been verified is harmless, but it does let a Store observer
		// infer that this instance uses passphrase mode.
		if err := store.Put(idSalt, salt); err != nil {
			return nil, storageError("persist salt", err)
		}
	} else if len(salt) != saltSize {
		return nil, invalidKeyFormat("salt must be 32 bytes")
	}

	return pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, wrappingKeySize, sha256.New), nil
}
