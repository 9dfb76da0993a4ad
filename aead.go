package peercrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
)

// aeadSeal encrypts plaintext under key (32 bytes, AES-256-GCM) with a
// freshly drawn 12-byte nonce and empty associated data, returning
// nonce || ciphertext_with_tag.
func aeadSeal(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, encryptionFailed("generate nonce", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, len(nonce)+len(sealed))
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// aeadOpen splits envelope into its nonce and ciphertext_with_tag and
// authenticated-decrypts it under key. Any tag failure or short input
// surfaces as a decryption failure.
func aeadOpen(key, envelope []byte) ([]byte, error) {
	if len(envelope) < nonceSize {
		return nil, decryptionFailed("message too short", nil)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext := envelope[:nonceSize], envelope[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, decryptionFailed("authentication failed", err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, encryptionFailed("construct AES-256 cipher", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, encryptionFailed("construct GCM mode", err)
	}
	return gcm, nil
}
