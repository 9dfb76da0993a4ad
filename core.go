// Package peercrypt implements end-to-end encrypted messaging between
// peers identified by long-lived P-256 identities. Each Core owns a
// persistent identity; pairwise symmetric keys are derived via ECDH from
// the local private key and a registered peer's public key, cached in
// memory, and persisted wrapped under a local symmetric key that is
// either random (basic mode) or stretched from a passphrase (passphrase
// mode, PBKDF2-HMAC-SHA-256, 600,000 iterations).
//
// There is deliberately no forward secrecy (keys are long-lived, no
// ratchet), no message ordering or replay detection, and no group
// messaging. A Core is single-owner and not safe for concurrent use from
// multiple goroutines; callers that need that must serialize access
// themselves.
package peercrypt

import (
	"encoding/base64"
	"unicode/utf8"
)

// Core is the cryptographic state machine: one persistent identity, a
// wrapping key, and a cache of peer shared secrets, all backed by a
// single Store.
type Core struct {
	store       Store
	wrappingKey []byte
	identity    *identity
	peers       *peerRegistry
	initialized bool
}

// New returns an uninitialized Core backed by store. Call Init before any
// other method.
func New(store Store) *Core {
	return &Core{store: store}
}

// Init transitions the Core from Uninitialized to Initialized. Passing an
// empty passphrase selects basic mode (a random wrapping key, persisted in
// the clear under the Store); a non-empty passphrase selects passphrase
// mode (the wrapping key is stretched from it and never persisted).
//
// Init is idempotent: calling it again on an already-Initialized Core
// succeeds as a no-op, even with a different passphrase argument.
func (c *Core) Init(passphrase string) error {
	if c.initialized {
		return nil
	}

	if err := c.store.Setup(); err != nil {
		return storageError("setup store", err)
	}

	var wrappingKey []byte
	var err error
	if passphrase == "" {
		wrappingKey, err = wrappingKeyBasic(c.store)
	} else {
		wrappingKey, err = wrappingKeyPassphrase(c.store, passphrase)
	}
	if err != nil {
		return err
	}

	id, err := loadOrCreateIdentity(c.store, wrappingKey)
	if err != nil {
		wipe(wrappingKey)
		return err
	}

	c.wrappingKey = wrappingKey
	c.identity = id
	c.peers = newPeerRegistry(c.store, id, wrappingKey)
	c.initialized = true
	return nil
}

// Ready reports whether Init has completed successfully.
func (c *Core) Ready() bool {
	return c.initialized
}

func (c *Core) requireInitialized() error {
	if !c.initialized {
		return ErrNotInitialized
	}
	return nil
}

// ExportPublicKey returns this identity's SEC1 uncompressed public key,
// base64url-encoded with padding.
func (c *Core) ExportPublicKey() (string, error) {
	if err := c.requireInitialized(); err != nil {
		return "", err
	}
	return c.identity.exportPublicKey(), nil
}

// ExportFingerprint returns a 39-character human-comparable fingerprint:
// the first 16 bytes of SHA-256(public key), as 8 groups of 4 uppercase
// hex digits separated by single spaces.
func (c *Core) ExportFingerprint() (string, error) {
	if err := c.requireInitialized(); err != nil {
		return "", err
	}
	return c.identity.exportFingerprint(), nil
}

// RegisterPeer derives and caches the ECDH shared secret between this
// identity and remotePublicB64, and persists it wrapped under peerID. If
// peerID is already registered this is a no-op.
//
// peerID must not be one of the reserved ids "identity", "salt",
// "wrapping-key".
func (c *Core) RegisterPeer(peerID, remotePublicB64 string) error {
	if err := c.requireInitialized(); err != nil {
		return err
	}
	return c.peers.register(peerID, remotePublicB64)
}

// RemovePeer evicts peerID from the cache and deletes its persisted
// record. A missing peerID is not an error.
func (c *Core) RemovePeer(peerID string) error {
	if err := c.requireInitialized(); err != nil {
		return err
	}
	return c.peers.remove(peerID)
}

// HasPeer reports whether peerID has a persisted record. Persistence is
// authoritative, not the in-memory cache.
func (c *Core) HasPeer(peerID string) (bool, error) {
	if err := c.requireInitialized(); err != nil {
		return false, err
	}
	return c.peers.has(peerID)
}

// ClearCache drops and wipes all cached peer shared secrets, forcing the
// next encrypt/decrypt call for each peer to reload from the Store.
// Persisted records are untouched.
func (c *Core) ClearCache() error {
	if err := c.requireInitialized(); err != nil {
		return err
	}
	c.peers.clearCache()
	return nil
}

// EncryptText authenticated-encrypts the UTF-8 bytes of plaintext under
// peerID's shared key with a fresh nonce, returning the base64url-encoded
// (with padding) wire form nonce || ciphertext_with_tag.
func (c *Core) EncryptText(plaintext, peerID string) (string, error) {
	if err := c.requireInitialized(); err != nil {
		return "", err
	}

	key, err := c.peers.key(peerID)
	if err != nil {
		return "", err
	}

	envelope, err := aeadSeal(key, []byte(plaintext))
	if err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(envelope), nil
}

// DecryptText reverses EncryptText.
func (c *Core) DecryptText(b64, peerID string) (string, error) {
	if err := c.requireInitialized(); err != nil {
		return "", err
	}

	key, err := c.peers.key(peerID)
	if err != nil {
		return "", err
	}

	envelope, err := base64.URLEncoding.DecodeString(b64)
	if err != nil {
		return "", decryptionFailed("invalid base64", err)
	}

	plaintext, err := aeadOpen(key, envelope)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", decryptionFailed("invalid UTF-8", nil)
	}
	return string(plaintext), nil
}

// EncryptBytes is the same envelope as EncryptText, without base64
// framing, suitable for file I/O.
func (c *Core) EncryptBytes(data []byte, peerID string) ([]byte, error) {
	if err := c.requireInitialized(); err != nil {
		return nil, err
	}

	key, err := c.peers.key(peerID)
	if err != nil {
		return nil, err
	}

	return aeadSeal(key, data)
}

// DecryptBytes reverses EncryptBytes.
func (c *Core) DecryptBytes(envelope []byte, peerID string) ([]byte, error) {
	if err := c.requireInitialized(); err != nil {
		return nil, err
	}

	key, err := c.peers.key(peerID)
	if err != nil {
		return nil, err
	}

	return aeadOpen(key, envelope)
}

// Close wipes the in-memory wrapping key and all cached peer shared
// secrets. It does not touch persisted Store state. The crypto/ecdh
// private key underlying the identity has no exported raw buffer to wipe
// (the standard library keeps it opaque), so it cannot be scrubbed from
// this package; callers that need that guarantee should not keep a Core
// alive longer than necessary.
func (c *Core) Close() {
	if c.wrappingKey != nil {
		wipe(c.wrappingKey)
	}
	if c.peers != nil {
		c.peers.clearCache()
	}
	c.initialized = false
}
