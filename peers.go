package peercrypt

import (
	"crypto/ecdh"
	"encoding/base64"
	"encoding/json"
)

// storedPeerKey is the JSON record persisted under a caller's peer id.
// Field names are part of the wire format and must not change. Unlike
// storedIdentity, there is no public-key field: the peer's public key is
// not stored, only the derived shared secret.
type storedPeerKey struct {
	EncryptedKey []byte `json:"encrypted_key"`
	Nonce        []byte `json:"nonce"`
}

// peerRegistry derives, caches, and persists pairwise ECDH shared secrets.
type peerRegistry struct {
	store       Store
	identity    *identity
	wrappingKey []byte
	cache       map[string][]byte
}

func newPeerRegistry(store Store, id *identity, wrappingKey []byte) *peerRegistry {
	return &peerRegistry{
		store:       store,
		identity:    id,
		wrappingKey: wrappingKey,
		cache:       make(map[string][]byte),
	}
}

// register derives the ECDH shared secret for remotePublicB64 and persists
// it under peerID. If peerID is already registered, this is a no-op: no
// re-derivation, no rewrite of the persisted record.
func (r *peerRegistry) register(peerID, remotePublicB64 string) error {
	if isReservedID(peerID) {
		return invalidKeyFormat("peer id is reserved")
	}

	has, err := r.store.Has(peerID)
	if err != nil {
		return storageError("check peer id", err)
	}
	if has {
		return nil
	}

	raw, err := base64.URLEncoding.DecodeString(remotePublicB64)
	if err != nil {
		return invalidKeyFormat("malformed base64 public key")
	}

	remotePub, err := ecdh.P256().NewPublicKey(raw)
	if err != nil {
		return invalidKeyFormat("malformed remote public key")
	}

	// Raw X coordinate, no KDF: this is deliberate and must not be
	// "improved" with a post-processing hash, or ciphertexts from
	// interoperating implementations stop decrypting.
	shared, err := r.identity.private.ECDH(remotePub)
	if err != nil {
		return invalidKeyFormat("ecdh derivation failed")
	}

	envelope, err := aeadSeal(r.wrappingKey, shared)
	if err != nil {
		wipe(shared)
		return err
	}

	rec := storedPeerKey{
		Nonce:        envelope[:nonceSize],
		EncryptedKey: envelope[nonceSize:],
	}
	blob, err := json.Marshal(rec)
	if err != nil {
		wipe(shared)
		return storageError("serialize peer record", err)
	}
	if err := r.store.Put(peerID, blob); err != nil {
		wipe(shared)
		return storageError("persist peer key", err)
	}

	r.cache[peerID] = shared
	return nil
}

// remove evicts peerID from the cache and deletes its persisted record.
// A missing peerID is not an error.
func (r *peerRegistry) remove(peerID string) error {
	if key, ok := r.cache[peerID]; ok {
		wipe(key)
		delete(r.cache, peerID)
	}
	if err := r.store.Delete(peerID); err != nil {
		return storageError("delete peer key", err)
	}
	return nil
}

// has delegates to the Store: persistence is authoritative, not the cache.
func (r *peerRegistry) has(peerID string) (bool, error) {
	ok, err := r.store.Has(peerID)
	if err != nil {
		return false, storageError("check peer id", err)
	}
	return ok, nil
}

// clearCache drops all cached shared secrets, wiping them first. Persisted
// records are untouched; the next key() call for a peer reloads from Store.
func (r *peerRegistry) clearCache() {
	for id, key := range r.cache {
		wipe(key)
		delete(r.cache, id)
	}
}

// key resolves the shared secret for peerID, hydrating from Store on a
// cache miss.
func (r *peerRegistry) key(peerID string) ([]byte, error) {
	if key, ok := r.cache[peerID]; ok {
		return key, nil
	}

	data, ok, err := r.store.Get(peerID)
	if err != nil {
		return nil, storageError("load peer key", err)
	}
	if !ok {
		return nil, peerNotFound(peerID)
	}

	var rec storedPeerKey
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, storageError("parse peer record", err)
	}
	if len(rec.Nonce) != nonceSize {
		return nil, invalidKeyFormat("peer nonce must be 12 bytes")
	}

	envelope := make([]byte, 0, len(rec.Nonce)+len(rec.EncryptedKey))
	envelope = append(envelope, rec.Nonce...)
	envelope = append(envelope, rec.EncryptedKey...)

	shared, err := aeadOpen(r.wrappingKey, envelope)
	if err != nil {
		return nil, decryptionFailed("peer key unwrap failed", err)
	}

	r.cache[peerID] = shared
	return shared, nil
}
