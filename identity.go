package peercrypt

import (
	"bytes"
	"crypto/ecdh"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// storedIdentity is the JSON record persisted under idIdentity. Field names
// are part of the wire format and must not change.
type storedIdentity struct {
	PublicKey           []byte `json:"public_key"`
	EncryptedPrivateKey []byte `json:"encrypted_private_key"`
	Nonce               []byte `json:"nonce"`
}

// identity holds the in-memory P-256 key pair for this instance.
type identity struct {
	private *ecdh.PrivateKey
	public  *ecdh.PublicKey
}

// loadOrCreateIdentity generates a fresh P-256 identity and persists it
// wrapped under wrappingKey, or loads and decrypts the existing one.
func loadOrCreateIdentity(store Store, wrappingKey []byte) (*identity, error) {
	data, ok, err := store.Get(idIdentity)
	if err != nil {
		return nil, storageError("load identity", err)
	}

	if ok {
		return loadIdentity(data, wrappingKey)
	}
	return createIdentity(store, wrappingKey)
}

func loadIdentity(data, wrappingKey []byte) (*identity, error) {
	var rec storedIdentity
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, storageError("parse identity record", err)
	}
	if len(rec.Nonce) != nonceSize {
		return nil, invalidKeyFormat("identity nonce must be 12 bytes")
	}

	envelope := make([]byte, 0, len(rec.Nonce)+len(rec.EncryptedPrivateKey))
	envelope = append(envelope, rec.Nonce...)
	envelope = append(envelope, rec.EncryptedPrivateKey...)

	privateBytes, err := aeadOpen(wrappingKey, envelope)
	if err != nil {
		// The sole cross-run passphrase-verification signal: a decryption
		// failure here means the derived wrapping key is wrong.
		return nil, ErrWrongPassword
	}
	defer wipe(privateBytes)

	priv, err := ecdh.P256().NewPrivateKey(privateBytes)
	if err != nil {
		return nil, invalidKeyFormat("malformed private scalar")
	}

	pub, err := ecdh.P256().NewPublicKey(rec.PublicKey)
	if err != nil {
		return nil, invalidKeyFormat("malformed public key")
	}

	if !bytes.Equal(pub.Bytes(), priv.PublicKey().Bytes()) {
		return nil, invalidKeyFormat("stored public key does not match wrapped private key")
	}

	return &identity{private: priv, public: pub}, nil
}

func createIdentity(store Store, wrappingKey []byte) (*identity, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, encryptionFailed("generate identity key pair", err)
	}
	pub := priv.PublicKey()

	privateBytes := priv.Bytes()
	envelope, err := aeadSeal(wrappingKey, privateBytes)
	wipe(privateBytes)
	if err != nil {
		return nil, err
	}

	rec := storedIdentity{
		PublicKey:           pub.Bytes(),
		Nonce:               envelope[:nonceSize],
		EncryptedPrivateKey: envelope[nonceSize:],
	}

	blob, err := json.Marshal(rec)
	if err != nil {
		return nil, storageError("serialize identity record", err)
	}
	if err := store.Put(idIdentity, blob); err != nil {
		return nil, storageError("persist identity", err)
	}

	return &identity{private: priv, public: pub}, nil
}

func (id *identity) exportPublicKey() string {
	return base64.URLEncoding.EncodeToString(id.public.Bytes())
}

func (id *identity) exportFingerprint() string {
	sum := sha256.Sum256(id.public.Bytes())

	var sb strings.Builder
	for i := 0; i < 16; i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X%02X", sum[i], sum[i+1])
	}
	return sb.String()
}
