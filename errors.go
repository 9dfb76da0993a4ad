package peercrypt

import "fmt"

// Kind discriminates the handful of ways a peercrypt operation can fail.
// Callers are expected to switch on Kind (or use errors.Is against the
// package-level sentinels below), not on the concrete error type.
type Kind uint8

const (
	// KindNotInitialized means an operation other than New/Init was called
	// on a Core that has not completed Init successfully.
	KindNotInitialized Kind = iota + 1
	// KindWrongPassword means the identity record exists but failed to
	// decrypt under the derived wrapping key, in passphrase mode.
	KindWrongPassword
	// KindInvalidKeyFormat means a persisted or supplied key blob has the
	// wrong length, fails point decoding, or fails scalar parsing.
	KindInvalidKeyFormat
	// KindPeerNotFound means encrypt/decrypt referenced a peer id absent
	// from both the in-memory cache and the Store.
	KindPeerNotFound
	// KindEncryptionFailed means the AEAD primitive reported a failure
	// while sealing.
	KindEncryptionFailed
	// KindDecryptionFailed means the AEAD primitive reported a failure
	// while opening, or the input was too short, not valid base64, or (for
	// text) not valid UTF-8.
	KindDecryptionFailed
	// KindStorageError means the Store reported an error, or a persisted
	// record failed structural parsing.
	KindStorageError
)

func (k Kind) String() string {
	switch k {
	case KindNotInitialized:
		return "not initialized"
	case KindWrongPassword:
		return "wrong password"
	case KindInvalidKeyFormat:
		return "invalid key format"
	case KindPeerNotFound:
		return "peer not found"
	case KindEncryptionFailed:
		return "encryption failed"
	case KindDecryptionFailed:
		return "decryption failed"
	case KindStorageError:
		return "storage error"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every exported peercrypt
// operation. Use errors.Is against the Err* sentinels for the kind-only
// cases, or inspect Kind/Peer directly.
type Error struct {
	Kind Kind
	Peer string // set only for KindPeerNotFound
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("peercrypt: %s", e.Kind)
	}
	if e.err != nil {
		return fmt.Sprintf("peercrypt: %s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("peercrypt: %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a peercrypt *Error of the same Kind,
// so errors.Is(err, ErrNotInitialized) works regardless of the message
// or wrapped cause attached to err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for the kind-only cases.
var (
	ErrNotInitialized   = &Error{Kind: KindNotInitialized, msg: "operation invoked before Init succeeded"}
	ErrWrongPassword    = &Error{Kind: KindWrongPassword, msg: "identity could not be decrypted with this passphrase"}
	ErrInvalidKeyFormat = &Error{Kind: KindInvalidKeyFormat}
	ErrEncryptionFailed = &Error{Kind: KindEncryptionFailed}
	ErrDecryptionFailed = &Error{Kind: KindDecryptionFailed}
)

func invalidKeyFormat(detail string) error {
	return &Error{Kind: KindInvalidKeyFormat, msg: detail}
}

func peerNotFound(peerID string) error {
	return &Error{Kind: KindPeerNotFound, Peer: peerID, msg: fmt.Sprintf("peer %q is not registered", peerID)}
}

func encryptionFailed(detail string, cause error) error {
	return &Error{Kind: KindEncryptionFailed, msg: detail, err: cause}
}

func decryptionFailed(detail string, cause error) error {
	return &Error{Kind: KindDecryptionFailed, msg: detail, err: cause}
}

func storageError(detail string, cause error) error {
	return &Error{Kind: KindStorageError, msg: detail, err: cause}
}
