// this file is used for fuzz testing only
package peercrypt

import "crypto/ecdh"

// Fuzz exercises the two places peercrypt parses attacker-controlled bytes
// without an authentication tag to lean on first: a SEC1-encoded remote
// public key, and a raw envelope passed straight to aeadOpen under a fixed
// key. Neither should ever panic, regardless of input.
func Fuzz(data []byte) int {
	score := 0

	if _, err := ecdh.P256().NewPublicKey(data); err == nil {
		score = 1
	}

	key := make([]byte, wrappingKeySize)
	if _, err := aeadOpen(key, data); err == nil {
		score = 1
	}

	return score
}
