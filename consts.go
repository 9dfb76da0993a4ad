package peercrypt

// Fixed sizes and record ids, per the wire-format/crypto-parameter fixings:
// these must never change without breaking every persisted Store and every
// peer that has already exchanged envelopes.
const (
	wrappingKeySize  = 32
	saltSize         = 32
	nonceSize        = 12
	pbkdf2Iterations = 600_000
)

// Reserved Store ids. A caller that registers a peer under one of these
// would corrupt the identity or wrapping-key record.
const (
	idWrappingKey = "wrapping-key"
	idSalt        = "salt"
	idIdentity    = "identity"
)

func isReservedID(id string) bool {
	return id == idWrappingKey || id == idSalt || id == idIdentity
}
