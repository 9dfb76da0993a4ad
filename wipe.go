package peercrypt

// wipe overwrites b with zeros in place. Used to scrub wrapping keys,
// derived peer keys, and transient plaintext buffers once they are no
// longer needed, so secret bytes don't linger in process memory longer
// than necessary.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
