package peercrypt_test

import (
	"fmt"

	"github.com/sec51/peercrypt"
)

// This example has no "// Output:" comment, so go test compiles it but
// does not run it.
func Example() {
	alice := peercrypt.New(peercrypt.NewMemoryStore())
	bob := peercrypt.New(peercrypt.NewMemoryStore())

	if err := alice.Init(""); err != nil {
		panic(err)
	}
	if err := bob.Init(""); err != nil {
		panic(err)
	}

	alicePub, _ := alice.ExportPublicKey()
	bobPub, _ := bob.ExportPublicKey()

	if err := alice.RegisterPeer("bob", bobPub); err != nil {
		panic(err)
	}
	if err := bob.RegisterPeer("alice", alicePub); err != nil {
		panic(err)
	}

	ciphertext, err := alice.EncryptText("Hello, Bob!", "bob")
	if err != nil {
		panic(err)
	}

	plaintext, err := bob.DecryptText(ciphertext, "alice")
	if err != nil {
		panic(err)
	}

	fmt.Println(plaintext)
}
