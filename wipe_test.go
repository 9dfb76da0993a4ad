package peercrypt

import "testing"

func TestWipeZeroesAllBytes(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	wipe(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
}

func TestWipeEmptySliceIsNoop(t *testing.T) {
	wipe(nil)
	wipe([]byte{})
}
