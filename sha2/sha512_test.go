// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package sha2

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestSHA512KAT(t *testing.T) {
	want, err := hex.DecodeString(
		"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39" +
			"a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f")
	if err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	got := Hash512([]byte("abc"))
	if !bytes.Equal(got, want) {
		t.Errorf("SHA-512(\"abc\") = %x, want %x", got, want)
	}
}

func TestSHA512IncrementalMatchesOneShot(t *testing.T) {
	msg := bytes.Repeat([]byte("the quick brown fox "), 37)
	oneShot := Hash512(msg)

	h := NewSHA512()
	for _, chunk := range bytes.SplitAfter(msg, []byte(" ")) {
		h.UpdateWith(chunk)
	}
	incremental := h.Finish()

	if !bytes.Equal(oneShot, incremental) {
		t.Errorf("incremental hash %x != one-shot hash %x", incremental, oneShot)
	}
}

func TestSHA512CrossesBlockBoundaryInLength(t *testing.T) {
	// 112 bytes leaves no room for the 0x80 + 16-byte length field in
	// the current block, forcing a second block.
	msg := bytes.Repeat([]byte{0x61}, 112)
	h := NewSHA512()
	got := h.FinishWith(msg)
	if len(got) != SHA512Size {
		t.Fatalf("digest length = %d, want %d", len(got), SHA512Size)
	}
}
