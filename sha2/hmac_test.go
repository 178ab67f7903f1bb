// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package sha2

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestHMACSHA256KAT(t *testing.T) {
	want, err := hex.DecodeString(
		"f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8")
	if err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	got := Compute(NewHash256, []byte("key"), []byte("The quick brown fox jumps over the lazy dog"))
	if !bytes.Equal(got, want) {
		t.Errorf("HMAC-SHA256 = %x, want %x", got, want)
	}
}

func TestHMACSHA512KAT(t *testing.T) {
	want, err := hex.DecodeString(
		"b42af09057bac1e2d41708e48a902e09b5ff7f12ab428a4fe86653c73dd248f" +
			"b82f948a549f7b791a5b41915ee4d1ec3935357e4e2317250d0372afa2ebeeb3a")
	if err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	got := Compute(NewHash512, []byte("key"), []byte("The quick brown fox jumps over the lazy dog"))
	if !bytes.Equal(got, want) {
		t.Errorf("HMAC-SHA512 = %x, want %x", got, want)
	}
}

func TestHMACIncrementalWrite(t *testing.T) {
	key := []byte("key")
	msg := []byte("The quick brown fox jumps over the lazy dog")

	oneShot := Compute(NewHash256, key, msg)

	h := NewHMAC(NewHash256, key)
	h.Write(msg[:10])
	h.Write(msg[10:])
	incremental := h.Sum()

	if !bytes.Equal(oneShot, incremental) {
		t.Errorf("incremental HMAC %x != one-shot HMAC %x", incremental, oneShot)
	}
}

func TestHMACKeyLongerThanBlockSize(t *testing.T) {
	longKey := bytes.Repeat([]byte{0x5a}, SHA256BlockSize+17)
	got := Compute(NewHash256, longKey, []byte("msg"))
	if len(got) != SHA256Size {
		t.Fatalf("tag length = %d, want %d", len(got), SHA256Size)
	}
}
