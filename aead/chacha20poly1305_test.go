// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package aead

import (
	"bytes"
	"testing"
)

// TestSealRFC8439Vector checks the worked AEAD example from RFC 8439
// §2.8.2.
func TestSealRFC8439Vector(t *testing.T) {
	key := [KeySize]byte(mustHexBytes(t, "808182838485868788898a8b8c8d8e8f909192939495969798999a9b9c9d9e9f"))
	nonce := [NonceSize]byte(mustHexBytes(t, "070000004041424344454647"))
	aad := mustHexBytes(t, "50515253c0c1c2c3c4c5c6c7")
	plaintext := []byte(
		"Ladies and Gentlemen of the class of '99: If I could offer you " +
			"only one tip for the future, sunscreen would be it.")

	sealed := Seal(key, nonce, plaintext, aad)

	wantCiphertext := mustHexBytes(t, "d31a8d34648e60db7b86afbc53ef7ec2a4aded51296e08fea9e2b5a736ee62d"+
		"63dbea45e8ca9671282fafb69da92728b1a71de0a9e060b2905d6a5b67ecd3b"+
		"3692ddbd7f2d778b8c9803aee328091b58fab324e4fad675945585808b4831d"+
		"7bc3ff4def08e4b7a9de576d26586cec64b6116")
	wantTag := mustHexBytes(t, "1ae10b594f09e26a7e902ecbd0600691")

	if len(sealed) != len(wantCiphertext)+TagSize {
		t.Fatalf("sealed length = %d, want %d", len(sealed), len(wantCiphertext)+TagSize)
	}
	gotCiphertext := sealed[:len(sealed)-TagSize]
	gotTag := sealed[len(sealed)-TagSize:]

	if !bytes.Equal(gotCiphertext, wantCiphertext) {
		t.Errorf("ciphertext = %x, want %x", gotCiphertext, wantCiphertext)
	}
	if !bytes.Equal(gotTag, wantTag) {
		t.Errorf("tag = %x, want %x", gotTag, wantTag)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	for i := range key {
		key[i] = byte(i)
	}
	for i := range nonce {
		nonce[i] = byte(i + 100)
	}
	aad := []byte("header")
	plaintext := []byte("the quick brown fox jumps over the lazy dog, repeated enough to span more than one chacha block")

	sealed := Seal(key, nonce, plaintext, aad)
	got, err := Open(key, nonce, sealed, aad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Open round trip = %q, want %q", got, plaintext)
	}
}

func TestOpenRejectsBitFlip(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	for i := range key {
		key[i] = byte(2 * i)
	}
	aad := []byte("aad")
	plaintext := []byte("secret message")

	sealed := Seal(key, nonce, plaintext, aad)
	sealed[0] ^= 0x01

	if _, err := Open(key, nonce, sealed, aad); err != ErrAuthFailed {
		t.Errorf("Open on tampered ciphertext: err = %v, want ErrAuthFailed", err)
	}
}

func TestOpenRejectsWrongAAD(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte

	sealed := Seal(key, nonce, []byte("payload"), []byte("correct-aad"))
	if _, err := Open(key, nonce, sealed, []byte("wrong-aad")); err != ErrAuthFailed {
		t.Errorf("Open with mismatched aad: err = %v, want ErrAuthFailed", err)
	}
}

func TestOpenRejectsTruncatedInput(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte

	if _, err := Open(key, nonce, []byte("short"), nil); err != ErrAuthFailed {
		t.Errorf("Open on input shorter than TagSize: err = %v, want ErrAuthFailed", err)
	}
}

