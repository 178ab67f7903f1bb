// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package aead

import (
	"encoding/binary"
	"errors"
)

// ErrAuthFailed is returned by Open when the computed tag does not
// match the one carried in the ciphertext. Open must not release any
// plaintext bytes in this case.
var ErrAuthFailed = errors.New("aead: authentication failed")

// polyKey derives the one-time Poly1305 key for a given AEAD key and
// nonce: the first 32 bytes of the ChaCha20 keystream at counter 0,
// per RFC 8439 §2.6.
func polyKey(key [KeySize]byte, nonce [NonceSize]byte) [32]byte {
	var buf [32]byte
	EncryptInline(buf[:], key, nonce, 0)
	return buf
}

// macInput builds the Poly1305 input RFC 8439 §2.8 describes: aad,
// padded to a 16-byte boundary, then ciphertext, padded to a 16-byte
// boundary, then the little-endian 64-bit lengths of aad and
// ciphertext.
func macInput(aad, ciphertext []byte) []byte {
	pad := func(n int) int {
		if n%16 == 0 {
			return 0
		}
		return 16 - n%16
	}

	out := make([]byte, 0, len(aad)+pad(len(aad))+len(ciphertext)+pad(len(ciphertext))+16)
	out = append(out, aad...)
	out = append(out, make([]byte, pad(len(aad)))...)
	out = append(out, ciphertext...)
	out = append(out, make([]byte, pad(len(ciphertext)))...)

	var lens [16]byte
	binary.LittleEndian.PutUint64(lens[0:8], uint64(len(aad)))
	binary.LittleEndian.PutUint64(lens[8:16], uint64(len(ciphertext)))
	return append(out, lens[:]...)
}

// constantTimeEqual reports whether a and b are equal, scanning every
// byte of both slices and accumulating the differences with OR rather
// than returning as soon as a mismatch is found.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// Seal encrypts plaintext and returns ciphertext||tag, per
// RFC 8439 §2.8.1: ChaCha20 block encryption starting at counter 1,
// then a Poly1305 tag over aad||ciphertext under the counter-0
// keystream's first 32 bytes.
func Seal(key [KeySize]byte, nonce [NonceSize]byte, plaintext, aad []byte) []byte {
	ciphertext := make([]byte, len(plaintext))
	copy(ciphertext, plaintext)
	EncryptInline(ciphertext, key, nonce, 1)

	pk := polyKey(key, nonce)
	tag := Tag(pk, macInput(aad, ciphertext))

	return append(ciphertext, tag[:]...)
}

// Open verifies and decrypts sealed (ciphertext||tag), per RFC 8439
// §2.8.1. It recomputes the tag before touching any ciphertext bytes
// and returns ErrAuthFailed, without producing plaintext, on mismatch.
func Open(key [KeySize]byte, nonce [NonceSize]byte, sealed, aad []byte) ([]byte, error) {
	if len(sealed) < TagSize {
		return nil, ErrAuthFailed
	}
	ciphertext := sealed[:len(sealed)-TagSize]
	wantTag := sealed[len(sealed)-TagSize:]

	pk := polyKey(key, nonce)
	gotTag := Tag(pk, macInput(aad, ciphertext))

	if !constantTimeEqual(gotTag[:], wantTag) {
		return nil, ErrAuthFailed
	}

	plaintext := make([]byte, len(ciphertext))
	copy(plaintext, ciphertext)
	EncryptInline(plaintext, key, nonce, 1)
	return plaintext, nil
}
