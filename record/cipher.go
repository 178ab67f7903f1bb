// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package record

import "github.com/markkurossi/cryptls/aead"

// cipherState is the per-direction AEAD state a Layer holds once
// traffic keys are installed: a fixed key, a static IV, and a
// monotonically increasing sequence number that is XORed into the
// IV's low bytes, big-endian, to form each record's nonce (RFC 8446
// §5.3).
type cipherState struct {
	key      [aead.KeySize]byte
	staticIV [aead.NonceSize]byte
	seq      uint64
	active   bool
}

func (c *cipherState) nonce() [aead.NonceSize]byte {
	var n [aead.NonceSize]byte
	copy(n[:], c.staticIV[:])

	var seqBytes [8]byte
	for i := 0; i < 8; i++ {
		seqBytes[7-i] = byte(c.seq >> (8 * i))
	}
	for i := 0; i < 8; i++ {
		n[len(n)-8+i] ^= seqBytes[i]
	}
	return n
}

// seal encrypts plaintext (already content-type-appended and
// zero-padded by the caller) under the current nonce, advancing seq
// once the AEAD call succeeds.
func (c *cipherState) seal(plaintext, aad []byte) []byte {
	out := aead.Seal(c.key, c.nonce(), plaintext, aad)
	c.seq++
	return out
}

// open decrypts and authenticates sealed under the current nonce,
// advancing seq only when authentication succeeds (a failed open
// leaves seq unchanged).
func (c *cipherState) open(sealed, aad []byte) ([]byte, error) {
	out, err := aead.Open(c.key, c.nonce(), sealed, aad)
	if err != nil {
		return nil, err
	}
	c.seq++
	return out, nil
}

// rekey installs a fresh key/IV and resets seq to zero (used on the
// handshake-to-application-data transition and on KeyUpdate).
func (c *cipherState) rekey(key [aead.KeySize]byte, iv [aead.NonceSize]byte) {
	c.key = key
	c.staticIV = iv
	c.seq = 0
	c.active = true
}
