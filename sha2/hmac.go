// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package sha2

// BlockHasher is the minimal contract HMAC needs from a hash family:
// a fresh state, incremental feeding, and fixed Size/BlockSize. Both
// SHA256 and SHA512 satisfy it.
type BlockHasher interface {
	UpdateWith(b []byte)
	Finish() []byte
	Size() int
	BlockSize() int
}

// New returns a constructor for a fresh BlockHasher of the same kind
// as the one passed to HMAC, since Go has no generic "new instance of
// my own type" short-hand.
type New func() BlockHasher

// HMAC implements the standard ipad/opad HMAC construction (RFC 2104)
// generic over a BlockHasher: keys longer than the hasher's block
// size are first hashed; shorter keys are zero-padded. A streaming
// Write/Sum pair lets callers feed a transcript incrementally, which
// hkdf.Extract relies on.
type HMAC struct {
	newHash New
	inner   BlockHasher
	outer   BlockHasher
}

// NewHMAC constructs an HMAC keyed by key, using newHash to mint the
// inner and outer hash states.
func NewHMAC(newHash New, key []byte) *HMAC {
	blockSize := newHash().BlockSize()

	if len(key) > blockSize {
		digest := newHash()
		digest.UpdateWith(key)
		key = digest.Finish()
	}

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	copy(ipad, key)
	copy(opad, key)
	for i := range ipad {
		ipad[i] ^= 0x36
		opad[i] ^= 0x5c
	}

	inner := newHash()
	inner.UpdateWith(ipad)
	outer := newHash()
	outer.UpdateWith(opad)

	return &HMAC{newHash: newHash, inner: inner, outer: outer}
}

// Write feeds message bytes into the inner hash.
func (h *HMAC) Write(p []byte) {
	h.inner.UpdateWith(p)
}

// Sum finishes the inner hash and feeds its digest into the outer
// hash, returning the final HMAC tag. It consumes the HMAC instance,
// matching Finish's one-shot contract on the underlying hashers.
func (h *HMAC) Sum() []byte {
	innerSum := h.inner.Finish()
	h.outer.UpdateWith(innerSum)
	return h.outer.Finish()
}

// Compute is the one-shot HMAC(key, msg) convenience wrapper.
func Compute(newHash New, key, msg []byte) []byte {
	h := NewHMAC(newHash, key)
	h.Write(msg)
	return h.Sum()
}

// NewHash256 adapts NewSHA256 to the New constructor shape.
func NewHash256() BlockHasher { return NewSHA256() }

// NewHash512 adapts NewSHA512 to the New constructor shape.
func NewHash512() BlockHasher { return NewSHA512() }
