// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package sha2

import "encoding/binary"

// SHA256 block and digest sizes.
const (
	SHA256BlockSize = 64
	SHA256Size      = 32
)

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// SHA256 is a streaming SHA-256 hasher: eight 32-bit state words plus
// a message-bit counter, fed in 64-byte blocks.
type SHA256 struct {
	state [8]uint32
	nbits uint64
	buf   [SHA256BlockSize]byte
	nbuf  int
}

// NewSHA256 returns a fresh SHA-256 state with the FIPS 180-4 initial
// hash value.
func NewSHA256() *SHA256 {
	return &SHA256{
		state: [8]uint32{
			0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
			0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
		},
	}
}

// Clone returns an independent copy of h's current state, letting a
// caller peek at a running digest (record.Transcript.Sum) without
// consuming the original incremental hasher.
func (h *SHA256) Clone() *SHA256 {
	clone := *h
	return &clone
}

// Size returns the SHA-256 digest length, 32 bytes.
func (h *SHA256) Size() int { return SHA256Size }

// BlockSize returns the SHA-256 block length, 64 bytes.
func (h *SHA256) BlockSize() int { return SHA256BlockSize }

func sha256ch(x, y, z uint32) uint32  { return (x & y) ^ (^x & z) }
func sha256maj(x, y, z uint32) uint32 { return (x & y) ^ (x & z) ^ (y & z) }

func rotr32(x uint32, n uint) uint32 {
	return x>>n | x<<(32-n)
}

func sha256Sigma0(x uint32) uint32 { return rotr32(x, 2) ^ rotr32(x, 13) ^ rotr32(x, 22) }
func sha256Sigma1(x uint32) uint32 { return rotr32(x, 6) ^ rotr32(x, 11) ^ rotr32(x, 25) }
func sha256sigma0(x uint32) uint32 { return rotr32(x, 7) ^ rotr32(x, 18) ^ (x >> 3) }
func sha256sigma1(x uint32) uint32 { return rotr32(x, 17) ^ rotr32(x, 19) ^ (x >> 10) }

// Update compresses one 64-byte block into the running state. It
// panics (a ContractViolation) if block is not exactly BlockSize long.
func (h *SHA256) Update(block []byte) {
	if len(block) != SHA256BlockSize {
		panic("sha2: SHA256.Update requires a 64-byte block")
	}
	h.nbits += SHA256BlockSize * 8

	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		w[i] = sha256sigma1(w[i-2]) + w[i-7] + sha256sigma0(w[i-15]) + w[i-16]
	}

	a, b, c, d, e, f, g, hh := h.state[0], h.state[1], h.state[2], h.state[3],
		h.state[4], h.state[5], h.state[6], h.state[7]

	for i := 0; i < 64; i++ {
		t1 := hh + sha256Sigma1(e) + sha256ch(e, f, g) + sha256K[i] + w[i]
		t2 := sha256Sigma0(a) + sha256maj(a, b, c)
		hh, g, f, e = g, f, e, d+t1
		d, c, b, a = c, b, a, t1+t2
	}

	h.state[0] += a
	h.state[1] += b
	h.state[2] += c
	h.state[3] += d
	h.state[4] += e
	h.state[5] += f
	h.state[6] += g
	h.state[7] += hh
}

// UpdateWith buffers b and compresses every full block formed.
func (h *SHA256) UpdateWith(b []byte) {
	for len(b) > 0 {
		n := copy(h.buf[h.nbuf:], b)
		h.nbuf += n
		b = b[n:]
		if h.nbuf == SHA256BlockSize {
			blk := h.buf
			h.Update(blk[:])
			h.nbuf = 0
		}
	}
}

// Finish pads the buffered tail with the RFC padding (0x80, zeros,
// then the 64-bit big-endian bit length) and returns the digest.
func (h *SHA256) Finish() []byte {
	totalBits := h.nbits + uint64(h.nbuf)*8

	var pad [SHA256BlockSize]byte
	pad[0] = 0x80
	tail := h.buf[:h.nbuf]
	padLen := SHA256BlockSize - 8 - (len(tail)+1)%SHA256BlockSize
	if padLen < 0 {
		padLen += SHA256BlockSize
	}

	h.UpdateWith(pad[:1])
	var zeros [SHA256BlockSize]byte
	for padLen > 0 {
		n := padLen
		if n > SHA256BlockSize {
			n = SHA256BlockSize
		}
		h.UpdateWith(zeros[:n])
		padLen -= n
	}

	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], totalBits)
	h.UpdateWith(lenBytes[:])

	out := make([]byte, SHA256Size)
	for i, s := range h.state {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}

// FinishWith feeds a final chunk of bytes, then finishes.
func (h *SHA256) FinishWith(b []byte) []byte {
	h.UpdateWith(b)
	return h.Finish()
}
