// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package sha2

import "encoding/binary"

// SHA512 block and digest sizes.
const (
	SHA512BlockSize = 128
	SHA512Size      = 64
)

var sha512K = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

// SHA512 is a streaming SHA-512 hasher: eight 64-bit state words and
// a persistent 128-bit length counter, carried explicitly since
// Finish is callable with no trailing chunk.
type SHA512 struct {
	state [8]uint64
	lenHi uint64
	lenLo uint64
	buf   [SHA512BlockSize]byte
	nbuf  int
}

// NewSHA512 returns a fresh SHA-512 state with the FIPS 180-4 initial
// hash value.
func NewSHA512() *SHA512 {
	return &SHA512{
		state: [8]uint64{
			0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
			0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
		},
	}
}

// Size returns the SHA-512 digest length, 64 bytes.
func (h *SHA512) Size() int { return SHA512Size }

// BlockSize returns the SHA-512 block length, 128 bytes.
func (h *SHA512) BlockSize() int { return SHA512BlockSize }

func rotr64(x uint64, n uint) uint64 {
	return x>>n | x<<(64-n)
}

func sha512ch(x, y, z uint64) uint64  { return (x & y) ^ (^x & z) }
func sha512maj(x, y, z uint64) uint64 { return (x & y) ^ (x & z) ^ (y & z) }
func sha512Sigma0(x uint64) uint64    { return rotr64(x, 28) ^ rotr64(x, 34) ^ rotr64(x, 39) }
func sha512Sigma1(x uint64) uint64    { return rotr64(x, 14) ^ rotr64(x, 18) ^ rotr64(x, 41) }
func sha512sigma0(x uint64) uint64    { return rotr64(x, 1) ^ rotr64(x, 8) ^ (x >> 7) }
func sha512sigma1(x uint64) uint64    { return rotr64(x, 19) ^ rotr64(x, 61) ^ (x >> 6) }

// addLen adds n bytes (as bits, n*8) to the 128-bit (lenHi, lenLo)
// bit-length counter, tracking carry.
func (h *SHA512) addLen(n int) {
	bits := uint64(n) * 8
	old := h.lenLo
	h.lenLo += bits
	if h.lenLo < old {
		h.lenHi++
	}
}

// Update compresses one 128-byte block into the running state. It
// panics (a ContractViolation) if block is not exactly BlockSize long.
func (h *SHA512) Update(block []byte) {
	if len(block) != SHA512BlockSize {
		panic("sha2: SHA512.Update requires a 128-byte block")
	}
	h.addLen(SHA512BlockSize)

	var w [80]uint64
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint64(block[i*8:])
	}
	for i := 16; i < 80; i++ {
		w[i] = sha512sigma1(w[i-2]) + w[i-7] + sha512sigma0(w[i-15]) + w[i-16]
	}

	a, b, c, d, e, f, g, hh := h.state[0], h.state[1], h.state[2], h.state[3],
		h.state[4], h.state[5], h.state[6], h.state[7]

	for i := 0; i < 80; i++ {
		t1 := hh + sha512Sigma1(e) + sha512ch(e, f, g) + sha512K[i] + w[i]
		t2 := sha512Sigma0(a) + sha512maj(a, b, c)
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
func (h *SHA512) UpdateWith(b []byte) {
	for len(b) > 0 {
		n := copy(h.buf[h.nbuf:], b)
		h.nbuf += n
		b = b[n:]
		if h.nbuf == SHA512BlockSize {
			blk := h.buf
			h.Update(blk[:])
			h.nbuf = 0
		}
	}
}

// Finish pads the buffered tail (0x80, zeros, then the 128-bit
// big-endian bit length) and returns the digest.
func (h *SHA512) Finish() []byte {
	lenHi, lenLo := h.lenHi, h.lenLo
	addLo := lenLo + uint64(h.nbuf)*8
	if addLo < lenLo {
		lenHi++
	}
	lenLo = addLo

	tailLen := h.nbuf
	padLen := SHA512BlockSize - 16 - (tailLen+1)%SHA512BlockSize
	if padLen < 0 {
		padLen += SHA512BlockSize
	}

	h.UpdateWith([]byte{0x80})
	var zeros [SHA512BlockSize]byte
	for padLen > 0 {
		n := padLen
		if n > SHA512BlockSize {
			n = SHA512BlockSize
		}
		h.UpdateWith(zeros[:n])
		padLen -= n
	}

	var lenBytes [16]byte
	binary.BigEndian.PutUint64(lenBytes[0:8], lenHi)
	binary.BigEndian.PutUint64(lenBytes[8:16], lenLo)
	h.UpdateWith(lenBytes[:])

	out := make([]byte, SHA512Size)
	for i, s := range h.state {
		binary.BigEndian.PutUint64(out[i*8:], s)
	}
	return out
}

// FinishWith feeds a final chunk of bytes, then finishes.
func (h *SHA512) FinishWith(b []byte) []byte {
	h.UpdateWith(b)
	return h.Finish()
}
