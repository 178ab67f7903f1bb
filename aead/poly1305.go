// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package aead

import (
	"github.com/markkurossi/cryptls/bigint"
	"github.com/markkurossi/cryptls/field"
)

// poly1305Width is the limb width of the Poly1305 accumulator field:
// 3 limbs (192 bits) comfortably hold the prime 2^130-5 and every
// intermediate value this package computes in it.
const poly1305Width = 3

var poly1305Modulus = field.NewModulus(bigint.FromUint64s(
	0xfffffffffffffffb, 0xffffffffffffffff, 0x3,
))

// clamp applies the RFC 8439 §2.5.1 clamping mask to a copy of r:
// bytes {3,7,11,15} have their high nibble cleared, bytes {4,8,12}
// have their low two bits cleared.
func clamp(r [16]byte) [16]byte {
	r[3] &= 0x0f
	r[7] &= 0x0f
	r[11] &= 0x0f
	r[15] &= 0x0f
	r[4] &= 0xfc
	r[8] &= 0xfc
	r[12] &= 0xfc
	return r
}

func poly1305FieldFromBytes(b []byte) bigint.Unsigned {
	wide := make([]byte, poly1305Width*8)
	copy(wide, b)
	return bigint.FromLittleEndian(wide)
}

// poly1305Chunk converts a message chunk (16 bytes, or a short final
// chunk) into an accumulator field element: the little-endian
// integer of the chunk bytes, zero-padded on the right if short, with
// an extra "add_bit" set immediately past the chunk's natural bit
// width (bit 128 for a full 16-byte chunk, bit 8*len otherwise) to
// distinguish a short final chunk from one that happens to be
// numerically equal after zero-padding.
func poly1305Chunk(chunk []byte) field.Element {
	var raw [16]byte
	n := copy(raw[:], chunk)

	u := poly1305FieldFromBytes(raw[:])
	u.SetBit(8*n, true)

	return field.New(poly1305Modulus, u)
}

// Tag computes the Poly1305 one-time authenticator over msg under the
// 32-byte key (r || s), per RFC 8439 §2.5.1: clamp r, accumulate each
// 16-byte chunk (marking full chunks with the add_bit and padding the
// final short chunk), multiplying by r after each addition, then add
// s and truncate to 128 bits. The final addition of s is a plain
// wrapping integer add, never reduced modulo 2^130-5.
func Tag(key [32]byte, msg []byte) [16]byte {
	rBytes := clamp([16]byte(key[:16]))

	r := field.New(poly1305Modulus, poly1305FieldFromBytes(rBytes[:]))
	s := poly1305FieldFromBytes(key[16:32])

	accum := field.Zero(poly1305Modulus)
	for len(msg) > 0 {
		n := len(msg)
		if n > 16 {
			n = 16
		}
		accum = field.Add(accum, poly1305Chunk(msg[:n]))
		accum = field.Mul(accum, r)
		msg = msg[n:]
	}
	sum := bigint.Add(accum.Value, s)

	var tag [16]byte
	le := sum.LittleEndianBytes()
	copy(tag[:], le[:16])
	return tag
}
