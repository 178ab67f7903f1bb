// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ec

import (
	"github.com/markkurossi/cryptls/bigint"
	"github.com/markkurossi/cryptls/field"
)

// p256Hex decodes a 64-hex-digit (256-bit) big-endian constant into a
// four-limb little-endian Unsigned.
func p256Hex(hex string) bigint.Unsigned {
	b := make([]byte, 32)
	for i := 0; i < 32; i++ {
		hi := hexNibble(hex[i*2])
		lo := hexNibble(hex[i*2+1])
		b[i] = hi<<4 | lo
	}
	return bigint.FromBigEndian(b)
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		panic("ec: invalid hex digit in curve constant")
	}
}

// P-256 (secp256r1, NIST FIPS 186-4) domain parameters.
const (
	p256PHex  = "ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"
	p256AHex  = "ffffffff00000001000000000000000000000000fffffffffffffffffffffffc"
	p256BHex  = "5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"
	p256NHex  = "ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"
	p256GxHex = "6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"
	p256GyHex = "4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"
)

var p256Curve *Curve

// P256 returns the NIST P-256 curve instance.
func P256() *Curve {
	if p256Curve != nil {
		return p256Curve
	}

	mod := field.NewModulus(p256Hex(p256PHex))
	order := p256Hex(p256NHex)
	scalarMod := field.NewModulus(order)
	a := field.New(mod, p256Hex(p256AHex))
	b := field.New(mod, p256Hex(p256BHex))
	gx := field.New(mod, p256Hex(p256GxHex))
	gy := field.New(mod, p256Hex(p256GyHex))

	p256Curve = &Curve{
		Field:       mod,
		ScalarField: scalarMod,
		A:           a,
		B:           b,
		Order:       order,
		Gx:          gx,
		Gy:          gy,
	}
	return p256Curve
}
