// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package ec implements short-Weierstrass elliptic-curve point
// arithmetic in projective coordinates over a field.Modulus base
// field, plus the P-256 curve instance used by the ecdsa package.
package ec

import (
	"github.com/markkurossi/cryptls/bigint"
	"github.com/markkurossi/cryptls/field"
)

// Curve describes a short-Weierstrass curve y^2 = x^3 + A*x + B over a
// prime field. Nothing in this package reads B: the addition/doubling
// formulas depend solely on A, and points are not checked for lying on
// the curve.
//
// ScalarField is a second, independent field.Modulus over the curve's
// order (a distinct prime from Field's coordinate modulus). ecdsa
// reduces hashes, nonces, and private keys into it; carrying it as its
// own Modulus means field.Element's cross-field panic also rejects
// accidentally mixing a coordinate-field value into scalar arithmetic.
type Curve struct {
	Field       *field.Modulus
	ScalarField *field.Modulus
	A           field.Element
	B           field.Element
	Order       bigint.Unsigned
	Gx          field.Element
	Gy          field.Element
}

// Generator returns the curve's base point, with Z = 1.
func (c *Curve) Generator() Point {
	return Point{
		Curve: c,
		X:     c.Gx,
		Y:     c.Gy,
		Z:     field.One(c.Field),
	}
}

// Infinity returns the curve's point at infinity, represented by
// Z == 0.
func (c *Curve) Infinity() Point {
	return Point{
		Curve: c,
		X:     field.Zero(c.Field),
		Y:     field.One(c.Field),
		Z:     field.Zero(c.Field),
	}
}
