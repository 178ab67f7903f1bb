// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ec

import (
	"github.com/markkurossi/cryptls/bigint"
	"github.com/markkurossi/cryptls/field"
)

// Point is a projective point (X:Y:Z) on a Curve, representing the
// affine point (X/Z, Y/Z). The point at infinity has Z == 0.
type Point struct {
	Curve   *Curve
	X, Y, Z field.Element
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.Z.IsZero()
}

// Neg returns -p, computed as (X, -Y, Z).
func Neg(p Point) Point {
	return Point{Curve: p.Curve, X: p.X, Y: field.Neg(p.Y), Z: p.Z}
}

// Equal reports whether p and q represent the same projective point,
// using the cross-multiplied form: X_p*Z_q == X_q*Z_p and
// Y_p*Z_q == Y_q*Z_p.
func Equal(p, q Point) bool {
	return field.Equal(field.Mul(p.X, q.Z), field.Mul(q.X, p.Z)) &&
		field.Equal(field.Mul(p.Y, q.Z), field.Mul(q.Y, p.Z))
}

// Affine returns the affine (x, y) coordinates of p. ok is false if p
// is the point at infinity, which has no affine representation.
func Affine(p Point) (x, y field.Element, ok bool) {
	if p.IsInfinity() {
		return field.Element{}, field.Element{}, false
	}
	zInv := field.Inverse(p.Z)
	return field.Mul(p.X, zInv), field.Mul(p.Y, zInv), true
}

// addFormula computes general-case projective addition per the
// standard short-Weierstrass formulas, which depend only on the
// operands' coordinates (the curve coefficient A is not needed):
//
//	u = Y2*Z1 - Y1*Z2
//	v = X2*Z1 - X1*Z2
//	w = Z1*Z2
//	a  = u^2*w - v^3 - 2*v^2*X1*Z2
//	x' = v*a
//	y' = u*(v^2*X1*Z2 - a) - v^3*Y1*Z2
//	z' = v^3*w
//
// v == 0 means P and Q share a projective x-coordinate: if u is also
// zero the points are equal (the formula degenerates, so addFormula
// returns doubleFormula(P) instead), otherwise they are mutual
// inverses and the sum is infinity.
func addFormula(p, q Point) Point {
	c := p.Curve
	u := field.Sub(field.Mul(q.Y, p.Z), field.Mul(p.Y, q.Z))
	v := field.Sub(field.Mul(q.X, p.Z), field.Mul(p.X, q.Z))

	if v.IsZero() {
		if u.IsZero() {
			return doubleFormula(p)
		}
		return c.Infinity()
	}

	w := field.Mul(p.Z, q.Z)
	vv := field.Square(v)
	vvv := field.Mul(vv, v)
	x1z2 := field.Mul(p.X, q.Z)
	y1z2 := field.Mul(p.Y, q.Z)

	a := field.Sub(field.Sub(field.Mul(field.Square(u), w), vvv), field.MulSmall(field.Mul(vv, x1z2), 2))

	x3 := field.Mul(v, a)
	y3 := field.Sub(field.Mul(u, field.Sub(field.Mul(vv, x1z2), a)), field.Mul(vvv, y1z2))
	z3 := field.Mul(vvv, w)

	return Point{Curve: c, X: x3, Y: y3, Z: z3}
}

// doubleFormula computes 2*P using the standard short-Weierstrass
// projective doubling formula (EFD shortw-projective dbl-2007-bl),
// which uses the curve coefficient A.
func doubleFormula(p Point) Point {
	c := p.Curve
	xx := field.Square(p.X)
	zz := field.Square(p.Z)
	w := field.Add(field.Mul(c.A, zz), field.MulSmall(xx, 3))
	s := field.MulSmall(field.Mul(p.Y, p.Z), 2)
	ss := field.Square(s)
	sss := field.Mul(s, ss)
	r := field.Mul(p.Y, s)
	rr := field.Square(r)
	b := field.Sub(field.Square(field.Add(p.X, r)), field.Add(xx, rr))
	h := field.Sub(field.Square(w), field.MulSmall(b, 2))

	x3 := field.Mul(h, s)
	y3 := field.Sub(field.Mul(w, field.Sub(b, h)), field.MulSmall(rr, 2))
	z3 := sss

	return Point{Curve: c, X: x3, Y: y3, Z: z3}
}

// Add returns p + q using the general-case formula, first checking
// whether either operand is infinity and returning the other operand
// if so.
func Add(p, q Point) Point {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	return addFormula(p, q)
}

// AddFast returns p + q via addFormula directly, without checking for
// infinity operands. Its result is undefined if either operand is
// infinity.
func AddFast(p, q Point) Point {
	return addFormula(p, q)
}

// Double returns 2*P, returning infinity when P is infinity.
func Double(p Point) Point {
	if p.IsInfinity() {
		return p
	}
	return doubleFormula(p)
}

// cswap conditionally exchanges the coordinates of a and b without
// branching on swap, via an XOR-mask conditional swap over each
// field element's limb representation.
func cswap(a, b *Point, swap bool) {
	a.X, b.X = condSwapElement(a.X, b.X, swap)
	a.Y, b.Y = condSwapElement(a.Y, b.Y, swap)
	a.Z, b.Z = condSwapElement(a.Z, b.Z, swap)
}

func condSwapElement(a, b field.Element, swap bool) (field.Element, field.Element) {
	diff := bigint.Xor(a.Value, b.Value)
	masked := bigint.SelectMask(diff, swap)
	newA := bigint.Xor(a.Value, masked)
	newB := bigint.Xor(b.Value, masked)
	return field.Element{Mod: a.Mod, Value: newA}, field.Element{Mod: b.Mod, Value: newB}
}

// ScalarMul computes k*P using a fixed-iteration, constant-time
// ladder: starting from (R0, R1) = (infinity, P) with the invariant
// R1 = R0 + P, for every bit of k from the most significant down to
// bit 0, conditionally swap (R0, R1) on the bit value, set
// R1 <- R0+R1 and R0 <- double(R0), then swap back. This performs an
// add and a double on every iteration regardless of the bit, unlike a
// ladder that branches on the bit and only performs one operation per
// branch. k must be less than the curve order.
func ScalarMul(p Point, k bigint.Unsigned) Point {
	c := p.Curve
	r := c.Infinity()
	t := p

	bitLen := k.Width() * 64
	for i := bitLen - 1; i >= 0; i-- {
		bit := k.Bit(i)
		cswap(&r, &t, bit)
		newT := Add(r, t)
		newR := Double(r)
		r, t = newR, newT
		cswap(&r, &t, bit)
	}
	return r
}
