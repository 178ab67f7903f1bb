// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package field implements prime-field arithmetic on top of bigint.
// Go has no const-generic associated constants, so the field a value
// belongs to is carried at runtime: a Modulus is a small shared value,
// and every Element holds a pointer back to the Modulus it was reduced
// against. Operations on Elements from different Moduli panic rather
// than silently producing a meaningless result.
package field

import "github.com/markkurossi/cryptls/bigint"

// Modulus identifies a prime field by its modulus value. Two Moduli
// with equal Value but distinct identity are still considered the
// same field for arithmetic purposes; Element compares pointers for
// speed and falls back to value comparison so callers that construct
// a fresh Modulus with the same value each time still interoperate.
type Modulus struct {
	Value bigint.Unsigned
}

// NewModulus returns a Modulus wrapping the given value.
func NewModulus(value bigint.Unsigned) *Modulus {
	return &Modulus{Value: value}
}

func (m *Modulus) width() int {
	return m.Value.Width()
}

func sameField(a, b *Modulus) {
	if a == b {
		return
	}
	if bigint.Equal(a.Value, b.Value) {
		return
	}
	panic("field: operands belong to different fields")
}

// Element is a value reduced modulo its Modulus.
type Element struct {
	Mod   *Modulus
	Value bigint.Unsigned
}

// New reduces v modulo m.Value and tags the result with m. It is
// division-based: slow but always safe to call on any v.
func New(m *Modulus, v bigint.Unsigned) Element {
	_, rem := v.DivMod(m.Value)
	return Element{Mod: m, Value: rem}
}

// newUnchecked tags v with m without reducing it. The caller must
// guarantee v < m.Value; violating this invariant produces an
// Element whose arithmetic results are undefined.
func newUnchecked(m *Modulus, v bigint.Unsigned) Element {
	return Element{Mod: m, Value: v}
}

// Zero returns the additive identity of m.
func Zero(m *Modulus) Element {
	return newUnchecked(m, bigint.NewUnsigned(m.width()))
}

// One returns the multiplicative identity of m.
func One(m *Modulus) Element {
	return newUnchecked(m, bigint.One(m.width()))
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.Value.CountLimbs() == 0
}

// Equal reports whether a and b represent the same field element.
func Equal(a, b Element) bool {
	sameField(a.Mod, b.Mod)
	return bigint.Equal(a.Value, b.Value)
}

// Add returns a + b mod MODULUS. Constant-time: it computes the
// wrapping sum, conditionally subtracts the modulus (producing a
// borrow), then adds the modulus back masked by (carry XOR borrow),
// never branching on the operand values.
func Add(a, b Element) Element {
	sameField(a.Mod, b.Mod)
	m := a.Mod

	sum := bigint.NewUnsigned(m.width())
	carry := bigint.AddInto(&sum, a.Value, b.Value)

	reduced := bigint.NewUnsigned(m.width())
	borrow := bigint.SubInto(&reduced, sum, m.Value)

	mask := carry != borrow
	back := bigint.SelectMask(m.Value, mask)
	result := bigint.Add(reduced, back)

	return newUnchecked(m, result)
}

// Sub returns a - b mod MODULUS. Constant-time: wrapping subtract
// (producing a borrow), then add the modulus back masked by the
// borrow bit.
func Sub(a, b Element) Element {
	sameField(a.Mod, b.Mod)
	m := a.Mod

	diff := bigint.NewUnsigned(m.width())
	borrow := bigint.SubInto(&diff, a.Value, b.Value)

	back := bigint.SelectMask(m.Value, borrow)
	result := bigint.Add(diff, back)

	return newUnchecked(m, result)
}

// Neg returns MODULUS - e for non-zero e, and ZERO for ZERO, without
// branching on whether e is zero.
func Neg(e Element) Element {
	m := e.Mod
	diff := bigint.Sub(m.Value, e.Value)
	return newUnchecked(m, bigint.SelectMask(diff, !e.IsZero()))
}

// Mul returns a * b mod MODULUS via widening multiply followed by
// division-based reduction. Reduction is the dominant cost; a future
// Barrett-reduction specialization is permitted as long as it remains
// constant-time.
func Mul(a, b Element) Element {
	sameField(a.Mod, b.Mod)
	m := a.Mod

	wide := bigint.WideningMul(a.Value, b.Value)
	wideMod := widen(m.Value, wide.Width())
	_, rem := wide.DivMod(wideMod)

	return newUnchecked(m, narrow(rem, m.width()))
}

// Square returns a * a mod MODULUS. Equivalent to Mul(a, a); kept
// distinct so a future specialized squarer can be dropped in without
// disturbing call sites.
func Square(a Element) Element {
	return Mul(a, a)
}

// MulSmall multiplies e by a single 64-bit digit, widening into an
// (N+1)-limb buffer before reducing.
func MulSmall(e Element, digit uint64) Element {
	m := e.Mod
	product, carry := bigint.MulSingle(e.Value, digit)
	wide := bigint.NewUnsigned(m.width() + 1)
	for i := 0; i < m.width(); i++ {
		wide.SetLimb(i, product.Limb(i))
	}
	wide.SetLimb(m.width(), carry)

	wideMod := widen(m.Value, wide.Width())
	_, rem := wide.DivMod(wideMod)
	return newUnchecked(m, narrow(rem, m.width()))
}

func widen(u bigint.Unsigned, width int) bigint.Unsigned {
	out := bigint.NewUnsigned(width)
	for i := 0; i < u.Width(); i++ {
		out.SetLimb(i, u.Limb(i))
	}
	return out
}

func narrow(u bigint.Unsigned, width int) bigint.Unsigned {
	out := bigint.NewUnsigned(width)
	for i := 0; i < width; i++ {
		out.SetLimb(i, u.Limb(i))
	}
	return out
}

// Inverse returns the multiplicative inverse of e via the extended
// binary Euclidean algorithm carried out on signed big-ints: starting
// from (t, newT) = (0, 1) and (r, newR) = (MODULUS, e), repeatedly
// divide r by newR and update (t, newT) <- (newT, t - quot*newT),
// (r, newR) <- (newR, rem) until newR is zero. On termination r is
// +-1; if t is negative, MODULUS is added back. Inverting ZERO panics.
func Inverse(e Element) Element {
	if e.IsZero() {
		panic("field: inverse of zero")
	}
	m := e.Mod
	width := m.width()

	r := bigint.Signed{Magnitude: m.Value.Clone()}
	newR := bigint.Signed{Magnitude: e.Value.Clone()}
	t := bigint.NewSigned(width)
	newT := bigint.SignedOne(width)

	for !newR.IsZero() {
		quot, rem := r.Magnitude.DivMod(newR.Magnitude)
		quotSigned := bigint.Signed{Magnitude: quot, Neg: r.Neg != newR.Neg}
		remSigned := bigint.Signed{Magnitude: rem, Neg: r.Neg}

		nextT := bigint.SignedSub(t, bigint.SignedMul(quotSigned, newT, width))
		t, newT = newT, nextT
		r, newR = newR, remSigned
	}

	if !(bigint.Equal(r.Magnitude, bigint.One(width)) || r.Magnitude.CountLimbs() == 0) {
		panic("field: inverse failed to terminate at +-1")
	}

	if t.Neg {
		t = bigint.SignedAdd(t, bigint.Signed{Magnitude: m.Value.Clone()})
	}
	return newUnchecked(m, t.Magnitude)
}

// Div returns a / b, defined as a * Inverse(b).
func Div(a, b Element) Element {
	return Mul(a, Inverse(b))
}
