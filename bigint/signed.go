// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package bigint

// Signed is a fixed-width sign-magnitude integer: Neg is true for
// negative values, and Magnitude holds the absolute value. The zero
// value of Signed is positive zero. SignedMin is the one constructor
// that yields Neg set with a zero Magnitude; IsZero reports it as zero.
type Signed struct {
	Magnitude Unsigned
	Neg       bool
}

// NewSigned returns the zero value of the given width.
func NewSigned(width int) Signed {
	return Signed{Magnitude: NewUnsigned(width)}
}

// SignedOne returns 1 at the given width.
func SignedOne(width int) Signed {
	return Signed{Magnitude: One(width)}
}

// SignedNegOne returns -1 at the given width.
func SignedNegOne(width int) Signed {
	return Signed{Magnitude: One(width), Neg: true}
}

// SignedMax returns the largest representable magnitude, positive.
func SignedMax(width int) Signed {
	return Signed{Magnitude: Max(width)}
}

// SignedMin returns a value whose magnitude has no positive inverse:
// Neg is true but Magnitude is the zero value, mirroring the
// asymmetry of two's-complement MIN in the original representation
// this type is modeled on.
func SignedMin(width int) Signed {
	return Signed{Magnitude: NewUnsigned(width), Neg: true}
}

// IsZero reports whether s is zero, ignoring its sign bit.
func (s Signed) IsZero() bool {
	return s.Magnitude.CountLimbs() == 0
}

// Neg returns -s. Negating zero yields positive zero.
func Neg(s Signed) Signed {
	if s.IsZero() {
		return Signed{Magnitude: s.Magnitude.Clone()}
	}
	return Signed{Magnitude: s.Magnitude.Clone(), Neg: !s.Neg}
}

// SignedAdd returns a + b using sign-magnitude rules: same-sign operands add
// magnitudes, opposite-sign operands subtract the smaller magnitude
// from the larger and take the sign of the larger.
func SignedAdd(a, b Signed) Signed {
	if a.Neg == b.Neg {
		return Signed{Magnitude: Add(a.Magnitude, b.Magnitude), Neg: a.Neg}
	}
	if Less(a.Magnitude, b.Magnitude) {
		return Signed{Magnitude: Sub(b.Magnitude, a.Magnitude), Neg: b.Neg}
	}
	if Less(b.Magnitude, a.Magnitude) {
		return Signed{Magnitude: Sub(a.Magnitude, b.Magnitude), Neg: a.Neg}
	}
	return NewSigned(a.Magnitude.Width())
}

// SignedSub returns a - b.
func SignedSub(a, b Signed) Signed {
	return SignedAdd(a, Neg(b))
}

// SignedMul returns a * b truncated (reduced mod 2^(64*width)) to the
// given limb width. Callers of this (the extended binary Euclidean
// algorithm in field.Inverse) only ever use it where the true product
// is already known to fit within width limbs, so the truncation never
// discards significant bits.
func SignedMul(a, b Signed, width int) Signed {
	wide := WideningMul(a.Magnitude, b.Magnitude)
	mag := NewUnsigned(width)
	for i := 0; i < width && i < wide.Width(); i++ {
		mag.SetLimb(i, wide.Limb(i))
	}
	neg := a.Neg != b.Neg
	if mag.CountLimbs() == 0 {
		neg = false
	}
	return Signed{Magnitude: mag, Neg: neg}
}
