// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

// Package ecdsa implements ECDSA signing and verification (SEC 1,
// FIPS 186-4) over an ec.Curve and a caller-supplied hash function.
package ecdsa

import (
	"errors"
	"io"

	"github.com/markkurossi/cryptls/bigint"
	"github.com/markkurossi/cryptls/ec"
	"github.com/markkurossi/cryptls/field"
	"github.com/markkurossi/cryptls/internal/clog"
)

// ErrRNGFailure is returned when the nonce source could not produce a
// value.
var ErrRNGFailure = errors.New("ecdsa: random number generation failed")

// ErrPrivateKeyZero is the sentinel for a zero private key. No
// function in this package returns it: Sign does not check priv for
// zero.
var ErrPrivateKeyZero = errors.New("ecdsa: private key is zero")

// Hasher is the minimal hash contract ECDSA needs: a one-shot digest
// whose width matches the curve's scalar field.
type Hasher func(msg []byte) []byte

// Signature is an ECDSA (r, s) pair, both scalar-field elements.
type Signature struct {
	R field.Element
	S field.Element
}

// randomScalar draws bytes from rng until it forms a nonzero element
// of curve's scalar field. It retries indefinitely on zero draws (an
// event with negligible real-world probability for a healthy rng) but
// surfaces ErrRNGFailure immediately if rng itself errors.
func randomScalar(curve *ec.Curve, rng io.Reader) (field.Element, error) {
	width := curve.ScalarField.Value.Width()
	buf := make([]byte, width*8)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return field.Element{}, ErrRNGFailure
		}
		k := field.New(curve.ScalarField, bigint.FromBigEndian(buf))
		if !k.IsZero() {
			return k, nil
		}
	}
}

// hashToScalar reduces a fixed-width big-endian hash into curve's
// scalar field. No left-truncation is needed: only SHA-256/P-256 are
// wired up here and the widths already match.
func hashToScalar(curve *ec.Curve, digest []byte) field.Element {
	return field.New(curve.ScalarField, bigint.FromBigEndian(digest))
}

// Sign produces an ECDSA signature over msg under priv (a scalar-field
// element of curve's order): draw a nonzero nonce k, compute R = k*G,
// reject (retry) if R is infinity, set r = x(R), s = k^-1*(H(msg) +
// r*priv); retry on r == 0 or s == 0.
func Sign(curve *ec.Curve, h Hasher, priv field.Element, msg []byte, rng io.Reader) (Signature, error) {
	return SignLogged(curve, h, priv, msg, rng, clog.NewNop())
}

// SignLogged is Sign with an explicit trace Logger: every retry on a
// rejected nonce or a zero r/s is logged at debug level, since a
// healthy rng makes these bounded-probability events, not errors.
func SignLogged(curve *ec.Curve, h Hasher, priv field.Element, msg []byte, rng io.Reader, log clog.Logger) (Signature, error) {
	hash := hashToScalar(curve, h(msg))
	g := curve.Generator()

	for {
		k, err := randomScalar(curve, rng)
		if err != nil {
			log.Errorf("ecdsa: sign: %v", err)
			return Signature{}, err
		}

		point := ec.ScalarMul(g, k.Value)
		x, _, ok := ec.Affine(point)
		if !ok {
			log.Debugf("ecdsa: sign: k*G is the point at infinity, retrying")
			continue
		}
		r := field.New(curve.ScalarField, x.Value)
		if r.IsZero() {
			log.Debugf("ecdsa: sign: r == 0, retrying")
			continue
		}

		kInv := field.Inverse(k)
		s := field.Mul(kInv, field.Add(hash, field.Mul(r, priv)))
		if s.IsZero() {
			log.Debugf("ecdsa: sign: s == 0, retrying")
			continue
		}

		return Signature{R: r, S: s}, nil
	}
}

// Verify reports whether sig is a valid ECDSA signature over msg under
// pub: w = s^-1, u = H(msg)*w, v = r*w, P = u*G + v*pub; valid iff P
// is not infinity and x(P) == r.
func Verify(curve *ec.Curve, h Hasher, pub ec.Point, msg []byte, sig Signature) bool {
	if sig.R.IsZero() || sig.S.IsZero() {
		return false
	}

	hash := hashToScalar(curve, h(msg))
	w := field.Inverse(sig.S)
	u := field.Mul(hash, w)
	v := field.Mul(sig.R, w)

	g := curve.Generator()
	p := ec.Add(ec.ScalarMul(g, u.Value), ec.ScalarMul(pub, v.Value))

	x, _, ok := ec.Affine(p)
	if !ok {
		return false
	}
	r := field.New(curve.ScalarField, x.Value)
	return field.Equal(r, sig.R)
}
