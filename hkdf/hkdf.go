// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

// Package hkdf implements RFC 5869 Extract/Expand and the TLS 1.3
// HKDF-Expand-Label / Derive-Secret constructions (RFC 8446 §7.1),
// built on sha2.HMAC and parameterized over any sha2.BlockHasher so
// the same code drives both the SHA-256 and SHA-512 key schedules.
package hkdf

import "github.com/markkurossi/cryptls/sha2"

// Extract implements RFC 5869 §2.2: PRK = HMAC-Hash(salt, IKM). An
// empty salt is replaced with Hash.Size() zero bytes, per the RFC.
func Extract(newHash sha2.New, salt, ikm []byte) []byte {
	if len(salt) == 0 {
		salt = make([]byte, newHash().Size())
	}
	return sha2.Compute(newHash, salt, ikm)
}

// Expand implements RFC 5869 §2.3's counter-mode expansion: T(0) is
// empty, T(i) = HMAC-Hash(PRK, T(i-1) || info || i), output is
// T(1) || T(2) || ... truncated to length.
func Expand(newHash sha2.New, prk, info []byte, length int) []byte {
	out := make([]byte, 0, length)
	var prev []byte
	counter := byte(1)

	for len(out) < length {
		h := sha2.NewHMAC(newHash, prk)
		h.Write(prev)
		h.Write(info)
		h.Write([]byte{counter})
		prev = h.Sum()
		counter++

		out = append(out, prev...)
	}
	return out[:length]
}

// hkdfLabel builds the RFC 8446 §7.1 HkdfLabel structure:
//
//	struct {
//	    uint16 length = Length;
//	    opaque label<7..255> = "tls13 " + Label;
//	    opaque context<0..255> = Context;
//	} HkdfLabel;
func hkdfLabel(length int, label string, context []byte) []byte {
	const prefix = "tls13 "

	full := prefix + label
	out := make([]byte, 0, 2+1+len(full)+1+len(context))
	out = append(out, byte(length>>8), byte(length))
	out = append(out, byte(len(full)))
	out = append(out, full...)
	out = append(out, byte(len(context)))
	out = append(out, context...)
	return out
}

// LabelledExpand implements TLS 1.3's HKDF-Expand-Label: Expand(prk,
// HkdfLabel(length, label, context), length).
func LabelledExpand(newHash sha2.New, prk []byte, label string, context []byte, length int) []byte {
	return Expand(newHash, prk, hkdfLabel(length, label, context), length)
}

// DeriveSecret implements TLS 1.3's Derive-Secret: LabelledExpand with
// context = Hash(transcript) and length = Hash.Size().
func DeriveSecret(newHash sha2.New, prk []byte, label string, transcript []byte) []byte {
	h := newHash()
	h.UpdateWith(transcript)
	context := h.Finish()
	return LabelledExpand(newHash, prk, label, context, h.Size())
}
