// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package record

import "github.com/markkurossi/cryptls/sha2"

// Transcript accumulates the running hash of handshake-message bytes
// (never record headers): every handshake message body is fed in as
// it is sent or received, and Sum() yields the digest used to derive
// traffic secrets.
type Transcript struct {
	h *sha2.SHA256
}

// NewTranscript starts a fresh, empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{h: sha2.New256()}
}

// Write feeds handshake-message bytes into the transcript.
func (t *Transcript) Write(data []byte) {
	t.h.UpdateWith(data)
}

// Sum returns the current transcript digest without consuming the
// transcript, so callers can keep extending it after deriving a
// secret. Since sha2.Hasher.Finish() consumes its receiver, Sum works
// on a cloned state.
func (t *Transcript) Sum() []byte {
	clone := t.h.Clone()
	return clone.Finish()
}
