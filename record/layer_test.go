// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package record

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/markkurossi/cryptls/aead"
)

// pipe is a minimal in-memory transport: Write appends, Read drains
// and reports (0, nil) ("would block") once it is empty, matching the
// Reader/Writer would-block convention.
type pipe struct {
	buf bytes.Buffer
}

func (p *pipe) write(b []byte) (int, error) {
	return p.buf.Write(b)
}

func (p *pipe) read(b []byte) (int, error) {
	n, err := p.buf.Read(b)
	if err == io.EOF {
		return 0, nil
	}
	return n, err
}

// chunkedPipe reads at most chunkSize bytes per call, to exercise the
// NeedsHeader/NeedsData partial-read path even when the full record is
// already sitting in the transport.
type chunkedPipe struct {
	pipe
	chunkSize int
}

func (p *chunkedPipe) read(b []byte) (int, error) {
	if len(b) > p.chunkSize {
		b = b[:p.chunkSize]
	}
	return p.pipe.read(b)
}

var testKey = [aead.KeySize]byte{
	0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
	0x88, 0x89, 0x8a, 0x8b, 0x8c, 0x8d, 0x8e, 0x8f,
	0x90, 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97,
	0x98, 0x99, 0x9a, 0x9b, 0x9c, 0x9d, 0x9e, 0x9f,
}

var testIV = [aead.NonceSize]byte{
	0x07, 0x00, 0x00, 0x00, 0x40, 0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47,
}

func fillPattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestRoundTripFragmentation(t *testing.T) {
	wire := &pipe{}
	client := NewLayer(wire.read, wire.write, func() error { return nil })
	server := NewLayer(wire.read, wire.write, func() error { return nil })

	client.RekeyWrite(testKey, testIV)
	server.RekeyRead(testKey, testIV)

	payload := fillPattern(40000)
	if err := client.Write(payload, CTApplicationData); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got []byte
	records := 0
	for len(got) < len(payload) {
		ct, data, err := server.Read()
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if ct != CTApplicationData {
			t.Fatalf("content type = %v, want application_data", ct)
		}
		records++
		if len(got)+len(data) < len(payload) && len(data) != MaxLen {
			t.Fatalf("non-final record carried %d bytes, want %d", len(data), MaxLen)
		}
		got = append(got, data...)
	}

	// 40000 bytes fragment into two full 16 KiB records plus a final
	// smaller one.
	if want := (len(payload) + MaxLen - 1) / MaxLen; records != want {
		t.Fatalf("payload arrived in %d records, want %d", records, want)
	}

	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
	}

	if _, _, err := server.Read(); !errors.Is(err, ErrWantRead) {
		t.Fatalf("Read after drain = %v, want ErrWantRead", err)
	}
}

func TestRoundTripChunkedIO(t *testing.T) {
	wire := &chunkedPipe{chunkSize: 3}
	client := NewLayer(wire.read, wire.write, func() error { return nil })
	server := NewLayer(wire.read, wire.write, func() error { return nil })

	client.RekeyWrite(testKey, testIV)
	server.RekeyRead(testKey, testIV)

	payload := fillPattern(500)
	if err := client.Write(payload, CTApplicationData); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got []byte
	for len(got) < len(payload) {
		ct, data, err := server.Read()
		if errors.Is(err, ErrWantRead) {
			continue
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if ct != CTApplicationData {
			t.Fatalf("content type = %v, want application_data", ct)
		}
		got = append(got, data...)
	}

	if !bytes.Equal(got, payload) {
		t.Fatalf("chunked round trip mismatch")
	}
}

func TestReadRemainingMovesRecordOutIncrementally(t *testing.T) {
	wire := &pipe{}
	client := NewLayer(wire.read, wire.write, func() error { return nil })
	server := NewLayer(wire.read, wire.write, func() error { return nil })

	client.RekeyWrite(testKey, testIV)
	server.RekeyRead(testKey, testIV)

	payload := fillPattern(100)
	if err := client.Write(payload, CTApplicationData); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got []byte
	dst := make([]byte, 7)
	for len(got) < len(payload) {
		ct, n, err := server.ReadRemaining(dst)
		if err != nil {
			t.Fatalf("ReadRemaining: %v", err)
		}
		if ct != CTApplicationData {
			t.Fatalf("content type = %v, want application_data", ct)
		}
		if n == 0 {
			t.Fatalf("ReadRemaining made no progress with %d bytes outstanding", len(payload)-len(got))
		}
		got = append(got, dst[:n]...)
	}

	if !bytes.Equal(got, payload) {
		t.Fatalf("incremental read mismatch")
	}

	// The record is fully moved out: the state machine is back at
	// NeedsHeader and the drained transport reports would-block.
	if _, _, err := server.ReadRemaining(dst); !errors.Is(err, ErrWantRead) {
		t.Fatalf("ReadRemaining after drain = %v, want ErrWantRead", err)
	}
}

func TestUnprotectedRoundTrip(t *testing.T) {
	wire := &pipe{}
	client := NewLayer(wire.read, wire.write, func() error { return nil })
	server := NewLayer(wire.read, wire.write, func() error { return nil })

	hello := []byte("pretend-clienthello-bytes")
	if err := client.Write(hello, CTHandshake); err != nil {
		t.Fatalf("Write: %v", err)
	}

	ct, data, err := server.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ct != CTHandshake {
		t.Fatalf("content type = %v, want handshake", ct)
	}
	if !bytes.Equal(data, hello) {
		t.Fatalf("unprotected round trip mismatch")
	}
}

func TestWriteHandshakeFeedsTranscript(t *testing.T) {
	wire := &pipe{}
	client := NewLayer(wire.read, wire.write, func() error { return nil })

	before := client.Transcript.Sum()
	if err := client.WriteHandshake([]byte("client-hello")); err != nil {
		t.Fatalf("WriteHandshake: %v", err)
	}
	after := client.Transcript.Sum()

	if bytes.Equal(before, after) {
		t.Fatalf("transcript did not change after WriteHandshake")
	}
}

func TestBadRecordMAC(t *testing.T) {
	wire := &pipe{}
	client := NewLayer(wire.read, wire.write, func() error { return nil })

	alerts := &pipe{}
	server := NewLayer(wire.read, alerts.write, func() error { return nil })

	client.RekeyWrite(testKey, testIV)
	server.RekeyRead(testKey, testIV)

	if err := client.Write([]byte("hello, server"), CTApplicationData); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Flip a byte inside the ciphertext region (past the 5-byte
	// header) of the single record sitting in the wire buffer.
	raw := wire.buf.Bytes()
	if len(raw) <= HeaderSize {
		t.Fatalf("no record bytes to corrupt")
	}
	raw[HeaderSize] ^= 0xff

	_, _, err := server.Read()
	var sa *SentAlert
	if !errors.As(err, &sa) || sa.Description != AlertBadRecordMAC {
		t.Fatalf("Read after corruption = %v, want SentAlert{bad_record_mac}", err)
	}

	sentAlert := alerts.buf.Bytes()
	if len(sentAlert) < HeaderSize+2 {
		t.Fatalf("server did not emit an alert record")
	}
	if ContentType(sentAlert[0]) != CTAlert {
		t.Fatalf("emitted record content type = %v, want alert", ContentType(sentAlert[0]))
	}
}

func TestRecordOverflow(t *testing.T) {
	wire := &pipe{}
	alerts := &pipe{}
	server := NewLayer(wire.read, alerts.write, func() error { return nil })

	var hdr [HeaderSize]byte
	hdr[0] = byte(CTApplicationData)
	bo.PutUint16(hdr[1:3], uint16(VersionTLS12))
	bo.PutUint16(hdr[3:5], uint16(MaxLen+SuffixSize+1))
	wire.buf.Write(hdr[:])

	_, _, err := server.Read()
	var sa *SentAlert
	if !errors.As(err, &sa) || sa.Description != AlertRecordOverflow {
		t.Fatalf("Read on oversized header = %v, want SentAlert{record_overflow}", err)
	}
}

func TestUnexpectedMessageAllZeroPadding(t *testing.T) {
	wire := &pipe{}
	alerts := &pipe{}
	server := NewLayer(wire.read, alerts.write, func() error { return nil })
	server.RekeyRead(testKey, testIV)

	// Craft a record whose decrypted inner plaintext is all zero: no
	// nonzero byte means no trailing content-type byte was found.
	var seal cipherState
	seal.rekey(testKey, testIV)

	plaintext := make([]byte, 16)
	var hdr [HeaderSize]byte
	hdr[0] = byte(CTApplicationData)
	bo.PutUint16(hdr[1:3], uint16(VersionTLS12))
	bo.PutUint16(hdr[3:5], uint16(len(plaintext)+aead.TagSize))

	sealed := seal.seal(plaintext, hdr[:])
	wire.buf.Write(hdr[:])
	wire.buf.Write(sealed)

	_, _, err := server.Read()
	if !errors.Is(err, ErrUnexpectedMessage) {
		t.Fatalf("Read on all-zero plaintext = %v, want ErrUnexpectedMessage", err)
	}
}

func TestAlertAndCloseNotify(t *testing.T) {
	wire := &pipe{}
	closed := false
	client := NewLayer(wire.read, wire.write, func() error {
		closed = true
		return nil
	})

	if err := client.CloseNotify(); err != nil {
		t.Fatalf("CloseNotify: %v", err)
	}
	if !closed {
		t.Fatalf("CloseNotify did not invoke the Closer callback")
	}

	raw := wire.buf.Bytes()
	if ContentType(raw[0]) != CTAlert {
		t.Fatalf("content type = %v, want alert", ContentType(raw[0]))
	}
	if AlertDescription(raw[HeaderSize+1]) != AlertCloseNotify {
		t.Fatalf("alert description = %v, want close_notify", AlertDescription(raw[HeaderSize+1]))
	}
}

func TestWantWriteResumes(t *testing.T) {
	var sent bytes.Buffer
	blocked := true
	writeFn := func(p []byte) (int, error) {
		if blocked {
			return 0, nil
		}
		return sent.Write(p)
	}

	client := NewLayer(func(p []byte) (int, error) { return 0, nil }, writeFn, func() error { return nil })

	if err := client.Write([]byte("abc"), CTHandshake); !errors.Is(err, ErrWantWrite) {
		t.Fatalf("Write while blocked = %v, want ErrWantWrite", err)
	}

	blocked = false
	if err := client.Write([]byte("abc"), CTHandshake); err != nil {
		t.Fatalf("Write after unblocking: %v", err)
	}

	if sent.Len() != HeaderSize+3 {
		t.Fatalf("sent %d bytes, want %d", sent.Len(), HeaderSize+3)
	}
}
