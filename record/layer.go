// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

package record

import (
	"github.com/markkurossi/cryptls/aead"
	"github.com/markkurossi/cryptls/internal/clog"
)

// Fixed sizes driving the read and write buffers: one record always
// fits in HeaderSize+MaxLen+SuffixSize bytes, and a protected record
// never exceeds the TLS 1.3 maximum (RFC 8446 §5.2).
const (
	HeaderSize = 5
	LenSize    = 2
	MaxLen     = 1 << 14
	SuffixSize = 256
	bufSize    = HeaderSize + MaxLen + SuffixSize
)

// readStatus is the three-state machine the read path moves through
// per record: accumulate a header, accumulate the body, then move the
// deprotected payload out.
type readStatus int

const (
	stNeedsHeader readStatus = iota
	stNeedsData
	stMoving
)

type readState struct {
	status readStatus
	n      int // bytes accumulated toward the header or the body, or moved out of a Moving record
	len    int // current record's payload length, excluding the header
}

type writeState struct {
	len         int // length of the record currently staged in writeBuf, including the header
	recordBytes int // bytes of the staged record already flushed to the Writer callback
	totalBytes  int // bytes of the caller's payload already turned into completed records
	chunkLen    int // bytes of the caller's payload the staged record covers
	pending     bool
}

// Layer is the TLS 1.3 record layer: fragmentation, AEAD-protected
// read/write, alerts, and transcript hashing.
//
// A Layer owns two cipherStates (read, write), a read buffer, a write
// buffer, and a Transcript spanning the handshake. Nothing in it is
// shared across connections.
type Layer struct {
	// Transcript accumulates handshake-message bytes fed through
	// WriteHandshake or ObserveHandshake.
	Transcript *Transcript

	readFn  Reader
	writeFn Writer
	closeFn Closer

	readBuf  [bufSize]byte
	writeBuf [bufSize]byte

	rstate readState
	wstate writeState

	readCipher  cipherState
	writeCipher cipherState

	log clog.Logger
}

// NewLayer returns a Layer driven by the given callback triple, with
// traffic keys not yet installed (both directions unprotected).
func NewLayer(read Reader, write Writer, close Closer) *Layer {
	return NewLayerLogged(read, write, close, clog.NewNop())
}

// NewLayerLogged is NewLayer with an explicit trace Logger.
func NewLayerLogged(read Reader, write Writer, close Closer, log clog.Logger) *Layer {
	return &Layer{
		Transcript: NewTranscript(),
		readFn:     read,
		writeFn:    write,
		closeFn:    close,
		log:        log,
	}
}

// RekeyWrite installs a fresh write-direction traffic key and static
// IV, resetting the write sequence number to zero.
func (l *Layer) RekeyWrite(key [aead.KeySize]byte, iv [aead.NonceSize]byte) {
	l.writeCipher.rekey(key, iv)
	l.log.Debugf("record: write key installed, seq reset")
}

// RekeyRead installs a fresh read-direction traffic key and static IV.
func (l *Layer) RekeyRead(key [aead.KeySize]byte, iv [aead.NonceSize]byte) {
	l.readCipher.rekey(key, iv)
	l.log.Debugf("record: read key installed, seq reset")
}

// WriteHandshake feeds payload into the transcript and writes it as a
// handshake record, so the transcript always hashes exactly the bytes
// that went on the wire.
func (l *Layer) WriteHandshake(payload []byte) error {
	l.Transcript.Write(payload)
	return l.Write(payload, CTHandshake)
}

// ObserveHandshake feeds payload into the transcript without writing
// a record, for the read side: the handshake state machine decides
// which decrypted Read payloads are handshake-message bytes and
// replays them here.
func (l *Layer) ObserveHandshake(payload []byte) {
	l.Transcript.Write(payload)
}

// encodeHeader writes the 5-byte record header into writeBuf and
// returns it, for use both as the on-wire prefix and as AEAD AAD.
func (l *Layer) encodeHeader(ct ContentType, length int) []byte {
	l.writeBuf[0] = byte(ct)
	bo.PutUint16(l.writeBuf[1:3], uint16(VersionTLS12))
	bo.PutUint16(l.writeBuf[3:HeaderSize], uint16(length))
	return l.writeBuf[:HeaderSize]
}

// prepareRecord stages one record covering chunk (≤MaxLen bytes of
// the caller's payload) into writeBuf: protected records get the
// inner content-type byte appended before sealing under a provisional
// application_data header; unprotected records (ClientHello, the
// initial alert) carry ct directly and skip AEAD.
func (l *Layer) prepareRecord(chunk []byte, ct ContentType) {
	l.wstate.chunkLen = len(chunk)
	copy(l.writeBuf[HeaderSize:], chunk)

	if l.writeCipher.active {
		inner := HeaderSize + len(chunk)
		l.writeBuf[inner] = byte(ct)
		plainLen := len(chunk) + 1 // + inner content-type byte; this design uses no zero padding

		header := l.encodeHeader(CTApplicationData, plainLen+aead.TagSize)
		sealed := l.writeCipher.seal(l.writeBuf[HeaderSize:HeaderSize+plainLen], header)
		copy(l.writeBuf[HeaderSize:], sealed)
		l.wstate.len = HeaderSize + len(sealed)
		return
	}

	l.encodeHeader(ct, len(chunk))
	l.wstate.len = HeaderSize + len(chunk)
}

// flushRecord pushes the staged record through the Writer callback,
// retrying partial writes; on a would-block result it returns
// ErrWantWrite, preserving recordBytes so a subsequent call resumes
// instead of re-sending from the start.
func (l *Layer) flushRecord() error {
	for l.wstate.recordBytes < l.wstate.len {
		n, err := l.writeFn(l.writeBuf[l.wstate.recordBytes:l.wstate.len])
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrWantWrite
		}
		l.wstate.recordBytes += n
	}
	l.wstate.recordBytes = 0
	return nil
}

// Write fragments payload into ≤MaxLen chunks and writes each as a
// record of content type ct. On ErrWantWrite the
// caller must call Write again with the identical payload and ct;
// totalBytes/chunkLen/pending track exactly how much progress has
// been made so the retry resumes rather than re-sealing or
// re-sending bytes already on the wire.
func (l *Layer) Write(payload []byte, ct ContentType) error {
	for l.wstate.totalBytes < len(payload) || l.wstate.pending {
		if !l.wstate.pending {
			remaining := payload[l.wstate.totalBytes:]
			n := len(remaining)
			if n > MaxLen {
				n = MaxLen
			}
			l.prepareRecord(remaining[:n], ct)
			l.wstate.pending = true
		}

		if err := l.flushRecord(); err != nil {
			return err
		}

		l.wstate.totalBytes += l.wstate.chunkLen
		l.wstate.pending = false
	}
	l.wstate.totalBytes = 0
	return nil
}

// Alert writes desc as a two-byte alert record, protected or
// unprotected depending on whether write keys are installed.
func (l *Layer) Alert(desc AlertDescription) error {
	payload := []byte{byte(desc.Level()), byte(desc)}
	return l.Write(payload, CTAlert)
}

// AlertAndClose sends desc as an alert, flushes it, and invokes the
// Closer callback. The close runs even if the alert write fails, since the connection is
// being torn down either way; a failed alert write is reported first.
func (l *Layer) AlertAndClose(desc AlertDescription) error {
	writeErr := l.Alert(desc)
	closeErr := l.closeFn()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}

// CloseNotify sends a close_notify alert and closes the connection,
// the one non-fatal alert this module ever sends deliberately.
func (l *Layer) CloseNotify() error {
	return l.AlertAndClose(AlertCloseNotify)
}

// failAlert sends desc as a fatal alert (best-effort: a failure to
// send it is not reported, since the caller already has a more
// specific error to return) and returns sentinel if non-nil, else a
// SentAlert wrapping desc.
func (l *Layer) failAlert(desc AlertDescription, sentinel error) error {
	_ = l.Alert(desc)
	if sentinel != nil {
		return sentinel
	}
	return &SentAlert{Description: desc}
}

// getRaw drives the NeedsHeader/NeedsData/Moving state machine until
// one full record has been read into readBuf (Moving, not yet
// deprotected).
func (l *Layer) getRaw() error {
	for {
		switch l.rstate.status {
		case stNeedsHeader:
			for l.rstate.n < HeaderSize {
				n, err := l.readFn(l.readBuf[l.rstate.n:HeaderSize])
				if err != nil {
					return err
				}
				if n == 0 {
					return ErrWantRead
				}
				l.rstate.n += n
			}
			length := int(bo.Uint16(l.readBuf[HeaderSize-LenSize : HeaderSize]))
			if length > MaxLen+SuffixSize {
				l.rstate.n = 0
				return l.failAlert(AlertRecordOverflow, nil)
			}
			l.rstate.len = length
			l.rstate.status = stNeedsData
			l.rstate.n = 0

		case stNeedsData:
			for l.rstate.n < l.rstate.len {
				n, err := l.readFn(l.readBuf[HeaderSize+l.rstate.n : HeaderSize+l.rstate.len])
				if err != nil {
					return err
				}
				if n == 0 {
					return ErrWantRead
				}
				l.rstate.n += n
			}
			l.rstate.status = stMoving
			l.rstate.n = 0

		case stMoving:
			return nil
		}
	}
}

// deprotect runs once per record, immediately after it reaches
// Moving: if the outer content type is application_data, it AEAD-opens
// the record under readCipher (AAD = the original header), scans the
// trailing zero padding to recover the inner content type, and
// rewrites readBuf's content-type byte and rstate.len to the
// unpadded inner payload (RFC 8446 §5.2, §5.4).
func (l *Layer) deprotect() error {
	ct := ContentType(l.readBuf[0])
	if ct != CTApplicationData {
		return nil
	}

	header := l.readBuf[:HeaderSize]
	sealed := l.readBuf[HeaderSize : HeaderSize+l.rstate.len]
	plaintext, err := l.readCipher.open(sealed, header)
	if err != nil {
		return l.failAlert(AlertBadRecordMAC, nil)
	}
	copy(l.readBuf[HeaderSize:], plaintext)

	i := len(plaintext) - 1
	for i >= 0 && plaintext[i] == 0 {
		i--
	}
	if i < 0 {
		return l.failAlert(AlertUnexpectedMessage, ErrUnexpectedMessage)
	}

	l.readBuf[0] = plaintext[i]
	l.rstate.len = i
	return nil
}

// fill drives the state machine until a deprotected record is sitting
// in readBuf in the Moving state (a no-op if one already is).
func (l *Layer) fill() error {
	if l.rstate.status == stMoving {
		return nil
	}
	if err := l.getRaw(); err != nil {
		return err
	}
	if err := l.deprotect(); err != nil {
		l.rstate.status = stNeedsHeader
		l.rstate.n = 0
		return err
	}
	return nil
}

// ReadRemaining copies the current record's remaining payload bytes
// into dst, advancing the Moving-state offset: when the whole payload
// has been moved out, the state machine resets to NeedsHeader for the
// next record. It returns the record's (inner) content type and the
// number of bytes copied; a short dst simply leaves the rest for the
// next call.
func (l *Layer) ReadRemaining(dst []byte) (ContentType, int, error) {
	if err := l.fill(); err != nil {
		return CTInvalid, 0, err
	}

	ct := ContentType(l.readBuf[0])
	n := copy(dst, l.readBuf[HeaderSize+l.rstate.n:HeaderSize+l.rstate.len])
	l.rstate.n += n

	if l.rstate.n >= l.rstate.len {
		l.rstate.status = stNeedsHeader
		l.rstate.n = 0
	}
	return ct, n, nil
}

// Read returns the next record's content type and its whole remaining
// payload, driving the NeedsHeader/NeedsData/Moving state machine and
// deprotecting exactly once per record. On ErrWantRead the caller must
// call Read again; the partial header/body counters are preserved
// across the retry.
func (l *Layer) Read() (ContentType, []byte, error) {
	if err := l.fill(); err != nil {
		return CTInvalid, nil, err
	}

	payload := make([]byte, l.rstate.len-l.rstate.n)
	ct, _, err := l.ReadRemaining(payload)
	return ct, payload, err
}
