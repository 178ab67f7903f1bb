//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command recordpipe is a small demo wiring record.Layer's Reader/
// Writer/Closer callback contract onto a real net.Conn. It dials a
// peer, installs a fixed demo traffic key in both directions when
// -key is given (standing in for the handshake key schedule;
// without it records go unprotected), and pipes stdin to
// the connection as application-data records, printing whatever it
// reads back.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"

	"github.com/markkurossi/cryptls/aead"
	"github.com/markkurossi/cryptls/internal/clog"
	"github.com/markkurossi/cryptls/record"
)

// netCallbacks adapts a net.Conn to record.Layer's Reader/Writer/
// Closer contract: net.Conn's Read/Write already block internally, so
// they trivially satisfy the "never returns (0, nil) unless genuinely
// out of data" would-block convention.
type netCallbacks struct {
	conn net.Conn
}

func (c *netCallbacks) read(p []byte) (int, error)  { return c.conn.Read(p) }
func (c *netCallbacks) write(p []byte) (int, error) { return c.conn.Write(p) }
func (c *netCallbacks) close() error                { return c.conn.Close() }

func main() {
	addr := flag.String("addr", "localhost:8443", "address to dial")
	keyHex := flag.String("key", "", "44-byte hex traffic key || static IV (32 + 12 bytes) shared with the peer (demo only; a real client derives this via hkdf)")
	flag.Parse()

	log.SetFlags(0)

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Fatalf("dial %s: %v", *addr, err)
	}
	defer conn.Close()

	cb := &netCallbacks{conn: conn}
	layer := record.NewLayerLogged(cb.read, cb.write, cb.close, clog.New())

	if *keyHex != "" {
		key, iv, err := parseDemoKey(*keyHex)
		if err != nil {
			log.Fatal(err)
		}
		layer.RekeyWrite(key, iv)
		layer.RekeyRead(key, iv)
	}

	go pipeStdinToRecords(layer)
	printRecords(layer)
}

// parseDemoKey splits a hex string into a ChaCha20-Poly1305 key and
// static IV, for wiring a fixed demo epoch without running a
// handshake.
func parseDemoKey(s string) (key [aead.KeySize]byte, iv [aead.NonceSize]byte, err error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return key, iv, fmt.Errorf("recordpipe: invalid -key: %w", err)
	}
	if len(b) != aead.KeySize+aead.NonceSize {
		return key, iv, fmt.Errorf("recordpipe: -key must be %d hex bytes (key || iv), got %d",
			aead.KeySize+aead.NonceSize, len(b))
	}
	copy(key[:], b[:aead.KeySize])
	copy(iv[:], b[aead.KeySize:])
	return key, iv, nil
}

func pipeStdinToRecords(layer *record.Layer) {
	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if werr := layer.Write(buf[:n], record.CTApplicationData); werr != nil {
				log.Printf("recordpipe: write: %v", werr)
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func printRecords(layer *record.Layer) {
	for {
		ct, data, err := layer.Read()
		switch {
		case errors.Is(err, record.ErrWantRead):
			continue
		case errors.Is(err, io.EOF):
			return
		case err != nil:
			log.Printf("recordpipe: read: %v", err)
			return
		}
		if ct == record.CTApplicationData {
			os.Stdout.Write(data)
		}
	}
}
