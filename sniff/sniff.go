// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sniff locates a BER object in raw input. Input may be the raw
// binary encoding itself, Base64 of the encoding, or PEM armour around the
// Base64. [Bytes] detects the representation and returns the binary
// encoding.
package sniff

import (
	"bytes"
	"encoding/base64"
	"encoding/pem"

	"dertext.dev/dertext/ber"
)

// Bytes returns the BER-encoded object contained in data, stripping PEM
// armour and decoding Base64 as needed. It returns nil when no BER object
// can be located.
func Bytes(data []byte) []byte {
	if looksBinary(data) {
		return data
	}
	if block, _ := pem.Decode(data); block != nil {
		if looksBinary(block.Bytes) {
			return block.Bytes
		}
		return nil
	}
	if b := tryBase64(data); b != nil && looksBinary(b) {
		return b
	}
	return nil
}

// looksBinary reports whether data plausibly is a complete BER object: it
// must decode without error.
func looksBinary(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	// a full decode decides; PEM and Base64 input starts with ASCII, whose
	// first bytes rarely form a header covering exactly the whole buffer
	_, err := ber.Decode(data)
	return err == nil
}

// tryBase64 decodes data as Base64, ignoring embedded whitespace. Both the
// padded and unpadded standard alphabets are accepted.
func tryBase64(data []byte) []byte {
	compact := make([]byte, 0, len(data))
	for _, c := range data {
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			continue
		}
		compact = append(compact, c)
	}
	enc := base64.StdEncoding
	if !bytes.HasSuffix(compact, []byte("=")) && len(compact)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	out := make([]byte, enc.DecodedLen(len(compact)))
	n, err := enc.Decode(out, compact)
	if err != nil {
		return nil
	}
	return out[:n]
}
