// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ber implements decoding of ASN.1 values encoded using the Basic
// Encoding Rules (BER) and encoding using the Distinguished Encoding Rules
// (DER). Both sets of rules are defined in [Rec. ITU-T X.690]. See also
// “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// The central type of this package is [Element], an immutable node in an
// ASN.1 value tree. [Decode] turns a BER-encoded byte buffer into an Element
// tree and [Encode] turns an Element tree into its canonical DER encoding.
// The decoder accepts the usual BER laxities (non-minimal tag and length
// encodings, indefinite lengths, redundant integer padding, non-zero ignored
// bits, byte order marks in string types); the encoder always produces strict
// DER regardless of how an Element was obtained.
//
// The package also contains the value codecs for the universal primitive
// types: BOOLEAN, INTEGER, BIT STRING, OBJECT IDENTIFIER, the character
// string types and the two legacy time types. The codecs operate on content
// octets so that they can be applied to elements carrying implicit tag
// overrides.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package ber

import (
	"errors"
	"strconv"
)

// MaxDepth is the maximum nesting depth of constructed elements that [Decode]
// accepts. Deeper inputs fail with [ErrDepth].
const MaxDepth = 256

// ErrDepth is returned by [Decode] when the input nests constructed elements
// deeper than [MaxDepth].
var ErrDepth = errors.New("ber: nesting exceeds maximum depth")

// A SyntaxError reports a malformed BER encoding. ByteOffset is the offset of
// the data value whose encoding is invalid, relative to the beginning of the
// decoded buffer.
type SyntaxError struct {
	ByteOffset int
	Err        error
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	return "ber: syntax error at offset " + strconv.Itoa(e.ByteOffset) + ": " + e.Err.Error()
}

// A ValueError reports content octets that do not form a valid value of the
// ASN.1 type they were interpreted as. It is returned by the value codecs and
// by [Encode] when canonicalising primitive values.
type ValueError struct {
	Type string // ASN.1 type name, e.g. "INTEGER"
	Err  error
}

func (e *ValueError) Unwrap() error { return e.Err }
func (e *ValueError) Error() string {
	return "ber: invalid " + e.Type + ": " + e.Err.Error()
}

func valueErrorf(typ, msg string) error {
	return &ValueError{Type: typ, Err: errors.New(msg)}
}
