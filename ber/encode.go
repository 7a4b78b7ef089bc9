// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"dertext.dev/dertext"
)

// Encode returns the canonical DER encoding of e.
//
// Encoding never consults the memoised source spans of a decoded tree: every
// primitive value of a known universal type is re-parsed and re-emitted in
// its canonical form (minimal INTEGER, 0xFF BOOLEAN TRUE, zeroed ignored
// bits, byte-order-mark free big-endian strings) and every length uses the
// minimal definite form. For input that was already strict DER the result is
// byte-identical to the input.
func Encode(e *Element) ([]byte, error) {
	return appendElement(nil, e)
}

func appendElement(dst []byte, e *Element) ([]byte, error) {
	if e.constructed {
		var content []byte
		var err error
		for _, c := range e.children {
			if content, err = appendElement(content, c); err != nil {
				return dst, err
			}
		}
		dst = appendHeader(dst, e.tag, true, len(content))
		return append(dst, content...), nil
	}
	v, err := canonicalValue(e.tag, e.value)
	if err != nil {
		return dst, err
	}
	dst = appendHeader(dst, e.tag, false, len(v))
	return append(dst, v...), nil
}

// canonicalValue returns the canonical content octets for a primitive value
// with the given tag. Values of known universal types are re-parsed and
// re-encoded; everything else is passed through unchanged, since the actual
// type of an implicitly tagged value is not known at this layer.
func canonicalValue(tag dertext.Tag, value []byte) ([]byte, error) {
	if tag.Class != dertext.ClassUniversal {
		return value, nil
	}
	switch tag.Number {
	case dertext.TagBoolean:
		v, err := ParseBool(value)
		if err != nil {
			return nil, err
		}
		if v {
			return []byte{0xff}, nil
		}
		return []byte{0x00}, nil
	case dertext.TagInteger, dertext.TagEnumerated:
		n, err := ParseInt(value)
		if err != nil {
			return nil, err
		}
		return IntBytes(n), nil
	case dertext.TagBitString:
		bs, err := ParseBitString(value)
		if err != nil {
			return nil, err
		}
		return AppendBitString(nil, bs), nil
	case dertext.TagNull:
		if len(value) != 0 {
			return nil, valueErrorf("NULL", "non-empty content")
		}
		return nil, nil
	case dertext.TagOID:
		oid, err := ParseOID(value)
		if err != nil {
			return nil, err
		}
		return AppendOID(nil, oid)
	case dertext.TagUTF8String, dertext.TagBMPString, dertext.TagUniversalString,
		dertext.TagNumericString, dertext.TagPrintableString, dertext.TagIA5String,
		dertext.TagTeletexString, dertext.TagGeneralString:
		s, err := DecodeString(tag.Number, value)
		if err != nil {
			return nil, err
		}
		return EncodeString(tag.Number, s)
	}
	return value, nil
}
