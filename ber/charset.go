// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"dertext.dev/dertext"
)

// DecodeString decodes the content octets of a character string value with
// the given universal tag number into a Go string. The permitted character
// set is enforced per type. TeletexString and GeneralString are treated as
// Latin-1 by convention. BMPString and UniversalString default to big-endian
// but honour a little-endian byte order mark; UTF8String tolerates a leading
// U+FEFF. Surrogate pairs in UTF8String and UniversalString content are
// reassembled into the code points they designate.
func DecodeString(tag uint32, b []byte) (string, error) {
	switch tag {
	case dertext.TagNumericString:
		for _, c := range b {
			if c != ' ' && (c < '0' || c > '9') {
				return "", valueErrorf("NumericString", "character outside permitted set")
			}
		}
		return string(b), nil
	case dertext.TagPrintableString:
		for _, c := range b {
			if !isPrintable(c) {
				return "", valueErrorf("PrintableString", "character outside permitted set")
			}
		}
		return string(b), nil
	case dertext.TagIA5String:
		for _, c := range b {
			if c > 0x7f {
				return "", valueErrorf("IA5String", "character outside permitted set")
			}
		}
		return string(b), nil
	case dertext.TagTeletexString, dertext.TagGeneralString:
		// Latin-1 by convention: every byte maps to the code point of the
		// same value.
		var sb strings.Builder
		sb.Grow(len(b))
		for _, c := range b {
			sb.WriteRune(rune(c))
		}
		return sb.String(), nil
	case dertext.TagUTF8String:
		return decodeUTF8(b)
	case dertext.TagBMPString:
		return decodeBMP(b)
	case dertext.TagUniversalString:
		return decodeUniversal(b)
	}
	return "", valueErrorf("string", "not a character string type")
}

// EncodeString encodes s into the canonical content octets of the character
// string type with the given universal tag number: big-endian, without byte
// order marks and without surrogate code units except where UTF-16 requires
// them.
func EncodeString(tag uint32, s string) ([]byte, error) {
	switch tag {
	case dertext.TagNumericString, dertext.TagPrintableString, dertext.TagIA5String:
		b := []byte(s)
		if _, err := DecodeString(tag, b); err != nil {
			return nil, err
		}
		return b, nil
	case dertext.TagTeletexString, dertext.TagGeneralString:
		b := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0xff {
				return nil, valueErrorf("TeletexString", "character outside Latin-1")
			}
			b = append(b, byte(r))
		}
		return b, nil
	case dertext.TagUTF8String:
		if !utf8.ValidString(s) {
			return nil, valueErrorf("UTF8String", "invalid UTF-8")
		}
		return []byte(s), nil
	case dertext.TagBMPString:
		b := make([]byte, 0, len(s)*2)
		for _, u := range utf16.Encode([]rune(s)) {
			b = append(b, byte(u>>8), byte(u))
		}
		return b, nil
	case dertext.TagUniversalString:
		b := make([]byte, 0, len(s)*4)
		for _, r := range s {
			b = append(b, byte(r>>24), byte(r>>16), byte(r>>8), byte(r))
		}
		return b, nil
	}
	return nil, valueErrorf("string", "not a character string type")
}

// isPrintable reports whether c is in the PrintableString character set of
// Rec. ITU-T X.680, Section 41.4.
func isPrintable(c byte) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' ||
		c == ' ' || c == '\'' || c == '(' || c == ')' ||
		c == '+' || c == ',' || c == '-' || c == '.' ||
		c == '/' || c == ':' || c == '=' || c == '?'
}

// decodeUTF8 decodes UTF-8 content. A leading U+FEFF is stripped. CESU-8
// style surrogate pairs are reassembled; anything else that is not valid
// UTF-8 is an error.
func decodeUTF8(b []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(b))
	first := true
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			// utf8 rejects encoded surrogates; pick them apart by hand
			hi, n, ok := decodeRawSurrogate(b)
			if !ok || !utf16.IsSurrogate(hi) || hi >= 0xdc00 {
				return "", valueErrorf("UTF8String", "invalid UTF-8")
			}
			lo, n2, ok := decodeRawSurrogate(b[n:])
			if !ok || lo < 0xdc00 || lo > 0xdfff {
				return "", valueErrorf("UTF8String", "unpaired surrogate")
			}
			r = utf16.DecodeRune(hi, lo)
			size = n + n2
		}
		if !first || r != 0xfeff {
			sb.WriteRune(r)
		}
		first = false
		b = b[size:]
	}
	return sb.String(), nil
}

// decodeRawSurrogate decodes a three-byte UTF-8 sequence without the
// surrogate range check applied by the utf8 package.
func decodeRawSurrogate(b []byte) (rune, int, bool) {
	if len(b) < 3 || b[0]&0xf0 != 0xe0 || b[1]&0xc0 != 0x80 || b[2]&0xc0 != 0x80 {
		return 0, 0, false
	}
	r := rune(b[0]&0x0f)<<12 | rune(b[1]&0x3f)<<6 | rune(b[2]&0x3f)
	return r, 3, true
}

// decodeBMP decodes UTF-16 content. The default byte order is big-endian; a
// leading byte order mark may select little-endian and is stripped either
// way.
func decodeBMP(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", valueErrorf("BMPString", "odd number of content octets")
	}
	le := false
	if len(b) >= 2 {
		if b[0] == 0xfe && b[1] == 0xff {
			b = b[2:]
		} else if b[0] == 0xff && b[1] == 0xfe {
			le = true
			b = b[2:]
		}
	}
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		if le {
			units = append(units, uint16(b[i+1])<<8|uint16(b[i]))
		} else {
			units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
		}
	}
	return decodeUTF16Units(units, "BMPString")
}

// decodeUTF16Units combines UTF-16 code units into a string, rejecting
// unpaired surrogates.
func decodeUTF16Units(units []uint16, typ string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(units))
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		switch {
		case !utf16.IsSurrogate(u):
			sb.WriteRune(u)
		case u < 0xdc00 && i+1 < len(units):
			lo := rune(units[i+1])
			if lo < 0xdc00 || lo > 0xdfff {
				return "", valueErrorf(typ, "unpaired surrogate")
			}
			sb.WriteRune(utf16.DecodeRune(u, lo))
			i++
		default:
			return "", valueErrorf(typ, "unpaired surrogate")
		}
	}
	return sb.String(), nil
}

// decodeUniversal decodes UTF-32 content, analogous to decodeBMP. Surrogate
// code points encoded as individual UTF-32 units are reassembled.
func decodeUniversal(b []byte) (string, error) {
	if len(b)%4 != 0 {
		return "", valueErrorf("UniversalString", "content octets not a multiple of four")
	}
	le := false
	if len(b) >= 4 {
		if b[0] == 0 && b[1] == 0 && b[2] == 0xfe && b[3] == 0xff {
			b = b[4:]
		} else if b[0] == 0xff && b[1] == 0xfe && b[2] == 0 && b[3] == 0 {
			le = true
			b = b[4:]
		}
	}
	var units []uint16
	var sb strings.Builder
	sb.Grow(len(b) / 4)
	flush := func() error {
		if len(units) == 0 {
			return nil
		}
		s, err := decodeUTF16Units(units, "UniversalString")
		if err != nil {
			return err
		}
		sb.WriteString(s)
		units = units[:0]
		return nil
	}
	for i := 0; i < len(b); i += 4 {
		var v uint32
		if le {
			v = uint32(b[i]) | uint32(b[i+1])<<8 | uint32(b[i+2])<<16 | uint32(b[i+3])<<24
		} else {
			v = uint32(b[i])<<24 | uint32(b[i+1])<<16 | uint32(b[i+2])<<8 | uint32(b[i+3])
		}
		if v > 0x10ffff {
			return "", valueErrorf("UniversalString", "code point out of range")
		}
		r := rune(v)
		if utf16.IsSurrogate(r) {
			units = append(units, uint16(v))
			continue
		}
		if err := flush(); err != nil {
			return "", err
		}
		sb.WriteRune(r)
	}
	if err := flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
