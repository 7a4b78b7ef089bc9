// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"
	"io"
	"math"

	"dertext.dev/dertext"
	"dertext.dev/dertext/internal/vlq"
)

// lengthIndefinite when used as a magic number for the length of a header
// indicates that the data value is encoded using the constructed
// indefinite-length format.
const lengthIndefinite = -1

// header represents the identifier and length octets of an encoded data
// value.
type header struct {
	tag         dertext.Tag
	constructed bool
	length      int // lengthIndefinite if the indefinite form is used
}

// parseHeader reads the identifier and length octets of a data value encoding
// starting at buf[off]. It returns the parsed header and the number of bytes
// it occupies. Non-minimal tag and length encodings are accepted.
func parseHeader(buf []byte, off int) (h header, n int, err error) {
	b := buf[off:]
	if len(b) == 0 {
		return h, 0, io.ErrUnexpectedEOF
	}
	h.tag.Class = dertext.Class(b[0] >> 6)
	h.constructed = b[0]&0x20 == 0x20
	h.tag.Number = uint32(b[0] & 0x1f)
	n = 1

	// If the bottom five bits are set, the tag number is base-128 encoded in
	// the following octets.
	if b[0]&0x1f == 0x1f {
		num, vn, err := vlq.Parse[uint64](b[n:])
		n += vn
		if err == vlq.ErrTruncated {
			return h, n, io.ErrUnexpectedEOF
		}
		if err != nil || num > math.MaxInt32 {
			return h, n, errors.New("tag number too large")
		}
		h.tag.Number = uint32(num)
	}

	if n >= len(b) {
		return h, n, io.ErrUnexpectedEOF
	}
	l := b[n]
	n++
	switch {
	case l&0x80 == 0:
		// The length is encoded in the bottom 7 bits.
		h.length = int(l & 0x7f)
	case l == 0x80:
		h.length = lengthIndefinite
	case l == 0xff:
		return h, n, errors.New("reserved length form")
	default:
		// Bottom 7 bits give the number of length bytes to follow. Leading
		// zero length bytes are tolerated.
		numBytes := int(l & 0x7f)
		h.length = 0
		for i := 0; i < numBytes; i++ {
			if n >= len(b) {
				return h, n, io.ErrUnexpectedEOF
			}
			c := b[n]
			n++
			if h.length >= 1<<23 {
				return h, n, errors.New("length too large")
			}
			h.length = h.length<<8 | int(c)
		}
	}
	return h, n, nil
}

// appendHeader appends the minimal DER encoding of the identifier and length
// octets to dst. The length must not be indefinite; DER forbids the
// indefinite form.
func appendHeader(dst []byte, tag dertext.Tag, constructed bool, length int) []byte {
	b := byte(tag.Class) << 6
	if constructed {
		b |= 0x20
	}
	if tag.Number < 31 {
		dst = append(dst, b|byte(tag.Number))
	} else {
		dst = append(dst, b|0x1f)
		dst = vlq.Append(dst, tag.Number)
	}

	if length < 128 {
		return append(dst, byte(length))
	}
	numBytes := 1
	for l := length; l > 255; l >>= 8 {
		numBytes++
	}
	dst = append(dst, 0x80|byte(numBytes))
	for ; numBytes > 0; numBytes-- {
		dst = append(dst, byte(length>>uint((numBytes-1)*8)))
	}
	return dst
}

// headerLen returns the number of bytes appendHeader will write for the given
// tag and length.
func headerLen(tag dertext.Tag, length int) int {
	l := 1
	if tag.Number >= 31 {
		l += vlq.Len(tag.Number)
	}
	l++
	if length < 128 {
		return l
	}
	l++
	for length > 255 {
		l++
		length >>= 8
	}
	return l
}
