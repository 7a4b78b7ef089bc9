// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dertext

import (
	"strconv"
	"strings"
)

// BitString implements the ASN.1 BIT STRING type. The bits are packed into
// Bytes from the most significant bit down; Ignore records how many of the
// trailing bits of the final byte are not part of the value. This mirrors the
// wire representation, where the first content octet carries the unused-bit
// count.
//
// Ignored bits may hold arbitrary values when a BitString was decoded from
// BER input. The DER encoder forces them to zero.
//
// See also section 22 of Rec. ITU-T X.680.
type BitString struct {
	Bytes  []byte // bits packed into bytes, MSB first
	Ignore int    // unused trailing bits in the final byte, 0..7
}

// IsValid reports whether s is a well-formed bit string: the ignore count must
// be in 0..7 and must be zero when there are no payload bytes.
func (s BitString) IsValid() bool {
	return s.Ignore >= 0 && s.Ignore <= 7 && (len(s.Bytes) > 0 || s.Ignore == 0)
}

// Len returns the number of bits in s.
func (s BitString) Len() int {
	return len(s.Bytes)*8 - s.Ignore
}

// At returns the bit at the given index. If the index is out of range At
// panics.
func (s BitString) At(i int) int {
	if i < 0 || i >= s.Len() {
		panic("index out of range")
	}
	x := i / 8
	y := 7 - uint(i%8)
	return int(s.Bytes[x]>>y) & 1
}

// Normalized returns a copy of s whose ignored bits are forced to zero. If s
// is already normalized, the result may share memory with s.
func (s BitString) Normalized() BitString {
	if s.Ignore == 0 || len(s.Bytes) == 0 {
		return s
	}
	last := s.Bytes[len(s.Bytes)-1]
	masked := last & ^byte(1<<uint(s.Ignore)-1)
	if masked == last {
		return s
	}
	bs := make([]byte, len(s.Bytes))
	copy(bs, s.Bytes)
	bs[len(bs)-1] = masked
	return BitString{Bytes: bs, Ignore: s.Ignore}
}

// String formats s into a readable binary representation. Bits are grouped
// into bytes; the last group may have fewer than 8 characters.
func (s BitString) String() string {
	if len(s.Bytes) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(s.Len() + len(s.Bytes))
	for i, b := range s.Bytes {
		bits := 8
		if i == len(s.Bytes)-1 {
			bits = 8 - s.Ignore
		}
		for j := 0; j < bits; j++ {
			sb.WriteByte('0' + byte(b>>(7-uint(j)))&1)
		}
		if i < len(s.Bytes)-1 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// An ObjectIdentifier represents an ASN.1 OBJECT IDENTIFIER as a sequence of
// its numeric components. The semantics of an object identifier are specified
// in [Rec. ITU-T X.660].
//
// [Rec. ITU-T X.660]: https://www.itu.int/rec/T-REC-X.660
type ObjectIdentifier []uint64

// Equal reports whether oid and other represent the same identifier.
func (oid ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	if len(oid) != len(other) {
		return false
	}
	for i := range oid {
		if oid[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns the canonical decimal-dotted form of oid.
func (oid ObjectIdentifier) String() string {
	var sb strings.Builder
	sb.Grow(len(oid) * 3)
	for i, n := range oid {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(n, 10))
	}
	return sb.String()
}
