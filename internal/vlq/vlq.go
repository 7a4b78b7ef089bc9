// Package vlq implements [Variable-length quantity] encoding as used in MIDI
// or BER. A VLQ is essentially a base-128 representation of an unsigned
// integer with the addition of the eighth bit to mark continuation of bytes.
// VLQ is identical to [LEB128] except in endianness.
//
// The functions in this package work on byte slices. Parsing tolerates
// non-minimal encodings (leading 0x80 bytes); encoding always produces the
// minimal form.
//
// [Variable-length quantity]: https://en.wikipedia.org/wiki/Variable-length_quantity
// [LEB128]: https://en.wikipedia.org/wiki/LEB128
package vlq

import (
	"errors"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

var (
	// ErrTruncated is returned when the input ends before the final byte of a
	// VLQ (a byte without the continuation bit).
	ErrTruncated = errors.New("vlq: truncated")
	// ErrOverflow is returned when the encoded value does not fit the target
	// type.
	ErrOverflow = errors.New("vlq: value too large for target type")
)

// Parse decodes a VLQ from the beginning of b. It returns the decoded value
// and the number of bytes consumed. The maximum allowed value is limited by
// the size of T.
//
// Leading zeros (encoded as 0x80 bytes) are accepted even though they are not
// minimal.
func Parse[T constraints.Unsigned](b []byte) (ret T, n int, err error) {
	numBits := 0
	for n < len(b) {
		c := b[n]
		n++
		ret <<= 7
		ret |= T(c & 0x7f)
		if numBits == 0 {
			numBits = bits.Len8(c & 0x7f)
		} else {
			numBits += 7
		}
		if numBits > int(unsafe.Sizeof(ret)*8) {
			return 0, n, ErrOverflow
		}
		if c&0x80 == 0 {
			return ret, n, nil
		}
	}
	return 0, n, ErrTruncated
}

// Len returns the number of bytes needed to encode n as a VLQ.
func Len[T constraints.Unsigned](n T) int {
	if n == 0 {
		return 1
	}
	l := 0
	for i := n; i > 0; i >>= 7 {
		l++
	}
	return l
}

// Append appends the minimal VLQ encoding of n to dst and returns the
// extended slice.
func Append[T constraints.Unsigned](dst []byte, n T) []byte {
	for j := Len(n) - 1; j >= 0; j-- {
		b := byte(n>>(j*7)) & 0x7f
		if j > 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}
