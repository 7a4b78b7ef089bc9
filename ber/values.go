// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"math"
	"math/big"

	"golang.org/x/exp/constraints"

	"dertext.dev/dertext"
	"dertext.dev/dertext/internal/vlq"
)

//region [UNIVERSAL 1] BOOLEAN

// ParseBool parses the content octets of a BOOLEAN value. Any non-zero octet
// means TRUE; DER restricts TRUE to 0xFF but BER does not.
func ParseBool(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, valueErrorf("BOOLEAN", "content must be a single octet")
	}
	return b[0] != 0, nil
}

//endregion

//region [UNIVERSAL 2] INTEGER and [UNIVERSAL 10] ENUMERATED

var bigOne = big.NewInt(1)

// ParseInt parses the content octets of an INTEGER or ENUMERATED value as a
// signed big-endian two's-complement number of arbitrary length. Redundant
// leading 0x00 or 0xFF octets are tolerated.
func ParseInt(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, valueErrorf("INTEGER", "empty content")
	}
	n := new(big.Int)
	if b[0]&0x80 == 0 {
		return n.SetBytes(b), nil
	}
	// negative integer, undo the two's complement
	bs := make([]byte, len(b))
	for i := range b {
		bs[i] = ^b[i]
	}
	n.SetBytes(bs)
	n.Add(n, bigOne)
	return n.Neg(n), nil
}

// IntBytes returns the minimal signed big-endian two's-complement content
// octets for n.
func IntBytes(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	if n.Sign() > 0 {
		bs := n.Bytes()
		if bs[0]&0x80 != 0 {
			// needs a leading 0x00 so it does not read as negative
			return append([]byte{0x00}, bs...)
		}
		return bs
	}
	// A negative number is converted to two's-complement form by inverting
	// the bytes of -n-1.
	m := new(big.Int).Neg(n)
	m.Sub(m, bigOne)
	bs := m.Bytes()
	for i := range bs {
		bs[i] ^= 0xff
	}
	if len(bs) == 0 || bs[0]&0x80 == 0 {
		return append([]byte{0xff}, bs...)
	}
	return bs
}

// IntValue returns a big.Int holding the given Go integer. It is a
// convenience for callers that mix native integers with arbitrary-precision
// values.
func IntValue[T constraints.Integer](v T) *big.Int {
	if v >= 0 {
		return new(big.Int).SetUint64(uint64(v))
	}
	return new(big.Int).SetInt64(int64(v))
}

//endregion

//region [UNIVERSAL 3] BIT STRING

// ParseBitString parses the content octets of a BIT STRING value. The first
// octet gives the number of unused trailing bits. The unused bits may hold
// arbitrary values; they are preserved here and zeroed on encoding.
func ParseBitString(b []byte) (dertext.BitString, error) {
	if len(b) == 0 {
		return dertext.BitString{}, valueErrorf("BIT STRING", "empty content")
	}
	ignore := int(b[0])
	if ignore > 7 {
		return dertext.BitString{}, valueErrorf("BIT STRING", "invalid unused-bit count")
	}
	if len(b) == 1 && ignore != 0 {
		return dertext.BitString{}, valueErrorf("BIT STRING", "unused bits in empty bit string")
	}
	return dertext.BitString{Bytes: b[1:], Ignore: ignore}, nil
}

// AppendBitString appends the canonical content octets for bs to dst. The
// ignored bits of the final octet are forced to zero.
func AppendBitString(dst []byte, bs dertext.BitString) []byte {
	bs = bs.Normalized()
	dst = append(dst, byte(bs.Ignore))
	return append(dst, bs.Bytes...)
}

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// ParseOID parses the content octets of an OBJECT IDENTIFIER value. The first
// encoded component combines the first two identifier components as
// 40*first + second.
func ParseOID(b []byte) (dertext.ObjectIdentifier, error) {
	if len(b) == 0 {
		return nil, valueErrorf("OBJECT IDENTIFIER", "empty content")
	}
	v, n, err := vlq.Parse[uint64](b)
	if err != nil {
		return nil, &ValueError{Type: "OBJECT IDENTIFIER", Err: err}
	}
	oid := make(dertext.ObjectIdentifier, 2, len(b)+1)
	if v < 80 {
		oid[0] = v / 40
		oid[1] = v % 40
	} else {
		oid[0] = 2
		oid[1] = v - 80
	}
	for n < len(b) {
		v, vn, err := vlq.Parse[uint64](b[n:])
		if err != nil {
			return nil, &ValueError{Type: "OBJECT IDENTIFIER", Err: err}
		}
		n += vn
		oid = append(oid, v)
	}
	return oid, nil
}

// AppendOID appends the content octets for oid to dst. The identifier must
// have at least two components, the first must be 0, 1 or 2 and the second
// must be below 40 unless the first is 2.
func AppendOID(dst []byte, oid dertext.ObjectIdentifier) ([]byte, error) {
	if len(oid) < 2 {
		return dst, valueErrorf("OBJECT IDENTIFIER", "fewer than two components")
	}
	if oid[0] > 2 || (oid[0] < 2 && oid[1] >= 40) {
		return dst, valueErrorf("OBJECT IDENTIFIER", "first components out of range")
	}
	if oid[1] > math.MaxUint64-40*oid[0] {
		return dst, valueErrorf("OBJECT IDENTIFIER", "second component too large")
	}
	dst = vlq.Append(dst, 40*oid[0]+oid[1])
	for _, v := range oid[2:] {
		dst = vlq.Append(dst, v)
	}
	return dst, nil
}

//endregion
