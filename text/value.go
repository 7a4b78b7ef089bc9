// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"errors"
	"math/big"
	"strings"
	"time"

	"dertext.dev/dertext/ber"
)

// Kind identifies the dynamic type of a [Value].
//
//go:generate stringer -type=Kind -trimprefix=Kind
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindBigInt
	KindBytes
	KindString
	KindElement
	KindTime
	KindList
)

// Value is a dynamically typed parameter for the builder and matcher. The
// zero Value is the null value; a null parameter makes the specification node
// that references it absent during a build.
//
// Every Value holds exactly one of: nothing (null), a boolean, a native
// integer, a big integer, a byte slice, a string, an element, a calendar
// instant, or a list of further values. Lists drive the repetition markers:
// during a build a "*" iterates over list parameters in lockstep, and during
// a match accumulated captures form lists.
type Value struct {
	kind Kind
	b    bool
	i    int64
	big  *big.Int
	bs   []byte
	s    string
	el   *ber.Element
	t    time.Time
	list []Value
}

// Null returns the null value. It is equivalent to the zero Value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a native integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// BigInt returns an arbitrary-precision integer value. A nil argument yields
// the null value.
func BigInt(n *big.Int) Value {
	if n == nil {
		return Value{}
	}
	return Value{kind: KindBigInt, big: n}
}

// Bytes returns a byte-slice value. The slice is retained, not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bs: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Element returns an element value. A nil argument yields the null value.
func Element(e *ber.Element) Value {
	if e == nil {
		return Value{}
	}
	return Value{kind: KindElement, el: e}
}

// Time returns a calendar instant value. The zero instant yields the null
// value; this is the "unset" sentinel for optional time parameters.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Value{}
	}
	return Value{kind: KindTime, t: t}
}

// List returns a list value holding the given values.
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Kind returns the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue returns the boolean held by v. The second return value reports
// whether v holds a boolean.
func (v Value) BoolValue() (bool, bool) { return v.b, v.kind == KindBool }

// IntValue returns the big integer held by v, converting a native integer if
// necessary.
func (v Value) IntValue() (*big.Int, bool) {
	switch v.kind {
	case KindInt:
		return big.NewInt(v.i), true
	case KindBigInt:
		return v.big, true
	}
	return nil, false
}

// BytesValue returns the byte slice held by v.
func (v Value) BytesValue() ([]byte, bool) { return v.bs, v.kind == KindBytes }

// StringValue returns the string held by v.
func (v Value) StringValue() (string, bool) { return v.s, v.kind == KindString }

// ElementValue returns the element held by v.
func (v Value) ElementValue() (*ber.Element, bool) { return v.el, v.kind == KindElement }

// TimeValue returns the calendar instant held by v.
func (v Value) TimeValue() (time.Time, bool) { return v.t, v.kind == KindTime }

// ListValue returns the list held by v.
func (v Value) ListValue() ([]Value, bool) { return v.list, v.kind == KindList }

// asBool coerces v for the bool keyword: a boolean, or a string spelling
// true|on|yes|1|false|off|no|0.
func (v Value) asBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindString:
		return parseBoolWord(v.s)
	}
	return false, errors.New("parameter is not a boolean")
}

func parseBoolWord(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "on", "yes", "1":
		return true, nil
	case "false", "off", "no", "0":
		return false, nil
	}
	return false, errors.New("not a boolean word: " + s)
}

// asBigInt coerces v for the int and enum keywords: a native or big integer,
// or a string parsed as a decimal number.
func (v Value) asBigInt() (*big.Int, error) {
	switch v.kind {
	case KindInt:
		return big.NewInt(v.i), nil
	case KindBigInt:
		return v.big, nil
	case KindString:
		n, ok := new(big.Int).SetString(strings.TrimSpace(v.s), 10)
		if !ok {
			return nil, errors.New("not a decimal number: " + v.s)
		}
		return n, nil
	}
	return nil, errors.New("parameter is not an integer")
}

// asBytes coerces v for byte payloads: a byte slice, or an element which is
// DER-encoded.
func (v Value) asBytes() ([]byte, error) {
	switch v.kind {
	case KindBytes:
		return v.bs, nil
	case KindElement:
		return ber.Encode(v.el)
	}
	return nil, errors.New("parameter is not a byte array")
}

// Params is the parameter vector shared by [Build] and [Match]. Build reads
// parameters and never writes them; Match writes parameters and grows the
// vector as needed.
type Params []Value
