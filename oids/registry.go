// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oids maintains a process-wide bidirectional mapping between
// canonical numeric OBJECT IDENTIFIER values and symbolic names. The mapping
// is populated once at startup — from the built-in table in this package and
// from any additional [Register] calls — and is read-only afterwards. It is
// used by the text format to print OIDs symbolically and to resolve symbolic
// input.
//
// Names are matched leniently: whitespace and "-" are ignored and ASCII
// letters are compared case-insensitively, so "id-at-commonName",
// "commonname" and "Common Name" all resolve to the same entry.
package oids

import (
	"errors"
	"strings"

	"dertext.dev/dertext"
)

var (
	byOID  = make(map[string]string) // canonical numeric -> primary name
	byName = make(map[string]string) // normalised name -> canonical numeric
)

// Register adds a symbolic name for the given numeric OID. The numeric form
// may be non-canonical; it is canonicalised before registration. Registering
// an additional name for an already known OID is allowed and creates an
// alias; the first registered name stays the primary one. Registering a name
// whose normalised form is already taken is an error.
//
// Names beginning with an "id-XX-" prefix additionally get a short alias with
// the prefix removed; "id-ad-" names alias to "*-IA" and "id-kp-" names to
// "*-EKU" to keep the short forms unambiguous.
//
// Register must only be called during startup; the registry is not safe for
// concurrent mutation.
func Register(oid, name string) error {
	canonical, err := Canonicalize(oid)
	if err != nil {
		return err
	}
	if err := addName(canonical, name); err != nil {
		return err
	}
	if alias, ok := shortAlias(name); ok {
		if err := addName(canonical, alias); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like [Register] but panics on error. It is intended for
// registration from init functions and package-level variable initialisers.
func MustRegister(oid, name string) {
	if err := Register(oid, name); err != nil {
		panic("oids: " + err.Error())
	}
}

func addName(canonical, name string) error {
	n := normalize(name)
	if n == "" {
		return errors.New("oids: empty name")
	}
	if _, ok := byName[n]; ok {
		return errors.New("oids: name already registered: " + name)
	}
	byName[n] = canonical
	if _, ok := byOID[canonical]; !ok {
		byOID[canonical] = name
	}
	return nil
}

// shortAlias derives the short alias for names of the form "id-XX-rest".
func shortAlias(name string) (string, bool) {
	if len(name) < 7 || !strings.HasPrefix(name, "id-") || name[5] != '-' {
		return "", false
	}
	rest := name[6:]
	switch name[:6] {
	case "id-ad-":
		return rest + "-IA", true
	case "id-kp-":
		return rest + "-EKU", true
	}
	return rest, true
}

// normalize maps a symbolic name to its lookup key: whitespace and "-" are
// removed and ASCII letters are lowercased.
func normalize(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '-' || c == ' ' || c == '\t' || c == '\r' || c == '\n':
		case 'A' <= c && c <= 'Z':
			sb.WriteByte(c + ('a' - 'A'))
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// ToName returns the primary symbolic name for the given numeric OID, or the
// canonical numeric form itself when no name is registered. The input may be
// non-canonical. ToName returns an error only when the input is not a valid
// numeric OID.
func ToName(oid string) (string, error) {
	canonical, err := Canonicalize(oid)
	if err != nil {
		return "", err
	}
	if name, ok := byOID[canonical]; ok {
		return name, nil
	}
	return canonical, nil
}

// ToOID resolves input — a numeric OID in canonical or non-canonical form, or
// a registered symbolic name — to the canonical numeric form.
func ToOID(input string) (string, error) {
	if isNumeric(input) {
		return Canonicalize(input)
	}
	if oid, ok := byName[normalize(input)]; ok {
		return oid, nil
	}
	return "", errors.New("oids: unknown name: " + input)
}

// Components resolves input like [ToOID] and returns the numeric components.
func Components(input string) (dertext.ObjectIdentifier, error) {
	s, err := ToOID(input)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, ".")
	oid := make(dertext.ObjectIdentifier, len(parts))
	for i, p := range parts {
		var v uint64
		for j := 0; j < len(p); j++ {
			d := uint64(p[j] - '0')
			if v > (1<<64-1-d)/10 {
				return nil, errors.New("oids: component too large: " + p)
			}
			v = v*10 + d
		}
		oid[i] = v
	}
	return oid, nil
}

// isNumeric reports whether s consists of digits and dots only. It does not
// imply that s is a well-formed OID.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '.' && (s[i] < '0' || s[i] > '9') {
			return false
		}
	}
	return true
}

// Canonicalize validates the numeric OID s and returns its canonical form. A
// numeric OID is valid iff it contains only digits and dots, has no leading
// or trailing dot, no adjacent dots, at least one dot, its first component is
// 0, 1 or 2, and its second component is below 40 when the first is 0 or 1.
// Canonicalisation strips redundant leading zeros from every component.
func Canonicalize(s string) (string, error) {
	if !isNumeric(s) {
		return "", errors.New("oids: not a numeric OID: " + s)
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return "", errors.New("oids: need at least two components: " + s)
	}
	var sb strings.Builder
	sb.Grow(len(s))
	var first string
	for i, p := range parts {
		if p == "" {
			return "", errors.New("oids: empty component: " + s)
		}
		for len(p) > 1 && p[0] == '0' {
			p = p[1:]
		}
		switch i {
		case 0:
			if p != "0" && p != "1" && p != "2" {
				return "", errors.New("oids: first component out of range: " + s)
			}
			first = p
		case 1:
			if first != "2" && (len(p) > 2 || len(p) == 2 && p >= "40") {
				return "", errors.New("oids: second component out of range: " + s)
			}
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(p)
	}
	return sb.String(), nil
}
