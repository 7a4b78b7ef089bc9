// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dertext

import (
	"bytes"
	"testing"
)

func TestBitString(t *testing.T) {
	s := BitString{Bytes: []byte{0xB6, 0xC0}, Ignore: 6}
	if !s.IsValid() {
		t.Fatal("IsValid() = false")
	}
	if s.Len() != 10 {
		t.Errorf("Len() = %d, want 10", s.Len())
	}
	want := []int{1, 0, 1, 1, 0, 1, 1, 0, 1, 1}
	for i, w := range want {
		if got := s.At(i); got != w {
			t.Errorf("At(%d) = %d, want %d", i, got, w)
		}
	}
	if got := s.String(); got != "10110110 11" {
		t.Errorf("String() = %q", got)
	}
}

func TestBitString_Normalized(t *testing.T) {
	s := BitString{Bytes: []byte{0xFF}, Ignore: 4}
	n := s.Normalized()
	if !bytes.Equal(n.Bytes, []byte{0xF0}) || n.Ignore != 4 {
		t.Errorf("Normalized() = %+v", n)
	}
	// the original is untouched
	if s.Bytes[0] != 0xFF {
		t.Error("Normalized() modified its receiver")
	}
}

func TestBitString_IsValid(t *testing.T) {
	if (BitString{Ignore: 8}).IsValid() {
		t.Error("Ignore = 8 should be invalid")
	}
	if (BitString{Ignore: 1}).IsValid() {
		t.Error("ignore bits without payload should be invalid")
	}
	if !(BitString{}).IsValid() {
		t.Error("empty bit string should be valid")
	}
}

func TestObjectIdentifier(t *testing.T) {
	oid := ObjectIdentifier{1, 2, 840, 113549}
	if oid.String() != "1.2.840.113549" {
		t.Errorf("String() = %q", oid.String())
	}
	if !oid.Equal(ObjectIdentifier{1, 2, 840, 113549}) {
		t.Error("Equal() = false")
	}
	if oid.Equal(ObjectIdentifier{1, 2, 840}) || oid.Equal(ObjectIdentifier{1, 2, 840, 113550}) {
		t.Error("Equal() = true for different identifiers")
	}
}
