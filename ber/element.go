// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"iter"
	"slices"

	"dertext.dev/dertext"
)

// Element is a node of an ASN.1 value tree. An Element is either primitive,
// in which case it carries its raw content octets, or constructed, in which
// case it carries an ordered sequence of child Elements.
//
// Elements are immutable once constructed. An Element decoded from input
// additionally records the span of the input buffer it was decoded from (see
// [Element.Source]); all Elements of one decode share the same underlying
// buffer. Callers must not modify byte slices passed to or returned from an
// Element.
type Element struct {
	tag         dertext.Tag
	constructed bool
	value       []byte     // content octets, primitive only
	children    []*Element // constructed only
	src         []byte     // encoded span when decoded from input
}

// Shared literal constants. These are the only Elements that are shared by
// construction; everything else forms a strict ownership tree.
var (
	True  = NewPrimitive(dertext.Universal(dertext.TagBoolean), []byte{0xff})
	False = NewPrimitive(dertext.Universal(dertext.TagBoolean), []byte{0x00})
	Null  = NewPrimitive(dertext.Universal(dertext.TagNull), nil)
)

// NewPrimitive returns a primitive Element with the given tag and content
// octets. The value slice is retained; the caller must not modify it
// afterwards.
func NewPrimitive(tag dertext.Tag, value []byte) *Element {
	return &Element{tag: tag, value: value}
}

// NewConstructed returns a constructed Element with the given tag whose
// children are the given elements in order.
func NewConstructed(tag dertext.Tag, children ...*Element) *Element {
	return &Element{tag: tag, constructed: true, children: slices.Clone(children)}
}

// NewSetOf returns a SET OF element. The children are sorted by the
// lexicographic order of their DER encodings as required by DER; children
// with identical encodings are merged into one.
func NewSetOf(children ...*Element) (*Element, error) {
	encs := make([][]byte, len(children))
	for i, c := range children {
		enc, err := Encode(c)
		if err != nil {
			return nil, err
		}
		encs[i] = enc
	}
	perm := make([]int, len(children))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return bytes.Compare(encs[a], encs[b])
	})
	sorted := make([]*Element, 0, len(children))
	for i, p := range perm {
		if i > 0 && bytes.Equal(encs[p], encs[perm[i-1]]) {
			continue // identical encoding, merge
		}
		sorted = append(sorted, children[p])
	}
	return &Element{tag: dertext.Universal(dertext.TagSet), constructed: true, children: sorted}, nil
}

// NewSetDER returns a SET element whose children are sorted by (class, tag
// number) as required by the DER rules for SET types. Two children with the
// same tag make the set ambiguous and cause an error.
func NewSetDER(children ...*Element) (*Element, error) {
	sorted := slices.Clone(children)
	slices.SortStableFunc(sorted, func(a, b *Element) int {
		if a.tag.Class != b.tag.Class {
			return int(a.tag.Class) - int(b.tag.Class)
		}
		switch {
		case a.tag.Number < b.tag.Number:
			return -1
		case a.tag.Number > b.tag.Number:
			return 1
		}
		return 0
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].tag == sorted[i-1].tag {
			return nil, valueErrorf("SET", "duplicate tag "+sorted[i].tag.String())
		}
	}
	return &Element{tag: dertext.Universal(dertext.TagSet), constructed: true, children: sorted}, nil
}

// Tag returns the tag of e.
func (e *Element) Tag() dertext.Tag { return e.tag }

// Constructed reports whether e uses the constructed encoding.
func (e *Element) Constructed() bool { return e.constructed }

// Value returns the content octets of a primitive Element. It returns nil for
// constructed Elements. The returned slice must not be modified.
func (e *Element) Value() []byte {
	if e.constructed {
		return nil
	}
	return e.value
}

// Len returns the number of children of e. It returns 0 for primitive
// Elements.
func (e *Element) Len() int { return len(e.children) }

// Child returns the i-th child of e. It panics if i is out of range.
func (e *Element) Child(i int) *Element { return e.children[i] }

// Children returns an iterator over the children of e in order.
func (e *Element) Children() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, c := range e.children {
			if !yield(c) {
				return
			}
		}
	}
}

// Source returns the exact encoded span (identifier, length and content
// octets) that e was decoded from, or nil if e was constructed from scratch.
// The returned slice must not be modified.
func (e *Element) Source() []byte { return e.src }

// Equal reports whether e and other have equal canonical DER encodings. Two
// elements that cannot be encoded are never equal.
func (e *Element) Equal(other *Element) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil {
		return false
	}
	b1, err1 := Encode(e)
	b2, err2 := Encode(other)
	return err1 == nil && err2 == nil && bytes.Equal(b1, b2)
}

// Duplicate returns a copy of e reconstructed from its public view alone: all
// source spans are dropped and every primitive value of a known universal
// type is re-parsed and re-encoded through its canonical codec. Encoding the
// duplicate therefore reflects exactly what a consumer of the tree would
// observe, which makes it the safe basis for re-encodability checks.
func (e *Element) Duplicate() (*Element, error) {
	if e.constructed {
		children := make([]*Element, len(e.children))
		for i, c := range e.children {
			d, err := c.Duplicate()
			if err != nil {
				return nil, err
			}
			children[i] = d
		}
		return &Element{tag: e.tag, constructed: true, children: children}, nil
	}
	value, err := canonicalValue(e.tag, e.value)
	if err != nil {
		return nil, err
	}
	return &Element{tag: e.tag, value: value}, nil
}
