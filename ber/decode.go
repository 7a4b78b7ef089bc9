// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"errors"
	"io"

	"dertext.dev/dertext"
)

// Decode parses a complete BER-encoded data value from data and returns it as
// an [Element] tree. The input buffer is copied once; every Element of the
// returned tree references spans of that single copy (see [Element.Source]),
// so the tree remains valid if the caller reuses data.
//
// Decode accepts BER laxities: non-minimal tag and length encodings and the
// constructed indefinite-length format. Content octets are taken as-is; value
// level laxities are handled by the value codecs and by [Encode]. Trailing
// bytes after the data value are an error.
func Decode(data []byte) (*Element, error) {
	buf := bytes.Clone(data)
	e, end, err := decodeElement(buf, 0, 0)
	if err != nil {
		return nil, err
	}
	if end != len(buf) {
		return nil, &SyntaxError{end, errors.New("trailing data after data value")}
	}
	return e, nil
}

// decodeElement decodes the data value beginning at buf[off] and returns it
// together with the offset of the first byte after its encoding. The buffer
// may be a prefix re-slice of the decode buffer; offsets are always relative
// to the original buffer start.
func decodeElement(buf []byte, off, depth int) (*Element, int, error) {
	if depth > MaxDepth {
		return nil, off, ErrDepth
	}
	h, hn, err := parseHeader(buf, off)
	if err != nil {
		return nil, off, &SyntaxError{off, err}
	}
	if h.tag == (dertext.Tag{}) {
		// Universal tag 0 is reserved for the end-of-contents marker and must
		// not appear as a data value of its own.
		return nil, off, &SyntaxError{off, errors.New("unexpected end-of-contents")}
	}
	if h.tag.Class == dertext.ClassUniversal && !h.constructed &&
		(h.tag.Number == dertext.TagSequence || h.tag.Number == dertext.TagSet) {
		return nil, off, &SyntaxError{off, errors.New("primitive SEQUENCE or SET")}
	}

	start := off + hn
	if h.length == lengthIndefinite {
		if !h.constructed {
			return nil, off, &SyntaxError{off, errors.New("indefinite length on primitive data value")}
		}
		var children []*Element
		pos := start
		for {
			if pos+2 <= len(buf) && buf[pos] == 0x00 && buf[pos+1] == 0x00 {
				pos += 2
				break
			}
			if pos >= len(buf) {
				return nil, pos, &SyntaxError{off, io.ErrUnexpectedEOF}
			}
			child, end, err := decodeElement(buf, pos, depth+1)
			if err != nil {
				return nil, end, err
			}
			children = append(children, child)
			pos = end
		}
		return &Element{
			tag:         h.tag,
			constructed: true,
			children:    children,
			src:         buf[off:pos],
		}, pos, nil
	}

	if h.length > len(buf)-start {
		return nil, off, &SyntaxError{off, errors.New("length beyond end of buffer")}
	}
	end := start + h.length
	if !h.constructed {
		return &Element{
			tag:   h.tag,
			value: buf[start:end],
			src:   buf[off:end],
		}, end, nil
	}

	var children []*Element
	pos := start
	for pos < end {
		// Bound the child to the content octets of its parent so that a
		// child's declared length cannot reach past it.
		child, cend, err := decodeElement(buf[:end], pos, depth+1)
		if err != nil {
			return nil, cend, err
		}
		children = append(children, child)
		pos = cend
	}
	return &Element{
		tag:         h.tag,
		constructed: true,
		children:    children,
		src:         buf[off:end],
	}, end, nil
}
