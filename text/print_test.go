// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dertext.dev/dertext"
	"dertext.dev/dertext/ber"
)

func TestPrint_compact(t *testing.T) {
	tests := map[string]struct {
		der  []byte
		want string
	}{
		"Bool":       {[]byte{0x01, 0x01, 0xFF}, `(bool true)`},
		"Int":        {[]byte{0x02, 0x01, 0x2A}, `(int 42)`},
		"Null":       {[]byte{0x05, 0x00}, `(null)`},
		"OID":        {[]byte{0x06, 0x03, 0x55, 0x04, 0x03}, `(oid id-at-commonName)`},
		"Blob":       {[]byte{0x04, 0x02, 0xDE, 0xAD}, `(blob de ad)`},
		"IA5":        {[]byte{0x16, 0x03, 0x66, 0x6F, 0x6F}, `(ia5 "foo")`},
		"Bits":       {[]byte{0x03, 0x02, 0x04, 0xB0}, `(bits 4 b0)`},
		"UTC":        {append([]byte{0x17, 0x0D}, "160801120000Z"...), `(utc "160801120000Z")`},
		"Sequence":   {[]byte{0x30, 0x05, 0x02, 0x01, 0x2A, 0x05, 0x00}, `(sequence (int 42) (null))`},
		"EmptySeq":   {[]byte{0x30, 0x00}, `(sequence)`},
		"Context":    {[]byte{0x80, 0x02, 0xAA, 0xBB}, `([0] blob aa bb)`},
		"ContextCon": {[]byte{0xA0, 0x02, 0x05, 0x00}, `([0] sequence (null))`},
		"AppTag":     {[]byte{0x45, 0x01, 0xAA}, `([application 5] blob aa)`},
		"PrivTag":    {[]byte{0xC1, 0x01, 0x07}, `([private 1] blob 07)`},
		"UnivTag":    {[]byte{0x09, 0x01, 0x40}, `([universal 9] blob 40)`},
		"Enum":       {[]byte{0x0A, 0x01, 0x02}, `(enum 2)`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e, err := ber.Decode(tt.der)
			require.NoError(t, err)
			got, err := Print(e, PrintOptions{Compact: true})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrint_numericOIDs(t *testing.T) {
	e, err := ber.Decode([]byte{0x06, 0x03, 0x55, 0x04, 0x03})
	require.NoError(t, err)
	got, err := Print(e, PrintOptions{Compact: true, NumericOIDs: true})
	require.NoError(t, err)
	assert.Equal(t, `(oid 2.5.4.3)`, got)
}

func TestPrint_indented(t *testing.T) {
	e, err := ber.Decode([]byte{0x30, 0x05, 0x02, 0x01, 0x2A, 0x05, 0x00})
	require.NoError(t, err)
	got, err := Print(e, PrintOptions{})
	require.NoError(t, err)
	assert.Equal(t, "(sequence\n    (int 42)\n    (null)\n)\n", got)

	got, err = Print(e, PrintOptions{Indent: "\t"})
	require.NoError(t, err)
	assert.Equal(t, "(sequence\n\t(int 42)\n\t(null)\n)\n", got)
}

func TestPrint_asciiPeek(t *testing.T) {
	e, err := ber.Decode([]byte{0x04, 0x02, 'h', 'i'})
	require.NoError(t, err)
	got, err := Print(e, PrintOptions{})
	require.NoError(t, err)
	assert.Equal(t, "(blob 68 69 { \"hi\" })\n", got)

	// suppressed in compact mode
	got, err = Print(e, PrintOptions{Compact: true})
	require.NoError(t, err)
	assert.Equal(t, `(blob 68 69)`, got)

	// not printable: no comment
	e, err = ber.Decode([]byte{0x04, 0x02, 0x00, 0x01})
	require.NoError(t, err)
	got, err = Print(e, PrintOptions{})
	require.NoError(t, err)
	assert.Equal(t, "(blob 00 01)\n", got)
}

func TestPrint_timeComment(t *testing.T) {
	e, err := ber.Decode(append([]byte{0x17, 0x0D}, "160801120000Z"...))
	require.NoError(t, err)
	got, err := Print(e, PrintOptions{})
	require.NoError(t, err)
	assert.Equal(t, "(utc \"160801120000Z\" { 2016-08-01 12:00:00 UTC })\n", got)
}

func TestPrint_nestedBlob(t *testing.T) {
	// the blob contains a canonical DER object: descend
	e, err := ber.Decode([]byte{0x04, 0x02, 0x05, 0x00})
	require.NoError(t, err)
	got, err := Print(e, PrintOptions{Compact: true})
	require.NoError(t, err)
	assert.Equal(t, `(blob (null))`, got)

	// the contents decode but are not canonical DER: the hex dump is kept
	e, err = ber.Decode([]byte{0x04, 0x04, 0x02, 0x02, 0x00, 0x05})
	require.NoError(t, err)
	got, err = Print(e, PrintOptions{Compact: true})
	require.NoError(t, err)
	assert.Equal(t, `(blob 02 02 00 05)`, got)
}

func TestPrint_nestedBits(t *testing.T) {
	e, err := ber.Decode([]byte{0x03, 0x03, 0x00, 0x05, 0x00})
	require.NoError(t, err)
	got, err := Print(e, PrintOptions{Compact: true})
	require.NoError(t, err)
	assert.Equal(t, `(bits 0 (null))`, got)

	// non-zero ignore count: never descend
	e, err = ber.Decode([]byte{0x03, 0x03, 0x01, 0x05, 0x00})
	require.NoError(t, err)
	got, err = Print(e, PrintOptions{Compact: true})
	require.NoError(t, err)
	assert.Equal(t, `(bits 1 05 00)`, got)
}

func TestPrint_primitiveSequenceFails(t *testing.T) {
	e := ber.NewPrimitive(dertext.Universal(dertext.TagSequence), []byte{0x01})
	_, err := Print(e, PrintOptions{Compact: true})
	assert.Error(t, err)
}

// TestPrint_roundTrip checks the round-trip law: building the printed form
// of an element yields an element with the identical DER encoding.
func TestPrint_roundTrip(t *testing.T) {
	ders := map[string][]byte{
		"Bool":      {0x01, 0x01, 0xFF},
		"Int":       {0x02, 0x09, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		"OID":       {0x06, 0x03, 0x55, 0x04, 0x03},
		"Bits":      {0x03, 0x02, 0x04, 0xB0},
		"UTC":       append([]byte{0x17, 0x0D}, "160801120000Z"...),
		"Implicit":  {0x80, 0x03, 0x66, 0x6F, 0x6F},
		"Explicit":  {0xA2, 0x03, 0x02, 0x01, 0x05},
		"Nested":    {0x04, 0x05, 0x30, 0x03, 0x02, 0x01, 0x07},
		"BigBlob":   append([]byte{0x04, 0x20}, make([]byte, 32)...),
		"Structure": {0x30, 0x0E, 0x31, 0x06, 0x02, 0x01, 0x01, 0x04, 0x01, 0xAA, 0x16, 0x04, 0x74, 0x65, 0x73, 0x74},
		"Unknown":   {0x09, 0x03, 0x80, 0xFB, 0x05},
	}
	for name, der := range ders {
		for _, compact := range []bool{false, true} {
			t.Run(name, func(t *testing.T) {
				e, err := ber.Decode(der)
				require.NoError(t, err)
				src, err := Print(e, PrintOptions{Compact: compact})
				require.NoError(t, err)
				rebuilt, err := Build(src, nil)
				require.NoError(t, err, "source:\n%s", src)
				require.NotNil(t, rebuilt)
				enc, err := ber.Encode(rebuilt)
				require.NoError(t, err)
				assert.Equal(t, der, enc, "source:\n%s", src)
			})
		}
	}
}
