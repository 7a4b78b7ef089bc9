// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"testing"

	"dertext.dev/dertext"
)

func TestDecodeString(t *testing.T) {
	tests := map[string]struct {
		tag     uint32
		data    []byte
		want    string
		wantErr bool
	}{
		"Numeric":          {dertext.TagNumericString, []byte("123 456"), "123 456", false},
		"NumericBad":       {dertext.TagNumericString, []byte("12a"), "", true},
		"Printable":        {dertext.TagPrintableString, []byte("Hello, World?"), "Hello, World?", false},
		"PrintableBad":     {dertext.TagPrintableString, []byte("a;b"), "", true},
		"IA5":              {dertext.TagIA5String, []byte("foo\tbar"), "foo\tbar", false},
		"IA5Bad":           {dertext.TagIA5String, []byte{0x80}, "", true},
		"Teletex":          {dertext.TagTeletexString, []byte{0x66, 0xE9}, "fé", false},
		"General":          {dertext.TagGeneralString, []byte{0xFC}, "ü", false},
		"UTF8":             {dertext.TagUTF8String, []byte("héllo"), "héllo", false},
		"UTF8BOM":          {dertext.TagUTF8String, []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "hi", false},
		"UTF8Surrogates":   {dertext.TagUTF8String, []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "😀", false},
		"UTF8Lone":         {dertext.TagUTF8String, []byte{0xED, 0xA0, 0xBD}, "", true},
		"UTF8Bad":          {dertext.TagUTF8String, []byte{0xC3}, "", true},
		"BMP":              {dertext.TagBMPString, []byte{0x00, 0x68, 0x00, 0x69}, "hi", false},
		"BMPBOM":           {dertext.TagBMPString, []byte{0xFE, 0xFF, 0x00, 0x68}, "h", false},
		"BMPLittleEndian":  {dertext.TagBMPString, []byte{0xFF, 0xFE, 0x68, 0x00}, "h", false},
		"BMPPair":          {dertext.TagBMPString, []byte{0xD8, 0x3D, 0xDE, 0x00}, "\U0001F600", false},
		"BMPOdd":           {dertext.TagBMPString, []byte{0x00}, "", true},
		"BMPLone":          {dertext.TagBMPString, []byte{0xD8, 0x3D}, "", true},
		"Universal":        {dertext.TagUniversalString, []byte{0x00, 0x00, 0x00, 0x68}, "h", false},
		"UniversalAstral":  {dertext.TagUniversalString, []byte{0x00, 0x01, 0xF6, 0x00}, "\U0001F600", false},
		"UniversalBOM":     {dertext.TagUniversalString, []byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0x00, 0x68}, "h", false},
		"UniversalLE":      {dertext.TagUniversalString, []byte{0xFF, 0xFE, 0x00, 0x00, 0x68, 0x00, 0x00, 0x00}, "h", false},
		"UniversalSurPair": {dertext.TagUniversalString, []byte{0x00, 0x00, 0xD8, 0x3D, 0x00, 0x00, 0xDE, 0x00}, "\U0001F600", false},
		"UniversalRagged":  {dertext.TagUniversalString, []byte{0x00, 0x00, 0x00}, "", true},
		"UniversalTooBig":  {dertext.TagUniversalString, []byte{0x00, 0x11, 0x00, 0x00}, "", true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeString(tt.tag, tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("DecodeString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeString(t *testing.T) {
	tests := map[string]struct {
		tag  uint32
		s    string
		want []byte
	}{
		"IA5":            {dertext.TagIA5String, "foo", []byte("foo")},
		"Teletex":        {dertext.TagTeletexString, "fé", []byte{0x66, 0xE9}},
		"UTF8":           {dertext.TagUTF8String, "😀", []byte{0xF0, 0x9F, 0x98, 0x80}},
		"BMP":            {dertext.TagBMPString, "hi", []byte{0x00, 0x68, 0x00, 0x69}},
		"BMPAstral":      {dertext.TagBMPString, "\U0001F600", []byte{0xD8, 0x3D, 0xDE, 0x00}},
		"Universal":      {dertext.TagUniversalString, "h", []byte{0x00, 0x00, 0x00, 0x68}},
		"UniversalAstr":  {dertext.TagUniversalString, "\U0001F600", []byte{0x00, 0x01, 0xF6, 0x00}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := EncodeString(tt.tag, tt.s)
			if err != nil {
				t.Fatalf("EncodeString() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeString() = % X, want % X", got, tt.want)
			}
			// canonical encodings must decode back to the same string
			back, err := DecodeString(tt.tag, got)
			if err != nil {
				t.Fatalf("DecodeString() error = %v", err)
			}
			if back != tt.s {
				t.Errorf("DecodeString(EncodeString()) = %q, want %q", back, tt.s)
			}
		})
	}

	if _, err := EncodeString(dertext.TagTeletexString, "😀"); err == nil {
		t.Error("EncodeString(teletex, astral) expected error")
	}
	if _, err := EncodeString(dertext.TagNumericString, "abc"); err == nil {
		t.Error("EncodeString(numeric, letters) expected error")
	}
}
