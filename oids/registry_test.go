// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dertext.dev/dertext"
)

func TestCanonicalize(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    string
		wantErr bool
	}{
		"Canonical":     {"2.5.4.3", "2.5.4.3", false},
		"LeadingZeros":  {"2.05.004.03", "2.5.4.3", false},
		"ZeroComponent": {"0.0", "0.0", false},
		"BigSecond":     {"2.999", "2.999", false},
		"NoDot":         {"2", "", true},
		"LeadingDot":    {".2.5", "", true},
		"TrailingDot":   {"2.5.", "", true},
		"AdjacentDots":  {"2..5", "", true},
		"FirstTooBig":   {"3.1", "", true},
		"SecondTooBig":  {"1.40", "", true},
		"SecondTooBig0": {"0.040", "", true},
		"NotNumeric":    {"2.5.4x", "", true},
		"Empty":         {"", "", true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Canonicalize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToName(t *testing.T) {
	name, err := ToName("2.5.4.3")
	require.NoError(t, err)
	assert.Equal(t, "id-at-commonName", name)

	// non-canonical input resolves too
	name, err = ToName("2.05.4.03")
	require.NoError(t, err)
	assert.Equal(t, "id-at-commonName", name)

	// unknown OIDs are returned in canonical numeric form
	name, err = ToName("1.2.3.4.5")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4.5", name)

	_, err = ToName("not-an-oid-name")
	assert.Error(t, err)
}

func TestToOID(t *testing.T) {
	for _, input := range []string{
		"id-at-commonName",
		"commonName",
		"commonname",
		"COMMON-NAME",
		"common name",
		"2.5.4.3",
		"2.5.04.3",
	} {
		oid, err := ToOID(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "2.5.4.3", oid, "input %q", input)
	}

	_, err := ToOID("no-such-name")
	assert.Error(t, err)
}

func TestShortAliases(t *testing.T) {
	// id-ad-* gets the -IA suffix, id-kp-* the -EKU suffix
	oid, err := ToOID("ocsp-IA")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.5.5.7.48.1", oid)

	oid, err = ToOID("serverAuth-EKU")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.5.5.7.3.1", oid)

	oid, err = ToOID("timeStamping-IA")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.5.5.7.48.3", oid)

	oid, err = ToOID("timeStamping-EKU")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.5.5.7.3.8", oid)

	// a plain id-XX- prefix is simply stripped
	oid, err = ToOID("basicConstraints")
	require.NoError(t, err)
	assert.Equal(t, "2.5.29.19", oid)
}

func TestComponents(t *testing.T) {
	c, err := Components("id-at-commonName")
	require.NoError(t, err)
	assert.Equal(t, dertext.ObjectIdentifier{2, 5, 4, 3}, c)

	c, err = Components("1.2.840.113549")
	require.NoError(t, err)
	assert.Equal(t, dertext.ObjectIdentifier{1, 2, 840, 113549}, c)
}

func TestRegister_duplicate(t *testing.T) {
	// the normalised name is already taken by the builtin table
	err := Register("1.2.3.4", "common-name")
	assert.Error(t, err)
}

func TestRoundTrip_builtin(t *testing.T) {
	for _, e := range builtin {
		name, err := ToName(e.oid)
		require.NoError(t, err)
		oid, err := ToOID(name)
		require.NoError(t, err)
		assert.Equal(t, e.oid, oid, "name %q", name)
	}
}
