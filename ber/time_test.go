// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"testing"
	"time"
)

func TestParseUTCTime(t *testing.T) {
	tests := map[string]struct {
		s       string
		want    time.Time
		wantErr bool
	}{
		"Zulu":          {"160801120000Z", time.Date(2016, 8, 1, 12, 0, 0, 0, time.UTC), false},
		"NoSeconds":     {"1608011200Z", time.Date(2016, 8, 1, 12, 0, 0, 0, time.UTC), false},
		"Offset":        {"160801120000+0230", time.Date(2016, 8, 1, 9, 30, 0, 0, time.UTC), false},
		"NegOffset":     {"160801120000-0100", time.Date(2016, 8, 1, 13, 0, 0, 0, time.UTC), false},
		"Y2K":           {"491231235959Z", time.Date(2049, 12, 31, 23, 59, 59, 0, time.UTC), false},
		"Last century":  {"500101000000Z", time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), false},
		"LeapSecond":    {"161231235960Z", time.Date(2016, 12, 31, 23, 59, 59, 0, time.UTC), false},
		"NoSuffix":      {"160801120000", time.Time{}, true},
		"BadMonth":      {"161301120000Z", time.Time{}, true},
		"BadDay":        {"160232120000Z", time.Time{}, true},
		"Short":         {"16080112Z", time.Time{}, true},
		"Garbage":       {"hello", time.Time{}, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseUTCTime(tt.s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUTCTime(%q) error = %v, wantErr %v", tt.s, err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("ParseUTCTime(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestParseGeneralizedTime(t *testing.T) {
	tests := map[string]struct {
		s       string
		want    time.Time
		wantErr bool
	}{
		"Zulu":         {"20160801120000Z", time.Date(2016, 8, 1, 12, 0, 0, 0, time.UTC), false},
		"NoSuffix":     {"20160801120000", time.Date(2016, 8, 1, 12, 0, 0, 0, time.UTC), false},
		"Fraction":     {"20160801120000.5Z", time.Date(2016, 8, 1, 12, 0, 0, 500_000_000, time.UTC), false},
		"Fraction7":    {"20160801120000.1234567Z", time.Date(2016, 8, 1, 12, 0, 0, 123_456_700, time.UTC), false},
		"Fraction9":    {"20160801120000.123456789Z", time.Date(2016, 8, 1, 12, 0, 0, 123_456_700, time.UTC), false},
		"Comma":        {"20160801120000,25Z", time.Date(2016, 8, 1, 12, 0, 0, 250_000_000, time.UTC), false},
		"Offset":       {"20160801120000+0230", time.Date(2016, 8, 1, 9, 30, 0, 0, time.UTC), false},
		"HourOnly":     {"2016080112Z", time.Date(2016, 8, 1, 12, 0, 0, 0, time.UTC), false},
		"LeapSecond":   {"20161231235960Z", time.Date(2016, 12, 31, 23, 59, 59, 0, time.UTC), false},
		"AncientYear":  {"00000101000000Z", time.Time{}, true},
		"EmptyFrac":    {"20160801120000.Z", time.Time{}, true},
		"FracNoSecs":   {"201608011200.5Z", time.Time{}, true},
		"BadOffset":    {"20160801120000+25", time.Time{}, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseGeneralizedTime(tt.s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGeneralizedTime(%q) error = %v, wantErr %v", tt.s, err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("ParseGeneralizedTime(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestFormatUTCTime(t *testing.T) {
	s, err := FormatUTCTime(time.Date(2016, 8, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FormatUTCTime() error = %v", err)
	}
	if s != "160801120000Z" {
		t.Errorf("FormatUTCTime() = %q", s)
	}
	if _, err := FormatUTCTime(time.Date(2050, 1, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Error("FormatUTCTime(2050) expected error")
	}
}

func TestFormatGeneralizedTime(t *testing.T) {
	tests := map[string]struct {
		t    time.Time
		want string
	}{
		"Plain":    {time.Date(2016, 8, 1, 12, 0, 0, 0, time.UTC), "20160801120000Z"},
		"Fraction": {time.Date(2016, 8, 1, 12, 0, 0, 500_000_000, time.UTC), "20160801120000.5Z"},
		"Trimmed":  {time.Date(2016, 8, 1, 12, 0, 0, 123_000_000, time.UTC), "20160801120000.123Z"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := FormatGeneralizedTime(tt.t)
			if err != nil {
				t.Fatalf("FormatGeneralizedTime() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatGeneralizedTime() = %q, want %q", got, tt.want)
			}
		})
	}
}
