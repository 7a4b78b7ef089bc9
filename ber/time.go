// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"strconv"
	"time"

	"dertext.dev/dertext"
)

// ParseTime parses the string form of a UTCTime or GeneralizedTime value,
// identified by its universal tag number, into a calendar instant normalised
// to UTC. The proleptic Gregorian calendar is used throughout (this matches
// the behaviour of the time package).
//
// A trailing offset suffix (Z or ±HHMM) is interpreted and folded into the
// instant. A seconds value of 60 is coerced to 59. Years outside 1..9999 are
// rejected. GeneralizedTime may carry fractional seconds; up to seven digits
// are consumed and any further digits are ignored.
func ParseTime(tag uint32, s string) (time.Time, error) {
	switch tag {
	case dertext.TagUTCTime:
		return ParseUTCTime(s)
	case dertext.TagGeneralizedTime:
		return ParseGeneralizedTime(s)
	}
	return time.Time{}, valueErrorf("time", "not a time type")
}

// ParseUTCTime parses a UTCTime string of the form YYMMDDHHMM[SS] followed by
// Z or a ±HHMM offset. Two-digit years below 50 map into 2000..2049, the rest
// into 1950..1999.
func ParseUTCTime(s string) (time.Time, error) {
	year, rest, ok := atoi(s, 2)
	if !ok {
		return time.Time{}, valueErrorf("UTCTime", "malformed date")
	}
	if year < 50 {
		year += 2000
	} else {
		year += 1900
	}
	return parseTimeTail("UTCTime", year, rest, false)
}

// ParseGeneralizedTime parses a GeneralizedTime string of the form
// YYYYMMDDHHMMSS with optional fractional seconds, followed by an optional Z
// or ±HHMM offset. A missing offset is interpreted as UTC.
func ParseGeneralizedTime(s string) (time.Time, error) {
	year, rest, ok := atoi(s, 4)
	if !ok {
		return time.Time{}, valueErrorf("GeneralizedTime", "malformed date")
	}
	return parseTimeTail("GeneralizedTime", year, rest, true)
}

// parseTimeTail parses the MMDDHHMM[SS] part common to both time types, the
// optional fraction (GeneralizedTime only) and the offset suffix.
func parseTimeTail(typ string, year int, s string, generalized bool) (time.Time, error) {
	var month, day, hour, minute, sec int
	var ok bool
	if month, s, ok = atoi(s, 2); !ok {
		return time.Time{}, valueErrorf(typ, "malformed date")
	}
	if day, s, ok = atoi(s, 2); !ok {
		return time.Time{}, valueErrorf(typ, "malformed date")
	}
	if hour, s, ok = atoi(s, 2); !ok {
		return time.Time{}, valueErrorf(typ, "malformed time")
	}
	haveMin := len(s) >= 2 && isDigit(s[0]) && isDigit(s[1])
	if haveMin {
		minute, s, _ = atoi(s, 2)
	} else if !generalized {
		return time.Time{}, valueErrorf(typ, "malformed time")
	}
	haveSec := haveMin && len(s) >= 2 && isDigit(s[0]) && isDigit(s[1])
	if haveSec {
		sec, s, _ = atoi(s, 2)
	}
	var nsec int
	if generalized && len(s) > 0 && (s[0] == '.' || s[0] == ',') {
		if !haveSec {
			return time.Time{}, valueErrorf(typ, "fraction without seconds")
		}
		s = s[1:]
		digits := 0
		scale := 100_000_000
		for len(s) > 0 && isDigit(s[0]) {
			if digits < 7 {
				nsec += int(s[0]-'0') * scale
				scale /= 10
			}
			digits++
			s = s[1:]
		}
		if digits == 0 {
			return time.Time{}, valueErrorf(typ, "empty fraction")
		}
	}

	loc := time.UTC
	switch {
	case s == "Z":
		s = ""
	case s == "" && generalized:
		// no suffix: interpreted as UTC
	case len(s) == 5 && (s[0] == '+' || s[0] == '-'):
		oh, rest, ok1 := atoi(s[1:], 2)
		om, _, ok2 := atoi(rest, 2)
		if !ok1 || !ok2 || oh > 23 || om > 59 {
			return time.Time{}, valueErrorf(typ, "malformed offset")
		}
		off := (oh*60 + om) * 60
		if s[0] == '-' {
			off = -off
		}
		loc = time.FixedZone(s[:5], off)
		s = ""
	default:
		return time.Time{}, valueErrorf(typ, "malformed offset")
	}
	if s != "" {
		return time.Time{}, valueErrorf(typ, "trailing characters")
	}

	if sec == 60 {
		// leap seconds cannot be represented, coerce to 59
		sec = 59
	}
	if year < 1 || year > 9999 {
		return time.Time{}, valueErrorf(typ, "year out of range")
	}
	t := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, loc)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return time.Time{}, valueErrorf(typ, "invalid calendar date")
	}
	return t.UTC(), nil
}

// FormatUTCTime returns the canonical UTCTime string for t:
// YYMMDDHHMMSSZ in UTC. The year of t must fall into 1950..2049.
func FormatUTCTime(t time.Time) (string, error) {
	t = t.UTC()
	if t.Year() < 1950 || t.Year() > 2049 {
		return "", valueErrorf("UTCTime", "year not representable")
	}
	return t.Format("060102150405Z"), nil
}

// FormatGeneralizedTime returns the canonical GeneralizedTime string for t:
// YYYYMMDDHHMMSS[.f…]Z in UTC with at most seven fraction digits and no
// trailing zeros.
func FormatGeneralizedTime(t time.Time) (string, error) {
	t = t.UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return "", valueErrorf("GeneralizedTime", "year out of range")
	}
	s := t.Format("20060102150405")
	if frac := fractionDigits(t); frac != "" {
		s += "." + frac
	}
	return s + "Z", nil
}

// fractionDigits returns up to seven fractional-second digits of t with
// trailing zeros removed.
func fractionDigits(t time.Time) string {
	ns := t.Nanosecond() / 100 // 100ns units, 7 digits
	if ns == 0 {
		return ""
	}
	s := strconv.Itoa(ns)
	for len(s) < 7 {
		s = "0" + s
	}
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s
}

// atoi parses exactly n leading decimal digits of s. It returns the value and
// the remaining string.
func atoi(s string, n int) (int, string, bool) {
	if len(s) < n {
		return 0, s, false
	}
	v := 0
	for i := 0; i < n; i++ {
		if !isDigit(s[i]) {
			return 0, s, false
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, s[n:], true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
