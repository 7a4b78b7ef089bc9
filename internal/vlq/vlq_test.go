package vlq

import (
	"errors"
	"slices"
	"testing"
)

func TestAppend(t *testing.T) {
	tests := []struct {
		value uint
		want  []byte
	}{
		{0, []byte{0x00}},
		{25, []byte{25}},
		{127, []byte{0x7f}},
		{128, []byte{0x81, 0x00}},
		{641, []byte{0x85, 0x01}},
		{1<<21 - 1, []byte{0xff, 0xff, 0x7f}},
	}
	for _, tt := range tests {
		if l := Len(tt.value); l != len(tt.want) {
			t.Errorf("Len(%d) = %d, want %d", tt.value, l, len(tt.want))
		}
		if got := Append(nil, tt.value); !slices.Equal(got, tt.want) {
			t.Errorf("Append(%d) = % X, want % X", tt.value, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		want    uint
		wantN   int
		wantErr error
	}{
		"SingleByte": {[]byte{0x05}, 5, 1, nil},
		"MultiByte":  {[]byte{0x85, 0x01, 0x00}, 641, 2, nil},
		"NonMinimal": {[]byte{0x80, 0x85, 0x01}, 641, 3, nil},
		"Empty":      {nil, 0, 0, ErrTruncated},
		"Truncated":  {[]byte{0x81, 0x80}, 0, 2, ErrTruncated},
		"Overflow":   {[]byte{0x82, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, 0, 10, ErrOverflow},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, n, err := Parse[uint](tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want || n != tt.wantN {
				t.Errorf("Parse() = (%v, %d), want (%v, %d)", got, n, tt.want, tt.wantN)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 300, 1 << 14, 1<<31 - 1} {
		got, n, err := Parse[uint32](Append(nil, v))
		if err != nil {
			t.Fatalf("Parse(Append(%d)) error = %v", v, err)
		}
		if got != v || n != Len(v) {
			t.Errorf("round trip of %d = (%d, %d)", v, got, n)
		}
	}
}
