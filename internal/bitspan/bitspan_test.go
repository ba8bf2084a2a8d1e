package bitspan

import (
	"math/rand"
	"testing"
)

// TestRoundTrip proves that for every (p,w) with
// w in [1,64] and p+w <= 512, writing v&mask at (p,w) into a zeroed
// 64-byte buffer and extracting it back returns v&mask.
func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for p := uint16(0); p < 512; p += 7 {
		for w := uint8(1); w <= 64; w++ {
			if uint16(p)+uint16(w) > 512 {
				continue
			}
			span := New(p, w)
			v := rng.Uint64()
			want := v & maskOf(w)

			buf := make([]byte, 64)
			if err := Write(buf, span, v); err != nil {
				t.Fatalf("Write(pos=%d,width=%d): %v", p, w, err)
			}
			got, err := Extract(buf, span)
			if err != nil {
				t.Fatalf("Extract(pos=%d,width=%d): %v", p, w, err)
			}
			if got != want {
				t.Fatalf("pos=%d width=%d: got %#x want %#x", p, w, got, want)
			}
		}
	}
}

func TestExtractKnownLayout(t *testing.T) {
	buf := make([]byte, 64)
	buf[3] = 0b0010_0000 // bit 26 (0-indexed from MSB of byte 0) set

	v, err := Extract(buf, New(26, 1))
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Fatalf("got %d want 1", v)
	}

	// bit 27 must read 0.
	v, err = Extract(buf, New(27, 1))
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Fatalf("got %d want 0", v)
	}
}

func TestExtractSpanningBytes(t *testing.T) {
	buf := make([]byte, 64)
	// 32-bit field at bit 32 (byte 4), value 0x01020304 big-endian.
	buf[4], buf[5], buf[6], buf[7] = 0x01, 0x02, 0x03, 0x04

	v, err := Extract(buf, New(32, 32))
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x01020304 {
		t.Fatalf("got %#x want %#x", v, 0x01020304)
	}
}

func TestExtractErrors(t *testing.T) {
	buf := make([]byte, 64)

	if _, err := Extract(buf, New(0, 0)); err != ErrZeroWidth {
		t.Fatalf("zero width: got %v want %v", err, ErrZeroWidth)
	}
	if _, err := Extract(buf, Span{Pos: 0, Width: 65}); err == nil {
		t.Fatalf("width 65: expected error")
	}

	short := make([]byte, 2)
	if _, err := Extract(short, New(0, 32)); err == nil {
		t.Fatalf("short buffer: expected error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		span Span
		ok   bool
	}{
		{New(0, 1), true},
		{New(0, 64), true},
		{Span{Pos: 0, Width: 0}, false},
		{Span{Pos: 0, Width: 65}, false},
	}
	for _, c := range cases {
		err := c.span.Validate()
		if (err == nil) != c.ok {
			t.Errorf("Validate(%+v): err=%v, want ok=%v", c.span, err, c.ok)
		}
	}
}

func TestByteLen(t *testing.T) {
	cases := []struct {
		span Span
		want int
	}{
		{New(0, 1), 1},
		{New(7, 1), 1},
		{New(0, 8), 1},
		{New(0, 9), 2},
		{New(143, 1), 18},
	}
	for _, c := range cases {
		if got := c.span.ByteLen(); got != c.want {
			t.Errorf("ByteLen(%+v) = %d, want %d", c.span, got, c.want)
		}
	}
}
