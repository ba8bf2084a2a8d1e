package cfgerr

import (
	"testing"

	"github.com/danmuck/aethercfg/internal/sink"
)

// TestSaturation proves that given N+1 errors added
// to a buffer of capacity N, the first N-1 codes equal the first N-1 of the
// input stream and the Nth code equals the (N+1)th input (sticky-top
// overflow).
func TestSaturation(t *testing.T) {
	const n = 5
	buf := NewBuffer(n)

	var input []Code
	for i := 0; i < n+1; i++ {
		input = append(input, WithID(CategoryValidation, KindSettingUnset, uint32(i)))
	}
	for _, c := range input {
		buf.Add(c)
	}

	if buf.Len() != n {
		t.Fatalf("Len() = %d, want %d", buf.Len(), n)
	}
	got := buf.Codes()
	for i := 0; i < n-1; i++ {
		if got[i] != input[i] {
			t.Errorf("codes[%d] = %v, want %v", i, got[i], input[i])
		}
	}
	if got[n-1] != input[n] {
		t.Errorf("codes[%d] = %v, want %v (last input overwrote last slot)", n-1, got[n-1], input[n])
	}
}

func TestBufferEmptyAndReset(t *testing.T) {
	buf := NewBuffer(2)
	if buf.Any() {
		t.Fatal("new buffer should be empty")
	}
	buf.Add(WithID(CategoryParsing, KindNoTagsFound, 0))
	if !buf.Any() {
		t.Fatal("buffer should report Any() after Add")
	}
	buf.Reset()
	if buf.Any() || buf.Len() != 0 {
		t.Fatal("Reset should empty the buffer")
	}
}

func TestBufferZeroCapacity(t *testing.T) {
	buf := NewBuffer(0)
	buf.Add(WithID(CategoryParsing, KindNoTagsFound, 0))
	if buf.Any() {
		t.Fatal("zero-capacity buffer should never hold an entry")
	}
}

func TestBufferEmit(t *testing.T) {
	buf := NewBuffer(2)
	buf.Add(WithID(CategoryValidation, KindSettingUnset, 1))
	buf.Add(WithID(CategoryValidation, KindSettingUnset, 2))

	c := &sink.Collector{}
	buf.Emit(c, "unset setting: ")
	if len(c.Lines) != 2 {
		t.Fatalf("Emit wrote %d lines, want 2", len(c.Lines))
	}
	for _, l := range c.Lines {
		if l[:len("unset setting: ")] != "unset setting: " {
			t.Errorf("line %q missing prefix", l)
		}
	}
}
