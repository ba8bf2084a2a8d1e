package cfgerr

import (
	"fmt"

	"github.com/danmuck/aethercfg/internal/sink"
)

// Buffer is a bounded, append-only ring of Codes with sticky-top overflow:
// once full, every further Add overwrites the last slot instead of growing
// or dropping the new value, so the most recent error always survives at
// the cost of an older one in the same slot.
type Buffer struct {
	codes []Code
	count int
}

// NewBuffer allocates a Buffer with fixed capacity. A capacity of 0 is a
// valid, permanently-empty buffer.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{codes: make([]Code, capacity)}
}

// Add appends c, or overwrites the last slot if the buffer is already at
// capacity.
func (b *Buffer) Add(c Code) {
	if len(b.codes) == 0 {
		return
	}
	idx := b.count
	if idx >= len(b.codes) {
		idx = len(b.codes) - 1
	}
	b.codes[idx] = c
	if b.count < len(b.codes) {
		b.count++
	}
}

// Len returns the number of entries currently held (capped at capacity).
func (b *Buffer) Len() int { return b.count }

// Cap returns the fixed capacity this buffer was constructed with.
func (b *Buffer) Cap() int { return len(b.codes) }

// Any reports whether any error has been recorded.
func (b *Buffer) Any() bool { return b.count > 0 }

// Codes returns the live entries, oldest first. The returned slice aliases
// internal storage and must not be retained past the next Add or Reset.
func (b *Buffer) Codes() []Code { return b.codes[:b.count] }

// Reset empties the buffer without releasing its backing storage.
func (b *Buffer) Reset() { b.count = 0 }

// Emit writes every live entry to s, one line per code, each prefixed with
// prefix: hex-formatted error codes preceded by a human-readable label.
func (b *Buffer) Emit(s sink.Sink, prefix string) {
	for _, c := range b.Codes() {
		s.Emit(fmt.Sprintf("%s%s", prefix, c))
	}
}
