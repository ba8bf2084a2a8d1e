// Package sink defines the logging capability the core hands every error
// and status line to: an injected interface the core calls synchronously
// and never retains past the call, so the pipeline itself carries no
// logger dependency.
package sink

// Sink accepts one formatted line. Implementations must not block
// indefinitely and must be safe to call from a single goroutine at a time
// (the core never calls a Sink concurrently with itself).
type Sink interface {
	Emit(line string)
}

// Discard is a Sink that drops every line; useful as a default for callers
// that process configuration without wanting log output (e.g. property
// tests that only care about the returned record and errors).
type Discard struct{}

func (Discard) Emit(string) {}

// Collector is a Sink that appends every line to a slice, useful for tests
// that want to assert on emitted log lines without wiring a real logger.
type Collector struct {
	Lines []string
}

func (c *Collector) Emit(line string) {
	c.Lines = append(c.Lines, line)
}
