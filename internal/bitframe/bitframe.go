// Package bitframe implements the bit-frame parser: a random-access bit
// extractor that pulls typed slices out of a byte buffer by (offset,
// width) and stores each as a little-endian integer into the matching
// schema Setting's buffer.
package bitframe

import (
	"encoding/binary"

	"github.com/danmuck/aethercfg/internal/bitspan"
	"github.com/danmuck/aethercfg/internal/cfgerr"
	"github.com/danmuck/aethercfg/internal/setting"
)

// Parser validates and extracts a bit-frame payload against a bound
// schema. minSize is computed once, at construction, as
// ceil((max_pos+1)/8) over every bound setting's bit-span, so the
// minimum-size check travels with whatever schema is actually bound.
type Parser struct {
	schema  []*setting.Setting
	minSize int
	errs    *cfgerr.Buffer
}

// New binds a Parser to schema, computing the minimum frame size the bound
// bit-spans require.
func New(schema []*setting.Setting) *Parser {
	minSize := 0
	for _, s := range schema {
		if !s.HasBits() {
			continue
		}
		if l := s.Bits().ByteLen(); l > minSize {
			minSize = l
		}
	}
	return &Parser{schema: schema, minSize: minSize, errs: cfgerr.NewBuffer(2)}
}

// MinSize returns the minimum frame length this parser's schema requires.
func (p *Parser) MinSize() int { return p.minSize }

// Errors returns the parser's accumulated parsing errors.
func (p *Parser) Errors() *cfgerr.Buffer { return p.errs }

// HasErrors reports whether the last Parse call recorded any error.
func (p *Parser) HasErrors() bool { return p.errs.Any() }

func (p *Parser) reset() {
	for _, s := range p.schema {
		s.Reset()
	}
	p.errs.Reset()
}

// Parse validates buf and, if valid, extracts every bit-mapped setting's
// value into its buffer as 8 little-endian bytes. A nil buf or one shorter
// than MinSize leaves every setting untouched.
func (p *Parser) Parse(buf []byte) {
	p.errs.Reset()

	if buf == nil {
		p.errs.Add(cfgerr.WithInt24(cfgerr.CategoryParsing, cfgerr.KindInvalidMessagePointer, 0))
		return
	}
	if len(buf) < p.minSize {
		p.errs.Add(cfgerr.WithInt24(cfgerr.CategoryParsing, cfgerr.KindInsufficientMessageSize, int32(len(buf))))
		return
	}

	p.reset()
	for _, s := range p.schema {
		if !s.HasBits() {
			continue
		}
		v, err := bitspan.Extract(buf, s.Bits())
		if err != nil {
			// The span was already validated against minSize above; this
			// can only happen for a malformed schema, not a malformed
			// payload, so it is not reported through the error buffer.
			continue
		}
		var le [8]byte
		binary.LittleEndian.PutUint64(le[:], v)
		s.SetValue(le[:])
	}
}
