// Package tagtree implements the tag-tree parser: an event-driven walker
// that consumes tokenizer events and matches nested tag paths against a
// schema of settings, capturing each recognized leaf's text into the
// matching Setting's buffer.
package tagtree

import (
	"github.com/danmuck/aethercfg/internal/cfgerr"
	"github.com/danmuck/aethercfg/internal/setting"
	"github.com/danmuck/aethercfg/internal/tagpath"
	"github.com/danmuck/aethercfg/internal/tokenizer"
)

// Parser walks a tokenizer.Event stream and, for each recognized leaf,
// captures its text content into the matching schema Setting's buffer.
type Parser struct {
	schema       []*setting.Setting
	matchedDepth []int
	errs         *cfgerr.Buffer
	sawAnyTag    bool
}

// New binds a Parser to schema. The error buffer is sized to the schema
// length plus headroom for the end-of-input imbalance/empty/no-tags
// errors.
func New(schema []*setting.Setting) *Parser {
	return &Parser{
		schema:       schema,
		matchedDepth: make([]int, len(schema)),
		errs:         cfgerr.NewBuffer(len(schema) + 4),
	}
}

// Errors returns the parser's accumulated parsing errors.
func (p *Parser) Errors() *cfgerr.Buffer { return p.errs }

// HasErrors reports whether the last Parse call recorded any error.
func (p *Parser) HasErrors() bool { return p.errs.Any() }

func (p *Parser) reset() {
	for i := range p.matchedDepth {
		p.matchedDepth[i] = 0
	}
	for _, s := range p.schema {
		s.Reset()
	}
	p.errs.Reset()
	p.sawAnyTag = false
}

// Parse scans input and populates the buffers of every matching schema
// Setting. Parse may be called repeatedly on the same Parser; each call
// starts from a clean slate.
func (p *Parser) Parse(input string) {
	p.reset()

	if len(input) == 0 {
		p.errs.Add(cfgerr.WithHighLow(cfgerr.CategoryParsing, cfgerr.KindEmptyConfig, 1, 1))
		return
	}

	events, finalPos := tokenizer.Tokenize(input)

	depth := 0
	selected := -1

	for _, ev := range events {
		switch ev.Kind {
		case tokenizer.Open:
			if depth < tagpath.MaxDepth {
				for i, s := range p.schema {
					if p.matchedDepth[i] == depth && s.Tag(depth) == ev.Name {
						p.matchedDepth[i] = depth + 1
						selected = i // later-declared setting wins on a shared prefix
					}
				}
			}
			depth++
			p.sawAnyTag = true

		case tokenizer.Close:
			depth--

		case tokenizer.Text:
			if selected < 0 {
				continue
			}
			s := p.schema[selected]
			if p.matchedDepth[selected] != depth {
				continue
			}
			finalTagReached := depth == tagpath.MaxDepth || s.Tag(depth) == ""
			if !finalTagReached {
				continue
			}
			truncated := s.SetValue([]byte(ev.Text))
			if truncated {
				p.errs.Add(cfgerr.WithHighLow(cfgerr.CategoryParsing, cfgerr.KindExceedsMaxValueLength,
					uint16(ev.Pos.Col), uint16(ev.Pos.Line)))
			}
			p.matchedDepth[selected] = 0
		}
	}

	switch {
	case depth > 0:
		p.errs.Add(cfgerr.WithInt24(cfgerr.CategoryParsing, cfgerr.KindMissingClosingTag, int32(depth)))
	case depth < 0:
		p.errs.Add(cfgerr.WithInt24(cfgerr.CategoryParsing, cfgerr.KindMissingOpeningTag, int32(-depth)))
	}
	if !p.sawAnyTag {
		p.errs.Add(cfgerr.WithHighLow(cfgerr.CategoryParsing, cfgerr.KindNoTagsFound,
			uint16(finalPos.Col), uint16(finalPos.Line)))
	}
}
