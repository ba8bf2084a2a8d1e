// Package orchestrate implements the top-level config-processing pipeline:
// parse, validate-and-apply, verify, reset-on-failure.
package orchestrate

import (
	"errors"

	"github.com/danmuck/aethercfg/internal/bitframe"
	"github.com/danmuck/aethercfg/internal/cfgerr"
	"github.com/danmuck/aethercfg/internal/handler"
	"github.com/danmuck/aethercfg/internal/record"
	"github.com/danmuck/aethercfg/internal/setting"
	"github.com/danmuck/aethercfg/internal/sink"
	"github.com/danmuck/aethercfg/internal/tagtree"
	"github.com/danmuck/aethercfg/internal/verify"
)

// ErrProcessingFailed is returned whenever parsing, validation, or
// verification recorded any error. The record passed to Process is reset
// to defaults and marked StatusFailure before the method returns; a
// partially-applied record is never left live.
var ErrProcessingFailed = errors.New("orchestrate: processing failed")

// parser is the capability the shared pipeline needs from either concrete
// parser once it has populated the schema's buffers.
type parser interface {
	Errors() *cfgerr.Buffer
	HasErrors() bool
}

// run is the mode-independent second half of process(): validate-and-apply,
// fail if parsing or validation recorded any error, otherwise verify; reset
// on any failure. Both FileOrchestrator and MessageOrchestrator
// call into it once their own parser has populated the schema's buffers.
func run(p parser, h *handler.Handler, rules []verify.Rule, s sink.Sink, rec *record.Record) error {
	p.Errors().Emit(s, "parse error: ")

	// Parsing errors do not abort validation: every setting is still
	// validated so its errors are reported alongside the parse errors.
	h.ValidateAndApply(rec)
	h.UnsetErrors().Emit(s, "unset setting: ")
	h.InvalidErrors().Emit(s, "invalid value: ")
	if p.HasErrors() || h.HasErrors() {
		rec.Reset()
		rec.Status = record.StatusFailure
		return ErrProcessingFailed
	}

	verifyErrs := cfgerr.NewBuffer(len(rules))
	verify.Run(rules, rec, verifyErrs)
	verifyErrs.Emit(s, "verification failed: ")
	if verifyErrs.Any() {
		rec.Reset()
		rec.Status = record.StatusFailure
		return ErrProcessingFailed
	}

	rec.Status = record.StatusOperational
	return nil
}

// FileOrchestrator runs the FILE-mode pipeline over tag-tree payloads.
type FileOrchestrator struct {
	tree    *tagtree.Parser
	handler *handler.Handler
	rules   []verify.Rule
	sink    sink.Sink
}

// NewFile binds a FileOrchestrator to schema, using rules for the post-apply
// verification pass and s as the destination for every error line.
func NewFile(schema []*setting.Setting, rules []verify.Rule, s sink.Sink) *FileOrchestrator {
	return &FileOrchestrator{
		tree:    tagtree.New(schema),
		handler: handler.New(schema, setting.ModeFile),
		rules:   rules,
		sink:    s,
	}
}

// Process runs the full pipeline over a tag-tree payload, mutating rec in
// place and returning ErrProcessingFailed if any stage failed.
func (o *FileOrchestrator) Process(payload string, rec *record.Record) error {
	o.tree.Parse(payload)
	return run(o.tree, o.handler, o.rules, o.sink, rec)
}

// MessageOrchestrator runs the MESSAGE-mode pipeline over bit-frame payloads.
type MessageOrchestrator struct {
	frame   *bitframe.Parser
	handler *handler.Handler
	rules   []verify.Rule
	sink    sink.Sink
}

// NewMessage binds a MessageOrchestrator to schema, using rules for the
// post-apply verification pass and s as the destination for every error
// line.
func NewMessage(schema []*setting.Setting, rules []verify.Rule, s sink.Sink) *MessageOrchestrator {
	return &MessageOrchestrator{
		frame:   bitframe.New(schema),
		handler: handler.New(schema, setting.ModeMessage),
		rules:   rules,
		sink:    s,
	}
}

// Process runs the full pipeline over a bit-frame payload, mutating rec in
// place and returning ErrProcessingFailed if any stage failed.
func (o *MessageOrchestrator) Process(payload []byte, rec *record.Record) error {
	o.frame.Parse(payload)
	return run(o.frame, o.handler, o.rules, o.sink, rec)
}
