// Package handler implements the setting handler: validate-all, apply-all,
// bucket errors by severity.
package handler

import (
	"errors"

	"github.com/danmuck/aethercfg/internal/cfgerr"
	"github.com/danmuck/aethercfg/internal/record"
	"github.com/danmuck/aethercfg/internal/setting"
)

// Handler walks a schema in declaration order, validating and applying each
// Setting, bucketing failures into two severities: a setting that was never
// observed in the payload (unset), versus one that was observed but failed
// its validator (invalid value). The bucket separation lets a caller
// distinguish "you forgot this" from "you got this wrong".
type Handler struct {
	schema      []*setting.Setting
	mode        setting.Mode
	unsetErrs   *cfgerr.Buffer
	invalidErrs *cfgerr.Buffer
}

// New binds a Handler to schema under mode. Both error buffers are sized
// to the schema length: in the worst case every setting fails the same way.
func New(schema []*setting.Setting, mode setting.Mode) *Handler {
	return &Handler{
		schema:      schema,
		mode:        mode,
		unsetErrs:   cfgerr.NewBuffer(len(schema)),
		invalidErrs: cfgerr.NewBuffer(len(schema)),
	}
}

// UnsetErrors returns the buffer of SETTING_UNSET failures for required
// settings that were never observed.
func (h *Handler) UnsetErrors() *cfgerr.Buffer { return h.unsetErrs }

// InvalidErrors returns the buffer of validation failures for settings
// that were observed but rejected by their validator.
func (h *Handler) InvalidErrors() *cfgerr.Buffer { return h.invalidErrs }

// HasErrors reports whether either bucket recorded a failure.
func (h *Handler) HasErrors() bool { return h.unsetErrs.Any() || h.invalidErrs.Any() }

func (h *Handler) reset() {
	h.unsetErrs.Reset()
	h.invalidErrs.Reset()
}

// ValidateAndApply walks the schema in declaration order: validate, and on
// success apply immediately. Ordering matters: an applier may read rec's
// current state, which an earlier setting in the same call may already
// have mutated.
func (h *Handler) ValidateAndApply(rec *record.Record) {
	h.reset()

	for _, s := range h.schema {
		err := s.Validate(h.mode)
		if err == nil {
			s.Apply(rec)
			continue
		}

		var verr setting.ValidationError
		if errors.As(err, &verr) && verr.Kind == cfgerr.KindSettingUnset {
			if s.Necessity() == setting.Optional {
				continue
			}
			h.unsetErrs.Add(cfgerr.WithID(cfgerr.CategoryValidation, cfgerr.KindSettingUnset, s.ID()))
			continue
		}

		kind := uint8(cfgerr.KindValidationUnspecified)
		if errors.As(err, &verr) {
			kind = verr.Kind
		}
		h.invalidErrs.Add(cfgerr.WithID(cfgerr.CategoryValidation, kind, s.ID()))
	}
}
