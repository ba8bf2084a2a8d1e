// Package verify implements cross-field verification rules: post-condition
// predicates run on the fully-applied master record after every individual
// setting already validated.
package verify

import (
	"github.com/danmuck/aethercfg/internal/cfgerr"
	"github.com/danmuck/aethercfg/internal/record"
)

// Identifier enumerates the verification rules, stable and part of the
// external contract (used as an error-code data payload).
type Identifier uint32

const (
	Unspecified          Identifier = 0
	TriggerRequirement   Identifier = 1
	TimeTrigger          Identifier = 2
	LightTrigger         Identifier = 3
	AccelerationTrigger  Identifier = 4
	OrientationTrigger   Identifier = 5
)

// Predicate inspects rec and returns (true, 0) on success, or (false, kind)
// naming the cfgerr.Kind* verification constant that failed.
type Predicate func(rec *record.Record) (ok bool, kind uint8)

// Rule pairs a stable Identifier with its Predicate.
type Rule struct {
	ID        Identifier
	Predicate Predicate
}

func isAnyTriggerEnabled(rec *record.Record) bool {
	return rec.Trigger.Time.Enabled ||
		rec.Trigger.Light.Enabled ||
		rec.Trigger.Acceleration.Enabled ||
		rec.Trigger.Orientation.Enabled
}

func verifyDataDestination(t record.Trigger) (ok bool, kind uint8) {
	if !t.Enabled {
		return true, 0
	}
	if t.WriteTo.LoRa || t.WriteTo.SD {
		return true, 0
	}
	return false, cfgerr.KindNoDataDestinationEnabled
}

// DefaultRules returns the five default verification rules: at least one
// trigger must be enabled overall, and every enabled trigger must write to
// at least one sink.
func DefaultRules() []Rule {
	return []Rule{
		{ID: TriggerRequirement, Predicate: func(rec *record.Record) (bool, uint8) {
			if isAnyTriggerEnabled(rec) {
				return true, 0
			}
			return false, cfgerr.KindNoTriggerEnabled
		}},
		{ID: TimeTrigger, Predicate: func(rec *record.Record) (bool, uint8) {
			return verifyDataDestination(rec.Trigger.Time)
		}},
		{ID: LightTrigger, Predicate: func(rec *record.Record) (bool, uint8) {
			return verifyDataDestination(rec.Trigger.Light)
		}},
		{ID: AccelerationTrigger, Predicate: func(rec *record.Record) (bool, uint8) {
			return verifyDataDestination(rec.Trigger.Acceleration)
		}},
		{ID: OrientationTrigger, Predicate: func(rec *record.Record) (bool, uint8) {
			return verifyDataDestination(rec.Trigger.Orientation)
		}},
	}
}

// Run evaluates every rule against rec, appending a {kind, rule-id} Code to
// errs for each failure.
func Run(rules []Rule, rec *record.Record, errs *cfgerr.Buffer) {
	for _, r := range rules {
		if ok, kind := r.Predicate(rec); !ok {
			errs.Add(cfgerr.WithID(cfgerr.CategoryVerification, kind, uint32(r.ID)))
		}
	}
}
