package orchestrate

import (
	"testing"

	"github.com/danmuck/aethercfg/internal/bitspan"
	"github.com/danmuck/aethercfg/internal/record"
	"github.com/danmuck/aethercfg/internal/schema"
	"github.com/danmuck/aethercfg/internal/sink"
	"github.com/danmuck/aethercfg/internal/testutil/testlog"
	"github.com/danmuck/aethercfg/internal/verify"
)

// A happy-path tag-tree document with the time trigger enabled verifies
// cleanly and applies every value.
func TestHappyPathTagTree(t *testing.T) {
	testlog.Start(t)
	table := schema.Default()
	orch := NewFile(table, verify.DefaultRules(), sink.Discard{})
	rec := record.New()

	doc := `<aether>
<trigger><time>
<enabled>1</enabled>
<activate-sensors><thp>1</thp><accel-gyro>1</accel-gyro><magnet>1</magnet><light>1</light></activate-sensors>
<interval-ms>5000</interval-ms>
<write-to><lorawan-priority>2</lorawan-priority><lora>1</lora><sd>0</sd></write-to>
</time></trigger>
<trigger><light>
<enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<high-threshold>20000</high-threshold><low-threshold>1000</low-threshold>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</light></trigger>
<trigger><acceleration>
<enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</acceleration></trigger>
<trigger><orientation>
<enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</orientation></trigger>
<usb><detection>interval</detection><detection-interval-ms>10000</detection-interval-ms></usb>
</aether>`

	if err := orch.Process(doc, rec); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if !rec.Trigger.Time.Enabled {
		t.Fatal("time trigger should be enabled")
	}
	if rec.Trigger.Time.IntervalMS != 5000 {
		t.Fatalf("interval = %d, want 5000", rec.Trigger.Time.IntervalMS)
	}
	if !rec.Trigger.Time.WriteTo.LoRa || rec.Trigger.Time.WriteTo.SD {
		t.Fatalf("write-to = %+v, want lora=true sd=false", rec.Trigger.Time.WriteTo)
	}
	if rec.Status != record.StatusOperational {
		t.Fatalf("status = %v, want operational", rec.Status)
	}
}

// An out-of-range value rejects that one setting but leaves the rest of
// the pipeline to keep running (the applier for the bad setting is never
// invoked; other settings are unaffected by its rejection).
func TestOutOfRangeValue(t *testing.T) {
	testlog.Start(t)
	table := schema.Default()
	orch := NewFile(table, verify.DefaultRules(), sink.Discard{})
	rec := record.New()

	doc := `<aether>
<trigger><time>
<enabled>1</enabled>
<activate-sensors><thp>1</thp><accel-gyro>1</accel-gyro><magnet>1</magnet><light>1</light></activate-sensors>
<interval-ms>5000</interval-ms>
<write-to><lorawan-priority>7</lorawan-priority><lora>1</lora><sd>0</sd></write-to>
</time></trigger>
<trigger><light><enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<high-threshold>20000</high-threshold><low-threshold>1000</low-threshold>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</light></trigger>
<trigger><acceleration><enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</acceleration></trigger>
<trigger><orientation><enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</orientation></trigger>
<usb><detection>interval</detection><detection-interval-ms>10000</detection-interval-ms></usb>
</aether>`

	err := orch.Process(doc, rec)
	if err == nil {
		t.Fatal("expected failure due to out-of-range lorawan-priority")
	}
	if rec.Status != record.StatusFailure {
		t.Fatalf("status = %v, want failure", rec.Status)
	}
	// On failure the record must be reset to defaults, not partially applied.
	fresh := record.New()
	if rec.Trigger.Time.IntervalMS != fresh.Trigger.Time.IntervalMS {
		t.Fatalf("record was not reset to defaults on failure")
	}
}

func TestVerificationFailureResetsRecord(t *testing.T) {
	testlog.Start(t)
	table := schema.Default()
	orch := NewFile(table, verify.DefaultRules(), sink.Discard{})
	rec := record.New()

	// Every trigger disabled: validates and applies cleanly, but fails
	// verification (NO_TRIGGER_ENABLED).
	doc := `<aether>
<trigger><time><enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<interval-ms>1000</interval-ms>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</time></trigger>
<trigger><light><enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<high-threshold>100</high-threshold><low-threshold>10</low-threshold>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</light></trigger>
<trigger><acceleration><enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</acceleration></trigger>
<trigger><orientation><enabled>0</enabled>
<activate-sensors><thp>0</thp><accel-gyro>0</accel-gyro><magnet>0</magnet><light>0</light></activate-sensors>
<write-to><lorawan-priority>0</lorawan-priority><lora>0</lora><sd>0</sd></write-to>
</orientation></trigger>
<usb><detection>off</detection><detection-interval-ms>1000</detection-interval-ms></usb>
</aether>`

	err := orch.Process(doc, rec)
	if err == nil {
		t.Fatal("expected verification failure (no trigger enabled)")
	}
	if rec.Status != record.StatusFailure {
		t.Fatalf("status = %v, want failure", rec.Status)
	}
}

// Message mode over the real default schema: a well-formed bit-frame
// applies the bits the schema maps, a short one rejects outright.
func TestMessageModeHappyPath(t *testing.T) {
	testlog.Start(t)
	table := schema.Default()
	orch := NewMessage(table, verify.DefaultRules(), sink.Discard{})
	rec := record.New()

	buf := make([]byte, 64)
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	// enable every trigger and every sensor bit, set usb detection to "on"(1),
	// intervals comfortably in range, write-to lora for every trigger.
	must(bitspan.Write(buf, bitspan.New(24, 2), 1))  // usb detection = on
	must(bitspan.Write(buf, bitspan.New(32, 32), 5000))
	for _, pos := range []uint16{8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23} {
		must(bitspan.Write(buf, bitspan.New(pos, 1), 1))
	}
	must(bitspan.Write(buf, bitspan.New(26, 1), 1)) // time enabled
	must(bitspan.Write(buf, bitspan.New(27, 1), 1)) // light enabled
	must(bitspan.Write(buf, bitspan.New(28, 1), 1)) // acceleration enabled
	must(bitspan.Write(buf, bitspan.New(29, 1), 1)) // orientation enabled
	must(bitspan.Write(buf, bitspan.New(64, 32), 5000))
	must(bitspan.Write(buf, bitspan.New(96, 16), 20000))
	must(bitspan.Write(buf, bitspan.New(112, 16), 1000))
	for _, pri := range []uint16{128, 132, 136, 140} {
		must(bitspan.Write(buf, bitspan.New(pri, 2), 1))
		must(bitspan.Write(buf, bitspan.New(pri+2, 1), 1)) // write-to-lora
		must(bitspan.Write(buf, bitspan.New(pri+3, 1), 0)) // write-to-sd
	}

	if err := orch.Process(buf, rec); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if !rec.Trigger.Time.Enabled || !rec.Trigger.Time.WriteTo.LoRa {
		t.Fatalf("time trigger = %+v", rec.Trigger.Time)
	}
	if rec.USBDetection != record.USBOn {
		t.Fatalf("usb detection = %v, want on", rec.USBDetection)
	}
}

func TestMessageModeShortBuffer(t *testing.T) {
	testlog.Start(t)
	table := schema.Default()
	orch := NewMessage(table, verify.DefaultRules(), sink.Discard{})
	rec := record.New()

	err := orch.Process(make([]byte, 4), rec)
	if err == nil {
		t.Fatal("expected INSUFFICIENT_MESSAGE_SIZE failure")
	}
	if rec.Status != record.StatusFailure {
		t.Fatalf("status = %v, want failure", rec.Status)
	}
}

func TestFileModeMissingRequiredSetting(t *testing.T) {
	testlog.Start(t)
	table := schema.Default()
	orch := NewFile(table, verify.DefaultRules(), sink.Discard{})
	rec := record.New()

	// Only device_name (optional) supplied; every required setting unset.
	err := orch.Process(`<aether><properties><name>device-01</name></properties></aether>`, rec)
	if err == nil {
		t.Fatal("expected unset-setting failure")
	}
	if rec.Status != record.StatusFailure {
		t.Fatalf("status = %v, want failure", rec.Status)
	}
}
