package schema

import (
	"math"

	"github.com/danmuck/aethercfg/internal/bitspan"
	"github.com/danmuck/aethercfg/internal/record"
	"github.com/danmuck/aethercfg/internal/setting"
	"github.com/danmuck/aethercfg/internal/tagpath"
	"github.com/danmuck/aethercfg/internal/validate"
)

// triggerAccessor resolves the record field a trigger-scoped Setting reads
// and writes. Having appliers go through an accessor rather than a closed-
// over field lets one builder function serve all four triggers.
type triggerAccessor func(rec *record.Record) *record.Trigger

func timeTrigger(rec *record.Record) *record.Trigger         { return &rec.Trigger.Time }
func lightTrigger(rec *record.Record) *record.Trigger        { return &rec.Trigger.Light }
func accelerationTrigger(rec *record.Record) *record.Trigger { return &rec.Trigger.Acceleration }
func orientationTrigger(rec *record.Record) *record.Trigger  { return &rec.Trigger.Orientation }

// sensorField resolves one bool field of a SensorMask.
type sensorField func(m *record.SensorMask) *bool

func thp(m *record.SensorMask) *bool            { return &m.THP }
func accGyro(m *record.SensorMask) *bool        { return &m.AccelGyro }
func magnetometer(m *record.SensorMask) *bool   { return &m.Magnetometer }
func lightIntensity(m *record.SensorMask) *bool { return &m.LightIntensity }

func enabledSetting(id ID, path string, bits bitspan.Span, acc triggerAccessor) *setting.Setting {
	return setting.New(uint32(id), tagpath.Parse(path), bits, setting.Required, validate.RangeBool(),
		func(d setting.Data, rec *record.Record) {
			acc(rec).Enabled = d.Bool()
		})
}

// sensorSetting builds a sensor-mask applier that forces its field false
// whenever the trigger itself is disabled, regardless of the validated
// input value. This only produces the right answer if enabledSetting for
// the same trigger was declared (and therefore applied) earlier in the
// schema.
func sensorSetting(id ID, path string, bits bitspan.Span, acc triggerAccessor, field sensorField) *setting.Setting {
	return setting.New(uint32(id), tagpath.Parse(path), bits, setting.Required, validate.RangeBool(),
		func(d setting.Data, rec *record.Record) {
			t := acc(rec)
			v := d.Bool()
			if !t.Enabled {
				v = false
			}
			*field(&t.Sensors) = v
		})
}

func loraPrioritySetting(id ID, path string, bits bitspan.Span, acc triggerAccessor) *setting.Setting {
	return setting.New(uint32(id), tagpath.Parse(path), bits, setting.Required, validate.RangeI8(0, 3),
		func(d setting.Data, rec *record.Record) {
			acc(rec).LoRaPriority = d.I8()
		})
}

func writeToLoraSetting(id ID, path string, bits bitspan.Span, acc triggerAccessor) *setting.Setting {
	return setting.New(uint32(id), tagpath.Parse(path), bits, setting.Required, validate.RangeBool(),
		func(d setting.Data, rec *record.Record) {
			acc(rec).WriteTo.LoRa = d.Bool()
		})
}

func writeToSDSetting(id ID, path string, bits bitspan.Span, acc triggerAccessor) *setting.Setting {
	return setting.New(uint32(id), tagpath.Parse(path), bits, setting.Required, validate.RangeBool(),
		func(d setting.Data, rec *record.Record) {
			acc(rec).WriteTo.SD = d.Bool()
		})
}

// triggerSensorBlock returns the four sensor-mask settings common to every
// trigger, in the fixed order {thp, accel-gyro, magnetometer, light}.
func triggerSensorBlock(base string, bitBase uint16, idBase ID, acc triggerAccessor) []*setting.Setting {
	return []*setting.Setting{
		sensorSetting(idBase+0, base+"/activate-sensors/thp", bitspan.New(bitBase+0, 1), acc, thp),
		sensorSetting(idBase+1, base+"/activate-sensors/accel-gyro", bitspan.New(bitBase+1, 1), acc, accGyro),
		sensorSetting(idBase+2, base+"/activate-sensors/magnet", bitspan.New(bitBase+2, 1), acc, magnetometer),
		sensorSetting(idBase+3, base+"/activate-sensors/light", bitspan.New(bitBase+3, 1), acc, lightIntensity),
	}
}

// Default builds the default schema table in declaration order. Order is
// part of the external contract: each trigger's enabled Setting must
// precede its sensor-mask and write-to Settings.
func Default() []*setting.Setting {
	var out []*setting.Setting

	out = append(out,
		setting.New(uint32(DeviceName), tagpath.Parse("aether/properties/name"), bitspan.Span{}, setting.Optional,
			validate.Name(record.MaxNameSize()-1),
			func(d setting.Data, rec *record.Record) { rec.DeviceName = d.Str() }),

		setting.New(uint32(UsbDetection), tagpath.Parse("aether/usb/detection"), bitspan.New(24, 2), setting.Required,
			validate.Enum(map[string]int32{"off": 0, "on": 1, "interval": 2}, 2),
			func(d setting.Data, rec *record.Record) { rec.USBDetection = record.USBDetection(d.I32()) }),

		setting.New(uint32(UsbIntervalMS), tagpath.Parse("aether/usb/detection-interval-ms"), bitspan.New(32, 32), setting.Required,
			validate.RangeU32(1000, math.MaxUint32),
			func(d setting.Data, rec *record.Record) { rec.USBIntervalMS = d.U32() }),
	)

	// time trigger
	out = append(out, enabledSetting(TimeTriggerEnabled, "aether/trigger/time/enabled", bitspan.New(26, 1), timeTrigger))
	out = append(out, triggerSensorBlock("aether/trigger/time", 8, TimeTriggerTHP, timeTrigger)...)
	out = append(out,
		setting.New(uint32(TimeTriggerIntervalMS), tagpath.Parse("aether/trigger/time/interval-ms"), bitspan.New(64, 32), setting.Required,
			validate.RangeU32(1000, math.MaxUint32),
			func(d setting.Data, rec *record.Record) { timeTrigger(rec).IntervalMS = d.U32() }),
		loraPrioritySetting(TimeTriggerLoraPriority, "aether/trigger/time/write-to/lorawan-priority", bitspan.New(128, 2), timeTrigger),
		writeToLoraSetting(TimeTriggerWriteToLora, "aether/trigger/time/write-to/lora", bitspan.New(130, 1), timeTrigger),
		writeToSDSetting(TimeTriggerWriteToSD, "aether/trigger/time/write-to/sd", bitspan.New(131, 1), timeTrigger),
	)

	// light trigger
	out = append(out, enabledSetting(LightTriggerEnabled, "aether/trigger/light/enabled", bitspan.New(27, 1), lightTrigger))
	out = append(out, triggerSensorBlock("aether/trigger/light", 12, LightTriggerTHP, lightTrigger)...)
	out = append(out,
		setting.New(uint32(LightTriggerHighThreshold), tagpath.Parse("aether/trigger/light/high-threshold"), bitspan.New(96, 16), setting.Required,
			validate.RangeU16(0, math.MaxUint16),
			func(d setting.Data, rec *record.Record) { lightTrigger(rec).HighThreshold = d.U16() }),
		setting.New(uint32(LightTriggerLowThreshold), tagpath.Parse("aether/trigger/light/low-threshold"), bitspan.New(112, 16), setting.Required,
			validate.RangeU16(0, math.MaxUint16),
			func(d setting.Data, rec *record.Record) { lightTrigger(rec).LowThreshold = d.U16() }),
		loraPrioritySetting(LightTriggerLoraPriority, "aether/trigger/light/write-to/lorawan-priority", bitspan.New(132, 2), lightTrigger),
		writeToLoraSetting(LightTriggerWriteToLora, "aether/trigger/light/write-to/lora", bitspan.New(134, 1), lightTrigger),
		writeToSDSetting(LightTriggerWriteToSD, "aether/trigger/light/write-to/sd", bitspan.New(135, 1), lightTrigger),
	)

	// acceleration trigger
	out = append(out, enabledSetting(AccelerationTriggerEnabled, "aether/trigger/acceleration/enabled", bitspan.New(28, 1), accelerationTrigger))
	out = append(out, triggerSensorBlock("aether/trigger/acceleration", 16, AccelerationTriggerTHP, accelerationTrigger)...)
	out = append(out,
		loraPrioritySetting(AccelerationTriggerLoraPriority, "aether/trigger/acceleration/write-to/lorawan-priority", bitspan.New(136, 2), accelerationTrigger),
		writeToLoraSetting(AccelerationTriggerWriteToLora, "aether/trigger/acceleration/write-to/lora", bitspan.New(138, 1), accelerationTrigger),
		writeToSDSetting(AccelerationTriggerWriteToSD, "aether/trigger/acceleration/write-to/sd", bitspan.New(139, 1), accelerationTrigger),
	)

	// orientation trigger
	out = append(out, enabledSetting(OrientationTriggerEnabled, "aether/trigger/orientation/enabled", bitspan.New(29, 1), orientationTrigger))
	out = append(out, triggerSensorBlock("aether/trigger/orientation", 20, OrientationTriggerTHP, orientationTrigger)...)
	out = append(out,
		loraPrioritySetting(OrientationTriggerLoraPriority, "aether/trigger/orientation/write-to/lorawan-priority", bitspan.New(140, 2), orientationTrigger),
		writeToLoraSetting(OrientationTriggerWriteToLora, "aether/trigger/orientation/write-to/lora", bitspan.New(142, 1), orientationTrigger),
		writeToSDSetting(OrientationTriggerWriteToSD, "aether/trigger/orientation/write-to/sd", bitspan.New(143, 1), orientationTrigger),
	)

	return out
}
