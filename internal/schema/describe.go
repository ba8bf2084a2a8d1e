package schema

import (
	"github.com/danmuck/aethercfg/internal/setting"
	"github.com/danmuck/aethercfg/internal/tagpath"
)

var idNames = map[ID]string{
	DeviceName:    "device_name",
	UsbDetection:  "usb_detection",
	UsbIntervalMS: "usb_interval_ms",

	TimeTriggerEnabled:        "time_trigger_enabled",
	TimeTriggerTHP:            "time_trigger_thp",
	TimeTriggerAccGyro:        "time_trigger_acc_gyro",
	TimeTriggerMagnetometer:   "time_trigger_magnetometer",
	TimeTriggerLightIntensity: "time_trigger_light_intensity",
	TimeTriggerIntervalMS:     "time_trigger_interval",
	TimeTriggerLoraPriority:   "time_trigger_lora_priority",
	TimeTriggerWriteToLora:    "time_trigger_write_to_lora",
	TimeTriggerWriteToSD:      "time_trigger_write_to_sd",

	LightTriggerEnabled:        "light_trigger_enabled",
	LightTriggerTHP:            "light_trigger_thp",
	LightTriggerAccGyro:        "light_trigger_acc_gyro",
	LightTriggerMagnetometer:   "light_trigger_magnetometer",
	LightTriggerLightIntensity: "light_trigger_light_intensity",
	LightTriggerHighThreshold:  "light_trigger_high_threshold",
	LightTriggerLowThreshold:   "light_trigger_low_threshold",
	LightTriggerLoraPriority:   "light_trigger_lora_priority",
	LightTriggerWriteToLora:    "light_trigger_write_to_lora",
	LightTriggerWriteToSD:      "light_trigger_write_to_sd",

	AccelerationTriggerEnabled:        "acceleration_trigger_enabled",
	AccelerationTriggerTHP:            "acceleration_trigger_thp",
	AccelerationTriggerAccGyro:        "acceleration_trigger_acc_gyro",
	AccelerationTriggerMagnetometer:   "acceleration_trigger_magnetometer",
	AccelerationTriggerLightIntensity: "acceleration_trigger_light_intensity",
	AccelerationTriggerLoraPriority:   "acceleration_trigger_lora_priority",
	AccelerationTriggerWriteToLora:    "acceleration_trigger_write_to_lora",
	AccelerationTriggerWriteToSD:      "acceleration_trigger_write_to_sd",

	OrientationTriggerEnabled:        "orientation_trigger_enabled",
	OrientationTriggerTHP:            "orientation_trigger_thp",
	OrientationTriggerAccGyro:        "orientation_trigger_acc_gyro",
	OrientationTriggerMagnetometer:   "orientation_trigger_magnetometer",
	OrientationTriggerLightIntensity: "orientation_trigger_light_intensity",
	OrientationTriggerLoraPriority:   "orientation_trigger_lora_priority",
	OrientationTriggerWriteToLora:    "orientation_trigger_write_to_lora",
	OrientationTriggerWriteToSD:      "orientation_trigger_write_to_sd",
}

// String renders an ID as its external snake_case name, the form used in
// describe-schema output and log correlation.
func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return "unspecified"
}

// Entry is a plain-data projection of one Setting, independent of any
// marshaling format so that describe-schema's YAML tags can live entirely
// at the cmd layer instead of pulling a YAML dependency into the core.
type Entry struct {
	ID        uint32
	Name      string
	TagPath   string
	BitPos    uint16
	BitWidth  uint8
	HasBits   bool
	Necessity string
}

// Describe projects table into a slice of Entry, in table order, for
// operator-facing introspection (cmd/aetherctl describe-schema).
func Describe(table []*setting.Setting) []Entry {
	out := make([]Entry, 0, len(table))
	for _, s := range table {
		necessity := "required"
		if s.Necessity() == setting.Optional {
			necessity = "optional"
		}
		bits := s.Bits()
		out = append(out, Entry{
			ID:        s.ID(),
			Name:      ID(s.ID()).String(),
			TagPath:   tagpath.String(s.Tags()),
			BitPos:    bits.Pos,
			BitWidth:  bits.Width,
			HasBits:   s.HasBits(),
			Necessity: necessity,
		})
	}
	return out
}
