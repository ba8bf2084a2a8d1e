// Package record implements Record, the master device configuration: a
// plain data aggregate constructed with defaults, mutated only through
// setting appliers, and reset to defaults when processing fails.
package record

// Status mirrors the external status indicator the firmware exposes to the
// rest of the device: operational after a successful process() call,
// failure after a reset.
type Status int

const (
	StatusOperational Status = iota
	StatusFailure
)

func (s Status) String() string {
	if s == StatusFailure {
		return "failure"
	}
	return "operational"
}

// USBDetection is the closed set of USB-detection strategies.
type USBDetection int32

const (
	USBOff USBDetection = iota
	USBOn
	USBInterval
)

// SensorMask records which sensor groups a trigger measures.
type SensorMask struct {
	THP            bool
	AccelGyro      bool
	Magnetometer   bool
	LightIntensity bool
}

// Sinks records which output destinations a trigger writes to.
type Sinks struct {
	LoRa bool
	SD   bool
}

// Trigger is one of {time, light, acceleration, orientation}'s
// configuration block.
type Trigger struct {
	Enabled      bool
	Sensors      SensorMask
	LoRaPriority int8
	WriteTo      Sinks

	// Trigger-specific fields; zero-valued on triggers that don't use them.
	IntervalMS    uint32 // time trigger only
	LowThreshold  uint16 // light trigger only
	HighThreshold uint16 // light trigger only
}

// Triggers groups the four trigger blocks the schema addresses by name.
type Triggers struct {
	Time         Trigger
	Light        Trigger
	Acceleration Trigger
	Orientation  Trigger
}

// maxNameSize bounds the device name including its terminator on the
// device side. A hex-encoded LoRaWAN DevEUI (2*8+1 bytes) still fits.
const maxNameSize = 32

// defaultDeviceName is the compiled-in device name, used until a
// device_name setting is applied through the pipeline. It satisfies the
// name validator's own charset.
const defaultDeviceName = "aether-device"

// Record is the master configuration record: constructed with defaults,
// mutated only through appliers during apply, read by verifiers and
// external consumers, and resettable to defaults on verification failure.
type Record struct {
	DeviceName    string
	USBDetection  USBDetection
	USBIntervalMS uint32
	Trigger       Triggers
	Status        Status
}

// New constructs a Record with the compiled-in defaults: every trigger
// enabled (time at a 20s interval), every sensor group active, every sink
// active, USB detection set to interval/10s. LoRaPriority defaults to 4
// for every trigger, one past the validated range [0,3]; compiled-in
// defaults never pass through the validator pipeline, only parsed input
// does.
func New() *Record {
	allSensors := SensorMask{THP: true, AccelGyro: true, Magnetometer: true, LightIntensity: true}
	allSinks := Sinks{LoRa: true, SD: true}

	return &Record{
		DeviceName:    defaultDeviceName,
		USBDetection:  USBInterval,
		USBIntervalMS: 10000,
		Trigger: Triggers{
			Time: Trigger{
				Enabled:      true,
				Sensors:      allSensors,
				LoRaPriority: 4,
				WriteTo:      allSinks,
				IntervalMS:   20000,
			},
			Light: Trigger{
				Enabled:       true,
				Sensors:       allSensors,
				LoRaPriority:  4,
				WriteTo:       allSinks,
				LowThreshold:  1000,
				HighThreshold: 20000,
			},
			Acceleration: Trigger{
				Enabled:      true,
				Sensors:      allSensors,
				LoRaPriority: 4,
				WriteTo:      allSinks,
			},
			Orientation: Trigger{
				Enabled:      true,
				Sensors:      allSensors,
				LoRaPriority: 4,
				WriteTo:      allSinks,
			},
		},
		Status: StatusOperational,
	}
}

// Reset overwrites r in place with a fresh set of defaults.
func (r *Record) Reset() {
	*r = *New()
}

// MaxNameSize exposes the device-name capacity for validators.
func MaxNameSize() int { return maxNameSize }
