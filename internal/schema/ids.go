// Package schema instantiates the concrete default setting table: the
// mapping table that binds every tag path and bit-span to a validator and
// an applier over a record.Record.
package schema

// ID is the dense setting-identifier enumeration, stable and part of the
// external wire contract (used as an error-code data payload). Do not
// reorder.
type ID uint32

const (
	Unspecified ID = iota

	DeviceName
	UsbDetection
	UsbIntervalMS

	TimeTriggerEnabled
	TimeTriggerTHP
	TimeTriggerAccGyro
	TimeTriggerMagnetometer
	TimeTriggerLightIntensity
	TimeTriggerIntervalMS
	TimeTriggerLoraPriority
	TimeTriggerWriteToLora
	TimeTriggerWriteToSD

	LightTriggerEnabled
	LightTriggerTHP
	LightTriggerAccGyro
	LightTriggerMagnetometer
	LightTriggerLightIntensity
	LightTriggerHighThreshold
	LightTriggerLowThreshold
	LightTriggerLoraPriority
	LightTriggerWriteToLora
	LightTriggerWriteToSD

	AccelerationTriggerEnabled
	AccelerationTriggerTHP
	AccelerationTriggerAccGyro
	AccelerationTriggerMagnetometer
	AccelerationTriggerLightIntensity
	AccelerationTriggerLoraPriority
	AccelerationTriggerWriteToLora
	AccelerationTriggerWriteToSD

	OrientationTriggerEnabled
	OrientationTriggerTHP
	OrientationTriggerAccGyro
	OrientationTriggerMagnetometer
	OrientationTriggerLightIntensity
	OrientationTriggerLoraPriority
	OrientationTriggerWriteToLora
	OrientationTriggerWriteToSD
)
