// Package validate builds the three validator shapes a schema entry may
// bind: ranged integers, name, and enum. The ranged and enum validators
// are mode-aware: file mode parses ASCII decimal text (or, for enum,
// matches a label), message mode reinterprets the setting's captured
// buffer (always the bit-frame parser's 8-byte little-endian extraction)
// as a raw integer. The name validator treats both modes alike.
package validate

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/danmuck/aethercfg/internal/cfgerr"
	"github.com/danmuck/aethercfg/internal/setting"
)

func fail(kind uint8) (setting.Data, error) {
	return setting.Data{}, setting.ValidationError{Kind: kind}
}

// messageUint reinterprets the low n bytes of a little-endian captured
// buffer, zero-extending if the buffer is shorter than n (defensive; the
// bit-frame parser always leaves exactly 8 bytes).
func messageUint(buf []byte, n int) uint64 {
	var b [8]byte
	copy(b[:], buf)
	switch n {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b[:2]))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b[:4]))
	default:
		return binary.LittleEndian.Uint64(b[:8])
	}
}

// RangeBool validates a {0,1}-only value, ignoring min/max entirely.
func RangeBool() setting.Validator {
	return func(buf []byte, mode setting.Mode) (setting.Data, error) {
		var v uint64
		if mode == setting.ModeMessage {
			v = messageUint(buf, 1)
		} else {
			text := strings.TrimSpace(string(buf))
			if text == "" {
				return fail(cfgerr.KindMissingValue)
			}
			n, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return fail(cfgerr.KindContainsInvalidCharacter)
			}
			v = n
		}
		if v > 1 {
			return fail(cfgerr.KindOutOfTypeRange)
		}
		return setting.Bool(v == 1), nil
	}
}

// RangeI8 validates a signed 8-bit value within [min,max].
func RangeI8(min, max int8) setting.Validator {
	return func(buf []byte, mode setting.Mode) (setting.Data, error) {
		var v int64
		if mode == setting.ModeMessage {
			v = int64(int8(messageUint(buf, 1)))
		} else {
			n, err := parseSigned(buf, 8)
			if err != nil {
				return setting.Data{}, err
			}
			v = n
		}
		if v < int64(min) {
			return fail(cfgerr.KindBelowMinThreshold)
		}
		if v > int64(max) {
			return fail(cfgerr.KindAboveMaxThreshold)
		}
		return setting.I8(int8(v)), nil
	}
}

// RangeU8 validates an unsigned 8-bit value within [min,max].
func RangeU8(min, max uint8) setting.Validator {
	return func(buf []byte, mode setting.Mode) (setting.Data, error) {
		var v uint64
		if mode == setting.ModeMessage {
			v = messageUint(buf, 1)
		} else {
			n, err := parseUnsigned(buf, 8)
			if err != nil {
				return setting.Data{}, err
			}
			v = n
		}
		if v < uint64(min) {
			return fail(cfgerr.KindBelowMinThreshold)
		}
		if v > uint64(max) {
			return fail(cfgerr.KindAboveMaxThreshold)
		}
		return setting.U8(uint8(v)), nil
	}
}

// RangeI16 validates a signed 16-bit value within [min,max].
func RangeI16(min, max int16) setting.Validator {
	return func(buf []byte, mode setting.Mode) (setting.Data, error) {
		var v int64
		if mode == setting.ModeMessage {
			v = int64(int16(messageUint(buf, 2)))
		} else {
			n, err := parseSigned(buf, 16)
			if err != nil {
				return setting.Data{}, err
			}
			v = n
		}
		if v < int64(min) {
			return fail(cfgerr.KindBelowMinThreshold)
		}
		if v > int64(max) {
			return fail(cfgerr.KindAboveMaxThreshold)
		}
		return setting.I16(int16(v)), nil
	}
}

// RangeU16 validates an unsigned 16-bit value within [min,max].
func RangeU16(min, max uint16) setting.Validator {
	return func(buf []byte, mode setting.Mode) (setting.Data, error) {
		var v uint64
		if mode == setting.ModeMessage {
			v = messageUint(buf, 2)
		} else {
			n, err := parseUnsigned(buf, 16)
			if err != nil {
				return setting.Data{}, err
			}
			v = n
		}
		if v < uint64(min) {
			return fail(cfgerr.KindBelowMinThreshold)
		}
		if v > uint64(max) {
			return fail(cfgerr.KindAboveMaxThreshold)
		}
		return setting.U16(uint16(v)), nil
	}
}

// RangeI32 validates a signed 32-bit value within [min,max].
func RangeI32(min, max int32) setting.Validator {
	return func(buf []byte, mode setting.Mode) (setting.Data, error) {
		var v int64
		if mode == setting.ModeMessage {
			v = int64(int32(messageUint(buf, 4)))
		} else {
			n, err := parseSigned(buf, 32)
			if err != nil {
				return setting.Data{}, err
			}
			v = n
		}
		if v < int64(min) {
			return fail(cfgerr.KindBelowMinThreshold)
		}
		if v > int64(max) {
			return fail(cfgerr.KindAboveMaxThreshold)
		}
		return setting.I32(int32(v)), nil
	}
}

// RangeU32 validates an unsigned 32-bit value within [min,max].
func RangeU32(min, max uint32) setting.Validator {
	return func(buf []byte, mode setting.Mode) (setting.Data, error) {
		var v uint64
		if mode == setting.ModeMessage {
			v = messageUint(buf, 4)
		} else {
			n, err := parseUnsigned(buf, 32)
			if err != nil {
				return setting.Data{}, err
			}
			v = n
		}
		if v < uint64(min) {
			return fail(cfgerr.KindBelowMinThreshold)
		}
		if v > uint64(max) {
			return fail(cfgerr.KindAboveMaxThreshold)
		}
		return setting.U32(uint32(v)), nil
	}
}

func parseSigned(buf []byte, bits int) (int64, error) {
	text := strings.TrimSpace(string(buf))
	if text == "" {
		return 0, setting.ValidationError{Kind: cfgerr.KindMissingValue}
	}
	n, err := strconv.ParseInt(text, 10, bits)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, setting.ValidationError{Kind: cfgerr.KindOutOfTypeRange}
		}
		return 0, setting.ValidationError{Kind: cfgerr.KindContainsInvalidCharacter}
	}
	return n, nil
}

func parseUnsigned(buf []byte, bits int) (uint64, error) {
	text := strings.TrimSpace(string(buf))
	if text == "" {
		return 0, setting.ValidationError{Kind: cfgerr.KindMissingValue}
	}
	if strings.HasPrefix(text, "-") {
		return 0, setting.ValidationError{Kind: cfgerr.KindNegativeValue}
	}
	n, err := strconv.ParseUint(text, 10, bits)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, setting.ValidationError{Kind: cfgerr.KindOutOfTypeRange}
		}
		return 0, setting.ValidationError{Kind: cfgerr.KindContainsInvalidCharacter}
	}
	return n, nil
}

// nameExceptions are the characters allowed in a name alongside
// alphanumerics.
const nameExceptions = "()-_"

// Name validates a non-empty buffer of at most maxLen bytes containing
// only alphanumerics plus the characters in nameExceptions. maxLen <= 0
// disables the length check.
func Name(maxLen int) setting.Validator {
	return func(buf []byte, _ setting.Mode) (setting.Data, error) {
		text := string(buf)
		if text == "" {
			return fail(cfgerr.KindMissingValue)
		}
		if maxLen > 0 && len(text) > maxLen {
			return fail(cfgerr.KindExceedsMaxLength)
		}
		for _, r := range text {
			isAlnum := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			if !isAlnum && !strings.ContainsRune(nameExceptions, r) {
				return fail(cfgerr.KindContainsInvalidCharacter)
			}
		}
		return setting.Str(text), nil
	}
}

// Enum validates a closed set of discriminants. In file mode, buf must
// match one of labels' keys exactly; in message mode, buf's integer value
// must not exceed maxDiscriminant. Produces the matched discriminant as
// I32.
func Enum(labels map[string]int32, maxDiscriminant int32) setting.Validator {
	return func(buf []byte, mode setting.Mode) (setting.Data, error) {
		if mode == setting.ModeMessage {
			v := int32(messageUint(buf, 4))
			if v < 0 || v > maxDiscriminant {
				return fail(cfgerr.KindInvalidOption)
			}
			return setting.I32(v), nil
		}
		text := string(buf)
		if text == "" {
			return fail(cfgerr.KindMissingValue)
		}
		if v, ok := labels[text]; ok {
			return setting.I32(v), nil
		}
		return fail(cfgerr.KindInvalidOption)
	}
}
