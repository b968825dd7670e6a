package internal

import (
	"math"
)

// Bit casts between the untyped 32-bit storage word and its interpretations.
// All of these are total: every input has a defined output on every platform.

// Int32 reinterprets a storage word as a two's complement signed integer.
func Int32(word uint32) int32 {
	return int32(word)
}

// Word reinterprets a signed integer as a storage word.
func Word(value int32) uint32 {
	return uint32(value)
}

// Float32 reinterprets a storage word as IEEE-754 single precision bits.
func Float32(word uint32) float32 {
	return math.Float32frombits(word)
}

// FloatWord reinterprets a single precision float as a storage word.
func FloatWord(value float32) uint32 {
	return math.Float32bits(value)
}

// Split64 splits a double width value into its upper and lower words.
func Split64(value uint64) (hi, lo uint32) {
	hi = uint32((value & 0xffffffff_00000000) >> 32)
	lo = uint32(value & 0x00000000_ffffffff)
	return
}

// Join64 joins upper and lower words into a double width value.
func Join64(hi, lo uint32) uint64 {
	return (uint64(hi) << 32) | uint64(lo)
}

// Float32ToInt32 converts a float to an integer, truncating toward zero.
// Out of range values saturate, and NaN converts to zero.
func Float32ToInt32(value float32) int32 {
	switch {
	case math.IsNaN(float64(value)):
		return 0
	case value >= 2147483648:
		return math.MaxInt32
	case value <= -2147483648:
		return math.MinInt32
	}

	return int32(value)
}
