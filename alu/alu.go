// Package alu implements the arithmetic-logic unit of the bcpu processor.
//
// The ALU keeps the two most recently pushed operands for each numeric mode,
// and leaves results in the Hi and Lo registers. Multiply and divide produce
// double width results split across Hi (upper 32 bits) and Lo (lower 32 bits).
package alu

import (
	"cmp"
	"errors"
	"fmt"
	"math"

	"github.com/ezrec/bcpu/internal"
	"github.com/ezrec/bcpu/translate"
)

var f = translate.From

var (
	// Alu errors
	ErrDivideByZero = errors.New(f("divide by zero"))
)

// Mode is the numeric interpretation of the ALU operands.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_INT   = Mode(0) // int
	MODE_FLOAT = Mode(1) // float
)

// Alu is the state of the arithmetic-logic unit.
type Alu struct {
	Mode Mode // Current numeric mode.

	IntA   int32   // Most recent integer operand.
	IntB   int32   // Previous integer operand.
	FloatA float32 // Most recent float operand.
	FloatB float32 // Previous float operand.

	Hi      uint32 // Upper result word.
	Lo      uint32 // Lower result word.
	Compare int    // Sign of the last comparison: -1, 0 or 1.
}

// Reset clears all operands and results, and returns to integer mode.
func (alu *Alu) Reset() {
	*alu = Alu{}
}

// Push shifts the most recent operand of the current mode into the previous
// slot, and stores word as the most recent. In float mode the word is taken
// as IEEE-754 bits.
func (alu *Alu) Push(word uint32) {
	switch alu.Mode {
	case MODE_FLOAT:
		alu.FloatB = alu.FloatA
		alu.FloatA = internal.Float32(word)
	default:
		alu.IntB = alu.IntA
		alu.IntA = internal.Int32(word)
	}
}

// Add sums the two operands into Hi.
func (alu *Alu) Add() {
	switch alu.Mode {
	case MODE_FLOAT:
		alu.Hi = internal.FloatWord(alu.FloatA + alu.FloatB)
	default:
		alu.Hi = internal.Word(alu.IntA + alu.IntB)
	}
	alu.Lo = 0
}

// Negate negates the most recent operand into Hi.
func (alu *Alu) Negate() {
	switch alu.Mode {
	case MODE_FLOAT:
		alu.Hi = internal.FloatWord(-alu.FloatA)
	default:
		alu.Hi = internal.Word(-alu.IntA)
	}
	alu.Lo = 0
}

// Multiply forms the double width product of the two operands.
func (alu *Alu) Multiply() {
	var product uint64

	switch alu.Mode {
	case MODE_FLOAT:
		product = math.Float64bits(float64(alu.FloatA) * float64(alu.FloatB))
	default:
		product = uint64(int64(alu.IntA) * int64(alu.IntB))
	}

	alu.Hi, alu.Lo = internal.Split64(product)
}

// Divide divides the most recent operand by the previous one.
//
// In int mode the truncated quotient goes to Hi and Lo is zeroed; a zero
// divisor returns ErrDivideByZero and leaves the results untouched.
// In float mode the double precision quotient is split across Hi and Lo.
func (alu *Alu) Divide() (err error) {
	switch alu.Mode {
	case MODE_FLOAT:
		quotient := float64(alu.FloatA) / float64(alu.FloatB)
		alu.Hi, alu.Lo = internal.Split64(math.Float64bits(quotient))
	default:
		if alu.IntB == 0 {
			err = ErrDivideByZero
			return
		}
		alu.Hi = internal.Word(alu.IntA / alu.IntB)
		alu.Lo = 0
	}

	return
}

// Cmp compares the most recent operand against the previous one, and
// records the sign of the outcome in Compare.
func (alu *Alu) Cmp() int {
	switch alu.Mode {
	case MODE_FLOAT:
		alu.Compare = cmp.Compare(alu.FloatA, alu.FloatB)
	default:
		alu.Compare = cmp.Compare(alu.IntA, alu.IntB)
	}

	return alu.Compare
}

// ToFloat switches to float mode, converting both integer operands to their
// float values.
func (alu *Alu) ToFloat() {
	if alu.Mode == MODE_FLOAT {
		return
	}

	alu.Mode = MODE_FLOAT
	alu.FloatA = float32(alu.IntA)
	alu.FloatB = float32(alu.IntB)
}

// ToInt switches to int mode, converting both float operands to integers.
// Conversion truncates toward zero, saturates, and maps NaN to zero.
func (alu *Alu) ToInt() {
	if alu.Mode == MODE_INT {
		return
	}

	alu.Mode = MODE_INT
	alu.IntA = internal.Float32ToInt32(alu.FloatA)
	alu.IntB = internal.Float32ToInt32(alu.FloatB)
}

// String returns the ALU state as a string.
func (alu *Alu) String() string {
	var a, b string
	switch alu.Mode {
	case MODE_FLOAT:
		a = fmt.Sprintf("%g", alu.FloatA)
		b = fmt.Sprintf("%g", alu.FloatB)
	default:
		a = fmt.Sprintf("%d", alu.IntA)
		b = fmt.Sprintf("%d", alu.IntB)
	}

	return fmt.Sprintf("%v a=%v b=%v hi=%04X_%04X lo=%04X_%04X cmp=%d",
		alu.Mode, a, b, alu.Hi>>16, alu.Hi&0xffff, alu.Lo>>16, alu.Lo&0xffff, alu.Compare)
}
