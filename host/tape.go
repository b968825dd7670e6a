package host

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
)

const (
	TAPE_OP_GETC = int32(0) // Read a byte, -1 at the end of the tape.
	TAPE_OP_PUTC = int32(1) // Write the low byte of the argument.
	TAPE_OP_PUTI = int32(2) // Write the argument as a decimal integer.
)

// Tape provides sequential byte I/O over an io.Reader and io.Writer.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	err error // First output error.
}

var _ Handler = (*Tape)(nil)

// Defines returns an iter of defines for the device.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"SYS_TAPE_GETC": fmt.Sprintf("%#x", DEVICE_TAPE.Code(TAPE_OP_GETC)),
		"SYS_TAPE_PUTC": fmt.Sprintf("%#x", DEVICE_TAPE.Code(TAPE_OP_PUTC)),
		"SYS_TAPE_PUTI": fmt.Sprintf("%#x", DEVICE_TAPE.Code(TAPE_OP_PUTI)),
	})
}

// Rewind is not possible on a tape; only the output error is cleared.
func (tc *Tape) Rewind() {
	tc.err = nil
}

// Err returns the first error seen writing the output.
func (tc *Tape) Err() error {
	return tc.err
}

// Request performs a tape operation.
func (tc *Tape) Request(op int32, arg int32) (result int32, err error) {
	switch op {
	case TAPE_OP_GETC:
		result, err = tc.getc()
	case TAPE_OP_PUTC:
		err = tc.write([]byte{byte(arg)})
	case TAPE_OP_PUTI:
		err = tc.write(fmt.Appendf(nil, "%d", arg))
	default:
		err = ErrOpInvalid
	}

	if err != nil {
		result = RESULT_FAIL
	}

	return
}

func (tc *Tape) getc() (result int32, err error) {
	if tc.Input == nil {
		err = ErrTapeEnd
		return
	}

	var one [1]byte
	_, err = io.ReadFull(tc.Input, one[:])
	if errors.Is(err, io.EOF) {
		err = ErrTapeEnd
	}
	if err != nil {
		return
	}

	result = int32(one[0])
	return
}

func (tc *Tape) write(data []byte) (err error) {
	if tc.Output == nil {
		err = ErrTapeEnd
		return
	}

	_, err = tc.Output.Write(data)
	if err != nil && tc.err == nil {
		tc.err = err
	}

	return
}
