package host

import (
	"iter"
	"log"

	"github.com/ezrec/bcpu/cpu"
	"github.com/ezrec/bcpu/internal"
)

// Bridge routes syscalls to its devices.
type Bridge struct {
	Verbose bool // If set, logs every request.

	Tape      Tape      // Console device.
	Temporary Temporary // Scratch queue device.
}

var _ cpu.Syscall = (*Bridge)(nil)

// NewBridge creates a bridge with an empty scratch queue of TEMP_CAPACITY
// words, and a tape with no input or output.
func NewBridge() (br *Bridge) {
	br = &Bridge{}
	br.Temporary.Capacity = TEMP_CAPACITY
	br.Rewind()

	return
}

// Handler returns the device handler, or nil if the device is not attached.
func (br *Bridge) Handler(dev Device) Handler {
	switch dev {
	case DEVICE_TAPE:
		return &br.Tape
	case DEVICE_TEMP:
		return &br.Temporary
	}

	return nil
}

// Rewind all devices.
func (br *Bridge) Rewind() {
	for dev := range Device(device_count) {
		br.Handler(dev).Rewind()
	}
}

// Defines returns an iterator over the equates of all devices.
func (br *Bridge) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		br.Tape.Defines(),
		br.Temporary.Defines(),
	)
}

// Request performs a single syscall, returning the failure reason.
func (br *Bridge) Request(code int32, arg int32) (result int32, err error) {
	dev, op := Decode(code)

	handler := br.Handler(dev)
	if handler == nil {
		result = RESULT_FAIL
		err = &ErrRequest{Device: dev, Op: op, Err: ErrDeviceInvalid}
		return
	}

	result, err = handler.Request(op, arg)
	if err != nil {
		err = &ErrRequest{Device: dev, Op: op, Err: err}
	}

	return
}

// Syscall implements cpu.Syscall.
func (br *Bridge) Syscall(code int32, arg int32) (result int32) {
	result, err := br.Request(code, arg)
	if br.Verbose {
		if err != nil {
			log.Printf("host: sys %#x %d: %v", code, arg, err)
		} else {
			log.Printf("host: sys %#x %d => %d", code, arg, result)
		}
	}

	return
}
