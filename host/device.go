// Package host provides an example syscall bridge for the bcpu processor.
//
// A syscall code selects a device and an operation on it:
//
//	code = device<<8 | op
//
// The bridge routes the request to the device, and returns the device's
// result to the bus. Failed requests, unknown devices, and unknown operations
// all return -1. The processor never interprets codes or results.
package host

import (
	"iter"
)

// Device identifies a bridge device.
type Device int

//go:generate go tool stringer -linecomment -type=Device
const (
	DEVICE_TAPE = Device(0) // tape
	DEVICE_TEMP = Device(1) // temp

	device_count = 2
)

const (
	RESULT_FAIL = int32(-1) // Result of a failed request.
)

// Code returns the syscall code for an operation on the device.
func (dev Device) Code(op int32) int32 {
	return int32(dev)<<8 | (op & 0xff)
}

// Decode splits a syscall code into its device and operation.
func Decode(code int32) (dev Device, op int32) {
	dev = Device(code >> 8)
	op = code & 0xff
	return
}

// Handler is a device attached to the bridge.
type Handler interface {
	// Defines returns the assembler equates of the device operations.
	Defines() iter.Seq2[string, string]
	// Rewind resets the device to its initial state.
	Rewind()
	// Request performs a single operation.
	Request(op int32, arg int32) (result int32, err error)
}
