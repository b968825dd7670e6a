package host

import (
	"errors"

	"github.com/ezrec/bcpu/translate"
)

var f = translate.From

var (
	// Device errors
	ErrDeviceInvalid = errors.New(f("device invalid"))
	ErrOpInvalid     = errors.New(f("device operation invalid"))
	ErrTapeEnd       = errors.New(f("tape end"))
	ErrTempFull      = errors.New(f("temp full"))
	ErrTempEmpty     = errors.New(f("temp empty"))
)

// ErrRequest locates a failed bridge request.
type ErrRequest struct {
	Device Device
	Op     int32
	Err    error
}

func (err *ErrRequest) Error() string {
	return f("%v op %d: %v", err.Device, err.Op, err.Err)
}

func (err *ErrRequest) Unwrap() error {
	return err.Err
}
