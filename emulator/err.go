package emulator

import (
	"errors"

	"github.com/ezrec/bcpu/translate"
)

var f = translate.From

var (
	// Session errors
	ErrHandleExpired = errors.New(f("session handle used after its syscall returned"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
