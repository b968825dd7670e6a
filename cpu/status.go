package cpu

// Status is the run state of the processor.
//
// The numeric values are stable, and are part of the host interface.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_PAUSED      = Status(0) // paused
	STATUS_HALTED      = Status(1) // halted
	STATUS_NOT_STARTED = Status(2) // not-started
	STATUS_RUNNING     = Status(3) // running
	STATUS_EMPTY       = Status(4) // empty
	STATUS_FAULTED     = Status(5) // faulted
)

// Terminal returns true if the processor can never execute again without
// being reset.
func (st Status) Terminal() bool {
	return st == STATUS_HALTED || st == STATUS_FAULTED
}

// Stop is the reason a single step asks the run loop to stop.
type Stop int

//go:generate go tool stringer -linecomment -type=Stop
const (
	STOP_NONE  = Stop(0) // none
	STOP_PAUSE = Stop(1) // pause
	STOP_HALT  = Stop(2) // halt
	STOP_FAULT = Stop(3) // fault

	STOP_BREAKPOINT = Stop(4) // breakpoint
)
