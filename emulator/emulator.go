// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/bcpu/cpu"
	"github.com/ezrec/bcpu/internal"
	"github.com/ezrec/bcpu/memory"
)

const (
	API_VERSION = 1 // Version of the Session interface.
)

var _emulator_defines = map[string]string{
	"API_VERSION": fmt.Sprintf("%v", API_VERSION),
}

// Emulator state. CPU + breakpoints + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	DoBreakpoints bool     // If set, the run loop stops at breakpoints.
	Stop          cpu.Stop // Why the last Continue or StepOver stopped.

	breakpoints map[uint32]struct{}
}

// NewEmulator creates a new emulator, with no address space.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:         cpu.NewCpu(),
		Program:     &cpu.Program{},
		breakpoints: map[uint32]struct{}{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Initialize resets the processor to a single empty region, ready to run
// from cpu.ENTRY_POINT, and reloads the program listing into memory.
// Breakpoints, and whether they are enabled, are kept.
func (emu *Emulator) Initialize() (err error) {
	if emu.Verbose {
		log.Printf("emulator: initialize")
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Stop = cpu.STOP_NONE

	err = emu.Program.Load(&emu.Cpu.Memory)

	return
}

// Load attaches a program listing, and initializes the emulator with it.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	emu.Program = prog

	err = emu.Initialize()

	return
}

// SetBreakpoint adds a breakpoint at addr.
func (emu *Emulator) SetBreakpoint(addr uint32) {
	emu.breakpoints[addr] = struct{}{}
}

// RemoveBreakpoint removes the breakpoint at addr, if any.
func (emu *Emulator) RemoveBreakpoint(addr uint32) {
	delete(emu.breakpoints, addr)
}

// EnableBreakpoints makes the run loop stop at breakpoints.
func (emu *Emulator) EnableBreakpoints() {
	emu.DoBreakpoints = true
}

// DisableBreakpoints makes the run loop ignore breakpoints.
func (emu *Emulator) DisableBreakpoints() {
	emu.DoBreakpoints = false
}

// Breakpoints returns the sorted breakpoint addresses.
func (emu *Emulator) Breakpoints() []uint32 {
	return slices.Sorted(maps.Keys(emu.breakpoints))
}

// Code returns the instruction at the instruction pointer. Cells the
// program listing declares as data are returned as data.
func (emu *Emulator) Code() cpu.Code {
	dbg := emu.Program.Debug(emu.Cpu.Ip)
	if dbg.Opcode != nil && len(dbg.Codes) != 0 && dbg.Codes[0].Data {
		return cpu.MakeData(emu.Cpu.Memory.Read(emu.Cpu.Ip))
	}

	code, _ := emu.Cpu.Disassemble(emu.Cpu.Ip)
	return code
}

// LineNo returns the current line number for the executing opcode, or 0 if
// the instruction pointer is outside of the program listing.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Ip)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// RegionSize returns the number of cells in each memory region.
func (emu *Emulator) RegionSize() uint32 {
	return memory.REGION_SIZE
}

// step performs a single step of the run loop.
// The breakpoint is checked before the instruction at the IP is executed.
func (emu *Emulator) step() (done bool, err error) {
	if emu.DoBreakpoints {
		_, ok := emu.breakpoints[emu.Cpu.Ip]
		if ok {
			if emu.Verbose {
				log.Printf("emulator: breakpoint %08x", emu.Cpu.Ip)
			}
			emu.Cpu.Status = cpu.STATUS_PAUSED
			emu.Stop = cpu.STOP_BREAKPOINT
			done = true
			return
		}
	}

	lineno := emu.LineNo()

	stop, err := emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
	}

	emu.Stop = stop
	done = stop != cpu.STOP_NONE

	return
}

// Continue runs the processor until a breakpoint, pause, halt, or fault.
// It does nothing when the processor is empty, halted, or faulted.
// A fault is returned as an *ErrRuntime.
//
// There is no step budget; a program that never stops runs forever.
func (emu *Emulator) Continue() (err error) {
	switch emu.Cpu.Status {
	case cpu.STATUS_EMPTY, cpu.STATUS_HALTED, cpu.STATUS_FAULTED:
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Status = cpu.STATUS_RUNNING

	for {
		var done bool
		done, err = emu.step()
		if done {
			break
		}
	}

	return
}

// StepOver executes a single instruction.
//
// When paused, the breakpoint check still applies. When not started, the
// processor is left paused whatever the instruction did; a fault remains
// visible through Fault(). In any other state, StepOver does nothing.
func (emu *Emulator) StepOver() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	switch emu.Cpu.Status {
	case cpu.STATUS_PAUSED:
		_, err = emu.step()
	case cpu.STATUS_NOT_STARTED:
		_, err = emu.step()
		emu.Cpu.Status = cpu.STATUS_PAUSED
	}

	return
}
