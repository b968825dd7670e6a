package emulator

import (
	"github.com/ezrec/bcpu/cpu"
)

// Handle is the session as seen by a bridge during one syscall. It runs
// under the lock already held by the running processor, and is only valid
// until the syscall returns. Run control is not available through it.
type Handle struct {
	emu *Emulator
}

func (h *Handle) emulator() *Emulator {
	if h.emu == nil {
		panic(ErrHandleExpired)
	}
	return h.emu
}

// InstructionPointer returns the address of the sys instruction.
func (h *Handle) InstructionPointer() uint32 {
	return h.emulator().Cpu.Ip
}

// Status returns the processor status.
func (h *Handle) Status() cpu.Status {
	return h.emulator().Cpu.Status
}

// LineNo returns the source line of the sys instruction, or 0.
func (h *Handle) LineNo() int {
	return h.emulator().LineNo()
}

// Ticks returns the number of instructions executed before this one.
func (h *Handle) Ticks() int {
	return h.emulator().Cpu.Ticks
}

// SetBreakpoint adds a breakpoint at addr.
func (h *Handle) SetBreakpoint(addr uint32) {
	h.emulator().SetBreakpoint(addr)
}

// RemoveBreakpoint removes the breakpoint at addr.
func (h *Handle) RemoveBreakpoint(addr uint32) {
	h.emulator().RemoveBreakpoint(addr)
}

// EnableBreakpoints makes the run stop at breakpoints.
func (h *Handle) EnableBreakpoints() {
	h.emulator().EnableBreakpoints()
}

// DisableBreakpoints makes the run ignore breakpoints.
func (h *Handle) DisableBreakpoints() {
	h.emulator().DisableBreakpoints()
}

// Breakpoints returns the sorted breakpoint addresses.
func (h *Handle) Breakpoints() []uint32 {
	return h.emulator().Breakpoints()
}

// CellAddress returns the storage location of the cell at addr, or nil.
func (h *Handle) CellAddress(addr uint32) *uint32 {
	return h.emulator().Cpu.Memory.Cell(addr)
}

// Read returns the cell at addr; unallocated cells read as 0.
func (h *Handle) Read(addr uint32) uint32 {
	return h.emulator().Cpu.Memory.Read(addr)
}

// Load writes words into memory starting at addr.
func (h *Handle) Load(addr uint32, words []uint32) error {
	return h.emulator().Cpu.Memory.Load(addr, words)
}
