package emulator

import (
	"iter"
	"sync"

	"github.com/ezrec/bcpu/cpu"
)

// Session is the boundary between an embedding host and one emulator.
//
// Every operation takes the session lock, which stays held while the
// processor is running, including during syscalls. A bridge reaches the
// session state through the *Handle it is given; calling the Session
// itself from inside a syscall deadlocks.
type Session struct {
	mutex  sync.Mutex
	emu    *Emulator
	bridge Bridge
}

// Bridge handles the sys opcode for a session.
type Bridge interface {
	Syscall(h *Handle, code int32, arg int32) int32
}

// BridgeFunc adapts a function to a Bridge.
type BridgeFunc func(h *Handle, code int32, arg int32) int32

func (fn BridgeFunc) Syscall(h *Handle, code int32, arg int32) int32 {
	return fn(h, code, arg)
}

// NewSession creates a session with an empty processor. The syscall
// handles the sys opcode; a nil syscall makes every sys opcode fault.
func NewSession(syscall cpu.Syscall) (sess *Session) {
	if syscall == nil {
		return NewBridgeSession(nil)
	}

	return NewBridgeSession(BridgeFunc(func(_ *Handle, code int32, arg int32) int32 {
		return syscall.Syscall(code, arg)
	}))
}

// NewBridgeSession creates a session whose bridge may inspect and edit the
// session while a syscall is outstanding.
func NewBridgeSession(bridge Bridge) (sess *Session) {
	sess = &Session{
		emu:    NewEmulator(),
		bridge: bridge,
	}

	if bridge != nil {
		sess.emu.Cpu.Syscall = cpu.SyscallFunc(sess.syscall)
	}

	return
}

// syscall runs with the session lock held by Continue or StepOver.
func (sess *Session) syscall(code int32, arg int32) int32 {
	h := &Handle{emu: sess.emu}
	defer func() { h.emu = nil }()

	return sess.bridge.Syscall(h, code, arg)
}

func (sess *Session) inspect(fn func(emu *Emulator)) {
	sess.mutex.Lock()
	defer sess.mutex.Unlock()

	fn(sess.emu)
}

func (sess *Session) control(fn func(emu *Emulator) error) (err error) {
	sess.mutex.Lock()
	defer sess.mutex.Unlock()

	err = fn(sess.emu)
	return
}

// Version returns API_VERSION.
func (sess *Session) Version() int {
	return API_VERSION
}

// SetVerbose enables logging of the emulator and processor.
func (sess *Session) SetVerbose(verbose bool) {
	sess.inspect(func(emu *Emulator) { emu.Verbose = verbose })
}

// Initialize resets the processor, and reloads the attached program.
func (sess *Session) Initialize() error {
	return sess.control(func(emu *Emulator) error { return emu.Initialize() })
}

// LoadProgram attaches a program listing, and initializes the processor
// with it.
func (sess *Session) LoadProgram(prog *cpu.Program) error {
	return sess.control(func(emu *Emulator) error { return emu.Load(prog) })
}

// SetBreakpoint adds a breakpoint at addr.
func (sess *Session) SetBreakpoint(addr uint32) {
	sess.inspect(func(emu *Emulator) { emu.SetBreakpoint(addr) })
}

// RemoveBreakpoint removes the breakpoint at addr.
func (sess *Session) RemoveBreakpoint(addr uint32) {
	sess.inspect(func(emu *Emulator) { emu.RemoveBreakpoint(addr) })
}

// EnableBreakpoints makes Continue and StepOver stop at breakpoints.
func (sess *Session) EnableBreakpoints() {
	sess.inspect(func(emu *Emulator) { emu.EnableBreakpoints() })
}

// DisableBreakpoints makes Continue and StepOver ignore breakpoints.
func (sess *Session) DisableBreakpoints() {
	sess.inspect(func(emu *Emulator) { emu.DisableBreakpoints() })
}

// Breakpoints returns the sorted breakpoint addresses.
func (sess *Session) Breakpoints() (addrs []uint32) {
	sess.inspect(func(emu *Emulator) { addrs = emu.Breakpoints() })
	return
}

// Continue runs until a breakpoint, pause, halt, or fault.
func (sess *Session) Continue() error {
	return sess.control(func(emu *Emulator) error { return emu.Continue() })
}

// StepOver executes a single instruction.
func (sess *Session) StepOver() error {
	return sess.control(func(emu *Emulator) error { return emu.StepOver() })
}

// InstructionPointer returns the address of the next instruction.
func (sess *Session) InstructionPointer() (ip uint32) {
	sess.inspect(func(emu *Emulator) { ip = emu.Cpu.Ip })
	return
}

// LineNo returns the source line of the next instruction, or 0.
func (sess *Session) LineNo() (lineno int) {
	sess.inspect(func(emu *Emulator) { lineno = emu.LineNo() })
	return
}

// Code returns the instruction or data cell at the instruction pointer.
func (sess *Session) Code() (code cpu.Code) {
	sess.inspect(func(emu *Emulator) { code = emu.Code() })
	return
}

// Stop returns why the last Continue or StepOver stopped.
func (sess *Session) Stop() (stop cpu.Stop) {
	sess.inspect(func(emu *Emulator) { stop = emu.Stop })
	return
}

// Status returns the processor status.
func (sess *Session) Status() (status cpu.Status) {
	sess.inspect(func(emu *Emulator) { status = emu.Cpu.Status })
	return
}

// Fault returns the reason the processor faulted, or nil.
func (sess *Session) Fault() (err error) {
	sess.inspect(func(emu *Emulator) { err = emu.Cpu.Fault() })
	return
}

// Ticks returns the number of instructions executed since initialization.
func (sess *Session) Ticks() (ticks int) {
	sess.inspect(func(emu *Emulator) { ticks = emu.Cpu.Ticks })
	return
}

// RegionSize returns the number of cells in each memory region.
func (sess *Session) RegionSize() (size uint32) {
	sess.inspect(func(emu *Emulator) { size = emu.RegionSize() })
	return
}

// Regions returns the number of allocated memory regions.
func (sess *Session) Regions() (count int) {
	sess.inspect(func(emu *Emulator) { count = emu.Cpu.Memory.Regions() })
	return
}

// CellAddress returns the storage location of the cell at addr, or nil
// if the cell is not allocated. The location is stable until the next
// Initialize.
func (sess *Session) CellAddress(addr uint32) (cell *uint32) {
	sess.inspect(func(emu *Emulator) { cell = emu.Cpu.Memory.Cell(addr) })
	return
}

// Read returns the cell at addr; unallocated cells read as 0.
func (sess *Session) Read(addr uint32) (value uint32) {
	sess.inspect(func(emu *Emulator) { value = emu.Cpu.Memory.Read(addr) })
	return
}

// Load writes words into memory starting at addr.
func (sess *Session) Load(addr uint32, words []uint32) (err error) {
	sess.inspect(func(emu *Emulator) { err = emu.Cpu.Memory.Load(addr, words) })
	return
}

// String returns the processor state as a string.
func (sess *Session) String() (text string) {
	sess.inspect(func(emu *Emulator) { text = emu.Cpu.String() })
	return
}

// Defines returns the assembler equates of the emulator and processor.
func (sess *Session) Defines() (defines iter.Seq2[string, string]) {
	sess.inspect(func(emu *Emulator) { defines = emu.Defines() })
	return
}
