package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bcpu/alu"
	"github.com/ezrec/bcpu/cpu"
	"github.com/ezrec/bcpu/memory"
)

func doLoad(t *testing.T, program []string) (emu *Emulator, asm *cpu.Assembler) {
	assert := assert.New(t)

	asm = &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	emu = NewEmulator()
	err = emu.Load(prog)
	assert.NoError(err)

	return
}

// doRunSingle single steps a straight line program, checking the listing
// against the instruction pointer at each step.
func doRunSingle(t *testing.T, program []string) (emu *Emulator) {
	assert := assert.New(t)

	emu, _ = doLoad(t, program)

	for _, op := range emu.Program.Opcodes {
		here := program[op.LineNo-1]
		assert.Equal(op.LineNo, emu.LineNo(), here)
		assert.Equal(op.Ip, emu.Cpu.Ip, here)
		assert.Equal(op.Codes[0], emu.Code(), here)

		err := emu.StepOver()
		assert.NoError(err, here)
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatal(err)
		}
	}

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.False(emu.DoBreakpoints)
	assert.Equal(cpu.STATUS_EMPTY, emu.Cpu.Status)
	assert.Equal(uint32(memory.REGION_SIZE), emu.RegionSize())
	assert.Empty(emu.Breakpoints())
	assert.Equal(0, emu.LineNo())

	defines := maps.Collect(emu.Defines())
	assert.Equal("1", defines["API_VERSION"])
	assert.Equal("2048", defines["REGION_SIZE"])
	assert.Equal("1", defines["ENTRY_POINT"])
}

func TestEmulatorEmpty(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_EMPTY, emu.Cpu.Status)
	assert.Equal(0, emu.Cpu.Ticks)

	assert.NoError(emu.StepOver())
	assert.Equal(cpu.STATUS_EMPTY, emu.Cpu.Status)
	assert.Equal(0, emu.Cpu.Ticks)
}

func TestEmulatorInitialize(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.SetBreakpoint(9)
	emu.EnableBreakpoints()

	assert.NoError(emu.Initialize())
	assert.Equal(cpu.STATUS_NOT_STARTED, emu.Cpu.Status)
	assert.Equal(uint32(cpu.ENTRY_POINT), emu.Cpu.Ip)
	assert.Equal(1, emu.Cpu.Memory.Regions())
	assert.Equal([]uint32{9}, emu.Breakpoints())
	assert.True(emu.DoBreakpoints)
}

func TestEmulatorScenarioAdd(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldi 5",
		"push",
		"ldi 3",
		"push",
		"add",
	}

	emu := doRunSingle(t, program)

	assert.Equal(uint32(8), emu.Cpu.Alu.Hi)
	assert.Equal(uint32(0), emu.Cpu.Alu.Lo)
	assert.Equal(uint32(3), emu.Cpu.Bus)
	assert.Equal(cpu.STATUS_PAUSED, emu.Cpu.Status)
	assert.Equal(5, emu.Cpu.Ticks)
}

func TestEmulatorScenarioMultiply(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldi 6",
		"push",
		"ldi 7",
		"push",
		"mul",
		"hi",
		"sta 0x100",
		"lo",
		"sta 0x101",
		"halt",
	}

	emu, _ := doLoad(t, program)
	assert.NoError(emu.Continue())

	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
	assert.Equal(uint32(0), emu.Cpu.Alu.Hi)
	assert.Equal(uint32(42), emu.Cpu.Alu.Lo)
	assert.Equal(uint32(0), emu.Cpu.Memory.Read(0x100))
	assert.Equal(uint32(42), emu.Cpu.Memory.Read(0x101))
}

func TestEmulatorBreakpoint(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldi 7",
		"sta 100",
		"ldi 9",
		"SECOND: sta 101",
		"halt",
	}

	emu, asm := doLoad(t, program)
	second := asm.Label["SECOND"]

	emu.SetBreakpoint(second)
	emu.SetBreakpoint(second)
	emu.EnableBreakpoints()

	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_PAUSED, emu.Cpu.Status)
	assert.Equal(second, emu.Cpu.Ip)
	assert.Equal(4, emu.LineNo())
	assert.Equal(uint32(7), emu.Cpu.Memory.Read(100))
	assert.Equal(uint32(0), emu.Cpu.Memory.Read(101))
	assert.Equal(3, emu.Cpu.Ticks)
	assert.Equal(cpu.STOP_BREAKPOINT, emu.Stop)

	// Still at the breakpoint.
	assert.NoError(emu.Continue())
	assert.Equal(second, emu.Cpu.Ip)
	assert.Equal(3, emu.Cpu.Ticks)

	assert.NoError(emu.StepOver())
	assert.Equal(second, emu.Cpu.Ip)
	assert.Equal(3, emu.Cpu.Ticks)

	emu.RemoveBreakpoint(second)
	emu.RemoveBreakpoint(second)
	assert.Empty(emu.Breakpoints())

	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
	assert.Equal(uint32(9), emu.Cpu.Memory.Read(101))
	assert.Equal(5, emu.Cpu.Ticks)
	assert.Equal(cpu.STOP_HALT, emu.Stop)
}

func TestEmulatorBreakpointDisabled(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldi 7",
		"SECOND: sta 100",
		"halt",
	}

	emu, asm := doLoad(t, program)
	emu.SetBreakpoint(asm.Label["SECOND"])

	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
	assert.Equal(uint32(7), emu.Cpu.Memory.Read(100))

	// Breakpoints survive initialization.
	assert.NoError(emu.Initialize())
	assert.Equal(uint32(0), emu.Cpu.Memory.Read(100))
	assert.Equal(uint32(cpu.OP_LDI), emu.Cpu.Memory.Read(cpu.ENTRY_POINT))

	emu.EnableBreakpoints()
	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_PAUSED, emu.Cpu.Status)
	assert.Equal(asm.Label["SECOND"], emu.Cpu.Ip)

	emu.DisableBreakpoints()
	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
}

func TestEmulatorBreakpoints(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	for _, addr := range []uint32{30, 10, 20, 10} {
		emu.SetBreakpoint(addr)
	}
	assert.Equal([]uint32{10, 20, 30}, emu.Breakpoints())

	emu.RemoveBreakpoint(20)
	emu.RemoveBreakpoint(40)
	assert.Equal([]uint32{10, 30}, emu.Breakpoints())
}

func TestEmulatorStepOverNotStarted(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldi 5",
		"ldi 6",
		"halt",
	}

	emu, _ := doLoad(t, program)

	assert.NoError(emu.StepOver())
	assert.Equal(cpu.STATUS_PAUSED, emu.Cpu.Status)
	assert.Equal(uint32(cpu.ENTRY_POINT+2), emu.Cpu.Ip)
	assert.Equal(uint32(5), emu.Cpu.Bus)
	assert.Equal(1, emu.Cpu.Ticks)

	assert.NoError(emu.StepOver())
	assert.Equal(cpu.STATUS_PAUSED, emu.Cpu.Status)
	assert.Equal(uint32(6), emu.Cpu.Bus)

	assert.NoError(emu.StepOver())
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)

	// No-op once halted.
	assert.NoError(emu.StepOver())
	assert.Equal(3, emu.Cpu.Ticks)
}

func TestEmulatorStepOverNotStartedHalt(t *testing.T) {
	assert := assert.New(t)

	emu, _ := doLoad(t, []string{"halt"})

	assert.NoError(emu.StepOver())
	assert.Equal(cpu.STATUS_PAUSED, emu.Cpu.Status)
	assert.Equal(uint32(cpu.ENTRY_POINT+1), emu.Cpu.Ip)
	assert.Equal(1, emu.Cpu.Ticks)
}

func TestEmulatorStepOverNotStartedFault(t *testing.T) {
	assert := assert.New(t)

	emu, _ := doLoad(t, []string{".word 99"})

	err := emu.StepOver()
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)

	var re *ErrRuntime
	if assert.ErrorAs(err, &re) {
		assert.Equal(1, re.LineNo)
	}

	assert.Equal(cpu.STATUS_PAUSED, emu.Cpu.Status)
	assert.ErrorIs(emu.Cpu.Fault(), cpu.ErrOpcodeInvalid)
	assert.Equal(uint32(cpu.ENTRY_POINT), emu.Cpu.Ip)
}

func TestEmulatorPause(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldi 1",
		"pause",
		"ldi 2",
		"halt",
	}

	emu, _ := doLoad(t, program)

	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_PAUSED, emu.Cpu.Status)
	assert.Equal(uint32(1), emu.Cpu.Bus)
	assert.Equal(3, emu.LineNo())
	assert.Equal(cpu.STOP_PAUSE, emu.Stop)

	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
	assert.Equal(uint32(2), emu.Cpu.Bus)
}

func TestEmulatorHalted(t *testing.T) {
	assert := assert.New(t)

	emu, _ := doLoad(t, []string{"halt", "ldi 1"})

	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
	assert.Equal(1, emu.Cpu.Ticks)

	assert.NoError(emu.Continue())
	assert.NoError(emu.StepOver())
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
	assert.Equal(1, emu.Cpu.Ticks)
	assert.Equal(uint32(0), emu.Cpu.Bus)
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldi 0",
		"push",
		"push",
		"div",
		"halt",
	}

	emu, _ := doLoad(t, program)

	err := emu.Continue()
	assert.ErrorIs(err, alu.ErrDivideByZero)
	assert.True(errors.Is(err, cpu.ErrOpcode{}))

	var re *ErrRuntime
	if assert.ErrorAs(err, &re) {
		assert.Equal(4, re.LineNo)
	}

	assert.Equal(cpu.STATUS_FAULTED, emu.Cpu.Status)
	assert.Equal(4, emu.LineNo())
	assert.Equal(cpu.OP_DIV, emu.Code().Op())

	// Faulted is terminal.
	assert.NoError(emu.Continue())
	assert.NoError(emu.StepOver())
	assert.Equal(cpu.STATUS_FAULTED, emu.Cpu.Status)
	assert.Equal(3, emu.Cpu.Ticks)
}

func TestEmulatorGrow(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"grow",
		"stp PTR",
		"halt",
		"PTR: .word $(REGION_SIZE + 10 - 2)",
	}

	emu, _ := doLoad(t, program)
	assert.Equal(1, emu.Cpu.Memory.Regions())

	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
	assert.Equal(2, emu.Cpu.Memory.Regions())
	assert.Equal(uint64(2*memory.REGION_SIZE), emu.Cpu.Memory.Size())
	assert.Equal(uint32(memory.REGION_SIZE), emu.Cpu.Bus)
	assert.Equal(uint32(memory.REGION_SIZE), emu.Cpu.Memory.Read(memory.REGION_SIZE+10))
}

func TestEmulatorLoop(t *testing.T) {
	assert := assert.New(t)

	// Sum 1..10 into TOTAL.
	program := []string{
		"       ldi 10",
		"       sta COUNT",
		"LOOP:  lda TOTAL",
		"       push",
		"       lda COUNT",
		"       push",
		"       add",
		"       hi",
		"       sta TOTAL",
		"       ldi -1",
		"       push",
		"       add",
		"       hi",
		"       sta COUNT",
		"       push",
		"       ldi 0",
		"       push",
		"       blz LOOP",
		"       halt",
		"COUNT: .word 0",
		"TOTAL: .word 0",
	}

	emu, asm := doLoad(t, program)

	assert.NoError(emu.Continue())
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status)
	assert.Equal(uint32(55), emu.Cpu.Memory.Read(asm.Label["TOTAL"]))
	assert.Equal(uint32(0), emu.Cpu.Memory.Read(asm.Label["COUNT"]))
}

func TestEmulatorCodeData(t *testing.T) {
	assert := assert.New(t)

	emu, asm := doLoad(t, []string{
		"ldi 1",
		"halt",
		"DATA: .word 20 5",
	})
	data := asm.Label["DATA"]

	code := emu.Code()
	assert.False(code.Data)
	assert.Equal(cpu.OP_LDI, code.Op())

	emu.Cpu.Ip = data
	code = emu.Code()
	assert.True(code.Data)
	assert.Equal(uint32(cpu.OP_LDI), code.Word)
	assert.Equal(".word 0x14", code.String())

	emu.Cpu.Ip = data + 1
	assert.Equal(".word 0x5", emu.Code().String())

	// Outside the listing the cell is decoded as an instruction.
	assert.NoError(emu.Cpu.Memory.Load(data+4, []uint32{uint32(cpu.OP_LDI), 7}))
	emu.Cpu.Ip = data + 4
	assert.Equal(cpu.OP_LDI, emu.Code().Op())
}
