package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/bcpu/alu"
	"github.com/ezrec/bcpu/internal"
	"github.com/ezrec/bcpu/memory"
)

const (
	ENTRY_POINT = 1 // IP of a freshly reset processor.
)

var _cpu_defines = map[string]string{
	"REGION_SIZE":  fmt.Sprintf("%d", memory.REGION_SIZE),
	"REGION_LIMIT": fmt.Sprintf("%d", memory.REGION_LIMIT),
	"ENTRY_POINT":  fmt.Sprintf("%d", ENTRY_POINT),
}

// Cpu is the simulation context of the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Bus    uint32       // Last transferred word.
	Ip     uint32       // Current instruction pointer.
	Status Status       // Run state.
	Alu    alu.Alu      // Arithmetic-logic unit.
	Memory memory.Space // Address space.

	Syscall Syscall // Host bridge for the sys opcode.

	Ticks int // Instructions executed since reset.

	fault error // Reason for STATUS_FAULTED.

	// Per-step state.
	operands  uint32 // Operands consumed by this step.
	noAdvance bool   // Set when the instruction sets the IP itself.
}

// NewCpu creates a processor with no address space.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Ip:     ENTRY_POINT,
		Status: STATUS_EMPTY,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Drops the address space, and allocates the first region.
// - Clears the bus, ALU, and fault.
// - Zeros the tick counter.
// - Sets the IP to ENTRY_POINT, and the status to STATUS_NOT_STARTED.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Verbose = cpu.Verbose
	cpu.Memory.Reset()
	cpu.Memory.Grow()
	cpu.Alu.Reset()

	cpu.Bus = 0
	cpu.Ip = ENTRY_POINT
	cpu.Ticks = 0
	cpu.fault = nil
	cpu.Status = STATUS_NOT_STARTED
}

// Fault returns the reason the processor faulted, or nil.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"ip", "bus", "status", "mode", "a", "b", "hi", "lo", "cmp", "mem",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%04X_%04X", cpu.Ip>>16, cpu.Ip&0xffff)
		case "bus":
			strval = fmt.Sprintf("%04X_%04X", cpu.Bus>>16, cpu.Bus&0xffff)
		case "status":
			strval = cpu.Status.String()
			if cpu.fault != nil {
				strval += fmt.Sprintf(" (%v)", cpu.fault)
			}
		case "mode":
			strval = cpu.Alu.Mode.String()
		case "a":
			strval = fmt.Sprintf("%d", cpu.Alu.IntA)
			if cpu.Alu.Mode == alu.MODE_FLOAT {
				strval = fmt.Sprintf("%g", cpu.Alu.FloatA)
			}
		case "b":
			strval = fmt.Sprintf("%d", cpu.Alu.IntB)
			if cpu.Alu.Mode == alu.MODE_FLOAT {
				strval = fmt.Sprintf("%g", cpu.Alu.FloatB)
			}
		case "hi":
			strval = fmt.Sprintf("%04X_%04X", cpu.Alu.Hi>>16, cpu.Alu.Hi&0xffff)
		case "lo":
			strval = fmt.Sprintf("%04X_%04X", cpu.Alu.Lo>>16, cpu.Alu.Lo&0xffff)
		case "cmp":
			strval = fmt.Sprintf("%d", cpu.Alu.Compare)
		case "mem":
			strval = cpu.Memory.String()
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// Disassemble decodes the instruction at addr.
func (cpu *Cpu) Disassemble(addr uint32) (code Code, err error) {
	code.Word = cpu.Memory.Read(addr)

	op := code.Op()
	if !op.Valid() {
		err = ErrOpcodeInvalid
		return
	}

	for n := range op.OperandNeed() {
		code.Operands = append(code.Operands, cpu.Memory.Read(addr+1+uint32(n)))
	}

	return
}

// operand fetches the next operand of the current instruction.
func (cpu *Cpu) operand() (value uint32) {
	cpu.operands++
	value = cpu.Memory.Read(cpu.Ip + cpu.operands)
	return
}

// relative resolves a signed offset from the IP.
// Adding the raw word is two's complement addition of the signed offset.
func (cpu *Cpu) relative(offset uint32) uint32 {
	return cpu.Ip + offset
}

// pointer resolves a signed offset from the IP to a cell holding a further
// signed offset from the IP.
func (cpu *Cpu) pointer(offset uint32) uint32 {
	return cpu.relative(cpu.Memory.Read(cpu.relative(offset)))
}

// Step executes a single instruction.
//
// A fault moves the processor to STATUS_FAULTED, leaves the IP on the
// faulting instruction, and is returned as err. Halt and pause update the
// status, and are reported through stop.
func (cpu *Cpu) Step() (stop Stop, err error) {
	if cpu.Status == STATUS_EMPTY {
		err = ErrNotInitialized
		return
	}

	cpu.operands = 0
	cpu.noAdvance = false

	ip := cpu.Ip
	word := cpu.Memory.Read(ip)

	if cpu.Verbose {
		code, _ := cpu.Disassemble(ip)
		log.Printf("%08x: %v", ip, code)
	}

	err = cpu.execute(CodeOp(word))
	if err != nil {
		err = errors.Join(ErrOpcode{Ip: ip, Word: word}, err)
		cpu.fault = err
		cpu.Status = STATUS_FAULTED
		cpu.Ip = ip
		stop = STOP_FAULT

		if cpu.Verbose {
			log.Printf("cpu: fault %v", err)
		}
		return
	}

	cpu.Ticks++

	switch CodeOp(word) {
	case OP_HALT:
		stop = STOP_HALT
	case OP_PAUSE:
		stop = STOP_PAUSE
	}

	if !cpu.noAdvance {
		cpu.Ip += cpu.operands + 1
	}

	return
}

// execute dispatches a single opcode.
func (cpu *Cpu) execute(op CodeOp) (err error) {
	switch op {
	case OP_NOP:
		// pass
	case OP_LDP:
		cpu.Bus = cpu.Memory.Read(cpu.pointer(cpu.operand()))
	case OP_STP:
		err = cpu.Memory.Write(cpu.pointer(cpu.operand()), cpu.Bus)
	case OP_LDR:
		cpu.Bus = cpu.Memory.Read(cpu.relative(cpu.operand()))
	case OP_STR:
		err = cpu.Memory.Write(cpu.relative(cpu.operand()), cpu.Bus)
	case OP_PUSH:
		cpu.Alu.Push(cpu.Bus)
	case OP_ADD:
		cpu.Alu.Add()
	case OP_NEG:
		cpu.Alu.Negate()
	case OP_MUL:
		cpu.Alu.Multiply()
	case OP_DIV:
		err = cpu.Alu.Divide()
	case OP_JMP:
		cpu.Ip = cpu.relative(cpu.Bus)
		cpu.noAdvance = true
	case OP_BGZ, OP_BLZ, OP_BEZ:
		offset := cpu.operand()
		compare := cpu.Alu.Cmp()
		taken := (op == OP_BGZ && compare > 0) ||
			(op == OP_BLZ && compare < 0) ||
			(op == OP_BEZ && compare == 0)
		if taken {
			// The normal advance past the operand still applies.
			cpu.Ip = cpu.relative(offset)
		}
	case OP_GROW:
		if cpu.Memory.Regions() >= memory.REGION_LIMIT {
			err = memory.ErrRegionLimit
			return
		}
		index := cpu.Memory.Grow()
		cpu.Bus = uint32(index) * memory.REGION_SIZE
	case OP_SYS:
		arg := cpu.operand()
		if cpu.Syscall == nil {
			err = ErrSyscallMissing
			return
		}
		result := cpu.Syscall.Syscall(internal.Int32(cpu.Bus), internal.Int32(arg))
		cpu.Bus = internal.Word(result)
	case OP_HALT:
		cpu.Status = STATUS_HALTED
	case OP_PAUSE:
		cpu.Status = STATUS_PAUSED
	case OP_LDA:
		cpu.Bus = cpu.Memory.Read(cpu.operand())
	case OP_STA:
		err = cpu.Memory.Write(cpu.operand(), cpu.Bus)
	case OP_LDI:
		cpu.Bus = cpu.operand()
	case OP_FLOAT:
		cpu.Alu.ToFloat()
	case OP_INT:
		cpu.Alu.ToInt()
	case OP_LO:
		cpu.Bus = cpu.Alu.Lo
	case OP_HI:
		cpu.Bus = cpu.Alu.Hi
	case OP_ITOF:
		cpu.Bus = internal.FloatWord(float32(internal.Int32(cpu.Bus)))
	case OP_FTOI:
		cpu.Bus = internal.Word(internal.Float32ToInt32(internal.Float32(cpu.Bus)))
	default:
		err = ErrOpcodeInvalid
	}

	return
}
