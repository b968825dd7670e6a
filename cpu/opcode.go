package cpu

import (
	"fmt"
	"strings"
)

// CodeOp is an instruction opcode, the first cell of every instruction.
type CodeOp uint32

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_NOP   = CodeOp(0)  // nop
	OP_LDP   = CodeOp(1)  // ldp
	OP_STP   = CodeOp(2)  // stp
	OP_LDR   = CodeOp(3)  // ldr
	OP_STR   = CodeOp(4)  // str
	OP_PUSH  = CodeOp(5)  // push
	OP_ADD   = CodeOp(6)  // add
	OP_NEG   = CodeOp(7)  // neg
	OP_MUL   = CodeOp(8)  // mul
	OP_DIV   = CodeOp(9)  // div
	OP_JMP   = CodeOp(10) // jmp
	OP_BGZ   = CodeOp(11) // bgz
	OP_BLZ   = CodeOp(12) // blz
	OP_BEZ   = CodeOp(13) // bez
	OP_GROW  = CodeOp(14) // grow
	OP_SYS   = CodeOp(15) // sys
	OP_HALT  = CodeOp(16) // halt
	OP_PAUSE = CodeOp(17) // pause
	OP_LDA   = CodeOp(18) // lda
	OP_STA   = CodeOp(19) // sta
	OP_LDI   = CodeOp(20) // ldi
	OP_FLOAT = CodeOp(21) // float
	OP_INT   = CodeOp(22) // int
	OP_LO    = CodeOp(23) // lo
	OP_HI    = CodeOp(24) // hi
	OP_ITOF  = CodeOp(25) // itof
	OP_FTOI  = CodeOp(26) // ftoi

	op_count = 27
)

// CodeMode is the addressing mode of an instruction operand.
type CodeMode int

const (
	MODE_NONE      = CodeMode(0) // No operand.
	MODE_ABSOLUTE  = CodeMode(1) // Operand is an absolute address.
	MODE_RELATIVE  = CodeMode(2) // Operand is a signed offset from the IP.
	MODE_POINTER   = CodeMode(3) // Operand is a signed offset from the IP to a cell holding a further offset.
	MODE_IMMEDIATE = CodeMode(4) // Operand is a literal value.
	MODE_BRANCH    = CodeMode(5) // Operand is a signed branch offset.
)

// opMode is the operand addressing mode of each opcode.
var opMode = [op_count]CodeMode{
	OP_LDP: MODE_POINTER,
	OP_STP: MODE_POINTER,
	OP_LDR: MODE_RELATIVE,
	OP_STR: MODE_RELATIVE,
	OP_BGZ: MODE_BRANCH,
	OP_BLZ: MODE_BRANCH,
	OP_BEZ: MODE_BRANCH,
	OP_SYS: MODE_IMMEDIATE,
	OP_LDA: MODE_ABSOLUTE,
	OP_STA: MODE_ABSOLUTE,
	OP_LDI: MODE_IMMEDIATE,
}

// Valid returns true if the opcode is defined.
func (op CodeOp) Valid() bool {
	return op < op_count
}

// Mode returns the addressing mode of the opcode's operand.
func (op CodeOp) Mode() CodeMode {
	if !op.Valid() {
		return MODE_NONE
	}
	return opMode[op]
}

// OperandNeed returns the number of operand cells following the opcode.
func (op CodeOp) OperandNeed() int {
	if op.Mode() == MODE_NONE {
		return 0
	}
	return 1
}

// Opcode represents a line of assembled code with its source location and generated cells.
type Opcode struct {
	LineNo    int
	Ip        uint32
	Words     []string
	Codes     []Code
	LinkLabel string
}

// Len returns the number of cells generated by the line.
func (op *Opcode) Len() (size int) {
	for _, code := range op.Codes {
		size += code.Len()
	}
	return
}

// Code represents a single instruction, or a raw data cell.
type Code struct {
	Word     uint32   // Opcode, or the data value.
	Operands []uint32 // Operand cells.
	Data     bool     // Raw data cell, never an instruction.
}

// MakeData creates a raw data cell.
func MakeData(value uint32) Code {
	return Code{Word: value, Data: true}
}

// MakeCode creates an instruction code.
func MakeCode(op CodeOp, operands ...uint32) Code {
	return Code{
		Word:     uint32(op),
		Operands: operands,
	}
}

// Op returns the opcode of the code.
func (code Code) Op() CodeOp {
	return CodeOp(code.Word)
}

// Len returns the number of cells in the code.
func (code Code) Len() int {
	return 1 + len(code.Operands)
}

// Cells returns the cells of the code, in memory order.
func (code Code) Cells() []uint32 {
	return append([]uint32{code.Word}, code.Operands...)
}

// String returns the assembly language representation of this code.
func (code Code) String() string {
	op := code.Op()
	if code.Data || !op.Valid() {
		return fmt.Sprintf(".word 0x%x", code.Word)
	}

	words := []string{op.String()}
	for _, operand := range code.Operands {
		switch op.Mode() {
		case MODE_RELATIVE, MODE_POINTER, MODE_BRANCH:
			words = append(words, fmt.Sprintf("%+d", int32(operand)))
		default:
			words = append(words, fmt.Sprintf("0x%x", operand))
		}
	}

	return strings.Join(words, " ")
}
