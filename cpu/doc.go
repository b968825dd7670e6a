// Package cpu implements the processor and assembler for the bcpu system.
//
// The processor has a single 32-bit bus register, an instruction pointer
// (IP), an ALU with Hi/Lo result registers, and a growable word addressed
// memory. Every instruction is an opcode cell followed by zero or one
// operand cells. Operands are absolute addresses, signed offsets from the
// IP, signed offsets to a cell holding a further IP-relative offset, or
// literal values.
//
// The assembler provides a small line oriented assembly language for the
// bcpu instruction set, supporting labels, equates, raw data, and
// compile-time expression evaluation.
package cpu
