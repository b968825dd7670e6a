package cpu

import (
	"iter"

	"github.com/ezrec/bcpu/memory"
)

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int // Cell index within the opcode.
}

func (prog *Program) Debug(ip uint32) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+uint32(op.Len()) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(ip - op.Ip),
			}
			break
		}
	}

	return
}

// Binary returns the program cells, and the address of the first cell.
// Gaps left by .org are zero filled.
func (prog *Program) Binary() (origin uint32, bins []uint32) {
	first := true
	for ip, cell := range prog.Cells() {
		if first {
			origin = ip
			first = false
		}
		for origin+uint32(len(bins)) < ip {
			bins = append(bins, 0)
		}
		bins = append(bins, cell)
	}

	return
}

// Cells iterates over every cell of the program, with its address.
func (prog *Program) Cells() iter.Seq2[uint32, uint32] {
	return func(yield func(ip uint32, cell uint32) bool) {
		for _, op := range prog.Opcodes {
			ip := op.Ip
			for _, code := range op.Codes {
				for _, cell := range code.Cells() {
					if !yield(ip, cell) {
						return
					}
					ip++
				}
			}
		}
	}
}

// Codes iterates over every code of the program, with its address.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(ip uint32, code Code) bool) {
		for _, op := range prog.Opcodes {
			ip := op.Ip
			for _, code := range op.Codes {
				if !yield(ip, code) {
					return
				}
				ip += uint32(code.Len())
			}
		}
	}
}

// Load writes the program into an address space, growing it as needed.
func (prog *Program) Load(space *memory.Space) (err error) {
	origin, bins := prog.Binary()
	if len(bins) == 0 {
		return
	}

	last := uint64(origin) + uint64(len(bins)) - 1
	for uint64(space.Regions())*memory.REGION_SIZE <= last {
		space.Grow()
	}

	err = space.Load(origin, bins)
	return
}
