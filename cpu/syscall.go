package cpu

// Syscall is the host bridge invoked by the sys opcode.
//
// The processor passes the bus as the code and the instruction operand as
// the argument, and places the result on the bus. Neither value is
// interpreted by the processor.
type Syscall interface {
	Syscall(code int32, arg int32) (result int32)
}

// SyscallFunc adapts a function to the Syscall interface.
type SyscallFunc func(code int32, arg int32) int32

func (fn SyscallFunc) Syscall(code int32, arg int32) int32 {
	return fn(code, arg)
}
