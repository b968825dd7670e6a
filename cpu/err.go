package cpu

import (
	"errors"

	"github.com/ezrec/bcpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))
	ErrSyscallMissing = errors.New(f("syscall bridge missing"))
	ErrNotInitialized = errors.New(f("not initialized"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrOrgBackward        = errors.New(f(".org moves backward"))
	ErrWordMissing        = errors.New(f(".word value missing"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrOpcode locates a processor fault.
type ErrOpcode struct {
	Ip   uint32 // Address of the faulting instruction.
	Word uint32 // Opcode cell of the faulting instruction.
}

func (eo ErrOpcode) Error() string {
	return f("ip 0x%08x opcode 0x%x %v", eo.Ip, eo.Word, CodeOp(eo.Word).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
