// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// opMap maps mnemonics to opcodes.
var opMap = func() map[string]CodeOp {
	ops := make(map[string]CodeOp, op_count)
	for op := range CodeOp(op_count) {
		ops[op.String()] = op
	}
	return ops
}()

var (
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// Assembler is a two pass assembler for the bcpu system.
//
// The first pass sizes every line and collects labels and equates, the
// second pass generates the cells with every label known.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]uint32 // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	pass       int    // Current pass, 0 or 1.
	ip         uint32 // Address of the next cell.
	unresolved bool   // Set when the current line has an unresolved expression.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	invert := false
	if len(word) > 1 && word[0] == '~' {
		invert = true
		word = word[1:]
	}
	v64, err := strconv.ParseInt(word, 0, 34)
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)

	if invert {
		value = ^value
	}

	return
}

// labelOf returns the address of a label. Labels are only required to be
// known in the final pass.
func (asm *Assembler) labelOf(word string) (addr uint32, err error) {
	addr, ok := asm.Label[word]
	if !ok && asm.pass > 0 {
		err = ErrLabelMissing(word)
	}

	return
}

// operandOf resolves an instruction operand, translating label references
// for the addressing mode of the opcode at ip.
func (asm *Assembler) operandOf(op CodeOp, ip uint32, word string) (value uint32, label string, err error) {
	value, err = asm.valueOf(word)
	if err == nil {
		return
	}

	if !reLabel.MatchString(word) {
		return
	}

	err = nil
	label = word
	addr, err := asm.labelOf(label)
	if err != nil {
		return
	}

	switch op.Mode() {
	case MODE_RELATIVE, MODE_POINTER:
		value = addr - ip
	case MODE_BRANCH:
		// Taken branches still advance past the operand.
		value = addr - (ip + 2)
	default:
		value = addr
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}
	pred["HERE"] = starlark.MakeInt(int(asm.ip))

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine splits a single line into words, evaluating character
// literals, expressions, equates, and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)
	asm.unresolved = false

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Strip comments
	line, _, _ = strings.Cut(line, ";")

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if asm.pass == 0 {
				// Forward references are resolved in the final pass.
				asm.unresolved = true
				return "0"
			}
			if err == nil {
				err = _err
			}
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		if asm.pass == 0 {
			_, ok := asm.Equate[words[1]]
			if ok {
				err = ErrEquateDuplicate
				return
			}
			asm.Equate[words[1]] = words[2]
		}
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrParseNumber(label)
			return
		}

		if asm.pass == 0 {
			_, ok := asm.Label[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[label] = asm.ip
		}

		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint32, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range _cpu_defines {
		asm.Equate[attr] = val
	}
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for asm.pass = range 2 {
		asm.ip = ENTRY_POINT
		asm.Opcode = asm.Opcode[:0]

		for n, text := range lines {
			lineno = n + 1
			line = strings.TrimSpace(text)

			if asm.Verbose && asm.pass > 0 {
				log.Printf("%v: %v\n", lineno, text)
			}

			var words []string
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				return
			}
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Code
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	ip := asm.ip

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Ip: ip, Words: words, Codes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.ip = ip + uint32(opcode.Len())
	}()

	switch words[0] {
	case ".org":
		if len(words) != 2 || asm.unresolved {
			err = ErrOrgSyntax
			return
		}
		var addr uint32
		addr, err = asm.valueOf(words[1])
		if err != nil {
			// Only labels defined above the .org are usable.
			var ok bool
			addr, ok = asm.Label[words[1]]
			if !ok {
				err = ErrOrgSyntax
				return
			}
			err = nil
		}
		if addr < asm.ip {
			err = ErrOrgBackward
			return
		}
		asm.ip = addr
	case ".word":
		if len(words) < 2 {
			err = ErrWordMissing
			return
		}
		for _, word := range words[1:] {
			var value uint32
			value, label, err = asm.operandOf(OP_NOP, 0, word)
			if err != nil {
				return
			}
			codes = append(codes, MakeData(value))
		}
	default:
		op, ok := opMap[words[0]]
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		args := words[1:]
		need := op.OperandNeed()
		if len(args) > need {
			err = ErrOpcodeExtraArgs
			return
		}
		if len(args) < need {
			err = ErrOpcodeValueMissing
			return
		}
		var operands []uint32
		for _, arg := range args {
			var value uint32
			value, label, err = asm.operandOf(op, ip, arg)
			if err != nil {
				return
			}
			operands = append(operands, value)
		}
		codes = append(codes, MakeCode(op, operands...))
	}

	return
}
