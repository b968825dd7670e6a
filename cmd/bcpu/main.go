// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/bcpu/cpu"
	"github.com/ezrec/bcpu/emulator"
	"github.com/ezrec/bcpu/host"
	"github.com/ezrec/bcpu/internal"
	"github.com/ezrec/bcpu/translate"
)

// breakpointsOf resolves a comma separated list of addresses and labels.
func breakpointsOf(list string, labels map[string]uint32) (addrs []uint32, err error) {
	if len(list) == 0 {
		return
	}

	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		addr, ok := labels[item]
		if !ok {
			var value uint64
			value, err = strconv.ParseUint(item, 0, 32)
			if err != nil {
				err = fmt.Errorf("breakpoint %q: %w", item, err)
				return
			}
			addr = uint32(value)
		}
		addrs = append(addrs, addr)
	}

	return
}

// listing writes the program listing.
func listing(w io.Writer, prog *cpu.Program) {
	for _, op := range prog.Opcodes {
		ip := op.Ip
		for _, code := range op.Codes {
			fmt.Fprintf(w, "%08x: %-20v ; %4d: %v\n", ip, code, op.LineNo, strings.Join(op.Words, " "))
			ip += uint32(code.Len())
		}
	}
}

// trace writes the state of the session before the next instruction.
func trace(w io.Writer, sess *emulator.Session) {
	fmt.Fprintf(w, "-- line %d\n%v", sess.LineNo(), sess.String())
}

func main() {
	var compile string
	var breaks string
	var input string
	var output string
	var verbose bool
	var single bool
	var list bool
	var lang string

	flag.StringVar(&compile, "c", "", "assembly file to compile")
	flag.StringVar(&breaks, "b", "", "Comma separated breakpoint addresses or labels")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&single, "s", false, "Single step, tracing every instruction")
	flag.BoolVar(&list, "l", false, "Print the listing, do not execute")
	flag.StringVar(&lang, "L", "", "Message locale, overriding the host locale")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: -c is required", os.Args[0])
	}

	if len(lang) != 0 {
		translate.Use(lang)
	}

	bridge := host.NewBridge()
	bridge.Verbose = verbose

	sess := emulator.NewSession(bridge)
	sess.SetVerbose(verbose)

	// Compile the instruction stream.
	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range internal.IterSeq2Concat(sess.Defines(), bridge.Defines()) {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if list {
		listing(os.Stdout, prog)
		return
	}

	addrs, err := breakpointsOf(breaks, asm.Label)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if input == "-" {
		bridge.Tape.Input = bufio.NewReader(os.Stdin)
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		bridge.Tape.Input = bufio.NewReader(inf)
	}

	var ouf *os.File
	if output == "-" {
		ouf = os.Stdout
	} else {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}
	tape := bufio.NewWriter(ouf)
	defer tape.Flush()
	bridge.Tape.Output = tape

	err = sess.LoadProgram(prog)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	for _, addr := range addrs {
		sess.SetBreakpoint(addr)
	}

	if single {
		err = runSingle(sess, tape, os.Stderr)
	} else {
		err = run(sess, tape, os.Stderr, len(addrs) != 0)
	}

	tape.Flush()

	if err != nil {
		log.Printf("%v", sess.String())
		log.Fatalf("%v: %v", compile, err)
	}

	err = bridge.Tape.Err()
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}

// runSingle steps one instruction at a time until the program halts.
func runSingle(sess *emulator.Session, tape *bufio.Writer, w io.Writer) (err error) {
	for !sess.Status().Terminal() {
		tape.Flush()
		trace(w, sess)

		err = sess.StepOver()
		if err != nil {
			return
		}
	}

	return
}

// run continues until the program halts, reporting breakpoints and pauses.
func run(sess *emulator.Session, tape *bufio.Writer, w io.Writer, breakpoints bool) (err error) {
	if breakpoints {
		sess.EnableBreakpoints()
	}

	for {
		err = sess.Continue()
		if err != nil {
			return
		}

		if sess.Status() != cpu.STATUS_PAUSED {
			return
		}

		tape.Flush()
		trace(w, sess)

		if sess.Stop() != cpu.STOP_BREAKPOINT {
			continue
		}

		// Step off the breakpoint the run stopped before.
		sess.DisableBreakpoints()
		err = sess.StepOver()
		if breakpoints {
			sess.EnableBreakpoints()
		}
		if err != nil {
			return
		}
	}
}
