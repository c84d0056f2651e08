package main

import (
	"errors"
	"fmt"
	"strings"

	"hadydotai/wordvm/machine"
)

// FaultReport renders a machine fault with the instruction words around the
// faulting PC.
type FaultReport struct {
	File string
	Err  *machine.Error
	// Window holds the words starting at Err.PC.
	Window []machine.Word
	Steps  uint64
}

func newFaultReport(file string, err error, vm *machine.Machine) error {
	var merr *machine.Error
	if !errors.As(err, &merr) {
		return fmt.Errorf("%s: %w", file, err)
	}
	report := &FaultReport{File: file, Err: merr, Steps: vm.Steps()}
	if merr.Kind != machine.MalformedImage && merr.Kind != machine.ImageTooLarge {
		for addr := int(merr.PC); addr < machine.MemorySize && addr <= int(merr.PC)+3; addr++ {
			report.Window = append(report.Window, vm.Memory(machine.Word(addr)))
		}
	}
	return report
}

func (r *FaultReport) Unwrap() error {
	return r.Err
}

func (r *FaultReport) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "\x1b[1;31mfault\x1b[0m: %s\n", r.Err)
	if len(r.Window) == 0 {
		fmt.Fprintf(&b, "\x1b[1;34m-->\x1b[0m %s\n", r.File)
	} else {
		fmt.Fprintf(&b, "\x1b[1;34m-->\x1b[0m %s @ pc %d after %d steps\n", r.File, r.Err.PC, r.Steps)

		words := make([]string, len(r.Window))
		for i, w := range r.Window {
			words[i] = fmt.Sprintf("%d", w)
		}
		line := strings.Join(words, " ")
		fmt.Fprintf(&b, "%6d | %s\n", r.Err.PC, line)

		// Point at the offending word: the operand if there is one,
		// the opcode otherwise.
		col, width := 0, len(words[0])
		if r.Err.Kind == machine.InvalidOperand || r.Err.Kind == machine.InvalidDestination {
			for i := 1; i < len(r.Window); i++ {
				if r.Window[i] == r.Err.Operand {
					col = len(strings.Join(words[:i], " ")) + 1
					width = len(words[i])
					break
				}
			}
		}
		pointer := strings.Repeat(" ", col) + "\x1b[1;31m^" + strings.Repeat("~", width-1)
		fmt.Fprintf(&b, "       | %s\x1b[0m\n", pointer)
	}

	if help := faultHelp[r.Err.Kind]; help != "" {
		fmt.Fprintf(&b, "\n\x1b[1;32mhelp\x1b[0m: %s\n", help)
	}
	return b.String()
}

var faultHelp = map[machine.ErrorKind]string{
	machine.MalformedImage:     "program images are little-endian 16-bit words, so the file size must be even",
	machine.ImageTooLarge:      "only the first 32768 words fit in the address space",
	machine.InvalidOpcode:      "opcodes run from 0 (halt) to 21 (noop)",
	machine.InvalidOperand:     "operands are literals 0..32767 or registers 32768..32775",
	machine.InvalidDestination: "the first operand of this instruction must name a register 32768..32775",
	machine.DivisionByZero:     "mod needs a non-zero divisor",
	machine.StackUnderflow:     "pop ran with nothing on the stack",
	machine.IOFailure:          "the console could not be read or written; input may have ended",
}
