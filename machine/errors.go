package machine

import (
	"errors"
	"fmt"
)

// ErrorKind names the reason a load or a run failed. Every kind is fatal.
type ErrorKind int

const (
	MalformedImage ErrorKind = iota + 1
	ImageTooLarge
	InvalidOpcode
	InvalidOperand
	InvalidDestination
	DivisionByZero
	StackUnderflow
	IOFailure
)

var kindNames = map[ErrorKind]string{
	MalformedImage:     "malformed image",
	ImageTooLarge:      "image too large",
	InvalidOpcode:      "invalid opcode",
	InvalidOperand:     "invalid operand",
	InvalidDestination: "invalid destination",
	DivisionByZero:     "division by zero",
	StackUnderflow:     "stack underflow",
	IOFailure:          "i/o failure",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error lets a bare kind be used as an errors.Is target.
func (k ErrorKind) Error() string {
	return k.String()
}

// ErrHalted is returned by Step once the machine has stopped.
var ErrHalted = errors.New("machine halted")

// Error describes a fault together with the machine context it happened in.
type Error struct {
	Kind ErrorKind
	// PC is the address of the instruction that faulted.
	PC Word
	// Word is the raw opcode word at PC.
	Word Word
	// Operand is the offending raw operand for InvalidOperand and
	// InvalidDestination.
	Operand Word
	// Size is the image size in bytes (MalformedImage) or words (ImageTooLarge).
	Size int
	// Err is the underlying cause for IOFailure.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case MalformedImage:
		return fmt.Sprintf("%s: %d bytes is not a whole number of words", e.Kind, e.Size)
	case ImageTooLarge:
		return fmt.Sprintf("%s: %d words, address space holds %d", e.Kind, e.Size, MemorySize)
	case InvalidOpcode:
		return fmt.Sprintf("%s %d at pc %d", e.Kind, e.Word, e.PC)
	case InvalidOperand, InvalidDestination:
		return fmt.Sprintf("%s %d for %s at pc %d", e.Kind, e.Operand, Opcode(e.Word), e.PC)
	case IOFailure:
		return fmt.Sprintf("%s for %s at pc %d: %v", e.Kind, Opcode(e.Word), e.PC, e.Err)
	}
	return fmt.Sprintf("%s for %s at pc %d", e.Kind, Opcode(e.Word), e.PC)
}

func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from err, or 0 if err is not a machine error.
func KindOf(err error) ErrorKind {
	var merr *Error
	if errors.As(err, &merr) {
		return merr.Kind
	}
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind
	}
	return 0
}
