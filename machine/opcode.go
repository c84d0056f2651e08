package machine

import (
	"fmt"
	"strings"
)

type Opcode Word

const (
	OpHalt Opcode = iota
	OpSet
	OpPush
	OpPop
	OpEq
	OpGt
	OpJmp
	OpJt
	OpJf
	OpAdd
	OpMult
	OpMod
	OpAnd
	OpOr
	OpNot
	OpRmem
	OpWmem
	OpCall
	OpRet
	OpOut
	OpIn
	OpNoop

	opcodeCount
)

// OperandKind says how the engine treats a raw operand word.
type OperandKind int

const (
	// OperandValue is a literal or the content of a register.
	OperandValue OperandKind = iota
	// OperandAddress is a jump or call target: a literal address or a
	// register holding one.
	OperandAddress
	// OperandRegister must name a register; the instruction writes to it.
	OperandRegister
)

type opcodeInfo struct {
	name     string
	operands []OperandKind
}

var (
	value    = OperandValue
	address  = OperandAddress
	register = OperandRegister
)

var opcodeTable = [opcodeCount]opcodeInfo{
	OpHalt: {"halt", nil},
	OpSet:  {"set", []OperandKind{register, value}},
	OpPush: {"push", []OperandKind{value}},
	OpPop:  {"pop", []OperandKind{register}},
	OpEq:   {"eq", []OperandKind{register, value, value}},
	OpGt:   {"gt", []OperandKind{register, value, value}},
	OpJmp:  {"jmp", []OperandKind{address}},
	OpJt:   {"jt", []OperandKind{value, address}},
	OpJf:   {"jf", []OperandKind{value, address}},
	OpAdd:  {"add", []OperandKind{register, value, value}},
	OpMult: {"mult", []OperandKind{register, value, value}},
	OpMod:  {"mod", []OperandKind{register, value, value}},
	OpAnd:  {"and", []OperandKind{register, value, value}},
	OpOr:   {"or", []OperandKind{register, value, value}},
	OpNot:  {"not", []OperandKind{register, value}},
	OpRmem: {"rmem", []OperandKind{register, value}},
	OpWmem: {"wmem", []OperandKind{value, value}},
	OpCall: {"call", []OperandKind{address}},
	OpRet:  {"ret", nil},
	OpOut:  {"out", []OperandKind{value}},
	OpIn:   {"in", []OperandKind{register}},
	OpNoop: {"noop", nil},
}

// maxOperands is the widest operand list in the table.
const maxOperands = 3

// DecodeOpcode maps a raw word onto the closed opcode set.
func DecodeOpcode(w Word) (Opcode, bool) {
	if w >= Word(opcodeCount) {
		return 0, false
	}
	return Opcode(w), true
}

func (op Opcode) String() string {
	if op < opcodeCount {
		return opcodeTable[op].name
	}
	return "UNKNOWN"
}

// Operands returns the operand kinds the opcode consumes, in stream order.
func (op Opcode) Operands() []OperandKind {
	if op < opcodeCount {
		return opcodeTable[op].operands
	}
	return nil
}

// Instruction is one decoded instruction. Raw holds the operand words as
// fetched; Args holds them resolved: register slots for destinations, values
// and addresses otherwise.
type Instruction struct {
	Addr Word
	Op   Opcode
	N    int
	Raw  [maxOperands]Word
	Args [maxOperands]Word
}

// Size is the number of words the instruction occupies.
func (in Instruction) Size() int {
	return 1 + in.N
}

func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	kinds := in.Op.Operands()
	for i := 0; i < in.N; i++ {
		b.WriteByte(' ')
		b.WriteString(formatOperand(in.Raw[i]))
		if _, isReg := RegisterIndex(in.Raw[i]); isReg && kinds[i] != OperandRegister {
			fmt.Fprintf(&b, "(=%d)", in.Args[i])
		}
	}
	if in.Op == OpOut && in.Args[0] < 0x80 {
		fmt.Fprintf(&b, " ; %q", rune(in.Args[0]))
	}
	return b.String()
}
