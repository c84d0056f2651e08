package machine

import (
	"errors"
	"io"

	"hadydotai/wordvm/logging"
)

// IOChannel is the console the machine talks to. ReadChar blocks until a
// character is available.
type IOChannel interface {
	WriteChar(c byte) error
	ReadChar() (byte, error)
}

type HaltReason int

const (
	Running HaltReason = iota
	HaltInstruction
	HaltReturn
	HaltEndOfMemory
	HaltFault
)

func (r HaltReason) String() string {
	switch r {
	case Running:
		return "running"
	case HaltInstruction:
		return "halt instruction"
	case HaltReturn:
		return "return with empty stack"
	case HaltEndOfMemory:
		return "end of memory"
	case HaltFault:
		return "fault"
	}
	return "unknown"
}

var errEndOfMemory = errors.New("end of memory")

// Machine is a single execution engine. It owns its memory, registers and
// stack; separate machines share nothing.
type Machine struct {
	mem   AddressSpace
	reg   RegisterBank
	stack Stack
	pc    Word
	io    IOChannel

	halt  HaltReason
	fault error
	steps uint64
}

// New returns a zeroed machine wired to ch. A nil channel discards output
// and reports end of input.
func New(ch IOChannel) *Machine {
	if ch == nil {
		ch = nopIO{}
	}
	return &Machine{io: ch}
}

// Reset zeroes memory, registers and the stack and rewinds the PC.
func (m *Machine) Reset() {
	m.mem = AddressSpace{}
	m.reg = RegisterBank{}
	m.stack.reset(nil)
	m.pc = 0
	m.halt = Running
	m.fault = nil
	m.steps = 0
}

// Run executes until the machine halts. It returns nil for a normal halt
// and the fault otherwise.
func (m *Machine) Run() error {
	for m.halt == Running {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return m.fault
}

// Step executes exactly one instruction.
func (m *Machine) Step() error {
	if m.halt != Running {
		return ErrHalted
	}

	in, err := m.decode(m.pc)
	if errors.Is(err, errEndOfMemory) {
		m.stop(HaltEndOfMemory)
		return nil
	}
	if err != nil {
		return m.faulted(err)
	}

	if logging.Enabled(logging.LogLevelTrace) {
		logging.Log(logging.LogLevelTrace, "exec", "pc", in.Addr, "inst", in.String(), "stack", m.stack.Len())
	}

	m.pc = in.Addr + Word(in.Size())
	m.steps++
	if err := m.execute(in); err != nil {
		return m.faulted(err)
	}
	return nil
}

// Peek decodes the instruction at the PC without executing it.
func (m *Machine) Peek() (Instruction, error) {
	return m.decode(m.pc)
}

// decode reads the instruction at addr straight from memory, so writes made
// by the program are always observed.
func (m *Machine) decode(addr Word) (Instruction, error) {
	in := Instruction{Addr: addr}
	if int(addr) >= MemorySize {
		return in, errEndOfMemory
	}

	raw := m.mem[addr]
	op, ok := DecodeOpcode(raw)
	if !ok {
		return in, &Error{Kind: InvalidOpcode, PC: addr, Word: raw}
	}
	in.Op = op

	kinds := op.Operands()
	if int(addr)+len(kinds) >= MemorySize {
		return in, errEndOfMemory
	}
	in.N = len(kinds)

	for i, kind := range kinds {
		w := m.mem[int(addr)+1+i]
		in.Raw[i] = w

		var err error
		switch kind {
		case OperandValue:
			in.Args[i], err = m.reg.Value(w)
		case OperandAddress:
			in.Args[i], err = m.reg.Address(w)
		case OperandRegister:
			idx, ok := RegisterIndex(w)
			if !ok {
				err = InvalidDestination
			}
			in.Args[i] = Word(idx)
		}
		if err != nil {
			return in, &Error{Kind: KindOf(err), PC: addr, Word: raw, Operand: w}
		}
	}
	return in, nil
}

func (m *Machine) execute(in Instruction) error {
	a := in.Args

	switch in.Op {
	case OpHalt:
		m.stop(HaltInstruction)
	case OpSet:
		return m.store(in, a[1])
	case OpPush:
		m.stack.Push(a[0])
	case OpPop:
		v, ok := m.stack.Pop()
		if !ok {
			return m.fail(in, StackUnderflow, nil)
		}
		return m.store(in, v)
	case OpEq:
		return m.store(in, boolWord(a[1] == a[2]))
	case OpGt:
		return m.store(in, boolWord(a[1] > a[2]))
	case OpJmp:
		m.pc = a[0]
	case OpJt:
		if a[0] != 0 {
			m.pc = a[1]
		}
	case OpJf:
		if a[0] == 0 {
			m.pc = a[1]
		}
	case OpAdd:
		return m.store(in, a[1]+a[2])
	case OpMult:
		return m.store(in, Word(uint32(a[1])*uint32(a[2])%Modulus))
	case OpMod:
		if a[2] == 0 {
			return m.fail(in, DivisionByZero, nil)
		}
		return m.store(in, a[1]%a[2])
	case OpAnd:
		return m.store(in, a[1]&a[2])
	case OpOr:
		return m.store(in, a[1]|a[2])
	case OpNot:
		return m.store(in, ^a[1]&MaxValue)
	case OpRmem:
		return m.store(in, m.mem[a[1]])
	case OpWmem:
		m.mem[a[0]] = a[1]
	case OpCall:
		m.stack.Push(m.pc)
		m.pc = a[0]
	case OpRet:
		v, ok := m.stack.Pop()
		if !ok {
			m.stop(HaltReturn)
			return nil
		}
		m.pc = v
	case OpOut:
		if err := m.io.WriteChar(byte(a[0] % 256)); err != nil {
			return m.fail(in, IOFailure, err)
		}
	case OpIn:
		c, err := m.io.ReadChar()
		if err != nil {
			return m.fail(in, IOFailure, err)
		}
		return m.store(in, Word(c))
	case OpNoop:
	}
	return nil
}

// store writes the result of in to its destination register.
func (m *Machine) store(in Instruction, v Word) error {
	if err := m.reg.Write(in.Raw[0], v); err != nil {
		return &Error{Kind: KindOf(err), PC: in.Addr, Word: Word(in.Op), Operand: in.Raw[0]}
	}
	return nil
}

// fail rewinds the PC to the faulting instruction.
func (m *Machine) fail(in Instruction, kind ErrorKind, cause error) error {
	m.pc = in.Addr
	return &Error{Kind: kind, PC: in.Addr, Word: Word(in.Op), Err: cause}
}

func (m *Machine) faulted(err error) error {
	m.halt = HaltFault
	m.fault = err
	return err
}

func (m *Machine) stop(reason HaltReason) {
	m.halt = reason
	logging.Log(logging.LogLevelDebug, "machine halted", "reason", reason.String(), "pc", m.pc, "steps", m.steps)
}

func boolWord(b bool) Word {
	if b {
		return 1
	}
	return 0
}

func (m *Machine) PC() Word { return m.pc }
func (m *Machine) Halted() bool { return m.halt != Running }
func (m *Machine) HaltReason() HaltReason { return m.halt }
func (m *Machine) Err() error { return m.fault }
func (m *Machine) Steps() uint64 { return m.steps }
func (m *Machine) Registers() RegisterBank { return m.reg }
func (m *Machine) Stack() []Word { return m.stack.Items() }

// Memory returns the word stored at addr.
func (m *Machine) Memory(addr Word) Word {
	return m.mem[addr%MemorySize]
}

// SetRegister overwrites register i, truncating v to 15 bits.
func (m *Machine) SetRegister(i int, v Word) {
	m.reg[i] = v % Modulus
}

// WriteMemory overwrites the word at addr.
func (m *Machine) WriteMemory(addr, v Word) {
	m.mem[addr%MemorySize] = v
}

type nopIO struct{}

func (nopIO) WriteChar(byte) error { return nil }
func (nopIO) ReadChar() (byte, error) { return 0, io.EOF }
