package machine

// Snapshot is a point-in-time copy of the whole machine state.
type Snapshot struct {
	PC        Word
	Registers RegisterBank
	Stack     []Word
	Memory    AddressSpace
	Halt      HaltReason
	Fault     error
	Steps     uint64
}

func (m *Machine) Snapshot() *Snapshot {
	return &Snapshot{
		PC:        m.pc,
		Registers: m.reg,
		Stack:     m.stack.Items(),
		Memory:    m.mem,
		Halt:      m.halt,
		Fault:     m.fault,
		Steps:     m.steps,
	}
}

// Restore rewinds the machine to s. The I/O channel is left untouched, so
// characters already written or consumed are not replayed.
func (m *Machine) Restore(s *Snapshot) {
	m.pc = s.PC
	m.reg = s.Registers
	m.stack.reset(s.Stack)
	m.mem = s.Memory
	m.halt = s.Halt
	m.fault = s.Fault
	m.steps = s.Steps
}
