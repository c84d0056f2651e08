package machine

// AddressSpace is the memory holding the program and its data.
type AddressSpace [MemorySize]Word

// RegisterBank holds the eight registers, addressed by the raw operands
// 32768..32775. Its methods implement operand resolution.
type RegisterBank [RegisterCount]Word

// Value resolves an ordinary operand: literals stand for themselves,
// register references read the register.
func (r *RegisterBank) Value(raw Word) (Word, error) {
	if IsLiteral(raw) {
		return raw, nil
	}
	if idx, ok := RegisterIndex(raw); ok {
		return r[idx], nil
	}
	return 0, InvalidOperand
}

// Address resolves a jump or call target. A literal is the address itself,
// a register reference supplies the address it holds.
func (r *RegisterBank) Address(raw Word) (Word, error) {
	if IsLiteral(raw) {
		return raw, nil
	}
	idx, ok := RegisterIndex(raw)
	if !ok {
		return 0, InvalidOperand
	}
	return r[idx], nil
}

// Write stores v mod 32768 into the register named by dest.
func (r *RegisterBank) Write(dest, v Word) error {
	idx, ok := RegisterIndex(dest)
	if !ok {
		return InvalidDestination
	}
	r[idx] = v % Modulus
	return nil
}
