// Package machine implements the 15-bit word virtual machine: image loading,
// operand resolution and the fetch-decode-execute loop.
package machine

import "fmt"

// Word is the machine's native data unit. Stored values are 15 bits wide,
// the raw instruction stream uses the 16th bit to address registers.
type Word uint16

const (
	MemorySize    = 1 << 15
	RegisterCount = 8

	// MaxValue is the largest literal.
	MaxValue Word = MemorySize - 1
	// Modulus applies to every arithmetic result.
	Modulus = MemorySize
	// RegisterBase is the raw operand that names register 0.
	RegisterBase Word = MemorySize
)

// IsLiteral reports whether raw is used directly as data.
func IsLiteral(raw Word) bool {
	return raw <= MaxValue
}

// RegisterIndex returns the register slot a raw operand refers to.
func RegisterIndex(raw Word) (int, bool) {
	if raw < RegisterBase || raw >= RegisterBase+RegisterCount {
		return 0, false
	}
	return int(raw - RegisterBase), true
}

// Register returns the raw operand that refers to register i.
func Register(i int) Word {
	return RegisterBase + Word(i)
}

func formatOperand(raw Word) string {
	if idx, ok := RegisterIndex(raw); ok {
		return fmt.Sprintf("r%d", idx)
	}
	return fmt.Sprintf("%d", raw)
}
