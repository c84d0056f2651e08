package monitor

import (
	"fmt"
	"strconv"
	"strings"

	"hadydotai/wordvm/machine"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	commandLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Register", Pattern: `\b[rR][0-7]\b`},
		{Name: "Int", Pattern: `0[xX][0-9a-fA-F]+|\d+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "whitespace", Pattern: `\s+`},
	})

	commandParser = participle.MustBuild[Command](
		participle.Lexer(commandLexer),
		participle.Elide("whitespace"),
	)
)

// Command is one monitor input line: a command name followed by register
// and number arguments, e.g. "set r7 0x1f" or "mem 843 16".
type Command struct {
	Pos  lexer.Position
	Name string `@Ident`
	Args []*Arg `@@*`
}

type Arg struct {
	Pos      lexer.Position
	Register *string `  @Register`
	Number   *string `| @Int`
}

// ParseCommand parses a single monitor line.
func ParseCommand(line string) (*Command, error) {
	cmd, err := commandParser.ParseString("", line)
	if err != nil {
		return nil, fmt.Errorf("parse error: %v", err)
	}
	cmd.Name = strings.ToLower(cmd.Name)
	return cmd, nil
}

func (a *Arg) String() string {
	if a.Register != nil {
		return *a.Register
	}
	return *a.Number
}

// Word returns a numeric argument. Decimal and 0x-prefixed hex are accepted,
// up to the full 16-bit raw range.
func (a *Arg) Word() (machine.Word, error) {
	if a.Number == nil {
		return 0, fmt.Errorf("column %d: expected a number, got %s", a.Pos.Column, a.String())
	}
	text, base := *a.Number, 10
	if len(text) > 2 && (text[:2] == "0x" || text[:2] == "0X") {
		text, base = text[2:], 16
	}
	n, err := strconv.ParseUint(text, base, 16)
	if err != nil {
		return 0, fmt.Errorf("column %d: %s does not fit in a word", a.Pos.Column, *a.Number)
	}
	return machine.Word(n), nil
}

// RegisterIndex returns the register slot named by the argument.
func (a *Arg) RegisterIndex() (int, error) {
	if a.Register == nil {
		return 0, fmt.Errorf("column %d: expected a register r0..r7, got %s", a.Pos.Column, a.String())
	}
	return int((*a.Register)[1] - '0'), nil
}
