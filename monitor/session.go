// Package monitor is a machine-level step debugger: breakpoints on
// addresses, single stepping with step-back, and register/memory inspection.
package monitor

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"hadydotai/wordvm/logging"
	"hadydotai/wordvm/machine"

	"github.com/alecthomas/repr"
)

const DefaultHistory = 64

type Config struct {
	Machine *machine.Machine
	Image   []byte
	// Out receives command output.
	Out io.Writer
	// History bounds the number of snapshots kept for "back".
	History int
	// Flush, when set, runs after every command so program output written
	// through a buffered console becomes visible.
	Flush func() error
	// Pending, when set, reports program input read but not yet consumed.
	Pending func() string
}

type Session struct {
	cfg         Config
	breakpoints map[machine.Word]bool
	history     []*machine.Snapshot
}

// NewSession loads the image into the machine and returns a session
// positioned at address 0.
func NewSession(cfg Config) (*Session, error) {
	if cfg.History <= 0 {
		cfg.History = DefaultHistory
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if err := cfg.Machine.Load(cfg.Image); err != nil {
		return nil, err
	}
	return &Session{
		cfg:         cfg,
		breakpoints: make(map[machine.Word]bool),
	}, nil
}

func (s *Session) Machine() *machine.Machine {
	return s.cfg.Machine
}

type handler func(s *Session, args []*Arg) (quit bool, err error)

var commands map[string]handler

var aliases = map[string]string{
	"s": "step",
	"n": "step",
	"b": "back",
	"c": "continue",
	"r": "restart",
	"h": "help",
	"q": "quit",
}

func init() {
	commands = map[string]handler{
		"step":     (*Session).cmdStep,
		"back":     (*Session).cmdBack,
		"continue": (*Session).cmdContinue,
		"break":    (*Session).cmdBreak,
		"clear":    (*Session).cmdClear,
		"regs":     (*Session).cmdRegs,
		"stack":    (*Session).cmdStack,
		"mem":      (*Session).cmdMem,
		"pc":       (*Session).cmdPC,
		"set":      (*Session).cmdSet,
		"poke":     (*Session).cmdPoke,
		"dump":     (*Session).cmdDump,
		"restart":  (*Session).cmdRestart,
		"help":     (*Session).cmdHelp,
		"quit":     (*Session).cmdQuit,
	}
}

// CommandNames lists every accepted command word, aliases included.
func CommandNames() []string {
	names := make([]string, 0, len(commands)+len(aliases))
	for name := range commands {
		names = append(names, name)
	}
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// Exec runs one command line. quit is true once the user asked to leave.
func (s *Session) Exec(line string) (quit bool, err error) {
	if strings.TrimSpace(line) == "" {
		return false, nil
	}
	cmd, err := ParseCommand(line)
	if err != nil {
		return false, err
	}

	name := cmd.Name
	if full, ok := aliases[name]; ok {
		name = full
	}
	h, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("unknown command: %s", cmd.Name)
	}

	logging.Log(logging.LogLevelDebug, "monitor command", "command", name, "args", len(cmd.Args))
	quit, err = h(s, cmd.Args)
	if s.cfg.Flush != nil {
		if ferr := s.cfg.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return quit, err
}

func (s *Session) SetBreakpoint(addr machine.Word, enabled bool) {
	if enabled {
		s.breakpoints[addr] = true
		return
	}
	delete(s.breakpoints, addr)
}

func (s *Session) HasBreakpoint(addr machine.Word) bool {
	return s.breakpoints[addr]
}

// Breakpoints returns the breakpoint addresses in ascending order.
func (s *Session) Breakpoints() []machine.Word {
	addrs := make([]machine.Word, 0, len(s.breakpoints))
	for addr := range s.breakpoints {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// HistoryLen reports how many steps "back" can undo.
func (s *Session) HistoryLen() int {
	return len(s.history)
}

func (s *Session) record() {
	if len(s.history) == s.cfg.History {
		s.history = append(s.history[:0], s.history[1:]...)
	}
	s.history = append(s.history, s.cfg.Machine.Snapshot())
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.cfg.Out, format, args...)
}

func (s *Session) printLocation() {
	m := s.cfg.Machine
	if m.Halted() {
		s.printf("halted at pc %d: %s\n", m.PC(), m.HaltReason())
		return
	}
	in, err := m.Peek()
	if err != nil {
		s.printf("pc %d: %v\n", m.PC(), err)
		return
	}
	s.printf("pc %d: %s\n", m.PC(), in)
}

func wantArgs(args []*Arg, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return fmt.Errorf("expected %d arguments, got %d", min, len(args))
		}
		return fmt.Errorf("expected %d to %d arguments, got %d", min, max, len(args))
	}
	return nil
}

func (s *Session) cmdStep(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 1); err != nil {
		return false, err
	}
	count := machine.Word(1)
	if len(args) == 1 {
		n, err := args[0].Word()
		if err != nil {
			return false, err
		}
		count = n
	}

	m := s.cfg.Machine
	for i := machine.Word(0); i < count; i++ {
		if m.Halted() {
			break
		}
		s.record()
		if err := m.Step(); err != nil {
			s.printLocation()
			return false, err
		}
	}
	s.printLocation()
	return false, nil
}

func (s *Session) cmdBack(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 0); err != nil {
		return false, err
	}
	if len(s.history) == 0 {
		return false, errors.New("no earlier state recorded")
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.cfg.Machine.Restore(last)
	s.printLocation()
	return false, nil
}

// cmdContinue runs until a breakpoint, a halt or a fault. An optional
// argument caps the number of instructions.
func (s *Session) cmdContinue(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 1); err != nil {
		return false, err
	}
	limit := uint64(0)
	if len(args) == 1 {
		n, err := args[0].Word()
		if err != nil {
			return false, err
		}
		limit = uint64(n)
	}

	m := s.cfg.Machine
	if m.Halted() {
		s.printLocation()
		return false, nil
	}
	s.record()
	for n := uint64(0); !m.Halted(); n++ {
		if limit > 0 && n == limit {
			break
		}
		if err := m.Step(); err != nil {
			s.printLocation()
			return false, err
		}
		if s.breakpoints[m.PC()] {
			s.printf("breakpoint at %d\n", m.PC())
			break
		}
	}
	s.printLocation()
	return false, nil
}

func (s *Session) cmdBreak(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 1); err != nil {
		return false, err
	}
	if len(args) == 0 {
		for _, addr := range s.Breakpoints() {
			s.printf("%d\n", addr)
		}
		return false, nil
	}
	addr, err := args[0].Word()
	if err != nil {
		return false, err
	}
	s.SetBreakpoint(addr, true)
	s.printf("breakpoint set at %d\n", addr)
	return false, nil
}

func (s *Session) cmdClear(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 1); err != nil {
		return false, err
	}
	if len(args) == 0 {
		s.breakpoints = make(map[machine.Word]bool)
		return false, nil
	}
	addr, err := args[0].Word()
	if err != nil {
		return false, err
	}
	s.SetBreakpoint(addr, false)
	return false, nil
}

func (s *Session) cmdRegs(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 0); err != nil {
		return false, err
	}
	regs := s.cfg.Machine.Registers()
	for i, v := range regs {
		s.printf("r%d=%d", i, v)
		if i < len(regs)-1 {
			s.printf(" ")
		}
	}
	s.printf("\n")
	return false, nil
}

func (s *Session) cmdStack(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 0); err != nil {
		return false, err
	}
	s.printf("%v\n", s.cfg.Machine.Stack())
	return false, nil
}

func (s *Session) cmdMem(args []*Arg) (bool, error) {
	if err := wantArgs(args, 1, 2); err != nil {
		return false, err
	}
	addr, err := args[0].Word()
	if err != nil {
		return false, err
	}
	count := machine.Word(8)
	if len(args) == 2 {
		if count, err = args[1].Word(); err != nil {
			return false, err
		}
	}
	if int(addr)+int(count) > machine.MemorySize {
		return false, fmt.Errorf("range %d+%d is outside memory", addr, count)
	}

	m := s.cfg.Machine
	for i := machine.Word(0); i < count; i++ {
		v := m.Memory(addr + i)
		s.printf("%5d: %5d", addr+i, v)
		if v >= 0x20 && v < 0x7f {
			s.printf(" %q", rune(v))
		}
		s.printf("\n")
	}
	return false, nil
}

func (s *Session) cmdPC(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 0); err != nil {
		return false, err
	}
	s.printLocation()
	return false, nil
}

func (s *Session) cmdSet(args []*Arg) (bool, error) {
	if err := wantArgs(args, 2, 2); err != nil {
		return false, err
	}
	idx, err := args[0].RegisterIndex()
	if err != nil {
		return false, err
	}
	v, err := args[1].Word()
	if err != nil {
		return false, err
	}
	s.cfg.Machine.SetRegister(idx, v)
	return false, nil
}

func (s *Session) cmdPoke(args []*Arg) (bool, error) {
	if err := wantArgs(args, 2, 2); err != nil {
		return false, err
	}
	addr, err := args[0].Word()
	if err != nil {
		return false, err
	}
	if addr > machine.MaxValue {
		return false, fmt.Errorf("address %d is outside memory", addr)
	}
	v, err := args[1].Word()
	if err != nil {
		return false, err
	}
	s.cfg.Machine.WriteMemory(addr, v)
	return false, nil
}

type stateView struct {
	PC          machine.Word
	Next        string
	Halt        string
	Steps       uint64
	Registers   machine.RegisterBank
	Stack       []machine.Word
	Breakpoints []machine.Word
	Input       string
}

func (s *Session) cmdDump(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 0); err != nil {
		return false, err
	}
	m := s.cfg.Machine
	view := stateView{
		PC:          m.PC(),
		Halt:        m.HaltReason().String(),
		Steps:       m.Steps(),
		Registers:   m.Registers(),
		Stack:       m.Stack(),
		Breakpoints: s.Breakpoints(),
	}
	if s.cfg.Pending != nil {
		view.Input = s.cfg.Pending()
	}
	if in, err := m.Peek(); err == nil {
		view.Next = in.String()
	} else {
		view.Next = err.Error()
	}
	s.printf("%s\n", repr.String(view, repr.Indent("  ")))
	return false, nil
}

func (s *Session) cmdRestart(args []*Arg) (bool, error) {
	if err := wantArgs(args, 0, 0); err != nil {
		return false, err
	}
	if err := s.cfg.Machine.Load(s.cfg.Image); err != nil {
		return false, err
	}
	s.history = s.history[:0]
	s.printf("program restarted\n")
	return false, nil
}

func (s *Session) cmdHelp(args []*Arg) (bool, error) {
	s.printf("%s", helpText)
	return false, nil
}

func (s *Session) cmdQuit(args []*Arg) (bool, error) {
	return true, nil
}

const helpText = `
Available Commands:
  step, s, n [count]   Execute the next instruction(s)
  back, b              Step back to the previous state
  continue, c [max]    Run until a breakpoint, halt or fault
  break [addr]         Set a breakpoint, or list them
  clear [addr]         Remove a breakpoint, or all of them
  regs                 Show registers
  stack                Show the stack, bottom first
  mem <addr> [count]   Show memory words
  pc                   Show the program counter and next instruction
  set <rN> <value>     Overwrite a register
  poke <addr> <value>  Overwrite a memory word
  dump                 Show the whole machine state
  restart, r           Reload the program image
  help, h              Show this help message
  quit, q              Exit the monitor

Numbers may be decimal or 0x-prefixed hex.
`
