package main

import (
	"fmt"

	"hadydotai/wordvm/monitor"

	"github.com/chzyer/readline"
)

const monitorPrompt = "\033[32m⟩\033[0m "

type REPL struct {
	session *monitor.Session
	rl      *readline.Instance
}

func NewREPL(session *monitor.Session, rl *readline.Instance) *REPL {
	return &REPL{
		session: session,
		rl:      rl,
	}
}

// newCompleter completes monitor command words.
func newCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range monitor.CommandNames() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

func (r *REPL) Start() {
	fmt.Println("\033[1;36mwordvm monitor\033[0m")
	fmt.Println("Type 'help' or 'h' for available commands")
	fmt.Println()
	r.exec("pc")

	for {
		// The program may have switched the prompt while reading input.
		r.rl.SetPrompt(monitorPrompt)
		line, err := r.rl.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt
			break
		}
		if r.exec(line) {
			fmt.Println("\033[32mGoodbye!\033[0m")
			return
		}
	}
}

func (r *REPL) exec(line string) (quit bool) {
	quit, err := r.session.Exec(line)
	if err != nil {
		fmt.Printf("\033[31m%v\033[0m\n", err)
	}
	return quit
}
