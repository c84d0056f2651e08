package main

import (
	"fmt"
	"os"
	"path/filepath"

	"hadydotai/wordvm/console"
	"hadydotai/wordvm/logging"
	"hadydotai/wordvm/machine"
	"hadydotai/wordvm/monitor"

	"github.com/chzyer/readline"
)

type DebugCommand struct {
	Inputs  []string `short:"i" long:"input" value-name:"FILE" description:"Feed the lines of FILE as program input before prompting (repeatable)"`
	History int      `long:"history" default:"64" description:"Number of steps the monitor can step back"`
	Breaks  []uint   `short:"b" long:"break" value-name:"ADDR" description:"Set a breakpoint before starting (repeatable)"`
	Args    struct {
		Image string `positional-arg-name:"IMAGE" required:"yes"`
	} `positional-args:"yes"`
}

var debugCommand DebugCommand

func (cmd *DebugCommand) Execute(args []string) error {
	image, err := machine.LoadFile(cmd.Args.Image)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          monitorPrompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".wordvm_monitor_history"),
		HistoryLimit:    1000,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer rl.Close()

	src, closeInputs, err := openInputs(cmd.Inputs, console.NewReadlineSource(rl, "\033[33minput>\033[0m "), os.Stdout)
	if err != nil {
		return err
	}
	defer closeInputs()

	con := console.New(src, os.Stdout)
	session, err := monitor.NewSession(monitor.Config{
		Machine: machine.New(con),
		Image:   image,
		Out:     os.Stdout,
		History: cmd.History,
		Flush:   con.Flush,
		Pending: con.Buffered,
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cmd.Args.Image, err)
	}
	for _, addr := range cmd.Breaks {
		if addr > uint(machine.MaxValue) {
			return fmt.Errorf("breakpoint %d is outside memory", addr)
		}
		session.SetBreakpoint(machine.Word(addr), true)
	}

	logging.Log(logging.LogLevelInfo, "Starting monitor", "file", cmd.Args.Image, "breakpoints", len(cmd.Breaks))
	NewREPL(session, rl).Start()
	return nil
}

func init() {
	flagsparser.AddCommand(
		"debug",
		"Step through a program image in the monitor",
		"Loads a program image and opens an interactive machine monitor with breakpoints, stepping and state inspection",
		&debugCommand,
	)
}
