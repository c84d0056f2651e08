package main

import (
	"fmt"
	"io"
	"os"

	"hadydotai/wordvm/console"
	"hadydotai/wordvm/logging"
	"hadydotai/wordvm/machine"

	"github.com/chzyer/readline"
	"github.com/tebeka/atexit"
)

type RunCommand struct {
	Inputs []string `short:"i" long:"input" value-name:"FILE" description:"Feed the lines of FILE as program input before reading stdin (repeatable)"`
	Trace  bool     `short:"t" long:"trace" description:"Log every executed instruction, same as --loglevel=trace"`
	Args   struct {
		Image string `positional-arg-name:"IMAGE" required:"yes"`
	} `positional-args:"yes"`
}

var runCommand RunCommand

func (cmd *RunCommand) Execute(args []string) error {
	if cmd.Trace {
		logging.Setup(logging.LogLevelTrace)
	}

	image, err := machine.LoadFile(cmd.Args.Image)
	if err != nil {
		return err
	}

	interactive, closeInteractive, err := stdinSource()
	if err != nil {
		return err
	}
	defer closeInteractive()

	src, closeInputs, err := openInputs(cmd.Inputs, interactive, os.Stdout)
	if err != nil {
		return err
	}
	defer closeInputs()

	con := console.New(src, os.Stdout)
	atexit.Register(func() { con.Flush() })

	vm := machine.New(con)
	if err := vm.Load(image); err != nil {
		return newFaultReport(cmd.Args.Image, err, vm)
	}

	logging.Log(logging.LogLevelInfo, "Running program image", "file", cmd.Args.Image, "words", len(image)/2)
	err = vm.Run()
	if ferr := con.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("failed to write program output: %w", ferr)
	}
	if err != nil {
		logging.LogErr(err, "Program faulted", "file", cmd.Args.Image, "steps", vm.Steps())
		return newFaultReport(cmd.Args.Image, err, vm)
	}

	logging.Log(logging.LogLevelInfo, "Program finished", "reason", vm.HaltReason().String(), "steps", vm.Steps())
	return nil
}

// stdinSource reads program input through readline when stdin is a
// terminal and through a plain line reader otherwise.
func stdinSource() (console.LineSource, func(), error) {
	if !readline.IsTerminal(int(os.Stdin.Fd())) {
		return console.NewReaderSource(os.Stdin), func() {}, nil
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return console.NewReadlineSource(rl, ""), func() { rl.Close() }, nil
}

// openInputs chains the script files in front of the interactive source.
// Script lines are echoed to echo.
func openInputs(paths []string, interactive console.LineSource, echo io.Writer) (console.LineSource, func(), error) {
	var (
		sources []console.LineSource
		files   []*os.File
	)
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open input script %s: %w", path, err)
		}
		files = append(files, f)
		sources = append(sources, console.NewReaderSource(f))
		logging.Log(logging.LogLevelDebug, "Queued input script", "file", path)
	}

	chain := console.NewChain(append(sources, interactive)...)
	chain.Echo = echo
	return chain, closeAll, nil
}

func init() {
	flagsparser.AddCommand(
		"run",
		"Run a program image",
		"Loads a little-endian word image at address 0 and executes it against the console",
		&runCommand,
	)
}
