package main

import (
	"hadydotai/wordvm/logging"

	"github.com/jessevdk/go-flags"
	"github.com/tebeka/atexit"
)

type Options struct {
	LogLevel logging.LogLevel `short:"l" long:"loglevel" env:"WORDVM_LOGLEVEL" description:"Set the level of logging" choice:"none" choice:"info" choice:"debug" choice:"trace" default:"none"`
}

const (
	exitSuccess = 0
	exitError   = 1
)

var (
	opts        Options
	flagsparser = flags.NewParser(&opts, flags.Default)
)

func main() {
	flagsparser.CommandHandler = func(command flags.Commander, args []string) error {
		logging.Setup(opts.LogLevel)
		return command.Execute(args)
	}

	if _, err := flagsparser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			atexit.Exit(exitSuccess)
		}
		atexit.Exit(exitError)
	}
	atexit.Exit(exitSuccess)
}
