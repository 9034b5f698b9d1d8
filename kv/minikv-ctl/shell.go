package main

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Read OPERATION KEY [VALUE] commands interactively",
		Args:  cobra.NoArgs,
		RunE: runWithDispatcher(func([]string) error {
			return shellLoop()
		}),
	}
}

func shellLoop() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "\033[31m»\033[0m ",
		HistoryFile:       "/tmp/minikv-ctl.history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "^D",
		HistorySearchFold: true,
	})
	if err != nil {
		return errors.Trace(err)
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			continue
		}
		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		// Failures are logged by the dispatcher; the loop keeps going.
		globalDispatcher.Dispatch(globalContext, line)
	}
}
