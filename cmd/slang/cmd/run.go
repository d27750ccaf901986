/*
File    : slang/cmd/slang/cmd/run.go
Package : cmd

`slang run <path>` (and the bare `slang <path>` root shorthand) executes
a .sl script end to end: lex, parse, evaluate against a fresh global
environment, print nothing on success (spec §6: "Null prints nothing
except in REPL"), and on an unhandled evaluation error print the error
kind/message/position and exit 1.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/akashmaji946/slang/evaluator"
	"github.com/akashmaji946/slang/lexer"
	"github.com/akashmaji946/slang/parser"
)

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Execute a Slang script file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(args[0])
	},
}

func runScript(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return &exitError{code: 1, message: fmt.Sprintf("[IOError] %s", err.Error())}
	}

	lx := lexer.New(string(src))
	ps, err := parser.New(lx)
	if err != nil {
		return scriptError(err)
	}
	prog, err := ps.ParseProgram()
	if err != nil {
		return scriptError(err)
	}

	ev := evaluator.New(os.Stdout, os.Stdin)
	ev.SetScriptDir(filepath.Dir(path))
	defer ev.Close()

	env := ev.NewGlobalEnv()
	if _, err := ev.Run(prog, env); err != nil {
		return scriptError(err)
	}
	return nil
}
