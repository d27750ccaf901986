/*
File    : slang/cmd/slang/cmd/test.go
Package : cmd

`slang test <path>` runs a script and reports every `test "..." { ... }`
block's pass/fail outcome (spec §4.2's Test statement + §4.4's "when a
runner runs it, executes B in a child scope and records any
AssertionError"), exiting 1 if any test failed.
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

var testCmd = &cobra.Command{
	Use:   "test <path>",
	Short: "Run a Slang script and report its test { } block results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTests(args[0])
	},
}

func runTests(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return &exitError{code: 1, message: err.Error()}
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

	failed := 0
	for _, t := range ev.Tests {
		if t.Passed {
			fmt.Printf("PASS  %s\n", t.Description)
		} else {
			failed++
			fmt.Printf("FAIL  %s: %s\n", t.Description, t.Err.Error())
		}
	}
	fmt.Printf("%d passed, %d failed\n", len(ev.Tests)-failed, failed)
	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}
