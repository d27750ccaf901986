/*
File    : slang/cmd/slang/cmd/root.go
Package : cmd

Root command: `slang` with no arguments starts the REPL (spec §6);
`slang <path>` executes that script directly, the shorthand spec §6
names alongside the explicit `slang run <path>` subcommand.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akashmaji946/slang/repl"
)

const (
	version = "v0.1.0"
	author  = "the Slang maintainers"
	license = "MIT"
	prompt  = "slang >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
   ▄▄▄▄▄  ▄▄▄    ▄▄▄▄▄  ▄▄▄   ▄▄▄▄▄▄
  ██      ██ █   ██  ██ ██ █  ██   ██
   ▀▀▀▄▄  ██▄█   ▄▄▄▄██ ██▄█  ██▄▄▄█
  ▄▄▄▄▄▀  ██ █   ██  ██ ██ █  ██
`
)

var rootCmd = &cobra.Command{
	Use:          "slang [script]",
	Short:        "Slang — an interpreted, dynamically-typed scripting language",
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			r := repl.New(banner, version, author, line, license, prompt)
			r.Start(os.Stdin, os.Stdout)
			return nil
		}
		return runScript(args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd, lexCmd, parseCmd, versionCmd, testCmd)
}

// Execute runs the CLI and returns the process exit code per spec §6:
// 0 on normal completion, 1 on an unhandled evaluation error, 2 on CLI
// misuse (cobra's own flag/argument errors).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if ee, ok := err.(*exitError); ok {
			if ee.message != "" {
				fmt.Fprintln(os.Stderr, ee.message)
			}
			return ee.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return 0
}

// exitError lets a subcommand request a specific process exit code
// (1 for a script's own evaluation error, per spec §6) without cobra
// printing its usual usage-on-error banner for what isn't a usage
// error.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string { return e.message }

func scriptError(err error) error {
	return &exitError{code: 1, message: err.Error()}
}
