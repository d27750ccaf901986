/*
File    : slang/cmd/slang/main.go
Package : main

Entrypoint for the Slang CLI, grounded on the teacher's main/main.go
(REPL-vs-file-mode branch, banner/version/author/license constants)
restructured onto spf13/cobra for flag/subcommand parsing (grounded on
CWBudde-go-dws's cmd/dwscript/cmd root-command pattern) instead of raw
os.Args indexing. Bare `slang` with no arguments enters the REPL;
`slang run <file>` (and the bare `slang <file>` shorthand the root
command's RunE provides) executes a script; `lex`/`parse`/`version` are
diagnostic subcommands in the spirit of CWBudde's cmd/lex.go/cmd/parse.go.
*/
package main

import (
	"os"

	"github.com/akashmaji946/slang/cmd/slang/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
