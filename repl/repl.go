/*
File    : slang/repl/repl.go
Package : repl

Package repl implements Slang's interactive Read-Eval-Print Loop,
grounded on the teacher's repl.Repl (banner/version/author/license
fields, chzyer/readline for history and line editing, fatih/color for
feedback) but with one behavior the teacher's REPL never needed:
multi-line input. Spec §9 requires detecting unterminated input by
brace/paren/bracket depth (and unterminated strings) so a `{` or `(`
left open at end-of-line accumulates further lines instead of either
erroring or silently misparsing; lexer.Depth implements that check.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/slang/environment"
	"github.com/akashmaji946/slang/evaluator"
	"github.com/akashmaji946/slang/lexer"
	"github.com/akashmaji946/slang/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is one interactive session's configuration: banner text and the
// prompt shown at each line.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New creates a Repl with the given display configuration.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Welcome to Slang!")
	cyanColor.Fprintln(w, "Type your code and press enter")
	cyanColor.Fprintln(w, "Type '.exit' to quit")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the REPL loop against r (stdin) and w (stdout), building
// one shared Evaluator and global Environment that persists across
// lines, so `let`-bindings and function declarations from one line are
// visible in the next (spec §6: "the REPL continues with the prior
// environment" even after an error).
func (r *Repl) Start(in io.Reader, w io.Writer) {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(w, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	eval := evaluator.New(w, in)
	defer eval.Close()
	env := eval.NewGlobalEnv()

	var pending strings.Builder

	for {
		prompt := r.Prompt
		if pending.Len() > 0 {
			prompt = "... "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err != nil {
			w.Write([]byte("Good Bye!\n"))
			return
		}

		if pending.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if trimmed == ".exit" {
				w.Write([]byte("Good Bye!\n"))
				return
			}
		}

		if pending.Len() > 0 {
			pending.WriteString("\n")
		}
		pending.WriteString(line)
		rl.SaveHistory(line)

		src := pending.String()
		if depth, unterminated := lexer.Depth(src); depth > 0 || unterminated {
			continue // accumulate more lines
		}
		pending.Reset()

		r.evalLine(w, src, eval, env)
	}
}

func (r *Repl) evalLine(w io.Writer, src string, eval *evaluator.Evaluator, env *environment.Env) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(w, "[RUNTIME ERROR] %v\n", rec)
		}
	}()

	lx := lexer.New(src)
	ps, err := parser.New(lx)
	if err != nil {
		redColor.Fprintf(w, "%s\n", err.Error())
		return
	}
	prog, err := ps.ParseProgram()
	if err != nil {
		redColor.Fprintf(w, "%s\n", err.Error())
		return
	}

	result, err := eval.Run(prog, env)
	if err != nil {
		redColor.Fprintf(w, "%s\n", err.Error())
		return
	}
	yellowColor.Fprintf(w, "%s\n", result.String())
}
