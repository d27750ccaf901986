/*
File    : slang/evaluator/evaluator.go
Package : evaluator

Package evaluator walks an *ast.Program against an *environment.Env and
produces a value.Value, exactly the "AST -> Value, control-flow
signals, call/return, method dispatch" shape spec §2 assigns it.
Dispatch is one big type-switch over ast.Node, grounded on
Eloquence's evaluator.Eval function shape (see DESIGN.md); the struct
around it (Registry, Writer, Reader, open-file bookkeeping,
error-with-position reporting) is grounded on the teacher's
eval.Evaluator struct.

Eval never panics to unwind Go's call stack: control flow
(return/break/continue) is expressed as the signal wrapper values in
signals.go, and host/runtime failures are expressed as the ordinary Go
error return value.Value operations already use. A block or loop
checks isSignal after every statement and stops evaluating its
remaining siblings as soon as one appears, propagating it to whichever
construct is meant to absorb it (applyFunction for a return, a loop for
break/continue).
*/
package evaluator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/builtins"
	"github.com/akashmaji946/slang/environment"
	"github.com/akashmaji946/slang/lexer"
	"github.com/akashmaji946/slang/parser"
	"github.com/akashmaji946/slang/pubsub"
	"github.com/akashmaji946/slang/value"
)

// Evaluator owns everything a running Slang program needs beyond the
// AST+Environment it is walking: the pub/sub tag registry (process-
// wide per spec §5, scoped to one Evaluator instance here — see
// DESIGN.md), the set of currently-open file handles (closed by
// Close), the `this` receiver stack method calls push onto, the
// import path set used for cycle detection, and where print/println
// write.
type Evaluator struct {
	Registry *pubsub.Registry
	Writer   io.Writer
	Reader   io.Reader

	receivers  []*value.Object // `this` stack; top is the current receiver
	openFiles  []*value.FileHandle
	importing  map[string]bool // paths currently being imported (cycle guard)
	scriptDir  string          // directory of the top-level script, for relative imports
	debug      bool

	// Tests records test results accumulated by `test "..." { ... }`
	// statements for whatever reports them (CLI `test` subcommand/REPL).
	Tests []TestResult
}

// TestResult is one `test "description" { ... }` outcome.
type TestResult struct {
	Description string
	Passed      bool
	Err         error
}

// New creates an Evaluator writing to w (normally os.Stdout) and
// keeping r (normally os.Stdin) as Reader; none of the standard
// builtins read from it.
func New(w io.Writer, r io.Reader) *Evaluator {
	return &Evaluator{
		Registry:  pubsub.NewRegistry(),
		Writer:    w,
		Reader:    r,
		importing: map[string]bool{},
	}
}

// NewGlobalEnv builds a fresh global Environment with the standard
// builtin registry installed, per spec §6's "Standard-library modules
// ... are registered this way before any user code runs."
func (e *Evaluator) NewGlobalEnv() *environment.Env {
	env := environment.New()
	builtins.Standard(e.Writer).Install(env)
	env.Define("debug", &value.Builtin{
		Name:  "debug",
		Arity: value.Exact(1),
		Fn: func(args []value.Value) (value.Value, error) {
			b, ok := args[0].(*value.Boolean)
			if !ok {
				return nil, fmt.Errorf("debug expects a Boolean argument")
			}
			e.SetDebug(b.Value)
			return value.Null, nil
		},
	})
	return env
}

// SetScriptDir records the directory script-mode imports resolve
// relative paths against (spec §4.6).
func (e *Evaluator) SetScriptDir(dir string) { e.scriptDir = dir }

// SetDebug toggles the debug(bool) builtin's effect: while on, Run
// prints each top-level statement's AST node (Go %#v form) to stderr
// before executing it. No token stream is printed.
func (e *Evaluator) SetDebug(b bool) { e.debug = b }

// Close closes every still-open file handle, per spec §5's "closes
// all on interpreter shutdown."
func (e *Evaluator) Close() {
	for _, fh := range e.openFiles {
		if fh.Open {
			fh.File.Close()
			fh.Open = false
		}
	}
}

// trackOpen registers fh so Close() can sweep it up later.
func (e *Evaluator) trackOpen(fh *value.FileHandle) { e.openFiles = append(e.openFiles, fh) }

// Run evaluates an entire program, statement by statement, returning
// the last statement's value. Top-level `return`/`break`/`continue`
// are programmer errors (spec §4.4: "a return outside any function is
// SyntaxError"); Run converts a top-level signal into that error.
func (e *Evaluator) Run(prog *ast.Program, env *environment.Env) (value.Value, error) {
	var result value.Value = value.Null
	for _, stmt := range prog.Statements {
		if e.debug {
			fmt.Fprintf(os.Stderr, "[debug] stmt: %#v\n", stmt)
		}
		v, err := e.Eval(stmt, env)
		if err != nil {
			return nil, err
		}
		if err := checkTopLevelSignal(v); err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func checkTopLevelSignal(v value.Value) error {
	switch v.(type) {
	case *returnSignal:
		return &RuntimeError{Kind: SyntaxErr, Message: "return outside of a function"}
	case *breakSignal:
		return &RuntimeError{Kind: SyntaxErr, Message: "break outside of a loop"}
	case *continueSignal:
		return &RuntimeError{Kind: SyntaxErr, Message: "continue outside of a loop"}
	}
	return nil
}

// Eval is the single recursive dispatch point: AST node in, Value (or
// propagating signal) + error out.
func (e *Evaluator) Eval(node ast.Node, env *environment.Env) (value.Value, error) {
	switch n := node.(type) {

	// ---- literals ----
	case *ast.IntLit:
		return value.NewInteger(n.Value), nil
	case *ast.FloatLit:
		return value.NewFloat(n.Value), nil
	case *ast.StringLit:
		return value.NewString(n.Value), nil
	case *ast.BoolLit:
		return value.NewBoolean(n.Value), nil
	case *ast.NullLit:
		return value.Null, nil
	case *ast.Identifier:
		return e.evalIdentifier(n, env)
	case *ast.ArrayLit:
		return e.evalArrayLit(n, env)
	case *ast.ObjectLit:
		return e.evalObjectLit(n, env)
	case *ast.This:
		if len(e.receivers) == 0 {
			return value.Null, nil
		}
		return e.receivers[len(e.receivers)-1], nil
	case *ast.TagLit:
		return value.NewString(n.Name), nil

	// ---- compound expressions ----
	case *ast.Index:
		return e.evalIndex(n, env)
	case *ast.Member:
		return e.evalMember(n, env)
	case *ast.Prefix:
		return e.evalPrefix(n, env)
	case *ast.Infix:
		return e.evalInfix(n, env)
	case *ast.Assign:
		return e.evalAssign(n, env)
	case *ast.Postfix:
		return e.evalPostfix(n, env)
	case *ast.If:
		return e.evalIf(n, env)
	case *ast.BlockExpr:
		return e.evalBlock(n.Block, environment.NewEnclosed(env))
	case *ast.FunctionLit:
		return e.evalFunctionLit(n, env)
	case *ast.Call:
		return e.evalCall(n, env)
	case *ast.MethodCall:
		return e.evalMethodCall(n, env)
	case *ast.NamespaceAccess:
		return e.evalNamespaceAccess(n, env)
	case *ast.PublishChain:
		return e.evalPublishChain(n, env)
	case *ast.New:
		return e.evalNew(n, env)

	// ---- statements ----
	case *ast.Block:
		return e.evalBlock(n, environment.NewEnclosed(env))
	case *ast.Let:
		return e.evalLet(n, env)
	case *ast.ExprStmt:
		return e.Eval(n.Expr, env)
	case *ast.Return:
		return e.evalReturn(n, env)
	case *ast.Break:
		return &breakSignal{}, nil
	case *ast.Continue:
		return &continueSignal{}, nil
	case *ast.While:
		return e.evalWhile(n, env)
	case *ast.For:
		return e.evalFor(n, env)
	case *ast.FunctionDecl:
		return e.evalFunctionDecl(n, env)
	case *ast.ClassDecl:
		return e.evalClassDecl(n, env)
	case *ast.NamespaceDecl:
		return e.evalNamespaceDecl(n, env)
	case *ast.Import:
		return e.evalImport(n, env)
	case *ast.Test:
		return e.evalTest(n, env)

	default:
		return nil, newError(RuntimeErr, node.Pos(), "unhandled AST node %T", node)
	}
}

// resolveImportPath turns an import's literal path into a filesystem
// path relative to the importing file's directory, or absolute if
// path already is.
func (e *Evaluator) resolveImportPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	dir := e.scriptDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, path)
}

// parseFile lexes+parses a .sl source file, used by both the top-level
// runner and import resolution.
func parseFile(path string) (*ast.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lx := lexer.New(string(src))
	ps, err := parser.New(lx)
	if err != nil {
		return nil, err
	}
	return ps.ParseProgram()
}
