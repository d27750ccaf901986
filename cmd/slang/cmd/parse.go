/*
File    : slang/cmd/slang/cmd/parse.go
Package : cmd

`slang parse <path>` parses a file and prints a one-line-per-node
summary of the resulting Program, a debugging aid in the same spirit
as CWBudde-go-dws's cmd/dwscript/cmd/parse.go.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/lexer"
	"github.com/akashmaji946/slang/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <path>",
	Short: "Parse a Slang file and print its AST summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
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
		for i, stmt := range prog.Statements {
			printNode(0, fmt.Sprintf("[%d]", i), stmt)
		}
		return nil
	},
}

func printNode(indent int, label string, n ast.Node) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	fmt.Printf("%s%s %T @%s\n", pad, label, n, n.Pos())
	switch v := n.(type) {
	case *ast.Block:
		for i, s := range v.Statements {
			printNode(indent+1, fmt.Sprintf("[%d]", i), s)
		}
	case *ast.If:
		printNode(indent+1, "cond", v.Cond)
		printNode(indent+1, "then", v.Then)
		if v.Else != nil {
			printNode(indent+1, "else", v.Else)
		}
	case *ast.While:
		printNode(indent+1, "cond", v.Cond)
		printNode(indent+1, "body", v.Body)
	case *ast.FunctionDecl:
		printNode(indent+1, "body", v.Body)
	case *ast.ClassDecl:
		for _, m := range v.Methods {
			printNode(indent+1, "method", m)
		}
	case *ast.NamespaceDecl:
		printNode(indent+1, "body", v.Body)
	}
}
