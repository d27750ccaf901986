/*
File    : slang/cmd/slang/cmd/lex.go
Package : cmd

`slang lex <path>` tokenizes a file and prints its token stream, a
debugging aid grounded on CWBudde-go-dws's cmd/dwscript/cmd/lex.go.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akashmaji946/slang/lexer"
	"github.com/akashmaji946/slang/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex <path>",
	Short: "Tokenize a Slang file and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return &exitError{code: 1, message: err.Error()}
		}
		lx := lexer.New(string(src))
		for {
			tok, err := lx.NextToken()
			if err != nil {
				return scriptError(err)
			}
			fmt.Printf("%-12s %-20q @%s\n", tok.Kind, tok.Literal, tok.Pos)
			if tok.Kind == token.EOF {
				break
			}
		}
		return nil
	},
}
