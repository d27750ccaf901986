/*
File    : slang/ast/ast.go
Package : ast

Package ast defines Slang's abstract syntax tree: one small struct per
expression/statement variant, each carrying a token.Position for
diagnostics. This mirrors the teacher's parser/node.go one-struct-
per-literal shape, but deliberately drops its precomputed
`Value objects.GoMixObject` field — the teacher folds constants at
parse time, while Slang's value model is fully dynamic and nothing is
foldable before an Environment exists. Optional fields (an If's
else-branch, a For's init/cond/post, a FunctionLit's name/tag-set) are
plain nilable Go values: an interface field, a string, or a slice that
is nil or empty when absent.
*/
package ast

import "github.com/akashmaji946/slang/token"

// Node is the root marker for every AST node.
type Node interface {
	Pos() token.Position
}

// Expression is any node that evaluates to a Value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that executes for effect.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed file: an ordered list of top-level
// statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}
