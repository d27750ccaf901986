package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/slang/token"
)

func TestExpressionNodesImplementInterface(t *testing.T) {
	var exprs = []Expression{
		&IntLit{}, &FloatLit{}, &StringLit{}, &BoolLit{}, &NullLit{},
		&Identifier{}, &ArrayLit{}, &ObjectLit{}, &Index{}, &Member{},
		&Prefix{}, &Infix{}, &Assign{}, &Postfix{}, &If{}, &BlockExpr{},
		&FunctionLit{}, &Call{}, &MethodCall{}, &NamespaceAccess{},
		&TagLit{}, &PublishChain{}, &New{}, &This{},
	}
	assert.Len(t, exprs, 24)
}

func TestStatementNodesImplementInterface(t *testing.T) {
	var stmts = []Statement{
		&Block{}, &Let{}, &ExprStmt{}, &Return{}, &Break{}, &Continue{},
		&While{}, &For{}, &FunctionDecl{}, &ClassDecl{}, &NamespaceDecl{},
		&Import{}, &Test{},
	}
	assert.Len(t, stmts, 13)
}

func TestProgramPosFallsBackToFirstStatement(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&ExprStmt{Position: token.Position{Line: 3, Column: 1}},
	}}
	assert.Equal(t, 3, prog.Pos().Line)

	empty := &Program{}
	assert.Equal(t, 1, empty.Pos().Line)
}

func TestForOptionalFieldsNilWhenEmpty(t *testing.T) {
	f := &For{Body: &Block{}}
	assert.Nil(t, f.Init)
	assert.Nil(t, f.Cond)
	assert.Nil(t, f.Post)
}

func TestIfElseNilWhenAbsent(t *testing.T) {
	ifExpr := &If{Cond: &BoolLit{Value: true}, Then: &Block{}}
	assert.Nil(t, ifExpr.Else)
}
