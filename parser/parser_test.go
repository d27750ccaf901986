package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p, err := New(lexer.New(src))
	require.NoError(t, err)
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	return prog
}

func TestOperatorPrecedence(t *testing.T) {
	prog := parseProgram(t, "5 + 10 * 2;")
	require.Len(t, prog.Statements, 1)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	infix := stmt.Expr.(*ast.Infix)
	assert.Equal(t, "+", string(infix.Op))
	assert.IsType(t, &ast.IntLit{}, infix.Left)
	rhs := infix.Right.(*ast.Infix)
	assert.Equal(t, "*", string(rhs.Op))
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	prog := parseProgram(t, "(5 + 10) * 2;")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	infix := stmt.Expr.(*ast.Infix)
	assert.Equal(t, "*", string(infix.Op))
	assert.IsType(t, &ast.Infix{}, infix.Left)
}

func TestLetAndAssignment(t *testing.T) {
	prog := parseProgram(t, `let x = 5; x = x + 1;`)
	require.Len(t, prog.Statements, 2)
	let := prog.Statements[0].(*ast.Let)
	assert.Equal(t, "x", let.Name)
	exprStmt := prog.Statements[1].(*ast.ExprStmt)
	assign := exprStmt.Expr.(*ast.Assign)
	assert.Equal(t, "=", string(assign.Op))
	assert.IsType(t, &ast.Identifier{}, assign.Target)
}

func TestIfElseExpression(t *testing.T) {
	prog := parseProgram(t, `if (x > 0) { 1 } else { 0 };`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	ifExpr := stmt.Expr.(*ast.If)
	assert.NotNil(t, ifExpr.Then)
	assert.IsType(t, &ast.BlockExpr{}, ifExpr.Else)
}

func TestForLoopWithAllClauses(t *testing.T) {
	prog := parseProgram(t, `for (let i = 0; i < 10; i++) { s = s + i; }`)
	forStmt := prog.Statements[0].(*ast.For)
	assert.IsType(t, &ast.Let{}, forStmt.Init)
	assert.NotNil(t, forStmt.Cond)
	assert.IsType(t, &ast.Postfix{}, forStmt.Post)
}

func TestForLoopEmptyClauses(t *testing.T) {
	prog := parseProgram(t, `for (;;) { break; }`)
	forStmt := prog.Statements[0].(*ast.For)
	assert.Nil(t, forStmt.Init)
	assert.Nil(t, forStmt.Cond)
	assert.Nil(t, forStmt.Post)
}

func TestFunctionDeclAndClosureShape(t *testing.T) {
	prog := parseProgram(t, `function add(a, b) { return a + b; }`)
	decl := prog.Statements[0].(*ast.FunctionDecl)
	assert.Equal(t, "add", decl.Name)
	assert.Equal(t, []string{"a", "b"}, decl.Params)
}

func TestTaggedFunctionDecl(t *testing.T) {
	prog := parseProgram(t, `(:T) function f(arr) { arr[0] * 2; }`)
	decl := prog.Statements[0].(*ast.FunctionDecl)
	assert.Equal(t, []string{"T"}, decl.Tags)
}

func TestPublishChainSingleInitial(t *testing.T) {
	prog := parseProgram(t, `1 -> :Sq -> :Prt;`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	chain := stmt.Expr.(*ast.PublishChain)
	assert.Len(t, chain.Initial, 1)
	assert.Equal(t, []string{"Sq", "Prt"}, chain.Tags)
}

func TestPublishChainCommaInitial(t *testing.T) {
	prog := parseProgram(t, `a, b -> :T1;`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	chain := stmt.Expr.(*ast.PublishChain)
	assert.Len(t, chain.Initial, 2)
}

func TestClassDeclWithMethods(t *testing.T) {
	prog := parseProgram(t, `class C { function construct(v) { this.v = v; } function get() { this.v; } }`)
	cls := prog.Statements[0].(*ast.ClassDecl)
	assert.Equal(t, "C", cls.Name)
	require.Len(t, cls.Methods, 2)
	assert.Equal(t, "construct", cls.Methods[0].Name)
}

func TestNewExpression(t *testing.T) {
	prog := parseProgram(t, `new C(42);`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	n := stmt.Expr.(*ast.New)
	assert.Equal(t, "C", n.ClassName)
	require.Len(t, n.Args, 1)
}

func TestNamespaceDecl(t *testing.T) {
	prog := parseProgram(t, `namespace N { let x = 1; }`)
	ns := prog.Statements[0].(*ast.NamespaceDecl)
	assert.Equal(t, "N", ns.Name)
	require.Len(t, ns.Body.Statements, 1)
}

func TestNamespaceAccessExpression(t *testing.T) {
	prog := parseProgram(t, `Result::isErr(x);`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.Call)
	access := call.Callee.(*ast.NamespaceAccess)
	assert.Equal(t, "Result", access.Namespace)
	assert.Equal(t, "isErr", access.Member)
}

func TestMethodCallBindsReceiver(t *testing.T) {
	prog := parseProgram(t, `new C(42).get();`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	method := stmt.Expr.(*ast.MethodCall)
	assert.Equal(t, "get", method.Name)
	assert.IsType(t, &ast.New{}, method.Receiver)
}

func TestImportStatement(t *testing.T) {
	prog := parseProgram(t, `import "lib/math.sl";`)
	imp := prog.Statements[0].(*ast.Import)
	assert.Equal(t, "lib/math.sl", imp.Path)
}

func TestObjectLiteralPreservesOrder(t *testing.T) {
	// A leading '{' at statement position is parsed as a Block, the
	// same disambiguation C-like languages use; object
	// literals used as statements must appear somewhere a block can't,
	// e.g. on the right of a `let`.
	prog := parseProgram(t, `let o = {a: 1, b: 2};`)
	let := prog.Statements[0].(*ast.Let)
	obj := let.Value.(*ast.ObjectLit)
	require.Len(t, obj.Entries, 2)
	assert.Equal(t, "a", obj.Entries[0].Key)
	assert.Equal(t, "b", obj.Entries[1].Key)
}

func TestArrayLiteralAndIndex(t *testing.T) {
	prog := parseProgram(t, `let a = [1,2,3,4,5]; a[0];`)
	exprStmt := prog.Statements[1].(*ast.ExprStmt)
	idx := exprStmt.Expr.(*ast.Index)
	assert.IsType(t, &ast.Identifier{}, idx.Target)
}

func TestCompoundAssignmentExpandsAtEval(t *testing.T) {
	prog := parseProgram(t, `x += 1;`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	assign := stmt.Expr.(*ast.Assign)
	assert.Equal(t, "+=", string(assign.Op))
}

func TestTestDeclaration(t *testing.T) {
	prog := parseProgram(t, `test "adds numbers" { assert(1+1==2); }`)
	test := prog.Statements[0].(*ast.Test)
	assert.Equal(t, "adds numbers", test.Description)
}

func TestAnonymousFunctionLiteral(t *testing.T) {
	prog := parseProgram(t, `let mk = fn(x) { fn(y) { x + y } };`)
	let := prog.Statements[0].(*ast.Let)
	outer := let.Value.(*ast.FunctionLit)
	assert.Equal(t, []string{"x"}, outer.Params)
}

func TestCommaWithoutArrowIsError(t *testing.T) {
	p, err := New(lexer.New(`a, b;`))
	require.NoError(t, err)
	_, err = p.ParseProgram()
	assert.Error(t, err)
}
