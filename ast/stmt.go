package ast

import "github.com/akashmaji946/slang/token"

// Block is a brace-delimited statement sequence; it also appears as
// the Statement variant the spec names "Block(stmts)" when used as a
// standalone statement (e.g. a bare `{ … }`).
type Block struct {
	Position   token.Position
	Statements []Statement
}

// Let is `let NAME = EXPR;` — always binds in the innermost scope.
type Let struct {
	Position token.Position
	Name     string
	Value    Expression
}

// ExprStmt is a bare expression used as a statement, e.g. a call or an
// `if` used for effect rather than its value.
type ExprStmt struct {
	Position token.Position
	Expr     Expression
}

// Return is `return EXPR?;`. Value is nil for a bare `return;`, which
// evaluates to Null.
type Return struct {
	Position token.Position
	Value    Expression
}

type Break struct {
	Position token.Position
}

type Continue struct {
	Position token.Position
}

type While struct {
	Position token.Position
	Cond     Expression
	Body     *Block
}

// For's Init/Cond/Post are each nil when the corresponding grammar
// slot was left empty (`for (;;)`).
type For struct {
	Position token.Position
	Init     Statement
	Cond     Expression
	Post     Expression
	Body     *Block
}

// FunctionDecl is `function NAME(params) { body }`, the named-
// declaration sugar for `let NAME = fn(params) { body };` described in
// spec §4.2 — Name is also stamped onto the produced Function value so
// recursive self-reference and Inspect both see it.
type FunctionDecl struct {
	Position token.Position
	Name     string
	Params   []string
	Body     *Block
	Tags     []string
}

// ClassDecl is `class NAME { function m1(...) {...} ... }`.
type ClassDecl struct {
	Position token.Position
	Name     string
	Methods  []*FunctionDecl
}

// NamespaceDecl is `namespace NAME { Statement* }`.
type NamespaceDecl struct {
	Position token.Position
	Name     string
	Body     *Block
}

// Import is `import "path";`.
type Import struct {
	Position token.Position
	Path     string
}

// Test is `test "description" { body }`.
type Test struct {
	Position    token.Position
	Description string
	Body        *Block
}

func (n *Block) Pos() token.Position         { return n.Position }
func (n *Let) Pos() token.Position           { return n.Position }
func (n *ExprStmt) Pos() token.Position      { return n.Position }
func (n *Return) Pos() token.Position        { return n.Position }
func (n *Break) Pos() token.Position         { return n.Position }
func (n *Continue) Pos() token.Position      { return n.Position }
func (n *While) Pos() token.Position         { return n.Position }
func (n *For) Pos() token.Position           { return n.Position }
func (n *FunctionDecl) Pos() token.Position  { return n.Position }
func (n *ClassDecl) Pos() token.Position     { return n.Position }
func (n *NamespaceDecl) Pos() token.Position { return n.Position }
func (n *Import) Pos() token.Position        { return n.Position }
func (n *Test) Pos() token.Position          { return n.Position }

func (*Block) statementNode()         {}
func (*Let) statementNode()           {}
func (*ExprStmt) statementNode()      {}
func (*Return) statementNode()        {}
func (*Break) statementNode()         {}
func (*Continue) statementNode()      {}
func (*While) statementNode()         {}
func (*For) statementNode()           {}
func (*FunctionDecl) statementNode()  {}
func (*ClassDecl) statementNode()     {}
func (*NamespaceDecl) statementNode() {}
func (*Import) statementNode()        {}
func (*Test) statementNode()          {}
