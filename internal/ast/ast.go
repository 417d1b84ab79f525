// Package ast defines the Abstract Syntax Tree node types produced by the
// SOC parser and walked by the evaluator (spec.md §4.2).
package ast

import (
	"fmt"
	"strings"

	"github.com/eddndev/achronyme-go/internal/token"
)

// Node is the common interface of every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Stmt is a top-level or do-block statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any node that yields a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node: a sequence of statements, evaluated top to
// bottom, whose value is that of the last statement (spec.md §6).
type Program struct {
	Statements []Stmt
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ---- literals ----

type NumberLit struct {
	Position token.Position
	Value    float64
}

func (n *NumberLit) Pos() token.Position { return n.Position }
func (n *NumberLit) String() string      { return fmt.Sprintf("%g", n.Value) }
func (*NumberLit) exprNode()             {}

// ComplexLit is a literal with a trailing 'i' (spec.md §4.1), e.g. 2i.
type ComplexLit struct {
	Position token.Position
	Imag     float64
}

func (n *ComplexLit) Pos() token.Position { return n.Position }
func (n *ComplexLit) String() string      { return fmt.Sprintf("%gi", n.Imag) }
func (*ComplexLit) exprNode()             {}

type StringLit struct {
	Position token.Position
	Value    string
}

func (n *StringLit) Pos() token.Position { return n.Position }
func (n *StringLit) String() string      { return fmt.Sprintf("%q", n.Value) }
func (*StringLit) exprNode()             {}

type BoolLit struct {
	Position token.Position
	Value    bool
}

func (n *BoolLit) Pos() token.Position { return n.Position }
func (n *BoolLit) String() string      { return fmt.Sprintf("%t", n.Value) }
func (*BoolLit) exprNode()             {}

type Identifier struct {
	Position token.Position
	Name     string
}

func (n *Identifier) Pos() token.Position { return n.Position }
func (n *Identifier) String() string      { return n.Name }
func (*Identifier) exprNode()             {}

// VectorLit is `[e, ...]`.
type VectorLit struct {
	Position token.Position
	Elements []Expr
}

func (n *VectorLit) Pos() token.Position { return n.Position }
func (n *VectorLit) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (*VectorLit) exprNode() {}

// MatrixLit is `[[...], [...], ...]`.
type MatrixLit struct {
	Position token.Position
	Rows     []*VectorLit
}

func (n *MatrixLit) Pos() token.Position { return n.Position }
func (n *MatrixLit) String() string {
	parts := make([]string, len(n.Rows))
	for i, r := range n.Rows {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (*MatrixLit) exprNode() {}

// RecordLit is `{k: v, ...}`.
type RecordLit struct {
	Position token.Position
	Keys     []string
	Values   []Expr
}

func (n *RecordLit) Pos() token.Position { return n.Position }
func (n *RecordLit) String() string {
	parts := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		parts[i] = fmt.Sprintf("%s: %s", k, n.Values[i].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (*RecordLit) exprNode() {}

// EdgeLit is `a -> b {...}` or `a <> b {...}`.
type EdgeLit struct {
	Position token.Position
	From     Expr
	To       Expr
	Directed bool
	Props    *RecordLit // nil if no property record given
}

func (n *EdgeLit) Pos() token.Position { return n.Position }
func (n *EdgeLit) String() string {
	arrow := "->"
	if !n.Directed {
		arrow = "<>"
	}
	s := fmt.Sprintf("%s %s %s", n.From.String(), arrow, n.To.String())
	if n.Props != nil {
		s += " " + n.Props.String()
	}
	return s
}
func (*EdgeLit) exprNode() {}

// ---- operators / calls / access ----

type UnaryExpr struct {
	Position token.Position
	Op       token.Kind
	Right    Expr
}

func (n *UnaryExpr) Pos() token.Position { return n.Position }
func (n *UnaryExpr) String() string      { return fmt.Sprintf("(%s%s)", n.Op, n.Right.String()) }
func (*UnaryExpr) exprNode()             {}

type BinaryExpr struct {
	Position token.Position
	Op       token.Kind
	Left     Expr
	Right    Expr
}

func (n *BinaryExpr) Pos() token.Position { return n.Position }
func (n *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op, n.Right.String())
}
func (*BinaryExpr) exprNode() {}

type CallExpr struct {
	Position token.Position
	Callee   Expr
	Args     []Expr
}

func (n *CallExpr) Pos() token.Position { return n.Position }
func (n *CallExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Callee.String(), strings.Join(parts, ", "))
}
func (*CallExpr) exprNode() {}

// IndexExpr is `v[i]` or `m[i, j]` (Index2 non-nil) or `v[a:b]` (IsSlice).
type IndexExpr struct {
	Position token.Position
	Object   Expr
	Index    Expr
	Index2   Expr // m[i, j] second index; nil otherwise
	IsSlice  bool
	SliceTo  Expr // only when IsSlice
}

func (n *IndexExpr) Pos() token.Position { return n.Position }
func (n *IndexExpr) String() string {
	if n.IsSlice {
		return fmt.Sprintf("%s[%s:%s]", n.Object.String(), n.Index.String(), n.SliceTo.String())
	}
	if n.Index2 != nil {
		return fmt.Sprintf("%s[%s, %s]", n.Object.String(), n.Index.String(), n.Index2.String())
	}
	return fmt.Sprintf("%s[%s]", n.Object.String(), n.Index.String())
}
func (*IndexExpr) exprNode() {}

// FieldExpr is `r.key`.
type FieldExpr struct {
	Position token.Position
	Object   Expr
	Name     string
}

func (n *FieldExpr) Pos() token.Position { return n.Position }
func (n *FieldExpr) String() string      { return fmt.Sprintf("%s.%s", n.Object.String(), n.Name) }
func (*FieldExpr) exprNode()             {}

// LambdaExpr is `(p, ...) => expr`, or `p => expr` for a single parameter.
type LambdaExpr struct {
	Position token.Position
	Params   []string
	Body     Expr
}

func (n *LambdaExpr) Pos() token.Position { return n.Position }
func (n *LambdaExpr) String() string {
	return fmt.Sprintf("(%s) => %s", strings.Join(n.Params, ", "), n.Body.String())
}
func (*LambdaExpr) exprNode() {}

// DoBlock is `do { stmts; expr }`.
type DoBlock struct {
	Position   token.Position
	Statements []Stmt
	Result     Expr // may be nil if the block has no trailing expression
}

func (n *DoBlock) Pos() token.Position { return n.Position }
func (n *DoBlock) String() string {
	var sb strings.Builder
	sb.WriteString("do { ")
	for _, s := range n.Statements {
		sb.WriteString(s.String())
		sb.WriteString("; ")
	}
	if n.Result != nil {
		sb.WriteString(n.Result.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
func (*DoBlock) exprNode() {}

// IfExpr is `if cond then expr else expr`.
type IfExpr struct {
	Position token.Position
	Cond     Expr
	Then     Expr
	Else     Expr // nil if no else branch
}

func (n *IfExpr) Pos() token.Position { return n.Position }
func (n *IfExpr) String() string {
	if n.Else != nil {
		return fmt.Sprintf("if %s then %s else %s", n.Cond.String(), n.Then.String(), n.Else.String())
	}
	return fmt.Sprintf("if %s then %s", n.Cond.String(), n.Then.String())
}
func (*IfExpr) exprNode() {}

// ---- statements ----

// LetStmt binds a name in the current environment (spec.md §4.3/§4.4).
type LetStmt struct {
	Position token.Position
	Name     string
	Value    Expr
}

func (n *LetStmt) Pos() token.Position { return n.Position }
func (n *LetStmt) String() string      { return fmt.Sprintf("let %s = %s", n.Name, n.Value.String()) }
func (*LetStmt) stmtNode()             {}

// AssignStmt reassigns an existing binding (target may be an identifier,
// index expression, or field expression).
type AssignStmt struct {
	Position token.Position
	Target   Expr
	Value    Expr
}

func (n *AssignStmt) Pos() token.Position { return n.Position }
func (n *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s", n.Target.String(), n.Value.String())
}
func (*AssignStmt) stmtNode() {}

// ImportStmt is `import { name, ... } from "module"` (spec.md §6).
type ImportStmt struct {
	Position token.Position
	Names    []string
	Module   string
}

func (n *ImportStmt) Pos() token.Position { return n.Position }
func (n *ImportStmt) String() string {
	return fmt.Sprintf("import { %s } from %q", strings.Join(n.Names, ", "), n.Module)
}
func (*ImportStmt) stmtNode() {}

// ReturnStmt is `return expr` inside a do-block (spec.md §4.3).
type ReturnStmt struct {
	Position token.Position
	Value    Expr
}

func (n *ReturnStmt) Pos() token.Position { return n.Position }
func (n *ReturnStmt) String() string      { return fmt.Sprintf("return %s", n.Value.String()) }
func (*ReturnStmt) stmtNode()             {}

// ExprStmt wraps a bare expression used as a statement (e.g. a do-block
// statement evaluated for side effect before the block's final value).
type ExprStmt struct {
	Position token.Position
	X        Expr
}

func (n *ExprStmt) Pos() token.Position { return n.Position }
func (n *ExprStmt) String() string      { return n.X.String() }
func (*ExprStmt) stmtNode()             {}
