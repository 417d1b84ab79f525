// Package eval implements the SOC tree-walking evaluator (spec.md §4.3):
// dispatch over AST node kinds, the tail-call trampoline, early-return
// propagation, and the bridge to the Function Registry and handle manager.
// The one-file-per-concern layout (this file: dispatch + literals + control
// flow; arithmetic.go: operator promotion; calls.go: function application +
// trampoline; access.go: indexing/field access) mirrors the teacher's
// internal/interp/evaluator visitor_*.go split.
package eval

import (
	"math"

	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/handle"
	"github.com/eddndev/achronyme-go/internal/registry"
	"github.com/eddndev/achronyme-go/internal/runtime"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// ImportResolver loads the AST of another SOC source module by name,
// resolved against the directory of the currently executing file; actual
// file-system resolution is host-provided (spec.md §6).
type ImportResolver func(module string) (*ast.Program, error)

// Evaluator holds the state shared by the string-eval path and the
// handle-based fast path (spec.md §2's "one Value model, one Environment,
// one kernel set").
type Evaluator struct {
	Global   *runtime.Environment
	Registry *registry.Registry
	Handles  *handle.Manager
	Resolve  ImportResolver

	Source string
	File   string
}

// New creates an Evaluator with a fresh global environment, a populated
// builtin registry, and a fresh handle manager (spec.md §9: these must be
// per-engine-instance, not process-wide).
func New() *Evaluator {
	e := &Evaluator{
		Global:  runtime.New(),
		Handles: handle.New(),
	}
	e.Registry = registry.New(e.Call)
	e.bindConstants()
	return e
}

// Reset clears every environment binding and every handle (spec.md §3),
// then binds the constants pi, e and i again.
func (e *Evaluator) Reset() {
	e.Global = runtime.New()
	e.bindConstants()
	e.Handles.Clear()
}

// bindConstants defines the global constants of spec.md §3 (pi, e, the
// imaginary unit) directly in the Environment rather than the Function
// Registry, since they are values, not callables.
func (e *Evaluator) bindConstants() {
	e.Global.Define("pi", value.Number(math.Pi))
	e.Global.Define("e", value.Number(math.E))
	e.Global.Define("i", value.Complex(complex(0, 1)))
}

// BindVariable bridges a handle into the Environment under name (spec.md
// §4.11's bind_variable): the registry and the Environment both keep the
// underlying Value alive until both release it (spec.md §3 ownership).
func (e *Evaluator) BindVariable(name string, id handle.ID) error {
	v, err := e.Handles.Get(id)
	if err != nil {
		return err
	}
	e.Global.Define(name, v)
	return nil
}

// HandleFromVariable looks up name in the global Environment and wraps its
// current Value in a fresh handle (spec.md §4.11's handle_from_variable).
func (e *Evaluator) HandleFromVariable(name string) (handle.ID, error) {
	v, ok := e.Global.GetLocal(name)
	if !ok {
		return 0, soerr.New(soerr.Name, "unbound identifier %q", name)
	}
	return e.Handles.Create(v), nil
}

func (e *Evaluator) errAt(kind soerr.Kind, pos ast.Node, format string, args ...any) *soerr.Error {
	return soerr.New(kind, format, args...).At(pos.Pos(), e.Source, e.File)
}

// EvalProgram evaluates every top-level statement in order and returns the
// value of the last one (spec.md §6).
func (e *Evaluator) EvalProgram(prog *ast.Program) (value.Value, error) {
	var result value.Value = value.Bool(false)
	for _, stmt := range prog.Statements {
		v, err := e.evalStmt(stmt, e.Global)
		if err != nil {
			return nil, err
		}
		result = v
	}
	if er, ok := result.(*value.EarlyReturn); ok {
		return er.Value, nil
	}
	return result, nil
}

func (e *Evaluator) evalStmt(stmt ast.Stmt, env value.Env) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		v, err := e.evalExpr(s.Value, env, false)
		if err != nil {
			return nil, err
		}
		env.Define(s.Name, v)
		return v, nil
	case *ast.AssignStmt:
		return e.evalAssign(s, env)
	case *ast.ImportStmt:
		return e.evalImport(s, env)
	case *ast.ReturnStmt:
		v, err := e.evalExpr(s.Value, env, false)
		if err != nil {
			return nil, err
		}
		return &value.EarlyReturn{Value: v}, nil
	case *ast.ExprStmt:
		return e.evalExpr(s.X, env, false)
	default:
		return nil, e.errAt(soerr.Type, stmt, "unsupported statement node %T", stmt)
	}
}

func (e *Evaluator) evalImport(s *ast.ImportStmt, env value.Env) (value.Value, error) {
	if e.Resolve == nil {
		return nil, e.errAt(soerr.IO, s, "no import resolver configured for module %q", s.Module)
	}
	prog, err := e.Resolve(s.Module)
	if err != nil {
		return nil, soerr.New(soerr.IO, "failed to load module %q: %v", s.Module, err)
	}
	moduleEnv := e.Global.NewChildEnv()
	if _, err := e.EvalProgramIn(prog, moduleEnv); err != nil {
		return nil, err
	}
	for _, name := range s.Names {
		v, ok := moduleEnv.GetLocal(name)
		if !ok {
			return nil, e.errAt(soerr.Name, s, "module %q does not export %q", s.Module, name)
		}
		env.Define(name, v)
	}
	return value.Bool(true), nil
}

// EvalProgramIn evaluates a Program's statements into the given environment
// instead of the global one (used for module bodies during import).
func (e *Evaluator) EvalProgramIn(prog *ast.Program, env value.Env) (value.Value, error) {
	var result value.Value = value.Bool(false)
	for _, stmt := range prog.Statements {
		v, err := e.evalStmt(stmt, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// evalExpr evaluates an expression. tail indicates whether node sits in
// tail position of the enclosing Function body; only CallExpr inspects it,
// producing a *value.TailCall marker instead of recursing so that
// self-recursive SOC functions run in constant Go stack depth (spec.md §4.3).
func (e *Evaluator) evalExpr(node ast.Expr, env value.Env, tail bool) (value.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLit:
		return value.Number(n.Value), nil
	case *ast.ComplexLit:
		return value.Complex(complex(0, n.Imag)), nil
	case *ast.StringLit:
		return value.String(n.Value), nil
	case *ast.BoolLit:
		return value.Bool(n.Value), nil
	case *ast.Identifier:
		return e.evalIdentifier(n, env)
	case *ast.VectorLit:
		return e.evalVectorLit(n, env)
	case *ast.MatrixLit:
		return e.evalMatrixLit(n, env)
	case *ast.RecordLit:
		return e.evalRecordLit(n, env)
	case *ast.EdgeLit:
		return e.evalEdgeLit(n, env)
	case *ast.UnaryExpr:
		return e.evalUnary(n, env)
	case *ast.BinaryExpr:
		return e.evalBinary(n, env)
	case *ast.LambdaExpr:
		return &value.Function{Params: n.Params, Body: n.Body, Captured: env}, nil
	case *ast.CallExpr:
		return e.evalCall(n, env, tail)
	case *ast.IndexExpr:
		return e.evalIndex(n, env)
	case *ast.FieldExpr:
		return e.evalField(n, env)
	case *ast.DoBlock:
		return e.evalDoBlock(n, env, tail)
	case *ast.IfExpr:
		return e.evalIf(n, env, tail)
	default:
		return nil, e.errAt(soerr.Type, node, "unsupported expression node %T", node)
	}
}

func (e *Evaluator) evalIdentifier(n *ast.Identifier, env value.Env) (value.Value, error) {
	if v, ok := env.Get(n.Name); ok {
		return v, nil
	}
	if fn, ok := e.Registry.Lookup(n.Name); ok {
		return fn, nil
	}
	suggestion := e.Registry.Suggest(n.Name)
	err := e.errAt(soerr.Name, n, "unbound identifier %q", n.Name)
	if suggestion != "" {
		err = err.WithSuggestion(suggestion)
	}
	return nil, err
}

func (e *Evaluator) evalVectorLit(n *ast.VectorLit, env value.Env) (value.Value, error) {
	data := make([]float64, 0, len(n.Elements))
	for _, el := range n.Elements {
		v, err := e.evalExpr(el, env, false)
		if err != nil {
			return nil, err
		}
		f, ok := asFloat(v)
		if !ok {
			return nil, e.errAt(soerr.Type, el, "vector elements must be numbers, got %s", v.Type())
		}
		data = append(data, f)
	}
	return value.NewVector(data...), nil
}

func (e *Evaluator) evalMatrixLit(n *ast.MatrixLit, env value.Env) (value.Value, error) {
	rows := make([][]float64, len(n.Rows))
	cols := -1
	for i, row := range n.Rows {
		v, err := e.evalVectorLit(row, env)
		if err != nil {
			return nil, err
		}
		t := v.(*value.Tensor)
		if cols == -1 {
			cols = t.Shape[0]
		} else if t.Shape[0] != cols {
			return nil, e.errAt(soerr.Shape, row, "matrix rows must have equal length: row %d has %d, expected %d", i, t.Shape[0], cols)
		}
		rows[i] = t.Data
	}
	return value.NewMatrix(rows), nil
}

func (e *Evaluator) evalRecordLit(n *ast.RecordLit, env value.Env) (value.Value, error) {
	rec := value.NewRecord()
	for i, k := range n.Keys {
		v, err := e.evalExpr(n.Values[i], env, false)
		if err != nil {
			return nil, err
		}
		rec.Fields[k] = v
	}
	return rec, nil
}

func (e *Evaluator) evalEdgeLit(n *ast.EdgeLit, env value.Env) (value.Value, error) {
	from, err := e.evalExpr(n.From, env, false)
	if err != nil {
		return nil, err
	}
	to, err := e.evalExpr(n.To, env, false)
	if err != nil {
		return nil, err
	}
	fromStr, ok1 := from.(value.String)
	toStr, ok2 := to.(value.String)
	if !ok1 || !ok2 {
		return nil, e.errAt(soerr.Type, n, "edge endpoints must be strings")
	}
	var props *value.Record
	if n.Props != nil {
		v, err := e.evalRecordLit(n.Props, env)
		if err != nil {
			return nil, err
		}
		props = v.(*value.Record)
	}
	return &value.Edge{From: string(fromStr), To: string(toStr), Directed: n.Directed, Props: props}, nil
}

func (e *Evaluator) evalDoBlock(n *ast.DoBlock, env value.Env, tail bool) (value.Value, error) {
	child := env.NewChild()
	for _, stmt := range n.Statements {
		v, err := e.evalStmt(stmt, child)
		if err != nil {
			return nil, err
		}
		if _, ok := v.(*value.EarlyReturn); ok {
			return v, nil
		}
	}
	if n.Result == nil {
		return value.Bool(false), nil
	}
	return e.evalExpr(n.Result, child, tail)
}

func (e *Evaluator) evalIf(n *ast.IfExpr, env value.Env, tail bool) (value.Value, error) {
	cond, err := e.evalExpr(n.Cond, env, false)
	if err != nil {
		return nil, err
	}
	if value.Truthy(cond) {
		if n.Then == nil {
			return value.Bool(false), nil
		}
		return e.evalExpr(n.Then, env, tail)
	}
	if n.Else == nil {
		return value.Bool(false), nil
	}
	return e.evalExpr(n.Else, env, tail)
}

func (e *Evaluator) evalAssign(s *ast.AssignStmt, env value.Env) (value.Value, error) {
	v, err := e.evalExpr(s.Value, env, false)
	if err != nil {
		return nil, err
	}
	switch target := s.Target.(type) {
	case *ast.Identifier:
		if !env.Assign(target.Name, v) {
			return nil, e.errAt(soerr.Name, target, "unbound identifier %q", target.Name)
		}
		return v, nil
	case *ast.IndexExpr:
		return v, e.assignIndex(target, v, env)
	case *ast.FieldExpr:
		return v, e.assignField(target, v, env)
	default:
		return nil, e.errAt(soerr.Type, s.Target, "invalid assignment target")
	}
}

func asFloat(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Number:
		return float64(n), true
	case value.Bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
