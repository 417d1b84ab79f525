// Package achronyme is the host-facing facade over the SOC evaluation
// engine: the string eval() entry point, the handle-based numeric fast path
// (fastpath.go), and optional JSON export (json.go). Its shape —
// New(opts...), Engine.Eval, functional Option constructors — is adapted
// from the teacher's pkg/dwscript facade (inferred from its example tests:
// dwscript.New(opts...), engine.Eval, engine.SetOutput).
package achronyme

import (
	"io"
	"log/slog"

	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/eval"
	"github.com/eddndev/achronyme-go/internal/handle"
	"github.com/eddndev/achronyme-go/internal/lexer"
	"github.com/eddndev/achronyme-go/internal/parser"
	"github.com/eddndev/achronyme-go/internal/soerr"
)

// ImportResolver loads the AST of another SOC module by name, resolved
// against the directory of the currently executing file (spec.md §6); file
// resolution itself is host-provided, never performed by the core.
type ImportResolver = eval.ImportResolver

// Engine is one independent evaluation session: its own Environment,
// Function Registry, and handle registry (spec.md §9 — these must never be
// process-wide, so that a host can run multiple engines concurrently on
// separate goroutines).
type Engine struct {
	ev  *eval.Evaluator
	log *slog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithImportResolver supplies the string→AST loader callback spec.md §6
// requires for `import { name, … } from "module"`.
func WithImportResolver(resolve ImportResolver) Option {
	return func(e *Engine) { e.ev.Resolve = resolve }
}

// WithDiagnosticLog directs the engine's optional slog diagnostic stream
// (handle counters, CLI --trace output) to w. Diagnostics never participate
// in language-level error reporting (spec.md §2's AMBIENT STACK) — those
// always go through *soerr.Error.
func WithDiagnosticLog(w io.Writer) Option {
	return func(e *Engine) { e.log = slog.New(slog.NewTextHandler(w, nil)) }
}

// New builds a fresh Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		ev:  eval.New(),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval lexes, parses, and evaluates source, returning the canonical string
// form of the resulting Value (spec.md §6: `eval(source) → result_string`).
func (e *Engine) Eval(source string) (string, error) {
	prog, err := e.Parse(source, "<eval>")
	if err != nil {
		return "", err
	}
	v, err := e.ev.EvalProgram(prog)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// EvalProgram evaluates an already-parsed program, letting a caller that
// parsed once (e.g. for --dump-ast) avoid parsing source twice.
func (e *Engine) EvalProgram(prog *ast.Program) (string, error) {
	v, err := e.ev.EvalProgram(prog)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Parse lexes and parses source without evaluating it, for callers that
// need the AST directly (the CLI's --dump-ast flag).
func (e *Engine) Parse(source, file string) (*ast.Program, error) {
	e.ev.Source = source
	e.ev.File = file
	l := lexer.New(source)
	p := parser.New(l, source)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	return prog, nil
}

// IsIncompleteInput reports whether source is a valid-so-far prefix that a
// REPL should keep reading rather than reject outright (spec.md §4.2).
func IsIncompleteInput(source string) bool {
	l := lexer.New(source)
	p := parser.New(l, source)
	p.ParseProgram()
	return parser.IsIncompleteInput(p.Errors(), source)
}

// Reset clears every environment binding and every handle (spec.md §6),
// then binds the constants pi, e and i again.
func (e *Engine) Reset() {
	stats := e.ev.Handles.Stats()
	e.log.Debug("engine reset", "handles_active", stats.Active, "handles_allocated", stats.TotalAllocated)
	e.ev.Reset()
}

// ListVariables returns the current top-level bindings (spec.md §6).
func (e *Engine) ListVariables() []string {
	return e.ev.Global.Names()
}

// HandleStats reports the handle manager's active/allocated/freed counters,
// the leak-detection diagnostic of spec.md §5.
func (e *Engine) HandleStats() handle.Stats {
	return e.ev.Handles.Stats()
}

// LastErrorDetail renders err with full source-span context if it is a
// *soerr.Error, or its plain message otherwise — the "retrievable
// last-error string" spec.md §6 requires of the handle ABI.
func LastErrorDetail(err error) string {
	if se, ok := err.(*soerr.Error); ok {
		return se.Format(false)
	}
	return err.Error()
}
