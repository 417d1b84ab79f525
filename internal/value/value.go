// Package value implements the Value sum type of spec.md §3: the single
// tagged-union of runtime data that flows through the evaluator, the
// function registry, and the handle manager. The one-struct-per-variant
// shape with Type()/String() methods is adapted from the teacher's
// internal/interp/value.go.
package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/eddndev/achronyme-go/internal/ast"
)

// Value is the interface implemented by every runtime variant.
type Value interface {
	// Type returns the variant's tag name (e.g. "Number", "Tensor").
	Type() string
	// String returns the canonical host-facing textual form (spec.md §6).
	String() string
}

// Number is a 64-bit IEEE-754 float.
type Number float64

func (Number) Type() string { return "Number" }
func (n Number) String() string {
	return formatFloat(float64(n))
}

// Bool is a boolean.
type Bool bool

func (Bool) Type() string { return "Bool" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// String is UTF-8 text.
type String string

func (String) Type() string   { return "String" }
func (s String) String() string { return string(s) }

// Complex holds two 64-bit float components.
type Complex complex128

func (Complex) Type() string { return "Complex" }
func (c Complex) String() string {
	return formatComplex(complex128(c))
}

// Record maps string keys to Values; display is sorted by key (spec.md §3).
type Record struct {
	Fields map[string]Value
}

func NewRecord() *Record { return &Record{Fields: map[string]Value{}} }

func (*Record) Type() string { return "Record" }
func (r *Record) String() string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, r.Fields[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Edge is the graph primitive: two endpoints, a directedness flag, and a
// property record (spec.md §3).
type Edge struct {
	From, To string
	Directed bool
	Props    *Record
}

func (*Edge) Type() string { return "Edge" }
func (e *Edge) String() string {
	arrow := "->"
	if !e.Directed {
		arrow = "<>"
	}
	s := fmt.Sprintf("%s %s %s", e.From, arrow, e.To)
	if e.Props != nil && len(e.Props.Fields) > 0 {
		s += " " + e.Props.String()
	}
	return s
}

// AsRecord renders an Edge as the Record value the spec requires it to be
// treated as ("its value is an Edge record", spec.md §4.3).
func (e *Edge) AsRecord() *Record {
	r := NewRecord()
	r.Fields["from"] = String(e.From)
	r.Fields["to"] = String(e.To)
	r.Fields["directed"] = Bool(e.Directed)
	if e.Props != nil {
		r.Fields["props"] = e.Props
	} else {
		r.Fields["props"] = NewRecord()
	}
	return r
}

// Env is the environment contract the evaluator and Function closures rely
// on; the concrete implementation lives in package runtime, which depends
// on this package (not the other way around) to avoid an import cycle.
type Env interface {
	Get(name string) (Value, bool)
	GetLocal(name string) (Value, bool)
	Define(name string, v Value)
	Assign(name string, v Value) bool
	NewChild() Env
	Names() []string
}

// Function is a first-class lexical closure: ordered parameter names, an
// AST body, and the Env captured at the point of the `=>` (spec.md §3/§4.3).
type Function struct {
	Name     string // empty for anonymous lambdas; used for error messages
	Params   []string
	Variadic bool
	Body     ast.Expr
	Captured Env
}

func (*Function) Type() string   { return "Function" }
func (*Function) String() string { return "<function>" }

// MutableRef is a shared, mutable cell (spec.md §3).
type MutableRef struct {
	Cell Value
}

func (*MutableRef) Type() string   { return "MutableRef" }
func (r *MutableRef) String() string { return r.Cell.String() }

// TailCall is an internal marker carrying a call in tail position; it must
// never escape the evaluator (spec.md §3 invariants).
type TailCall struct {
	Callee Value
	Args   []Value
}

func (*TailCall) Type() string   { return "TailCall" }
func (*TailCall) String() string { panic("soc: TailCall leaked to host surface") }

// EarlyReturn is an internal marker wrapping a `return` value as it
// propagates to the enclosing function boundary (spec.md §3/§4.3).
type EarlyReturn struct {
	Value Value
}

func (*EarlyReturn) Type() string   { return "EarlyReturn" }
func (*EarlyReturn) String() string { panic("soc: EarlyReturn leaked to host surface") }

// ---- formatting helpers ----

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	// Plain decimal for ordinary magnitudes; exponent form only for very
	// small or very large values.
	if a := math.Abs(f); a == 0 || (a >= 1e-4 && a < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	sign := "+"
	if im < 0 || math.Signbit(im) {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("%s%s%si", formatFloat(re), sign, formatFloat(im))
}

// Truthy implements "boolean context of a number is non-zero" and the
// analogous rule for every other variant (spec.md §4.3).
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case Number:
		return float64(x) != 0
	case String:
		return x != ""
	case *Tensor:
		return len(x.Data) != 0
	case nil:
		return false
	default:
		return true
	}
}
