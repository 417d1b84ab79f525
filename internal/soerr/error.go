// Package soerr implements the closed error-kind taxonomy and source-span
// aware diagnostic formatting shared by every stage of the engine (lexer,
// parser, evaluator, kernels). The line-gutter-plus-caret rendering is
// adapted from the teacher's internal/errors package.
package soerr

import (
	"fmt"
	"strings"

	"github.com/eddndev/achronyme-go/internal/token"
)

// Kind is the closed set of error categories defined by the specification.
type Kind int

const (
	Lex Kind = iota
	Parse
	NotInitialized
	Name
	Type
	Shape
	Arity
	Domain
	Singular
	NotPositiveDefinite
	Infeasible
	Unbounded
	MaxIterations
	Convergence
	Disposed
	IO
)

var kindNames = [...]string{
	"Lex", "Parse", "NotInitialized", "Name", "Type", "Shape", "Arity",
	"Domain", "Singular", "NotPositiveDefinite", "Infeasible", "Unbounded",
	"MaxIterations", "Convergence", "Disposed", "IO",
}

// String returns the tag used on the host surface (spec.md §7).
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Error is the engine-wide error type. It carries a Kind tag, a human
// message, the offending source span (if one was available), and an
// optional "did you mean" suggestion for Name errors.
type Error struct {
	Kind       Kind
	Message    string
	Source     string
	File       string
	Pos        token.Position
	HasPos     bool
	Suggestion string
}

// New creates a positionless error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Newf is an alias for New kept for call-site readability at kernel sites
// that always format.
func Newf(kind Kind, format string, args ...any) *Error { return New(kind, format, args...) }

// At attaches a source span to the error, returning the same error for
// chaining at the construction site.
func (e *Error) At(pos token.Position, source, file string) *Error {
	e.Pos = pos
	e.HasPos = true
	e.Source = source
	e.File = file
	return e
}

// WithSuggestion attaches a "did you mean" hint (used by Name errors).
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Error implements the error interface with the plain, uncolored rendering.
func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic with a line-gutter and caret pointing at
// the offending column, the same two-line shape as the teacher's
// CompilerError.Format. When color is true ANSI codes highlight the tag and
// caret; callers that want a bordered terminal box instead should use
// soerr/render.Pretty, which layers lipgloss on top of this plain rendering.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	tag := fmt.Sprintf("[%s]", e.Kind)
	if color {
		sb.WriteString("\033[1;31m")
		sb.WriteString(tag)
		sb.WriteString("\033[0m")
	} else {
		sb.WriteString(tag)
	}
	sb.WriteByte(' ')

	if e.HasPos {
		if e.File != "" {
			fmt.Fprintf(&sb, "%s:%d:%d: ", e.File, e.Pos.Line, e.Pos.Column)
		} else {
			fmt.Fprintf(&sb, "line %d:%d: ", e.Pos.Line, e.Pos.Column)
		}
	}
	sb.WriteString(e.Message)

	if e.HasPos {
		if line := sourceLine(e.Source, e.Pos.Line); line != "" {
			gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
			sb.WriteByte('\n')
			sb.WriteString(gutter)
			sb.WriteString(line)
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", len(gutter)+max0(e.Pos.Column-1)))
			sb.WriteString("^")
		}
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&sb, "\n  did you mean '%s'?", e.Suggestion)
	}

	return sb.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func sourceLine(source string, line int) string {
	if source == "" || line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	se, ok := err.(*Error)
	return ok && se.Kind == kind
}
