package soerr

import (
	"strings"
	"testing"

	"github.com/eddndev/achronyme-go/internal/token"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(Type, "expected %s, got %s", "Number", "String")
	if err.Message != "expected Number, got String" {
		t.Fatalf("got %q", err.Message)
	}
	if err.Kind != Type {
		t.Fatalf("got kind %v, want Type", err.Kind)
	}
}

func TestErrorWithoutPositionHasNoGutter(t *testing.T) {
	err := New(Name, "unbound identifier 'x'")
	got := err.Error()
	if strings.Contains(got, "|") {
		t.Fatalf("expected no gutter line without a position, got %q", got)
	}
	if !strings.HasPrefix(got, "[Name] ") {
		t.Fatalf("expected the Kind tag as a prefix, got %q", got)
	}
}

func TestAtAttachesPositionAndRendersGutter(t *testing.T) {
	source := "let x = 1 +\n"
	err := New(Parse, "unexpected end of input").At(token.Position{Line: 1, Column: 12}, source, "")
	got := err.Error()
	if !strings.Contains(got, "line 1:12:") {
		t.Fatalf("expected a line:column prefix, got %q", got)
	}
	if !strings.Contains(got, source[:len(source)-1]) {
		t.Fatalf("expected the offending source line to be quoted, got %q", got)
	}
	if !strings.Contains(got, "^") {
		t.Fatalf("expected a caret, got %q", got)
	}
}

func TestAtWithFileNameUsesFileColonLineColon(t *testing.T) {
	err := New(Lex, "illegal character").At(token.Position{Line: 2, Column: 3}, "a\nb!\n", "main.soc")
	got := err.Error()
	if !strings.Contains(got, "main.soc:2:3:") {
		t.Fatalf("expected a file:line:column prefix, got %q", got)
	}
}

func TestWithSuggestionAppendsDidYouMean(t *testing.T) {
	err := New(Name, "unbound identifier 'sqrrt'").WithSuggestion("sqrt")
	got := err.Error()
	if !strings.Contains(got, "did you mean 'sqrt'?") {
		t.Fatalf("expected a suggestion hint, got %q", got)
	}
}

func TestFormatColorWrapsTagInANSI(t *testing.T) {
	err := New(Domain, "division by zero")
	plain := err.Format(false)
	colored := err.Format(true)
	if plain == colored {
		t.Fatal("expected colored and plain formatting to differ")
	}
	if !strings.Contains(colored, "\033[1;31m") {
		t.Fatalf("expected an ANSI escape in colored output, got %q", colored)
	}
}

func TestIsKindMatchesAndRejects(t *testing.T) {
	err := New(Shape, "shape mismatch")
	if !IsKind(err, Shape) {
		t.Fatal("expected IsKind to match Shape")
	}
	if IsKind(err, Type) {
		t.Fatal("expected IsKind to reject a different Kind")
	}
	if IsKind(nil, Shape) {
		t.Fatal("expected IsKind(nil, ...) to be false")
	}
}

func TestKindStringRoundTripsAllKinds(t *testing.T) {
	kinds := []Kind{
		Lex, Parse, NotInitialized, Name, Type, Shape, Arity, Domain,
		Singular, NotPositiveDefinite, Infeasible, Unbounded, MaxIterations,
		Convergence, Disposed, IO,
	}
	for _, k := range kinds {
		if k.String() == "Unknown" {
			t.Fatalf("expected %d to have a known name", k)
		}
	}
	if Kind(999).String() != "Unknown" {
		t.Fatal("expected an out-of-range Kind to stringify as Unknown")
	}
}
