package render

import (
	"strings"
	"testing"

	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/token"
)

func TestPrettyIncludesTagAndMessage(t *testing.T) {
	err := soerr.New(soerr.Type, "expected Number, got String")
	got := Pretty(err)
	if !strings.Contains(got, "Type") {
		t.Fatalf("expected the Kind tag in the output, got %q", got)
	}
	if !strings.Contains(got, "expected Number, got String") {
		t.Fatalf("expected the message in the output, got %q", got)
	}
}

func TestPrettyWithPositionIncludesSourceLineAndCaret(t *testing.T) {
	source := "1 + \n"
	err := soerr.New(soerr.Parse, "unexpected end of input").At(token.Position{Line: 1, Column: 5}, source, "")
	got := Pretty(err)
	if !strings.Contains(got, "1 + ") {
		t.Fatalf("expected the offending source line in the output, got %q", got)
	}
	if !strings.Contains(got, "^") {
		t.Fatalf("expected a caret in the output, got %q", got)
	}
}

func TestPrettyWithSuggestionIncludesHint(t *testing.T) {
	err := soerr.New(soerr.Name, "unbound identifier 'sqrrt'").WithSuggestion("sqrt")
	got := Pretty(err)
	if !strings.Contains(got, "did you mean: sqrt?") {
		t.Fatalf("expected the suggestion hint in the output, got %q", got)
	}
}
