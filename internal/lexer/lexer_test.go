package lexer

import (
	"testing"

	"github.com/eddndev/achronyme-go/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `let x = 1 + 2.5 * 3i
do { x }
[1, 2, 3]
x[0:2] => x.field
"hello" 'world'
== != <= >= && || !
`

	expected := []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.PLUS, token.NUMBER, token.STAR, token.IMAGINARY,
		token.DO, token.LBRACE, token.IDENT, token.RBRACE,
		token.LBRACKET, token.NUMBER, token.COMMA, token.NUMBER, token.COMMA, token.NUMBER, token.RBRACKET,
		token.IDENT, token.LBRACKET, token.NUMBER, token.COLON, token.NUMBER, token.RBRACKET,
		token.ARROW, token.IDENT, token.DOT, token.IDENT,
		token.STRING, token.STRING,
		token.EQ, token.NEQ, token.LE, token.GE, token.AND, token.OR, token.NOT,
		token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Kind != want {
			t.Fatalf("token %d: got %s (%q), want %s", i, tok.Kind, tok.Literal, want)
		}
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	l := New("LET Let")
	for i := 0; i < 2; i++ {
		tok := l.NextToken()
		if tok.Kind != token.IDENT {
			t.Fatalf("token %d: expected IDENT for non-lowercase keyword spelling, got %s", i, tok.Kind)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	// An IMAGINARY token's literal is the numeric part without the trailing 'i'.
	tests := []struct {
		input   string
		kind    token.Kind
		literal string
	}{
		{"42", token.NUMBER, "42"},
		{"3.14", token.NUMBER, "3.14"},
		{"1e10", token.NUMBER, "1e10"},
		{"2.5e-3", token.NUMBER, "2.5e-3"},
		{"3i", token.IMAGINARY, "3"},
		{"2.5i", token.IMAGINARY, "2.5"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Errorf("%q: got kind %s, want %s", tt.input, tok.Kind, tt.kind)
		}
		if tok.Literal != tt.literal {
			t.Errorf("%q: got literal %q", tt.input, tok.Literal)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb" "c\"d"`)
	tok1 := l.NextToken()
	if tok1.Kind != token.STRING || tok1.Literal != "a\nb" {
		t.Fatalf("got %#v", tok1)
	}
	tok2 := l.NextToken()
	if tok2.Kind != token.STRING || tok2.Literal != `c"d` {
		t.Fatalf("got %#v", tok2)
	}
}

func TestComments(t *testing.T) {
	l := New("1 // a comment\n2")
	tok1 := l.NextToken()
	tok2 := l.NextToken()
	if tok1.Kind != token.NUMBER || tok1.Literal != "1" {
		t.Fatalf("got %#v", tok1)
	}
	if tok2.Kind != token.NUMBER || tok2.Literal != "2" {
		t.Fatalf("got %#v", tok2)
	}
}

func TestIllegalCharacterRecorded(t *testing.T) {
	l := New("1 $ 2")
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lex error for '$'")
	}
}

func TestMarkReset(t *testing.T) {
	l := New("1 2 3")
	l.NextToken()
	state := l.Mark()
	second := l.NextToken()
	l.Reset(state)
	replay := l.NextToken()
	if second.Literal != replay.Literal {
		t.Fatalf("replay mismatch: %q vs %q", second.Literal, replay.Literal)
	}
}

func TestAllHelper(t *testing.T) {
	toks, errs := All("1 + 2")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("expected trailing EOF token, got %v", toks)
	}
}
