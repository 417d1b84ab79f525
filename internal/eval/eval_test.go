package eval

import (
	"testing"

	"github.com/eddndev/achronyme-go/internal/lexer"
	"github.com/eddndev/achronyme-go/internal/parser"
	"github.com/eddndev/achronyme-go/internal/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse error for %q: %v", src, errs)
	}
	e := New()
	v, err := e.EvalProgram(prog)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return v
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse error for %q: %v", src, errs)
	}
	e := New()
	_, err := e.EvalProgram(prog)
	if err == nil {
		t.Fatalf("expected an evaluation error for %q, got none", src)
	}
	return err
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"2 ^ 10", "1024"},
		{"7 % 3", "1"},
		{"10 / 4", "2.5"},
		{"-5 + 3", "-2"},
		{"1 == 1 && 2 != 3", "true"},
		{"pi > 3", "true"},
	}
	for _, tt := range tests {
		got := run(t, tt.src).String()
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestLetAndAssign(t *testing.T) {
	got := run(t, `let x = 10
x = x + 5
x`).String()
	if got != "15" {
		t.Errorf("got %q, want 15", got)
	}
}

func TestVectorArithmetic(t *testing.T) {
	got := run(t, "[1, 2, 3] + [4, 5, 6]").String()
	if got != "[5, 7, 9]" {
		t.Errorf("got %q", got)
	}
}

func TestMatrixMultiply(t *testing.T) {
	got := run(t, "[[1, 2], [3, 4]] @ [[5, 6], [7, 8]]").String()
	if got != "[[19, 22],\n [43, 50]]" {
		t.Errorf("got %q", got)
	}
}

func TestClosureAndRecursion(t *testing.T) {
	got := run(t, `let fact = n => if n <= 1 { 1 } else { n * fact(n - 1) }
fact(10)`).String()
	if got != "3628800" {
		t.Errorf("got %q, want 3628800", got)
	}
}

func TestTailCallDoesNotOverflow(t *testing.T) {
	got := run(t, `let loop = (n, acc) => if n == 0 { acc } else { loop(n - 1, acc + 1) }
loop(200000, 0)`).String()
	if got != "200000" {
		t.Errorf("got %q, want 200000", got)
	}
}

func TestRecordFieldAccess(t *testing.T) {
	got := run(t, `let r = { a: 1, b: 2 }
r.a + r.b`).String()
	if got != "3" {
		t.Errorf("got %q", got)
	}
}

func TestIndexingAndSlicing(t *testing.T) {
	got := run(t, `let v = [10, 20, 30, 40]
v[1:3]`).String()
	if got != "[20, 30]" {
		t.Errorf("got %q", got)
	}
}

func TestMatrixDoubleIndex(t *testing.T) {
	got := run(t, `let m = [[1, 2], [3, 4]]
m[1, 0]`).String()
	if got != "3" {
		t.Errorf("got %q", got)
	}
}

func TestMutatingIndexAssign(t *testing.T) {
	got := run(t, `let v = [1, 2, 3]
v[1] = 99
v`).String()
	if got != "[1, 99, 3]" {
		t.Errorf("got %q", got)
	}
}

func TestUnboundIdentifierError(t *testing.T) {
	err := runErr(t, "undefined_name_xyz")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestDoBlockScoping(t *testing.T) {
	got := run(t, `let x = 1
do { let x = 2; x }`).String()
	if got != "2" {
		t.Errorf("got %q, want the inner binding to shadow the outer one", got)
	}
}

func TestComplexArithmetic(t *testing.T) {
	got := run(t, "(1 + 2i) + (3 + 4i)").String()
	if got != "4+6i" {
		t.Errorf("got %q", got)
	}
}
