package parser

import (
	"testing"

	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := New(l, src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"2 ^ 3 ^ 2", "(2 ^ (3 ^ 2))"},
		{"-1 + 2", "((-1) + 2)"},
		{"1 < 2 && 3 > 2", "((1 < 2) && (3 > 2))"},
		{"a.b[0]", "a.b[0]"},
	}
	for _, tt := range tests {
		prog := parseProgram(t, tt.src)
		if len(prog.Statements) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tt.src, len(prog.Statements))
		}
		got := prog.Statements[0].String()
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestLetAndDoBlock(t *testing.T) {
	prog := parseProgram(t, `let x = 5
do { let y = x + 1; y * 2 }`)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*ast.LetStmt); !ok {
		t.Fatalf("expected LetStmt, got %T", prog.Statements[0])
	}
}

func TestLambdaAndCall(t *testing.T) {
	prog := parseProgram(t, `let sq = x => x * x
sq(4)`)
	let, ok := prog.Statements[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected LetStmt, got %T", prog.Statements[0])
	}
	if _, ok := let.Value.(*ast.LambdaExpr); !ok {
		t.Fatalf("expected LambdaExpr, got %T", let.Value)
	}
	exprStmt, ok := prog.Statements[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", prog.Statements[1])
	}
	if _, ok := exprStmt.X.(*ast.CallExpr); !ok {
		t.Fatalf("expected CallExpr, got %T", exprStmt.X)
	}
}

func TestVectorAndMatrixLiterals(t *testing.T) {
	prog := parseProgram(t, `[1, 2, 3]
[[1, 2], [3, 4]]`)
	if _, ok := prog.Statements[0].(*ast.ExprStmt).X.(*ast.VectorLit); !ok {
		t.Fatalf("expected VectorLit, got %T", prog.Statements[0].(*ast.ExprStmt).X)
	}
	if _, ok := prog.Statements[1].(*ast.ExprStmt).X.(*ast.MatrixLit); !ok {
		t.Fatalf("expected MatrixLit, got %T", prog.Statements[1].(*ast.ExprStmt).X)
	}
}

func TestIndexAndSlice(t *testing.T) {
	prog := parseProgram(t, `v[1, 2]
v[0:3]`)
	idx, ok := prog.Statements[0].(*ast.ExprStmt).X.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected IndexExpr, got %T", prog.Statements[0].(*ast.ExprStmt).X)
	}
	if idx.Index2 == nil {
		t.Fatalf("expected a 2-index matrix access")
	}
	slice, ok := prog.Statements[1].(*ast.ExprStmt).X.(*ast.IndexExpr)
	if !ok || !slice.IsSlice {
		t.Fatalf("expected a slice IndexExpr, got %#v", prog.Statements[1])
	}
}

func TestIfExpr(t *testing.T) {
	prog := parseProgram(t, `if x > 0 { 1 } else { -1 }`)
	ifExpr, ok := prog.Statements[0].(*ast.ExprStmt).X.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected IfExpr, got %T", prog.Statements[0].(*ast.ExprStmt).X)
	}
	if ifExpr.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestImportStmt(t *testing.T) {
	prog := parseProgram(t, `import { fft, conv } from "dsp"`)
	imp, ok := prog.Statements[0].(*ast.ImportStmt)
	if !ok {
		t.Fatalf("expected ImportStmt, got %T", prog.Statements[0])
	}
	if len(imp.Names) != 2 {
		t.Fatalf("expected 2 imported names, got %d", len(imp.Names))
	}
}

func TestParseErrorRecoversPosition(t *testing.T) {
	l := lexer.New("1 + ")
	p := New(l, "1 + ")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for incomplete expression")
	}
}

func TestIsIncompleteInput(t *testing.T) {
	l := lexer.New("1 + ")
	p := New(l, "1 + ")
	p.ParseProgram()
	if !IsIncompleteInput(p.Errors(), "1 + ") {
		t.Fatal("expected trailing binary operator to be reported as incomplete input")
	}
}
