package achronyme

import (
	"os"
	"path/filepath"

	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/lexer"
	"github.com/eddndev/achronyme-go/internal/parser"
)

// NewFileImportResolver builds an ImportResolver that loads "module" as
// filepath.Join(baseDir, module+".soc") off disk — the host-provided file
// resolution spec.md §6 requires of `import { name, … } from "module"`; a
// WASM or browser host supplies its own resolver instead (e.g. backed by a
// virtual file map), which is exactly why file access lives here and not in
// the core evaluator.
func NewFileImportResolver(baseDir string) ImportResolver {
	return func(module string) (*ast.Program, error) {
		path := filepath.Join(baseDir, module+".soc")
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		l := lexer.New(string(src))
		p := parser.New(l, string(src))
		prog := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			return nil, errs[0]
		}
		return prog, nil
	}
}
