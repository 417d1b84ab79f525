// Package parser implements a recursive-descent / Pratt parser that turns a
// token stream into a SOC AST (spec.md §4.2). The cursor/lookahead shape
// (curToken/peekToken, expectPeek) is adapted from the teacher's
// internal/parser package.
package parser

import (
	"strconv"

	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/lexer"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/token"
)

// precedence levels, low to high (spec.md §4.2).
const (
	_ int = iota
	lowest
	orPrec
	andPrec
	comparePrec
	additivePrec
	multiplicativePrec
	matmulPrec
	powerPrec
	unaryPrec
	callPrec
)

var precedences = map[token.Kind]int{
	token.OR:      orPrec,
	token.AND:     andPrec,
	token.EQ:      comparePrec,
	token.NEQ:     comparePrec,
	token.LT:      comparePrec,
	token.LE:      comparePrec,
	token.GT:      comparePrec,
	token.GE:      comparePrec,
	token.PLUS:    additivePrec,
	token.MINUS:   additivePrec,
	token.STAR:    multiplicativePrec,
	token.SLASH:   multiplicativePrec,
	token.PERCENT: multiplicativePrec,
	token.AT:      matmulPrec,
	token.CARET:   powerPrec,
	token.LPAREN:  callPrec,
	token.LBRACKET: callPrec,
	token.DOT:     callPrec,
}

// Parser consumes tokens from a Lexer and builds an AST.
type Parser struct {
	l      *lexer.Lexer
	source string

	curToken  token.Token
	peekToken token.Token

	errors []*soerr.Error

	prefixFns map[token.Kind]func() ast.Expr
	infixFns  map[token.Kind]func(ast.Expr) ast.Expr
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer, source string) *Parser {
	p := &Parser{l: l, source: source}
	p.prefixFns = map[token.Kind]func() ast.Expr{
		token.NUMBER:    p.parseNumberLit,
		token.IMAGINARY: p.parseImaginaryLit,
		token.STRING:    p.parseStringLit,
		token.TRUE:      p.parseBoolLit,
		token.FALSE:     p.parseBoolLit,
		token.IDENT:     p.parseIdentifier,
		token.MINUS:     p.parseUnary,
		token.NOT:       p.parseUnary,
		token.LPAREN:    p.parseParenOrLambda,
		token.LBRACKET:  p.parseBracketLit,
		token.LBRACE:    p.parseRecordLit,
		token.DO:        p.parseDoBlock,
		token.IF:        p.parseIfExpr,
	}
	p.infixFns = map[token.Kind]func(ast.Expr) ast.Expr{
		token.PLUS: p.parseBinary, token.MINUS: p.parseBinary,
		token.STAR: p.parseBinary, token.SLASH: p.parseBinary, token.PERCENT: p.parseBinary,
		token.AT: p.parseBinary, token.CARET: p.parseBinary,
		token.EQ: p.parseBinary, token.NEQ: p.parseBinary,
		token.LT: p.parseBinary, token.LE: p.parseBinary, token.GT: p.parseBinary, token.GE: p.parseBinary,
		token.AND: p.parseBinary, token.OR: p.parseBinary,
		token.LPAREN:   p.parseCall,
		token.LBRACKET: p.parseIndex,
		token.DOT:      p.parseField,
	}

	// an edge literal `a -> b` / `a <> b` is recognized at the statement
	// level after a primary has been parsed (see parseExprOrEdgeOrAssign),
	// since -> / <> sit below every arithmetic operator and would otherwise
	// never be reached by the Pratt loop.

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []*soerr.Error { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curToken.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekToken.Kind == k }

func (p *Parser) expect(k token.Kind) bool {
	if p.peekIs(k) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken.Pos, "expected %s, got %s", k, p.peekToken.Kind)
	return false
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	e := soerr.New(soerr.Parse, format, args...).At(pos, p.source, "")
	p.errors = append(p.errors, e)
}

// atEOF reports whether the parser has reached end of input — used by
// IsIncomplete to tell a REPL "need more input" from "this is just wrong".
func (p *Parser) atEOF() bool { return p.curToken.Kind == token.EOF || p.peekToken.Kind == token.EOF }

// IsIncompleteInput reports whether the given parse errors represent an
// incomplete-but-otherwise-valid prefix — the last error's offset sits at
// (or past) the end of the source — the signal a REPL front end uses to
// ask for another line rather than reporting a hard failure (spec.md §4.2).
func IsIncompleteInput(errs []*soerr.Error, source string) bool {
	if len(errs) == 0 {
		return false
	}
	last := errs[len(errs)-1]
	return last.HasPos && last.Pos.Offset >= len(source)
}

// ---- program / statements ----

// ParseProgram parses the full token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMI) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
		if p.curIs(token.SEMI) {
			p.nextToken()
		}
	}
	return prog
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Kind {
	case token.LET:
		return p.parseLetStmt()
	case token.IMPORT:
		return p.parseImportStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	pos := p.curToken.Pos
	if !p.expect(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	if !p.expect(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(lowest)
	return &ast.LetStmt{Position: pos, Name: name, Value: value}
}

func (p *Parser) parseImportStmt() ast.Stmt {
	pos := p.curToken.Pos
	if !p.expect(token.LBRACE) {
		return nil
	}
	var names []string
	p.nextToken()
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.IDENT) {
			names = append(names, p.curToken.Literal)
		}
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expect(token.FROM) {
		return nil
	}
	if !p.expect(token.STRING) {
		return nil
	}
	module := p.curToken.Literal
	return &ast.ImportStmt{Position: pos, Names: names, Module: module}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.nextToken()
	value := p.parseExpression(lowest)
	return &ast.ReturnStmt{Position: pos, Value: value}
}

// parseExprOrAssignStmt parses an expression; if a bare identifier/index/field
// expression is immediately followed by `=`, it becomes an assignment
// instead (spec.md §4.3 reassignment semantics). An edge literal
// (`a -> b {...}` / `a <> b {...}`) is also recognized here, since -> / <>
// are syntactic forms rather than binary operators in the precedence table.
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	pos := p.curToken.Pos
	expr := p.parseExpression(lowest)

	if p.peekIs(token.RARROW) || p.peekIs(token.DIAMOND) {
		directed := p.peekToken.Kind == token.RARROW
		p.nextToken() // consume -> or <>
		p.nextToken()
		to := p.parseExpression(additivePrec)
		var props *ast.RecordLit
		if p.peekIs(token.LBRACE) {
			p.nextToken()
			props = p.parseRecordLit().(*ast.RecordLit)
		}
		expr = &ast.EdgeLit{Position: pos, From: expr, To: to, Directed: directed, Props: props}
	}

	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(lowest)
		return &ast.AssignStmt{Position: pos, Target: expr, Value: value}
	}

	return &ast.ExprStmt{Position: pos, X: expr}
}

// ---- expressions (Pratt) ----

func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix, ok := p.prefixFns[p.curToken.Kind]
	if !ok {
		if p.curIs(token.EOF) {
			p.errorf(p.curToken.Pos, "unexpected end of input")
		} else {
			p.errorf(p.curToken.Pos, "unexpected token %s", p.curToken.Kind)
		}
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMI) && precedence < p.peekPrecedence() {
		// A '[' that starts a new line begins a new statement, not an index.
		if p.peekIs(token.LBRACKET) && p.peekToken.Pos.Line > p.curToken.Pos.Line {
			return left
		}
		infix, ok := p.infixFns[p.peekToken.Kind]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Kind]; ok {
		return pr
	}
	return lowest
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Kind]; ok {
		return pr
	}
	return lowest
}

func (p *Parser) parseNumberLit() ast.Expr {
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(p.curToken.Pos, "invalid number literal %q", p.curToken.Literal)
	}
	return &ast.NumberLit{Position: p.curToken.Pos, Value: v}
}

func (p *Parser) parseImaginaryLit() ast.Expr {
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(p.curToken.Pos, "invalid number literal %q", p.curToken.Literal)
	}
	return &ast.ComplexLit{Position: p.curToken.Pos, Imag: v}
}

func (p *Parser) parseStringLit() ast.Expr {
	return &ast.StringLit{Position: p.curToken.Pos, Value: p.curToken.Literal}
}

func (p *Parser) parseBoolLit() ast.Expr {
	return &ast.BoolLit{Position: p.curToken.Pos, Value: p.curToken.Kind == token.TRUE}
}

func (p *Parser) parseIdentifier() ast.Expr {
	if p.peekIs(token.ARROW) {
		pos, name := p.curToken.Pos, p.curToken.Literal
		p.nextToken() // consume the parameter name
		p.nextToken() // consume '=>'
		body := p.parseExpression(lowest)
		return &ast.LambdaExpr{Position: pos, Params: []string{name}, Body: body}
	}
	return &ast.Identifier{Position: p.curToken.Pos, Name: p.curToken.Literal}
}

func (p *Parser) parseUnary() ast.Expr {
	pos := p.curToken.Pos
	op := p.curToken.Kind
	p.nextToken()
	right := p.parseExpression(unaryPrec)
	return &ast.UnaryExpr{Position: pos, Op: op, Right: right}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	pos := p.curToken.Pos
	op := p.curToken.Kind
	prec := p.curPrecedence()
	p.nextToken()
	// `^` is right-associative (spec.md §4.2): parse the RHS at one level
	// lower so a chain like 2^3^2 nests as 2^(3^2).
	rightPrec := prec
	if op == token.CARET {
		rightPrec = prec - 1
	}
	right := p.parseExpression(rightPrec)
	return &ast.BinaryExpr{Position: pos, Op: op, Left: left, Right: right}
}

// parseParenOrLambda disambiguates `(expr)` from `(p, ...) => expr` by
// attempting the lambda-parameter-list parse first and backtracking on
// failure (spec.md §4.2).
func (p *Parser) parseParenOrLambda() ast.Expr {
	pos := p.curToken.Pos
	if lambda, ok := p.tryParseLambda(pos); ok {
		return lambda
	}
	p.nextToken() // consume '('
	expr := p.parseExpression(lowest)
	if !p.expect(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) tryParseLambda(pos token.Position) (ast.Expr, bool) {
	mark := p.l.Mark()
	savedCur, savedPeek := p.curToken, p.peekToken
	savedErrCount := len(p.errors)

	restore := func() {
		p.l.Reset(mark)
		p.curToken, p.peekToken = savedCur, savedPeek
		p.errors = p.errors[:savedErrCount]
	}

	p.nextToken() // consume '('
	var params []string
	if !p.curIs(token.RPAREN) {
		for {
			if !p.curIs(token.IDENT) {
				restore()
				return nil, false
			}
			params = append(params, p.curToken.Literal)
			p.nextToken()
			if p.curIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	}
	if !p.curIs(token.RPAREN) {
		restore()
		return nil, false
	}
	p.nextToken() // consume ')'
	if !p.curIs(token.ARROW) {
		restore()
		return nil, false
	}
	p.nextToken() // consume '=>'
	body := p.parseExpression(lowest)
	return &ast.LambdaExpr{Position: pos, Params: params, Body: body}, true
}

// parseBracketLit parses `[...]`, disambiguating a vector literal from a
// matrix literal by checking whether the first element is itself a vector
// literal (spec.md §4.2 / §3 rank inference).
func (p *Parser) parseBracketLit() ast.Expr {
	pos := p.curToken.Pos
	p.nextToken() // consume '['

	if p.curIs(token.RBRACKET) {
		return &ast.VectorLit{Position: pos}
	}

	first := p.parseExpression(lowest)
	if firstVec, isVec := first.(*ast.VectorLit); isVec && p.peekIs(token.COMMA) {
		rows := []*ast.VectorLit{firstVec}
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			row := p.parseExpression(lowest)
			rv, ok := row.(*ast.VectorLit)
			if !ok {
				p.errorf(row.Pos(), "matrix literal rows must be vector literals")
				break
			}
			rows = append(rows, rv)
		}
		p.expect(token.RBRACKET)
		return &ast.MatrixLit{Position: pos, Rows: rows}
	}

	elements := []ast.Expr{first}
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elements = append(elements, p.parseExpression(lowest))
	}
	p.expect(token.RBRACKET)
	return &ast.VectorLit{Position: pos, Elements: elements}
}

func (p *Parser) parseRecordLit() ast.Expr {
	pos := p.curToken.Pos
	p.nextToken() // consume '{'
	rec := &ast.RecordLit{Position: pos}
	for !p.curIs(token.RBRACE) {
		var key string
		switch p.curToken.Kind {
		case token.IDENT:
			key = p.curToken.Literal
		case token.STRING:
			key = p.curToken.Literal
		default:
			p.errorf(p.curToken.Pos, "expected record key, got %s", p.curToken.Kind)
			return rec
		}
		if !p.expect(token.COLON) {
			return rec
		}
		p.nextToken()
		val := p.parseExpression(lowest)
		rec.Keys = append(rec.Keys, key)
		rec.Values = append(rec.Values, val)
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return rec
}

// parseDoBlock parses `do { stmts; expr }`; curToken is the `do` keyword.
func (p *Parser) parseDoBlock() ast.Expr {
	pos := p.curToken.Pos
	if !p.expect(token.LBRACE) {
		return nil
	}
	return p.parseBraceBody(pos)
}

// parseBraceBody parses the body of a `{ stmts; expr }` block; curToken is
// the opening '{'. Shared by do-blocks and if/else branches.
func (p *Parser) parseBraceBody(pos token.Position) ast.Expr {
	p.nextToken()
	block := &ast.DoBlock{Position: pos}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.SEMI) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		// The final bare expression statement (not followed by ';') is the
		// block's result value, not a discarded statement.
		if es, ok := stmt.(*ast.ExprStmt); ok && !p.peekIs(token.SEMI) {
			p.nextToken()
			block.Result = es.X
			break
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
		if p.curIs(token.SEMI) {
			p.nextToken()
		}
	}
	if !p.curIs(token.RBRACE) {
		p.errorf(p.curToken.Pos, "expected %s, got %s", token.RBRACE, p.curToken.Kind)
	}
	return block
}

// parseIfExpr parses `if cond { thenBranch } [else { elseBranch } | else if ...]`
// (spec.md §4.2; `then`/`else` are not reserved words other than `else`
// itself — branches are always brace blocks, reusing the do-block grammar).
func (p *Parser) parseIfExpr() ast.Expr {
	pos := p.curToken.Pos
	p.nextToken()
	cond := p.parseExpression(lowest)

	if !p.expect(token.LBRACE) {
		return &ast.IfExpr{Position: pos, Cond: cond}
	}
	thenExpr := p.parseBraceBody(p.curToken.Pos)

	var elseExpr ast.Expr
	if p.peekIs(token.ELSE) {
		p.nextToken()
		if p.peekIs(token.IF) {
			p.nextToken()
			elseExpr = p.parseIfExpr()
		} else if p.expect(token.LBRACE) {
			elseExpr = p.parseBraceBody(p.curToken.Pos)
		}
	}
	return &ast.IfExpr{Position: pos, Cond: cond, Then: thenExpr, Else: elseExpr}
}

func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	pos := p.curToken.Pos
	args := p.parseCallArgs()
	return &ast.CallExpr{Position: pos, Callee: fn, Args: args}
}

// parseCallArgs parses a call's argument list. Plain positional arguments
// become ordinary ast.Expr entries; `name = expr` arguments (the
// simplex(c=[...], A=[...], b=[...], sense=+1) shape) are collected and
// folded into a single trailing ast.RecordLit, so a builtin sees exactly
// the Record-as-struct argument the rest of the registry already expects.
// Mixing the two forms in one call is allowed; named pairs may appear in
// any position among the positional arguments.
func (p *Parser) parseCallArgs() []ast.Expr {
	var args []ast.Expr
	var namedKeys []string
	var namedVals []ast.Expr
	var namedPos token.Position
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	if k, v, ok := p.tryParseNamedArg(); ok {
		namedPos = v.Pos()
		namedKeys = append(namedKeys, k)
		namedVals = append(namedVals, v)
	} else {
		args = append(args, p.parseExpression(lowest))
	}
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if k, v, ok := p.tryParseNamedArg(); ok {
			if len(namedKeys) == 0 {
				namedPos = v.Pos()
			}
			namedKeys = append(namedKeys, k)
			namedVals = append(namedVals, v)
		} else {
			args = append(args, p.parseExpression(lowest))
		}
	}
	if !p.expect(token.RPAREN) {
		return args
	}
	if len(namedKeys) > 0 {
		args = append(args, &ast.RecordLit{Position: namedPos, Keys: namedKeys, Values: namedVals})
	}
	return args
}

// tryParseNamedArg recognizes a `name = expr` call argument. The parser
// must be positioned on the would-be name token; on success it leaves the
// parser on the last token of expr, matching parseExpression's convention.
func (p *Parser) tryParseNamedArg() (string, ast.Expr, bool) {
	if !p.curIs(token.IDENT) || !p.peekIs(token.ASSIGN) {
		return "", nil, false
	}
	name := p.curToken.Literal
	p.nextToken() // consume IDENT, cur = ASSIGN
	p.nextToken() // consume ASSIGN, cur = first token of expr
	val := p.parseExpression(lowest)
	return name, val, true
}

// parseIndex parses `v[i]`, `m[i, j]`, and `v[a:b]` (spec.md §4.3).
func (p *Parser) parseIndex(obj ast.Expr) ast.Expr {
	pos := p.curToken.Pos
	p.nextToken()

	if p.curIs(token.COLON) {
		p.nextToken()
		to := p.parseExpression(lowest)
		p.expect(token.RBRACKET)
		return &ast.IndexExpr{Position: pos, Object: obj, IsSlice: true, SliceTo: to}
	}

	first := p.parseExpression(lowest)

	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		to := p.parseExpression(lowest)
		p.expect(token.RBRACKET)
		return &ast.IndexExpr{Position: pos, Object: obj, Index: first, IsSlice: true, SliceTo: to}
	}

	if p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		second := p.parseExpression(lowest)
		p.expect(token.RBRACKET)
		return &ast.IndexExpr{Position: pos, Object: obj, Index: first, Index2: second}
	}

	p.expect(token.RBRACKET)
	return &ast.IndexExpr{Position: pos, Object: obj, Index: first}
}

func (p *Parser) parseField(obj ast.Expr) ast.Expr {
	pos := p.curToken.Pos
	if !p.expect(token.IDENT) {
		return obj
	}
	return &ast.FieldExpr{Position: pos, Object: obj, Name: p.curToken.Literal}
}
