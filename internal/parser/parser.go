// Package parser implements the Quill recursive descent parser.
//
// The parser keeps one token of lookahead (current) and the last consumed
// token (previous) and never backtracks. Every production returns its node
// and an error; the first failure in a region records one diagnostic and puts
// the parser in panic mode, which suppresses further diagnostics until a
// statement or declaration boundary is reached.
package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostic"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/position"
)

// Parser holds the state of one parse run.
type Parser struct {
	lexer    *lexer.Lexer
	filename string
	previous lexer.Token
	current  lexer.Token

	// braces counts the '{' consumed and not yet closed. depth counts the
	// recursive productions currently active.
	braces int
	depth  int

	panicking   bool
	hadError    bool
	diagnostics diagnostic.List
	maxErrors   int
}

// maxNesting bounds the recursion of expressions, types and blocks.
const maxNesting = 1000

// ParseError is returned by a failed production. Diagnostic is nil when the
// failure happened while the parser was already panicking.
type ParseError struct {
	Diagnostic *diagnostic.Diagnostic
}

func (e *ParseError) Error() string {
	if e.Diagnostic == nil {
		return "parse error"
	}
	return e.Diagnostic.Error()
}

func (e *ParseError) Unwrap() error {
	if e.Diagnostic == nil {
		return nil
	}
	return e.Diagnostic
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxErrors stops recording diagnostics after n of them. Zero means
// unlimited. Parsing and HadError are unaffected.
func WithMaxErrors(n int) Option {
	return func(p *Parser) { p.maxErrors = n }
}

// New creates a parser reading tokens from l.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		lexer:    l,
		filename: l.Filename(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.current = l.NextToken()
	return p
}

// HadError reports whether any syntax or lexical error occurred, including
// ones not recorded because of the error limit.
func (p *Parser) HadError() bool { return p.hadError }

// Diagnostics returns the diagnostics recorded so far.
func (p *Parser) Diagnostics() diagnostic.List { return p.diagnostics }

// Parse parses a whole file. The program is always returned; declarations
// that failed to parse appear as *ast.BadDeclaration.
func (p *Parser) Parse() (*ast.Program, diagnostic.List) {
	prog := &ast.Program{Filename: p.filename}
	start := p.current.Span

	for !p.check(lexer.TokenEOF) {
		declStart := p.current.Span
		base := p.braces
		decl, err := p.parseDeclaration()
		if err != nil {
			p.synchronizeDeclaration(base)
			decl = &ast.BadDeclaration{Span: p.spanFrom(declStart)}
		}
		p.panicking = false
		prog.Declarations = append(prog.Declarations, decl)
	}

	prog.Span = position.Span{Start: start.Start, End: p.current.Span.End}
	return prog, p.diagnostics
}

// ParseExpression parses a single expression that must span the whole input.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.TokenEOF) {
		return nil, p.errorAtCurrent(diagnostic.ErrExpectedEndOfStatement)
	}
	return expr, nil
}

// ParseFile parses src as the contents of filename.
func ParseFile(filename, src string, opts ...Option) (*ast.Program, diagnostic.List) {
	return New(lexer.NewWithFilename(src, filename), opts...).Parse()
}

// ParseExpr parses src as a single expression. The error, if any, is a
// diagnostic.List.
func ParseExpr(src string) (ast.Expression, error) {
	p := New(lexer.New(src))
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, p.diagnostics.Err()
	}
	return expr, nil
}

// ===== Token primitives =====

func (p *Parser) advance() {
	switch p.current.Type {
	case lexer.TokenLBrace:
		p.braces++
	case lexer.TokenRBrace:
		if p.braces > 0 {
			p.braces--
		}
	}
	p.previous = p.current
	if p.current.Type != lexer.TokenEOF {
		p.current = p.lexer.NextToken()
	}
}

func (p *Parser) check(tt lexer.TokenType) bool { return p.current.Type == tt }

func (p *Parser) checkAny(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.current.Type == tt {
			return true
		}
	}
	return false
}

// match consumes the current token if it has type tt.
func (p *Parser) match(tt lexer.TokenType) bool {
	if !p.check(tt) {
		return false
	}
	p.advance()
	return true
}

// expect consumes and returns a token of type tt, or reports code. A pending
// lexical error or end of input is reported in preference to code.
func (p *Parser) expect(tt lexer.TokenType, code diagnostic.Code) (lexer.Token, error) {
	if p.check(tt) {
		p.advance()
		return p.previous, nil
	}
	return p.current, p.errorAtCurrent(code)
}

// enter records one more level of nesting and fails past maxNesting. Every
// call is paired with a deferred leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxNesting {
		return p.errorAt(p.current, diagnostic.ErrNestingTooDeep)
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

func (p *Parser) spanFrom(start position.Span) position.Span {
	if p.previous.Span.End.Offset < start.Start.Offset {
		return start
	}
	return position.Span{Start: start.Start, End: p.previous.Span.End}
}

// ===== Error reporting =====

func (p *Parser) errorAtCurrent(code diagnostic.Code) error {
	switch p.current.Type {
	case lexer.TokenError:
		code = p.current.Reason
	case lexer.TokenEOF:
		code = diagnostic.ErrUnexpectedEOF
	}
	return p.errorAt(p.current, code)
}

// errorAt records a diagnostic for tok unless the parser is panicking, and
// enters panic mode.
func (p *Parser) errorAt(tok lexer.Token, code diagnostic.Code) error {
	p.hadError = true
	if p.panicking {
		return &ParseError{}
	}
	p.panicking = true

	text, isLiteral := describe(tok)
	d := diagnostic.New(code, tok.Span, text, isLiteral)
	if p.maxErrors == 0 || len(p.diagnostics) < p.maxErrors {
		p.diagnostics.Add(d)
	}
	return &ParseError{Diagnostic: d}
}

// describe returns the text quoted for tok in a diagnostic.
func describe(tok lexer.Token) (string, bool) {
	switch {
	case tok.Type.IsLiteral():
		return tok.Value(), true
	case tok.Type == lexer.TokenIdentifier:
		return tok.Text, false
	case tok.Type == lexer.TokenError:
		if len(tok.Literal) > 16 {
			return tok.Literal[:16] + "...", false
		}
		return tok.Literal, false
	case tok.Type == lexer.TokenEOF:
		return "EOF", false
	}
	return tok.Type.Symbol(), false
}

// ===== Recovery =====

// synchronizeStatement skips to the end of the failed block element: past a
// ';' or up to the '}' of the enclosing block, whose body is at brace depth
// base. It reports false if input ends first.
func (p *Parser) synchronizeStatement(base int) bool {
	for {
		switch p.current.Type {
		case lexer.TokenEOF:
			return false
		case lexer.TokenRBrace:
			if p.braces <= base {
				p.panicking = false
				return true
			}
		case lexer.TokenSemicolon:
			if p.braces == base {
				p.advance()
				p.panicking = false
				return true
			}
		}
		p.advance()
	}
}

// synchronizeDeclaration skips to the start of the next top-level
// declaration. base is the brace depth the failed declaration started at;
// bodies opened since then are skipped to their close. let, include and
// extern never start a field, so inside a body that was already open when
// the error occurred they end the declaration.
func (p *Parser) synchronizeDeclaration(base int) {
	open := p.braces
	for !p.check(lexer.TokenEOF) {
		switch p.current.Type {
		case lexer.TokenRBrace:
			p.advance()
			if p.braces <= base {
				return
			}
			continue
		case lexer.TokenSemicolon:
			if p.braces == base {
				p.advance()
				return
			}
		case lexer.TokenLet, lexer.TokenInclude, lexer.TokenExtern:
			if p.braces <= open {
				p.braces = base
				return
			}
		case lexer.TokenStruct, lexer.TokenUnion, lexer.TokenEnum, lexer.TokenFunction:
			if p.braces == base {
				return
			}
		}
		p.advance()
	}
	p.braces = base
}
