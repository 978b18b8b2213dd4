package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostic"
	"github.com/quill-lang/quill/internal/lexer"
)

// parseDeclaration parses one top-level declaration.
func (p *Parser) parseDeclaration() (ast.Declaration, error) {
	var (
		decl ast.Declaration
		err  error
	)
	switch p.current.Type {
	case lexer.TokenLet:
		decl, err = p.parseVariable()
	case lexer.TokenStruct:
		decl, err = p.parseStruct()
	case lexer.TokenUnion:
		decl, err = p.parseUnion()
	case lexer.TokenEnum:
		decl, err = p.parseEnum()
	case lexer.TokenFunction:
		decl, err = p.parseFunction()
	case lexer.TokenInclude:
		decl, err = p.parseInclude()
	case lexer.TokenExtern:
		tok := p.current
		p.advance()
		return nil, p.errorAt(tok, diagnostic.ErrUnimplemented)
	default:
		return nil, p.errorAtCurrent(diagnostic.ErrExpectedDeclaration)
	}
	if err != nil {
		return nil, err
	}
	return decl, nil
}

// parseVariable parses let lvalues = values; including the semicolon.
func (p *Parser) parseVariable() (*ast.VariableDeclaration, error) {
	start := p.current.Span
	p.advance()

	targets, err := parseList(p, func() (*ast.LValue, error) { return p.parseLValue(false) })
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenAssign, diagnostic.ErrExpectedAssign); err != nil {
		return nil, err
	}
	values, err := parseList(p, p.parseExpression)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, diagnostic.ErrExpectedEndOfVariable); err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{Span: p.spanFrom(start), Targets: targets, Values: values}, nil
}

// parseLValue parses name [: type]. Struct fields require the type.
func (p *Parser) parseLValue(typeRequired bool) (*ast.LValue, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	lv := &ast.LValue{Name: name}
	if p.match(lexer.TokenColon) {
		if lv.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	} else if typeRequired {
		return nil, p.errorAtCurrent(diagnostic.ErrExpectedType)
	}
	lv.Span = p.spanFrom(name.Span)
	return lv, nil
}

// parseOptionalName consumes the name of a struct, union or enum if present.
func (p *Parser) parseOptionalName() *ast.Identifier {
	if !p.check(lexer.TokenIdentifier) {
		return nil
	}
	tok := p.current
	p.advance()
	return &ast.Identifier{Span: tok.Span, Value: tok.Text}
}

// parseBody parses '{' [elem {, elem}] '}' for compound declarations.
func parseBody[T any](p *Parser, parse func() (T, error)) ([]T, error) {
	if _, err := p.expect(lexer.TokenLBrace, diagnostic.ErrExpectedLeftBrace); err != nil {
		return nil, err
	}
	var items []T
	if !p.check(lexer.TokenRBrace) {
		var err error
		if items, err = parseList(p, parse); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokenRBrace, diagnostic.ErrExpectedEndOfDeclaration); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) parseStruct() (*ast.StructDeclaration, error) {
	start := p.current.Span
	p.advance()
	name := p.parseOptionalName()
	fields, err := parseBody(p, func() (*ast.LValue, error) { return p.parseLValue(true) })
	if err != nil {
		return nil, err
	}
	return &ast.StructDeclaration{Span: p.spanFrom(start), Name: name, Fields: fields}, nil
}

func (p *Parser) parseUnion() (*ast.UnionDeclaration, error) {
	start := p.current.Span
	p.advance()
	name := p.parseOptionalName()
	members, err := parseBody(p, p.parseType)
	if err != nil {
		return nil, err
	}
	return &ast.UnionDeclaration{Span: p.spanFrom(start), Name: name, Members: members}, nil
}

func (p *Parser) parseEnum() (*ast.EnumDeclaration, error) {
	start := p.current.Span
	p.advance()
	name := p.parseOptionalName()
	variants, err := parseBody(p, p.parseEnumVariant)
	if err != nil {
		return nil, err
	}
	return &ast.EnumDeclaration{Span: p.spanFrom(start), Name: name, Variants: variants}, nil
}

func (p *Parser) parseEnumVariant() (*ast.EnumVariant, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	v := &ast.EnumVariant{Name: name}
	if p.match(lexer.TokenAssign) {
		if v.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	v.Span = p.spanFrom(name.Span)
	return v, nil
}

// parseFunction parses
//
//	function name(params | void) [returns] [where bindings] { body }
func (p *Parser) parseFunction() (*ast.FunctionDeclaration, error) {
	start := p.current.Span
	p.advance()

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDeclaration{Name: name}

	if _, err := p.expect(lexer.TokenLParen, diagnostic.ErrExpectedLeftParen); err != nil {
		return nil, err
	}
	if !p.match(lexer.TokenVoid) && !p.check(lexer.TokenRParen) {
		params, err := parseList(p, func() (*ast.LValue, error) { return p.parseLValue(false) })
		if err != nil {
			return nil, err
		}
		fn.Params = params
	}
	if _, err := p.expect(lexer.TokenRParen, diagnostic.ErrExpectedRightParen); err != nil {
		return nil, err
	}

	if !p.check(lexer.TokenLBrace) && !p.check(lexer.TokenWhere) {
		if fn.Returns, err = parseList(p, p.parseType); err != nil {
			return nil, err
		}
	}
	if p.match(lexer.TokenWhere) {
		if fn.Where, err = parseList(p, p.parseWhereBinding); err != nil {
			return nil, err
		}
	}

	if !p.check(lexer.TokenLBrace) {
		return nil, p.errorAtCurrent(diagnostic.ErrExpectedBlock)
	}
	if fn.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	fn.Span = p.spanFrom(start)
	return fn, nil
}

func (p *Parser) parseWhereBinding() (*ast.WhereBinding, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	w := &ast.WhereBinding{Name: name}
	if p.match(lexer.TokenColon) {
		if w.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokenAssign, diagnostic.ErrExpectedAssign); err != nil {
		return nil, err
	}
	if w.Value, err = p.parseExpression(); err != nil {
		return nil, err
	}
	w.Span = p.spanFrom(name.Span)
	return w, nil
}

func (p *Parser) parseInclude() (*ast.IncludeDeclaration, error) {
	start := p.current.Span
	p.advance()
	path, err := p.expect(lexer.TokenStringLit, diagnostic.ErrExpectedString)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon, diagnostic.ErrExpectedEndOfStatement); err != nil {
		return nil, err
	}
	return &ast.IncludeDeclaration{Span: p.spanFrom(start), Path: path.Text}, nil
}
