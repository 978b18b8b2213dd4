package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostic"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/position"
)

// parseType parses ['mut'] followed by a primitive, wrapper, array, compound,
// function-signature or named type.
func (p *Parser) parseType() (ast.Type, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	start := p.current.Span
	mutable := p.match(lexer.TokenMut)
	tok := p.current

	switch {
	case tok.Type.IsPrimitive():
		p.advance()
		return &ast.PrimitiveType{Span: p.spanFrom(start), Kind: tok.Type, Mutable: mutable}, nil

	case tok.Type == lexer.TokenBitAnd, tok.Type == lexer.TokenQuestion, tok.Type == lexer.TokenBitNot:
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		kind := ast.WrapPointer
		switch tok.Type {
		case lexer.TokenQuestion:
			kind = ast.WrapOptional
		case lexer.TokenBitNot:
			kind = ast.WrapResult
		}
		return &ast.WrapperType{Span: p.spanFrom(start), Kind: kind, Inner: inner, Mutable: mutable}, nil

	case tok.Type == lexer.TokenLBracket:
		p.advance()
		var size ast.Expression
		if !p.check(lexer.TokenRBracket) {
			var err error
			if size, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.TokenRBracket, diagnostic.ErrExpectedRightBracket); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Span: p.spanFrom(start), Size: size, Elem: elem, Mutable: mutable}, nil

	case tok.Type == lexer.TokenStruct, tok.Type == lexer.TokenUnion, tok.Type == lexer.TokenEnum:
		var decl ast.Declaration
		var err error
		switch tok.Type {
		case lexer.TokenStruct:
			decl, err = p.parseStruct()
		case lexer.TokenUnion:
			decl, err = p.parseUnion()
		default:
			decl, err = p.parseEnum()
		}
		if err != nil {
			return nil, err
		}
		return &ast.CompoundType{Span: p.spanFrom(start), Decl: decl, Mutable: mutable}, nil

	case tok.Type == lexer.TokenFunction:
		return p.parseFunctionType(start, mutable)

	case tok.Type == lexer.TokenIdentifier:
		p.advance()
		name := &ast.Identifier{Span: tok.Span, Value: tok.Text}
		return &ast.NamedType{Span: p.spanFrom(start), Name: name, Mutable: mutable}, nil
	}

	return nil, p.errorAtCurrent(diagnostic.ErrExpectedType)
}

// parseFunctionType parses function(T, ...) [R]; function(void) and
// function() both take no parameters.
func (p *Parser) parseFunctionType(start position.Span, mutable bool) (ast.Type, error) {
	p.advance()
	if _, err := p.expect(lexer.TokenLParen, diagnostic.ErrExpectedLeftParen); err != nil {
		return nil, err
	}

	var params []ast.Type
	if !p.check(lexer.TokenRParen) {
		var err error
		if params, err = parseList(p, p.parseType); err != nil {
			return nil, err
		}
	}
	if len(params) == 1 {
		if prim, ok := params[0].(*ast.PrimitiveType); ok && prim.Kind == lexer.TokenVoid && !prim.Mutable {
			params = nil
		}
	}
	if _, err := p.expect(lexer.TokenRParen, diagnostic.ErrExpectedRightParen); err != nil {
		return nil, err
	}

	fn := &ast.FunctionType{Params: params, Mutable: mutable}
	if p.startsType() {
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.Returns = ret
	}
	fn.Span = p.spanFrom(start)
	return fn, nil
}

// startsType reports whether the current token can begin a type.
func (p *Parser) startsType() bool {
	switch tt := p.current.Type; {
	case tt.IsPrimitive():
		return true
	case tt == lexer.TokenMut, tt == lexer.TokenBitAnd, tt == lexer.TokenQuestion,
		tt == lexer.TokenBitNot, tt == lexer.TokenLBracket, tt == lexer.TokenStruct,
		tt == lexer.TokenUnion, tt == lexer.TokenEnum, tt == lexer.TokenFunction,
		tt == lexer.TokenIdentifier:
		return true
	}
	return false
}
