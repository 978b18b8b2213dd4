package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostic"
	"github.com/quill-lang/quill/internal/lexer"
)

// Binary operator levels, lowest precedence first. Assignment and cast sit
// between fallback and or and are handled separately.
var (
	fallbackOps   = []lexer.TokenType{lexer.TokenOrElse, lexer.TokenCatch}
	orOps         = []lexer.TokenType{lexer.TokenOr}
	andOps        = []lexer.TokenType{lexer.TokenAnd}
	equalityOps   = []lexer.TokenType{lexer.TokenEq, lexer.TokenNe}
	comparisonOps = []lexer.TokenType{lexer.TokenLt, lexer.TokenLe, lexer.TokenGt, lexer.TokenGe}
	bitwiseOps    = []lexer.TokenType{lexer.TokenBitAnd, lexer.TokenBitOr, lexer.TokenBitXor, lexer.TokenShl, lexer.TokenShr}
	termOps       = []lexer.TokenType{lexer.TokenAdd, lexer.TokenAddWrap, lexer.TokenSub, lexer.TokenSubWrap}
	factorOps     = []lexer.TokenType{lexer.TokenMul, lexer.TokenMulWrap, lexer.TokenDiv, lexer.TokenMod}

	assignOps = []lexer.TokenType{
		lexer.TokenAssign,
		lexer.TokenAddAssign, lexer.TokenAddWrapAssign,
		lexer.TokenSubAssign, lexer.TokenSubWrapAssign,
		lexer.TokenMulAssign, lexer.TokenMulWrapAssign,
		lexer.TokenDivAssign, lexer.TokenModAssign,
		lexer.TokenShlAssign, lexer.TokenShrAssign,
		lexer.TokenBitAndAssign, lexer.TokenBitOrAssign, lexer.TokenBitXorAssign,
	}

	unaryOps = []lexer.TokenType{
		lexer.TokenBitNot, lexer.TokenNot, lexer.TokenSub,
		lexer.TokenBitAnd, lexer.TokenMul, lexer.TokenTry,
	}
)

// parseExpression parses a full expression, including the control forms
// that are only valid at the top of an expression.
func (p *Parser) parseExpression() (ast.Expression, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	switch p.current.Type {
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenFor:
		return p.parseFor()
	case lexer.TokenLBrace:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return block, nil
	case lexer.TokenReturn, lexer.TokenBreak, lexer.TokenContinue:
		return p.parseJump()
	}
	return p.parseFallback()
}

// parseBinary parses one operand with next, then folds left while an
// operator from ops follows.
func (p *Parser) parseBinary(next func() (ast.Expression, error), ops []lexer.TokenType) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.checkAny(ops...) {
		op := p.current.Type
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			Span:  left.GetSpan().Union(right.GetSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
	return left, nil
}

func (p *Parser) parseFallback() (ast.Expression, error) {
	return p.parseBinary(p.parseAssign, fallbackOps)
}

// parseAssign is right-associative: a = b = c is a = (b = c).
func (p *Parser) parseAssign() (ast.Expression, error) {
	target, err := p.parseCast()
	if err != nil {
		return nil, err
	}
	if !p.checkAny(assignOps...) {
		return target, nil
	}
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	op := p.current.Type
	p.advance()
	value, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{
		Span:   target.GetSpan().Union(value.GetSpan()),
		Op:     op,
		Target: target,
		Value:  value,
	}, nil
}

func (p *Parser) parseCast() (ast.Expression, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.TokenAs) {
		return expr, nil
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Cast{Span: expr.GetSpan().Union(typ.GetSpan()), Expr: expr, Type: typ}, nil
}

func (p *Parser) parseOr() (ast.Expression, error)  { return p.parseBinary(p.parseAnd, orOps) }
func (p *Parser) parseAnd() (ast.Expression, error) { return p.parseBinary(p.parseEquality, andOps) }

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinary(p.parseComparison, equalityOps)
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.parseBinary(p.parseBitwise, comparisonOps)
}

func (p *Parser) parseBitwise() (ast.Expression, error) {
	return p.parseBinary(p.parseTerm, bitwiseOps)
}

func (p *Parser) parseTerm() (ast.Expression, error)   { return p.parseBinary(p.parseFactor, termOps) }
func (p *Parser) parseFactor() (ast.Expression, error) { return p.parseBinary(p.parseUnary, factorOps) }

func (p *Parser) parseUnary() (ast.Expression, error) {
	if !p.checkAny(unaryOps...) {
		return p.parsePostfix()
	}
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	start := p.current.Span
	op := p.current.Type
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Span: start.Union(operand.GetSpan()), Op: op, Operand: operand}, nil
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		start := expr.GetSpan()
		switch p.current.Type {
		case lexer.TokenLParen:
			p.advance()
			var args []ast.Expression
			if !p.check(lexer.TokenRParen) {
				if args, err = parseList(p, p.parseExpression); err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(lexer.TokenRParen, diagnostic.ErrExpectedRightParen); err != nil {
				return nil, err
			}
			expr = &ast.Call{Span: p.spanFrom(start), Callee: expr, Args: args}

		case lexer.TokenDot:
			p.advance()
			name, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			expr = &ast.Field{Span: p.spanFrom(start), Parent: expr, Name: name}

		case lexer.TokenArrow:
			// a->b is (*a).b
			p.advance()
			name, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			deref := &ast.Group{Span: start, Inner: &ast.Unary{Span: start, Op: lexer.TokenMul, Operand: expr}}
			expr = &ast.Field{Span: p.spanFrom(start), Parent: deref, Name: name}

		case lexer.TokenLBracket:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenRBracket, diagnostic.ErrExpectedRightBracket); err != nil {
				return nil, err
			}
			expr = &ast.Index{Span: p.spanFrom(start), Array: expr, Index: index}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.current
	switch tok.Type {
	case lexer.TokenTrue, lexer.TokenFalse:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LiteralBool, Bool: tok.Type == lexer.TokenTrue}, nil
	case lexer.TokenIntLit:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LiteralInt, Int: tok.Int}, nil
	case lexer.TokenUintLit:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LiteralUint, Uint: tok.Uint}, nil
	case lexer.TokenFloatLit:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LiteralFloat, Float: tok.Float}, nil
	case lexer.TokenCharLit:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LiteralChar, Char: tok.Char}, nil
	case lexer.TokenStringLit:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LiteralString, Str: tok.Text}, nil
	case lexer.TokenIdentifier:
		p.advance()
		return &ast.Identifier{Span: tok.Span, Value: tok.Text}, nil
	case lexer.TokenUndefined:
		p.advance()
		return &ast.Identifier{Span: tok.Span, Value: "undefined"}, nil

	case lexer.TokenLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen, diagnostic.ErrExpectedRightParen); err != nil {
			return nil, err
		}
		return &ast.Group{Span: p.spanFrom(tok.Span), Inner: inner}, nil

	case lexer.TokenLBracket:
		p.advance()
		var elems []ast.Expression
		if !p.check(lexer.TokenRBracket) {
			var err error
			if elems, err = parseList(p, p.parseExpression); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.TokenRBracket, diagnostic.ErrExpectedRightBracket); err != nil {
			return nil, err
		}
		return &ast.ArrayInit{Span: p.spanFrom(tok.Span), Elements: elems}, nil

	case lexer.TokenMatch:
		return nil, p.errorAt(tok, diagnostic.ErrUnimplemented)
	}
	return nil, p.errorAtCurrent(diagnostic.ErrExpectedExpression)
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.expect(lexer.TokenIdentifier, diagnostic.ErrExpectedIdentifier)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Span: tok.Span, Value: tok.Text}, nil
}

// parseCondition parses the parenthesized condition of if and while.
func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(lexer.TokenLParen, diagnostic.ErrExpectedLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen, diagnostic.ErrExpectedRightParen); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseBodyAndElse parses a loop or branch body followed by an optional
// else expression.
func (p *Parser) parseBodyAndElse() (body, els ast.Expression, err error) {
	if body, err = p.parseExpression(); err != nil {
		return nil, nil, err
	}
	if p.match(lexer.TokenElse) {
		if els, err = p.parseExpression(); err != nil {
			return nil, nil, err
		}
	}
	return body, els, nil
}

func (p *Parser) parseIf() (ast.Expression, error) {
	start := p.current.Span
	p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, els, err := p.parseBodyAndElse()
	if err != nil {
		return nil, err
	}
	return &ast.IfExpression{Span: p.spanFrom(start), Cond: cond, Body: body, Else: els}, nil
}

func (p *Parser) parseWhile() (ast.Expression, error) {
	start := p.current.Span
	p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, els, err := p.parseBodyAndElse()
	if err != nil {
		return nil, err
	}
	return &ast.WhileExpression{Span: p.spanFrom(start), Cond: cond, Body: body, Else: els}, nil
}

// parseFor lowers for (init; cond; inc) body to
//
//	{ init; while (cond) { body; inc; } }
//
// A missing cond is true. Without inc the body is used as is; without init
// the while is returned unwrapped.
func (p *Parser) parseFor() (ast.Expression, error) {
	start := p.current.Span
	p.advance()
	if _, err := p.expect(lexer.TokenLParen, diagnostic.ErrExpectedLeftParen); err != nil {
		return nil, err
	}

	var init ast.Statement
	switch {
	case p.match(lexer.TokenSemicolon):
	case p.check(lexer.TokenLet):
		decl, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		init = &ast.VarStatement{Span: decl.Span, Decl: decl}
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenSemicolon, diagnostic.ErrExpectedEndOfStatement); err != nil {
			return nil, err
		}
		init = &ast.ExpressionStatement{Span: p.spanFrom(expr.GetSpan()), Expression: expr}
	}

	var cond ast.Expression
	if p.check(lexer.TokenSemicolon) {
		cond = &ast.Literal{Span: p.current.Span, Kind: ast.LiteralBool, Bool: true}
	} else {
		var err error
		if cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokenSemicolon, diagnostic.ErrExpectedEndOfStatement); err != nil {
		return nil, err
	}

	var inc ast.Expression
	if !p.check(lexer.TokenRParen) {
		var err error
		if inc, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokenRParen, diagnostic.ErrExpectedRightParen); err != nil {
		return nil, err
	}

	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if inc != nil {
		body = &ast.Block{
			Span: body.GetSpan().Union(inc.GetSpan()),
			Statements: []ast.Statement{
				&ast.ExpressionStatement{Span: body.GetSpan(), Expression: body},
				&ast.ExpressionStatement{Span: inc.GetSpan(), Expression: inc},
			},
		}
	}

	span := p.spanFrom(start)
	loop := &ast.WhileExpression{Span: span, Cond: cond, Body: body}
	if init == nil {
		return loop, nil
	}
	return &ast.Block{Span: span, Statements: []ast.Statement{init}, Tail: loop}, nil
}

// parseJump parses return, break or continue. The value is omitted when the
// next token cannot start one.
func (p *Parser) parseJump() (ast.Expression, error) {
	start := p.current.Span
	op := p.current.Type
	p.advance()

	if p.checkAny(lexer.TokenSemicolon, lexer.TokenRBrace, lexer.TokenRParen,
		lexer.TokenRBracket, lexer.TokenComma, lexer.TokenElse, lexer.TokenEOF) {
		return &ast.JumpExpression{Span: start, Op: op}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.JumpExpression{Span: p.spanFrom(start), Op: op, Value: value}, nil
}

// parseBlock parses { elements }. A failed element is skipped up to the next
// ';' or the closing brace and parsing continues.
func (p *Parser) parseBlock() (*ast.Block, error) {
	start := p.current.Span
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace, diagnostic.ErrExpectedLeftBrace); err != nil {
		return nil, err
	}
	base := p.braces

	block := &ast.Block{}
	for !p.check(lexer.TokenRBrace) {
		if p.check(lexer.TokenEOF) {
			return nil, p.errorAtCurrent(diagnostic.ErrExpectedEndOfBlock)
		}
		stmt, tail, err := p.parseBlockElement()
		if err != nil {
			if !p.synchronizeStatement(base) {
				return nil, err
			}
			continue
		}
		if tail != nil {
			block.Tail = tail
			break
		}
		block.Statements = append(block.Statements, stmt)
	}

	if _, err := p.expect(lexer.TokenRBrace, diagnostic.ErrExpectedRightBrace); err != nil {
		return nil, err
	}
	block.Span = p.spanFrom(start)
	return block, nil
}

// parseBlockElement returns either a statement or, for an expression
// directly followed by '}', the block's tail expression.
func (p *Parser) parseBlockElement() (ast.Statement, ast.Expression, error) {
	switch p.current.Type {
	case lexer.TokenLet:
		decl, err := p.parseVariable()
		if err != nil {
			return nil, nil, err
		}
		return &ast.VarStatement{Span: decl.Span, Decl: decl}, nil, nil

	case lexer.TokenLBrace:
		inner, err := p.parseBlock()
		if err != nil {
			return nil, nil, err
		}
		if p.match(lexer.TokenSemicolon) {
			return &ast.ExpressionStatement{Span: p.spanFrom(inner.Span), Expression: inner}, nil, nil
		}
		return &ast.BlockStatement{Span: inner.Span, Block: inner}, nil, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	switch p.current.Type {
	case lexer.TokenSemicolon:
		p.advance()
		return &ast.ExpressionStatement{Span: p.spanFrom(expr.GetSpan()), Expression: expr}, nil, nil
	case lexer.TokenRBrace:
		return nil, expr, nil
	}
	return nil, nil, p.errorAtCurrent(diagnostic.ErrExpectedEndOfBlock)
}
