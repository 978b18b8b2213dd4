// Package lexer implements the Quill lexical analyzer.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/quill-lang/quill/internal/diagnostic"
	"github.com/quill-lang/quill/internal/position"
)

// Lexer produces tokens from an in-memory source buffer on demand.
type Lexer struct {
	input        string
	filename     string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // line of ch, 1-based
	column       int  // column of ch, 1-based
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a lexer whose token positions carry filename.
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:    input,
		filename: filename,
		line:     1,
	}
	l.readChar()
	return l
}

// Filename returns the name attached to token positions.
func (l *Lexer) Filename() string { return l.filename }

func (l *Lexer) readChar() {
	if l.readPosition > len(l.input) {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool { return l.position >= len(l.input) }

// accept consumes the current char if it equals c.
func (l *Lexer) accept(c byte) bool {
	if l.atEOF() || l.ch != c {
		return false
	}
	l.readChar()
	return true
}

func (l *Lexer) pos() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.position,
	}
}

// skipWhitespace skips blanks, newlines and line comments.
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

// NextToken returns the next token. Once the input is exhausted every call
// returns EOF.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	start := l.pos()

	if l.atEOF() {
		return Token{Type: TokenEOF, Span: position.Span{Start: start, End: start}}
	}

	switch {
	case isLetter(l.ch):
		return l.readIdentifier(start)
	case isDigit(l.ch):
		return l.readNumber(start)
	case l.ch == '"':
		return l.readString(start)
	case l.ch == '\'':
		return l.readCharLiteral(start)
	case l.ch >= utf8.RuneSelf:
		_, size := utf8.DecodeRuneInString(l.input[l.position:])
		for i := 0; i < size; i++ {
			l.readChar()
		}
		return l.errorToken(diagnostic.ErrInvalidSymbol, start)
	}

	ch := l.ch
	l.readChar()

	var tt TokenType
	switch ch {
	case '(':
		tt = TokenLParen
	case ')':
		tt = TokenRParen
	case '[':
		tt = TokenLBracket
	case ']':
		tt = TokenRBracket
	case '{':
		tt = TokenLBrace
	case '}':
		tt = TokenRBrace
	case ';':
		tt = TokenSemicolon
	case ':':
		tt = TokenColon
	case '.':
		tt = TokenDot
	case ',':
		tt = TokenComma
	case '#':
		tt = TokenHash
	case '?':
		tt = TokenQuestion
	case '~':
		tt = TokenBitNot
	case '+':
		tt = l.fourWay(TokenAdd, '%')
	case '-':
		if l.accept('>') {
			tt = TokenArrow
		} else {
			tt = l.fourWay(TokenSub, '%')
		}
	case '*':
		tt = l.fourWay(TokenMul, '%')
	case '<':
		tt = l.fourWay(TokenLt, '<')
	case '>':
		tt = l.fourWay(TokenGt, '>')
	case '/':
		tt = l.withAssign(TokenDiv, TokenDivAssign)
	case '%':
		tt = l.withAssign(TokenMod, TokenModAssign)
	case '&':
		tt = l.withAssign(TokenBitAnd, TokenBitAndAssign)
	case '|':
		tt = l.withAssign(TokenBitOr, TokenBitOrAssign)
	case '^':
		tt = l.withAssign(TokenBitXor, TokenBitXorAssign)
	case '!':
		tt = l.withAssign(TokenNot, TokenNe)
	case '=':
		switch {
		case l.accept('='):
			tt = TokenEq
		case l.accept('>'):
			tt = TokenFatArrow
		default:
			tt = TokenAssign
		}
	default:
		return l.errorToken(diagnostic.ErrInvalidSymbol, start)
	}

	return l.newToken(tt, start)
}

// fourWay resolves base, base=, base<second> and base<second>= to the four
// consecutive token types starting at base.
func (l *Lexer) fourWay(base TokenType, second byte) TokenType {
	if l.accept('=') {
		return base + 1
	}
	if l.accept(second) {
		if l.accept('=') {
			return base + 3
		}
		return base + 2
	}
	return base
}

func (l *Lexer) withAssign(plain, assign TokenType) TokenType {
	if l.accept('=') {
		return assign
	}
	return plain
}

func (l *Lexer) newToken(tt TokenType, start position.Position) Token {
	return Token{
		Type:    tt,
		Literal: l.input[start.Offset:l.position],
		Span:    position.Span{Start: start, End: l.pos()},
	}
}

func (l *Lexer) errorToken(reason diagnostic.Code, start position.Position) Token {
	tok := l.newToken(TokenError, start)
	tok.Reason = reason
	return tok
}

func (l *Lexer) readIdentifier(start position.Position) Token {
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
	word := l.input[start.Offset:l.position]
	tok := l.newToken(LookupIdent(word), start)
	if tok.Type == TokenIdentifier {
		tok.Text = word
	}
	return tok
}

// readNumber scans an integer or float literal. Integers accept the 0x, 0o
// and 0b prefixes and C-style leading-zero octal. A decimal exponent, with
// an optional sign, makes the literal a float.
func (l *Lexer) readNumber(start position.Position) Token {
	isFloat := false
	for !l.atEOF() && isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for !l.atEOF() && isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if (next == '+' || next == '-') && l.readPosition+1 < len(l.input) {
			next = l.input[l.readPosition+1]
		}
		if isDigit(next) {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for !l.atEOF() && isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	// Radix prefixes, digit separators and stray suffixes belong to the
	// literal so that 0xff or 12ab are a single token.
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}

	tok := l.newToken(TokenIntLit, start)
	if isFloat {
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return l.errorToken(diagnostic.ErrInvalidNumber, start)
		}
		tok.Type = TokenFloatLit
		tok.Float = f
		return tok
	}

	if v, err := strconv.ParseInt(tok.Literal, 0, 64); err == nil {
		tok.Int = v
		return tok
	}
	if u, err := strconv.ParseUint(tok.Literal, 0, 64); err == nil {
		tok.Type = TokenUintLit
		tok.Uint = u
		return tok
	}
	return l.errorToken(diagnostic.ErrInvalidNumber, start)
}

func (l *Lexer) readString(start position.Position) Token {
	l.readChar() // opening quote

	var b strings.Builder
	badEscape := false
	for {
		if l.atEOF() {
			return l.errorToken(diagnostic.ErrUnterminatedString, start)
		}
		switch l.ch {
		case '"':
			l.readChar()
			if badEscape {
				return l.errorToken(diagnostic.ErrInvalidEscape, start)
			}
			tok := l.newToken(TokenStringLit, start)
			tok.Text = b.String()
			return tok
		case '\\':
			l.readChar()
			if l.atEOF() {
				return l.errorToken(diagnostic.ErrUnterminatedString, start)
			}
			c, ok := unescape(l.ch)
			if !ok {
				badEscape = true
			}
			b.WriteByte(c)
			l.readChar()
		default:
			b.WriteByte(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) readCharLiteral(start position.Position) Token {
	l.readChar() // opening quote

	reason := diagnostic.Code(-1)
	var value byte
	switch {
	case l.atEOF() || l.ch == '\n' || l.ch == '\'':
		reason = diagnostic.ErrInvalidCharLiteral
	case l.ch == '\\':
		l.readChar()
		if l.atEOF() {
			return l.errorToken(diagnostic.ErrInvalidCharLiteral, start)
		}
		c, ok := unescape(l.ch)
		if !ok {
			reason = diagnostic.ErrInvalidEscape
		}
		value = c
		l.readChar()
	case l.ch >= utf8.RuneSelf:
		reason = diagnostic.ErrInvalidCharLiteral
	default:
		value = l.ch
		l.readChar()
	}

	if reason < 0 && l.accept('\'') {
		tok := l.newToken(TokenCharLit, start)
		tok.Char = value
		return tok
	}
	if reason < 0 {
		reason = diagnostic.ErrInvalidCharLiteral
	}
	l.skipCharLiteral()
	return l.errorToken(reason, start)
}

// skipCharLiteral consumes the rest of a malformed char literal up to and
// including its closing quote, provided one appears on the same line.
func (l *Lexer) skipCharLiteral() {
	rest := l.input[l.position:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	end := strings.IndexByte(rest, '\'')
	if end < 0 {
		return
	}
	for i := 0; i <= end; i++ {
		l.readChar()
	}
}

func unescape(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return c, true
	}
	return c, false
}

// Tokenize returns every token of input up to and including EOF.
func Tokenize(input, filename string) []Token {
	l := NewWithFilename(input, filename)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
