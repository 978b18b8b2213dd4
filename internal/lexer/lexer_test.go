package lexer

import (
	"strings"
	"testing"

	"github.com/quill-lang/quill/internal/diagnostic"
)

func TestNextToken(t *testing.T) {
	input := `let five: int32 = 5;
function add(x: int64, y: int64) int64 { x + y }
// comment
if (a <= b) { a -> b } else { c => d }`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenLet, "let"},
		{TokenIdentifier, "five"},
		{TokenColon, ":"},
		{TokenInt32, "int32"},
		{TokenAssign, "="},
		{TokenIntLit, "5"},
		{TokenSemicolon, ";"},
		{TokenFunction, "function"},
		{TokenIdentifier, "add"},
		{TokenLParen, "("},
		{TokenIdentifier, "x"},
		{TokenColon, ":"},
		{TokenInt64, "int64"},
		{TokenComma, ","},
		{TokenIdentifier, "y"},
		{TokenColon, ":"},
		{TokenInt64, "int64"},
		{TokenRParen, ")"},
		{TokenInt64, "int64"},
		{TokenLBrace, "{"},
		{TokenIdentifier, "x"},
		{TokenAdd, "+"},
		{TokenIdentifier, "y"},
		{TokenRBrace, "}"},
		{TokenIf, "if"},
		{TokenLParen, "("},
		{TokenIdentifier, "a"},
		{TokenLe, "<="},
		{TokenIdentifier, "b"},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenIdentifier, "a"},
		{TokenArrow, "->"},
		{TokenIdentifier, "b"},
		{TokenRBrace, "}"},
		{TokenElse, "else"},
		{TokenLBrace, "{"},
		{TokenIdentifier, "c"},
		{TokenFatArrow, "=>"},
		{TokenIdentifier, "d"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperatorDisambiguation(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"+", TokenAdd},
		{"+=", TokenAddAssign},
		{"+%", TokenAddWrap},
		{"+%=", TokenAddWrapAssign},
		{"-", TokenSub},
		{"-=", TokenSubAssign},
		{"-%", TokenSubWrap},
		{"-%=", TokenSubWrapAssign},
		{"->", TokenArrow},
		{"*", TokenMul},
		{"*=", TokenMulAssign},
		{"*%", TokenMulWrap},
		{"*%=", TokenMulWrapAssign},
		{"/", TokenDiv},
		{"/=", TokenDivAssign},
		{"%", TokenMod},
		{"%=", TokenModAssign},
		{"<", TokenLt},
		{"<=", TokenLe},
		{"<<", TokenShl},
		{"<<=", TokenShlAssign},
		{">", TokenGt},
		{">=", TokenGe},
		{">>", TokenShr},
		{">>=", TokenShrAssign},
		{"&", TokenBitAnd},
		{"&=", TokenBitAndAssign},
		{"|", TokenBitOr},
		{"|=", TokenBitOrAssign},
		{"^", TokenBitXor},
		{"^=", TokenBitXorAssign},
		{"~", TokenBitNot},
		{"!", TokenNot},
		{"!=", TokenNe},
		{"=", TokenAssign},
		{"==", TokenEq},
		{"=>", TokenFatArrow},
	}

	for i, tt := range tests {
		toks := Tokenize(tt.input, "")
		if len(toks) != 2 {
			t.Fatalf("tests[%d] - %q lexed into %d tokens", i, tt.input, len(toks)-1)
		}
		if toks[0].Type != tt.expected {
			t.Errorf("tests[%d] - %q: expected=%s, got=%s", i, tt.input, tt.expected, toks[0].Type)
		}
		if toks[0].Type.Symbol() != tt.input {
			t.Errorf("tests[%d] - Symbol() = %q, expected %q", i, toks[0].Type.Symbol(), tt.input)
		}
	}
}

func TestKeywordPrefixes(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"int8", TokenInt8},
		{"int", TokenIdentifier},
		{"include", TokenInclude},
		{"includes", TokenIdentifier},
		{"uint8", TokenUint8},
		{"union", TokenUnion},
		{"usize", TokenUsize},
		{"orelse", TokenOrElse},
		{"or", TokenOr},
		{"float16", TokenFloat16},
		{"fsize", TokenFsize},
		{"type", TokenTypeKeyword},
		{"noreturn", TokenNoReturn},
		{"true", TokenTrue},
		{"_tmp1", TokenIdentifier},
	}

	for i, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Type != tt.expected {
			t.Errorf("tests[%d] - %q: expected=%s, got=%s", i, tt.input, tt.expected, tok.Type)
		}
		if tt.expected == TokenIdentifier && tok.Text != tt.input {
			t.Errorf("tests[%d] - Text = %q", i, tok.Text)
		}
	}

	if !TokenInt8.IsPrimitive() || !TokenNoReturn.IsPrimitive() || TokenTrue.IsPrimitive() || TokenReturn.IsPrimitive() {
		t.Error("IsPrimitive range is wrong")
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		typ      TokenType
		intVal   int64
		uintVal  uint64
		floatVal float64
		reason   diagnostic.Code
	}{
		{input: "42", typ: TokenIntLit, intVal: 42},
		{input: "0x1F", typ: TokenIntLit, intVal: 31},
		{input: "0o17", typ: TokenIntLit, intVal: 15},
		{input: "0b101", typ: TokenIntLit, intVal: 5},
		{input: "017", typ: TokenIntLit, intVal: 15},
		{input: "0", typ: TokenIntLit, intVal: 0},
		{input: "3.25", typ: TokenFloatLit, floatVal: 3.25},
		{input: "1.5e300", typ: TokenFloatLit, floatVal: 1.5e300},
		{input: "2.5e-8", typ: TokenFloatLit, floatVal: 2.5e-8},
		{input: "6E+2", typ: TokenFloatLit, floatVal: 600},
		{input: "1e3", typ: TokenFloatLit, floatVal: 1000},
		{input: "0x1e5", typ: TokenIntLit, intVal: 0x1e5},
		{input: "1e", typ: TokenError, reason: diagnostic.ErrInvalidNumber},
		{input: "18446744073709551615", typ: TokenUintLit, uintVal: 18446744073709551615},
		{input: "99999999999999999999", typ: TokenError, reason: diagnostic.ErrInvalidNumber},
		{input: "12ab", typ: TokenError, reason: diagnostic.ErrInvalidNumber},
		{input: "09", typ: TokenError, reason: diagnostic.ErrInvalidNumber},
	}

	for i, tt := range tests {
		toks := Tokenize(tt.input, "")
		if len(toks) != 2 {
			t.Fatalf("tests[%d] - %q lexed into %d tokens", i, tt.input, len(toks)-1)
		}
		tok := toks[0]
		if tok.Type != tt.typ {
			t.Fatalf("tests[%d] - %q: type expected=%s, got=%s", i, tt.input, tt.typ, tok.Type)
		}
		switch tt.typ {
		case TokenIntLit:
			if tok.Int != tt.intVal {
				t.Errorf("tests[%d] - Int = %d, expected %d", i, tok.Int, tt.intVal)
			}
		case TokenUintLit:
			if tok.Uint != tt.uintVal {
				t.Errorf("tests[%d] - Uint = %d, expected %d", i, tok.Uint, tt.uintVal)
			}
		case TokenFloatLit:
			if tok.Float != tt.floatVal {
				t.Errorf("tests[%d] - Float = %g, expected %g", i, tok.Float, tt.floatVal)
			}
		case TokenError:
			if tok.Reason != tt.reason {
				t.Errorf("tests[%d] - Reason = %s, expected %s", i, tok.Reason, tt.reason)
			}
		}
	}

	// A dot not followed by a digit is a field access.
	toks := Tokenize("1.x", "")
	if toks[0].Type != TokenIntLit || toks[1].Type != TokenDot || toks[2].Type != TokenIdentifier {
		t.Errorf("1.x lexed as %v", toks)
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	tests := []struct {
		input  string
		typ    TokenType
		text   string
		char   byte
		reason diagnostic.Code
	}{
		{input: `"hello"`, typ: TokenStringLit, text: "hello"},
		{input: `""`, typ: TokenStringLit, text: ""},
		{input: `"a\nb\t\"q\"\\"`, typ: TokenStringLit, text: "a\nb\t\"q\"\\"},
		{input: `"bad \q escape"`, typ: TokenError, reason: diagnostic.ErrInvalidEscape},
		{input: `"never closed`, typ: TokenError, reason: diagnostic.ErrUnterminatedString},
		{input: `'a'`, typ: TokenCharLit, char: 'a'},
		{input: `'\n'`, typ: TokenCharLit, char: '\n'},
		{input: `'\''`, typ: TokenCharLit, char: '\''},
		{input: `'\0'`, typ: TokenCharLit, char: 0},
		{input: `'ab'`, typ: TokenError, reason: diagnostic.ErrInvalidCharLiteral},
		{input: `''`, typ: TokenError, reason: diagnostic.ErrInvalidCharLiteral},
		{input: `'\z'`, typ: TokenError, reason: diagnostic.ErrInvalidEscape},
	}

	for i, tt := range tests {
		toks := Tokenize(tt.input, "")
		if len(toks) != 2 {
			t.Fatalf("tests[%d] - %s lexed into %d tokens: %v", i, tt.input, len(toks)-1, toks)
		}
		tok := toks[0]
		if tok.Type != tt.typ {
			t.Fatalf("tests[%d] - %s: type expected=%s, got=%s", i, tt.input, tt.typ, tok.Type)
		}
		if tok.Literal != tt.input {
			t.Errorf("tests[%d] - Literal = %q, expected %q", i, tok.Literal, tt.input)
		}
		switch tt.typ {
		case TokenStringLit:
			if tok.Text != tt.text {
				t.Errorf("tests[%d] - Text = %q, expected %q", i, tok.Text, tt.text)
			}
		case TokenCharLit:
			if tok.Char != tt.char {
				t.Errorf("tests[%d] - Char = %q, expected %q", i, tok.Char, tt.char)
			}
		case TokenError:
			if tok.Reason != tt.reason {
				t.Errorf("tests[%d] - Reason = %s, expected %s", i, tok.Reason, tt.reason)
			}
		}
	}

	// A malformed char literal does not swallow the next line.
	toks := Tokenize("'ab\nx", "")
	if toks[0].Type != TokenError || toks[len(toks)-2].Type != TokenIdentifier {
		t.Errorf("unexpected tokens %v", toks)
	}
}

func TestInvalidSymbol(t *testing.T) {
	toks := Tokenize("a @ b λ c", "")
	kinds := []TokenType{TokenIdentifier, TokenError, TokenIdentifier, TokenError, TokenIdentifier, TokenEOF}
	if len(toks) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d: %v", len(kinds), len(toks), toks)
	}
	for i, k := range kinds {
		if toks[i].Type != k {
			t.Errorf("token %d: expected %s, got %s", i, k, toks[i].Type)
		}
	}
	if toks[3].Literal != "λ" || toks[3].Reason != diagnostic.ErrInvalidSymbol {
		t.Errorf("multi-byte symbol = %q (%s)", toks[3].Literal, toks[3].Reason)
	}
}

func TestPositions(t *testing.T) {
	toks := Tokenize("let x\n  = 1;", "main.ql")
	tests := []struct {
		line, column, offset int
	}{
		{1, 1, 0},
		{1, 5, 4},
		{2, 3, 8},
		{2, 5, 10},
		{2, 6, 11},
		{2, 7, 12},
	}
	for i, tt := range tests {
		start := toks[i].Span.Start
		if start.Line != tt.line || start.Column != tt.column || start.Offset != tt.offset {
			t.Errorf("tests[%d] - %s at %d:%d+%d, expected %d:%d+%d", i, toks[i].Type,
				start.Line, start.Column, start.Offset, tt.line, tt.column, tt.offset)
		}
		if start.Filename != "main.ql" {
			t.Errorf("tests[%d] - filename %q", i, start.Filename)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != TokenEOF || tok.Span.Start.Offset != 1 {
			t.Fatalf("call %d: %v", i, tok)
		}
	}
}

// Every byte is covered by exactly one token or by whitespace and comments.
func TestByteAccounting(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"let x = 1 +% 2; // trailing",
		"function f(void) { return 0x10 as uint8; }\n\n",
		"\"unterminated",
		"'ab' @ λ 1.5 \"s\\n\" 'c'",
		"//only a comment",
		"struct { a: &?~int8 }\r\n",
	}

	for i, input := range inputs {
		toks := Tokenize(input, "")
		prev := 0
		for _, tok := range toks {
			gap := input[prev:tok.Span.Start.Offset]
			if !isSkippable(gap) {
				t.Fatalf("inputs[%d] - unaccounted bytes %q before %s", i, gap, tok.Type)
			}
			if tok.Literal != input[tok.Span.Start.Offset:tok.Span.End.Offset] {
				t.Fatalf("inputs[%d] - literal %q does not match its span", i, tok.Literal)
			}
			prev = tok.Span.End.Offset
		}
		if last := toks[len(toks)-1]; last.Type != TokenEOF || last.Span.End.Offset != len(input) {
			t.Fatalf("inputs[%d] - EOF at %d, expected %d", i, last.Span.End.Offset, len(input))
		}
	}
}

func isSkippable(gap string) bool {
	for _, line := range strings.SplitAfter(gap, "\n") {
		body := strings.TrimLeft(line, " \t\r\n")
		if body != "" && !strings.HasPrefix(body, "//") {
			return false
		}
	}
	return true
}
