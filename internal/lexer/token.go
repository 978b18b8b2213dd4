package lexer

import (
	"fmt"
	"strconv"

	"github.com/quill-lang/quill/internal/diagnostic"
	"github.com/quill-lang/quill/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types
const (
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenIdentifier
	TokenStringLit
	TokenUintLit
	TokenIntLit
	TokenFloatLit
	TokenCharLit

	// Arithmetic. The plain, assign, wrapping and wrapping-assign forms of
	// + - * are declared in that order.
	TokenAdd
	TokenAddAssign
	TokenAddWrap
	TokenAddWrapAssign
	TokenSub
	TokenSubAssign
	TokenSubWrap
	TokenSubWrapAssign
	TokenMul
	TokenMulAssign
	TokenMulWrap
	TokenMulWrapAssign
	TokenDiv
	TokenDivAssign
	TokenMod
	TokenModAssign

	// Comparison and bitwise
	TokenLt
	TokenLe
	TokenShl
	TokenShlAssign
	TokenGt
	TokenGe
	TokenShr
	TokenShrAssign
	TokenBitAnd
	TokenBitAndAssign
	TokenBitOr
	TokenBitOrAssign
	TokenBitXor
	TokenBitXorAssign
	TokenBitNot
	TokenNot
	TokenNe
	TokenAssign
	TokenEq

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenColon
	TokenSemicolon
	TokenQuestion
	TokenDot
	TokenComma
	TokenHash
	TokenArrow
	TokenFatArrow

	// Keywords
	TokenAnd
	TokenOr
	TokenOrElse
	TokenCatch
	TokenTry
	TokenAs
	TokenFunction
	TokenWhere
	TokenStruct
	TokenEnum
	TokenUnion
	TokenLet
	TokenMut
	TokenUndefined
	TokenExtern
	TokenInclude
	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenMatch
	TokenBreak
	TokenContinue
	TokenReturn

	// Primitive type keywords. IsPrimitive relies on this range being
	// contiguous.
	TokenInt8
	TokenInt16
	TokenInt32
	TokenInt64
	TokenIsize
	TokenUint8
	TokenUint16
	TokenUint32
	TokenUint64
	TokenUsize
	TokenFloat8
	TokenFloat16
	TokenFloat32
	TokenFloat64
	TokenFsize
	TokenTypeKeyword // the type of types
	TokenChar
	TokenBool
	TokenVoid
	TokenNoReturn

	TokenTrue
	TokenFalse

	tokenCount
)

var tokenNames = map[TokenType]string{
	TokenEOF:   "EOF",
	TokenError: "ERROR",

	TokenIdentifier: "IDENTIFIER",
	TokenStringLit:  "STRING_LIT",
	TokenUintLit:    "UINT_LIT",
	TokenIntLit:     "INT_LIT",
	TokenFloatLit:   "FLOAT_LIT",
	TokenCharLit:    "CHAR_LIT",

	TokenAdd:           "ADD",
	TokenAddAssign:     "ADD_ASSIGN",
	TokenAddWrap:       "ADD_WRAP",
	TokenAddWrapAssign: "ADD_WRAP_ASSIGN",
	TokenSub:           "SUB",
	TokenSubAssign:     "SUB_ASSIGN",
	TokenSubWrap:       "SUB_WRAP",
	TokenSubWrapAssign: "SUB_WRAP_ASSIGN",
	TokenMul:           "MUL",
	TokenMulAssign:     "MUL_ASSIGN",
	TokenMulWrap:       "MUL_WRAP",
	TokenMulWrapAssign: "MUL_WRAP_ASSIGN",
	TokenDiv:           "DIV",
	TokenDivAssign:     "DIV_ASSIGN",
	TokenMod:           "MOD",
	TokenModAssign:     "MOD_ASSIGN",

	TokenLt:           "LT",
	TokenLe:           "LT_EQ",
	TokenShl:          "BIT_SHL",
	TokenShlAssign:    "BIT_SHL_ASSIGN",
	TokenGt:           "GT",
	TokenGe:           "GT_EQ",
	TokenShr:          "BIT_SHR",
	TokenShrAssign:    "BIT_SHR_ASSIGN",
	TokenBitAnd:       "BIT_AND",
	TokenBitAndAssign: "BIT_AND_ASSIGN",
	TokenBitOr:        "BIT_OR",
	TokenBitOrAssign:  "BIT_OR_ASSIGN",
	TokenBitXor:       "BIT_XOR",
	TokenBitXorAssign: "BIT_XOR_ASSIGN",
	TokenBitNot:       "BIT_NOT",
	TokenNot:          "NOT",
	TokenNe:           "NOT_EQ",
	TokenAssign:       "ASSIGN",
	TokenEq:           "EQ",

	TokenLParen:    "LEFT_PAREN",
	TokenRParen:    "RIGHT_PAREN",
	TokenLBracket:  "LEFT_BRACKET",
	TokenRBracket:  "RIGHT_BRACKET",
	TokenLBrace:    "LEFT_CURLY",
	TokenRBrace:    "RIGHT_CURLY",
	TokenColon:     "COLON",
	TokenSemicolon: "SEMICOLON",
	TokenQuestion:  "QUESTION",
	TokenDot:       "DOT",
	TokenComma:     "COMMA",
	TokenHash:      "HASH",
	TokenArrow:     "ARROW",
	TokenFatArrow:  "FAT_ARROW",

	TokenAnd:       "AND",
	TokenOr:        "OR",
	TokenOrElse:    "ORELSE",
	TokenCatch:     "CATCH",
	TokenTry:       "TRY",
	TokenAs:        "AS",
	TokenFunction:  "FUNCTION",
	TokenWhere:     "WHERE",
	TokenStruct:    "STRUCT",
	TokenEnum:      "ENUM",
	TokenUnion:     "UNION",
	TokenLet:       "LET",
	TokenMut:       "MUT",
	TokenUndefined: "UNDEFINED",
	TokenExtern:    "EXTERN",
	TokenInclude:   "INCLUDE",
	TokenIf:        "IF",
	TokenElse:      "ELSE",
	TokenWhile:     "WHILE",
	TokenFor:       "FOR",
	TokenMatch:     "MATCH",
	TokenBreak:     "BREAK",
	TokenContinue:  "CONTINUE",
	TokenReturn:    "RETURN",

	TokenInt8:        "INT8",
	TokenInt16:       "INT16",
	TokenInt32:       "INT32",
	TokenInt64:       "INT64",
	TokenIsize:       "ISIZE",
	TokenUint8:       "UINT8",
	TokenUint16:      "UINT16",
	TokenUint32:      "UINT32",
	TokenUint64:      "UINT64",
	TokenUsize:       "USIZE",
	TokenFloat8:      "FLOAT8",
	TokenFloat16:     "FLOAT16",
	TokenFloat32:     "FLOAT32",
	TokenFloat64:     "FLOAT64",
	TokenFsize:       "FSIZE",
	TokenTypeKeyword: "TYPE",
	TokenChar:        "CHAR",
	TokenBool:        "BOOL",
	TokenVoid:        "VOID",
	TokenNoReturn:    "NORETURN",

	TokenTrue:  "TRUE",
	TokenFalse: "FALSE",
}

// keywords maps reserved words to their token types. Exact-match lookup
// keeps prefixes such as int/include and uint8/union apart.
var keywords = map[string]TokenType{
	"and":       TokenAnd,
	"or":        TokenOr,
	"orelse":    TokenOrElse,
	"catch":     TokenCatch,
	"try":       TokenTry,
	"as":        TokenAs,
	"function":  TokenFunction,
	"where":     TokenWhere,
	"struct":    TokenStruct,
	"enum":      TokenEnum,
	"union":     TokenUnion,
	"let":       TokenLet,
	"mut":       TokenMut,
	"undefined": TokenUndefined,
	"extern":    TokenExtern,
	"include":   TokenInclude,
	"if":        TokenIf,
	"else":      TokenElse,
	"while":     TokenWhile,
	"for":       TokenFor,
	"match":     TokenMatch,
	"break":     TokenBreak,
	"continue":  TokenContinue,
	"return":    TokenReturn,

	"int8":     TokenInt8,
	"int16":    TokenInt16,
	"int32":    TokenInt32,
	"int64":    TokenInt64,
	"isize":    TokenIsize,
	"uint8":    TokenUint8,
	"uint16":   TokenUint16,
	"uint32":   TokenUint32,
	"uint64":   TokenUint64,
	"usize":    TokenUsize,
	"float8":   TokenFloat8,
	"float16":  TokenFloat16,
	"float32":  TokenFloat32,
	"float64":  TokenFloat64,
	"fsize":    TokenFsize,
	"type":     TokenTypeKeyword,
	"char":     TokenChar,
	"bool":     TokenBool,
	"void":     TokenVoid,
	"noreturn": TokenNoReturn,

	"true":  TokenTrue,
	"false": TokenFalse,
}

// symbols holds the source spelling of every operator and punctuation token.
var symbols = map[TokenType]string{
	TokenAdd: "+", TokenAddAssign: "+=", TokenAddWrap: "+%", TokenAddWrapAssign: "+%=",
	TokenSub: "-", TokenSubAssign: "-=", TokenSubWrap: "-%", TokenSubWrapAssign: "-%=",
	TokenMul: "*", TokenMulAssign: "*=", TokenMulWrap: "*%", TokenMulWrapAssign: "*%=",
	TokenDiv: "/", TokenDivAssign: "/=", TokenMod: "%", TokenModAssign: "%=",

	TokenLt: "<", TokenLe: "<=", TokenShl: "<<", TokenShlAssign: "<<=",
	TokenGt: ">", TokenGe: ">=", TokenShr: ">>", TokenShrAssign: ">>=",
	TokenBitAnd: "&", TokenBitAndAssign: "&=",
	TokenBitOr: "|", TokenBitOrAssign: "|=",
	TokenBitXor: "^", TokenBitXorAssign: "^=",
	TokenBitNot: "~", TokenNot: "!", TokenNe: "!=", TokenAssign: "=", TokenEq: "==",

	TokenLParen: "(", TokenRParen: ")", TokenLBracket: "[", TokenRBracket: "]",
	TokenLBrace: "{", TokenRBrace: "}", TokenColon: ":", TokenSemicolon: ";",
	TokenQuestion: "?", TokenDot: ".", TokenComma: ",", TokenHash: "#",
	TokenArrow: "->", TokenFatArrow: "=>",
}

func init() {
	for word, tt := range keywords {
		symbols[tt] = word
	}
}

// Symbol returns the source spelling of an operator, punctuation or keyword
// token type, or the empty string for literal kinds.
func (tt TokenType) Symbol() string { return symbols[tt] }

// IsPrimitive reports whether tt names a built-in type.
func (tt TokenType) IsPrimitive() bool { return tt >= TokenInt8 && tt <= TokenNoReturn }

// IsLiteral reports whether tt carries a literal payload.
func (tt TokenType) IsLiteral() bool {
	switch tt {
	case TokenStringLit, TokenUintLit, TokenIntLit, TokenFloatLit, TokenCharLit,
		TokenTrue, TokenFalse:
		return true
	}
	return false
}

// IsKeyword reports whether tt is a reserved word.
func (tt TokenType) IsKeyword() bool { return tt >= TokenAnd && tt <= TokenFalse }

// LookupIdent returns the keyword token type for ident, or TokenIdentifier.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// Token represents a lexical token with position information
type Token struct {
	Type TokenType
	// Literal is the exact source text of the token.
	Literal string
	Span    position.Span

	// Decoded payload; which field is meaningful depends on Type.
	Text  string // identifier name or decoded string contents
	Int   int64
	Uint  uint64
	Float float64
	Char  byte

	// Reason is the lexical error carried by a TokenError token.
	Reason diagnostic.Code
}

// Value renders the decoded payload of a literal token.
func (t Token) Value() string {
	switch t.Type {
	case TokenIntLit:
		return strconv.FormatInt(t.Int, 10)
	case TokenUintLit:
		return strconv.FormatUint(t.Uint, 10)
	case TokenFloatLit:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	case TokenCharLit:
		return strconv.QuoteRune(rune(t.Char))
	case TokenStringLit:
		return strconv.Quote(t.Text)
	case TokenIdentifier:
		return t.Text
	case TokenTrue:
		return "true"
	case TokenFalse:
		return "false"
	}
	return ""
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Span.Start.Line, t.Span.Start.Column)
}
