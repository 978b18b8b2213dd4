// Package diagnostic defines the positioned error records produced by the Quill
// lexer and parser, the fixed error-code table, and a terminal reporter.
package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quill-lang/quill/internal/position"
)

// Code identifies an entry in the fixed error table. The numeric value is
// printed as part of every diagnostic, so existing values never change.
type Code int

const (
	ErrUnreachable Code = iota
	ErrUnimplemented

	ErrUnterminatedString
	ErrInvalidCharLiteral
	ErrInvalidSymbol

	ErrUnexpectedEOF

	ErrExpectedDeclaration
	ErrExpectedEndOfDeclaration
	ErrExpectedBlock
	ErrExpectedEndOfBlock
	ErrExpectedExpression
	ErrExpectedType
	ErrExpectedEndOfStatement
	ErrExpectedEndOfVariable

	ErrExpectedIdentifier
	ErrExpectedLeftParen
	ErrExpectedRightParen
	ErrExpectedLeftBrace
	ErrExpectedRightBrace
	ErrExpectedLeftBracket
	ErrExpectedRightBracket
	ErrExpectedAssign
	ErrExpectedString

	ErrInvalidNumber
	ErrInvalidEscape

	ErrNestingTooDeep

	codeCount
)

var messages = [codeCount]string{
	ErrUnreachable:   "unreachable",
	ErrUnimplemented: "unimplemented; check back later or add your own implementation",

	ErrUnterminatedString: "unterminated string",
	ErrInvalidCharLiteral: "invalid character literal",
	ErrInvalidSymbol:      "invalid symbol",

	ErrUnexpectedEOF: "unexpected end of file",

	ErrExpectedDeclaration:      "expected declaration",
	ErrExpectedEndOfDeclaration: "expected end of declaration; missing '}'?",
	ErrExpectedBlock:            "expected block",
	ErrExpectedEndOfBlock:       "expected end of block",
	ErrExpectedExpression:       "expected expression",
	ErrExpectedType:             "expected type",
	ErrExpectedEndOfStatement:   "expected end of statement",
	ErrExpectedEndOfVariable:    "expected end of variable; missing semicolon?",

	ErrExpectedIdentifier:   "expected an identifier",
	ErrExpectedLeftParen:    "expected '('",
	ErrExpectedRightParen:   "expected ')'",
	ErrExpectedLeftBrace:    "expected '{'",
	ErrExpectedRightBrace:   "expected '}'",
	ErrExpectedLeftBracket:  "expected '['",
	ErrExpectedRightBracket: "expected ']'",
	ErrExpectedAssign:       "expected assignment",
	ErrExpectedString:       "expected a string",

	ErrInvalidNumber: "invalid number literal",
	ErrInvalidEscape: "invalid escape sequence",

	ErrNestingTooDeep: "nesting too deep",
}

// Message returns the human-readable text for the code.
func (c Code) Message() string {
	if c < 0 || c >= codeCount {
		return fmt.Sprintf("unknown error %d", int(c))
	}
	return messages[c]
}

// String returns the code in its printed form, e.g. "E005".
func (c Code) String() string { return fmt.Sprintf("E%03d", int(c)) }

// Category groups codes by the stage that detects them.
type Category int

const (
	CategorySyntax Category = iota
	CategoryLexical
	CategoryControl
)

func (c Category) String() string {
	switch c {
	case CategoryLexical:
		return "lexical"
	case CategoryControl:
		return "control"
	default:
		return "syntax"
	}
}

// Category reports which part of the taxonomy the code belongs to.
func (c Code) Category() Category {
	switch c {
	case ErrUnterminatedString, ErrInvalidCharLiteral, ErrInvalidSymbol,
		ErrInvalidNumber, ErrInvalidEscape:
		return CategoryLexical
	case ErrUnreachable, ErrUnimplemented, ErrUnexpectedEOF, ErrNestingTooDeep:
		return CategoryControl
	default:
		return CategorySyntax
	}
}

// Diagnostic represents a single positioned error.
type Diagnostic struct {
	Code    Code
	Message string
	// Token is the offending token as it should be quoted in the report:
	// the decoded value for literal tokens, the token name otherwise.
	Token     string
	IsLiteral bool
	Span      position.Span
}

// New creates a diagnostic for code at span.
func New(code Code, span position.Span, token string, isLiteral bool) *Diagnostic {
	return &Diagnostic{
		Code:      code,
		Message:   code.Message(),
		Token:     token,
		IsLiteral: isLiteral,
		Span:      span,
	}
}

// Position returns the start of the diagnostic span.
func (d *Diagnostic) Position() position.Position { return d.Span.Start }

// Error implements the error interface with the single-line report format.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString("error @ ")
	b.WriteString(d.Span.Start.String())
	if d.Token != "" {
		if d.IsLiteral {
			fmt.Fprintf(&b, " at literal %s", d.Token)
		} else {
			fmt.Fprintf(&b, " at token %q", d.Token)
		}
	}
	fmt.Fprintf(&b, ": %s %s", d.Code, d.Message)
	return b.String()
}

// List is an ordered collection of diagnostics. A non-empty List is an error.
type List []*Diagnostic

// Add appends a diagnostic.
func (l *List) Add(d *Diagnostic) { *l = append(*l, d) }

func (l List) Len() int      { return len(l) }
func (l List) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l List) Less(i, j int) bool {
	a, b := l[i].Span.Start, l[j].Span.Start
	if a.Filename != b.Filename {
		return a.Filename < b.Filename
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.Column != b.Column {
		return a.Column < b.Column
	}
	return l[i].Code < l[j].Code
}

// Sort sorts the list by file and position.
func (l List) Sort() { sort.Stable(l) }

// Error implements the error interface.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns an error equivalent to this list, or nil if it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
