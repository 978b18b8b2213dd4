package ast

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/position"
)

func ident(name string) *Identifier { return &Identifier{Value: name} }

func intLit(v int64) *Literal { return &Literal{Kind: LiteralInt, Int: v} }

func TestExpressionString(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{
			name: "binary precedence is implicit",
			node: &Binary{Op: lexer.TokenAdd, Left: intLit(1),
				Right: &Binary{Op: lexer.TokenMul, Left: intLit(2), Right: intLit(3)}},
			expected: "1 + 2 * 3",
		},
		{
			name:     "group keeps parentheses",
			node:     &Binary{Op: lexer.TokenMulWrap, Left: &Group{Inner: &Binary{Op: lexer.TokenAdd, Left: ident("a"), Right: ident("b")}}, Right: ident("c")},
			expected: "(a + b) *% c",
		},
		{
			name:     "compound assign",
			node:     &Assign{Op: lexer.TokenShlAssign, Target: ident("x"), Value: intLit(2)},
			expected: "x <<= 2",
		},
		{
			name:     "unary try and deref",
			node:     &Unary{Op: lexer.TokenTry, Operand: &Unary{Op: lexer.TokenMul, Operand: ident("p")}},
			expected: "try *p",
		},
		{
			name: "postfix chain",
			node: &Index{Array: &Field{Parent: &Call{Callee: ident("f"), Args: []Expression{intLit(1), ident("y")}},
				Name: ident("items")}, Index: intLit(0)},
			expected: "f(1, y).items[0]",
		},
		{
			name:     "cast",
			node:     &Cast{Expr: ident("n"), Type: &WrapperType{Kind: WrapPointer, Inner: &PrimitiveType{Kind: lexer.TokenUint8, Mutable: true}}},
			expected: "n as &mut uint8",
		},
		{
			name:     "array literal",
			node:     &ArrayInit{Elements: []Expression{intLit(1), &Literal{Kind: LiteralFloat, Float: 2}}},
			expected: "[1, 2.0]",
		},
		{
			name:     "string and char escapes",
			node:     &Call{Callee: ident("print"), Args: []Expression{&Literal{Kind: LiteralString, Str: "a\"b\n"}, &Literal{Kind: LiteralChar, Char: '\''}}},
			expected: `print("a\"b\n", '\'')`,
		},
		{
			name: "block with tail",
			node: &Block{Statements: []Statement{
				&ExpressionStatement{Expression: intLit(1)},
				&VarStatement{Decl: &VariableDeclaration{Targets: []*LValue{{Name: ident("x")}}, Values: []Expression{intLit(2)}}},
			}, Tail: ident("x")},
			expected: "{ 1; let x = 2; x }",
		},
		{
			name:     "if else",
			node:     &IfExpression{Cond: ident("c"), Body: &Block{Tail: intLit(1)}, Else: &Block{}},
			expected: "if (c) { 1 } else {}",
		},
		{
			name:     "return with value",
			node:     &JumpExpression{Op: lexer.TokenReturn, Value: ident("v")},
			expected: "return v",
		},
		{
			name:     "bare break",
			node:     &JumpExpression{Op: lexer.TokenBreak},
			expected: "break",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.expected {
				t.Errorf("String() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestDeclarationString(t *testing.T) {
	tests := []struct {
		name     string
		node     Declaration
		expected string
	}{
		{
			name: "struct",
			node: &StructDeclaration{Name: ident("Point"), Fields: []*LValue{
				{Name: ident("x"), Type: &PrimitiveType{Kind: lexer.TokenFloat32}},
				{Name: ident("y"), Type: &PrimitiveType{Kind: lexer.TokenFloat32}},
			}},
			expected: "struct Point { x: float32, y: float32 }",
		},
		{
			name:     "anonymous empty struct",
			node:     &StructDeclaration{},
			expected: "struct {}",
		},
		{
			name:     "union",
			node:     &UnionDeclaration{Name: ident("U"), Members: []Type{&PrimitiveType{Kind: lexer.TokenInt8}, &NamedType{Name: ident("Point")}}},
			expected: "union U { int8, Point }",
		},
		{
			name:     "enum",
			node:     &EnumDeclaration{Name: ident("Color"), Variants: []*EnumVariant{{Name: ident("Red")}, {Name: ident("Blue"), Value: intLit(4)}}},
			expected: "enum Color { Red, Blue = 4 }",
		},
		{
			name: "function",
			node: &FunctionDeclaration{
				Name:    ident("area"),
				Params:  []*LValue{{Name: ident("w"), Type: &PrimitiveType{Kind: lexer.TokenInt32}}, {Name: ident("h")}},
				Returns: []Type{&PrimitiveType{Kind: lexer.TokenInt32}},
				Where:   []*WhereBinding{{Name: ident("k"), Value: intLit(2)}},
				Body:    &Block{Tail: &Binary{Op: lexer.TokenMul, Left: ident("w"), Right: ident("h")}},
			},
			expected: "function area(w: int32, h) int32 where k = 2 { w * h }",
		},
		{
			name:     "include",
			node:     &IncludeDeclaration{Path: "std/io.ql"},
			expected: `include "std/io.ql";`,
		},
		{
			name: "function type in a variable",
			node: &VariableDeclaration{
				Targets: []*LValue{{Name: ident("cb"), Type: &FunctionType{Params: []Type{&ArrayType{Size: intLit(4), Elem: &PrimitiveType{Kind: lexer.TokenChar}}}, Returns: &WrapperType{Kind: WrapOptional, Inner: &PrimitiveType{Kind: lexer.TokenBool}}}}},
				Values:  []Expression{&Literal{Kind: LiteralBool}},
			},
			expected: "let cb: function([4]char) ?bool = false;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.expected {
				t.Errorf("String() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	prog := &Program{Declarations: []Declaration{
		&IncludeDeclaration{Path: "std.ql"},
		&FunctionDeclaration{
			Name: ident("main"),
			Body: &Block{Statements: []Statement{
				&ExpressionStatement{Expression: &WhileExpression{Cond: ident("run"), Body: &Block{Statements: []Statement{
					&ExpressionStatement{Expression: &JumpExpression{Op: lexer.TokenBreak}},
				}}}},
			}, Tail: intLit(0)},
		},
	}}

	expected := "include \"std.ql\";\n" +
		"function main() {\n" +
		"\twhile (run) {\n" +
		"\t\tbreak;\n" +
		"\t};\n" +
		"\t0\n" +
		"}\n"
	if got := Format(prog); got != expected {
		t.Errorf("Format() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestSExpr(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{&Binary{Op: lexer.TokenAdd, Left: intLit(1), Right: &Binary{Op: lexer.TokenMul, Left: intLit(2), Right: intLit(3)}}, "(ADD 1 (MUL 2 3))"},
		{&Assign{Op: lexer.TokenAssign, Target: ident("a"), Value: &Assign{Op: lexer.TokenAssign, Target: ident("b"), Value: ident("c")}}, "(ASSIGN a (ASSIGN b c))"},
		{&Field{Parent: &Group{Inner: &Unary{Op: lexer.TokenMul, Operand: ident("a")}}, Name: ident("b")}, "(FIELD (GROUP (MUL a)) b)"},
		{&Block{Statements: []Statement{&ExpressionStatement{Expression: intLit(1)}}, Tail: intLit(2)}, "(BLOCK (EXPR 1) (TAIL 2))"},
		{&IfExpression{Cond: ident("c"), Body: intLit(1), Else: intLit(2)}, "(IF c 1 2)"},
		{&JumpExpression{Op: lexer.TokenContinue}, "(CONTINUE)"},
		{&Cast{Expr: ident("x"), Type: &PrimitiveType{Kind: lexer.TokenInt64}}, "(AS x int64)"},
		{&StructDeclaration{Name: ident("P"), Fields: []*LValue{{Name: ident("x"), Type: &PrimitiveType{Kind: lexer.TokenBool}}}}, "(STRUCT P (x bool))"},
		{nil, "nil"},
	}

	for i, tt := range tests {
		if got := SExpr(tt.node); got != tt.expected {
			t.Errorf("tests[%d] - SExpr() = %q, expected %q", i, got, tt.expected)
		}
	}
}

func TestInspect(t *testing.T) {
	fn := &FunctionDeclaration{
		Name:   ident("f"),
		Params: []*LValue{{Name: ident("a")}},
		Body: &Block{Tail: &Call{Callee: ident("g"), Args: []Expression{
			&Binary{Op: lexer.TokenAdd, Left: ident("a"), Right: intLit(1)},
		}}},
	}

	var idents []string
	Inspect(fn, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			idents = append(idents, id.Value)
		}
		return true
	})
	if got := strings.Join(idents, ","); got != "f,a,g,a" {
		t.Errorf("identifiers visited = %q", got)
	}

	count := 0
	Inspect(fn, func(n Node) bool {
		count++
		_, isBlock := n.(*Block)
		return !isBlock
	})
	if count != 5 {
		t.Errorf("visited %d nodes with pruning, expected 5", count)
	}
}

func TestDumpYAML(t *testing.T) {
	span := position.Span{Start: position.Position{Line: 3, Column: 7}, End: position.Position{Line: 3, Column: 12}}
	node := &Binary{Span: span, Op: lexer.TokenEq, Left: ident("x"), Right: intLit(1)}

	out, err := DumpYAML(node)
	if err != nil {
		t.Fatalf("DumpYAML: %v", err)
	}

	var decoded dumpNode
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if decoded.Kind != "Binary" || decoded.Op != "EQ" || decoded.Pos != "3:7" {
		t.Errorf("unexpected root %+v", decoded)
	}
	if len(decoded.Children) != 2 || decoded.Children[0].Value != "x" || decoded.Children[1].Value != "1" {
		t.Errorf("unexpected children %+v", decoded.Children)
	}
}
