// Package ast defines the abstract syntax tree produced by the Quill parser.
//
// Every node owns its children exclusively; the tree has no shared or back
// references. All nodes implement Node, and the marker methods on Expression,
// Statement, Declaration and Type keep the four syntactic categories apart at
// compile time. String returns re-parsable source text for any node.
package ast

import (
	"github.com/quill-lang/quill/internal/position"
)

// Node is the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// String returns the node as source text
	String() string
	// Accept implements the visitor pattern for AST traversal
	Accept(visitor Visitor) interface{}
}

// Statement represents all statement nodes in the AST
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes in the AST
type Expression interface {
	Node
	expressionNode()
}

// Declaration represents all declaration nodes in the AST
type Declaration interface {
	Node
	declarationNode()
}

// Type represents all type nodes in the AST
type Type interface {
	Node
	typeNode()
	// IsMutable reports whether the type carries the mut qualifier.
	IsMutable() bool
}

// Program is the root of the AST for one source file.
type Program struct {
	Span         position.Span
	Filename     string
	Declarations []Declaration
}

func (p *Program) GetSpan() position.Span             { return p.Span }
func (p *Program) String() string                     { return sprint(p) }
func (p *Program) Accept(visitor Visitor) interface{} { return visitor.VisitProgram(p) }

// Includes returns the paths named by the program's include declarations in
// source order.
func (p *Program) Includes() []string {
	var paths []string
	for _, decl := range p.Declarations {
		if inc, ok := decl.(*IncludeDeclaration); ok {
			paths = append(paths, inc.Path)
		}
	}
	return paths
}

// ===== Declarations =====

// LValue is a binding site: a name with an optional type annotation.
type LValue struct {
	Span position.Span
	Name *Identifier
	Type Type // nil when omitted
}

func (l *LValue) GetSpan() position.Span             { return l.Span }
func (l *LValue) String() string                     { return sprint(l) }
func (l *LValue) Accept(visitor Visitor) interface{} { return visitor.VisitLValue(l) }

// VariableDeclaration binds one or more lvalues to a list of values:
// let a: int32, b = 1, 2;
type VariableDeclaration struct {
	Span    position.Span
	Targets []*LValue
	Values  []Expression
}

func (v *VariableDeclaration) GetSpan() position.Span { return v.Span }
func (v *VariableDeclaration) declarationNode()       {}
func (v *VariableDeclaration) String() string         { return sprint(v) }
func (v *VariableDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitVariableDeclaration(v)
}

// StructDeclaration is a struct with typed fields. Name is nil for an
// anonymous struct used in type position.
type StructDeclaration struct {
	Span   position.Span
	Name   *Identifier
	Fields []*LValue
}

func (s *StructDeclaration) GetSpan() position.Span { return s.Span }
func (s *StructDeclaration) declarationNode()       {}
func (s *StructDeclaration) String() string         { return sprint(s) }
func (s *StructDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitStructDeclaration(s)
}

// UnionDeclaration lists the member types of a union.
type UnionDeclaration struct {
	Span    position.Span
	Name    *Identifier
	Members []Type
}

func (u *UnionDeclaration) GetSpan() position.Span { return u.Span }
func (u *UnionDeclaration) declarationNode()       {}
func (u *UnionDeclaration) String() string         { return sprint(u) }
func (u *UnionDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitUnionDeclaration(u)
}

// EnumVariant is one enum member with an optional explicit value.
type EnumVariant struct {
	Span  position.Span
	Name  *Identifier
	Value Expression
}

func (e *EnumVariant) GetSpan() position.Span             { return e.Span }
func (e *EnumVariant) String() string                     { return sprint(e) }
func (e *EnumVariant) Accept(visitor Visitor) interface{} { return visitor.VisitEnumVariant(e) }

type EnumDeclaration struct {
	Span     position.Span
	Name     *Identifier
	Variants []*EnumVariant
}

func (e *EnumDeclaration) GetSpan() position.Span { return e.Span }
func (e *EnumDeclaration) declarationNode()       {}
func (e *EnumDeclaration) String() string         { return sprint(e) }
func (e *EnumDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitEnumDeclaration(e)
}

// WhereBinding is an auxiliary binding introduced by a function's where
// clause: name [: type] = value.
type WhereBinding struct {
	Span  position.Span
	Name  *Identifier
	Type  Type
	Value Expression
}

func (w *WhereBinding) GetSpan() position.Span             { return w.Span }
func (w *WhereBinding) String() string                     { return sprint(w) }
func (w *WhereBinding) Accept(visitor Visitor) interface{} { return visitor.VisitWhereBinding(w) }

// FunctionDeclaration is a named function with a body.
type FunctionDeclaration struct {
	Span position.Span
	Name *Identifier
	// Params is nil for a function declared with (void) or ().
	Params  []*LValue
	Returns []Type
	Where   []*WhereBinding
	Body    *Block
}

func (f *FunctionDeclaration) GetSpan() position.Span { return f.Span }
func (f *FunctionDeclaration) declarationNode()       {}
func (f *FunctionDeclaration) String() string         { return sprint(f) }
func (f *FunctionDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitFunctionDeclaration(f)
}

// IncludeDeclaration names a dependency file. Resolution happens in the
// driver, not the parser.
type IncludeDeclaration struct {
	Span position.Span
	Path string
}

func (i *IncludeDeclaration) GetSpan() position.Span { return i.Span }
func (i *IncludeDeclaration) declarationNode()       {}
func (i *IncludeDeclaration) String() string         { return sprint(i) }
func (i *IncludeDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitIncludeDeclaration(i)
}

// BadDeclaration marks a top-level declaration that failed to parse. It keeps
// the slot so later declarations retain their index.
type BadDeclaration struct {
	Span position.Span
}

func (b *BadDeclaration) GetSpan() position.Span { return b.Span }
func (b *BadDeclaration) declarationNode()       {}
func (b *BadDeclaration) String() string         { return "// bad declaration" }
func (b *BadDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitBadDeclaration(b)
}
