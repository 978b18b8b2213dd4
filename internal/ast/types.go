package ast

import (
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/position"
)

// ===== Types =====

// PrimitiveType is a built-in type keyword such as int32 or noreturn.
type PrimitiveType struct {
	Span    position.Span
	Kind    lexer.TokenType
	Mutable bool
}

func (p *PrimitiveType) GetSpan() position.Span             { return p.Span }
func (p *PrimitiveType) typeNode()                          {}
func (p *PrimitiveType) IsMutable() bool                    { return p.Mutable }
func (p *PrimitiveType) String() string                     { return sprint(p) }
func (p *PrimitiveType) Accept(visitor Visitor) interface{} { return visitor.VisitPrimitiveType(p) }

// WrapperKind selects the prefix of a WrapperType.
type WrapperKind int

const (
	WrapPointer  WrapperKind = iota // &T
	WrapOptional                    // ?T
	WrapResult                      // ~T
)

var wrapperPrefixes = [...]string{"&", "?", "~"}

func (k WrapperKind) String() string { return wrapperPrefixes[k] }

type WrapperType struct {
	Span    position.Span
	Kind    WrapperKind
	Inner   Type
	Mutable bool
}

func (w *WrapperType) GetSpan() position.Span             { return w.Span }
func (w *WrapperType) typeNode()                          {}
func (w *WrapperType) IsMutable() bool                    { return w.Mutable }
func (w *WrapperType) String() string                     { return sprint(w) }
func (w *WrapperType) Accept(visitor Visitor) interface{} { return visitor.VisitWrapperType(w) }

// ArrayType is [Size]Elem; Size is nil for an unsized array.
type ArrayType struct {
	Span    position.Span
	Size    Expression
	Elem    Type
	Mutable bool
}

func (a *ArrayType) GetSpan() position.Span             { return a.Span }
func (a *ArrayType) typeNode()                          {}
func (a *ArrayType) IsMutable() bool                    { return a.Mutable }
func (a *ArrayType) String() string                     { return sprint(a) }
func (a *ArrayType) Accept(visitor Visitor) interface{} { return visitor.VisitArrayType(a) }

// CompoundType is an inline struct, union or enum definition in type
// position.
type CompoundType struct {
	Span    position.Span
	Decl    Declaration
	Mutable bool
}

func (c *CompoundType) GetSpan() position.Span             { return c.Span }
func (c *CompoundType) typeNode()                          {}
func (c *CompoundType) IsMutable() bool                    { return c.Mutable }
func (c *CompoundType) String() string                     { return sprint(c) }
func (c *CompoundType) Accept(visitor Visitor) interface{} { return visitor.VisitCompoundType(c) }

// FunctionType is a function signature: function(T, U) R.
type FunctionType struct {
	Span    position.Span
	Params  []Type
	Returns Type // nil when the signature has no result
	Mutable bool
}

func (f *FunctionType) GetSpan() position.Span             { return f.Span }
func (f *FunctionType) typeNode()                          {}
func (f *FunctionType) IsMutable() bool                    { return f.Mutable }
func (f *FunctionType) String() string                     { return sprint(f) }
func (f *FunctionType) Accept(visitor Visitor) interface{} { return visitor.VisitFunctionType(f) }

// NamedType refers to a type by identifier.
type NamedType struct {
	Span    position.Span
	Name    *Identifier
	Mutable bool
}

func (n *NamedType) GetSpan() position.Span             { return n.Span }
func (n *NamedType) typeNode()                          {}
func (n *NamedType) IsMutable() bool                    { return n.Mutable }
func (n *NamedType) String() string                     { return sprint(n) }
func (n *NamedType) Accept(visitor Visitor) interface{} { return visitor.VisitNamedType(n) }
