package ast

import (
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/position"
)

// ===== Expressions =====

type Identifier struct {
	Span  position.Span
	Value string
}

func (i *Identifier) GetSpan() position.Span             { return i.Span }
func (i *Identifier) expressionNode()                    {}
func (i *Identifier) String() string                     { return i.Value }
func (i *Identifier) Accept(visitor Visitor) interface{} { return visitor.VisitIdentifier(i) }

// LiteralKind tags the payload held by a Literal.
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralInt
	LiteralUint
	LiteralFloat
	LiteralChar
	LiteralString
)

var literalKindNames = [...]string{"bool", "int", "uint", "float", "char", "string"}

func (k LiteralKind) String() string { return literalKindNames[k] }

// Literal is a constant. Only the field selected by Kind is meaningful.
type Literal struct {
	Span  position.Span
	Kind  LiteralKind
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Char  byte
	Str   string
}

func (l *Literal) GetSpan() position.Span             { return l.Span }
func (l *Literal) expressionNode()                    {}
func (l *Literal) String() string                     { return sprint(l) }
func (l *Literal) Accept(visitor Visitor) interface{} { return visitor.VisitLiteral(l) }

// Unary is a prefix operator application. Op is one of ~ ! - & * try.
type Unary struct {
	Span    position.Span
	Op      lexer.TokenType
	Operand Expression
}

func (u *Unary) GetSpan() position.Span             { return u.Span }
func (u *Unary) expressionNode()                    {}
func (u *Unary) String() string                     { return sprint(u) }
func (u *Unary) Accept(visitor Visitor) interface{} { return visitor.VisitUnary(u) }

type Binary struct {
	Span  position.Span
	Op    lexer.TokenType
	Left  Expression
	Right Expression
}

func (b *Binary) GetSpan() position.Span             { return b.Span }
func (b *Binary) expressionNode()                    {}
func (b *Binary) String() string                     { return sprint(b) }
func (b *Binary) Accept(visitor Visitor) interface{} { return visitor.VisitBinary(b) }

// Assign is = or a compound assignment such as += or <<=.
type Assign struct {
	Span   position.Span
	Op     lexer.TokenType
	Target Expression
	Value  Expression
}

func (a *Assign) GetSpan() position.Span             { return a.Span }
func (a *Assign) expressionNode()                    {}
func (a *Assign) String() string                     { return sprint(a) }
func (a *Assign) Accept(visitor Visitor) interface{} { return visitor.VisitAssign(a) }

// Group is a parenthesized expression. It is kept in the tree so that the
// printed form round-trips.
type Group struct {
	Span  position.Span
	Inner Expression
}

func (g *Group) GetSpan() position.Span             { return g.Span }
func (g *Group) expressionNode()                    {}
func (g *Group) String() string                     { return sprint(g) }
func (g *Group) Accept(visitor Visitor) interface{} { return visitor.VisitGroup(g) }

type Call struct {
	Span   position.Span
	Callee Expression
	Args   []Expression
}

func (c *Call) GetSpan() position.Span             { return c.Span }
func (c *Call) expressionNode()                    {}
func (c *Call) String() string                     { return sprint(c) }
func (c *Call) Accept(visitor Visitor) interface{} { return visitor.VisitCall(c) }

// Field is parent.name. The parser also produces it for parent->name,
// with parent rewritten to (*parent).
type Field struct {
	Span   position.Span
	Parent Expression
	Name   *Identifier
}

func (f *Field) GetSpan() position.Span             { return f.Span }
func (f *Field) expressionNode()                    {}
func (f *Field) String() string                     { return sprint(f) }
func (f *Field) Accept(visitor Visitor) interface{} { return visitor.VisitField(f) }

type Index struct {
	Span  position.Span
	Array Expression
	Index Expression
}

func (i *Index) GetSpan() position.Span             { return i.Span }
func (i *Index) expressionNode()                    {}
func (i *Index) String() string                     { return sprint(i) }
func (i *Index) Accept(visitor Visitor) interface{} { return visitor.VisitIndex(i) }

// ArrayInit is an array literal [a, b, c].
type ArrayInit struct {
	Span     position.Span
	Elements []Expression
}

func (a *ArrayInit) GetSpan() position.Span             { return a.Span }
func (a *ArrayInit) expressionNode()                    {}
func (a *ArrayInit) String() string                     { return sprint(a) }
func (a *ArrayInit) Accept(visitor Visitor) interface{} { return visitor.VisitArrayInit(a) }

type Cast struct {
	Span position.Span
	Expr Expression
	Type Type
}

func (c *Cast) GetSpan() position.Span             { return c.Span }
func (c *Cast) expressionNode()                    {}
func (c *Cast) String() string                     { return sprint(c) }
func (c *Cast) Accept(visitor Visitor) interface{} { return visitor.VisitCast(c) }

// Block is a braced statement sequence. Tail, when present, is the
// expression whose value the block yields.
type Block struct {
	Span       position.Span
	Statements []Statement
	Tail       Expression
}

func (b *Block) GetSpan() position.Span             { return b.Span }
func (b *Block) expressionNode()                    {}
func (b *Block) String() string                     { return sprint(b) }
func (b *Block) Accept(visitor Visitor) interface{} { return visitor.VisitBlock(b) }

// IfExpression is if (Cond) Body [else Else].
type IfExpression struct {
	Span position.Span
	Cond Expression
	Body Expression
	Else Expression
}

func (i *IfExpression) GetSpan() position.Span             { return i.Span }
func (i *IfExpression) expressionNode()                    {}
func (i *IfExpression) String() string                     { return sprint(i) }
func (i *IfExpression) Accept(visitor Visitor) interface{} { return visitor.VisitIf(i) }

// WhileExpression is while (Cond) Body [else Else]. for loops are lowered to
// this node by the parser.
type WhileExpression struct {
	Span position.Span
	Cond Expression
	Body Expression
	Else Expression
}

func (w *WhileExpression) GetSpan() position.Span             { return w.Span }
func (w *WhileExpression) expressionNode()                    {}
func (w *WhileExpression) String() string                     { return sprint(w) }
func (w *WhileExpression) Accept(visitor Visitor) interface{} { return visitor.VisitWhile(w) }

// JumpExpression is return, break or continue with an optional value.
type JumpExpression struct {
	Span  position.Span
	Op    lexer.TokenType
	Value Expression
}

func (j *JumpExpression) GetSpan() position.Span             { return j.Span }
func (j *JumpExpression) expressionNode()                    {}
func (j *JumpExpression) String() string                     { return sprint(j) }
func (j *JumpExpression) Accept(visitor Visitor) interface{} { return visitor.VisitJump(j) }

// ===== Statements =====

// ExpressionStatement is an expression terminated by a semicolon.
type ExpressionStatement struct {
	Span       position.Span
	Expression Expression
}

func (e *ExpressionStatement) GetSpan() position.Span { return e.Span }
func (e *ExpressionStatement) statementNode()         {}
func (e *ExpressionStatement) String() string         { return sprint(e) }
func (e *ExpressionStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitExpressionStatement(e)
}

// BlockStatement is a nested block used as a statement without a
// terminating semicolon.
type BlockStatement struct {
	Span  position.Span
	Block *Block
}

func (b *BlockStatement) GetSpan() position.Span { return b.Span }
func (b *BlockStatement) statementNode()         {}
func (b *BlockStatement) String() string         { return sprint(b) }
func (b *BlockStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitBlockStatement(b)
}

// VarStatement is a let declaration inside a block.
type VarStatement struct {
	Span position.Span
	Decl *VariableDeclaration
}

func (v *VarStatement) GetSpan() position.Span             { return v.Span }
func (v *VarStatement) statementNode()                     {}
func (v *VarStatement) String() string                     { return sprint(v) }
func (v *VarStatement) Accept(visitor Visitor) interface{} { return visitor.VisitVarStatement(v) }
