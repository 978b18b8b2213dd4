package ast

// Visitor defines the interface for visiting AST nodes.
type Visitor interface {
	VisitProgram(node *Program) interface{}

	// Declarations
	VisitLValue(node *LValue) interface{}
	VisitVariableDeclaration(node *VariableDeclaration) interface{}
	VisitStructDeclaration(node *StructDeclaration) interface{}
	VisitUnionDeclaration(node *UnionDeclaration) interface{}
	VisitEnumVariant(node *EnumVariant) interface{}
	VisitEnumDeclaration(node *EnumDeclaration) interface{}
	VisitWhereBinding(node *WhereBinding) interface{}
	VisitFunctionDeclaration(node *FunctionDeclaration) interface{}
	VisitIncludeDeclaration(node *IncludeDeclaration) interface{}
	VisitBadDeclaration(node *BadDeclaration) interface{}

	// Expressions
	VisitIdentifier(node *Identifier) interface{}
	VisitLiteral(node *Literal) interface{}
	VisitUnary(node *Unary) interface{}
	VisitBinary(node *Binary) interface{}
	VisitAssign(node *Assign) interface{}
	VisitGroup(node *Group) interface{}
	VisitCall(node *Call) interface{}
	VisitField(node *Field) interface{}
	VisitIndex(node *Index) interface{}
	VisitArrayInit(node *ArrayInit) interface{}
	VisitCast(node *Cast) interface{}
	VisitBlock(node *Block) interface{}
	VisitIf(node *IfExpression) interface{}
	VisitWhile(node *WhileExpression) interface{}
	VisitJump(node *JumpExpression) interface{}

	// Statements
	VisitExpressionStatement(node *ExpressionStatement) interface{}
	VisitBlockStatement(node *BlockStatement) interface{}
	VisitVarStatement(node *VarStatement) interface{}

	// Types
	VisitPrimitiveType(node *PrimitiveType) interface{}
	VisitWrapperType(node *WrapperType) interface{}
	VisitArrayType(node *ArrayType) interface{}
	VisitCompoundType(node *CompoundType) interface{}
	VisitFunctionType(node *FunctionType) interface{}
	VisitNamedType(node *NamedType) interface{}
}

// BaseVisitor provides default implementations for all visitor methods.
// Embed it to override only the node types of interest.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitProgram(node *Program) interface{}                         { return nil }
func (v *BaseVisitor) VisitLValue(node *LValue) interface{}                           { return nil }
func (v *BaseVisitor) VisitVariableDeclaration(node *VariableDeclaration) interface{} { return nil }
func (v *BaseVisitor) VisitStructDeclaration(node *StructDeclaration) interface{}     { return nil }
func (v *BaseVisitor) VisitUnionDeclaration(node *UnionDeclaration) interface{}       { return nil }
func (v *BaseVisitor) VisitEnumVariant(node *EnumVariant) interface{}                 { return nil }
func (v *BaseVisitor) VisitEnumDeclaration(node *EnumDeclaration) interface{}         { return nil }
func (v *BaseVisitor) VisitWhereBinding(node *WhereBinding) interface{}               { return nil }
func (v *BaseVisitor) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} { return nil }
func (v *BaseVisitor) VisitIncludeDeclaration(node *IncludeDeclaration) interface{}   { return nil }
func (v *BaseVisitor) VisitBadDeclaration(node *BadDeclaration) interface{}           { return nil }
func (v *BaseVisitor) VisitIdentifier(node *Identifier) interface{}                   { return nil }
func (v *BaseVisitor) VisitLiteral(node *Literal) interface{}                         { return nil }
func (v *BaseVisitor) VisitUnary(node *Unary) interface{}                             { return nil }
func (v *BaseVisitor) VisitBinary(node *Binary) interface{}                           { return nil }
func (v *BaseVisitor) VisitAssign(node *Assign) interface{}                           { return nil }
func (v *BaseVisitor) VisitGroup(node *Group) interface{}                             { return nil }
func (v *BaseVisitor) VisitCall(node *Call) interface{}                               { return nil }
func (v *BaseVisitor) VisitField(node *Field) interface{}                             { return nil }
func (v *BaseVisitor) VisitIndex(node *Index) interface{}                             { return nil }
func (v *BaseVisitor) VisitArrayInit(node *ArrayInit) interface{}                     { return nil }
func (v *BaseVisitor) VisitCast(node *Cast) interface{}                               { return nil }
func (v *BaseVisitor) VisitBlock(node *Block) interface{}                             { return nil }
func (v *BaseVisitor) VisitIf(node *IfExpression) interface{}                         { return nil }
func (v *BaseVisitor) VisitWhile(node *WhileExpression) interface{}                   { return nil }
func (v *BaseVisitor) VisitJump(node *JumpExpression) interface{}                     { return nil }
func (v *BaseVisitor) VisitExpressionStatement(node *ExpressionStatement) interface{} { return nil }
func (v *BaseVisitor) VisitBlockStatement(node *BlockStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitVarStatement(node *VarStatement) interface{}               { return nil }
func (v *BaseVisitor) VisitPrimitiveType(node *PrimitiveType) interface{}             { return nil }
func (v *BaseVisitor) VisitWrapperType(node *WrapperType) interface{}                 { return nil }
func (v *BaseVisitor) VisitArrayType(node *ArrayType) interface{}                     { return nil }
func (v *BaseVisitor) VisitCompoundType(node *CompoundType) interface{}               { return nil }
func (v *BaseVisitor) VisitFunctionType(node *FunctionType) interface{}               { return nil }
func (v *BaseVisitor) VisitNamedType(node *NamedType) interface{}                     { return nil }

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if !isNil(n) {
			out = append(out, n)
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, d := range n.Declarations {
			add(d)
		}
	case *LValue:
		add(n.Name)
		add(n.Type)
	case *VariableDeclaration:
		for _, t := range n.Targets {
			add(t)
		}
		for _, v := range n.Values {
			add(v)
		}
	case *StructDeclaration:
		add(n.Name)
		for _, f := range n.Fields {
			add(f)
		}
	case *UnionDeclaration:
		add(n.Name)
		for _, m := range n.Members {
			add(m)
		}
	case *EnumVariant:
		add(n.Name)
		add(n.Value)
	case *EnumDeclaration:
		add(n.Name)
		for _, v := range n.Variants {
			add(v)
		}
	case *WhereBinding:
		add(n.Name)
		add(n.Type)
		add(n.Value)
	case *FunctionDeclaration:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		for _, r := range n.Returns {
			add(r)
		}
		for _, w := range n.Where {
			add(w)
		}
		add(n.Body)
	case *Unary:
		add(n.Operand)
	case *Binary:
		add(n.Left)
		add(n.Right)
	case *Assign:
		add(n.Target)
		add(n.Value)
	case *Group:
		add(n.Inner)
	case *Call:
		add(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	case *Field:
		add(n.Parent)
		add(n.Name)
	case *Index:
		add(n.Array)
		add(n.Index)
	case *ArrayInit:
		for _, e := range n.Elements {
			add(e)
		}
	case *Cast:
		add(n.Expr)
		add(n.Type)
	case *Block:
		for _, s := range n.Statements {
			add(s)
		}
		add(n.Tail)
	case *IfExpression:
		add(n.Cond)
		add(n.Body)
		add(n.Else)
	case *WhileExpression:
		add(n.Cond)
		add(n.Body)
		add(n.Else)
	case *JumpExpression:
		add(n.Value)
	case *ExpressionStatement:
		add(n.Expression)
	case *BlockStatement:
		add(n.Block)
	case *VarStatement:
		add(n.Decl)
	case *WrapperType:
		add(n.Inner)
	case *ArrayType:
		add(n.Size)
		add(n.Elem)
	case *CompoundType:
		add(n.Decl)
	case *FunctionType:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Returns)
	case *NamedType:
		add(n.Name)
	}
	return out
}

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node. Children are skipped when f returns false.
func Inspect(node Node, f func(Node) bool) {
	if isNil(node) || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}

// isNil reports whether n is nil or a typed nil pointer wrapped in the
// interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *Block:
		return v == nil
	case *VariableDeclaration:
		return v == nil
	}
	return false
}
