package ast

import (
	"strings"
)

// SExpr renders node in prefix form, e.g. (ADD 1 (MUL 2 3)). Operators are
// printed by token name and types in source form.
func SExpr(node Node) string {
	if isNil(node) {
		return "nil"
	}
	return node.Accept(&sexprVisitor{}).(string)
}

type sexprVisitor struct{}

func (v *sexprVisitor) list(head string, parts ...string) string {
	if len(parts) == 0 {
		return "(" + head + ")"
	}
	return "(" + head + " " + strings.Join(parts, " ") + ")"
}

func (v *sexprVisitor) of(n Node) string {
	if isNil(n) {
		return "nil"
	}
	return n.Accept(v).(string)
}

func (v *sexprVisitor) exprs(list []Expression) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = v.of(e)
	}
	return out
}

func (v *sexprVisitor) lvalues(list []*LValue) []string {
	out := make([]string, len(list))
	for i, l := range list {
		out[i] = v.of(l)
	}
	return out
}

func optName(id *Identifier) []string {
	if id == nil {
		return nil
	}
	return []string{id.Value}
}

func (v *sexprVisitor) VisitProgram(node *Program) interface{} {
	lines := make([]string, len(node.Declarations))
	for i, d := range node.Declarations {
		lines[i] = v.of(d)
	}
	return strings.Join(lines, "\n")
}

func (v *sexprVisitor) VisitLValue(node *LValue) interface{} {
	if node.Type == nil {
		return node.Name.Value
	}
	return v.list(node.Name.Value, node.Type.String())
}

func (v *sexprVisitor) VisitVariableDeclaration(node *VariableDeclaration) interface{} {
	return v.list("LET", v.list("TARGETS", v.lvalues(node.Targets)...), v.list("VALUES", v.exprs(node.Values)...))
}

func (v *sexprVisitor) VisitStructDeclaration(node *StructDeclaration) interface{} {
	return v.list("STRUCT", append(optName(node.Name), v.lvalues(node.Fields)...)...)
}

func (v *sexprVisitor) VisitUnionDeclaration(node *UnionDeclaration) interface{} {
	parts := optName(node.Name)
	for _, m := range node.Members {
		parts = append(parts, m.String())
	}
	return v.list("UNION", parts...)
}

func (v *sexprVisitor) VisitEnumVariant(node *EnumVariant) interface{} {
	if node.Value == nil {
		return node.Name.Value
	}
	return v.list(node.Name.Value, v.of(node.Value))
}

func (v *sexprVisitor) VisitEnumDeclaration(node *EnumDeclaration) interface{} {
	parts := optName(node.Name)
	for _, variant := range node.Variants {
		parts = append(parts, v.of(variant))
	}
	return v.list("ENUM", parts...)
}

func (v *sexprVisitor) VisitWhereBinding(node *WhereBinding) interface{} {
	name := node.Name.Value
	if node.Type != nil {
		name = v.list(name, node.Type.String())
	}
	return v.list("BIND", name, v.of(node.Value))
}

func (v *sexprVisitor) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} {
	returns := make([]string, len(node.Returns))
	for i, r := range node.Returns {
		returns[i] = r.String()
	}
	parts := []string{
		node.Name.Value,
		v.list("PARAMS", v.lvalues(node.Params)...),
		v.list("RETURNS", returns...),
	}
	if len(node.Where) > 0 {
		where := make([]string, len(node.Where))
		for i, w := range node.Where {
			where[i] = v.of(w)
		}
		parts = append(parts, v.list("WHERE", where...))
	}
	parts = append(parts, v.of(node.Body))
	return v.list("FUNCTION", parts...)
}

func (v *sexprVisitor) VisitIncludeDeclaration(node *IncludeDeclaration) interface{} {
	return v.list("INCLUDE", quote(node.Path, '"'))
}

func (v *sexprVisitor) VisitBadDeclaration(node *BadDeclaration) interface{} {
	return v.list("BAD")
}

func (v *sexprVisitor) VisitIdentifier(node *Identifier) interface{} { return node.Value }
func (v *sexprVisitor) VisitLiteral(node *Literal) interface{}       { return literalText(node) }

func (v *sexprVisitor) VisitUnary(node *Unary) interface{} {
	return v.list(node.Op.String(), v.of(node.Operand))
}

func (v *sexprVisitor) VisitBinary(node *Binary) interface{} {
	return v.list(node.Op.String(), v.of(node.Left), v.of(node.Right))
}

func (v *sexprVisitor) VisitAssign(node *Assign) interface{} {
	return v.list(node.Op.String(), v.of(node.Target), v.of(node.Value))
}

func (v *sexprVisitor) VisitGroup(node *Group) interface{} {
	return v.list("GROUP", v.of(node.Inner))
}

func (v *sexprVisitor) VisitCall(node *Call) interface{} {
	return v.list("CALL", append([]string{v.of(node.Callee)}, v.exprs(node.Args)...)...)
}

func (v *sexprVisitor) VisitField(node *Field) interface{} {
	return v.list("FIELD", v.of(node.Parent), node.Name.Value)
}

func (v *sexprVisitor) VisitIndex(node *Index) interface{} {
	return v.list("INDEX", v.of(node.Array), v.of(node.Index))
}

func (v *sexprVisitor) VisitArrayInit(node *ArrayInit) interface{} {
	return v.list("ARRAY", v.exprs(node.Elements)...)
}

func (v *sexprVisitor) VisitCast(node *Cast) interface{} {
	return v.list("AS", v.of(node.Expr), node.Type.String())
}

func (v *sexprVisitor) VisitBlock(node *Block) interface{} {
	parts := make([]string, 0, len(node.Statements)+1)
	for _, s := range node.Statements {
		parts = append(parts, v.of(s))
	}
	if node.Tail != nil {
		parts = append(parts, v.list("TAIL", v.of(node.Tail)))
	}
	return v.list("BLOCK", parts...)
}

func (v *sexprVisitor) conditional(head string, cond, body, els Expression) string {
	parts := []string{v.of(cond), v.of(body)}
	if els != nil {
		parts = append(parts, v.of(els))
	}
	return v.list(head, parts...)
}

func (v *sexprVisitor) VisitIf(node *IfExpression) interface{} {
	return v.conditional("IF", node.Cond, node.Body, node.Else)
}

func (v *sexprVisitor) VisitWhile(node *WhileExpression) interface{} {
	return v.conditional("WHILE", node.Cond, node.Body, node.Else)
}

func (v *sexprVisitor) VisitJump(node *JumpExpression) interface{} {
	if node.Value == nil {
		return v.list(node.Op.String())
	}
	return v.list(node.Op.String(), v.of(node.Value))
}

func (v *sexprVisitor) VisitExpressionStatement(node *ExpressionStatement) interface{} {
	return v.list("EXPR", v.of(node.Expression))
}

func (v *sexprVisitor) VisitBlockStatement(node *BlockStatement) interface{} {
	return v.of(node.Block)
}

func (v *sexprVisitor) VisitVarStatement(node *VarStatement) interface{} {
	return v.of(node.Decl)
}

func (v *sexprVisitor) VisitPrimitiveType(node *PrimitiveType) interface{} { return node.String() }
func (v *sexprVisitor) VisitWrapperType(node *WrapperType) interface{}     { return node.String() }
func (v *sexprVisitor) VisitArrayType(node *ArrayType) interface{}         { return node.String() }
func (v *sexprVisitor) VisitCompoundType(node *CompoundType) interface{}   { return node.String() }
func (v *sexprVisitor) VisitFunctionType(node *FunctionType) interface{}   { return node.String() }
func (v *sexprVisitor) VisitNamedType(node *NamedType) interface{}         { return node.String() }
