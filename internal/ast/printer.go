package ast

import (
	"strconv"
	"strings"

	"github.com/quill-lang/quill/internal/lexer"
)

// printer renders nodes as Quill source. Parentheses appear only where the
// tree has a Group node, so printing a parsed tree and parsing the result
// yields the same tree.
type printer struct {
	b      strings.Builder
	pretty bool
	indent int
}

func sprint(n Node) string {
	p := &printer{}
	p.node(n)
	return p.b.String()
}

// Format returns the canonical source text of prog with one declaration per
// line and blocks broken over indented lines.
func Format(prog *Program) string {
	p := &printer{pretty: true}
	p.node(prog)
	return p.b.String()
}

func (p *printer) str(s string) { p.b.WriteString(s) }

func (p *printer) newline() {
	p.b.WriteByte('\n')
	for i := 0; i < p.indent; i++ {
		p.b.WriteByte('\t')
	}
}

func (p *printer) exprs(list []Expression) {
	for i, e := range list {
		if i > 0 {
			p.str(", ")
		}
		p.node(e)
	}
}

func (p *printer) types(list []Type) {
	for i, t := range list {
		if i > 0 {
			p.str(", ")
		}
		p.node(t)
	}
}

func (p *printer) lvalues(list []*LValue) {
	for i, l := range list {
		if i > 0 {
			p.str(", ")
		}
		p.node(l)
	}
}

func (p *printer) name(id *Identifier) {
	if id != nil {
		p.str(" ")
		p.str(id.Value)
	}
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case *Program:
		for i, d := range n.Declarations {
			if i > 0 {
				p.str("\n")
			}
			p.node(d)
		}
		if p.pretty && len(n.Declarations) > 0 {
			p.str("\n")
		}

	case *LValue:
		p.str(n.Name.Value)
		if n.Type != nil {
			p.str(": ")
			p.node(n.Type)
		}
	case *VariableDeclaration:
		p.str("let ")
		p.lvalues(n.Targets)
		p.str(" = ")
		p.exprs(n.Values)
		p.str(";")
	case *StructDeclaration:
		p.str("struct")
		p.name(n.Name)
		if len(n.Fields) == 0 {
			p.str(" {}")
			return
		}
		p.str(" { ")
		p.lvalues(n.Fields)
		p.str(" }")
	case *UnionDeclaration:
		p.str("union")
		p.name(n.Name)
		if len(n.Members) == 0 {
			p.str(" {}")
			return
		}
		p.str(" { ")
		p.types(n.Members)
		p.str(" }")
	case *EnumVariant:
		p.str(n.Name.Value)
		if n.Value != nil {
			p.str(" = ")
			p.node(n.Value)
		}
	case *EnumDeclaration:
		p.str("enum")
		p.name(n.Name)
		if len(n.Variants) == 0 {
			p.str(" {}")
			return
		}
		p.str(" { ")
		for i, v := range n.Variants {
			if i > 0 {
				p.str(", ")
			}
			p.node(v)
		}
		p.str(" }")
	case *WhereBinding:
		p.str(n.Name.Value)
		if n.Type != nil {
			p.str(": ")
			p.node(n.Type)
		}
		p.str(" = ")
		p.node(n.Value)
	case *FunctionDeclaration:
		p.str("function ")
		p.str(n.Name.Value)
		p.str("(")
		p.lvalues(n.Params)
		p.str(")")
		if len(n.Returns) > 0 {
			p.str(" ")
			p.types(n.Returns)
		}
		if len(n.Where) > 0 {
			p.str(" where ")
			for i, w := range n.Where {
				if i > 0 {
					p.str(", ")
				}
				p.node(w)
			}
		}
		p.str(" ")
		p.node(n.Body)
	case *IncludeDeclaration:
		p.str("include ")
		p.str(quote(n.Path, '"'))
		p.str(";")
	case *BadDeclaration:
		p.str(n.String())

	case *Identifier:
		p.str(n.Value)
	case *Literal:
		p.str(literalText(n))
	case *Unary:
		p.str(n.Op.Symbol())
		if n.Op == lexer.TokenTry {
			p.str(" ")
		}
		p.node(n.Operand)
	case *Binary:
		p.node(n.Left)
		p.str(" " + n.Op.Symbol() + " ")
		p.node(n.Right)
	case *Assign:
		p.node(n.Target)
		p.str(" " + n.Op.Symbol() + " ")
		p.node(n.Value)
	case *Group:
		p.str("(")
		p.node(n.Inner)
		p.str(")")
	case *Call:
		p.node(n.Callee)
		p.str("(")
		p.exprs(n.Args)
		p.str(")")
	case *Field:
		p.node(n.Parent)
		p.str(".")
		p.str(n.Name.Value)
	case *Index:
		p.node(n.Array)
		p.str("[")
		p.node(n.Index)
		p.str("]")
	case *ArrayInit:
		p.str("[")
		p.exprs(n.Elements)
		p.str("]")
	case *Cast:
		p.node(n.Expr)
		p.str(" as ")
		p.node(n.Type)
	case *Block:
		p.block(n)
	case *IfExpression:
		p.conditional("if", n.Cond, n.Body, n.Else)
	case *WhileExpression:
		p.conditional("while", n.Cond, n.Body, n.Else)
	case *JumpExpression:
		p.str(n.Op.Symbol())
		if n.Value != nil {
			p.str(" ")
			p.node(n.Value)
		}

	case *ExpressionStatement:
		p.node(n.Expression)
		p.str(";")
	case *BlockStatement:
		p.block(n.Block)
	case *VarStatement:
		p.node(n.Decl)

	case *PrimitiveType:
		p.mut(n)
		p.str(n.Kind.Symbol())
	case *WrapperType:
		p.mut(n)
		p.str(n.Kind.String())
		p.node(n.Inner)
	case *ArrayType:
		p.mut(n)
		p.str("[")
		if n.Size != nil {
			p.node(n.Size)
		}
		p.str("]")
		p.node(n.Elem)
	case *CompoundType:
		p.mut(n)
		p.node(n.Decl)
	case *FunctionType:
		p.mut(n)
		p.str("function(")
		p.types(n.Params)
		p.str(")")
		if n.Returns != nil {
			p.str(" ")
			p.node(n.Returns)
		}
	case *NamedType:
		p.mut(n)
		p.str(n.Name.Value)
	}
}

func (p *printer) mut(t Type) {
	if t.IsMutable() {
		p.str("mut ")
	}
}

func (p *printer) conditional(keyword string, cond, body, els Expression) {
	p.str(keyword)
	p.str(" (")
	p.node(cond)
	p.str(") ")
	p.node(body)
	if els != nil {
		p.str(" else ")
		p.node(els)
	}
}

func (p *printer) block(b *Block) {
	if len(b.Statements) == 0 && b.Tail == nil {
		p.str("{}")
		return
	}

	elems := make([]Node, 0, len(b.Statements)+1)
	for _, s := range b.Statements {
		elems = append(elems, s)
	}
	if b.Tail != nil {
		elems = append(elems, b.Tail)
	}

	if !p.pretty {
		p.str("{ ")
		for i, e := range elems {
			if i > 0 {
				p.str(" ")
			}
			p.node(e)
		}
		p.str(" }")
		return
	}

	p.str("{")
	p.indent++
	for _, e := range elems {
		p.newline()
		p.node(e)
	}
	p.indent--
	p.newline()
	p.str("}")
}

func literalText(l *Literal) string {
	switch l.Kind {
	case LiteralBool:
		return strconv.FormatBool(l.Bool)
	case LiteralInt:
		return strconv.FormatInt(l.Int, 10)
	case LiteralUint:
		return strconv.FormatUint(l.Uint, 10)
	case LiteralFloat:
		s := strconv.FormatFloat(l.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case LiteralChar:
		return quote(string([]byte{l.Char}), '\'')
	case LiteralString:
		return quote(l.Str, '"')
	}
	return ""
}

// quote delimits s with q, escaping only the sequences the lexer decodes.
func quote(s string, q byte) string {
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		case '\\':
			b.WriteString(`\\`)
		case q:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(q)
	return b.String()
}
