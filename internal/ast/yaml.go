package ast

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// dumpNode is the serialized shape of a node in the YAML dump.
type dumpNode struct {
	Kind     string      `yaml:"kind"`
	Pos      string      `yaml:"pos,omitempty"`
	Op       string      `yaml:"op,omitempty"`
	Value    string      `yaml:"value,omitempty"`
	Mutable  bool        `yaml:"mutable,omitempty"`
	Children []*dumpNode `yaml:"children,omitempty"`
}

// DumpYAML serializes the tree rooted at node as YAML, one mapping per node
// with its kind, start position, operator or value, and children.
func DumpYAML(node Node) ([]byte, error) {
	out, err := yaml.Marshal(dump(node))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal AST: %w", err)
	}
	return out, nil
}

func dump(node Node) *dumpNode {
	d := &dumpNode{Kind: strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast.")}
	if span := node.GetSpan(); span.Start.IsValid() {
		d.Pos = fmt.Sprintf("%d:%d", span.Start.Line, span.Start.Column)
	}

	switch n := node.(type) {
	case *Program:
		d.Value = n.Filename
	case *Identifier:
		d.Value = n.Value
	case *Literal:
		d.Op = n.Kind.String()
		d.Value = literalText(n)
	case *Unary:
		d.Op = n.Op.String()
	case *Binary:
		d.Op = n.Op.String()
	case *Assign:
		d.Op = n.Op.String()
	case *JumpExpression:
		d.Op = n.Op.String()
	case *IncludeDeclaration:
		d.Value = n.Path
	case *PrimitiveType:
		d.Value = n.Kind.Symbol()
	case *WrapperType:
		d.Op = n.Kind.String()
	}
	if t, ok := node.(Type); ok {
		d.Mutable = t.IsMutable()
	}

	for _, child := range Children(node) {
		d.Children = append(d.Children, dump(child))
	}
	return d
}
