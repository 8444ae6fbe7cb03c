// Package ast defines the syntax tree produced by the parser and rewritten by
// the optimizer. Every child is owned by exactly one parent; rewrites replace
// a child slot with a freshly built subtree.
package ast

import (
	"fmt"
	"strings"
)

// Stage identifies which pipeline position a shader declaration targets.
type Stage string

const (
	Vertex   Stage = "vertex"
	Fragment Stage = "fragment"
)

// Valid reports whether s is one of the known stage tags.
func (s Stage) Valid() bool {
	return s == Vertex || s == Fragment
}

// Node is implemented by every syntax tree node.
type Node interface {
	fmt.Stringer
}

// Expr is implemented by expression nodes: BinaryOp, Identifier, Literal,
// MemberAccess and FunctionCall.
type Expr interface {
	Node
	exprNode()
}

// Program is the tree root: an ordered list of shader declarations.
type Program struct {
	Shaders []*ShaderDecl
}

func (p *Program) String() string {
	parts := make([]string, len(p.Shaders))
	for i, s := range p.Shaders {
		parts[i] = s.String()
	}

	return strings.Join(parts, "\n")
}

var _ Node = &Program{}

// ShaderDecl is one `shader vertex { … }` or `shader fragment { … }` block.
type ShaderDecl struct {
	Stage      Stage
	Inputs     []*VarDecl
	Outputs    []*VarDecl
	Statements []*Assignment
}

func (s *ShaderDecl) String() string {
	var builder strings.Builder
	builder.WriteString("(shader ")
	builder.WriteString(string(s.Stage))
	for _, in := range s.Inputs {
		builder.WriteString(" (input ")
		builder.WriteString(in.Type)
		builder.WriteString(" ")
		builder.WriteString(in.Name)
		builder.WriteString(")")
	}
	for _, out := range s.Outputs {
		builder.WriteString(" (output ")
		builder.WriteString(out.Type)
		builder.WriteString(" ")
		builder.WriteString(out.Name)
		builder.WriteString(")")
	}
	for _, stmt := range s.Statements {
		builder.WriteString(" ")
		builder.WriteString(stmt.String())
	}
	builder.WriteString(")")

	return builder.String()
}

var _ Node = &ShaderDecl{}

// VarDecl declares one shader input or output: a type name and a variable
// name. It never appears in expressions.
type VarDecl struct {
	Type string
	Name string
}

func (v *VarDecl) String() string {
	return parenthesize("decl", v.Type, v.Name)
}

var _ Node = &VarDecl{}

// Assignment is the only statement form: `target = value;`. Target is always
// an Identifier or a MemberAccess rooted at an Identifier.
type Assignment struct {
	Target Expr
	Value  Expr
}

func (a *Assignment) String() string {
	return parenthesize("assign", a.Target, a.Value)
}

var _ Node = &Assignment{}

// BinaryOp applies one of + - * / to two operands.
type BinaryOp struct {
	Op    string
	Left  Expr
	Right Expr
}

func (b *BinaryOp) String() string {
	return parenthesize("binary", b.Left, b.Op, b.Right)
}

func (b *BinaryOp) exprNode() {}

var _ Expr = &BinaryOp{}

// Identifier is a bare variable reference.
type Identifier struct {
	Name string
}

func (i *Identifier) String() string {
	return parenthesize("var", i.Name)
}

func (i *Identifier) exprNode() {}

var _ Expr = &Identifier{}

// Literal is a numeric constant. The value keeps its textual form; folding
// re-renders it through the canonical binary32 formatter.
type Literal struct {
	Value string
}

func (l *Literal) String() string {
	return parenthesize("literal", l.Value)
}

func (l *Literal) exprNode() {}

var _ Expr = &Literal{}

// MemberAccess is `object.member`. Member text is carried opaquely; swizzle
// letters are not validated.
type MemberAccess struct {
	Object Expr
	Member string
}

func (m *MemberAccess) String() string {
	return parenthesize("access", m.Object, m.Member)
}

func (m *MemberAccess) exprNode() {}

var _ Expr = &MemberAccess{}

// FunctionCall is `name(args…)`. Type constructors like vec4(…) parse to the
// same node with the type name as Name.
type FunctionCall struct {
	Name string
	Args []Expr
}

func (f *FunctionCall) String() string {
	elems := make([]any, 0, len(f.Args)+1)
	elems = append(elems, f.Name)
	for _, arg := range f.Args {
		elems = append(elems, arg)
	}

	return parenthesize("call", elems...)
}

func (f *FunctionCall) exprNode() {}

var _ Expr = &FunctionCall{}

func parenthesize(head string, elems ...any) string {
	var builder strings.Builder
	builder.WriteString("(")
	builder.WriteString(head)
	for _, elem := range elems {
		builder.WriteString(" ")
		switch elem := elem.(type) {
		case string:
			builder.WriteString(elem)
		case fmt.Stringer:
			builder.WriteString(elem.String())
		default:
			fmt.Fprintf(&builder, "%v", elem)
		}
	}
	builder.WriteString(")")

	return builder.String()
}
