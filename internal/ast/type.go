package ast

import "github.com/kievzenit/cfront/internal/span"

type PrimitiveType int

const (
	Void PrimitiveType = iota
	Char
	SignedChar
	UnsignedChar
	SignedShortInt
	UnsignedShortInt
	SignedInt
	UnsignedInt
	SignedLongInt
	UnsignedLongInt
	Float
	Double
	LongDouble
)

var primitiveNames = [...]string{
	Void:             "void",
	Char:             "char",
	SignedChar:       "signed char",
	UnsignedChar:     "unsigned char",
	SignedShortInt:   "short int",
	UnsignedShortInt: "unsigned short int",
	SignedInt:        "int",
	UnsignedInt:      "unsigned int",
	SignedLongInt:    "long int",
	UnsignedLongInt:  "unsigned long int",
	Float:            "float",
	Double:           "double",
	LongDouble:       "long double",
}

func (p PrimitiveType) String() string {
	if int(p) < 0 || int(p) >= len(primitiveNames) {
		return "invalid"
	}
	return primitiveNames[p]
}

// TypeNode is an unqualified type.
type TypeNode interface {
	AstNode
	TypeNode()
	TypeName() string
}

// QualifiedTypeNode wraps an unqualified type with its optional const.
type QualifiedTypeNode struct {
	Span span.Span

	Const bool
	Inner TypeNode
}

type PrimitiveTypeNode struct {
	Span span.Span

	Kind PrimitiveType
}

type PointerTypeNode struct {
	Span span.Span

	To *QualifiedTypeNode
}

func (*QualifiedTypeNode) AstNode() {}
func (*PrimitiveTypeNode) AstNode() {}
func (*PointerTypeNode) AstNode()   {}

func (t *QualifiedTypeNode) NodeSpan() span.Span { return t.Span }
func (t *PrimitiveTypeNode) NodeSpan() span.Span { return t.Span }
func (t *PointerTypeNode) NodeSpan() span.Span   { return t.Span }

func (*PrimitiveTypeNode) TypeNode() {}
func (*PointerTypeNode) TypeNode()   {}

func (t *QualifiedTypeNode) TypeName() string {
	if t.Const {
		return "const " + t.Inner.TypeName()
	}
	return t.Inner.TypeName()
}

func (t *PrimitiveTypeNode) TypeName() string {
	return t.Kind.String()
}

func (t *PointerTypeNode) TypeName() string {
	return t.To.TypeName() + " *"
}
