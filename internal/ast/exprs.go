package ast

import (
	"math/big"

	"github.com/kievzenit/cfront/internal/span"
)

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Bor
	Xor
	Band
	Lt
	Gt
	Eq
	Land
	Lor
	Ne
	Mod
	Le
	Ge
	Shl
	Shr
)

var binaryOpSymbols = [...]string{
	Add:  "+",
	Sub:  "-",
	Mul:  "*",
	Div:  "/",
	Bor:  "|",
	Xor:  "^",
	Band: "&",
	Lt:   "<",
	Gt:   ">",
	Eq:   "==",
	Land: "&&",
	Lor:  "||",
	Ne:   "!=",
	Mod:  "%",
	Le:   "<=",
	Ge:   ">=",
	Shl:  "<<",
	Shr:  ">>",
}

func (op BinaryOp) String() string {
	return binaryOpSymbols[op]
}

func BinaryOpFromSymbol(symbol string) (BinaryOp, bool) {
	for op, s := range binaryOpSymbols {
		if s == symbol {
			return BinaryOp(op), true
		}
	}
	return 0, false
}

type UnaryOp int

const (
	Not UnaryOp = iota
	Plus
	Neg
	BitNot
	AddressOf
	Deref
	PreInc
	PreDec
	PostInc
	PostDec
)

var unaryOpSymbols = [...]string{
	Not:       "!",
	Plus:      "+",
	Neg:       "-",
	BitNot:    "~",
	AddressOf: "&",
	Deref:     "*",
	PreInc:    "pre++",
	PreDec:    "pre--",
	PostInc:   "post++",
	PostDec:   "post--",
}

func (op UnaryOp) String() string {
	return unaryOpSymbols[op]
}

func UnaryOpFromSymbol(symbol string) (UnaryOp, bool) {
	for op, s := range unaryOpSymbols {
		if s == symbol {
			return UnaryOp(op), true
		}
	}
	return 0, false
}

// IsLvalueOp reports whether the operator needs its operand as a location
// rather than a value.
func (op UnaryOp) IsLvalueOp() bool {
	switch op {
	case AddressOf, PreInc, PreDec, PostInc, PostDec:
		return true
	}
	return false
}

type IntBase int

const (
	Dec IntBase = iota
	Hex
	Octal
)

// IntExpr is an integer literal. Value always fits in 128 signed bits.
type IntExpr struct {
	Span span.Span

	Value *big.Int
	Base  IntBase
}

type CharExpr struct {
	Span span.Span

	Value byte
}

type FloatExpr struct {
	Span span.Span

	Value float64
}

type StringExpr struct {
	Span span.Span

	Value string
}

type IdentExpr struct {
	Span span.Span

	Value string
}

type AssignExpr struct {
	Span   span.Span
	OpSpan span.Span

	Left  Expr
	Right Expr
}

type CallExpr struct {
	Span span.Span

	Name     string
	NameSpan span.Span
	Args     []Expr
}

type ArraySubscriptExpr struct {
	Span span.Span

	Left  Expr
	Index Expr
}

type CastExpr struct {
	Span span.Span

	CastToType *QualifiedTypeNode
	Expr       Expr
}

type UnaryExpr struct {
	Span   span.Span
	OpSpan span.Span

	Op    UnaryOp
	Right Expr
}

type BinaryExpr struct {
	Span   span.Span
	OpSpan span.Span

	Left  Expr
	Op    BinaryOp
	Right Expr
}

func NewIntExpr(s span.Span, value int64) *IntExpr {
	return &IntExpr{Span: s, Value: big.NewInt(value), Base: Dec}
}

func (IntExpr) AstNode()            {}
func (CharExpr) AstNode()           {}
func (FloatExpr) AstNode()          {}
func (StringExpr) AstNode()         {}
func (IdentExpr) AstNode()          {}
func (AssignExpr) AstNode()         {}
func (CallExpr) AstNode()           {}
func (ArraySubscriptExpr) AstNode() {}
func (CastExpr) AstNode()           {}
func (UnaryExpr) AstNode()          {}
func (BinaryExpr) AstNode()         {}

func (e *IntExpr) NodeSpan() span.Span            { return e.Span }
func (e *CharExpr) NodeSpan() span.Span           { return e.Span }
func (e *FloatExpr) NodeSpan() span.Span          { return e.Span }
func (e *StringExpr) NodeSpan() span.Span         { return e.Span }
func (e *IdentExpr) NodeSpan() span.Span          { return e.Span }
func (e *AssignExpr) NodeSpan() span.Span         { return e.Span }
func (e *CallExpr) NodeSpan() span.Span           { return e.Span }
func (e *ArraySubscriptExpr) NodeSpan() span.Span { return e.Span }
func (e *CastExpr) NodeSpan() span.Span           { return e.Span }
func (e *UnaryExpr) NodeSpan() span.Span          { return e.Span }
func (e *BinaryExpr) NodeSpan() span.Span         { return e.Span }

func (IntExpr) ExprNode()            {}
func (CharExpr) ExprNode()           {}
func (FloatExpr) ExprNode()          {}
func (StringExpr) ExprNode()         {}
func (IdentExpr) ExprNode()          {}
func (AssignExpr) ExprNode()         {}
func (CallExpr) ExprNode()           {}
func (ArraySubscriptExpr) ExprNode() {}
func (CastExpr) ExprNode()           {}
func (UnaryExpr) ExprNode()          {}
func (BinaryExpr) ExprNode()         {}

// IsLiteral reports whether e is a literal a backend can materialize directly.
func IsLiteral(e Expr) bool {
	switch e.(type) {
	case *IntExpr, *CharExpr, *FloatExpr, *StringExpr:
		return true
	}
	return false
}
