package ir

import (
	"math/big"

	types "github.com/kievzenit/cfront/internal/ir/types"
	"github.com/kievzenit/cfront/internal/span"
)

type ExprIr interface {
	ExprIrNode()
	ExprType() types.Type
	NodeSpan() span.Span
}

// LvalueExprIr designates a storage location. Locations are named by item
// id or by pointer, never by source name.
type LvalueExprIr interface {
	ExprIr
	LvalueExprIrNode()
	IsConst() bool
}

type IntExprIr struct {
	types.Type
	Span  span.Span
	Value *big.Int
}

type FloatExprIr struct {
	types.Type
	Span  span.Span
	Value float64
}

type StringExprIr struct {
	types.Type
	Span  span.Span
	Value string
}

type IdentExprIr struct {
	types.Type
	Span  span.Span
	Item  ItemID
	Const bool
}

type DerefExprIr struct {
	types.Type
	Span  span.Span
	Ptr   ExprIr
	Const bool
}

type AssignExprIr struct {
	types.Type
	Span   span.Span
	OpSpan span.Span
	Target LvalueExprIr
	Value  ExprIr
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Band
	Bor
	Xor
	Shl
	Shr
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
	Land
	Lor
)

var binaryOpNames = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%",
	Band: "&", Bor: "|", Xor: "^", Shl: "<<", Shr: ">>",
	Eq: "==", Ne: "!=", Lt: "<", Gt: ">", Le: "<=", Ge: ">=",
	Land: "&&", Lor: "||",
}

func (op BinaryOp) String() string {
	return binaryOpNames[op]
}

func (op BinaryOp) IsComparison() bool {
	return op >= Eq && op <= Ge
}

func (op BinaryOp) IsLogical() bool {
	return op == Land || op == Lor
}

type BinaryExprIr struct {
	types.Type
	Span   span.Span
	OpSpan span.Span
	Left   ExprIr
	Op     BinaryOp
	Right  ExprIr
}

type UnaryOp int

const (
	Neg UnaryOp = iota
	BitNot
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "-"
	case BitNot:
		return "~"
	default:
		return "!"
	}
}

type UnaryExprIr struct {
	types.Type
	Span    span.Span
	Op      UnaryOp
	Operand ExprIr
}

type IncDecExprIr struct {
	types.Type
	Span      span.Span
	Target    LvalueExprIr
	Increment bool
	Prefix    bool
}

type AddressOfExprIr struct {
	types.Type
	Span   span.Span
	Target LvalueExprIr
}

// CastExprIr converts Expr to the embedded type. Implicit marks casts the
// analyzer inserted on its own.
type CastExprIr struct {
	types.Type
	Span     span.Span
	Expr     ExprIr
	Implicit bool
}

type CallExprIr struct {
	types.Type
	Span     span.Span
	Function ItemID
	Args     []ExprIr
}

func (*IntExprIr) ExprIrNode()       {}
func (*FloatExprIr) ExprIrNode()     {}
func (*StringExprIr) ExprIrNode()    {}
func (*IdentExprIr) ExprIrNode()     {}
func (*DerefExprIr) ExprIrNode()     {}
func (*AssignExprIr) ExprIrNode()    {}
func (*BinaryExprIr) ExprIrNode()    {}
func (*UnaryExprIr) ExprIrNode()     {}
func (*IncDecExprIr) ExprIrNode()    {}
func (*AddressOfExprIr) ExprIrNode() {}
func (*CastExprIr) ExprIrNode()      {}
func (*CallExprIr) ExprIrNode()      {}

func (e *IntExprIr) ExprType() types.Type       { return e.Type }
func (e *FloatExprIr) ExprType() types.Type     { return e.Type }
func (e *StringExprIr) ExprType() types.Type    { return e.Type }
func (e *IdentExprIr) ExprType() types.Type     { return e.Type }
func (e *DerefExprIr) ExprType() types.Type     { return e.Type }
func (e *AssignExprIr) ExprType() types.Type    { return e.Type }
func (e *BinaryExprIr) ExprType() types.Type    { return e.Type }
func (e *UnaryExprIr) ExprType() types.Type     { return e.Type }
func (e *IncDecExprIr) ExprType() types.Type    { return e.Type }
func (e *AddressOfExprIr) ExprType() types.Type { return e.Type }
func (e *CastExprIr) ExprType() types.Type      { return e.Type }
func (e *CallExprIr) ExprType() types.Type      { return e.Type }

func (e *IntExprIr) NodeSpan() span.Span       { return e.Span }
func (e *FloatExprIr) NodeSpan() span.Span     { return e.Span }
func (e *StringExprIr) NodeSpan() span.Span    { return e.Span }
func (e *IdentExprIr) NodeSpan() span.Span     { return e.Span }
func (e *DerefExprIr) NodeSpan() span.Span     { return e.Span }
func (e *AssignExprIr) NodeSpan() span.Span    { return e.Span }
func (e *BinaryExprIr) NodeSpan() span.Span    { return e.Span }
func (e *UnaryExprIr) NodeSpan() span.Span     { return e.Span }
func (e *IncDecExprIr) NodeSpan() span.Span    { return e.Span }
func (e *AddressOfExprIr) NodeSpan() span.Span { return e.Span }
func (e *CastExprIr) NodeSpan() span.Span      { return e.Span }
func (e *CallExprIr) NodeSpan() span.Span      { return e.Span }

func (*IdentExprIr) LvalueExprIrNode() {}
func (*DerefExprIr) LvalueExprIrNode() {}

func (e *IdentExprIr) IsConst() bool { return e.Const }
func (e *DerefExprIr) IsConst() bool { return e.Const }
