package ir

import (
	"math/big"

	"github.com/kievzenit/cfront/internal/span"
)

type StmtIr interface {
	StmtIrNode()
	NodeSpan() span.Span
}

type ExprStmtIr struct {
	Span span.Span
	Expr ExprIr
}

type ScopeStmtIr struct {
	Span  span.Span
	Stmts []StmtIr
}

type IfStmtIr struct {
	Span span.Span
	Cond ExprIr
	Body *ScopeStmtIr
	Else *ScopeStmtIr
}

type WhileStmtIr struct {
	Span span.Span
	Cond ExprIr
	Body *ScopeStmtIr
}

// ForStmtIr keeps the optional parts of a for loop; Init is an
// *ExprStmtIr when present.
type ForStmtIr struct {
	Span span.Span
	Init StmtIr
	Cond ExprIr
	Iter ExprIr
	Body *ScopeStmtIr
}

// SwitchCaseIr has a nil Value for the default case.
type SwitchCaseIr struct {
	Span  span.Span
	Value *big.Int
	Body  *ScopeStmtIr
}

type SwitchStmtIr struct {
	Span  span.Span
	Expr  ExprIr
	Cases []SwitchCaseIr
}

type BreakStmtIr struct {
	Span span.Span
}

type ContinueStmtIr struct {
	Span span.Span
}

type ReturnStmtIr struct {
	Span span.Span
	Expr ExprIr
}

type FuncDefStmtIr struct {
	Span     span.Span
	Function ItemID
	Params   []ItemID
	Body     *ScopeStmtIr
}

func (*ExprStmtIr) StmtIrNode()     {}
func (*ScopeStmtIr) StmtIrNode()    {}
func (*IfStmtIr) StmtIrNode()       {}
func (*WhileStmtIr) StmtIrNode()    {}
func (*ForStmtIr) StmtIrNode()      {}
func (*SwitchStmtIr) StmtIrNode()   {}
func (*BreakStmtIr) StmtIrNode()    {}
func (*ContinueStmtIr) StmtIrNode() {}
func (*ReturnStmtIr) StmtIrNode()   {}
func (*FuncDefStmtIr) StmtIrNode()  {}

func (s *ExprStmtIr) NodeSpan() span.Span     { return s.Span }
func (s *ScopeStmtIr) NodeSpan() span.Span    { return s.Span }
func (s *IfStmtIr) NodeSpan() span.Span       { return s.Span }
func (s *WhileStmtIr) NodeSpan() span.Span    { return s.Span }
func (s *ForStmtIr) NodeSpan() span.Span      { return s.Span }
func (s *SwitchStmtIr) NodeSpan() span.Span   { return s.Span }
func (s *BreakStmtIr) NodeSpan() span.Span    { return s.Span }
func (s *ContinueStmtIr) NodeSpan() span.Span { return s.Span }
func (s *ReturnStmtIr) NodeSpan() span.Span   { return s.Span }
func (s *FuncDefStmtIr) NodeSpan() span.Span  { return s.Span }
