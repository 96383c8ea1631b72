package ast

import "github.com/kievzenit/cfront/internal/span"

type ScopeStmt struct {
	Span span.Span

	Stmts []Stmt
}

// ArrayPart is one [N] or [] suffix of a declarator. Length is nil for [].
type ArrayPart struct {
	Span span.Span

	Length Expr
}

type VarDeclStmt struct {
	Span span.Span

	Type       *QualifiedTypeNode
	Name       string
	NameSpan   span.Span
	ArrayParts []ArrayPart

	// Value is nil when the declaration has no initializer.
	Value       Expr
	ValueOpSpan span.Span
}

type FuncParam struct {
	Span span.Span

	Type       *QualifiedTypeNode
	Name       string // empty for unnamed prototype parameters
	NameSpan   span.Span
	ArrayParts []ArrayPart
}

// FuncDeclStmt is a function prototype.
type FuncDeclStmt struct {
	Span span.Span

	ReturnType *QualifiedTypeNode
	Name       string
	NameSpan   span.Span
	Args       []FuncParam
	Variadic   bool
}

type FuncDefStmt struct {
	FuncDeclStmt
	Body *ScopeStmt
}

type IfStmt struct {
	Span span.Span

	Cond Expr
	Body *ScopeStmt
	Else *ScopeStmt // may be nil
}

// SwitchCase is a case label with its body; Value is nil for default.
type SwitchCase struct {
	Span span.Span

	Value Expr
	Body  *ScopeStmt
}

type SwitchStmt struct {
	Span span.Span

	Expr  Expr
	Cases []SwitchCase
}

type WhileStmt struct {
	Span span.Span

	Cond Expr
	Body *ScopeStmt
}

// ForStmt has optional Init (a *VarDeclStmt or *ExprStmt), Cond and Iter.
type ForStmt struct {
	Span span.Span

	Init Stmt
	Cond Expr
	Iter Expr
	Body *ScopeStmt
}

type ExprStmt struct {
	Span span.Span

	Expr Expr
}

type ReturnStmt struct {
	Span span.Span

	Expr Expr // may be nil
}

type BreakStmt struct {
	Span span.Span
}

type ContinueStmt struct {
	Span span.Span
}

func (v *VarDeclStmt) TopStmtNode()  {}
func (f *FuncDeclStmt) TopStmtNode() {}
func (f *FuncDefStmt) TopStmtNode()  {}

func (s *ScopeStmt) AstNode()    {}
func (v *VarDeclStmt) AstNode()  {}
func (f *FuncDeclStmt) AstNode() {}
func (e *ExprStmt) AstNode()     {}
func (i *IfStmt) AstNode()       {}
func (s *SwitchStmt) AstNode()   {}
func (w *WhileStmt) AstNode()    {}
func (f *ForStmt) AstNode()      {}
func (r *ReturnStmt) AstNode()   {}
func (b *BreakStmt) AstNode()    {}
func (c *ContinueStmt) AstNode() {}

func (s *ScopeStmt) NodeSpan() span.Span    { return s.Span }
func (v *VarDeclStmt) NodeSpan() span.Span  { return v.Span }
func (f *FuncDeclStmt) NodeSpan() span.Span { return f.Span }
func (e *ExprStmt) NodeSpan() span.Span     { return e.Span }
func (i *IfStmt) NodeSpan() span.Span       { return i.Span }
func (s *SwitchStmt) NodeSpan() span.Span   { return s.Span }
func (w *WhileStmt) NodeSpan() span.Span    { return w.Span }
func (f *ForStmt) NodeSpan() span.Span      { return f.Span }
func (r *ReturnStmt) NodeSpan() span.Span   { return r.Span }
func (b *BreakStmt) NodeSpan() span.Span    { return b.Span }
func (c *ContinueStmt) NodeSpan() span.Span { return c.Span }

func (s *ScopeStmt) StmtNode()    {}
func (v *VarDeclStmt) StmtNode()  {}
func (f *FuncDeclStmt) StmtNode() {}
func (e *ExprStmt) StmtNode()     {}
func (i *IfStmt) StmtNode()       {}
func (s *SwitchStmt) StmtNode()   {}
func (w *WhileStmt) StmtNode()    {}
func (f *ForStmt) StmtNode()      {}
func (r *ReturnStmt) StmtNode()   {}
func (b *BreakStmt) StmtNode()    {}
func (c *ContinueStmt) StmtNode() {}
