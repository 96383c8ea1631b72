package ast

import "github.com/kievzenit/cfront/internal/span"

type AstNode interface {
	AstNode()
	NodeSpan() span.Span
}

// TranslationUnit is the root of a parsed source file.
type TranslationUnit struct {
	Span span.Span

	Stmts []TopStmt
}

type Stmt interface {
	AstNode
	StmtNode()
}

// TopStmt is a statement allowed at file scope: a function definition, a
// variable declaration or a function prototype.
type TopStmt interface {
	AstNode
	TopStmtNode()
}

type Expr interface {
	AstNode
	ExprNode()
}

func (t *TranslationUnit) AstNode()            {}
func (t *TranslationUnit) NodeSpan() span.Span { return t.Span }
