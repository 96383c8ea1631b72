// Package const_folder evaluates constant subexpressions of a syntax tree
// and propagates literal initializers into the statements that follow them.
// It never reports errors: anything it cannot evaluate safely is left for
// the analyzer.
package const_folder

import (
	"github.com/kievzenit/cfront/internal/ast"
)

// fact records that a name currently holds a known constant. Only one fact
// is tracked at a time, and only within a single block.
type fact struct {
	name  string
	value value
}

// Fold returns a folded copy of unit. Unchanged subtrees are shared with
// the input, which is never modified.
func Fold(unit *ast.TranslationUnit) *ast.TranslationUnit {
	stmts := make([]ast.TopStmt, 0, len(unit.Stmts))
	for _, topStmt := range unit.Stmts {
		switch s := topStmt.(type) {
		case *ast.FuncDefStmt:
			folded := *s
			folded.Body = foldBlock(s.Body)
			stmts = append(stmts, &folded)
		case *ast.VarDeclStmt:
			decl, _ := foldVarDecl(s, nil)
			stmts = append(stmts, decl)
		default:
			stmts = append(stmts, topStmt)
		}
	}

	return &ast.TranslationUnit{Span: unit.Span, Stmts: stmts}
}

// FoldExpr folds a single expression with no known names. The flag reports
// whether the result is a literal.
func FoldExpr(expr ast.Expr) (ast.Expr, bool) {
	folded, _, ok := foldExpr(expr, nil)
	return folded, ok
}

func foldBlock(block *ast.ScopeStmt) *ast.ScopeStmt {
	var current *fact
	stmts := make([]ast.Stmt, 0, len(block.Stmts))
	for _, stmt := range block.Stmts {
		var folded ast.Stmt
		folded, current = foldStmt(stmt, current)
		stmts = append(stmts, folded)
	}
	return &ast.ScopeStmt{Span: block.Span, Stmts: stmts}
}

// foldStmt folds stmt under the current fact and returns the fact that
// holds after it.
func foldStmt(stmt ast.Stmt, current *fact) (ast.Stmt, *fact) {
	switch s := stmt.(type) {
	case *ast.VarDeclStmt:
		return foldVarDecl(s, current)

	case *ast.ExprStmt:
		expr, _, _ := foldExpr(s.Expr, current)
		if current != nil && writes(s.Expr, current.name) {
			current = nil
		}
		if expr == s.Expr {
			return s, current
		}
		return &ast.ExprStmt{Span: s.Span, Expr: expr}, current

	case *ast.IfStmt:
		folded := *s
		folded.Cond = foldRvalue(s.Cond, nil)
		folded.Body = foldBlock(s.Body)
		if s.Else != nil {
			folded.Else = foldBlock(s.Else)
		}
		return &folded, nil

	case *ast.WhileStmt:
		folded := *s
		folded.Cond = foldRvalue(s.Cond, nil)
		folded.Body = foldBlock(s.Body)
		return &folded, nil

	case *ast.ForStmt:
		folded := *s
		if s.Init != nil {
			folded.Init, _ = foldStmt(s.Init, nil)
		}
		if s.Cond != nil {
			folded.Cond = foldRvalue(s.Cond, nil)
		}
		if s.Iter != nil {
			folded.Iter = foldRvalue(s.Iter, nil)
		}
		folded.Body = foldBlock(s.Body)
		return &folded, nil

	case *ast.SwitchStmt:
		return foldSwitch(s), nil

	case *ast.ScopeStmt:
		return foldBlock(s), nil

	case *ast.ReturnStmt:
		if s.Expr == nil {
			return s, nil
		}
		return &ast.ReturnStmt{Span: s.Span, Expr: foldRvalue(s.Expr, current)}, nil

	default:
		// break, continue and prototypes
		return stmt, nil
	}
}

func foldSwitch(s *ast.SwitchStmt) *ast.SwitchStmt {
	folded := &ast.SwitchStmt{
		Span:  s.Span,
		Expr:  foldRvalue(s.Expr, nil),
		Cases: make([]ast.SwitchCase, 0, len(s.Cases)),
	}
	for _, c := range s.Cases {
		if c.Value != nil {
			c.Value = foldRvalue(c.Value, nil)
		}
		c.Body = foldBlock(c.Body)
		folded.Cases = append(folded.Cases, c)
	}
	return folded
}

// foldVarDecl folds the initializer and array lengths of a declaration. A
// literal initializer becomes the new fact when the declared type can hold
// it exactly; any other declaration clears the fact.
func foldVarDecl(decl *ast.VarDeclStmt, current *fact) (*ast.VarDeclStmt, *fact) {
	folded := *decl
	var next *fact

	if decl.Value != nil {
		var v value
		var ok bool
		folded.Value, v, ok = foldExpr(decl.Value, current)
		if ok {
			if stored, ok := storedValue(decl.Type, v); ok {
				next = &fact{name: decl.Name, value: stored}
			}
		}
	}

	if len(decl.ArrayParts) > 0 {
		folded.ArrayParts = make([]ast.ArrayPart, 0, len(decl.ArrayParts))
		for _, part := range decl.ArrayParts {
			if part.Length != nil {
				part.Length = foldRvalue(part.Length, current)
			}
			folded.ArrayParts = append(folded.ArrayParts, part)
		}
		next = nil
	}

	return &folded, next
}

func foldRvalue(expr ast.Expr, current *fact) ast.Expr {
	folded, _, _ := foldExpr(expr, current)
	return folded
}

// foldExpr folds expr bottom-up. It returns the folded expression and, when
// that expression is a literal, its value.
func foldExpr(expr ast.Expr, current *fact) (ast.Expr, value, bool) {
	if v, ok := literalValue(expr); ok {
		return expr, v, true
	}

	switch e := expr.(type) {
	case *ast.IdentExpr:
		if current != nil && current.name == e.Value {
			return current.value.toExpr(e.Span), current.value, true
		}
		return e, value{}, false

	case *ast.AssignExpr:
		left := foldLvalue(e.Left, current)
		right := foldRvalue(e.Right, current)
		if left == e.Left && right == e.Right {
			return e, value{}, false
		}
		return &ast.AssignExpr{Span: e.Span, OpSpan: e.OpSpan, Left: left, Right: right}, value{}, false

	case *ast.CallExpr:
		args := make([]ast.Expr, len(e.Args))
		changed := false
		for i, arg := range e.Args {
			args[i] = foldRvalue(arg, current)
			changed = changed || args[i] != arg
		}
		if !changed {
			return e, value{}, false
		}
		folded := *e
		folded.Args = args
		return &folded, value{}, false

	case *ast.ArraySubscriptExpr:
		return foldSubscript(e, current), value{}, false

	case *ast.CastExpr:
		inner := foldRvalue(e.Expr, current)
		if inner == e.Expr {
			return e, value{}, false
		}
		return &ast.CastExpr{Span: e.Span, CastToType: e.CastToType, Expr: inner}, value{}, false

	case *ast.UnaryExpr:
		return foldUnaryExpr(e, current)

	case *ast.BinaryExpr:
		return foldBinaryExpr(e, current)

	default:
		// string literals
		return expr, value{}, false
	}
}

func foldSubscript(e *ast.ArraySubscriptExpr, current *fact) ast.Expr {
	left := foldRvalue(e.Left, current)
	index := foldRvalue(e.Index, current)
	if left == e.Left && index == e.Index {
		return e
	}
	return &ast.ArraySubscriptExpr{Span: e.Span, Left: left, Index: index}
}

// foldLvalue folds the parts of a location that are read, never the
// location itself.
func foldLvalue(expr ast.Expr, current *fact) ast.Expr {
	switch e := expr.(type) {
	case *ast.ArraySubscriptExpr:
		return foldSubscript(e, current)
	case *ast.UnaryExpr:
		if e.Op != ast.Deref {
			return e
		}
		operand := foldRvalue(e.Right, current)
		if operand == e.Right {
			return e
		}
		folded := *e
		folded.Right = operand
		return &folded
	default:
		return expr
	}
}

func foldUnaryExpr(e *ast.UnaryExpr, current *fact) (ast.Expr, value, bool) {
	if e.Op.IsLvalueOp() {
		operand := foldLvalue(e.Right, current)
		if operand == e.Right {
			return e, value{}, false
		}
		folded := *e
		folded.Right = operand
		return &folded, value{}, false
	}

	operand, v, ok := foldExpr(e.Right, current)
	if ok {
		if result, ok := foldUnary(e.Op, v); ok {
			return result.toExpr(e.Span), result, true
		}
	}

	if operand == e.Right {
		return e, value{}, false
	}
	folded := *e
	folded.Right = operand
	return &folded, value{}, false
}

// foldBinaryExpr always folds both operands, so && and || are evaluated
// eagerly.
func foldBinaryExpr(e *ast.BinaryExpr, current *fact) (ast.Expr, value, bool) {
	left, a, leftOk := foldExpr(e.Left, current)
	right, b, rightOk := foldExpr(e.Right, current)

	if leftOk && rightOk {
		if result, ok := foldBinary(e.Op, a, b); ok {
			return result.toExpr(e.Span), result, true
		}
	}

	if left == e.Left && right == e.Right {
		return e, value{}, false
	}
	folded := *e
	folded.Left = left
	folded.Right = right
	return &folded, value{}, false
}

// writes reports whether expr may store to the variable called name.
func writes(expr ast.Expr, name string) bool {
	isName := func(e ast.Expr) bool {
		ident, ok := e.(*ast.IdentExpr)
		return ok && ident.Value == name
	}

	switch e := expr.(type) {
	case *ast.AssignExpr:
		return isName(e.Left) || writes(e.Left, name) || writes(e.Right, name)
	case *ast.UnaryExpr:
		return (e.Op.IsLvalueOp() && isName(e.Right)) || writes(e.Right, name)
	case *ast.BinaryExpr:
		return writes(e.Left, name) || writes(e.Right, name)
	case *ast.CallExpr:
		for _, arg := range e.Args {
			if writes(arg, name) {
				return true
			}
		}
		return false
	case *ast.ArraySubscriptExpr:
		return writes(e.Left, name) || writes(e.Index, name)
	case *ast.CastExpr:
		return writes(e.Expr, name)
	default:
		return false
	}
}
