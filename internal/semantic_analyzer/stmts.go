package semantic_analyzer

import (
	"fmt"
	"math/big"

	"github.com/kievzenit/cfront/internal/ast"
	"github.com/kievzenit/cfront/internal/compiler_errors"
	"github.com/kievzenit/cfront/internal/ir"
	types "github.com/kievzenit/cfront/internal/ir/types"
	"github.com/kievzenit/cfront/internal/span"
)

type scopeResult = compiler_errors.AggregateResult[*ir.ScopeStmtIr]

func (sa *SemanticAnalyzer) analyzeStmts(stmts []ast.Stmt, fs functionScope) compiler_errors.AggregateResult[[]ir.StmtIr] {
	res := compiler_errors.Ok(make([]ir.StmtIr, 0, len(stmts)))
	for _, stmt := range stmts {
		compiler_errors.AddTo(sa.analyzeStmt(stmt, fs), &res, appendStmt)
	}
	return res
}

func (sa *SemanticAnalyzer) analyzeStmt(stmt ast.Stmt, fs functionScope) stmtResult {
	switch s := stmt.(type) {
	case *ast.ScopeStmt:
		return compiler_errors.Map(sa.analyzeScopeStmt(s, fs), func(scope *ir.ScopeStmtIr) ir.StmtIr {
			return scope
		})
	case *ast.VarDeclStmt:
		return sa.analyzeVarDeclStmt(s)
	case *ast.FuncDeclStmt:
		return sa.analyzeFuncDeclStmt(s)
	case *ast.ExprStmt:
		return sa.analyzeExprStmt(s)
	case *ast.IfStmt:
		return sa.analyzeIfStmt(s, fs)
	case *ast.WhileStmt:
		return sa.analyzeWhileStmt(s, fs)
	case *ast.ForStmt:
		return sa.analyzeForStmt(s, fs)
	case *ast.SwitchStmt:
		return sa.analyzeSwitchStmt(s, fs)
	case *ast.BreakStmt:
		if !fs.inLoop && !fs.inSwitch {
			return compiler_errors.Err[ir.StmtIr](
				compiler_errors.NewDiagnosticBuilder(s.Span).BuildInvalidContext("break", "loop or switch"),
			)
		}
		return compiler_errors.Ok[ir.StmtIr](&ir.BreakStmtIr{Span: s.Span})
	case *ast.ContinueStmt:
		if !fs.inLoop {
			return compiler_errors.Err[ir.StmtIr](
				compiler_errors.NewDiagnosticBuilder(s.Span).BuildInvalidContext("continue", "loop"),
			)
		}
		return compiler_errors.Ok[ir.StmtIr](&ir.ContinueStmtIr{Span: s.Span})
	case *ast.ReturnStmt:
		return sa.analyzeReturnStmt(s, fs)
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

func (sa *SemanticAnalyzer) analyzeScopeStmt(scopeStmt *ast.ScopeStmt, fs functionScope) scopeResult {
	sa.enterScope()
	defer sa.exitScope()

	return compiler_errors.Map(sa.analyzeStmts(scopeStmt.Stmts, fs), func(stmts []ir.StmtIr) *ir.ScopeStmtIr {
		return &ir.ScopeStmtIr{Span: scopeStmt.Span, Stmts: stmts}
	})
}

func (sa *SemanticAnalyzer) analyzeExprStmt(exprStmt *ast.ExprStmt) stmtResult {
	return compiler_errors.Map(sa.analyzeRvalue(exprStmt.Expr), func(expr ir.ExprIr) ir.StmtIr {
		return &ir.ExprStmtIr{Span: exprStmt.Span, Expr: expr}
	})
}

// analyzeCondition lowers a controlling expression, which must be scalar.
func (sa *SemanticAnalyzer) analyzeCondition(expr ast.Expr) exprResult {
	return compiler_errors.AndThen(sa.analyzeRvalue(expr), func(cond ir.ExprIr) exprResult {
		if !types.IsScalar(cond.ExprType()) {
			return compiler_errors.Err[ir.ExprIr](
				compiler_errors.NewDiagnosticBuilder(expr.NodeSpan()).BuildNotScalar(cond.ExprType().TypeName()),
			)
		}
		return compiler_errors.Ok(cond)
	})
}

func (sa *SemanticAnalyzer) analyzeOptionalExpr(expr ast.Expr, analyze func(ast.Expr) exprResult) exprResult {
	if expr == nil {
		return compiler_errors.Ok[ir.ExprIr](nil)
	}
	return analyze(expr)
}

type condBody = compiler_errors.Pair[ir.ExprIr, *ir.ScopeStmtIr]

func (sa *SemanticAnalyzer) analyzeIfStmt(ifStmt *ast.IfStmt, fs functionScope) stmtResult {
	cond := sa.analyzeCondition(ifStmt.Cond)
	body := sa.analyzeScopeStmt(ifStmt.Body, fs)
	elseBody := compiler_errors.Ok[*ir.ScopeStmtIr](nil)
	if ifStmt.Else != nil {
		elseBody = sa.analyzeScopeStmt(ifStmt.Else, fs)
	}

	parts := compiler_errors.Zip(compiler_errors.Zip(cond, body), elseBody)
	return compiler_errors.Map(parts, func(p compiler_errors.Pair[condBody, *ir.ScopeStmtIr]) ir.StmtIr {
		return &ir.IfStmtIr{
			Span: ifStmt.Span,
			Cond: p.First.First,
			Body: p.First.Second,
			Else: p.Second,
		}
	})
}

func (sa *SemanticAnalyzer) analyzeWhileStmt(whileStmt *ast.WhileStmt, fs functionScope) stmtResult {
	cond := sa.analyzeCondition(whileStmt.Cond)
	body := sa.analyzeScopeStmt(whileStmt.Body, fs.enterLoop())

	return compiler_errors.Map(compiler_errors.Zip(cond, body), func(p condBody) ir.StmtIr {
		return &ir.WhileStmtIr{Span: whileStmt.Span, Cond: p.First, Body: p.Second}
	})
}

type forHead = compiler_errors.Pair[compiler_errors.Pair[ir.StmtIr, ir.ExprIr], ir.ExprIr]

func (sa *SemanticAnalyzer) analyzeForStmt(forStmt *ast.ForStmt, fs functionScope) stmtResult {
	// A declaration in the init clause is scoped to the loop.
	sa.enterScope()
	defer sa.exitScope()

	init := compiler_errors.Ok[ir.StmtIr](nil)
	if forStmt.Init != nil {
		init = sa.analyzeStmt(forStmt.Init, fs)
	}
	cond := sa.analyzeOptionalExpr(forStmt.Cond, sa.analyzeCondition)
	iter := sa.analyzeOptionalExpr(forStmt.Iter, sa.analyzeRvalue)
	body := sa.analyzeScopeStmt(forStmt.Body, fs.enterLoop())

	head := compiler_errors.Zip(compiler_errors.Zip(init, cond), iter)
	return compiler_errors.Map(compiler_errors.Zip(head, body), func(p compiler_errors.Pair[forHead, *ir.ScopeStmtIr]) ir.StmtIr {
		return &ir.ForStmtIr{
			Span: forStmt.Span,
			Init: p.First.First.First,
			Cond: p.First.First.Second,
			Iter: p.First.Second,
			Body: p.Second,
		}
	})
}

func (sa *SemanticAnalyzer) analyzeSwitchStmt(switchStmt *ast.SwitchStmt, fs functionScope) stmtResult {
	expr := compiler_errors.AndThen(sa.analyzeRvalue(switchStmt.Expr), func(e ir.ExprIr) exprResult {
		if !types.IsIntegral(e.ExprType()) {
			return compiler_errors.Err[ir.ExprIr](
				compiler_errors.NewDiagnosticBuilder(switchStmt.Expr.NodeSpan()).
					BuildInvalidOperand("switch", e.ExprType().TypeName()),
			)
		}
		return compiler_errors.Ok(sa.promote(e))
	})

	seen := make(map[string]span.Span)
	cases := make([]compiler_errors.AggregateResult[ir.SwitchCaseIr], 0, len(switchStmt.Cases))
	for _, switchCase := range switchStmt.Cases {
		value := sa.caseValue(switchCase, seen)
		body := sa.analyzeScopeStmt(switchCase.Body, fs.enterSwitch())

		cases = append(cases, compiler_errors.Map(
			compiler_errors.Zip(value, body),
			func(p compiler_errors.Pair[*big.Int, *ir.ScopeStmtIr]) ir.SwitchCaseIr {
				return ir.SwitchCaseIr{Span: switchCase.Span, Value: p.First, Body: p.Second}
			},
		))
	}

	return compiler_errors.Map(
		compiler_errors.Zip(expr, compiler_errors.Collect(cases)),
		func(p compiler_errors.Pair[ir.ExprIr, []ir.SwitchCaseIr]) ir.StmtIr {
			return &ir.SwitchStmtIr{Span: switchStmt.Span, Expr: p.First, Cases: p.Second}
		},
	)
}

// caseValue reads the label of a switch case; nil stands for default.
// seen records the labels used so far, keyed by value.
func (sa *SemanticAnalyzer) caseValue(switchCase ast.SwitchCase, seen map[string]span.Span) compiler_errors.AggregateResult[*big.Int] {
	var value *big.Int
	key := "default"

	if switchCase.Value != nil {
		switch lit := switchCase.Value.(type) {
		case *ast.IntExpr:
			value = new(big.Int).Set(lit.Value)
		case *ast.CharExpr:
			value = big.NewInt(int64(lit.Value))
		default:
			return compiler_errors.Err[*big.Int](
				compiler_errors.NewDiagnosticBuilder(switchCase.Value.NodeSpan()).BuildUnimplemented("non-literal case values"),
			)
		}
		key = value.String()
	}

	if original, ok := seen[key]; ok {
		return compiler_errors.Err[*big.Int](
			compiler_errors.NewDiagnosticBuilder(switchCase.Span).BuildDuplicateCase(key, original),
		)
	}
	seen[key] = switchCase.Span
	return compiler_errors.Ok(value)
}

func (sa *SemanticAnalyzer) analyzeReturnStmt(returnStmt *ast.ReturnStmt, fs functionScope) stmtResult {
	b := compiler_errors.NewDiagnosticBuilder(returnStmt.Span)

	if returnStmt.Expr == nil {
		if !types.IsVoid(fs.returnType) {
			return compiler_errors.Err[ir.StmtIr](b.BuildMissingReturnValue(fs.name))
		}
		return compiler_errors.Ok[ir.StmtIr](&ir.ReturnStmtIr{Span: returnStmt.Span})
	}

	return compiler_errors.AndThen(sa.analyzeRvalue(returnStmt.Expr), func(value ir.ExprIr) stmtResult {
		if types.IsVoid(fs.returnType) {
			return compiler_errors.Err[ir.StmtIr](b.BuildReturnValueInVoid(fs.name))
		}

		converted := sa.convert(value, fs.returnType, returnStmt.Expr.NodeSpan())
		return compiler_errors.Map(converted, func(value ir.ExprIr) ir.StmtIr {
			return &ir.ReturnStmtIr{Span: returnStmt.Span, Expr: value}
		})
	})
}
