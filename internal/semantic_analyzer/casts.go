package semantic_analyzer

import (
	"github.com/kievzenit/cfront/internal/compiler_errors"
	"github.com/kievzenit/cfront/internal/ir"
	types "github.com/kievzenit/cfront/internal/ir/types"
	"github.com/kievzenit/cfront/internal/span"
)

// maybeCast wraps expr in an implicit cast unless it already has type to.
// Whether the conversion is legal is not checked here.
func maybeCast(expr ir.ExprIr, to types.Type) ir.ExprIr {
	if expr.ExprType().SameAs(to) {
		return expr
	}

	return &ir.CastExprIr{
		Type:     to,
		Span:     expr.NodeSpan(),
		Expr:     expr,
		Implicit: true,
	}
}

func isNullPointerConstant(expr ir.ExprIr) bool {
	lit, ok := expr.(*ir.IntExprIr)
	return ok && lit.Value.Sign() == 0
}

// convert applies the implicit conversion of assignment, argument passing
// and return.
func (sa *SemanticAnalyzer) convert(expr ir.ExprIr, to types.Type, s span.Span) exprResult {
	from := expr.ExprType()
	if from.SameAs(to) {
		return compiler_errors.Ok(expr)
	}

	if from.CanBeImplicitlyCastedTo(to) || (types.IsPointer(to) && isNullPointerConstant(expr)) {
		return compiler_errors.Ok(maybeCast(expr, to))
	}

	return compiler_errors.Err[ir.ExprIr](
		compiler_errors.NewDiagnosticBuilder(s).BuildTypeMismatch(from.TypeName(), to.TypeName()),
	)
}

func (sa *SemanticAnalyzer) assign(target ir.LvalueExprIr, value ir.ExprIr, s, opSpan span.Span) exprResult {
	b := compiler_errors.NewDiagnosticBuilder(opSpan)
	if target.IsConst() {
		return compiler_errors.Err[ir.ExprIr](b.BuildNotAssignable("target is const"))
	}
	if _, ok := target.ExprType().(*types.ArrayType); ok {
		return compiler_errors.Err[ir.ExprIr](b.BuildNotAssignable("arrays cannot be assigned"))
	}

	return compiler_errors.Map(sa.convert(value, target.ExprType(), opSpan), func(value ir.ExprIr) ir.ExprIr {
		return &ir.AssignExprIr{
			Type:   target.ExprType(),
			Span:   s,
			OpSpan: opSpan,
			Target: target,
			Value:  value,
		}
	})
}

// promote applies integer promotion to integral operands.
func (sa *SemanticAnalyzer) promote(expr ir.ExprIr) ir.ExprIr {
	a, ok := types.AsArithmetic(expr.ExprType())
	if !ok || !a.IsIntegral() {
		return expr
	}
	if promoted, changed := a.Promote(sa.target()); changed {
		return maybeCast(expr, sa.tr.ArithmeticType(promoted))
	}
	return expr
}

// promoteArgument applies default argument promotion to an argument
// matched by the ... of a variadic function.
func (sa *SemanticAnalyzer) promoteArgument(expr ir.ExprIr) ir.ExprIr {
	a, ok := types.AsArithmetic(expr.ExprType())
	if !ok {
		return expr
	}
	return maybeCast(expr, sa.tr.ArithmeticType(a.DefaultArgumentPromotion(sa.target())))
}
