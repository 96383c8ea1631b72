package semantic_analyzer

import (
	"fmt"
	"math/big"

	"github.com/kievzenit/cfront/internal/ast"
	"github.com/kievzenit/cfront/internal/compiler_errors"
	"github.com/kievzenit/cfront/internal/ir"
	types "github.com/kievzenit/cfront/internal/ir/types"
)

var (
	decimalCandidates = []types.Arithmetic{types.SignedInt, types.SignedLongInt, types.UnsignedLongInt}
	radixCandidates   = []types.Arithmetic{types.SignedInt, types.UnsignedInt, types.SignedLongInt, types.UnsignedLongInt}
)

var binaryOps = map[ast.BinaryOp]ir.BinaryOp{
	ast.Add:  ir.Add,
	ast.Sub:  ir.Sub,
	ast.Mul:  ir.Mul,
	ast.Div:  ir.Div,
	ast.Mod:  ir.Mod,
	ast.Band: ir.Band,
	ast.Bor:  ir.Bor,
	ast.Xor:  ir.Xor,
	ast.Shl:  ir.Shl,
	ast.Shr:  ir.Shr,
	ast.Eq:   ir.Eq,
	ast.Ne:   ir.Ne,
	ast.Lt:   ir.Lt,
	ast.Gt:   ir.Gt,
	ast.Le:   ir.Le,
	ast.Ge:   ir.Ge,
	ast.Land: ir.Land,
	ast.Lor:  ir.Lor,
}

func (sa *SemanticAnalyzer) analyzeExpr(expr ast.Expr) exprResult {
	switch e := expr.(type) {
	case *ast.IntExpr:
		return sa.analyzeIntExpr(e)
	case *ast.CharExpr:
		return compiler_errors.Ok[ir.ExprIr](&ir.IntExprIr{
			Type:  sa.tr.IntType(),
			Span:  e.Span,
			Value: big.NewInt(int64(e.Value)),
		})
	case *ast.FloatExpr:
		return compiler_errors.Ok[ir.ExprIr](&ir.FloatExprIr{Type: sa.tr.DoubleType(), Span: e.Span, Value: e.Value})
	case *ast.StringExpr:
		return compiler_errors.Ok[ir.ExprIr](&ir.StringExprIr{Type: sa.tr.StringType(), Span: e.Span, Value: e.Value})
	case *ast.IdentExpr:
		return sa.analyzeIdentExpr(e)
	case *ast.AssignExpr:
		return sa.analyzeAssignExpr(e)
	case *ast.CallExpr:
		return sa.analyzeCallExpr(e)
	case *ast.ArraySubscriptExpr:
		return sa.analyzeArraySubscriptExpr(e)
	case *ast.CastExpr:
		return sa.analyzeCastExpr(e)
	case *ast.UnaryExpr:
		return sa.analyzeUnaryExpr(e)
	case *ast.BinaryExpr:
		return sa.analyzeBinaryExpr(e)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

// analyzeRvalue lowers an expression used for its value: arrays decay to
// a pointer to their first element.
func (sa *SemanticAnalyzer) analyzeRvalue(expr ast.Expr) exprResult {
	return compiler_errors.Map(sa.analyzeExpr(expr), decay)
}

func decay(expr ir.ExprIr) ir.ExprIr {
	if array, ok := expr.ExprType().(*types.ArrayType); ok {
		return &ir.CastExprIr{
			Type:     types.Decay(array),
			Span:     expr.NodeSpan(),
			Expr:     expr,
			Implicit: true,
		}
	}
	return expr
}

func (sa *SemanticAnalyzer) analyzeLvalue(expr ast.Expr) compiler_errors.AggregateResult[ir.LvalueExprIr] {
	return compiler_errors.AndThen(sa.analyzeExpr(expr), func(e ir.ExprIr) compiler_errors.AggregateResult[ir.LvalueExprIr] {
		lvalue, ok := e.(ir.LvalueExprIr)
		if !ok {
			return compiler_errors.Err[ir.LvalueExprIr](
				compiler_errors.NewDiagnosticBuilder(expr.NodeSpan()).BuildNotAssignable("not an lvalue"),
			)
		}
		return compiler_errors.Ok(lvalue)
	})
}

func (sa *SemanticAnalyzer) analyzeIntExpr(intExpr *ast.IntExpr) exprResult {
	candidates := decimalCandidates
	if intExpr.Base != ast.Dec {
		candidates = radixCandidates
	}

	kind, ok := types.FindFirstFit(intExpr.Value, candidates, sa.target())
	if !ok {
		return compiler_errors.Err[ir.ExprIr](
			compiler_errors.NewDiagnosticBuilder(intExpr.Span).BuildLiteralOutOfRange(intExpr.Value.String()),
		)
	}

	return compiler_errors.Ok[ir.ExprIr](&ir.IntExprIr{
		Type:  sa.tr.ArithmeticType(kind),
		Span:  intExpr.Span,
		Value: new(big.Int).Set(intExpr.Value),
	})
}

func (sa *SemanticAnalyzer) analyzeIdentExpr(identExpr *ast.IdentExpr) exprResult {
	b := compiler_errors.NewDiagnosticBuilder(identExpr.Span)

	id, ok := sa.table.Lookup(identExpr.Value)
	if !ok {
		return compiler_errors.Err[ir.ExprIr](b.BuildUndeclared(identExpr.Value))
	}

	item := sa.table.Get(id)
	if _, isFunction := item.Type.(*types.FunctionType); isFunction {
		return compiler_errors.Err[ir.ExprIr](b.BuildUnimplemented("function pointers"))
	}

	return compiler_errors.Ok[ir.ExprIr](&ir.IdentExprIr{
		Type:  item.Type,
		Span:  identExpr.Span,
		Item:  id,
		Const: item.IsConst,
	})
}

func (sa *SemanticAnalyzer) analyzeAssignExpr(assignExpr *ast.AssignExpr) exprResult {
	target := sa.analyzeLvalue(assignExpr.Left)
	value := sa.analyzeRvalue(assignExpr.Right)

	return compiler_errors.AndThen(
		compiler_errors.Zip(target, value),
		func(p compiler_errors.Pair[ir.LvalueExprIr, ir.ExprIr]) exprResult {
			return sa.assign(p.First, p.Second, assignExpr.Span, assignExpr.OpSpan)
		},
	)
}

func (sa *SemanticAnalyzer) analyzeCallExpr(callExpr *ast.CallExpr) exprResult {
	nameSpan := callExpr.NameSpan
	if nameSpan.Length == 0 {
		nameSpan = callExpr.Span
	}
	b := compiler_errors.NewDiagnosticBuilder(nameSpan)

	id, ok := sa.table.Lookup(callExpr.Name)
	if !ok {
		return compiler_errors.Err[ir.ExprIr](b.BuildUndeclared(callExpr.Name))
	}
	functionType, ok := sa.table.Get(id).Type.(*types.FunctionType)
	if !ok {
		return compiler_errors.Err[ir.ExprIr](b.BuildNotCallable(callExpr.Name))
	}

	args := make([]exprResult, 0, len(callExpr.Args))
	for _, arg := range callExpr.Args {
		args = append(args, sa.analyzeRvalue(arg))
	}

	return compiler_errors.AndThen(compiler_errors.All(args), func(args []ir.ExprIr) exprResult {
		params := functionType.Params
		if len(args) < len(params) || (!functionType.Variadic && len(args) > len(params)) {
			return compiler_errors.Err[ir.ExprIr](
				compiler_errors.NewDiagnosticBuilder(callExpr.Span).
					BuildArgumentCount(callExpr.Name, len(params), len(args), functionType.Variadic),
			)
		}

		converted := make([]exprResult, 0, len(args))
		for i, arg := range args {
			if i < len(params) {
				converted = append(converted, sa.convert(arg, params[i], arg.NodeSpan()))
				continue
			}
			converted = append(converted, compiler_errors.Ok(sa.promoteArgument(arg)))
		}

		return compiler_errors.Map(compiler_errors.All(converted), func(args []ir.ExprIr) ir.ExprIr {
			return &ir.CallExprIr{
				Type:     functionType.ReturnType,
				Span:     callExpr.Span,
				Function: id,
				Args:     args,
			}
		})
	})
}

// analyzeArraySubscriptExpr lowers a[i] as *(a + i).
func (sa *SemanticAnalyzer) analyzeArraySubscriptExpr(subscriptExpr *ast.ArraySubscriptExpr) exprResult {
	left := sa.analyzeRvalue(subscriptExpr.Left)
	index := sa.analyzeRvalue(subscriptExpr.Index)

	return compiler_errors.AndThen(
		compiler_errors.Zip(left, index),
		func(p compiler_errors.Pair[ir.ExprIr, ir.ExprIr]) exprResult {
			ptr, idx := p.First, p.Second
			if types.IsPointer(idx.ExprType()) && types.IsIntegral(ptr.ExprType()) {
				ptr, idx = idx, ptr
			}

			ptrType, ok := ptr.ExprType().(*types.PointerType)
			if !ok || types.IsVoid(ptrType.Pointee) || !types.IsIntegral(idx.ExprType()) {
				return compiler_errors.Err[ir.ExprIr](
					compiler_errors.NewDiagnosticBuilder(subscriptExpr.Span).
						BuildInvalidOperands("[]", ptr.ExprType().TypeName(), idx.ExprType().TypeName()),
				)
			}

			return compiler_errors.Ok[ir.ExprIr](&ir.DerefExprIr{
				Type: ptrType.Pointee,
				Span: subscriptExpr.Span,
				Ptr: &ir.BinaryExprIr{
					Type:   ptrType,
					Span:   subscriptExpr.Span,
					OpSpan: subscriptExpr.Span,
					Left:   ptr,
					Op:     ir.Add,
					Right:  sa.promote(idx),
				},
				Const: ptrType.PointeeConst,
			})
		},
	)
}

func (sa *SemanticAnalyzer) analyzeCastExpr(castExpr *ast.CastExpr) exprResult {
	newType, _ := sa.tr.GetType(castExpr.CastToType)

	return compiler_errors.AndThen(sa.analyzeRvalue(castExpr.Expr), func(inner ir.ExprIr) exprResult {
		oldType := inner.ExprType()
		if oldType.SameAs(newType) {
			return compiler_errors.Ok(inner)
		}

		if !oldType.CanBeExplicitlyCastedTo(newType) {
			return compiler_errors.Err[ir.ExprIr](
				compiler_errors.NewDiagnosticBuilder(castExpr.Span).BuildTypeMismatch(oldType.TypeName(), newType.TypeName()),
			)
		}

		return compiler_errors.Ok[ir.ExprIr](&ir.CastExprIr{
			Type: newType,
			Span: castExpr.Span,
			Expr: inner,
		})
	})
}

func (sa *SemanticAnalyzer) analyzeUnaryExpr(unaryExpr *ast.UnaryExpr) exprResult {
	b := compiler_errors.NewDiagnosticBuilder(unaryExpr.OpSpan)
	invalid := func(operand ir.ExprIr) exprResult {
		return compiler_errors.Err[ir.ExprIr](b.BuildInvalidOperand(unaryExpr.Op.String(), operand.ExprType().TypeName()))
	}

	switch unaryExpr.Op {
	case ast.AddressOf:
		return compiler_errors.Map(sa.analyzeLvalue(unaryExpr.Right), func(target ir.LvalueExprIr) ir.ExprIr {
			return &ir.AddressOfExprIr{
				Type:   types.NewPointerType(target.ExprType(), target.IsConst()),
				Span:   unaryExpr.Span,
				Target: target,
			}
		})

	case ast.PreInc, ast.PreDec, ast.PostInc, ast.PostDec:
		return compiler_errors.AndThen(sa.analyzeLvalue(unaryExpr.Right), func(target ir.LvalueExprIr) exprResult {
			if target.IsConst() {
				return compiler_errors.Err[ir.ExprIr](b.BuildNotAssignable("operand is const"))
			}
			t := target.ExprType()
			if ptr, ok := t.(*types.PointerType); !types.IsScalar(t) || (ok && types.IsVoid(ptr.Pointee)) {
				return invalid(target)
			}

			return compiler_errors.Ok[ir.ExprIr](&ir.IncDecExprIr{
				Type:      t,
				Span:      unaryExpr.Span,
				Target:    target,
				Increment: unaryExpr.Op == ast.PreInc || unaryExpr.Op == ast.PostInc,
				Prefix:    unaryExpr.Op == ast.PreInc || unaryExpr.Op == ast.PreDec,
			})
		})

	case ast.Deref:
		return compiler_errors.AndThen(sa.analyzeRvalue(unaryExpr.Right), func(ptr ir.ExprIr) exprResult {
			ptrType, ok := ptr.ExprType().(*types.PointerType)
			if !ok || types.IsVoid(ptrType.Pointee) {
				return invalid(ptr)
			}
			return compiler_errors.Ok[ir.ExprIr](&ir.DerefExprIr{
				Type:  ptrType.Pointee,
				Span:  unaryExpr.Span,
				Ptr:   ptr,
				Const: ptrType.PointeeConst,
			})
		})

	case ast.Not:
		return compiler_errors.AndThen(sa.analyzeRvalue(unaryExpr.Right), func(operand ir.ExprIr) exprResult {
			if !types.IsScalar(operand.ExprType()) {
				return invalid(operand)
			}
			return compiler_errors.Ok[ir.ExprIr](&ir.UnaryExprIr{
				Type:    sa.tr.IntType(),
				Span:    unaryExpr.Span,
				Op:      ir.Not,
				Operand: operand,
			})
		})

	case ast.Plus, ast.Neg, ast.BitNot:
		return compiler_errors.AndThen(sa.analyzeRvalue(unaryExpr.Right), func(operand ir.ExprIr) exprResult {
			a, ok := types.AsArithmetic(operand.ExprType())
			if !ok || (unaryExpr.Op == ast.BitNot && !a.IsIntegral()) {
				return invalid(operand)
			}

			promoted := sa.promote(operand)
			if unaryExpr.Op == ast.Plus {
				return compiler_errors.Ok(promoted)
			}

			op := ir.Neg
			if unaryExpr.Op == ast.BitNot {
				op = ir.BitNot
			}
			return compiler_errors.Ok[ir.ExprIr](&ir.UnaryExprIr{
				Type:    promoted.ExprType(),
				Span:    unaryExpr.Span,
				Op:      op,
				Operand: promoted,
			})
		})

	default:
		panic(fmt.Sprintf("unexpected unary operator %s", unaryExpr.Op))
	}
}

func (sa *SemanticAnalyzer) analyzeBinaryExpr(binaryExpr *ast.BinaryExpr) exprResult {
	left := sa.analyzeRvalue(binaryExpr.Left)
	right := sa.analyzeRvalue(binaryExpr.Right)

	return compiler_errors.AndThen(
		compiler_errors.Zip(left, right),
		func(p compiler_errors.Pair[ir.ExprIr, ir.ExprIr]) exprResult {
			return sa.binary(binaryExpr, p.First, p.Second)
		},
	)
}

func (sa *SemanticAnalyzer) binary(binaryExpr *ast.BinaryExpr, left, right ir.ExprIr) exprResult {
	op := binaryOps[binaryExpr.Op]
	leftType, rightType := left.ExprType(), right.ExprType()

	build := func(t types.Type, l, r ir.ExprIr) exprResult {
		return compiler_errors.Ok[ir.ExprIr](&ir.BinaryExprIr{
			Type:   t,
			Span:   binaryExpr.Span,
			OpSpan: binaryExpr.OpSpan,
			Left:   l,
			Op:     op,
			Right:  r,
		})
	}
	arithmetic := func() exprResult {
		common := sa.commonType(leftType, rightType)
		return build(common, maybeCast(left, common), maybeCast(right, common))
	}
	invalid := func() exprResult {
		return compiler_errors.Err[ir.ExprIr](
			compiler_errors.NewDiagnosticBuilder(binaryExpr.OpSpan).
				BuildInvalidOperands(binaryExpr.Op.String(), leftType.TypeName(), rightType.TypeName()),
		)
	}

	_, leftArith := types.AsArithmetic(leftType)
	_, rightArith := types.AsArithmetic(rightType)
	bothArith := leftArith && rightArith
	bothIntegral := types.IsIntegral(leftType) && types.IsIntegral(rightType)
	leftPtr, _ := leftType.(*types.PointerType)
	rightPtr, _ := rightType.(*types.PointerType)

	switch binaryExpr.Op {
	case ast.Add:
		switch {
		case bothArith:
			return arithmetic()
		case leftPtr != nil && !types.IsVoid(leftPtr.Pointee) && types.IsIntegral(rightType):
			return build(leftPtr, left, sa.promote(right))
		case rightPtr != nil && !types.IsVoid(rightPtr.Pointee) && types.IsIntegral(leftType):
			return build(rightPtr, sa.promote(left), right)
		}

	case ast.Sub:
		switch {
		case bothArith:
			return arithmetic()
		case leftPtr != nil && !types.IsVoid(leftPtr.Pointee) && types.IsIntegral(rightType):
			return build(leftPtr, left, sa.promote(right))
		case leftPtr != nil && rightPtr != nil && leftPtr.Pointee.SameAs(rightPtr.Pointee):
			return build(sa.tr.LongType(), left, right)
		}

	case ast.Mul, ast.Div:
		if bothArith {
			return arithmetic()
		}

	case ast.Mod, ast.Band, ast.Bor, ast.Xor:
		if bothIntegral {
			return arithmetic()
		}

	case ast.Shl, ast.Shr:
		if bothIntegral {
			l := sa.promote(left)
			return build(l.ExprType(), l, sa.promote(right))
		}

	case ast.Lt, ast.Gt, ast.Le, ast.Ge, ast.Eq, ast.Ne:
		equality := binaryExpr.Op == ast.Eq || binaryExpr.Op == ast.Ne
		switch {
		case bothArith:
			common := sa.commonType(leftType, rightType)
			return build(sa.tr.IntType(), maybeCast(left, common), maybeCast(right, common))
		case leftPtr != nil && rightPtr != nil && comparablePointers(leftPtr, rightPtr):
			return build(sa.tr.IntType(), left, right)
		case equality && leftPtr != nil && isNullPointerConstant(right):
			return build(sa.tr.IntType(), left, maybeCast(right, leftPtr))
		case equality && rightPtr != nil && isNullPointerConstant(left):
			return build(sa.tr.IntType(), maybeCast(left, rightPtr), right)
		}

	case ast.Land, ast.Lor:
		if types.IsScalar(leftType) && types.IsScalar(rightType) {
			return build(sa.tr.IntType(), left, right)
		}
	}

	return invalid()
}

func comparablePointers(a, b *types.PointerType) bool {
	return a.Pointee.SameAs(b.Pointee) || types.IsVoid(a.Pointee) || types.IsVoid(b.Pointee)
}

func (sa *SemanticAnalyzer) commonType(a, b types.Type) types.Type {
	left, _ := types.AsArithmetic(a)
	right, _ := types.AsArithmetic(b)
	return sa.tr.ArithmeticType(types.UsualArithmeticConversion(left, right, sa.target()))
}
