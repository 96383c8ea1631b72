package const_folder

import (
	"math/big"

	"github.com/kievzenit/cfront/internal/ast"
	"github.com/kievzenit/cfront/internal/span"
)

// value is a compile-time constant: a 128-bit signed integer or a double.
type value struct {
	isFloat bool
	i       *big.Int
	f       float64
}

func intValue(i *big.Int) value {
	return value{i: i}
}

func boolValue(b bool) value {
	if b {
		return intValue(big.NewInt(1))
	}
	return intValue(big.NewInt(0))
}

func floatValue(f float64) value {
	return value{isFloat: true, f: f}
}

func (v value) float() float64 {
	if v.isFloat {
		return v.f
	}
	f, _ := new(big.Float).SetInt(v.i).Float64()
	return f
}

func (v value) isZero() bool {
	if v.isFloat {
		return v.f == 0
	}
	return v.i.Sign() == 0
}

func (v value) toExpr(s span.Span) ast.Expr {
	if v.isFloat {
		return &ast.FloatExpr{Span: s, Value: v.f}
	}
	return &ast.IntExpr{Span: s, Value: v.i, Base: ast.Dec}
}

func literalValue(expr ast.Expr) (value, bool) {
	switch e := expr.(type) {
	case *ast.IntExpr:
		return intValue(e.Value), true
	case *ast.CharExpr:
		return intValue(big.NewInt(int64(e.Value))), true
	case *ast.FloatExpr:
		return floatValue(e.Value), true
	default:
		return value{}, false
	}
}

// checked drops integer results that leave the 128-bit domain.
func checked(i *big.Int) (value, bool) {
	if !ast.FitsInt128(i) {
		return value{}, false
	}
	return intValue(i), true
}

const maxShift = 127

func foldBinary(op ast.BinaryOp, a, b value) (value, bool) {
	switch op {
	case ast.Shr:
		return value{}, false
	case ast.Mod, ast.Band, ast.Bor, ast.Xor, ast.Shl:
		if a.isFloat || b.isFloat {
			return value{}, false
		}
	}

	if !a.isFloat && !b.isFloat {
		return foldIntBinary(op, a.i, b.i)
	}

	x, y := a.float(), b.float()
	switch op {
	case ast.Add:
		return floatValue(x + y), true
	case ast.Sub:
		return floatValue(x - y), true
	case ast.Mul:
		return floatValue(x * y), true
	case ast.Div:
		return floatValue(x / y), true
	case ast.Lt:
		return boolValue(x < y), true
	case ast.Gt:
		return boolValue(x > y), true
	case ast.Le:
		return boolValue(x <= y), true
	case ast.Ge:
		return boolValue(x >= y), true
	case ast.Eq:
		return boolValue(x == y), true
	case ast.Ne:
		return boolValue(x != y), true
	case ast.Land:
		return boolValue(x != 0 && y != 0), true
	case ast.Lor:
		return boolValue(x != 0 || y != 0), true
	}
	return value{}, false
}

func foldIntBinary(op ast.BinaryOp, x, y *big.Int) (value, bool) {
	r := new(big.Int)
	switch op {
	case ast.Add:
		return checked(r.Add(x, y))
	case ast.Sub:
		return checked(r.Sub(x, y))
	case ast.Mul:
		return checked(r.Mul(x, y))
	case ast.Div:
		if y.Sign() == 0 {
			return value{}, false
		}
		return checked(r.Quo(x, y))
	case ast.Mod:
		if y.Sign() == 0 {
			return value{}, false
		}
		return checked(r.Rem(x, y))
	case ast.Band:
		return intValue(r.And(x, y)), true
	case ast.Bor:
		return intValue(r.Or(x, y)), true
	case ast.Xor:
		return intValue(r.Xor(x, y)), true
	case ast.Shl:
		if y.Sign() < 0 || y.Cmp(big.NewInt(maxShift)) > 0 {
			return value{}, false
		}
		return checked(r.Lsh(x, uint(y.Uint64())))
	case ast.Lt:
		return boolValue(x.Cmp(y) < 0), true
	case ast.Gt:
		return boolValue(x.Cmp(y) > 0), true
	case ast.Le:
		return boolValue(x.Cmp(y) <= 0), true
	case ast.Ge:
		return boolValue(x.Cmp(y) >= 0), true
	case ast.Eq:
		return boolValue(x.Cmp(y) == 0), true
	case ast.Ne:
		return boolValue(x.Cmp(y) != 0), true
	case ast.Land:
		return boolValue(x.Sign() != 0 && y.Sign() != 0), true
	case ast.Lor:
		return boolValue(x.Sign() != 0 || y.Sign() != 0), true
	}
	return value{}, false
}

func foldUnary(op ast.UnaryOp, v value) (value, bool) {
	switch op {
	case ast.Not:
		return boolValue(v.isZero()), true
	case ast.Plus:
		return v, true
	case ast.Neg:
		if v.isFloat {
			return floatValue(-v.f), true
		}
		return checked(new(big.Int).Neg(v.i))
	case ast.BitNot:
		if v.isFloat {
			return value{}, false
		}
		return intValue(new(big.Int).Not(v.i)), true
	}
	return value{}, false
}
