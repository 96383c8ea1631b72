package ast

import (
	"math"
	"math/big"
	"testing"

	"github.com/kievzenit/cfront/internal/sexpr"
	"github.com/kievzenit/cfront/internal/span"
	"github.com/nalgeon/be"
)

func decodeExprString(t *testing.T, input string) Expr {
	t.Helper()
	node, err := sexpr.Parse(input)
	be.Err(t, err, nil)
	expr, err := DecodeExpr(node)
	be.Err(t, err, nil)
	return expr
}

func TestDecodeVarDecl(t *testing.T) {
	unit, err := DecodeString(`(unit (var (const int) limit (init 10) @0:20))`)
	be.Err(t, err, nil)
	be.Equal(t, len(unit.Stmts), 1)

	decl, ok := unit.Stmts[0].(*VarDeclStmt)
	be.True(t, ok)
	be.Equal(t, decl.Name, "limit")
	be.True(t, decl.Type.Const)
	be.Equal(t, decl.Type.TypeName(), "const int")
	be.Equal(t, decl.Span, span.New(0, 20))

	value, ok := decl.Value.(*IntExpr)
	be.True(t, ok)
	be.Equal(t, value.Value.Int64(), int64(10))
}

func TestDecodeFunctions(t *testing.T) {
	unit, err := DecodeString(`
		(unit
		  (func-decl int printf (params (param (ptr (const char))) ...))
		  (func void run (params (param int n) (param (ptr int) p))
		    (block (expr (call printf "%d" n)) (return))))`)
	be.Err(t, err, nil)
	be.Equal(t, len(unit.Stmts), 2)

	proto := unit.Stmts[0].(*FuncDeclStmt)
	be.Equal(t, proto.Name, "printf")
	be.True(t, proto.Variadic)
	be.Equal(t, len(proto.Args), 1)
	be.Equal(t, proto.Args[0].Name, "")
	be.Equal(t, proto.Args[0].Type.TypeName(), "const char *")

	def := unit.Stmts[1].(*FuncDefStmt)
	be.Equal(t, def.Name, "run")
	be.Equal(t, def.ReturnType.TypeName(), "void")
	be.Equal(t, len(def.Args), 2)
	be.Equal(t, def.Args[1].Type.TypeName(), "int *")
	be.Equal(t, len(def.Body.Stmts), 2)

	call := def.Body.Stmts[0].(*ExprStmt).Expr.(*CallExpr)
	be.Equal(t, call.Name, "printf")
	be.Equal(t, len(call.Args), 2)
	be.Equal(t, call.Args[0].(*StringExpr).Value, "%d")
}

func TestDecodeOperatorsByArity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(- a b)", "*ast.BinaryExpr -"},
		{"(- a)", "*ast.UnaryExpr -"},
		{"(* p)", "*ast.UnaryExpr *"},
		{"(* a b)", "*ast.BinaryExpr *"},
		{"(& x)", "*ast.UnaryExpr &"},
		{"(post++ i)", "*ast.UnaryExpr post++"},
		{"(<< 1 2)", "*ast.BinaryExpr <<"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := decodeExprString(t, tt.input)
			var got string
			switch e := expr.(type) {
			case *BinaryExpr:
				got = "*ast.BinaryExpr " + e.Op.String()
			case *UnaryExpr:
				got = "*ast.UnaryExpr " + e.Op.String()
			}
			be.Equal(t, got, tt.want)
		})
	}
}

func TestDecodeIntegerBases(t *testing.T) {
	tests := []struct {
		input string
		value int64
		base  IntBase
	}{
		{"42", 42, Dec},
		{"0", 0, Dec},
		{"0x2a", 42, Hex},
		{"017", 15, Octal},
		{"-7", -7, Dec},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lit := decodeExprString(t, tt.input).(*IntExpr)
			be.Equal(t, lit.Value.Int64(), tt.value)
			be.Equal(t, lit.Base, tt.base)
		})
	}
}

func TestDecodeIntegerTooWide(t *testing.T) {
	node, err := sexpr.Parse("170141183460469231731687303715884105728")
	be.Err(t, err, nil)
	_, err = DecodeExpr(node)
	be.True(t, err != nil)
}

func TestDecodeSpanWrappers(t *testing.T) {
	ident := decodeExprString(t, "(id x @4:1)").(*IdentExpr)
	be.Equal(t, ident.Value, "x")
	be.Equal(t, ident.Span, span.New(4, 1))

	lit := decodeExprString(t, "(lit 7 @9:1)").(*IntExpr)
	be.Equal(t, lit.Value.Int64(), int64(7))
	be.Equal(t, lit.Span, span.New(9, 1))
}

func TestDecodeFloats(t *testing.T) {
	be.Equal(t, decodeExprString(t, "2.5").(*FloatExpr).Value, 2.5)
	be.True(t, math.IsInf(decodeExprString(t, "inf").(*FloatExpr).Value, 1))
	be.True(t, math.IsNaN(decodeExprString(t, "nan").(*FloatExpr).Value))
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		`(program)`,
		`(unit (var int))`,
		`(unit (var wat x))`,
		`(unit (func int main (params) (return 0)))`,
		`(unit (func int main (params ... (param int a)) (block)))`,
		`(unit (func int main (params) (block (if 1))))`,
		`(unit (func int main (params) (block (for (return) _ _ (block)))))`,
		`(unit (func int main (params) (block (expr (foo 1 2 3)))))`,
		`(unit (var (const (const int)) x))`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := DecodeString(input)
			be.True(t, err != nil)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []string{
		`(unit (var int x (init 5)) (var (ptr (const char)) s (init "hi")))`,
		`(unit (var int buf (array 16)))`,
		`(unit (func-decl int printf (params (param (ptr (const char))) ...)))`,
		`(unit (func int main (params (param int argc)) (block (var double d (init 2.0)) (expr (= d (cast double argc))) (return (+ 1 (* 2 3))))))`,
		`(unit (func void f (params) (block (if (< a b) (block (break)) (block (continue))) (while 1 (block)) (for (var int i (init 0)) (< i 10) (post++ i) (block)) (for _ _ _ (block)))))`,
		`(unit (func void f (params) (block (switch x (case 1 (block (break))) (default (block))) (return))))`,
		`(unit (func int g (params) (block (return (index a (- 0x1f (~ 017)))))))`,
		`(unit (func int h (params) (block (expr (call putc (char 97))) (return (& x)))))`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			unit, err := DecodeString(input)
			be.Err(t, err, nil)
			be.Equal(t, Format(unit), input)
		})
	}
}

func TestFormatFloat(t *testing.T) {
	be.Equal(t, FormatFloat(2), "2.0")
	be.Equal(t, FormatFloat(0.5), "0.5")
	be.Equal(t, FormatFloat(1e21), "1e+21")
	be.Equal(t, FormatFloat(math.Inf(-1)), "-inf")
}

func TestFitsInt128(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	be.True(t, FitsInt128(max))
	be.True(t, !FitsInt128(new(big.Int).Add(max, big.NewInt(1))))
	be.True(t, FitsInt128(new(big.Int).Neg(new(big.Int).Add(max, big.NewInt(1)))))
}
