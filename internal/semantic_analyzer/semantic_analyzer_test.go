package semantic_analyzer

import (
	"testing"

	"github.com/kievzenit/cfront/internal/ast"
	"github.com/kievzenit/cfront/internal/compiler_errors"
	"github.com/kievzenit/cfront/internal/ir"
	types "github.com/kievzenit/cfront/internal/ir/types"
	"github.com/kievzenit/cfront/internal/settings"
	"github.com/nalgeon/be"
	"github.com/sanity-io/litter"
)

func analyze(t *testing.T, input string) (*ir.Root, []*compiler_errors.Diagnostic) {
	t.Helper()
	return analyzeFor(t, settings.DefaultSettings(), input)
}

func analyzeFor(t *testing.T, s settings.Settings, input string) (*ir.Root, []*compiler_errors.Diagnostic) {
	t.Helper()
	unit, err := ast.DecodeString(input)
	be.Err(t, err, nil)

	res := NewSemanticAnalyzer(s, unit).Analyze()
	root, ok := res.Value()
	be.True(t, ok)
	t.Cleanup(func() {
		if t.Failed() {
			t.Log(litter.Sdump(root))
		}
	})
	return root, res.Diagnostics()
}

func kinds(diagnostics []*compiler_errors.Diagnostic) []compiler_errors.Kind {
	out := make([]compiler_errors.Kind, 0, len(diagnostics))
	for _, d := range diagnostics {
		out = append(out, d.Kind)
	}
	return out
}

func funcBody(t *testing.T, root *ir.Root, index int) []ir.StmtIr {
	t.Helper()
	def, ok := root.Global.Stmts[index].(*ir.FuncDefStmtIr)
	be.True(t, ok)
	return def.Body.Stmts
}

func exprOf(t *testing.T, stmt ir.StmtIr) ir.ExprIr {
	t.Helper()
	exprStmt, ok := stmt.(*ir.ExprStmtIr)
	be.True(t, ok)
	return exprStmt.Expr
}

func TestAnalyzeProgram(t *testing.T) {
	root, diagnostics := analyze(t, `
		(unit
		  (var int x (init 5))
		  (func int main (params)
		    (block
		      (expr (call printf "%d" x))
		      (return 0))))`)
	be.Equal(t, len(diagnostics), 0)
	be.Equal(t, len(root.Global.Stmts), 2)

	be.Equal(t, root.Table.Len(), 3)
	be.Equal(t, root.Table.Get(0).Name, "printf")
	be.Equal(t, root.Table.Get(1).Name, "x")
	be.True(t, root.Table.Get(1).Global)
	be.True(t, root.Table.Get(1).Initialized)
	be.Equal(t, root.Table.Get(2).Name, "main")
	be.True(t, root.Table.Get(2).Defined)

	init := exprOf(t, root.Global.Stmts[0]).(*ir.AssignExprIr)
	be.Equal(t, init.Target.(*ir.IdentExprIr).Item, ir.ItemID(1))
	be.Equal(t, init.Value.(*ir.IntExprIr).Value.Int64(), int64(5))

	body := funcBody(t, root, 1)
	call := exprOf(t, body[0]).(*ir.CallExprIr)
	be.Equal(t, call.Function, ir.ItemID(0))
	be.Equal(t, call.ExprType().TypeName(), "int")

	format := call.Args[0].(*ir.CastExprIr)
	be.True(t, format.Implicit)
	be.Equal(t, format.ExprType().TypeName(), "const char *")

	ret := body[1].(*ir.ReturnStmtIr)
	be.Equal(t, ret.Expr.(*ir.IntExprIr).Value.Int64(), int64(0))
}

func TestAnalyzeRedeclaration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []compiler_errors.Kind
	}{
		{
			name:  "global variables",
			input: `(unit (var int x) (var int x))`,
			want:  []compiler_errors.Kind{compiler_errors.AlreadyDefined},
		},
		{
			name:  "locals in one scope",
			input: `(unit (func void f (params) (block (var int a) (var double a))))`,
			want:  []compiler_errors.Kind{compiler_errors.AlreadyDefined},
		},
		{
			name:  "parameter and body local",
			input: `(unit (func void f (params (param int a)) (block (var int a))))`,
			want:  []compiler_errors.Kind{compiler_errors.AlreadyDefined},
		},
		{
			name:  "shadowing in a nested block",
			input: `(unit (var int a) (func void f (params) (block (var int a) (block (var int a)))))`,
			want:  []compiler_errors.Kind{},
		},
		{
			name:  "printf can be shadowed",
			input: `(unit (var int printf))`,
			want:  []compiler_errors.Kind{},
		},
		{
			name:  "function body defined twice",
			input: `(unit (func void f (params) (block)) (func void f (params) (block)))`,
			want:  []compiler_errors.Kind{compiler_errors.AlreadyDefined},
		},
		{
			name:  "variable then function",
			input: `(unit (var int f) (func-decl void f (params)))`,
			want:  []compiler_errors.Kind{compiler_errors.AlreadyDefined},
		},
		{
			name:  "prototype then definition",
			input: `(unit (func-decl int f (params (param int))) (func int f (params (param int n)) (block (return n))))`,
			want:  []compiler_errors.Kind{},
		},
		{
			name:  "conflicting prototypes",
			input: `(unit (func-decl int f (params (param int))) (func-decl int f (params (param long))))`,
			want:  []compiler_errors.Kind{compiler_errors.ConflictingTypes},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diagnostics := analyze(t, tt.input)
			be.Equal(t, kinds(diagnostics), tt.want)
		})
	}
}

func TestAnalyzeRedeclarationCitesOriginal(t *testing.T) {
	_, diagnostics := analyze(t, `(unit (var int (id x @4:1)) (var int (id x @15:1)))`)
	be.Equal(t, len(diagnostics), 1)
	be.Equal(t, diagnostics[0].Span.Start, 15)
	be.True(t, diagnostics[0].Related != nil)
	be.Equal(t, diagnostics[0].Related.Start, 4)
}

func TestAnalyzeInitializerSeesOuterName(t *testing.T) {
	root, diagnostics := analyze(t, `
		(unit
		  (var int x (init 1))
		  (func void f (params) (block (var int x (init x)))))`)
	be.Equal(t, len(diagnostics), 0)

	body := funcBody(t, root, 1)
	init := exprOf(t, body[0]).(*ir.AssignExprIr)
	be.Equal(t, init.Target.(*ir.IdentExprIr).Item, ir.ItemID(3))
	be.Equal(t, init.Value.(*ir.IdentExprIr).Item, ir.ItemID(1))
}

func TestAnalyzeSelfReferenceIsUndeclared(t *testing.T) {
	_, diagnostics := analyze(t, `(unit (func void f (params) (block (var int y (init y)))))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{compiler_errors.Undeclared})
}

func TestAnalyzeVariadicPromotion(t *testing.T) {
	root, diagnostics := analyze(t, `
		(unit (func void f (params)
		  (block
		    (var float v (init 1.5))
		    (var char c (init (char 65)))
		    (expr (call printf "%f %c" v c)))))`)
	be.Equal(t, len(diagnostics), 0)

	body := funcBody(t, root, 0)
	call := exprOf(t, body[2]).(*ir.CallExprIr)
	be.Equal(t, len(call.Args), 3)

	promotedFloat := call.Args[1].(*ir.CastExprIr)
	be.True(t, promotedFloat.Implicit)
	be.Equal(t, promotedFloat.ExprType().TypeName(), "double")

	promotedChar := call.Args[2].(*ir.CastExprIr)
	be.Equal(t, promotedChar.ExprType().TypeName(), "int")
}

func TestAnalyzeVariadicPromotionKeepsWideArguments(t *testing.T) {
	root, diagnostics := analyze(t, `
		(unit (func void f
		  (params
		    (param short s) (param double d) (param long l)
		    (param long-double ld) (param unsigned-char uc) (param int i))
		  (block (expr (call printf "x" s d l ld uc i)))))`)
	be.Equal(t, len(diagnostics), 0)

	call := exprOf(t, funcBody(t, root, 0)[0]).(*ir.CallExprIr)
	be.Equal(t, len(call.Args), 7)

	tests := []struct {
		name     string
		arg      int
		promoted bool
		want     string
	}{
		{"short", 1, true, "int"},
		{"double", 2, false, "double"},
		{"long", 3, false, "long"},
		{"long double", 4, false, "long double"},
		{"unsigned char", 5, true, "int"},
		{"int", 6, false, "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg := call.Args[tt.arg]
			be.Equal(t, arg.ExprType().TypeName(), tt.want)
			if !tt.promoted {
				_, isIdent := arg.(*ir.IdentExprIr)
				be.True(t, isIdent)
				return
			}
			cast, isCast := arg.(*ir.CastExprIr)
			be.True(t, isCast)
			be.True(t, cast.Implicit)
			_, isIdent := cast.Expr.(*ir.IdentExprIr)
			be.True(t, isIdent)
		})
	}
}

func TestAnalyzeArgumentCount(t *testing.T) {
	tests := []struct {
		name string
		call string
		want int
	}{
		{"too few", `(call f 1)`, 1},
		{"too many", `(call f 1 2 3)`, 1},
		{"exact", `(call f 1 2)`, 0},
		{"printf without format", `(call printf)`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diagnostics := analyze(t, `
				(unit
				  (func-decl int f (params (param int) (param long)))
				  (func void g (params) (block (expr `+tt.call+`))))`)
			be.Equal(t, len(diagnostics), tt.want)
			if tt.want > 0 {
				be.Equal(t, diagnostics[0].Kind, compiler_errors.ArgumentCount)
			}
		})
	}
}

func TestAnalyzeConstAssignment(t *testing.T) {
	_, diagnostics := analyze(t, `
		(unit (func void f (params)
		  (block
		    (var (const int) c (init 1))
		    (expr (= c 2))
		    (expr (post++ c)))))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{
		compiler_errors.NotAssignable,
		compiler_errors.NotAssignable,
	})
}

func TestAnalyzeConstThroughPointer(t *testing.T) {
	_, diagnostics := analyze(t, `
		(unit (func void f (params (param (ptr (const int)) p))
		  (block (expr (= (* p) 1)) (expr (= (index p 0) 2)))))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{
		compiler_errors.NotAssignable,
		compiler_errors.NotAssignable,
	})
}

func TestAnalyzeNotAnLvalue(t *testing.T) {
	_, diagnostics := analyze(t, `(unit (func void f (params) (block (var int a) (expr (= (+ a 1) 2)) (expr (& 3)))))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{
		compiler_errors.NotAssignable,
		compiler_errors.NotAssignable,
	})
}

func TestAnalyzeStatementContext(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []compiler_errors.Kind
	}{
		{"break outside loop", `(break)`, []compiler_errors.Kind{compiler_errors.InvalidContext}},
		{"continue outside loop", `(continue)`, []compiler_errors.Kind{compiler_errors.InvalidContext}},
		{"break in while", `(while 1 (block (break)))`, []compiler_errors.Kind{}},
		{"continue in for", `(for _ _ _ (block (continue)))`, []compiler_errors.Kind{}},
		{"break in switch", `(switch 1 (case 1 (block (break))))`, []compiler_errors.Kind{}},
		{"continue in switch", `(switch 1 (case 1 (block (continue))))`, []compiler_errors.Kind{compiler_errors.InvalidContext}},
		{"continue in switch in loop", `(while 1 (block (switch 1 (default (block (continue))))))`, []compiler_errors.Kind{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diagnostics := analyze(t, `(unit (func void f (params) (block `+tt.body+`)))`)
			be.Equal(t, kinds(diagnostics), tt.want)
		})
	}
}

func TestAnalyzeIntegerLiterals(t *testing.T) {
	tests := []struct {
		literal string
		want    string
	}{
		{"1", "int"},
		{"2147483648", "long"},
		{"9223372036854775808", "unsigned long"},
		{"0xffffffff", "unsigned int"},
		{"0x100000000", "long"},
		{"0xffffffffffffffff", "unsigned long"},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			root, diagnostics := analyze(t, `(unit (func void f (params) (block (expr `+tt.literal+`))))`)
			be.Equal(t, len(diagnostics), 0)
			lit := exprOf(t, funcBody(t, root, 0)[0]).(*ir.IntExprIr)
			be.Equal(t, lit.ExprType().TypeName(), tt.want)
		})
	}
}

func TestAnalyzeIntegerLiteralsOnSmallTarget(t *testing.T) {
	root, diagnostics := analyzeFor(t, settings.Settings{Target: settings.AVR},
		`(unit (func void f (params) (block (expr 40000) (expr 0xffff))))`)
	be.Equal(t, len(diagnostics), 0)

	body := funcBody(t, root, 0)
	be.Equal(t, exprOf(t, body[0]).ExprType().TypeName(), "long")
	be.Equal(t, exprOf(t, body[1]).ExprType().TypeName(), "unsigned int")
}

func TestAnalyzeLiteralOutOfRange(t *testing.T) {
	_, diagnostics := analyze(t, `(unit (var long x (init 18446744073709551616)))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{compiler_errors.LiteralOutOfRange})
}

func TestAnalyzeArrays(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []compiler_errors.Kind
	}{
		{"fixed length", `(unit (var int a (array 4)))`, []compiler_errors.Kind{}},
		{"unknown length", `(unit (var int a (array)))`, []compiler_errors.Kind{compiler_errors.Unimplemented}},
		{"non-literal length", `(unit (var int n) (var int a (array n)))`, []compiler_errors.Kind{compiler_errors.Unimplemented}},
		{"initializer", `(unit (var int a (array 2) (init 1)))`, []compiler_errors.Kind{compiler_errors.Unimplemented}},
		{"zero length", `(unit (var int a (array 0)))`, []compiler_errors.Kind{compiler_errors.TypeMismatch}},
		{"two dimensions", `(unit (var int a (array 2) (array 2)))`, []compiler_errors.Kind{compiler_errors.Unimplemented}},
		{"parameter in definition", `(unit (func void f (params (param int a (array 2))) (block)))`, []compiler_errors.Kind{compiler_errors.Unimplemented}},
		{"parameter in prototype", `(unit (func-decl void f (params (param int a (array 2)))))`, []compiler_errors.Kind{}},
		{"assigning an array", `(unit (var int a (array 2)) (var int b (array 2)) (func void f (params) (block (expr (= a b)))))`, []compiler_errors.Kind{compiler_errors.NotAssignable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diagnostics := analyze(t, tt.input)
			be.Equal(t, kinds(diagnostics), tt.want)
		})
	}
}

func TestAnalyzeSubscriptDecays(t *testing.T) {
	root, diagnostics := analyze(t, `
		(unit
		  (var int a (array 4))
		  (func int f (params) (block (return (index a 1)))))`)
	be.Equal(t, len(diagnostics), 0)

	ret := funcBody(t, root, 1)[0].(*ir.ReturnStmtIr)
	deref := ret.Expr.(*ir.DerefExprIr)
	be.Equal(t, deref.ExprType().TypeName(), "int")

	add := deref.Ptr.(*ir.BinaryExprIr)
	be.Equal(t, add.Op, ir.Add)
	be.Equal(t, add.ExprType().TypeName(), "int *")

	decayed := add.Left.(*ir.CastExprIr)
	be.True(t, decayed.Implicit)
	be.Equal(t, decayed.Expr.ExprType().TypeName(), "int[4]")
}

func TestAnalyzeSubscriptEitherOrder(t *testing.T) {
	_, diagnostics := analyze(t, `(unit (func int f (params (param (ptr int) p)) (block (return (index 2 p)))))`)
	be.Equal(t, len(diagnostics), 0)
}

func TestAnalyzeBinaryTypes(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"(+ c c)", "int"},
		{"(+ i l)", "long"},
		{"(* i d)", "double"},
		{"(+ u i)", "unsigned int"},
		{"(+ p i)", "int *"},
		{"(+ i p)", "int *"},
		{"(- p i)", "int *"},
		{"(- p p)", "long"},
		{"(< p p)", "int"},
		{"(== p 0)", "int"},
		{"(<< c l)", "int"},
		{"(&& d p)", "int"},
		{"(! p)", "int"},
		{"(- c)", "int"},
		{"(~ u)", "unsigned int"},
		{"(& i)", "int *"},
		{"(* p)", "int"},
		{"(post++ p)", "int *"},
		{"(cast long i)", "long"},
		{"(cast (ptr char) l)", "char *"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			root, diagnostics := analyze(t, `
				(unit (func void f (params
				    (param char c) (param int i) (param unsigned u)
				    (param long l) (param double d) (param (ptr int) p))
				  (block (expr `+tt.expr+`))))`)
			be.Equal(t, len(diagnostics), 0)
			be.Equal(t, exprOf(t, funcBody(t, root, 0)[0]).ExprType().TypeName(), tt.want)
		})
	}
}

func TestAnalyzeInvalidOperands(t *testing.T) {
	tests := []string{
		"(% d i)",
		"(* p i)",
		"(+ p p)",
		"(- i p)",
		"(~ d)",
		"(* i)",
		"(< p i)",
		"(cast (ptr int) d)",
		"(= p d)",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, diagnostics := analyze(t, `
				(unit (func void f (params (param int i) (param double d) (param (ptr int) p))
				  (block (expr `+expr+`))))`)
			be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{compiler_errors.TypeMismatch})
		})
	}
}

func TestAnalyzePointerConversions(t *testing.T) {
	tests := []struct {
		name  string
		stmts string
		want  []compiler_errors.Kind
	}{
		{"null constant", `(var (ptr int) p (init 0))`, []compiler_errors.Kind{}},
		{"non-zero integer", `(var (ptr int) p (init 1))`, []compiler_errors.Kind{compiler_errors.TypeMismatch}},
		{"adding const", `(var int x) (var (ptr (const int)) p (init (& x)))`, []compiler_errors.Kind{}},
		{"dropping const", `(var (const int) x (init 1)) (var (ptr int) p (init (& x)))`, []compiler_errors.Kind{compiler_errors.TypeMismatch}},
		{"through void pointer", `(var int x) (var (ptr void) v (init (& x))) (var (ptr double) d (init v))`, []compiler_errors.Kind{}},
		{"unrelated pointees", `(var int x) (var (ptr double) d (init (& x)))`, []compiler_errors.Kind{compiler_errors.TypeMismatch}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diagnostics := analyze(t, `(unit (func void f (params) (block `+tt.stmts+`)))`)
			be.Equal(t, kinds(diagnostics), tt.want)
		})
	}
}

func TestAnalyzeReturns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []compiler_errors.Kind
	}{
		{"value in void", `(unit (func void f (params) (block (return 1))))`, []compiler_errors.Kind{compiler_errors.TypeMismatch}},
		{"missing value", `(unit (func int f (params) (block (return))))`, []compiler_errors.Kind{compiler_errors.TypeMismatch}},
		{"converted value", `(unit (func double f (params) (block (return 1))))`, []compiler_errors.Kind{}},
		{"pointer from double", `(unit (func (ptr int) f (params) (block (return 1.5))))`, []compiler_errors.Kind{compiler_errors.TypeMismatch}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diagnostics := analyze(t, tt.input)
			be.Equal(t, kinds(diagnostics), tt.want)
		})
	}
}

func TestAnalyzeVoidFunctionGetsReturn(t *testing.T) {
	root, diagnostics := analyze(t, `(unit (func void f (params) (block (var int x))))`)
	be.Equal(t, len(diagnostics), 0)

	body := funcBody(t, root, 0)
	be.Equal(t, len(body), 1)
	ret, ok := body[0].(*ir.ReturnStmtIr)
	be.True(t, ok)
	be.True(t, ret.Expr == nil)
}

func TestAnalyzeSwitch(t *testing.T) {
	root, diagnostics := analyze(t, `
		(unit (func void f (params (param char c))
		  (block (switch c
		    (case 1 (block (break)))
		    (case (char 98) (block))
		    (default (block))))))`)
	be.Equal(t, len(diagnostics), 0)

	sw := funcBody(t, root, 0)[0].(*ir.SwitchStmtIr)
	be.Equal(t, sw.Expr.ExprType().TypeName(), "int")
	be.Equal(t, len(sw.Cases), 3)
	be.Equal(t, sw.Cases[1].Value.Int64(), int64(98))
	be.True(t, sw.Cases[2].Value == nil)
}

func TestAnalyzeSwitchErrors(t *testing.T) {
	tests := []struct {
		name  string
		cases string
		want  []compiler_errors.Kind
	}{
		{"duplicate value", `(case 1 (block)) (case 1 (block))`, []compiler_errors.Kind{compiler_errors.DuplicateCase}},
		{"duplicate default", `(default (block)) (default (block))`, []compiler_errors.Kind{compiler_errors.DuplicateCase}},
		{"char equals int", `(case 97 (block)) (case (char 97) (block))`, []compiler_errors.Kind{compiler_errors.DuplicateCase}},
		{"non-literal label", `(case i (block))`, []compiler_errors.Kind{compiler_errors.Unimplemented}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diagnostics := analyze(t, `(unit (func void f (params (param int i)) (block (switch i `+tt.cases+`))))`)
			be.Equal(t, kinds(diagnostics), tt.want)
		})
	}
}

func TestAnalyzeKeepsGoingAfterErrors(t *testing.T) {
	root, diagnostics := analyze(t, `
		(unit
		  (var int a (init missing))
		  (func void broken (params) (block (break)))
		  (func int ok (params) (block (return 1))))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{
		compiler_errors.Undeclared,
		compiler_errors.InvalidContext,
	})

	// broken keeps the statements that did lower.
	be.Equal(t, len(root.Global.Stmts), 2)
	broken := root.Global.Stmts[0].(*ir.FuncDefStmtIr)
	be.Equal(t, root.Table.Get(broken.Function).Name, "broken")
	ok := root.Global.Stmts[1].(*ir.FuncDefStmtIr)
	be.Equal(t, root.Table.Get(ok.Function).Name, "ok")

	// The failed declarations still reserve their names.
	be.Equal(t, root.Table.Get(1).Name, "a")
}

func TestAnalyzeForScope(t *testing.T) {
	_, diagnostics := analyze(t, `
		(unit (func void f (params)
		  (block
		    (for (var int i (init 0)) (< i 10) (post++ i) (block))
		    (expr i))))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{compiler_errors.Undeclared})
}

func TestAnalyzeConditionMustBeScalar(t *testing.T) {
	_, diagnostics := analyze(t, `
		(unit
		  (func-decl void g (params))
		  (func void f (params) (block (if (call g) (block)))))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{compiler_errors.TypeMismatch})
}

func TestAnalyzeFunctionAsValue(t *testing.T) {
	_, diagnostics := analyze(t, `(unit (func void f (params) (block (expr f))))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{compiler_errors.Unimplemented})
}

func TestAnalyzeCallingNonFunction(t *testing.T) {
	_, diagnostics := analyze(t, `(unit (var int x) (func void f (params) (block (expr (call x)) (expr (call nope)))))`)
	be.Equal(t, kinds(diagnostics), []compiler_errors.Kind{
		compiler_errors.TypeMismatch,
		compiler_errors.Undeclared,
	})
}

func TestAnalyzeVoidParameterList(t *testing.T) {
	root, diagnostics := analyze(t, `(unit (func-decl int f (params (param void))) (func void g (params) (block (expr (call f)))))`)
	be.Equal(t, len(diagnostics), 0)

	fn := root.Table.Get(1).Type.(*types.FunctionType)
	be.Equal(t, len(fn.Params), 0)
	be.Equal(t, fn.TypeName(), "int (void)")
}
