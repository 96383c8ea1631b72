package compiler_errors

import (
	"strconv"
	"testing"

	"github.com/kievzenit/cfront/internal/span"
	"github.com/nalgeon/be"
)

func diag(kind Kind) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: kind.String()}
}

// degraded builds a result holding value alongside diagnostics.
func degraded[T any](value T, diagnostics ...*Diagnostic) AggregateResult[T] {
	return AggregateResult[T]{value: value, hasValue: true, diagnostics: diagnostics}
}

func kinds(ds []*Diagnostic) []Kind {
	out := make([]Kind, len(ds))
	for i, d := range ds {
		out[i] = d.Kind
	}
	return out
}

func TestOkAndErr(t *testing.T) {
	ok := Ok(3)
	be.True(t, ok.IsOk())
	v, present := ok.Value()
	be.True(t, present)
	be.Equal(t, v, 3)

	err := Err[int](diag(Unimplemented))
	be.True(t, !err.IsOk())
	be.True(t, !err.HasValue())
	be.Equal(t, kinds(err.Diagnostics()), []Kind{Unimplemented})

	partial := degraded(3, diag(TypeMismatch))
	be.True(t, !partial.IsOk())
	be.True(t, partial.HasValue())
}

func TestMap(t *testing.T) {
	called := false
	res := Map(Err[int](diag(Undeclared)), func(v int) string {
		called = true
		return strconv.Itoa(v)
	})
	be.True(t, !called)
	be.Equal(t, kinds(res.Diagnostics()), []Kind{Undeclared})

	res = Map(degraded(7, diag(TypeMismatch)), strconv.Itoa)
	v, _ := res.Value()
	be.Equal(t, v, "7")
	be.Equal(t, kinds(res.Diagnostics()), []Kind{TypeMismatch})
}

func TestAndThenMergesDiagnostics(t *testing.T) {
	first := degraded(1, diag(AlreadyDefined))
	res := AndThen(first, func(v int) AggregateResult[int] {
		return Err[int](diag(LiteralOutOfRange))
	})
	be.True(t, !res.HasValue())
	be.Equal(t, kinds(res.Diagnostics()), []Kind{AlreadyDefined, LiteralOutOfRange})
}

func TestZipKeepsBothSides(t *testing.T) {
	tests := []struct {
		name     string
		a        AggregateResult[int]
		b        AggregateResult[string]
		hasValue bool
		kinds    []Kind
	}{
		{"both ok", Ok(1), Ok("x"), true, []Kind{}},
		{"left failed", Err[int](diag(AlreadyDefined)), Ok("x"), false, []Kind{AlreadyDefined}},
		{"right failed", Ok(1), Err[string](diag(LiteralOutOfRange)), false, []Kind{LiteralOutOfRange}},
		{
			"both failed",
			Err[int](diag(AlreadyDefined)),
			Err[string](diag(LiteralOutOfRange)),
			false,
			[]Kind{AlreadyDefined, LiteralOutOfRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Zip(tt.a, tt.b)
			be.Equal(t, res.HasValue(), tt.hasValue)
			be.Equal(t, kinds(res.Diagnostics()), tt.kinds)
			if tt.hasValue {
				pair, _ := res.Value()
				be.Equal(t, pair.First, 1)
				be.Equal(t, pair.Second, "x")
			}
		})
	}
}

func TestAddToKeepsSiblings(t *testing.T) {
	acc := Ok([]int{})
	push := func(values *[]int, v int) { *values = append(*values, v) }

	AddTo(Ok(1), &acc, push)
	AddTo(Err[int](diag(Unimplemented)), &acc, push)
	AddTo(Ok(3), &acc, push)

	values, ok := acc.Value()
	be.True(t, ok)
	be.Equal(t, values, []int{1, 3})
	be.Equal(t, kinds(acc.Diagnostics()), []Kind{Unimplemented})
}

func TestCollectAndAll(t *testing.T) {
	results := []AggregateResult[int]{Ok(1), Err[int](diag(TypeMismatch)), Ok(2)}

	collected := Collect(results)
	values, _ := collected.Value()
	be.Equal(t, values, []int{1, 2})
	be.Equal(t, len(collected.Diagnostics()), 1)

	all := All(results)
	be.True(t, !all.HasValue())
	be.Equal(t, len(all.Diagnostics()), 1)

	all = All([]AggregateResult[int]{Ok(1), Ok(2)})
	be.True(t, all.IsOk())
}

func TestAddToKeepsDegradedAccumulator(t *testing.T) {
	acc := degraded([]int{1}, diag(Undeclared))
	AddTo(Ok(2), &acc, func(values *[]int, v int) { *values = append(*values, v) })

	values, ok := acc.Value()
	be.True(t, ok)
	be.Equal(t, values, []int{1, 2})
	be.Equal(t, kinds(acc.Diagnostics()), []Kind{Undeclared})
}

func TestBuilderCarriesRelatedSpan(t *testing.T) {
	d := NewDiagnosticBuilder(span.New(20, 1)).BuildAlreadyDefined("x", span.New(4, 1))
	be.Equal(t, d.Kind, AlreadyDefined)
	be.Equal(t, d.Span, span.New(20, 1))
	be.True(t, d.Related != nil)
	be.Equal(t, *d.Related, span.New(4, 1))
	be.Equal(t, d.GetMessage(), "redefinition of 'x'")
}
