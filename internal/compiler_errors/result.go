package compiler_errors

// AggregateResult carries a value, possibly absent, together with every
// diagnostic produced while computing it. A result may hold both a value and
// diagnostics when the value is usable but degraded.
type AggregateResult[T any] struct {
	value       T
	hasValue    bool
	diagnostics []*Diagnostic
}

func Ok[T any](value T) AggregateResult[T] {
	return AggregateResult[T]{value: value, hasValue: true}
}

func Err[T any](diagnostics ...*Diagnostic) AggregateResult[T] {
	return AggregateResult[T]{diagnostics: diagnostics}
}

// IsOk reports a value with no diagnostics.
func (r AggregateResult[T]) IsOk() bool {
	return r.hasValue && len(r.diagnostics) == 0
}

func (r AggregateResult[T]) HasValue() bool {
	return r.hasValue
}

func (r AggregateResult[T]) Value() (T, bool) {
	return r.value, r.hasValue
}

func (r AggregateResult[T]) Diagnostics() []*Diagnostic {
	return r.diagnostics
}

func merge(a, b []*Diagnostic) []*Diagnostic {
	if len(b) == 0 {
		return a
	}
	merged := make([]*Diagnostic, 0, len(a)+len(b))
	merged = append(merged, a...)
	return append(merged, b...)
}

func Map[T, U any](r AggregateResult[T], f func(T) U) AggregateResult[U] {
	if !r.hasValue {
		return AggregateResult[U]{diagnostics: r.diagnostics}
	}
	return AggregateResult[U]{value: f(r.value), hasValue: true, diagnostics: r.diagnostics}
}

// AndThen chains a computation that may itself produce diagnostics.
func AndThen[T, U any](r AggregateResult[T], f func(T) AggregateResult[U]) AggregateResult[U] {
	if !r.hasValue {
		return AggregateResult[U]{diagnostics: r.diagnostics}
	}
	next := f(r.value)
	next.diagnostics = merge(r.diagnostics, next.diagnostics)
	return next
}

type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip combines two results. The pair is present only when both values are.
func Zip[A, B any](a AggregateResult[A], b AggregateResult[B]) AggregateResult[Pair[A, B]] {
	res := AggregateResult[Pair[A, B]]{diagnostics: merge(a.diagnostics, b.diagnostics)}
	if a.hasValue && b.hasValue {
		res.value = Pair[A, B]{First: a.value, Second: b.value}
		res.hasValue = true
	}
	return res
}

// AddTo folds r into acc. Diagnostics are always moved over; combine runs
// only when both hold a value. A missing value in r leaves acc's value alone,
// so one failed item never discards its siblings.
func AddTo[T, A any](r AggregateResult[T], acc *AggregateResult[A], combine func(*A, T)) {
	acc.diagnostics = merge(acc.diagnostics, r.diagnostics)
	if r.hasValue && acc.hasValue {
		combine(&acc.value, r.value)
	}
}

// Collect gathers a slice of results into one, keeping the values that are
// present.
func Collect[T any](results []AggregateResult[T]) AggregateResult[[]T] {
	acc := Ok(make([]T, 0, len(results)))
	for _, r := range results {
		AddTo(r, &acc, func(values *[]T, v T) { *values = append(*values, v) })
	}
	return acc
}

// All is like Collect but drops the value if any element lacks one.
func All[T any](results []AggregateResult[T]) AggregateResult[[]T] {
	collected := Collect(results)
	for _, r := range results {
		if !r.hasValue {
			return AggregateResult[[]T]{diagnostics: collected.diagnostics}
		}
	}
	return collected
}
