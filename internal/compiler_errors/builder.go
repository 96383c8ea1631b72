package compiler_errors

import (
	"fmt"

	"github.com/kievzenit/cfront/internal/span"
)

// DiagnosticBuilder creates diagnostics anchored at one span.
type DiagnosticBuilder struct {
	span span.Span
}

func NewDiagnosticBuilder(s span.Span) DiagnosticBuilder {
	return DiagnosticBuilder{span: s}
}

func (b DiagnosticBuilder) build(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Span:    b.span,
		Message: fmt.Sprintf(format, args...),
	}
}

func (b DiagnosticBuilder) related(d *Diagnostic, original span.Span, format string, args ...any) *Diagnostic {
	d.Related = &original
	d.RelatedMessage = fmt.Sprintf(format, args...)
	return d
}

func (b DiagnosticBuilder) BuildAlreadyDefined(name string, original span.Span) *Diagnostic {
	d := b.build(AlreadyDefined, "redefinition of '%s'", name)
	return b.related(d, original, "'%s' was first defined here", name)
}

func (b DiagnosticBuilder) BuildUnimplemented(feature string) *Diagnostic {
	return b.build(Unimplemented, "%s not implemented yet", feature)
}

func (b DiagnosticBuilder) BuildLiteralOutOfRange(literal string) *Diagnostic {
	return b.build(LiteralOutOfRange, "integer literal %s does not fit in any integer type", literal)
}

func (b DiagnosticBuilder) BuildTypeMismatch(from, to string) *Diagnostic {
	return b.build(TypeMismatch, "cannot convert '%s' to '%s'", from, to)
}

func (b DiagnosticBuilder) BuildInvalidOperands(op, left, right string) *Diagnostic {
	return b.build(TypeMismatch, "invalid operands to '%s' ('%s' and '%s')", op, left, right)
}

func (b DiagnosticBuilder) BuildInvalidOperand(op, operand string) *Diagnostic {
	return b.build(TypeMismatch, "invalid operand to '%s' ('%s')", op, operand)
}

func (b DiagnosticBuilder) BuildUndeclared(name string) *Diagnostic {
	return b.build(Undeclared, "use of undeclared identifier '%s'", name)
}

func (b DiagnosticBuilder) BuildNotAssignable(reason string) *Diagnostic {
	return b.build(NotAssignable, "expression is not assignable: %s", reason)
}

func (b DiagnosticBuilder) BuildInvalidContext(stmt, context string) *Diagnostic {
	return b.build(InvalidContext, "'%s' statement not in %s", stmt, context)
}

func (b DiagnosticBuilder) BuildArgumentCount(name string, want, got int, variadic bool) *Diagnostic {
	if variadic {
		return b.build(ArgumentCount, "too few arguments to '%s': expected at least %d, have %d", name, want, got)
	}
	if got < want {
		return b.build(ArgumentCount, "too few arguments to '%s': expected %d, have %d", name, want, got)
	}
	return b.build(ArgumentCount, "too many arguments to '%s': expected %d, have %d", name, want, got)
}

func (b DiagnosticBuilder) BuildConflictingTypes(name string, original span.Span) *Diagnostic {
	d := b.build(ConflictingTypes, "conflicting types for '%s'", name)
	return b.related(d, original, "previous declaration of '%s' is here", name)
}

func (b DiagnosticBuilder) BuildDuplicateCase(value string, original span.Span) *Diagnostic {
	d := b.build(DuplicateCase, "duplicate case value %s", value)
	return b.related(d, original, "previous case is here")
}

func (b DiagnosticBuilder) BuildNotCallable(name string) *Diagnostic {
	return b.build(TypeMismatch, "'%s' is not a function", name)
}

func (b DiagnosticBuilder) BuildVoidVariable(name string) *Diagnostic {
	return b.build(TypeMismatch, "variable '%s' declared void", name)
}

func (b DiagnosticBuilder) BuildInvalidArraySize(name string) *Diagnostic {
	return b.build(TypeMismatch, "size of array '%s' must be a positive integer", name)
}

func (b DiagnosticBuilder) BuildNotScalar(typeName string) *Diagnostic {
	return b.build(TypeMismatch, "'%s' used where a scalar is required", typeName)
}

func (b DiagnosticBuilder) BuildReturnValueInVoid(function string) *Diagnostic {
	return b.build(TypeMismatch, "void function '%s' should not return a value", function)
}

func (b DiagnosticBuilder) BuildMissingReturnValue(function string) *Diagnostic {
	return b.build(TypeMismatch, "non-void function '%s' should return a value", function)
}
