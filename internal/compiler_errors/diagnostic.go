package compiler_errors

import (
	"fmt"

	"github.com/kievzenit/cfront/internal/span"
)

type Kind int

const (
	AlreadyDefined Kind = iota
	Unimplemented
	LiteralOutOfRange
	TypeMismatch
	Undeclared
	NotAssignable
	InvalidContext
	ArgumentCount
	ConflictingTypes
	DuplicateCase
)

var kindNames = [...]string{
	AlreadyDefined:    "already-defined",
	Unimplemented:     "unimplemented",
	LiteralOutOfRange: "literal-out-of-range",
	TypeMismatch:      "type-mismatch",
	Undeclared:        "undeclared",
	NotAssignable:     "not-assignable",
	InvalidContext:    "invalid-context",
	ArgumentCount:     "argument-count",
	ConflictingTypes:  "conflicting-types",
	DuplicateCase:     "duplicate-case",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Diagnostic is a single compile problem. Related points at an earlier
// location the message refers to, such as the first declaration of a name.
type Diagnostic struct {
	Kind    Kind
	Span    span.Span
	Message string

	Related        *span.Span
	RelatedMessage string
}

func (d *Diagnostic) GetMessage() string {
	return d.Message
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: error[%s]: %s", d.Span, d.Kind, d.Message)
}
