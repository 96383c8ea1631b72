package ir_types

import "fmt"

type ArrayType struct {
	Element      Type
	ElementConst bool
	Length       int64
}

func (a *ArrayType) TypeName() string {
	prefix := ""
	if a.ElementConst {
		prefix = "const "
	}
	return fmt.Sprintf("%s%s[%d]", prefix, a.Element.TypeName(), a.Length)
}

func (a *ArrayType) SameAs(t Type) bool {
	if arrayType, ok := t.(*ArrayType); ok {
		return a.Length == arrayType.Length &&
			a.ElementConst == arrayType.ElementConst &&
			a.Element.SameAs(arrayType.Element)
	}
	return false
}

// Arrays are never converted directly; they decay to pointers first.
func (a *ArrayType) CanBeImplicitlyCastedTo(t Type) bool {
	return false
}

func (a *ArrayType) CanBeExplicitlyCastedTo(t Type) bool {
	return false
}
