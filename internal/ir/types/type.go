package ir_types

type Type interface {
	TypeName() string
	SameAs(other Type) bool
	CanBeImplicitlyCastedTo(t Type) bool
	CanBeExplicitlyCastedTo(t Type) bool
}

// AsArithmetic returns the arithmetic form of t, if it has one.
func AsArithmetic(t Type) (Arithmetic, bool) {
	if a, ok := t.(*ArithmeticType); ok {
		return a.Kind, true
	}
	return 0, false
}

func IsIntegral(t Type) bool {
	a, ok := AsArithmetic(t)
	return ok && a.IsIntegral()
}

func IsPointer(t Type) bool {
	_, ok := t.(*PointerType)
	return ok
}

// IsScalar reports arithmetic and pointer types, the ones usable as
// conditions.
func IsScalar(t Type) bool {
	switch t.(type) {
	case *ArithmeticType, *PointerType:
		return true
	}
	return false
}

func IsVoid(t Type) bool {
	_, ok := t.(*VoidType)
	return ok
}

// Decay converts an array to a pointer to its first element. Other types
// are returned unchanged.
func Decay(t Type) Type {
	if array, ok := t.(*ArrayType); ok {
		return &PointerType{Pointee: array.Element, PointeeConst: array.ElementConst}
	}
	return t
}
