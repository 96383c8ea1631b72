package ir_types

type ArithmeticType struct {
	Kind Arithmetic
}

func NewArithmeticType(kind Arithmetic) *ArithmeticType {
	return &ArithmeticType{Kind: kind}
}

func (a *ArithmeticType) TypeName() string {
	return a.Kind.String()
}

func (a *ArithmeticType) SameAs(t Type) bool {
	if arithmeticType, ok := t.(*ArithmeticType); ok {
		return a.Kind == arithmeticType.Kind
	}
	return false
}

// Every arithmetic conversion is implicit in C, narrowing ones included.
func (a *ArithmeticType) CanBeImplicitlyCastedTo(t Type) bool {
	_, ok := t.(*ArithmeticType)
	return ok
}

func (a *ArithmeticType) CanBeExplicitlyCastedTo(t Type) bool {
	switch t.(type) {
	case *ArithmeticType, *VoidType:
		return true
	case *PointerType:
		return a.Kind.IsIntegral()
	}
	return false
}
