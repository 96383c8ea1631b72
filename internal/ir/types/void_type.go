package ir_types

type VoidType struct{}

func (*VoidType) TypeName() string {
	return "void"
}

func (*VoidType) SameAs(t Type) bool {
	if _, ok := t.(*VoidType); ok {
		return true
	}
	return false
}

func (*VoidType) CanBeImplicitlyCastedTo(t Type) bool {
	return false
}

func (*VoidType) CanBeExplicitlyCastedTo(t Type) bool {
	return IsVoid(t)
}
