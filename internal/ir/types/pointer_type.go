package ir_types

type PointerType struct {
	Pointee      Type
	PointeeConst bool
}

func NewPointerType(pointee Type, pointeeConst bool) *PointerType {
	return &PointerType{Pointee: pointee, PointeeConst: pointeeConst}
}

func (t *PointerType) TypeName() string {
	if t.PointeeConst {
		return "const " + t.Pointee.TypeName() + " *"
	}
	return t.Pointee.TypeName() + " *"
}

func (t *PointerType) SameAs(other Type) bool {
	if pointerType, ok := other.(*PointerType); ok {
		return t.PointeeConst == pointerType.PointeeConst && t.Pointee.SameAs(pointerType.Pointee)
	}
	return false
}

// A pointer converts implicitly when the pointees match or either side is
// void *, as long as the conversion does not drop a const.
func (t *PointerType) CanBeImplicitlyCastedTo(other Type) bool {
	pointerType, ok := other.(*PointerType)
	if !ok {
		return false
	}
	if t.PointeeConst && !pointerType.PointeeConst {
		return false
	}
	return t.Pointee.SameAs(pointerType.Pointee) || IsVoid(t.Pointee) || IsVoid(pointerType.Pointee)
}

func (t *PointerType) CanBeExplicitlyCastedTo(other Type) bool {
	switch other := other.(type) {
	case *PointerType, *VoidType:
		return true
	case *ArithmeticType:
		return other.Kind.IsIntegral()
	}
	return false
}
