package ir_types

import "strings"

type FunctionType struct {
	ReturnType Type
	Params     []Type
	Variadic   bool
}

func (f *FunctionType) TypeName() string {
	params := make([]string, 0, len(f.Params)+1)
	for _, p := range f.Params {
		params = append(params, p.TypeName())
	}
	if f.Variadic {
		params = append(params, "...")
	}
	if len(params) == 0 {
		params = append(params, "void")
	}
	return f.ReturnType.TypeName() + " (" + strings.Join(params, ", ") + ")"
}

func (f *FunctionType) SameAs(t Type) bool {
	other, ok := t.(*FunctionType)
	if !ok || f.Variadic != other.Variadic || len(f.Params) != len(other.Params) {
		return false
	}
	if !f.ReturnType.SameAs(other.ReturnType) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].SameAs(other.Params[i]) {
			return false
		}
	}
	return true
}

func (f *FunctionType) CanBeImplicitlyCastedTo(t Type) bool {
	return false
}

func (f *FunctionType) CanBeExplicitlyCastedTo(t Type) bool {
	return false
}
