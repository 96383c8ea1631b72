package const_folder

import (
	"github.com/kievzenit/cfront/internal/ast"
	types "github.com/kievzenit/cfront/internal/ir/types"
)

var arithmeticOf = map[ast.PrimitiveType]types.Arithmetic{
	ast.Char:             types.Char,
	ast.SignedChar:       types.SignedChar,
	ast.UnsignedChar:     types.UnsignedChar,
	ast.SignedShortInt:   types.SignedShortInt,
	ast.UnsignedShortInt: types.UnsignedShortInt,
	ast.SignedInt:        types.SignedInt,
	ast.UnsignedInt:      types.UnsignedInt,
	ast.SignedLongInt:    types.SignedLongInt,
	ast.UnsignedLongInt:  types.UnsignedLongInt,
	ast.Float:            types.Float,
	ast.Double:           types.Double,
	ast.LongDouble:       types.LongDouble,
}

// storedValue converts v to the value a variable of type typ holds after
// being initialized with it. It reports false when no literal can stand in
// for the variable on every target.
func storedValue(typ *ast.QualifiedTypeNode, v value) (value, bool) {
	prim, ok := typ.Inner.(*ast.PrimitiveTypeNode)
	if !ok {
		// a pointer may only be substituted by another pointer
		return value{}, false
	}
	a, ok := arithmeticOf[prim.Kind]
	if !ok {
		return value{}, false
	}

	switch {
	case a == types.Float:
		return floatValue(float64(float32(v.float()))), true
	case a.IsFloating():
		return floatValue(v.float()), true
	case v.isFloat:
		return value{}, false
	case a == types.UnsignedInt || a == types.UnsignedLongInt:
		// arithmetic on these wraps at a target width, which folding does not model
		return value{}, false
	}

	min, max := a.PortableBounds()
	if v.i.Cmp(min) < 0 || v.i.Cmp(max) > 0 {
		return value{}, false
	}
	return v, true
}
