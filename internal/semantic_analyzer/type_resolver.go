package semantic_analyzer

import (
	"fmt"

	"github.com/kievzenit/cfront/internal/ast"
	types "github.com/kievzenit/cfront/internal/ir/types"
)

// TypeResolver maps syntax tree types onto IR types.
type TypeResolver struct {
	builtinTypesMap map[ast.PrimitiveType]types.Type
}

func (tr *TypeResolver) defineBuiltInTypes() {
	tr.builtinTypesMap[ast.Void] = &types.VoidType{}

	tr.builtinTypesMap[ast.Char] = types.NewArithmeticType(types.Char)
	tr.builtinTypesMap[ast.SignedChar] = types.NewArithmeticType(types.SignedChar)
	tr.builtinTypesMap[ast.UnsignedChar] = types.NewArithmeticType(types.UnsignedChar)
	tr.builtinTypesMap[ast.SignedShortInt] = types.NewArithmeticType(types.SignedShortInt)
	tr.builtinTypesMap[ast.UnsignedShortInt] = types.NewArithmeticType(types.UnsignedShortInt)
	tr.builtinTypesMap[ast.SignedInt] = types.NewArithmeticType(types.SignedInt)
	tr.builtinTypesMap[ast.UnsignedInt] = types.NewArithmeticType(types.UnsignedInt)
	tr.builtinTypesMap[ast.SignedLongInt] = types.NewArithmeticType(types.SignedLongInt)
	tr.builtinTypesMap[ast.UnsignedLongInt] = types.NewArithmeticType(types.UnsignedLongInt)

	tr.builtinTypesMap[ast.Float] = types.NewArithmeticType(types.Float)
	tr.builtinTypesMap[ast.Double] = types.NewArithmeticType(types.Double)
	tr.builtinTypesMap[ast.LongDouble] = types.NewArithmeticType(types.LongDouble)
}

func NewTypeResolver() *TypeResolver {
	tr := &TypeResolver{
		builtinTypesMap: make(map[ast.PrimitiveType]types.Type),
	}
	tr.defineBuiltInTypes()
	return tr
}

// GetType resolves a qualified type and reports its top-level const.
func (tr *TypeResolver) GetType(qualified *ast.QualifiedTypeNode) (types.Type, bool) {
	return tr.getUnqualifiedType(qualified.Inner), qualified.Const
}

func (tr *TypeResolver) getUnqualifiedType(astType ast.TypeNode) types.Type {
	switch t := astType.(type) {
	case *ast.PrimitiveTypeNode:
		builtin, ok := tr.builtinTypesMap[t.Kind]
		if !ok {
			panic(fmt.Sprintf("unknown primitive type %d", int(t.Kind)))
		}
		return builtin
	case *ast.PointerTypeNode:
		pointee, pointeeConst := tr.GetType(t.To)
		return types.NewPointerType(pointee, pointeeConst)
	default:
		panic(fmt.Sprintf("unexpected type node %T", astType))
	}
}

func (tr *TypeResolver) VoidType() types.Type {
	return tr.builtinTypesMap[ast.Void]
}

func (tr *TypeResolver) IntType() types.Type {
	return tr.builtinTypesMap[ast.SignedInt]
}

func (tr *TypeResolver) LongType() types.Type {
	return tr.builtinTypesMap[ast.SignedLongInt]
}

func (tr *TypeResolver) DoubleType() types.Type {
	return tr.builtinTypesMap[ast.Double]
}

func (tr *TypeResolver) ArithmeticType(kind types.Arithmetic) types.Type {
	return types.NewArithmeticType(kind)
}

// StringType is the type of a string literal.
func (tr *TypeResolver) StringType() types.Type {
	return types.NewPointerType(tr.builtinTypesMap[ast.Char], false)
}

// ConstStringType is the format parameter type of printf.
func (tr *TypeResolver) ConstStringType() types.Type {
	return types.NewPointerType(tr.builtinTypesMap[ast.Char], true)
}
