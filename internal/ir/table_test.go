package ir

import (
	"testing"

	types "github.com/kievzenit/cfront/internal/ir/types"
	"github.com/nalgeon/be"
)

func TestSymbolTable(t *testing.T) {
	table := NewSymbolTable()
	be.Equal(t, table.Len(), 0)

	x := table.Add(Item{Name: "x", Type: types.NewArithmeticType(types.SignedInt)})
	y := table.Add(Item{Name: "y", Type: types.NewArithmeticType(types.Double), IsConst: true})
	be.Equal(t, x, ItemID(0))
	be.Equal(t, y, ItemID(1))
	be.Equal(t, table.Len(), 2)

	be.Equal(t, table.Get(y).Name, "y")
	be.True(t, table.Get(y).IsConst)

	table.Get(x).Initialized = true
	be.True(t, table.Items()[0].Initialized)
}

func TestSymbolTableInvalidID(t *testing.T) {
	table := NewSymbolTable()
	defer func() {
		be.True(t, recover() != nil)
	}()
	table.Get(ItemID(3))
}

func TestBinaryOpClasses(t *testing.T) {
	be.True(t, Lt.IsComparison())
	be.True(t, Eq.IsComparison())
	be.True(t, !Land.IsComparison())
	be.True(t, Lor.IsLogical())
	be.True(t, !Add.IsLogical())
	be.Equal(t, Shl.String(), "<<")
	be.Equal(t, Not.String(), "!")
}
