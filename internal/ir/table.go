package ir

import (
	types "github.com/kievzenit/cfront/internal/ir/types"
	"github.com/kievzenit/cfront/internal/span"
)

// ItemID identifies a declared object or function. Ids are dense, never
// reused, and stay valid after the declaring scope is closed.
type ItemID int

type Item struct {
	Name         string
	Type         types.Type
	IsConst      bool
	OriginalSpan span.Span

	Global      bool
	Initialized bool
	// Defined is set for functions that have a body.
	Defined bool
}

// SymbolTable is the arena every scope of a translation unit allocates
// items from.
type SymbolTable struct {
	items []Item
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

func (t *SymbolTable) Add(item Item) ItemID {
	t.items = append(t.items, item)
	return ItemID(len(t.items) - 1)
}

// Get returns the item for id. The pointer stays valid until the next Add.
func (t *SymbolTable) Get(id ItemID) *Item {
	if int(id) < 0 || int(id) >= len(t.items) {
		panic("invalid item id")
	}
	return &t.items[id]
}

func (t *SymbolTable) Len() int {
	return len(t.items)
}

func (t *SymbolTable) Items() []Item {
	return t.items
}
