package semantic_analyzer

import "github.com/kievzenit/cfront/internal/ir"

// ScopedTable resolves names through a chain of scopes while allocating
// every item from one shared arena, so ids outlive the scope that declared
// them.
type ScopedTable struct {
	table  *ir.SymbolTable
	scopes []map[string]ir.ItemID
}

func NewScopedTable() *ScopedTable {
	return &ScopedTable{
		table:  ir.NewSymbolTable(),
		scopes: []map[string]ir.ItemID{make(map[string]ir.ItemID)},
	}
}

// Declare adds item to the innermost scope. When the name is already
// declared in that scope nothing changes and the existing id is returned
// with false.
func (st *ScopedTable) Declare(name string, item ir.Item) (ir.ItemID, bool) {
	scope := st.scopes[len(st.scopes)-1]
	if id, ok := scope[name]; ok {
		return id, false
	}

	id := st.table.Add(item)
	scope[name] = id
	return id, true
}

func (st *ScopedTable) Lookup(name string) (ir.ItemID, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if id, ok := st.scopes[i][name]; ok {
			return id, true
		}
	}
	return 0, false
}

func (st *ScopedTable) Get(id ir.ItemID) *ir.Item {
	return st.table.Get(id)
}

func (st *ScopedTable) EnterScope() {
	st.scopes = append(st.scopes, make(map[string]ir.ItemID))
}

func (st *ScopedTable) ExitScope() {
	if len(st.scopes) == 1 {
		panic("cannot exit the root scope")
	}
	st.scopes = st.scopes[:len(st.scopes)-1]
}

func (st *ScopedTable) Depth() int {
	return len(st.scopes)
}

// IntoTable returns the arena. The scoped view must not be used afterwards.
func (st *ScopedTable) IntoTable() *ir.SymbolTable {
	table := st.table
	st.table = nil
	st.scopes = nil
	return table
}
