package ir

// Root is the lowered translation unit.
type Root struct {
	Global *Block
	Table  *SymbolTable
}

type Block struct {
	Stmts []StmtIr
}
