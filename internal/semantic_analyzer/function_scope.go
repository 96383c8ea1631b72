package semantic_analyzer

import (
	types "github.com/kievzenit/cfront/internal/ir/types"
	"github.com/kievzenit/cfront/internal/span"
)

// functionScope is the context statements inside a function body are
// checked against. It is passed by value so loops and switches can narrow
// it for their bodies only.
type functionScope struct {
	name       string
	returnType types.Type
	returnSpan span.Span
	inSwitch   bool
	inLoop     bool
}

func (fs functionScope) enterSwitch() functionScope {
	fs.inSwitch = true
	return fs
}

func (fs functionScope) enterLoop() functionScope {
	fs.inLoop = true
	return fs
}
