package sexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kievzenit/cfront/internal/span"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeFloat
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeFloat:
		return "float"
	case NodeList:
		return "list"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is a single datum. Lists may carry a span annotation written as
// @start:length anywhere among their items.
type Node struct {
	Type NodeType

	// Text holds the raw atom: the symbol name, the unquoted string, or the
	// number exactly as written.
	Text string

	Items []*Node
	Span  *span.Span
}

func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewFloat(text string) *Node {
	return &Node{Type: NodeFloat, Text: text}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

// WithSpan sets the span annotation and returns the node for chaining.
func (n *Node) WithSpan(s span.Span) *Node {
	n.Span = &s
	return n
}

func (n *Node) IsAtom() bool {
	return n.Type != NodeList
}

// IsSymbol reports whether n is the symbol name.
func (n *Node) IsSymbol(name string) bool {
	return n != nil && n.Type == NodeSymbol && n.Text == name
}

// Head returns the symbol a list starts with, or "" when there is none.
func (n *Node) Head() string {
	if n.Type != NodeList || len(n.Items) == 0 || n.Items[0].Type != NodeSymbol {
		return ""
	}
	return n.Items[0].Text
}

// Args returns the list items after the head.
func (n *Node) Args() []*Node {
	if n.Type != NodeList || len(n.Items) == 0 {
		return nil
	}
	return n.Items[1:]
}

func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Type {
	case NodeSymbol, NodeInteger, NodeFloat:
		sb.WriteString(n.Text)
	case NodeString:
		sb.WriteString(strconv.Quote(n.Text))
	case NodeList:
		sb.WriteByte('(')
		for i, item := range n.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			item.write(sb)
		}
		if n.Span != nil {
			if len(n.Items) > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(sb, "@%d:%d", n.Span.Start, n.Span.Length)
		}
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

// Equal compares two nodes structurally, ignoring span annotations.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Text != b.Text || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}
