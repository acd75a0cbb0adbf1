package parser

import (
	"github.com/partiql-lang/partiql-go/internal/parsetree"
	"github.com/partiql-lang/partiql-go/lexer"
)

// arena batches parsetree.Node allocation into growable slabs so a parse
// over a long query doesn't allocate once per node. This keeps the
// amortized-allocation idiom of oarkflow-sqlparser's parser/arena.go without
// its unsafe pointer arithmetic: plain slices of parsetree.Node values do
// the same job safely, at the cost of one bounds check per alloc that
// the spec's resource model (§5: O(n) in input size, no zero-allocation
// requirement) doesn't ask us to avoid.
type arena struct {
	slabs    [][]parsetree.Node
	slabSize int
}

const defaultSlabSize = 64

func newArena() *arena {
	return &arena{slabSize: defaultSlabSize}
}

// alloc returns a pointer to a fresh, zeroed parsetree.Node living inside
// the arena's current slab, growing the arena if the slab is full.
func (a *arena) alloc() *parsetree.Node {
	if len(a.slabs) == 0 || len(a.slabs[len(a.slabs)-1]) == cap(a.slabs[len(a.slabs)-1]) {
		a.slabs = append(a.slabs, make([]parsetree.Node, 0, a.slabSize))
	}
	last := &a.slabs[len(a.slabs)-1]
	*last = (*last)[:len(*last)+1]
	return &(*last)[len(*last)-1]
}

// node builds a fully-populated arena-backed Node, mirroring
// parsetree.New's signature.
func (a *arena) node(typ parsetree.ParseType, tok lexer.Token, children ...*parsetree.Node) *parsetree.Node {
	n := a.alloc()
	n.Type = typ
	n.Anchor = tok
	n.Children = children
	return n
}
