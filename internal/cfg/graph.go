// Package cfg builds control-flow graphs for R function bodies and top-level
// programs and finds unreachable regions in them. Blocks live in an arena
// addressed by BlockID; the graph borrows syntax nodes from the tree and
// never owns them.
package cfg

import (
	"rlint/internal/ast"
	"rlint/internal/source"
)

// BlockID addresses a block within one Graph's arena.
type BlockID uint32

// NoBlock marks an absent block reference.
const NoBlock BlockID = ^BlockID(0)

// TermKind describes how control leaves a block.
type TermKind uint8

const (
	TermNone TermKind = iota
	TermGoto
	TermBranch
	TermLoop
	TermReturn
	TermBreak
	TermNext
	TermStop
)

func (k TermKind) String() string {
	switch k {
	case TermNone:
		return "none"
	case TermGoto:
		return "goto"
	case TermBranch:
		return "branch"
	case TermLoop:
		return "loop"
	case TermReturn:
		return "return"
	case TermBreak:
		return "break"
	case TermNext:
		return "next"
	case TermStop:
		return "stop"
	}
	return "unknown"
}

// Terminator carries the terminator kind and its targets. Targets duplicate
// information held in Succs; reason attribution reads them to distinguish
// branch arms from fall-through edges.
type Terminator struct {
	Kind   TermKind
	Goto   BlockID // TermGoto
	Then   BlockID // TermBranch
	Else   BlockID // TermBranch; NoBlock when the if has no else
	Body   BlockID // TermLoop
	After  BlockID // TermLoop
	Target BlockID // TermReturn/Break/Next/Stop
}

// Block is a maximal straight-line statement sequence. Succs and Preds hold
// real edges and are kept symmetric. DeadPreds records
// predecessor-without-edge relations: "this block would have been reached
// from here", without conferring reachability. Dead branches and statements
// after a terminator carry them for later reason attribution.
type Block struct {
	ID        BlockID
	Nodes     []*ast.Node
	Span      source.Span
	HasSpan   bool
	Succs     []BlockID
	Preds     []BlockID
	DeadPreds []BlockID
	Term      Terminator
}

// Terminated reports whether the block ends in a control transfer that never
// falls through to the next statement.
func (b *Block) Terminated() bool {
	switch b.Term.Kind {
	case TermReturn, TermBreak, TermNext, TermStop:
		return true
	}
	return false
}

func (b *Block) addNode(n *ast.Node) {
	if n == nil {
		return
	}
	b.Nodes = append(b.Nodes, n)
	if !b.HasSpan {
		b.Span = n.Span
		b.HasSpan = true
	} else {
		b.Span = b.Span.Cover(n.Span)
	}
}

// Graph is a dense arena of blocks with one entry and one exit.
type Graph struct {
	Blocks []Block
	Entry  BlockID
	Exit   BlockID
}

func newGraph() *Graph {
	g := &Graph{}
	g.Entry = g.newBlock()
	g.Exit = g.newBlock()
	return g
}

func (g *Graph) newBlock() BlockID {
	id := BlockID(len(g.Blocks))
	g.Blocks = append(g.Blocks, Block{ID: id})
	return id
}

// Block returns the block for id. The pointer is valid until the next
// newBlock call.
func (g *Graph) Block(id BlockID) *Block {
	return &g.Blocks[id]
}

// addEdge records a real edge, keeping Succs and Preds symmetric.
func (g *Graph) addEdge(from, to BlockID) {
	g.Blocks[from].Succs = append(g.Blocks[from].Succs, to)
	g.Blocks[to].Preds = append(g.Blocks[to].Preds, from)
}

// addDeadPred records a predecessor pointer without an edge.
func (g *Graph) addDeadPred(block, pred BlockID) {
	g.Blocks[block].DeadPreds = append(g.Blocks[block].DeadPreds, pred)
}

// HasIncomingEdges reports whether the block can be entered over a real
// edge. The entry block counts as always reachable; dead predecessor
// pointers never count.
func (g *Graph) HasIncomingEdges(id BlockID) bool {
	if id == g.Entry {
		return true
	}
	return len(g.Blocks[id].Preds) > 0
}
