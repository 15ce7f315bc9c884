package cfg

import (
	"sort"

	"rlint/internal/source"
)

// Reason explains why a region is unreachable.
type Reason uint8

const (
	ReasonAfterReturn Reason = iota
	ReasonAfterBreak
	ReasonAfterNext
	ReasonAfterStop
	ReasonAfterBranchTerminating
	ReasonDeadBranch
	ReasonNoPathFromEntry
)

func (r Reason) String() string {
	switch r {
	case ReasonAfterReturn:
		return "after return statement"
	case ReasonAfterBreak:
		return "after break statement"
	case ReasonAfterNext:
		return "after next statement"
	case ReasonAfterStop:
		return "after stop call"
	case ReasonAfterBranchTerminating:
		return "after branch terminating"
	case ReasonDeadBranch:
		return "inside a branch that can never run"
	case ReasonNoPathFromEntry:
		return "no path from entry"
	}
	return "unreachable"
}

// UnreachableInfo is one unreachable region with its causal reason.
type UnreachableInfo struct {
	Span   source.Span
	Reason Reason
}

// FindUnreachable returns the unreachable regions of g, grouped so that a
// contiguous run of dead statements sharing a reason yields one entry. src
// is the file content g was built from; it is consulted only to verify that
// the gap between two regions holds nothing but whitespace and semicolons.
func FindUnreachable(g *Graph, src []byte) []UnreachableInfo {
	reachable := reachableSet(g)

	infos := make([]UnreachableInfo, 0)
	memo := make(map[BlockID]termState)
	for i := range g.Blocks {
		b := &g.Blocks[i]
		if reachable[b.ID] || b.ID == g.Entry || b.ID == g.Exit || !b.HasSpan {
			continue
		}
		infos = append(infos, UnreachableInfo{
			Span:   b.Span,
			Reason: attribute(g, b, memo),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Span.Start != infos[j].Span.Start {
			return infos[i].Span.Start < infos[j].Span.Start
		}
		return infos[i].Span.End < infos[j].Span.End
	})
	return groupContiguous(infos, src)
}

// reachableSet runs a breadth-first traversal from entry over real edges
// only. Predecessor pointers never confer reachability.
func reachableSet(g *Graph) map[BlockID]bool {
	reachable := make(map[BlockID]bool, len(g.Blocks))
	queue := []BlockID{g.Entry}
	reachable[g.Entry] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, succ := range g.Blocks[id].Succs {
			if !reachable[succ] {
				reachable[succ] = true
				queue = append(queue, succ)
			}
		}
	}
	return reachable
}

// attribute derives the causal reason for an unreachable block, in strict
// priority order: a terminating predecessor first, then a branch whose every
// arm terminates, then a dead-branch pointer, then no path at all.
func attribute(g *Graph, b *Block, memo map[BlockID]termState) Reason {
	preds := make([]BlockID, 0, len(b.Preds)+len(b.DeadPreds))
	preds = append(preds, b.Preds...)
	preds = append(preds, b.DeadPreds...)

	for _, pred := range preds {
		switch g.Blocks[pred].Term.Kind {
		case TermReturn:
			return ReasonAfterReturn
		case TermBreak:
			return ReasonAfterBreak
		case TermNext:
			return ReasonAfterNext
		case TermStop:
			return ReasonAfterStop
		}
	}

	for _, pred := range preds {
		if g.Blocks[pred].Term.Kind != TermBranch {
			continue
		}
		if branchTerminates(g, pred, memo) {
			return ReasonAfterBranchTerminating
		}
	}

	if len(b.DeadPreds) > 0 && len(b.Preds) == 0 {
		return ReasonDeadBranch
	}
	return ReasonNoPathFromEntry
}

type termState uint8

const (
	termUnknown termState = iota
	termInProgress
	termYes
	termNo
)

// branchTerminates reports whether every arm of the branch block resolves to
// a terminating reason.
func branchTerminates(g *Graph, id BlockID, memo map[BlockID]termState) bool {
	succs := g.Blocks[id].Succs
	if len(succs) == 0 {
		return false
	}
	for _, s := range succs {
		if !blockTerminates(g, s, memo) {
			return false
		}
	}
	return true
}

// blockTerminates resolves whether all control flow through the block ends
// in return/break/next/stop. Memoized per block id; blocks currently being
// resolved (a loop feeding back into a conditional) count as open, which
// keeps the recursion finite without a depth limit.
func blockTerminates(g *Graph, id BlockID, memo map[BlockID]termState) bool {
	switch memo[id] {
	case termYes:
		return true
	case termNo, termInProgress:
		return false
	}
	memo[id] = termInProgress

	b := &g.Blocks[id]
	var res bool
	switch b.Term.Kind {
	case TermReturn, TermBreak, TermNext, TermStop:
		res = true
	case TermGoto:
		res = blockTerminates(g, b.Term.Goto, memo)
	case TermBranch:
		res = branchTerminates(g, id, memo)
	default:
		// TermLoop and TermNone leave an open path
		res = false
	}

	if res {
		memo[id] = termYes
	} else {
		memo[id] = termNo
	}
	return res
}

// groupContiguous merges adjacent regions that share a reason when the text
// between them is only whitespace or semicolons.
func groupContiguous(infos []UnreachableInfo, src []byte) []UnreachableInfo {
	if len(infos) < 2 {
		return infos
	}
	out := infos[:1]
	for _, info := range infos[1:] {
		last := &out[len(out)-1]
		if info.Reason == last.Reason && contiguous(last.Span, info.Span, src) {
			last.Span = last.Span.Cover(info.Span)
			continue
		}
		out = append(out, info)
	}
	return out
}

func contiguous(a, b source.Span, src []byte) bool {
	if b.Start <= a.End {
		return true
	}
	if int(b.Start) > len(src) {
		return false
	}
	for _, c := range src[a.End:b.Start] {
		switch c {
		case ' ', '\t', '\n', '\r', ';':
		default:
			return false
		}
	}
	return true
}
