package cfg

import (
	"rlint/internal/ast"
	"rlint/internal/token"
)

type loopCtx struct {
	head  BlockID // continue target
	after BlockID // break target
}

type builder struct {
	g     *Graph
	loops []loopCtx
}

// Build constructs the control-flow graph for a function body or top-level
// program. It never fails: structurally absent fields (an if without an
// else, a for without a body) degrade by omitting the corresponding
// sub-graph.
func Build(body *ast.Node) *Graph {
	b := &builder{g: newGraph()}
	cur := b.g.Entry
	if body != nil {
		cur = b.buildInto(cur, body)
	}
	end := b.g.Block(cur)
	if end.Term.Kind == TermNone {
		end.Term = Terminator{Kind: TermGoto, Goto: b.g.Exit}
		b.g.addEdge(cur, b.g.Exit)
	}
	return b.g
}

// buildInto walks a statement or a braced block in the context of cur and
// returns the block where control continues.
func (b *builder) buildInto(cur BlockID, stmt *ast.Node) BlockID {
	if stmt != nil && (stmt.Kind == ast.KindBlock || stmt.Kind == ast.KindProgram) {
		return b.buildStmts(cur, stmt.Children)
	}
	return b.buildStmts(cur, []*ast.Node{stmt})
}

func (b *builder) buildStmts(cur BlockID, stmts []*ast.Node) BlockID {
	for i, stmt := range stmts {
		if stmt == nil {
			continue
		}

		// Unreachable-region containment: inside a block with no incoming
		// edges there is no point fragmenting nested control flow into more
		// dead blocks. Flatten everything that remains.
		if !b.g.HasIncomingEdges(cur) {
			b.flattenInto(cur, stmts[i:])
			return cur
		}

		// Terminator propagation: statements after return/break/next/stop
		// become one bulk-appended block so a contiguous dead run yields a
		// single diagnostic.
		if b.g.Block(cur).Terminated() {
			dead := b.g.newBlock()
			b.g.addDeadPred(dead, cur)
			b.flattenInto(dead, stmts[i:])
			return dead
		}

		switch {
		case stmt.Kind == ast.KindIf:
			cur = b.buildIf(cur, stmt)
		case stmt.Kind == ast.KindWhile:
			cur = b.buildWhile(cur, stmt)
		case stmt.Kind == ast.KindFor:
			cur = b.buildFor(cur, stmt)
		case stmt.Kind == ast.KindRepeat:
			cur = b.buildRepeat(cur, stmt)
		case stmt.Kind == ast.KindBlock:
			cur = b.buildStmts(cur, stmt.Children)
		case stmt.Kind == ast.KindBreak:
			cur = b.buildJump(cur, stmt, TermBreak)
		case stmt.Kind == ast.KindNext:
			cur = b.buildJump(cur, stmt, TermNext)
		case stmt.IsCallTo("return"):
			blk := b.g.Block(cur)
			blk.addNode(stmt)
			blk.Term = Terminator{Kind: TermReturn, Target: b.g.Exit}
			b.g.addEdge(cur, b.g.Exit)
		case stmt.IsCallTo("stop"):
			blk := b.g.Block(cur)
			blk.addNode(stmt)
			blk.Term = Terminator{Kind: TermStop, Target: b.g.Exit}
			b.g.addEdge(cur, b.g.Exit)
		default:
			b.g.Block(cur).addNode(stmt)
		}
	}
	return cur
}

// flattenInto bulk-appends statements without recursing into their control
// flow, so one dead region stays one block.
func (b *builder) flattenInto(id BlockID, stmts []*ast.Node) {
	blk := b.g.Block(id)
	for _, stmt := range stmts {
		blk.addNode(stmt)
	}
}

func (b *builder) buildJump(cur BlockID, stmt *ast.Node, kind TermKind) BlockID {
	if len(b.loops) == 0 {
		// break/next outside a loop is a runtime error in R, not a control
		// transfer we can model; keep it as an ordinary statement
		b.g.Block(cur).addNode(stmt)
		return cur
	}
	ctx := b.loops[len(b.loops)-1]
	target := ctx.after
	if kind == TermNext {
		target = ctx.head
	}
	blk := b.g.Block(cur)
	blk.addNode(stmt)
	blk.Term = Terminator{Kind: kind, Target: target}
	b.g.addEdge(cur, target)
	return cur
}

func (b *builder) buildIf(cur BlockID, stmt *ast.Node) BlockID {
	cond := stmt.IfCond()
	b.g.Block(cur).addNode(cond)

	val, known := FoldBool(cond)

	thenBlk := b.g.newBlock()
	if !known || val {
		b.g.addEdge(cur, thenBlk)
	} else {
		b.g.addDeadPred(thenBlk, cur)
	}
	thenEnd := b.buildInto(thenBlk, stmt.IfThen())

	elseBlk := NoBlock
	elseEnd := NoBlock
	if elseNode := stmt.IfElse(); elseNode != nil {
		elseBlk = b.g.newBlock()
		if !known || !val {
			b.g.addEdge(cur, elseBlk)
		} else {
			b.g.addDeadPred(elseBlk, cur)
		}
		elseEnd = b.buildInto(elseBlk, elseNode)
	}

	b.g.Block(cur).Term = Terminator{Kind: TermBranch, Then: thenBlk, Else: elseBlk}

	join := b.g.newBlock()
	joined := false
	if !b.g.Block(thenEnd).Terminated() {
		b.g.addEdge(thenEnd, join)
		b.setGoto(thenEnd, join)
		joined = true
	}
	if elseEnd != NoBlock {
		if !b.g.Block(elseEnd).Terminated() {
			b.g.addEdge(elseEnd, join)
			b.setGoto(elseEnd, join)
			joined = true
		}
	} else {
		// No else: the false path falls through to the join, unless the
		// condition is constant TRUE, in which case it is a dead branch.
		if !known || !val {
			b.g.addEdge(cur, join)
			joined = true
		} else {
			b.g.addDeadPred(join, cur)
		}
	}
	if !joined {
		// Neither arm can reach the join. Record a predecessor pointer back
		// to the branch block so reason attribution can say "after branch
		// terminating" instead of "no path from entry".
		b.g.addDeadPred(join, cur)
	}
	return join
}

func (b *builder) setGoto(id, target BlockID) {
	blk := b.g.Block(id)
	if blk.Term.Kind == TermNone {
		blk.Term = Terminator{Kind: TermGoto, Goto: target}
	}
}

func (b *builder) buildWhile(cur BlockID, stmt *ast.Node) BlockID {
	cond := stmt.LoopCond()
	head := b.g.newBlock()
	b.g.addEdge(cur, head)
	b.setGoto(cur, head)
	b.g.Block(head).addNode(cond)

	val, known := FoldBool(cond)

	body := b.g.newBlock()
	after := b.g.newBlock()
	b.g.Block(head).Term = Terminator{Kind: TermLoop, Body: body, After: after}

	if !known || val {
		b.g.addEdge(head, body)
	} else {
		b.g.addDeadPred(body, head)
	}
	if !known || !val {
		b.g.addEdge(head, after)
	} else {
		b.g.addDeadPred(after, head)
	}

	b.loops = append(b.loops, loopCtx{head: head, after: after})
	bodyEnd := b.buildInto(body, stmt.LoopBody())
	b.loops = b.loops[:len(b.loops)-1]

	if !b.g.Block(bodyEnd).Terminated() {
		b.g.addEdge(bodyEnd, head)
		b.setGoto(bodyEnd, head)
	}
	return after
}

func (b *builder) buildFor(cur BlockID, stmt *ast.Node) BlockID {
	head := b.g.newBlock()
	b.g.addEdge(cur, head)
	b.setGoto(cur, head)
	b.g.Block(head).addNode(stmt.ForSeq())

	body := b.g.newBlock()
	after := b.g.newBlock()
	b.g.Block(head).Term = Terminator{Kind: TermLoop, Body: body, After: after}
	// A for loop runs zero or more times; both edges are always real.
	b.g.addEdge(head, body)
	b.g.addEdge(head, after)

	b.loops = append(b.loops, loopCtx{head: head, after: after})
	bodyEnd := b.buildInto(body, stmt.LoopBody())
	b.loops = b.loops[:len(b.loops)-1]

	if !b.g.Block(bodyEnd).Terminated() {
		b.g.addEdge(bodyEnd, head)
		b.setGoto(bodyEnd, head)
	}
	return after
}

func (b *builder) buildRepeat(cur BlockID, stmt *ast.Node) BlockID {
	head := b.g.newBlock()
	b.g.addEdge(cur, head)
	b.setGoto(cur, head)

	body := b.g.newBlock()
	after := b.g.newBlock()
	b.g.Block(head).Term = Terminator{Kind: TermLoop, Body: body, After: after}
	// repeat has no condition: header links to the body unconditionally and
	// to the post-loop block for the possibility of an eventual break.
	b.g.addEdge(head, body)
	b.g.addEdge(head, after)

	b.loops = append(b.loops, loopCtx{head: head, after: after})
	bodyEnd := b.buildInto(body, stmt.LoopBody())
	b.loops = b.loops[:len(b.loops)-1]

	if !b.g.Block(bodyEnd).Terminated() {
		b.g.addEdge(bodyEnd, head)
		b.setGoto(bodyEnd, head)
	}
	return after
}

// FoldBool syntactically evaluates a condition to a boolean constant.
// Short-circuit operators fold when the constant side determines the result
// regardless of the other operand: TRUE || x is TRUE, FALSE && x is FALSE.
// The vectorized & and | fold the same way.
func FoldBool(n *ast.Node) (value, known bool) {
	if n == nil {
		return false, false
	}
	switch n.Kind {
	case ast.KindBool:
		return n.Text == "TRUE", true
	case ast.KindParen:
		return FoldBool(n.Inner())
	case ast.KindUnary:
		if n.Op == token.Bang {
			v, k := FoldBool(n.Operand())
			if k {
				return !v, true
			}
		}
		return false, false
	case ast.KindBinary:
		switch n.Op {
		case token.AmpAmp, token.Amp:
			lv, lk := FoldBool(n.LHS())
			rv, rk := FoldBool(n.RHS())
			if lk && !lv {
				return false, true
			}
			if rk && !rv {
				return false, true
			}
			if lk && rk {
				return lv && rv, true
			}
		case token.PipePipe, token.Pipe:
			lv, lk := FoldBool(n.LHS())
			rv, rk := FoldBool(n.RHS())
			if lk && lv {
				return true, true
			}
			if rk && rv {
				return true, true
			}
			if lk && rk {
				return lv || rv, true
			}
		}
	}
	return false, false
}
