// Package ast defines the syntax tree the checker, CFG builder, and
// suppression manager consume. The tree is immutable after parsing: analyses
// borrow nodes and never modify them.
package ast

import (
	"rlint/internal/source"
	"rlint/internal/token"
)

// Node is one syntax tree node. Children layout per kind:
//
//	If:       [cond, then] or [cond, then, else]
//	While:    [cond, body]
//	For:      [var, seq, body]
//	Repeat:   [body]
//	Function: [param..., body] (body last)
//	Call:     [callee, arg...]
//	Index:    [target, arg...]
//	Binary:   [lhs, rhs] (Op holds the operator)
//	Unary:    [operand]
//	Paren:    [expr]
//	Arg:      [value] (Text holds the argument name, may be empty)
//	Block, Program: statements in order
type Node struct {
	Kind     Kind
	Span     source.Span
	Op       token.Kind // Binary/Unary operator
	Text     string     // Ident text, literal text, Arg/Param name
	Parent   *Node
	Children []*Node
	Leading  []token.Trivia // trivia attached to the node's first token
}

// NewNode constructs a node of the given kind covering span.
func NewNode(kind Kind, span source.Span) *Node {
	return &Node{Kind: kind, Span: span}
}

// AddChild appends a child and sets its parent link. Nil children are
// ignored so optional grammar fields degrade by omission.
func (n *Node) AddChild(c *Node) {
	if c == nil {
		return
	}
	c.Parent = n
	n.Children = append(n.Children, c)
	n.Span = n.Span.Cover(c.Span)
}

func (n *Node) child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Typed accessors. Each returns nil when the field is structurally absent.

func (n *Node) IfCond() *Node { return n.child(0) }
func (n *Node) IfThen() *Node { return n.child(1) }
func (n *Node) IfElse() *Node {
	if n == nil || n.Kind != KindIf || len(n.Children) < 3 {
		return nil
	}
	return n.Children[2]
}

func (n *Node) LoopCond() *Node { return n.child(0) } // While only
func (n *Node) LoopBody() *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindWhile:
		return n.child(1)
	case KindFor:
		return n.child(2)
	case KindRepeat:
		return n.child(0)
	}
	return nil
}

func (n *Node) ForVar() *Node { return n.child(0) }
func (n *Node) ForSeq() *Node { return n.child(1) }

func (n *Node) FnBody() *Node {
	if n == nil || n.Kind != KindFunction || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

func (n *Node) FnParams() []*Node {
	if n == nil || n.Kind != KindFunction || len(n.Children) == 0 {
		return nil
	}
	return n.Children[:len(n.Children)-1]
}

func (n *Node) Callee() *Node { return n.child(0) }
func (n *Node) Args() []*Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[1:]
}

func (n *Node) LHS() *Node     { return n.child(0) }
func (n *Node) RHS() *Node     { return n.child(1) }
func (n *Node) Operand() *Node { return n.child(0) }
func (n *Node) Inner() *Node   { return n.child(0) } // Paren/Arg

// IsCallTo reports whether n is a call whose callee is the plain identifier
// name.
func (n *Node) IsCallTo(name string) bool {
	if n == nil || n.Kind != KindCall {
		return false
	}
	callee := n.Callee()
	return callee != nil && callee.Kind == KindIdent && callee.Text == name
}

// IsAssignment reports whether n is a binary node using one of R's
// assignment operators.
func (n *Node) IsAssignment() bool {
	if n == nil || n.Kind != KindBinary {
		return false
	}
	switch n.Op {
	case token.Assign, token.SuperAssign, token.RightAssign, token.Eq:
		return true
	}
	return false
}

// AssignTarget returns the identifier node being assigned, accounting for
// right assignment, or nil.
func (n *Node) AssignTarget() *Node {
	if !n.IsAssignment() {
		return nil
	}
	if n.Op == token.RightAssign {
		return n.RHS()
	}
	return n.LHS()
}

// Walk visits n and its descendants in depth-first pre-order. The visitor
// returns false to prune a subtree.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}
