package astnode

import "github.com/grafter/graft/perr"

// Tree is an immutable, pre-order-indexed AST. It owns the full node
// vector and the source buffer the nodes' ranges are offsets into.
type Tree struct {
	Slot     Slot
	FileName string
	Source   []byte
	Nodes    []Node
	Roots    []int
}

func (t *Tree) Node(id int) (Node, error) {
	if id < 0 || id >= len(t.Nodes) {
		return Node{}, perr.New(perr.NodeNotFound, "node id %d not found in %s tree", id, t.Slot)
	}
	return t.Nodes[id], nil
}

func (t *Tree) Parent(id int) (Node, bool, error) {
	n, err := t.Node(id)
	if err != nil {
		return Node{}, false, err
	}
	if n.IsRoot() {
		return Node{}, false, nil
	}
	p, err := t.Node(n.ParentID)
	return p, true, err
}

func (t *Tree) Children(id int) ([]Node, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(n.Children))
	for i, cid := range n.Children {
		out[i], err = t.Node(cid)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ChildIndex reports the position of child childID among its
// siblings, or -1 if childID is not a child of parentID.
func (t *Tree) ChildIndex(parentID, childID int) int {
	n, err := t.Node(parentID)
	if err != nil {
		return -1
	}
	for i, c := range n.Children {
		if c == childID {
			return i
		}
	}
	return -1
}

// Subtree reports the contiguous id range [n.ID, n.RightMost] that
// invariant 1 guarantees is exactly n's subtree.
func (t *Tree) Subtree(id int) ([]Node, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	return t.Nodes[n.ID : n.RightMost+1], nil
}

// Text returns the raw source bytes of a range. Both offsets must lie
// within the tree's source buffer.
func (t *Tree) Text(r Range) ([]byte, error) {
	if r.Begin < 0 || r.End > len(t.Source) || r.Begin > r.End {
		return nil, perr.New(perr.RangeUnavailable, "range [%d,%d) invalid for %s (len %d)", r.Begin, r.End, t.FileName, len(t.Source))
	}
	return t.Source[r.Begin:r.End], nil
}

// NodeText is a convenience for Text(n.Range).
func (t *Tree) NodeText(n Node) ([]byte, error) {
	return t.Text(n.Range)
}

// Walk visits n's subtree in pre-order, calling visit with the stack
// of ancestors (innermost last) for each node. It stops descending
// into a node's children when visit returns false.
func (t *Tree) Walk(id int, visit func(stack []Node) bool) error {
	n, err := t.Node(id)
	if err != nil {
		return err
	}
	var stack []Node
	var walk func(Node) error
	walk = func(cur Node) error {
		stack = append(stack, cur)
		keepGoing := visit(stack)
		if keepGoing {
			for _, cid := range cur.Children {
				c, err := t.Node(cid)
				if err != nil {
					return err
				}
				if err := walk(c); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		return nil
	}
	return walk(n)
}
