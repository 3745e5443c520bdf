package baum

import "bytes"

// Kind identifies the variant of a Node.
type Kind uint8

const (
	// KindLeaf is a node holding raw bytes. The zero Node is an empty leaf.
	KindLeaf Kind = iota
	// KindInner is a node holding an ordered sequence of children.
	KindInner
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindInner:
		return "inner"
	default:
		return "unknown"
	}
}

// Node is either a leaf (raw bytes) or an inner node (ordered children).
// Nodes are values: constructors copy their inputs and no method mutates a Node,
// so a tree never aliases memory owned by its producer.
type Node struct {
	kind     Kind
	data     []byte
	children []Node
}

// Leaf returns a leaf node holding a copy of b.
func Leaf(b []byte) Node {
	return Node{kind: KindLeaf, data: bytes.Clone(b)}
}

// Inner returns an inner node whose children are a copy of the given slice.
func Inner(children ...Node) Node {
	cs := make([]Node, len(children))
	copy(cs, children)
	return Node{kind: KindInner, children: cs}
}

func (n Node) Kind() Kind    { return n.kind }
func (n Node) IsLeaf() bool  { return n.kind == KindLeaf }
func (n Node) IsInner() bool { return n.kind == KindInner }

// Bytes returns the payload of a leaf, nil for inner nodes.
// The returned slice must not be modified.
func (n Node) Bytes() []byte {
	if n.kind != KindLeaf {
		return nil
	}
	return n.data
}

// Len returns the byte count of a leaf or the child count of an inner node.
func (n Node) Len() int {
	if n.kind == KindLeaf {
		return len(n.data)
	}
	return len(n.children)
}

// Child returns the i-th child of an inner node. It panics if n is a leaf
// or i is out of range.
func (n Node) Child(i int) Node {
	if n.kind != KindInner {
		panic("baum: Child called on leaf")
	}
	return n.children[i]
}

// Children returns a copy of the children of an inner node, nil for leaves.
func (n Node) Children() []Node {
	if n.kind != KindInner {
		return nil
	}
	cs := make([]Node, len(n.children))
	copy(cs, n.children)
	return cs
}

// Equal reports whether n and o are structurally identical: same variant,
// payload, child count and children in the same order.
func (n Node) Equal(o Node) bool {
	type pair struct{ a, b Node }
	stack := []pair{{n, o}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a.kind != p.b.kind {
			return false
		}
		if p.a.kind == KindLeaf {
			if !bytes.Equal(p.a.data, p.b.data) {
				return false
			}
			continue
		}
		if len(p.a.children) != len(p.b.children) {
			return false
		}
		for i := range p.a.children {
			stack = append(stack, pair{p.a.children[i], p.b.children[i]})
		}
	}
	return true
}

// Walk visits n and its descendants in pre-order. depth is 0 for n.
// A non-nil error from fn stops the walk and is returned.
// Walk uses no call-stack recursion, so any decodable tree can be walked.
func (n Node) Walk(fn func(depth int, n Node) error) error {
	type item struct {
		n     Node
		depth int
	}
	stack := []item{{n, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(it.depth, it.n); err != nil {
			return err
		}
		// reversed, so the first child is visited next
		for i := len(it.n.children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.n.children[i], it.depth + 1})
		}
	}
	return nil
}
