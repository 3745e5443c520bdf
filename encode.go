package baum

import (
	"bufio"
	"io"

	"github.com/fkohlgrueber/baum/internal/wire"
)

// Encode returns the serialized form of n: the magic marker followed by the
// pre-order encoding of every node. Identical trees always encode to identical
// bytes.
func Encode(n Node) []byte {
	return AppendEncode(make([]byte, 0, EncodedLen(n)), n)
}

// AppendEncode appends the serialized form of n to dst.
func AppendEncode(dst []byte, n Node) []byte {
	dst = wire.AppendMagic(dst)
	return appendNode(dst, n)
}

// EncodedLen returns len(Encode(n)) without encoding.
func EncodedLen(n Node) int {
	return wire.MagicLen + nodeLen(n)
}

func nodeLen(n Node) int {
	total := 0
	stack := []Node{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total += wire.HeaderLen
		if n.kind == KindLeaf {
			total += len(n.data)
			continue
		}
		stack = append(stack, n.children...)
	}
	return total
}

// preorder calls fn for every node of n in wire order. Headers carry only
// the child count, so nodes can be emitted before their children.
func preorder(n Node, fn func(Node) error) error {
	stack := []Node{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(n); err != nil {
			return err
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return nil
}

func appendNode(dst []byte, n Node) []byte {
	_ = preorder(n, func(n Node) error {
		if n.kind == KindLeaf {
			dst = wire.AppendHeader(dst, wire.TagLeaf, uint64(len(n.data)))
			dst = append(dst, n.data...)
			return nil
		}
		dst = wire.AppendHeader(dst, wire.TagInner, uint64(len(n.children)))
		return nil
	})
	return dst
}

// EncodeTo writes the serialized form of n to w. Only errors from w are
// returned.
func EncodeTo(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(wire.AppendMagic(nil)); err != nil {
		return err
	}
	var hdr [wire.HeaderLen]byte
	err := preorder(n, func(n Node) error {
		if n.kind == KindLeaf {
			wire.PutHeader(hdr[:], wire.TagLeaf, uint64(len(n.data)))
			if _, err := bw.Write(hdr[:]); err != nil {
				return err
			}
			_, err := bw.Write(n.data)
			return err
		}
		wire.PutHeader(hdr[:], wire.TagInner, uint64(len(n.children)))
		_, err := bw.Write(hdr[:])
		return err
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}
