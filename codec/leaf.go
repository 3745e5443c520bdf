package codec

import (
	"errors"

	"github.com/fkohlgrueber/baum"
)

var ErrNotLeaf = errors.New("codec: node is not a leaf")

// Leaf encodes v with c and returns it as the payload of a leaf node.
func Leaf[V any](c Codec[V], v V) (baum.Node, error) {
	b, err := c.Encode(v)
	if err != nil {
		return baum.Node{}, err
	}
	return baum.Leaf(b), nil
}

// FromLeaf decodes the payload of leaf n with c.
func FromLeaf[V any](c Codec[V], n baum.Node) (V, error) {
	if !n.IsLeaf() {
		var zero V
		return zero, ErrNotLeaf
	}
	return c.Decode(n.Bytes())
}
