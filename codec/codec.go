// Package codec provides Codec implementations: Baum for whole trees and a set
// of value codecs (CBOR, Msgpack, JSON, Protobuf, Bytes, String) for typed leaf
// payloads. Leaf and FromLeaf bridge a value codec and a leaf node.
package codec

import "github.com/fkohlgrueber/baum"

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Baum is a Codec for whole trees in the baum wire format.
// The zero value is ready to use and decodes without limits.
type Baum struct {
	Options baum.DecodeOptions
}

var _ Codec[baum.Node] = Baum{}

func (Baum) Encode(n baum.Node) ([]byte, error) { return baum.Encode(n), nil }
func (c Baum) Decode(b []byte) (baum.Node, error) {
	return baum.DecodeWith(b, c.Options)
}
