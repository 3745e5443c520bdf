// Package baum implements a minimal binary encoding for ordered, unlabeled
// trees. Every node is either a leaf holding raw bytes or an inner node holding
// an ordered sequence of children.
//
// Wire format:
//
//	stream: "BAUM1" | node
//	node:   tag(1) | len(u64 le) | data
//	        tag 0x00 leaf:  data = len raw bytes
//	        tag 0x01 inner: data = len child nodes, pre-order
//
// Encode is total. Decode validates the whole input in a single forward scan
// and reports the first violation as a *DecodeError wrapping ErrBadMagic,
// ErrInvalidTag, ErrUnexpectedEOF or ErrTrailingData (plus ErrDepthExceeded and
// ErrTooLarge when DecodeOptions limits are set). Decoding uses an explicit
// work stack, so hostile nesting cannot exhaust the goroutine stack.
//
// Usage:
//
//	t := baum.Inner(baum.Leaf([]byte{1}), baum.Inner())
//	b := baum.Encode(t)
//	got, err := baum.Decode(b)
package baum
