// Package transcode maps baum trees onto other self-describing formats:
// an inner node becomes an array and a leaf a byte string. Every type here is a
// codec.Codec[baum.Node], so a tree can be moved between formats with
// Decode from one and Encode to another.
package transcode

import (
	"fmt"

	"github.com/fkohlgrueber/baum"
	"github.com/fkohlgrueber/baum/codec"
)

var (
	_ codec.Codec[baum.Node] = CBOR{}
	_ codec.Codec[baum.Node] = Msgpack{}
	_ codec.Codec[baum.Node] = JSON{}
)

// UnsupportedError reports a value with no tree equivalent, e.g. a number or a
// map in the foreign document.
type UnsupportedError struct {
	Format string
	Path   []int // child indexes from the root to the value
	Value  any
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("transcode: %s value of type %T at path %v has no tree equivalent", e.Format, e.Value, e.Path)
}

// MaxNesting is the deepest tree the transcoders encode or decode. The CBOR,
// MessagePack and JSON libraries recurse per nesting level.
const MaxNesting = 65535

// checkNesting rejects trees deeper than MaxNesting before they reach an
// encoder.
func checkNesting(n baum.Node) error {
	return n.Walk(func(depth int, _ baum.Node) error {
		if depth > MaxNesting {
			return fmt.Errorf("transcode: tree deeper than %d: %w", MaxNesting, baum.ErrDepthExceeded)
		}
		return nil
	})
}

func leafAny(n baum.Node) any {
	b := n.Bytes()
	if b == nil {
		b = []byte{}
	}
	return b
}

// toAny turns n into nested []any with []byte leaves.
func toAny(n baum.Node) any {
	if n.IsLeaf() {
		return leafAny(n)
	}
	type frame struct {
		n   baum.Node
		out []any
	}
	root := make([]any, n.Len())
	stack := []frame{{n, root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := range f.out {
			c := f.n.Child(i)
			if c.IsLeaf() {
				f.out[i] = leafAny(c)
				continue
			}
			out := make([]any, c.Len())
			f.out[i] = out
			stack = append(stack, frame{c, out})
		}
	}
	return root
}

// fromAny is the inverse of toAny. leaf converts scalar values to leaf
// payloads and reports false for values with no equivalent.
func fromAny(format string, v any, leaf func(any) ([]byte, bool, error)) (baum.Node, error) {
	type frame struct {
		arr      []any
		children []baum.Node
	}
	var stack []frame
	path := func() []int {
		if len(stack) == 0 {
			return nil
		}
		p := make([]int, len(stack))
		for i, f := range stack {
			p[i] = len(f.children)
		}
		return p
	}
	for {
		var done baum.Node
		if arr, ok := v.([]any); ok {
			if len(stack) >= MaxNesting {
				return baum.Node{}, fmt.Errorf("transcode: %s value at path %v: nested deeper than %d: %w", format, path(), MaxNesting, baum.ErrDepthExceeded)
			}
			if len(arr) > 0 {
				stack = append(stack, frame{arr: arr, children: make([]baum.Node, 0, len(arr))})
				v = arr[0]
				continue
			}
			done = baum.Inner()
		} else {
			b, ok, err := leaf(v)
			if err != nil {
				return baum.Node{}, fmt.Errorf("transcode: %s value at path %v: %w", format, path(), err)
			}
			if !ok {
				return baum.Node{}, &UnsupportedError{Format: format, Path: path(), Value: v}
			}
			done = baum.Leaf(b)
		}
		// Close every array the finished value completes.
		for {
			if len(stack) == 0 {
				return done, nil
			}
			top := &stack[len(stack)-1]
			top.children = append(top.children, done)
			if len(top.children) < len(top.arr) {
				v = top.arr[len(top.children)]
				break
			}
			done = baum.Inner(top.children...)
			stack = stack[:len(stack)-1]
		}
	}
}

// binaryLeaf accepts byte strings and, leniently, text strings.
func binaryLeaf(v any) ([]byte, bool, error) {
	switch x := v.(type) {
	case []byte:
		return x, true, nil
	case string:
		return []byte(x), true, nil
	}
	return nil, false, nil
}
