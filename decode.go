package baum

import (
	"bytes"
	"context"
	"io"
	"math"

	"github.com/fkohlgrueber/baum/internal/wire"
)

// cancelEvery is how many nodes DecodeContext parses between context checks.
const cancelEvery = 1024

// DecodeOptions bound the resources a decode may consume. The zero value
// imposes no limits.
type DecodeOptions struct {
	// MaxDepth bounds the nesting of inner nodes; a root inner node is at
	// depth 1. 0 disables the limit.
	MaxDepth int
	// MaxSize bounds the input length in bytes. 0 disables the limit.
	MaxSize int
}

// Decode parses exactly one tree from b. The returned tree shares no memory
// with b. Errors are *DecodeError values wrapping one of the Err* kinds.
func Decode(b []byte) (Node, error) {
	return DecodeWith(b, DecodeOptions{})
}

// DecodeWith is Decode with resource limits.
func DecodeWith(b []byte, opts DecodeOptions) (Node, error) {
	return decode(context.Background(), b, opts)
}

// DecodeContext is DecodeWith with cooperative cancellation: ctx is checked
// periodically while parsing and its error is returned wrapped in a
// *DecodeError.
func DecodeContext(ctx context.Context, b []byte, opts DecodeOptions) (Node, error) {
	return decode(ctx, b, opts)
}

// DecodeReader reads r to EOF and decodes the result. When opts.MaxSize is
// set, at most MaxSize+1 bytes are read before failing with ErrTooLarge.
func DecodeReader(r io.Reader, opts DecodeOptions) (Node, error) {
	if opts.MaxSize > 0 && int64(opts.MaxSize) < math.MaxInt64 {
		r = io.LimitReader(r, int64(opts.MaxSize)+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return Node{}, err
	}
	return DecodeWith(b, opts)
}

// frame is an inner node whose children are still being parsed.
type frame struct {
	children []Node
	left     uint64
}

func decode(ctx context.Context, b []byte, opts DecodeOptions) (Node, error) {
	if opts.MaxSize > 0 && len(b) > opts.MaxSize {
		return Node{}, &DecodeError{Err: ErrTooLarge, Need: uint64(opts.MaxSize), Have: len(b)}
	}
	if !wire.HasMagic(b) {
		return Node{}, &DecodeError{Err: ErrBadMagic}
	}

	off := wire.MagicLen
	var stack []frame
	var n Node
	for parsed := 0; ; parsed++ {
		if parsed%cancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Node{}, &DecodeError{Err: err, Offset: off}
			}
		}

		// tag
		if off >= len(b) {
			return Node{}, eof(off, 1, b)
		}
		tag := b[off]
		if !wire.ValidTag(tag) {
			return Node{}, &DecodeError{Err: ErrInvalidTag, Offset: off, Tag: tag}
		}
		off++

		// length / count
		count, ok := wire.Uint64At(b, off)
		if !ok {
			return Node{}, eof(off, 8, b)
		}
		off += 8

		if tag == wire.TagLeaf {
			if count > uint64(len(b)-off) {
				return Node{}, eof(off, count, b)
			}
			end := off + int(count)
			n = Node{kind: KindLeaf, data: bytes.Clone(b[off:end])}
			off = end
		} else {
			if opts.MaxDepth > 0 && len(stack) >= opts.MaxDepth {
				return Node{}, &DecodeError{Err: ErrDepthExceeded, Offset: off - wire.HeaderLen, Need: uint64(opts.MaxDepth)}
			}
			if count > 0 {
				stack = append(stack, frame{
					children: make([]Node, 0, childCap(count, len(b)-off)),
					left:     count,
				})
				continue
			}
			n = Node{kind: KindInner, children: []Node{}}
		}

		// attach n to its parent; close every parent that is now complete
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			top.children = append(top.children, n)
			top.left--
			if top.left > 0 {
				break
			}
			n = Node{kind: KindInner, children: top.children}
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			break
		}
	}

	if off != len(b) {
		return Node{}, &DecodeError{Err: ErrTrailingData, Offset: off, Have: len(b) - off}
	}
	return n, nil
}

func eof(off int, need uint64, b []byte) *DecodeError {
	return &DecodeError{Err: ErrUnexpectedEOF, Offset: off, Need: need, Have: len(b) - off}
}

// childCap limits preallocation to what the remaining input could back:
// every child needs at least a full header.
func childCap(count uint64, remaining int) int {
	limit := uint64(remaining / wire.HeaderLen)
	if count < limit {
		return int(count)
	}
	return int(limit)
}
