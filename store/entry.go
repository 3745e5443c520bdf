package store

import (
	"encoding/binary"
	"sort"

	"github.com/fkohlgrueber/baum"
)

type bulkItem struct {
	Key  string
	Gen  uint64
	Tree baum.Node
}

func genLeaf(g uint64) baum.Node {
	var u8 [8]byte
	binary.LittleEndian.PutUint64(u8[:], g)
	return baum.Leaf(u8[:])
}

func leafGen(n baum.Node) (uint64, bool) {
	if !n.IsLeaf() || n.Len() != 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(n.Bytes()), true
}

// withWrapper widens a depth limit by the levels the entry framing adds, so
// the limit applies to the caller's tree alone.
func withWrapper(opts baum.DecodeOptions, levels int) baum.DecodeOptions {
	if opts.MaxDepth > 0 {
		opts.MaxDepth += levels
	}
	return opts
}

// Single: Inner(Leaf(gen), tree)
func encodeSingle(g uint64, n baum.Node) []byte {
	return baum.Encode(baum.Inner(genLeaf(g), n))
}

func decodeSingle(b []byte, opts baum.DecodeOptions) (uint64, baum.Node, error) {
	e, err := baum.DecodeWith(b, withWrapper(opts, 1))
	if err != nil {
		return 0, baum.Node{}, err
	}
	if !e.IsInner() || e.Len() != 2 {
		return 0, baum.Node{}, errShape
	}
	g, ok := leafGen(e.Child(0))
	if !ok {
		return 0, baum.Node{}, errShape
	}
	return g, e.Child(1), nil
}

// Bulk: Inner(Inner(Leaf(key), Leaf(gen), tree) * n), sorted by key
func encodeBulk(items []bulkItem) []byte {
	sorted := make([]bulkItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	members := make([]baum.Node, len(sorted))
	for i, it := range sorted {
		members[i] = baum.Inner(baum.Leaf([]byte(it.Key)), genLeaf(it.Gen), it.Tree)
	}
	return baum.Encode(baum.Inner(members...))
}

func decodeBulk(b []byte, opts baum.DecodeOptions) ([]bulkItem, error) {
	e, err := baum.DecodeWith(b, withWrapper(opts, 2))
	if err != nil {
		return nil, err
	}
	if !e.IsInner() {
		return nil, errShape
	}
	items := make([]bulkItem, 0, e.Len())
	for i := 0; i < e.Len(); i++ {
		m := e.Child(i)
		if !m.IsInner() || m.Len() != 3 || !m.Child(0).IsLeaf() {
			return nil, errShape
		}
		g, ok := leafGen(m.Child(1))
		if !ok {
			return nil, errShape
		}
		items = append(items, bulkItem{
			Key:  string(m.Child(0).Bytes()),
			Gen:  g,
			Tree: m.Child(2),
		})
	}
	return items, nil
}
