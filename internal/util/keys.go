package util

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sort"

	"github.com/fkohlgrueber/baum"
)

// BulkKey returns a deterministic composite key for a set of member keys with a
// short hash. Order and duplicates do not matter. Members are hashed over the
// baum encoding of their sorted list, so no key content can fake a separator.
func BulkKey(prefix string, keys []string) string {
	s := make([]string, len(keys))
	copy(s, keys)
	sort.Strings(s)
	s = slices.Compact(s)

	leaves := make([]baum.Node, len(s))
	for i, k := range s {
		leaves[i] = baum.Leaf([]byte(k))
	}
	sum := sha256.Sum256(baum.Encode(baum.Inner(leaves...)))
	return prefix + ":" + hex.EncodeToString(sum[:8]) // prefix + ":" + first 16 hex chars
}
