// Package store persists baum trees under string keys in a provider.Provider.
//
// Every entry is itself a baum stream. Singles wrap the tree with the key's
// current generation; bulk entries hold many (key, generation, tree) triples:
//
//	tree:<ns>:<key>   Inner(Leaf(gen u64 le), tree)
//	bulk:<ns>:<hash>  Inner(Inner(Leaf(key), Leaf(gen u64 le), tree), ...) sorted by key
//
// Put and Delete bump the key's generation, so every entry written before,
// single or bulk, is rejected on read. Reads never surface decode errors:
// corrupt or stale entries are deleted (self-heal) and reported as misses.
package store

import (
	"context"
	"time"

	"github.com/fkohlgrueber/baum"
	gen "github.com/fkohlgrueber/baum/genstore"
	pr "github.com/fkohlgrueber/baum/provider"
)

type SetCostFunc func(key string, raw []byte, isBulk bool, bulkCount int) int64

// Store is the keyed tree store.
type Store interface {
	Enabled() bool
	Close(context.Context) error

	// Single
	Get(ctx context.Context, key string) (n baum.Node, ok bool, err error)
	Put(ctx context.Context, key string, n baum.Node, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Bulk (order-agnostic return; use your own ordering by keys slice)
	GetBulk(ctx context.Context, keys []string) (trees map[string]baum.Node, missing []string, err error)
	PutBulk(ctx context.Context, trees map[string]baum.Node, ttl time.Duration) error
}

// Options tune the behavior of the store.
// Namespace and Provider are required; others have sensible defaults.
type Options struct {
	// Required
	Namespace string // logical namespace to avoid collisions. e.g. "config", "ast"
	Provider  pr.Provider

	Logger          baum.Logger        // if nil, NopLogger is used
	Hooks           Hooks              // if nil, NopHooks is used
	Decode          baum.DecodeOptions // limits applied to the stored tree
	DefaultTTL      time.Duration      // singles; 0 => 10m
	BulkTTL         time.Duration      // bulks; 0 => 10m
	CleanupInterval time.Duration      // local gen cleanup; 0 => 1h
	GenRetention    time.Duration      // local gen retention; 0 => 30d
	Disabled        bool               // default false (enabled)
	ComputeSetCost  SetCostFunc        // default: encoded size in bytes
	GenStore        gen.GenStore       // nil => LocalGenStore (in-process)
	DisableBulk     bool               // default false => bulk enabled
}

func New(opts Options) (Store, error) {
	return newStore(opts)
}
