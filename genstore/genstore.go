// Package genstore keeps a generation counter per stored tree key. The store
// package writes the current generation into every entry and rejects entries
// whose generation is no longer current, which is how a Put or Delete of one
// key invalidates every bulk entry that contains it.
package genstore

import (
	"context"
	"time"
)

// GenStore abstracts where generations live.
// Use LocalGenStore (default) for in-process gens, or RedisGenStore to share
// them across processes.
type GenStore interface {
	// Snapshot returns the current generation; missing => 0.
	Snapshot(ctx context.Context, storageKey string) (uint64, error)
	// SnapshotMany returns gens for many keys; missing => 0.
	SnapshotMany(ctx context.Context, storageKeys []string) (map[string]uint64, error)
	// Bump atomically advances and returns the new generation. A key without a
	// generation starts from the current time in nanoseconds, so a key that was
	// pruned or expired never reissues a generation an old entry still carries.
	Bump(ctx context.Context, storageKey string) (uint64, error)
	// Cleanup prunes old metadata if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}

// startGen is the first generation issued for a key at time now.
func startGen(now time.Time) uint64 {
	if n := now.UnixNano(); n > 0 {
		return uint64(n)
	}
	return 1
}
