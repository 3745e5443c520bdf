package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fkohlgrueber/baum"
	gen "github.com/fkohlgrueber/baum/genstore"
	"github.com/fkohlgrueber/baum/internal/util"
	pr "github.com/fkohlgrueber/baum/provider"
)

const (
	defaultTTL          = 10 * time.Minute
	defaultGenRetention = 30 * 24 * time.Hour
	defaultSweep        = time.Hour
)

type store struct {
	ns             string
	provider       pr.Provider
	gen            gen.GenStore
	log            baum.Logger
	hooks          Hooks
	enabled        bool
	bulkEnabled    bool
	defaultTTL     time.Duration
	bulkTTL        time.Duration
	decode         baum.DecodeOptions
	computeSetCost SetCostFunc
}

func newStore(opts Options) (*store, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("store: provider is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("store: namespace is required")
	}

	s := &store{
		ns:          opts.Namespace,
		provider:    opts.Provider,
		enabled:     !opts.Disabled,
		bulkEnabled: !opts.DisableBulk,
		decode:      opts.Decode,
	}

	// defaults
	s.log = util.Coalesce[baum.Logger](opts.Logger, baum.NopLogger{})
	s.hooks = util.Coalesce[Hooks](opts.Hooks, NopHooks{})
	s.defaultTTL = util.Coalesce(opts.DefaultTTL, defaultTTL)
	s.bulkTTL = util.Coalesce(opts.BulkTTL, defaultTTL)

	if opts.ComputeSetCost != nil {
		s.computeSetCost = opts.ComputeSetCost
	} else {
		s.computeSetCost = func(_ string, raw []byte, _ bool, _ int) int64 { return int64(len(raw)) }
	}

	if opts.GenStore != nil {
		s.gen = opts.GenStore
	} else {
		// default to in-process generations with periodic cleanup
		s.gen = gen.NewLocalGenStore(
			util.Coalesce(opts.CleanupInterval, defaultSweep),
			util.Coalesce(opts.GenRetention, defaultGenRetention),
		)
		if s.bulkEnabled {
			s.hooks.LocalGenWithBulk()
		}
	}

	return s, nil
}

func (s *store) Enabled() bool { return s.enabled }

func (s *store) Close(ctx context.Context) error {
	// Close gen store first (best effort)
	if s.gen != nil {
		_ = s.gen.Close(ctx)
	}
	return s.provider.Close(ctx)
}

func (s *store) Get(ctx context.Context, key string) (baum.Node, bool, error) {
	if !s.enabled {
		return baum.Node{}, false, nil
	}
	k := s.treeKey(key)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil || !ok {
		return baum.Node{}, false, err
	}
	g, n, err := decodeSingle(raw, s.decode)
	if err != nil {
		s.selfHeal(ctx, k, Reason(err))
		return baum.Node{}, false, nil
	}
	cur, err := s.gen.Snapshot(ctx, k)
	if err != nil {
		// conservative: without the current generation the entry cannot be trusted
		s.hooks.GenSnapshotError(1, err)
		s.log.Warn("gen snapshot error", baum.Fields{"key": k, "err": err})
		return baum.Node{}, false, nil
	}
	if g != cur {
		s.selfHeal(ctx, k, ReasonGenMismatch)
		return baum.Node{}, false, nil
	}
	return n, true, nil
}

func (s *store) Put(ctx context.Context, key string, n baum.Node, ttl time.Duration) error {
	if !s.enabled {
		return nil
	}
	k := s.treeKey(key)
	g, err := s.gen.Bump(ctx, k)
	if err != nil {
		s.hooks.GenBumpError(k, err)
		return fmt.Errorf("store: put %q: gen bump: %w", key, err)
	}
	return s.setSingle(ctx, k, g, n, util.Coalesce(ttl, s.defaultTTL))
}

func (s *store) setSingle(ctx context.Context, k string, g uint64, n baum.Node, ttl time.Duration) error {
	raw := encodeSingle(g, n)
	ok, err := s.provider.Set(ctx, k, raw, s.computeSetCost(k, raw, false, 1), ttl)
	if err != nil {
		return err
	}
	if !ok {
		s.hooks.ProviderSetRejected(k, false)
		s.log.Debug("Put rejected by provider (pressure)", baum.Fields{"key": k})
	}
	return nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	if !s.enabled {
		return nil
	}
	k := s.treeKey(key)
	newGen, bumpErr := s.gen.Bump(ctx, k)
	if bumpErr != nil {
		s.hooks.GenBumpError(k, bumpErr)
	}
	delErr := s.provider.Del(ctx, k)

	switch {
	case bumpErr != nil && delErr != nil:
		s.hooks.DeleteOutage(key, bumpErr, delErr)
		s.log.Error("delete failed", baum.Fields{"key": key, "bump_err": bumpErr, "del_err": delErr})
		return &DeleteError{Key: key, BumpErr: bumpErr, DelErr: delErr}
	case bumpErr != nil:
		// entry is gone; bulks holding it may survive until their TTL
		s.log.Warn("delete: gen bump failed", baum.Fields{"key": key, "err": bumpErr})
	case delErr != nil:
		// the bumped generation rejects the leftover entry on read
		s.log.Warn("delete: provider delete failed", baum.Fields{"key": key, "err": delErr})
	default:
		s.log.Debug("deleted key (bumped gen + cleared single)", baum.Fields{"key": key, "newGen": newGen})
	}
	return nil
}

func (s *store) GetBulk(ctx context.Context, keys []string) (map[string]baum.Node, []string, error) {
	out := make(map[string]baum.Node, len(keys))
	if !s.enabled {
		missing := make([]string, 0, len(keys))
		missing = append(missing, keys...)
		return out, missing, nil
	}
	if len(keys) == 0 {
		return out, nil, nil
	}

	if s.bulkEnabled {
		bk := s.bulkKey(keys)
		raw, ok, err := s.provider.Get(ctx, bk)
		if err != nil {
			s.log.Warn("bulk get failed; falling back to singles", baum.Fields{"bulkKey": bk, "err": err})
		}
		if err == nil && ok {
			items, err := decodeBulk(raw, s.decode)
			var reason string
			if err != nil {
				reason = Reason(err)
			} else {
				reason = s.bulkInvalid(ctx, items, keys)
			}
			if reason == "" {
				byKey := make(map[string]baum.Node, len(items))
				for _, it := range items {
					byKey[it.Key] = it.Tree
				}
				for _, k := range keys {
					out[k] = byKey[k]
				}
				return out, nil, nil
			}
			// stale or corrupt bulk; drop
			s.hooks.BulkRejected(s.ns, len(keys), reason)
			_ = s.provider.Del(ctx, bk)
		}
	}

	// Fallback: try singles
	var missing []string
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		n, ok, err := s.Get(ctx, k)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			out[k] = n
		} else {
			missing = append(missing, k)
		}
	}
	return out, missing, nil
}

// bulkInvalid returns "" when items hold exactly the requested key set at the
// current generations, and a rejection reason otherwise.
func (s *store) bulkInvalid(ctx context.Context, items []bulkItem, keys []string) string {
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	if len(items) != len(want) {
		return ReasonStale
	}

	storage := make([]string, len(items))
	for i, it := range items {
		if _, ok := want[it.Key]; !ok {
			return ReasonStale
		}
		storage[i] = s.treeKey(it.Key)
	}
	cur, err := s.gen.SnapshotMany(ctx, storage)
	if err != nil {
		s.hooks.GenSnapshotError(len(storage), err)
		return ReasonSnapshotError
	}
	for i, it := range items {
		if cur[storage[i]] != it.Gen {
			return ReasonStale
		}
	}
	return ""
}

func (s *store) PutBulk(ctx context.Context, trees map[string]baum.Node, ttl time.Duration) error {
	if !s.enabled || len(trees) == 0 {
		return nil
	}

	keys := make([]string, 0, len(trees))
	for k := range trees {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]bulkItem, 0, len(keys))
	for _, k := range keys {
		sk := s.treeKey(k)
		g, err := s.gen.Bump(ctx, sk)
		if err != nil {
			s.hooks.GenBumpError(sk, err)
			return fmt.Errorf("store: put bulk %q: gen bump: %w", k, err)
		}
		items = append(items, bulkItem{Key: k, Gen: g, Tree: trees[k]})
	}

	var errs []error
	if s.bulkEnabled {
		raw := encodeBulk(items)
		bk := s.bulkKey(keys)
		ok, err := s.provider.Set(ctx, bk, raw, s.computeSetCost(bk, raw, true, len(items)), util.Coalesce(ttl, s.bulkTTL))
		switch {
		case err != nil:
			errs = append(errs, err)
		case !ok:
			s.hooks.ProviderSetRejected(bk, true)
			s.log.Debug("bulk Set rejected; seeding singles", baum.Fields{"bulkKey": bk})
		}
	}

	// seed singles with the same generations
	for _, it := range items {
		if err := s.setSingle(ctx, s.treeKey(it.Key), it.Gen, it.Tree, s.defaultTTL); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *store) selfHeal(ctx context.Context, storageKey, reason string) {
	_ = s.provider.Del(ctx, storageKey)
	s.hooks.SelfHeal(storageKey, reason)
	s.log.Debug("dropped unreadable entry", baum.Fields{"key": storageKey, "reason": reason})
}

func (s *store) treeKey(userKey string) string {
	// isolate by namespace
	return "tree:" + s.ns + ":" + userKey
}

func (s *store) bulkKey(keys []string) string {
	return util.BulkKey("bulk:"+s.ns, keys)
}
