package genstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisGenStore shares generations across processes and survives restarts.
// Optionally, a TTL is applied to generation keys to bound growth; an expired
// key restarts from the current time, so old entries stay invalid.
// The client is owned by the caller and is not closed by Close.
type RedisGenStore struct {
	rdb redis.UniversalClient
	ns  string        // logical namespace; should match store Options.Namespace
	ttl time.Duration // optional TTL for generation keys; 0 disables expiry
	now func() time.Time
}

var _ GenStore = (*RedisGenStore)(nil)

// NewRedisGenStore creates a Redis-backed generation store. If ttl <= 0,
// generation keys do not expire.
func NewRedisGenStore(client redis.UniversalClient, namespace string, ttl time.Duration) *RedisGenStore {
	return &RedisGenStore{rdb: client, ns: namespace, ttl: ttl, now: time.Now}
}

func (s *RedisGenStore) key(k string) string { return "gen:" + s.ns + ":" + k }

func (s *RedisGenStore) Snapshot(ctx context.Context, storageKey string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.key(storageKey)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return parseGen(storageKey, res)
}

// SnapshotMany reads all keys with a single MGET. Missing keys map to 0.
func (s *RedisGenStore) SnapshotMany(ctx context.Context, storageKeys []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(storageKeys))
	if len(storageKeys) == 0 {
		return out, nil
	}
	keys := make([]string, len(storageKeys))
	for i, k := range storageKeys {
		keys[i] = s.key(k)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range vals {
		var (
			u   uint64
			err error
		)
		switch vv := v.(type) {
		case nil:
			u = 0
		case string:
			u, err = parseGen(storageKeys[i], vv)
		case []byte:
			u, err = parseGen(storageKeys[i], string(vv))
		default:
			u, err = parseGen(storageKeys[i], fmt.Sprint(vv))
		}
		if err != nil {
			return nil, err
		}
		out[storageKeys[i]] = u
	}
	return out, nil
}

// Bump seeds a missing key with the current time (SETNX), increments it and
// optionally refreshes the TTL, all in one pipelined round-trip.
func (s *RedisGenStore) Bump(ctx context.Context, storageKey string) (uint64, error) {
	k := s.key(storageKey)
	seed := startGen(s.now()) - 1

	var incr *redis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.SetNX(ctx, k, strconv.FormatUint(seed, 10), 0)
		incr = p.Incr(ctx, k)
		if s.ttl > 0 {
			p.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

// Cleanup is not applicable for RedisGenStore (Redis handles expiry if TTL is set).
func (s *RedisGenStore) Cleanup(time.Duration) {}

func (s *RedisGenStore) Close(context.Context) error { return nil }

func parseGen(storageKey, s string) (uint64, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis gen parse at %s: %w", storageKey, err)
	}
	return u, nil
}
