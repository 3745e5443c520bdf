// Package sloghooks reports store.Hooks events through log/slog.
package sloghooks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/fkohlgrueber/baum/store"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery   uint64
	BulkRejectEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
	// Event name prefix; "" => "baum".
	Prefix string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr   atomic.Uint64
	bulkRejectCtr atomic.Uint64
}

var _ store.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	if opts.Prefix == "" {
		opts.Prefix = "baum"
	}
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) key(k string) slog.Attr {
	if h.opts.Redact != nil {
		return slog.String("key", h.opts.Redact(k))
	}
	sum := sha256.Sum256([]byte(k))
	return slog.String("key", hex.EncodeToString(sum[:8]))
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) emit(lvl slog.Level, event string, attrs ...slog.Attr) {
	if h.l == nil {
		return
	}
	h.l.LogAttrs(context.Background(), lvl, h.opts.Prefix+"."+event, attrs...)
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.emit(slog.LevelDebug, "self_heal", h.key(storageKey), slog.String("reason", reason))
}

func (h *Hooks) BulkRejected(ns string, requested int, reason string) {
	if !sample(h.opts.BulkRejectEvery, &h.bulkRejectCtr) {
		return
	}
	h.emit(slog.LevelInfo, "bulk_rejected",
		slog.String("ns", ns),
		slog.Int("requested", requested),
		slog.String("reason", reason))
}

func (h *Hooks) ProviderSetRejected(storageKey string, isBulk bool) {
	h.emit(slog.LevelWarn, "provider_set_rejected", h.key(storageKey), slog.Bool("is_bulk", isBulk))
}

func (h *Hooks) GenSnapshotError(count int, err error) {
	h.emit(slog.LevelWarn, "gen_snapshot_error", slog.Int("count", count), slog.Any("err", err))
}

func (h *Hooks) GenBumpError(storageKey string, err error) {
	h.emit(slog.LevelWarn, "gen_bump_error", h.key(storageKey), slog.Any("err", err))
}

func (h *Hooks) DeleteOutage(key string, bumpErr, delErr error) {
	h.emit(slog.LevelError, "delete_outage",
		h.key(key),
		slog.Any("bump_err", bumpErr),
		slog.Any("del_err", delErr))
}

func (h *Hooks) LocalGenWithBulk() {
	h.emit(slog.LevelWarn, "local_gen_with_bulk",
		slog.String("msg", "bulk enabled with local genstore; stale bulks possible across processes"))
}
