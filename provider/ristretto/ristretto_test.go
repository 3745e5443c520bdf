package ristretto

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestSyncSetGetDel(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64, Sync: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close(ctx)

	v := []byte("BAUM1\x01\x00\x00\x00\x00\x00\x00\x00\x00")
	ok, err := p.Set(ctx, "k", v, 1, time.Minute)
	if err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(got, v) {
		t.Fatalf("Get: %x ok=%v err=%v", got, ok, err)
	}

	_ = p.Del(ctx, "k")
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestUnexpectedShapeSelfHeals(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{NumCounters: 100, MaxCost: 100, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close(ctx)

	p.c.Set("k", "not bytes", 1)
	p.c.Wait()
	if _, ok, err := p.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected miss for foreign value: ok=%v err=%v", ok, err)
	}
}
