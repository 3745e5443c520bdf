package genstore

import (
	"context"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestLocalBumpStartsFromClockThenIncrements(t *testing.T) {
	ctx := context.Background()
	s := NewLocalGenStore(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })
	start := time.Unix(100, 0)
	s.now = fixedClock(start)

	g1, err := s.Bump(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if g1 != uint64(start.UnixNano()) {
		t.Fatalf("first gen: got %d want %d", g1, start.UnixNano())
	}
	g2, _ := s.Bump(ctx, "k")
	if g2 != g1+1 {
		t.Fatalf("second gen: got %d want %d", g2, g1+1)
	}
}

func TestLocalSnapshotManyIncludesAllAndZeroForMissing(t *testing.T) {
	ctx := context.Background()
	s := NewLocalGenStore(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	b, err := s.Bump(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.SnapshotMany(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if got["a"] != 0 || got["b"] != b || got["c"] != 0 || len(got) != 3 {
		t.Fatalf("got=%v want a=0,b=%d,c=0", got, b)
	}
}

func TestLocalPrunedKeyNeverReissuesOldGen(t *testing.T) {
	ctx := context.Background()
	s := NewLocalGenStore(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	t0 := time.Unix(1000, 0)
	s.now = fixedClock(t0)
	old, _ := s.Bump(ctx, "k")

	s.now = fixedClock(t0.Add(time.Hour))
	s.Cleanup(time.Minute)
	if g, _ := s.Snapshot(ctx, "k"); g != 0 {
		t.Fatalf("expected pruned -> 0, got %d", g)
	}

	fresh, _ := s.Bump(ctx, "k")
	if fresh <= old {
		t.Fatalf("generation went backwards after prune: %d <= %d", fresh, old)
	}
}

func TestLocalCleanupKeepsRecent(t *testing.T) {
	ctx := context.Background()
	s := NewLocalGenStore(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	g, _ := s.Bump(ctx, "recent")
	s.Cleanup(time.Hour)
	if got, _ := s.Snapshot(ctx, "recent"); got != g {
		t.Fatalf("recent key pruned: got %d want %d", got, g)
	}
}

func TestLocalCloseIdempotent(t *testing.T) {
	s := NewLocalGenStore(time.Millisecond, time.Second)
	_ = s.Close(context.Background())
	_ = s.Close(context.Background())
}
