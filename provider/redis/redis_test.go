//go:build !plan9

package redis

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/fkohlgrueber/baum"
)

func newTestProvider(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	p, err := New(Config{Client: goredis.NewClient(&goredis.Options{Addr: s.Addr()}), CloseClient: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p, s
}

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("got %v want ErrNilClient", err)
	}
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestProvider(t)

	enc := baum.Encode(baum.Inner(baum.Leaf([]byte{0, 1, 2}), baum.Inner()))
	ok, err := p.Set(ctx, "tree:ns:k", enc, 1, 0)
	if err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "tree:ns:k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, enc) {
		t.Fatalf("provider is not byte transparent: got %x want %x", got, enc)
	}

	if err := p.Del(ctx, "tree:ns:k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, err := p.Get(ctx, "tree:ns:k"); ok || err != nil {
		t.Fatalf("Get after Del: ok=%v err=%v", ok, err)
	}
}

func TestSetTTL(t *testing.T) {
	ctx := context.Background()
	p, s := newTestProvider(t)

	if _, err := p.Set(ctx, "k", []byte("v"), 1, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ttl := s.TTL("k"); ttl != time.Minute {
		t.Fatalf("ttl: got %v want 1m", ttl)
	}
	s.FastForward(2 * time.Minute)
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected expiry")
	}

	if _, err := p.Set(ctx, "forever", []byte("v"), 1, -time.Second); err != nil {
		t.Fatalf("Set negative ttl: %v", err)
	}
	if ttl := s.TTL("forever"); ttl != 0 {
		t.Fatalf("negative ttl should mean no expiry, got %v", ttl)
	}
}

func TestGetTransportError(t *testing.T) {
	p, s := newTestProvider(t)
	s.Close()
	if _, ok, err := p.Get(context.Background(), "k"); err == nil || ok {
		t.Fatalf("expected transport error, got ok=%v err=%v", ok, err)
	}
}

func TestPrefix(t *testing.T) {
	ctx := context.Background()
	s, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	p, err := New(Config{Client: goredis.NewClient(&goredis.Options{Addr: s.Addr()}), Prefix: "svc:", CloseClient: true})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close(ctx)

	if _, err := p.Set(ctx, "tree:ns:k", []byte("v"), 1, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !s.Exists("svc:tree:ns:k") || s.Exists("tree:ns:k") {
		t.Fatalf("prefix not applied: keys=%v", s.Keys())
	}
	if _, ok, _ := p.Get(ctx, "tree:ns:k"); !ok {
		t.Fatalf("Get with prefix missed")
	}
	if err := p.Del(ctx, "tree:ns:k"); err != nil || s.Exists("svc:tree:ns:k") {
		t.Fatalf("Del with prefix: %v", err)
	}
}
