package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"
)

// memKV is an in-memory store.KV
type memKV struct {
	mu     sync.Mutex
	m      map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemKV() *memKV { return &memKV{m: map[string]string{}, ttls: map[string]time.Duration{}} }

func (k *memKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.getErr != nil {
		return "", false, k.getErr
	}
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *memKV) Set(_ context.Context, key, val string, ttl time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.setErr != nil {
		return k.setErr
	}
	k.m[key] = val
	k.ttls[key] = ttl
	return nil
}

func (k *memKV) Incr(_ context.Context, key string) (int64, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	n, _ := strconv.ParseInt(k.m[key], 10, 64)
	n++
	k.m[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (k *memKV) Close() error { return nil }

type countObs struct{ hits, misses int }

func (o *countObs) ObserveCache(_ string, hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

type payload struct {
	Total int      `json:"total"`
	Names []string `json:"names"`
}

func TestGetOrLoadReadThrough(t *testing.T) {
	kv := newMemKV()
	obs := &countObs{}
	c := New(kv, WithTTL(time.Minute), WithObserver(obs))
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (payload, error) {
		calls++
		return payload{Total: 3, Names: []string{"go"}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrLoad(ctx, c, "stats", []string{"30d", "react native"}, load)
		if err != nil || got.Total != 3 || got.Names[0] != "go" {
			t.Fatalf("GetOrLoad = %+v, %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}
	if obs.hits != 2 || obs.misses != 1 {
		t.Fatalf("hits=%d misses=%d", obs.hits, obs.misses)
	}
	key := c.Key("0", "stats", "30d", "react native")
	if kv.ttls[key] != time.Minute {
		t.Fatalf("ttl for %s = %v", key, kv.ttls[key])
	}
}

func TestBumpInvalidates(t *testing.T) {
	kv := newMemKV()
	c := New(kv)
	ctx := context.Background()

	n := 0
	load := func(context.Context) (int, error) { n++; return n, nil }

	first, _ := GetOrLoad(ctx, c, "companies", nil, load)
	if _, err := c.Bump(ctx); err != nil {
		t.Fatal(err)
	}
	if c.Generation(ctx) != "1" {
		t.Fatalf("generation = %s", c.Generation(ctx))
	}
	second, _ := GetOrLoad(ctx, c, "companies", nil, load)
	if first != 1 || second != 2 {
		t.Fatalf("bump should force a reload, got %d then %d", first, second)
	}
}

func TestErrorsNeverFail(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("redis down")
	kv.setErr = errors.New("redis down")
	c := New(kv)

	got, err := GetOrLoad(context.Background(), c, "stats", nil, func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("GetOrLoad with failing kv = %d, %v", got, err)
	}
}

func TestLoadErrorNotCached(t *testing.T) {
	kv := newMemKV()
	c := New(kv)
	boom := errors.New("db")
	if _, err := GetOrLoad(context.Background(), c, "x", nil, func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(kv.m) != 0 {
		t.Fatalf("failed loads must not be stored: %v", kv.m)
	}
}

func TestDisabled(t *testing.T) {
	var nilCache *Cache
	if nilCache.Enabled() || New(nil).Enabled() {
		t.Fatalf("nil cache or nil kv should be disabled")
	}
	got, err := GetOrLoad(context.Background(), nilCache, "x", nil, func(context.Context) (string, error) { return "direct", nil })
	if err != nil || got != "direct" {
		t.Fatalf("disabled GetOrLoad = %q, %v", got, err)
	}
	if n, err := nilCache.Bump(context.Background()); n != 0 || err != nil {
		t.Fatalf("disabled Bump = %d, %v", n, err)
	}
}

func TestKeyEscapesParts(t *testing.T) {
	c := New(nil, WithPrefix("p"))
	if got := c.Key("4", "best", "a:b c", "2"); got != "p:4:best:a%3Ab+c:2" {
		t.Fatalf("Key = %q", got)
	}
}
