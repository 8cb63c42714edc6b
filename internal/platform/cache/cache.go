// Package cache is a generation keyed read-through cache over store.KV
//
// Keys look like {prefix}:{generation}:{op}:{part}:{part}; bumping the
// generation orphans every previous entry, which then ages out by ttl
package cache

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tjmwatch/internal/platform/logger"
	"tjmwatch/internal/platform/store"
)

// Observer is told about every lookup outcome
type Observer interface {
	ObserveCache(op string, hit bool)
}

// Cache is safe to use as a nil pointer or with a nil KV; both disable it
type Cache struct {
	kv     store.KV
	ttl    time.Duration
	prefix string
	obs    Observer
	log    logger.Logger
}

// Option configures a Cache
type Option func(*Cache)

// WithTTL sets the entry lifetime (default 10m)
func WithTTL(d time.Duration) Option { return func(c *Cache) { c.ttl = d } }

// WithPrefix namespaces every key (default "tjm")
func WithPrefix(p string) Option { return func(c *Cache) { c.prefix = p } }

// WithObserver reports hits and misses
func WithObserver(o Observer) Option { return func(c *Cache) { c.obs = o } }

// WithLogger sets the logger used for swallowed errors
func WithLogger(l logger.Logger) Option { return func(c *Cache) { c.log = l } }

// New wraps kv; a nil kv yields a disabled cache
func New(kv store.KV, opts ...Option) *Cache {
	c := &Cache{kv: kv, ttl: 10 * time.Minute, prefix: "tjm", log: *logger.Named("cache")}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Enabled reports whether lookups reach a backend
func (c *Cache) Enabled() bool { return c != nil && c.kv != nil }

func (c *Cache) genKey() string { return c.prefix + ":gen" }

// Generation returns the current generation, "0" when unset or unreadable
func (c *Cache) Generation(ctx context.Context) string {
	if !c.Enabled() {
		return "0"
	}
	v, ok, err := c.kv.Get(ctx, c.genKey())
	if err != nil {
		c.log.Warn().Err(err).Msg("cache generation read failed")
		return "0"
	}
	if !ok || v == "" {
		return "0"
	}
	return v
}

// Bump moves to a new generation
func (c *Cache) Bump(ctx context.Context) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	return c.kv.Incr(ctx, c.genKey())
}

// Key renders the storage key for op and parts under gen
func (c *Cache) Key(gen, op string, parts ...string) string {
	var b strings.Builder
	b.WriteString(c.prefix)
	b.WriteByte(':')
	b.WriteString(gen)
	b.WriteByte(':')
	b.WriteString(op)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(url.QueryEscape(p))
	}
	return b.String()
}

// GetOrLoad returns the cached value for op and parts or calls load and stores the result
// cache failures are logged and never returned; load errors are returned and not cached
func GetOrLoad[T any](ctx context.Context, c *Cache, op string, parts []string, load func(context.Context) (T, error)) (T, error) {
	if !c.Enabled() {
		return load(ctx)
	}
	key := c.Key(c.Generation(ctx), op, parts...)
	log := c.log.With().Str("op", op).Str("key", key).Logger()

	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("cache read failed")
	}
	if ok {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			c.observe(op, true)
			return v, nil
		}
		log.Warn().Msg("cache entry undecodable; reloading")
	}
	c.observe(op, false)

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if b, err := json.Marshal(v); err != nil {
		log.Warn().Err(err).Msg("cache encode failed")
	} else if err := c.kv.Set(ctx, key, string(b), c.ttl); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
	}
	return v, nil
}

func (c *Cache) observe(op string, hit bool) {
	if c.obs != nil {
		c.obs.ObserveCache(op, hit)
	}
}

// Itoa is shorthand for building key parts from ints
func Itoa(n int) string { return strconv.Itoa(n) }
