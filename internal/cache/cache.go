package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/deparrow/console/internal/logger"
)

// ErrNoLoader is returned by Fetch when a key has neither cached data nor a
// loader to produce it.
var ErrNoLoader = errors.New("cache: no loader registered for key")

// Loader produces the value for a cache key. It is invoked at most once per
// key at any point in time; concurrent Fetch calls share the in-flight result.
type Loader func(ctx context.Context) (any, error)

// UpdateFunc transforms an entry's current data during Merge. Returning an
// error leaves the entry untouched.
type UpdateFunc func(data any) (any, error)

// Options configure a key on first Fetch or Retain.
type Options struct {
	// StaleTime is how long a loaded value is served without revalidation.
	// Zero means the value is stale as soon as it is stored.
	StaleTime time.Duration

	// RefreshInterval, when positive, reloads the entry on a timer while at
	// least one consumer retains the key.
	RefreshInterval time.Duration
}

// Snapshot is the persistable view of one entry, used by the snapshot store.
type Snapshot struct {
	Key       string
	Data      any
	FetchedAt time.Time
}

type inflight struct {
	done chan struct{}
	val  any
	err  error
}

type entry struct {
	data      any
	hasData   bool
	fetchedAt time.Time
	stale     bool
	gen       uint64

	loader Loader
	opts   Options

	loading *inflight

	refs    int
	stopRef chan struct{}
}

func (e *entry) fresh(now time.Time) bool {
	if !e.hasData || e.stale {
		return false
	}
	if e.opts.StaleTime <= 0 {
		return false
	}
	return now.Sub(e.fetchedAt) < e.opts.StaleTime
}

// Cache is a concurrency-safe keyed store of asynchronously loaded values.
// A failed load never evicts prior data, and one key's failure never affects
// sibling keys.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	closed  bool

	logger *logger.Logger
	now    func() time.Time
}

func New(log *logger.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		logger:  log.GetChildLogger("cache"),
		now:     time.Now,
	}
}

// Fetch returns the value for key. Fresh cached data is returned
// synchronously. Stale data is also returned synchronously, with a reload
// started in the background. When the key holds no data yet, Fetch blocks on
// the loader; concurrent callers for the same key share a single load.
//
// On loader failure the entry's prior data (if any) is left intact and the
// error is surfaced to the caller only.
func (c *Cache) Fetch(ctx context.Context, key string, loader Loader, opts Options) (any, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errors.New("cache: closed")
	}

	e := c.entries[key]
	if e == nil {
		e = &entry{opts: opts}
		c.entries[key] = e
	}
	if loader != nil {
		e.loader = loader
		e.opts = opts
	}

	if e.fresh(c.now()) {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}

	if e.hasData {
		// Stale-while-revalidate: hand back the last-known value and let
		// the reload finish in the background. A primed entry that never
		// saw a loader has nothing to revalidate with yet.
		if e.loader != nil {
			c.startLoadLocked(key, e)
		}
		data := e.data
		c.mu.Unlock()
		return data, nil
	}

	if e.loader == nil {
		c.mu.Unlock()
		return nil, ErrNoLoader
	}

	fl := c.startLoadLocked(key, e)
	c.mu.Unlock()

	select {
	case <-fl.done:
		return fl.val, fl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// startLoadLocked joins the in-flight load for the entry or starts a new one.
// Caller holds c.mu.
func (c *Cache) startLoadLocked(key string, e *entry) *inflight {
	if e.loading != nil {
		return e.loading
	}
	fl := &inflight{done: make(chan struct{})}
	e.loading = fl

	loader := e.loader
	gen := e.gen
	go c.load(key, e, fl, loader, gen)
	return fl
}

// load runs the loader off the caller's goroutine and applies its result.
// The generation captured at start guards against acting on an entry that
// was invalidated or replaced while the load was in flight: the value is
// still stored (it is the newest we have) but stays marked stale so the next
// Fetch revalidates.
func (c *Cache) load(key string, e *entry, fl *inflight, loader Loader, gen uint64) {
	val, err := loader(context.Background())

	c.mu.Lock()
	if c.entries[key] == e {
		e.loading = nil
		if err == nil {
			e.data = val
			e.hasData = true
			e.fetchedAt = c.now()
			e.stale = e.gen != gen
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache load failed")
	}

	fl.val = val
	fl.err = err
	close(fl.done)
}

// Peek returns the current data for key without triggering any load.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil || !e.hasData {
		return nil, false
	}
	return e.data, true
}

// Set stores value under key and marks it fresh, replacing whatever was
// there. Used for mutation results declared as a merge effect.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil {
		e = &entry{}
		c.entries[key] = e
	}
	e.data = value
	e.hasData = true
	e.fetchedAt = c.now()
	e.stale = false
	e.gen++
}

// Prime seeds key with value already marked stale, so the first Fetch serves
// it synchronously while revalidating. Used when restoring a persisted
// snapshot at startup.
func (c *Cache) Prime(key string, value any, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = &entry{
		data:      value,
		hasData:   true,
		fetchedAt: fetchedAt,
		stale:     true,
	}
}

// Merge applies a partial update to the entry's data. When the key holds no
// data the update is a no-op and Merge reports false; push events for
// entries nobody loaded are not worth materialising.
func (c *Cache) Merge(key string, apply UpdateFunc) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil || !e.hasData {
		return false
	}
	next, err := apply(e.data)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache merge failed")
		return false
	}
	e.data = next
	return true
}

// Invalidate marks key stale. It does not block and does not trigger a load;
// the next Fetch revalidates.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entries[key]; e != nil {
		e.stale = true
		e.gen++
	}
}

// InvalidatePrefix marks every key with the given prefix stale. Used for
// list keys whose filter parameters are baked into the key.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			e.stale = true
			e.gen++
		}
	}
}

// Retain registers a consumer of key. The first retainer of a key with a
// refresh interval starts its timer; the loader must have been registered by
// a prior Fetch (or be registered by the one that follows).
func (c *Cache) Retain(key string, opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	e := c.entries[key]
	if e == nil {
		e = &entry{opts: opts}
		c.entries[key] = e
	}
	if opts.RefreshInterval > 0 {
		e.opts = opts
	}
	e.refs++
	if e.refs == 1 && e.opts.RefreshInterval > 0 {
		e.stopRef = make(chan struct{})
		go c.refreshLoop(key, e.opts.RefreshInterval, e.stopRef)
	}
}

// Release drops a consumer of key. When the last consumer leaves, the
// refresh timer stops; no background work runs for unobserved data.
func (c *Cache) Release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil || e.refs == 0 {
		return
	}
	e.refs--
	if e.refs == 0 && e.stopRef != nil {
		close(e.stopRef)
		e.stopRef = nil
	}
}

func (c *Cache) refreshLoop(key string, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			e := c.entries[key]
			if e != nil && e.loader != nil {
				c.startLoadLocked(key, e)
			}
			c.mu.Unlock()
		case <-stop:
			return
		}
	}
}

// Snapshots returns the persistable entries: every key currently holding
// data, with its load timestamp.
func (c *Cache) Snapshots() []Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Snapshot, 0, len(c.entries))
	for key, e := range c.entries {
		if !e.hasData {
			continue
		}
		out = append(out, Snapshot{Key: key, Data: e.data, FetchedAt: e.fetchedAt})
	}
	return out
}

// Close stops all refresh timers and rejects further Fetch calls. In-flight
// loads finish but their results are dropped.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for _, e := range c.entries {
		if e.stopRef != nil {
			close(e.stopRef)
			e.stopRef = nil
		}
	}
	c.entries = make(map[string]*entry)
}
