package inject

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Container is the dependency registry shared by the whole application.
//
// It maps Keys to slots. A slot holds either an injected value or a
// Provider that has not run yet; Providers run lazily, once, on the first
// Get. Go does not allow generic methods, so the typed operations are
// package-level functions taking the Container:
//
//	i := inject.New()
//	_ = inject.Inject(i, cfg)
//	_ = inject.ProvideTag(i, DatabaseTag, databaseProvider{})
//
//	db, err := inject.GetTag(ctx, i, DatabaseTag)
//
// A Container is safe for concurrent use.
type Container struct {
	mu     sync.RWMutex
	slots  map[keyID]*slot
	closed bool

	log logrus.FieldLogger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used to trace slot resolution.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Container) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates an empty Container.
func New(opts ...Option) *Container {
	c := &Container{
		slots: make(map[keyID]*slot),
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Introspection ────────────────────────────────────────────────────────────

// Keys returns every registered Key, sorted by their display string.
func (c *Container) Keys() []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keys()
}

// Len returns the number of registered Keys.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.slots)
}

// Contains reports whether key has an entry.
func (c *Container) Contains(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.slots[key.id]
	return ok
}

// Resolved reports whether key has an entry whose value is available
// without running or waiting on a Provider.
func (c *Container) Resolved(key Key) bool {
	c.mu.RLock()
	s, ok := c.slots[key.id]
	c.mu.RUnlock()
	return ok && s.resolved()
}

// Started reports whether key has an entry whose value is available or
// whose Provider is already running.
func (c *Container) Started(key Key) bool {
	c.mu.RLock()
	s, ok := c.slots[key.id]
	c.mu.RUnlock()
	return ok && s.started()
}

// Closed reports whether the Container has been ejected.
func (c *Container) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// keys must be called with c.mu held.
func (c *Container) keys() []Key {
	keys := make([]Key, 0, len(c.slots))
	for _, s := range c.slots {
		keys = append(keys, s.key)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].String() < keys[b].String() })
	return keys
}

// notFound must be called with c.mu held.
func (c *Container) notFound(key Key) *NotFoundError {
	return &NotFoundError{Missing: key, Available: c.keys()}
}

// ── Untyped operations ───────────────────────────────────────────────────────

func (c *Container) insert(s *slot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if _, ok := c.slots[s.key.id]; ok {
		return &OccupiedError{Key: s.key}
	}
	c.slots[s.key.id] = s
	return nil
}

func (c *Container) replace(s *slot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if _, ok := c.slots[s.key.id]; !ok {
		return c.notFound(s.key)
	}
	c.slots[s.key.id] = s
	return nil
}

func (c *Container) remove(key Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if _, ok := c.slots[key.id]; !ok {
		return c.notFound(key)
	}
	delete(c.slots, key.id)
	return nil
}

func (c *Container) lookup(key Key) (*slot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrClosed
	}
	s, ok := c.slots[key.id]
	if !ok {
		return nil, c.notFound(key)
	}
	return s, nil
}

// resolve waits for the value of key, starting its Provider if needed.
func (c *Container) resolve(ctx context.Context, key Key) (any, *slot, error) {
	if ch := chainFrom(ctx); ch.contains(key) {
		return nil, nil, &CyclicDependencyError{Chain: append(ch.path(), key)}
	}

	s, err := c.lookup(key)
	if err != nil {
		return nil, nil, err
	}

	value, err := s.resolve(ctx, c).wait(ctx)
	if err != nil {
		return nil, s, err
	}
	return value, s, nil
}

// take resolves key and removes it, provided it was registered as want and
// no leases are outstanding.
func (c *Container) take(ctx context.Context, key Key, want reflect.Type) (any, *slot, error) {
	for {
		value, s, err := c.resolve(ctx, key)
		if err != nil {
			return nil, nil, err
		}
		if err := s.check(want); err != nil {
			return nil, nil, err
		}

		c.mu.Lock()
		current, err := c.exclusive(key, s)
		if err != nil {
			c.mu.Unlock()
			return nil, nil, err
		}
		if current != s {
			// replaced while we were waiting on it
			c.mu.Unlock()
			continue
		}
		delete(c.slots, key.id)
		c.mu.Unlock()

		return value, s, nil
	}
}

// update resolves key and swaps its value for fn's result under the write
// lock. The entry is left untouched when fn fails.
func (c *Container) update(ctx context.Context, key Key, want reflect.Type, fn func(any) (any, error)) error {
	for {
		value, s, err := c.resolve(ctx, key)
		if err != nil {
			return err
		}
		if err := s.check(want); err != nil {
			return err
		}

		c.mu.Lock()
		current, err := c.exclusive(key, s)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		if current != s {
			c.mu.Unlock()
			continue
		}

		next, err := fn(value)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		c.slots[key.id] = &slot{key: key, typ: s.typ, future: completed(next)}
		c.mu.Unlock()

		return nil
	}
}

// exclusive returns the current slot for key, failing when the Container
// is closed, the key is gone, or s is still leased. Must hold c.mu.
func (c *Container) exclusive(key Key, s *slot) (*slot, error) {
	if c.closed {
		return nil, ErrClosed
	}
	current, ok := c.slots[key.id]
	if !ok {
		return nil, c.notFound(key)
	}
	if current == s && s.leases.Load() > 0 {
		return nil, &CannotConsumeError{Key: key, StrongCount: s.strongCount()}
	}
	return current, nil
}

func (c *Container) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.slots = nil
}

// ── Typed helpers ────────────────────────────────────────────────────────────

// cast converts a value resolved from s to T. The registered type must be
// exactly T, so a nil stored under another type is still a mismatch.
func cast[T any](s *slot, value any) (T, error) {
	var zero T
	if err := s.check(reflect.TypeOf((*T)(nil)).Elem()); err != nil {
		return zero, err
	}
	typed, _ := value.(T)
	return typed, nil
}

// missing reports whether err says that key itself (not one of its
// dependencies) is absent.
func missing(key Key, err error) bool {
	nf, ok := err.(*NotFoundError)
	return ok && nf.Missing.Equal(key)
}

func get[T any](ctx context.Context, c *Container, key Key) (T, error) {
	value, s, err := c.resolve(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](s, value)
}

func getOpt[T any](ctx context.Context, c *Container, key Key) (T, bool, error) {
	value, err := get[T](ctx, c, key)
	if err != nil {
		if missing(key, err) {
			return value, false, nil
		}
		return value, false, err
	}
	return value, true, nil
}

func acquire[T any](ctx context.Context, c *Container, key Key) (*Lease[T], error) {
	for {
		value, s, err := c.resolve(ctx, key)
		if err != nil {
			return nil, err
		}
		typed, err := cast[T](s, value)
		if err != nil {
			return nil, err
		}

		// Counted under the read lock, and only while s is still the
		// registered slot, so it cannot interleave with take/update.
		c.mu.RLock()
		if c.closed {
			c.mu.RUnlock()
			return nil, ErrClosed
		}
		current, ok := c.slots[key.id]
		if !ok {
			err := c.notFound(key)
			c.mu.RUnlock()
			return nil, err
		}
		if current != s {
			// replaced while we were waiting on it
			c.mu.RUnlock()
			continue
		}
		s.leases.Add(1)
		c.mu.RUnlock()

		return &Lease[T]{value: typed, slot: s}, nil
	}
}

func consume[T any](ctx context.Context, c *Container, key Key) (T, error) {
	value, s, err := c.take(ctx, key, reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](s, value)
}

func modify[T any](ctx context.Context, c *Container, key Key, fn func(T) (T, error)) error {
	return c.update(ctx, key, reflect.TypeOf((*T)(nil)).Elem(), func(value any) (any, error) {
		typed, _ := value.(T)
		next, err := fn(typed)
		if err != nil {
			return nil, err
		}
		return next, nil
	})
}

func eject[T any](ctx context.Context, c *Container, key Key) (T, error) {
	value, err := consume[T](ctx, c, key)
	if err != nil {
		return value, err
	}
	c.close()
	return value, nil
}
