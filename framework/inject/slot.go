package inject

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ── Shared result ────────────────────────────────────────────────────────────

// future is the shared outcome of one slot resolution. done is closed once
// value and err are final.
type future struct {
	done  chan struct{}
	value any
	err   error
}

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

func completed(value any) *future {
	f := &future{done: make(chan struct{}), value: value}
	close(f.done)
	return f
}

func (f *future) ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// wait blocks until the result is available or ctx is done. Giving up does
// not affect the resolution itself.
func (f *future) wait(ctx context.Context) (any, error) {
	if f.ready() {
		return f.value, f.err
	}
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *future) run(ctx context.Context, i *Container, key Key, fn factory) {
	defer close(f.done)
	defer func() {
		if rec := recover(); rec != nil {
			f.value = nil
			f.err = &ProviderError{Key: key, Err: errors.Errorf("panic: %v", rec)}
			i.log.WithField("key", key.String()).Error(f.err)
		}
	}()

	log := i.log.WithField("key", key.String())
	log.Debug("resolving provider")

	value, err := fn(ctx, i)
	if err != nil {
		f.err = &ProviderError{Key: key, Err: err}
		log.WithError(err).Debug("provider failed")
		return
	}

	f.value = value
	log.Debug("provider resolved")
}

// ── Slot ─────────────────────────────────────────────────────────────────────

// slot holds one dependency. It starts either with a factory (not yet
// invoked) or with a completed future (injected value). The first resolve
// swaps the factory for a pending future; the swap happens once.
type slot struct {
	key Key
	// typ is the type the entry was registered with.
	typ reflect.Type

	mu      sync.Mutex
	factory factory
	future  *future

	// leases counts outstanding Lease handles on the value.
	leases atomic.Int64
}

func valueSlot[T any](key Key, value T) *slot {
	return &slot{key: key, typ: reflect.TypeOf((*T)(nil)).Elem(), future: completed(value)}
}

func providerSlot[T any](key Key, p Provider[T]) *slot {
	return &slot{key: key, typ: reflect.TypeOf((*T)(nil)).Elem(), factory: erase(p)}
}

// resolve returns the shared future, starting the factory if this is the
// first request. The factory runs in its own goroutine, outside s.mu, with
// a context that survives the caller's cancellation.
func (s *slot) resolve(ctx context.Context, i *Container) *future {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.future == nil {
		s.future = newFuture()
		fn := s.factory
		s.factory = nil
		go s.future.run(detach(ctx, s.key), i, s.key, fn)
	}
	return s.future
}

// check fails with TypeMismatchError unless the entry was registered as
// want.
func (s *slot) check(want reflect.Type) error {
	if s.typ == want {
		return nil
	}
	return &TypeMismatchError{Key: s.key, Expected: typeName(want), Actual: typeName(s.typ)}
}

func (s *slot) started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.future != nil
}

func (s *slot) resolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.future != nil && s.future.ready()
}

// strongCount mirrors an Arc strong count: the Container's reference plus
// every outstanding lease.
func (s *slot) strongCount() int64 {
	return s.leases.Load() + 1
}

// ── Resolution chain ─────────────────────────────────────────────────────────

type chainKey struct{}

// chain is the list of keys being resolved on the current provider path,
// innermost first.
type chain struct {
	key    Key
	parent *chain
}

func chainFrom(ctx context.Context) *chain {
	c, _ := ctx.Value(chainKey{}).(*chain)
	return c
}

func (c *chain) contains(key Key) bool {
	for ; c != nil; c = c.parent {
		if c.key.Equal(key) {
			return true
		}
	}
	return false
}

// path returns the keys outermost first.
func (c *chain) path() []Key {
	var keys []Key
	for ; c != nil; c = c.parent {
		keys = append(keys, c.key)
	}
	for l, r := 0, len(keys)-1; l < r; l, r = l+1, r-1 {
		keys[l], keys[r] = keys[r], keys[l]
	}
	return keys
}

func detach(ctx context.Context, key Key) context.Context {
	return context.WithValue(context.WithoutCancel(ctx), chainKey{}, &chain{key: key, parent: chainFrom(ctx)})
}
