package inject

import (
	"context"
)

// ── Resolution ───────────────────────────────────────────────────────────────

// Get returns the value registered for type T, running its Provider on the
// first request. Concurrent first requests share one Provider run and see
// the same value or error.
//
// It fails with NotFoundError when nothing is registered for T, and with
// CyclicDependencyError when called from a Provider that is (directly or
// transitively) producing T. Two resolutions started independently that
// wait on each other are not detected and block until ctx is done.
func Get[T any](ctx context.Context, c *Container) (T, error) {
	return get[T](ctx, c, KeyOf[T]())
}

// GetOpt is like Get but reports a missing registration with ok == false
// instead of an error.
func GetOpt[T any](ctx context.Context, c *Container) (value T, ok bool, err error) {
	return getOpt[T](ctx, c, KeyOf[T]())
}

// Acquire is like Get but returns a Lease that blocks Consume, Modify and
// Eject until it is released.
func Acquire[T any](ctx context.Context, c *Container) (*Lease[T], error) {
	return acquire[T](ctx, c, KeyOf[T]())
}

// ── Registration ─────────────────────────────────────────────────────────────

// Inject registers an already built value for type T. It fails with
// OccupiedError if T already has an entry.
func Inject[T any](c *Container, value T) error {
	return c.insert(valueSlot(KeyOf[T](), value))
}

// Provide registers a Provider for type T without running it. It fails with
// OccupiedError if T already has an entry.
func Provide[T any](c *Container, p Provider[T]) error {
	key := KeyOf[T]()
	return c.insert(providerSlot(key, p))
}

// Replace overwrites the entry for type T with value. It fails with
// NotFoundError if T has no entry. Values handed out earlier are not
// affected.
func Replace[T any](c *Container, value T) error {
	return c.replace(valueSlot(KeyOf[T](), value))
}

// ReplaceWith overwrites the entry for type T with a Provider. It fails
// with NotFoundError if T has no entry.
func ReplaceWith[T any](c *Container, p Provider[T]) error {
	key := KeyOf[T]()
	return c.replace(providerSlot(key, p))
}

// ── Removal ──────────────────────────────────────────────────────────────────

// Consume removes the entry for type T and returns its value, resolving it
// first if needed. It fails with CannotConsumeError, leaving the entry in
// place, while Leases on the value are outstanding.
func Consume[T any](ctx context.Context, c *Container) (T, error) {
	return consume[T](ctx, c, KeyOf[T]())
}

// Modify replaces the value for type T with fn's result, atomically with
// respect to other Container operations. It fails like Consume. fn runs
// while the Container is locked and must not use it. When fn returns an
// error the entry is left as it was.
func Modify[T any](ctx context.Context, c *Container, fn func(T) (T, error)) error {
	return modify(ctx, c, KeyOf[T](), fn)
}

// Remove drops the entry for type T without resolving it. Values handed
// out earlier stay valid.
func Remove[T any](c *Container) error {
	return c.remove(KeyOf[T]())
}

// Eject consumes the value for type T and closes the Container. Every
// later operation on the Container returns ErrClosed. It is meant for
// teardown, to check that nothing still holds the value.
func Eject[T any](ctx context.Context, c *Container) (T, error) {
	return eject[T](ctx, c, KeyOf[T]())
}
