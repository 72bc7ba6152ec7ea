package inject

import (
	"sync/atomic"
)

// Lease is a counted reference to a resolved value. While any Lease on a
// slot is unreleased, Consume, Modify and Eject of that slot fail with
// CannotConsumeError.
//
//	lease, err := inject.Acquire[*Pool](ctx, i)
//	if err != nil {
//	    return err
//	}
//	defer lease.Release()
//	pool := lease.Value()
type Lease[T any] struct {
	value    T
	slot     *slot
	released atomic.Bool
}

// Value returns the leased value. It stays usable after Release.
func (l *Lease[T]) Value() T { return l.value }

// Key returns the Key the value was resolved from.
func (l *Lease[T]) Key() Key { return l.slot.key }

// Clone returns an additional Lease on the same value.
func (l *Lease[T]) Clone() *Lease[T] {
	l.slot.leases.Add(1)
	return &Lease[T]{value: l.value, slot: l.slot}
}

// Release gives the reference back. Calling it more than once is a no-op.
func (l *Lease[T]) Release() {
	if l.released.CompareAndSwap(false, true) {
		l.slot.leases.Add(-1)
	}
}

// StrongCount returns the number of strong references to the value: the
// Container's own plus every unreleased Lease.
func (l *Lease[T]) StrongCount() int64 { return l.slot.strongCount() }
