package inject

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrOccupied matches OccupiedError.
	ErrOccupied = errors.New("inject: key occupied")

	// ErrNotFound matches NotFoundError.
	ErrNotFound = errors.New("inject: key not found")

	// ErrTypeMismatch matches TypeMismatchError.
	ErrTypeMismatch = errors.New("inject: type mismatch")

	// ErrCannotConsume matches CannotConsumeError.
	ErrCannotConsume = errors.New("inject: cannot consume")

	// ErrProvider matches ProviderError.
	ErrProvider = errors.New("inject: provider failed")

	// ErrCyclicDependency matches CyclicDependencyError.
	ErrCyclicDependency = errors.New("inject: cyclic dependency")

	// ErrClosed is returned by every operation on a Container after Eject.
	ErrClosed = errors.New("inject: container has been ejected")
)

// OccupiedError is returned when registering under a Key that already has
// an entry.
type OccupiedError struct {
	Key Key
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("inject: %s has already been provided", e.Key)
}

func (e *OccupiedError) Is(target error) bool { return target == ErrOccupied }

// NotFoundError is returned when no entry exists for a Key. Available
// lists every Key registered at the time of the lookup.
type NotFoundError struct {
	Missing   Key
	Available []Key
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("inject: ")
	b.WriteString(e.Missing.String())
	b.WriteString(" was not found")
	if len(e.Available) == 0 {
		b.WriteString("\n\nAvailable: (empty)")
		return b.String()
	}
	b.WriteString("\n\nAvailable:")
	for _, k := range e.Available {
		b.WriteString("\n - ")
		b.WriteString(k.String())
	}
	return b.String()
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// TypeMismatchError is returned when the value stored under a Key is not of
// the requested type. It only happens when a Tag name is reused for a
// different type.
type TypeMismatchError struct {
	Key      Key
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("inject: %s holds %s, not %s", e.Key, e.Actual, e.Expected)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// CannotConsumeError is returned by Consume, Modify and Eject while leases
// on the value are still outstanding. StrongCount includes the reference
// held by the Container itself.
type CannotConsumeError struct {
	Key         Key
	StrongCount int64
}

func (e *CannotConsumeError) Error() string {
	return fmt.Sprintf("inject: %s cannot be consumed, %d strong references remain", e.Key, e.StrongCount)
}

func (e *CannotConsumeError) Is(target error) bool { return target == ErrCannotConsume }

// ProviderError wraps a failure returned (or panicked) by a Provider.
type ProviderError struct {
	Key Key
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("inject: provider for %s failed: %v", e.Key, e.Err)
}

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

func (e *ProviderError) Unwrap() error { return e.Err }

// Cause makes ProviderError work with errors.Cause.
func (e *ProviderError) Cause() error { return e.Err }

// CyclicDependencyError is returned when a Provider requests, directly or
// through other Providers, the Key it is producing.
type CyclicDependencyError struct {
	Chain []Key
}

func (e *CyclicDependencyError) Error() string {
	names := make([]string, len(e.Chain))
	for i, k := range e.Chain {
		names[i] = k.String()
	}
	return "inject: cyclic dependency detected: " + strings.Join(names, " -> ")
}

func (e *CyclicDependencyError) Is(target error) bool { return target == ErrCyclicDependency }
