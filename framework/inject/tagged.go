package inject

import (
	"context"
)

// The tag-keyed operations below behave exactly like their type-keyed
// counterparts in inject.go; only the Key differs.

// GetTag returns the value registered under tag. See Get.
func GetTag[T any](ctx context.Context, c *Container, tag *Tag[T]) (T, error) {
	return get[T](ctx, c, tag.Key())
}

// GetTagOpt returns the value registered under tag, or ok == false. See GetOpt.
func GetTagOpt[T any](ctx context.Context, c *Container, tag *Tag[T]) (value T, ok bool, err error) {
	return getOpt[T](ctx, c, tag.Key())
}

// AcquireTag returns a Lease on the value registered under tag. See Acquire.
func AcquireTag[T any](ctx context.Context, c *Container, tag *Tag[T]) (*Lease[T], error) {
	return acquire[T](ctx, c, tag.Key())
}

// InjectTag registers value under tag. See Inject.
func InjectTag[T any](c *Container, tag *Tag[T], value T) error {
	return c.insert(valueSlot(tag.Key(), value))
}

// ProvideTag registers a Provider under tag. See Provide.
func ProvideTag[T any](c *Container, tag *Tag[T], p Provider[T]) error {
	return c.insert(providerSlot(tag.Key(), p))
}

// ReplaceTag overwrites the entry under tag with value. See Replace.
func ReplaceTag[T any](c *Container, tag *Tag[T], value T) error {
	return c.replace(valueSlot(tag.Key(), value))
}

// ReplaceTagWith overwrites the entry under tag with a Provider. See ReplaceWith.
func ReplaceTagWith[T any](c *Container, tag *Tag[T], p Provider[T]) error {
	return c.replace(providerSlot(tag.Key(), p))
}

// ConsumeTag removes the entry under tag and returns its value. See Consume.
func ConsumeTag[T any](ctx context.Context, c *Container, tag *Tag[T]) (T, error) {
	return consume[T](ctx, c, tag.Key())
}

// ModifyTag replaces the value under tag with fn's result. See Modify.
func ModifyTag[T any](ctx context.Context, c *Container, tag *Tag[T], fn func(T) (T, error)) error {
	return modify(ctx, c, tag.Key(), fn)
}

// RemoveTag drops the entry under tag. See Remove.
func RemoveTag[T any](c *Container, tag *Tag[T]) error {
	return c.remove(tag.Key())
}

// EjectTag consumes the value under tag and closes the Container. See Eject.
func EjectTag[T any](ctx context.Context, c *Container, tag *Tag[T]) (T, error) {
	return eject[T](ctx, c, tag.Key())
}
