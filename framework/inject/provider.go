package inject

import (
	"context"
)

// ── Provider ─────────────────────────────────────────────────────────────────

// Provider produces the value for a slot. Provide runs at most once per
// registration: the first Get triggers it, later and concurrent Gets share
// its result (including its error).
//
// Providers may request their own dependencies from the Container they are
// given, using the ctx they receive:
//
//	type userServiceProvider struct{}
//
//	func (userServiceProvider) Provide(ctx context.Context, i *inject.Container) (*UserService, error) {
//	    db, err := inject.GetTag(ctx, i, database.DatabaseTag)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &UserService{db: db}, nil
//	}
//
// The ctx passed to Provide is not cancelled when the caller that
// triggered the resolution gives up, since other callers may still be
// waiting on the result.
type Provider[T any] interface {
	Provide(ctx context.Context, i *Container) (T, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
//
//	inject.Provide[*Pool](i, inject.ProviderFunc[*Pool](func(ctx context.Context, i *inject.Container) (*Pool, error) {
//	    return connect(ctx, url)
//	}))
type ProviderFunc[T any] func(ctx context.Context, i *Container) (T, error)

// Provide calls f.
func (f ProviderFunc[T]) Provide(ctx context.Context, i *Container) (T, error) {
	return f(ctx, i)
}

// factory is the type-erased form of a Provider stored in a slot.
type factory func(ctx context.Context, i *Container) (any, error)

func erase[T any](p Provider[T]) factory {
	return func(ctx context.Context, i *Container) (any, error) {
		v, err := p.Provide(ctx, i)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
