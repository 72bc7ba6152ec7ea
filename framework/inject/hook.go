package inject

import (
	"context"
)

// Hook performs a setup or teardown step against the Container, typically
// registering the Providers of one subsystem:
//
//	func Load() inject.Hook {
//	    return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
//	        if err := inject.ProvideTag(i, PoolTag, poolProvider{}); err != nil {
//	            return err
//	        }
//	        return inject.ProvideTag(i, ServiceTag, serviceProvider{})
//	    })
//	}
//
// A Hook runs every time it is invoked; nothing is de-duplicated.
type Hook interface {
	Handle(ctx context.Context, i *Container) error
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx context.Context, i *Container) error

// Handle calls f.
func (f HookFunc) Handle(ctx context.Context, i *Container) error {
	return f(ctx, i)
}

// Hooks runs hooks in order and stops at the first error.
func Hooks(hooks ...Hook) Hook {
	return HookFunc(func(ctx context.Context, i *Container) error {
		for _, h := range hooks {
			if err := h.Handle(ctx, i); err != nil {
				return err
			}
		}
		return nil
	})
}
