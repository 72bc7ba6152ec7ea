// Package inject provides an asynchronous, lazily resolved dependency
// container.
//
// # Overview
//
// A Container maps Keys to slots. A Key is either the Go type of the value
// (KeyOf[T]) or a typed string Tag (NewTag[T]). Type-keyed and tag-keyed
// entries never collide, even for the same type.
//
// A slot holds an injected value or a Provider. Providers run on the first
// Get, in their own goroutine, and exactly once: every concurrent caller
// waits on the same result. Providers receive the Container and may Get
// their own dependencies from it.
//
// # Registering
//
//	i := inject.New()
//
//	// Built value
//	_ = inject.Inject(i, cfg)
//
//	// Lazy value
//	_ = inject.ProvideTag(i, PoolTag, inject.ProviderFunc[*Pool](
//	    func(ctx context.Context, i *inject.Container) (*Pool, error) {
//	        cfg, err := inject.Get[*Config](ctx, i)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return Connect(ctx, cfg.URL)
//	    }))
//
// Registering twice under one Key fails with OccupiedError; Replace and
// ReplaceWith overwrite an existing entry and fail with NotFoundError when
// there is none.
//
// # Resolving
//
//	pool, err := inject.GetTag(ctx, i, PoolTag)
//
//	cfg, ok, err := inject.GetOpt[*Config](ctx, i)
//
// # Ownership
//
// Values are shared. Acquire returns a Lease, a counted reference; while a
// Lease is held, Consume, Modify and Eject fail with CannotConsumeError.
// Remove always succeeds.
//
//	value, err := inject.Consume[*Config](ctx, i)        // remove and return
//	err = inject.Modify(ctx, i, func(c *Config) (*Config, error) { ... })
//	value, err = inject.Eject[*Config](ctx, i)           // consume, then close i
//
// # Hooks
//
// A Hook groups the registrations of one subsystem; lifecycle phases run
// them in order (see package lifecycle).
package inject
