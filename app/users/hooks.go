package users

import (
	"context"

	"github.com/km-arc/nakago/framework/database"
	gohttp "github.com/km-arc/nakago/framework/http"
	"github.com/km-arc/nakago/framework/inject"
)

// ServiceTag holds the users Service.
var ServiceTag = inject.NewTag[Service]("UserService")

// Load returns a Hook providing the GORM-backed Service under ServiceTag.
func Load() inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		return inject.ProvideTag(i, ServiceTag, inject.ProviderFunc[Service](func(ctx context.Context, i *inject.Container) (Service, error) {
			db, err := inject.GetTag(ctx, i, database.DatabaseTag)
			if err != nil {
				return nil, err
			}
			return NewService(ctx, db)
		}))
	})
}

// Routes returns a Hook mounting the users endpoints on the Router.
func Routes() inject.Hook {
	return gohttp.Routes(func(r *gohttp.Router) {
		r.Prefix("/users", func(r *gohttp.Router) {
			r.Get("/", list)
			r.Post("/", create)
			r.Get("/{id}", show)
		})
	})
}
