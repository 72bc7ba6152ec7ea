package app

import (
	"net/http"

	"github.com/km-arc/nakago/app/users"
	nakago "github.com/km-arc/nakago/framework/app"
	gohttp "github.com/km-arc/nakago/framework/http"
	"github.com/km-arc/nakago/framework/lifecycle"
	"github.com/km-arc/nakago/framework/providers"
)

// Application is the users API.
type Application = nakago.Application[Config]

// New builds the Application with every hook registered. Nothing connects
// or listens until Init and Start run.
//
//	application := app.New()
//	if err := application.Run(ctx, "config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...nakago.Option) *Application {
	application := nakago.New(ConfigTag, opts...)

	providers.Framework(application)
	providers.Database(application)

	application.On(lifecycle.Load, users.Load())
	application.On(lifecycle.Init, gohttp.Routes(health), users.Routes())

	return application
}

// health reports the application name and environment.
func health(r *gohttp.Router) {
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		cfg, err := gohttp.DependencyTag(req, ConfigTag)
		if err != nil {
			res.ServerError()
			return
		}
		res.Success(map[string]any{
			"name": cfg.App.Name,
			"env":  cfg.App.Env,
		})
	})
}
