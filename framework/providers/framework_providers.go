// Package providers bundles the framework's hooks so an application can
// register a whole subsystem in one call.
package providers

import (
	"github.com/km-arc/nakago/framework/app"
	"github.com/km-arc/nakago/framework/config"
	"github.com/km-arc/nakago/framework/database"
	gohttp "github.com/km-arc/nakago/framework/http"
	"github.com/km-arc/nakago/framework/lifecycle"
	"github.com/km-arc/nakago/framework/logging"
)

// ── Framework ────────────────────────────────────────────────────────────────

// Framework registers configuration, logging and the HTTP server.
//
// Hooks:
//   - Load:     config loaders for the App, logging and HTTP sections
//   - Init:     logging.Init, gohttp.Init
//   - Startup:  gohttp.Serve
//   - Shutdown: gohttp.Stop
//
// Bound tags:
//   - logging.LoggerTag → logrus.FieldLogger
//   - gohttp.RouterTag  → *gohttp.Router (lazy)
//   - gohttp.ServerTag  → *gohttp.Server (while serving)
func Framework[C any, PC interface {
	*C
	config.AppConfig
	logging.Configurable
	gohttp.Configurable
}](a *app.Application[C]) {
	tag := a.ConfigTag()

	a.On(lifecycle.Load, config.AddLoaders(config.AppLoader, logging.ConfigLoader, gohttp.ConfigLoader))
	a.On(lifecycle.Init, logging.Init[C, PC](tag), gohttp.Init())
	a.On(lifecycle.Startup, gohttp.Serve[C, PC](tag))
	a.On(lifecycle.Shutdown, gohttp.Stop[C, PC](tag))
}

// ── Database ─────────────────────────────────────────────────────────────────

// Database registers the postgres pool and the GORM handle.
//
// Hooks:
//   - Load:     database.ConfigLoader, database.Load
//   - Shutdown: database.Close
//
// Bound tags:
//   - database.SQLTag      → *sql.DB (lazy)
//   - database.DatabaseTag → *gorm.DB (lazy)
//
// Register it after Framework so the pool is closed once the HTTP server
// has stopped.
func Database[C any, PC interface {
	*C
	database.Configurable
}](a *app.Application[C]) {
	a.On(lifecycle.Load, config.AddLoaders(database.ConfigLoader), database.Load[C, PC](a.ConfigTag()))
	a.On(lifecycle.Shutdown, database.Close())
}
