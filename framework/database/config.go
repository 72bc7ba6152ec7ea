package database

import (
	"github.com/pkg/errors"

	"github.com/km-arc/nakago/framework/config"
)

// Config is the database section of an application config.
type Config struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
	Debug    bool   `yaml:"debug"` // log every statement
}

// Configurable is implemented by config types that carry a database section.
type Configurable interface {
	DatabaseConfig() *Config
}

// ConfigLoader fills the database section from DATABASE_URL,
// DATABASE_MAX_CONNS and DATABASE_DEBUG.
var ConfigLoader config.Loader = config.LoaderFunc(func(cfg any) error {
	c, ok := cfg.(Configurable)
	if !ok {
		return errors.Errorf("database: %T has no database section", cfg)
	}
	dc := c.DatabaseConfig()
	dc.URL = config.Get("DATABASE_URL", dc.URL)

	maxConns := dc.MaxConns
	if maxConns == 0 {
		maxConns = 10
	}
	dc.MaxConns = config.GetInt("DATABASE_MAX_CONNS", maxConns)
	dc.Debug = config.GetBool("DATABASE_DEBUG", dc.Debug)
	return nil
})
