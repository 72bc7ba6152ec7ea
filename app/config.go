package app

import (
	"github.com/km-arc/nakago/framework/config"
	"github.com/km-arc/nakago/framework/database"
	gohttp "github.com/km-arc/nakago/framework/http"
	"github.com/km-arc/nakago/framework/inject"
	"github.com/km-arc/nakago/framework/logging"
)

// Config is the application configuration, loaded from an optional YAML
// file and the environment.
type Config struct {
	App      config.App      `yaml:"app"`
	Logging  logging.Config  `yaml:"logging"`
	HTTP     gohttp.Config   `yaml:"http"`
	Database database.Config `yaml:"database"`
}

func (c *Config) AppConfig() *config.App           { return &c.App }
func (c *Config) LoggingConfig() *logging.Config   { return &c.Logging }
func (c *Config) HTTPConfig() *gohttp.Config       { return &c.HTTP }
func (c *Config) DatabaseConfig() *database.Config { return &c.Database }

// ConfigTag holds the loaded *Config.
var ConfigTag = inject.NewTag[*Config]("Config")
