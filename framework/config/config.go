package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/nakago/framework/inject"
)

// App holds the settings every application has.
type App struct {
	Name  string `yaml:"name"`
	Env   string `yaml:"env"` // local | production | testing
	Debug bool   `yaml:"debug"`
}

// AppConfig is implemented by config types that carry an App section.
type AppConfig interface {
	AppConfig() *App
}

// ── Loaders ──────────────────────────────────────────────────────────────────

// Loader fills one section of a config value, usually from environment
// variables. cfg is the pointer being loaded; loaders type-assert it to the
// accessor interface of their section.
type Loader interface {
	Load(cfg any) error
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(cfg any) error

// Load calls f.
func (f LoaderFunc) Load(cfg any) error { return f(cfg) }

// Loaders is the ordered list of Loaders applied by Init.
type Loaders []Loader

// LoadersTag is where AddLoaders collects Loaders.
var LoadersTag = inject.NewTag[Loaders]("ConfigLoaders")

// AddLoaders returns a Hook appending loaders to the list under LoadersTag.
// Register it in the Load phase so it runs before Init.
func AddLoaders(loaders ...Loader) inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		if !i.Contains(LoadersTag.Key()) {
			return inject.InjectTag(i, LoadersTag, append(Loaders(nil), loaders...))
		}
		return inject.ModifyTag(ctx, i, LoadersTag, func(existing Loaders) (Loaders, error) {
			return append(existing, loaders...), nil
		})
	})
}

// AppLoader fills the App section from APP_NAME, APP_ENV and APP_DEBUG.
var AppLoader Loader = LoaderFunc(func(cfg any) error {
	c, ok := cfg.(AppConfig)
	if !ok {
		return errors.Errorf("config: %T has no App section", cfg)
	}
	app := c.AppConfig()
	app.Name = env("APP_NAME", or(app.Name, "Nakago"))
	app.Env = env("APP_ENV", or(app.Env, "local"))
	app.Debug = envBool("APP_DEBUG", app.Debug)
	return nil
})

// ── Loading ──────────────────────────────────────────────────────────────────

// Load builds a *C: env files are loaded into the process environment
// (missing files are ignored), the YAML file at path is decoded if path is
// set, then each loader runs in order.
func Load[C any](path string, loaders Loaders, envFiles ...string) (*C, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := new(C)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "decode config file %s", path)
		}
	}

	for _, loader := range loaders {
		if err := loader.Load(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Init returns a Hook that loads the config with the Loaders registered
// under LoadersTag and injects it under tag.
func Init[C any](tag *inject.Tag[*C], path string, envFiles ...string) inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		loaders, _, err := inject.GetTagOpt(ctx, i, LoadersTag)
		if err != nil {
			return err
		}

		cfg, err := Load[C](path, loaders, envFiles...)
		if err != nil {
			return err
		}
		return inject.InjectTag(i, tag, cfg)
	})
}

// ── Environment ──────────────────────────────────────────────────────────────

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// GetDuration returns a time.Duration env value such as "5s".
func GetDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
