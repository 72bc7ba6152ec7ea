// Package logging configures logrus from the application config.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/nakago/framework/config"
	"github.com/km-arc/nakago/framework/inject"
)

// Config is the logging section of an application config.
type Config struct {
	Level  string `yaml:"level"`  // trace | debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Configurable is implemented by config types that carry a logging section.
type Configurable interface {
	LoggingConfig() *Config
}

// LoggerTag holds the application logger injected by Init.
var LoggerTag = inject.NewTag[logrus.FieldLogger]("Logger")

// ConfigLoader fills the logging section from LOG_LEVEL and LOG_FORMAT.
var ConfigLoader config.Loader = config.LoaderFunc(func(cfg any) error {
	c, ok := cfg.(Configurable)
	if !ok {
		return errors.Errorf("logging: %T has no logging section", cfg)
	}
	lc := c.LoggingConfig()
	lc.Level = config.Get("LOG_LEVEL", lc.Level)
	if lc.Level == "" {
		lc.Level = "info"
	}
	lc.Format = config.Get("LOG_FORMAT", lc.Format)
	if lc.Format == "" {
		lc.Format = "text"
	}
	return nil
})

// Configure applies cfg to log.
func Configure(log *logrus.Logger, cfg Config, out io.Writer) error {
	level, err := logrus.ParseLevel(or(cfg.Level, "info"))
	if err != nil {
		return errors.Wrap(err, "logging")
	}
	log.SetLevel(level)

	switch strings.ToLower(or(cfg.Format, "text")) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return errors.Errorf("logging: unknown format %q", cfg.Format)
	}

	if out != nil {
		log.SetOutput(out)
	}
	return nil
}

// Init returns a Hook that configures the standard logrus logger from the
// config under tag and injects it under LoggerTag.
func Init[C any, PC interface {
	*C
	Configurable
}](tag *inject.Tag[*C]) inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		cfg, err := inject.GetTag(ctx, i, tag)
		if err != nil {
			return err
		}

		log := logrus.StandardLogger()
		if err := Configure(log, *PC(cfg).LoggingConfig(), os.Stderr); err != nil {
			return err
		}
		return inject.InjectTag[logrus.FieldLogger](i, LoggerTag, log)
	})
}

// Logger returns the injected logger, or the standard logger when none has
// been injected.
func Logger(ctx context.Context, i *inject.Container) logrus.FieldLogger {
	log, ok, err := inject.GetTagOpt(ctx, i, LoggerTag)
	if err != nil || !ok {
		return logrus.StandardLogger()
	}
	return log
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
