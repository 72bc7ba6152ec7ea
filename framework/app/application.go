package app

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/nakago/framework/config"
	"github.com/km-arc/nakago/framework/inject"
	"github.com/km-arc/nakago/framework/lifecycle"
)

// Application ties a Container, its lifecycle Events and a typed config
// together. It embeds the Container so user code can pass app.Container
// wherever a *inject.Container is needed.
//
//	application := app.New(ConfigTag)
//	application.On(lifecycle.Init, users.Load())
//	application.On(lifecycle.Startup, gohttp.Serve(ConfigTag))
//
//	if err := application.Run(ctx, "config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
type Application[C any] struct {
	*inject.Container
	Events *lifecycle.Events

	configTag       *inject.Tag[*C]
	envFiles        []string
	shutdownTimeout time.Duration
	log             logrus.FieldLogger
}

type settings struct {
	envFiles        []string
	shutdownTimeout time.Duration
	log             logrus.FieldLogger
}

// Option configures an Application.
type Option func(*settings)

// WithEnvFiles sets the .env files loaded before the config (default ".env").
func WithEnvFiles(files ...string) Option {
	return func(s *settings) { s.envFiles = files }
}

// WithShutdownTimeout bounds the Shutdown phase run by Run (default 10s).
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) { s.shutdownTimeout = d }
}

// WithLogger sets the logger for the Container and lifecycle tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *settings) { s.log = log }
}

// New creates an Application whose config is injected under configTag.
func New[C any](configTag *inject.Tag[*C], opts ...Option) *Application[C] {
	s := settings{
		shutdownTimeout: 10 * time.Second,
		log:             logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	events := lifecycle.NewEvents()
	events.SetLogger(s.log)

	return &Application[C]{
		Container:       inject.New(inject.WithLogger(s.log)),
		Events:          events,
		configTag:       configTag,
		envFiles:        s.envFiles,
		shutdownTimeout: s.shutdownTimeout,
		log:             s.log,
	}
}

// On registers hooks for a lifecycle phase.
func (a *Application[C]) On(event lifecycle.Event, hooks ...inject.Hook) {
	a.Events.On(event, hooks...)
}

// ConfigTag returns the tag the config is injected under.
func (a *Application[C]) ConfigTag() *inject.Tag[*C] { return a.configTag }

// ── Phases ───────────────────────────────────────────────────────────────────

// Load runs the Load phase.
func (a *Application[C]) Load(ctx context.Context) error {
	return a.Events.Trigger(ctx, lifecycle.Load, a.Container)
}

// Init runs the Load phase, loads the config from configPath (may be
// empty) with the registered config Loaders, injects it, then runs the
// Init phase.
func (a *Application[C]) Init(ctx context.Context, configPath string) error {
	if err := a.Load(ctx); err != nil {
		return err
	}
	if err := config.Init(a.configTag, configPath, a.envFiles...).Handle(ctx, a.Container); err != nil {
		return errors.Wrap(err, "load config")
	}
	return a.Events.Trigger(ctx, lifecycle.Init, a.Container)
}

// Start runs the Startup phase.
func (a *Application[C]) Start(ctx context.Context) error {
	return a.Events.Trigger(ctx, lifecycle.Startup, a.Container)
}

// Stop runs the Shutdown phase.
func (a *Application[C]) Stop(ctx context.Context) error {
	return a.Events.Trigger(ctx, lifecycle.Shutdown, a.Container)
}

// Run initializes and starts the Application, blocks until ctx is done,
// then stops it within the shutdown timeout. A failed Start is followed by
// Stop so the hooks that did run are torn down.
func (a *Application[C]) Run(ctx context.Context, configPath string) error {
	if err := a.Init(ctx, configPath); err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		if stopErr := a.stop(ctx); stopErr != nil {
			a.log.WithError(stopErr).Warn("stop after failed start")
		}
		return err
	}
	a.log.WithField("env", a.Environment(ctx)).Info("application started")

	<-ctx.Done()
	a.log.Info("shutting down")
	return a.stop(ctx)
}

func (a *Application[C]) stop(ctx context.Context) error {
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.shutdownTimeout)
	defer cancel()
	return a.Stop(stopCtx)
}

// ── Config ───────────────────────────────────────────────────────────────────

// Config returns the loaded config. It fails before Init.
func (a *Application[C]) Config(ctx context.Context) (*C, error) {
	return inject.GetTag(ctx, a.Container, a.configTag)
}

// Environment returns App.Env when the config has an App section and has
// been loaded, "" otherwise.
func (a *Application[C]) Environment(ctx context.Context) string {
	cfg, err := a.Config(ctx)
	if err != nil {
		return ""
	}
	if c, ok := any(cfg).(config.AppConfig); ok {
		return c.AppConfig().Env
	}
	return ""
}

func (a *Application[C]) IsLocal(ctx context.Context) bool      { return a.Environment(ctx) == "local" }
func (a *Application[C]) IsProduction(ctx context.Context) bool { return a.Environment(ctx) == "production" }
func (a *Application[C]) IsTesting(ctx context.Context) bool    { return a.Environment(ctx) == "testing" }
