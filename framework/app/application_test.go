package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/nakago/framework/app"
	"github.com/km-arc/nakago/framework/config"
	"github.com/km-arc/nakago/framework/inject"
	"github.com/km-arc/nakago/framework/lifecycle"
)

// ── helpers ──────────────────────────────────────────────────────────────────

type testConfig struct {
	App config.App `yaml:"app"`
}

func (c *testConfig) AppConfig() *config.App { return &c.App }

var testConfigTag = inject.NewTag[*testConfig]("TestConfig")

type greeter struct{ greeting string }

var greeterTag = inject.NewTag[*greeter]("Greeter")

func newApp(t *testing.T) *app.Application[testConfig] {
	t.Helper()
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "testing")
	return app.New(testConfigTag, app.WithEnvFiles("testdata/none.env"), app.WithShutdownTimeout(time.Second))
}

func record(calls *[]string, name string) inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		*calls = append(*calls, name)
		return nil
	})
}

// ── Phases ───────────────────────────────────────────────────────────────────

func TestApplication_Init_LoadsConfigBeforeInitHooks(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)

	var calls []string
	a.On(lifecycle.Load, record(&calls, "load"), config.AddLoaders(config.AppLoader))
	a.On(lifecycle.Init, record(&calls, "init"), inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		cfg, err := inject.GetTag(ctx, i, testConfigTag)
		if err != nil {
			return err
		}
		return inject.ProvideTag(i, greeterTag, inject.ProviderFunc[*greeter](func(ctx context.Context, i *inject.Container) (*greeter, error) {
			return &greeter{greeting: "hello from " + cfg.App.Name}, nil
		}))
	}))

	require.NoError(t, a.Init(ctx, ""))
	assert.Equal(t, []string{"load", "init"}, calls)

	cfg, err := a.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nakago", cfg.App.Name)
	assert.Equal(t, "testing", a.Environment(ctx))
	assert.True(t, a.IsTesting(ctx))
	assert.False(t, a.IsProduction(ctx))

	g, err := inject.GetTag(ctx, a.Container, greeterTag)
	require.NoError(t, err)
	assert.Equal(t, "hello from Nakago", g.greeting)
}

func TestApplication_Config_BeforeInit(t *testing.T) {
	a := newApp(t)

	_, err := a.Config(context.Background())
	assert.True(t, errors.Is(err, inject.ErrNotFound))
	assert.Equal(t, "", a.Environment(context.Background()))
}

func TestApplication_Init_LoadFailureAbortsInit(t *testing.T) {
	a := newApp(t)

	var calls []string
	a.On(lifecycle.Load, inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		return errors.New("bad loader")
	}))
	a.On(lifecycle.Init, record(&calls, "init"))

	err := a.Init(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Load hook 0: bad loader")
	assert.Empty(t, calls)
	assert.False(t, a.Contains(testConfigTag.Key()))
}

func TestApplication_Init_MissingConfigFile(t *testing.T) {
	a := newApp(t)

	err := a.Init(context.Background(), "testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestApplication_StartStop(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)

	var calls []string
	a.On(lifecycle.Startup, record(&calls, "startup"))
	a.On(lifecycle.Shutdown, record(&calls, "shutdown"))

	require.NoError(t, a.Start(ctx))
	require.NoError(t, a.Stop(ctx))
	assert.Equal(t, []string{"startup", "shutdown"}, calls)
}

func TestApplication_Run_StopsWhenContextEnds(t *testing.T) {
	a := newApp(t)

	var calls []string
	a.On(lifecycle.Init, record(&calls, "init"))
	a.On(lifecycle.Startup, record(&calls, "startup"))
	a.On(lifecycle.Shutdown, inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		calls = append(calls, "shutdown")
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, "") }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Equal(t, []string{"init", "startup", "shutdown"}, calls)
}

func TestApplication_Run_StartupFailure(t *testing.T) {
	a := newApp(t)
	var calls []string
	a.On(lifecycle.Startup, record(&calls, "startup"), inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		return errors.New("port in use")
	}))
	a.On(lifecycle.Shutdown, record(&calls, "shutdown"))

	err := a.Run(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port in use")
	assert.Equal(t, []string{"startup", "shutdown"}, calls, "started hooks are torn down")
}
