package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/nakago/framework/config"
	"github.com/km-arc/nakago/framework/inject"
	"github.com/km-arc/nakago/framework/logging"
)

type testConfig struct {
	Logging logging.Config
}

func (c *testConfig) LoggingConfig() *logging.Config { return &c.Logging }

var testConfigTag = inject.NewTag[*testConfig]("TestConfig")

func restoreStandardLogger(t *testing.T) {
	t.Helper()
	std := logrus.StandardLogger()
	level, formatter, out := std.GetLevel(), std.Formatter, std.Out
	t.Cleanup(func() {
		std.SetLevel(level)
		std.SetFormatter(formatter)
		std.SetOutput(out)
	})
}

// ── ConfigLoader ─────────────────────────────────────────────────────────────

func TestConfigLoader_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := config.Load[testConfig]("", config.Loaders{logging.ConfigLoader}, "testdata/none.env")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestConfigLoader_Env(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load[testConfig]("", config.Loaders{logging.ConfigLoader}, "testdata/none.env")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestConfigLoader_WrongConfig(t *testing.T) {
	err := logging.ConfigLoader.Load(&struct{}{})
	assert.Error(t, err)
}

// ── Configure ────────────────────────────────────────────────────────────────

func TestConfigure_JSON(t *testing.T) {
	log := logrus.New()
	var buf bytes.Buffer

	require.NoError(t, logging.Configure(log, logging.Config{Level: "warn", Format: "json"}, &buf))
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("hidden")
	log.WithField("key", "Tag(Database)").Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"key":"Tag(Database)"`)
}

func TestConfigure_Invalid(t *testing.T) {
	log := logrus.New()

	assert.Error(t, logging.Configure(log, logging.Config{Level: "loud"}, nil))
	assert.Error(t, logging.Configure(log, logging.Config{Format: "xml"}, nil))
}

// ── Init / Logger ────────────────────────────────────────────────────────────

func TestInit_InjectsLogger(t *testing.T) {
	restoreStandardLogger(t)
	ctx := context.Background()
	i := inject.New()

	require.NoError(t, inject.InjectTag(i, testConfigTag, &testConfig{
		Logging: logging.Config{Level: "debug", Format: "text"},
	}))
	require.NoError(t, logging.Init(testConfigTag).Handle(ctx, i))

	log, err := inject.GetTag(ctx, i, logging.LoggerTag)
	require.NoError(t, err)
	assert.Same(t, logrus.StandardLogger(), log)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestInit_MissingConfig(t *testing.T) {
	err := logging.Init(testConfigTag).Handle(context.Background(), inject.New())
	assert.ErrorIs(t, err, inject.ErrNotFound)
}

func TestLogger_FallsBackToStandard(t *testing.T) {
	log := logging.Logger(context.Background(), inject.New())
	assert.Same(t, logrus.StandardLogger(), log)
}
