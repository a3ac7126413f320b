package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// clearEnv resets the variables the loader reads, for the test duration.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvStocksFile, EnvRepoRoot, EnvPush, EnvTrackHighest, EnvRecover,
		EnvQuotesURL, EnvMetricsFile, EnvVerbose, EnvDebug,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "stocks.json", cfg.StocksFile)
	assert.Equal(t, ".", cfg.RepoRoot)
	assert.True(t, cfg.TrackHighest)
	assert.True(t, cfg.Push)
	assert.False(t, cfg.RecoverUncommitted)
	assert.Equal(t, 30*time.Second, cfg.Quotes.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Debug)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "stocksync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
stocksFile: data/watch.json
push: false
quotes:
  baseURL: http://localhost:8080
  timeout: 5s
log:
  level: warn
  format: json
git:
  authorName: bot
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/watch.json", cfg.StocksFile)
	assert.False(t, cfg.Push)
	assert.True(t, cfg.TrackHighest, "unset values keep their default")
	assert.Equal(t, "http://localhost:8080", cfg.Quotes.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Quotes.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"GIT_AUTHOR_NAME=bot", "GIT_COMMITTER_NAME=bot"}, cfg.Git.Env())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvStocksFile, "other.json")
	t.Setenv(EnvPush, "false")
	t.Setenv(EnvRecover, "1")
	t.Setenv(EnvDebug, "yes")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "other.json", cfg.StocksFile)
	assert.False(t, cfg.Push)
	assert.True(t, cfg.RecoverUncommitted)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("bad yaml", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("push: [\n"), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "parse yaml")
	})
	t.Run("bad boolean", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvTrackHighest, "maybe")
		_, err := Load("")
		assert.ErrorContains(t, err, EnvTrackHighest)
	})
}

func TestValidate(t *testing.T) {
	ok := Default()
	assert.NoError(t, Validate(ok))

	noFile := Default()
	noFile.StocksFile = " "
	assert.Error(t, Validate(noFile))

	badFormat := Default()
	badFormat.Log.Format = "xml"
	assert.Error(t, Validate(badFormat))

	badLevel := Default()
	badLevel.Log.Level = "loud"
	assert.Error(t, Validate(badLevel))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))

	_, err = NewLogger(LogConfig{Level: "nope"})
	assert.Error(t, err)
}
