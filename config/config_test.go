package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/tetris/config"
	"github.com/plus3/tetris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray .env is picked
// up, and clears the TETRIS_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{config.EnvLockdown, config.EnvPreview, config.EnvLevel, config.EnvSeed, config.EnvLogLevel} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, config.Default, *cfg)
	assert.Equal(t, tetris.Extended, cfg.LockdownMode())
	assert.Equal(t, tetris.DefaultWeights, cfg.Weights())
	assert.Equal(t, 0, cfg.InitialLines())
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"lockdown":"classic","level":4,"hint":{"holes":-1}}`), 0644))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, tetris.Classic, cfg.LockdownMode())
	assert.Equal(t, 4, cfg.Level)
	assert.Equal(t, 30, cfg.InitialLines())
	assert.Equal(t, -1.0, cfg.Hint.Holes)
	assert.Equal(t, config.Default.Preview, cfg.Preview, "unset fields keep defaults")
}

func TestLoadMissingFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := config.LoadFile(filepath.Join(dir, "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, config.Default, *cfg)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"lockdown":`), 0644))

	_, err := config.LoadFile(path)
	var invalid *config.InvalidConfig
	assert.ErrorAs(t, err, &invalid)
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"lockdown":"classic","preview":3}`), 0644))

	t.Setenv(config.EnvLockdown, "infinite")
	t.Setenv(config.EnvPreview, "6")
	t.Setenv(config.EnvSeed, "42")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, tetris.Infinite, cfg.LockdownMode())
	assert.Equal(t, 6, cfg.Preview)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TETRIS_LEVEL=3\nTETRIS_LOG_LEVEL=debug\n"), 0644))

	cfg, err := config.LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Level)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvMalformed(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvPreview, "many")

	_, err := config.LoadFile("")
	var invalid *config.InvalidConfig
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), config.EnvPreview)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown lockdown", func(c *config.Config) { c.Lockdown = "sticky" }},
		{"preview too short", func(c *config.Config) { c.Preview = tetris.MinPreview - 1 }},
		{"preview too long", func(c *config.Config) { c.Preview = config.MaxPreview + 1 }},
		{"level zero", func(c *config.Config) { c.Level = 0 }},
		{"level past table", func(c *config.Config) { c.Level = tetris.MaxLevel + 1 }},
		{"unknown log level", func(c *config.Config) { c.LogLevel = "chatty" }},
		{"negative autoplay", func(c *config.Config) { c.Autoplay.DropEvery = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default
			tt.mutate(&cfg)
			var invalid *config.InvalidConfig
			assert.ErrorAs(t, cfg.Validate(), &invalid)
		})
	}

	cfg := config.Default
	assert.NoError(t, cfg.Validate())
}

func TestSaveFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")

	cfg := config.Default
	cfg.Lockdown = "infinite"
	cfg.Seed = 7
	require.NoError(t, cfg.SaveFile(path))

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}
