package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vortex/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, game.DefaultTuning(), cfg.Tuning())
	assert.Equal(t, game.Arena{Width: 1280, Height: 720}, cfg.Arena())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "vortex.toml", `
[window]
width = 800
height = 600

[game]
enemy_speed = 2.5
spawn_interval = "750ms"

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "Vortex", cfg.Window.Title, "unset keys keep their defaults")
	assert.Equal(t, 2.5, cfg.Tuning().EnemySpeed)
	assert.Equal(t, 750*time.Millisecond, cfg.Tuning().SpawnInterval)
	assert.Equal(t, 16.0, cfg.Tuning().PlayerRadius)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "vortex.yaml", `
game:
  score_per_hit: 250
  fragment_lifetime: 1s
debug:
  enabled: true
sim:
  seed: 42
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Game.ScorePerHit)
	assert.Equal(t, time.Second, cfg.Game.FragmentLifetime)
	assert.True(t, cfg.Debug.Enabled)
	assert.Equal(t, uint64(42), cfg.Sim.Seed)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "vortex.ini", "width=1"))
		assert.ErrorContains(t, err, "unsupported format")
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(writeFile(t, "vortex.toml", "[window\nwidth = "))
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeFile(t, "vortex.toml", "[window]\nwidth = 0\n[logging]\nformat = \"xml\"\n"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "window size must be positive")
		assert.ErrorContains(t, err, "logging.format")
	})
}

func TestValidateJoinsViolations(t *testing.T) {
	cfg := Default()
	cfg.Game.EnemyMinRadius = 40
	cfg.Assets.HitVolume = 2
	cfg.Sim.FireEvery = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "enemy_min_radius")
	assert.ErrorContains(t, err, "assets.hit_volume")
	assert.ErrorContains(t, err, "sim.fire_every")
}

func TestResolve(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		path := writeFile(t, "custom.yml", "window:\n  title: Custom\n")
		t.Setenv(EnvPath, path)

		cfg, used, err := Resolve()
		require.NoError(t, err)
		assert.Equal(t, path, used)
		assert.Equal(t, "Custom", cfg.Window.Title)
	})

	t.Run("env override missing", func(t *testing.T) {
		t.Setenv(EnvPath, filepath.Join(t.TempDir(), "nope.toml"))

		_, _, err := Resolve()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("default path missing", func(t *testing.T) {
		t.Setenv(EnvPath, "")
		t.Chdir(t.TempDir())

		cfg, used, err := Resolve()
		require.NoError(t, err)
		assert.Empty(t, used)
		assert.Equal(t, Default(), cfg)
	})
}

func TestShippedConfigMatchesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
