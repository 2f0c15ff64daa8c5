package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/plus3/vortex/game"
)

// DefaultPath is read when VORTEX_CONFIG is unset.
const DefaultPath = "config/vortex.toml"

// EnvPath names the environment variable that overrides DefaultPath.
const EnvPath = "VORTEX_CONFIG"

type Config struct {
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Game    GameConfig    `toml:"game" yaml:"game"`
	Assets  AssetsConfig  `toml:"assets" yaml:"assets"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Debug   DebugConfig   `toml:"debug" yaml:"debug"`
	Sim     SimConfig     `toml:"sim" yaml:"sim"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	TPS    int    `toml:"tps" yaml:"tps"` // host frames per second
}

type GameConfig struct {
	PlayerRadius     float64       `toml:"player_radius" yaml:"player_radius"`
	EnemyMinRadius   float64       `toml:"enemy_min_radius" yaml:"enemy_min_radius"`
	EnemyMaxRadius   float64       `toml:"enemy_max_radius" yaml:"enemy_max_radius"`
	EnemySpeed       float64       `toml:"enemy_speed" yaml:"enemy_speed"`
	ProjectileSpeed  float64       `toml:"projectile_speed" yaml:"projectile_speed"`
	ProjectileRadius float64       `toml:"projectile_radius" yaml:"projectile_radius"`
	FragmentCount    int           `toml:"fragment_count" yaml:"fragment_count"`
	FragmentMaxSpeed float64       `toml:"fragment_max_speed" yaml:"fragment_max_speed"`
	FragmentLifetime time.Duration `toml:"fragment_lifetime" yaml:"fragment_lifetime"`
	ContactThreshold float64       `toml:"contact_threshold" yaml:"contact_threshold"`
	ScorePerHit      int           `toml:"score_per_hit" yaml:"score_per_hit"`
	SpawnInterval    time.Duration `toml:"spawn_interval" yaml:"spawn_interval"`
	GameOverDelay    time.Duration `toml:"game_over_delay" yaml:"game_over_delay"`
	OffscreenMargin  float64       `toml:"offscreen_margin" yaml:"offscreen_margin"`
}

type AssetsConfig struct {
	Background     string  `toml:"background" yaml:"background"`
	Ambient        string  `toml:"ambient" yaml:"ambient"`
	Hit            string  `toml:"hit" yaml:"hit"`
	GameOver       string  `toml:"game_over" yaml:"game_over"`
	AmbientVolume  float64 `toml:"ambient_volume" yaml:"ambient_volume"`
	HitVolume      float64 `toml:"hit_volume" yaml:"hit_volume"`
	GameOverVolume float64 `toml:"game_over_volume" yaml:"game_over_volume"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// SimConfig drives the headless autopilot.
type SimConfig struct {
	Duration  time.Duration `toml:"duration" yaml:"duration"`
	Seed      uint64        `toml:"seed" yaml:"seed"`
	FireEvery time.Duration `toml:"fire_every" yaml:"fire_every"`
	Restarts  int           `toml:"restarts" yaml:"restarts"`
	// Script is a Lua targeting script; empty aims at the nearest enemy.
	Script string `toml:"script" yaml:"script"`
}

// Default returns the stock configuration.
func Default() *Config {
	t := game.DefaultTuning()
	return &Config{
		Window: WindowConfig{
			Title:  "Vortex",
			Width:  1280,
			Height: 720,
			TPS:    60,
		},
		Game: GameConfig{
			PlayerRadius:     t.PlayerRadius,
			EnemyMinRadius:   t.EnemyMinRadius,
			EnemyMaxRadius:   t.EnemyMaxRadius,
			EnemySpeed:       t.EnemySpeed,
			ProjectileSpeed:  t.ProjectileSpeed,
			ProjectileRadius: t.ProjectileRadius,
			FragmentCount:    t.FragmentCount,
			FragmentMaxSpeed: t.FragmentMaxSpeed,
			FragmentLifetime: t.FragmentLifetime,
			ContactThreshold: t.ContactThreshold,
			ScorePerHit:      t.ScorePerHit,
			SpawnInterval:    t.SpawnInterval,
			GameOverDelay:    t.GameOverDelay,
			OffscreenMargin:  t.OffscreenMargin,
		},
		Assets: AssetsConfig{
			Background:     "assets/vortex_bg.jpg",
			Ambient:        "assets/game_music.mp3",
			Hit:            "assets/hit_music.mp3",
			GameOver:       "assets/game_over.mp3",
			AmbientVolume:  0.3,
			HitVolume:      0.9,
			GameOverVolume: 0.9,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Sim: SimConfig{
			Duration:  2 * time.Minute,
			Seed:      1,
			FireEvery: 250 * time.Millisecond,
			Restarts:  3,
		},
	}
}

// Load reads a .toml, .yaml or .yml file over Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the file named by VORTEX_CONFIG, or DefaultPath when unset.
// A missing DefaultPath yields Default; a missing VORTEX_CONFIG file is an error.
func Resolve() (*Config, string, error) {
	if path := os.Getenv(EnvPath); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	cfg, err := Load(DefaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), "", nil
	}
	return cfg, DefaultPath, err
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window.tps must be positive, got %d", c.Window.TPS)

	g := c.Game
	check(g.PlayerRadius > 0, "game.player_radius must be positive")
	check(g.ProjectileRadius > 0, "game.projectile_radius must be positive")
	check(g.EnemyMinRadius > 0 && g.EnemyMinRadius < g.EnemyMaxRadius,
		"game.enemy_min_radius must be positive and below enemy_max_radius (%v, %v)", g.EnemyMinRadius, g.EnemyMaxRadius)
	check(g.EnemySpeed >= 0, "game.enemy_speed must not be negative")
	check(g.ProjectileSpeed > 0, "game.projectile_speed must be positive")
	check(g.FragmentCount >= 0, "game.fragment_count must not be negative")
	check(g.FragmentMaxSpeed >= 0, "game.fragment_max_speed must not be negative")
	check(g.FragmentLifetime > 0, "game.fragment_lifetime must be positive")
	check(g.ScorePerHit > 0, "game.score_per_hit must be positive")
	check(g.SpawnInterval > 0, "game.spawn_interval must be positive")
	check(g.GameOverDelay >= 0, "game.game_over_delay must not be negative")
	check(g.OffscreenMargin >= 0, "game.offscreen_margin must not be negative")

	for name, v := range map[string]float64{
		"ambient_volume":   c.Assets.AmbientVolume,
		"hit_volume":       c.Assets.HitVolume,
		"game_over_volume": c.Assets.GameOverVolume,
	} {
		check(v >= 0 && v <= 1, "assets.%s must be within [0, 1], got %v", name, v)
	}

	check(c.Logging.Format == "json" || c.Logging.Format == "console",
		"logging.format must be json or console, got %q", c.Logging.Format)

	check(c.Sim.Duration > 0, "sim.duration must be positive")
	check(c.Sim.FireEvery > 0, "sim.fire_every must be positive")
	check(c.Sim.Restarts >= 0, "sim.restarts must not be negative")

	return errors.Join(errs...)
}

// Tuning converts the game section.
func (c *Config) Tuning() game.Tuning {
	g := c.Game
	return game.Tuning{
		PlayerRadius:     g.PlayerRadius,
		EnemyMinRadius:   g.EnemyMinRadius,
		EnemyMaxRadius:   g.EnemyMaxRadius,
		EnemySpeed:       g.EnemySpeed,
		ProjectileSpeed:  g.ProjectileSpeed,
		ProjectileRadius: g.ProjectileRadius,
		FragmentCount:    g.FragmentCount,
		FragmentMaxSpeed: g.FragmentMaxSpeed,
		FragmentLifetime: g.FragmentLifetime,
		ContactThreshold: g.ContactThreshold,
		ScorePerHit:      g.ScorePerHit,
		SpawnInterval:    g.SpawnInterval,
		GameOverDelay:    g.GameOverDelay,
		OffscreenMargin:  g.OffscreenMargin,
	}
}

// Arena is the playing field sized to the window.
func (c *Config) Arena() game.Arena {
	return game.Arena{Width: float64(c.Window.Width), Height: float64(c.Window.Height)}
}
