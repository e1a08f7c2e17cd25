package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeonview/internal/gamedata"
	"github.com/samdwyer/dungeonview/internal/view"
	"github.com/samdwyer/dungeonview/internal/world"
)

// Environment variables that override the config file.
const (
	EnvFloors    = "DUNGEONVIEW_FLOORS"
	EnvRedisAddr = "DUNGEONVIEW_REDIS_ADDR"
	EnvRedisKey  = "DUNGEONVIEW_REDIS_KEY"
	EnvDepth     = "DUNGEONVIEW_START_DEPTH"
)

// ErrInvalidConfig is returned when configuration values are out of range.
var ErrInvalidConfig = errors.New("invalid config")

// StartConfig places the party when a game begins.
type StartConfig struct {
	Depth  int    `yaml:"depth"`
	X      int    `yaml:"x"`
	Z      int    `yaml:"z"`
	Facing string `yaml:"facing"`
}

// Config holds game configuration options.
type Config struct {
	// FloorsPath is a floors JSON file. Empty means the embedded floors,
	// unless RedisAddr is set.
	FloorsPath string `yaml:"floors_path"`
	RedisAddr  string `yaml:"redis_addr"`
	RedisKey   string `yaml:"redis_key"`

	Start StartConfig `yaml:"start"`

	// View depths with and without a light source.
	DarkViewDepth  int `yaml:"dark_view_depth"`
	LightViewDepth int `yaml:"light_view_depth"`

	// Darkness is the overlay alpha reached at the view depth.
	Darkness       float32                `yaml:"darkness"`
	FrameOpenDoors bool                   `yaml:"frame_open_doors"`
	Palette        gamedata.PaletteColors `yaml:"palette"`

	// LogFile receives logs while the terminal UI runs. Empty discards them.
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Start: StartConfig{
			Depth:  -1,
			Facing: world.North.String(),
		},
		DarkViewDepth:  3,
		LightViewDepth: 6,
		Darkness:       view.DefaultDarkness,
		FrameOpenDoors: true,
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	r, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("error loading config %s: %w", path, err)
	}
	defer r.Close()

	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("error reading config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from environment variables read via getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvFloors); v != "" {
		c.FloorsPath = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.RedisAddr = v
	}
	if v := getenv(EnvRedisKey); v != "" {
		c.RedisKey = v
	}
	if v := getenv(EnvDepth); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvDepth, v, err)
		}
		c.Start.Depth = depth
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.DarkViewDepth <= 0 || c.LightViewDepth <= 0 {
		return fmt.Errorf("%w: view depths must be positive (dark %d, light %d)",
			ErrInvalidConfig, c.DarkViewDepth, c.LightViewDepth)
	}
	if c.Darkness < 0 || c.Darkness > 1 {
		return fmt.Errorf("%w: darkness %v outside [0,1]", ErrInvalidConfig, c.Darkness)
	}
	if _, err := c.StartFacing(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Palette.Palette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// StartFacing parses the configured starting direction.
func (c Config) StartFacing() (world.Direction, error) {
	if c.Start.Facing == "" {
		return world.North, nil
	}
	return world.ParseDirection(c.Start.Facing)
}

// BuilderOptions converts the rendering settings into view options.
func (c Config) BuilderOptions() ([]view.Option, error) {
	palette, err := c.Palette.Palette()
	if err != nil {
		return nil, err
	}
	return []view.Option{
		view.WithPalette(palette),
		view.WithDarkness(c.Darkness),
		view.WithOpenDoorFraming(c.FrameOpenDoors),
	}, nil
}
