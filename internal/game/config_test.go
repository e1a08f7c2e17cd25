package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonview/internal/view"
	"github.com/samdwyer/dungeonview/internal/world"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dungeonview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.DarkViewDepth)
	assert.Equal(t, 6, cfg.LightViewDepth)
	assert.Equal(t, float32(view.DefaultDarkness), cfg.Darkness)
	assert.True(t, cfg.FrameOpenDoors)
	assert.Equal(t, -1, cfg.Start.Depth)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
floors_path: floors.json
start:
  depth: -2
  x: 3
  z: 1
  facing: west
light_view_depth: 5
frame_open_doors: false
palette:
  wall: "#102030"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "floors.json", cfg.FloorsPath)
	assert.Equal(t, StartConfig{Depth: -2, X: 3, Z: 1, Facing: "west"}, cfg.Start)
	assert.Equal(t, 3, cfg.DarkViewDepth, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.LightViewDepth)
	assert.False(t, cfg.FrameOpenDoors)

	facing, err := cfg.StartFacing()
	require.NoError(t, err)
	assert.Equal(t, world.West, facing)

	palette, err := cfg.Palette.Palette()
	require.NoError(t, err)
	assert.Equal(t, view.Color{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, palette.Wall)
	assert.Equal(t, view.DefaultPalette().Floor, palette.Floor)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "no_such_key: 1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "dark_view_depth: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "start:\n  facing: up\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "palette:\n  door: \"#zz0000\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "darkness: 1.5\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvFloors:    "/srv/floors.json",
		EnvRedisAddr: "localhost:6379",
		EnvRedisKey:  "crypt:floors",
		EnvDepth:     "-3",
	}
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "/srv/floors.json", cfg.FloorsPath)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "crypt:floors", cfg.RedisKey)
	assert.Equal(t, -3, cfg.Start.Depth)

	cfg = DefaultConfig()
	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvDepth {
			return "deep"
		}
		return ""
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuilderOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameOpenDoors = false

	opts, err := cfg.BuilderOptions()
	require.NoError(t, err)

	level := world.MustParseLayout(world.LevelInfo{},
		"+-+-+",
		"|.O.|",
		"+-+-+",
	)
	views := view.NewBuilder(opts...).Build(level, world.Coordinate{}, world.East, 3)
	require.Len(t, views, 2)
	assert.Nil(t, views[0].BackDoor)
}
