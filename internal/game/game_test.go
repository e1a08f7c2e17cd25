package game

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonview/internal/ui"
	"github.com/samdwyer/dungeonview/internal/world"
)

func upperFloor() *world.Level {
	return world.MustParseLayout(world.LevelInfo{Dungeon: "Test Crypt", Depth: -1, Origin: world.Coordinate{Y: -1}},
		"+-+-+-+",
		"|. . >|",
		"+ +-+D+",
		"|.|t .|",
		"+-+-+-+",
	)
}

func lowerFloor() *world.Level {
	return world.MustParseLayout(world.LevelInfo{Dungeon: "Test Crypt", Depth: -2, Origin: world.Coordinate{Y: -2}},
		"+-+-+-+",
		"|. . <|",
		"+-+-+ +",
		"|#|# .|",
		"+-+-+-+",
	)
}

func newTestScreen(t *testing.T) (*ui.Screen, tcell.SimulationScreen) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(ss)
	require.NoError(t, err)
	ss.SetSize(40, 21) // Init resets the simulation size, so resize after it
	t.Cleanup(screen.Close)
	return screen, ss
}

func newTestGame(t *testing.T, levels ...*world.Level) *Game {
	t.Helper()
	if len(levels) == 0 {
		levels = []*world.Level{upperFloor(), lowerFloor()}
	}
	screen, _ := newTestScreen(t)
	g, err := New(DefaultConfig(), world.NewLevelStoreFrom(levels...), screen, nil)
	require.NoError(t, err)
	return g
}

func press(g *Game, r rune) {
	g.handleKeyEvent(context.Background(), tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func pressKey(g *Game, k tcell.Key) {
	g.handleKeyEvent(context.Background(), tcell.NewEventKey(k, 0, tcell.ModNone))
}

func TestNewPlacesPartyAtStart(t *testing.T) {
	g := newTestGame(t)

	p := g.Party()
	assert.Equal(t, world.Coordinate{X: 0, Y: -1, Z: 0}, p.Pos)
	assert.Equal(t, -1, p.Depth)
	assert.Equal(t, world.North, p.Facing)
	assert.False(t, p.Lit)
	assert.Equal(t, StateExplore, g.State())
}

func TestNewErrors(t *testing.T) {
	screen, _ := newTestScreen(t)

	_, err := New(DefaultConfig(), world.NewLevelStoreFrom(lowerFloor()), screen, nil)
	assert.ErrorIs(t, err, ErrNoFloor)

	cfg := DefaultConfig()
	cfg.Start.X = 1
	cfg.Start.Z = 0
	cfg.Start.Depth = -2
	_, err = New(cfg, world.NewLevelStoreFrom(lowerFloor()), screen, nil)
	assert.ErrorIs(t, err, ErrNoStart)

	cfg = DefaultConfig()
	cfg.DarkViewDepth = 0
	_, err = New(cfg, world.NewLevelStoreFrom(upperFloor()), screen, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMovementThroughMaze(t *testing.T) {
	g := newTestGame(t)
	p := g.Party()

	press(g, 'w')
	assert.Equal(t, world.Coordinate{X: 0, Y: -1, Z: 1}, p.Pos)

	press(g, 'd')
	assert.Equal(t, world.East, p.Facing)
	pressKey(g, tcell.KeyUp)
	press(g, 'w')
	assert.Equal(t, world.Coordinate{X: 2, Y: -1, Z: 1}, p.Pos)
	assert.Equal(t, "Stairs lead down.", g.Status())

	// Doors never block movement.
	pressKey(g, tcell.KeyRight)
	assert.Equal(t, world.South, p.Facing)
	press(g, 'w')
	assert.Equal(t, world.Coordinate{X: 2, Y: -1, Z: 0}, p.Pos)

	press(g, 'd')
	press(g, 'w')
	assert.Equal(t, world.Coordinate{X: 1, Y: -1, Z: 0}, p.Pos)
	assert.Equal(t, "Something glitters on the ground.", g.Status())
}

func TestWallsBlockMovement(t *testing.T) {
	g := newTestGame(t)
	p := g.Party()
	start := p.Pos

	press(g, 'd')
	press(g, 'w')
	assert.Equal(t, start, p.Pos)
	assert.Equal(t, "The way is blocked.", g.Status())

	// Backing out of the maze is blocked too.
	press(g, 'a')
	press(g, 's')
	assert.Equal(t, start, p.Pos)
	assert.Equal(t, world.North, p.Facing)
}

func TestStepBackKeepsFacing(t *testing.T) {
	g := newTestGame(t)
	p := g.Party()

	press(g, 'w')
	pressKey(g, tcell.KeyDown)
	assert.Equal(t, world.Coordinate{X: 0, Y: -1, Z: 0}, p.Pos)
	assert.Equal(t, world.North, p.Facing)
}

func TestStairs(t *testing.T) {
	g := newTestGame(t)
	p := g.Party()

	press(g, '>')
	assert.Equal(t, -1, p.Depth)
	assert.Contains(t, g.Status(), "no stairs down")

	press(g, 'w')
	press(g, 'd')
	press(g, 'w')
	press(g, 'w')
	press(g, '>')
	assert.Equal(t, -2, p.Depth)
	assert.Equal(t, world.Coordinate{X: 2, Y: -2, Z: 1}, p.Pos)
	assert.Contains(t, g.Status(), "B2")

	press(g, '<')
	assert.Equal(t, -1, p.Depth)
	assert.Equal(t, world.Coordinate{X: 2, Y: -1, Z: 1}, p.Pos)
}

func TestStairsToMissingFloor(t *testing.T) {
	g := newTestGame(t, upperFloor())
	p := g.Party()

	press(g, 'w')
	press(g, 'd')
	press(g, 'w')
	press(g, 'w')
	press(g, '>')
	assert.Equal(t, -1, p.Depth)
	assert.Equal(t, world.Coordinate{X: 2, Y: -1, Z: 1}, p.Pos)
	assert.Equal(t, "The stairs lead nowhere.", g.Status())
}

func TestViewsCachedUntilPoseChanges(t *testing.T) {
	g := newTestGame(t)
	ctx := context.Background()

	first := g.Views(ctx)
	require.NotEmpty(t, first)
	again := g.Views(ctx)
	assert.Same(t, &first[0], &again[0])

	// Toggling the map does not change the pose.
	press(g, 'm')
	press(g, 'm')
	assert.Same(t, &first[0], &g.Views(ctx)[0])

	press(g, 'l')
	lit := g.Views(ctx)
	assert.NotSame(t, &first[0], &lit[0])
}

func TestLightExtendsViewDepth(t *testing.T) {
	corridor := world.MustParseLayout(world.LevelInfo{Depth: -1},
		"+-+-+-+-+-+-+-+-+",
		"|. . . . . . . .|",
		"+-+-+-+-+-+-+-+-+",
	)
	screen, _ := newTestScreen(t)
	cfg := DefaultConfig()
	cfg.Start.Facing = "east"
	g, err := New(cfg, world.NewLevelStoreFrom(corridor), screen, nil)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Len(t, g.Views(ctx), 3)
	press(g, 'l')
	assert.Len(t, g.Views(ctx), 6)
	press(g, 'l')
	assert.Len(t, g.Views(ctx), 3)
}

func TestQuitKeys(t *testing.T) {
	for _, quit := range []func(*Game){
		func(g *Game) { press(g, 'q') },
		func(g *Game) { pressKey(g, tcell.KeyEscape) },
	} {
		g := newTestGame(t)
		quit(g)
		assert.False(t, g.running)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen, ss := newTestScreen(t)
	g, err := New(DefaultConfig(), world.NewLevelStoreFrom(upperFloor()), screen, nil)
	require.NoError(t, err)

	ss.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.NoError(t, g.Run(context.Background()))
}

func TestRenderMapShowsParty(t *testing.T) {
	screen, _ := newTestScreen(t)
	g, err := New(DefaultConfig(), world.NewLevelStoreFrom(upperFloor()), screen, nil)
	require.NoError(t, err)

	press(g, 'm')
	require.Equal(t, StateMap, g.State())
	g.Render(context.Background())

	// 40x20 viewport, 7x5 map: origin at column 16, row 7. The start cell
	// is the bottom-left cell.
	ch, _ := screen.Content(16+1, 7+3)
	assert.Equal(t, '^', ch)
}

func TestRenderMapOffsetOrigin(t *testing.T) {
	level := world.MustParseLayout(world.LevelInfo{Dungeon: "Annex", Depth: -1, Origin: world.Coordinate{X: 5, Y: -1, Z: 3}},
		"+-+-+-+",
		"|. . >|",
		"+ +-+D+",
		"|.|t .|",
		"+-+-+-+",
	)
	screen, _ := newTestScreen(t)
	cfg := DefaultConfig()
	cfg.Start.X, cfg.Start.Z = 5, 3
	g, err := New(cfg, world.NewLevelStoreFrom(level), screen, nil)
	require.NoError(t, err)

	press(g, 'w')
	press(g, 'd')
	press(g, 'w')
	require.Equal(t, world.Coordinate{X: 6, Y: -1, Z: 4}, g.Party().Pos)

	press(g, 'm')
	g.Render(context.Background())

	// Middle cell of the top row.
	ch, _ := screen.Content(16+3, 7+1)
	assert.Equal(t, '>', ch)
}

func TestStatusLine(t *testing.T) {
	g := newTestGame(t)
	assert.Equal(t, "Test Crypt B1 (0,-1,0) facing north, dark", g.statusLine())

	press(g, 'l')
	press(g, 'd')
	press(g, 'w')
	assert.Equal(t, "Test Crypt B1 (0,-1,0) facing east, lit | The way is blocked.", g.statusLine())
}
