package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeonview/internal/entity"
	"github.com/samdwyer/dungeonview/internal/telemetry"
	"github.com/samdwyer/dungeonview/internal/ui"
	"github.com/samdwyer/dungeonview/internal/view"
	"github.com/samdwyer/dungeonview/internal/world"
)

var (
	// ErrNoFloor is returned when the starting floor is not in the store.
	ErrNoFloor = errors.New("floor not loaded")
	// ErrNoStart is returned when the starting cell is not part of the maze.
	ErrNoStart = errors.New("start cell is solid rock")
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	store    *world.LevelStore
	builder  *view.Builder
	screen   *ui.Screen
	renderer *ui.Renderer
	logger   *slog.Logger
	tracer   trace.Tracer

	party   *entity.Party
	level   *world.Level
	state   State
	running bool

	// views is the strip for the party's current pose; dirty marks it stale.
	views  []view.TileView
	dirty  bool
	status string
}

// New creates a game over store, drawing to screen. A nil logger discards
// output.
func New(cfg Config, store *world.LevelStore, screen *ui.Screen, logger *slog.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts, err := cfg.BuilderOptions()
	if err != nil {
		return nil, err
	}
	facing, err := cfg.StartFacing()
	if err != nil {
		return nil, err
	}

	level, ok := store.Get(cfg.Start.Depth)
	if !ok {
		return nil, fmt.Errorf("%w: depth %d", ErrNoFloor, cfg.Start.Depth)
	}
	pos := world.Coordinate{X: cfg.Start.X, Y: level.Info().Origin.Y, Z: cfg.Start.Z}
	if _, ok := level.TileAt(pos); !ok {
		return nil, fmt.Errorf("%w: %s on floor %d", ErrNoStart, pos, cfg.Start.Depth)
	}

	return &Game{
		cfg:      cfg,
		store:    store,
		builder:  view.NewBuilder(opts...),
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		logger:   logger,
		tracer:   telemetry.Tracer("game"),
		party:    entity.NewParty(pos, cfg.Start.Depth, facing),
		level:    level,
		state:    StateExplore,
		running:  true,
		dirty:    true,
	}, nil
}

// Party returns the exploring party.
func (g *Game) Party() *entity.Party {
	return g.party
}

// State returns what the game is showing.
func (g *Game) State() State {
	return g.state
}

// Status returns the last event message.
func (g *Game) Status() string {
	return g.status
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	_, span := g.tracer.Start(ctx, "game.init")
	info := g.level.Info()
	span.SetAttributes(
		attribute.String("dungeon.name", info.Dungeon),
		attribute.Int("floor.depth", info.Depth),
		attribute.Int("floor.tiles", g.level.Len()),
		attribute.String("party.start", g.party.Pos.String()),
	)
	span.End()
	g.logger.Info("game started", "dungeon", info.Dungeon, "depth", info.Depth, "pos", g.party.Pos.String())

	for g.running {
		if err := ctx.Err(); err != nil {
			return err
		}

		g.Render(ctx)

		// Handle input (blocking)
		g.handleInput(ctx)
	}

	return nil
}

// Views returns the strip for the party's current pose, rebuilding it only
// after the party moved, turned, changed floor or toggled its light.
func (g *Game) Views(ctx context.Context) []view.TileView {
	if !g.dirty {
		return g.views
	}

	depth := g.party.ViewDepth(g.cfg.DarkViewDepth, g.cfg.LightViewDepth)
	_, span := g.tracer.Start(ctx, "view.build")
	g.views = g.builder.Build(g.level, g.party.Pos, g.party.Facing, depth)
	span.SetAttributes(
		attribute.String("party.pos", g.party.Pos.String()),
		attribute.String("party.facing", g.party.Facing.String()),
		attribute.Int("view.depth", depth),
		attribute.Int("view.cells", len(g.views)),
	)
	span.End()

	g.dirty = false
	return g.views
}

// Render draws the current state and status line.
func (g *Game) Render(ctx context.Context) {
	switch g.state {
	case StateMap:
		info := g.level.Info()
		rel := g.party.Pos.Sub(info.Origin)
		row := 2*(info.Size.Height-1-rel.Z) + 1
		g.renderer.RenderMap(g.level.Layout(), 2*rel.X+1, row, facingMarker(g.party.Facing))
	default:
		g.renderer.Draw(g.Views(ctx))
	}
	g.renderer.RenderStatus(g.statusLine())
	g.renderer.Show()
}

func (g *Game) statusLine() string {
	info := g.level.Info()
	light := "dark"
	if g.party.Lit {
		light = "lit"
	}
	line := fmt.Sprintf("%s B%d %s facing %s, %s", info.Dungeon, -info.Depth, g.party.Pos, g.party.Facing, light)
	if g.status != "" {
		line += " | " + g.status
	}
	return line
}

func facingMarker(d world.Direction) rune {
	switch d {
	case world.North:
		return '^'
	case world.East:
		return '>'
	case world.South:
		return 'v'
	default:
		return '<'
	}
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized.
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(ctx, g.party.Facing)
	case tcell.KeyDown:
		g.tryMove(ctx, g.party.Facing.Opposite())
	case tcell.KeyLeft:
		g.turn(g.party.TurnLeft)
	case tcell.KeyRight:
		g.turn(g.party.TurnRight)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'w', 'W':
			g.tryMove(ctx, g.party.Facing)
		case 's', 'S':
			g.tryMove(ctx, g.party.Facing.Opposite())
		case 'a', 'A':
			g.turn(g.party.TurnLeft)
		case 'd', 'D':
			g.turn(g.party.TurnRight)
		case 'l', 'L':
			g.party.ToggleLight()
			g.dirty = true
		case 'm', 'M':
			g.toggleMap()
		case '>':
			g.takeStairs(ctx, world.StairsDown)
		case '<':
			g.takeStairs(ctx, world.StairsUp)
		}
	}
}

func (g *Game) turn(rotate func()) {
	rotate()
	g.status = ""
	g.dirty = true
}

func (g *Game) toggleMap() {
	if g.state == StateMap {
		g.state = StateExplore
	} else {
		g.state = StateMap
	}
}

// tryMove steps the party one cell in dir, keeping its facing. Walls and
// the edge of the maze block; doors do not.
func (g *Game) tryMove(ctx context.Context, dir world.Direction) bool {
	_, span := g.tracer.Start(ctx, "party.move")
	defer span.End()
	span.SetAttributes(
		attribute.String("party.from", g.party.Pos.String()),
		attribute.String("move.direction", dir.String()),
	)

	here, _ := g.level.TileAt(g.party.Pos)
	next := g.party.Ahead(dir)
	tile, ok := g.level.TileAt(next)
	if !here.IsPassable(dir) || !ok {
		span.SetAttributes(attribute.Bool("move.blocked", true))
		g.status = "The way is blocked."
		return false
	}

	g.party.Pos = next
	g.dirty = true
	g.status = arrivalMessage(tile)
	span.SetAttributes(attribute.Bool("move.blocked", false))
	g.logger.Debug("party moved", "pos", next.String(), "facing", g.party.Facing.String())
	return true
}

// takeStairs moves the party one floor up or down when it stands on
// matching stairs. The party keeps its X and Z; a missing floor or a solid
// landing leaves it in place.
func (g *Game) takeStairs(ctx context.Context, want world.Stairs) bool {
	here, _ := g.level.TileAt(g.party.Pos)
	if here.Stairs != want {
		g.status = fmt.Sprintf("There are no stairs %s here.", want)
		return false
	}

	depth := g.party.Depth - 1
	if want == world.StairsUp {
		depth = g.party.Depth + 1
	}

	_, span := g.tracer.Start(ctx, "party.stairs")
	defer span.End()
	span.SetAttributes(
		attribute.Int("floor.from", g.party.Depth),
		attribute.Int("floor.to", depth),
	)

	level, ok := g.store.Get(depth)
	if !ok {
		span.SetAttributes(attribute.Bool("stairs.blocked", true))
		g.status = "The stairs lead nowhere."
		g.logger.Warn("floor missing", "depth", depth)
		return false
	}

	pos := g.party.Pos
	pos.Y = level.Info().Origin.Y
	tile, ok := level.TileAt(pos)
	if !ok {
		span.SetAttributes(attribute.Bool("stairs.blocked", true))
		g.status = "The stairs are caved in."
		g.logger.Warn("stairs land in rock", "depth", depth, "pos", pos.String())
		return false
	}

	g.level = level
	g.party.Pos = pos
	g.party.Depth = depth
	g.dirty = true
	g.status = fmt.Sprintf("You climb %s to B%d.", want, -depth)
	if msg := arrivalMessage(tile); msg != "" {
		g.status += " " + msg
	}
	g.logger.Info("changed floor", "depth", depth, "pos", pos.String())
	return true
}

// arrivalMessage describes the event on a tile the party steps onto.
func arrivalMessage(t world.Tile) string {
	switch t.Event {
	case world.EventTreasure:
		return "Something glitters on the ground."
	case world.EventGravestone:
		return "A gravestone marks a fallen adventurer."
	case world.EventChest:
		return "You find a chest."
	case world.EventEncounter:
		return "You sense something watching."
	}
	switch t.Stairs {
	case world.StairsUp:
		return "Stairs lead up."
	case world.StairsDown:
		return "Stairs lead down."
	}
	return ""
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
