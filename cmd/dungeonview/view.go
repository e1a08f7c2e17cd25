package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeonview/internal/view"
	"github.com/samdwyer/dungeonview/internal/world"
)

var (
	viewFloor  int
	viewX      int
	viewZ      int
	viewFacing string
	viewLit    bool
	viewDepth  int
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the visible cells from a position",
	Long: `Print the strip of cells visible from a position, nearest first,
one line per cell. Defaults to the configured start position.`,
	RunE: runView,
}

func init() {
	flags := viewCmd.Flags()
	flags.IntVar(&viewFloor, "floor", 0, "floor depth (default: configured start floor)")
	flags.IntVar(&viewX, "x", 0, "cell X")
	flags.IntVar(&viewZ, "z", 0, "cell Z")
	flags.StringVar(&viewFacing, "facing", "", "facing direction (default: configured start facing)")
	flags.BoolVar(&viewLit, "lit", false, "use the lit view depth")
	flags.IntVar(&viewDepth, "view-depth", 0, "override the view depth")
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	flags := cmd.Flags()
	floor, x, z := cfg.Start.Depth, cfg.Start.X, cfg.Start.Z
	if flags.Changed("floor") {
		floor = viewFloor
	}
	if flags.Changed("x") {
		x = viewX
	}
	if flags.Changed("z") {
		z = viewZ
	}

	facing, err := cfg.StartFacing()
	if err != nil {
		return err
	}
	if viewFacing != "" {
		if facing, err = world.ParseDirection(viewFacing); err != nil {
			return err
		}
	}

	depth := cfg.DarkViewDepth
	if viewLit {
		depth = cfg.LightViewDepth
	}
	if viewDepth > 0 {
		depth = viewDepth
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	level, ok := store.Get(floor)
	if !ok {
		return fmt.Errorf("%w: floor %d", world.ErrNotFound, floor)
	}

	opts, err := cfg.BuilderOptions()
	if err != nil {
		return err
	}
	pos := world.Coordinate{X: x, Y: level.Info().Origin.Y, Z: z}
	views := view.NewBuilder(opts...).Build(level, pos, facing, depth)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s B%d %s facing %s, depth %d: %d cells\n",
		level.Info().Dungeon, -floor, pos, facing, depth, len(views))
	for _, v := range views {
		fmt.Fprintln(out, v)
	}
	return nil
}
