package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var floorsMap bool

var floorsCmd = &cobra.Command{
	Use:   "floors",
	Short: "List the loaded floors",
	RunE:  runFloors,
}

func init() {
	floorsCmd.Flags().BoolVar(&floorsMap, "map", false, "print an overhead map of each floor")
}

func runFloors(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context(), cfg, newLogger())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	levels := store.Levels()
	// Surface first.
	for i := len(levels) - 1; i >= 0; i-- {
		l := levels[i]
		info := l.Info()

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "B%d\t%s\t%s\t%dx%d\t%d tiles\torigin %s\n",
			-info.Depth, info.Dungeon, info.Type, info.Size.Width, info.Size.Height, l.Len(), info.Origin)
		if err := tw.Flush(); err != nil {
			return err
		}

		if floorsMap {
			for _, row := range l.Layout() {
				fmt.Fprintln(out, row)
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}
