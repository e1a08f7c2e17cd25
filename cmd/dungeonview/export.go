package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	redisclient "github.com/samdwyer/dungeonview/internal/redis"
	"github.com/samdwyer/dungeonview/internal/world"
)

var (
	exportOut   string
	exportRedis string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the loaded floors as JSON or into Redis",
	Long: `Write every loaded floor in the floors file format to stdout or a file.
With --to-redis, store them in a Redis hash instead, one entry per depth.`,
	RunE: runExport,
}

func init() {
	flags := exportCmd.Flags()
	flags.StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	flags.StringVar(&exportRedis, "to-redis", "", "Redis address to store the floors in")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	levels := store.Levels()

	if exportRedis != "" {
		client, err := redisclient.NewClient(exportRedis, nil)
		if err != nil {
			return err
		}
		defer client.Close()

		repo, err := redisclient.NewFloorRepository(&redisclient.FloorRepositoryConfig{
			Client: client,
			Key:    cfg.RedisKey,
		})
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, levels...); err != nil {
			return err
		}
		logger.Info("exported floors to redis", "addr", exportRedis, "key", repo.Key(), "floors", len(levels))
		fmt.Fprintf(cmd.OutOrStdout(), "stored %d floors in %s\n", len(levels), repo.Key())
		return nil
	}

	data, err := world.MarshalFloors(levels)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if exportOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	return nil
}
