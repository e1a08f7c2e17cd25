// Package main is the entry point for dungeonview.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeonview/internal/game"
)

var (
	configPath string
	floorsPath string
	redisAddr  string
	redisKey   string
	verbose    bool

	cfg game.Config
)

var rootCmd = &cobra.Command{
	Use:   "dungeonview",
	Short: "First-person dungeon viewer",
	Long: `dungeonview renders a first-person view down the corridors of a tile maze
and lets a party explore its floors from the terminal.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&floorsPath, "floors", "", "floors JSON file (default: embedded floors)")
	flags.StringVar(&redisAddr, "redis", "", "load floors from the Redis server at this address")
	flags.StringVar(&redisKey, "redis-key", "", "Redis hash holding the floors")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(floorsCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig resolves settings: defaults, then the config file, then the
// environment, then flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	// Load .env file for local development. Not fatal: env vars might be
	// set directly.
	_ = godotenv.Load()

	var err error
	cfg, err = game.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("floors") {
		cfg.FloorsPath = floorsPath
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = redisAddr
	}
	if flags.Changed("redis-key") {
		cfg.RedisKey = redisKey
	}
	return cfg.Validate()
}

// newLogger returns a text logger on stderr for headless commands.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
