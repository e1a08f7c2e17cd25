package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samdwyer/dungeonview/internal/gamedata"
	"github.com/samdwyer/dungeonview/internal/game"
	redisclient "github.com/samdwyer/dungeonview/internal/redis"
	"github.com/samdwyer/dungeonview/internal/world"
)

// floorSource picks where floors come from: Redis or a file. A nil source
// means the embedded set. The returned closer releases any client.
func floorSource(cfg game.Config) (world.FloorSource, func(), error) {
	switch {
	case cfg.RedisAddr != "":
		client, err := redisclient.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, nil, err
		}
		repo, err := redisclient.NewFloorRepository(&redisclient.FloorRepositoryConfig{
			Client: client,
			Key:    cfg.RedisKey,
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, func() { _ = client.Close() }, nil
	case cfg.FloorsPath != "":
		return world.FileSource{Path: cfg.FloorsPath}, func() {}, nil
	default:
		return nil, func() {}, nil
	}
}

// openStore loads every floor from the configured source.
func openStore(ctx context.Context, cfg game.Config, logger *slog.Logger) (*world.LevelStore, error) {
	src, closeSrc, err := floorSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	var store *world.LevelStore
	if src == nil {
		store, err = gamedata.LoadLevelStore(ctx, logger)
	} else {
		store = world.NewLevelStore(logger)
		err = store.LoadFrom(ctx, src)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load floors: %w", err)
	}
	if store.Count() == 0 {
		return nil, fmt.Errorf("%w: no valid floors", world.ErrMalformedFloor)
	}
	return store, nil
}
