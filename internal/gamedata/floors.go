package gamedata

import (
	"context"
	"io"
	"log/slog"

	"github.com/samdwyer/dungeonview/internal/world"
)

// floorsFile is the embedded set of authored floors.
const floorsFile = "floors.json"

// EmbeddedSource serves the floors compiled into the binary.
type EmbeddedSource struct{}

// Open opens the embedded floors document.
func (EmbeddedSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return dataFS.Open(floorsFile)
}

// LoadLevelStore builds a store from the embedded floors. They ship with
// the binary, so they are first decoded strictly and any unknown key fails
// the load.
func LoadLevelStore(ctx context.Context, logger *slog.Logger) (*world.LevelStore, error) {
	store := world.NewLevelStore(logger)
	if _, err := Load[world.FloorsFile](floorsFile); err != nil {
		return store, err
	}
	if err := store.LoadFrom(ctx, EmbeddedSource{}); err != nil {
		return store, err
	}
	return store, nil
}
