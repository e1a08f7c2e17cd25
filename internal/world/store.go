package world

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/dungeonview/internal/telemetry"
)

// ErrNotFound is returned when a floor source holds no floor data.
var ErrNotFound = errors.New("floor data not found")

// FloorSource supplies persisted floor data.
type FloorSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads floor data from a file on disk.
type FileSource struct {
	Path string
}

// Open opens the floors file.
func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open floors file %s: %w", s.Path, err)
	}
	return f, nil
}

// LevelStore is a depth-indexed registry of floors. It is filled once by Load
// and is read-only afterwards, so concurrent readers need no locking.
type LevelStore struct {
	levels map[int]*Level
	loaded bool
	logger *slog.Logger
}

// NewLevelStore creates an empty, unloaded store. A nil logger discards output.
func NewLevelStore(logger *slog.Logger) *LevelStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LevelStore{
		levels: make(map[int]*Level),
		logger: logger,
	}
}

// NewLevelStoreFrom creates a loaded store holding the given floors.
// Later floors with a depth already present are ignored.
func NewLevelStoreFrom(levels ...*Level) *LevelStore {
	s := NewLevelStore(nil)
	for _, l := range levels {
		if _, dup := s.levels[l.Depth()]; !dup {
			s.levels[l.Depth()] = l
		}
	}
	s.loaded = true
	return s
}

// LoadFrom opens src and loads it. See Load.
func (s *LevelStore) LoadFrom(ctx context.Context, src FloorSource) error {
	rc, err := src.Open(ctx)
	if err != nil {
		s.reset()
		s.logger.Warn("floor source unavailable", "error", err)
		return err
	}
	defer rc.Close()

	return s.Load(ctx, rc)
}

// Load parses persisted floors from r. If the document cannot be read or
// decoded the store is left unloaded and every lookup misses. A floor that
// fails validation is skipped and its depth stays absent.
func (s *LevelStore) Load(ctx context.Context, r io.Reader) error {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "levelstore.load")
	defer span.End()

	startTime := time.Now()
	s.reset()

	// Floors are decoded one by one so a single bad entry cannot reject
	// the whole document.
	var file struct {
		Floors []json.RawMessage `json:"floors"`
	}
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		err = fmt.Errorf("failed to parse floors: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		s.logger.Warn("floor data rejected", "error", err)
		return err
	}

	skipped := 0
	for i, raw := range file.Floors {
		var rec FloorRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			skipped++
			s.logger.Warn("skipping floor", "index", i, "error", fmt.Errorf("%w: %v", ErrMalformedFloor, err))
			continue
		}
		level, err := rec.Level()
		if err != nil {
			skipped++
			s.logger.Warn("skipping floor", "index", i, "depth", rec.Depth, "error", err)
			continue
		}
		if _, dup := s.levels[rec.Depth]; dup {
			skipped++
			s.logger.Warn("skipping duplicate floor", "index", i, "depth", rec.Depth)
			continue
		}
		s.levels[rec.Depth] = level
	}
	s.loaded = true

	span.SetAttributes(
		attribute.Int("levelstore.floors", len(s.levels)),
		attribute.Int("levelstore.skipped", skipped),
		attribute.Int64("levelstore.load_ms", time.Since(startTime).Milliseconds()),
	)
	s.logger.Info("floors loaded", "floors", len(s.levels), "skipped", skipped)

	return nil
}

// reset drops every floor and marks the store unloaded.
func (s *LevelStore) reset() {
	s.levels = make(map[int]*Level)
	s.loaded = false
}

// Loaded reports whether floor data was read successfully.
func (s *LevelStore) Loaded() bool {
	return s.loaded
}

// Get returns the floor at depth, or false if none is loaded.
func (s *LevelStore) Get(depth int) (*Level, bool) {
	if !s.loaded {
		return nil, false
	}
	l, ok := s.levels[depth]
	return l, ok
}

// Depths returns every loaded depth in ascending order.
func (s *LevelStore) Depths() []int {
	depths := make([]int, 0, len(s.levels))
	for d := range s.levels {
		depths = append(depths, d)
	}
	slices.Sort(depths)
	return depths
}

// Levels returns every loaded floor ordered by depth.
func (s *LevelStore) Levels() []*Level {
	depths := s.Depths()
	levels := make([]*Level, 0, len(depths))
	for _, d := range depths {
		levels = append(levels, s.levels[d])
	}
	return levels
}

// Count returns the number of loaded floors.
func (s *LevelStore) Count() int {
	return len(s.levels)
}
