package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/samdwyer/dungeonview/internal/world"
)

// DefaultFloorsKey is the hash holding one floor record per depth.
const DefaultFloorsKey = "dungeonview:floors"

// FloorRepository persists floors in a Redis hash keyed by depth. It
// implements world.FloorSource.
type FloorRepository struct {
	client Client
	key    string
}

// FloorRepositoryConfig configures a FloorRepository.
type FloorRepositoryConfig struct {
	Client Client
	Key    string // Defaults to DefaultFloorsKey
}

// Validate checks the configuration.
func (cfg *FloorRepositoryConfig) Validate() error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.New("client cannot be nil")
	}
	return nil
}

// NewFloorRepository creates a Redis-backed floor repository.
func NewFloorRepository(cfg *FloorRepositoryConfig) (*FloorRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key := cfg.Key
	if key == "" {
		key = DefaultFloorsKey
	}
	return &FloorRepository{client: cfg.Client, key: key}, nil
}

// Key returns the hash key floors are stored under.
func (r *FloorRepository) Key() string {
	return r.key
}

// Save writes each level's record under its depth, replacing any floor
// already stored at that depth.
func (r *FloorRepository) Save(ctx context.Context, levels ...*world.Level) error {
	if len(levels) == 0 {
		return nil
	}

	fields := make(map[string]any, len(levels))
	for _, l := range levels {
		data, err := json.Marshal(l.Record())
		if err != nil {
			return fmt.Errorf("failed to marshal floor %d: %w", l.Depth(), err)
		}
		fields[strconv.Itoa(l.Depth())] = data
	}

	if err := r.client.HSet(ctx, r.key, fields).Err(); err != nil {
		return fmt.Errorf("failed to save floors to %s: %w", r.key, err)
	}
	return nil
}

// Get fetches the record stored for depth.
func (r *FloorRepository) Get(ctx context.Context, depth int) (world.FloorRecord, error) {
	var rec world.FloorRecord

	raw, err := r.client.HGet(ctx, r.key, strconv.Itoa(depth)).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, fmt.Errorf("%w: floor %d", world.ErrNotFound, depth)
	}
	if err != nil {
		return rec, fmt.Errorf("failed to get floor %d: %w", depth, err)
	}

	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("%w: floor %d: %v", world.ErrMalformedFloor, depth, err)
	}
	return rec, nil
}

// Delete removes the floor stored for depth.
func (r *FloorRepository) Delete(ctx context.Context, depth int) error {
	n, err := r.client.HDel(ctx, r.key, strconv.Itoa(depth)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete floor %d: %w", depth, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: floor %d", world.ErrNotFound, depth)
	}
	return nil
}

// Open assembles every stored floor into one floors document, ordered by
// depth from the surface down. An empty hash reports world.ErrNotFound.
// Entries that are not JSON objects are emitted as null so the loader skips
// just that floor.
func (r *FloorRepository) Open(ctx context.Context) (io.ReadCloser, error) {
	all, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read floors from %s: %w", r.key, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", world.ErrNotFound, r.key)
	}

	fields := make([]string, 0, len(all))
	for f := range all {
		fields = append(fields, f)
	}
	slices.SortFunc(fields, func(a, b string) int {
		da, _ := strconv.Atoi(a)
		db, _ := strconv.Atoi(b)
		return db - da
	})

	var buf bytes.Buffer
	buf.WriteString(`{"floors":[`)
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if raw := strings.TrimSpace(all[f]); strings.HasPrefix(raw, "{") && json.Valid([]byte(raw)) {
			buf.WriteString(raw)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteString("]}")

	return io.NopCloser(&buf), nil
}
