package world_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/samdwyer/dungeonview/internal/world"
)

type LevelStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *world.LevelStore
}

func (s *LevelStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = world.NewLevelStore(nil)
}

func (s *LevelStoreTestSuite) sampleLevels() []*world.Level {
	upper := world.MustParseLayout(world.LevelInfo{Dungeon: "keep", Depth: -1, Origin: world.Coordinate{Y: -1}},
		"+-+-+-+",
		"|.D. $|",
		"+ +-+O+",
		"|> . g|",
		"+-+-+-+",
	)
	lower := world.MustParseLayout(world.LevelInfo{Dungeon: "keep", Depth: -2, Origin: world.Coordinate{X: 3, Y: -2, Z: -4}},
		"+-+-+",
		"|< #|",
		"+ +-+",
		"|! t|",
		"+-+-+",
	)
	return []*world.Level{upper, lower}
}

func (s *LevelStoreTestSuite) TestUnloadedStoreMisses() {
	s.False(s.store.Loaded())
	l, ok := s.store.Get(0)
	s.False(ok)
	s.Nil(l)
	s.Zero(s.store.Count())
}

func (s *LevelStoreTestSuite) TestRoundTrip() {
	levels := s.sampleLevels()
	data, err := world.MarshalFloors(levels)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Load(s.ctx, strings.NewReader(string(data))))
	s.True(s.store.Loaded())
	s.Equal([]int{-2, -1}, s.store.Depths())

	for _, want := range levels {
		got, ok := s.store.Get(want.Depth())
		s.Require().True(ok)
		s.Equal(want.Info(), got.Info())
		s.Equal(want.Len(), got.Len())

		for c, tile := range want.All() {
			loaded, ok := got.TileAt(c)
			s.True(ok, "tile %s missing after reload", c)
			s.Equal(tile, loaded, "tile %s changed after reload", c)
		}
		s.Equal(want.Layout(), got.Layout())
	}
}

func (s *LevelStoreTestSuite) TestMalformedDocumentLeavesStoreUnloaded() {
	err := s.store.Load(s.ctx, strings.NewReader(`{"floors": [`))
	s.Error(err)
	s.False(s.store.Loaded())
	_, ok := s.store.Get(-1)
	s.False(ok)
}

func (s *LevelStoreTestSuite) TestReloadFailureDropsPreviousFloors() {
	data, err := world.MarshalFloors(s.sampleLevels())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Load(s.ctx, strings.NewReader(string(data))))

	s.Error(s.store.Load(s.ctx, strings.NewReader("not json")))
	s.False(s.store.Loaded())
	_, ok := s.store.Get(-1)
	s.False(ok)
}

func (s *LevelStoreTestSuite) TestInvalidFloorIsSkipped() {
	doc := `{"floors": [
		{"dungeon_name": "keep", "depth": -1, "origin": {"x": 0, "y": 0, "z": 0},
		 "size": {"width": 1, "height": 1},
		 "tiles": [{"coordinate": {"x": 0, "y": 0, "z": 0}, "floor": true}]},
		{"dungeon_name": "keep", "depth": -2, "origin": {"x": 0, "y": 0, "z": 0},
		 "size": {"width": 1, "height": 1},
		 "tiles": [{"coordinate": {"x": 4, "y": 0, "z": 0}, "floor": true}]},
		{"dungeon_name": "keep", "depth": -3, "origin": {"x": 0, "y": 0, "z": 0},
		 "size": {"width": 1, "height": 1},
		 "tiles": [{"coordinate": {"x": 0, "y": 0, "z": 0}, "event": "dragon"}]},
		{"dungeon_name": "copy", "depth": -1, "origin": {"x": 0, "y": 0, "z": 0},
		 "size": {"width": 1, "height": 1}, "tiles": []}
	]}`

	s.Require().NoError(s.store.Load(s.ctx, strings.NewReader(doc)))
	s.True(s.store.Loaded())
	s.Equal([]int{-1}, s.store.Depths())

	l, ok := s.store.Get(-1)
	s.Require().True(ok)
	s.Equal("keep", l.Info().Dungeon)
	_, ok = s.store.Get(-2)
	s.False(ok)
	_, ok = s.store.Get(-3)
	s.False(ok)
}

func (s *LevelStoreTestSuite) TestOversizedFloorIsSkipped() {
	doc := `{"floors": [
		{"dungeon_name": "huge", "depth": -1, "origin": {"x": 0, "y": 0, "z": 0},
		 "size": {"width": 4294967296, "height": 4294967296},
		 "tiles": [{"coordinate": {"x": 0, "y": 0, "z": 0}, "floor": true}]},
		{"dungeon_name": "wide", "depth": -3, "origin": {"x": 0, "y": 0, "z": 0},
		 "size": {"width": 2097152, "height": 1}, "tiles": []},
		{"dungeon_name": "keep", "depth": -2, "origin": {"x": 0, "y": 0, "z": 0},
		 "size": {"width": 1, "height": 1},
		 "tiles": [{"coordinate": {"x": 0, "y": 0, "z": 0}, "floor": true}]}
	]}`

	s.Require().NotPanics(func() {
		s.Require().NoError(s.store.Load(s.ctx, strings.NewReader(doc)))
	})
	s.Equal([]int{-2}, s.store.Depths())
	_, ok := s.store.Get(-1)
	s.False(ok)
}

func (s *LevelStoreTestSuite) TestNonObjectFloorIsSkipped() {
	doc := `{"floors": [
		42,
		"x",
		[],
		{"dungeon_name": "keep", "depth": -2, "origin": {"x": 0, "y": 0, "z": 0},
		 "size": {"width": 1, "height": 1},
		 "tiles": [{"coordinate": {"x": 0, "y": 0, "z": 0}, "floor": true}]}
	]}`

	s.Require().NoError(s.store.Load(s.ctx, strings.NewReader(doc)))
	s.True(s.store.Loaded())
	s.Equal([]int{-2}, s.store.Depths())
}

func (s *LevelStoreTestSuite) TestLoadFromFile() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "floors.json")
	data, err := world.MarshalFloors(s.sampleLevels())
	s.Require().NoError(err)
	s.Require().NoError(os.WriteFile(path, data, 0o644))

	s.Require().NoError(s.store.LoadFrom(s.ctx, world.FileSource{Path: path}))
	s.Equal(2, s.store.Count())
	s.Len(s.store.Levels(), 2)
	s.Equal(-2, s.store.Levels()[0].Depth())
}

func (s *LevelStoreTestSuite) TestLoadFromMissingFile() {
	err := s.store.LoadFrom(s.ctx, world.FileSource{Path: filepath.Join(s.T().TempDir(), "nope.json")})
	s.True(errors.Is(err, world.ErrNotFound))
	s.False(s.store.Loaded())
}

func (s *LevelStoreTestSuite) TestNewLevelStoreFrom() {
	levels := s.sampleLevels()
	store := world.NewLevelStoreFrom(levels...)
	s.True(store.Loaded())
	l, ok := store.Get(-2)
	s.Require().True(ok)
	s.Same(levels[1], l)
}

func TestLevelStoreSuite(t *testing.T) {
	suite.Run(t, new(LevelStoreTestSuite))
}
