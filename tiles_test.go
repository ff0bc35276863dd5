package isoloot

import (
	"errors"
	"math/rand"

	. "gopkg.in/check.v1"
)

type TilesSuite struct{}

var _ = Suite(&TilesSuite{})

func (s *TilesSuite) TestTileForRollBoundaries(c *C) {
	c.Assert(tileForRoll(0), Equals, TILEGRASS)
	c.Assert(tileForRoll(0.5999), Equals, TILEGRASS)
	c.Assert(tileForRoll(0.60), Equals, TILESAND)
	c.Assert(tileForRoll(0.7499), Equals, TILESAND)
	c.Assert(tileForRoll(0.75), Equals, TILESTONE)
	c.Assert(tileForRoll(0.8799), Equals, TILESTONE)
	c.Assert(tileForRoll(0.88), Equals, TILEWATER)
	c.Assert(tileForRoll(0.9999), Equals, TILEWATER)
}

func (s *TilesSuite) TestNoiseGenerator(c *C) {
	tiles, err := GenerateTiles(GeneratorNoise, 20, 15, rand.New(rand.NewSource(9)))
	c.Assert(err, IsNil)
	c.Assert(tiles.Height(), Equals, 15)
	c.Assert(tiles.Width(), Equals, 20)
	for _, row := range tiles {
		for _, tile := range row {
			c.Assert(tile.Valid(), Equals, true)
		}
	}

	again, _ := GenerateTiles(GeneratorNoise, 20, 15, rand.New(rand.NewSource(9)))
	c.Assert(again, DeepEquals, tiles)
}

func (s *TilesSuite) TestUnknownGenerator(c *C) {
	_, err := GenerateTiles("fractal", 4, 4, rand.New(rand.NewSource(1)))
	c.Assert(errors.Is(err, ErrUnknownGenerator), Equals, true)

	_, err = GenerateTiles(GeneratorUniform, -1, 4, rand.New(rand.NewSource(1)))
	c.Assert(errors.Is(err, ErrBadMapSize), Equals, true)

	gs := NewGameState(1)
	_, err = gs.GenerateMapWith("fractal", 4, 4)
	c.Assert(err, NotNil)
	c.Assert(gs.Tiles(), HasLen, 0)
}

func (s *TilesSuite) TestTileMapAccess(c *C) {
	tiles := TileMap{{TILEGRASS, TILESAND}, {TILESTONE, TILEWATER}}

	kind, ok := tiles.At(1, 1)
	c.Assert(ok, Equals, true)
	c.Assert(kind, Equals, TILEWATER)

	_, ok = tiles.At(2, 0)
	c.Assert(ok, Equals, false)
	_, ok = tiles.At(0, -1)
	c.Assert(ok, Equals, false)

	c.Assert(TileMap{}.Width(), Equals, 0)
	c.Assert(TileKind("lava").Valid(), Equals, false)
}

func (s *TilesSuite) TestGlyphIsStable(c *C) {
	style := TileStyles[TILEWATER]
	c.Assert(style.Glyph(3, 5), Equals, style.Glyph(3, 5))
	c.Assert(TileStyle{}.Glyph(1, 1), Equals, '·')
}
