package isoloot

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// TileKind is the terrain of one map cell
type TileKind string

// Tile kinds. No cell of a generated map holds anything else.
const (
	TILEGRASS TileKind = "grass"
	TILESAND  TileKind = "sand"
	TILESTONE TileKind = "stone"
	TILEWATER TileKind = "water"
)

// TileKinds lists every tile kind
var TileKinds = []TileKind{TILEGRASS, TILEWATER, TILESTONE, TILESAND}

// Valid reports whether k is one of TileKinds
func (k TileKind) Valid() bool {
	_, ok := TileStyles[k]
	return ok
}

// TileStyle stores how a tile kind is drawn in a terminal.
// For 256 color colors check https://jonasjacek.github.io/colors/
type TileStyle struct {
	FGColor         byte   `json:""`
	BGColor         byte   `json:""`
	Representations []rune `json:""`
}

// TileStyles is the terminal palette for each tile kind
var TileStyles = map[TileKind]TileStyle{
	TILEGRASS: {FGColor: 34, BGColor: 22, Representations: []rune{'"', '\'', ',', '.'}},
	TILESAND:  {FGColor: 229, BGColor: 180, Representations: []rune{'.', ':', '.', '·'}},
	TILESTONE: {FGColor: 250, BGColor: 240, Representations: []rune{'^', '∩', '^'}},
	TILEWATER: {FGColor: 39, BGColor: 18, Representations: []rune{'~', '≈', '~'}},
}

// Glyph picks a stable representation for the cell at (x, y)
func (style TileStyle) Glyph(x, y int) rune {
	if len(style.Representations) == 0 {
		return '·'
	}
	return style.Representations[(x^y)%len(style.Representations)]
}

// TileMap is a rows x columns grid of tile kinds, indexed [y][x]
type TileMap [][]TileKind

// Width is the number of columns
func (m TileMap) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height is the number of rows
func (m TileMap) Height() int {
	return len(m)
}

// At returns the tile at (x, y) and whether it is on the map
func (m TileMap) At(x, y int) (TileKind, bool) {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return "", false
	}
	return m[y][x], true
}

// Copy deep-copies the grid
func (m TileMap) Copy() TileMap {
	if m == nil {
		return nil
	}
	out := make(TileMap, len(m))
	for i, row := range m {
		out[i] = make([]TileKind, len(row))
		copy(out[i], row)
	}
	return out
}

// Tile weights as cumulative thresholds over a [0, 1) roll
const (
	grassThreshold = 0.60
	sandThreshold  = 0.75
	stoneThreshold = 0.88
)

// tileForRoll buckets a [0, 1) value into a tile kind: 60% grass, 15% sand,
// 13% stone, 12% water.
func tileForRoll(roll float64) TileKind {
	switch {
	case roll < grassThreshold:
		return TILEGRASS
	case roll < sandThreshold:
		return TILESAND
	case roll < stoneThreshold:
		return TILESTONE
	}
	return TILEWATER
}

// Map generator names
const (
	GeneratorUniform = "uniform"
	GeneratorNoise   = "noise"
)

type generatorFunc func(width, height int, rng *rand.Rand) TileMap

var generationAlgorithms map[string]generatorFunc

// noiseScale is how many tiles one unit of noise space spans
const noiseScale = 0.18

func generateUniform(width, height int, rng *rand.Rand) TileMap {
	tiles := make(TileMap, height)
	for row := 0; row < height; row++ {
		tiles[row] = make([]TileKind, width)
		for col := 0; col < width; col++ {
			tiles[row][col] = tileForRoll(rng.Float64())
		}
	}
	return tiles
}

// generateNoise makes coherent patches of terrain instead of per-cell noise.
func generateNoise(width, height int, rng *rand.Rand) TileMap {
	noise := opensimplex.NewWithSeed(rng.Int63())

	tiles := make(TileMap, height)
	for row := 0; row < height; row++ {
		tiles[row] = make([]TileKind, width)
		for col := 0; col < width; col++ {
			roll := (noise.Eval2(float64(col)*noiseScale, float64(row)*noiseScale) + 1) / 2
			if roll < 0 {
				roll = 0
			} else if roll >= 1 {
				roll = 0.999999
			}
			tiles[row][col] = tileForRoll(roll)
		}
	}
	return tiles
}

// GenerateTiles builds a height x width map with the named generator
func GenerateTiles(generator string, width, height int, rng *rand.Rand) (TileMap, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("map size %dx%d: %w", width, height, ErrBadMapSize)
	}

	algo, ok := generationAlgorithms[generator]
	if !ok {
		return nil, fmt.Errorf("%q: %w", generator, ErrUnknownGenerator)
	}

	return algo(width, height, rng), nil
}

// KnownGenerator reports whether name is a registered map generator
func KnownGenerator(name string) bool {
	_, ok := generationAlgorithms[name]
	return ok
}

func init() {
	generationAlgorithms = make(map[string]generatorFunc)

	generationAlgorithms[GeneratorUniform] = generateUniform
	generationAlgorithms[GeneratorNoise] = generateNoise
}
