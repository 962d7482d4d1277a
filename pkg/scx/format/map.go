package format

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

const maxMapTiles = 1 << 24

// Tile is one map cell.
type Tile struct {
	// Terrain is the terrain type ID.
	Terrain int8
	// Elevation is the elevation level.
	Elevation int8
	// Zone is unused by the games but preserved.
	Zone int8
}

// Map describes the terrain of a scenario.
type Map struct {
	width  uint32
	height uint32
	tiles  [][]Tile
}

// NewMap creates a width×height map filled with zero tiles.
func NewMap(width, height uint32) *Map {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	return &Map{width: width, height: height, tiles: tiles}
}

// ReadMap reads the dimensions followed by height rows of width tiles.
func ReadMap(r io.Reader) (*Map, error) {
	width, err := readLE[uint32](r)
	if err != nil {
		return nil, err
	}
	height, err := readLE[uint32](r)
	if err != nil {
		return nil, err
	}
	if width > maxMapTiles || height > maxMapTiles || uint64(width)*uint64(height) > maxMapTiles {
		return nil, fmt.Errorf("%w: map %dx%d too large", scxerrors.ErrInvalidLength, width, height)
	}

	tiles := make([][]Tile, height)
	for y := range tiles {
		row := make([]Tile, width)
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("reading map row %d: %w", y, err)
		}
		tiles[y] = row
	}
	return &Map{width: width, height: height, tiles: tiles}, nil
}

// Encode writes the map. The grid must match the declared dimensions.
func (m *Map) Encode(w io.Writer) error {
	if len(m.tiles) != int(m.height) {
		panic(fmt.Sprintf("format: map has %d rows, want %d", len(m.tiles), m.height))
	}
	for y, row := range m.tiles {
		if len(row) != int(m.width) {
			panic(fmt.Sprintf("format: map row %d has %d tiles, want %d", y, len(row), m.width))
		}
	}

	if err := writeLE(w, m.width, m.height); err != nil {
		return err
	}
	for _, row := range m.tiles {
		if err := writeLE(w, row); err != nil {
			return err
		}
	}
	return nil
}

// Width returns the map width in tiles.
func (m *Map) Width() uint32 {
	return m.width
}

// Height returns the map height in tiles.
func (m *Map) Height() uint32 {
	return m.height
}

// Tile returns the tile at (x, y), or false if the coordinates are out of bounds.
func (m *Map) Tile(x, y uint32) (Tile, bool) {
	if t := m.TileAt(x, y); t != nil {
		return *t, true
	}
	return Tile{}, false
}

// TileAt returns a pointer to the tile at (x, y) for in-place edits, or nil
// if the coordinates are out of bounds.
func (m *Map) TileAt(x, y uint32) *Tile {
	if uint64(y) >= uint64(len(m.tiles)) {
		return nil
	}
	row := m.tiles[y]
	if uint64(x) >= uint64(len(row)) {
		return nil
	}
	return &row[x]
}

// Tiles iterates over every tile in row-major order.
func (m *Map) Tiles() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for _, row := range m.tiles {
			for _, t := range row {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// TilesMut iterates over pointers to every tile in row-major order, which
// is handy for replacing terrains throughout the map.
func (m *Map) TilesMut() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for _, row := range m.tiles {
			for x := range row {
				if !yield(&row[x]) {
					return
				}
			}
		}
	}
}
