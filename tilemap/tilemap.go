/*
Package tilemap decodes and encodes overworld area tilemaps.

Each of the 160 areas is a fixed 32 by 32 grid of 8x8 tiles. The grid is
stored as two parallel tables located through per-area pointer tables: a
tilemap of 16-bit little-endian words, one per cell, laid out as

	vhopppcc cccccccc    c: graphics (character) number
	                     h: horizontal flip  v: vertical flip
	                     p: palette number   o: priority bit

and a collision table of one byte per cell. Decoding joins the two tables
into a grid of Tile values; encoding is the exact inverse and writes the
tables back to the offsets they were decoded from.
*/
package tilemap

import (
	"errors"
	"fmt"

	"github.com/owedit/owedit/rom"
)

const (
	// AreaCount is the number of overworld areas.
	AreaCount = 0xa0

	// Width and Height are the grid dimensions of every area, in tiles.
	Width  = 32
	Height = 32

	// MapPointerTable and CollisionPointerTable hold one 3 byte bus
	// pointer per area.
	MapPointerTable       = 0x040000
	CollisionPointerTable = 0x041000

	mapBytes       = Width * Height * 2
	collisionBytes = Width * Height
)

// ErrUnknownArea is returned for an area id outside the pointer tables.
var ErrUnknownArea = errors.New("tilemap: unknown area")

// Tile is one decoded grid cell.
type Tile struct {
	GraphicsID   uint16
	PaletteIndex uint8
	Priority     bool
	FlipH        bool
	FlipV        bool
	Collision    CollisionType
}

// DecodeWord unpacks a tilemap attribute word. The collision field is left
// at its zero value; it lives in a separate table.
func DecodeWord(v uint16) Tile {
	return Tile{
		GraphicsID:   v & 0x03ff,
		PaletteIndex: uint8(v >> 10 & 0x07),
		Priority:     v&0x2000 != 0,
		FlipH:        v&0x4000 != 0,
		FlipV:        v&0x8000 != 0,
	}
}

// EncodeWord packs t back into its attribute word. The graphics id is masked
// to ten bits and the palette to three.
func EncodeWord(t Tile) uint16 {
	v := t.GraphicsID&0x03ff | uint16(t.PaletteIndex&0x07)<<10
	if t.Priority {
		v |= 0x2000
	}
	if t.FlipH {
		v |= 0x4000
	}
	if t.FlipV {
		v |= 0x8000
	}
	return v
}

// Map is the decoded tile grid for one area. The grid dimensions are fixed
// at creation; cells can be replaced but the grid cannot be resized.
type Map struct {
	AreaID uint8

	tiles [Height][Width]Tile

	// file offsets the tables were decoded from, used to write them back
	mapOffset       int
	collisionOffset int
}

// DecodeArea locates the tables for the given area and decodes them into a
// Map. The image is not modified; decoding the same unmodified image twice
// yields identical grids.
func DecodeArea(img *rom.Image, areaID uint8) (*Map, error) {
	if areaID >= AreaCount {
		return nil, fmt.Errorf("%w: %#02x", ErrUnknownArea, areaID)
	}

	mapOffset, err := img.PointerAt(MapPointerTable + int(areaID)*3)
	if err != nil {
		return nil, fmt.Errorf("area %#02x tilemap: %w", areaID, err)
	}

	collisionOffset, err := img.PointerAt(CollisionPointerTable + int(areaID)*3)
	if err != nil {
		return nil, fmt.Errorf("area %#02x collision: %w", areaID, err)
	}

	words, err := img.ReadAt(mapOffset, mapBytes)
	if err != nil {
		return nil, fmt.Errorf("area %#02x tilemap: %w", areaID, rom.ErrInvalidPointer)
	}

	collision, err := img.ReadAt(collisionOffset, collisionBytes)
	if err != nil {
		return nil, fmt.Errorf("area %#02x collision: %w", areaID, rom.ErrInvalidPointer)
	}

	m := &Map{
		AreaID:          areaID,
		mapOffset:       mapOffset,
		collisionOffset: collisionOffset,
	}

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			i := y*Width + x
			v := uint16(words[i<<1]) | uint16(words[i<<1+1])<<8

			t := DecodeWord(v)
			t.Collision = CollisionType(collision[i])
			m.tiles[y][x] = t
		}
	}

	return m, nil
}

// In reports whether (x, y) lies within the grid.
func (m *Map) In(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// TileAt returns the tile at (x, y). The second return value is false when
// the coordinates are out of bounds.
func (m *Map) TileAt(x, y int) (Tile, bool) {
	if !m.In(x, y) {
		return Tile{}, false
	}
	return m.tiles[y][x], true
}

// SetTileAt replaces the tile at (x, y). Out of bounds coordinates are
// ignored.
func (m *Map) SetTileAt(x, y int, t Tile) {
	if !m.In(x, y) {
		return
	}
	m.tiles[y][x] = t
}

// Encode serializes the grid back into its two tables.
func (m *Map) Encode() (words, collision []byte) {
	words = make([]byte, mapBytes)
	collision = make([]byte, collisionBytes)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			i := y*Width + x
			v := EncodeWord(m.tiles[y][x])

			words[i<<1] = byte(v)
			words[i<<1+1] = byte(v >> 8)
			collision[i] = byte(m.tiles[y][x].Collision)
		}
	}

	return words, collision
}

// WriteTo encodes the grid and writes both tables back to the offsets they
// were decoded from.
func (m *Map) WriteTo(img *rom.Image) error {
	words, collision := m.Encode()

	if err := img.WriteAt(m.mapOffset, words); err != nil {
		return err
	}
	return img.WriteAt(m.collisionOffset, collision)
}
