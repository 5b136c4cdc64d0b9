/*
Package bank locates and decodes the graphics sheets and palette block of a
ROM image.

Sheets are blocks of 64 planar tiles (0x800 bytes) found through a pointer
table of 3 byte bus pointers, one per sheet. The palette block is a fixed
run of eight 16 color palette rows. A decoded sheet remembers the offset it
came from so edits can be written back in place.
*/
package bank

import (
	"errors"
	"fmt"

	"github.com/owedit/owedit/rom"
	"github.com/owedit/owedit/snes"
)

const (
	// SheetCount is the number of graphics sheets in the pointer table.
	SheetCount = 128

	// TilesPerSheet is the number of tiles in every sheet.
	TilesPerSheet = 64

	// PaletteCount is the number of palette rows in the palette block.
	PaletteCount = 8

	// SheetPointerTable holds one 3 byte bus pointer per sheet;
	// PaletteBase is the start of the fixed palette block.
	SheetPointerTable = 0x042000
	PaletteBase       = 0x043000

	sheetBytes = TilesPerSheet * snes.TileBytes

	// Width and Height are the pixel dimensions of a rendered sheet.
	Width  = snes.SheetColumns * snes.TileWidth
	Height = TilesPerSheet / snes.SheetColumns * snes.TileHeight
)

var (
	// ErrUnknownSheet is returned for a sheet id outside the pointer table.
	ErrUnknownSheet = errors.New("bank: unknown sheet")

	// ErrUnknownPalette is returned for a palette slot outside the block.
	ErrUnknownPalette = errors.New("bank: unknown palette")
)

// Sheet is one decoded graphics sheet, addressable either per tile or as a
// single Width by Height pixel canvas.
type Sheet struct {
	ID    uint8
	Tiles snes.Sheet

	offset int
}

// DecodeSheet locates and decodes the sheet with the given id.
func DecodeSheet(img *rom.Image, id uint8) (*Sheet, error) {
	if int(id) >= SheetCount {
		return nil, fmt.Errorf("%w: %#02x", ErrUnknownSheet, id)
	}

	offset, err := img.PointerAt(SheetPointerTable + int(id)*3)
	if err != nil {
		return nil, fmt.Errorf("sheet %#02x: %w", id, err)
	}

	b, err := img.ReadAt(offset, sheetBytes)
	if err != nil {
		return nil, fmt.Errorf("sheet %#02x: %w", id, rom.ErrInvalidPointer)
	}

	tiles, err := snes.DecodeSheet(b, TilesPerSheet)
	if err != nil {
		return nil, err
	}

	return &Sheet{
		ID:     id,
		Tiles:  tiles,
		offset: offset,
	}, nil
}

// In reports whether (x, y) lies on the sheet canvas.
func (s *Sheet) In(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// PixelAt returns the palette index at canvas coordinates (x, y). The second
// return value is false when the coordinates are off the canvas.
func (s *Sheet) PixelAt(x, y int) (uint8, bool) {
	if !s.In(x, y) {
		return 0, false
	}
	t := y/snes.TileHeight*snes.SheetColumns + x/snes.TileWidth
	return s.Tiles[t][y%snes.TileHeight][x%snes.TileWidth], true
}

// SetPixelAt stores a palette index at canvas coordinates (x, y). Off-canvas
// coordinates are ignored.
func (s *Sheet) SetPixelAt(x, y int, v uint8) {
	if !s.In(x, y) {
		return
	}
	t := y/snes.TileHeight*snes.SheetColumns + x/snes.TileWidth
	s.Tiles[t][y%snes.TileHeight][x%snes.TileWidth] = v & 0x0f
}

// WriteTo encodes the sheet and writes it back to the offset it was decoded
// from.
func (s *Sheet) WriteTo(img *rom.Image) error {
	return img.WriteAt(s.offset, snes.EncodeSheet(s.Tiles))
}

// DecodePalette decodes one palette row from the palette block.
func DecodePalette(img *rom.Image, slot uint8) (snes.Palette, error) {
	if int(slot) >= PaletteCount {
		return snes.Palette{}, fmt.Errorf("%w: %d", ErrUnknownPalette, slot)
	}

	b, err := img.ReadAt(PaletteBase+int(slot)*snes.PaletteBytes, snes.PaletteBytes)
	if err != nil {
		return snes.Palette{}, err
	}

	return snes.DecodePalette(b)
}

// WritePalette encodes one palette row into the palette block.
func WritePalette(img *rom.Image, slot uint8, p snes.Palette) error {
	if int(slot) >= PaletteCount {
		return fmt.Errorf("%w: %d", ErrUnknownPalette, slot)
	}

	b := snes.EncodePalette(p)
	return img.WriteAt(PaletteBase+int(slot)*snes.PaletteBytes, b[:])
}
