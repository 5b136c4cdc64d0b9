package snes

import "image"

// SheetColumns is the number of tiles per row when a sheet is rendered.
const SheetColumns = 16

// Sheet is an ordered sequence of decoded tiles, typically one graphics
// block from the ROM.
type Sheet []Tile

// DecodeSheet decodes n consecutive planar tiles from the start of b.
func DecodeSheet(b []byte, n int) (Sheet, error) {
	if len(b) < n*TileBytes {
		return nil, ErrTruncated
	}

	s := make(Sheet, n)
	for i := range s {
		t, err := DecodeTile(b[i*TileBytes:])
		if err != nil {
			return nil, err
		}
		s[i] = t
	}

	return s, nil
}

// EncodeSheet encodes every tile in s back to back.
func EncodeSheet(s Sheet) []byte {
	b := make([]byte, 0, len(s)*TileBytes)
	for _, t := range s {
		eb := EncodeTile(t)
		b = append(b, eb[:]...)
	}
	return b
}

// Image renders the sheet as a paletted image using p, SheetColumns tiles
// wide with tiles laid out in row-major order.
func (s Sheet) Image(p Palette) *image.Paletted {
	rows := (len(s) + SheetColumns - 1) / SheetColumns

	m := image.NewPaletted(image.Rect(0, 0, SheetColumns*TileWidth, rows*TileHeight), p.ColorPalette())

	for i, t := range s {
		tx := (i % SheetColumns) * TileWidth
		ty := (i / SheetColumns) * TileHeight

		for y := 0; y < TileHeight; y++ {
			for x := 0; x < TileWidth; x++ {
				m.SetColorIndex(tx+x, ty+y, t[y][x])
			}
		}
	}

	return m
}
