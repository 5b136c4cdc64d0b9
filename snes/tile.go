package snes

// Tile is a decoded 8x8 bitmap of 4-bit palette indices. Index (0,0) is the
// top-left pixel.
type Tile [TileHeight][TileWidth]uint8

// DecodeTile decodes one 4bpp planar tile from the start of b.
func DecodeTile(b []byte) (Tile, error) {
	var t Tile

	if len(b) < TileBytes {
		return t, ErrTruncated
	}

	for y := 0; y < TileHeight; y++ {
		p0 := b[y<<1]
		p1 := b[y<<1+1]
		p2 := b[y<<1+16]
		p3 := b[y<<1+17]

		for x := 0; x < TileWidth; x++ {
			shift := uint(7 - x)
			t[y][x] = (p0>>shift)&1 |
				(p1>>shift)&1<<1 |
				(p2>>shift)&1<<2 |
				(p3>>shift)&1<<3
		}
	}

	return t, nil
}

// EncodeTile encodes t into its 32 byte planar form. Pixel values are masked
// to four bits.
func EncodeTile(t Tile) [TileBytes]byte {
	var b [TileBytes]byte

	for y := 0; y < TileHeight; y++ {
		var p0, p1, p2, p3 byte

		for x := 0; x < TileWidth; x++ {
			v := t[y][x] & 0x0f
			bit := byte(1) << uint(7-x)

			if v&1 != 0 {
				p0 |= bit
			}
			if v&2 != 0 {
				p1 |= bit
			}
			if v&4 != 0 {
				p2 |= bit
			}
			if v&8 != 0 {
				p3 |= bit
			}
		}

		b[y<<1] = p0
		b[y<<1+1] = p1
		b[y<<1+16] = p2
		b[y<<1+17] = p3
	}

	return b
}
