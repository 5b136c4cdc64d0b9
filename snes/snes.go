/*
Package snes implements decoders and encoders for SNES 4bpp planar tile
graphics and BGR555 palettes.

A tile is 8 by 8 pixels where each pixel is a 4-bit index into a 16 color
palette. On disk a tile occupies 32 bytes split into four bit-planes: for
each of the eight rows, bytes 2y and 2y+1 hold planes 0 and 1, and bytes
16+2y and 16+2y+1 hold planes 2 and 3. Bit 7 of each plane byte is the
leftmost pixel. A color is a 16-bit little-endian word laid out as
0bbbbbgg gggrrrrr with five bits per channel.

Both directions of each codec are lossless: encoding a decoded block
reproduces the block exactly, and decoding an encoded tile or palette
reproduces the input exactly.
*/
package snes

import "errors"

const (
	// TileWidth and TileHeight are the pixel dimensions of a single tile.
	TileWidth  = 8
	TileHeight = 8

	// TileBytes is the encoded size of one 4bpp planar tile.
	TileBytes = 32

	// ColorsPerPalette is the number of entries in one palette row.
	ColorsPerPalette = 16

	// ColorBytes is the encoded size of one palette entry.
	ColorBytes = 2

	// PaletteBytes is the encoded size of one palette row.
	PaletteBytes = ColorsPerPalette * ColorBytes
)

// ErrTruncated is returned when fewer bytes are available than the format
// requires for a decode operation.
var ErrTruncated = errors.New("snes: not enough data")
