package snes

import "image/color"

// Color is a single palette entry with five bits per channel (0-31).
type Color struct {
	R, G, B uint8
}

// NRGBA widens the 5-bit channels to 8 bits for display.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: c.R<<3 | c.R>>2,
		G: c.G<<3 | c.G>>2,
		B: c.B<<3 | c.B>>2,
		A: 0xff,
	}
}

// DecodeColor unpacks a BGR555 word.
func DecodeColor(v uint16) Color {
	return Color{
		R: uint8(v & 0x1f),
		G: uint8(v >> 5 & 0x1f),
		B: uint8(v >> 10 & 0x1f),
	}
}

// EncodeColor packs c as a BGR555 word. Channels are masked to five bits.
func EncodeColor(c Color) uint16 {
	return uint16(c.R&0x1f) | uint16(c.G&0x1f)<<5 | uint16(c.B&0x1f)<<10
}

// Palette is one 16 color palette row.
type Palette [ColorsPerPalette]Color

// DecodePalette decodes a palette row of 16 little-endian BGR555 words from
// the start of b.
func DecodePalette(b []byte) (Palette, error) {
	var p Palette

	if len(b) < PaletteBytes {
		return p, ErrTruncated
	}

	for i := range p {
		v := uint16(b[i<<1]) | uint16(b[i<<1+1])<<8
		p[i] = DecodeColor(v)
	}

	return p, nil
}

// EncodePalette encodes p into its 32 byte form.
func EncodePalette(p Palette) [PaletteBytes]byte {
	var b [PaletteBytes]byte

	for i, c := range p {
		v := EncodeColor(c)
		b[i<<1] = byte(v)
		b[i<<1+1] = byte(v >> 8)
	}

	return b
}

// ColorPalette converts p to an image/color palette for rendering.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c.NRGBA()
	}
	return cp
}
