package owedit

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/owedit/owedit/bank"
	"github.com/owedit/owedit/rom"
	"github.com/owedit/owedit/snes"
)

// BG color table locations. Expanded images hold the sixteen BGR555 words
// contiguously; vanilla images scatter one word at the head of each 16 byte
// row of the original palette region.
const (
	expandedBGBase  = 0x044000
	vanillaBGBase   = 0x0dd734
	vanillaBGStride = 16
)

// ImportBGColors decodes the background color table into a palette. The
// byte layout is chosen by the image's declared layout, never guessed from
// the data.
func ImportBGColors(img *rom.Image) (snes.Palette, error) {
	var p snes.Palette

	base, stride := expandedBGBase, snes.ColorBytes
	if img.Layout() == rom.LayoutVanilla {
		base, stride = vanillaBGBase, vanillaBGStride
	}

	for i := range p {
		v, err := img.Uint16At(base + i*stride)
		if err != nil {
			return snes.Palette{}, err
		}
		p[i] = snes.DecodeColor(v)
	}

	return p, nil
}

// ImportBGColors decodes the background color table of the editor's ROM and
// installs it as a palette row in the session's working set.
func (e *Editor) ImportBGColors(slot uint8) error {
	p, err := ImportBGColors(e.img)
	if err != nil {
		return err
	}

	e.session.SetPalette(slot, p)
	e.logger.Printf("imported BG colors (%s layout) into palette %d\n", e.img.Layout(), slot)

	return nil
}

// ImportSheetImage converts an arbitrary image into graphics sheet tiles
// plus the 16 color palette they index. Images with more than 16 colors are
// quantized first. The image must be exactly the size of a sheet canvas.
func ImportSheetImage(m image.Image) (snes.Sheet, snes.Palette, error) {
	b := m.Bounds()
	if b.Dx() != bank.Width || b.Dy() != bank.Height {
		return nil, snes.Palette{}, rom.ErrBounds
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > snes.ColorsPerPalette {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, snes.ColorsPerPalette), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	var p snes.Palette
	for i, c := range pm.Palette {
		if i >= snes.ColorsPerPalette {
			break
		}
		r, g, bl, _ := c.RGBA()
		p[i] = snes.Color{
			R: uint8(r >> 11),
			G: uint8(g >> 11),
			B: uint8(bl >> 11),
		}
	}

	s := make(snes.Sheet, bank.TilesPerSheet)
	for i := range s {
		tx := (i % snes.SheetColumns) * snes.TileWidth
		ty := (i / snes.SheetColumns) * snes.TileHeight

		for y := 0; y < snes.TileHeight; y++ {
			for x := 0; x < snes.TileWidth; x++ {
				s[i][y][x] = pm.ColorIndexAt(tx+x, ty+y) & 0x0f
			}
		}
	}

	return s, p, nil
}

// ImportSheetImage replaces the tiles of one sheet in the working set with
// the converted image and installs its palette in the given slot.
func (e *Editor) ImportSheetImage(sheetID uint8, slot uint8, m image.Image) error {
	tiles, p, err := ImportSheetImage(m)
	if err != nil {
		return err
	}

	sh, err := e.session.OpenSheet(sheetID)
	if err != nil {
		return err
	}

	copy(sh.Tiles, tiles)
	e.session.SetPalette(slot, p)
	e.session.MarkSheetDirty(sheetID)

	e.logger.Printf("imported image into sheet %#02x, palette %d\n", sheetID, slot)

	return nil
}
