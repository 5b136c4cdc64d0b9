package bank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owedit/owedit/bank"
	"github.com/owedit/owedit/rom"
	"github.com/owedit/owedit/romtest"
	"github.com/owedit/owedit/snes"
)

const (
	fixtureSheet  = 2
	fixtureOffset = 0x060000
)

func fixture(t *testing.T) *rom.Image {
	t.Helper()

	b := romtest.New().PutPointer(bank.SheetPointerTable, fixtureSheet, fixtureOffset)

	// Tile 0 row 0: plane 0 bit for the leftmost pixel.
	b.Put(fixtureOffset, []byte{0x80})

	// Palette slot 1, entry 0: pure red.
	b.PutUint16(bank.PaletteBase+snes.PaletteBytes, 0x001f)

	return b.Image(t)
}

func TestDecodeSheet(t *testing.T) {
	t.Parallel()

	sh, err := bank.DecodeSheet(fixture(t), fixtureSheet)
	require.NoError(t, err)

	assert.Equal(t, uint8(fixtureSheet), sh.ID)
	assert.Len(t, sh.Tiles, bank.TilesPerSheet)
	assert.Equal(t, uint8(1), sh.Tiles[0][0][0])
}

func TestDecodeSheetUnknown(t *testing.T) {
	t.Parallel()

	_, err := bank.DecodeSheet(fixture(t), bank.SheetCount)
	assert.ErrorIs(t, err, bank.ErrUnknownSheet)
}

func TestDecodeSheetInvalidPointer(t *testing.T) {
	t.Parallel()

	_, err := bank.DecodeSheet(fixture(t), 3)
	assert.ErrorIs(t, err, rom.ErrInvalidPointer)
}

func TestSheetPixels(t *testing.T) {
	t.Parallel()

	sh, err := bank.DecodeSheet(fixture(t), fixtureSheet)
	require.NoError(t, err)

	v, ok := sh.PixelAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, uint8(1), v)

	// Pixel (10, 9) is tile 17, local (2, 1).
	sh.SetPixelAt(10, 9, 7)
	assert.Equal(t, uint8(7), sh.Tiles[17][1][2])

	_, ok = sh.PixelAt(-1, 0)
	assert.False(t, ok)
	_, ok = sh.PixelAt(bank.Width, 0)
	assert.False(t, ok)
	_, ok = sh.PixelAt(0, bank.Height)
	assert.False(t, ok)

	// Off-canvas writes are dropped.
	sh.SetPixelAt(bank.Width, 0, 7)
}

func TestSheetWriteTo(t *testing.T) {
	t.Parallel()

	img := fixture(t)

	sh, err := bank.DecodeSheet(img, fixtureSheet)
	require.NoError(t, err)

	sh.SetPixelAt(4, 4, 0x0c)
	require.NoError(t, sh.WriteTo(img))

	got, err := bank.DecodeSheet(img, fixtureSheet)
	require.NoError(t, err)
	assert.Equal(t, sh, got)
}

func TestPalette(t *testing.T) {
	t.Parallel()

	img := fixture(t)

	p, err := bank.DecodePalette(img, 1)
	require.NoError(t, err)
	assert.Equal(t, snes.Color{R: 31}, p[0])

	p[1] = snes.Color{G: 31}
	require.NoError(t, bank.WritePalette(img, 1, p))

	got, err := bank.DecodePalette(img, 1)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestPaletteUnknownSlot(t *testing.T) {
	t.Parallel()

	img := fixture(t)

	_, err := bank.DecodePalette(img, bank.PaletteCount)
	assert.ErrorIs(t, err, bank.ErrUnknownPalette)

	err = bank.WritePalette(img, bank.PaletteCount, snes.Palette{})
	assert.ErrorIs(t, err, bank.ErrUnknownPalette)
}
