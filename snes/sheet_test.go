package snes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetRoundTrip(t *testing.T) {
	t.Parallel()

	b := make([]byte, 4*TileBytes)
	for i := range b {
		b[i] = byte(i * 13)
	}

	s, err := DecodeSheet(b, 4)
	require.NoError(t, err)
	require.Len(t, s, 4)

	assert.Equal(t, b, EncodeSheet(s))
}

func TestDecodeSheetTruncated(t *testing.T) {
	t.Parallel()

	_, err := DecodeSheet(make([]byte, 3*TileBytes), 4)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestSheetImage(t *testing.T) {
	t.Parallel()

	s := make(Sheet, 2*SheetColumns)
	s[0][0][0] = 5
	s[SheetColumns][7][7] = 9 // first tile of the second row

	var p Palette
	m := s.Image(p)

	assert.Equal(t, SheetColumns*TileWidth, m.Bounds().Dx())
	assert.Equal(t, 2*TileHeight, m.Bounds().Dy())
	assert.Equal(t, uint8(5), m.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(9), m.ColorIndexAt(7, TileHeight+7))
	assert.Equal(t, uint8(0), m.ColorIndexAt(1, 0))
}
