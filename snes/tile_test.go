package snes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTile(t *testing.T) {
	t.Parallel()

	b := make([]byte, TileBytes)

	// Row 0: leftmost pixel gets a bit in every plane, rightmost in plane 0
	// only.
	b[0] = 0x81 // plane 0
	b[1] = 0x80 // plane 1
	b[16] = 0x80 // plane 2
	b[17] = 0x80 // plane 3

	tile, err := DecodeTile(b)
	require.NoError(t, err)

	assert.Equal(t, uint8(0x0f), tile[0][0])
	assert.Equal(t, uint8(0x01), tile[0][7])
	assert.Equal(t, uint8(0x00), tile[0][1])
	assert.Equal(t, uint8(0x00), tile[1][0])
}

func TestDecodeTileTruncated(t *testing.T) {
	t.Parallel()

	_, err := DecodeTile(make([]byte, TileBytes-1))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestTileRoundTrip(t *testing.T) {
	t.Parallel()

	var tile Tile
	for y := 0; y < TileHeight; y++ {
		for x := 0; x < TileWidth; x++ {
			tile[y][x] = uint8(y*TileWidth+x) & 0x0f
		}
	}

	b := EncodeTile(tile)
	got, err := DecodeTile(b[:])
	require.NoError(t, err)
	assert.Equal(t, tile, got)
}

func TestTileRoundTripPacked(t *testing.T) {
	t.Parallel()

	// Any packed block is a valid tile, so encode(decode(b)) == b.
	b := make([]byte, TileBytes)
	for i := range b {
		b[i] = byte(i*37 + 11)
	}

	tile, err := DecodeTile(b)
	require.NoError(t, err)

	got := EncodeTile(tile)
	assert.Equal(t, b, got[:])
}
