package owedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owedit/owedit/bank"
	"github.com/owedit/owedit/rom"
	"github.com/owedit/owedit/romtest"
	"github.com/owedit/owedit/snes"
)

func animFixture(t *testing.T) *rom.Image {
	t.Helper()

	b := romtest.New().
		PutPointer(AnimPointerTable, 3, 0x070000).
		PutPointer(bank.SheetPointerTable, 2, 0x060000).
		PutPointer(bank.SheetPointerTable, 4, 0x061000)

	// Two frames: sheets 2 and 4, held for 8 and 12 ticks.
	b.Put(0x070000, []byte{2, 2, 4, 8, 12})

	// Mark the first pixel of each frame so they are distinguishable.
	b.Put(0x060000, []byte{0x80})
	b.Put(0x061000+16, []byte{0x80}) // plane 2 of row 0

	return b.Image(t)
}

func TestDecodeAnimation(t *testing.T) {
	t.Parallel()

	a, err := DecodeAnimation(animFixture(t), 3)
	require.NoError(t, err)

	assert.Equal(t, uint8(3), a.ID)
	require.Len(t, a.Frames, 2)
	require.Len(t, a.Durations, len(a.Frames))
	assert.Equal(t, []uint8{8, 12}, a.Durations)

	assert.Equal(t, uint8(1), a.Frames[0][0][0][0])
	assert.Equal(t, uint8(4), a.Frames[1][0][0][0])
}

func TestDecodeAnimationUnknown(t *testing.T) {
	t.Parallel()

	_, err := DecodeAnimation(animFixture(t), AnimationCount)
	assert.ErrorIs(t, err, ErrUnknownAnimation)
}

func TestDecodeAnimationInvalidPointer(t *testing.T) {
	t.Parallel()

	_, err := DecodeAnimation(animFixture(t), 0)
	assert.ErrorIs(t, err, rom.ErrInvalidPointer)
}

func TestDecodeAnimationBadFrameCount(t *testing.T) {
	t.Parallel()

	b := romtest.New().PutPointer(AnimPointerTable, 1, 0x070000)
	b.Put(0x070000, []byte{0})

	_, err := DecodeAnimation(b.Image(t), 1)
	assert.ErrorIs(t, err, ErrFrameCount)
}

func TestAnimationBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	a, err := DecodeAnimation(animFixture(t), 3)
	require.NoError(t, err)

	b, err := a.MarshalBinary()
	require.NoError(t, err)

	var got Animation
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, a, &got)
}

func TestAnimationMarshalMismatch(t *testing.T) {
	t.Parallel()

	a := &Animation{
		Frames:    []snes.Sheet{make(snes.Sheet, bank.TilesPerSheet)},
		Durations: []uint8{8, 12},
	}

	_, err := a.MarshalBinary()
	assert.ErrorIs(t, err, ErrFrameCount)
}

func TestAnimationUnmarshalTruncated(t *testing.T) {
	t.Parallel()

	var a Animation
	assert.Error(t, a.UnmarshalBinary([]byte{1, 2, 8}))
}
