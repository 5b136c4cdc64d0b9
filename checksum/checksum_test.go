package checksum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owedit/owedit/checksum"
	"github.com/owedit/owedit/romtest"
)

func TestUpdate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint16(0), checksum.Update(0, nil))
	assert.Equal(t, uint16(6), checksum.Update(0, []byte{1, 2, 3}))

	// 16-bit overflow wraps.
	assert.Equal(t, uint16(0xfe), checksum.Update(0xffff, []byte{0xff}))
}

func TestChecksumIgnoresStoredWords(t *testing.T) {
	t.Parallel()

	a := romtest.New().Bytes()
	b := romtest.New().Bytes()

	// Corrupt the stored words of one copy; the computed checksum must not
	// change.
	b[0x7fdc] = 0xaa
	b[0x7fde] = 0x55

	assert.Equal(t, checksum.Checksum(a), checksum.Checksum(b))
}

func TestFix(t *testing.T) {
	t.Parallel()

	img := romtest.New().Image(t)

	require.NoError(t, img.WriteAt(0x1000, []byte{0xab}))
	require.NoError(t, checksum.Fix(img))

	b := img.Bytes()
	complement := uint16(b[0x7fdc]) | uint16(b[0x7fdd])<<8
	sum := uint16(b[0x7fde]) | uint16(b[0x7fdf])<<8

	assert.Equal(t, uint16(0xffff), complement^sum)
	assert.Equal(t, checksum.Checksum(b), sum)
}
