/*
Package romtest builds in-memory ROM image fixtures for tests. A Builder
starts from a zeroed image of the requested size class and offers helpers to
plant pointer tables and data blocks; Bytes fixes up the header checksum so
the result always loads.
*/
package romtest

import (
	"testing"

	"github.com/owedit/owedit/checksum"
	"github.com/owedit/owedit/rom"
)

const (
	titleOffset      = 0x7fc0
	titleLength      = 21
	complementOffset = 0x7fdc
	checksumOffset   = 0x7fde
)

// Builder accumulates a fixture image.
type Builder struct {
	data []byte
}

// New returns a builder for a vanilla sized image.
func New() *Builder {
	return &Builder{data: make([]byte, rom.VanillaSize)}
}

// NewExpanded returns a builder for an expanded sized image.
func NewExpanded() *Builder {
	return &Builder{data: make([]byte, rom.ExpandedSize)}
}

// SetTitle stores the header title, padded with spaces.
func (b *Builder) SetTitle(s string) *Builder {
	for i := 0; i < titleLength; i++ {
		c := byte(' ')
		if i < len(s) {
			c = s[i]
		}
		b.data[titleOffset+i] = c
	}
	return b
}

// Put copies p into the image at offset.
func (b *Builder) Put(offset int, p []byte) *Builder {
	copy(b.data[offset:], p)
	return b
}

// PutUint16 stores a little-endian word at offset.
func (b *Builder) PutUint16(offset int, v uint16) *Builder {
	b.data[offset] = byte(v)
	b.data[offset+1] = byte(v >> 8)
	return b
}

// PutPointer stores, at entry index of the pointer table at table, the
// 3 byte LoROM bus address of the file offset target.
func (b *Builder) PutPointer(table, index, target int) *Builder {
	bus := uint32(target>>15)<<16 | 0x8000 | uint32(target&0x7fff)

	offset := table + index*3
	b.data[offset] = byte(bus)
	b.data[offset+1] = byte(bus >> 8)
	b.data[offset+2] = byte(bus >> 16)
	return b
}

// Bytes fixes up the header checksum words and returns a copy of the image
// buffer.
func (b *Builder) Bytes() []byte {
	sum := checksum.Checksum(b.data)
	b.PutUint16(complementOffset, sum^0xffff)
	b.PutUint16(checksumOffset, sum)
	return append([]byte(nil), b.data...)
}

// Image loads the fixture, failing the test on error.
func (b *Builder) Image(t *testing.T, options ...rom.Option) *rom.Image {
	t.Helper()

	img, err := rom.New(b.Bytes(), options...)
	if err != nil {
		t.Fatalf("loading fixture image: %v", err)
	}
	return img
}
