/*
Package rom implements loading and bounds-checked access to a SNES ROM image.

Two size classes are recognised: the vanilla 1 MiB image and the expanded
2 MiB image used by modified ROMs. A 512 byte copier header, if present, is
stripped on load. The internal header sits at file offset 0x7fc0 and holds
the 21 byte title followed by, among other things, the checksum complement
and checksum words; the two words must XOR to 0xffff for the image to be
accepted.

All structural reads resolve 3 byte LoROM bus pointers to file offsets and
reject any access that crosses the end of the buffer.
*/
package rom

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/alttpo/snes/mapping/lorom"
)

const (
	// VanillaSize is the file size of an unmodified ROM image.
	VanillaSize = 1 << 20

	// ExpandedSize is the file size of an expanded ROM image.
	ExpandedSize = 2 << 20

	copierHeaderSize = 512

	headerOffset     = 0x7fc0
	titleLength      = 21
	complementOffset = 0x7fdc
	checksumOffset   = 0x7fde
)

var (
	// ErrSize is returned when an image is neither vanilla nor expanded sized.
	ErrSize = errors.New("rom: image is wrong size")

	// ErrChecksum is returned when the header checksum words do not agree.
	ErrChecksum = errors.New("rom: header checksum mismatch")

	// ErrBounds is returned by any accessor that would cross the end of the
	// image buffer.
	ErrBounds = errors.New("rom: access out of bounds")

	// ErrInvalidPointer is returned when a stored bus pointer does not map
	// to a file offset inside the image.
	ErrInvalidPointer = errors.New("rom: invalid pointer")
)

// Layout distinguishes the vanilla binary layout from the expanded one used
// by modified ROMs. Structures such as the BG color table live at different
// offsets depending on the layout.
type Layout int

const (
	LayoutVanilla Layout = iota
	LayoutExpanded
)

func (l Layout) String() string {
	switch l {
	case LayoutVanilla:
		return "vanilla"
	case LayoutExpanded:
		return "expanded"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// Image is a loaded ROM image. All reads and writes are offset and length
// bounded; nothing outside the buffer is ever touched.
type Image struct {
	data   []byte
	layout Layout
}

// Option configures an Image as it is loaded.
type Option func(*Image)

// WithLayout overrides the layout derived from the image size. Use it when
// a vanilla sized image is known to carry expanded structures or vice versa.
func WithLayout(l Layout) Option {
	return func(i *Image) {
		i.layout = l
	}
}

// New wraps b as a ROM image. A copier header is stripped, the size class is
// checked and the internal header checksum words are verified.
func New(b []byte, options ...Option) (*Image, error) {
	if len(b)%VanillaSize == copierHeaderSize {
		b = b[copierHeaderSize:]
	}

	i := &Image{data: b}

	switch len(b) {
	case VanillaSize:
		i.layout = LayoutVanilla
	case ExpandedSize:
		i.layout = LayoutExpanded
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrSize, len(b))
	}

	complement, _ := i.Uint16At(complementOffset)
	checksum, _ := i.Uint16At(checksumOffset)
	if complement^checksum != 0xffff {
		return nil, fmt.Errorf("%w: complement %#04x, checksum %#04x", ErrChecksum, complement, checksum)
	}

	for _, option := range options {
		option(i)
	}

	return i, nil
}

// Open reads the file at path and returns it as an Image.
func Open(path string, options ...Option) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return New(b, options...)
}

// Layout returns the binary layout the image was loaded with.
func (i *Image) Layout() Layout {
	return i.layout
}

// Size returns the length of the image in bytes.
func (i *Image) Size() int {
	return len(i.data)
}

// CRC32 returns the IEEE CRC-32 checksum of the whole image.
func (i *Image) CRC32() uint32 {
	return crc32.ChecksumIEEE(i.data)
}

// Title returns the header title with trailing padding removed.
func (i *Image) Title() string {
	b, _ := i.ReadAt(headerOffset, titleLength)
	for len(b) > 0 && (b[len(b)-1] == 0x20 || b[len(b)-1] == 0x00) {
		b = b[:len(b)-1]
	}
	return string(b)
}

// Bytes returns a copy of the image buffer, suitable for writing to disk.
func (i *Image) Bytes() []byte {
	return append([]byte(nil), i.data...)
}

func (i *Image) check(offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(i.data) {
		return fmt.Errorf("%w: offset %#x, length %#x", ErrBounds, offset, length)
	}
	return nil
}

// ReadAt returns a copy of length bytes starting at offset.
func (i *Image) ReadAt(offset, length int) ([]byte, error) {
	if err := i.check(offset, length); err != nil {
		return nil, err
	}
	return append([]byte(nil), i.data[offset:offset+length]...), nil
}

// Uint8At returns the byte at offset.
func (i *Image) Uint8At(offset int) (uint8, error) {
	if err := i.check(offset, 1); err != nil {
		return 0, err
	}
	return i.data[offset], nil
}

// Uint16At returns the little-endian word at offset.
func (i *Image) Uint16At(offset int) (uint16, error) {
	if err := i.check(offset, 2); err != nil {
		return 0, err
	}
	return uint16(i.data[offset]) | uint16(i.data[offset+1])<<8, nil
}

// PointerAt resolves the 3 byte little-endian bus pointer stored at offset
// to a file offset within the image.
func (i *Image) PointerAt(offset int) (int, error) {
	if err := i.check(offset, 3); err != nil {
		return 0, err
	}

	bus := uint32(i.data[offset]) | uint32(i.data[offset+1])<<8 | uint32(i.data[offset+2])<<16

	pak, err := lorom.BusAddressToPak(bus)
	if err != nil {
		return 0, fmt.Errorf("%w: bus address %#06x", ErrInvalidPointer, bus)
	}
	if int(pak) >= len(i.data) {
		return 0, fmt.Errorf("%w: bus address %#06x maps beyond image", ErrInvalidPointer, bus)
	}

	return int(pak), nil
}

// WriteAt copies b into the image at offset.
func (i *Image) WriteAt(offset int, b []byte) error {
	if err := i.check(offset, len(b)); err != nil {
		return err
	}
	copy(i.data[offset:], b)
	return nil
}

// PutUint8At stores the byte at offset.
func (i *Image) PutUint8At(offset int, v uint8) error {
	if err := i.check(offset, 1); err != nil {
		return err
	}
	i.data[offset] = v
	return nil
}

// PutUint16At stores the little-endian word at offset.
func (i *Image) PutUint16At(offset int, v uint16) error {
	if err := i.check(offset, 2); err != nil {
		return err
	}
	i.data[offset] = byte(v)
	i.data[offset+1] = byte(v >> 8)
	return nil
}
