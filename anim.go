package owedit

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/owedit/owedit/bank"
	"github.com/owedit/owedit/rom"
	"github.com/owedit/owedit/snes"
)

// Animated tiles are stored as a pointer table of animation records. Each
// record is a frame count, that many sheet ids and that many frame
// durations. Import is the only direction implemented; animations are not
// written back on export.
const (
	// AnimationCount is the number of entries in the animation pointer table.
	AnimationCount = 32

	// AnimPointerTable holds one 3 byte bus pointer per animation.
	AnimPointerTable = 0x045000

	maxFrames = 16
)

var (
	// ErrUnknownAnimation is returned for an animation id outside the table.
	ErrUnknownAnimation = errors.New("owedit: unknown animation")

	// ErrFrameCount is returned when an animation record holds no frames or
	// more than the format allows.
	ErrFrameCount = errors.New("owedit: bad frame count")
)

// Animation is an ordered sequence of graphics sheet frames with one
// duration per frame, in 60 Hz ticks. The two sequences are always the same
// length.
type Animation struct {
	ID        uint8
	Frames    []snes.Sheet
	Durations []uint8
}

// DecodeAnimation locates and decodes one animation record, including the
// graphics sheet of every frame.
func DecodeAnimation(img *rom.Image, id uint8) (*Animation, error) {
	if int(id) >= AnimationCount {
		return nil, fmt.Errorf("%w: %#02x", ErrUnknownAnimation, id)
	}

	offset, err := img.PointerAt(AnimPointerTable + int(id)*3)
	if err != nil {
		return nil, fmt.Errorf("animation %#02x: %w", id, err)
	}

	n, err := img.Uint8At(offset)
	if err != nil {
		return nil, err
	}
	if n == 0 || n > maxFrames {
		return nil, fmt.Errorf("%w: %d", ErrFrameCount, n)
	}

	record, err := img.ReadAt(offset+1, int(n)*2)
	if err != nil {
		return nil, fmt.Errorf("animation %#02x: %w", id, rom.ErrInvalidPointer)
	}

	a := &Animation{
		ID:        id,
		Frames:    make([]snes.Sheet, n),
		Durations: append([]uint8(nil), record[n:]...),
	}

	for i := 0; i < int(n); i++ {
		sh, err := bank.DecodeSheet(img, record[i])
		if err != nil {
			return nil, err
		}
		a.Frames[i] = sh.Tiles
	}

	return a, nil
}

// MarshalBinary encodes the animation for interchange: id, frame count, the
// durations and then every frame's tile data.
func (a *Animation) MarshalBinary() ([]byte, error) {
	if len(a.Frames) == 0 || len(a.Frames) > maxFrames {
		return nil, fmt.Errorf("%w: %d", ErrFrameCount, len(a.Frames))
	}
	if len(a.Durations) != len(a.Frames) {
		return nil, fmt.Errorf("%w: %d frames, %d durations", ErrFrameCount, len(a.Frames), len(a.Durations))
	}

	b := new(bytes.Buffer)
	b.WriteByte(a.ID)
	b.WriteByte(byte(len(a.Frames)))
	b.Write(a.Durations)

	for _, f := range a.Frames {
		b.Write(snes.EncodeSheet(f))
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes an animation produced by MarshalBinary.
func (a *Animation) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return errors.New("owedit: insufficient data")
	}

	a.ID = hdr[0]
	n := int(hdr[1])
	if n == 0 || n > maxFrames {
		return fmt.Errorf("%w: %d", ErrFrameCount, n)
	}

	a.Durations = make([]uint8, n)
	if _, err := io.ReadFull(r, a.Durations); err != nil {
		return errors.New("owedit: insufficient data")
	}

	a.Frames = make([]snes.Sheet, n)
	frame := make([]byte, bank.TilesPerSheet*snes.TileBytes)
	for i := range a.Frames {
		if _, err := io.ReadFull(r, frame); err != nil {
			return errors.New("owedit: insufficient data")
		}

		s, err := snes.DecodeSheet(frame, bank.TilesPerSheet)
		if err != nil {
			return err
		}
		a.Frames[i] = s
	}

	return nil
}
