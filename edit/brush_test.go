package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owedit/owedit/bank"
	"github.com/owedit/owedit/edit"
	"github.com/owedit/owedit/tilemap"
)

func pixelAt(t *testing.T, s *edit.Session, x, y int) uint8 {
	t.Helper()

	sh, err := s.OpenSheet(fixtureSheet)
	require.NoError(t, err)

	v, ok := sh.PixelAt(x, y)
	require.True(t, ok)
	return v
}

func TestPixelStrokeDebounce(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	st, err := s.BeginPixelStroke(fixtureSheet, 7, 1)
	require.NoError(t, err)

	// The same cell is hit by repeated events within one stroke.
	st.Press(5, 5)
	st.Move(5, 5)
	st.Move(5, 5)
	a := st.Release()

	require.NotNil(t, a)
	assert.Len(t, a.Cells(), 1)
	assert.Equal(t, uint8(7), pixelAt(t, s, 5, 5))

	// One undo reverts the whole stroke.
	s.Undo()
	assert.Equal(t, uint8(0), pixelAt(t, s, 5, 5))
	assert.Equal(t, 0, s.UndoDepth())
}

func TestPixelStrokeNoNetChange(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	// Painting the value the cells already hold is a no-op: no action.
	st, err := s.BeginPixelStroke(fixtureSheet, 0, 2)
	require.NoError(t, err)
	st.Press(5, 5)
	st.Move(6, 6)
	assert.Nil(t, st.Release())
	assert.Equal(t, 0, s.UndoDepth())
	assert.False(t, s.Dirty())
}

func TestPixelStrokeOOBResume(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	st, err := s.BeginPixelStroke(fixtureSheet, 3, 1)
	require.NoError(t, err)

	st.Press(0, 0)

	// The cursor leaves the canvas and comes back; the button never went
	// up, so painting resumes.
	st.Move(-5, -5)
	st.Move(bank.Width+10, 2)
	assert.Equal(t, edit.ButtonDown, st.Button())
	st.Move(1, 0)

	a := st.Release()
	require.NotNil(t, a)

	// Exactly one action covering the in-bounds cells only.
	assert.ElementsMatch(t, []edit.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}, a.Cells())
	assert.Equal(t, 1, s.UndoDepth())
}

func TestStrokeButtonState(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	st, err := s.BeginPixelStroke(fixtureSheet, 3, 1)
	require.NoError(t, err)

	// Cursor events before the button goes down paint nothing.
	st.Move(0, 0)
	assert.Equal(t, edit.ButtonUp, st.Button())
	assert.Equal(t, uint8(0), pixelAt(t, s, 0, 0))

	st.Press(0, 0)
	assert.Equal(t, edit.ButtonDown, st.Button())

	st.Release()

	// Late events after release are ignored and nothing is applied twice.
	st.Move(2, 2)
	assert.Nil(t, st.Release())
	assert.Equal(t, uint8(0), pixelAt(t, s, 2, 2))
	assert.Equal(t, 1, s.UndoDepth())
}

func TestStrokeCancel(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	st, err := s.BeginPixelStroke(fixtureSheet, 9, 1)
	require.NoError(t, err)

	st.Press(4, 4)
	require.Equal(t, uint8(9), pixelAt(t, s, 4, 4))

	// Focus loss before button-up: preview rolled back, no action.
	st.Cancel()
	assert.Equal(t, uint8(0), pixelAt(t, s, 4, 4))
	assert.Equal(t, 0, s.UndoDepth())
	assert.False(t, s.Dirty())
}

func TestTileStrokeScenario(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	st, err := s.BeginTileStroke(fixtureArea, tilemap.Tile{GraphicsID: 0x34}, 1)
	require.NoError(t, err)
	st.Press(3, 4)
	require.NotNil(t, st.Release())

	assert.Equal(t, uint16(0x34), graphicsAt(t, s, 3, 4))

	s.Undo()
	assert.Equal(t, uint16(0x12), graphicsAt(t, s, 3, 4))

	s.Redo()
	assert.Equal(t, uint16(0x34), graphicsAt(t, s, 3, 4))
}

func TestTileStrokeBrushSize(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	// A 2x2 brush at the corner clips to the grid.
	st, err := s.BeginTileStroke(fixtureArea, tilemap.Tile{GraphicsID: 0x55}, 2)
	require.NoError(t, err)
	st.Press(tilemap.Width-1, tilemap.Height-1)
	a := st.Release()

	require.NotNil(t, a)
	assert.Equal(t, []edit.Cell{{X: tilemap.Width - 1, Y: tilemap.Height - 1}}, a.Cells())
}

func TestTileStrokeCancelRestoresTiles(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	st, err := s.BeginTileStroke(fixtureArea, tilemap.Tile{GraphicsID: 0x77}, 1)
	require.NoError(t, err)
	st.Press(3, 4)
	require.Equal(t, uint16(0x77), graphicsAt(t, s, 3, 4))

	st.Cancel()
	assert.Equal(t, uint16(0x12), graphicsAt(t, s, 3, 4))
}
