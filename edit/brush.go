package edit

import "github.com/owedit/owedit/tilemap"

// ButtonState is the pointer button state of a stroke. It changes only on
// explicit button events, never because the cursor left the canvas.
type ButtonState int

const (
	ButtonUp ButtonState = iota
	ButtonDown
)

// Stroke accumulates one brush stroke from button press to button release.
// Painted cells are written to the working buffer immediately so the UI can
// preview them, while the stroke records the net effect per cell: painting
// the same cell twice, or painting a cell that already holds the brush
// value, adds nothing to the eventual action.
//
// Coordinates outside the target are dropped; the stroke stays active and
// resumes painting when the cursor returns. Exactly one action is submitted
// to the session, at release, covering all cells the stroke changed. A
// stroke that changed nothing submits no action.
type Stroke struct {
	session *Session
	target  TargetID
	size    int

	button ButtonState
	done   bool

	paintTile  tilemap.Tile
	paintPixel uint8

	order        []Cell
	beforeTiles  map[Cell]tilemap.Tile
	beforePixels map[Cell]uint8
}

// BeginTileStroke starts a tile brush stroke against an area, opening it if
// necessary. The brush paints size by size tiles per event.
func (s *Session) BeginTileStroke(areaID uint8, t tilemap.Tile, size int) (*Stroke, error) {
	if _, err := s.OpenMap(areaID); err != nil {
		return nil, err
	}
	return &Stroke{
		session:     s,
		target:      TargetID{Kind: TargetMap, ID: areaID},
		size:        brushSize(size),
		paintTile:   t,
		beforeTiles: make(map[Cell]tilemap.Tile),
	}, nil
}

// BeginPixelStroke starts a pixel brush stroke against a graphics sheet,
// opening it if necessary. The brush paints size by size pixels per event.
func (s *Session) BeginPixelStroke(sheetID uint8, v uint8, size int) (*Stroke, error) {
	if _, err := s.OpenSheet(sheetID); err != nil {
		return nil, err
	}
	return &Stroke{
		session:      s,
		target:       TargetID{Kind: TargetSheet, ID: sheetID},
		size:         brushSize(size),
		paintPixel:   v & 0x0f,
		beforePixels: make(map[Cell]uint8),
	}, nil
}

func brushSize(size int) int {
	if size < 1 {
		return 1
	}
	return size
}

// Button returns the stroke's current button state.
func (st *Stroke) Button() ButtonState {
	return st.button
}

// Press handles a button-down event at (x, y).
func (st *Stroke) Press(x, y int) {
	if st.done {
		return
	}
	st.button = ButtonDown
	st.paint(x, y)
}

// Move handles a cursor event at (x, y). It paints only while the button is
// down.
func (st *Stroke) Move(x, y int) {
	if st.done || st.button != ButtonDown {
		return
	}
	st.paint(x, y)
}

// Release handles the button-up event, ending the stroke. The net effect is
// recorded as a single action, applied to the session exactly once and
// returned. A stroke that changed nothing returns nil.
func (st *Stroke) Release() *Action {
	if st.done {
		return nil
	}
	st.button = ButtonUp
	st.done = true

	if len(st.order) == 0 {
		return nil
	}

	a := &Action{
		Target: st.target,
		cells:  st.order,
	}

	switch st.target.Kind {
	case TargetMap:
		a.beforeTiles = make([]tilemap.Tile, len(st.order))
		a.afterTiles = make([]tilemap.Tile, len(st.order))
		for i, c := range st.order {
			a.beforeTiles[i] = st.beforeTiles[c]
			a.afterTiles[i] = st.paintTile
		}
	case TargetSheet:
		a.beforePixels = make([]uint8, len(st.order))
		a.afterPixels = make([]uint8, len(st.order))
		for i, c := range st.order {
			a.beforePixels[i] = st.beforePixels[c]
			a.afterPixels[i] = st.paintPixel
		}
	}

	st.session.Apply(a)

	return a
}

// Cancel aborts the stroke before button-up, rolling every previewed cell
// back to its pre-stroke value. No action is emitted.
func (st *Stroke) Cancel() {
	if st.done {
		return
	}
	st.button = ButtonUp
	st.done = true

	switch st.target.Kind {
	case TargetMap:
		m := st.session.maps[st.target.ID]
		for _, c := range st.order {
			m.SetTileAt(c.X, c.Y, st.beforeTiles[c])
		}
	case TargetSheet:
		sh := st.session.sheets[st.target.ID]
		for _, c := range st.order {
			sh.SetPixelAt(c.X, c.Y, st.beforePixels[c])
		}
	}
}

// paint covers the size by size block anchored at (x, y), dropping cells
// outside the target and cells that already hold the brush value.
func (st *Stroke) paint(x, y int) {
	for dy := 0; dy < st.size; dy++ {
		for dx := 0; dx < st.size; dx++ {
			st.paintCell(Cell{X: x + dx, Y: y + dy})
		}
	}
}

func (st *Stroke) paintCell(c Cell) {
	switch st.target.Kind {
	case TargetMap:
		m := st.session.maps[st.target.ID]

		cur, ok := m.TileAt(c.X, c.Y)
		if !ok {
			return
		}
		if _, seen := st.beforeTiles[c]; seen {
			return
		}
		if cur == st.paintTile {
			return
		}

		st.beforeTiles[c] = cur
		st.order = append(st.order, c)
		m.SetTileAt(c.X, c.Y, st.paintTile)
	case TargetSheet:
		sh := st.session.sheets[st.target.ID]

		cur, ok := sh.PixelAt(c.X, c.Y)
		if !ok {
			return
		}
		if _, seen := st.beforePixels[c]; seen {
			return
		}
		if cur == st.paintPixel {
			return
		}

		st.beforePixels[c] = cur
		st.order = append(st.order, c)
		sh.SetPixelAt(c.X, c.Y, st.paintPixel)
	}
}
