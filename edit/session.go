/*
Package edit implements the editing model: a session owning the decoded
working set of tilemaps and graphics sheets, brush strokes against them, and
an undo/redo history of immutable actions.
*/
package edit

import (
	"io"
	"log"
	"sort"

	"github.com/owedit/owedit/bank"
	"github.com/owedit/owedit/rom"
	"github.com/owedit/owedit/snes"
	"github.com/owedit/owedit/tilemap"
)

// maxActions bounds the undo history. When a new action would exceed it the
// oldest entries are dropped first.
const maxActions = 256

// Session owns a ROM image and the entities decoded from it. Entities are
// decoded lazily on first open and stay resident for the session's lifetime.
// A session is not safe for concurrent use; all operations are sequential.
type Session struct {
	img    *rom.Image
	logger *log.Logger

	maps     map[uint8]*tilemap.Map
	sheets   map[uint8]*bank.Sheet
	palettes map[uint8]snes.Palette

	undo []*Action
	redo []*Action

	dirty bool

	dirtyMaps     map[uint8]bool
	dirtySheets   map[uint8]bool
	dirtyPalettes map[uint8]bool
}

// NewSession returns a session for the given image. A nil logger discards
// all output.
func NewSession(img *rom.Image, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		img:           img,
		logger:        logger,
		maps:          make(map[uint8]*tilemap.Map),
		sheets:        make(map[uint8]*bank.Sheet),
		palettes:      make(map[uint8]snes.Palette),
		dirtyMaps:     make(map[uint8]bool),
		dirtySheets:   make(map[uint8]bool),
		dirtyPalettes: make(map[uint8]bool),
	}
}

// Image returns the ROM image the session was created from.
func (s *Session) Image() *rom.Image {
	return s.img
}

// OpenMap returns the tilemap for the given area, decoding it on first use.
func (s *Session) OpenMap(areaID uint8) (*tilemap.Map, error) {
	if m, ok := s.maps[areaID]; ok {
		return m, nil
	}

	m, err := tilemap.DecodeArea(s.img, areaID)
	if err != nil {
		return nil, err
	}

	s.maps[areaID] = m
	s.logger.Printf("opened area %#02x\n", areaID)

	return m, nil
}

// OpenSheet returns the graphics sheet with the given id, decoding it on
// first use.
func (s *Session) OpenSheet(id uint8) (*bank.Sheet, error) {
	if sh, ok := s.sheets[id]; ok {
		return sh, nil
	}

	sh, err := bank.DecodeSheet(s.img, id)
	if err != nil {
		return nil, err
	}

	s.sheets[id] = sh
	s.logger.Printf("opened sheet %#02x\n", id)

	return sh, nil
}

// Palette returns one palette row, decoding it on first use.
func (s *Session) Palette(slot uint8) (snes.Palette, error) {
	if p, ok := s.palettes[slot]; ok {
		return p, nil
	}

	p, err := bank.DecodePalette(s.img, slot)
	if err != nil {
		return snes.Palette{}, err
	}

	s.palettes[slot] = p
	return p, nil
}

// SetPalette replaces one palette row in the working set and marks it dirty.
func (s *Session) SetPalette(slot uint8, p snes.Palette) {
	s.palettes[slot] = p
	s.dirtyPalettes[slot] = true
	s.dirty = true
}

// MarkMapDirty flags an open map as needing export after an edit made
// outside the action system, such as an import.
func (s *Session) MarkMapDirty(areaID uint8) {
	s.dirtyMaps[areaID] = true
	s.dirty = true
}

// MarkSheetDirty flags an open sheet as needing export after an edit made
// outside the action system, such as an import.
func (s *Session) MarkSheetDirty(id uint8) {
	s.dirtySheets[id] = true
	s.dirty = true
}

// OpenAreas returns the ids of all areas opened during this session, in
// ascending order.
func (s *Session) OpenAreas() []uint8 {
	ids := make([]uint8, 0, len(s.maps))
	for id := range s.maps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Dirty reports whether uncommitted edits exist.
func (s *Session) Dirty() bool {
	return s.dirty
}

// MarkClean transitions the session to the clean state without clearing the
// undo/redo history. Called after a successful save or export.
func (s *Session) MarkClean() {
	s.dirty = false
	s.dirtyMaps = make(map[uint8]bool)
	s.dirtySheets = make(map[uint8]bool)
	s.dirtyPalettes = make(map[uint8]bool)
}

// Apply plays an action's after state onto its target, pushes it on the undo
// stack and clears the redo stack.
func (s *Session) Apply(a *Action) {
	if a == nil || len(a.cells) == 0 {
		return
	}

	s.play(a, true)

	s.undo = append(s.undo, a)
	if len(s.undo) > maxActions {
		s.undo = s.undo[len(s.undo)-maxActions:]
	}
	s.redo = s.redo[:0]

	s.markTarget(a.Target)
}

// Undo reverts the most recent action. It is a no-op when the undo stack is
// empty.
func (s *Session) Undo() {
	if len(s.undo) == 0 {
		return
	}

	a := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	s.play(a, false)

	s.redo = append(s.redo, a)
	s.markTarget(a.Target)
}

// Redo reapplies the most recently undone action. It is a no-op when the
// redo stack is empty.
func (s *Session) Redo() {
	if len(s.redo) == 0 {
		return
	}

	a := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]

	s.play(a, true)

	s.undo = append(s.undo, a)
	s.markTarget(a.Target)
}

// UndoDepth returns the number of actions available to undo.
func (s *Session) UndoDepth() int {
	return len(s.undo)
}

// RedoDepth returns the number of actions available to redo.
func (s *Session) RedoDepth() int {
	return len(s.redo)
}

// DirtyMaps returns the ids of maps edited since the last save, ascending.
func (s *Session) DirtyMaps() []uint8 {
	return sortedKeys(s.dirtyMaps)
}

// DirtySheets returns the ids of sheets edited since the last save,
// ascending.
func (s *Session) DirtySheets() []uint8 {
	return sortedKeys(s.dirtySheets)
}

// DirtyPalettes returns the slots of palettes edited since the last save,
// ascending.
func (s *Session) DirtyPalettes() []uint8 {
	return sortedKeys(s.dirtyPalettes)
}

func sortedKeys(m map[uint8]bool) []uint8 {
	ids := make([]uint8, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Session) markTarget(t TargetID) {
	s.dirty = true
	switch t.Kind {
	case TargetMap:
		s.dirtyMaps[t.ID] = true
	case TargetSheet:
		s.dirtySheets[t.ID] = true
	}
}

// play writes an action's before or after values into its target. The
// target is always resident: actions are only created against open
// entities.
func (s *Session) play(a *Action, after bool) {
	switch a.Target.Kind {
	case TargetMap:
		m, ok := s.maps[a.Target.ID]
		if !ok {
			return
		}
		tiles := a.beforeTiles
		if after {
			tiles = a.afterTiles
		}
		for i, c := range a.cells {
			m.SetTileAt(c.X, c.Y, tiles[i])
		}
	case TargetSheet:
		sh, ok := s.sheets[a.Target.ID]
		if !ok {
			return
		}
		pixels := a.beforePixels
		if after {
			pixels = a.afterPixels
		}
		for i, c := range a.cells {
			sh.SetPixelAt(c.X, c.Y, pixels[i])
		}
	}
}

// CellInfo is the per-cell metadata shown in the status bar.
type CellInfo struct {
	GraphicsID   uint16
	PaletteIndex uint8
	FlipH        bool
	FlipV        bool
	Collision    tilemap.CollisionType
}

// CellInfo reports the metadata of one map cell. The second return value is
// false when the area is not open or the coordinates are out of bounds.
func (s *Session) CellInfo(areaID uint8, x, y int) (CellInfo, bool) {
	m, ok := s.maps[areaID]
	if !ok {
		return CellInfo{}, false
	}

	t, ok := m.TileAt(x, y)
	if !ok {
		return CellInfo{}, false
	}

	return CellInfo{
		GraphicsID:   t.GraphicsID,
		PaletteIndex: t.PaletteIndex,
		FlipH:        t.FlipH,
		FlipV:        t.FlipV,
		Collision:    t.Collision,
	}, true
}
