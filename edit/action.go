package edit

import "github.com/owedit/owedit/tilemap"

// TargetKind identifies which entity type an action edits.
type TargetKind int

const (
	TargetMap TargetKind = iota
	TargetSheet
)

// TargetID names one entity in the working set: an area id for maps, a
// sheet id for graphics sheets.
type TargetID struct {
	Kind TargetKind
	ID   uint8
}

// Cell is one grid coordinate: a tile position on a map or a pixel position
// on a sheet canvas.
type Cell struct {
	X, Y int
}

// Action is the immutable unit of undo/redo. It records, for every touched
// cell, the value before and after one completed stroke. Replaying the
// after values always reproduces the exact state that existed when the
// action was recorded.
type Action struct {
	Target TargetID

	cells []Cell

	beforeTiles []tilemap.Tile
	afterTiles  []tilemap.Tile

	beforePixels []uint8
	afterPixels  []uint8
}

// Cells returns a copy of the touched cell coordinates.
func (a *Action) Cells() []Cell {
	return append([]Cell(nil), a.cells...)
}
