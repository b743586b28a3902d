package plow

import (
	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
)

// EdgeFlag marks special handling for one Edge.
type EdgeFlag uint8

const (
	// EdgeVirtual marks the seed edge representing the plow's own trailing
	// face — it carries no material of its own, only a target position
	// every other edge must clear.
	EdgeVirtual EdgeFlag = 1 << iota
	// EdgeFixed marks an edge that belongs to fixed-width geometry (a
	// contact or transistor gate): both its faces must move together by
	// the same delta, never independently (spec.md §4.6 "fixedLHS/RHS").
	EdgeFixed
	// EdgeDragged marks an edge carried along because the CellUse it
	// belongs to is itself being dragged (spec.md §4.6 "cells").
	EdgeDragged
)

// Edge is the unit of motion during propagation (spec.md §4.6 "Edges"): a
// vertical strip at X spanning [YBot,YTop) with types L (west side) and R
// (east side), a target position FinalX it must reach, an optional
// CellUse being dragged instead of plain material, the plane index it
// lives on, and flags selecting special handling.
type Edge struct {
	X, FinalX  geom.DU
	YBot, YTop geom.DU
	L, R       ttype.Type
	Use        *celldef.CellUse
	Plane      ttype.PlaneIndex
	Flags      EdgeFlag
}

