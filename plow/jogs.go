package plow

import (
	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/drc"
)

// commitEdge makes ed's motion real: an ordinary edge's vacated band is
// repainted with its own trailing type (the material west of the edge
// simply extends into the space the plowed boundary leaves behind); an
// edge carrying a CellUse is translated instead of painted (spec.md §4.6
// "cells").
func commitEdge(scratch *celldef.CellDef, ed *Edge) {
	if ed.Flags&EdgeVirtual != 0 || ed.FinalX <= ed.X {
		return
	}
	if ed.Use != nil {
		delta := ed.FinalX - ed.X
		scratch.RemoveUse(ed.Use)
		ed.Use.Transform.C += delta
		scratch.PlaceUse(ed.Use)
		return
	}
	band := geom.RectFromCoords(ed.X, ed.YBot, ed.FinalX, ed.YTop)
	scratch.Plane(ed.Plane).Paint(band, ed.L, keepNewType)
}

// CleanupJogs runs once after propagation settles, closing any stray
// free-space notch left narrower than horizon between two tiles of the
// same material within extent (spec.md §4.6 "Jog cleanup"): it is exactly
// drc.DecomposeMaximalRects applied with Space as the excluded type,
// giving disjoint pure-space sub-rectangles of the yanked area, each
// checked against its immediate west/east neighbors.
func CleanupJogs(scratch *celldef.CellDef, extent geom.Rect, horizon geom.DU) {
	for i := 0; i < scratch.NumPlanes(); i++ {
		idx := ttype.PlaneIndex(i)
		p := scratch.Plane(idx)
		for _, gap := range drc.DecomposeMaximalRects(p, extent, fullMask().Subtract(ttype.MaskOf(ttype.Space))) {
			if gap.Width() >= horizon || gap.Empty() {
				continue
			}
			mid := (gap.Min.Y + gap.Max.Y) / 2
			west := p.PointLocate(geom.Point{X: gap.Min.X - 1, Y: mid})
			east := p.PointLocate(geom.Point{X: gap.Max.X, Y: mid})
			if p.IsSentinel(west) || p.IsSentinel(east) {
				continue
			}
			wt := p.Tile(west).Body().TypeExact()
			et := p.Tile(east).Body().TypeExact()
			if wt != et || wt == ttype.Space {
				continue
			}
			p.Paint(gap, wt, keepNewType)
		}
	}
}
