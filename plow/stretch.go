package plow

import (
	"context"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/tiles"
)

// tileCapture is one tile lifted out of a selection before it is erased,
// recorded in cd's own coordinate frame (no yank-style rotation, since a
// stretch only ever translates).
type tileCapture struct {
	plane ttype.PlaneIndex
	rect  geom.Rect
	t     ttype.Type
}

// StretchSelection is a thin client on top of Plow (spec.md §4.7): it
// lifts selection's tiles and child uses into memory, erases the
// original paint, plows a path open at the translated position so
// trailing material is stretched out of the way exactly as an ordinary
// Plow would, and repaints the lifted selection at its new position —
// preserving the selection's own shape rather than letting it stretch
// too. ok carries Plow's own clip-and-partial-commit result.
func (e *Engine) StretchSelection(ctx context.Context, cd *celldef.CellDef, selection geom.Rect, dir Direction, delta geom.DU, allowed ttype.Mask) bool {
	var captures []tileCapture
	for i := 0; i < cd.NumPlanes(); i++ {
		idx := ttype.PlaneIndex(i)
		p := cd.Plane(idx)
		p.AreaEnum(selection, fullMask(), func(id tiles.TileID) bool {
			local, ok := selection.Clip(p.Rect(id))
			if !ok {
				return true
			}
			captures = append(captures, tileCapture{plane: idx, rect: local, t: p.Tile(id).Body().TypeExact()})
			return true
		})
	}

	var movedUses []*celldef.CellUse
	cd.UsesOverlapping(selection, func(u *celldef.CellUse) bool {
		movedUses = append(movedUses, u)
		return true
	})

	for i := 0; i < cd.NumPlanes(); i++ {
		cd.Plane(ttype.PlaneIndex(i)).Paint(selection, ttype.Space, keepNewType)
	}
	for _, u := range movedUses {
		cd.RemoveUse(u)
	}

	dv := deltaVector(dir, delta)
	ok := e.Plow(ctx, cd, leadingBand(selection, dir, delta), allowed, dir)

	for _, c := range captures {
		cd.Plane(c.plane).Paint(c.rect.Translate(dv), c.t, keepNewType)
	}
	translate := geom.Transform{A: 1, E: 1, C: dv.X, F: dv.Y}
	for _, u := range movedUses {
		placed := &celldef.CellUse{
			Def:       u.Def,
			Transform: translate.Compose(u.Transform),
			Array:     u.Array,
			Ident:     u.Ident,
			Expand:    u.Expand,
			Flags:     u.Flags,
		}
		cd.PlaceUse(placed)
	}

	cd.RecomputeBBox()
	return ok
}

// deltaVector turns a direction and magnitude into a translation vector.
func deltaVector(dir Direction, delta geom.DU) geom.Point {
	switch dir {
	case East:
		return geom.Point{X: delta}
	case West:
		return geom.Point{X: -delta}
	case North:
		return geom.Point{Y: delta}
	default: // South
		return geom.Point{Y: -delta}
	}
}

// leadingBand is the delta-wide strip immediately ahead of selection in
// dir — plowing exactly this strip pushes whatever trailing material sits
// beyond selection out by delta, opening just enough room for the
// captured selection to be repainted at its translated position. Plowing
// the whole translated selection rect instead would push trailing
// material by the selection's own width, not by delta.
func leadingBand(selection geom.Rect, dir Direction, delta geom.DU) geom.Rect {
	switch dir {
	case East:
		return geom.RectFromCoords(selection.Max.X, selection.Min.Y, selection.Max.X+delta, selection.Max.Y)
	case West:
		return geom.RectFromCoords(selection.Min.X-delta, selection.Min.Y, selection.Min.X, selection.Max.Y)
	case North:
		return geom.RectFromCoords(selection.Min.X, selection.Max.Y, selection.Max.X, selection.Max.Y+delta)
	default: // South
		return geom.RectFromCoords(selection.Min.X, selection.Min.Y-delta, selection.Max.X, selection.Min.Y)
	}
}
