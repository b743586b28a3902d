package plow

import (
	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/tiles"
)

// WriteBack copies scratch's paint planes and child uses back into cd,
// mapping scratch coordinates through rot's inverse and back to origin
// (spec.md §4.6 "Write-back"). extent (the yank rectangle in scratch
// coordinates) bounds the copy, not scratch.BBox, since propagation can
// leave part of the yanked band as bare space that must still overwrite
// whatever cd had there before — scratch.BBox only tracks painted area
// and would skip exactly the band a successful plow clears.
func WriteBack(cd *celldef.CellDef, scratch *celldef.CellDef, origin geom.Point, toOriginal geom.Transform, extent geom.Rect) {
	fromLocal := geom.Point{X: origin.X, Y: origin.Y}

	for i := 0; i < cd.NumPlanes(); i++ {
		idx := ttype.PlaneIndex(i)
		src := scratch.Plane(idx)
		dst := cd.Plane(idx)
		src.AreaEnum(extent, fullMask(), func(id tiles.TileID) bool {
			t := src.Tile(id).Body().TypeExact()
			r, ok := extent.Clip(src.Rect(id))
			if !ok {
				return true
			}
			target := toOriginal.ApplyRect(r).Translate(fromLocal)
			dst.Paint(target, t, keepNewType)
			return true
		})
	}

	old := make([]*celldef.CellUse, 0)
	cd.UsesOverlapping(toOriginal.ApplyRect(extent).Translate(fromLocal), func(u *celldef.CellUse) bool {
		old = append(old, u)
		return true
	})
	for _, u := range old {
		cd.RemoveUse(u)
	}
	scratch.UsesOverlapping(extent, func(u *celldef.CellUse) bool {
		back := geom.Transform{A: 1, E: 1, C: fromLocal.X, F: fromLocal.Y}
		placed := &celldef.CellUse{
			Def:       u.Def,
			Transform: back.Compose(toOriginal).Compose(u.Transform),
			Array:     u.Array,
			Ident:     u.Ident,
			Expand:    u.Expand,
			Flags:     u.Flags,
		}
		cd.PlaceUse(placed)
		return true
	})
	cd.RecomputeBBox()
}
