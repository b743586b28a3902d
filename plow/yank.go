package plow

import (
	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/tiles"
)

// Yank copies the portion of cd's paint planes and child uses overlapping
// rect into a fresh scratch CellDef, translated so rect.Min sits at the
// origin and then rotated by rot (spec.md §4.6 "Yank buffer"). rot is
// expected to be one of the four direction transforms in this package, all
// of which have a zero translation component, so rotating after
// translating to the origin is equivalent to rotating about rect's own
// corner. origin is rect.Min, the reference point WriteBack needs to map
// scratch coordinates back into cd's original frame; extent is rect
// itself mapped into scratch coordinates — the bound every later pass
// (propagation's seed edges, CleanupJogs, WriteBack) must scan, since
// scratch.BBox only tracks painted (non-space) area and would miss a
// freshly vacated patch of space at the yank's own edge.
func Yank(cd *celldef.CellDef, rect geom.Rect, rot geom.Transform) (scratch *celldef.CellDef, origin geom.Point, extent geom.Rect) {
	scratch = celldef.NewCellDef(cd.Name+"$yank", cd.NumPlanes())
	origin = rect.Min
	toLocal := geom.Point{X: -origin.X, Y: -origin.Y}
	extent = ToScratch(origin, rot, rect)

	for i := 0; i < cd.NumPlanes(); i++ {
		idx := ttype.PlaneIndex(i)
		src := cd.Plane(idx)
		dst := scratch.Plane(idx)
		src.AreaEnum(rect, fullMask(), func(id tiles.TileID) bool {
			local, ok := rect.Clip(src.Rect(id))
			if !ok {
				return true
			}
			t := src.Tile(id).Body().TypeExact()
			target := rot.ApplyRect(local.Translate(toLocal))
			dst.Paint(target, t, keepNewType)
			return true
		})
	}

	// Child uses carried along by reference: a use's own contents are
	// re-checked through drc.InteractionCheck against its new position, not
	// duplicated tile-by-tile into scratch.
	cd.UsesOverlapping(rect, func(u *celldef.CellUse) bool {
		moved := geom.Transform{A: 1, E: 1, C: toLocal.X, F: toLocal.Y}
		placed := &celldef.CellUse{
			Def:       u.Def,
			Transform: rot.Compose(moved).Compose(u.Transform),
			Array:     u.Array,
			Ident:     u.Ident,
			Expand:    u.Expand,
			Flags:     u.Flags,
		}
		scratch.PlaceUse(placed)
		return true
	})

	scratch.RecomputeBBox()
	scratch.BBox = scratch.BBox.Union(extent)
	return scratch, origin, extent
}

// ToScratch maps r from cd's original frame into the scratch frame Yank(cd,
// rect, rot) produces when it is called with that same origin and rot: shift
// so origin sits at the coordinate-system origin, then rotate. Any rectangle
// computed against the pre-yank cd (a plow rectangle, a seed edge's band)
// must be passed through this before it is compared against anything living
// in scratch — scratch's tiles and uses have already been shifted and
// rotated by exactly this transform.
func ToScratch(origin geom.Point, rot geom.Transform, r geom.Rect) geom.Rect {
	toLocal := geom.Point{X: -origin.X, Y: -origin.Y}
	return rot.ApplyRect(r.Translate(toLocal))
}
