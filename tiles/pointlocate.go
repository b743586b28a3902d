package tiles

import "github.com/corngeom/vlsicore/core/geom"

// PointLocate returns the tile whose half-open rectangle contains pt
// (spec.md §4.1, §8 property 3). It starts from the plane's hint and walks
// corner stitches toward pt; running time is proportional to the L-inf
// tile-step distance between the hint and the target, not to plane size.
//
// The walk has two phases. First, a vertical phase follows LB/RT until the
// current tile's [bottom,top) strip contains pt.Y. Then a horizontal phase
// follows BL/TR until the tile's [left,right) span contains pt.X — and
// because stepping left or right can land on a tile whose vertical strip
// no longer contains pt.Y (the corner-stitch invariant only guarantees
// alignment at one corner), each horizontal step re-runs the vertical
// correction before continuing.
func (p *Plane) PointLocate(pt geom.Point) TileID {
	id := p.hint

	id = p.settleVertical(id, pt.Y)

	for p.Left(id) > pt.X {
		id = p.arena[id].bl
		id = p.settleVertical(id, pt.Y)
	}
	for p.Right(id) <= pt.X {
		id = p.arena[id].tr
		id = p.settleVertical(id, pt.Y)
	}

	p.hint = id
	return id
}

// settleVertical walks LB/RT from id until the tile's [bottom,top) strip
// contains y.
func (p *Plane) settleVertical(id TileID, y geom.DU) TileID {
	for p.Bottom(id) > y {
		id = p.arena[id].lb
	}
	for p.Top(id) <= y {
		id = p.arena[id].rt
	}
	return id
}
