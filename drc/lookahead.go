package drc

import (
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/rules"
	"github.com/corngeom/vlsicore/tiles"
)

// edgeSide names which border of the scanned tile produced an edge,
// fixing which direction a look-ahead rectangle extrudes away from it
// (spec.md §4.5.1: basic check walks each tile's left and bottom border).
type edgeSide uint8

const (
	edgeLeft edgeSide = iota
	edgeBottom
)

// edge is one scanned tile border: the shared segment between a tile and
// one neighbor along its left or bottom side, plus the ordered type pair
// that border carries.
type edge struct {
	side   edgeSide
	pair   rules.Pair
	x0, x1 geom.DU
	y0, y1 geom.DU
}

// lookaheadRect computes the look-ahead rectangle for one edge under one
// cookie (spec.md §4.5.1 step 1): the edge segment extruded by
// c.Distance away from L into R, then grown by c.CornerDistance at the
// leading corner of the segment (and the trailing corner too, if
// FlagBothCorners is set) whenever the tile sitting at that corner
// matches c.CornerMask.
func lookaheadRect(p *tiles.Plane, e edge, c *rules.DrcCookie) geom.Rect {
	var base geom.Rect
	switch e.side {
	case edgeLeft:
		base = geom.Rect{Min: geom.Point{X: e.x0, Y: e.y0}, Max: geom.Point{X: e.x0 + c.Distance, Y: e.y1}}
	case edgeBottom:
		base = geom.Rect{Min: geom.Point{X: e.x0, Y: e.y0}, Max: geom.Point{X: e.x1, Y: e.y0 + c.Distance}}
	}
	if c.CornerDistance <= 0 || c.CornerMask.IsEmpty() {
		return base
	}

	leading, trailing := cornerPoints(e)
	out := base
	if r, ok := cornerExtension(p, e, c, leading); ok {
		out = out.Union(r)
	}
	if c.Flags&rules.FlagBothCorners != 0 {
		if r, ok := cornerExtension(p, e, c, trailing); ok {
			out = out.Union(r)
		}
	}
	return out
}

// cornerPoints returns the two endpoints of the scanned segment, in scan
// order: "leading" is the endpoint basic check reaches first (spec.md's
// forward, left-to-right / bottom-to-top scan), "trailing" the other.
func cornerPoints(e edge) (leading, trailing geom.Point) {
	switch e.side {
	case edgeLeft:
		return geom.Point{X: e.x0, Y: e.y0}, geom.Point{X: e.x0, Y: e.y1}
	default:
		return geom.Point{X: e.x0, Y: e.y0}, geom.Point{X: e.x1, Y: e.y0}
	}
}

// cornerExtension grows the look-ahead rectangle past one end of the
// segment, if the tile occupying that corner is a CornerMask member.
func cornerExtension(p *tiles.Plane, e edge, c *rules.DrcCookie, corner geom.Point) (geom.Rect, bool) {
	id := p.PointLocate(corner)
	if p.IsSentinel(id) {
		return geom.Rect{}, false
	}
	if !ttype.MaskOf(p.Tile(id).Body().TypeExact()).Intersects(c.CornerMask) {
		return geom.Rect{}, false
	}
	switch e.side {
	case edgeLeft:
		return geom.Rect{
			Min: geom.Point{X: corner.X, Y: corner.Y - c.CornerDistance},
			Max: geom.Point{X: corner.X + c.Distance, Y: corner.Y + c.CornerDistance},
		}, true
	default:
		return geom.Rect{
			Min: geom.Point{X: corner.X - c.CornerDistance, Y: corner.Y},
			Max: geom.Point{X: corner.X + c.CornerDistance, Y: corner.Y + c.Distance},
		}, true
	}
}

// radialAccept implements the optional Euclidean correction (spec.md
// §4.5.1 step 2): candidate is accepted only if some point of it falls
// within a quarter circle of radius c.CornerDistance centered on origin.
// Since candidate and the circle are both convex and axis-aligned /
// centered, the nearest point of candidate to origin is enough to decide
// this: if even the closest point is outside the radius, every other
// point is farther still.
func radialAccept(candidate geom.Rect, origin geom.Point, radius geom.DU) bool {
	if radius <= 0 {
		return true
	}
	nx := clampDU(origin.X, candidate.Min.X, candidate.Max.X)
	ny := clampDU(origin.Y, candidate.Min.Y, candidate.Max.Y)
	dx := int64(nx - origin.X)
	dy := int64(ny - origin.Y)
	return dx*dx+dy*dy <= int64(radius)*int64(radius)
}

func clampDU(v, lo, hi geom.DU) geom.DU {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
