package tiles

import (
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
)

// Plane owns the tile arena for one paint plane (or cell plane) of a
// CellDef: the four sentinel tiles enclosing the universe plus a mutable
// "hint" tile used as the starting point for point location (spec.md §3).
type Plane struct {
	arena []Tile
	free  []TileID

	left, right, top, bottom TileID
	hint                     TileID
}

// NewPlane creates a plane whose single interior tile spans the universe
// and carries spaceBody (spec.md §3 "Universe": four sentinel tiles at
// +-Infinity enclose the plane).
func NewPlane(spaceBody ttype.Body) *Plane {
	p := &Plane{}
	// Sentinels: conceptually infinite tiles beyond the universe edges.
	// We give them degenerate coordinates just outside Universe so that
	// LEFT/BOTTOM/TOP/RIGHT derivations (which read a neighbor's ll) stay
	// internally consistent without special-casing "is this a sentinel".
	u := geom.Universe
	p.left = p.alloc(Tile{ll: geom.Point{X: geom.MinInfinity - 1, Y: geom.MinInfinity - 1}})
	p.right = p.alloc(Tile{ll: geom.Point{X: u.Max.X, Y: geom.MinInfinity - 1}})
	p.bottom = p.alloc(Tile{ll: geom.Point{X: geom.MinInfinity - 1, Y: geom.MinInfinity - 1}})
	p.top = p.alloc(Tile{ll: geom.Point{X: geom.MinInfinity - 1, Y: u.Max.Y}})
	interior := p.alloc(Tile{ll: u.Min, body: spaceBody})

	// Interior tile's stitches: all four sides touch the corresponding
	// sentinel, which is exactly what "enclosing the universe" means.
	p.set(interior, func(t *Tile) {
		t.lb, t.bl, t.tr, t.rt = p.bottom, p.left, p.top, p.right
	})
	// Sentinels point back at the interior tile as their sole neighbor;
	// this is enough for the corner-stitch walks to terminate correctly
	// since sentinels are never split.
	p.set(p.left, func(t *Tile) { t.tr, t.rt = interior, interior })
	p.set(p.right, func(t *Tile) { t.lb, t.tr = interior, interior })
	p.set(p.bottom, func(t *Tile) { t.tr, t.rt = interior, interior })
	p.set(p.top, func(t *Tile) { t.lb, t.bl = interior, interior })

	p.hint = interior
	return p
}

func (p *Plane) alloc(t Tile) TileID {
	if n := len(p.free); n > 0 {
		id := p.free[n-1]
		p.free = p.free[:n-1]
		p.arena[id] = t
		return id
	}
	p.arena = append(p.arena, t)
	return TileID(len(p.arena) - 1)
}

func (p *Plane) freeTile(id TileID) {
	p.arena[id] = Tile{}
	p.free = append(p.free, id)
}

func (p *Plane) set(id TileID, f func(*Tile)) {
	t := p.arena[id]
	f(&t)
	p.arena[id] = t
}

// Tile returns the live Tile for id. The returned pointer is only valid
// until the next mutating call on p (alloc may reuse slots in place, so
// callers must not cache it across paint/erase/split/join calls).
func (p *Plane) Tile(id TileID) *Tile {
	return &p.arena[id]
}

// IsSentinel reports whether id names one of the four universe-enclosing
// tiles.
func (p *Plane) IsSentinel(id TileID) bool {
	return id == p.left || id == p.right || id == p.top || id == p.bottom
}

// Left, Bottom, Right, Top derive a tile's full extent from its stored
// lower-left corner and its TR/RT neighbors (spec.md §3).
func (p *Plane) Left(id TileID) geom.DU   { return p.arena[id].ll.X }
func (p *Plane) Bottom(id TileID) geom.DU { return p.arena[id].ll.Y }

func (p *Plane) Right(id TileID) geom.DU {
	if p.IsSentinel(id) {
		return geom.Infinity
	}
	return p.Left(p.arena[id].tr)
}

func (p *Plane) Top(id TileID) geom.DU {
	if p.IsSentinel(id) {
		return geom.Infinity
	}
	return p.Bottom(p.arena[id].rt)
}

// Rect returns the full rectangle of a (non-sentinel) tile.
func (p *Plane) Rect(id TileID) geom.Rect {
	return geom.Rect{
		Min: geom.Point{X: p.Left(id), Y: p.Bottom(id)},
		Max: geom.Point{X: p.Right(id), Y: p.Top(id)},
	}
}

// Hint returns the plane's current point-location hint tile.
func (p *Plane) Hint() TileID { return p.hint }

// SetHint updates the point-location hint. Updating the hint is always
// correctness-neutral (spec.md §3): it only affects point_locate's
// running time.
func (p *Plane) SetHint(id TileID) { p.hint = id }
