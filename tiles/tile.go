/*
Package tiles implements the corner-stitched tile plane: a space-efficient
planar subdivision supporting point location, area enumeration, and
paint/erase in time proportional to the size of the affected area rather
than the size of the whole plane.

A plane is represented as an arena of tiles (spec.md's design notes, §9,
"Corner stitches vs. arenas"): tiles live in a flat slice and refer to each
other by index rather than by pointer, which halves the per-tile footprint
on 64-bit hosts and needs no unsafe code.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tiles

import (
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer, following the teacher's per-package T()
// idiom (e.g. engine/frame/doc.go).
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// TileID is an index into a Plane's tile arena. NilTile denotes "no tile"
// and is only ever seen transiently during construction; every live tile
// has all four stitches pointing at real tiles (the four sentinels close
// the plane, per spec.md §3 "Universe").
type TileID int32

// NilTile is the zero-value sentinel for "no tile".
const NilTile TileID = -1

// Tile is the atomic cell of a plane. Its geometry is implicit: Left and
// Bottom are stored; Right and Top are derived from the TR/RT neighbors
// (spec.md §3).
//
// Tile carries no transient "client" word. spec.md's design notes (§9)
// recommend against multiplexing a single field across algorithms;
// instead DRC and plow each keep their own SideTable keyed by TileID (see
// sidetable.go).
type Tile struct {
	ll   geom.Point
	body ttype.Body

	lb, bl, tr, rt TileID
}

// Left returns the tile's west edge coordinate.
func (t *Tile) Left() geom.DU { return t.ll.X }

// Bottom returns the tile's south edge coordinate.
func (t *Tile) Bottom() geom.DU { return t.ll.Y }

// Body returns the tile's material content.
func (t *Tile) Body() ttype.Body { return t.body }

// LB, BL, TR, RT are the four corner stitches (spec.md §3): LB is the
// topmost tile abutting the bottom edge whose left <= this left; BL is the
// rightmost tile abutting the left edge whose bottom <= this bottom; TR
// and RT are symmetric on the top and right edges.
func (t *Tile) LB() TileID { return t.lb }
func (t *Tile) BL() TileID { return t.bl }
func (t *Tile) TR() TileID { return t.tr }
func (t *Tile) RT() TileID { return t.rt }

// SideTable is a sparse side-table keyed by TileID, used by DRC and plow
// to attach transient per-tile data (a processed flag, a trailing-x)
// without touching the Tile struct itself. Only one algorithm is expected
// to hold a given SideTable instance at a time (spec.md §9 "Client word").
type SideTable[V any] struct {
	m map[TileID]V
}

// NewSideTable creates an empty side-table.
func NewSideTable[V any]() *SideTable[V] {
	return &SideTable[V]{m: make(map[TileID]V)}
}

// Get returns the stored value for id and whether it was present.
func (s *SideTable[V]) Get(id TileID) (V, bool) {
	v, ok := s.m[id]
	return v, ok
}

// Set stores v for id.
func (s *SideTable[V]) Set(id TileID, v V) {
	s.m[id] = v
}

// Delete removes any stored value for id.
func (s *SideTable[V]) Delete(id TileID) {
	delete(s.m, id)
}

// Len returns the number of entries currently stored.
func (s *SideTable[V]) Len() int {
	return len(s.m)
}
