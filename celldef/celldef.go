/*
Package celldef implements the named-design layer on top of a tile plane:
CellDef (a design with one paint plane per layer plus a dedicated cell
plane tracking which child CellUses overlap which area), CellUse
(an instance of a CellDef under an orthogonal transform), and Label
(a piece of text attached to a location in a CellDef).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package celldef

import (
	"time"

	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/tiles"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer, following the teacher's per-package T()
// idiom (e.g. engine/frame/doc.go, tiles.T()).
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Flag bits on a CellDef (spec.md §3 "CellDef").
type Flag uint8

const (
	FlagAvailable Flag = 1 << iota
	FlagModified
	FlagReadOnly
	FlagFlatGDSCached
	FlagVendorGDS
)

// CellDef is a named design: a fixed-size array of layer planes plus a
// dedicated cell plane recording which CellUses overlap which area, a
// label list, a bounding box, status flags, a modification timestamp, a
// property map, and a transient client word used by traversal algorithms
// (spec.md §3 "CellDef").
//
// CellDef carries no generic SideTable of its own the way tiles.Plane's
// algorithms do (see tiles.SideTable) — the client word here is a single
// transient slot on the CellDef itself, matching spec.md's wording that it
// is "a" word, not one per tile; DRC and plow each type-assert it to
// whatever they stashed there for the duration of one traversal.
type CellDef struct {
	Name string

	planes    []*tiles.Plane
	cellPlane *tiles.Plane
	overlaps  *tiles.SideTable[[]*CellUse] // cellPlane tile -> uses overlapping it

	Labels []*Label
	BBox   geom.Rect

	flags     Flag
	Timestamp time.Time
	Props     map[string]string

	client any // transient, traversal-scoped; see doc comment above

	uses []*CellUse // child uses, for bookkeeping and BBox recomputation
}

// NewCellDef creates an empty design over numPlanes layer planes, each
// initialized to all-space, plus a cell plane initialized to "no uses".
func NewCellDef(name string, numPlanes int) *CellDef {
	cd := &CellDef{
		Name:      name,
		planes:    make([]*tiles.Plane, numPlanes),
		Props:     make(map[string]string),
		Timestamp: time.Time{},
		flags:     FlagAvailable,
	}
	for i := range cd.planes {
		cd.planes[i] = tiles.NewPlane(ttype.Rectangular(ttype.Space))
	}
	cd.cellPlane = tiles.NewPlane(ttype.Rectangular(ttype.Space))
	cd.overlaps = tiles.NewSideTable[[]*CellUse]()
	return cd
}

// Plane returns the layer plane for a given plane index.
func (cd *CellDef) Plane(idx ttype.PlaneIndex) *tiles.Plane {
	return cd.planes[idx]
}

// NumPlanes returns the number of layer planes this CellDef carries.
func (cd *CellDef) NumPlanes() int { return len(cd.planes) }

// CellPlane returns the dedicated plane whose tiles partition the design
// area by which set of child uses overlaps that area (spec.md §4.2).
func (cd *CellDef) CellPlane() *tiles.Plane {
	return cd.cellPlane
}

// Flags returns the current status flags.
func (cd *CellDef) Flags() Flag { return cd.flags }

// SetFlag and ClearFlag toggle one status bit.
func (cd *CellDef) SetFlag(f Flag)      { cd.flags |= f }
func (cd *CellDef) ClearFlag(f Flag)    { cd.flags &^= f }
func (cd *CellDef) HasFlag(f Flag) bool { return cd.flags&f != 0 }

// Client returns the transient traversal-scoped word. Callers must not
// assume it survives across unrelated algorithm runs.
func (cd *CellDef) Client() any { return cd.client }

// SetClient stores the transient traversal-scoped word.
func (cd *CellDef) SetClient(v any) { cd.client = v }

// Touch updates Timestamp to now and marks the CellDef modified. Time is
// threaded in by the caller (Session) rather than read from the wall
// clock here, keeping CellDef deterministic and independently testable.
func (cd *CellDef) Touch(now time.Time) {
	cd.Timestamp = now
	cd.SetFlag(FlagModified)
}

// PlaceUse records use against every cell-plane tile its bounding box
// overlaps, recomputing cd.BBox (spec.md §4.2). Unlike a material Paint,
// the cell plane's tiles never change type (they stay Space forever — the
// per-area state lives in the overlap side-table, not the tile body), so
// placement only aligns tile edges at rect's boundary and never re-merges
// them (RemoveUse does not re-merge either): calling tiles.Plane.Paint here would merge
// the freshly split tiles straight back together, since same-type
// adjacency is exactly what Paint's own re-merge pass looks for.
func (cd *CellDef) PlaceUse(use *CellUse) {
	rect := use.BBox()
	cd.alignCellPlaneEdges(rect)
	cd.cellPlane.AreaEnum(rect, ttype.MaskOf(ttype.Space), func(id tiles.TileID) bool {
		existing, _ := cd.overlaps.Get(id)
		cd.overlaps.Set(id, append(existing, use))
		return true
	})
	cd.uses = append(cd.uses, use)
	cd.BBox = cd.BBox.Union(rect)
	T().Debugf("celldef %s: placed use of %s at %s", cd.Name, use.Def.Name, rect)
}

// alignCellPlaneEdges splits every cell-plane tile straddling one of
// rect's four boundary lines, the same scanline technique tiles.Plane.Paint
// uses internally (tiles.alignEdges), reimplemented here against the
// tiles package's public API since the cell plane is never routed through
// Paint itself.
func (cd *CellDef) alignCellPlaneEdges(rect geom.Rect) {
	p := cd.cellPlane
	splitColumnAt := func(x geom.DU) {
		if x <= geom.MinInfinity || x >= geom.Infinity {
			return
		}
		id := p.PointLocate(geom.Point{X: x, Y: rect.Min.Y})
		for {
			if p.Left(id) < x && x < p.Right(id) {
				p.SplitX(id, x)
			}
			if p.Top(id) >= rect.Max.Y {
				return
			}
			id = p.Tile(id).RT()
		}
	}
	splitRowAt := func(y geom.DU) {
		if y <= geom.MinInfinity || y >= geom.Infinity {
			return
		}
		id := p.PointLocate(geom.Point{X: rect.Min.X, Y: y})
		for {
			if p.Bottom(id) < y && y < p.Top(id) {
				p.SplitY(id, y)
			}
			if p.Right(id) >= rect.Max.X {
				return
			}
			id = p.Tile(id).TR()
		}
	}
	splitColumnAt(rect.Min.X)
	splitColumnAt(rect.Max.X)
	splitRowAt(rect.Min.Y)
	splitRowAt(rect.Max.Y)
}

// RemoveUse erases use's bookkeeping from the cell plane's overlap lists.
// It does not recompute BBox (callers doing a bulk edit should recompute
// once at the end via RecomputeBBox).
func (cd *CellDef) RemoveUse(use *CellUse) {
	rect := use.BBox()
	cd.cellPlane.AreaEnum(rect, ttype.MaskOf(ttype.Space), func(id tiles.TileID) bool {
		existing, ok := cd.overlaps.Get(id)
		if !ok {
			return true
		}
		filtered := existing[:0]
		for _, u := range existing {
			if u != use {
				filtered = append(filtered, u)
			}
		}
		if len(filtered) == 0 {
			cd.overlaps.Delete(id)
		} else {
			cd.overlaps.Set(id, filtered)
		}
		return true
	})
	for i, u := range cd.uses {
		if u == use {
			cd.uses = append(cd.uses[:i], cd.uses[i+1:]...)
			break
		}
	}
}

// UsesOverlapping enumerates every distinct CellUse overlapping rect,
// without scanning cd's whole child list (spec.md §4.2).
func (cd *CellDef) UsesOverlapping(rect geom.Rect, visit func(*CellUse) bool) {
	seen := make(map[*CellUse]bool)
	cd.cellPlane.AreaEnum(rect, ttype.MaskOf(ttype.Space), func(id tiles.TileID) bool {
		for _, use := range mustGet(cd.overlaps, id) {
			if seen[use] {
				continue
			}
			seen[use] = true
			if !visit(use) {
				return false
			}
		}
		return true
	})
}

func mustGet(t *tiles.SideTable[[]*CellUse], id tiles.TileID) []*CellUse {
	v, _ := t.Get(id)
	return v
}

// RecomputeBBox rebuilds BBox from scratch over all child uses and this
// CellDef's own direct geometry planes' painted area. Used after a bulk
// edit where per-operation incremental updates were skipped.
func (cd *CellDef) RecomputeBBox() {
	var bbox geom.Rect
	for _, use := range cd.uses {
		bbox = bbox.Union(use.BBox())
	}
	for _, p := range cd.planes {
		bbox = bbox.Union(paintedExtent(p))
	}
	cd.BBox = bbox
}

// paintedExtent returns the bounding box of every non-space tile on p.
func paintedExtent(p *tiles.Plane) geom.Rect {
	var bbox geom.Rect
	p.AreaEnum(geom.Universe, nonSpaceMask(), func(id tiles.TileID) bool {
		bbox = bbox.Union(p.Rect(id))
		return true
	})
	return bbox
}

// nonSpaceMask matches every type except space — AreaEnum needs an
// explicit mask, and "everything that was actually painted" is exactly
// "not space".
func nonSpaceMask() ttype.Mask {
	var m ttype.Mask
	for i := range m {
		m[i] = ^uint64(0)
	}
	return m.Subtract(ttype.MaskOf(ttype.Space))
}
