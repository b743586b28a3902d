package plow

import (
	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/drc"
	"github.com/corngeom/vlsicore/rules"
	"github.com/corngeom/vlsicore/tiles"
)

// applySearchRules runs every plow search rule against one popped edge
// before it commits (spec.md §4.6 "Search rules"): illegal can veto the
// motion outright; the rest enqueue further edges so that whatever the
// motion would otherwise leave overlapping, under-width, uncovered, or
// disconnected gets its own edge queued in turn.
func (e *Engine) applySearchRules(scratch *celldef.CellDef, ed *Edge, q *edgeQueue, allowed ttype.Mask) {
	T().Debugf("plow: edge plane=%d x=%d final=%d y=[%d,%d] type=%v", ed.Plane, ed.X, ed.FinalX, ed.YBot, ed.YTop, ed.R)
	if e.isIllegal(ed, allowed) {
		ed.FinalX = ed.X
		return
	}
	e.clearUmbra(scratch, ed, q)
	e.umbra(scratch, ed, q)
	e.penumbra(scratch, ed, q, true)
	e.penumbra(scratch, ed, q, false)
	e.fixedWidth(scratch, ed, q)
	e.contacts(scratch, ed, q)
	e.cover(scratch, ed, q)
	e.sliver(scratch, ed, q)
	e.cells(scratch, ed, q)
	e.dragStubs(scratch, ed, q)
	e.inSliver(scratch, ed, q)
}

// isIllegal reports whether ed's own material type may not move at all
// under this plow request's allowed-types mask (spec.md §4.6 "illegal").
// The virtual seed edge carries no material and is never vetoed.
func (e *Engine) isIllegal(ed *Edge, allowed ttype.Mask) bool {
	if ed.Flags&EdgeVirtual != 0 || ed.R == ttype.Space {
		return false
	}
	return !allowed.Has(ed.R)
}

// pushObstructions scans plane within rect for tiles whose type is not in
// okMask, and for each, enqueues an edge at that tile's own right boundary
// requiring it to move at least delta further east — the mechanism shared
// by clearUmbra, umbra, penumbra, and cover: nothing may be left
// overlapping the freshly plowed position.
func pushObstructions(scratch *celldef.CellDef, plane ttype.PlaneIndex, rect geom.Rect, okMask ttype.Mask, delta geom.DU, q *edgeQueue) {
	if rect.Empty() || delta <= 0 {
		return
	}
	p := scratch.Plane(plane)
	p.AreaEnum(rect, fullMask(), func(id tiles.TileID) bool {
		t := p.Tile(id).Body().TypeExact()
		if okMask.Has(t) {
			return true
		}
		r := p.Rect(id)
		q.push(&Edge{
			X: r.Max.X, FinalX: r.Max.X + delta,
			YBot: maxDU(r.Min.Y, rect.Min.Y), YTop: minDU(r.Max.Y, rect.Max.Y),
			L: t, R: t,
			Plane: plane,
		})
		return true
	})
}

// clearUmbra pushes anything standing in the band ed vacates (its umbra)
// that isn't background, since committing ed simply repaints that band
// with ed.L and would otherwise silently erase whatever was there
// (spec.md §4.6 "clearUmbra"). This also drives the initial sweep: the
// seed edge's own umbra is the whole plow rectangle, so clearUmbra is what
// turns it into one concrete edge per obstruction actually found there.
func (e *Engine) clearUmbra(scratch *celldef.CellDef, ed *Edge, q *edgeQueue) {
	delta := ed.FinalX - ed.X
	rect := geom.RectFromCoords(ed.X, ed.YBot, ed.FinalX, ed.YTop)
	pushObstructions(scratch, ed.Plane, rect, ttype.MaskOf(ttype.Space), delta, q)
}

// umbra applies the self-spacing rule for ed.R's own type, pushing any
// same-type material found too close ahead of ed's new position (spec.md
// §4.6 "umbra"). Self-spacing (Pair{ed.R, ed.R}) is the dominant case a
// technology's spacing buckets express between like materials; cross-type
// spacing is handled per pair as those pairs are discovered via the basic
// check after the plow commits, not pre-emptively here.
func (e *Engine) umbra(scratch *celldef.CellDef, ed *Edge, q *edgeQueue) {
	delta := ed.FinalX - ed.X
	for _, sr := range e.Rules.SpacingRules(rules.Pair{L: ed.R, R: ed.R}) {
		if sr.Plane != ed.Plane || sr.PenumbraOnly {
			continue
		}
		rect := geom.RectFromCoords(ed.FinalX, ed.YBot, ed.FinalX+geom.DU(sr.Distance), ed.YTop)
		pushObstructions(scratch, sr.Plane, rect, sr.OkMask, delta, q)
	}
}

// penumbra is umbra's corner case: spacing rules flagged PenumbraOnly
// apply only to the strip extending past ed's top or bottom face, not its
// full height (spec.md §4.6 "penumbraTop"/"penumbraBot").
func (e *Engine) penumbra(scratch *celldef.CellDef, ed *Edge, q *edgeQueue, top bool) {
	delta := ed.FinalX - ed.X
	for _, sr := range e.Rules.SpacingRules(rules.Pair{L: ed.R, R: ed.R}) {
		if sr.Plane != ed.Plane || !sr.PenumbraOnly {
			continue
		}
		d := geom.DU(sr.Distance)
		var rect geom.Rect
		if top {
			rect = geom.RectFromCoords(ed.X, ed.YTop, ed.FinalX+d, ed.YTop+d)
		} else {
			rect = geom.RectFromCoords(ed.X, ed.YBot-d, ed.FinalX+d, ed.YBot)
		}
		pushObstructions(scratch, sr.Plane, rect, sr.OkMask, delta, q)
	}
}

// fixedWidth keeps a fixed-width boundary's two faces moving together: if
// ed's trailing type is in the catalog's FixedTypes set, the opposite face
// found by probing straight west is enqueued for the same delta (spec.md
// §4.6 "fixedLHS"/"fixedRHS").
func (e *Engine) fixedWidth(scratch *celldef.CellDef, ed *Edge, q *edgeQueue) {
	if e.Catalog == nil || !e.Catalog.FixedTypes().Has(ed.R) {
		return
	}
	ed.Flags |= EdgeFixed
	delta := ed.FinalX - ed.X
	p := scratch.Plane(ed.Plane)
	mid := (ed.YBot + ed.YTop) / 2
	id := p.PointLocate(geom.Point{X: ed.X - 1, Y: mid})
	if p.IsSentinel(id) {
		return
	}
	oppositeX := p.Left(id)
	q.push(&Edge{
		X: oppositeX, FinalX: oppositeX + delta,
		YBot: p.Bottom(id), YTop: p.Top(id),
		L: p.Tile(id).Body().TypeExact(), R: ed.R,
		Plane: ed.Plane, Flags: EdgeFixed,
	})
}

// contacts drags a contact's residue tiles on every other plane along with
// it, so a via never separates from the layers it stacks (spec.md §4.6
// "contactLHS"/"contactRHS").
func (e *Engine) contacts(scratch *celldef.CellDef, ed *Edge, q *edgeQueue) {
	if e.Catalog == nil || !e.Catalog.IsContact(ed.R) {
		return
	}
	delta := ed.FinalX - ed.X
	residues := e.Catalog.Residues(ed.R)
	if residues.IsEmpty() {
		return
	}
	rect := geom.RectFromCoords(ed.X, ed.YBot, ed.FinalX, ed.YTop)
	for i := 0; i < scratch.NumPlanes(); i++ {
		idx := ttype.PlaneIndex(i)
		p := scratch.Plane(idx)
		p.AreaEnum(rect, residues, func(id tiles.TileID) bool {
			r := p.Rect(id)
			t := p.Tile(id).Body().TypeExact()
			q.push(&Edge{
				X: r.Max.X, FinalX: r.Max.X + delta,
				YBot: r.Min.Y, YTop: r.Max.Y,
				L: t, R: t, Plane: idx,
			})
			return true
		})
	}
}

// cover drags along any material on a different plane whose type is
// marked covered, so a layer that must always sit under another one never
// gets left behind by the move (spec.md §4.6 "cover").
func (e *Engine) cover(scratch *celldef.CellDef, ed *Edge, q *edgeQueue) {
	if e.Catalog == nil {
		return
	}
	covered := e.Catalog.CoveredTypes()
	if covered.IsEmpty() {
		return
	}
	delta := ed.FinalX - ed.X
	rect := geom.RectFromCoords(ed.X, ed.YBot, ed.FinalX, ed.YTop)
	okMask := fullMask().Subtract(covered)
	for i := 0; i < scratch.NumPlanes(); i++ {
		idx := ttype.PlaneIndex(i)
		if idx == ed.Plane {
			continue
		}
		pushObstructions(scratch, idx, rect, okMask, delta, q)
	}
}

// cells drags along any CellUse overlapping the vacated band whole,
// instead of letting its contents be repainted tile by tile (spec.md §4.6
// "cells"): commitEdge recognizes Edge.Use and translates the use instead
// of painting.
func (e *Engine) cells(scratch *celldef.CellDef, ed *Edge, q *edgeQueue) {
	if ed.Use != nil {
		return // a cell-drag edge; do not re-derive a drag from itself
	}
	delta := ed.FinalX - ed.X
	rect := geom.RectFromCoords(ed.X, ed.YBot, ed.FinalX, ed.YTop)
	scratch.UsesOverlapping(rect, func(u *celldef.CellUse) bool {
		b := u.BBox()
		q.push(&Edge{
			X: b.Max.X, FinalX: b.Max.X + delta,
			YBot: b.Min.Y, YTop: b.Max.Y,
			Use: u, Plane: ed.Plane, Flags: EdgeDragged,
		})
		return true
	})
}

// dragStubs protects a drag's trailing connection: when a fixed-width or
// cell-dragged edge leaves a solid material stub behind narrower than the
// technology's minimum width for that type, the stub is folded into the
// drag rather than left to violate width on its own (spec.md §4.6
// "dragStubs"). The stub's width is found with the same maximal-rectangle
// decomposition (drc.DecomposeMaximalRects) that DRC's maxwidth-with-bends
// scanner uses, applied here to solid material instead of free space.
func (e *Engine) dragStubs(scratch *celldef.CellDef, ed *Edge, q *edgeQueue) {
	if ed.Flags&(EdgeFixed|EdgeDragged) == 0 {
		return
	}
	p := scratch.Plane(ed.Plane)
	trailing := geom.RectFromCoords(ed.X-e.Halo, ed.YBot, ed.X, ed.YTop)
	delta := ed.FinalX - ed.X
	for _, stub := range drc.DecomposeMaximalRects(p, trailing, ttype.MaskOf(ttype.Space)) {
		if stub.Width() >= e.minStubWidth(ed.R) {
			continue
		}
		q.push(&Edge{
			X: stub.Min.X, FinalX: stub.Min.X + delta,
			YBot: stub.Min.Y, YTop: stub.Max.Y,
			L: ed.R, R: ed.R, Plane: ed.Plane,
		})
	}
}

func (e *Engine) minStubWidth(t ttype.Type) geom.DU {
	var min geom.DU
	for _, wr := range e.Rules.WidthRules(rules.Pair{L: t, R: t}) {
		if d := geom.DU(wr.Distance); d > min {
			min = d
		}
	}
	return min
}

// sliver and inSliver are deliberately no-ops here: a sub-minimum-width
// gap's true extent is only known once every edge sharing its Y-range has
// reached its own FinalX, so both are resolved in one pass by
// CleanupJogs after propagation settles, rather than edge by edge
// (spec.md §4.6 "sliver"/"inSliver", "Jog cleanup").
func (e *Engine) sliver(scratch *celldef.CellDef, ed *Edge, q *edgeQueue)   {}
func (e *Engine) inSliver(scratch *celldef.CellDef, ed *Edge, q *edgeQueue) {}

func maxDU(a, b geom.DU) geom.DU {
	if a > b {
		return a
	}
	return b
}

func minDU(a, b geom.DU) geom.DU {
	if a < b {
		return a
	}
	return b
}
