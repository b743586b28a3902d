package drc

import (
	"context"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/rules"
	"github.com/corngeom/vlsicore/tiles"
)

// Check runs the basic check (spec.md §4.5.1) over every paint plane of
// cd, inside rect, reporting through sink. It is the entry point used
// directly on an edit cell; InteractionCheck and ArrayCheck (§4.5.3,
// §4.5.4) both reduce to calling this over a yanked scratch CellDef.
func (e *Engine) Check(ctx context.Context, cd *celldef.CellDef, rect geom.Rect, sink Sink) {
	if cd.HasFlag(celldef.FlagVendorGDS) {
		// A vendor GDS cell moves as a rigid bounding box and is never
		// checked against the current technology (spec.md §6).
		return
	}
	rpt := newReporter(sink, e.Mode)
	for i := 0; i < cd.NumPlanes(); i++ {
		e.checkPlane(ctx, cd, ttype.PlaneIndex(i), rect, rpt)
		if canceled(ctx) {
			return
		}
	}
	T().Infof("drc: check of %s over %s complete", cd.Name, rect)
}

// InteractionCheck runs the basic check on scratch, a CellDef already
// populated by a caller-performed yank of the relevant child uses
// (spec.md §4.5.3). The yank buffer itself belongs to the plow engine's
// scratch-CellDef machinery, not to drc.
func (e *Engine) InteractionCheck(ctx context.Context, scratch *celldef.CellDef, rect geom.Rect, sink Sink) {
	e.Check(ctx, scratch, rect, sink)
}

// ArrayCheck runs the basic check over each of an arrayed use's four
// canonical interaction windows (NE, N, E, and the interior strip between
// neighboring elements, each clipped by the array pitch) against scratch,
// a CellDef the caller has yanked the relevant element pair(s) into
// (spec.md §4.5.4). scratch is expected to already carry TT_ERROR_S-typed
// tiles wherever the yank's paint-merge mapped an illegal cross-element
// overlap, so an ordinary basic check surfaces them like any other
// violation.
func (e *Engine) ArrayCheck(ctx context.Context, use *celldef.CellUse, scratch *celldef.CellDef, sink Sink) {
	if use.Array == nil {
		return
	}
	a := use.Array
	elem := use.Def.BBox
	w, h := elem.Width(), elem.Height()

	windows := [4]geom.Rect{
		geom.RectFromCoords(elem.Min.X, elem.Min.Y, elem.Max.X+a.XSep, elem.Max.Y+a.YSep),       // NE
		geom.RectFromCoords(elem.Min.X, elem.Min.Y, elem.Max.X, elem.Max.Y+a.YSep),              // N
		geom.RectFromCoords(elem.Min.X, elem.Min.Y, elem.Max.X+a.XSep, elem.Max.Y),               // E
		geom.RectFromCoords(elem.Min.X+w, elem.Min.Y+h, elem.Min.X+a.XSep, elem.Min.Y+a.YSep+h), // interior strip
	}
	for _, win := range windows {
		if win.Empty() {
			continue
		}
		e.Check(ctx, scratch, win, sink)
		if canceled(ctx) {
			return
		}
	}
}

// fullMask matches every possible type; AreaEnum needs an explicit mask
// and the basic check wants to visit every tile regardless of type, since
// it is the edges between tiles, not the tiles' own types, that it
// filters on.
func fullMask() ttype.Mask {
	var m ttype.Mask
	for i := range m {
		m[i] = ^uint64(0)
	}
	return m
}

func (e *Engine) checkPlane(ctx context.Context, cd *celldef.CellDef, idx ttype.PlaneIndex, rect geom.Rect, rpt *reporter) {
	p := cd.Plane(idx)
	p.AreaEnum(rect, fullMask(), func(id tiles.TileID) bool {
		if canceled(ctx) {
			return false
		}
		tile := p.Tile(id)
		left := tile.Left()
		bottom := tile.Bottom()
		top := p.Top(id)
		right := p.Right(id)

		walkLeftBorder(p, id, func(nb tiles.TileID) {
			y0, y1 := maxDU(p.Bottom(nb), bottom), minDU(p.Top(nb), top)
			if y0 >= y1 {
				return
			}
			pair := rules.Pair{L: p.Tile(nb).Body().RightType(), R: tile.Body().LeftType()}
			ed := edge{side: edgeLeft, pair: pair, x0: left, x1: left, y0: y0, y1: y1}
			e.runChain(cd, idx, ed, e.Rules.Cookies(pair), rpt)
		})
		walkBottomBorder(p, id, func(nb tiles.TileID) {
			x0, x1 := maxDU(p.Left(nb), left), minDU(p.Right(nb), right)
			if x0 >= x1 {
				return
			}
			pair := rules.Pair{L: p.Tile(nb).Body().TopType(), R: tile.Body().BottomType()}
			ed := edge{side: edgeBottom, pair: pair, x0: x0, x1: x1, y0: bottom, y1: bottom}
			e.runChain(cd, idx, ed, e.Rules.Cookies(pair), rpt)
		})
		return true
	})
}

// walkLeftBorder visits every tile abutting id's left edge, bottom to
// top, the same BL/RT stitch-following walk splitColumnAt uses to align
// a vertical line (tiles/paint.go).
func walkLeftBorder(p *tiles.Plane, id tiles.TileID, visit func(tiles.TileID)) {
	top := p.Top(id)
	nb := p.Tile(id).BL()
	for !p.IsSentinel(nb) {
		visit(nb)
		if p.Top(nb) >= top {
			return
		}
		nb = p.Tile(nb).RT()
	}
}

// walkBottomBorder visits every tile abutting id's bottom edge, left to
// right, the LB/TR symmetric walk to walkLeftBorder.
func walkBottomBorder(p *tiles.Plane, id tiles.TileID, visit func(tiles.TileID)) {
	right := p.Right(id)
	nb := p.Tile(id).LB()
	for !p.IsSentinel(nb) {
		visit(nb)
		if p.Right(nb) >= right {
			return
		}
		nb = p.Tile(nb).TR()
	}
}

// runChain evaluates a cookie chain for one edge (spec.md §4.5.1 steps
// 1-5): an ordinary cookie enumerates CheckPlane violators directly; a
// trigger cookie enumerates candidates and hands each, as a pseudo-edge
// of its own extent, to the next cookie in the chain instead of
// reporting.
func (e *Engine) runChain(cd *celldef.CellDef, scanPlane ttype.PlaneIndex, ed edge, head *rules.DrcCookie, rpt *reporter) {
	for c := head; c != nil; c = c.Next {
		T().Debugf("drc: cookie plane=%d pair=%v vs edge side=%v [%d,%d]x[%d,%d]", c.CheckPlane, ed.pair, ed.side, ed.x0, ed.x1, ed.y0, ed.y1)
		if c.Flags.IsSpecialized() {
			e.runSpecialized(cd, ed, c, rpt)
			continue
		}
		rect := lookaheadRect(cd.Plane(scanPlane), ed, c)
		if c.Flags&rules.FlagTrigger != 0 {
			leading, _ := cornerPoints(ed)
			candidates := e.findViolators(cd, rect, c, leading)
			if c.Next == nil {
				continue
			}
			for _, cand := range candidates {
				nextEd := edge{side: ed.side, pair: ed.pair, x0: cand.Min.X, x1: cand.Max.X, y0: cand.Min.Y, y1: cand.Max.Y}
				e.runChain(cd, scanPlane, nextEd, c.Next, rpt)
			}
			// Every candidate has already been run through c.Next above;
			// the outer loop must not also advance to it unconditionally.
			return
		}
		leading, _ := cornerPoints(ed)
		for _, cand := range e.findViolators(cd, rect, c, leading) {
			why := ""
			if c.Why != nil {
				why = *c.Why
			}
			rpt.report(cd, Violation{Rect: cand, Cookie: c, Why: why})
		}
	}
}

// findViolators enumerates tiles on c.CheckPlane, inside rect, whose
// type is not in c.OkMask — the candidate violators of spec.md §4.5.1
// step 3 — applying the optional radial correction (step 2) relative to
// origin.
func (e *Engine) findViolators(cd *celldef.CellDef, rect geom.Rect, c *rules.DrcCookie, origin geom.Point) []geom.Rect {
	if rect.Empty() {
		return nil
	}
	check := cd.Plane(c.CheckPlane)
	var out []geom.Rect
	check.AreaEnum(rect, fullMask(), func(id tiles.TileID) bool {
		body := check.Tile(id).Body()
		if c.OkMask.Has(body.TypeExact()) {
			return true
		}
		r, ok := rect.Clip(check.Rect(id))
		if !ok {
			return true
		}
		if e.EuclideanCorrection && c.CornerDistance > 0 && !radialAccept(r, origin, c.CornerDistance) {
			return true
		}
		T().Debugf("drc: violator candidate %s on plane %d", r, c.CheckPlane)
		out = append(out, r)
		return true
	})
	return out
}

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
