package drc

import (
	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/rules"
	"github.com/corngeom/vlsicore/tiles"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// runSpecialized dispatches a FlagArea/FlagMaxwidth/FlagBends/
// FlagRectSize/FlagAngles cookie to its dedicated scanner (spec.md §4.5.1
// step 5), seeded at ed's leading corner on c.CheckPlane.
func (e *Engine) runSpecialized(cd *celldef.CellDef, ed edge, c *rules.DrcCookie, rpt *reporter) {
	p := cd.Plane(c.CheckPlane)
	leading, _ := cornerPoints(ed)
	seed := p.PointLocate(leading)
	if p.IsSentinel(seed) {
		return
	}
	seedType := p.Tile(seed).Body().TypeExact()
	okMask := ttype.MaskOf(seedType)

	switch {
	case c.Flags&rules.FlagArea != 0:
		e.checkArea(cd, p, seed, okMask, c, rpt)
	case c.Flags&rules.FlagBends != 0:
		e.checkMaxwidthBends(cd, p, seed, okMask, c, rpt)
	case c.Flags&rules.FlagMaxwidth != 0:
		e.checkMaxwidthWithBends(cd, p, seed, okMask, c, rpt)
	case c.Flags&rules.FlagRectSize != 0:
		e.checkRectSize(cd, p, seed, okMask, c, rpt)
	case c.Flags&rules.FlagAngles != 0:
		e.checkAngles(cd, p, seed, c, rpt)
	}
}

// floodFill collects every tile reachable from start through corner
// stitches whose type is in okMask — the same 4-neighbor (lb, bl, tr, rt)
// traversal tiles.Plane.AreaEnum's collectOverlapping uses internally,
// generalized here to filter on type rather than on rect overlap.
func floodFill(p *tiles.Plane, start tiles.TileID, okMask ttype.Mask) []tiles.TileID {
	seen := hashset.New()
	frontier := arraystack.New()
	frontier.Push(start)
	seen.Add(start)

	var region []tiles.TileID
	for !frontier.Empty() {
		v, _ := frontier.Pop()
		id := v.(tiles.TileID)
		if p.IsSentinel(id) || !okMask.Has(p.Tile(id).Body().TypeExact()) {
			continue
		}
		region = append(region, id)
		t := p.Tile(id)
		for _, nb := range [4]tiles.TileID{t.LB(), t.BL(), t.TR(), t.RT()} {
			if seen.Contains(nb) {
				continue
			}
			seen.Add(nb)
			frontier.Push(nb)
		}
	}
	return region
}

func regionBounds(p *tiles.Plane, region []tiles.TileID) geom.Rect {
	var bbox geom.Rect
	for _, id := range region {
		bbox = bbox.Union(p.Rect(id))
	}
	return bbox
}

func regionArea(p *tiles.Plane, region []tiles.TileID) int64 {
	var total int64
	for _, id := range region {
		r := p.Rect(id)
		total += int64(r.Width()) * int64(r.Height())
	}
	return total
}

// regionTouchesBoundary reports whether any tile in region touches
// clip's boundary, meaning the region may extend past what was scanned
// and a local area judgment is not conclusive (spec.md §4.5.1 step 5
// "area": "... and the region touches no clip-rectangle boundary").
func regionTouchesBoundary(p *tiles.Plane, region []tiles.TileID, clip geom.Rect) bool {
	for _, id := range region {
		r := p.Rect(id)
		if r.Min.X <= clip.Min.X || r.Max.X >= clip.Max.X || r.Min.Y <= clip.Min.Y || r.Max.Y >= clip.Max.Y {
			return true
		}
	}
	return false
}

func (e *Engine) checkArea(cd *celldef.CellDef, p *tiles.Plane, seed tiles.TileID, okMask ttype.Mask, c *rules.DrcCookie, rpt *reporter) {
	region := floodFill(p, seed, okMask)
	if regionArea(p, region) >= c.AreaMin {
		return
	}
	if regionTouchesBoundary(p, region, cd.BBox) {
		return
	}
	rpt.report(cd, Violation{Rect: p.Rect(seed), Cookie: c, Why: whyOf(c)})
}

func (e *Engine) checkMaxwidthBends(cd *celldef.CellDef, p *tiles.Plane, seed tiles.TileID, okMask ttype.Mask, c *rules.DrcCookie, rpt *reporter) {
	region := floodFill(p, seed, okMask)
	bbox := regionBounds(p, region)
	if bbox.Width() > c.MaxWidthLimit && bbox.Height() > c.MaxWidthLimit {
		rpt.report(cd, Violation{Rect: bbox, Cookie: c, Why: whyOf(c)})
	}
}

func (e *Engine) checkMaxwidthWithBends(cd *celldef.CellDef, p *tiles.Plane, seed tiles.TileID, okMask ttype.Mask, c *rules.DrcCookie, rpt *reporter) {
	region := floodFill(p, seed, okMask)
	bbox := regionBounds(p, region)
	badMask := fullMask().Subtract(okMask)
	for _, free := range DecomposeMaximalRects(p, bbox, badMask) {
		if free.Width() > c.MaxWidthLimit || free.Height() > c.MaxWidthLimit {
			rpt.report(cd, Violation{Rect: free, Cookie: c, Why: whyOf(c)})
		}
	}
}

func (e *Engine) checkRectSize(cd *celldef.CellDef, p *tiles.Plane, seed tiles.TileID, okMask ttype.Mask, c *rules.DrcCookie, rpt *reporter) {
	region := floodFill(p, seed, okMask)
	bbox := regionBounds(p, region)
	if regionArea(p, region) != int64(bbox.Width())*int64(bbox.Height()) {
		rpt.report(cd, Violation{Rect: bbox, Cookie: c, Why: whyOf(c)})
		return
	}
	if bbox.Width() > c.MaxWidthLimit || bbox.Height() > c.MaxWidthLimit {
		rpt.report(cd, Violation{Rect: bbox, Cookie: c, Why: whyOf(c)})
		return
	}
	if int(bbox.Width())%2 != c.RectXParity || int(bbox.Height())%2 != c.RectYParity {
		rpt.report(cd, Violation{Rect: bbox, Cookie: c, Why: whyOf(c)})
	}
}

func (e *Engine) checkAngles(cd *celldef.CellDef, p *tiles.Plane, seed tiles.TileID, c *rules.DrcCookie, rpt *reporter) {
	body := p.Tile(seed).Body()
	if !body.IsSplit() {
		return
	}
	if c.ManhattanOnly {
		rpt.report(cd, Violation{Rect: p.Rect(seed), Cookie: c, Why: whyOf(c)})
		return
	}
	r := p.Rect(seed)
	if r.Width() != r.Height() {
		rpt.report(cd, Violation{Rect: r, Cookie: c, Why: whyOf(c)})
	}
}

func whyOf(c *rules.DrcCookie) string {
	if c.Why == nil {
		return ""
	}
	return *c.Why
}
