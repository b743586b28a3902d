package tiles

import (
	"sort"

	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// AreaEnum visits every tile overlapping rect whose type is in okMask, in
// canonical order: top-down, then left-to-right within a band (spec.md
// §4.1). Split tiles match if either triangle's type is in okMask.
//
// The plane is flood-filled via corner stitches into a snapshot list
// (using a gods hashset for the visited set and an arraystack for the
// frontier — the same flood-fill idiom used for tile-plane traversal
// elsewhere in the examples, see DESIGN.md), then that snapshot is sorted
// and handed to visit one tile at a time. Because visit only ever sees a
// pre-collected slice of IDs rather than live stitch state, it is safe
// for visit to call back into AreaEnum, Paint, or Erase without
// corrupting the walk in progress (spec.md's re-entrancy requirement).
//
// visit returns false to stop enumeration early.
func (p *Plane) AreaEnum(rect geom.Rect, okMask ttype.Mask, visit func(TileID) bool) {
	for _, id := range p.collectOverlapping(rect) {
		if !bodyMatches(p.arena[id].body, okMask) {
			continue
		}
		if !visit(id) {
			return
		}
	}
}

// collectOverlapping flood-fills from a point-located starting tile and
// returns every (non-sentinel) tile overlapping rect, in canonical
// top-down, left-to-right order. Shared by AreaEnum and Paint/Erase,
// which need the unfiltered set of affected tiles before deciding which
// ones match a type mask or need splitting at rect's boundary.
func (p *Plane) collectOverlapping(rect geom.Rect) []TileID {
	clip := rect.ClipToUniverse()
	if clip.Empty() {
		return nil
	}

	seen := hashset.New()
	frontier := arraystack.New()
	start := p.PointLocate(clip.Min)
	frontier.Push(start)
	seen.Add(start)

	var hits []TileID
	for !frontier.Empty() {
		v, _ := frontier.Pop()
		id := v.(TileID)
		if p.IsSentinel(id) {
			continue
		}
		r := p.Rect(id)
		if !r.Overlaps(clip) {
			continue
		}
		hits = append(hits, id)
		for _, nb := range [4]TileID{p.arena[id].lb, p.arena[id].bl, p.arena[id].tr, p.arena[id].rt} {
			if seen.Contains(nb) {
				continue
			}
			seen.Add(nb)
			frontier.Push(nb)
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		ri, rj := p.Rect(hits[i]), p.Rect(hits[j])
		if ri.Max.Y != rj.Max.Y {
			return ri.Max.Y > rj.Max.Y
		}
		return ri.Min.X < rj.Min.X
	})
	return hits
}

func bodyMatches(b ttype.Body, mask ttype.Mask) bool {
	if b.IsSplit() {
		return mask.Has(b.LeftType()) || mask.Has(b.RightType())
	}
	return mask.Has(b.TypeExact())
}
