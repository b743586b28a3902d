package tiles

import (
	"github.com/corngeom/vlsicore/core"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
)

// StrictInvariants, when set, makes Paint verify the corner-stitch and
// maximal-strip invariants (CheckInvariants) after every call and panic
// immediately if either is violated — the live form of the Internal error
// kind (spec.md §7: "Internal ... panics, indicates a bug in plane code").
// Off by default: a full-plane walk on every paint is too costly to pay on
// every mutation in production; callers that want it live (a debug build,
// a fuzz harness) set it once at startup.
var StrictInvariants = false

// TransitionFunc computes the resulting body when painting newType over a
// tile currently holding old. DRC and plow may return a designated
// "illegal overlap" body (spec.md §7's TT_ERROR_S) instead of silently
// clobbering old when the combination isn't legal for the active
// technology; Paint itself is agnostic to what fn decides.
type TransitionFunc func(old ttype.Body, newType ttype.Type) ttype.Body

// Paint applies fn to the body of every tile overlapping rect, first
// splitting tiles at rect's boundary so the affected area aligns exactly
// with tile edges, then re-merging same-body horizontally-adjacent tiles
// back into maximal strips (spec.md §4.1, §8 invariant 1).
func (p *Plane) Paint(rect geom.Rect, newType ttype.Type, fn TransitionFunc) {
	clip := rect.ClipToUniverse()
	if clip.Empty() {
		return
	}
	p.alignEdges(clip)

	touched := p.collectOverlapping(clip)
	for _, id := range touched {
		body := fn(p.arena[id].body, newType)
		p.Retype(id, body)
	}
	p.mergeAround(touched)

	if StrictInvariants {
		if err := p.CheckInvariants(); err != nil {
			T().Errorf("tiles: invariant violation after paint of %s: %v", rect, err)
			panic(core.Error(core.EINTERNAL, "tiles: invariant violation after paint of %s: %v", rect, err))
		}
	}
}

// Erase is Paint with a transition function that always reverts to
// Space, the common case of "clear this material out of rect".
func (p *Plane) Erase(rect geom.Rect, spaceBody ttype.Body) {
	p.Paint(rect, ttype.Space, func(ttype.Body, ttype.Type) ttype.Body { return spaceBody })
}

// alignEdges splits every tile straddling one of clip's four boundary
// lines, so that every tile overlapping clip afterward is either fully
// inside it or fully outside.
func (p *Plane) alignEdges(clip geom.Rect) {
	p.splitColumnAt(clip, clip.Min.X)
	p.splitColumnAt(clip, clip.Max.X)
	p.splitRowAt(clip, clip.Min.Y)
	p.splitRowAt(clip, clip.Max.Y)
}

// splitColumnAt walks the vertical line x from clip.Min.Y to clip.Max.Y,
// splitting every tile whose horizontal span straddles x.
func (p *Plane) splitColumnAt(clip geom.Rect, x geom.DU) {
	if x <= geom.MinInfinity || x >= geom.Infinity {
		return
	}
	id := p.PointLocate(geom.Point{X: x, Y: clip.Min.Y})
	for {
		if p.Left(id) < x && x < p.Right(id) {
			p.SplitX(id, x)
		}
		if p.Top(id) >= clip.Max.Y {
			return
		}
		id = p.arena[id].rt
	}
}

// splitRowAt walks the horizontal line y from clip.Min.X to clip.Max.X,
// splitting every tile whose vertical span straddles y.
func (p *Plane) splitRowAt(clip geom.Rect, y geom.DU) {
	if y <= geom.MinInfinity || y >= geom.Infinity {
		return
	}
	id := p.PointLocate(geom.Point{X: clip.Min.X, Y: y})
	for {
		if p.Bottom(id) < y && y < p.Top(id) {
			p.SplitY(id, y)
		}
		if p.Right(id) >= clip.Max.X {
			return
		}
		id = p.arena[id].tr
	}
}

// mergeAround restores the maximal-horizontal-strip invariant around the
// given tiles after a paint: only horizontal (JoinX) merges are ever
// required by the invariant (spec.md §8 invariant 1 talks about
// horizontally adjacent tiles sharing full vertical extent; vertically
// stacked same-type tiles are not required to merge). Freed tiles are
// tracked locally since a merge can cascade across several of the
// originally-touched IDs.
func (p *Plane) mergeAround(ids []TileID) {
	freed := make(map[TileID]bool, len(ids))
	work := append([]TileID(nil), ids...)
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		if freed[id] {
			continue
		}
		for {
			if right := p.arena[id].tr; !freed[right] && !p.IsSentinel(right) && p.canJoinX(id, right) {
				p.JoinX(id, right)
				freed[right] = true
				continue
			}
			if left := p.arena[id].bl; !freed[left] && !p.IsSentinel(left) && p.canJoinX(left, id) {
				p.JoinX(left, id)
				freed[id] = true
				id = left
				continue
			}
			break
		}
	}
}
