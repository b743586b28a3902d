package drc

import (
	al "github.com/emirpasic/gods/lists/arraylist"

	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/tiles"
)

// DecomposeMaximalRects computes sub-rectangles of bound that do not
// overlap any tile of p whose type is in badMask (spec.md §4.5.2):
// starting from bound as the sole free rectangle, each bad tile is
// subtracted from every free rectangle it overlaps, clipping that
// rectangle into up to four pieces. The pieces are pairwise disjoint and
// together cover exactly the free part of bound; they are not maximal, since
// the left and right pieces span only the bad tile's Y range and pieces are
// never merged or extended afterwards. The free list is kept in a
// gods arraylist rather than a plain slice, matching the "list grows
// geometrically; size doubles on overflow" growth spec.md calls out.
func DecomposeMaximalRects(p *tiles.Plane, bound geom.Rect, badMask ttype.Mask) []geom.Rect {
	free := al.New()
	free.Add(bound)

	p.AreaEnum(bound, badMask, func(id tiles.TileID) bool {
		bad, ok := bound.Clip(p.Rect(id))
		if !ok {
			return true
		}
		next := al.New()
		free.Each(func(_ int, v interface{}) {
			for _, piece := range subtractRect(v.(geom.Rect), bad) {
				next.Add(piece)
			}
		})
		free = next
		return true
	})

	out := make([]geom.Rect, 0, free.Size())
	free.Each(func(_ int, v interface{}) { out = append(out, v.(geom.Rect)) })
	return out
}

// subtractRect removes bad from r, returning the (up to four) remaining
// pieces: a bottom strip, a top strip, and left/right strips flanking
// bad's clipped Y-range.
func subtractRect(r, bad geom.Rect) []geom.Rect {
	clip, ok := r.Clip(bad)
	if !ok {
		return []geom.Rect{r}
	}
	var pieces []geom.Rect
	if r.Min.Y < clip.Min.Y {
		pieces = append(pieces, geom.Rect{Min: r.Min, Max: geom.Point{X: r.Max.X, Y: clip.Min.Y}})
	}
	if clip.Max.Y < r.Max.Y {
		pieces = append(pieces, geom.Rect{Min: geom.Point{X: r.Min.X, Y: clip.Max.Y}, Max: r.Max})
	}
	if r.Min.X < clip.Min.X {
		pieces = append(pieces, geom.Rect{
			Min: geom.Point{X: r.Min.X, Y: clip.Min.Y},
			Max: geom.Point{X: clip.Min.X, Y: clip.Max.Y},
		})
	}
	if clip.Max.X < r.Max.X {
		pieces = append(pieces, geom.Rect{
			Min: geom.Point{X: clip.Max.X, Y: clip.Min.Y},
			Max: geom.Point{X: r.Max.X, Y: clip.Max.Y},
		})
	}
	return pieces
}
