package celldef

import "github.com/corngeom/vlsicore/core/geom"

// ExpandMask names, per display window, whether a CellUse is drawn fully
// expanded (contents visible) or collapsed to its bounding box. It is a
// bitmask rather than a bool so a use can be expanded in one window (the
// one being edited) and collapsed in another (an overview window).
type ExpandMask uint32

// UseFlag bits on a CellUse (spec.md §3 "CellUse").
type UseFlag uint8

const (
	UseFlagLocked UseFlag = 1 << iota
	UseFlagSelected
)

// ArrayParams describes a rectangular array of identical placements of the
// same CellUse: xlo..xhi and ylo..yhi index ranges (inclusive) and the
// x/y pitch between adjacent elements (spec.md §3 "CellUse").
type ArrayParams struct {
	XLo, XHi int
	YLo, YHi int
	XSep     geom.DU
	YSep     geom.DU
}

// Count returns the number of elements the array describes.
func (a *ArrayParams) Count() int {
	if a == nil {
		return 1
	}
	return (a.XHi - a.XLo + 1) * (a.YHi - a.YLo + 1)
}

// CellUse is an instance of a CellDef placed under an orthogonal transform,
// optionally arrayed (spec.md §3 "CellUse").
type CellUse struct {
	Def       *CellDef
	Transform geom.Transform
	Array     *ArrayParams // nil for a single (non-arrayed) instance
	Ident     string
	Expand    ExpandMask
	Flags     UseFlag
}

// NewCellUse creates a use of def under t, unarrayed.
func NewCellUse(def *CellDef, t geom.Transform) *CellUse {
	return &CellUse{Def: def, Transform: t}
}

// BBox returns the use's bounding box in parent coordinates: def's own
// bounding box mapped through Transform, and — if arrayed — grown to cover
// every element's placement.
func (u *CellUse) BBox() geom.Rect {
	elem := u.Transform.ApplyRect(u.Def.BBox)
	if u.Array == nil {
		return elem
	}
	a := u.Array
	dx := a.XSep * geom.DU(a.XHi-a.XLo)
	dy := a.YSep * geom.DU(a.YHi-a.YLo)
	far := elem.Translate(geom.Point{X: dx, Y: dy})
	return elem.Union(far)
}

// ArraySearch computes, from use's transform and array pitch, the index
// range of elements that may intersect rect (given in parent coordinates),
// and invokes fn on each (ix, iy) pair in that range (spec.md §4.2
// "array_search"). For a non-arrayed use, fn is invoked once with (0, 0)
// if def's bbox (transformed) overlaps rect at all.
func (u *CellUse) ArraySearch(rect geom.Rect, fn func(ix, iy int, elemRect geom.Rect) bool) {
	elemLocal := u.Def.BBox
	if u.Array == nil {
		r := u.Transform.ApplyRect(elemLocal)
		if r.Overlaps(rect) {
			fn(0, 0, r)
		}
		return
	}
	a := u.Array
	inv := u.Transform.Inverse()
	localRect := inv.ApplyRect(rect)

	// Element i (relative to lo) occupies local X range
	// [elemLocal.Min.X + i*sep, elemLocal.Max.X + i*sep). It overlaps
	// [loBound, hiBound) for i in the open interval
	// ((loBound-elemLocal.Max.X)/sep, (hiBound-elemLocal.Min.X)/sep).
	// axisRange widens by one step on each side and clamps to [lo,hi] so it
	// is always a superset of the true range; the per-element Overlaps
	// check below discards the (at most two extra per side) false hits.
	axisRange := func(lo, hi int, sep, elemMin, elemMax, loBound, hiBound geom.DU) (int, int) {
		if sep == 0 || lo == hi {
			return lo, hi
		}
		first := lo + int((loBound-elemMax)/sep) - 1
		last := lo + int((hiBound-elemMin)/sep) + 1
		if first < lo {
			first = lo
		}
		if last > hi {
			last = hi
		}
		return first, last
	}

	xlo, xhi := axisRange(a.XLo, a.XHi, a.XSep, elemLocal.Min.X, elemLocal.Max.X, localRect.Min.X, localRect.Max.X)
	ylo, yhi := axisRange(a.YLo, a.YHi, a.YSep, elemLocal.Min.Y, elemLocal.Max.Y, localRect.Min.Y, localRect.Max.Y)

	for iy := ylo; iy <= yhi; iy++ {
		for ix := xlo; ix <= xhi; ix++ {
			shift := geom.Point{
				X: geom.DU(ix-a.XLo) * a.XSep,
				Y: geom.DU(iy-a.YLo) * a.YSep,
			}
			elem := elemLocal.Translate(shift)
			parentElem := u.Transform.ApplyRect(elem)
			if !parentElem.Overlaps(rect) {
				continue
			}
			if !fn(ix, iy, parentElem) {
				return
			}
		}
	}
}
