/*
Package geom implements the integer coordinate system shared by the tile
plane, the rule table, and the DRC and plow engines.

Coordinates are exact integers (manufacturing-grid units). Unlike a
typesetting system's scaled points, there is no sub-unit here: two
rectangles either share an edge or they don't, and the corner-stitch
invariants depend on that being decidable without rounding.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package geom

import (
	"fmt"

	"github.com/npillmayer/arithm"
)

// DU is a design unit: one manufacturing-grid step. Values are signed
// 32-bit; callers needing wider universes should scale the grid rather
// than widen this type, since Infinity is defined in terms of it.
type DU int32

// Infinity is the largest coordinate a tile plane will ever report. It is
// chosen well inside the range of DU so that Infinity+k and Infinity-k for
// small k never overflow — additions and subtractions near the boundary
// of the universe are a normal part of corner-stitch surgery.
const Infinity DU = (1 << 29) - 4

// MinInfinity is the symmetric negative bound.
const MinInfinity DU = -Infinity

// Point is a location on a tile plane.
type Point struct {
	X, Y DU
}

// Origin is the zero point.
var Origin = Point{0, 0}

// Add returns p shifted by the given vector.
func (p Point) Add(v Point) Point {
	return Point{p.X + v.X, p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) String() string {
	return arithm.Pair(complex(float64(p.X), float64(p.Y))).String()
}

// Rect is a half-open rectangle [Min.X,Max.X) x [Min.Y,Max.Y), matching the
// tile plane's own half-open tile extents (spec.md §3).
type Rect struct {
	Min, Max Point
}

// RectFromCoords builds a normalized rectangle from unordered coordinates.
func RectFromCoords(x0, y0, x1, y1 DU) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Point{x0, y0}, Point{x1, y1}}
}

// Universe is the largest representable rectangle.
var Universe = Rect{Point{MinInfinity, MinInfinity}, Point{Infinity, Infinity}}

func (r Rect) Width() DU  { return r.Max.X - r.Min.X }
func (r Rect) Height() DU { return r.Max.Y - r.Min.Y }

// Empty reports whether r encloses no area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Touches reports whether r and o share at least a boundary point, i.e.
// overlap in the closed sense. Used for "abutting" tests in corner-stitch
// surgery, where two tiles may share an edge without overlapping area.
func (r Rect) Touches(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Contains reports whether p lies in the half-open rectangle.
func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X < r.Max.X && r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// Clip intersects r with o, returning ok=false if the result is empty.
func (r Rect) Clip(o Rect) (Rect, bool) {
	out := Rect{
		Point{maxDU(r.Min.X, o.Min.X), maxDU(r.Min.Y, o.Min.Y)},
		Point{minDU(r.Max.X, o.Max.X), minDU(r.Max.Y, o.Max.Y)},
	}
	return out, !out.Empty()
}

// Union returns the bounding rectangle of r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Point{minDU(r.Min.X, o.Min.X), minDU(r.Min.Y, o.Min.Y)},
		Point{maxDU(r.Max.X, o.Max.X), maxDU(r.Max.Y, o.Max.Y)},
	}
}

// Grow expands r by d on every side (d may be negative to shrink).
func (r Rect) Grow(d DU) Rect {
	return Rect{
		Point{r.Min.X - d, r.Min.Y - d},
		Point{r.Max.X + d, r.Max.Y + d},
	}
}

// Translate shifts r by v.
func (r Rect) Translate(v Point) Rect {
	return Rect{r.Min.Add(v), r.Max.Add(v)}
}

// ClipToUniverse clips coordinates to the plane universe, per spec.md §4.1
// ("out-of-range coordinates are clipped to the universe").
func (r Rect) ClipToUniverse() Rect {
	out, _ := r.Clip(Universe)
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v,%v)", r.Min, r.Max)
}

func maxDU(a, b DU) DU {
	if a > b {
		return a
	}
	return b
}

func minDU(a, b DU) DU {
	if a < b {
		return a
	}
	return b
}
