package geom

import "fmt"

// Transform is an affine map restricted to the eight orthogonal
// orientations (multiples of 90 degrees, optionally mirrored) plus an
// integer translation, matching spec.md §3's CellUse transform: a 2x3
// integer matrix with a,b,d,e in {-1,0,1} and no scaling.
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Transform struct {
	A, B, D, E DU
	C, F       DU
}

// Identity is the null transform.
var Identity = Transform{A: 1, E: 1}

// Named orthogonal transforms, in the order Magic enumerates them:
// identity, three rotations, and their four mirrored counterparts.
var (
	Rotate90  = Transform{A: 0, B: -1, D: 1, E: 0}
	Rotate180 = Transform{A: -1, B: 0, D: 0, E: -1}
	Rotate270 = Transform{A: 0, B: 1, D: -1, E: 0}
	MirrorX   = Transform{A: 1, B: 0, D: 0, E: -1} // flip about horizontal axis
	MirrorY   = Transform{A: -1, B: 0, D: 0, E: 1} // flip about vertical axis
	MirrorXR90 = Transform{A: 0, B: -1, D: -1, E: 0}
	MirrorYR90 = Transform{A: 0, B: 1, D: 1, E: 0}
)

// Orientations lists all eight in Magic's canonical order.
var Orientations = [8]Transform{
	Identity, Rotate90, Rotate180, Rotate270,
	MirrorX, MirrorXR90, MirrorY, MirrorYR90,
}

// IsOrthogonal reports whether t is one of the eight legal orientations
// (ignoring translation): every coefficient in {-1,0,1} and the 2x2 block
// is a signed permutation matrix.
func (t Transform) IsOrthogonal() bool {
	inSet := func(x DU) bool { return x == -1 || x == 0 || x == 1 }
	if !inSet(t.A) || !inSet(t.B) || !inSet(t.D) || !inSet(t.E) {
		return false
	}
	det := t.A*t.E - t.B*t.D
	return det == 1 || det == -1
}

// Apply maps a point through the transform.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// ApplyRect maps a rectangle through the transform, re-normalizing corners
// since a mirror or rotation can swap min/max.
func (t Transform) ApplyRect(r Rect) Rect {
	p0 := t.Apply(r.Min)
	p1 := t.Apply(r.Max)
	return RectFromCoords(p0.X, p0.Y, p1.X, p1.Y)
}

// Compose returns the transform equivalent to applying t first, then u:
// u.Compose(t).Apply(p) == u.Apply(t.Apply(p)).
func (u Transform) Compose(t Transform) Transform {
	return Transform{
		A: u.A*t.A + u.B*t.D,
		B: u.A*t.B + u.B*t.E,
		D: u.D*t.A + u.E*t.D,
		E: u.D*t.B + u.E*t.E,
		C: u.A*t.C + u.B*t.F + u.C,
		F: u.D*t.C + u.E*t.F + u.F,
	}
}

// Inverse returns the inverse transform. Valid only for orthogonal
// transforms (determinant ±1), which is all CellUse ever constructs.
func (t Transform) Inverse() Transform {
	det := t.A*t.E - t.B*t.D
	if det != 1 && det != -1 {
		panic("geom: Inverse of non-orthogonal transform")
	}
	// For a signed-permutation 2x2 block, the inverse of the linear part
	// is its transpose scaled by det; translation inverts accordingly.
	ia := t.E * det
	ib := -t.B * det
	id := -t.D * det
	ie := t.A * det
	return Transform{
		A: ia, B: ib, D: id, E: ie,
		C: -(ia*t.C + ib*t.F),
		F: -(id*t.C + ie*t.F),
	}
}

func (t Transform) String() string {
	return fmt.Sprintf("[%d %d %d / %d %d %d] translate=%s",
		t.A, t.B, t.C, t.D, t.E, t.F, Point{t.C, t.F})
}
