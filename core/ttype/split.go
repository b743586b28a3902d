package ttype

// Body is a tile's material content: either a single rectangular type, or
// a diagonal split into two triangles carrying distinct types.
//
// spec.md's design notes (§9) recommend a small sum type over the source's
// bit-packed body word; Body is that sum type. The eight accessors named
// in spec.md §3 (LeftType, RightType, TopType, BottomType, TypeExact, …)
// are methods here rather than free functions operating on a raw word.
type Body struct {
	kind    bodyKind
	rect    Type
	orient  Orientation
	side    Side
	left    Type
	right   Type
}

type bodyKind uint8

const (
	rectangular bodyKind = iota
	split
)

// Orientation names which diagonal cuts a split tile.
type Orientation uint8

const (
	// NE_SW cuts from the northeast corner to the southwest corner.
	NE_SW Orientation = iota
	// NW_SE cuts from the northwest corner to the southeast corner.
	NW_SE
)

// Side names which of the two triangles of a split tile was queried.
type Side uint8

const (
	Lower Side = iota
	Upper
)

// Rectangular builds a non-split tile body of type t.
func Rectangular(t Type) Body {
	return Body{kind: rectangular, rect: t}
}

// Split builds a diagonally-cut tile body. left/right follow the source's
// convention: left is the type to the west of the diagonal as stored in
// the low bitfield, right the type to the east, and orient/side record
// which diagonal and which triangle is "the" queried one.
func Split(orient Orientation, side Side, left, right Type) Body {
	return Body{kind: split, orient: orient, side: side, left: left, right: right}
}

// IsSplit reports whether b is diagonally cut.
func (b Body) IsSplit() bool { return b.kind == split }

// TypeExact returns the type of the queried triangle for a split tile, or
// the sole type for a rectangular tile — the fast-path accessor used by
// code that doesn't care about split geometry (e.g. a first-pass area
// enumeration with a broad mask).
func (b Body) TypeExact() Type {
	if b.kind == rectangular {
		return b.rect
	}
	if b.side == Lower {
		return b.BottomType()
	}
	return b.TopType()
}

// LeftType returns the type on the tile's west side.
func (b Body) LeftType() Type {
	if b.kind == rectangular {
		return b.rect
	}
	return b.left
}

// RightType returns the type on the tile's east side.
func (b Body) RightType() Type {
	if b.kind == rectangular {
		return b.rect
	}
	return b.right
}

// TopType returns the type on the tile's north side. For an NE_SW split,
// the diagonal runs northeast-southwest so the top triangle is the left
// (west) field; for NW_SE it's the right field.
func (b Body) TopType() Type {
	if b.kind == rectangular {
		return b.rect
	}
	if b.orient == NE_SW {
		return b.left
	}
	return b.right
}

// BottomType returns the type on the tile's south side, symmetric to
// TopType.
func (b Body) BottomType() Type {
	if b.kind == rectangular {
		return b.rect
	}
	if b.orient == NE_SW {
		return b.right
	}
	return b.left
}

// Orientation reports which diagonal a split body uses. Valid only when
// IsSplit.
func (b Body) Orientation() Orientation { return b.orient }

// QueriedSide reports which triangle was queried. Valid only when IsSplit.
func (b Body) QueriedSide() Side { return b.side }

// WithSide returns a copy of b with a different queried side — used when a
// search needs to evaluate the "other" triangle without rebuilding the
// whole body.
func (b Body) WithSide(s Side) Body {
	b.side = s
	return b
}
