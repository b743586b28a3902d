package celldef

import (
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/npillmayer/cords"
)

// Justify names a label's text justification relative to its Rect.
type Justify uint8

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
	JustifyTop
	JustifyBottom
)

// LabelFlag bits on a Label (spec.md §3 "Label").
type LabelFlag uint8

const (
	// LabelFlagSticky pins a label to its stored coordinates. A non-sticky label
	// is re-attached to whatever tile lies at its location after edits
	// (spec.md §3): LabelFlagSticky off is the common case for a label that
	// should track the material it annotates.
	LabelFlagSticky LabelFlag = 1 << iota
)

// Label is a piece of text attached to a rectangle in a CellDef: an
// attached type, the text itself, font/size/justification, a rotation (one
// of the eight orthogonal orientations, shared with CellUse), an offset
// vector, and flags (spec.md §3 "Label").
type Label struct {
	Rect    geom.Rect
	Type    ttype.Type
	Text    cords.Cord
	Font    string
	Size    geom.DU
	Justify Justify
	Rotate  geom.Transform
	Offset  geom.Point
	Flags   LabelFlag
}

// textLeaf is the cords.Leaf implementation for plain label text — the
// same shape as engine/frame/lines.Leaf, minus the DOM back-link a label
// has no use for.
type textLeaf struct {
	content string
}

func (l textLeaf) Weight() uint64 { return uint64(len(l.content)) }
func (l textLeaf) String() string { return l.content }

func (l textLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return textLeaf{l.content[:i]}, textLeaf{l.content[i:]}
}

func (l textLeaf) Substring(i, j uint64) []byte {
	return []byte(l.content)[i:j]
}

var _ cords.Leaf = textLeaf{}

// NewLabel builds a label with plain text, unrotated, not sticky.
func NewLabel(rect geom.Rect, t ttype.Type, text string) *Label {
	b := cords.NewBuilder()
	b.Append(textLeaf{content: text})
	return &Label{
		Rect:   rect,
		Type:   t,
		Text:   b.Cord(),
		Rotate: geom.Identity,
	}
}

// IsSticky reports whether the label is pinned to its stored coordinates
// rather than re-attached to the tile under it after edits.
func (l *Label) IsSticky() bool { return l.Flags&LabelFlagSticky != 0 }

// Clone copies a label; used when a selection containing labels is moved,
// since labels are owned by their CellDef and are never shared (spec.md §3
// "Entity lifecycles").
func (l *Label) Clone() *Label {
	clone := *l
	return &clone
}
