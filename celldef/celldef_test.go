package celldef

import (
	"testing"

	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestNewCellDefIsEmpty(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cd := NewCellDef("inv1", 3)
	assert.True(t, cd.HasFlag(FlagAvailable))
	assert.False(t, cd.HasFlag(FlagModified))
	assert.True(t, cd.BBox.Empty())
}

func TestPlaceUseUpdatesOverlapsAndBBox(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	child := NewCellDef("nand2", 3)
	child.BBox = geom.RectFromCoords(0, 0, 10, 10)

	parent := NewCellDef("top", 3)
	use := NewCellUse(child, geom.Identity)
	parent.PlaceUse(use)

	assert.Equal(t, geom.RectFromCoords(0, 0, 10, 10), parent.BBox)

	var found []*CellUse
	parent.UsesOverlapping(geom.RectFromCoords(2, 2, 4, 4), func(u *CellUse) bool {
		found = append(found, u)
		return true
	})
	assert.Equal(t, []*CellUse{use}, found)
}

func TestRemoveUseClearsOverlaps(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	child := NewCellDef("inv1", 3)
	child.BBox = geom.RectFromCoords(0, 0, 5, 5)
	parent := NewCellDef("top", 3)
	use := NewCellUse(child, geom.Identity)
	parent.PlaceUse(use)
	parent.RemoveUse(use)

	var found []*CellUse
	parent.UsesOverlapping(geom.RectFromCoords(0, 0, 5, 5), func(u *CellUse) bool {
		found = append(found, u)
		return true
	})
	assert.Empty(t, found)
}

func TestCellUseBBoxUnderRotation(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	child := NewCellDef("cell", 1)
	child.BBox = geom.RectFromCoords(0, 0, 10, 4)
	use := NewCellUse(child, geom.Rotate90)
	assert.Equal(t, geom.RectFromCoords(-4, 0, 0, 10), use.BBox())
}

func TestArraySearchFindsOverlappingElements(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	child := NewCellDef("via", 1)
	child.BBox = geom.RectFromCoords(0, 0, 2, 2)
	use := NewCellUse(child, geom.Identity)
	use.Array = &ArrayParams{XLo: 0, XHi: 9, YLo: 0, YHi: 0, XSep: 10, YSep: 0}

	var xs []int
	use.ArraySearch(geom.RectFromCoords(15, -1, 35, 3), func(ix, iy int, _ geom.Rect) bool {
		xs = append(xs, ix)
		return true
	})
	assert.ElementsMatch(t, []int{2, 3}, xs)
}

func TestSymbolTableRegisterAndLookup(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	st := NewSymbolTable()
	cd := NewCellDef("nand2", 3)
	st.Register(cd)

	got, ok := st.Lookup("nand2")
	assert.True(t, ok)
	assert.Same(t, cd, got)

	_, ok = st.Lookup("missing")
	assert.False(t, ok)
}

func TestLabelClonedNotShared(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	l := NewLabel(geom.RectFromCoords(0, 0, 5, 5), ttype.Type(3), "VDD")
	clone := l.Clone()
	clone.Rect = geom.RectFromCoords(10, 10, 15, 15)
	assert.NotEqual(t, l.Rect, clone.Rect)
}
