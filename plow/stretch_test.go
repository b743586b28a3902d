package plow

import (
	"context"
	"testing"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/rules"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestStretchSelectionMovesContentAndPushesTrailingMaterial(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cat, typA, _ := newTestCatalog()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 20, 10), typA, keepNewType)

	eng := NewEngine(rules.NewRuleTable(), cat)
	selection := geom.RectFromCoords(2, 0, 8, 10)
	ok := eng.StretchSelection(context.Background(), cd, selection, East, 5, ttype.MaskOf(typA))

	assert.True(t, ok)
	// original selection area is vacated
	assert.Equal(t, ttype.Space, typeAt(cd, 0, geom.Point{X: 3, Y: 5}))
	// selection content reappears at its translated position
	assert.Equal(t, typA, typeAt(cd, 0, geom.Point{X: 10, Y: 5}))
	// trailing material (originally [8,20)) is pushed east by delta, not by
	// the selection's own width
	assert.Equal(t, typA, typeAt(cd, 0, geom.Point{X: 24, Y: 5}))
	assert.Equal(t, ttype.Space, typeAt(cd, 0, geom.Point{X: 26, Y: 5}))
}
