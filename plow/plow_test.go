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

func newTestCatalog() (*ttype.Catalog, ttype.Type, ttype.Type) {
	cat := ttype.NewCatalog(1)
	a := cat.Define("metal1", 0)
	b := cat.Define("metal2", 0)
	return cat, a, b
}

func typeAt(cd *celldef.CellDef, plane ttype.PlaneIndex, p geom.Point) ttype.Type {
	pl := cd.Plane(plane)
	id := pl.PointLocate(p)
	return pl.Tile(id).Body().TypeExact()
}

func TestPlowStretchesMaterialEast(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cat, typA, _ := newTestCatalog()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)

	eng := NewEngine(rules.NewRuleTable(), cat)
	ok := eng.Plow(context.Background(), cd, geom.RectFromCoords(5, 0, 10, 10), ttype.MaskOf(typA), East)

	assert.True(t, ok)
	assert.Equal(t, geom.RectFromCoords(0, 0, 15, 10), cd.BBox)
	assert.Equal(t, typA, typeAt(cd, 0, geom.Point{X: 12, Y: 5}))
	assert.Equal(t, ttype.Space, typeAt(cd, 0, geom.Point{X: 16, Y: 5}))
}

func TestPlowStretchesMaterialNorth(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cat, typA, _ := newTestCatalog()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)

	eng := NewEngine(rules.NewRuleTable(), cat)
	ok := eng.Plow(context.Background(), cd, geom.RectFromCoords(0, 5, 10, 10), ttype.MaskOf(typA), North)

	assert.True(t, ok)
	assert.Equal(t, geom.RectFromCoords(0, 0, 10, 15), cd.BBox)
}

func TestPlowOverEmptyGapIsNoOp(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cat, typA, _ := newTestCatalog()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)
	cd.Plane(0).Paint(geom.RectFromCoords(15, 0, 25, 10), typA, keepNewType)

	eng := NewEngine(rules.NewRuleTable(), cat)
	ok := eng.Plow(context.Background(), cd, geom.RectFromCoords(10, 0, 15, 10), ttype.MaskOf(typA), East)

	assert.True(t, ok)
	assert.Equal(t, geom.RectFromCoords(0, 0, 25, 10), cd.BBox)
	assert.Equal(t, ttype.Space, typeAt(cd, 0, geom.Point{X: 12, Y: 5}))
}

func TestPlowVetoesDisallowedType(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cat, _, typB := newTestCatalog()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(10, 0, 20, 10), typB, keepNewType)

	eng := NewEngine(rules.NewRuleTable(), cat)
	ok := eng.Plow(context.Background(), cd, geom.RectFromCoords(12, 0, 15, 10), ttype.MaskOf(ttype.Space), East)

	assert.True(t, ok)
	assert.Equal(t, geom.RectFromCoords(10, 0, 20, 10), cd.BBox)
	assert.Equal(t, typB, typeAt(cd, 0, geom.Point{X: 19, Y: 5}))
}

func TestPlowRejectsRectOutsideBBox(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cat, typA, _ := newTestCatalog()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)

	eng := NewEngine(rules.NewRuleTable(), cat)
	ok := eng.Plow(context.Background(), cd, geom.RectFromCoords(20, 0, 30, 10), ttype.MaskOf(typA), East)

	assert.False(t, ok)
	assert.Equal(t, geom.RectFromCoords(0, 0, 10, 10), cd.BBox)
}

func TestPlowPartialWhenRectStraddlesBBox(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cat, typA, _ := newTestCatalog()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)

	eng := NewEngine(rules.NewRuleTable(), cat)
	ok := eng.Plow(context.Background(), cd, geom.RectFromCoords(8, 0, 20, 10), ttype.MaskOf(typA), East)

	assert.False(t, ok)
}

func TestCleanupJogsFillsThinGapBetweenLikeMaterial(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, typA, _ := newTestCatalog()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)
	cd.Plane(0).Paint(geom.RectFromCoords(12, 0, 22, 10), typA, keepNewType)

	CleanupJogs(cd, geom.RectFromCoords(0, 0, 22, 10), 50)

	assert.Equal(t, typA, typeAt(cd, 0, geom.Point{X: 11, Y: 5}))
}

func TestCleanupJogsLeavesWideGapAlone(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, typA, _ := newTestCatalog()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)
	cd.Plane(0).Paint(geom.RectFromCoords(100, 0, 110, 10), typA, keepNewType)

	CleanupJogs(cd, geom.RectFromCoords(0, 0, 110, 10), 50)

	assert.Equal(t, ttype.Space, typeAt(cd, 0, geom.Point{X: 50, Y: 5}))
}

func TestEdgeQueueDedupesIdenticalEdges(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	q := newEdgeQueue()
	q.push(&Edge{X: 1, FinalX: 5, YBot: 0, YTop: 10, Plane: 0, L: 1, R: 1})
	q.push(&Edge{X: 1, FinalX: 5, YBot: 0, YTop: 10, Plane: 0, L: 1, R: 1})

	_, ok := q.pop()
	assert.True(t, ok)
	_, ok = q.pop()
	assert.False(t, ok)
}

func TestEdgeQueueOrdersByX(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	q := newEdgeQueue()
	q.push(&Edge{X: 5, FinalX: 10, Plane: 0, L: 1})
	q.push(&Edge{X: 1, FinalX: 10, Plane: 0, L: 2})

	first, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, geom.DU(1), first.X)
}

func TestPlowDragsContactResiduesAcrossPlanes(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cat := ttype.NewCatalog(2)
	metal1 := cat.Define("metal1", 0)
	metal2 := cat.Define("metal2", 1)
	via := cat.DefineContact("via1", 0, ttype.MaskOf(metal1, metal2))

	cd := celldef.NewCellDef("m1", 2)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), via, keepNewType)
	// metal2's residue sits east of the via, outside the plowed band, so
	// plane 1's own seed edge never touches it directly — only contacts()
	// dragging it along with the via proves the rule fired.
	cd.Plane(1).Paint(geom.RectFromCoords(10, 0, 15, 10), metal2, keepNewType)

	eng := NewEngine(rules.NewRuleTable(), cat)
	ok := eng.Plow(context.Background(), cd, geom.RectFromCoords(5, 0, 10, 10), ttype.MaskOf(via, metal2), East)

	assert.True(t, ok)
	// the via itself stretched east, as an ordinary plow of its own type would
	assert.Equal(t, via, typeAt(cd, 0, geom.Point{X: 12, Y: 5}))
	// the residue's original footprint survives...
	assert.Equal(t, metal2, typeAt(cd, 1, geom.Point{X: 12, Y: 5}))
	// ...and is dragged into new territory the via's own motion opened up,
	// which only the contacts search rule could have caused
	assert.Equal(t, metal2, typeAt(cd, 1, geom.Point{X: 18, Y: 5}))
	assert.Equal(t, ttype.Space, typeAt(cd, 1, geom.Point{X: 3, Y: 5}))
}

func TestPlowDragsCellUseWhole(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cat, typA, _ := newTestCatalog()
	child := celldef.NewCellDef("child", 1)
	child.Plane(0).Paint(geom.RectFromCoords(0, 0, 4, 4), typA, keepNewType)
	child.RecomputeBBox()

	parent := celldef.NewCellDef("parent", 1)
	use := celldef.NewCellUse(child, geom.Transform{A: 1, E: 1, C: 10, F: 0})
	parent.PlaceUse(use)

	eng := NewEngine(rules.NewRuleTable(), cat)
	ok := eng.Plow(context.Background(), parent, geom.RectFromCoords(10, 0, 14, 4), ttype.MaskOf(typA), East)

	assert.True(t, ok)
	// the use was dragged whole rather than its contents repainted tile by
	// tile: it no longer overlaps its original footprint...
	var atOld bool
	parent.UsesOverlapping(geom.RectFromCoords(10, 0, 14, 4), func(*celldef.CellUse) bool { atOld = true; return false })
	assert.False(t, atOld)
	// ...and now overlaps the region the plow opened up east of it
	var moved *celldef.CellUse
	parent.UsesOverlapping(geom.RectFromCoords(14, 0, 18, 4), func(u *celldef.CellUse) bool { moved = u; return false })
	if assert.NotNil(t, moved) {
		assert.Equal(t, geom.DU(14), moved.Transform.C)
	}
}

func TestDirectionTransformsAreMutualInverses(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for _, dir := range []Direction{East, West, North, South} {
		toEast := directionTransform(dir)
		toOriginal := toEast.Inverse()
		p := geom.Point{X: 3, Y: 7}
		assert.Equal(t, p, toOriginal.Apply(toEast.Apply(p)))
	}
}
