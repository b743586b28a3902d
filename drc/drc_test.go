package drc

import (
	"context"
	"testing"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/rules"
	"github.com/corngeom/vlsicore/tiles"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

const typA = ttype.Type(1)

func keepNewType(_ ttype.Body, newType ttype.Type) ttype.Body { return ttype.Rectangular(newType) }

func TestCheckFindsSpacingViolation(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)
	cd.Plane(0).Paint(geom.RectFromCoords(15, 0, 25, 10), typA, keepNewType)

	rt := rules.NewRuleTable()
	why := "m1.m1 spacing"
	rt.AddCookie(rules.Pair{L: typA, R: ttype.Space}, &rules.DrcCookie{
		Distance:   10,
		OkMask:     ttype.MaskOf(ttype.Space),
		CheckPlane: 0,
		Why:        &why,
	})

	eng := NewEngine(rt)
	var found []Violation
	eng.Check(context.Background(), cd, geom.RectFromCoords(-100, -100, 100, 100),
		SinkFunc(func(_ *celldef.CellDef, v Violation) { found = append(found, v) }))

	assert.NotEmpty(t, found)
	assert.Equal(t, "m1.m1 spacing", found[0].Why)
}

func TestCheckFindsNoViolationWhenFarEnough(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)
	cd.Plane(0).Paint(geom.RectFromCoords(25, 0, 35, 10), typA, keepNewType)

	rt := rules.NewRuleTable()
	rt.AddCookie(rules.Pair{L: typA, R: ttype.Space}, &rules.DrcCookie{
		Distance:   10,
		OkMask:     ttype.MaskOf(ttype.Space),
		CheckPlane: 0,
	})

	eng := NewEngine(rt)
	var found []Violation
	eng.Check(context.Background(), cd, geom.RectFromCoords(-100, -100, 100, 100),
		SinkFunc(func(_ *celldef.CellDef, v Violation) { found = append(found, v) }))

	assert.Empty(t, found)
}

func TestDecomposeMaximalRectsSubtractsBadTile(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := tiles.NewPlane(ttype.Rectangular(ttype.Space))
	p.Paint(geom.RectFromCoords(4, 0, 6, 10), typA, keepNewType)

	bound := geom.RectFromCoords(0, 0, 10, 10)
	free := DecomposeMaximalRects(p, bound, ttype.MaskOf(typA))

	var total int64
	for _, r := range free {
		assert.False(t, r.Overlaps(geom.RectFromCoords(4, 0, 6, 10)))
		total += int64(r.Width()) * int64(r.Height())
	}
	assert.Equal(t, int64(80), total) // 10x10 bound minus the 2x10 bad strip
}

func TestDirtyTrackerMarkAndPop(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d := NewDirtyTracker()
	assert.True(t, d.Empty())

	d.MarkDirty(geom.RectFromCoords(0, 0, 100, 100))
	assert.False(t, d.Empty())

	rect, ok := d.PopSquare(20)
	assert.True(t, ok)
	assert.LessOrEqual(t, rect.Width(), geom.DU(20))
	assert.LessOrEqual(t, rect.Height(), geom.DU(20))
	assert.False(t, d.Empty()) // only a 20x20 square of the 100x100 area was popped
}

func TestSchedulerDrainsQueue(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cd := celldef.NewCellDef("m1", 1)
	rt := rules.NewRuleTable()
	eng := NewEngine(rt)
	sched := NewScheduler(eng)

	sched.Enqueue(cd, geom.RectFromCoords(0, 0, 50, 50))
	assert.True(t, sched.Pending())

	ctx := context.Background()
	ran := 0
	for sched.RunIdle(ctx, 1000, SinkFunc(func(*celldef.CellDef, Violation) {})) {
		ran++
		if ran > 10 {
			t.Fatal("scheduler did not drain")
		}
	}
	assert.False(t, sched.Pending())
}
