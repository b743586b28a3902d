package session

import (
	"testing"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/drc"
	"github.com/corngeom/vlsicore/plow"
	"github.com/corngeom/vlsicore/rules"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func newTestSession() (*Session, ttype.Type) {
	s := NewSession()
	cat := ttype.NewCatalog(1)
	typA := cat.Define("metal1", 0)
	s.LoadTechnology(rules.NewRuleTable(), cat)
	return s, typA
}

func TestLoadTechnologySwapsTablesAtomically(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s := NewSession()
	cat1 := ttype.NewCatalog(1)
	s.LoadTechnology(rules.NewRuleTable(), cat1)
	assert.Same(t, cat1, s.Catalog)

	cat2 := ttype.NewCatalog(2)
	s.LoadTechnology(rules.NewRuleTable(), cat2)
	assert.Same(t, cat2, s.Catalog)
}

func TestPaintMarksPendingDRC(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, typA := newTestSession()
	cd := celldef.NewCellDef("m1", 1)

	assert.False(t, s.Pending())
	err := s.Paint(cd, 0, geom.RectFromCoords(0, 0, 10, 10), typA)
	assert.NoError(t, err)
	assert.True(t, s.Pending())
}

func TestPaintRefusesLockedCell(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, typA := newTestSession()
	cd := celldef.NewCellDef("m1", 1)
	cd.SetFlag(celldef.FlagReadOnly)

	err := s.Paint(cd, 0, geom.RectFromCoords(0, 0, 10, 10), typA)
	assert.ErrorIs(t, err, ErrLockedCell)
	assert.False(t, s.Pending())
}

func TestCheckRectRefusesVendorGDS(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, _ := newTestSession()
	cd := celldef.NewCellDef("vendor", 1)
	cd.SetFlag(celldef.FlagVendorGDS)

	err := s.CheckRect(cd, geom.RectFromCoords(0, 0, 10, 10), drc.SinkFunc(func(*celldef.CellDef, drc.Violation) {}))
	assert.ErrorIs(t, err, ErrVendorGDS)
}

func TestCheckRectReportsThroughSink(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, typA := newTestSession()
	why := "m1.m1 spacing"
	s.Rules.AddCookie(rules.Pair{L: typA, R: ttype.Space}, &rules.DrcCookie{
		Distance:   10,
		OkMask:     ttype.MaskOf(ttype.Space),
		CheckPlane: 0,
		Why:        &why,
	})
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)
	cd.Plane(0).Paint(geom.RectFromCoords(15, 0, 25, 10), typA, keepNewType)

	var reports int
	err := s.CheckRect(cd, geom.RectFromCoords(-100, -100, 100, 100), drc.SinkFunc(func(*celldef.CellDef, drc.Violation) {
		reports++
	}))
	assert.NoError(t, err)
	assert.Greater(t, reports, 0)
}

func TestRunIdleDrainsQueue(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, typA := newTestSession()
	cd := celldef.NewCellDef("m1", 1)
	s.Paint(cd, 0, geom.RectFromCoords(0, 0, 10, 10), typA)

	var reports int
	sink := drc.SinkFunc(func(*celldef.CellDef, drc.Violation) { reports++ })
	for s.RunIdle(sink) {
	}
	assert.False(t, s.Pending())
}

func TestPlowRefusesLockedCell(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, typA := newTestSession()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)
	cd.SetFlag(celldef.FlagReadOnly)

	ok, err := s.Plow(cd, geom.RectFromCoords(5, 0, 10, 10), ttype.MaskOf(typA), plow.East)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrLockedCell)
}

func TestPlowRefusesVendorGDS(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, typA := newTestSession()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)
	cd.SetFlag(celldef.FlagVendorGDS)

	ok, err := s.Plow(cd, geom.RectFromCoords(5, 0, 10, 10), ttype.MaskOf(typA), plow.East)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrVendorGDS)
}

func TestPlowDelegatesAndEnqueuesDRC(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, typA := newTestSession()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)

	ok, err := s.Plow(cd, geom.RectFromCoords(5, 0, 10, 10), ttype.MaskOf(typA), plow.East)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.Pending())
}

func TestResolveUseReturnsUnresolvedReference(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, _ := newTestSession()

	_, err := s.ResolveUse("nosuchcell")
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestResolveUseFindsRegisteredCell(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, _ := newTestSession()
	cd := celldef.NewCellDef("inverter", 1)
	s.Symbols.Register(cd)

	got, err := s.ResolveUse("inverter")
	assert.NoError(t, err)
	assert.Same(t, cd, got)
}

func TestInterruptCancelsPendingOperations(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s, typA := newTestSession()
	cd := celldef.NewCellDef("m1", 1)
	cd.Plane(0).Paint(geom.RectFromCoords(0, 0, 10, 10), typA, keepNewType)

	s.Interrupt()
	err := s.CheckRect(cd, geom.RectFromCoords(0, 0, 10, 10), drc.SinkFunc(func(*celldef.CellDef, drc.Violation) {}))
	assert.ErrorIs(t, err, ErrCancelled)

	s.Resume()
	err = s.CheckRect(cd, geom.RectFromCoords(0, 0, 10, 10), drc.SinkFunc(func(*celldef.CellDef, drc.Violation) {}))
	assert.NoError(t, err)
}
