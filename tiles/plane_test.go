package tiles

import (
	"os"
	"testing"

	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	StrictInvariants = true
	os.Exit(m.Run())
}

func overwrite(ttype.Type) TransitionFunc {
	return func(_ ttype.Body, t ttype.Type) ttype.Body { return ttype.Rectangular(t) }
}

func TestNewPlaneIsOneSpaceTile(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := NewPlane(ttype.Rectangular(ttype.Space))
	assert.NoError(t, p.CheckInvariants())

	id := p.PointLocate(geom.Point{X: 0, Y: 0})
	assert.Equal(t, ttype.Space, p.Tile(id).Body().TypeExact())
	assert.Equal(t, geom.Universe, p.Rect(id))
}

// S1: point location finds the tile containing an arbitrary point, and
// repeated lookups near each other are cheap since the hint converges.
func TestPointLocateAfterPaint(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := NewPlane(ttype.Rectangular(ttype.Space))
	metal := ttype.Type(5)
	rect := geom.RectFromCoords(10, 10, 50, 40)
	p.Paint(rect, metal, overwrite(metal))
	assert.NoError(t, p.CheckInvariants())

	inside := p.PointLocate(geom.Point{X: 20, Y: 20})
	assert.Equal(t, metal, p.Tile(inside).Body().TypeExact())
	assert.Equal(t, rect, p.Rect(inside))

	outside := p.PointLocate(geom.Point{X: 100, Y: 100})
	assert.Equal(t, ttype.Space, p.Tile(outside).Body().TypeExact())
}

// S2: painting two abutting same-type rects merges them into a single
// maximal tile rather than leaving a seam.
func TestPaintMergesAdjacentSameType(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := NewPlane(ttype.Rectangular(ttype.Space))
	metal := ttype.Type(7)

	p.Paint(geom.RectFromCoords(0, 0, 10, 10), metal, overwrite(metal))
	p.Paint(geom.RectFromCoords(10, 0, 20, 10), metal, overwrite(metal))
	assert.NoError(t, p.CheckInvariants())

	left := p.PointLocate(geom.Point{X: 5, Y: 5})
	right := p.PointLocate(geom.Point{X: 15, Y: 5})
	assert.Equal(t, left, right, "adjacent same-type paints should merge into one tile")
	assert.Equal(t, geom.RectFromCoords(0, 0, 20, 10), p.Rect(left))
}

func TestPaintDoesNotMergeDifferentTypes(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := NewPlane(ttype.Rectangular(ttype.Space))
	metal1, metal2 := ttype.Type(5), ttype.Type(6)

	p.Paint(geom.RectFromCoords(0, 0, 10, 10), metal1, overwrite(metal1))
	p.Paint(geom.RectFromCoords(10, 0, 20, 10), metal2, overwrite(metal2))
	assert.NoError(t, p.CheckInvariants())

	left := p.PointLocate(geom.Point{X: 5, Y: 5})
	right := p.PointLocate(geom.Point{X: 15, Y: 5})
	assert.NotEqual(t, left, right)
}

func TestEraseRevertsToSpace(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := NewPlane(ttype.Rectangular(ttype.Space))
	metal := ttype.Type(5)
	p.Paint(geom.RectFromCoords(0, 0, 30, 30), metal, overwrite(metal))
	p.Erase(geom.RectFromCoords(10, 10, 20, 20), ttype.Rectangular(ttype.Space))
	assert.NoError(t, p.CheckInvariants())

	hole := p.PointLocate(geom.Point{X: 15, Y: 15})
	assert.Equal(t, ttype.Space, p.Tile(hole).Body().TypeExact())

	ring := p.PointLocate(geom.Point{X: 1, Y: 1})
	assert.Equal(t, metal, p.Tile(ring).Body().TypeExact())
}

func TestAreaEnumCanonicalOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := NewPlane(ttype.Rectangular(ttype.Space))
	metal := ttype.Type(5)
	p.Paint(geom.RectFromCoords(0, 20, 10, 30), metal, overwrite(metal))
	p.Paint(geom.RectFromCoords(20, 0, 30, 10), metal, overwrite(metal))

	var tops []geom.DU
	p.AreaEnum(geom.RectFromCoords(-100, -100, 100, 100), ttype.MaskOf(metal), func(id TileID) bool {
		tops = append(tops, p.Rect(id).Max.Y)
		return true
	})
	assert.Len(t, tops, 2)
	assert.GreaterOrEqual(t, tops[0], tops[1], "AreaEnum must visit top-down")
}

func TestAreaEnumReentrant(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := NewPlane(ttype.Rectangular(ttype.Space))
	metal := ttype.Type(5)
	p.Paint(geom.RectFromCoords(0, 0, 10, 10), metal, overwrite(metal))

	visited := 0
	p.AreaEnum(geom.RectFromCoords(-50, -50, 50, 50), ttype.MaskOf(metal), func(id TileID) bool {
		visited++
		// Calling back into the plane from inside the visitor must not
		// corrupt the enumeration in progress.
		_ = p.PointLocate(geom.Point{X: 5, Y: 5})
		p.AreaEnum(geom.RectFromCoords(0, 0, 1, 1), ttype.MaskOf(ttype.Space), func(TileID) bool { return true })
		return true
	})
	assert.Equal(t, 1, visited)
}
