package geom

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestRectOverlap(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := RectFromCoords(0, 0, 10, 10)
	b := RectFromCoords(5, 5, 15, 15)
	assert.True(t, a.Overlaps(b))
	c := RectFromCoords(10, 0, 20, 10)
	assert.False(t, a.Overlaps(c))
	assert.True(t, a.Touches(c))
}

func TestRectClip(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := RectFromCoords(0, 0, 10, 10)
	b := RectFromCoords(5, -5, 15, 5)
	clipped, ok := a.Clip(b)
	assert.True(t, ok)
	assert.Equal(t, RectFromCoords(5, 0, 10, 5), clipped)
}

func TestUniverseClip(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	huge := RectFromCoords(MinInfinity-100, 0, Infinity+100, 10)
	clipped := huge.ClipToUniverse()
	assert.Equal(t, MinInfinity, clipped.Min.X)
	assert.Equal(t, Infinity, clipped.Max.X)
}

func TestTransformOrthogonality(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for _, o := range Orientations {
		assert.True(t, o.IsOrthogonal(), "%v should be orthogonal", o)
	}
}

func TestTransformInverse(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	tr := Transform{A: 0, B: -1, D: 1, E: 0, C: 5, F: -3}
	inv := tr.Inverse()
	p := Point{7, 2}
	assert.Equal(t, p, inv.Apply(tr.Apply(p)))
}

func TestTransformCompose(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := Point{3, 4}
	combined := Rotate180.Compose(Rotate90)
	direct := Rotate180.Apply(Rotate90.Apply(p))
	assert.Equal(t, direct, combined.Apply(p))
}
