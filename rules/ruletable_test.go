package rules

import (
	"testing"

	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestAddCookiePreservesLoadOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rt := NewRuleTable()
	pair := Pair{L: ttype.Type(1), R: ttype.Type(2)}
	first := &DrcCookie{Distance: 3}
	second := &DrcCookie{Distance: 5}

	rt.AddCookie(pair, first)
	rt.AddCookie(pair, second)

	head := rt.Cookies(pair)
	assert.Same(t, first, head)
	assert.Same(t, second, head.Next)
}

func TestTriggerCookieChainsToNext(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rt := NewRuleTable()
	pair := Pair{L: ttype.Type(1), R: ttype.Type(2)}
	trigger := &DrcCookie{Distance: 2, Flags: FlagTrigger | FlagOutside}
	followUp := &DrcCookie{Distance: 10}
	rt.AddCookie(pair, trigger)
	rt.AddCookie(pair, followUp)

	head := rt.Cookies(pair)
	assert.True(t, head.Flags&FlagTrigger != 0)
	assert.Same(t, followUp, head.Next)
}

func TestPruneAfterLoadRemovesDominatedRule(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rt := NewRuleTable()
	pair := Pair{L: ttype.Type(3), R: ttype.Type(4)}
	narrow := ttype.MaskOf(ttype.Type(5))
	wide := ttype.MaskOf(ttype.Type(5), ttype.Type(6))

	strict := &PlowRule{Plane: 0, Distance: 10, OkMask: narrow, InsideMask: ttype.Mask{}}
	loose := &PlowRule{Plane: 0, Distance: 5, OkMask: wide, InsideMask: ttype.Mask{}}
	rt.AddSpacingRule(pair, strict)
	rt.AddSpacingRule(pair, loose)

	rt.PruneAfterLoad()

	kept := rt.SpacingRules(pair)
	assert.Len(t, kept, 1)
	assert.Same(t, strict, kept[0])
}

func TestPruneAfterLoadKeepsIncomparableRules(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rt := NewRuleTable()
	pair := Pair{L: ttype.Type(3), R: ttype.Type(4)}
	onPlaneA := &PlowRule{Plane: 0, Distance: 10, OkMask: ttype.MaskOf(ttype.Type(5)), InsideMask: ttype.Mask{}}
	onPlaneB := &PlowRule{Plane: 1, Distance: 3, OkMask: ttype.MaskOf(ttype.Type(6)), InsideMask: ttype.Mask{}}
	rt.AddWidthRule(pair, onPlaneA)
	rt.AddWidthRule(pair, onPlaneB)

	rt.PruneAfterLoad()

	assert.Len(t, rt.WidthRules(pair), 2)
}
