/*
Package plow implements constraint-driven compaction: given a CellDef, a
plow rectangle, and a direction, it finds a displacement of tiles and
child uses that clears the plow rectangle without violating any design
rule, deforming fixed-width geometry, or leaving material uncovered
(spec.md §4.6).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package plow

import (
	"context"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/rules"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer, following the teacher's per-package T()
// idiom (e.g. engine/frame/doc.go, tiles.T()).
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Direction names one of the four plow directions. Propagation always
// runs eastward internally; the other three are handled by rotating the
// yanked copy (spec.md §4.6 "Orientation normalization").
type Direction uint8

const (
	East Direction = iota
	West
	North
	South
)

// directionTransform returns the rotation that makes dir's motion become
// eastward motion.
func directionTransform(dir Direction) geom.Transform {
	switch dir {
	case West:
		return geom.Rotate180
	case North:
		return geom.Rotate270
	case South:
		return geom.Rotate90
	default:
		return geom.Identity
	}
}

// Engine runs plow operations against a compiled rule table and type
// catalog.
type Engine struct {
	Rules   *rules.RuleTable
	Catalog *ttype.Catalog

	// Halo is the clearance the yank buffer is grown by beyond the plow
	// rectangle before propagation starts (spec.md §4.6 "Yank buffer").
	Halo geom.DU

	// JogHorizon is the width below which jog cleanup fills a free-space
	// gap flanked by the same material (spec.md §4.6 "Jog cleanup").
	JogHorizon geom.DU
}

// NewEngine creates an Engine over rt and cat with a modest default halo
// and jog horizon; callers with a technology-specific minimum spacing
// should set Halo to at least that value.
func NewEngine(rt *rules.RuleTable, cat *ttype.Catalog) *Engine {
	return &Engine{Rules: rt, Catalog: cat, Halo: 10, JogHorizon: 50}
}

// Plow moves material out of rect in direction dir. It returns ok=false
// when the full requested motion would cross cd's bounding box, in which
// case the plow rectangle is clipped first and the partial motion commits
// (spec.md §6 "Plow request"). It also returns ok=false, moving nothing,
// when cd is a vendor GDS cell or rect lies wholly outside cd's bounding
// box.
func (e *Engine) Plow(ctx context.Context, cd *celldef.CellDef, rect geom.Rect, allowed ttype.Mask, dir Direction) bool {
	if cd.HasFlag(celldef.FlagVendorGDS) {
		// A vendor GDS cell moves as a rigid bounding box and is never
		// plow-deformed (spec.md §6).
		return false
	}
	cd.RecomputeBBox()
	clipped, inBounds := rect.Clip(cd.BBox)
	if !inBounds {
		return false
	}
	full := clipped == rect
	rect = clipped

	toEast := directionTransform(dir)
	toOriginal := toEast.Inverse()

	yankRect := rect.Grow(e.Halo)
	scratch, origin, extent := Yank(cd, yankRect, toEast)

	// One seed edge per plane, each spanning the whole plow band, west face
	// to east face: its search rules (clearUmbra above all) scan that
	// band for obstructions and spawn a concrete edge per one found. A
	// seed is never committed itself (commitEdge skips EdgeVirtual) — it
	// exists purely to kick off propagation on its plane.
	eastRect := ToScratch(origin, toEast, rect)
	q := newEdgeQueue()
	for i := 0; i < scratch.NumPlanes(); i++ {
		q.push(&Edge{
			X: eastRect.Min.X, FinalX: eastRect.Max.X,
			YBot: eastRect.Min.Y, YTop: eastRect.Max.Y,
			Plane: ttype.PlaneIndex(i),
			Flags: EdgeVirtual,
		})
	}

	for {
		if canceled(ctx) {
			break
		}
		ed, ok := q.pop()
		if !ok {
			break
		}
		if ed.FinalX <= ed.X {
			continue
		}
		e.applySearchRules(scratch, ed, q, allowed)
		commitEdge(scratch, ed)
	}

	CleanupJogs(scratch, extent, e.JogHorizon)
	WriteBack(cd, scratch, origin, toOriginal, extent)
	T().Infof("plow: %s dir=%v over %s complete (full=%v)", cd.Name, dir, rect, full)
	return full
}

func canceled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// fullMask matches every possible type — plow, like drc, often needs to
// visit a tile regardless of its type and filter in the callback instead.
func fullMask() ttype.Mask {
	var m ttype.Mask
	for i := range m {
		m[i] = ^uint64(0)
	}
	return m
}

func keepNewType(_ ttype.Body, newType ttype.Type) ttype.Body { return ttype.Rectangular(newType) }
