/*
Package drc implements the design rule checker: given a compiled
rules.RuleTable and a celldef.CellDef, it reports violations inside a
query rectangle by walking tile edges, running the matching DrcCookie
chains, and invoking a caller-supplied sink (spec.md §4.5).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package drc

import (
	"context"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/rules"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer, following the teacher's per-package T()
// idiom (e.g. engine/frame/doc.go, tiles.T()).
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Violation is one reported defect: the rectangle it covers, the cookie
// that found it, and a human-readable diagnostic if the cookie carries
// one (spec.md §4.5).
type Violation struct {
	Rect   geom.Rect
	Cookie *rules.DrcCookie
	Why    string
}

// Sink receives violations as Engine.Check finds them.
type Sink interface {
	Report(cd *celldef.CellDef, v Violation)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(cd *celldef.CellDef, v Violation)

func (f SinkFunc) Report(cd *celldef.CellDef, v Violation) { f(cd, v) }

// Mode selects how repeated findings of the same rule are deduplicated
// before reaching a Sink (spec.md §4.5 "why-summary vs list-all").
type Mode uint8

const (
	// ModeAll reports every violation found, including repeats of the
	// same rule at different locations.
	ModeAll Mode = iota
	// ModeSummary reports only the first violation seen for each
	// distinct Why string, collapsing an entire broken net down to one
	// representative finding.
	ModeSummary
)

// Engine runs DRC checks against a compiled rule table.
type Engine struct {
	Rules *rules.RuleTable
	Mode  Mode

	// EuclideanCorrection enables the radial quarter-circle correction at
	// corner extensions (spec.md §4.5.1 step 2): a candidate violator is
	// accepted only if some point of it falls within a quarter circle of
	// radius CornerDistance around the corner extension's origin, which
	// cuts down false spacing reports at 45-degree layouts. Off by
	// default, since most technology rule files are tuned against the
	// plain rectangular look-ahead and only diagonal-edge layouts need
	// the correction.
	EuclideanCorrection bool
}

// NewEngine creates an Engine over rt, in ModeAll with EuclideanCorrection
// off.
func NewEngine(rt *rules.RuleTable) *Engine {
	return &Engine{Rules: rt}
}

// reporter wraps a Sink with the mode-dependent dedup logic, shared by
// every checking entry point.
type reporter struct {
	sink Sink
	mode Mode
	seen map[string]bool
}

func newReporter(sink Sink, mode Mode) *reporter {
	return &reporter{sink: sink, mode: mode, seen: make(map[string]bool)}
}

func (r *reporter) report(cd *celldef.CellDef, v Violation) {
	if r.mode == ModeSummary && v.Why != "" {
		if r.seen[v.Why] {
			return
		}
		r.seen[v.Why] = true
	}
	r.sink.Report(cd, v)
}

// canceled reports whether ctx has been canceled, the cooperative
// checkpoint every loop in this package polls between tiles (spec.md §5
// "cooperative cancellation").
func canceled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
