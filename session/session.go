/*
Package session encapsulates the process-global state spec.md's design
notes ask to be made explicit rather than scattered across package-level
variables: the current technology (rule table and type catalog), the
current edit cell, the pending-DRC queue, and the cooperative interrupt
flag. Session is the single point every outer collaborator (a GUI event
loop, a script interpreter, a file reader) calls through; it does not
duplicate celldef, drc, or plow's own logic, only sequences and guards
calls into them.

Error handling

Every recoverable failure kind spec.md §7 names is a sentinel error
value here, compared with errors.Is; only a corner-stitch or
maximal-strip invariant violation (detected by tiles.Plane.Paint, not
this package) is allowed to panic.

	Kind                  Source                           Handling
	DesignRuleViolation   DRC engine                       Reported via sink only, not recorded on any plane; non-fatal.
	IllegalOverlap        Paint transition table           Not detected: Session's transition always keeps the new type; no error tile is produced.
	UnresolvedReference   CellUse referencing missing def   ErrUnresolvedReference; recoverable by substituting a stub def.
	BoundaryCross         Plow outside def bbox             Clip and continue; Plow returns ok=false.
	LockedCell            Mutating a read-only def          ErrLockedCell; mutation refused.
	Cancelled             Interrupt flag set                ErrCancelled; partial result, prior mutations persist.
	Internal              Corner-stitch invariant violated  Fatal — panics when tiles.StrictInvariants is set (unchecked otherwise); indicates a bug in plane code.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package session

import (
	"context"
	"strconv"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/drc"
	"github.com/corngeom/vlsicore/plow"
	"github.com/corngeom/vlsicore/rules"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer, following the teacher's per-package T()
// idiom (e.g. engine/frame/doc.go, tiles.T()).
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Sentinel errors, one per recoverable spec.md §7 Kind this package
// itself can raise, each carrying the matching core.AppError code so a
// caller can branch on either errors.Is or core.Code.
var (
	// ErrUnresolvedReference is returned when a CellUse names a CellDef
	// the symbol table has no entry for.
	ErrUnresolvedReference = core.Error(core.EUNRESOLVED, "unresolved cell reference")
	// ErrLockedCell is returned when an operation would mutate a CellDef
	// flagged read-only.
	ErrLockedCell = core.Error(core.ELOCKED, "cell is locked")
	// ErrCancelled is returned when the session's interrupt flag was set
	// during an operation; mutations committed before the cancel persist.
	ErrCancelled = core.Error(core.ECANCELLED, "operation cancelled")
	// ErrVendorGDS is returned when DRC or plow is requested against a
	// vendor GDS cell, which moves only as a rigid bounding box.
	ErrVendorGDS = core.Error(core.EBOUNDARY, "cell is a vendor GDS reference")
)

// Config tunables read through gconf.GetString, since that is the only
// concrete accessor this module's stack actually exposes (there is no
// typed GetInt); each is parsed with a safe fallback so a missing or
// malformed key never prevents a Session from starting.
const (
	keyDRCHalo      = "vlsicore-drc-halo"
	keyJogHorizon   = "vlsicore-jog-horizon"
	keyIdleSquare   = "vlsicore-idle-square"
	defaultDRCHalo  = geom.DU(10)
	defaultJogHoriz = geom.DU(50)
	defaultIdleSide = geom.DU(64)
)

func configInt(key string, fallback geom.DU) geom.DU {
	s := gconf.GetString(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return geom.DU(n)
}

// Session is process-global editor state made explicit: the current
// technology, the current edit cell, the pending-DRC queue, and a
// cooperative interrupt flag (spec.md §5, "Global state"). Like
// drc.Scheduler, a Session is single-threaded and cooperative; nothing
// about it is safe for concurrent use from more than one goroutine.
type Session struct {
	Catalog *ttype.Catalog
	Rules   *rules.RuleTable

	EditCell *celldef.CellDef
	Symbols  *celldef.SymbolTable

	drcEngine *drc.Engine
	scheduler *drc.Scheduler
	plow      *plow.Engine

	idleSquare geom.DU

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a Session with no technology loaded; call
// LoadTechnology before painting or checking anything.
func NewSession() *Session {
	s := &Session{
		Symbols:    celldef.NewSymbolTable(),
		idleSquare: configInt(keyIdleSquare, defaultIdleSide),
	}
	s.Resume()
	return s
}

// LoadTechnology atomically swaps in a new rule table and type catalog,
// pruning dominated plow rules and rebuilding the DRC and plow engines
// over the new tables (spec.md §6 "Technology-file load": "a reload
// rebuilds every table atomically"). Any DRC or plow work in flight must
// be quiesced by the caller first — Session does not itself track
// in-flight calls, since it is single-threaded by design.
func (s *Session) LoadTechnology(rt *rules.RuleTable, cat *ttype.Catalog) {
	rt.PruneAfterLoad()
	s.Rules = rt
	s.Catalog = cat
	s.drcEngine = drc.NewEngine(rt)
	s.scheduler = drc.NewScheduler(s.drcEngine)
	pe := plow.NewEngine(rt, cat)
	pe.Halo = configInt(keyDRCHalo, defaultDRCHalo)
	pe.JogHorizon = configInt(keyJogHorizon, defaultJogHoriz)
	s.plow = pe
	T().Infof("session: technology reloaded (%d planes)", cat.NumPlanes())
}

// Paint paints rect on cd's plane idx with t, then marks rect dirty on
// the pending-DRC queue (spec.md §6 "Paint/erase contract": "a post-hook
// that adds rect to def's DRC-check plane"). It refuses to mutate a
// locked CellDef.
func (s *Session) Paint(cd *celldef.CellDef, idx ttype.PlaneIndex, rect geom.Rect, t ttype.Type) error {
	if cd.HasFlag(celldef.FlagReadOnly) {
		return ErrLockedCell
	}
	cd.Plane(idx).Paint(rect, t, keepNewType)
	cd.RecomputeBBox()
	s.scheduler.Enqueue(cd, rect)
	return nil
}

// Erase paints rect back to Space on cd's plane idx, with the same
// DRC-dirty post-hook as Paint.
func (s *Session) Erase(cd *celldef.CellDef, idx ttype.PlaneIndex, rect geom.Rect) error {
	return s.Paint(cd, idx, rect, ttype.Space)
}

func keepNewType(_ ttype.Body, newType ttype.Type) ttype.Body { return ttype.Rectangular(newType) }

// CheckRect runs an immediate basic check over rect on cd, bypassing the
// idle queue — useful for a synchronous "check now" command. vendor GDS
// cells refuse the check and report ErrVendorGDS instead (spec.md §6
// "GDS read-only cells").
func (s *Session) CheckRect(cd *celldef.CellDef, rect geom.Rect, sink drc.Sink) error {
	if cd.HasFlag(celldef.FlagVendorGDS) {
		return ErrVendorGDS
	}
	s.drcEngine.Check(s.ctx, cd, rect, sink)
	if s.canceled() {
		return ErrCancelled
	}
	return nil
}

// EnqueueCheck marks rect dirty on cd's pending-DRC queue without
// running anything — the counterpart to CheckRect for callers that want
// the idle scheduler to pick the work up later.
func (s *Session) EnqueueCheck(cd *celldef.CellDef, rect geom.Rect) {
	s.scheduler.Enqueue(cd, rect)
}

// RunIdle pops one bounded-area square off the pending-DRC queue and
// checks it, reporting through sink. Call repeatedly from an idle hook
// (spec.md §5 "idle scheduler popping bounded-area squares"); returns
// false once nothing remains pending.
func (s *Session) RunIdle(sink drc.Sink) bool {
	return s.scheduler.RunIdle(s.ctx, s.idleSquare, sink)
}

// Pending reports whether any CellDef still has unchecked area queued.
func (s *Session) Pending() bool {
	return s.scheduler.Pending()
}

// Plow moves material out of rect in direction dir on cd. It refuses to
// run against a locked or vendor-GDS CellDef; otherwise it delegates to
// the plow engine and returns its ok result plus ErrCancelled if the
// session's interrupt flag was set mid-run (spec.md §6 "Plow request").
func (s *Session) Plow(cd *celldef.CellDef, rect geom.Rect, allowed ttype.Mask, dir plow.Direction) (bool, error) {
	if cd.HasFlag(celldef.FlagReadOnly) {
		return false, ErrLockedCell
	}
	if cd.HasFlag(celldef.FlagVendorGDS) {
		return false, ErrVendorGDS
	}
	ok := s.plow.Plow(s.ctx, cd, rect, allowed, dir)
	s.scheduler.Enqueue(cd, cd.BBox)
	if s.canceled() {
		return ok, ErrCancelled
	}
	return ok, nil
}

// ResolveUse looks cd up by name in the symbol table, for a reader
// wiring up a CellUse against an already-loaded design library
// (spec.md §7 "UnresolvedReference").
func (s *Session) ResolveUse(name string) (*celldef.CellDef, error) {
	cd, ok := s.Symbols.Lookup(name)
	if !ok {
		return nil, ErrUnresolvedReference
	}
	return cd, nil
}

// Interrupt sets the cooperative cancellation flag every DRC square,
// DRC edge, and plow edge dequeue checks between units of work (spec.md
// §5 "SigInterruptPending"). It has no effect on work already returned
// from a call; in-flight calls observe it at their next checkpoint.
func (s *Session) Interrupt() {
	s.cancel()
}

// Resume clears a prior interrupt, replacing the session's context with
// a fresh one — a canceled context.Context cannot be un-canceled, so
// this is the only way to make subsequent operations runnable again
// after an Interrupt.
func (s *Session) Resume() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
}

func (s *Session) canceled() bool {
	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}
