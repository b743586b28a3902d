package drc

import (
	"context"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
	"github.com/corngeom/vlsicore/tiles"
	pq "github.com/emirpasic/gods/queues/priorityqueue"
)

// Two tags private to a DirtyTracker's own plane — never shared with a
// technology's paint planes, so colliding with a real Type value is not a
// concern.
const (
	clean ttype.Type = ttype.Space
	dirty ttype.Type = ttype.Space + 1
)

// DirtyTracker records which areas of one CellDef still need a basic-
// check pass, on a plane dedicated to that bookkeeping (spec.md §5
// "pending-cells queue... a dedicated check plane"). MarkDirty is the
// post-hook every paint/erase call makes (spec.md §6 "Paint/erase
// contract"); PopSquare is what the idle scheduler calls between UI
// events.
type DirtyTracker struct {
	plane *tiles.Plane
}

// NewDirtyTracker creates a tracker with no pending area.
func NewDirtyTracker() *DirtyTracker {
	return &DirtyTracker{plane: tiles.NewPlane(ttype.Rectangular(clean))}
}

// MarkDirty records that rect needs a (re-)check.
func (d *DirtyTracker) MarkDirty(rect geom.Rect) {
	d.plane.Paint(rect, dirty, func(ttype.Body, ttype.Type) ttype.Body { return ttype.Rectangular(dirty) })
}

// PopSquare finds one dirty tile, clips it to at most maxSide on each
// axis, marks that square clean again, and returns its rectangle. ok is
// false once no dirty area remains.
func (d *DirtyTracker) PopSquare(maxSide geom.DU) (rect geom.Rect, ok bool) {
	d.plane.AreaEnum(geom.Universe, ttype.MaskOf(dirty), func(id tiles.TileID) bool {
		r := d.plane.Rect(id)
		if r.Width() > maxSide {
			r.Max.X = r.Min.X + maxSide
		}
		if r.Height() > maxSide {
			r.Max.Y = r.Min.Y + maxSide
		}
		rect, ok = r, true
		return false
	})
	if ok {
		d.plane.Paint(rect, clean, func(ttype.Body, ttype.Type) ttype.Body { return ttype.Rectangular(clean) })
	}
	return rect, ok
}

// Empty reports whether any dirty area remains.
func (d *DirtyTracker) Empty() bool {
	empty := true
	d.plane.AreaEnum(geom.Universe, ttype.MaskOf(dirty), func(tiles.TileID) bool {
		empty = false
		return false
	})
	return empty
}

// cellEntry is one pending CellDef in the scheduler's queue, ordered by
// the sequence number it was (re-)queued under, so squares from
// longer-waiting cells pop first.
type cellEntry struct {
	cd      *celldef.CellDef
	tracker *DirtyTracker
	seq     int64
}

// Scheduler runs bounded-area, idle-driven incremental basic checks
// across a set of CellDefs with unchecked area (spec.md §5). Nothing
// about Scheduler is safe for concurrent use from more than one
// goroutine — the whole design is single-threaded and cooperative, per
// spec.md §5's "Scheduling model".
type Scheduler struct {
	engine   *Engine
	queue    *pq.Queue
	seq      int64
	trackers map[*celldef.CellDef]*DirtyTracker
}

// NewScheduler creates a scheduler that runs checks through e.
func NewScheduler(e *Engine) *Scheduler {
	cmp := func(a, b interface{}) int {
		ea, eb := a.(*cellEntry), b.(*cellEntry)
		switch {
		case ea.seq < eb.seq:
			return -1
		case ea.seq > eb.seq:
			return 1
		default:
			return 0
		}
	}
	return &Scheduler{
		engine:   e,
		queue:    pq.NewWith(cmp),
		trackers: make(map[*celldef.CellDef]*DirtyTracker),
	}
}

func (s *Scheduler) trackerFor(cd *celldef.CellDef) *DirtyTracker {
	t, ok := s.trackers[cd]
	if !ok {
		t = NewDirtyTracker()
		s.trackers[cd] = t
	}
	return t
}

// Enqueue marks rect dirty on cd's check plane (the post-hook spec.md §6
// says every paint/erase call makes), adding cd to the run queue if it
// was not already pending.
func (s *Scheduler) Enqueue(cd *celldef.CellDef, rect geom.Rect) {
	t := s.trackerFor(cd)
	wasEmpty := t.Empty()
	t.MarkDirty(rect)
	if wasEmpty {
		s.seq++
		s.queue.Enqueue(&cellEntry{cd: cd, tracker: t, seq: s.seq})
	}
}

// RunIdle pops one bounded-area square and runs the basic check on it,
// re-queuing its CellDef if dirty area remains, then returns. Call
// repeatedly from an idle hook; ctx is checked cooperatively between
// squares (Engine.Check checks it between edges too), matching spec.md
// §5's SigInterruptPending semantics: a cancel leaves all paint mutations
// committed and the pending queue populated for the next run to resume
// from. Returns false once the queue is empty.
func (s *Scheduler) RunIdle(ctx context.Context, maxSide geom.DU, sink Sink) bool {
	if canceled(ctx) {
		return !s.queue.Empty()
	}
	v, ok := s.queue.Dequeue()
	if !ok {
		return false
	}
	entry := v.(*cellEntry)
	rect, popped := entry.tracker.PopSquare(maxSide)
	if !popped {
		return s.RunIdle(ctx, maxSide, sink)
	}
	s.engine.Check(ctx, entry.cd, rect, sink)
	if !entry.tracker.Empty() {
		s.seq++
		entry.seq = s.seq
		s.queue.Enqueue(entry)
	}
	return true
}

// Pending reports whether any CellDef still has unchecked area.
func (s *Scheduler) Pending() bool {
	return !s.queue.Empty()
}
