package plow

import (
	"github.com/emirpasic/gods/sets/hashset"
	pq "github.com/emirpasic/gods/queues/priorityqueue"

	"github.com/corngeom/vlsicore/celldef"
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
)

// edgeKey identifies an edge by its value, not its pointer: two search
// rules deriving the same requirement (same strip, same target, same
// type) independently must dedupe to one queue entry, which is what gives
// propagation its fixed-point termination guarantee (spec.md §4.6
// "Propagation" / "Termination").
type edgeKey struct {
	x, finalX, yBot, yTop geom.DU
	plane                 ttype.PlaneIndex
	l, r                  ttype.Type
	use                   *celldef.CellUse
}

func keyOf(e *Edge) edgeKey {
	return edgeKey{
		x: e.X, finalX: e.FinalX, yBot: e.YBot, yTop: e.YTop,
		plane: e.Plane, l: e.L, r: e.R, use: e.Use,
	}
}

// edgeQueue orders pending edges so the leftmost un-moved edge is always
// next, letting propagation sweep eastward without revisiting an edge
// whose neighbors to the west are already settled (spec.md §4.6 "Edges").
type edgeQueue struct {
	q    *pq.Queue
	seen *hashset.Set
}

func newEdgeQueue() *edgeQueue {
	cmp := func(a, b interface{}) int {
		ea, eb := a.(*Edge), b.(*Edge)
		switch {
		case ea.X < eb.X:
			return -1
		case ea.X > eb.X:
			return 1
		default:
			return 0
		}
	}
	return &edgeQueue{q: pq.NewWith(cmp), seen: hashset.New()}
}

// push enqueues e, unless an edge with the same value was already seen
// during this propagation run.
func (q *edgeQueue) push(e *Edge) {
	key := keyOf(e)
	if q.seen.Contains(key) {
		return
	}
	q.seen.Add(key)
	q.q.Enqueue(e)
}

func (q *edgeQueue) pop() (*Edge, bool) {
	v, ok := q.q.Dequeue()
	if !ok {
		return nil, false
	}
	return v.(*Edge), true
}
