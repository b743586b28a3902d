package tiles

import (
	"errors"
	"fmt"
)

// CheckInvariants walks every live tile in the plane and verifies the
// four corner-stitch relations (spec.md §3) plus the maximal-horizontal-
// strip invariant (spec.md §8 invariant 1). It exists for tests: a
// well-behaved Plane should never fail it after any sequence of
// Paint/Erase/SplitX/SplitY/JoinX/JoinY calls.
func (p *Plane) CheckInvariants() error {
	freed := make(map[TileID]bool, len(p.free))
	for _, id := range p.free {
		freed[id] = true
	}

	var errs []error
	for i := range p.arena {
		id := TileID(i)
		if freed[id] || p.IsSentinel(id) {
			continue
		}
		t := p.arena[id]

		if bl := t.bl; !p.IsSentinel(bl) {
			if p.Right(bl) != p.Left(id) {
				errs = append(errs, fmt.Errorf("tile %d: BL %d has Right=%d, want %d", id, bl, p.Right(bl), p.Left(id)))
			}
			if !(p.Bottom(bl) <= p.Bottom(id) && p.Top(bl) > p.Bottom(id)) {
				errs = append(errs, fmt.Errorf("tile %d: BL %d does not span this tile's bottom-left corner", id, bl))
			}
		}
		if lb := t.lb; !p.IsSentinel(lb) {
			if p.Top(lb) != p.Bottom(id) {
				errs = append(errs, fmt.Errorf("tile %d: LB %d has Top=%d, want %d", id, lb, p.Top(lb), p.Bottom(id)))
			}
			if !(p.Left(lb) <= p.Left(id) && p.Right(lb) > p.Left(id)) {
				errs = append(errs, fmt.Errorf("tile %d: LB %d does not span this tile's bottom-left corner", id, lb))
			}
		}
		if tr := t.tr; !p.IsSentinel(tr) {
			if p.Left(tr) != p.Right(id) {
				errs = append(errs, fmt.Errorf("tile %d: TR %d has Left=%d, want %d", id, tr, p.Left(tr), p.Right(id)))
			}
			if !(p.Top(tr) >= p.Top(id) && p.Bottom(tr) < p.Top(id)) {
				errs = append(errs, fmt.Errorf("tile %d: TR %d does not span this tile's top-right corner", id, tr))
			}
		}
		if rt := t.rt; !p.IsSentinel(rt) {
			if p.Bottom(rt) != p.Top(id) {
				errs = append(errs, fmt.Errorf("tile %d: RT %d has Bottom=%d, want %d", id, rt, p.Bottom(rt), p.Top(id)))
			}
			if !(p.Right(rt) >= p.Right(id) && p.Left(rt) < p.Right(id)) {
				errs = append(errs, fmt.Errorf("tile %d: RT %d does not span this tile's top-right corner", id, rt))
			}
		}

		if r := t.tr; !p.IsSentinel(r) && !freed[r] {
			if t.body == p.arena[r].body && p.Bottom(id) == p.Bottom(r) && p.Top(id) == p.Top(r) {
				errs = append(errs, fmt.Errorf("tile %d and %d: same body and full vertical overlap, should have merged", id, r))
			}
		}
	}
	return errors.Join(errs...)
}

// Walk visits every live, non-sentinel tile exactly once in arena order
// (not canonical order — for whole-plane diagnostics, not for anything
// where visitation order matters; use AreaEnum for that).
func (p *Plane) Walk(visit func(TileID)) {
	freed := make(map[TileID]bool, len(p.free))
	for _, id := range p.free {
		freed[id] = true
	}
	for i := range p.arena {
		id := TileID(i)
		if freed[id] || p.IsSentinel(id) {
			continue
		}
		visit(id)
	}
}
