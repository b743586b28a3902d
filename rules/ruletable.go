package rules

import "github.com/corngeom/vlsicore/core/ttype"

// Pair is an ordered (left, right) type pair, the key DRC and plow rules
// are indexed by (spec.md §4.4: "For each ordered type pair (L, R)").
type Pair struct {
	L, R ttype.Type
}

// RuleTable is the compiled, technology-wide rule set: a DRC cookie chain
// per ordered type pair, plus plow width and spacing rule buckets. It is
// immutable once built; a technology reload builds a fresh RuleTable and
// the caller (package session) swaps it in atomically (spec.md §3 "Entity
// lifecycles").
type RuleTable struct {
	drc   map[Pair]*DrcCookie
	width map[Pair][]*PlowRule
	space map[Pair][]*PlowRule
}

// NewRuleTable creates an empty table ready for loading.
func NewRuleTable() *RuleTable {
	return &RuleTable{
		drc:   make(map[Pair]*DrcCookie),
		width: make(map[Pair][]*PlowRule),
		space: make(map[Pair][]*PlowRule),
	}
}

// AddCookie appends cookie to the end of the chain for pair, preserving
// load order (cookies within a pair are evaluated in the order the
// technology file declared them).
func (rt *RuleTable) AddCookie(pair Pair, cookie *DrcCookie) {
	head := rt.drc[pair]
	if head == nil {
		rt.drc[pair] = cookie
		return
	}
	tail := head
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = cookie
}

// Cookies returns the head of the cookie chain for pair, or nil if the
// pair has no rules.
func (rt *RuleTable) Cookies(pair Pair) *DrcCookie {
	return rt.drc[pair]
}

// PlowRule is one width or spacing rule bucket entry (spec.md §4.4
// "Plowing rules"): a plane, a distance, an allowed-types mask, an
// inside-types mask, and modifier flags.
type PlowRule struct {
	Plane      ttype.PlaneIndex
	Distance   int64
	OkMask     ttype.Mask
	InsideMask ttype.Mask

	Width               bool // this entry is a width rule, not a spacing rule
	PenumbraOnly        bool
	DerivedFromEdgeRule bool
}

// dominates reports whether a dominates b: same plane, same inside mask,
// a's distance at least as strict (>=) as b's, and a's ok mask a subset
// of b's (a is never more permissive than b) — per spec.md §4.4's
// dominance-pruning criterion.
func (a *PlowRule) dominates(b *PlowRule) bool {
	return a.Plane == b.Plane &&
		a.InsideMask == b.InsideMask &&
		a.Distance >= b.Distance &&
		a.OkMask.IsSubsetOf(b.OkMask)
}

// AddWidthRule and AddSpacingRule append to the unpruned bucket for pair;
// call PruneDominated once all rules for a technology are loaded.
func (rt *RuleTable) AddWidthRule(pair Pair, r *PlowRule) {
	r.Width = true
	rt.width[pair] = append(rt.width[pair], r)
}

func (rt *RuleTable) AddSpacingRule(pair Pair, r *PlowRule) {
	r.Width = false
	rt.space[pair] = append(rt.space[pair], r)
}

// WidthRules and SpacingRules return the (pruned, after PruneAfterLoad)
// bucket for pair.
func (rt *RuleTable) WidthRules(pair Pair) []*PlowRule  { return rt.width[pair] }
func (rt *RuleTable) SpacingRules(pair Pair) []*PlowRule { return rt.space[pair] }

// PruneAfterLoad removes, from every bucket, any rule dominated by another
// rule in the same bucket (spec.md §4.4's plow_after_tech optimization: a
// rule that can never fire because a stricter sibling always fires first
// is dead weight on every plow step). Call once after all of a
// technology's rules have been loaded.
func (rt *RuleTable) PruneAfterLoad() {
	for pair, bucket := range rt.width {
		rt.width[pair] = pruneBucket(bucket)
	}
	for pair, bucket := range rt.space {
		rt.space[pair] = pruneBucket(bucket)
	}
}

func pruneBucket(bucket []*PlowRule) []*PlowRule {
	keep := make([]*PlowRule, 0, len(bucket))
	for i, r := range bucket {
		dominated := false
		for j, other := range bucket {
			if i == j {
				continue
			}
			if other.dominates(r) && !r.dominates(other) {
				dominated = true
				break
			}
			// Equal-strength duplicates: keep only the earlier-loaded one.
			if other.dominates(r) && r.dominates(other) && j < i {
				dominated = true
				break
			}
		}
		if !dominated {
			keep = append(keep, r)
		}
	}
	return keep
}
