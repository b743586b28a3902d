/*
Package rules implements the compiled rule table a technology load
produces: per-type-pair DRC cookie chains plus plow width/spacing rule
buckets, with a post-load pass that prunes rules made redundant by a
stricter sibling (spec.md §4.4).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package rules

import (
	"github.com/corngeom/vlsicore/core/geom"
	"github.com/corngeom/vlsicore/core/ttype"
)

// CookieFlag bits combine freely on a DrcCookie (spec.md §4.4 "flags"):
// unlike ttype.Body's split-tile kind, which is truly either/or, a DRC
// rule routinely needs several of these at once (a trigger cookie that is
// also outside and both_corners is an ordinary width-spacing two-step
// rule), so a flag set fits better than a sum type here.
type CookieFlag uint16

const (
	// FlagReverse scans right-to-left across the edge; the default
	// (unset) is forward, left-to-right.
	FlagReverse CookieFlag = 1 << iota
	// FlagBothCorners extends the look-ahead at both edge endpoints
	// instead of just the leading one.
	FlagBothCorners
	// FlagOutside places the look-ahead strictly outside the edge's
	// interior material (a spacing rule); unset means strictly inside
	// (a width rule).
	FlagOutside
	// FlagTrigger marks this cookie as producing candidate regions for
	// the next cookie in the same pair's list, rather than reporting
	// violations itself (a two-step rule such as widespacing).
	FlagTrigger
	// FlagBends, FlagMaxwidth, FlagArea, FlagRectSize, FlagAngles select
	// one of the specialized non-edge scanners instead of the four-way
	// edge walker (spec.md §4.5 step 5). Exactly one of these (or none,
	// for an ordinary edge rule) is expected to be set.
	FlagBends
	FlagMaxwidth
	FlagArea
	FlagRectSize
	FlagAngles
)

// IsSpecialized reports whether f selects one of the dedicated scanners
// rather than the ordinary edge walker.
func (f CookieFlag) IsSpecialized() bool {
	return f&(FlagBends|FlagMaxwidth|FlagArea|FlagRectSize|FlagAngles) != 0
}

// DrcCookie is one rule in the per-type-pair linked list (spec.md §4.4
// "DRC cookies"). Next chains to the following cookie for the same
// ordered (L, R) pair; for a FlagTrigger cookie, Next is the cookie run
// over each candidate region the trigger produces, not merely "the next
// unrelated rule" — RuleTable.Cookies keeps the full chain, trigger or
// not, since that is exactly how the source expresses "two-step" rules.
type DrcCookie struct {
	Distance       geom.DU
	CornerDistance geom.DU

	OkMask     ttype.Mask
	CornerMask ttype.Mask

	EdgePlane  ttype.PlaneIndex
	CheckPlane ttype.PlaneIndex

	Flags CookieFlag

	// Specialized-scanner parameters, read only when Flags.IsSpecialized();
	// which field applies depends on which Flag*-bit is set (spec.md §4.5
	// step 5).
	AreaMin       int64   // FlagArea: minimum legal region area
	MaxWidthLimit geom.DU // FlagMaxwidth: width/height limit
	RectXParity   int     // FlagRectSize: required X-dimension parity (0 or 1)
	RectYParity   int     // FlagRectSize: required Y-dimension parity (0 or 1)
	ManhattanOnly bool    // FlagAngles: true forbids any split tile outright;
	// false permits a split tile only if it cuts at exactly 45 degrees
	// (equal width and height)

	Why *string // human-readable diagnostic; siblings may share the pointer

	Next *DrcCookie
}

// EdgeDirection reports the scan direction implied by Flags.
func (c *DrcCookie) EdgeDirection() Direction {
	if c.Flags&FlagReverse != 0 {
		return Reverse
	}
	return Forward
}

// Direction names which way a basic-check edge walk scans.
type Direction uint8

const (
	Forward Direction = iota
	Reverse
)
