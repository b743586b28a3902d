/*
Package ttype implements the TileType catalog: a small integer index per
material, bitmask operations over the catalog, and the derived tables
(connectivity, plane assignment, contact residues, contact stacking) that
the rule table and the DRC/plow engines key off of.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ttype

import "math/bits"

// Type is a small integer index into the technology's type catalog. Type
// Space is reserved for "no material".
type Type uint16

// Space is the universal empty type; every plane starts out entirely Space.
const Space Type = 0

// MaxTypes bounds the catalog size (mirrors original_source/drc.h's
// TT_MAXTYPES-indexed rule table).
const MaxTypes = 256

// TechDepBase is the first technology-defined type index; indices below it
// are reserved (Space and a handful of built-ins).
const TechDepBase Type = 2

// UserBase is the first index that may be a contact type.
const UserBase Type = 64

// Mask is a fixed-width bitset over Type, sized to MaxTypes.
type Mask [MaxTypes / 64]uint64

// Set returns a copy of m with t added.
func (m Mask) Set(t Type) Mask {
	m[t/64] |= 1 << (t % 64)
	return m
}

// Clear returns a copy of m with t removed.
func (m Mask) Clear(t Type) Mask {
	m[t/64] &^= 1 << (t % 64)
	return m
}

// Has reports whether t is a member of m.
func (m Mask) Has(t Type) bool {
	return m[t/64]&(1<<(t%64)) != 0
}

// Union returns the bitwise union of m and o.
func (m Mask) Union(o Mask) Mask {
	var out Mask
	for i := range m {
		out[i] = m[i] | o[i]
	}
	return out
}

// Intersect returns the bitwise intersection of m and o.
func (m Mask) Intersect(o Mask) Mask {
	var out Mask
	for i := range m {
		out[i] = m[i] & o[i]
	}
	return out
}

// Subtract returns the members of m not in o.
func (m Mask) Subtract(o Mask) Mask {
	var out Mask
	for i := range m {
		out[i] = m[i] &^ o[i]
	}
	return out
}

// IsEmpty reports whether m has no members.
func (m Mask) IsEmpty() bool {
	for _, w := range m {
		if w != 0 {
			return false
		}
	}
	return true
}

// Intersects reports whether m and o share any member, without building
// the intersection.
func (m Mask) Intersects(o Mask) bool {
	for i := range m {
		if m[i]&o[i] != 0 {
			return true
		}
	}
	return false
}

// IsSubsetOf reports whether every member of m is also a member of o — used
// by the plow rule-table dominance pruning (spec.md §4.4).
func (m Mask) IsSubsetOf(o Mask) bool {
	for i := range m {
		if m[i]&^o[i] != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of member types.
func (m Mask) Count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

// MaskOf builds a mask from the given types.
func MaskOf(ts ...Type) Mask {
	var m Mask
	for _, t := range ts {
		m = m.Set(t)
	}
	return m
}

// ForEach calls f for every member of m, in increasing order. f may return
// false to stop early.
func (m Mask) ForEach(f func(Type) bool) {
	for i, w := range m {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			t := Type(i*64 + b)
			if !f(t) {
				return
			}
			w &^= 1 << b
		}
	}
}
