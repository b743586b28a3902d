package ttype

// PlaneIndex names one of a CellDef's tile planes.
type PlaneIndex int

// Catalog is the technology-wide type catalog and its derived tables
// (spec.md §4.3). It is built once at technology load and is immutable
// afterwards; a reload builds a fresh Catalog and swaps it in atomically
// (see package session).
type Catalog struct {
	names []string // Type -> name, index 0 is always "space"

	connectsTo []Mask       // transitive electrical connectivity, by Type
	planeOf    []PlaneIndex // primary plane, by Type
	residues   []Mask       // contact Type -> member non-contact types
	stacking   map[stackKey]Type

	activeLayers Mask
	fixedTypes   Mask
	coveredTypes Mask
	dragTypes    Mask
	contactTypes Mask

	numPlanes int
}

type stackKey struct{ a, b Type }

// NewCatalog creates an empty catalog sized for numPlanes paint planes, with
// type 0 pre-registered as Space.
func NewCatalog(numPlanes int) *Catalog {
	c := &Catalog{
		names:     []string{"space"},
		connectsTo: []Mask{{}},
		planeOf:    []PlaneIndex{-1},
		residues:   []Mask{{}},
		stacking:   make(map[stackKey]Type),
		numPlanes:  numPlanes,
	}
	return c
}

// NumPlanes returns the number of paint planes this catalog was built for.
func (c *Catalog) NumPlanes() int { return c.numPlanes }

// Define registers a new type on the given plane and returns its Type
// index. Types below TechDepBase are reserved for built-ins such as Space.
func (c *Catalog) Define(name string, plane PlaneIndex) Type {
	for len(c.names) < int(TechDepBase) {
		c.names = append(c.names, "")
		c.connectsTo = append(c.connectsTo, Mask{})
		c.planeOf = append(c.planeOf, -1)
		c.residues = append(c.residues, Mask{})
	}
	t := Type(len(c.names))
	c.names = append(c.names, name)
	c.connectsTo = append(c.connectsTo, MaskOf(t))
	c.planeOf = append(c.planeOf, plane)
	c.residues = append(c.residues, Mask{})
	c.activeLayers = c.activeLayers.Set(t)
	return t
}

// DefineContact registers a contact type whose residue is the given mask
// of non-contact types (spec.md §3 "TileType"). The contact is also added
// to ContactTypes.
func (c *Catalog) DefineContact(name string, plane PlaneIndex, residues Mask) Type {
	for len(c.names) < int(UserBase) {
		c.names = append(c.names, "")
		c.connectsTo = append(c.connectsTo, Mask{})
		c.planeOf = append(c.planeOf, -1)
		c.residues = append(c.residues, Mask{})
	}
	t := c.Define(name, plane)
	c.residues[t] = residues
	c.contactTypes = c.contactTypes.Set(t)
	return t
}

// Name returns the human-readable name of t.
func (c *Catalog) Name(t Type) string {
	if int(t) < len(c.names) {
		return c.names[t]
	}
	return "?"
}

// PlaneOf returns the primary plane carrying t.
func (c *Catalog) PlaneOf(t Type) PlaneIndex {
	if int(t) < len(c.planeOf) {
		return c.planeOf[t]
	}
	return -1
}

// ConnectsTo returns the transitive connectivity mask for t.
func (c *Catalog) ConnectsTo(t Type) Mask {
	if int(t) < len(c.connectsTo) {
		return c.connectsTo[t]
	}
	return Mask{}
}

// Connect records that a and b are electrically connected, transitively
// merging their connectivity masks (both are updated to their union, and
// every type already connected to either gets the merged mask too).
func (c *Catalog) Connect(a, b Type) {
	merged := c.ConnectsTo(a).Union(c.ConnectsTo(b)).Set(a).Set(b)
	var touched []Type
	merged.ForEach(func(t Type) bool { touched = append(touched, t); return true })
	for _, t := range touched {
		c.connectsTo[t] = merged
	}
}

// Residues returns the decomposition of a contact type onto its connected
// planes (spec.md §4.3).
func (c *Catalog) Residues(contact Type) Mask {
	if int(contact) < len(c.residues) {
		return c.residues[contact]
	}
	return Mask{}
}

// SetStacking records the type produced when contacts a and b share a
// common residue plane.
func (c *Catalog) SetStacking(a, b, result Type) {
	c.stacking[stackKey{a, b}] = result
	c.stacking[stackKey{b, a}] = result
}

// Stacking looks up the stacked type for contacts a and b, if any.
func (c *Catalog) Stacking(a, b Type) (Type, bool) {
	r, ok := c.stacking[stackKey{a, b}]
	return r, ok
}

// ActiveLayers returns the mask of types currently allowed in the edit cell.
func (c *Catalog) ActiveLayers() Mask { return c.activeLayers }

// SetActiveLayers replaces the active-layers mask (e.g. when the user
// narrows editing to a subset of the technology).
func (c *Catalog) SetActiveLayers(m Mask) { c.activeLayers = m }

// Plowing adjunct sets (spec.md §4.3).

func (c *Catalog) FixedTypes() Mask   { return c.fixedTypes }
func (c *Catalog) CoveredTypes() Mask { return c.coveredTypes }
func (c *Catalog) DragTypes() Mask    { return c.dragTypes }
func (c *Catalog) ContactTypes() Mask { return c.contactTypes }

func (c *Catalog) MarkFixed(t Type)   { c.fixedTypes = c.fixedTypes.Set(t) }
func (c *Catalog) MarkCovered(t Type) { c.coveredTypes = c.coveredTypes.Set(t) }
func (c *Catalog) MarkDrag(t Type)    { c.dragTypes = c.dragTypes.Set(t) }

// IsContact reports whether t is a contact type.
func (c *Catalog) IsContact(t Type) bool { return c.contactTypes.Has(t) }
