package celldef

import "github.com/derekparker/trie"

// SymbolTable is the global CellDef registry, keyed by name (spec.md §3
// "Entity lifecycles": "CellDefs live in a global symbol table keyed by
// name"). Built on a trie rather than a bare map since a large technology
// library is routinely searched by prefix (e.g. an "open cell..." dialog
// narrowing as the user types).
type SymbolTable struct {
	t *trie.Trie
}

// NewSymbolTable creates an empty registry.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{t: trie.New()}
}

// Register adds cd under its own Name, replacing any existing entry of the
// same name.
func (st *SymbolTable) Register(cd *CellDef) {
	st.t.Add(cd.Name, cd)
}

// Lookup returns the CellDef registered under name, if any.
func (st *SymbolTable) Lookup(name string) (*CellDef, bool) {
	node, ok := st.t.Find(name)
	if !ok {
		return nil, false
	}
	cd, ok := node.Meta().(*CellDef)
	return cd, ok
}

// Remove deletes the entry for name, e.g. when a CellDef is deleted from
// the library entirely (not merely made unavailable).
func (st *SymbolTable) Remove(name string) {
	st.t.Remove(name)
}

// PrefixSearch returns the names of every registered CellDef whose name
// starts with prefix, for incremental "open cell" style lookups.
func (st *SymbolTable) PrefixSearch(prefix string) []string {
	return st.t.PrefixSearch(prefix)
}

// Names returns every registered CellDef name.
func (st *SymbolTable) Names() []string {
	return st.t.Keys()
}
