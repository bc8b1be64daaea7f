/*
Copyright © 2020 the ChemScheme authors.
This file is part of ChemScheme.

ChemScheme is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemScheme is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemScheme.  If not, see <http://www.gnu.org/licenses/>.
*/

package chemscheme

import (
	"fmt"
	"strings"
)

// Species is a chemical component referred to by a mechanism.
type Species struct {
	// Name is the name used in the mechanism file.
	Name string

	// Canonical is the structure-level identifier (for example a SMILES
	// string) the name resolves to.
	Canonical string

	// Index is the position of the species in the species table. It is
	// assigned when the species is first seen and never changes.
	Index int
}

// SpeciesTable is a growable registry of species. Names and canonical
// identifiers are kept in parallel lists indexed by species index.
type SpeciesTable struct {
	side      *SideTable
	index     map[string]int
	names     []string
	canonical []string
	unknown   []string // names with no side table entry
}

// NewSpeciesTable returns an empty species table that takes canonical
// identifiers from side, which may be nil.
func NewSpeciesTable(side *SideTable) *SpeciesTable {
	return &SpeciesTable{
		side:  side,
		index: make(map[string]int),
	}
}

// Resolve returns the index of the named species, adding it to the table
// if it hasn't been seen before.
func (t *SpeciesTable) Resolve(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	i := len(t.names)
	t.index[name] = i
	t.names = append(t.names, name)
	c, ok := t.side.Canonical(name)
	if !ok {
		t.unknown = append(t.unknown, name)
	}
	t.canonical = append(t.canonical, c)
	return i
}

// Lookup returns the index of the named species without adding it.
func (t *SpeciesTable) Lookup(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Len returns the number of species in the table.
func (t *SpeciesTable) Len() int { return len(t.names) }

// Species returns the species at index i.
func (t *SpeciesTable) Species(i int) Species {
	return Species{Name: t.names[i], Canonical: t.canonical[i], Index: i}
}

// All returns every species in index order.
func (t *SpeciesTable) All() []Species {
	o := make([]Species, len(t.names))
	for i := range t.names {
		o[i] = t.Species(i)
	}
	return o
}

// Names returns the mechanism names of the species in index order.
func (t *SpeciesTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Unknown returns the names of species that have no side table entry,
// in the order they were first seen.
func (t *SpeciesTable) Unknown() []string {
	return append([]string(nil), t.unknown...)
}

// check returns a *ConsistencyError if the table has a side table and
// the side table lacks some of the species, which means the side table and
// the mechanism disagree on the species list. With lenient set, or with no
// side table, the missing species keep their default identifiers.
func (t *SpeciesTable) check(lenient bool) error {
	if t.side == nil || lenient || len(t.unknown) == 0 {
		return nil
	}
	return &ConsistencyError{Msg: fmt.Sprintf("%d of %d species are not in the side table: %s",
		len(t.unknown), len(t.names), strings.Join(t.unknown, ", "))}
}

// DefaultCanonical returns the canonical identifier used for a species
// with no structure information: names beginning with an O or H atom are
// bracketed, as in "[OH]"; other names are used as they are.
func DefaultCanonical(name string) string {
	if strings.HasPrefix(name, "O") || strings.HasPrefix(name, "H") {
		return "[" + name + "]"
	}
	return name
}
