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

package mechdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spatialmodel/chemscheme"
	"github.com/tealeg/xlsx"
)

// WriteXLSX writes m to a spreadsheet at path with one sheet each for the
// species, the reactions of each phase, the generic rate coefficients and
// the RO2 pool. Each sheet starts with a row of column headings.
func WriteXLSX(path string, m *chemscheme.Mechanism) error {
	f := xlsx.NewFile()
	add := func(name string, header []string, rows func(s *xlsx.Sheet)) error {
		s, err := f.AddSheet(name)
		if err != nil {
			return fmt.Errorf("mechdb: adding sheet %s: %v", name, err)
		}
		addStrings(s.AddRow(), header...)
		rows(s)
		return nil
	}

	if err := add("species", []string{"index", "name", "canonical"}, func(s *xlsx.Sheet) {
		for _, sp := range m.Species.All() {
			r := s.AddRow()
			r.AddCell().SetInt(sp.Index)
			addStrings(r, sp.Name, sp.Canonical)
		}
	}); err != nil {
		return err
	}
	for _, p := range []chemscheme.Phase{chemscheme.Gas, chemscheme.Aqueous} {
		db := m.DB(p)
		if err := add(p.String(), []string{"reaction", "reactants", "products", "rate"}, func(s *xlsx.Sheet) {
			for i := 0; i < db.Len(); i++ {
				rxn := db.Reaction(i)
				r := s.AddRow()
				r.AddCell().SetInt(i)
				addStrings(r, side(rxn.Reactants, m.Species), side(rxn.Products, m.Species), rxn.Rate)
			}
		}); err != nil {
			return err
		}
	}
	if err := add("generic", []string{"name", "expression"}, func(s *xlsx.Sheet) {
		for _, d := range m.Generic {
			addStrings(s.AddRow(), d.Name, d.Expr)
		}
	}); err != nil {
		return err
	}
	if err := add("ro2", []string{"pool position", "species"}, func(s *xlsx.Sheet) {
		for _, ro2 := range m.RO2 {
			r := s.AddRow()
			r.AddCell().SetInt(ro2.Pool)
			addStrings(r, m.Species.Species(ro2.Species).Name)
		}
	}); err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("mechdb: writing %s: %v", path, err)
	}
	return nil
}

func addStrings(r *xlsx.Row, v ...string) {
	for _, s := range v {
		r.AddCell().SetString(s)
	}
}

// side formats reaction terms as, for example, "NO + 0.5 HCHO".
func side(terms []chemscheme.Term, t *chemscheme.SpeciesTable) string {
	s := make([]string, len(terms))
	for i, term := range terms {
		name := t.Species(term.Species).Name
		if term.Stoich == 1 {
			s[i] = name
			continue
		}
		s[i] = strconv.FormatFloat(term.Stoich, 'g', -1, 64) + " " + name
	}
	return strings.Join(s, " + ")
}
