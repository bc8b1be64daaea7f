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
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ro2Names returns the species names declared on one line of an RO2 pool
// declaration, in order. Duplicates are kept.
func ro2Names(line string, m Markers) []string {
	terminators := []string{m.RO2End, m.RO2Continue, m.ReactionEnd, m.GenericEnd}
	var names []string
	for _, piece := range strings.Split(line, m.RO2Separator) {
		if i := strings.Index(piece, "="); i >= 0 {
			piece = piece[i+1:]
		}
		for _, t := range terminators {
			if t == "" {
				continue
			}
			if i := strings.Index(piece, t); i >= 0 {
				piece = piece[:i]
			}
		}
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		if m.RO2Prefix != "" {
			piece = strings.TrimPrefix(piece, m.RO2Prefix)
		}
		if m.RO2Suffix != "" {
			piece = strings.TrimSuffix(piece, m.RO2Suffix)
		}
		if piece = strings.TrimSpace(piece); piece != "" {
			names = append(names, piece)
		}
	}
	return names
}

// RO2Index links a position in the RO2 pool to a species in the species table.
type RO2Index struct {
	// Pool is the position of the species in the RO2 pool declaration.
	Pool int

	// Species is the index of the species in the species table.
	Species int
}

// ResolveRO2 cross-references the RO2 pool against the species table.
// Pool names that no reaction refers to are skipped. A name declared more
// than once yields a single entry at its first position.
func ResolveRO2(pool []string, t *SpeciesTable) []RO2Index {
	var o []RO2Index
	seen := make(map[int]bool)
	for i, name := range pool {
		idx, ok := t.Lookup(name)
		if !ok || seen[idx] {
			continue
		}
		seen[idx] = true
		o = append(o, RO2Index{Pool: i, Species: idx})
	}
	return o
}

// SumRO2 returns the summed concentration of the RO2 species listed in
// index, where conc holds concentrations by species table index.
func SumRO2(index []RO2Index, conc []float64) float64 {
	if len(index) == 0 {
		return 0
	}
	v := make([]float64, len(index))
	for i, r := range index {
		v[i] = conc[r.Species]
	}
	return floats.Sum(v)
}
