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

import "gonum.org/v1/gonum/mat"

// NoSpecies is the species index used to pad unused reaction store columns.
const NoSpecies = -1

// ReactionDB holds the reactions of one phase in rectangular form. Row i
// of every field describes the i-th reaction registered for the phase.
// Rows are never reordered or removed.
type ReactionDB struct {
	Phase Phase

	// ReactantIndex and ReactantStoich hold the species index and
	// stoichiometric coefficient of each reactant. Unused columns hold
	// NoSpecies and 0.
	ReactantIndex  [][]int
	ReactantStoich [][]float64

	// ProductIndex and ProductStoich are the product equivalents of
	// ReactantIndex and ReactantStoich.
	ProductIndex  [][]int
	ProductStoich [][]float64

	// NumReactants and NumProducts hold the number of used columns in
	// each row.
	NumReactants []int
	NumProducts  []int

	// Rates holds the rate coefficient expression of each reaction.
	Rates []string

	reactantWidth, productWidth int
}

// NewReactionDB returns an empty reaction store for phase p.
func NewReactionDB(p Phase) *ReactionDB {
	return &ReactionDB{Phase: p}
}

// Append adds r as the last row of the store. If r has more reactants or
// products than any earlier row, the earlier rows are widened with padding
// first.
func (db *ReactionDB) Append(r Reaction) {
	if len(r.Reactants) > db.reactantWidth {
		db.reactantWidth = len(r.Reactants)
		widen(db.ReactantIndex, db.ReactantStoich, db.reactantWidth)
	}
	if len(r.Products) > db.productWidth {
		db.productWidth = len(r.Products)
		widen(db.ProductIndex, db.ProductStoich, db.productWidth)
	}
	idx, st := row(r.Reactants, db.reactantWidth)
	db.ReactantIndex = append(db.ReactantIndex, idx)
	db.ReactantStoich = append(db.ReactantStoich, st)
	idx, st = row(r.Products, db.productWidth)
	db.ProductIndex = append(db.ProductIndex, idx)
	db.ProductStoich = append(db.ProductStoich, st)
	db.NumReactants = append(db.NumReactants, len(r.Reactants))
	db.NumProducts = append(db.NumProducts, len(r.Products))
	db.Rates = append(db.Rates, r.Rate)
}

// widen pads every row of index and stoich out to width columns.
func widen(index [][]int, stoich [][]float64, width int) {
	for i := range index {
		for len(index[i]) < width {
			index[i] = append(index[i], NoSpecies)
			stoich[i] = append(stoich[i], 0)
		}
	}
}

func row(terms []Term, width int) ([]int, []float64) {
	idx := make([]int, width)
	st := make([]float64, width)
	for i := range idx {
		idx[i] = NoSpecies
	}
	for i, t := range terms {
		idx[i] = t.Species
		st[i] = t.Stoich
	}
	return idx, st
}

// Len returns the number of reactions in the store.
func (db *ReactionDB) Len() int { return len(db.Rates) }

// ReactantWidth returns the number of reactant columns.
func (db *ReactionDB) ReactantWidth() int { return db.reactantWidth }

// ProductWidth returns the number of product columns.
func (db *ReactionDB) ProductWidth() int { return db.productWidth }

// Reaction returns reaction i without its padding.
func (db *ReactionDB) Reaction(i int) Reaction {
	r := Reaction{Phase: db.Phase, Rate: db.Rates[i]}
	for j := 0; j < db.NumReactants[i]; j++ {
		r.Reactants = append(r.Reactants, Term{Species: db.ReactantIndex[i][j], Stoich: db.ReactantStoich[i][j]})
	}
	for j := 0; j < db.NumProducts[i]; j++ {
		r.Products = append(r.Products, Term{Species: db.ProductIndex[i][j], Stoich: db.ProductStoich[i][j]})
	}
	return r
}

// ReactantStoichMatrix returns the reactant stoichiometries as a
// reactions × species matrix for a table of nSpecies species.
// It returns nil if the matrix would be empty.
func (db *ReactionDB) ReactantStoichMatrix(nSpecies int) *mat.Dense {
	return stoichMatrix(db.ReactantIndex, db.ReactantStoich, nSpecies)
}

// ProductStoichMatrix is the product equivalent of ReactantStoichMatrix.
func (db *ReactionDB) ProductStoichMatrix(nSpecies int) *mat.Dense {
	return stoichMatrix(db.ProductIndex, db.ProductStoich, nSpecies)
}

func stoichMatrix(index [][]int, stoich [][]float64, nSpecies int) *mat.Dense {
	if len(index) == 0 || nSpecies == 0 {
		return nil
	}
	m := mat.NewDense(len(index), nSpecies, nil)
	for i, r := range index {
		for j, s := range r {
			if s == NoSpecies {
				continue
			}
			m.Set(i, s, m.At(i, s)+stoich[i][j])
		}
	}
	return m
}
