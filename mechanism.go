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

// Package chemscheme parses marker-delimited chemical mechanism files into
// per-phase reaction databases and compiles their rate coefficient
// expressions.
package chemscheme

import (
	"github.com/spatialmodel/chemscheme/internal/hash"
	"github.com/spatialmodel/chemscheme/rate"
)

// Mechanism is a parsed chemical mechanism.
type Mechanism struct {
	// Markers are the markers the mechanism was parsed with.
	Markers Markers

	// Species holds every species referred to by a reaction, in the
	// order they were first seen.
	Species *SpeciesTable

	// Gas and Aqueous hold the reactions of each phase in file order.
	Gas, Aqueous *ReactionDB

	// Generic holds the generic rate coefficient definitions in file order.
	Generic []rate.Definition

	// RO2Pool holds the species names in the RO2 declaration, in order and
	// including duplicates.
	RO2Pool []string

	// RO2 links the RO2 pool to the species table.
	RO2 []RO2Index

	// Lines holds the number of lines in each category.
	Lines map[LineCategory]int
}

// DB returns the reaction database for phase p.
func (mech *Mechanism) DB(p Phase) *ReactionDB {
	if p == Aqueous {
		return mech.Aqueous
	}
	return mech.Gas
}

// Compile compiles the rate coefficient evaluator for the reactions of
// phase p. The evaluator returns one value per reaction in the order of
// mech.DB(p).
func (mech *Mechanism) Compile(p Phase, cfg rate.Config) (*rate.Evaluator, error) {
	return rate.Compile(mech.Generic, mech.DB(p).Rates, cfg)
}

// RO2Concentration returns the summed RO2 pool concentration for the
// species concentrations conc, indexed by species table index.
func (mech *Mechanism) RO2Concentration(conc []float64) float64 {
	return SumRO2(mech.RO2, conc)
}

type fingerprintPhase struct {
	ReactantIndex  [][]int
	ReactantStoich [][]float64
	ProductIndex   [][]int
	ProductStoich  [][]float64
	Rates          []string
}

type fingerprintData struct {
	Markers   []string
	Names     []string
	Canonical []string
	Gas       fingerprintPhase
	Aqueous   fingerprintPhase
	Generic   []rate.Definition
	RO2Pool   []string
}

// Fingerprint returns a key that is the same for mechanisms with identical
// species, reactions, rate expressions and RO2 pools.
func (mech *Mechanism) Fingerprint() string {
	phase := func(db *ReactionDB) fingerprintPhase {
		return fingerprintPhase{
			ReactantIndex:  db.ReactantIndex,
			ReactantStoich: db.ReactantStoich,
			ProductIndex:   db.ProductIndex,
			ProductStoich:  db.ProductStoich,
			Rates:          db.Rates,
		}
	}
	d := fingerprintData{
		Markers: mech.Markers.Tokens(),
		Names:   mech.Species.Names(),
		Gas:     phase(mech.Gas),
		Aqueous: phase(mech.Aqueous),
		Generic: mech.Generic,
		RO2Pool: mech.RO2Pool,
	}
	for _, s := range mech.Species.All() {
		d.Canonical = append(d.Canonical, s.Canonical)
	}
	return hash.Hash(d)
}
