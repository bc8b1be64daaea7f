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
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/chemscheme/rate"
)

// Phase is the domain a reaction takes place in.
type Phase int

// The reaction phases.
const (
	Gas Phase = iota
	Aqueous
)

func (p Phase) String() string {
	if p == Aqueous {
		return "aqueous"
	}
	return "gas"
}

// ParsePhase returns the phase named by s ("gas" or "aqueous").
func ParsePhase(s string) (Phase, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gas", "g":
		return Gas, true
	case "aqueous", "aq", "a":
		return Aqueous, true
	}
	return Gas, false
}

// Term is one species on one side of a reaction.
type Term struct {
	// Species is the index of the species in the species table.
	Species int

	// Stoich is the stoichiometric coefficient. It is always positive.
	Stoich float64
}

// Reaction is one interrogated reaction line.
type Reaction struct {
	Phase     Phase
	Reactants []Term
	Products  []Term

	// Rate is the rate coefficient expression as written in the mechanism.
	Rate string
}

// coefficientRE matches an optional leading stoichiometric coefficient,
// which may use a Fortran D exponent, and an optional '*' after it.
var coefficientRE = regexp.MustCompile(`^((?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eEdD][-+]?[0-9]+)?)\s*\*?\s*(.*)$`)

// interrogate splits a reaction line into its reactants, products and rate
// expression, resolving species names against t.
func interrogate(line string, p Phase, m Markers, t *SpeciesTable, log logrus.FieldLogger) Reaction {
	line = strings.TrimSpace(line)
	marker := m.GasReaction
	if p == Aqueous {
		marker = m.AqueousReaction
	}
	line = strings.TrimPrefix(line, marker)

	eqn, rateText := line, ""
	if i := strings.Index(line, m.RateStart); i >= 0 {
		eqn, rateText = line[:i], line[i+len(m.RateStart):]
	}
	if i := strings.Index(rateText, m.ReactionEnd); i >= 0 {
		rateText = rateText[:i]
	}
	if m.LabelEnd != "" {
		if i := strings.Index(eqn, m.LabelEnd); i >= 0 {
			eqn = eqn[i+len(m.LabelEnd):]
		}
	}

	var lhs, rhs string
	if i := strings.Index(eqn, "->"); i >= 0 {
		lhs, rhs = eqn[:i], eqn[i+2:]
	} else if i := strings.Index(eqn, "="); i >= 0 {
		lhs, rhs = eqn[:i], eqn[i+1:]
	} else {
		log.WithFields(logrus.Fields{"line": line}).Warn("chemscheme: reaction has no '=' or '->'; treating every species as a reactant")
		lhs = eqn
	}

	return Reaction{
		Phase:     p,
		Reactants: sideTerms(lhs, t, line, log),
		Products:  sideTerms(rhs, t, line, log),
		Rate:      strings.TrimSpace(rateText),
	}
}

// sideTerms tokenizes one side of a reaction equation. Species that appear
// more than once are merged by summing their coefficients.
func sideTerms(side string, t *SpeciesTable, line string, log logrus.FieldLogger) []Term {
	var terms []Term
	for _, s := range splitTerms(side) {
		coeff, name := splitCoefficient(s)
		if name == "" || coeff <= 0 {
			log.WithFields(logrus.Fields{"line": line, "term": s}).Warn("chemscheme: dropping reaction term without a species or with a non-positive coefficient")
			continue
		}
		idx := t.Resolve(name)
		merged := false
		for i := range terms {
			if terms[i].Species == idx {
				terms[i].Stoich += coeff
				merged = true
				break
			}
		}
		if !merged {
			terms = append(terms, Term{Species: idx, Stoich: coeff})
		}
	}
	return terms
}

// splitTerms splits a side of a reaction equation at its '+' operators.
// A '+' directly followed by another '+' or by the end of the side is a
// charge and stays with the species name, as in "H+ + OH-".
func splitTerms(side string) []string {
	var terms []string
	start := 0
	for i := 0; i < len(side); i++ {
		if side[i] != '+' {
			continue
		}
		rest := strings.TrimLeft(side[i+1:], " \t")
		if rest == "" || rest[0] == '+' {
			continue
		}
		if strings.TrimSpace(side[start:i]) == "" {
			start = i + 1 // leading or doubled operator
			continue
		}
		terms = append(terms, strings.TrimSpace(side[start:i]))
		start = i + 1
	}
	if last := strings.TrimSpace(side[start:]); last != "" {
		terms = append(terms, last)
	}
	return terms
}

// splitCoefficient separates a term's leading coefficient, which defaults
// to 1, from its species name.
func splitCoefficient(term string) (float64, string) {
	term = strings.TrimSpace(term)
	sub := coefficientRE.FindStringSubmatch(term)
	if sub == nil {
		return 1, term
	}
	v, err := rate.ConvertExponent(sub[1])
	if err != nil {
		return 1, term
	}
	return v, strings.TrimSpace(sub[2])
}
