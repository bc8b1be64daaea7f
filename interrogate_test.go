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
	"io/ioutil"
	"reflect"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
)

// quietLog discards everything it is given.
func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

// named converts reaction terms back to species names for comparison.
func named(terms []Term, t *SpeciesTable) map[string]float64 {
	o := make(map[string]float64)
	for _, term := range terms {
		o[t.Species(term.Species).Name] = term.Stoich
	}
	return o
}

func TestInterrogate(t *testing.T) {
	tests := []struct {
		line      string
		p         Phase
		m         Markers
		reactants map[string]float64
		products  map[string]float64
		rate      string
	}{
		{
			line:      "%A+B=C+D : k1;",
			m:         testMarkers(t),
			reactants: map[string]float64{"A": 1, "B": 1},
			products:  map[string]float64{"C": 1, "D": 1},
			rate:      "k1",
		},
		{
			line:      "{12.} NO + NO = NO2 + NO2 : 3.3D-39*EXP(530/TEMP)*O2 ;",
			m:         DefaultMarkers(),
			reactants: map[string]float64{"NO": 2},
			products:  map[string]float64{"NO2": 2},
			rate:      "3.3D-39*EXP(530/TEMP)*O2",
		},
		{
			line:      "{3.} CH3O2 = 0.5 HCHO + 2*HO2 + 1.0D0 CH3OH : KRO2 ;",
			m:         DefaultMarkers(),
			reactants: map[string]float64{"CH3O2": 1},
			products:  map[string]float64{"HCHO": 0.5, "HO2": 2, "CH3OH": 1},
			rate:      "KRO2",
		},
		{
			line:      "$H+ + OH- -> H2O : 1.4D11 ;",
			p:         Aqueous,
			m:         testMarkers(t),
			reactants: map[string]float64{"H+": 1, "OH-": 1},
			products:  map[string]float64{"H2O": 1},
			rate:      "1.4D11",
		},
		{
			line:      "{2.} O + O3 = : 8.0D-12 ;",
			m:         DefaultMarkers(),
			reactants: map[string]float64{"O": 1, "O3": 1},
			products:  map[string]float64{},
			rate:      "8.0D-12",
		},
		{
			line:      "%A + 0 B = C : k2;",
			m:         testMarkers(t),
			reactants: map[string]float64{"A": 1},
			products:  map[string]float64{"C": 1},
			rate:      "k2",
		},
	}
	for _, test := range tests {
		st := NewSpeciesTable(nil)
		r := interrogate(test.line, test.p, test.m, st, quietLog())
		if r.Phase != test.p {
			t.Errorf("%q: phase %s, want %s", test.line, r.Phase, test.p)
		}
		if have := named(r.Reactants, st); !reflect.DeepEqual(have, test.reactants) {
			t.Errorf("%q: reactants differ: %v", test.line, pretty.Diff(have, test.reactants))
		}
		if have := named(r.Products, st); !reflect.DeepEqual(have, test.products) {
			t.Errorf("%q: products differ: %v", test.line, pretty.Diff(have, test.products))
		}
		if r.Rate != test.rate {
			t.Errorf("%q: rate %q, want %q", test.line, r.Rate, test.rate)
		}
	}
}

func TestInterrogateNoArrow(t *testing.T) {
	st := NewSpeciesTable(nil)
	r := interrogate("%A + B : k1;", Gas, testMarkers(t), st, quietLog())
	if len(r.Reactants) != 2 || len(r.Products) != 0 {
		t.Errorf("have %d reactants and %d products, want 2 and 0", len(r.Reactants), len(r.Products))
	}
}

func TestSplitTerms(t *testing.T) {
	tests := map[string][]string{
		"A + B":       {"A", "B"},
		"H+ + OH-":    {"H+", "OH-"},
		"NH4+":        {"NH4+"},
		"+ A + B":     {"A", "B"},
		"SO4-- + H+":  {"SO4--", "H+"},
		"":            nil,
		" 2 A + 3 B ": {"2 A", "3 B"},
	}
	for side, want := range tests {
		if have := splitTerms(side); !reflect.DeepEqual(have, want) {
			t.Errorf("%q: have %q, want %q", side, have, want)
		}
	}
}

func TestSplitCoefficient(t *testing.T) {
	tests := []struct {
		term  string
		coeff float64
		name  string
	}{
		{term: "NO2", coeff: 1, name: "NO2"},
		{term: "0.5 X", coeff: 0.5, name: "X"},
		{term: "2*Y", coeff: 2, name: "Y"},
		{term: "1.0D0 Z", coeff: 1, name: "Z"},
		{term: ".25 OH", coeff: 0.25, name: "OH"},
		{term: "1.5E-1 HO2", coeff: 0.15, name: "HO2"},
	}
	for _, test := range tests {
		c, n := splitCoefficient(test.term)
		if c != test.coeff || n != test.name {
			t.Errorf("%q: have %g %q, want %g %q", test.term, c, n, test.coeff, test.name)
		}
	}
}

func TestParsePhase(t *testing.T) {
	for s, want := range map[string]Phase{"gas": Gas, "Aqueous": Aqueous, " aq ": Aqueous} {
		p, ok := ParsePhase(s)
		if !ok || p != want {
			t.Errorf("%q: have %s, %v; want %s", s, p, ok, want)
		}
	}
	if _, ok := ParsePhase("solid"); ok {
		t.Errorf("unknown phase accepted")
	}
}
