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
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/chemscheme/rate"
)

// testMech is written with the markers from testMarkers.
const testMech = `#INLINE F90_RCONST
k1 = 1.5e-11*EXP(100/TEMP)
kro2 = 1.0e-13*RO2
1bad = 3
RO2 = X1 + X2 &
+ X3 ;
%A+B=C+D : k1;
%X1 + NO = C + X3 : kro2;
%C = A : J<1>;
$A -> B : 2.0D0 ;
%E = F : k1
`

func parseTestMech(t *testing.T, text string) *Mechanism {
	mech, err := Parse(strings.NewReader(text), nil, testMarkers(t), Options{Log: quietLog()})
	if err != nil {
		t.Fatal(err)
	}
	return mech
}

func TestParse(t *testing.T) {
	mech := parseTestMech(t, testMech)

	wantSpecies := []string{"A", "B", "C", "D", "X1", "NO", "X3"}
	if have := mech.Species.Names(); !reflect.DeepEqual(have, wantSpecies) {
		t.Errorf("species differ: %v", pretty.Diff(have, wantSpecies))
	}
	if mech.Gas.Len() != 3 {
		t.Errorf("have %d gas reactions, want 3", mech.Gas.Len())
	}
	if mech.Aqueous.Len() != 1 {
		t.Errorf("have %d aqueous reactions, want 1", mech.Aqueous.Len())
	}
	if mech.DB(Aqueous) != mech.Aqueous || mech.DB(Gas) != mech.Gas {
		t.Errorf("DB returned the wrong store")
	}

	r := mech.Gas.Reaction(0)
	wantR := Reaction{
		Phase:     Gas,
		Reactants: []Term{{Species: 0, Stoich: 1}, {Species: 1, Stoich: 1}},
		Products:  []Term{{Species: 2, Stoich: 1}, {Species: 3, Stoich: 1}},
		Rate:      "k1",
	}
	if !reflect.DeepEqual(r, wantR) {
		t.Errorf("first reaction differs: %v", pretty.Diff(r, wantR))
	}
	if have := mech.Gas.Rates; !reflect.DeepEqual(have, []string{"k1", "kro2", "J<1>"}) {
		t.Errorf("gas rates: have %q", have)
	}

	wantGeneric := []rate.Definition{
		{Name: "k1", Expr: "1.5e-11*EXP(100/TEMP)"},
		{Name: "kro2", Expr: "1.0e-13*RO2"},
	}
	if !reflect.DeepEqual(mech.Generic, wantGeneric) {
		t.Errorf("generic rates differ: %v", pretty.Diff(mech.Generic, wantGeneric))
	}

	if want := []string{"X1", "X2", "X3"}; !reflect.DeepEqual(mech.RO2Pool, want) {
		t.Errorf("RO2 pool: have %v, want %v", mech.RO2Pool, want)
	}
	if want := []RO2Index{{Pool: 0, Species: 4}, {Pool: 2, Species: 6}}; !reflect.DeepEqual(mech.RO2, want) {
		t.Errorf("RO2 index: have %v, want %v", mech.RO2, want)
	}

	wantLines := map[LineCategory]int{
		Ignorable:       2,
		GenericRate:     3,
		RO2Declaration:  2,
		GasReaction:     3,
		AqueousReaction: 1,
	}
	if !reflect.DeepEqual(mech.Lines, wantLines) {
		t.Errorf("line counts differ: %v", pretty.Diff(mech.Lines, wantLines))
	}
}

func TestParseCompile(t *testing.T) {
	mech := parseTestMech(t, testMech)
	e, err := mech.Compile(Gas, rate.Config{})
	if err != nil {
		t.Fatal(err)
	}
	conc := make([]float64, mech.Species.Len())
	conc[4] = 2 // X1
	conc[6] = 3 // X3
	conc[0] = 100
	ro2 := mech.RO2Concentration(conc)
	if ro2 != 5 {
		t.Errorf("RO2 concentration: have %g, want 5", ro2)
	}
	k, err := e.Evaluate(rate.Inputs{TEMP: 298.15, RO2: ro2})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1.5e-11 * math.Exp(100/298.15), 5e-13, 0}
	for i := range want {
		if different(k[i], want[i]) {
			t.Errorf("rate %d: have %g, want %g", i, k[i], want[i])
		}
	}

	aq, err := mech.Compile(Aqueous, rate.Config{})
	if err != nil {
		t.Fatal(err)
	}
	k, err = aq.Evaluate(rate.Inputs{TEMP: 298.15})
	if err != nil {
		t.Fatal(err)
	}
	if len(k) != 1 || k[0] != 2 {
		t.Errorf("aqueous rates: have %v, want [2]", k)
	}
}

func different(a, b float64) bool {
	if a == b {
		return false
	}
	return math.Abs(a-b)/math.Max(math.Abs(a), math.Abs(b)) > 1e-12
}

func TestParseWarnings(t *testing.T) {
	log, hook := test.NewNullLogger()
	const text = `%A = B : k1
RO2 = X1 &
+ X2 &
`
	mech, err := Parse(strings.NewReader(text), nil, testMarkers(t), Options{Log: log})
	if err != nil {
		t.Fatal(err)
	}
	if mech.Gas.Len() != 0 {
		t.Errorf("unterminated reaction was parsed")
	}
	var warnings []string
	for _, e := range hook.Entries {
		if e.Level == logrus.WarnLevel {
			warnings = append(warnings, e.Message)
		}
	}
	if len(warnings) != 2 {
		t.Fatalf("have warnings %q, want 2", warnings)
	}
	if !strings.Contains(warnings[0], "reaction end marker") {
		t.Errorf("first warning %q should be about the missing end marker", warnings[0])
	}
	if !strings.Contains(warnings[1], "RO2 declaration is not terminated") {
		t.Errorf("second warning %q should be about the open RO2 declaration", warnings[1])
	}
}

func TestFingerprint(t *testing.T) {
	a := parseTestMech(t, testMech).Fingerprint()
	b := parseTestMech(t, testMech).Fingerprint()
	if a != b {
		t.Errorf("fingerprints of the same mechanism differ: %s and %s", a, b)
	}
	c := parseTestMech(t, strings.Replace(testMech, "2.0D0", "3.0D0", 1)).Fingerprint()
	if a == c {
		t.Errorf("fingerprints of different mechanisms are the same")
	}
}

func TestParseSideTableMismatch(t *testing.T) {
	side, err := NewSideTable([]SideEntry{{Name: "A", Structure: "CC"}})
	if err != nil {
		t.Fatal(err)
	}
	const text = "{1.} A + ZZZ = B : 1.0 ;\n"
	_, err = Parse(strings.NewReader(text), side, DefaultMarkers(), Options{Log: quietLog()})
	cErr, ok := err.(*ConsistencyError)
	if !ok {
		t.Fatalf("have error %v, want *ConsistencyError", err)
	}
	if !strings.Contains(cErr.Error(), "ZZZ, B") {
		t.Errorf("error %q doesn't name the missing species", cErr)
	}

	mech, err := Parse(strings.NewReader(text), side, DefaultMarkers(), Options{Log: quietLog(), Lenient: true})
	if err != nil {
		t.Fatalf("lenient parse: %v", err)
	}
	if u := mech.Species.Unknown(); !reflect.DeepEqual(u, []string{"ZZZ", "B"}) {
		t.Errorf("unknown: have %v, want [ZZZ B]", u)
	}
	if c := mech.Species.Species(1).Canonical; c != "ZZZ" {
		t.Errorf("default identifier: have %s, want ZZZ", c)
	}

	// Without a side table every species takes its default identifier.
	if _, err := Parse(strings.NewReader(text), nil, DefaultMarkers(), Options{Log: quietLog()}); err != nil {
		t.Errorf("parse without a side table: %v", err)
	}
}

func TestParseBadMarkers(t *testing.T) {
	m := DefaultMarkers()
	m.RateStart = ""
	_, err := Parse(strings.NewReader(""), nil, m, Options{Log: quietLog()})
	if _, ok := err.(*MarkerError); !ok {
		t.Errorf("have error %v, want *MarkerError", err)
	}
}

func TestParseFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "chemscheme")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	mechPath := filepath.Join(dir, "mech.eqn")
	if err := ioutil.WriteFile(mechPath, []byte(testMech), 0644); err != nil {
		t.Fatal(err)
	}
	sidePath := filepath.Join(dir, "species.toml")
	if err := ioutil.WriteFile(sidePath, []byte(testSideTOML), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(mechPath, sidePath, testMarkers(t), Options{Log: quietLog()}); err == nil {
		t.Errorf("species missing from the side table should be an error")
	}
	mech, err := ParseFile(mechPath, sidePath, testMarkers(t), Options{Log: quietLog(), Lenient: true})
	if err != nil {
		t.Fatal(err)
	}
	if mech.Gas.Len() != 3 {
		t.Errorf("have %d gas reactions, want 3", mech.Gas.Len())
	}
	if n := len(mech.Species.Unknown()); n != mech.Species.Len() {
		t.Errorf("have %d species missing from the side table, want %d", n, mech.Species.Len())
	}

	missing := filepath.Join(dir, "missing.eqn")
	_, err = ParseFile(missing, "", testMarkers(t), Options{Log: quietLog()})
	ioErr, ok := err.(*IOError)
	if !ok {
		t.Fatalf("have error %v, want *IOError", err)
	}
	if ioErr.Path != missing {
		t.Errorf("error path: have %s, want %s", ioErr.Path, missing)
	}
}

func TestParseMCM(t *testing.T) {
	mech, err := ParseFile("testdata/mcm.eqn", "testdata/species.xml", DefaultMarkers(),
		Options{Log: quietLog()})
	if err != nil {
		t.Fatal(err)
	}
	if mech.Gas.Len() != 11 || mech.Species.Len() != 11 || len(mech.Generic) != 9 {
		t.Fatalf("have %d reactions, %d species and %d generic rates; want 11, 11 and 9",
			mech.Gas.Len(), mech.Species.Len(), len(mech.Generic))
	}
	if want := []string{"CH3O2", "C2H5O2", "HOCH2CH2O2"}; !reflect.DeepEqual(mech.RO2Pool, want) {
		t.Errorf("RO2 pool: have %v, want %v", mech.RO2Pool, want)
	}

	e, err := mech.Compile(Gas, rate.Config{
		Photolysis: rate.FixedPhotolysis{0, 1e-5, 0, 0, 8e-3},
	})
	if err != nil {
		t.Fatal(err)
	}
	const T = 298.15
	M, N2, O2, H2O, err := rate.AirComposition(T, 101325, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	k, err := e.Evaluate(rate.Inputs{TEMP: T, M: M, N2: N2, O2: O2, H2O: H2O, Light: true, RO2: 1e8})
	if err != nil {
		t.Fatal(err)
	}

	k10 := 1.0e-31 * M * math.Pow(T/300, -1.6)
	k1i := 5.0e-12 * math.Pow(T/300, -0.3)
	fc1 := 0.85
	nc1 := 0.75 - 1.27*math.Log10(fc1)
	f1 := math.Pow(10, math.Log10(fc1)/(1+math.Pow(math.Log10(k10/k1i)/nc1, 2)))
	kmt01 := k10 * k1i * f1 / (k10 + k1i)

	want := map[int]float64{
		1: 8.0e-12 * math.Exp(-2060/T),
		2: kmt01,
		5: 8e-3,
		6: 1e-5,
		7: 2.7e-12 * math.Exp(360/T),
	}
	for i, w := range want {
		if different(k[i], w) {
			t.Errorf("reaction %d: have %g, want %g", i, k[i], w)
		}
	}
}
