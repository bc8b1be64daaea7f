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

package rate

import (
	"testing"
)

func TestConvertExponent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "5.6D-34", want: 5.6e-34},
		{in: "2.0d+1", want: 20},
		{in: "1.5E3", want: 1500},
		{in: "3", want: 3},
		{in: ".5", want: 0.5},
		{in: " 7.0 ", want: 7},
	}
	for _, test := range tests {
		have, err := ConvertExponent(test.in)
		if err != nil {
			t.Errorf("%s: %v", test.in, err)
			continue
		}
		if have != test.want {
			t.Errorf("%s: have %g, want %g", test.in, have, test.want)
		}
	}
	for _, bad := range []string{"", "D5", "1.2.3", "1D400"} {
		if _, err := ConvertExponent(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := map[string]bool{
		"KRO2NO": true,
		"k_1":    true,
		"_x":     true,
		"1k":     false,
		"":       false,
		"K-1":    false,
		"K 1":    false,
	}
	for s, want := range tests {
		if have := IsIdentifier(s); have != want {
			t.Errorf("%q: have %v, want %v", s, have, want)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "k1", want: "[k1]"},
		{in: "2.0D+1*TEMP", want: "(20 * [TEMP])"},
		{in: "1.0E-1+RO2", want: "(0.1 + [RO2])"},
		{in: "-2**2", want: "(-(2 ** 2))"},
		{in: "2**-1", want: "(2 ** (-1))"},
		{in: "2^3^2", want: "(2 ** (3 ** 2))"},
		{in: "(TEMP/300)@-2.6", want: "(([TEMP] / 300) ** (-2.6))"},
		{in: "a-b-c", want: "(([a] - [b]) - [c])"},
		{in: "a/b*c", want: "(([a] / [b]) * [c])"},
		{in: "+M", want: "[M]"},
		{in: "J(4)*0.5", want: "([J_4] * 0.5)"},
		{in: "J[4]", want: "[J_4]"},
		{in: "J<12>", want: "[J_12]"},
		{in: "EXP(-1000/TEMP)", want: "exp(((-1000) / [TEMP]))"},
		{in: "dexp(1)", want: "exp(1)"},
		{in: "ALOG10(M)", want: "log10([M])"},
		{in: "MAX(1, 2, H2O)", want: "max(1, 2, [H2O])"},
		{in: "ARR(1.0D-12, 500, -1)", want: "arr(0.000000000001, 500, (-1), [TEMP])"},
		{in: "ARR2(1, 500, TEMP)", want: "arr2(1, 500, [TEMP])"},
		{in: "TROE(1,2,3,4,0.6)", want: "troe(1, 2, 3, 4, 0.6, [TEMP], [M])"},
		{in: "KTADJ(5, 1000)", want: "ktadj(5, 1000, [TEMP])"},
	}
	for _, test := range tests {
		n, err := parse(test.in)
		if err != nil {
			t.Errorf("%s: %v", test.in, err)
			continue
		}
		if have := render(n); have != test.want {
			t.Errorf("%s: have %s, want %s", test.in, have, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	syntax := []string{
		"",
		"1 +",
		"(1",
		"1)",
		"2 $ 3",
		"EXP(1, 2)",
		"MIN()",
		"J(1.5)",
		"J(1]",
		"TEMP[2]",
	}
	for _, s := range syntax {
		_, err := parse(s)
		if _, ok := err.(*SyntaxError); !ok {
			t.Errorf("%q: have error %v, want *SyntaxError", s, err)
		}
	}
	_, err := parse("NOTAFUNC(1)")
	if _, ok := err.(*UndefinedError); !ok {
		t.Errorf("have error %v, want *UndefinedError", err)
	}
}

func TestSyntaxErrorOffset(t *testing.T) {
	_, err := parse("1 + * 2")
	e, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("have error %v, want *SyntaxError", err)
	}
	if e.Offset != 4 {
		t.Errorf("have offset %d, want 4", e.Offset)
	}
}
