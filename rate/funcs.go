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
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/atmos/seinfeld"
)

// binding connects a function name used in mechanism files to its
// implementation.
type binding struct {
	// name is the name the function is registered under for evaluation.
	name string

	// arity is the number of arguments written in the mechanism, or -1
	// for functions that take one or more.
	arity int

	// implicit lists runtime inputs appended to the written arguments.
	implicit []string

	f func(a []float64) float64
}

// bindings are keyed by upper-case mechanism function name.
var bindings = map[string]*binding{}

func init() {
	add := func(b *binding, names ...string) {
		for _, n := range names {
			bindings[n] = b
		}
	}
	add(&binding{name: "exp", arity: 1, f: func(a []float64) float64 { return math.Exp(a[0]) }}, "EXP", "DEXP")
	add(&binding{name: "log", arity: 1, f: func(a []float64) float64 { return math.Log(a[0]) }}, "LOG", "DLOG", "ALOG")
	add(&binding{name: "log10", arity: 1, f: func(a []float64) float64 { return math.Log10(a[0]) }}, "LOG10", "DLOG10", "ALOG10")
	add(&binding{name: "sqrt", arity: 1, f: func(a []float64) float64 { return math.Sqrt(a[0]) }}, "SQRT", "DSQRT")
	add(&binding{name: "abs", arity: 1, f: func(a []float64) float64 { return math.Abs(a[0]) }}, "ABS", "DABS")
	add(&binding{name: "min", arity: -1, f: func(a []float64) float64 {
		v := a[0]
		for _, x := range a[1:] {
			v = math.Min(v, x)
		}
		return v
	}}, "MIN", "DMIN1")
	add(&binding{name: "max", arity: -1, f: func(a []float64) float64 {
		v := a[0]
		for _, x := range a[1:] {
			v = math.Max(v, x)
		}
		return v
	}}, "MAX", "DMAX1")
	add(&binding{name: "arr", arity: 3, implicit: []string{"TEMP"}, f: func(a []float64) float64 {
		return Arrhenius(a[0], a[1], a[2], a[3])
	}}, "ARR")
	add(&binding{name: "arr2", arity: 3, f: func(a []float64) float64 {
		return a[0] * math.Exp(-a[1]/a[2])
	}}, "ARR2")
	add(&binding{name: "ep2", arity: 6, implicit: []string{"TEMP", "M"}, f: func(a []float64) float64 {
		return EP2(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7])
	}}, "EP2")
	add(&binding{name: "ep3", arity: 4, implicit: []string{"TEMP", "M"}, f: func(a []float64) float64 {
		return EP3(a[0], a[1], a[2], a[3], a[4], a[5])
	}}, "EP3")
	add(&binding{name: "fall", arity: 7, implicit: []string{"TEMP", "M"}, f: func(a []float64) float64 {
		return Fall(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7], a[8])
	}}, "FALL")
	add(&binding{name: "troe", arity: 5, implicit: []string{"TEMP", "M"}, f: func(a []float64) float64 {
		return Troe(a[0], a[1], a[2], a[3], a[4], a[5], a[6])
	}}, "TROE", "K3RD")
	add(&binding{name: "ktadj", arity: 2, implicit: []string{"TEMP"}, f: func(a []float64) float64 {
		return seinfeld.TemperatureAdjustRate(a[0], a[1], a[2])
	}}, "KTADJ")
}

func lookupFunc(name string) (*binding, bool) {
	b, ok := bindings[strings.ToUpper(name)]
	return b, ok
}

// functions returns the evaluation functions for every binding.
func functions() map[string]govaluate.ExpressionFunction {
	o := make(map[string]govaluate.ExpressionFunction)
	for _, b := range bindings {
		b := b
		if _, ok := o[b.name]; ok {
			continue
		}
		o[b.name] = func(args ...interface{}) (interface{}, error) {
			want := b.arity + len(b.implicit)
			if b.arity >= 0 && len(args) != want {
				return nil, fmt.Errorf("rate: got %d arguments for function '%s', but needs %d", len(args), b.name, want)
			}
			if len(args) == 0 {
				return nil, fmt.Errorf("rate: function '%s' needs at least one argument", b.name)
			}
			a := make([]float64, len(args))
			for i, v := range args {
				f, ok := v.(float64)
				if !ok {
					return nil, fmt.Errorf("rate: argument %d of function '%s' is %T, not a number", i, b.name, v)
				}
				a[i] = f
			}
			return b.f(a), nil
		}
	}
	return o
}

// Arrhenius returns A0·exp(-B0/T)·(T/300)^C0.
func Arrhenius(A0, B0, C0, T float64) float64 {
	return A0 * math.Exp(-B0/T) * math.Pow(T/300, C0)
}

// EP2 returns the rate coefficient k0 + k3/(1 + k3/k2) where
// ki = ai·exp(-ci/T) and k3 is also multiplied by the third body
// concentration M.
func EP2(a0, c0, a2, c2, a3, c3, T, M float64) float64 {
	k0 := a0 * math.Exp(-c0/T)
	k2 := a2 * math.Exp(-c2/T)
	k3 := a3 * math.Exp(-c3/T) * M
	return k0 + k3/(1+k3/k2)
}

// EP3 returns a1·exp(-c1/T) + a2·exp(-c2/T)·M.
func EP3(a1, c1, a2, c2, T, M float64) float64 {
	return a1*math.Exp(-c1/T) + a2*math.Exp(-c2/T)*M
}

// Fall returns a fall-off rate coefficient with low pressure limit
// k0 = a0·exp(-b0/T)·(T/300)^c0·M, high pressure limit
// k1 = a1·exp(-b1/T)·(T/300)^c1 and broadening factor cf.
func Fall(a0, b0, c0, a1, b1, c1, cf, T, M float64) float64 {
	k0 := Arrhenius(a0, b0, c0, T) * M
	k1 := Arrhenius(a1, b1, c1, T)
	r := k0 / k1
	l := math.Log10(r)
	return k0 / (1 + r) * math.Pow(cf, 1/(1+l*l))
}

// Troe returns a third-order rate coefficient from its 300 K low pressure
// limit k0300, high pressure limit kinf300, their temperature exponents n
// and m, and the broadening factor fc.
func Troe(k0300, n, kinf300, m, fc, T, M float64) float64 {
	z := 300 / T
	k0 := k0300 * math.Pow(z, n) * M
	kinf := kinf300 * math.Pow(z, m)
	r := k0 / kinf
	l := math.Log10(r)
	return k0 / (1 + r) * math.Pow(fc, 1/(1+l*l))
}
