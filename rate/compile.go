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

// Package rate compiles rate coefficient expressions written in chemical
// mechanism syntax into evaluators that calculate rate coefficients from
// the atmospheric state.
package rate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// Definition is a generic rate coefficient: a named expression that other
// expressions can refer to.
type Definition struct {
	Name string
	Expr string
}

// Config holds the compile-time settings of an evaluator.
type Config struct {
	// Photolysis calculates photolysis rates. It is only consulted when
	// the lights are on and an expression refers to a photolysis rate.
	Photolysis Photolysis

	// FluxFile and ParamFile are passed through to Photolysis.
	FluxFile, ParamFile string

	// NumPhotolysis is the length of the photolysis rate vector. If it
	// is greater than zero, references to photolysis rates at or beyond
	// it are rejected at compile time. If it is zero the length is taken
	// from the largest reference.
	NumPhotolysis int
}

type compiled struct {
	name   string
	source string
	text   string
	expr   *govaluate.EvaluableExpression
}

// Evaluator calculates the rate coefficients of a list of reactions.
// It holds no state that changes between calls, so it is safe for
// concurrent use.
type Evaluator struct {
	defs  []compiled
	rates []compiled
	cfg   Config

	// maxJ is the largest photolysis index referred to, or -1.
	maxJ int
}

// Compile compiles the generic rate coefficients defs, which are evaluated
// in order, and the reaction rate expressions rates. Every name in an
// expression must be a runtime input (see InputNames), a photolysis
// reference such as J(4), or a generic coefficient; generic coefficients
// may only refer to coefficients defined before them.
func Compile(defs []Definition, rates []string, cfg Config) (*Evaluator, error) {
	e := &Evaluator{cfg: cfg, maxJ: -1}
	funcs := functions()
	known := make(map[string]bool)
	for _, d := range defs {
		if !IsIdentifier(d.Name) {
			return nil, &SyntaxError{Expr: d.Name, Msg: "invalid rate coefficient name"}
		}
		c, err := e.compile(d.Name, d.Expr, known, funcs)
		if err != nil {
			return nil, err
		}
		e.defs = append(e.defs, c)
		known[d.Name] = true
	}
	for i, r := range rates {
		c, err := e.compile(strconv.Itoa(i), r, known, funcs)
		if err != nil {
			return nil, err
		}
		e.rates = append(e.rates, c)
	}
	return e, nil
}

func (e *Evaluator) compile(name, src string, known map[string]bool, funcs map[string]govaluate.ExpressionFunction) (compiled, error) {
	n, err := parse(src)
	if err != nil {
		return compiled{}, err
	}
	var cerr error
	walk(n, func(x node) {
		if cerr != nil {
			return
		}
		switch t := x.(type) {
		case varNode:
			if !known[t.name] && !isInput(t.name) {
				cerr = &UndefinedError{Name: t.name, Expr: src}
			}
		case photoNode:
			if e.cfg.NumPhotolysis > 0 && t.n >= e.cfg.NumPhotolysis {
				cerr = &SyntaxError{Expr: src, Offset: t.pos,
					Msg: fmt.Sprintf("photolysis rate %d is beyond the %d available", t.n, e.cfg.NumPhotolysis)}
				return
			}
			if t.n > e.maxJ {
				e.maxJ = t.n
			}
		}
	})
	if cerr != nil {
		return compiled{}, cerr
	}
	text := render(n)
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(text, funcs)
	if err != nil {
		return compiled{}, fmt.Errorf("rate: compiling %q as %q: %v", src, text, err)
	}
	return compiled{name: name, source: src, text: text, expr: expr}, nil
}

// Len returns the number of rate coefficients Evaluate returns.
func (e *Evaluator) Len() int { return len(e.rates) }

// Expressions returns the rewritten form of each reaction rate expression.
func (e *Evaluator) Expressions() []string {
	o := make([]string, len(e.rates))
	for i, r := range e.rates {
		o[i] = r.text
	}
	return o
}

// UsesPhotolysis reports whether any expression refers to a photolysis rate.
func (e *Evaluator) UsesPhotolysis() bool { return e.maxJ >= 0 }

// Evaluate returns the rate coefficient of every reaction, in the order the
// rate expressions were given to Compile.
func (e *Evaluator) Evaluate(in Inputs) ([]float64, error) {
	s := &scope{in: in, generic: make(map[string]float64, len(e.defs))}
	if in.Light && e.maxJ >= 0 {
		j, err := e.photolysis(in)
		if err != nil {
			return nil, err
		}
		s.j = j
	}
	for _, d := range e.defs {
		v, err := eval(d, s)
		if err != nil {
			return nil, err
		}
		s.generic[d.name] = v
	}
	o := make([]float64, len(e.rates))
	for i, r := range e.rates {
		v, err := eval(r, s)
		if err != nil {
			return nil, err
		}
		o[i] = v
	}
	return o, nil
}

func (e *Evaluator) photolysis(in Inputs) ([]float64, error) {
	if e.cfg.Photolysis == nil {
		return nil, fmt.Errorf("rate: the lights are on and rate expressions use photolysis rates, but no photolysis calculator is configured")
	}
	n := e.cfg.NumPhotolysis
	if n == 0 {
		n = e.maxJ + 1
	}
	j, err := e.cfg.Photolysis.Rates(PhotolysisRequest{
		Time:      in.Time,
		Lat:       in.Lat,
		Lon:       in.Lon,
		TEMP:      in.TEMP,
		FluxFile:  e.cfg.FluxFile,
		DayOfYear: in.DayOfYear,
		ParamFile: e.cfg.ParamFile,
		N:         n,
	})
	if err != nil {
		return nil, fmt.Errorf("rate: calculating photolysis rates: %v", err)
	}
	if len(j) <= e.maxJ {
		return nil, fmt.Errorf("rate: got %d photolysis rates but expressions use J(%d)", len(j), e.maxJ)
	}
	return j, nil
}

func eval(c compiled, s *scope) (float64, error) {
	v, err := c.expr.Eval(s)
	if err != nil {
		return 0, fmt.Errorf("rate: evaluating %s (%q): %v", c.name, c.source, err)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("rate: %s (%q) evaluated to %T, not a number", c.name, c.source, v)
	}
	return f, nil
}

// scope provides the variables of one evaluation.
type scope struct {
	in      Inputs
	generic map[string]float64
	j       []float64 // nil when the lights are off
}

// Get implements govaluate.Parameters.
func (s *scope) Get(name string) (interface{}, error) {
	if v, ok := s.generic[name]; ok {
		return v, nil
	}
	if v, ok := s.in.get(name); ok {
		return v, nil
	}
	if strings.HasPrefix(name, "J_") {
		n, err := strconv.Atoi(name[2:])
		if err == nil {
			if s.j == nil {
				return 0.0, nil
			}
			return s.j[n], nil
		}
	}
	return nil, fmt.Errorf("rate: no value for %q", name)
}
