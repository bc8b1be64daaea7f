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

package chemutil

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/chemscheme"
	"github.com/spatialmodel/chemscheme/rate"
	"gonum.org/v1/gonum/floats"
)

// printSummary writes the size of m to w.
func printSummary(w io.Writer, m *chemscheme.Mechanism) error {
	cats := []chemscheme.LineCategory{chemscheme.GenericRate, chemscheme.RO2Declaration,
		chemscheme.GasReaction, chemscheme.AqueousReaction, chemscheme.Ignorable}
	for _, c := range cats {
		if _, err := fmt.Fprintf(w, "%s lines: %d\n", c, m.Lines[c]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "species: %d\ngas reactions: %d\naqueous reactions: %d\n"+
		"generic rate coefficients: %d\nRO2 pool: %d (%d resolved)\nfingerprint: %s\n",
		m.Species.Len(), m.Gas.Len(), m.Aqueous.Len(), len(m.Generic),
		len(m.RO2Pool), len(m.RO2), m.Fingerprint())
	return err
}

// printSpecies writes one line per species to w.
func printSpecies(w io.Writer, m *chemscheme.Mechanism) error {
	for _, s := range m.Species.All() {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", s.Index, s.Name, s.Canonical); err != nil {
			return err
		}
	}
	return nil
}

// evaluator compiles the rate coefficients of the phase in cfg.
func evaluator(m *chemscheme.Mechanism, cfg *viper.Viper) (*rate.Evaluator, chemscheme.Phase, error) {
	p, ok := chemscheme.ParsePhase(cfg.GetString("Phase"))
	if !ok {
		return nil, p, fmt.Errorf("chemscheme: invalid Phase %q; it must be gas or aqueous", cfg.GetString("Phase"))
	}
	rc, err := rateConfig(cfg)
	if err != nil {
		return nil, p, err
	}
	e, err := m.Compile(p, rc)
	return e, p, err
}

// printRates evaluates the rate coefficients of the phase in cfg and writes
// one line per reaction to w.
func printRates(w io.Writer, m *chemscheme.Mechanism, cfg *viper.Viper) error {
	e, p, err := evaluator(m, cfg)
	if err != nil {
		return err
	}
	in, err := conditions(cfg)
	if err != nil {
		return err
	}
	k, err := e.Evaluate(in)
	if err != nil {
		return err
	}
	db := m.DB(p)
	for i, v := range k {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%g\n", i, db.Rates[i], v); err != nil {
			return err
		}
	}
	return nil
}

// sweepTemperatures returns the temperatures of the sweep in cfg.
func sweepTemperatures(cfg *viper.Viper) ([]float64, error) {
	n := cfg.GetInt("Sweep.Steps")
	if n < 1 {
		return nil, fmt.Errorf("chemscheme: Sweep.Steps must be at least 1, not %d", n)
	}
	tmin, tmax := cfg.GetFloat64("Sweep.TMin"), cfg.GetFloat64("Sweep.TMax")
	if tmin <= 0 || tmax < tmin {
		return nil, fmt.Errorf("chemscheme: invalid sweep temperature range %g to %g K", tmin, tmax)
	}
	if n == 1 {
		return []float64{tmin}, nil
	}
	return floats.Span(make([]float64, n), tmin, tmax), nil
}

// printSweep evaluates the rate coefficients of the phase in cfg at each
// sweep temperature concurrently and writes a table to w.
func printSweep(ctx context.Context, w io.Writer, m *chemscheme.Mechanism, cfg *viper.Viper) error {
	e, _, err := evaluator(m, cfg)
	if err != nil {
		return err
	}
	temps, err := sweepTemperatures(cfg)
	if err != nil {
		return err
	}
	ins := make([]rate.Inputs, len(temps))
	for i, T := range temps {
		if ins[i], err = conditionsAt(cfg, T); err != nil {
			return err
		}
	}
	c := rate.NewCache(e, runtime.GOMAXPROCS(-1), len(temps))
	k := make([][]float64, len(temps))
	errs := make([]error, len(temps))
	var wg sync.WaitGroup
	for i, in := range ins {
		wg.Add(1)
		go func(i int, in rate.Inputs) {
			defer wg.Done()
			k[i], errs[i] = c.Evaluate(ctx, in)
		}(i, in)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	header := []string{"TEMP"}
	for i := 0; i < e.Len(); i++ {
		header = append(header, strconv.Itoa(i))
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for i, T := range temps {
		row := []string{strconv.FormatFloat(T, 'g', -1, 64)}
		for _, v := range k[i] {
			row = append(row, strconv.FormatFloat(v, 'g', 6, 64))
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
