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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/chemscheme"
	"github.com/spatialmodel/chemscheme/rate"
	"github.com/spf13/cast"
)

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`chemscheme: you need to specify an output file configuration variable (for example: OutputFile="mechanism.db")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("chemscheme: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// markers returns the marker configuration in cfg.
func markers(cfg *viper.Viper) (chemscheme.Markers, error) {
	tokens, err := cast.ToStringSliceE(cfg.Get("Markers"))
	if err != nil {
		return chemscheme.Markers{}, fmt.Errorf("chemscheme: reading Markers: %v", err)
	}
	return chemscheme.NewMarkers(tokens)
}

// logger returns a logger at the level set in cfg.
func logger(cfg *viper.Viper) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return nil, fmt.Errorf("chemscheme: invalid LogLevel: %v", err)
	}
	log := logrus.New()
	log.Out = os.Stderr
	log.Level = lvl
	return log, nil
}

// parseMechanism parses the mechanism specified in cfg.
func parseMechanism(cfg *viper.Viper) (*chemscheme.Mechanism, error) {
	mechPath := os.ExpandEnv(cfg.GetString("Mechanism"))
	if mechPath == "" {
		return nil, fmt.Errorf("chemscheme: you need to specify a Mechanism file")
	}
	m, err := markers(cfg)
	if err != nil {
		return nil, err
	}
	log, err := logger(cfg)
	if err != nil {
		return nil, err
	}
	return chemscheme.ParseFile(mechPath, os.ExpandEnv(cfg.GetString("SpeciesTable")), m,
		chemscheme.Options{Log: log, Lenient: cfg.GetBool("Lenient")})
}

// rateConfig returns the rate compiler configuration in cfg.
func rateConfig(cfg *viper.Viper) (rate.Config, error) {
	c := rate.Config{
		FluxFile:  os.ExpandEnv(cfg.GetString("Photolysis.FluxFile")),
		ParamFile: os.ExpandEnv(cfg.GetString("Photolysis.ParamFile")),
	}
	if c.ParamFile != "" {
		f, err := os.Open(c.ParamFile)
		if err != nil {
			return c, fmt.Errorf("chemscheme: opening photolysis parameters: %v", err)
		}
		c.NumPhotolysis, err = rate.CountPhotolysis(f)
		f.Close()
		if err != nil {
			return c, err
		}
	}
	j, err := fixedJ(cfg.Get("Photolysis.J"))
	if err != nil {
		return c, err
	}
	if len(j) > 0 {
		c.Photolysis = j
	}
	return c, nil
}

// fixedJ converts a configuration value to a list of photolysis rates.
func fixedJ(v interface{}) (rate.FixedPhotolysis, error) {
	s, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("chemscheme: reading Photolysis.J: %v", err)
	}
	var o rate.FixedPhotolysis
	for _, x := range s {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		f, err := cast.ToFloat64E(x)
		if err != nil {
			return nil, fmt.Errorf("chemscheme: reading Photolysis.J: %v", err)
		}
		o = append(o, f)
	}
	return o, nil
}

// conditions returns the rate inputs in cfg.
func conditions(cfg *viper.Viper) (rate.Inputs, error) {
	return conditionsAt(cfg, cfg.GetFloat64("Conditions.TEMP"))
}

// conditionsAt returns the rate inputs in cfg at temperature T [K].
func conditionsAt(cfg *viper.Viper, T float64) (rate.Inputs, error) {
	M, N2, O2, H2O, err := rate.AirComposition(T, cfg.GetFloat64("Conditions.Pressure"), cfg.GetFloat64("Conditions.RH"))
	if err != nil {
		return rate.Inputs{}, err
	}
	return rate.Inputs{
		RO2:       cfg.GetFloat64("Conditions.RO2"),
		H2O:       H2O,
		TEMP:      T,
		Light:     cfg.GetBool("Conditions.Light"),
		Time:      cfg.GetFloat64("Conditions.Time"),
		Lat:       cfg.GetFloat64("Conditions.Lat"),
		Lon:       cfg.GetFloat64("Conditions.Lon"),
		DayOfYear: cfg.GetInt("Conditions.DayOfYear"),
		M:         M,
		N2:        N2,
		O2:        O2,
	}, nil
}
