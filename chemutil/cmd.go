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

// Package chemutil holds the command-line interface of ChemScheme.
package chemutil

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/chemscheme"
	"github.com/spatialmodel/chemscheme/mechdb"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	mechFlags := []*pflag.FlagSet{Root.PersistentFlags()}
	rateFlags := []*pflag.FlagSet{ratesCmd.Flags(), sweepCmd.Flags()}
	sweepFlags := []*pflag.FlagSet{sweepCmd.Flags()}

	// Options are the configuration options available to ChemScheme.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Mechanism",
			usage: `
              Mechanism specifies the path to the chemical mechanism file.`,
			shorthand:  "m",
			defaultVal: "",
			flagsets:   mechFlags,
		},
		{
			name: "SpeciesTable",
			usage: `
              SpeciesTable specifies the path to the species side table, which
              maps mechanism species names to SMILES strings. Files ending in
              .toml are read as TOML; others as XML. If empty, species are
              given default identifiers.`,
			defaultVal: "",
			flagsets:   mechFlags,
		},
		{
			name: "Markers",
			usage: `
              Markers specifies the 12 tokens that delimit the parts of the
              mechanism file, in order: gas reaction start, RO2 start, RO2
              separator, RO2 prefix, RO2 suffix, RO2 end, RO2 continuation,
              generic rate coefficient end, aqueous reaction start, rate
              expression start, reaction label end, reaction end. The default
              reads mechanisms in the KPP format of the Master Chemical Mechanism.`,
			defaultVal: chemscheme.DefaultMarkers().Tokens(),
			flagsets:   mechFlags,
		},
		{
			name: "Lenient",
			usage: `
              Lenient specifies whether species missing from the species side
              table should cause a warning rather than an error.`,
			defaultVal: false,
			flagsets:   mechFlags,
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the logging level: one of debug, info, warn,
              or error.`,
			defaultVal: "info",
			flagsets:   mechFlags,
		},
		{
			name: "Phase",
			usage: `
              Phase specifies the reaction phase (gas or aqueous) to calculate
              rate coefficients for.`,
			defaultVal: "gas",
			flagsets:   rateFlags,
		},
		{
			name: "Photolysis.ParamFile",
			usage: `
              Photolysis.ParamFile specifies the file of photolysis absorption
              cross sections and quantum yields. It is used to find the number
              of photolysis rates.`,
			defaultVal: "",
			flagsets:   rateFlags,
		},
		{
			name: "Photolysis.FluxFile",
			usage: `
              Photolysis.FluxFile specifies the actinic flux file passed to the
              photolysis calculator.`,
			defaultVal: "",
			flagsets:   rateFlags,
		},
		{
			name: "Photolysis.J",
			usage: `
              Photolysis.J specifies fixed photolysis rates [s-1]. Element n is
              used for J(n); element 0 is unused.`,
			defaultVal: []string{},
			flagsets:   rateFlags,
		},
		{
			name: "Conditions.TEMP",
			usage: `
              Conditions.TEMP is the temperature [K].`,
			defaultVal: 298.15,
			flagsets:   rateFlags,
		},
		{
			name: "Conditions.Pressure",
			usage: `
              Conditions.Pressure is the air pressure [Pa].`,
			defaultVal: 101325.0,
			flagsets:   rateFlags,
		},
		{
			name: "Conditions.RH",
			usage: `
              Conditions.RH is the relative humidity, from 0 to 1.`,
			defaultVal: 0.5,
			flagsets:   rateFlags,
		},
		{
			name: "Conditions.RO2",
			usage: `
              Conditions.RO2 is the summed RO2 concentration [molecule cm-3].`,
			defaultVal: 0.0,
			flagsets:   rateFlags,
		},
		{
			name: "Conditions.Light",
			usage: `
              Conditions.Light specifies whether the lights are on.`,
			defaultVal: true,
			flagsets:   rateFlags,
		},
		{
			name: "Conditions.Time",
			usage: `
              Conditions.Time is the simulation time [s].`,
			defaultVal: 0.0,
			flagsets:   rateFlags,
		},
		{
			name: "Conditions.Lat",
			usage: `
              Conditions.Lat is the latitude [degrees].`,
			defaultVal: 51.5,
			flagsets:   rateFlags,
		},
		{
			name: "Conditions.Lon",
			usage: `
              Conditions.Lon is the longitude [degrees].`,
			defaultVal: 0.0,
			flagsets:   rateFlags,
		},
		{
			name: "Conditions.DayOfYear",
			usage: `
              Conditions.DayOfYear is the day of the year, starting at 1.`,
			defaultVal: 182,
			flagsets:   rateFlags,
		},
		{
			name: "Sweep.TMin",
			usage: `
              Sweep.TMin is the lowest temperature [K] of a rate coefficient sweep.`,
			defaultVal: 250.0,
			flagsets:   sweepFlags,
		},
		{
			name: "Sweep.TMax",
			usage: `
              Sweep.TMax is the highest temperature [K] of a rate coefficient sweep.`,
			defaultVal: 320.0,
			flagsets:   sweepFlags,
		},
		{
			name: "Sweep.Steps",
			usage: `
              Sweep.Steps is the number of evenly spaced temperatures in a rate
              coefficient sweep.`,
			defaultVal: 8,
			flagsets:   sweepFlags,
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path of the file to write. Files ending
              in .xlsx are written as spreadsheets; others as SQLite databases.`,
			shorthand:  "o",
			defaultVal: "mechanism.db",
			flagsets:   []*pflag.FlagSet{exportCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("CHEMSCHEME")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(parseCmd)
	Root.AddCommand(speciesCmd)
	Root.AddCommand(ratesCmd)
	Root.AddCommand(sweepCmd)
	Root.AddCommand(exportCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("chemscheme: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "chemscheme",
	Short: "A chemical mechanism parser and rate coefficient compiler.",
	Long: `ChemScheme reads chemical mechanism files, such as those from the Master
Chemical Mechanism, and produces reaction databases and rate coefficients.
Use the subcommands specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'CHEMSCHEME_var' where 'var'
is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of ChemScheme.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("ChemScheme v%s\n", chemscheme.Version)
	},
	DisableAutoGenTag: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a mechanism and summarize it.",
	Long: `parse reads the mechanism and prints the number of lines of each kind,
species, reactions, generic rate coefficients and RO2 species, along with
the mechanism fingerprint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMechanism(Cfg)
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), m)
	},
	DisableAutoGenTag: true,
}

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List the species in a mechanism.",
	Long: `species prints the index, mechanism name and canonical identifier of
every species referred to by the mechanism's reactions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMechanism(Cfg)
		if err != nil {
			return err
		}
		return printSpecies(cmd.OutOrStdout(), m)
	},
	DisableAutoGenTag: true,
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Calculate rate coefficients.",
	Long: `rates compiles the rate coefficient expressions of one phase and
evaluates them at the conditions given by the Conditions.* options, printing
one line per reaction in mechanism order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMechanism(Cfg)
		if err != nil {
			return err
		}
		return printRates(cmd.OutOrStdout(), m, Cfg)
	},
	DisableAutoGenTag: true,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Tabulate rate coefficients over a range of temperatures.",
	Long: `sweep evaluates the rate coefficients of one phase at Sweep.Steps
temperatures from Sweep.TMin to Sweep.TMax, with the other conditions given
by the Conditions.* options. It prints one row per temperature and one column
per reaction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMechanism(Cfg)
		if err != nil {
			return err
		}
		return printSweep(context.Background(), cmd.OutOrStdout(), m, Cfg)
	},
	DisableAutoGenTag: true,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a mechanism to a SQLite database or spreadsheet.",
	Long: `export parses the mechanism and writes its species, reactions, generic
rate coefficients and RO2 pool to OutputFile, which is a spreadsheet if its
name ends in .xlsx and a SQLite database otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMechanism(Cfg)
		if err != nil {
			return err
		}
		out, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		if strings.EqualFold(filepath.Ext(out), ".xlsx") {
			err = mechdb.WriteXLSX(out, m)
		} else {
			err = mechdb.Create(context.Background(), out, m)
		}
		if err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", out)
		return nil
	},
	DisableAutoGenTag: true,
}
