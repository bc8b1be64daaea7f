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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/chemscheme/rate"
)

// Options holds optional parser settings.
type Options struct {
	// Log receives parser diagnostics. If it is nil the standard logrus
	// logger is used.
	Log logrus.FieldLogger

	// Lenient makes species that are missing from the side table a
	// warning instead of a fatal *ConsistencyError. Missing species then
	// get default canonical identifiers.
	Lenient bool
}

func (o Options) logger() logrus.FieldLogger {
	if o.Log == nil {
		return logrus.StandardLogger()
	}
	return o.Log
}

const maxLineLength = 16 * 1024 * 1024

// Parse reads a chemical mechanism from r. Species names are resolved to
// canonical identifiers with side, which may be nil. Lines that don't fit
// any category are skipped; those that nearly fit one are logged as
// warnings.
func Parse(r io.Reader, side *SideTable, m Markers, opts Options) (*Mechanism, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()
	mech := &Mechanism{
		Markers: m,
		Species: NewSpeciesTable(side),
		Gas:     NewReactionDB(Gas),
		Aqueous: NewReactionDB(Aqueous),
		Lines:   make(map[LineCategory]int),
	}
	c := NewClassifier(m)

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineLength)
	lineNum := 0
	for s.Scan() {
		lineNum++
		line := strings.TrimSpace(s.Text())
		cat := c.Classify(line)
		mech.Lines[cat]++
		log.WithFields(logrus.Fields{
			"line":     lineNum,
			"category": cat.String(),
		}).Debug("chemscheme: classified line")

		switch cat {
		case GenericRate:
			mech.addGeneric(line, lineNum, log)
		case RO2Declaration:
			mech.RO2Pool = append(mech.RO2Pool, ro2Names(line, m)...)
		case GasReaction:
			mech.Gas.Append(interrogate(line, Gas, m, mech.Species, log))
		case AqueousReaction:
			mech.Aqueous.Append(interrogate(line, Aqueous, m, mech.Species, log))
		default:
			if reason := nearMiss(line, m); reason != "" {
				log.WithFields(logrus.Fields{
					"line": lineNum,
					"text": line,
				}).Warn("chemscheme: ignoring " + reason)
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, &IOError{Path: "mechanism", Err: err}
	}
	if c.InRO2Block() {
		log.Warn("chemscheme: the RO2 declaration is not terminated before the end of the mechanism")
	}

	if err := mech.Species.check(opts.Lenient); err != nil {
		return nil, err
	}
	if u := mech.Species.Unknown(); len(u) > 0 && side != nil {
		log.WithFields(logrus.Fields{
			"species": strings.Join(u, ", "),
		}).Warn("chemscheme: species not in the side table; using default identifiers")
	}
	mech.RO2 = ResolveRO2(mech.RO2Pool, mech.Species)

	log.WithFields(logrus.Fields{
		"species":           mech.Species.Len(),
		"gas reactions":     mech.Gas.Len(),
		"aqueous reactions": mech.Aqueous.Len(),
		"generic rates":     len(mech.Generic),
		"RO2 pool":          len(mech.RO2Pool),
		"RO2 resolved":      len(mech.RO2),
	}).Info("chemscheme: parsed mechanism")
	return mech, nil
}

// addGeneric records a generic rate coefficient definition line.
func (mech *Mechanism) addGeneric(line string, lineNum int, log logrus.FieldLogger) {
	m := mech.Markers
	if m.GenericEnd != "" {
		line = strings.Replace(line, m.GenericEnd, "", -1)
	}
	line = strings.Replace(line, " ", "", -1)
	line = strings.TrimSuffix(line, m.ReactionEnd)
	parts := strings.SplitN(line, "=", 2)
	name, expr := parts[0], parts[1]
	if !rate.IsIdentifier(name) {
		log.WithFields(logrus.Fields{
			"line": lineNum,
			"name": name,
		}).Warn("chemscheme: ignoring rate coefficient definition with an invalid name")
		return
	}
	mech.Generic = append(mech.Generic, rate.Definition{Name: name, Expr: expr})
}

// ParseFile parses the mechanism file at mechPath with the side table at
// sidePath. If sidePath is empty no side table is used.
func ParseFile(mechPath, sidePath string, m Markers, opts Options) (*Mechanism, error) {
	var side *SideTable
	if sidePath != "" {
		var err error
		side, err = ReadSideTable(sidePath)
		if err != nil {
			return nil, err
		}
	}
	f, err := os.Open(mechPath)
	if err != nil {
		return nil, &IOError{Path: mechPath, Err: err}
	}
	mech, err := Parse(f, side, m, opts)
	if cerr := f.Close(); cerr != nil && err == nil {
		return nil, &IOError{Path: mechPath, Err: cerr}
	}
	if ioErr, ok := err.(*IOError); ok && ioErr.Path == "mechanism" {
		ioErr.Path = mechPath
	}
	return mech, err
}
