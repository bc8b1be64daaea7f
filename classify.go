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
	"strings"

	"github.com/spatialmodel/chemscheme/rate"
)

// LineCategory is the kind of content a mechanism file line holds.
type LineCategory int

// Line categories, in the order they are checked.
const (
	Ignorable LineCategory = iota
	GenericRate
	RO2Declaration
	GasReaction
	AqueousReaction
)

func (c LineCategory) String() string {
	switch c {
	case GenericRate:
		return "generic rate coefficient"
	case RO2Declaration:
		return "RO2 declaration"
	case GasReaction:
		return "gas-phase reaction"
	case AqueousReaction:
		return "aqueous-phase reaction"
	default:
		return "ignorable"
	}
}

// Classifier assigns mechanism file lines to categories. It is a two-state
// machine: outside an RO2 pool declaration every line is tested against the
// category predicates in priority order; inside an open declaration every
// line belongs to the declaration until the declaration ends.
type Classifier struct {
	markers Markers
	ro2Open bool
}

// NewClassifier returns a classifier for the given markers.
func NewClassifier(m Markers) *Classifier {
	return &Classifier{markers: m}
}

// Classify returns the category of line and advances the classifier state.
func (c *Classifier) Classify(line string) LineCategory {
	line = strings.TrimSpace(line)
	m := c.markers
	if c.ro2Open {
		c.ro2Open = ro2BlockContinues(line, m)
		return RO2Declaration
	}
	switch {
	case isGenericRate(line, m):
		return GenericRate
	case isRO2Start(line, m):
		c.ro2Open = ro2StartContinues(line, m)
		return RO2Declaration
	case isReaction(line, m.GasReaction, m):
		return GasReaction
	case m.AqueousReaction != "" && isReaction(line, m.AqueousReaction, m):
		return AqueousReaction
	}
	return Ignorable
}

// InRO2Block reports whether an RO2 pool declaration is open.
func (c *Classifier) InRO2Block() bool { return c.ro2Open }

// isGenericRate reports whether line defines a generic rate coefficient:
// exactly one '=', a non-empty name that isn't the RO2 start marker or a
// reaction, a value that isn't an IGNORE directive, and the generic end
// marker when one is configured.
func isGenericRate(line string, m Markers) bool {
	parts := strings.Split(line, "=")
	if len(parts) != 2 {
		return false
	}
	lhs := strings.TrimSpace(parts[0])
	rhs := strings.TrimSpace(parts[1])
	if lhs == "" || strings.HasPrefix(rhs, "IGNORE") {
		return false
	}
	if m.GenericEnd != "" && !strings.Contains(line, m.GenericEnd) {
		return false
	}
	if lhs == m.RO2Start || beginsReaction(lhs, m) {
		return false
	}
	return true
}

// isRO2Start reports whether line opens the RO2 pool declaration.
func isRO2Start(line string, m Markers) bool {
	if !strings.Contains(line, m.RO2Start) || beginsReaction(line, m) {
		return false
	}
	if m.RO2End != "" && strings.Contains(line, m.RO2End) {
		return true
	}
	if m.RO2Continue != "" && strings.Contains(line, m.RO2Continue) {
		return true
	}
	if i := strings.Index(line, "="); i >= 0 {
		return strings.TrimSpace(line[:i]) == m.RO2Start
	}
	return false
}

// ro2StartContinues reports whether the declaration opened by line goes on
// to the next line.
func ro2StartContinues(line string, m Markers) bool {
	if m.RO2End != "" && strings.Contains(line, m.RO2End) {
		return false
	}
	return m.RO2Continue != "" && strings.Contains(line, m.RO2Continue)
}

// ro2BlockContinues reports whether an open declaration goes on past line.
// With an end marker the declaration lasts until that marker; without one it
// lasts while lines carry the continuation marker.
func ro2BlockContinues(line string, m Markers) bool {
	if m.RO2End != "" {
		return !strings.Contains(line, m.RO2End)
	}
	return strings.Contains(line, m.RO2Continue)
}

// isReaction reports whether line is a reaction of the phase that begins
// with phaseMarker.
func isReaction(line, phaseMarker string, m Markers) bool {
	return strings.HasPrefix(line, phaseMarker) &&
		strings.Contains(line, m.RateStart) &&
		strings.Contains(line, m.ReactionEnd)
}

func beginsReaction(s string, m Markers) bool {
	if strings.HasPrefix(s, m.GasReaction) {
		return true
	}
	return m.AqueousReaction != "" && strings.HasPrefix(s, m.AqueousReaction)
}

// nearMiss returns a description of why an ignorable line looks almost like a
// recognized category, or "" if it doesn't.
func nearMiss(line string, m Markers) string {
	line = strings.TrimSpace(line)
	if beginsReaction(line, m) {
		hasRate := strings.Contains(line, m.RateStart)
		hasEnd := strings.Contains(line, m.ReactionEnd)
		switch {
		case hasRate && !hasEnd:
			return "reaction line without the reaction end marker " + m.ReactionEnd
		case !hasRate && hasEnd:
			return "reaction line without the rate expression start marker " + m.RateStart
		}
		return ""
	}
	parts := strings.Split(line, "=")
	if len(parts) == 2 && m.GenericEnd != "" && !strings.Contains(line, m.GenericEnd) &&
		rate.IsIdentifier(strings.TrimSpace(parts[0])) {
		return "rate coefficient definition without the end marker " + m.GenericEnd
	}
	return ""
}
